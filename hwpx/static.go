package hwpx

import (
	"path"
	"strconv"

	"github.com/beevik/etree"
)

// settingsXML and scriptsXML are minimal static stubs (SPEC_FULL.md §4.5
// "a fixed template of static parts"); the core never customizes them.
const (
	settingsXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n" +
		`<ha:HWPApplicationSetting xmlns:ha="http://www.hancom.co.kr/hwpml/2011/app"></ha:HWPApplicationSetting>` + "\n"
	scriptsXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n" +
		`<hs:scripts xmlns:hs="http://www.hancom.co.kr/hwpml/2011/section"></hs:scripts>` + "\n"
)

func newOWPMLDoc() *etree.Document {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8" standalone="yes"`)
	return doc
}

// buildContainerDoc builds META-INF/container.xml, pointing at
// Contents/content.hpf as the rootfile (§6 item 2).
func buildContainerDoc() *etree.Document {
	doc := newOWPMLDoc()
	container := doc.CreateElement("container")
	container.CreateAttr("version", "1.0")
	container.CreateAttr("xmlns", "urn:oasis:names:tc:opendocument:xmlns:container")

	rootfiles := container.CreateElement("rootfiles")
	rootfile := rootfiles.CreateElement("rootfile")
	rootfile.CreateAttr("full-path", "Contents/content.hpf")
	rootfile.CreateAttr("media-type", "application/hwpml-package+xml")
	return doc
}

// buildManifestDoc builds META-INF/manifest.xml, enumerating every other
// archive member with a media-type (§6 item 3). mimetype itself is never
// listed, matching the ODF/EPUB manifest convention it is grounded on.
func buildManifestDoc(bin []BinDataFile) *etree.Document {
	doc := newOWPMLDoc()
	manifest := doc.CreateElement("opf:manifest")
	manifest.CreateAttr("xmlns:opf", "http://www.hancom.co.kr/hwpml/2011/manifest")

	add := func(fullPath, mediaType string) {
		item := manifest.CreateElement("opf:file-entry")
		item.CreateAttr("full-path", fullPath)
		item.CreateAttr("media-type", mediaType)
	}

	add("META-INF/container.xml", "text/xml")
	add("Contents/content.hpf", "application/hwpml-package+xml")
	add("Contents/header.xml", "application/xml")
	add("Contents/section0.xml", "application/xml")
	for _, b := range bin {
		add("BinData/"+b.Name, b.MediaType)
	}
	add("settings.xml", "application/xml")
	add("scripts.xml", "text/javascript")
	return doc
}

// buildContentHPFDoc builds Contents/content.hpf: an OPF-style package
// document carrying the title/author options and a one-entry spine
// referencing the single section document (§4.6, §6 item 4).
func buildContentHPFDoc(opts Options, bin []BinDataFile) *etree.Document {
	doc := newOWPMLDoc()
	pkg := doc.CreateElement("opf:package")
	pkg.CreateAttr("version", "1.0")
	pkg.CreateAttr("xmlns:opf", "http://www.hancom.co.kr/hwpml/2011/package")
	pkg.CreateAttr("xmlns:op", "http://www.hancom.co.kr/hwpml/2011/opf")

	meta := pkg.CreateElement("op:metadata")
	meta.CreateElement("op:Title").CreateText(opts.Title)
	meta.CreateElement("op:Creator").CreateText(opts.Author)
	meta.CreateElement("op:Subject").CreateText("Markdown conversion")

	manifest := pkg.CreateElement("opf:manifest")
	item := manifest.CreateElement("opf:item")
	item.CreateAttr("id", "section0")
	item.CreateAttr("href", "Contents/section0.xml")
	item.CreateAttr("media-type", "application/xml")
	for _, b := range bin {
		bi := manifest.CreateElement("opf:item")
		bi.CreateAttr("id", "bin"+strconv.Itoa(b.ID))
		bi.CreateAttr("href", path.Join("BinData", b.Name))
		bi.CreateAttr("media-type", b.MediaType)
	}

	spine := pkg.CreateElement("opf:spine")
	spine.CreateElement("opf:itemref").CreateAttr("idref", "section0")

	return doc
}
