// Package hwpx assembles the rendered OWPML parts (package style's Catalog,
// package render's section document, and any resolved image bytes) into a
// ZIP-based HWPX archive, per SPEC_FULL.md §4.5. It performs no parsing or
// rendering of its own; it only serializes and packages what C1/C4 already
// built.
package hwpx

import (
	"bytes"
	"sort"

	"github.com/beevik/etree"
	"github.com/maruel/natural"

	"hwpxmd/style"
)

// Options carries the C6 façade's package-affecting conversion options.
type Options struct {
	Title  string
	Author string
}

// BinDataFile is one resolved image payload to embed under BinData/. ID is
// the binaryItemID the renderer already baked into section0.xml's
// binaryItemIDRef attributes (render.Options.ResolvedImages); Package only
// echoes it back, it never reassigns binary item IDs itself.
type BinDataFile struct {
	ID int
	// Name is the archive-relative filename under BinData/, e.g. "image1a2b3c.png".
	Name      string
	MediaType string
	Data      []byte
}

const mimetypeContent = "application/hwp+zip"

// Package builds the full HWPX archive. section is the document Render
// produced; cat is the Style Catalog it was rendered against. bin need not
// be sorted; Package orders BinData members naturally (img2 before img10)
// for the determinism property in §8.
func Package(section *etree.Document, cat *style.Catalog, bin []BinDataFile, opts Options) ([]byte, error) {
	sorted := naturallySortedBinData(bin)

	header := buildHeaderDoc(cat, sorted)
	container := buildContainerDoc()
	content := buildContentHPFDoc(opts, sorted)
	manifest := buildManifestDoc(sorted)

	parts := []part{{name: "mimetype", data: []byte(mimetypeContent), store: true}}

	for _, p := range []struct {
		name string
		doc  *etree.Document
	}{
		{"META-INF/container.xml", container},
		{"META-INF/manifest.xml", manifest},
		{"Contents/content.hpf", content},
		{"Contents/header.xml", header},
		{"Contents/section0.xml", section},
	} {
		data, err := writeDocument(p.doc)
		if err != nil {
			return nil, err
		}
		parts = append(parts, part{name: p.name, data: data})
	}

	for _, b := range sorted {
		parts = append(parts, part{name: "BinData/" + b.Name, data: b.Data})
	}

	parts = append(parts,
		part{name: "settings.xml", data: []byte(settingsXML)},
		part{name: "scripts.xml", data: []byte(scriptsXML)},
	)

	buf, err := assemble(parts)
	if err != nil {
		return nil, err
	}
	return normalizeArchive(buf)
}

type part struct {
	name  string
	data  []byte
	store bool // true forces zip.Store; mimetype only
}

// naturallySortedBinData orders bin by natural filename order (img2 before
// img10), for stable, human-ordered archive listings.
func naturallySortedBinData(bin []BinDataFile) []BinDataFile {
	names := make([]string, len(bin))
	byName := make(map[string]BinDataFile, len(bin))
	for i, b := range bin {
		names[i] = b.Name
		byName[b.Name] = b
	}
	sort.Sort(natural.StringSlice(names))

	out := make([]BinDataFile, len(bin))
	for i, name := range names {
		out[i] = byName[name]
	}
	return out
}

// writeDocument serializes doc to bytes with every element's attributes
// sorted ascending by name (SPEC_FULL.md §13 open question 4): done here,
// at serialization time, so renderer/catalog code can build attributes in
// whatever order reads best.
func writeDocument(doc *etree.Document) ([]byte, error) {
	sortAttrs(doc.Root())
	var buf bytes.Buffer
	if _, err := doc.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func sortAttrs(el *etree.Element) {
	if el == nil {
		return
	}
	el.SortAttrs()
	for _, child := range el.ChildElements() {
		sortAttrs(child)
	}
}
