package hwpx

import (
	"sort"
	"strconv"

	"github.com/beevik/etree"

	"hwpxmd/style"
)

// buildHeaderDoc builds Contents/header.xml: fonts, borders, character and
// paragraph properties, styles, and numberings, all read back out of the
// already-resolved Catalog (§4.1 "header.xml enumerates every role exactly
// once with stable IDs assigned in role-declaration order"). Style, property,
// border-fill and numbering IDs are echoed from the Catalog; only fontface
// IDs, which the Catalog does not carry, are assigned here.
func buildHeaderDoc(cat *style.Catalog, bin []BinDataFile) *etree.Document {
	doc := newOWPMLDoc()
	head := doc.CreateElement("hh:head")
	head.CreateAttr("xmlns:hh", "http://www.hancom.co.kr/hwpml/2011/head")
	head.CreateAttr("xmlns:hp", "http://www.hancom.co.kr/hwpml/2011/paragraph")

	chars := sortedChars(cat)
	fontIDs := buildFontfaces(head, chars)
	buildBorderFills(head, cat)
	buildCharProperties(head, chars, fontIDs)
	paras := sortedParas(cat)
	buildParaProperties(head, paras)
	buildStyles(head, sortedStyles(cat))
	buildNumberings(head, cat)
	buildBinDataList(head, bin)

	return doc
}

func sortedChars(cat *style.Catalog) []style.CharEntry {
	out := make([]style.CharEntry, 0, len(cat.Chars))
	for _, entry := range cat.Chars {
		out = append(out, entry)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func sortedParas(cat *style.Catalog) []style.ParaEntry {
	out := make([]style.ParaEntry, 0, len(cat.Paras))
	for _, entry := range cat.Paras {
		out = append(out, entry)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func sortedStyles(cat *style.Catalog) []style.StyleEntry {
	out := make([]style.StyleEntry, 0, len(cat.Styles))
	for _, entry := range cat.Styles {
		out = append(out, entry)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// buildFontfaces collects the distinct font families referenced by chars
// and assigns each a stable fontface ID in first-seen order (by char ID).
func buildFontfaces(head *etree.Element, chars []style.CharEntry) map[string]int {
	fontfaces := head.CreateElement("hh:fontfaces")
	ids := make(map[string]int)
	for _, entry := range chars {
		family := entry.Props.FontFamily
		if _, ok := ids[family]; ok {
			continue
		}
		id := len(ids)
		ids[family] = id
		face := fontfaces.CreateElement("hh:fontface")
		face.CreateAttr("id", strconv.Itoa(id))
		face.CreateAttr("face", family)
	}
	return ids
}

func buildBorderFills(head *etree.Element, cat *style.Catalog) {
	borders := head.CreateElement("hh:borderFills")
	for _, id := range []int{cat.HRBorderID, cat.TableBorderID} {
		bf := borders.CreateElement("hh:borderFill")
		bf.CreateAttr("id", strconv.Itoa(id))
	}
}

func buildCharProperties(head *etree.Element, chars []style.CharEntry, fontIDs map[string]int) {
	props := head.CreateElement("hh:charProperties")
	for _, entry := range chars {
		pr := props.CreateElement("hh:charPr")
		pr.CreateAttr("id", strconv.Itoa(entry.ID))
		pr.CreateAttr("height", strconv.Itoa(int(entry.Props.HeightPt*100)))
		pr.CreateAttr("fontRef", strconv.Itoa(fontIDs[entry.Props.FontFamily]))
		if entry.Props.TextColor != "" {
			pr.CreateAttr("textColor", entry.Props.TextColor)
		}
		if entry.Props.Bold {
			pr.CreateElement("hh:bold")
		}
		if entry.Props.Italic {
			pr.CreateElement("hh:italic")
		}
		if entry.Props.Strikeout {
			pr.CreateElement("hh:strikeout").CreateAttr("shape", "SINGLE")
		}
		if entry.Props.Underline {
			pr.CreateElement("hh:underline")
		}
	}
}

func buildParaProperties(head *etree.Element, paras []style.ParaEntry) {
	props := head.CreateElement("hh:paraProperties")
	for _, entry := range paras {
		pr := props.CreateElement("hh:paraPr")
		pr.CreateAttr("id", strconv.Itoa(entry.ID))
		pr.CreateAttr("lineSpacing", strconv.Itoa(entry.Props.LineSpacingPercent))
		if entry.Props.IndentTwips != 0 {
			pr.CreateAttr("indent", strconv.Itoa(entry.Props.IndentTwips))
		}
		if entry.Props.MarginBeforeTwips != 0 {
			pr.CreateAttr("marginBefore", strconv.Itoa(entry.Props.MarginBeforeTwips))
		}
		if entry.Props.MarginAfterTwips != 0 {
			pr.CreateAttr("marginAfter", strconv.Itoa(entry.Props.MarginAfterTwips))
		}
	}
}

func buildStyles(head *etree.Element, styles []style.StyleEntry) {
	el := head.CreateElement("hh:styles")
	for _, entry := range styles {
		s := el.CreateElement("hh:style")
		s.CreateAttr("id", strconv.Itoa(entry.ID))
		s.CreateAttr("name", entry.Name)
		s.CreateAttr("paraPrIDRef", strconv.Itoa(entry.ParaID))
		s.CreateAttr("charPrIDRef", strconv.Itoa(entry.CharID))
	}
}

func buildNumberings(head *etree.Element, cat *style.Catalog) {
	el := head.CreateElement("hh:numberings")
	kinds := []struct {
		id   int
		kind string
	}{
		{cat.OrderedNumberingID, "ordered"},
		{cat.BulletNumberingID, "bullet"},
		{cat.TaskCheckedNumberID, "task_checked"},
		{cat.TaskUncheckedNumberID, "task_unchecked"},
	}
	for _, k := range kinds {
		n := el.CreateElement("hh:numbering")
		n.CreateAttr("id", strconv.Itoa(k.id))
		n.CreateAttr("kind", k.kind)
	}
}

func buildBinDataList(head *etree.Element, bin []BinDataFile) {
	if len(bin) == 0 {
		return
	}
	list := head.CreateElement("hh:binDataList")
	for _, b := range bin {
		bd := list.CreateElement("hh:binData")
		bd.CreateAttr("id", strconv.Itoa(b.ID))
		bd.CreateAttr("path", "BinData/"+b.Name)
		bd.CreateAttr("type", b.MediaType)
	}
}
