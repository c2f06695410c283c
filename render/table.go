package render

import (
	"strconv"

	"github.com/beevik/etree"

	"hwpxmd/markdown"
	"hwpxmd/style"
)

// writableWidthUnits is the default total column width (HWP units) a table
// divides evenly across its columns, per §4.3.
const writableWidthUnits = 40000

// RenderTable builds the "hp:tbl" subtree for a Table node (C3), delegated
// from the block walk in render.go. Every emitted row has exactly
// len(table.Alignments) cells, satisfying the table-shape property in §8.
func RenderTable(r *renderer, parent *etree.Element, table *markdown.Table, footnotes map[string]*markdown.FootnoteDefinition) {
	cols := len(table.Alignments)
	if cols == 0 {
		return
	}

	tbl := parent.CreateElement("hp:tbl")
	tbl.CreateAttr("rowCnt", strconv.Itoa(1+len(table.Body)))
	tbl.CreateAttr("colCnt", strconv.Itoa(cols))
	tbl.CreateAttr("borderFillIDRef", strconv.Itoa(r.cat.TableBorderID))

	widths := columnWidths(cols)

	r.renderTableRow(tbl, table.Header.Cells, table.Alignments, widths, footnotes, true)
	for _, row := range table.Body {
		r.renderTableRow(tbl, row.Cells, table.Alignments, widths, footnotes, false)
	}
}

// columnWidths divides writableWidthUnits evenly across cols columns, with
// the last column absorbing the rounding remainder (§4.3).
func columnWidths(cols int) []int {
	widths := make([]int, cols)
	base := writableWidthUnits / cols
	used := 0
	for i := 0; i < cols-1; i++ {
		widths[i] = base
		used += base
	}
	widths[cols-1] = writableWidthUnits - used
	return widths
}

func (r *renderer) renderTableRow(tbl *etree.Element, cells [][]markdown.Inline, aligns []markdown.Alignment, widths []int, footnotes map[string]*markdown.FootnoteDefinition, header bool) {
	tr := tbl.CreateElement("hp:tr")
	for ci := range aligns {
		var content []markdown.Inline
		if ci < len(cells) {
			content = cells[ci]
		}
		r.renderTableCell(tr, content, aligns[ci], widths[ci], footnotes, header)
	}
}

func (r *renderer) renderTableCell(tr *etree.Element, content []markdown.Inline, align markdown.Alignment, width int, footnotes map[string]*markdown.FootnoteDefinition, header bool) {
	tc := tr.CreateElement("hp:tc")
	tc.CreateAttr("id", strconv.Itoa(r.tableCellCounter))
	r.tableCellCounter++
	tc.CreateAttr("width", strconv.Itoa(width))
	if header {
		tc.CreateAttr("header", "1")
	}

	entry := r.cat.Styles[style.ParaTableCell]
	p := tc.CreateElement("hp:p")
	p.CreateAttr("id", strconv.Itoa(r.nextParaID()))
	p.CreateAttr("paraShapeIDRef", strconv.Itoa(entry.ParaID))
	p.CreateAttr("styleIDRef", strconv.Itoa(entry.ID))
	p.CreateAttr("align", alignAttr(align))

	role := style.CharDefault
	if header {
		role = style.CharBold
	}
	for _, in := range content {
		r.renderInline(p, in, role, footnotes)
	}
}

func alignAttr(a markdown.Alignment) string {
	switch a {
	case markdown.AlignLeft:
		return "left"
	case markdown.AlignCenter:
		return "center"
	case markdown.AlignRight:
		return "right"
	default:
		return "left"
	}
}
