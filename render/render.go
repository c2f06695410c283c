// Package render walks a Markdown Document AST (package markdown) and emits
// the OWPML body XML tree for section0.xml, per SPEC_FULL.md §4.4. Every
// style, property and numbering ID it writes comes from the Style Catalog
// (package style); it never allocates a style or numbering ID of its own. Rendering performs no
// I/O and, per the well-formed-AST guarantee, never fails.
package render

import (
	"strconv"

	"github.com/beevik/etree"

	"hwpxmd/markdown"
	"hwpxmd/style"
)

// Options carries the C6 façade's render-affecting conversion options.
type Options struct {
	// BaseIndentUnits is the HWP-unit indent applied per list nesting level.
	BaseIndentUnits int
	// ResolvedImages maps an Image node's Src to an already-embedded
	// BinData binaryItemID. A Src absent from this map renders with
	// binaryItemIDRef 0 (SPEC_FULL.md §4.6, image_resolver option).
	ResolvedImages map[string]int
}

// DefaultBaseIndentUnits is used when Options.BaseIndentUnits is zero.
const DefaultBaseIndentUnits = 1000

// Result is what Render hands back to the C6 façade.
type Result struct {
	Section  *etree.Document
	Warnings []markdown.Warning
}

type renderer struct {
	cat  *style.Catalog
	opts Options

	paraCounter      int
	footnoteCounter  int
	tableCellCounter int
	quoteDepth       int

	footnoteIDs map[string]int
	referenced  map[string]bool

	warnings []markdown.Warning
}

// Render produces the section0.xml body tree for doc under cat.
func Render(doc *markdown.Document, cat *style.Catalog, opts Options) *Result {
	if opts.BaseIndentUnits == 0 {
		opts.BaseIndentUnits = DefaultBaseIndentUnits
	}
	r := &renderer{
		cat:         cat,
		opts:        opts,
		footnoteIDs: make(map[string]int),
		referenced:  collectReferencedLabels(doc.Blocks),
	}

	for label := range doc.Footnotes {
		if !r.referenced[label] {
			r.warnings = append(r.warnings, markdown.Warning{
				Kind:    markdown.WarnOrphanFootnoteDefinition,
				Message: "footnote definition [^" + label + "] is never referenced; rendered as body text",
			})
		}
	}

	xmlDoc := etree.NewDocument()
	xmlDoc.CreateProcInst("xml", `version="1.0" encoding="UTF-8" standalone="yes"`)
	sec := xmlDoc.CreateElement("hs:sec")
	sec.CreateAttr("xmlns:hs", "http://www.hancom.co.kr/hwpml/2011/section")
	sec.CreateAttr("xmlns:hp", "http://www.hancom.co.kr/hwpml/2011/paragraph")

	r.renderBlocks(sec, doc.Blocks, doc.Footnotes, 0)

	return &Result{Section: xmlDoc, Warnings: r.warnings}
}

func (r *renderer) nextParaID() int {
	id := r.paraCounter
	r.paraCounter++
	return id
}

// collectReferencedLabels walks the full block tree (including nested
// FootnoteDefinition children) to find every label actually used by an
// InlineFootnoteReference, per the footnote-closure property in §8.
func collectReferencedLabels(blocks []markdown.Block) map[string]bool {
	out := make(map[string]bool)
	var walkInlines func([]markdown.Inline)
	walkInlines = func(inlines []markdown.Inline) {
		for _, in := range inlines {
			if in.Kind == markdown.InlineFootnoteReference {
				out[in.Label] = true
			}
			walkInlines(in.Children)
		}
	}
	var walkBlocks func([]markdown.Block)
	walkBlocks = func(bs []markdown.Block) {
		for _, b := range bs {
			switch b.Kind {
			case markdown.BlockHeading:
				walkInlines(b.Heading.Inlines)
			case markdown.BlockParagraph:
				walkInlines(b.Paragraph.Inlines)
			case markdown.BlockBulletList, markdown.BlockOrderedList:
				for _, item := range b.List.Items {
					walkBlocks(item.Children)
				}
			case markdown.BlockQuote:
				walkBlocks(b.BlockQuote.Children)
			case markdown.BlockTable:
				for _, cell := range b.Table.Header.Cells {
					walkInlines(cell)
				}
				for _, row := range b.Table.Body {
					for _, cell := range row.Cells {
						walkInlines(cell)
					}
				}
			case markdown.BlockFootnoteDefinition:
				walkBlocks(b.FootnoteDefinition.Children)
			}
		}
	}
	walkBlocks(blocks)
	return out
}

// renderBlocks emits one element per Block into parent, at the given list
// nesting depth (0 outside any list). The enclosing blockquote depth, if
// any, is carried on r.quoteDepth and baked into every paragraph's indent
// as it is created (see newParagraph), so it compounds correctly across
// every paragraph a block produces, not just the last one.
func (r *renderer) renderBlocks(parent *etree.Element, blocks []markdown.Block, footnotes map[string]*markdown.FootnoteDefinition, depth int) {
	for _, b := range blocks {
		r.renderBlock(parent, b, footnotes, depth)
	}
}

func (r *renderer) renderBlock(parent *etree.Element, b markdown.Block, footnotes map[string]*markdown.FootnoteDefinition, depth int) {
	switch b.Kind {
	case markdown.BlockHeading:
		role := headingRole(b.Heading.Level)
		p := r.newParagraph(parent, role, depth)
		r.renderInlines(p, b.Heading.Inlines, footnotes)

	case markdown.BlockParagraph:
		p := r.newParagraph(parent, style.ParaBody, depth)
		r.renderInlines(p, b.Paragraph.Inlines, footnotes)

	case markdown.BlockBulletList, markdown.BlockOrderedList:
		r.renderList(parent, b.List, footnotes, depth)

	case markdown.BlockCodeBlock:
		r.renderCodeBlock(parent, b.CodeBlock, depth)

	case markdown.BlockQuote:
		r.quoteDepth++
		for _, child := range b.BlockQuote.Children {
			r.renderBlock(parent, child, footnotes, depth)
		}
		r.quoteDepth--

	case markdown.BlockTable:
		RenderTable(r, parent, b.Table, footnotes)

	case markdown.BlockThematicBreak:
		p := r.newParagraph(parent, style.ParaHR, depth)
		p.CreateAttr("borderFillIDRef", strconv.Itoa(r.cat.HRBorderID))

	case markdown.BlockFootnoteDefinition:
		if r.referenced[b.FootnoteDefinition.Label] {
			// Hoisted definitions render inline at their reference point;
			// nothing to do at their original block position.
			return
		}
		for _, child := range b.FootnoteDefinition.Children {
			r.renderBlock(parent, child, footnotes, depth)
		}

	default:
		// Structurally impossible node: emit an empty paragraph rather
		// than fail (SPEC_FULL.md §4.4 failure semantics).
		r.newParagraph(parent, style.ParaBody, 0)
	}
}

func headingRole(level int) style.ParaRole {
	switch level {
	case 1:
		return style.ParaH1
	case 2:
		return style.ParaH2
	case 3:
		return style.ParaH3
	case 4:
		return style.ParaH4
	case 5:
		return style.ParaH5
	default:
		return style.ParaH6
	}
}

// newParagraph creates one "hp:p" under role, with an "indent" attribute of
// (listDepth + current blockquote depth) * BaseIndentUnits whenever that is
// non-zero, so blockquote indent compounds correctly across every
// paragraph a block produces rather than being patched on after the fact.
func (r *renderer) newParagraph(parent *etree.Element, role style.ParaRole, listDepth int) *etree.Element {
	entry := r.cat.Styles[role]
	p := parent.CreateElement("hp:p")
	p.CreateAttr("id", strconv.Itoa(r.nextParaID()))
	p.CreateAttr("paraShapeIDRef", strconv.Itoa(entry.ParaID))
	p.CreateAttr("styleIDRef", strconv.Itoa(entry.ID))
	if total := listDepth + r.quoteDepth; total > 0 {
		p.CreateAttr("indent", strconv.Itoa(total*r.opts.BaseIndentUnits))
	}
	return p
}

func (r *renderer) renderList(parent *etree.Element, list *markdown.List, footnotes map[string]*markdown.FootnoteDefinition, depth int) {
	for idx, item := range list.Items {
		p := r.newParagraph(parent, style.ParaListItem, depth)

		numberingID := r.cat.BulletNumberingID
		switch {
		case list.Ordered:
			numberingID = r.cat.OrderedNumberingID
			p.CreateAttr("numberStart", strconv.Itoa(list.Start+idx))
		case item.Task == markdown.TaskChecked:
			numberingID = r.cat.TaskCheckedNumberID
		case item.Task == markdown.TaskUnchecked:
			numberingID = r.cat.TaskUncheckedNumberID
		}
		p.CreateAttr("numberingIDRef", strconv.Itoa(numberingID))

		// The item's own inline content lives in its first Paragraph child,
		// if any; remaining children render as nested blocks at depth+1.
		rest := item.Children
		if len(rest) > 0 && rest[0].Kind == markdown.BlockParagraph {
			r.renderInlines(p, rest[0].Paragraph.Inlines, footnotes)
			rest = rest[1:]
		}
		for _, child := range rest {
			r.renderBlock(parent, child, footnotes, depth+1)
		}
	}
}

func (r *renderer) renderCodeBlock(parent *etree.Element, cb *markdown.CodeBlock, depth int) {
	lines := splitLines(cb.Literal)
	for i, line := range lines {
		p := r.newParagraph(parent, style.ParaCodeBlock, depth)
		if i == 0 && cb.Info != "" {
			p.CreateAttr("lang", sanitizeLang(cb.Info))
		}
		run := p.CreateElement("hp:run")
		run.CreateAttr("charShapeIDRef", strconv.Itoa(r.cat.Chars[style.CharInlineCode].ID))
		run.CreateElement("hp:t").CreateText(line)
	}
	// terminating empty paragraph, per SPEC_FULL.md §4.4
	r.newParagraph(parent, style.ParaCodeBlock, depth)
}

func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			out = append(out, s[start:i])
			start = i + 1
		}
	}
	out = append(out, s[start:])
	return out
}
