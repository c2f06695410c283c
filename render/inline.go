package render

import (
	"net/url"
	"strconv"

	"github.com/beevik/etree"
	"github.com/gosimple/slug"
	"golang.org/x/net/idna"

	"hwpxmd/markdown"
	"hwpxmd/style"
)

// renderInlines appends one or more "hp:run" children to p for the given
// inline sequence. Consecutive text runs are never merged, per §4.4.
func (r *renderer) renderInlines(p *etree.Element, inlines []markdown.Inline, footnotes map[string]*markdown.FootnoteDefinition) {
	for _, in := range inlines {
		r.renderInline(p, in, style.CharDefault, footnotes)
	}
}

// renderInline emits one inline node as a run (or run group) under role,
// the enclosing character-property role in effect (composed for nested
// emphasis per the capability-union rule below).
func (r *renderer) renderInline(p *etree.Element, in markdown.Inline, role style.CharRole, footnotes map[string]*markdown.FootnoteDefinition) {
	switch in.Kind {
	case markdown.InlineText:
		r.textRun(p, in.Text, role)

	case markdown.InlineSoftBreak:
		r.textRun(p, " ", role)

	case markdown.InlineHardBreak:
		run := p.CreateElement("hp:run")
		run.CreateAttr("charShapeIDRef", strconv.Itoa(r.cat.Chars[role].ID))
		run.CreateElement("hp:lineBreak")

	case markdown.InlineEmphasis:
		composed := composeEmphasis(role, in.Emphasis)
		for _, child := range in.Children {
			r.renderInline(p, child, composed, footnotes)
		}

	case markdown.InlineStrikethrough:
		for _, child := range in.Children {
			r.renderInline(p, child, style.CharStrike, footnotes)
		}

	case markdown.InlineCode:
		r.textRun(p, in.Text, style.CharInlineCode)

	case markdown.InlineLink:
		r.renderLink(p, in, footnotes)

	case markdown.InlineImage:
		r.renderImage(p, in)

	case markdown.InlineFootnoteReference:
		r.renderFootnoteReference(p, in, footnotes)
	}
}

// composeEmphasis unions a nested emphasis kind onto the enclosing role,
// per §4.4 "nested emphasis composes" (italic inside bold -> bold-italic).
func composeEmphasis(outer style.CharRole, kind markdown.EmphasisKind) style.CharRole {
	isBold := outer == style.CharBold || outer == style.CharBoldItalic
	isItalic := outer == style.CharItalic || outer == style.CharBoldItalic
	switch kind {
	case markdown.EmphasisBold:
		isBold = true
	case markdown.EmphasisItalic:
		isItalic = true
	case markdown.EmphasisBoldItalic:
		isBold, isItalic = true, true
	}
	switch {
	case isBold && isItalic:
		return style.CharBoldItalic
	case isBold:
		return style.CharBold
	case isItalic:
		return style.CharItalic
	default:
		return style.CharDefault
	}
}

func (r *renderer) textRun(p *etree.Element, text string, role style.CharRole) {
	run := p.CreateElement("hp:run")
	run.CreateAttr("charShapeIDRef", strconv.Itoa(r.cat.Chars[role].ID))
	run.CreateElement("hp:t").CreateText(text)
}

// renderLink emits a field-begin/field-end pair around the link's display
// text, with the href normalized to punycode when it carries a non-ASCII
// host (§4.4, "titles are recorded as a tooltip attribute").
func (r *renderer) renderLink(p *etree.Element, in markdown.Inline, footnotes map[string]*markdown.FootnoteDefinition) {
	run := p.CreateElement("hp:run")
	run.CreateAttr("charShapeIDRef", strconv.Itoa(r.cat.Chars[style.CharLink].ID))

	field := run.CreateElement("hp:fieldBegin")
	field.CreateAttr("type", "HYPERLINK")
	field.CreateAttr("href", normalizeHref(in.Href))
	if in.Title != "" {
		field.CreateAttr("tooltip", in.Title)
	}

	for _, child := range in.Children {
		r.renderInline(run, child, style.CharLink, footnotes)
	}

	run.CreateElement("hp:fieldEnd")
}

// normalizeHref converts a non-ASCII link/autolink host to punycode; hrefs
// without a parseable host (mailto:, relative paths, fragments) pass through
// unchanged.
func normalizeHref(href string) string {
	u, err := url.Parse(href)
	if err != nil || u.Host == "" {
		return href
	}
	ascii, err := idna.ToASCII(u.Host)
	if err != nil {
		return href
	}
	u.Host = ascii
	return u.String()
}

func (r *renderer) renderImage(p *etree.Element, in markdown.Inline) {
	run := p.CreateElement("hp:run")
	run.CreateAttr("charShapeIDRef", strconv.Itoa(r.cat.Chars[style.CharDefault].ID))

	pic := run.CreateElement("hp:pic")
	id, ok := r.opts.ResolvedImages[in.Src]
	if ok {
		pic.CreateAttr("binaryItemIDRef", strconv.Itoa(id))
	} else {
		pic.CreateAttr("binaryItemIDRef", "0")
	}
	if in.Title != "" {
		pic.CreateAttr("tooltip", in.Title)
	}
	run.CreateElement("hp:t").CreateText(in.Alt)
}

// renderFootnoteReference emits a superscript run carrying a "hp:footNote"
// element with the resolved definition's content, or the literal label text
// when the reference has no matching definition (§4.4).
func (r *renderer) renderFootnoteReference(p *etree.Element, in markdown.Inline, footnotes map[string]*markdown.FootnoteDefinition) {
	def, ok := footnotes[in.Label]
	if !ok {
		r.textRun(p, "[^"+in.Label+"]", style.CharDefault)
		return
	}

	id, seen := r.footnoteIDs[in.Label]
	if !seen {
		id = r.footnoteCounter
		r.footnoteCounter++
		r.footnoteIDs[in.Label] = id
	}

	run := p.CreateElement("hp:run")
	run.CreateAttr("charShapeIDRef", strconv.Itoa(r.cat.Chars[style.CharFootnoteRef].ID))

	note := run.CreateElement("hp:footNote")
	note.CreateAttr("id", strconv.Itoa(id))
	r.renderBlocks(note, def.Children, footnotes, 0)
}

// sanitizeLang normalizes a fenced code block's info-string into a clean
// "lang" attribute token, e.g. " Python 3 " -> "python-3".
func sanitizeLang(info string) string {
	return slug.Make(info)
}
