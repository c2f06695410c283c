package markdown

import "strings"

// parseInline scans one block's raw text (already joined with '\n' between
// its source lines) into a flat list of top-level Inline nodes, per
// SPEC_FULL.md §4.3. line is the 1-based source line the text starts on,
// used only to annotate warnings.
func parseInline(text string, p *parser, line int) []Inline {
	s := &inlineScanner{buf: text, p: p, line: line}
	return s.run(0)
}

// inlineScanner is a byte-position cursor over one block's raw inline text,
// in the same hand-rolled, no-lookahead-library spirit as the block-level
// predicates in scan.go.
type inlineScanner struct {
	buf string
	pos int
	p   *parser
	line int
}

func (s *inlineScanner) peek(off int) byte {
	i := s.pos + off
	if i < 0 || i >= len(s.buf) {
		return 0
	}
	return s.buf[i]
}

func (s *inlineScanner) eof() bool { return s.pos >= len(s.buf) }

// run consumes inline content until end of input, returning the flattened
// node list. depth guards against runaway recursion on pathological input.
func (s *inlineScanner) run(depth int) []Inline {
	var out []Inline
	var text strings.Builder

	flush := func() {
		if text.Len() > 0 {
			out = append(out, Inline{Kind: InlineText, Text: text.String()})
			text.Reset()
		}
	}

	for !s.eof() {
		c := s.peek(0)

		switch {
		case c == '\\' && s.isEscapable(s.peek(1)):
			text.WriteByte(s.peek(1))
			s.pos += 2

		case c == '\\' && s.peek(1) == '\n':
			flush()
			out = append(out, Inline{Kind: InlineHardBreak})
			s.pos += 2

		case c == '\n':
			flush()
			out = append(out, Inline{Kind: InlineSoftBreak})
			s.pos++

		case c == ' ' && s.trailingHardBreak():
			flush()
			out = append(out, Inline{Kind: InlineHardBreak})
			s.skipTrailingSpacesAndNewline()

		case c == '`':
			if lit, ok := s.scanCodeSpan(); ok {
				flush()
				out = append(out, Inline{Kind: InlineCode, Text: lit})
			} else {
				text.WriteByte(c)
				s.pos++
			}

		case c == '~' && s.peek(1) == '~':
			if inner, ok := s.scanDelimited("~~", depth); ok {
				flush()
				out = append(out, Inline{Kind: InlineStrikethrough, Children: inner})
			} else {
				text.WriteByte(c)
				s.pos++
			}

		case c == '*' || c == '_':
			if node, ok := s.scanEmphasis(c, depth); ok {
				flush()
				out = append(out, node)
			} else {
				text.WriteByte(c)
				s.pos++
			}

		case c == '!' && s.peek(1) == '[':
			if node, ok := s.scanImage(depth); ok {
				flush()
				out = append(out, node)
			} else {
				text.WriteByte(c)
				s.pos++
			}

		case c == '[':
			if node, ok := s.scanFootnoteRef(); ok {
				flush()
				out = append(out, node)
			} else if node, ok := s.scanLink(depth); ok {
				flush()
				out = append(out, node)
			} else {
				text.WriteByte(c)
				s.pos++
			}

		case c == '<':
			if node, ok := s.scanAutolink(); ok {
				flush()
				out = append(out, node)
			} else {
				text.WriteByte(c)
				s.pos++
			}

		default:
			text.WriteByte(c)
			s.pos++
		}
	}
	flush()
	return out
}

func (s *inlineScanner) isEscapable(c byte) bool {
	return strings.IndexByte("\\`*_{}[]()#+-.!~<>|\"'", c) >= 0
}

// trailingHardBreak reports whether the cursor sits on a run of >= 2 spaces
// immediately followed by a newline (CommonMark's space-based hard break).
func (s *inlineScanner) trailingHardBreak() bool {
	i := 0
	for s.peek(i) == ' ' {
		i++
	}
	return i >= 2 && s.peek(i) == '\n'
}

func (s *inlineScanner) skipTrailingSpacesAndNewline() {
	for s.peek(0) == ' ' {
		s.pos++
	}
	if s.peek(0) == '\n' {
		s.pos++
	}
}

// scanCodeSpan consumes a backtick-delimited code span using a run of N
// backticks as both opener and required closer, per CommonMark's code-span
// rule.
func (s *inlineScanner) scanCodeSpan() (string, bool) {
	start := s.pos
	n := 0
	for s.peek(n) == '`' {
		n++
	}
	openEnd := start + n
	rest := s.buf[openEnd:]

	search := 0
	for {
		idx := strings.IndexByte(rest[search:], '`')
		if idx < 0 {
			s.pos = start
			return "", false
		}
		closeStart := search + idx
		run := 0
		for closeStart+run < len(rest) && rest[closeStart+run] == '`' {
			run++
		}
		if run == n {
			content := rest[:closeStart]
			s.pos = openEnd + closeStart + run
			content = strings.ReplaceAll(content, "\n", " ")
			if strings.HasPrefix(content, " ") && strings.HasSuffix(content, " ") && strings.TrimSpace(content) != "" {
				content = content[1 : len(content)-1]
			}
			return content, true
		}
		search = closeStart + run
	}
}

// scanDelimited consumes text up to a literal closing marker, recursively
// parsing the interior as inline content. Used for strikethrough.
func (s *inlineScanner) scanDelimited(marker string, depth int) ([]Inline, bool) {
	if depth > 16 {
		return nil, false
	}
	start := s.pos
	openEnd := start + len(marker)
	idx := strings.Index(s.buf[openEnd:], marker)
	if idx < 0 {
		s.pos = start
		return nil, false
	}
	inner := s.buf[openEnd : openEnd+idx]
	s.pos = openEnd + idx + len(marker)

	sub := &inlineScanner{buf: inner, p: s.p, line: s.line}
	return sub.run(depth + 1), true
}

// scanEmphasis consumes a run of '*'/'_' delimiters and the matching close,
// composing single/double markers into EmphasisItalic/Bold/BoldItalic per
// SPEC_FULL.md §4.4.
func (s *inlineScanner) scanEmphasis(c byte, depth int) (Inline, bool) {
	if depth > 16 {
		return Inline{}, false
	}
	start := s.pos
	n := 0
	for s.peek(n) == c {
		n++
	}
	if n > 3 {
		n = 3
	}
	marker := strings.Repeat(string(c), n)
	openEnd := start + n
	rest := s.buf[openEnd:]

	idx := strings.Index(rest, marker)
	for idx > 0 && rest[idx-1] == ' ' {
		next := strings.Index(rest[idx+len(marker):], marker)
		if next < 0 {
			idx = -1
			break
		}
		idx = idx + len(marker) + next
	}
	if idx < 0 {
		s.pos = start
		return Inline{}, false
	}

	inner := rest[:idx]
	s.pos = openEnd + idx + len(marker)

	kind := EmphasisItalic
	switch n {
	case 2:
		kind = EmphasisBold
	case 3:
		kind = EmphasisBoldItalic
	}

	sub := &inlineScanner{buf: inner, p: s.p, line: s.line}
	return Inline{Kind: InlineEmphasis, Emphasis: kind, Children: sub.run(depth + 1)}, true
}

// scanLink consumes "[text](href \"title\")". Bracket/paren nesting inside
// text or href is not supported: link destinations are a single balanced
// run (SPEC_FULL.md §4.3).
func (s *inlineScanner) scanLink(depth int) (Inline, bool) {
	if depth > 16 || s.peek(0) != '[' {
		return Inline{}, false
	}
	start := s.pos
	closeBrk := strings.IndexByte(s.buf[start:], ']')
	if closeBrk < 0 {
		return Inline{}, false
	}
	textStart := start + 1
	textEnd := start + closeBrk
	after := textEnd + 1
	if after >= len(s.buf) || s.buf[after] != '(' {
		s.pos = start
		return Inline{}, false
	}
	closeParen := strings.IndexByte(s.buf[after:], ')')
	if closeParen < 0 {
		s.pos = start
		return Inline{}, false
	}
	dest := s.buf[after+1 : after+closeParen]
	s.pos = after + closeParen + 1

	href, title := splitDestTitle(dest)
	sub := &inlineScanner{buf: s.buf[textStart:textEnd], p: s.p, line: s.line}
	return Inline{Kind: InlineLink, Href: href, Title: title, Children: sub.run(depth + 1)}, true
}

func (s *inlineScanner) scanImage(depth int) (Inline, bool) {
	start := s.pos
	s.pos++ // consume '!'
	link, ok := s.scanLink(depth)
	if !ok {
		s.pos = start
		return Inline{}, false
	}
	return Inline{Kind: InlineImage, Src: link.Href, Title: link.Title, Alt: plainText(link.Children)}, true
}

func (s *inlineScanner) scanFootnoteRef() (Inline, bool) {
	if s.peek(0) != '[' || s.peek(1) != '^' {
		return Inline{}, false
	}
	start := s.pos
	closeBrk := strings.IndexByte(s.buf[start:], ']')
	if closeBrk < 0 {
		return Inline{}, false
	}
	label := s.buf[start+2 : start+closeBrk]
	if label == "" {
		return Inline{}, false
	}
	s.pos = start + closeBrk + 1
	s.p.refs = append(s.p.refs, footnoteRef{label: label, line: s.line})
	return Inline{Kind: InlineFootnoteReference, Label: label}, true
}

// scanAutolink consumes "<scheme:...>" form autolinks.
func (s *inlineScanner) scanAutolink() (Inline, bool) {
	start := s.pos
	closeAngle := strings.IndexByte(s.buf[start:], '>')
	if closeAngle < 0 {
		return Inline{}, false
	}
	inner := s.buf[start+1 : start+closeAngle]
	if !looksLikeAutolinkURL(inner) {
		return Inline{}, false
	}
	s.pos = start + closeAngle + 1
	return Inline{Kind: InlineLink, Href: inner, Children: []Inline{{Kind: InlineText, Text: inner}}}, true
}

func looksLikeAutolinkURL(s string) bool {
	if strings.ContainsAny(s, " \t\n<>") {
		return false
	}
	colon := strings.IndexByte(s, ':')
	if colon < 1 {
		return false
	}
	scheme := s[:colon]
	for i := 0; i < len(scheme); i++ {
		c := scheme[i]
		if i == 0 {
			if !isAlpha(c) {
				return false
			}
			continue
		}
		if !isAlpha(c) && !(c >= '0' && c <= '9') && c != '+' && c != '-' && c != '.' {
			return false
		}
	}
	return colon+1 < len(s)
}

func isAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// splitDestTitle separates "href \"title\"" into its two parts.
func splitDestTitle(dest string) (href, title string) {
	dest = strings.TrimSpace(dest)
	if i := strings.IndexByte(dest, ' '); i >= 0 {
		href = strings.TrimSpace(dest[:i])
		rest := strings.TrimSpace(dest[i+1:])
		rest = strings.Trim(rest, `"'`)
		return href, rest
	}
	return dest, ""
}

func plainText(nodes []Inline) string {
	var sb strings.Builder
	for _, n := range nodes {
		switch n.Kind {
		case InlineText, InlineCode:
			sb.WriteString(n.Text)
		default:
			sb.WriteString(plainText(n.Children))
		}
	}
	return sb.String()
}
