package markdown

import "strings"

// parser walks a slice of already-normalized source lines and builds the
// Document AST. It never errors: every malformed construct it meets falls
// back to a documented recovery and an entry in warnings (SPEC_FULL.md §7).
type parser struct {
	warnings  []Warning
	footnotes map[string]*FootnoteDefinition
	refs      []footnoteRef // checked against footnotes once parsing ends
}

type footnoteRef struct {
	label string
	line  int
}

// Parse tokenizes and parses Markdown source into a Document AST, per
// SPEC_FULL.md §4.2. It performs no I/O and is deterministic: identical
// input always yields an identical Document.
func Parse(src []byte) (*Document, []Warning, error) {
	text, err := normalize(src)
	if err != nil {
		return nil, nil, err
	}

	p := &parser{footnotes: make(map[string]*FootnoteDefinition)}

	if strings.TrimSpace(text) == "" {
		return &Document{
			Blocks:    []Block{{Kind: BlockParagraph, Paragraph: &Paragraph{}}},
			Footnotes: p.footnotes,
		}, p.warnings, nil
	}

	lines := strings.Split(text, "\n")
	// A trailing empty element corresponds to the final '\n', not a blank
	// source line; drop it so it doesn't register as an extra blank line.
	if len(lines) > 1 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	blocks := p.parseBlocks(lines, 1)
	for _, ref := range p.refs {
		if _, ok := p.footnotes[ref.label]; !ok {
			p.warn(WarnUnresolvedFootnote, ref.line, "footnote reference ["+ref.label+"] has no matching definition")
		}
	}
	return &Document{Blocks: blocks, Footnotes: p.footnotes}, p.warnings, nil
}

func (p *parser) warn(kind WarningKind, line int, msg string) {
	p.warnings = append(p.warnings, Warning{Kind: kind, Line: line, Message: msg})
}

// parseBlocks consumes lines (a container's content window; baseLine is the
// 1-based source line number of lines[0], used only for warning messages)
// and returns the Blocks found in it.
func (p *parser) parseBlocks(lines []string, baseLine int) []Block {
	var blocks []Block
	i := 0
	n := len(lines)

	for i < n {
		line := lines[i]
		if isBlank(line) {
			i++
			continue
		}
		indent := leadingSpaces(line)

		switch {
		case indent < 4 && isThematicBreak(line) && !isSetextContext(blocks):
			blocks = append(blocks, Block{Kind: BlockThematicBreak, ThematicBreak: &ThematicBreak{}})
			i++

		case indent < 4 && atxOK(line):
			level, text, _ := atxHeading(line)
			blocks = append(blocks, Block{Kind: BlockHeading, Heading: &Heading{
				Level:   level,
				Inlines: parseInline(text, p, baseLine+i),
			}})
			i++

		case indent < 4 && fenceOK(line):
			ch, flen, info, _ := fenceOpen(line)
			var lit []string
			j := i + 1
			closed := false
			for j < n {
				if fenceClose(lines[j], ch, flen) {
					closed = true
					j++
					break
				}
				lit = append(lit, lines[j])
				j++
			}
			if !closed {
				p.warn(WarnUnterminatedCodeFence, baseLine+i, "fenced code block runs to end of input")
			}
			blocks = append(blocks, Block{Kind: BlockCodeBlock, CodeBlock: &CodeBlock{
				Info:    info,
				Literal: strings.Join(lit, "\n"),
			}})
			i = j

		case indent >= 4:
			var lit []string
			j := i
			for j < n && (leadingSpaces(lines[j]) >= 4 || isBlank(lines[j])) {
				if isBlank(lines[j]) {
					lit = append(lit, "")
				} else {
					lit = append(lit, lines[j][4:])
				}
				j++
			}
			for len(lit) > 0 && lit[len(lit)-1] == "" {
				lit = lit[:len(lit)-1]
			}
			blocks = append(blocks, Block{Kind: BlockCodeBlock, CodeBlock: &CodeBlock{
				Literal: strings.Join(lit, "\n"),
			}})
			i = j

		case indent < 4 && isBlockquoteLine(line):
			var content []string
			j := i
			for j < n && (isBlockquoteLine(lines[j]) || (!isBlank(lines[j]) && leadingSpaces(lines[j]) < 4 && j > i && isLazyContinuation(lines[j]))) {
				if isBlockquoteLine(lines[j]) {
					content = append(content, stripBlockquoteMarker(lines[j]))
				} else {
					content = append(content, lines[j])
				}
				j++
			}
			blocks = append(blocks, Block{Kind: BlockQuote, BlockQuote: &BlockQuoteNode{
				Children: p.parseBlocks(content, baseLine+i),
			}})
			i = j

		case indent < 4 && footnoteDefOK(line):
			label, rest, _ := footnoteDefStart(line)
			var content []string
			if rest != "" {
				content = append(content, rest)
			}
			j := i + 1
			for j < n && (leadingSpaces(lines[j]) >= 4 || isBlank(lines[j])) {
				if isBlank(lines[j]) {
					content = append(content, "")
				} else {
					content = append(content, lines[j][min(4, leadingSpaces(lines[j])):])
				}
				j++
			}
			def := &FootnoteDefinition{Label: label, Children: p.parseBlocks(content, baseLine+i)}
			blocks = append(blocks, Block{Kind: BlockFootnoteDefinition, FootnoteDefinition: def})
			if _, dup := p.footnotes[label]; !dup {
				p.footnotes[label] = def
			}
			i = j

		case indent < 4 && looksLikeTableRow(line) && i+1 < n && !isBlank(lines[i+1]):
			aligns, ok := tableAlignmentRow(lines[i+1])
			if !ok {
				// malformed alignment row: emit header + align lines as paragraphs
				blocks = append(blocks, p.paragraphBlock([]string{line}, baseLine+i))
				i++
				continue
			}
			header := splitTableRow(line)
			headerCells := make([][]Inline, len(aligns))
			for ci := range aligns {
				var text string
				if ci < len(header) {
					text = header[ci]
				}
				headerCells[ci] = parseInline(strings.TrimSpace(text), p, baseLine+i)
			}
			j := i + 2
			var body []TableRow
			for j < n && !isBlank(lines[j]) && looksLikeTableRow(lines[j]) {
				raw := splitTableRow(lines[j])
				row := make([][]Inline, len(aligns))
				for ci := range aligns {
					var text string
					if ci < len(raw) {
						text = raw[ci]
					}
					row[ci] = parseInline(strings.TrimSpace(text), p, baseLine+j)
				}
				body = append(body, TableRow{Cells: row})
				j++
			}
			blocks = append(blocks, Block{Kind: BlockTable, Table: &Table{
				Alignments: aligns,
				Header:     TableRow{Cells: headerCells},
				Body:       body,
			}})
			i = j

		case indent < 4 && isBulletStart(line):
			list, next := p.parseList(lines, i, baseLine, false)
			blocks = append(blocks, Block{Kind: BlockBulletList, List: list})
			i = next

		case indent < 4 && isOrderedStart(line):
			list, next := p.parseList(lines, i, baseLine, true)
			blocks = append(blocks, Block{Kind: BlockOrderedList, List: list})
			i = next

		default:
			para, next := p.parseParagraphOrSetext(lines, i, baseLine)
			blocks = append(blocks, para)
			i = next
		}
	}
	return blocks
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func atxOK(line string) bool    { _, _, ok := atxHeading(line); return ok }
func fenceOK(line string) bool  { _, _, _, ok := fenceOpen(line); return ok }
func footnoteDefOK(line string) bool {
	_, _, ok := footnoteDefStart(line)
	return ok
}
func isBulletStart(line string) bool   { _, _, ok := bulletMarker(line); return ok }
func isOrderedStart(line string) bool  { _, _, _, ok := orderedMarker(line); return ok }
func isAlignmentRow(line string) bool  { _, ok := tableAlignmentRow(line); return ok }
func isSetextContext(_ []Block) bool   { return false }
func isLazyContinuation(line string) bool {
	// a non-blank, non-indented line immediately following a blockquote
	// line is treated as a lazy continuation of that blockquote paragraph,
	// unless it starts a new block construct of its own.
	if atxOK(line) || fenceOK(line) || isThematicBreak(line) {
		return false
	}
	if isBulletStart(line) || isOrderedStart(line) {
		return false
	}
	return true
}

// paragraphBlock builds a plain paragraph block from raw lines (used for
// fallback recovery, e.g. malformed table rows).
func (p *parser) paragraphBlock(lines []string, baseLine int) Block {
	text := strings.Join(lines, "\n")
	return Block{Kind: BlockParagraph, Paragraph: &Paragraph{Inlines: parseInline(text, p, baseLine)}}
}

// parseParagraphOrSetext accumulates contiguous plain-text lines starting at
// i into a paragraph, honoring the interruption rules for other block
// constructs, and promotes the paragraph to a Heading if it is immediately
// followed by a setext underline.
func (p *parser) parseParagraphOrSetext(lines []string, i, baseLine int) (Block, int) {
	n := len(lines)
	var collected []string
	j := i
	for j < n {
		line := lines[j]
		if isBlank(line) {
			break
		}
		if j > i {
			indent := leadingSpaces(line)
			if lvl, ok := setextUnderline(line); ok && lvl > 0 && indent < 4 {
				break
			}
			if indent < 4 && (atxOK(line) || isThematicBreak(line) || fenceOK(line) ||
				isBlockquoteLine(line) || isBulletStart(line) || isOrderedStart(line) || footnoteDefOK(line)) {
				break
			}
		}
		collected = append(collected, strings.TrimRight(line, " "))
		j++
	}

	if j < n {
		if lvl, ok := setextUnderline(lines[j]); ok && lvl > 0 && len(collected) > 0 {
			text := strings.Join(collected, "\n")
			return Block{Kind: BlockHeading, Heading: &Heading{
				Level:   lvl,
				Inlines: parseInline(text, p, baseLine+i),
			}}, j + 1
		}
	}

	text := strings.Join(collected, "\n")
	return Block{Kind: BlockParagraph, Paragraph: &Paragraph{
		Inlines: parseInline(text, p, baseLine+i),
	}}, j
}

// parseList consumes a run of list items of one kind (bullet or ordered)
// starting at line i, including nested content indented to each item's
// content column, and blank-line-tolerant gaps between items.
func (p *parser) parseList(lines []string, i, baseLine int, ordered bool) (*List, int) {
	n := len(lines)
	list := &List{Ordered: ordered, Start: 1}
	first := true

	for i < n {
		if isBlank(lines[i]) {
			// look ahead past blank lines for another item of this list
			j := i
			for j < n && isBlank(lines[j]) {
				j++
			}
			if j >= n || !sameMarkerKind(lines[j], ordered) {
				break
			}
			i = j
		}

		var markerWidth, start int
		var content string
		if ordered {
			s, mw, c, ok := orderedMarker(lines[i])
			if !ok {
				break
			}
			start, markerWidth, content = s, mw, c
		} else {
			mw, c, ok := bulletMarker(lines[i])
			if !ok {
				break
			}
			markerWidth, content = mw, c
		}
		if first && ordered {
			list.Start = start
		}
		first = false

		task, content := taskMarker(content)
		if ordered {
			task = TaskNone
		}

		itemLines := []string{content}
		j := i + 1
		for j < n {
			if isBlank(lines[j]) {
				// a blank line continues the item only if followed by an
				// indented continuation line
				if j+1 < n && (leadingSpaces(lines[j+1]) >= markerWidth) && !isBlank(lines[j+1]) {
					itemLines = append(itemLines, "")
					j++
					continue
				}
				break
			}
			if leadingSpaces(lines[j]) >= markerWidth {
				itemLines = append(itemLines, lines[j][markerWidth:])
				j++
				continue
			}
			break
		}

		list.Items = append(list.Items, ListItem{
			Task:     task,
			Children: p.parseBlocks(itemLines, baseLine+i),
		})
		i = j
	}
	return list, i
}

func sameMarkerKind(line string, ordered bool) bool {
	if ordered {
		return isOrderedStart(line)
	}
	return isBulletStart(line)
}
