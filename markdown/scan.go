package markdown

import "strings"

// Small line-classification helpers shared by the block parser. Each
// predicate operates on one already tab-expanded, CRLF-normalized line.

func isBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}

func leadingSpaces(line string) int {
	n := 0
	for n < len(line) && line[n] == ' ' {
		n++
	}
	return n
}

// isThematicBreak matches a line of >= 3 '-', '*' or '_' (spaces allowed
// between them, nothing else on the line).
func isThematicBreak(line string) bool {
	s := strings.TrimSpace(line)
	if len(s) < 3 {
		return false
	}
	var marker byte
	count := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == ' ' {
			continue
		}
		if c != '-' && c != '*' && c != '_' {
			return false
		}
		if marker == 0 {
			marker = c
		} else if c != marker {
			return false
		}
		count++
	}
	return count >= 3
}

// atxHeading recognizes "#".."######" at column 0 (no leading indent),
// stripping a trailing run of '#'. Level 7+ ("#######...") is explicitly not
// a heading per SPEC_FULL.md §3.
func atxHeading(line string) (level int, text string, ok bool) {
	s := line
	i := 0
	for i < len(s) && s[i] == '#' {
		i++
	}
	if i == 0 || i > 6 {
		return 0, "", false
	}
	if i < len(s) && s[i] != ' ' && s[i] != '\t' {
		// "#foo" is not a heading
		return 0, "", false
	}
	rest := strings.TrimLeft(s[i:], " \t")
	rest = strings.TrimRight(rest, " \t")
	rest = strings.TrimRight(rest, "#")
	rest = strings.TrimRight(rest, " \t")
	return i, rest, true
}

// setextUnderline matches a line consisting solely of '=' (level 1) or '-'
// (level 2) characters.
func setextUnderline(line string) (level int, ok bool) {
	s := strings.TrimSpace(line)
	if s == "" {
		return 0, false
	}
	allEq, allDash := true, true
	for i := 0; i < len(s); i++ {
		if s[i] != '=' {
			allEq = false
		}
		if s[i] != '-' {
			allDash = false
		}
	}
	if allEq {
		return 1, true
	}
	if allDash {
		return 2, true
	}
	return 0, false
}

// fenceOpen recognizes a fenced code block opener: a run of >= 3 backticks
// or tildes, followed by an optional info-string.
func fenceOpen(line string) (ch byte, length int, info string, ok bool) {
	s := line
	if len(s) == 0 {
		return 0, 0, "", false
	}
	c := s[0]
	if c != '`' && c != '~' {
		return 0, 0, "", false
	}
	n := 0
	for n < len(s) && s[n] == c {
		n++
	}
	if n < 3 {
		return 0, 0, "", false
	}
	return c, n, strings.TrimSpace(s[n:]), true
}

func fenceClose(line string, ch byte, minLen int) bool {
	s := strings.TrimSpace(line)
	if s == "" {
		return false
	}
	n := 0
	for n < len(s) && s[n] == ch {
		n++
	}
	return n >= minLen && n == len(s)
}

func isBlockquoteLine(line string) bool {
	s := strings.TrimLeft(line, " ")
	return strings.HasPrefix(s, ">") && leadingSpaces(line) < 4
}

// stripBlockquoteMarker removes one level of "> " (or ">") prefix.
func stripBlockquoteMarker(line string) string {
	s := strings.TrimLeft(line, " ")
	s = s[1:] // drop '>'
	if strings.HasPrefix(s, " ") {
		s = s[1:]
	}
	return s
}

// footnoteDefStart recognizes "[^label]:" at line start, after at most three
// spaces of indent.
func footnoteDefStart(line string) (label, rest string, ok bool) {
	if leadingSpaces(line) >= 4 {
		return "", "", false
	}
	s := strings.TrimLeft(line, " ")
	if !strings.HasPrefix(s, "[^") {
		return "", "", false
	}
	end := strings.IndexByte(s, ']')
	if end < 0 || end <= 2 {
		return "", "", false
	}
	label = s[2:end]
	if end+1 >= len(s) || s[end+1] != ':' {
		return "", "", false
	}
	rest = strings.TrimLeft(s[end+2:], " ")
	return label, rest, true
}

// bulletMarker recognizes "-", "*", "+" bullet markers.
func bulletMarker(line string) (markerWidth int, content string, ok bool) {
	s := line
	indent := leadingSpaces(s)
	if indent >= 4 {
		return 0, "", false
	}
	rest := s[indent:]
	if len(rest) == 0 {
		return 0, "", false
	}
	c := rest[0]
	if c != '-' && c != '*' && c != '+' {
		return 0, "", false
	}
	if len(rest) < 2 || (rest[1] != ' ' && rest[1] != '\t') {
		// bare "-" is ambiguous with thematic break; treat as not a list
		// marker unless followed by a space and content, or the item is
		// genuinely empty ("- " alone).
		if len(rest) == 1 {
			return 0, "", false
		}
		return 0, "", false
	}
	after := strings.TrimLeft(rest[1:], " \t")
	consumed := len(rest) - len(after)
	return indent + 1 + consumed, after, true
}

// orderedMarker recognizes "N." or "N)" ordered markers.
func orderedMarker(line string) (start, markerWidth int, content string, ok bool) {
	s := line
	indent := leadingSpaces(s)
	if indent >= 4 {
		return 0, 0, "", false
	}
	rest := s[indent:]
	i := 0
	for i < len(rest) && rest[i] >= '0' && rest[i] <= '9' {
		i++
	}
	if i == 0 || i > 9 {
		return 0, 0, "", false
	}
	if i >= len(rest) || (rest[i] != '.' && rest[i] != ')') {
		return 0, 0, "", false
	}
	num := 0
	for _, c := range rest[:i] {
		num = num*10 + int(c-'0')
	}
	rem := rest[i+1:]
	if len(rem) > 0 && rem[0] != ' ' && rem[0] != '\t' {
		return 0, 0, "", false
	}
	after := strings.TrimLeft(rem, " \t")
	consumed := len(rem) - len(after)
	return num, indent + i + 1 + consumed, after, true
}

func taskMarker(content string) (state TaskState, rest string) {
	lower := strings.ToLower(content)
	switch {
	case strings.HasPrefix(lower, "[x] "), strings.HasPrefix(lower, "[x]\t"):
		return TaskChecked, strings.TrimLeft(content[3:], " \t")
	case strings.HasPrefix(lower, "[ ] "), strings.HasPrefix(lower, "[ ]\t"):
		return TaskUnchecked, strings.TrimLeft(content[3:], " \t")
	default:
		return TaskNone, content
	}
}

// tableAlignmentRow parses a GFM alignment row ("|:--|--:|" etc). Returns
// ok=false if any cell is not a valid alignment spec.
func tableAlignmentRow(line string) ([]Alignment, bool) {
	cells := splitTableRow(line)
	if len(cells) == 0 {
		return nil, false
	}
	aligns := make([]Alignment, len(cells))
	for i, cell := range cells {
		c := strings.TrimSpace(cell)
		if c == "" {
			return nil, false
		}
		left := strings.HasPrefix(c, ":")
		right := strings.HasSuffix(c, ":")
		dashes := strings.Trim(c, ":")
		if strings.Trim(dashes, "-") != "" || dashes == "" {
			return nil, false
		}
		switch {
		case left && right:
			aligns[i] = AlignCenter
		case left:
			aligns[i] = AlignLeft
		case right:
			aligns[i] = AlignRight
		default:
			aligns[i] = AlignDefault
		}
	}
	return aligns, true
}

// splitTableRow splits a pipe-delimited row, honoring optional leading and
// trailing pipes and ignoring escaped pipes ("\|").
func splitTableRow(line string) []string {
	s := strings.TrimSpace(line)
	s = strings.TrimPrefix(s, "|")
	s = strings.TrimSuffix(s, "|")

	var cells []string
	var cur strings.Builder
	escaped := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if escaped {
			cur.WriteByte(c)
			escaped = false
			continue
		}
		if c == '\\' {
			escaped = true
			cur.WriteByte(c)
			continue
		}
		if c == '|' {
			cells = append(cells, cur.String())
			cur.Reset()
			continue
		}
		cur.WriteByte(c)
	}
	cells = append(cells, cur.String())
	return cells
}

func looksLikeTableRow(line string) bool {
	return strings.Contains(line, "|")
}
