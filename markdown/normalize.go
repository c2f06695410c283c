package markdown

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

const tabWidth = 4

// normalize strips a UTF-8 BOM, validates the remaining bytes as UTF-8,
// normalizes CRLF/CR line endings to LF, and expands tabs to spaces ahead of
// indentation analysis (SPEC_FULL.md §4.2).
func normalize(src []byte) (string, error) {
	// checked on the raw bytes: the UTF-8 decoder below replaces invalid
	// sequences with U+FFFD instead of failing
	if !utf8.Valid(src) {
		return "", errEncoding("input is not valid UTF-8")
	}
	stripBOM := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	out, _, err := transform.Bytes(stripBOM, src)
	if err != nil {
		return "", errEncoding("failed to decode input: " + err.Error())
	}

	s := string(out)
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")

	var sb strings.Builder
	sb.Grow(len(s))
	col := 0
	for _, r := range s {
		switch r {
		case '\t':
			spaces := tabWidth - (col % tabWidth)
			for i := 0; i < spaces; i++ {
				sb.WriteByte(' ')
			}
			col += spaces
		case '\n':
			sb.WriteByte('\n')
			col = 0
		default:
			sb.WriteRune(r)
			col++
		}
	}
	return sb.String(), nil
}
