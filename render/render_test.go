package render_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hwpxmd/markdown"
	"hwpxmd/render"
	"hwpxmd/style"
)

func mustCatalog(t *testing.T) *style.Catalog {
	t.Helper()
	cat, err := style.Resolve("default")
	require.NoError(t, err)
	return cat
}

func mustParse(t *testing.T, src string) *markdown.Document {
	t.Helper()
	doc, _, err := markdown.Parse([]byte(src))
	require.NoError(t, err)
	return doc
}

func TestEmptyInputRendersSingleEmptyParagraph(t *testing.T) {
	doc := mustParse(t, "")
	cat := mustCatalog(t)
	res := render.Render(doc, cat, render.Options{})
	require.Empty(t, res.Warnings)

	sec := res.Section.Root()
	paras := sec.SelectElements("hp:p")
	require.Len(t, paras, 1)
	assert.Empty(t, paras[0].ChildElements())
}

func TestHeadingLevelsProduceDistinctStyleIDs(t *testing.T) {
	doc := mustParse(t, "# A\n## B\n### C\n#### D\n##### E\n###### F\n")
	cat := mustCatalog(t)
	res := render.Render(doc, cat, render.Options{})

	sec := res.Section.Root()
	paras := sec.SelectElements("hp:p")
	require.Len(t, paras, 6)

	roles := []style.ParaRole{style.ParaH1, style.ParaH2, style.ParaH3, style.ParaH4, style.ParaH5, style.ParaH6}
	for i, p := range paras {
		expected := cat.Styles[roles[i]].ID
		assert.Equal(t, itoa(expected), p.SelectAttrValue("styleIDRef", ""))
	}
}

func TestParagraphIDsAreSequential(t *testing.T) {
	doc := mustParse(t, "one\n\ntwo\n\nthree\n")
	cat := mustCatalog(t)
	res := render.Render(doc, cat, render.Options{})

	sec := res.Section.Root()
	paras := sec.SelectElements("hp:p")
	require.Len(t, paras, 3)
	for i, p := range paras {
		assert.Equal(t, itoa(i), p.SelectAttrValue("id", ""))
	}
}

func TestTableProducesExactCellCount(t *testing.T) {
	doc := mustParse(t, "| a | b |\n|:--|--:|\n| 1 | 2 |\n")
	cat := mustCatalog(t)
	res := render.Render(doc, cat, render.Options{})

	sec := res.Section.Root()
	tbl := sec.SelectElement("hp:tbl")
	require.NotNil(t, tbl)

	rows := tbl.SelectElements("hp:tr")
	require.Len(t, rows, 2)
	for _, row := range rows {
		assert.Len(t, row.SelectElements("hp:tc"), 2)
	}
	header := rows[0].SelectElements("hp:tc")
	for _, tc := range header {
		assert.Equal(t, "1", tc.SelectAttrValue("header", ""))
	}
}

func TestTaskListUsesDistinctNumberings(t *testing.T) {
	doc := mustParse(t, "- [x] done\n- [ ] todo\n")
	cat := mustCatalog(t)
	res := render.Render(doc, cat, render.Options{})

	sec := res.Section.Root()
	paras := sec.SelectElements("hp:p")
	require.Len(t, paras, 2)

	assert.Equal(t, itoa(cat.TaskCheckedNumberID), paras[0].SelectAttrValue("numberingIDRef", ""))
	assert.Equal(t, itoa(cat.TaskUncheckedNumberID), paras[1].SelectAttrValue("numberingIDRef", ""))
}

func TestFootnoteReferenceIDMatchesDefinitionID(t *testing.T) {
	doc := mustParse(t, "see[^a].\n\n[^a]: note\n")
	cat := mustCatalog(t)
	res := render.Render(doc, cat, render.Options{})

	sec := res.Section.Root()
	note := sec.FindElement(".//hp:footNote")
	require.NotNil(t, note)
	assert.NotEmpty(t, note.SelectAttrValue("id", ""))
	noteText := note.FindElement(".//hp:t")
	require.NotNil(t, noteText)
	assert.Equal(t, "note", noteText.Text())
}

func TestUnresolvedFootnoteRendersLiteral(t *testing.T) {
	// the unresolved-reference warning comes from the parser; Render itself
	// only reports orphan definitions
	doc, warnings, err := markdown.Parse([]byte("dangling[^ghost] ref\n"))
	require.NoError(t, err)
	require.Len(t, warnings, 1)
	assert.Equal(t, markdown.WarnUnresolvedFootnote, warnings[0].Kind)

	cat := mustCatalog(t)
	res := render.Render(doc, cat, render.Options{})

	sec := res.Section.Root()
	text := sec.FindElement(".//hp:t")
	require.NotNil(t, text)
	found := false
	for _, tNode := range sec.FindElements(".//hp:t") {
		if tNode.Text() == "[^ghost]" {
			found = true
		}
	}
	assert.True(t, found, "unresolved footnote reference should render as literal [^ghost]")
}

func TestOrphanFootnoteDefinitionRendersAsBodyText(t *testing.T) {
	doc := mustParse(t, "body text\n\n[^orphan]: never referenced\n")
	cat := mustCatalog(t)
	res := render.Render(doc, cat, render.Options{})

	require.Len(t, res.Warnings, 1)
	assert.Equal(t, markdown.WarnOrphanFootnoteDefinition, res.Warnings[0].Kind)

	sec := res.Section.Root()
	assert.Nil(t, sec.FindElement(".//hp:footNote"))
	texts := sec.FindElements(".//hp:t")
	found := false
	for _, tNode := range texts {
		if tNode.Text() == "never referenced" {
			found = true
		}
	}
	assert.True(t, found, "orphan footnote definition content should render as plain body text")
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}
