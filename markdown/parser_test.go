package markdown_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hwpxmd/markdown"
)

func mustParse(t *testing.T, src string) (*markdown.Document, []markdown.Warning) {
	t.Helper()
	doc, warnings, err := markdown.Parse([]byte(src))
	require.NoError(t, err)
	return doc, warnings
}

func TestParseEmptyInputYieldsSingleEmptyParagraph(t *testing.T) {
	doc, warnings := mustParse(t, "")
	require.Empty(t, warnings)
	require.Len(t, doc.Blocks, 1)
	assert.Equal(t, markdown.BlockParagraph, doc.Blocks[0].Kind)
	assert.Empty(t, doc.Blocks[0].Paragraph.Inlines)
}

func TestParseATXHeadingLevels(t *testing.T) {
	doc, _ := mustParse(t, "# A\n## B\n###### F\n")
	require.Len(t, doc.Blocks, 3)
	assert.Equal(t, 1, doc.Blocks[0].Heading.Level)
	assert.Equal(t, 2, doc.Blocks[1].Heading.Level)
	assert.Equal(t, 6, doc.Blocks[2].Heading.Level)
}

func TestParseSetextHeadingsPromoteParagraph(t *testing.T) {
	doc, _ := mustParse(t, "Title\n=====\n\nSubtitle\n--------\n")
	require.Len(t, doc.Blocks, 2)
	require.Equal(t, markdown.BlockHeading, doc.Blocks[0].Kind)
	assert.Equal(t, 1, doc.Blocks[0].Heading.Level)
	require.Equal(t, markdown.BlockHeading, doc.Blocks[1].Kind)
	assert.Equal(t, 2, doc.Blocks[1].Heading.Level)
}

func TestParseThematicBreak(t *testing.T) {
	doc, _ := mustParse(t, "above\n\n---\n\nbelow\n")
	require.Len(t, doc.Blocks, 3)
	assert.Equal(t, markdown.BlockThematicBreak, doc.Blocks[1].Kind)
}

func TestParseFencedCodeBlockCapturesInfoAndLiteral(t *testing.T) {
	doc, warnings := mustParse(t, "```go\nfunc f() {}\n```\n")
	require.Empty(t, warnings)
	require.Len(t, doc.Blocks, 1)
	cb := doc.Blocks[0].CodeBlock
	assert.Equal(t, "go", cb.Info)
	assert.Equal(t, "func f() {}", cb.Literal)
}

func TestParseUnterminatedFenceWarns(t *testing.T) {
	doc, warnings := mustParse(t, "```go\nfunc f() {}\n")
	require.Len(t, doc.Blocks, 1)
	require.Len(t, warnings, 1)
	assert.Equal(t, markdown.WarnUnterminatedCodeFence, warnings[0].Kind)
}

func TestParseIndentedCodeBlock(t *testing.T) {
	doc, _ := mustParse(t, "    line one\n    line two\n")
	require.Len(t, doc.Blocks, 1)
	assert.Equal(t, "line one\nline two", doc.Blocks[0].CodeBlock.Literal)
}

func TestParseBlockquoteNested(t *testing.T) {
	doc, _ := mustParse(t, "> outer\n> > inner\n")
	require.Len(t, doc.Blocks, 1)
	bq := doc.Blocks[0].BlockQuote
	require.Len(t, bq.Children, 2)
	assert.Equal(t, markdown.BlockParagraph, bq.Children[0].Kind)
	require.Equal(t, markdown.BlockQuote, bq.Children[1].Kind)
	require.Len(t, bq.Children[1].BlockQuote.Children, 1)
}

func TestParseBulletList(t *testing.T) {
	doc, _ := mustParse(t, "- one\n- two\n- three\n")
	require.Len(t, doc.Blocks, 1)
	list := doc.Blocks[0].List
	assert.False(t, list.Ordered)
	assert.Len(t, list.Items, 3)
}

func TestParseOrderedListStartNumber(t *testing.T) {
	doc, _ := mustParse(t, "5. five\n6. six\n")
	list := doc.Blocks[0].List
	assert.True(t, list.Ordered)
	assert.Equal(t, 5, list.Start)
	assert.Len(t, list.Items, 2)
}

func TestParseTaskListItems(t *testing.T) {
	doc, _ := mustParse(t, "- [ ] todo\n- [x] done\n")
	list := doc.Blocks[0].List
	require.Len(t, list.Items, 2)
	assert.Equal(t, markdown.TaskUnchecked, list.Items[0].Task)
	assert.Equal(t, markdown.TaskChecked, list.Items[1].Task)
}

func TestParseTableWithAlignments(t *testing.T) {
	src := "| A | B |\n| :-- | --: |\n| 1 | 2 |\n"
	doc, _ := mustParse(t, src)
	require.Len(t, doc.Blocks, 1)
	tbl := doc.Blocks[0].Table
	require.Len(t, tbl.Alignments, 2)
	assert.Equal(t, markdown.AlignLeft, tbl.Alignments[0])
	assert.Equal(t, markdown.AlignRight, tbl.Alignments[1])
	require.Len(t, tbl.Body, 1)
}

func TestParseMalformedTableFallsBackToParagraph(t *testing.T) {
	doc, _ := mustParse(t, "| A | B |\nnot an alignment row\n")
	require.Len(t, doc.Blocks, 2)
	assert.Equal(t, markdown.BlockParagraph, doc.Blocks[0].Kind)
}

func TestParseFootnoteDefinitionAndReference(t *testing.T) {
	doc, warnings := mustParse(t, "see[^a].\n\n[^a]: note text\n")
	require.Empty(t, warnings)
	require.Contains(t, doc.Footnotes, "a")
	assert.Equal(t, "note text", plainTextOfFirstParagraph(t, doc.Footnotes["a"].Children))
}

func TestParseUnresolvedFootnoteReferenceWarns(t *testing.T) {
	_, warnings := mustParse(t, "see[^missing].\n")
	require.Len(t, warnings, 1)
	assert.Equal(t, markdown.WarnUnresolvedFootnote, warnings[0].Kind)
}

func TestParseOrphanFootnoteDefinitionIsKeptButNotWarnedAtParseTime(t *testing.T) {
	doc, warnings := mustParse(t, "[^orphan]: never referenced\n")
	assert.Contains(t, doc.Footnotes, "orphan")
	assert.Empty(t, warnings)
}

func TestParseEmphasisComposition(t *testing.T) {
	doc, _ := mustParse(t, "*i* **b** ***bi***\n")
	inlines := doc.Blocks[0].Paragraph.Inlines
	var found []markdown.EmphasisKind
	for _, n := range inlines {
		if n.Kind == markdown.InlineEmphasis {
			found = append(found, n.Emphasis)
		}
	}
	require.Len(t, found, 3)
	assert.Equal(t, markdown.EmphasisItalic, found[0])
	assert.Equal(t, markdown.EmphasisBold, found[1])
	assert.Equal(t, markdown.EmphasisBoldItalic, found[2])
}

func TestParseInlineCodeSpan(t *testing.T) {
	doc, _ := mustParse(t, "use `code` here\n")
	inlines := doc.Blocks[0].Paragraph.Inlines
	found := false
	for _, n := range inlines {
		if n.Kind == markdown.InlineCode {
			found = true
			assert.Equal(t, "code", n.Text)
		}
	}
	assert.True(t, found)
}

func TestParseLinkAndImage(t *testing.T) {
	doc, _ := mustParse(t, "[text](https://example.com \"title\")\n\n![alt](pic.png)\n")
	require.Len(t, doc.Blocks, 2)

	link := doc.Blocks[0].Paragraph.Inlines[0]
	require.Equal(t, markdown.InlineLink, link.Kind)
	assert.Equal(t, "https://example.com", link.Href)
	assert.Equal(t, "title", link.Title)

	img := doc.Blocks[1].Paragraph.Inlines[0]
	require.Equal(t, markdown.InlineImage, img.Kind)
	assert.Equal(t, "pic.png", img.Src)
	assert.Equal(t, "alt", img.Alt)
}

func TestParseIsDeterministic(t *testing.T) {
	src := "# Title\n\nSome *text* with [a link](https://example.com) and `code`.\n\n- one\n- two\n"
	first, _, err := markdown.Parse([]byte(src))
	require.NoError(t, err)
	second, _, err := markdown.Parse([]byte(src))
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestParseNormalizesCRLFAndTabs(t *testing.T) {
	doc, _ := mustParse(t, "one\r\ntwo\r\n")
	require.Len(t, doc.Blocks, 1)
	assert.Equal(t, markdown.BlockParagraph, doc.Blocks[0].Kind)

	// a leading tab expands to 4 spaces, enough for an indented code block
	doc, _ = mustParse(t, "\tcode\n")
	require.Len(t, doc.Blocks, 1)
	require.Equal(t, markdown.BlockCodeBlock, doc.Blocks[0].Kind)
	assert.Equal(t, "code", doc.Blocks[0].CodeBlock.Literal)
}

func plainTextOfFirstParagraph(t *testing.T, blocks []markdown.Block) string {
	t.Helper()
	require.NotEmpty(t, blocks)
	require.Equal(t, markdown.BlockParagraph, blocks[0].Kind)
	var out string
	for _, n := range blocks[0].Paragraph.Inlines {
		if n.Kind == markdown.InlineText {
			out += n.Text
		}
	}
	return out
}
