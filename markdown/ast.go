// Package markdown parses the CommonMark-flavored subset of Markdown
// described in SPEC_FULL.md §4.2 into a Document AST. The parser performs no
// I/O and never fails on malformed input: ambiguous or broken constructs are
// recovered locally and reported through the returned Warnings slice.
// Footnote definitions are cross-referenced by label through a string-keyed
// symbol table rather than an in-tree pointer, so the tree stays acyclic.
package markdown

// BlockKind tags the variant carried by a Block node.
type BlockKind int

const (
	BlockHeading BlockKind = iota
	BlockParagraph
	BlockBulletList
	BlockOrderedList
	BlockCodeBlock
	BlockQuote
	BlockTable
	BlockThematicBreak
	BlockFootnoteDefinition
)

// Document is the root of a parsed Markdown source: an ordered sequence of
// top-level blocks plus the footnote definitions collected along the way
// (definitions are hoisted; their source position does not affect output,
// per SPEC_FULL.md §4.4).
type Document struct {
	Blocks    []Block
	Footnotes map[string]*FootnoteDefinition // keyed by label, for C4 lookup
}

// Block is a tagged union over the block-level node kinds in SPEC_FULL.md §3.
// Exactly one of the pointer fields matching Kind is non-nil.
type Block struct {
	Kind               BlockKind
	Heading            *Heading
	Paragraph          *Paragraph
	List               *List
	CodeBlock          *CodeBlock
	BlockQuote         *BlockQuoteNode
	Table              *Table
	ThematicBreak      *ThematicBreak
	FootnoteDefinition *FootnoteDefinition
}

type Heading struct {
	Level   int // 1..6
	Inlines []Inline
}

type Paragraph struct {
	Inlines []Inline
}

// TaskState marks the checkbox state of a list item; non-none only when the
// item is a BulletList child whose source began with "[ ]"/"[x]".
type TaskState int

const (
	TaskNone TaskState = iota
	TaskUnchecked
	TaskChecked
)

type List struct {
	Ordered bool
	Start   int // only meaningful when Ordered
	Items   []ListItem
}

type ListItem struct {
	Task     TaskState
	Children []Block
}

type CodeBlock struct {
	Info    string // info-string, possibly empty
	Literal string // newline-delimited literal text
}

type BlockQuoteNode struct {
	Children []Block
}

type Alignment int

const (
	AlignDefault Alignment = iota
	AlignLeft
	AlignCenter
	AlignRight
)

type TableRow struct {
	Cells [][]Inline
}

type Table struct {
	Alignments []Alignment
	Header     TableRow
	Body       []TableRow
}

type ThematicBreak struct{}

type FootnoteDefinition struct {
	Label    string
	Children []Block
}

// InlineKind tags the variant carried by an Inline node.
type InlineKind int

const (
	InlineText InlineKind = iota
	InlineEmphasis
	InlineStrikethrough
	InlineCode
	InlineLink
	InlineImage
	InlineFootnoteReference
	InlineHardBreak
	InlineSoftBreak
)

// EmphasisKind distinguishes the three emphasis compositions the renderer
// maps onto character-property roles (SPEC_FULL.md §4.4, "nested emphasis
// composes").
type EmphasisKind int

const (
	EmphasisItalic EmphasisKind = iota
	EmphasisBold
	EmphasisBoldItalic
)

type Inline struct {
	Kind InlineKind

	Text string // InlineText, InlineCode literal

	Emphasis EmphasisKind // InlineEmphasis
	Children []Inline     // InlineEmphasis, InlineStrikethrough, InlineLink

	Href  string // InlineLink
	Title string // InlineLink, InlineImage (optional title)
	Src   string // InlineImage
	Alt   string // InlineImage

	Label string // InlineFootnoteReference
}

// WarningKind classifies a recovered parse condition (SPEC_FULL.md §7).
type WarningKind int

const (
	WarnMalformedTable WarningKind = iota
	WarnUnterminatedCodeFence
	WarnUnresolvedEmphasis
	WarnUnresolvedFootnote
	WarnOrphanFootnoteDefinition
)

// Warning is one recovered-locally diagnostic produced during parsing or
// rendering; it never aborts the conversion.
type Warning struct {
	Kind    WarningKind
	Line    int
	Message string
}
