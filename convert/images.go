package convert

import (
	"hwpxmd/hwpx"
	"hwpxmd/imageresolve"
	"hwpxmd/markdown"
)

// resolveImages walks blocks for every distinct Image Src in document order,
// consults resolver for each, and packages what comes back through
// imageresolve. A Src the resolver has nothing for gets no entry, which
// renders with binaryItemIDRef 0 (§4.4).
func resolveImages(blocks []markdown.Block, resolver ImageResolver) (map[string]int, []hwpx.BinDataFile) {
	resolved := make(map[string]int)
	if resolver == nil {
		return resolved, nil
	}

	var bin []hwpx.BinDataFile
	nextID := 1 // 0 is the unresolved placeholder

	var walkInlines func([]markdown.Inline)
	walkInlines = func(inlines []markdown.Inline) {
		for _, in := range inlines {
			if in.Kind == markdown.InlineImage {
				if _, seen := resolved[in.Src]; !seen {
					if raw, ok := resolver(in.Src); ok {
						id := nextID
						nextID++
						bin = append(bin, imageresolve.Resolve(id, raw))
						resolved[in.Src] = id
					}
				}
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

	return resolved, bin
}
