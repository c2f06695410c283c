// Package style resolves a named preset ("default", "academic", "business",
// "minimal") into a Catalog of OWPML role tables, per SPEC_FULL.md §4.1. A
// Catalog is immutable for the lifetime of one conversion and is the only
// thing the renderer (package render) consults for IDs and attributes — it
// never invents an ID of its own.
package style

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

// CharRole names a character-property role.
type CharRole string

const (
	CharDefault     CharRole = "default"
	CharBold        CharRole = "bold"
	CharItalic      CharRole = "italic"
	CharBoldItalic  CharRole = "bold_italic"
	CharStrike      CharRole = "strike"
	CharInlineCode  CharRole = "inline_code"
	CharLink        CharRole = "link"
	CharFootnoteRef CharRole = "footnote_ref"
)

// charRoleOrder is the declaration order IDs are assigned in; it must match
// the order header.xml enumerates character-property roles (SPEC_FULL.md
// §4.1: "stable IDs assigned in role-declaration order").
var charRoleOrder = []CharRole{
	CharDefault, CharBold, CharItalic, CharBoldItalic,
	CharStrike, CharInlineCode, CharLink, CharFootnoteRef,
}

// ParaRole names a paragraph-property role.
type ParaRole string

const (
	ParaBody        ParaRole = "body"
	ParaH1          ParaRole = "h1"
	ParaH2          ParaRole = "h2"
	ParaH3          ParaRole = "h3"
	ParaH4          ParaRole = "h4"
	ParaH5          ParaRole = "h5"
	ParaH6          ParaRole = "h6"
	ParaCodeBlock   ParaRole = "code_block"
	ParaBlockQuote  ParaRole = "block_quote"
	ParaListItem    ParaRole = "list_item"
	ParaTableCell   ParaRole = "table_cell"
	ParaFootnoteDef ParaRole = "footnote_def"
	ParaHR          ParaRole = "hr"
)

var paraRoleOrder = []ParaRole{
	ParaBody, ParaH1, ParaH2, ParaH3, ParaH4, ParaH5, ParaH6,
	ParaCodeBlock, ParaBlockQuote, ParaListItem, ParaTableCell,
	ParaFootnoteDef, ParaHR,
}

// CharProps are the OWPML character-property attributes for one role.
type CharProps struct {
	FontFamily string
	HeightPt   float64 // converted to OWPML ×100 units when header.xml is built
	Bold       bool
	Italic     bool
	Strikeout  bool
	TextColor  string // "" means inherit/default
	Underline  bool
}

// ParaProps are the OWPML paragraph-property attributes for one role.
type ParaProps struct {
	LineSpacingPercent int
	IndentTwips        int
	MarginBeforeTwips  int
	MarginAfterTwips   int
}

// CharEntry pairs a resolved integer ID with its attribute record.
type CharEntry struct {
	ID    int
	Props CharProps
}

type ParaEntry struct {
	ID    int
	Props ParaProps
}

// StyleEntry is one "style role" — one per paragraph role, carrying the
// paragraph-property ID it references plus its own style ID.
type StyleEntry struct {
	ID       int
	ParaID   int
	CharID   int
	Name     string
}

// Catalog is the resolved, immutable set of role tables for one preset.
type Catalog struct {
	Preset string

	Chars  map[CharRole]CharEntry
	Paras  map[ParaRole]ParaEntry
	Styles map[ParaRole]StyleEntry

	HRBorderID            int
	TableBorderID         int
	OrderedNumberingID    int
	BulletNumberingID     int
	TaskCheckedNumberID   int
	TaskUncheckedNumberID int
}

// ConfigError reports a catalog configuration failure: an unresolvable
// preset name, or a preset whose heading_scale does not list 6 entries.
type ConfigError string

func (e ConfigError) Error() string { return string(e) }

//go:embed presets.yaml
var presetsYAML []byte

type presetDef struct {
	FontFamily   string  `yaml:"font_family"`
	BodySizePt   float64 `yaml:"body_size_pt"`
	HeadingScale []float64 `yaml:"heading_scale"` // point size for h1..h6
	CodeFamily   string  `yaml:"code_family"`
	CodeSizePt   float64 `yaml:"code_size_pt"`
	LineSpacing  int     `yaml:"line_spacing_percent"`
}

var presetDefs map[string]presetDef

func init() {
	var raw map[string]presetDef
	if err := yaml.Unmarshal(presetsYAML, &raw); err != nil {
		panic("style: embedded presets.yaml is malformed: " + err.Error())
	}
	presetDefs = raw
}

// Resolve builds the Catalog for a named preset. Unknown preset names fail
// with a ConfigError (SPEC_FULL.md §4.1 failure mode).
func Resolve(preset string) (*Catalog, error) {
	def, ok := presetDefs[preset]
	if !ok {
		return nil, ConfigError(fmt.Sprintf("unknown style preset %q", preset))
	}
	if len(def.HeadingScale) != 6 {
		return nil, ConfigError(fmt.Sprintf("preset %q: heading_scale must list 6 entries, has %d", preset, len(def.HeadingScale)))
	}

	cat := &Catalog{
		Preset: preset,
		Chars:  make(map[CharRole]CharEntry, len(charRoleOrder)),
		Paras:  make(map[ParaRole]ParaEntry, len(paraRoleOrder)),
		Styles: make(map[ParaRole]StyleEntry, len(paraRoleOrder)),
	}

	id := 0
	nextID := func() int { id++; return id }

	for _, role := range charRoleOrder {
		props := CharProps{FontFamily: def.FontFamily, HeightPt: def.BodySizePt}
		switch role {
		case CharBold:
			props.Bold = true
		case CharItalic:
			props.Italic = true
		case CharBoldItalic:
			props.Bold, props.Italic = true, true
		case CharStrike:
			props.Strikeout = true
		case CharInlineCode, CharLink, CharFootnoteRef:
			props.FontFamily = def.CodeFamily
			props.HeightPt = def.CodeSizePt
			if role == CharLink {
				props.FontFamily = def.FontFamily
				props.HeightPt = def.BodySizePt
				props.Underline = true
				props.TextColor = "0000FF"
			}
			if role == CharFootnoteRef {
				props.FontFamily = def.FontFamily
				props.HeightPt = def.BodySizePt * 0.7
			}
		}
		cat.Chars[role] = CharEntry{ID: nextID(), Props: props}
	}

	headingRoles := map[ParaRole]bool{
		ParaH1: true, ParaH2: true, ParaH3: true, ParaH4: true, ParaH5: true, ParaH6: true,
	}

	for _, role := range paraRoleOrder {
		props := ParaProps{LineSpacingPercent: def.LineSpacing}
		switch {
		case headingRoles[role]:
			props.MarginBeforeTwips = 240
			props.MarginAfterTwips = 120
		case role == ParaCodeBlock:
			props.IndentTwips = 240
		case role == ParaBlockQuote:
			props.IndentTwips = 360
		case role == ParaListItem:
			props.IndentTwips = 240
		case role == ParaFootnoteDef:
			props.IndentTwips = 240
		}
		paraID := nextID()
		cat.Paras[role] = ParaEntry{ID: paraID, Props: props}

		styleID := nextID()
		cat.Styles[role] = StyleEntry{
			ID:     styleID,
			ParaID: paraID,
			CharID: cat.Chars[CharDefault].ID,
			Name:   string(role),
		}
	}

	cat.HRBorderID = nextID()
	cat.TableBorderID = nextID()
	cat.OrderedNumberingID = nextID()
	cat.BulletNumberingID = nextID()
	cat.TaskCheckedNumberID = nextID()
	cat.TaskUncheckedNumberID = nextID()

	return cat, nil
}

// HeadingSize returns the resolved font size, in points, for heading level
// 1..6, as listed in the preset's heading_scale entries.
func (c *Catalog) HeadingSize(level int) float64 {
	def := presetDefs[c.Preset]
	if level < 1 || level > 6 {
		return def.BodySizePt
	}
	return def.HeadingScale[level-1]
}
