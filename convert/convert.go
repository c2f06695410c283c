// Package convert is the C6 façade: the one exported entry point that wires
// the Markdown parser (C2), Style Catalog (C1), Renderer (C4), and Packager
// (C5) into a single synchronous, CPU-bound call (SPEC_FULL.md §4.6, §5).
package convert

import (
	"errors"

	"hwpxmd/hwpx"
	"hwpxmd/markdown"
	"hwpxmd/render"
	"hwpxmd/style"
)

// Result is what Convert returns: the packaged archive plus every warning
// recovered while parsing or rendering.
type Result struct {
	Bytes    []byte
	Warnings []markdown.Warning
}

// Convert turns Markdown source into an HWPX archive under the named style
// preset. No suspension points exist inside the call; it runs to completion
// or returns an error (§5).
func Convert(source []byte, preset string, options Options) (*Result, error) {
	opts, err := parseOptions(options)
	if err != nil {
		return nil, err
	}

	cat, err := style.Resolve(preset)
	if err != nil {
		var cfgErr style.ConfigError
		if errors.As(err, &cfgErr) {
			return nil, configError(cfgErr.Error())
		}
		return nil, internalError("resolve style preset", err)
	}

	doc, warnings, err := markdown.Parse(source)
	if err != nil {
		var encErr markdown.EncodingError
		if errors.As(err, &encErr) {
			return nil, encodingError("decode source", err)
		}
		return nil, internalError("parse source", err)
	}

	resolvedImages, binData := resolveImages(doc.Blocks, opts.resolver)

	rendered := render.Render(doc, cat, render.Options{
		BaseIndentUnits: opts.baseIndent,
		ResolvedImages:  resolvedImages,
	})

	archive, err := hwpx.Package(rendered.Section, cat, binData, hwpx.Options{
		Title:  opts.title,
		Author: opts.author,
	})
	if err != nil {
		return nil, internalError("package archive", err)
	}

	allWarnings := make([]markdown.Warning, 0, len(warnings)+len(rendered.Warnings))
	allWarnings = append(allWarnings, warnings...)
	allWarnings = append(allWarnings, rendered.Warnings...)

	return &Result{Bytes: archive, Warnings: allWarnings}, nil
}
