package convert

import "fmt"

// ImageResolver fetches the raw bytes backing an Image node's Src, or
// reports it has none (SPEC_FULL.md §4.6 "a callable (src) -> bytes | None").
type ImageResolver func(src string) ([]byte, bool)

// Options is the façade's recognized-entry mapping (§4.6). Unknown keys
// fail with a ConfigError, exactly like an unknown style preset.
type Options map[string]interface{}

type resolvedOptions struct {
	title      string
	author     string
	resolver   ImageResolver
	baseIndent int
}

func parseOptions(opts Options) (resolvedOptions, error) {
	var out resolvedOptions
	for key, value := range opts {
		switch key {
		case "title":
			s, ok := value.(string)
			if !ok {
				return out, configError(fmt.Sprintf("option %q must be a string", key))
			}
			out.title = s
		case "author":
			s, ok := value.(string)
			if !ok {
				return out, configError(fmt.Sprintf("option %q must be a string", key))
			}
			out.author = s
		case "image_resolver":
			r, ok := value.(ImageResolver)
			if !ok {
				return out, configError(fmt.Sprintf("option %q must be an ImageResolver", key))
			}
			out.resolver = r
		case "base_indent":
			n, ok := value.(int)
			if !ok {
				return out, configError(fmt.Sprintf("option %q must be an int", key))
			}
			out.baseIndent = n
		default:
			return out, configError(fmt.Sprintf("unrecognized option %q", key))
		}
	}
	return out, nil
}
