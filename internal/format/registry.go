package format

import "fmt"

var builtin = map[string]Formatter{
	"xml":      XMLFormatter{},
	"json":     JSONFormatter{},
	"markdown": MarkdownFormatter{},
	"tree":     TreeFormatter{},
	"ndjson":   NDJSONFormatter{},
	"sarif":    SARIFFormatter{},
}

// Lookup returns the built-in Formatter for name (spec.md §6:
// "format: xml|json|markdown|tree|ndjson|sarif").
func Lookup(name string) (Formatter, error) {
	f, ok := builtin[name]
	if !ok {
		return nil, fmt.Errorf("format: unknown format %q", name)
	}
	return f, nil
}
