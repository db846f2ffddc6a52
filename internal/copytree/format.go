package copytree

import (
	"copytree/internal/format"
	"copytree/internal/progress"
	"copytree/internal/record"
)

// toFormatOptions maps the public Options knobs onto format.Options.
func toFormatOptions(opts Options) format.Options {
	fo := format.Options{}
	if v, ok := opts.FormatOptions["only_tree"].(bool); ok {
		fo.OnlyTree = v
	}
	if v, ok := opts.FormatOptions["add_line_numbers"].(bool); ok {
		fo.WithLineNumbers = v
	}
	if v, ok := opts.FormatOptions["show_size"].(bool); ok {
		fo.ShowSize = v
	}
	return fo
}

// formatName resolves the effective format name, defaulting to "xml"
// (spec.md §6: "format ... default: xml for copy, unless CLI sets
// markdown").
func formatName(opts Options) string {
	if opts.Format != "" {
		return opts.Format
	}
	return "xml"
}

// Format renders a finalized record set as a single document (spec.md §6:
// `format(files, options) → string`).
func Format(recs []record.FileRecord, opts Options) (string, error) {
	f, err := format.Lookup(formatName(opts))
	if err != nil {
		return "", OutputError("unknown output format", err)
	}
	meta := format.BuildMetadata(opts.Root, recs, opts.Instructions)
	out, err := f.Format(meta, recs, toFormatOptions(opts))
	if err != nil {
		return "", OutputError("rendering output", err)
	}
	return out, nil
}

// FormatStream renders recs as a stream of output chunks (spec.md §6:
// `format_stream(files, options) → async sequence<string chunks>`). NDJSON
// streams one line per file as soon as it is visited, since it is the one
// format spec.md §4.G/§4.H explicitly exempts from buffered completion;
// every other format must see the whole record set to close its footer, so
// it renders fully and is delivered as a single chunk.
func FormatStream(recs []record.FileRecord, opts Options) (<-chan string, error) {
	name := formatName(opts)
	if name == "ndjson" {
		meta := format.BuildMetadata(opts.Root, recs, opts.Instructions)
		return format.StreamLines(meta, recs, toFormatOptions(opts)), nil
	}

	out, err := Format(recs, opts)
	if err != nil {
		return nil, err
	}
	ch := make(chan string, 1)
	ch <- out
	close(ch)
	return ch, nil
}

// reportFormatStage starts and ends the format stage's progress events
// around fn, used by Copy when it renders a final document. CopyStream
// renders without reporting format-stage events.
func reportFormatStage(r *progress.Reporter, fn func() error) error {
	if r != nil {
		r.Start(progress.StageFormat, "formatting")
	}
	err := fn()
	if r != nil {
		r.End(progress.StageFormat, "done")
	}
	return err
}
