package format

import (
	"fmt"
	"strings"

	"copytree/internal/record"
)

// TreeFormatter renders only the directory-tree section plus a one-line
// header, for the `--only-tree`-equivalent `tree` output format (spec.md
// §4.H "Tree").
type TreeFormatter struct{}

func (TreeFormatter) Name() string { return "tree" }

func (TreeFormatter) Format(meta Metadata, recs []record.FileRecord, opts Options) (string, error) {
	var b strings.Builder

	fmt.Fprintf(&b, "%s (%d files, %s)\n", meta.BasePath, meta.FileCount, humanSize(meta.TotalSize))
	b.WriteString(RenderTree(recs, TreeOptions{ShowSize: opts.ShowSize}))
	b.WriteByte('\n')
	return b.String(), nil
}
