// Package format implements the output formatters (component H): each
// formatter renders a finalized set of FileRecords plus run metadata as a
// single structured document — XML, JSON, Markdown, tree, NDJSON, or
// SARIF (spec.md §4.H). The XML, JSON, Markdown and NDJSON formatters emit
// a metadata header, the directory tree, and a per-file section; the tree
// formatter emits only a one-line header and the tree, and the SARIF
// formatter emits one result per file with neither run metadata nor a tree.
package format

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"copytree/internal/record"
)

// Metadata is the header every formatter renders before any file content
// (spec.md §4.H: "{generated_at, file_count, total_size, base_path,
// optional user instructions}").
type Metadata struct {
	GeneratedAt  time.Time
	FileCount    int
	TotalSize    int64
	BasePath     string
	Instructions string

	// DirectoryStructure is the pre-rendered tree section, shared verbatim
	// across formatters that embed a tree view (markdown, XML ct:tree).
	DirectoryStructure string
}

// BuildMetadata computes a Metadata header from a finalized record set.
func BuildMetadata(basePath string, recs []record.FileRecord, instructions string) Metadata {
	var total int64
	for _, r := range recs {
		total += r.Size
	}
	return Metadata{
		GeneratedAt:        time.Now(),
		FileCount:          len(recs),
		TotalSize:          total,
		BasePath:           basePath,
		Instructions:       instructions,
		DirectoryStructure: RenderTree(recs, TreeOptions{}),
	}
}

// Formatter renders a finalized record set as a single output document
// (spec.md §4.H). Name identifies it for CLI --format selection and
// registry lookup.
type Formatter interface {
	Name() string
	Format(meta Metadata, recs []record.FileRecord, opts Options) (string, error)
}

// Options carries the CLI-level rendering knobs that cut across every
// formatter (spec.md §6 profile-file fields `only_tree`, `with_line_numbers`,
// `show_size`).
type Options struct {
	OnlyTree        bool
	WithLineNumbers bool
	ShowSize        bool
}

// TreeOptions configures RenderTree.
type TreeOptions struct {
	ShowSize bool
}

// treeNode is an intermediate directory-tree structure built from a flat
// set of POSIX-relative paths.
type treeNode struct {
	name     string
	size     int64
	isFile   bool
	children map[string]*treeNode
	order    []string
}

func newTreeNode() *treeNode {
	return &treeNode{children: make(map[string]*treeNode)}
}

func (n *treeNode) child(name string) *treeNode {
	if c, ok := n.children[name]; ok {
		return c
	}
	c := newTreeNode()
	n.children[name] = c
	n.order = append(n.order, name)
	return c
}

// RenderTree renders recs as a UTF-8 box-drawing tree (spec.md §4.H
// "Tree": box-drawing connectors, optional size annotation).
func RenderTree(recs []record.FileRecord, opts TreeOptions) string {
	root := newTreeNode()
	for _, r := range recs {
		parts := strings.Split(r.Path, "/")
		cur := root
		for i, part := range parts {
			cur = cur.child(part)
			if i == len(parts)-1 {
				cur.isFile = true
				cur.size = r.Size
			}
		}
	}

	var b strings.Builder
	renderChildren(&b, root, "", opts)
	return strings.TrimRight(b.String(), "\n")
}

func renderChildren(b *strings.Builder, n *treeNode, prefix string, opts TreeOptions) {
	names := append([]string(nil), n.order...)
	sort.Strings(names)

	for i, name := range names {
		child := n.children[name]
		last := i == len(names)-1

		connector := "├── "
		nextPrefix := prefix + "│   "
		if last {
			connector = "└── "
			nextPrefix = prefix + "    "
		}

		line := prefix + connector + name
		if child.isFile && opts.ShowSize {
			line += fmt.Sprintf(" (%s)", humanSize(child.size))
		}
		b.WriteString(line)
		b.WriteByte('\n')

		if !child.isFile || len(child.children) > 0 {
			renderChildren(b, child, nextPrefix, opts)
		}
	}
}

func humanSize(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for v := n / unit; v >= unit; v /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}

// languageHint returns the fenced-code-block language for a path's
// extension, used by the Markdown formatter (spec.md §4.H).
func languageHint(path string) string {
	ext := strings.ToLower(path[strings.LastIndex(path, ".")+1:])
	if lang, ok := extensionLanguages[ext]; ok {
		return lang
	}
	return ""
}

var extensionLanguages = map[string]string{
	"go":   "go",
	"py":   "python",
	"js":   "javascript",
	"ts":   "typescript",
	"tsx":  "tsx",
	"jsx":  "jsx",
	"rb":   "ruby",
	"rs":   "rust",
	"java": "java",
	"c":    "c",
	"h":    "c",
	"cpp":  "cpp",
	"hpp":  "cpp",
	"cs":   "csharp",
	"php":  "php",
	"sh":   "bash",
	"bash": "bash",
	"yml":  "yaml",
	"yaml": "yaml",
	"json": "json",
	"md":   "markdown",
	"html": "html",
	"css":  "css",
	"sql":  "sql",
	"toml": "toml",
	"ini":  "ini",
}

// contentString returns rec's content in whatever form it's stored, for
// formatters that just need a string body.
func contentString(rec record.FileRecord) string {
	switch rec.Content.Kind {
	case record.ContentText:
		return rec.Content.Text
	case record.ContentPlaceholder:
		return rec.Content.Placeholder
	case record.ContentBytes:
		return string(rec.Content.Bytes)
	default:
		return ""
	}
}

// withLineNumbers prefixes each line of s with a 1-based line number in the
// fixed "%4d: " form required by the profile field `add_line_numbers`
// (spec.md §6).
func withLineNumbers(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = fmt.Sprintf("%4d: %s", i+1, line)
	}
	return strings.Join(lines, "\n")
}

// transformedBy joins a record's transformer trail for display/attribute
// purposes (e.g. XML's transformed_by attribute).
func transformedBy(rec record.FileRecord) string {
	return strings.Join(rec.Trail, ",")
}
