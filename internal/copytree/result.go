package copytree

import (
	"time"

	"copytree/internal/record"
	"copytree/internal/retry"
)

// ManifestEntry is one line of Result.Manifest (spec.md §6:
// "manifest: {path,size}[]").
type ManifestEntry struct {
	Path string
	Size int64
}

// Stats is always populated, even on a partial or dry-run result (spec.md
// §7: "stats always includes {totalFiles, totalSize, outputSize, duration,
// scanErrors?, transformerErrors?, clipboardError?, dryRun?}").
type Stats struct {
	TotalFiles        int
	TotalSize         int64
	OutputSize        int
	Duration          time.Duration
	ScanErrors        []string
	RetrySummary      retry.Stats
	TransformerErrors []string
	ClipboardError    string
	DryRun            bool
}

// Result is copy's return value (spec.md §6: "copy(base, options) →
// {output, files, manifest, stats, output_path?}").
type Result struct {
	Output     string
	Files      []record.FileRecord
	Manifest   []ManifestEntry
	Stats      Stats
	OutputPath string
}

func buildManifest(recs []record.FileRecord) []ManifestEntry {
	m := make([]ManifestEntry, len(recs))
	for i, r := range recs {
		m[i] = ManifestEntry{Path: r.Path, Size: r.Size}
	}
	return m
}
