package format

import (
	"strings"

	"github.com/segmentio/encoding/json"

	"copytree/internal/record"
)

// NDJSONFormatter renders one JSON object per line: a metadata line, one
// file line per record, then a summary line (spec.md §4.H). Unlike the
// other formatters, NDJSON is the one format explicitly exempted from
// input-order preservation (spec.md §4.G) — callers that want true
// per-line streaming should use StreamLines instead of Format.
type NDJSONFormatter struct{}

func (NDJSONFormatter) Name() string { return "ndjson" }

type ndjsonMetadataLine struct {
	Type               string `json:"type"`
	FileCount          int    `json:"fileCount"`
	TotalSize          int64  `json:"totalSize"`
	Generated          string `json:"generated"`
	BasePath           string `json:"basePath"`
	DirectoryStructure string `json:"directoryStructure"`
}

type ndjsonFileLine struct {
	Type          string         `json:"type"`
	Path          string         `json:"path"`
	Size          int64          `json:"size"`
	Modified      string         `json:"modified"`
	Encoding      string         `json:"encoding"`
	IsBinary      bool           `json:"isBinary"`
	TransformedBy []string       `json:"transformedBy,omitempty"`
	TokenCount    int            `json:"tokenCount,omitempty"`
	Content       string         `json:"content"`
	Metadata      map[string]any `json:"metadata,omitempty"`
}

type ndjsonSummaryLine struct {
	Type         string `json:"type"`
	FilesWritten int    `json:"filesWritten"`
}

func (NDJSONFormatter) Format(meta Metadata, recs []record.FileRecord, opts Options) (string, error) {
	var b strings.Builder
	for line := range StreamLines(meta, recs, opts) {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return b.String(), nil
}

// StreamLines yields NDJSON lines one at a time: metadata first, then one
// file line per record (in whatever order recs is given — NDJSON accepts
// completion order per spec.md §4.G), then a summary line.
func StreamLines(meta Metadata, recs []record.FileRecord, opts Options) <-chan string {
	out := make(chan string)
	go func() {
		defer close(out)

		metaLine, err := json.Marshal(ndjsonMetadataLine{
			Type:               "metadata",
			FileCount:          meta.FileCount,
			TotalSize:          meta.TotalSize,
			Generated:          meta.GeneratedAt.Format(timeLayout),
			BasePath:           meta.BasePath,
			DirectoryStructure: meta.DirectoryStructure,
		})
		if err == nil {
			out <- string(metaLine)
		}

		written := 0
		if !opts.OnlyTree {
			for _, rec := range recs {
				body := contentString(rec)
				if opts.WithLineNumbers && rec.Content.Kind == record.ContentText {
					body = withLineNumbers(body)
				}
				line, err := json.Marshal(ndjsonFileLine{
					Type:          "file",
					Path:          rec.Path,
					Size:          rec.Size,
					Modified:      rec.Modified.Format(timeLayout),
					Encoding:      string(rec.Encoding),
					IsBinary:      rec.IsBinary,
					TransformedBy: rec.Trail,
					TokenCount:    rec.TokenCount,
					Content:       body,
					Metadata:      rec.Metadata,
				})
				if err != nil {
					continue
				}
				out <- string(line)
				written++
			}
		}

		summaryLine, err := json.Marshal(ndjsonSummaryLine{Type: "summary", FilesWritten: written})
		if err == nil {
			out <- string(summaryLine)
		}
	}()
	return out
}
