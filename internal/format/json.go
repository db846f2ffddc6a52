package format

import (
	"github.com/segmentio/encoding/json"

	"copytree/internal/record"
)

// JSONFormatter renders `{metadata, files:[...]}` (spec.md §4.H), using
// segmentio/encoding/json as a faster drop-in for the standard encoder
// (SPEC_FULL.md §4.H).
type JSONFormatter struct{}

func (JSONFormatter) Name() string { return "json" }

type jsonMetadata struct {
	FileCount          int    `json:"fileCount"`
	TotalSize          int64  `json:"totalSize"`
	Generated          string `json:"generated"`
	BasePath           string `json:"basePath"`
	Instructions       string `json:"instructions,omitempty"`
	DirectoryStructure string `json:"directoryStructure"`
}

type jsonFile struct {
	Path          string         `json:"path"`
	Size          int64          `json:"size"`
	Modified      string         `json:"modified"`
	Encoding      string         `json:"encoding"`
	IsBinary      bool           `json:"isBinary"`
	TransformedBy []string       `json:"transformedBy,omitempty"`
	TokenCount    int            `json:"tokenCount,omitempty"`
	Metadata      map[string]any `json:"metadata,omitempty"`
	Content       string         `json:"content"`
}

type jsonDocument struct {
	Metadata jsonMetadata `json:"metadata"`
	Files    []jsonFile   `json:"files"`
}

func (JSONFormatter) Format(meta Metadata, recs []record.FileRecord, opts Options) (string, error) {
	doc := jsonDocument{
		Metadata: jsonMetadata{
			FileCount:          meta.FileCount,
			TotalSize:          meta.TotalSize,
			Generated:          meta.GeneratedAt.Format(timeLayout),
			BasePath:           meta.BasePath,
			Instructions:       meta.Instructions,
			DirectoryStructure: meta.DirectoryStructure,
		},
	}

	if !opts.OnlyTree {
		doc.Files = make([]jsonFile, 0, len(recs))
		for _, rec := range recs {
			body := contentString(rec)
			if opts.WithLineNumbers && rec.Content.Kind == record.ContentText {
				body = withLineNumbers(body)
			}
			doc.Files = append(doc.Files, jsonFile{
				Path:          rec.Path,
				Size:          rec.Size,
				Modified:      rec.Modified.Format(timeLayout),
				Encoding:      string(rec.Encoding),
				IsBinary:      rec.IsBinary,
				TransformedBy: rec.Trail,
				TokenCount:    rec.TokenCount,
				Metadata:      rec.Metadata,
				Content:       body,
			})
		}
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}
