package format

import (
	"github.com/segmentio/encoding/json"

	"copytree/internal/record"
)

// SARIFFormatter renders a minimal SARIF 2.1.0 document with one result
// per file, reusing the JSON encoder since SARIF is JSON-shaped (spec.md
// §4.H, SPEC_FULL.md §4.H).
type SARIFFormatter struct{}

func (SARIFFormatter) Name() string { return "sarif" }

type sarifDocument struct {
	Schema  string     `json:"$schema"`
	Version string     `json:"version"`
	Runs    []sarifRun `json:"runs"`
}

type sarifRun struct {
	Tool    sarifTool     `json:"tool"`
	Results []sarifResult `json:"results"`
}

type sarifTool struct {
	Driver sarifDriver `json:"driver"`
}

type sarifDriver struct {
	Name           string `json:"name"`
	Version        string `json:"version,omitempty"`
	InformationURI string `json:"informationUri,omitempty"`
}

type sarifResult struct {
	RuleID     string         `json:"ruleId"`
	Level      string         `json:"level"`
	Message    sarifMessage   `json:"message"`
	Locations  []sarifLoc     `json:"locations"`
	Properties map[string]any `json:"properties,omitempty"`
}

type sarifMessage struct {
	Text string `json:"text"`
}

type sarifLoc struct {
	PhysicalLocation sarifPhysicalLocation `json:"physicalLocation"`
}

type sarifPhysicalLocation struct {
	ArtifactLocation sarifArtifactLocation `json:"artifactLocation"`
}

type sarifArtifactLocation struct {
	URI string `json:"uri"`
}

func (SARIFFormatter) Format(meta Metadata, recs []record.FileRecord, opts Options) (string, error) {
	run := sarifRun{
		Tool: sarifTool{Driver: sarifDriver{
			Name:           "CopyTree",
			InformationURI: "https://copytree.dev",
		}},
	}

	if !opts.OnlyTree {
		run.Results = make([]sarifResult, 0, len(recs))
		for _, rec := range recs {
			props := map[string]any{
				"size":     rec.Size,
				"encoding": string(rec.Encoding),
				"isBinary": rec.IsBinary,
			}
			if rec.TokenCount > 0 {
				props["tokenCount"] = rec.TokenCount
			}
			run.Results = append(run.Results, sarifResult{
				RuleID:  "copytree/file-included",
				Level:   "note",
				Message: sarifMessage{Text: rec.Path},
				Locations: []sarifLoc{{
					PhysicalLocation: sarifPhysicalLocation{
						ArtifactLocation: sarifArtifactLocation{URI: rec.Path},
					},
				}},
				Properties: props,
			})
		}
	}

	doc := sarifDocument{
		Schema:  "https://raw.githubusercontent.com/oasis-tcs/sarif-spec/master/Schemata/sarif-schema-2.1.0.json",
		Version: "2.1.0",
		Runs:    []sarifRun{run},
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}
