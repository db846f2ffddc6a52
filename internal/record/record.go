// Package record defines FileRecord, the central DTO that flows through
// every stage of the copytree pipeline: discovery, transformation, and
// formatting all operate on the same type (spec.md §3, §4.E).
//
// This package has no business logic of its own; it mirrors a common
// split between data types (this file) and
// orchestration (internal/copytree).
package record

import "time"

// Encoding identifies how Content should be interpreted when rendered.
type Encoding string

const (
	EncodingUTF8   Encoding = "utf8"
	EncodingBase64 Encoding = "base64"
	EncodingBinary Encoding = "binary"
)

// ContentKind distinguishes the sum-type variants of Content described in
// spec.md §3: a record's content is either absent (None, the zero value),
// text, raw bytes, or a placeholder string substituted for skipped/oversize
// content.
type ContentKind int

const (
	ContentNone ContentKind = iota
	ContentText
	ContentBytes
	ContentPlaceholder
)

// Content is the sum-typed body of a FileRecord. Exactly one of Text/Bytes/
// Placeholder is meaningful, selected by Kind. The zero Content (Kind ==
// ContentNone) represents "not yet loaded".
type Content struct {
	Kind        ContentKind
	Text        string
	Bytes       []byte
	Placeholder string
}

// Len reports the byte length of whichever variant is populated, used to
// validate the FileRecord.Size/content-length invariant in spec.md §3.
func (c Content) Len() int {
	switch c.Kind {
	case ContentText:
		return len(c.Text)
	case ContentBytes:
		return len(c.Bytes)
	case ContentPlaceholder:
		return len(c.Placeholder)
	default:
		return 0
	}
}

// TextContent builds a Content of kind ContentText.
func TextContent(s string) Content { return Content{Kind: ContentText, Text: s} }

// BytesContent builds a Content of kind ContentBytes.
func BytesContent(b []byte) Content { return Content{Kind: ContentBytes, Bytes: b} }

// PlaceholderContent builds a Content of kind ContentPlaceholder.
func PlaceholderContent(s string) Content { return Content{Kind: ContentPlaceholder, Placeholder: s} }

// FileRecord is the unit of data flowing through the pipeline (spec.md §3).
// A FileRecord is never shared mutably across stages: each stage that
// mutates a record does so on its own copy and passes the new value
// onward, matching spec.md §4.E.
type FileRecord struct {
	// Path is the POSIX-normalized path relative to the scan base. Unique
	// within one scan's output.
	Path string `json:"path"`

	// AbsolutePath is the platform-absolute filesystem path.
	AbsolutePath string `json:"-"`

	// Size is the byte count of the file on disk. Once Content is loaded
	// for a text record, Size matches Content.Len().
	Size int64 `json:"size"`

	// Modified is the file's modification timestamp.
	Modified time.Time `json:"modified"`

	// IsBinary is set by the binary-detection heuristic (spec.md §4.E):
	// a leading sample of up to 8 KiB is checked for a null byte or more
	// than 30% non-printable bytes.
	IsBinary bool `json:"is_binary"`

	// Encoding describes how Content should be interpreted when rendered.
	Encoding Encoding `json:"encoding"`

	// Content is None until a loader transformer populates it.
	Content Content `json:"-"`

	// Metadata is a free-form structured map populated by transformers
	// (e.g. {pages, ocr_confidence, ai_summary}).
	Metadata map[string]any `json:"metadata,omitempty"`

	// Trail is the ordered list of transformer names that have touched
	// this record, for diagnostics and idempotency checks.
	Trail []string `json:"trail,omitempty"`

	// ContentHash is a fast xxh3 content hash used for change detection and
	// deterministic-output verification; it is distinct from the sha256
	// used as the transformer-cache key (spec.md §4.G).
	ContentHash uint64 `json:"content_hash,omitempty"`

	// TokenCount is populated by the opt-in token-count transformer; zero
	// means it was never run for this record.
	TokenCount int `json:"token_count,omitempty"`

	// IsSymlink indicates the record was discovered via a symbolic link.
	IsSymlink bool `json:"-"`

	// Error captures a per-file processing failure (scan I/O or
	// transformer); when set, the record may still be emitted with an
	// error annotation instead of content (spec.md §7).
	Error error `json:"-"`

	// TransformError, when non-nil, marks that a TransformerError occurred
	// specifically during the transformation pipeline, distinct from a
	// scan-time Error, per spec.md §7 ("the offending record is returned
	// unmodified with an error field and transformed=false").
	TransformError error `json:"-"`
	Transformed    bool  `json:"-"`
}

// WithTrail returns a shallow copy of fr with name appended to Trail. Used
// by transformers to record that they touched the record without mutating
// the caller's copy.
func (fr FileRecord) WithTrail(name string) FileRecord {
	trail := make([]string, len(fr.Trail), len(fr.Trail)+1)
	copy(trail, fr.Trail)
	fr.Trail = append(trail, name)
	return fr
}

// SetMetadata returns a shallow copy of fr with metadata[key] = value set,
// allocating the Metadata map if it was nil.
func (fr FileRecord) SetMetadata(key string, value any) FileRecord {
	meta := make(map[string]any, len(fr.Metadata)+1)
	for k, v := range fr.Metadata {
		meta[k] = v
	}
	meta[key] = value
	fr.Metadata = meta
	return fr
}

// IsValid reports whether fr has the minimum fields required for a valid
// pipeline entry: a non-empty relative path.
func (fr FileRecord) IsValid() bool {
	return fr.Path != ""
}
