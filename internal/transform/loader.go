package transform

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/zeebo/xxh3"

	"copytree/internal/record"
	"copytree/internal/retry"
)

// binaryDetectionBytes is the leading sample size used for binary
// detection (spec.md §4.E: "a leading sample of up to 8 KiB").
const binaryDetectionBytes = 8192

// BinaryCategory classifies a binary file for binary_policy dispatch
// (spec.md §4.G stage 1).
type BinaryCategory string

const (
	CategoryImage    BinaryCategory = "image"
	CategoryMedia    BinaryCategory = "media"
	CategoryArchive  BinaryCategory = "archive"
	CategoryExec     BinaryCategory = "exec"
	CategoryFont     BinaryCategory = "font"
	CategoryDatabase BinaryCategory = "database"
	CategoryCert     BinaryCategory = "cert"
	CategoryDocument BinaryCategory = "document"
	CategoryOther    BinaryCategory = "other"
	CategoryText     BinaryCategory = "text"
)

// BinaryAction is the action a binary_policy entry takes for its category
// (spec.md §4.G).
type BinaryAction string

const (
	ActionComment     BinaryAction = "comment"
	ActionSkip        BinaryAction = "skip"
	ActionPlaceholder BinaryAction = "placeholder"
	ActionBase64      BinaryAction = "base64"
	ActionConvert     BinaryAction = "convert"
	ActionLoad        BinaryAction = "load"
)

var extensionCategory = map[string]BinaryCategory{
	".png": CategoryImage, ".jpg": CategoryImage, ".jpeg": CategoryImage, ".gif": CategoryImage, ".webp": CategoryImage, ".ico": CategoryImage,
	".mp3": CategoryMedia, ".mp4": CategoryMedia, ".mov": CategoryMedia, ".wav": CategoryMedia, ".avi": CategoryMedia,
	".zip": CategoryArchive, ".tar": CategoryArchive, ".gz": CategoryArchive, ".7z": CategoryArchive, ".rar": CategoryArchive,
	".exe": CategoryExec, ".dll": CategoryExec, ".so": CategoryExec, ".dylib": CategoryExec,
	".ttf": CategoryFont, ".otf": CategoryFont, ".woff": CategoryFont, ".woff2": CategoryFont,
	".db": CategoryDatabase, ".sqlite": CategoryDatabase, ".sqlite3": CategoryDatabase,
	".pem": CategoryCert, ".crt": CategoryCert, ".key": CategoryCert, ".p12": CategoryCert,
	".pdf": CategoryDocument, ".docx": CategoryDocument, ".xlsx": CategoryDocument, ".pptx": CategoryDocument,
}

// DefaultBinaryPolicy is the built-in binary_policy map: most binary
// categories get a placeholder comment; certificates and keys are skipped
// outright rather than embedded (spec.md §4.G).
func DefaultBinaryPolicy() map[BinaryCategory]BinaryAction {
	return map[BinaryCategory]BinaryAction{
		CategoryImage:    ActionComment,
		CategoryMedia:    ActionComment,
		CategoryArchive:  ActionComment,
		CategoryExec:     ActionComment,
		CategoryFont:     ActionComment,
		CategoryDatabase: ActionComment,
		CategoryCert:     ActionSkip,
		CategoryDocument: ActionConvert,
		CategoryOther:    ActionComment,
		CategoryText:     ActionLoad,
	}
}

// Loader is the mandatory first pipeline stage: it reads a file's bytes,
// classifies it as text or binary, and populates Content per the
// binary_policy (spec.md §4.G stage 1). It also computes the record's
// xxh3 ContentHash (SPEC_FULL.md §3 expansion).
type Loader struct {
	MaxBytes  int64
	Policy    map[BinaryCategory]BinaryAction
	Converter Converter

	// RetryPolicy and Reporter govern retry of the loader's own filesystem
	// reads (component J, spec.md §4.J: retry scope covers "filesystem
	// calls in the walker and loader"). Both are optional; a zero Policy
	// falls back to retry.DefaultPolicy() and a nil Reporter simply skips
	// aggregation.
	RetryPolicy retry.Policy
	Reporter    *retry.Reporter
}

// NewLoader builds a Loader with the default binary policy. maxBytes caps
// the loaded text content; zero means no cap.
func NewLoader(maxBytes int64, converter Converter) *Loader {
	return &Loader{MaxBytes: maxBytes, Policy: DefaultBinaryPolicy(), Converter: converter}
}

func (l *Loader) Name() string           { return "loader" }
func (l *Loader) InputTypes() []IOType   { return []IOType{IOBinary, IOText} }
func (l *Loader) OutputTypes() []IOType  { return []IOType{IOText, IOBinary} }
func (l *Loader) Idempotent() bool       { return false }
func (l *Loader) Heavy() bool            { return false }
func (l *Loader) Dependencies() []string { return nil }
func (l *Loader) Bucket() Bucket         { return BucketLoader }

func (l *Loader) CanTransform(rec record.FileRecord) bool {
	return rec.Content.Kind == record.ContentNone
}

func (l *Loader) Apply(ctx context.Context, rec record.FileRecord, _ map[string]any) (record.FileRecord, error) {
	if rec.Content.Kind != record.ContentNone {
		return rec, nil
	}

	data, err := l.readFile(ctx, rec.AbsolutePath, rec.Path)
	if err != nil {
		rec.Error = fmt.Errorf("reading %s: %w", rec.Path, err)
		return rec, nil
	}

	sampleLen := len(data)
	if sampleLen > binaryDetectionBytes {
		sampleLen = binaryDetectionBytes
	}
	isBinary := looksBinary(data[:sampleLen])
	rec.IsBinary = isBinary

	if !isBinary {
		content := data
		if l.MaxBytes > 0 && int64(len(content)) > l.MaxBytes {
			content = content[:l.MaxBytes]
		}
		rec.Content = record.TextContent(string(content))
		rec.Encoding = record.EncodingUTF8
		rec.ContentHash = xxh3.Hash(content)
		return rec.WithTrail(l.Name()), nil
	}

	category := categorize(rec.Path)
	action := l.Policy[category]
	if action == "" {
		action = ActionComment
	}

	switch action {
	case ActionSkip:
		rec.Content = record.PlaceholderContent("")
		rec.Encoding = record.EncodingBinary
	case ActionBase64:
		rec.Content = record.TextContent(base64.StdEncoding.EncodeToString(data))
		rec.Encoding = record.EncodingBase64
		rec.ContentHash = xxh3.Hash(data)
	case ActionConvert:
		if l.Converter == nil {
			rec.Content = record.PlaceholderContent(fmt.Sprintf("[binary file: %s]", category))
			rec.Encoding = record.EncodingBinary
			break
		}
		text, convErr := l.Converter.Convert(ctx, rec.Path, data)
		if convErr != nil {
			rec.Content = record.PlaceholderContent(fmt.Sprintf("[binary file: %s]", category))
			rec.Encoding = record.EncodingBinary
			break
		}
		rec.Content = record.TextContent(text)
		rec.Encoding = record.EncodingUTF8
	case ActionLoad:
		rec.Content = record.BytesContent(data)
		rec.Encoding = record.EncodingBinary
	default: // ActionComment
		rec.Content = record.PlaceholderContent(fmt.Sprintf("[binary file: %s]", category))
		rec.Encoding = record.EncodingBinary
	}

	return rec.WithTrail(l.Name()), nil
}

// readFile reads path's entire content with retry (component J, spec.md
// §4.J), reopening from scratch on each attempt so a transient failure
// partway through a read never leaves a torn buffer behind.
func (l *Loader) readFile(ctx context.Context, absPath, relPath string) ([]byte, error) {
	var data []byte
	err := retry.Do(ctx, l.RetryPolicy, l.Reporter, relPath, func() error {
		b, readErr := os.ReadFile(absPath)
		if readErr != nil {
			return readErr
		}
		data = b
		return nil
	})
	return data, err
}

// looksBinary applies spec.md §4.E's heuristic: a null byte, or more than
// 30% non-printable bytes in the sample.
func looksBinary(sample []byte) bool {
	if len(sample) == 0 {
		return false
	}
	if bytes.IndexByte(sample, 0) != -1 {
		return true
	}
	nonPrintable := 0
	for _, b := range sample {
		if b < 0x09 || (b > 0x0D && b < 0x20) {
			nonPrintable++
		}
	}
	return float64(nonPrintable)/float64(len(sample)) > 0.30
}

func categorize(path string) BinaryCategory {
	ext := strings.ToLower(filepath.Ext(path))
	if cat, ok := extensionCategory[ext]; ok {
		return cat
	}
	return CategoryOther
}

// Converter is the abstract document-conversion collaborator (spec.md §4.G
// "convert defers to a registered document converter"; Non-goals: "PDF
// parsing, OCR, document-to-text via an external converter" stays outside
// core). No concrete implementation ships in this repository.
type Converter interface {
	Convert(ctx context.Context, path string, data []byte) (string, error)
}
