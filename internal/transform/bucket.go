// Package transform implements the transformer registry (component F) and
// the transformation pipeline (component G) that turns stat-only
// FileRecords from the walker into content-bearing records ready for
// formatting (spec.md §4.F, §4.G).
package transform

import "fmt"

// Bucket is the dispatch-ordering bucket a transformer belongs to. Buckets
// run in ascending order for every record: the loader first (it populates
// Content from disk), then content filters, then converters, then
// heavy/AI transformers (spec.md §4.F). This is the same shape as the
// teacher's relevance.Tier — a small ordered enum matched by a first-match
// classifier — repurposed here from "relevance priority" to "dispatch
// order".
type Bucket int

const (
	BucketLoader Bucket = iota
	BucketFilter
	BucketConverter
	BucketHeavy
)

func (b Bucket) String() string {
	switch b {
	case BucketLoader:
		return "loader"
	case BucketFilter:
		return "filter"
	case BucketConverter:
		return "converter"
	case BucketHeavy:
		return "heavy"
	default:
		return fmt.Sprintf("bucket%d", int(b))
	}
}
