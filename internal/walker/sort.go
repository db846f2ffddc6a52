package walker

import (
	"sort"

	"copytree/internal/record"
)

// SortKey selects the ordering applied to a buffered walk (spec.md §4.D).
// The empty SortKey means no buffering: records arrive in the order the
// walker's workers produce them.
type SortKey string

const (
	SortNone     SortKey = ""
	SortPath     SortKey = "path"
	SortSize     SortKey = "size"
	SortModified SortKey = "modified"
)

// sortRecords sorts recs in place according to key. SortPath is the default
// lexicographic-by-POSIX-path order; SortSize and SortModified are the
// documented alternates.
func sortRecords(recs []record.FileRecord, key SortKey) {
	switch key {
	case SortSize:
		sort.SliceStable(recs, func(i, j int) bool { return recs[i].Size < recs[j].Size })
	case SortModified:
		sort.SliceStable(recs, func(i, j int) bool { return recs[i].Modified.Before(recs[j].Modified) })
	default:
		sort.SliceStable(recs, func(i, j int) bool { return recs[i].Path < recs[j].Path })
	}
}
