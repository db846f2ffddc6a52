package transform

import (
	"cmp"
	"fmt"
	"log/slog"
	"slices"
)

// entry pairs a registered Transformer with its declared position in the
// profile's transformers map, used to break ties within a bucket (spec.md
// §4.F: "Within a bucket, ties broken by profile order").
type entry struct {
	t             Transformer
	declaredOrder int
	available     bool
}

// Registry holds transformers keyed by name and produces the ordered
// execution chain for a given profile (spec.md §4.F).
type Registry struct {
	byName map[string]*entry
	order  []*entry
	logger *slog.Logger
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		byName: make(map[string]*entry),
		logger: slog.Default().With("component", "transform-registry"),
	}
}

// conflicts declares transformer name pairs that must never both be active
// in the same profile (spec.md §4.F "mutually-exclusive transformers").
var conflicts = map[string]string{
	"strip-html":           "document-convert",
	"strip-markdown-links": "document-convert",
}

// Register adds t to the registry at declaredOrder. It validates that the
// transformer declares non-empty input/output types, probes its declared
// dependencies, and records availability (spec.md §4.F).
func (r *Registry) Register(t Transformer, declaredOrder int) error {
	if len(t.InputTypes()) == 0 || len(t.OutputTypes()) == 0 {
		return fmt.Errorf("transform: %q must declare non-empty input and output types", t.Name())
	}
	if _, exists := r.byName[t.Name()]; exists {
		return fmt.Errorf("transform: %q already registered", t.Name())
	}

	available := true
	if checker, ok := t.(DependencyChecker); ok {
		if err := checker.CheckDependencies(); err != nil {
			r.logger.Warn("transformer dependency unavailable, skipping at runtime",
				"transformer", t.Name(), "error", err)
			available = false
		}
	}

	e := &entry{t: t, declaredOrder: declaredOrder, available: available}
	r.byName[t.Name()] = e
	r.order = append(r.order, e)
	return nil
}

// ValidateActive checks that no two mutually-exclusive transformers are
// both present in the active set (spec.md §4.F).
func ValidateActive(active []string) error {
	activeSet := make(map[string]bool, len(active))
	for _, n := range active {
		activeSet[n] = true
	}
	for a, b := range conflicts {
		if activeSet[a] && activeSet[b] {
			return fmt.Errorf("transform: %q and %q are mutually exclusive", a, b)
		}
	}
	return nil
}

// Chain returns the ordered, available transformers for the given set of
// active names (as declared in the profile's transformers map, spec.md
// §3), sorted by bucket first (loader, then filter, then converter, then
// heavy) and declared profile order second — the same shape as the
// teacher's SortByRelevance (tier primary, path secondary). The loader and
// content filters always run; converters and heavy transformers are
// opt-in via the profile's transformers map. Unavailable transformers are
// silently skipped: "a record simply passes through without failure"
// (spec.md §4.F).
func (r *Registry) Chain(active []string) ([]Transformer, error) {
	if err := ValidateActive(active); err != nil {
		return nil, err
	}

	activeSet := make(map[string]bool, len(active))
	for _, n := range active {
		activeSet[n] = true
	}

	var selected []*entry
	for _, e := range r.order {
		// Mandatory loaders and filters always run; converters/heavy
		// transformers are opt-in via the profile's transformers map.
		if e.t.Bucket() == BucketHeavy || e.t.Bucket() == BucketConverter {
			if !activeSet[e.t.Name()] {
				continue
			}
		}
		if !e.available {
			continue
		}
		selected = append(selected, e)
	}

	slices.SortStableFunc(selected, func(a, b *entry) int {
		if n := cmp.Compare(a.t.Bucket(), b.t.Bucket()); n != 0 {
			return n
		}
		return cmp.Compare(a.declaredOrder, b.declaredOrder)
	})

	out := make([]Transformer, len(selected))
	for i, e := range selected {
		out[i] = e.t
	}
	return out, nil
}

// Lookup returns the registered transformer by name, if present and
// available.
func (r *Registry) Lookup(name string) (Transformer, bool) {
	e, ok := r.byName[name]
	if !ok || !e.available {
		return nil, false
	}
	return e.t, true
}
