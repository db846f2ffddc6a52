// Package profile discovers and resolves copytree profiles: the
// .copytree.yml/.yaml/.json/.copytree files that describe which files a
// scan should include, exclude, and transform (spec.md §4.C).
package profile

// ExternalSource describes an out-of-scope external content source
// referenced by a profile (spec.md §3 "external_sources"). copytree's core
// engine never fetches these; the field is carried through unresolved for
// an outer adapter to act on.
type ExternalSource struct {
	SourceURL     string   `json:"source_url" yaml:"source_url"`
	Destination   string   `json:"destination" yaml:"destination"`
	IncludeRules  []string `json:"include_rules" yaml:"include_rules"`
}

// TransformerSpec is one entry in a profile's ordered transformers map: a
// transformer name paired with its free-form options and its declared
// position, used for intra-bucket tie-breaking (spec.md §4.F).
type TransformerSpec struct {
	Name    string
	Order   int
	Options map[string]any
}

// Profile is the resolved, merged form of spec.md §3's Profile: a name, the
// ordered include/exclude pattern lists, the ordered transformer map, and
// any external source declarations.
type Profile struct {
	// Name is the profile's label, defaulting to the source file's stem
	// (e.g. ".copytree-backend.yml" -> "backend").
	Name string

	// Include is the ordered sequence of glob patterns selecting files.
	Include []string

	// Exclude is the ordered sequence of glob patterns rejecting files.
	Exclude []string

	// Transformers is the {name -> options} map of opt-in transformers
	// (spec.md §3). Its order is Go map iteration order, not the order the
	// profile file declares them in (see rawProfile.transformerOrder).
	Transformers []TransformerSpec

	// ExternalSources is carried through unresolved; out of core scope.
	ExternalSources []ExternalSource
}

// rawProfile is the intermediate shape produced by each format-specific
// parser (YAML/JSON/INI) before normalization into a Profile. Using
// []string-typed fields that allow nil lets normalize() distinguish
// "section absent" from "section present but empty", per spec.md §4.C's
// normalization rule ("missing sections become empty sequences").
type rawProfile struct {
	Name         string                       `yaml:"name" json:"name"`
	Include      []string                     `yaml:"include" json:"include"`
	Exclude      []string                     `yaml:"exclude" json:"exclude"`
	Transformers map[string]map[string]any    `yaml:"transformers" json:"transformers"`
	// transformerOrder, when non-empty, fixes the order of Transformers.
	// None of the YAML, JSON or INI parsers sets it (the INI format has no
	// transformers section), so normalize falls back to map iteration order.
	transformerOrder []string
	External         []ExternalSource `yaml:"external_sources" json:"external_sources"`
}

// normalize converts a rawProfile into the public Profile shape, coercing
// nil slices to empty ones and stripping blank entries (spec.md §4.C
// "empty strings stripped").
func (r *rawProfile) normalize(defaultName string) *Profile {
	name := r.Name
	if name == "" {
		name = defaultName
	}

	p := &Profile{
		Name:            name,
		Include:         stripBlank(r.Include),
		Exclude:         stripBlank(r.Exclude),
		ExternalSources: r.External,
	}

	order := r.transformerOrder
	if len(order) == 0 {
		for name := range r.Transformers {
			order = append(order, name)
		}
	}
	for i, name := range order {
		opts := r.Transformers[name]
		p.Transformers = append(p.Transformers, TransformerSpec{Name: name, Order: i, Options: opts})
	}

	return p
}

func stripBlank(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
