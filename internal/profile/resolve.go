package profile

import (
	"fmt"

	"github.com/knadh/koanf/providers/confmap"
	koanf "github.com/knadh/koanf/v2"
)

// DefaultGlobalExcludes is the built-in exclude list applied on top of every
// resolution, regardless of profile (spec.md §4.C: "version-control dirs,
// node_modules, common lockfiles and binaries"). This is layered alongside,
// not instead of, the .gitignore-style ignore.Engine from component B.
var DefaultGlobalExcludes = []string{
	".git/**",
	"node_modules/**",
	"vendor/**",
	"dist/**",
	"build/**",
	"*.lock",
	"package-lock.json",
	"yarn.lock",
	"pnpm-lock.yaml",
	"*.exe",
	"*.dll",
	"*.so",
	"*.dylib",
}

// ResolveOptions carries every input to profile resolution (spec.md §4.C).
type ResolveOptions struct {
	// Dir is the directory searched for .copytree.* profile files.
	Dir string

	// ProfileName selects a named profile ("" for the unnamed default).
	ProfileName string

	// CLIFilter is the --filter flag value. When non-empty it
	// entirely replaces the profile's Include list (spec.md §4.C).
	CLIFilter []string

	// CLIExclude is the --exclude flag value. It is concatenated ahead of
	// the profile's Exclude list (spec.md §4.C: "CLI first").
	CLIExclude []string
}

// Resolved is the fully merged result of profile resolution, ready to drive
// the walker's include/exclude matching (component D).
type Resolved struct {
	Profile        *Profile
	Include        []string
	Exclude        []string
	GlobalExcludes []string
}

// Resolve discovers the named profile (or the unnamed default) under
// opts.Dir, merges it with CLI overrides, and always layers the built-in
// global excludes on top (spec.md §4.C).
func Resolve(opts ResolveOptions) (*Resolved, error) {
	p, err := Discover(opts.Dir, opts.ProfileName)
	if err != nil {
		return nil, err
	}
	if p == nil {
		// No profile found and none was explicitly requested: synthesize
		// the built-in default ("include **/* minus built-in excludes").
		p = &Profile{Name: "default", Include: []string{"**/*"}}
	}

	// Layer include/exclude through koanf. The merge rule itself (replace
	// vs. concatenate) is bespoke per spec.md §4.C rather than koanf's
	// generic last-write-wins, and no per-field source is recorded.
	k := koanf.New(".")
	if err := k.Load(confmap.Provider(map[string]any{
		"include": p.Include,
		"exclude": p.Exclude,
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("profile: loading profile layer: %w", err)
	}

	include := k.Strings("include")
	if len(opts.CLIFilter) > 0 {
		include = opts.CLIFilter
	}

	exclude := append(append([]string{}, opts.CLIExclude...), k.Strings("exclude")...)

	if err := k.Load(confmap.Provider(map[string]any{
		"include": include,
		"exclude": exclude,
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("profile: loading cli layer: %w", err)
	}

	return &Resolved{
		Profile:        p,
		Include:        k.Strings("include"),
		Exclude:        k.Strings("exclude"),
		GlobalExcludes: append([]string{}, DefaultGlobalExcludes...),
	}, nil
}
