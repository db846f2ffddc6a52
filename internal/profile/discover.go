package profile

import (
	"fmt"
	"os"
	"path/filepath"
)

// Error is ProfileNotFound when a named profile is explicitly requested but
// no matching file exists across any supported extension (spec.md §4.C).
type Error struct {
	Code string
	Name string
}

func (e *Error) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("profile: %s", e.Code)
	}
	return fmt.Sprintf("profile: %s: %s", e.Code, e.Name)
}

const ErrProfileNotFound = "profile_not_found"

// filenames returns the candidate file names for the given profile name (or
// the empty string for the default profile), in discovery priority order:
// .copytree.yml, .copytree.yaml, .copytree.json, .copytree.
func filenames(dir, name string) []string {
	base := ".copytree"
	if name != "" {
		base = ".copytree-" + name
	}
	return []string{
		filepath.Join(dir, base+".yml"),
		filepath.Join(dir, base+".yaml"),
		filepath.Join(dir, base+".json"),
		filepath.Join(dir, base),
	}
}

func extOf(path string) Ext {
	switch filepath.Ext(path) {
	case ".yml":
		return ExtYML
	case ".yaml":
		return ExtYAML
	case ".json":
		return ExtJSON
	default:
		return ExtINI
	}
}

// Discover finds and parses a profile in dir. When name is empty, the
// unnamed default profile is searched for; a miss is not an error — the
// caller falls back to the built-in default profile (spec.md §4.C: "exactly
// one 'default' behavior in the absence of any profile"). When name is
// non-empty, a miss returns a *Error with Code == ErrProfileNotFound, since
// an explicitly requested profile must exist.
func Discover(dir, name string) (*Profile, error) {
	for _, path := range filenames(dir, name) {
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("profile: reading %s: %w", path, err)
		}

		defaultName := stemName(path)
		if defaultName == "" || defaultName == ".copytree" {
			defaultName = "default"
		}

		p, err := parseBytes(data, extOf(path), defaultName)
		if err != nil {
			return nil, fmt.Errorf("profile: %s: %w", path, err)
		}
		return p, nil
	}

	if name != "" {
		return nil, &Error{Code: ErrProfileNotFound, Name: name}
	}
	return nil, nil
}
