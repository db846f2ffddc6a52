package profile

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/segmentio/encoding/json"
	"gopkg.in/yaml.v3"
)

// Ext enumerates the supported profile file extensions, in the discovery
// priority order spec.md §4.C mandates.
type Ext string

const (
	ExtYML  Ext = ".yml"
	ExtYAML Ext = ".yaml"
	ExtJSON Ext = ".json"
	ExtINI  Ext = "" // .copytree has no extension suffix of its own
)

// DiscoveryExts lists the extensions checked, in priority order, for the
// unnamed default profile and for `--profile <name>` lookups alike.
var DiscoveryExts = []Ext{ExtYML, ExtYAML, ExtJSON, ExtINI}

// parseBytes dispatches to the format-specific parser based on ext and
// returns the normalized Profile. defaultName is used when the file itself
// does not declare a name.
func parseBytes(data []byte, ext Ext, defaultName string) (*Profile, error) {
	switch ext {
	case ExtYML, ExtYAML:
		return parseYAML(data, defaultName)
	case ExtJSON:
		return parseJSON(data, defaultName)
	case ExtINI:
		return parseINI(data, defaultName)
	default:
		return nil, fmt.Errorf("profile: unsupported extension %q", ext)
	}
}

func parseYAML(data []byte, defaultName string) (*Profile, error) {
	var raw rawProfile
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing yaml profile: %w", err)
	}
	return raw.normalize(defaultName), nil
}

func parseJSON(data []byte, defaultName string) (*Profile, error) {
	var raw rawProfile
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing json profile: %w", err)
	}
	return raw.normalize(defaultName), nil
}

// stemName derives the default profile name from a file path: the base
// name without its leading dot, its extensions and its "copytree-" prefix
// (spec.md §3 "name: ... defaults to file stem"). The unnamed .copytree.*
// files yield "".
func stemName(path string) string {
	base := strings.TrimPrefix(filepath.Base(path), ".")
	if i := strings.Index(base, "."); i >= 0 {
		base = base[:i]
	}
	if base == "copytree" {
		return ""
	}
	return strings.TrimPrefix(base, "copytree-")
}
