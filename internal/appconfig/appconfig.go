// Package appconfig loads copytree's app-level configuration: cache
// directory, default concurrency, and log format/level (SPEC_FULL.md §6
// expansion). Callers load it with Load and pass the resulting Config
// explicitly rather than reading it back out of a package-level singleton
// (SPEC_FULL.md §9 Design Notes: "Implicit singletons"). The copytree CLI
// does not call Load, so a config.toml file has no effect on CLI runs.
package appconfig

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config is the decoded shape of ~/.config/copytree/config.toml.
type Config struct {
	CacheDir    string `toml:"cache_dir"`
	Concurrency int    `toml:"concurrency"`
	LogFormat   string `toml:"log_format"`
	LogLevel    string `toml:"log_level"`
}

// Default returns the zero-configuration Config: an empty CacheDir (callers
// fall back to "~/.copytree/cache"), Concurrency 0 (callers fall back to
// runtime.NumCPU()), text logging at info level.
func Default() Config {
	return Config{LogFormat: "text", LogLevel: "info"}
}

// LoadFromFile reads and decodes a TOML config file at path. Unknown keys
// are logged as warnings, not treated as errors, so older configs keep
// working after the schema grows.
func LoadFromFile(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("appconfig: parsing %s: %w", path, err)
	}
	warnUndecodedKeys(meta, path)
	return cfg, nil
}

func warnUndecodedKeys(meta toml.MetaData, source string) {
	undecoded := meta.Undecoded()
	if len(undecoded) == 0 {
		return
	}
	keys := make([]string, 0, len(undecoded))
	for _, k := range undecoded {
		keys = append(keys, k.String())
	}
	slog.Warn("unknown config keys will be ignored", "source", source, "keys", strings.Join(keys, ", "))
}

// DiscoverGlobalConfig returns the path to "~/.config/copytree/config.toml"
// (or $XDG_CONFIG_HOME/copytree/config.toml), or "" if it doesn't exist. No
// error is returned for a missing file.
func DiscoverGlobalConfig() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", fmt.Errorf("appconfig: resolving config dir: %w", err)
	}
	path := filepath.Join(dir, "copytree", "config.toml")
	if _, statErr := os.Stat(path); statErr != nil {
		if os.IsNotExist(statErr) {
			return "", nil
		}
		return "", fmt.Errorf("appconfig: stat %s: %w", path, statErr)
	}
	return path, nil
}

func configDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return xdg, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config"), nil
}

// Load resolves the global config file (if any) and decodes it, falling
// back to Default() when none is found.
func Load() (Config, error) {
	path, err := DiscoverGlobalConfig()
	if err != nil {
		return Config{}, err
	}
	if path == "" {
		return Default(), nil
	}
	return LoadFromFile(path)
}

// current holds the process-wide config set by SetCurrent, backing the
// deprecated Current() accessor below. Ordinary call paths never read
// this; appconfig.Config is passed explicitly instead.
var current = Default()

// SetCurrent records cfg for the deprecated Current() accessor. The CLI
// never calls it, so Current() returns Default() during CLI runs.
func SetCurrent(cfg Config) { current = cfg }

// Current returns the last Config passed to SetCurrent. Deprecated: kept
// for backwards compatibility only; prefer threading Config explicitly.
func Current() Config { return current }
