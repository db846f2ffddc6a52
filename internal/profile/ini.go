package profile

import (
	"bufio"
	"bytes"
	"fmt"
	"strings"
)

// parseINI parses the legacy `.copytree` INI dialect: a `[profile]` section
// of scalar key=value pairs (currently just `name`), and `[include]` /
// `[exclude]` sections whose lines are glob patterns, one per line, in
// declaration order (spec.md §4.C). This hand-written scanner is the one
// ambient parsing concern left on the standard library: no INI library
// appears anywhere in the retrieved corpus (see DESIGN.md).
func parseINI(data []byte, defaultName string) (*Profile, error) {
	raw := &rawProfile{}
	section := ""

	scanner := bufio.NewScanner(bytes.NewReader(data))
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, ";") {
			continue
		}

		if strings.HasPrefix(line, "[") {
			if !strings.HasSuffix(line, "]") {
				return nil, fmt.Errorf("profile: malformed section header at line %d: %q", lineNo, line)
			}
			section = strings.ToLower(strings.TrimSpace(line[1 : len(line)-1]))
			continue
		}

		switch section {
		case "profile":
			key, value, ok := splitKV(line)
			if ok && strings.EqualFold(key, "name") {
				raw.Name = value
			}
		case "include":
			raw.Include = append(raw.Include, iniPatternValue(line))
		case "exclude":
			raw.Exclude = append(raw.Exclude, iniPatternValue(line))
		default:
			// Unknown section: ignored, matching spec.md §4.C's "missing
			// sections become empty sequences" tolerance for the reverse
			// case (unexpected sections are likewise harmless).
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("profile: reading ini: %w", err)
	}

	return raw.normalize(defaultName), nil
}

// splitKV splits a "key = value" or "key=value" line into its parts.
func splitKV(line string) (key, value string, ok bool) {
	idx := strings.IndexByte(line, '=')
	if idx < 0 {
		return "", "", false
	}
	return strings.TrimSpace(line[:idx]), strings.TrimSpace(line[idx+1:]), true
}

// iniPatternValue accepts either a bare pattern line or a "pattern = ..."
// form (the value is ignored; only the key is a glob pattern in this
// dialect).
func iniPatternValue(line string) string {
	if key, _, ok := splitKV(line); ok {
		return key
	}
	return line
}
