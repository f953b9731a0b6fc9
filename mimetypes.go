package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// TypeOverrides maps file extensions to MIME types. It supplements content
// sniffing for formats whose bytes carry no recognizable signature, e.g.
// plain-text DSLs that should report a vendor type.
type TypeOverrides struct {
	byExtension map[string]string
}

// loadTypeOverrides reads types.yml from the standard config locations.
// A missing file is not an error; the override map is simply empty.
func loadTypeOverrides() (*TypeOverrides, error) {
	configPaths := []string{}
	if home, err := os.UserHomeDir(); err == nil {
		configPaths = append(configPaths, filepath.Join(home, ".config", "check"))
	}
	configPaths = append(configPaths, ".") // Current directory

	var overridePath string
	for _, p := range configPaths {
		testPath := filepath.Join(p, "types.yml")
		if _, err := os.Stat(testPath); err == nil {
			overridePath = testPath
			break
		}
	}
	if overridePath == "" {
		return &TypeOverrides{}, nil
	}

	yamlFile, err := os.ReadFile(overridePath)
	if err != nil {
		return nil, fmt.Errorf("error reading type override file %s: %w", overridePath, err)
	}

	overrides, err := parseTypeOverrides(yamlFile)
	if err != nil {
		return nil, fmt.Errorf("error parsing type override file %s: %w", overridePath, err)
	}
	logger.Debug().Str("path", overridePath).Int("entries", len(overrides.byExtension)).
		Msg("loaded MIME type overrides")
	return overrides, nil
}

// parseTypeOverrides builds the lookup map from a YAML mapping of extension
// to MIME type. Keys are normalized to a lowercase ".ext" form so "Go", "go"
// and ".go" all address the same entry.
func parseTypeOverrides(data []byte) (*TypeOverrides, error) {
	var raw map[string]string
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	overrides := &TypeOverrides{byExtension: make(map[string]string, len(raw))}
	for ext, mime := range raw {
		lowerExt := strings.ToLower(ext)
		if !strings.HasPrefix(lowerExt, ".") {
			lowerExt = "." + lowerExt
		}
		if overrides.byExtension[lowerExt] == "" { // First entry wins on duplicates
			overrides.byExtension[lowerExt] = mime
		}
	}
	return overrides, nil
}

// Lookup returns the override MIME type for the file's extension.
func (t *TypeOverrides) Lookup(path string) (string, bool) {
	if t == nil || t.byExtension == nil {
		return "", false
	}
	ext := strings.ToLower(filepath.Ext(path))
	if ext == "" {
		return "", false
	}
	mime, ok := t.byExtension[ext]
	return mime, ok
}
