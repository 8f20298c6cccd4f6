package manifest

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ParseError reports a manifest that could not be decoded at all.
// Per-entry problems are not errors; they land in the build Report.
type ParseError struct {
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("manifest: %s", e.Message)
}

// Parse decodes a JSON manifest.
func Parse(data []byte) (Manifest, error) {
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return Manifest{}, &ParseError{Message: "invalid JSON: " + err.Error()}
	}
	return m, nil
}

// ParseYAML decodes a YAML manifest.
func ParseYAML(data []byte) (Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return Manifest{}, &ParseError{Message: "invalid YAML: " + err.Error()}
	}
	return m, nil
}

// ParseFile reads a manifest from disk, picking the decoder by extension.
// .yaml and .yml use YAML; everything else is treated as JSON.
func ParseFile(path string) (Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Manifest{}, err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ParseYAML(data)
	default:
		return Parse(data)
	}
}
