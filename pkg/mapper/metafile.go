package mapper

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Input is the result of reading a metadata file. Exactly one of the
// two fields is set: Full when the file already carries a complete
// record payload (both a metadata and an access section), which is
// then submitted as-is; Simple otherwise.
type Input struct {
	Full   map[string]any
	Simple *Metadata
}

// LoadMetadataFile reads a JSON or YAML metadata file.
func LoadMetadataFile(path string) (*Input, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var m map[string]any
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		if err := json.Unmarshal(raw, &m); err != nil {
			return nil, fmt.Errorf("invalid JSON in %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(raw, &m); err != nil {
			return nil, fmt.Errorf("invalid YAML in %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("unsupported metadata file format %q, use .json or .yaml", filepath.Ext(path))
	}

	if _, hasMeta := m["metadata"]; hasMeta {
		if _, hasAccess := m["access"]; hasAccess {
			return &Input{Full: m}, nil
		}
	}

	// Simplified shape; round-trip through JSON to reuse the struct tags.
	buf, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	var md Metadata
	if err := json.Unmarshal(buf, &md); err != nil {
		return nil, fmt.Errorf("invalid metadata in %s: %w", path, err)
	}
	return &Input{Simple: &md}, nil
}
