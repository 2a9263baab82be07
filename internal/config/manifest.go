package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Manifest is the YAML side-file listing extra inputs, referenced from the
// CUE config's manifest field.
type Manifest struct {
	Inputs []string `yaml:"inputs"`
}

// LoadManifest reads a YAML manifest and returns its inputs. Blank entries
// are rejected rather than silently skipped, since a blank input is almost
// always an indentation mistake.
func LoadManifest(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("invalid manifest: %v", err)
	}
	for i, in := range m.Inputs {
		if strings.TrimSpace(in) == "" {
			return nil, fmt.Errorf("invalid manifest: inputs[%d] is blank", i)
		}
	}
	return m.Inputs, nil
}
