package commons

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"
)

// LoadYAML decodes the YAML file at path into out.
func LoadYAML(path string, out interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}

	return nil
}
