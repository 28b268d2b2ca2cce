package prompt

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

type manifest struct {
	Prompts []manifestEntry `yaml:"prompts"`
}

type manifestEntry struct {
	Name        string   `yaml:"name"`
	Tier        string   `yaml:"tier"`
	Components  []string `yaml:"components"`
	Temperature float32  `yaml:"temperature"`
	Description string   `yaml:"description"`
	Variables   []string `yaml:"variables"`
}

// registerManifest parses a YAML prompt manifest and registers every entry,
// validating that each registered prompt can actually be assembled.
func (r *Registry) registerManifest(data []byte) error {
	var m manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return fmt.Errorf("parse prompt manifest: %w", err)
	}
	for _, e := range m.Prompts {
		if e.Name == "" {
			return fmt.Errorf("prompt manifest entry missing name")
		}
		r.Register(e.Name, Entry{
			Tier:        Tier(e.Tier),
			Components:  e.Components,
			Temperature: e.Temperature,
			Description: e.Description,
			Variables:   e.Variables,
		})
		if err := r.Validate(e.Name); err != nil {
			return fmt.Errorf("prompt %q: %w", e.Name, err)
		}
	}
	return nil
}
