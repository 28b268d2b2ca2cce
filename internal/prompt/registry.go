// Package prompt assembles LLM prompts from reusable components.
//
// Prompts come in three tiers: structured prompts are composed from five
// mandatory component categories (who/what/how/why/format), simple prompts
// are single templates, and creative prompts are free-form component mixes.
// A Registry holds named prompt entries; the default set is registered from
// an embedded manifest at construction time, so there is no import-order
// coupling and no package-global state.
package prompt

import (
	"embed"
	"fmt"
	"io/fs"
	"sort"
)

//go:embed components
var componentsFS embed.FS

//go:embed prompts.yaml
var manifestYAML []byte

// Tier selects a template-assembly strategy.
type Tier string

const (
	TierStructured Tier = "structured"
	TierSimple     Tier = "simple"
	TierCreative   Tier = "creative"
)

// Entry is a registered prompt specification. Entries are immutable after
// registration; re-registering a name silently overwrites.
type Entry struct {
	Tier        Tier
	Components  []string
	Temperature float32
	Description string
	Variables   []string
}

// Registry resolves named prompts to assembled text.
type Registry struct {
	structured *StructuredBuilder
	simple     *SimpleBuilder
	creative   *CreativeBuilder
	entries    map[string]Entry
}

// NewRegistry constructs a registry over the embedded component files and
// registers the default prompt set from the embedded manifest.
func NewRegistry() (*Registry, error) {
	r := NewEmptyRegistry(componentsFS)
	if err := r.registerManifest(manifestYAML); err != nil {
		return nil, err
	}
	return r, nil
}

// NewEmptyRegistry constructs a registry with no entries, reading components
// from the given filesystem. Tests use this to register synthetic prompts.
func NewEmptyRegistry(files fs.FS) *Registry {
	return &Registry{
		structured: NewStructuredBuilder(files, "components/structured"),
		simple:     NewSimpleBuilder(files, "components/simple"),
		creative:   NewCreativeBuilder(files, "components/creative"),
		entries:    map[string]Entry{},
	}
}

// Register stores a prompt spec under name. Last registration wins.
func (r *Registry) Register(name string, entry Entry) {
	if entry.Temperature == 0 {
		entry.Temperature = 0.7
	}
	r.entries[name] = entry
}

// Get assembles the named prompt with the given variables.
func (r *Registry) Get(name string, vars map[string]string) (string, error) {
	entry, ok := r.entries[name]
	if !ok {
		return "", &ValidationError{Reason: fmt.Sprintf("prompt %q not found in registry", name)}
	}
	switch entry.Tier {
	case TierStructured:
		return r.structured.Build(entry.Components, vars)
	case TierSimple:
		if len(entry.Components) == 0 {
			return "", &ValidationError{Reason: fmt.Sprintf("prompt %q has no template", name)}
		}
		return r.simple.Build(entry.Components[0], vars)
	case TierCreative:
		return r.creative.Build(entry.Components, vars)
	default:
		return "", &ValidationError{Reason: fmt.Sprintf("unknown tier %q", entry.Tier)}
	}
}

// GetWithConfig assembles the named prompt and returns its entry so callers
// can pick up the registered temperature.
func (r *Registry) GetWithConfig(name string, vars map[string]string) (string, Entry, error) {
	entry, ok := r.entries[name]
	if !ok {
		return "", Entry{}, &ValidationError{Reason: fmt.Sprintf("prompt %q not found in registry", name)}
	}
	text, err := r.Get(name, vars)
	if err != nil {
		return "", Entry{}, err
	}
	return text, entry, nil
}

// Lookup returns the entry registered under name without assembling it.
func (r *Registry) Lookup(name string) (Entry, bool) {
	entry, ok := r.entries[name]
	return entry, ok
}

// Names lists registered prompt names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Validate reports whether the named prompt can be assembled: for the
// structured tier, all five categories must be declared and every component
// file must exist.
func (r *Registry) Validate(name string) error {
	entry, ok := r.entries[name]
	if !ok {
		return &ValidationError{Reason: fmt.Sprintf("prompt %q not found in registry", name)}
	}
	switch entry.Tier {
	case TierStructured:
		return r.structured.Check(entry.Components)
	case TierSimple, TierCreative:
		if len(entry.Components) == 0 {
			return &ValidationError{Reason: fmt.Sprintf("prompt %q has no components", name)}
		}
		return nil
	default:
		return &ValidationError{Reason: fmt.Sprintf("unknown tier %q", entry.Tier)}
	}
}
