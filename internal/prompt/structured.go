package prompt

import (
	"fmt"
	"io/fs"
	"path"
	"regexp"
	"strings"
)

// requiredCategories lists the five mandatory structured-prompt categories
// in assembly order.
var requiredCategories = []string{"who", "what", "how", "why", "format"}

var categoryPrefixRe = regexp.MustCompile(`(?m)^(WHO|WHAT|HOW|WHY|FORMAT):\s*`)

// StructuredBuilder assembles five-part prompts from component files named
// <category>_<name>.txt. Completeness is mandatory: every category must be
// declared exactly once.
type StructuredBuilder struct {
	files fs.FS
	root  string
	cache map[string]string
}

// NewStructuredBuilder reads components from root inside files.
func NewStructuredBuilder(files fs.FS, root string) *StructuredBuilder {
	return &StructuredBuilder{files: files, root: root, cache: map[string]string{}}
}

// Build assembles a prompt from component specs like "who.business_analyst"
// and substitutes vars into the result.
func (b *StructuredBuilder) Build(components []string, vars map[string]string) (string, error) {
	parsed, err := b.parse(components)
	if err != nil {
		return "", err
	}
	if missing := missingCategories(parsed); len(missing) > 0 {
		return "", &ValidationError{Missing: missing}
	}

	parts := make([]string, 0, len(requiredCategories))
	for _, category := range requiredCategories {
		content, err := b.load(category, parsed[category])
		if err != nil {
			return "", err
		}
		parts = append(parts, content)
	}

	assembled := strings.Join(parts, "\n\n")
	cleaned := categoryPrefixRe.ReplaceAllString(assembled, "")
	return Format(cleaned, vars)
}

// Check verifies that components cover all five categories and that every
// referenced component file exists, without assembling anything.
func (b *StructuredBuilder) Check(components []string) error {
	parsed, err := b.parse(components)
	if err != nil {
		return err
	}
	if missing := missingCategories(parsed); len(missing) > 0 {
		return &ValidationError{Missing: missing}
	}
	for category, name := range parsed {
		if _, err := b.load(category, name); err != nil {
			return err
		}
	}
	return nil
}

func (b *StructuredBuilder) parse(components []string) (map[string]string, error) {
	parsed := make(map[string]string, len(components))
	for _, spec := range components {
		category, name, ok := strings.Cut(spec, ".")
		if !ok {
			return nil, &ValidationError{Reason: fmt.Sprintf("invalid component spec %q: expected category.name", spec)}
		}
		if _, dup := parsed[category]; dup {
			return nil, &ValidationError{Reason: fmt.Sprintf("duplicate component category %q", category)}
		}
		parsed[category] = name
	}
	return parsed, nil
}

func (b *StructuredBuilder) load(category, name string) (string, error) {
	key := category + "." + name
	if content, ok := b.cache[key]; ok {
		return content, nil
	}
	filename := path.Join(b.root, category+"_"+name+".txt")
	data, err := fs.ReadFile(b.files, filename)
	if err != nil {
		return "", &ValidationError{Reason: fmt.Sprintf("component file not found: %s", filename)}
	}
	content := strings.TrimRight(string(data), "\n")
	b.cache[key] = content
	return content, nil
}

func missingCategories(parsed map[string]string) []string {
	var missing []string
	for _, category := range requiredCategories {
		if _, ok := parsed[category]; !ok {
			missing = append(missing, category)
		}
	}
	return missing
}
