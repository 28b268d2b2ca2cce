package prompt

import (
	"fmt"
	"io/fs"
	"path"
	"strings"
)

// CreativeBuilder joins an arbitrary mix of component files. Unlike the
// structured tier there are no mandatory categories: components are resolved
// as <group>/<name>.txt under the builder's root and concatenated in the
// order given.
type CreativeBuilder struct {
	files fs.FS
	root  string
}

func NewCreativeBuilder(files fs.FS, root string) *CreativeBuilder {
	return &CreativeBuilder{files: files, root: root}
}

// Build loads each "group.name" component and joins them with blank lines,
// then substitutes vars.
func (b *CreativeBuilder) Build(components []string, vars map[string]string) (string, error) {
	if len(components) == 0 {
		return "", &ValidationError{Reason: "creative prompt has no components"}
	}
	parts := make([]string, 0, len(components))
	for _, spec := range components {
		group, name, ok := strings.Cut(spec, ".")
		if !ok {
			return "", &ValidationError{Reason: fmt.Sprintf("invalid component spec %q: expected group.name", spec)}
		}
		data, err := fs.ReadFile(b.files, path.Join(b.root, group, name+".txt"))
		if err != nil {
			return "", &ValidationError{Reason: fmt.Sprintf("component file not found: %s/%s/%s.txt", b.root, group, name)}
		}
		parts = append(parts, strings.TrimRight(string(data), "\n"))
	}
	return Format(strings.Join(parts, "\n\n"), vars)
}
