package prompt

import (
	"io/fs"
	"path"
	"strings"
)

// SimpleBuilder renders single-template prompts. A template is either an
// inline string (anything containing whitespace or a placeholder) or the
// name of a .txt file under the builder's root.
type SimpleBuilder struct {
	files fs.FS
	root  string
}

func NewSimpleBuilder(files fs.FS, root string) *SimpleBuilder {
	return &SimpleBuilder{files: files, root: root}
}

// Build resolves template to its text and substitutes vars.
func (b *SimpleBuilder) Build(template string, vars map[string]string) (string, error) {
	text, err := b.resolve(template)
	if err != nil {
		return "", err
	}
	return Format(text, vars)
}

func (b *SimpleBuilder) resolve(template string) (string, error) {
	if strings.ContainsAny(template, " \t\n{") {
		return template, nil
	}
	data, err := fs.ReadFile(b.files, path.Join(b.root, template+".txt"))
	if err != nil {
		// Not a known file name; treat it as a literal template.
		return template, nil
	}
	return strings.TrimRight(string(data), "\n"), nil
}
