package prompt

import (
	"fmt"
	"regexp"
	"strings"
)

var placeholderRe = regexp.MustCompile(`\{([a-zA-Z_][a-zA-Z0-9_]*)\}`)

const (
	openBraceSentinel  = "\x00"
	closeBraceSentinel = "\x01"
)

// Format substitutes {name} placeholders in template from vars. A
// placeholder with no matching variable is an error; supplied variables
// without a placeholder are ignored. Doubled braces escape to literals.
func Format(template string, vars map[string]string) (string, error) {
	s := strings.ReplaceAll(template, "{{", openBraceSentinel)
	s = strings.ReplaceAll(s, "}}", closeBraceSentinel)

	var missing []string
	s = placeholderRe.ReplaceAllStringFunc(s, func(m string) string {
		name := m[1 : len(m)-1]
		value, ok := vars[name]
		if !ok {
			missing = append(missing, name)
			return m
		}
		return value
	})
	if len(missing) > 0 {
		return "", fmt.Errorf("template references undefined variables: %s", strings.Join(missing, ", "))
	}

	s = strings.ReplaceAll(s, openBraceSentinel, "{")
	s = strings.ReplaceAll(s, closeBraceSentinel, "}")
	return s, nil
}
