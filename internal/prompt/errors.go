package prompt

import (
	"fmt"
	"sort"
	"strings"
)

// ValidationError reports a prompt that cannot be assembled. When a
// structured prompt is missing component categories, Missing names them.
type ValidationError struct {
	Missing []string
	Reason  string
}

func (e *ValidationError) Error() string {
	if len(e.Missing) > 0 {
		missing := append([]string(nil), e.Missing...)
		sort.Strings(missing)
		return fmt.Sprintf("missing required components: %s", strings.Join(missing, ", "))
	}
	return e.Reason
}
