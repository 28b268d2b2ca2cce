// Package jsonx recovers JSON objects from LLM responses that may be wrapped
// in markdown fences or surrounding prose.
package jsonx

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

var (
	fenceRe        = regexp.MustCompile("(?s)```(?:json)?\n?(.*?)```")
	trailingComma  = regexp.MustCompile(`,\s*([}\]])`)
	controlCharsRe = regexp.MustCompile(`[\x00-\x08\x0b\x0c\x0e-\x1f]`)
)

const diagChars = 100

// Parse extracts a JSON object from raw model output. It tries three
// strategies in order: direct parse after fence stripping, the substring
// between the first '{' and last '}', and an aggressive cleanup pass.
// The returned error carries the head and tail of the offending text.
func Parse(raw string) (map[string]any, error) {
	// Strategy 1: strip a leading/trailing fence and parse directly.
	clean := strings.TrimSpace(raw)
	clean = strings.TrimPrefix(clean, "```json")
	clean = strings.TrimPrefix(clean, "```")
	clean = strings.TrimSuffix(clean, "```")
	clean = strings.TrimSpace(clean)

	var out map[string]any
	if err := json.Unmarshal([]byte(clean), &out); err == nil {
		return out, nil
	}

	// Strategy 2: substring between the first '{' and the last '}'.
	start := strings.IndexByte(raw, '{')
	end := strings.LastIndexByte(raw, '}')
	if start == -1 || end == -1 || end <= start {
		return nil, fmt.Errorf("no JSON brackets found in response: %s", head(raw))
	}
	if err := json.Unmarshal([]byte(raw[start:end+1]), &out); err == nil {
		return out, nil
	}

	// Strategy 3: cleanup pass over the bracketed substring.
	if err := json.Unmarshal([]byte(cleanup(raw[start:end+1])), &out); err == nil {
		return out, nil
	}

	return nil, fmt.Errorf("all JSON parsing strategies failed; response starts with: %s and ends with: %s", head(raw), tail(raw))
}

func cleanup(s string) string {
	if m := fenceRe.FindStringSubmatch(s); m != nil {
		s = m[1]
	}
	s = controlCharsRe.ReplaceAllString(s, "")
	s = trailingComma.ReplaceAllString(s, "$1")
	return strings.TrimSpace(s)
}

func head(s string) string {
	if len(s) > diagChars {
		return s[:diagChars] + "..."
	}
	return s
}

func tail(s string) string {
	if len(s) > diagChars {
		return "..." + s[len(s)-diagChars:]
	}
	return s
}
