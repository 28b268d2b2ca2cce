package jsonx

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_DirectJSON(t *testing.T) {
	t.Parallel()

	got, err := Parse(`{"a": 1}`)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"a": float64(1)}, got)
}

func TestParse_FencedJSON(t *testing.T) {
	t.Parallel()

	got, err := Parse("```json\n{\"industry\": \"Widgets\"}\n```")
	require.NoError(t, err)
	assert.Equal(t, "Widgets", got["industry"])
}

func TestParse_JSONInsideProse(t *testing.T) {
	t.Parallel()

	got, err := Parse(`Here is your JSON: {"a": 1} Thanks!`)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"a": float64(1)}, got)
}

func TestParse_TrailingComma(t *testing.T) {
	t.Parallel()

	got, err := Parse(`Sure: {"values": ["bold", "warm",], "tone": "direct",}`)
	require.NoError(t, err)
	assert.Equal(t, "direct", got["tone"])
}

func TestParse_NotJSON(t *testing.T) {
	t.Parallel()

	_, err := Parse("not json at all")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not json at all")
}

func TestParse_DiagnosticTruncatesLongInput(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("x", 500) + "{broken" + strings.Repeat("y", 500) + "}"
	_, err := Parse(long)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "starts with")
	assert.Contains(t, err.Error(), "ends with")
	// Diagnostics stay bounded regardless of response size.
	assert.Less(t, len(err.Error()), 400)
}

func TestParse_NestedObjects(t *testing.T) {
	t.Parallel()

	got, err := Parse(`The analysis: {"personas": [{"name": "Ops Lead", "age_range": "35-50"}], "count": 1} done.`)
	require.NoError(t, err)
	personas, ok := got["personas"].([]any)
	require.True(t, ok)
	require.Len(t, personas, 1)
}
