package prompt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormat_SubstitutesVariables(t *testing.T) {
	t.Parallel()

	out, err := Format("Hello {name}, welcome to {place}.", map[string]string{
		"name":  "Acme",
		"place": "the workshop",
	})
	require.NoError(t, err)
	assert.Equal(t, "Hello Acme, welcome to the workshop.", out)
}

func TestFormat_MissingVariableIsError(t *testing.T) {
	t.Parallel()

	_, err := Format("Hello {name} from {city}.", map[string]string{"name": "Acme"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "city")
	assert.NotContains(t, err.Error(), "name,")
}

func TestFormat_ExtraVariablesIgnored(t *testing.T) {
	t.Parallel()

	out, err := Format("Just {one}.", map[string]string{"one": "this", "unused": "that"})
	require.NoError(t, err)
	assert.Equal(t, "Just this.", out)
}

func TestFormat_DoubledBracesEscape(t *testing.T) {
	t.Parallel()

	out, err := Format(`Schema: {{"key": "{value}"}}`, map[string]string{"value": "v1"})
	require.NoError(t, err)
	assert.Equal(t, `Schema: {"key": "v1"}`, out)
}

func TestFormat_ValueWithBracesNotRescanned(t *testing.T) {
	t.Parallel()

	out, err := Format("Body: {body}", map[string]string{"body": `{"nested": "{x}"}`})
	require.NoError(t, err)
	assert.Equal(t, `Body: {"nested": "{x}"}`, out)
}
