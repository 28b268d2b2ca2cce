package prompt

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapper_WebsiteExtractionUsesRegistry(t *testing.T) {
	t.Parallel()

	r, err := NewRegistry()
	require.NoError(t, err)
	w := NewWrapper(r)

	schema := map[string]any{"company_description": "string"}
	rendered := w.WebsiteExtraction("Acme Corp", "https://acme.example", "=== HOMEPAGE ===\nWe make anvils.", schema)

	assert.False(t, rendered.Fallback)
	assert.InDelta(t, 0.3, rendered.Temperature, 1e-6)
	assert.Contains(t, rendered.Text, "Company Name: Acme Corp")
	assert.Contains(t, rendered.Text, "Website URL: https://acme.example")
	assert.Contains(t, rendered.Text, "We make anvils.")
	assert.Contains(t, rendered.Text, `"company_description": "string"`)
	assert.Contains(t, rendered.Text, "business analyst")
}

func TestWrapper_WebsiteExtractionFallsBack(t *testing.T) {
	t.Parallel()

	// Empty registry: the prompt is unregistered, so the wrapper must fall
	// back to the legacy literal without surfacing an error.
	w := NewWrapper(NewEmptyRegistry(fstest.MapFS{}))

	rendered := w.WebsiteExtraction("Acme Corp", "https://acme.example", "content", map[string]any{"industry": "string"})

	assert.True(t, rendered.Fallback)
	assert.NotEmpty(t, rendered.FallbackReason)
	assert.InDelta(t, 0.3, rendered.Temperature, 1e-6)
	assert.Contains(t, rendered.Text, "Company Name: Acme Corp")
	assert.Contains(t, rendered.Text, "Extract and return ONLY the JSON object above.")
}

func TestWrapper_BrandVoiceAnalysisUsesRegistry(t *testing.T) {
	t.Parallel()

	r, err := NewRegistry()
	require.NoError(t, err)
	w := NewWrapper(r)

	websiteData := map[string]any{
		"industry":              "Manufacturing",
		"company_description":   "Anvil maker",
		"key_products_services": []any{"anvils", "hammers"},
	}
	rendered := w.BrandVoiceAnalysis("Acme Corp", websiteData, map[string]string{
		"brand_mission": "Drop heavy things precisely",
		"website":       "https://acme.example",
	})

	assert.False(t, rendered.Fallback)
	assert.InDelta(t, 0.7, rendered.Temperature, 1e-6)
	assert.Contains(t, rendered.Text, "- Industry: Manufacturing")
	assert.Contains(t, rendered.Text, "anvils, hammers")
	assert.Contains(t, rendered.Text, "Brand Mission: Drop heavy things precisely")
	// The website key is covered by the overview and must not repeat.
	assert.NotContains(t, rendered.Text, "Website: https://acme.example")
	assert.Contains(t, rendered.Text, `"brand_archetypes"`)
}

func TestWrapper_BrandVoiceAnalysisFallsBack(t *testing.T) {
	t.Parallel()

	w := NewWrapper(NewEmptyRegistry(fstest.MapFS{}))

	rendered := w.BrandVoiceAnalysis("Acme Corp", map[string]any{}, nil)

	assert.True(t, rendered.Fallback)
	assert.InDelta(t, 0.7, rendered.Temperature, 1e-6)
	assert.Contains(t, rendered.Text, "senior brand strategist")
	assert.Contains(t, rendered.Text, "- Name: Acme Corp")
	assert.Contains(t, rendered.Text, "- Industry: Unknown")
}

func TestWrapper_RenderAppendsContextBlock(t *testing.T) {
	t.Parallel()

	r, err := NewRegistry()
	require.NoError(t, err)
	w := NewWrapper(r)

	rendered, err := w.Render("voice_audit", nil, "**BRAND PROFILE:**\n- Company: Acme Corp")
	require.NoError(t, err)
	assert.InDelta(t, 0.6, rendered.Temperature, 1e-6)
	assert.Contains(t, rendered.Text, "voice audit")
	assert.Contains(t, rendered.Text, "**BRAND PROFILE:**\n- Company: Acme Corp")
}

func TestWrapper_RenderUnknownPromptErrors(t *testing.T) {
	t.Parallel()

	r, err := NewRegistry()
	require.NoError(t, err)
	w := NewWrapper(r)

	_, err = w.Render("no_such_prompt", nil, "")
	require.Error(t, err)
}
