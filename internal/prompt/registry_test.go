package prompt

import (
	"errors"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testComponentFS() fstest.MapFS {
	return fstest.MapFS{
		"components/structured/who_tester.txt":    {Data: []byte("WHO: You are a tester.\n")},
		"components/structured/what_check.txt":    {Data: []byte("WHAT: Check the {subject}.\n")},
		"components/structured/how_carefully.txt": {Data: []byte("HOW: Do it carefully.\n")},
		"components/structured/why_quality.txt":   {Data: []byte("WHY: Quality matters.\n")},
		"components/structured/format_json.txt":   {Data: []byte("FORMAT: Return JSON.\n")},
		"components/simple/greeting.txt":          {Data: []byte("Hello {name}!\n")},
		"components/creative/starters/hook.txt":   {Data: []byte("Start with a hook about {topic}.\n")},
		"components/creative/styles/plain.txt":    {Data: []byte("Keep it plain.\n")},
	}
}

func fullComponents() []string {
	return []string{"who.tester", "what.check", "how.carefully", "why.quality", "format.json"}
}

func TestRegistry_StructuredAssembly(t *testing.T) {
	t.Parallel()

	r := NewEmptyRegistry(testComponentFS())
	r.Register("check", Entry{Tier: TierStructured, Components: fullComponents(), Temperature: 0.4})

	out, err := r.Get("check", map[string]string{"subject": "widget"})
	require.NoError(t, err)
	assert.Equal(t, "You are a tester.\n\nCheck the widget.\n\nDo it carefully.\n\nQuality matters.\n\nReturn JSON.", out)
}

func TestRegistry_StructuredMissingCategories(t *testing.T) {
	t.Parallel()

	r := NewEmptyRegistry(testComponentFS())
	r.Register("partial", Entry{Tier: TierStructured, Components: []string{"who.tester", "what.check", "format.json"}})

	_, err := r.Get("partial", nil)
	require.Error(t, err)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.ElementsMatch(t, []string{"how", "why"}, verr.Missing)
	assert.Equal(t, "missing required components: how, why", verr.Error())
}

func TestRegistry_StructuredUnknownComponentFile(t *testing.T) {
	t.Parallel()

	r := NewEmptyRegistry(testComponentFS())
	comps := append(fullComponents()[:4:4], "format.missing")
	r.Register("broken", Entry{Tier: TierStructured, Components: comps})

	_, err := r.Get("broken", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "format_missing.txt")
}

func TestRegistry_SimpleNamedAndInline(t *testing.T) {
	t.Parallel()

	r := NewEmptyRegistry(testComponentFS())
	r.Register("named", Entry{Tier: TierSimple, Components: []string{"greeting"}})
	r.Register("inline", Entry{Tier: TierSimple, Components: []string{"Inline for {name}."}})

	out, err := r.Get("named", map[string]string{"name": "Ada"})
	require.NoError(t, err)
	assert.Equal(t, "Hello Ada!", out)

	out, err = r.Get("inline", map[string]string{"name": "Ada"})
	require.NoError(t, err)
	assert.Equal(t, "Inline for Ada.", out)
}

func TestRegistry_CreativeJoinsComponents(t *testing.T) {
	t.Parallel()

	r := NewEmptyRegistry(testComponentFS())
	r.Register("remix", Entry{Tier: TierCreative, Components: []string{"starters.hook", "styles.plain"}})

	out, err := r.Get("remix", map[string]string{"topic": "robots"})
	require.NoError(t, err)
	assert.Equal(t, "Start with a hook about robots.\n\nKeep it plain.", out)
}

func TestRegistry_UnknownPromptName(t *testing.T) {
	t.Parallel()

	r := NewEmptyRegistry(testComponentFS())
	_, err := r.Get("nope", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"nope"`)
}

func TestRegistry_LastRegistrationWins(t *testing.T) {
	t.Parallel()

	r := NewEmptyRegistry(testComponentFS())
	r.Register("p", Entry{Tier: TierSimple, Components: []string{"first {x}"}, Temperature: 0.2})
	r.Register("p", Entry{Tier: TierSimple, Components: []string{"second {x}"}, Temperature: 0.9})

	text, entry, err := r.GetWithConfig("p", map[string]string{"x": "!"})
	require.NoError(t, err)
	assert.Equal(t, "second !", text)
	assert.InDelta(t, 0.9, entry.Temperature, 1e-6)
}

func TestRegistry_DefaultTemperature(t *testing.T) {
	t.Parallel()

	r := NewEmptyRegistry(testComponentFS())
	r.Register("p", Entry{Tier: TierSimple, Components: []string{"text"}})

	entry, ok := r.Lookup("p")
	require.True(t, ok)
	assert.InDelta(t, 0.7, entry.Temperature, 1e-6)
}

func TestNewRegistry_LoadsEmbeddedManifest(t *testing.T) {
	t.Parallel()

	r, err := NewRegistry()
	require.NoError(t, err)

	names := r.Names()
	assert.Contains(t, names, "website_extraction")
	assert.Contains(t, names, "brand_voice_analysis")
	assert.Contains(t, names, "brand_voice_guidelines_synthesis")
	assert.Contains(t, names, "social_copy")

	for _, name := range names {
		assert.NoError(t, r.Validate(name), "prompt %s should validate", name)
	}

	entry, ok := r.Lookup("website_extraction")
	require.True(t, ok)
	assert.InDelta(t, 0.3, entry.Temperature, 1e-6)
	assert.Equal(t, TierStructured, entry.Tier)
}
