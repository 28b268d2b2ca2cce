package notion

import (
	"testing"

	"github.com/jomei/notionapi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPropertiesFromContext_MapsKinds(t *testing.T) {
	t.Parallel()

	props := PropertiesFromContext(map[string]any{
		"industry":                "Manufacturing",
		"brand_mission":           "Drop heavy things precisely",
		"brand_values":            []any{"Precision", "Durability"},
		"words_tones_to_avoid":    []any{"cheap", "flimsy"},
		"contact_email":           "sales@acme.example",
		"ignored_key":             "nothing",
		"current_target_audience": "",
	})

	sel, ok := props["Industry"].(*notionapi.SelectProperty)
	require.True(t, ok)
	assert.Equal(t, "Manufacturing", sel.Select.Name)

	rt, ok := props["Brand_Mission"].(*notionapi.RichTextProperty)
	require.True(t, ok)
	assert.Equal(t, "Drop heavy things precisely", rt.RichText[0].Text.Content)

	ms, ok := props["Brand_Values"].(*notionapi.MultiSelectProperty)
	require.True(t, ok)
	require.Len(t, ms.MultiSelect, 2)
	assert.Equal(t, "Precision", ms.MultiSelect[0].Name)

	// Array values headed for rich-text fields flatten to comma-joined text.
	avoid, ok := props["Words_Tones_To_Avoid"].(*notionapi.RichTextProperty)
	require.True(t, ok)
	assert.Equal(t, "cheap, flimsy", avoid.RichText[0].Text.Content)

	assert.NotContains(t, props, "Current_Target_Audience")
	assert.NotContains(t, props, "ignored_key")
}

func TestPropertiesFromContext_SplitsCommaStringsForMultiSelect(t *testing.T) {
	t.Parallel()

	props := PropertiesFromContext(map[string]any{
		"brand_values": "Precision, Durability , Craft",
	})

	ms, ok := props["Brand_Values"].(*notionapi.MultiSelectProperty)
	require.True(t, ok)
	names := make([]string, 0, len(ms.MultiSelect))
	for _, opt := range ms.MultiSelect {
		names = append(names, opt.Name)
	}
	assert.Equal(t, []string{"Precision", "Durability", "Craft"}, names)
}

func TestProfileFromPage_RoundTripsMappedFields(t *testing.T) {
	t.Parallel()

	page := &notionapi.Page{
		ID: "page-1",
		Properties: notionapi.Properties{
			"Name": &notionapi.TitleProperty{
				Title: []notionapi.RichText{{Text: &notionapi.Text{Content: "Acme Corp"}}},
			},
			"Industry": &notionapi.SelectProperty{Select: notionapi.Option{Name: "Manufacturing"}},
			"Brand_Mission": &notionapi.RichTextProperty{
				RichText: []notionapi.RichText{{Text: &notionapi.Text{Content: "Drop heavy things"}}},
			},
			"Brand_Values": &notionapi.MultiSelectProperty{
				MultiSelect: []notionapi.Option{{Name: "Precision"}, {Name: "Durability"}},
			},
			"Research_Status": &notionapi.SelectProperty{Select: notionapi.Option{Name: "In Progress"}},
		},
	}

	profile := ProfileFromPage(page)

	assert.Equal(t, "page-1", profile["id"])
	assert.Equal(t, "Acme Corp", profile["client_name"])
	assert.Equal(t, "Manufacturing", profile["industry"])
	assert.Equal(t, "Drop heavy things", profile["brand_mission"])
	assert.Equal(t, []string{"Precision", "Durability"}, profile["brand_values"])
	assert.Equal(t, "In Progress", profile["research_status"])
}

func TestProfileFromPage_DefaultsResearchStatus(t *testing.T) {
	t.Parallel()

	profile := ProfileFromPage(&notionapi.Page{ID: "p", Properties: notionapi.Properties{}})
	assert.Equal(t, "Not Started", profile["research_status"])
}

func TestToolNames_CoverAllToolProperties(t *testing.T) {
	t.Parallel()

	names := ToolNames()
	assert.Len(t, names, len(toolProperties))
	for _, name := range names {
		assert.Contains(t, toolProperties, name)
	}
}
