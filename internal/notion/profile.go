package notion

import (
	"fmt"
	"strings"

	"github.com/jomei/notionapi"
)

type fieldKind int

const (
	kindRichText fieldKind = iota
	kindSelect
	kindMultiSelect
)

type fieldMapping struct {
	ContextKey string // workflow context key
	Property   string // Notion property name
	Kind       fieldKind
}

// profileFields is the single source of truth for how workflow context keys
// map onto client-database properties, in both directions.
var profileFields = []fieldMapping{
	{"industry", "Industry", kindSelect},
	{"website_url", "Website", kindRichText},
	{"company_description", "Product_Service_Description", kindRichText},
	{"current_target_audience", "Current_Target_Audience", kindRichText},
	{"ideal_target_audience", "Ideal_Target_Audience", kindRichText},
	{"brand_mission", "Brand_Mission", kindRichText},
	{"brand_values", "Brand_Values", kindMultiSelect},
	{"desired_emotional_impact", "Desired_Emotional_Impact", kindMultiSelect},
	{"brand_personality_traits", "Brand_Personality", kindMultiSelect},
	{"words_tones_to_avoid", "Words_Tones_To_Avoid", kindRichText},
	{"contact_email", "Contact_Email", kindRichText},
	{"phone_number", "Phone_Number", kindRichText},
	{"address", "Address", kindRichText},
	{"linkedin_url", "LinkedIn_URL", kindRichText},
	{"twitter_url", "Twitter_URL", kindRichText},
	{"facebook_url", "Facebook_URL", kindRichText},
	{"instagram_url", "Instagram_URL", kindRichText},
	{"youtube_url", "YouTube_URL", kindRichText},
	{"other_social_media", "Other_Social_Media", kindRichText},
}

// toolProperties maps tool keys to their completion-checkbox properties.
// The first two workflow steps together form the context gatherer tool.
var toolProperties = map[string]string{
	"context_gatherer":     "Context_Gatherer_Complete",
	"content_collector":    "Content_Collector_Complete",
	"voice_auditor":        "Voice_Auditor_Complete",
	"audience_definer":     "Audience_Definer_Complete",
	"voice_traits_builder": "Voice_Traits_Builder_Complete",
	"gap_analyzer":         "Gap_Analyzer_Complete",
	"content_rewriter":     "Content_Rewriter_Complete",
	"guidelines_finalizer": "Guidelines_Finalizer_Complete",
}

// PropertiesFromContext converts workflow context values into Notion page
// properties. Keys absent from the context, or empty, are skipped so updates
// never blank out existing data.
func PropertiesFromContext(data map[string]any) notionapi.Properties {
	props := notionapi.Properties{}
	for _, f := range profileFields {
		value, ok := data[f.ContextKey]
		if !ok {
			continue
		}
		switch f.Kind {
		case kindRichText:
			if s := flattenString(value); s != "" {
				props[f.Property] = richText(s)
			}
		case kindSelect:
			if s := flattenString(value); s != "" {
				props[f.Property] = &notionapi.SelectProperty{
					Select: notionapi.Option{Name: s},
				}
			}
		case kindMultiSelect:
			items := flattenList(value)
			if len(items) == 0 {
				continue
			}
			options := make([]notionapi.Option, 0, len(items))
			for _, item := range items {
				options = append(options, notionapi.Option{Name: item})
			}
			props[f.Property] = &notionapi.MultiSelectProperty{MultiSelect: options}
		}
	}
	return props
}

// ProfileFromPage reads a client page back into a context-keyed map. The
// page id, client name, and research status ride along under fixed keys.
func ProfileFromPage(page *notionapi.Page) map[string]any {
	profile := map[string]any{"id": string(page.ID)}
	props := page.Properties

	if title, ok := props["Name"].(*notionapi.TitleProperty); ok && len(title.Title) > 0 {
		profile["client_name"] = richTextContent(title.Title[0])
	}
	if sel, ok := props["Research_Status"].(*notionapi.SelectProperty); ok && sel.Select.Name != "" {
		profile["research_status"] = sel.Select.Name
	} else {
		profile["research_status"] = "Not Started"
	}

	for _, f := range profileFields {
		prop, ok := props[f.Property]
		if !ok {
			continue
		}
		switch f.Kind {
		case kindRichText:
			if rt, ok := prop.(*notionapi.RichTextProperty); ok && len(rt.RichText) > 0 {
				profile[f.ContextKey] = richTextContent(rt.RichText[0])
			}
		case kindSelect:
			if sel, ok := prop.(*notionapi.SelectProperty); ok && sel.Select.Name != "" {
				profile[f.ContextKey] = sel.Select.Name
			}
		case kindMultiSelect:
			if ms, ok := prop.(*notionapi.MultiSelectProperty); ok && len(ms.MultiSelect) > 0 {
				values := make([]string, 0, len(ms.MultiSelect))
				for _, opt := range ms.MultiSelect {
					values = append(values, opt.Name)
				}
				profile[f.ContextKey] = values
			}
		}
	}
	return profile
}

// ToolNames lists the known tool keys in workflow order.
func ToolNames() []string {
	return []string{
		"context_gatherer", "content_collector", "voice_auditor",
		"audience_definer", "voice_traits_builder", "gap_analyzer",
		"content_rewriter", "guidelines_finalizer",
	}
}

func richTextContent(rt notionapi.RichText) string {
	if rt.Text != nil && rt.Text.Content != "" {
		return rt.Text.Content
	}
	return rt.PlainText
}

func richText(content string) *notionapi.RichTextProperty {
	return &notionapi.RichTextProperty{
		RichText: []notionapi.RichText{{Text: &notionapi.Text{Content: content}}},
	}
}

// flattenString renders a context value as prose: lists become
// comma-separated text.
func flattenString(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case []string:
		return strings.Join(v, ", ")
	case []any:
		return strings.Join(flattenList(v), ", ")
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}

// flattenList renders a context value as a list: strings split on commas.
func flattenList(value any) []string {
	switch v := value.(type) {
	case []string:
		return compactList(v)
	case []any:
		items := make([]string, 0, len(v))
		for _, item := range v {
			items = append(items, fmt.Sprint(item))
		}
		return compactList(items)
	case string:
		return compactList(strings.Split(v, ","))
	default:
		return nil
	}
}

func compactList(items []string) []string {
	out := items[:0]
	for _, item := range items {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
