package prompt

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"
)

// Rendered is the result of assembling a prompt. When the registry path
// fails for a prompt that carries a hardcoded fallback, Text holds the
// fallback literal, Fallback is true, and FallbackReason records what went
// wrong. Callers always get usable text.
type Rendered struct {
	Text           string
	Temperature    float32
	Fallback       bool
	FallbackReason string
}

// Wrapper renders the workflow's prompts through a Registry, shielding
// callers from assembly failures on the two prompts that predate the
// component system.
type Wrapper struct {
	registry *Registry
}

func NewWrapper(registry *Registry) *Wrapper {
	return &Wrapper{registry: registry}
}

const websiteExtractionFallback = `You are a professional business analyst specializing in company research and data extraction. Your task is to extract structured company information from website content with high accuracy and completeness.

**COMPANY DETAILS:**
Company Name: {client_name}
Website URL: {website_url}

**CONTENT TO ANALYZE:**
{content_input}

**EXTRACTION INSTRUCTIONS:**
1. Carefully read through ALL content sections provided
2. Extract specific information for each field below
3. Use exact matches when found; avoid assumptions
4. For contact information, prioritize official/primary channels
5. For social media, extract complete URLs when available

**REQUIRED OUTPUT FORMAT - JSON ONLY:**
{output_schema}

Extract and return ONLY the JSON object above.`

const brandVoiceFallback = `You are a senior brand strategist with expertise in developing comprehensive brand voice profiles. Your task is to analyze the provided company information and develop a strategic brand voice framework.

{website_context}

**ANALYSIS METHODOLOGY:**
1. **Industry Context Analysis**: Consider industry norms, competitive landscape, and communication expectations
2. **Audience Segmentation**: Identify current vs. ideal audiences with specific demographic and psychographic profiles
3. **Brand Positioning**: Determine unique value proposition and market differentiation
4. **Voice Architecture**: Develop personality traits, values, and communication guidelines
5. **Strategic Recommendations**: Provide actionable guidance for brand expression

**BRAND VOICE FRAMEWORK TO DEVELOP:**

Return ONLY a valid JSON object. Do not include any explanatory text before or after the JSON.

{output_schema}

Provide strategic, actionable insights based on the company analysis.`

// brandVoiceSchemaJSON is the output frame shown to the model when building
// the brand voice analysis context. A literal keeps key order stable.
const brandVoiceSchemaJSON = `{
  "current_target_audience": "Detailed description of who they currently reach",
  "ideal_target_audience": "Strategic target audience recommendation",
  "brand_values": ["Core Value 1", "Core Value 2", "Core Value 3", "Core Value 4"],
  "brand_mission": "Clear, inspiring purpose statement that guides decision-making",
  "value_proposition": "Unique positioning statement - what makes them different",
  "brand_personality_traits": ["Trait 1", "Trait 2", "Trait 3", "Trait 4", "Trait 5"],
  "communication_tone": "Primary tone description",
  "voice_characteristics": ["Characteristic 1", "Characteristic 2", "Characteristic 3"],
  "language_level": "Communication complexity level",
  "desired_emotional_impact": ["Emotion 1", "Emotion 2", "Emotion 3"],
  "brand_archetypes": ["Primary Archetype", "Secondary Archetype"],
  "competitive_differentiation": "How they should stand apart from competitors",
  "content_themes": ["Theme 1", "Theme 2", "Theme 3", "Theme 4"],
  "words_tones_to_avoid": ["Avoid 1", "Avoid 2", "Avoid 3"],
  "messaging_priorities": ["Priority Message 1", "Priority Message 2", "Priority Message 3"]
}`

// WebsiteExtraction renders the website extraction prompt. On any registry
// failure it falls back to the pre-component literal at temperature 0.3.
func (w *Wrapper) WebsiteExtraction(clientName, websiteURL, contentInput string, schema map[string]any) Rendered {
	contextSection := buildWebsiteExtractionContext(clientName, websiteURL, contentInput, schema)
	text, entry, err := w.registry.GetWithConfig("website_extraction", map[string]string{
		"context_section": contextSection,
	})
	if err == nil {
		return Rendered{Text: text, Temperature: entry.Temperature}
	}
	log.Warn().Err(err).Msg("website extraction prompt assembly failed, using fallback")
	fallback, ferr := Format(websiteExtractionFallback, map[string]string{
		"client_name":   clientName,
		"website_url":   websiteURL,
		"content_input": contentInput,
		"output_schema": marshalSchema(schema),
	})
	if ferr != nil {
		// Fallback template variables are fixed; this cannot happen.
		fallback = websiteExtractionFallback
	}
	return Rendered{Text: fallback, Temperature: 0.3, Fallback: true, FallbackReason: err.Error()}
}

// BrandVoiceAnalysis renders the brand voice analysis prompt. On any
// registry failure it falls back to the pre-component literal at
// temperature 0.7.
func (w *Wrapper) BrandVoiceAnalysis(clientName string, websiteData map[string]any, formData map[string]string) Rendered {
	contextSection := buildBrandVoiceContext(clientName, websiteData, formData)
	text, entry, err := w.registry.GetWithConfig("brand_voice_analysis", map[string]string{
		"context_section": contextSection,
	})
	if err == nil {
		return Rendered{Text: text, Temperature: entry.Temperature}
	}
	log.Warn().Err(err).Msg("brand voice prompt assembly failed, using fallback")
	fallback, ferr := Format(brandVoiceFallback, map[string]string{
		"website_context": buildBrandVoiceOverview(clientName, websiteData, formData),
		"output_schema":   brandVoiceSchemaJSON,
	})
	if ferr != nil {
		fallback = brandVoiceFallback
	}
	return Rendered{Text: fallback, Temperature: 0.7, Fallback: true, FallbackReason: err.Error()}
}

// Render assembles any registered prompt and appends an optional context
// block. Prompts without a legacy fallback surface assembly errors.
func (w *Wrapper) Render(name string, vars map[string]string, contextBlock string) (Rendered, error) {
	text, entry, err := w.registry.GetWithConfig(name, vars)
	if err != nil {
		return Rendered{}, err
	}
	if contextBlock != "" {
		text = text + "\n\n" + contextBlock
	}
	return Rendered{Text: text, Temperature: entry.Temperature}, nil
}

func buildWebsiteExtractionContext(clientName, websiteURL, contentInput string, schema map[string]any) string {
	return fmt.Sprintf(`
**COMPANY DETAILS:**
Company Name: %s
Website URL: %s

**CONTENT TO ANALYZE:**
%s

**EXTRACTION INSTRUCTIONS:**
1. Carefully read through ALL content sections provided
2. Extract specific information for each field below
3. Use exact matches when found; avoid assumptions
4. For contact information, prioritize official/primary channels
5. For social media, extract complete URLs when available

**REQUIRED OUTPUT FORMAT - JSON ONLY:**
%s
`, clientName, websiteURL, contentInput, marshalSchema(schema))
}

func buildBrandVoiceContext(clientName string, websiteData map[string]any, formData map[string]string) string {
	return fmt.Sprintf(`%s

**BRAND VOICE FRAMEWORK TO DEVELOP:**

Return ONLY a valid JSON object. Do not include any explanatory text before or after the JSON.

%s

Provide strategic, actionable insights based on the company analysis.`,
		buildBrandVoiceOverview(clientName, websiteData, formData), brandVoiceSchemaJSON)
}

func buildBrandVoiceOverview(clientName string, websiteData map[string]any, formData map[string]string) string {
	var b strings.Builder
	fmt.Fprintf(&b, `
**COMPANY OVERVIEW:**
- Name: %s
- Industry: %s
- Description: %s
- Products/Services: %s
- Target Markets: %s
- Geographical Presence: %s
- Company Size Indicators: %s`,
		clientName,
		stringField(websiteData, "industry", "Unknown"),
		stringField(websiteData, "company_description", "Not available"),
		joinField(websiteData, "key_products_services"),
		joinField(websiteData, "target_markets"),
		stringField(websiteData, "geographical_presence", "Not specified"),
		stringField(websiteData, "company_size_indicators", "Not specified"))

	if lines := knownFormInfo(formData); len(lines) > 0 {
		b.WriteString("\n\n**EXISTING BRAND INFORMATION TO ENHANCE:**\n")
		b.WriteString(strings.Join(lines, "\n"))
	}
	return b.String()
}

// knownFormInfo formats populated intake-form fields, skipping the keys the
// overview already covers.
func knownFormInfo(formData map[string]string) []string {
	var lines []string
	for k, v := range formData {
		if v == "" || k == "website" || k == "industry" {
			continue
		}
		lines = append(lines, titleCaseKey(k)+": "+v)
	}
	sort.Strings(lines)
	return lines
}

func titleCaseKey(key string) string {
	words := strings.Split(key, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

func stringField(data map[string]any, key, fallback string) string {
	if s, ok := data[key].(string); ok && s != "" {
		return s
	}
	return fallback
}

func joinField(data map[string]any, key string) string {
	switch v := data[key].(type) {
	case []string:
		return strings.Join(v, ", ")
	case []any:
		parts := make([]string, 0, len(v))
		for _, item := range v {
			parts = append(parts, fmt.Sprint(item))
		}
		return strings.Join(parts, ", ")
	case string:
		return v
	default:
		return ""
	}
}

func marshalSchema(schema map[string]any) string {
	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return fmt.Sprint(schema)
	}
	return string(data)
}
