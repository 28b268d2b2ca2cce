package steps

import (
	"context"

	"github.com/brandforge/brandforge/internal/gemini"
	"github.com/brandforge/brandforge/internal/workflow"
	"google.golang.org/genai"
)

var brandAnalyzerOutputs = []string{
	"current_target_audience", "ideal_target_audience", "brand_values",
	"brand_mission", "value_proposition", "brand_personality_traits",
	"communication_tone", "voice_characteristics", "language_level",
	"desired_emotional_impact", "brand_archetypes", "competitive_differentiation",
	"content_themes", "words_tones_to_avoid", "messaging_priorities",
}

// websiteDataKeys are step 1 outputs fed into the analysis context.
var websiteDataKeys = []string{
	"industry", "company_description", "key_products_services",
	"target_markets", "geographical_presence", "company_size_indicators",
}

// formDataKeys are intake-form fields that enhance the analysis when known.
var formDataKeys = []string{
	"product_service_description", "current_target_audience", "ideal_target_audience",
	"brand_values", "brand_mission", "desired_emotional_impact",
	"brand_personality", "words_tones_to_avoid",
}

// BrandAnalyzer develops the strategic brand voice framework from website
// data and any existing brand information.
type BrandAnalyzer struct {
	deps Deps
}

func (s *BrandAnalyzer) Name() string        { return "brand_analyzer" }
func (s *BrandAnalyzer) Description() string {
	return "Develop a comprehensive brand voice framework from company data"
}
func (s *BrandAnalyzer) RequiredInputs() []string { return []string{"client_name"} }
func (s *BrandAnalyzer) Dependencies() []string   { return []string{"website_extractor"} }
func (s *BrandAnalyzer) OutputFields() []string   { return brandAnalyzerOutputs }

func (s *BrandAnalyzer) Execute(ctx context.Context, wc *workflow.Context) workflow.StepResult {
	clientName := wc.GetString("client_name")

	websiteData := map[string]any{}
	for _, key := range websiteDataKeys {
		if v := wc.Get(key); v != nil {
			websiteData[key] = v
		}
	}
	formData := map[string]string{}
	for _, key := range formDataKeys {
		if v := str(wc, key, ""); v != "" {
			formData[key] = v
		}
	}

	rendered := s.deps.Prompts.BrandVoiceAnalysis(clientName, websiteData, formData)
	return callModel(ctx, s.deps.Generator, s.Name(), rendered, brandVoiceResponseSchema(), brandAnalyzerOutputs)
}

func brandVoiceResponseSchema() *genai.Schema {
	props := map[string]*genai.Schema{
		"current_target_audience":     gemini.String("who they currently reach"),
		"ideal_target_audience":       gemini.String("strategic target audience"),
		"brand_values":                gemini.StringArray("core brand values"),
		"brand_mission":               gemini.String("purpose statement"),
		"value_proposition":           gemini.String("unique positioning"),
		"brand_personality_traits":    gemini.StringArray("personality traits"),
		"communication_tone":          gemini.String("primary tone"),
		"voice_characteristics":       gemini.StringArray("voice characteristics"),
		"language_level":              gemini.String("communication complexity"),
		"desired_emotional_impact":    gemini.StringArray("desired emotions"),
		"brand_archetypes":            gemini.StringArray("brand archetypes"),
		"competitive_differentiation": gemini.String("how to stand apart"),
		"content_themes":              gemini.StringArray("content themes"),
		"words_tones_to_avoid":        gemini.StringArray("words and tones to avoid"),
		"messaging_priorities":        gemini.StringArray("priority messages"),
	}
	return gemini.Object(props, "brand_mission", "communication_tone")
}
