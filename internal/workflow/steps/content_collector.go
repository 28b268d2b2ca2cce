package steps

import (
	"context"
	"fmt"

	"github.com/brandforge/brandforge/internal/gemini"
	"github.com/brandforge/brandforge/internal/workflow"
	"google.golang.org/genai"
)

// ContentCollector catalogs the brand communications worth analyzing for
// voice, organized by channel.
type ContentCollector struct {
	deps Deps
}

func (s *ContentCollector) Name() string        { return "content_collector" }
func (s *ContentCollector) Description() string {
	return "Identify and catalog brand communications across channels"
}
func (s *ContentCollector) RequiredInputs() []string { return []string{"client_name"} }
func (s *ContentCollector) Dependencies() []string   { return []string{"brand_analyzer"} }
func (s *ContentCollector) OutputFields() []string   { return []string{"content_samples"} }

func (s *ContentCollector) Execute(ctx context.Context, wc *workflow.Context) workflow.StepResult {
	brandContext := fmt.Sprintf(`
**BRAND OVERVIEW:**
- Company: %s
- Industry: %s
- Description: %s
- Mission: %s
- Values: %s
- Target Audience: %s
- Brand Personality: %s`,
		wc.GetString("client_name"),
		str(wc, "industry", "Unknown"),
		orStr(wc, []string{"product_service_description", "company_description"}, ""),
		str(wc, "brand_mission", "Not specified"),
		str(wc, "brand_values", "Not specified"),
		orStr(wc, []string{"ideal_target_audience", "current_target_audience"}, "Not specified"),
		orStr(wc, []string{"brand_personality", "brand_personality_traits"}, "Not specified"))

	contextBlock := brandContext + "\n\n" + industryContext(wc) +
		" - Consider industry-specific communication channels and content types."

	rendered, err := s.deps.Prompts.Render("content_collection", nil, contextBlock)
	if err != nil {
		return workflow.Failure(s.Name(), fmt.Sprintf("Content collection failed: %v", err))
	}
	return callModel(ctx, s.deps.Generator, s.Name(), rendered, contentCatalogResponseSchema(), []string{"content_samples"})
}

func contentCatalogResponseSchema() *genai.Schema {
	sample := gemini.Object(map[string]*genai.Schema{
		"channel":            gemini.String("communication channel"),
		"content_type":       gemini.String("specific content type"),
		"sample_description": gemini.String("what content to collect"),
		"strategic_notes":    gemini.String("why this content matters"),
	}, "channel", "content_type", "sample_description", "strategic_notes")
	return gemini.Object(map[string]*genai.Schema{
		"content_samples": gemini.Array(sample, "content samples to collect"),
	}, "content_samples")
}
