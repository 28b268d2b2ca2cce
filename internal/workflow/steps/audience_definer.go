package steps

import (
	"context"
	"fmt"

	"github.com/brandforge/brandforge/internal/workflow"
)

var audienceDefinerOutputs = []string{"detailed_personas", "audience_segments", "persona_insights"}

// AudienceDefiner synthesizes a detailed audience persona from the brand,
// content, and voice data gathered so far.
type AudienceDefiner struct {
	deps Deps
}

func (s *AudienceDefiner) Name() string        { return "audience_definer" }
func (s *AudienceDefiner) Description() string {
	return "Develop a detailed audience persona from workflow insights"
}
func (s *AudienceDefiner) RequiredInputs() []string { return []string{"client_name"} }
func (s *AudienceDefiner) Dependencies() []string   { return []string{"voice_auditor"} }
func (s *AudienceDefiner) OutputFields() []string   { return audienceDefinerOutputs }

func (s *AudienceDefiner) Execute(ctx context.Context, wc *workflow.Context) workflow.StepResult {
	brandContext := fmt.Sprintf(`
**BRAND CONTEXT:**
- Company: %s
- Industry: %s
- Target Audience: %s
- Brand Values: %s`,
		wc.GetString("client_name"),
		str(wc, "industry", "Unknown"),
		str(wc, "ideal_target_audience", "Not specified"),
		str(wc, "brand_values", "Not specified"))

	contextBlock := brandContext +
		"\n\n**CONTENT INSIGHTS:**\n" + jsonDump(wc.Get("content_samples")) +
		"\n\n**VOICE INSIGHTS:**\n" + jsonDump(wc.Get("voice_audit_summary")) +
		"\n\n" + industryContext(wc)

	rendered, err := s.deps.Prompts.Render("audience_definer", nil, contextBlock)
	if err != nil {
		return workflow.Failure(s.Name(), fmt.Sprintf("Audience definition failed: %v", err))
	}
	return callModel(ctx, s.deps.Generator, s.Name(), rendered, nil, audienceDefinerOutputs)
}
