package steps

import (
	"context"
	"fmt"

	"github.com/brandforge/brandforge/internal/workflow"
)

var voiceAuditorOutputs = []string{"voice_audit_summary", "content_analysis", "voice_patterns"}

// VoiceAuditor evaluates content samples for consistency against the brand
// profile built in earlier steps.
type VoiceAuditor struct {
	deps Deps
}

func (s *VoiceAuditor) Name() string        { return "voice_auditor" }
func (s *VoiceAuditor) Description() string {
	return "Audit voice consistency across content samples"
}
func (s *VoiceAuditor) RequiredInputs() []string {
	return []string{"client_name", "content_samples"}
}
func (s *VoiceAuditor) Dependencies() []string { return []string{"content_collector"} }
func (s *VoiceAuditor) OutputFields() []string { return voiceAuditorOutputs }

func (s *VoiceAuditor) Execute(ctx context.Context, wc *workflow.Context) workflow.StepResult {
	brandProfile := fmt.Sprintf(`
**BRAND PROFILE:**
- Company: %s
- Mission: %s
- Values: %s
- Personality: %s
- Target Audience: %s
- Communication Tone: %s`,
		wc.GetString("client_name"),
		str(wc, "brand_mission", "Not specified"),
		str(wc, "brand_values", "Not specified"),
		str(wc, "brand_personality_traits", "Not specified"),
		str(wc, "ideal_target_audience", "Not specified"),
		str(wc, "communication_tone", "Not specified"))

	contextBlock := brandProfile +
		"\n\n**CONTENT SAMPLES:**\n" + jsonDump(wc.Get("content_samples")) +
		"\n\n" + industryContext(wc)

	rendered, err := s.deps.Prompts.Render("voice_audit", nil, contextBlock)
	if err != nil {
		return workflow.Failure(s.Name(), fmt.Sprintf("Voice audit failed: %v", err))
	}
	return callModel(ctx, s.deps.Generator, s.Name(), rendered, nil, voiceAuditorOutputs)
}
