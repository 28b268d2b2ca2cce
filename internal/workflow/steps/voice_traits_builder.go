package steps

import (
	"context"
	"fmt"

	"github.com/brandforge/brandforge/internal/workflow"
)

var voiceTraitsOutputs = []string{"voice_traits", "actionable_guidelines", "communication_framework"}

// VoiceTraitsBuilder turns the accumulated insights into concrete voice
// traits with Do/Don't guidance.
type VoiceTraitsBuilder struct {
	deps Deps
}

func (s *VoiceTraitsBuilder) Name() string        { return "voice_traits_builder" }
func (s *VoiceTraitsBuilder) Description() string {
	return "Extract persona-driven voice traits with Do/Don't guidance"
}
func (s *VoiceTraitsBuilder) RequiredInputs() []string { return []string{"client_name"} }
func (s *VoiceTraitsBuilder) Dependencies() []string   { return []string{"audience_definer"} }
func (s *VoiceTraitsBuilder) OutputFields() []string   { return voiceTraitsOutputs }

func (s *VoiceTraitsBuilder) Execute(ctx context.Context, wc *workflow.Context) workflow.StepResult {
	insights := map[string]any{
		"brand_data": map[string]any{
			"mission":     wc.Get("brand_mission"),
			"values":      wc.Get("brand_values"),
			"personality": wc.Get("brand_personality_traits"),
		},
		"audience_data": wc.Get("detailed_personas"),
		"voice_data":    wc.Get("voice_audit_summary"),
		"content_data":  wc.Get("content_samples"),
	}

	contextBlock := "**COMPREHENSIVE BRAND INSIGHTS:**\n" + jsonDump(insights) +
		"\n\n**AUDIENCE PERSONAS:**\n" + jsonDump(wc.Get("detailed_personas")) +
		"\n\n**VOICE AUDIT RESULTS:**\n" + jsonDump(wc.Get("voice_audit_summary")) +
		"\n\n" + industryContext(wc)

	rendered, err := s.deps.Prompts.Render("voice_traits_builder", nil, contextBlock)
	if err != nil {
		return workflow.Failure(s.Name(), fmt.Sprintf("Voice traits building failed: %v", err))
	}
	return callModel(ctx, s.deps.Generator, s.Name(), rendered, nil, voiceTraitsOutputs)
}
