package steps

import (
	"context"
	"fmt"

	"github.com/brandforge/brandforge/internal/workflow"
)

var guidelinesOutputs = []string{"brand_voice_guidelines", "implementation_roadmap", "final_document"}

// GuidelinesFinalizer synthesizes every prior insight into the complete
// brand voice guidelines document.
type GuidelinesFinalizer struct {
	deps Deps
}

func (s *GuidelinesFinalizer) Name() string        { return "guidelines_finalizer" }
func (s *GuidelinesFinalizer) Description() string {
	return "Synthesize all insights into complete brand voice guidelines"
}
func (s *GuidelinesFinalizer) RequiredInputs() []string { return []string{"client_name"} }
func (s *GuidelinesFinalizer) Dependencies() []string   { return []string{"content_rewriter"} }
func (s *GuidelinesFinalizer) OutputFields() []string   { return guidelinesOutputs }

func (s *GuidelinesFinalizer) Execute(ctx context.Context, wc *workflow.Context) workflow.StepResult {
	insights := map[string]any{
		"brand_foundation": map[string]any{
			"mission":     wc.Get("brand_mission"),
			"values":      wc.Get("brand_values"),
			"personality": wc.Get("brand_personality_traits"),
			"positioning": wc.Get("competitive_differentiation"),
		},
		"audience_insights":        wc.Get("detailed_personas"),
		"voice_framework":          wc.Get("voice_traits"),
		"content_strategy":         wc.Get("content_samples"),
		"competitive_intelligence": wc.Get("strategic_gaps"),
		"content_transformations":  wc.Get("content_transformations"),
		"voice_audit_results":      wc.Get("voice_audit_summary"),
	}

	contextBlock := fmt.Sprintf("**CLIENT:** %s\n\n**COMPREHENSIVE WORKFLOW INSIGHTS:**\n%s\n\n%s\n\n**WORKFLOW SUMMARY:**\nComplete Brand Builder workflow analysis",
		wc.GetString("client_name"), jsonDump(insights), industryContext(wc))

	rendered, err := s.deps.Prompts.Render("brand_voice_guidelines_synthesis", nil, contextBlock)
	if err != nil {
		return workflow.Failure(s.Name(), fmt.Sprintf("Guidelines finalization failed: %v", err))
	}
	return callModel(ctx, s.deps.Generator, s.Name(), rendered, nil, guidelinesOutputs)
}
