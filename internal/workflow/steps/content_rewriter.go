package steps

import (
	"context"
	"fmt"

	"github.com/brandforge/brandforge/internal/workflow"
)

var contentRewriterOutputs = []string{"content_transformations", "rewrite_examples", "implementation_guide"}

// ContentRewriter demonstrates the voice by transforming the collected
// content samples. An analysis pass first scores the samples for
// transformation opportunities; its output feeds the transformation prompt
// and its failure degrades to a warning.
type ContentRewriter struct {
	deps Deps
}

func (s *ContentRewriter) Name() string { return "content_rewriter" }
func (s *ContentRewriter) Description() string {
	return "Transform content samples to demonstrate the brand voice"
}
func (s *ContentRewriter) RequiredInputs() []string { return []string{"client_name"} }
func (s *ContentRewriter) Dependencies() []string   { return []string{"gap_analyzer"} }
func (s *ContentRewriter) OutputFields() []string   { return contentRewriterOutputs }

func (s *ContentRewriter) Execute(ctx context.Context, wc *workflow.Context) workflow.StepResult {
	var stageWarnings []string
	var analysis map[string]any

	analysisBlock := "**CONTENT SAMPLES:**\n" + jsonDump(wc.Get("content_samples")) +
		"\n\n**VOICE TRAITS:**\n" + jsonDump(wc.Get("voice_traits")) +
		"\n\n**STRATEGIC GAPS:**\n" + jsonDump(wc.Get("strategic_gaps"))
	if rendered, err := s.deps.Prompts.Render("content_transformation_analysis", nil, analysisBlock); err != nil {
		stageWarnings = append(stageWarnings, "transformation analysis skipped: "+err.Error())
	} else if analysis, err = stageCall(ctx, s.deps.Generator, rendered, nil); err != nil {
		analysis = nil
		stageWarnings = append(stageWarnings, "transformation analysis skipped: "+err.Error())
	}

	transformationContext := map[string]any{
		"brand_voice":       wc.Get("voice_traits"),
		"audience_insights": wc.Get("detailed_personas"),
		"competitive_gaps":  wc.Get("strategic_gaps"),
		"content_samples":   wc.Get("content_samples"),
	}
	brandGuidelines := map[string]any{
		"mission":      wc.Get("brand_mission"),
		"values":       wc.Get("brand_values"),
		"personality":  wc.Get("brand_personality_traits"),
		"voice_traits": wc.Get("voice_traits"),
	}

	contextBlock := "**TRANSFORMATION CONTEXT:**\n" + jsonDump(transformationContext) +
		"\n\n**BRAND GUIDELINES:**\n" + jsonDump(brandGuidelines) +
		"\n\n**GAP INSIGHTS:**\n" + jsonDump(wc.Get("strategic_gaps")) +
		"\n\n**CONTENT SAMPLES:**\n" + jsonDump(wc.Get("content_samples"))
	if analysis != nil {
		contextBlock += "\n\n**TRANSFORMATION ANALYSIS:**\n" + jsonDump(analysis)
	}

	rendered, err := s.deps.Prompts.Render("content_transformation", nil, contextBlock)
	if err != nil {
		return workflow.Failure(s.Name(), fmt.Sprintf("Content rewriting failed: %v", err))
	}
	result := callModel(ctx, s.deps.Generator, s.Name(), rendered, nil, contentRewriterOutputs)
	if result.Success {
		if analysis != nil {
			result.Data["transformation_analysis"] = analysis
		}
		result.Warnings = append(result.Warnings, stageWarnings...)
	}
	return result
}
