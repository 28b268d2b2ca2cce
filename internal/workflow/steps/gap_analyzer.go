package steps

import (
	"context"
	"fmt"

	"github.com/brandforge/brandforge/internal/gemini"
	"github.com/brandforge/brandforge/internal/workflow"
	"google.golang.org/genai"
)

var gapAnalyzerOutputs = []string{"competitive_analysis", "strategic_gaps", "opportunities"}

// maxCompetitorAnalyses bounds the per-competitor model calls in stage two.
const maxCompetitorAnalyses = 5

// GapAnalyzer positions the brand voice against the competitive landscape
// in three stages: discover strategic competitors, analyze each one, then
// synthesize the gaps. The discovery stages degrade to warnings so the
// synthesis always runs.
type GapAnalyzer struct {
	deps Deps
}

func (s *GapAnalyzer) Name() string { return "gap_analyzer" }
func (s *GapAnalyzer) Description() string {
	return "Synthesize competitive intelligence into strategic positioning"
}
func (s *GapAnalyzer) RequiredInputs() []string { return []string{"client_name"} }
func (s *GapAnalyzer) Dependencies() []string   { return []string{"voice_traits_builder"} }
func (s *GapAnalyzer) OutputFields() []string   { return gapAnalyzerOutputs }

func (s *GapAnalyzer) Execute(ctx context.Context, wc *workflow.Context) workflow.StepResult {
	clientContext := "**CLIENT PROFILE:**\n" + jsonDump(map[string]any{
		"company":           wc.GetString("client_name"),
		"industry":          wc.Get("industry"),
		"mission":           wc.Get("brand_mission"),
		"values":            wc.Get("brand_values"),
		"value_proposition": wc.Get("value_proposition"),
		"products_services": wc.Get("company_description"),
	})
	targetMarket := orStr(wc, []string{"ideal_target_audience", "current_target_audience"}, "Not specified")

	profiles, insights, stageWarnings := s.analyzeCompetitors(ctx, wc, clientContext, targetMarket)

	contextBlock := "**CLIENT ANALYSIS:**\n" + clientContext +
		"\n\n**CLIENT VOICE AUDIT:**\n" + jsonDump(wc.Get("voice_audit_summary")) +
		"\n\n**CLIENT PERSONA:**\n" + jsonDump(wc.Get("detailed_personas")) +
		"\n\n**COMPETITOR PROFILES:**\n" + jsonDump(profiles) +
		"\n\n**MARKET CONTEXT:**\n" + industryContext(wc) +
		"\nTarget Market: " + targetMarket +
		"\nCompetitive Discovery Insights: " + insights +
		"\n\n**VOICE STRATEGY:**\n" + jsonDump(wc.Get("voice_traits"))

	rendered, err := s.deps.Prompts.Render("strategic_gap_analysis", nil, contextBlock)
	if err != nil {
		return workflow.Failure(s.Name(), fmt.Sprintf("Gap analysis failed: %v", err))
	}
	result := callModel(ctx, s.deps.Generator, s.Name(), rendered, nil, gapAnalyzerOutputs)
	if result.Success {
		if len(profiles) > 0 {
			result.Data["competitor_profiles"] = profiles
		}
		result.Warnings = append(result.Warnings, stageWarnings...)
	}
	return result
}

// analyzeCompetitors runs the discovery and per-competitor analysis stages
// and returns the gathered profiles, the discovery market insights, and any
// stage warnings.
func (s *GapAnalyzer) analyzeCompetitors(ctx context.Context, wc *workflow.Context, clientContext, targetMarket string) ([]any, string, []string) {
	insights := "None"

	discoveryBlock := clientContext +
		"\n\n**INDUSTRY CONTEXT:**\n" + industryContext(wc) + " - Focus on companies in this sector and related markets" +
		"\n\n**TARGET MARKET:**\nTarget Market: " + targetMarket

	rendered, err := s.deps.Prompts.Render("competitor_discovery", nil, discoveryBlock)
	if err != nil {
		return nil, insights, []string{"competitor discovery skipped: " + err.Error()}
	}
	discovery, err := stageCall(ctx, s.deps.Generator, rendered, competitorDiscoverySchema())
	if err != nil {
		return nil, insights, []string{"competitor discovery skipped: " + err.Error()}
	}
	if d, ok := discovery["competitor_discovery"].(map[string]any); ok {
		if mi, ok := d["market_insights"].(string); ok && mi != "" {
			insights = mi
		}
	}
	competitors, _ := discovery["final_competitors"].([]any)
	if len(competitors) > maxCompetitorAnalyses {
		competitors = competitors[:maxCompetitorAnalyses]
	}

	clientName := wc.GetString("client_name")
	var profiles []any
	var warnings []string
	for _, competitor := range competitors {
		name := competitorName(competitor)
		analysisBlock := "**COMPETITOR:**\n" + jsonDump(competitor) +
			"\n\n**ANALYSIS FOCUS:**" +
			"\n- Voice and communication style comparison with " + clientName +
			"\n- Target audience and positioning strategy" +
			"\n- Messaging themes and value propositions" +
			"\n- Communication strengths and weaknesses" +
			"\n- Differentiation opportunities for " + clientName +
			"\n\n" + clientContext

		rendered, err := s.deps.Prompts.Render("competitor_analysis", nil, analysisBlock)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("competitor analysis skipped for %s: %v", name, err))
			continue
		}
		profile, err := stageCall(ctx, s.deps.Generator, rendered, nil)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("competitor analysis failed for %s: %v", name, err))
			continue
		}
		profiles = append(profiles, profile)
	}
	return profiles, insights, warnings
}

func competitorName(v any) string {
	if m, ok := v.(map[string]any); ok {
		if name, ok := m["name"].(string); ok && name != "" {
			return name
		}
	}
	return "unknown competitor"
}

// competitorDiscoverySchema shapes the discovery reply, whose competitor
// list drives the stage-two calls.
func competitorDiscoverySchema() *genai.Schema {
	return gemini.Object(map[string]*genai.Schema{
		"competitor_discovery": gemini.Object(map[string]*genai.Schema{
			"initial_research":   gemini.String("How the competitive landscape was researched"),
			"selection_criteria": gemini.String("Why these competitors were selected"),
			"market_insights":    gemini.String("Key insights about the market"),
		}),
		"final_competitors": gemini.Array(gemini.Object(map[string]*genai.Schema{
			"name":      gemini.String("Competitor company name"),
			"website":   gemini.String("Competitor website URL"),
			"rationale": gemini.String("Strategic importance of this competitor"),
		}, "name", "website", "rationale"), "Validated strategic competitors"),
	}, "competitor_discovery", "final_competitors")
}
