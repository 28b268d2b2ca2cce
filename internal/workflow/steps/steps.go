// Package steps implements the brand building pipeline steps. Each step
// builds a prompt from the accumulated context, makes one model call, and
// parses the JSON reply into context data for the steps after it.
package steps

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/xeipuuv/gojsonschema"

	"github.com/brandforge/brandforge/internal/fetch"
	"github.com/brandforge/brandforge/internal/gemini"
	"github.com/brandforge/brandforge/internal/jsonx"
	"github.com/brandforge/brandforge/internal/prompt"
	"github.com/brandforge/brandforge/internal/workflow"
	"google.golang.org/genai"
)

// Deps carries everything the steps need. The generator is an interface so
// tests run the pipeline against canned responses.
type Deps struct {
	Generator gemini.Generator
	Prompts   *prompt.Wrapper
	Fetcher   *fetch.Fetcher
}

// All returns the full pipeline keyed by step number.
func All(deps Deps) map[int]workflow.Step {
	return map[int]workflow.Step{
		1: &WebsiteExtractor{deps},
		2: &BrandAnalyzer{deps},
		3: &ContentCollector{deps},
		4: &VoiceAuditor{deps},
		5: &AudienceDefiner{deps},
		6: &VoiceTraitsBuilder{deps},
		7: &GapAnalyzer{deps},
		8: &ContentRewriter{deps},
		9: &GuidelinesFinalizer{deps},
	}
}

// callModel runs one generation request and parses the reply. Output shape
// problems are reported as warnings; only transport and parse failures fail
// the step.
func callModel(ctx context.Context, gen gemini.Generator, stepName string, rendered prompt.Rendered, schema *genai.Schema, requiredOutputs []string) workflow.StepResult {
	response, err := gen.Generate(ctx, gemini.Request{
		Prompt:      rendered.Text,
		Temperature: rendered.Temperature,
		Schema:      schema,
	})
	if err != nil {
		return workflow.Failure(stepName, fmt.Sprintf("API call failed: %v", err))
	}

	data, err := jsonx.Parse(response)
	if err != nil {
		return workflow.Failure(stepName, fmt.Sprintf("%s failed: %v", stepName, err))
	}

	warnings := outputWarnings(data, requiredOutputs)
	if rendered.Fallback {
		warnings = append(warnings, "prompt fallback used: "+rendered.FallbackReason)
	}
	return workflow.Succeed(stepName, data, warnings...)
}

// stageCall makes an intermediate model call inside a multi-stage step.
// Stage failures are the caller's to degrade into warnings.
func stageCall(ctx context.Context, gen gemini.Generator, rendered prompt.Rendered, schema *genai.Schema) (map[string]any, error) {
	response, err := gen.Generate(ctx, gemini.Request{
		Prompt:      rendered.Text,
		Temperature: rendered.Temperature,
		Schema:      schema,
	})
	if err != nil {
		return nil, err
	}
	return jsonx.Parse(response)
}

// outputWarnings checks parsed output for the fields the step promises to
// produce. Missing fields degrade the profile but do not stop the run.
func outputWarnings(data map[string]any, required []string) []string {
	if len(required) == 0 {
		return nil
	}
	schema := map[string]any{"type": "object", "required": required}
	result, err := gojsonschema.Validate(gojsonschema.NewGoLoader(schema), gojsonschema.NewGoLoader(data))
	if err != nil {
		return []string{fmt.Sprintf("output validation unavailable: %v", err)}
	}
	if result.Valid() {
		return nil
	}
	warnings := make([]string, 0, len(result.Errors()))
	for _, resultErr := range result.Errors() {
		warnings = append(warnings, "output validation: "+resultErr.String())
	}
	sort.Strings(warnings)
	return warnings
}

// jsonDump renders context fragments for prompt embedding.
func jsonDump(v any) string {
	if v == nil {
		v = map[string]any{}
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(data)
}

// str reads a context value with a fallback, flattening lists to
// comma-separated prose the way the prompts expect.
func str(wc *workflow.Context, key, fallback string) string {
	switch v := wc.Get(key).(type) {
	case nil:
		return fallback
	case string:
		if v == "" {
			return fallback
		}
		return v
	case []any:
		if len(v) == 0 {
			return fallback
		}
		out := ""
		for i, item := range v {
			if i > 0 {
				out += ", "
			}
			out += fmt.Sprint(item)
		}
		return out
	default:
		return fmt.Sprint(v)
	}
}

// orStr returns the first present key's value, else fallback.
func orStr(wc *workflow.Context, keys []string, fallback string) string {
	for _, key := range keys {
		if s := str(wc, key, ""); s != "" {
			return s
		}
	}
	return fallback
}

func industryContext(wc *workflow.Context) string {
	return "Industry: " + str(wc, "industry", "General")
}
