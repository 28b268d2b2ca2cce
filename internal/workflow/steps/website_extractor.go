package steps

import (
	"context"

	"github.com/brandforge/brandforge/internal/fetch"
	"github.com/brandforge/brandforge/internal/gemini"
	"github.com/brandforge/brandforge/internal/workflow"
	"google.golang.org/genai"
)

// websiteExtractionSchema is shown to the model inside the prompt so the
// reply matches the profile fields downstream steps read.
var websiteExtractionSchema = map[string]any{
	"industry":              "Primary business sector/industry (be specific)",
	"company_description":   "Clear 2-3 sentence description of what the company does",
	"key_products_services": []string{"Service 1", "Service 2", "Product 3"},
	"contact_email":         "Primary business email or 'Not found'",
	"phone_number":          "Primary phone number or 'Not found'",
	"address":               "Complete business address or 'Not found'",
	"linkedin_url":          "Full LinkedIn URL or 'Not found'",
	"twitter_url":           "Full Twitter/X URL or 'Not found'",
	"facebook_url":          "Full Facebook URL or 'Not found'",
	"instagram_url":         "Full Instagram URL or 'Not found'",
	"youtube_url":           "Full YouTube URL or 'Not found'",
	"other_social_media":    []string{"Additional social platform URLs"},
	"target_markets":        []string{"Market 1", "Market 2"},
	"company_size_indicators": "Small/Medium/Large business indicators found",
	"geographical_presence":   "Locations served or mentioned",
}

var websiteExtractionOutputs = []string{
	"industry", "company_description", "key_products_services",
	"contact_email", "phone_number", "address",
	"linkedin_url", "twitter_url", "facebook_url", "instagram_url", "youtube_url",
	"other_social_media", "target_markets", "company_size_indicators", "geographical_presence",
}

// WebsiteExtractor scrapes the client website and extracts the structured
// company profile that seeds everything else.
type WebsiteExtractor struct {
	deps Deps
}

func (s *WebsiteExtractor) Name() string        { return "website_extractor" }
func (s *WebsiteExtractor) Description() string {
	return "Extract company information and contact details from the client website"
}
func (s *WebsiteExtractor) RequiredInputs() []string { return []string{"client_name", "website_url"} }
func (s *WebsiteExtractor) Dependencies() []string   { return nil }
func (s *WebsiteExtractor) OutputFields() []string   { return websiteExtractionOutputs }

func (s *WebsiteExtractor) Execute(ctx context.Context, wc *workflow.Context) workflow.StepResult {
	clientName := wc.GetString("client_name")
	websiteURL := wc.GetString("website_url")

	sections, err := s.deps.Fetcher.Site(ctx, websiteURL)
	if err != nil {
		return workflow.Failure(s.Name(), "Could not extract content from website")
	}
	contentInput := fetch.BuildContentInput(sections)

	rendered := s.deps.Prompts.WebsiteExtraction(clientName, websiteURL, contentInput, websiteExtractionSchema)
	return callModel(ctx, s.deps.Generator, s.Name(), rendered, websiteExtractionResponseSchema(), websiteExtractionOutputs)
}

func websiteExtractionResponseSchema() *genai.Schema {
	props := map[string]*genai.Schema{
		"industry":                gemini.String("primary industry"),
		"company_description":     gemini.String("what the company does"),
		"key_products_services":   gemini.StringArray("products and services"),
		"contact_email":           gemini.String("primary email"),
		"phone_number":            gemini.String("primary phone"),
		"address":                 gemini.String("business address"),
		"linkedin_url":            gemini.String("LinkedIn URL"),
		"twitter_url":             gemini.String("Twitter/X URL"),
		"facebook_url":            gemini.String("Facebook URL"),
		"instagram_url":           gemini.String("Instagram URL"),
		"youtube_url":             gemini.String("YouTube URL"),
		"other_social_media":      gemini.StringArray("other social URLs"),
		"target_markets":          gemini.StringArray("target markets"),
		"company_size_indicators": gemini.String("company size indicators"),
		"geographical_presence":   gemini.String("locations served"),
	}
	return gemini.Object(props, "industry", "company_description")
}
