// Package fetch pulls the website content that seeds a brand profile. It
// scrapes a small set of high-signal pages and harvests contact details
// that plain text extraction tends to lose.
package fetch

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/markusmobius/go-trafilatura"
	"github.com/rs/zerolog/log"
)

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

// maxBodyBytes caps how much of a page is read before extraction.
const maxBodyBytes = 4 << 20

var socialDomains = []string{
	"linkedin.com", "twitter.com", "facebook.com",
	"instagram.com", "youtube.com", "tiktok.com",
}

// sectionOrder fixes both the pages tried and the order sections appear in
// the assembled analysis input.
var sectionOrder = []string{"homepage", "about", "contact", "mission", "services"}

var sectionPaths = map[string][]string{
	"homepage": {""},
	"about":    {"/about", "/about-us", "/company", "/who-we-are"},
	"contact":  {"/contact", "/contact-us", "/get-in-touch"},
	"mission":  {"/mission", "/values", "/vision", "/purpose"},
	"services": {"/services", "/what-we-do", "/solutions", "/products"},
}

// Fetcher scrapes websites for brand analysis input.
type Fetcher struct {
	client       *http.Client
	sectionLimit int
}

// New builds a Fetcher. sectionLimit caps the characters kept per section.
func New(timeout time.Duration, sectionLimit int) *Fetcher {
	return &Fetcher{
		client:       &http.Client{Timeout: timeout},
		sectionLimit: sectionLimit,
	}
}

// Site scrapes the targeted pages of baseURL and returns the extracted
// sections. Sections whose pages cannot be fetched are skipped; an error is
// returned only when nothing at all could be extracted.
func (f *Fetcher) Site(ctx context.Context, baseURL string) (map[string]string, error) {
	base := normalizeBaseURL(baseURL)
	sections := make(map[string]string)

	for _, section := range sectionOrder {
		var content string
		for _, path := range sectionPaths[section] {
			text, err := f.Page(ctx, base+path)
			if err != nil {
				log.Debug().Err(err).Str("section", section).Str("url", base+path).Msg("page fetch failed")
				continue
			}
			content = text
			break
		}
		if content == "" {
			continue
		}
		if len(content) > f.sectionLimit {
			content = truncate(content, f.sectionLimit)
		}
		sections[section] = content
	}

	if len(sections) == 0 {
		return nil, fmt.Errorf("fetch: could not extract content from %s", baseURL)
	}
	return sections, nil
}

// Page fetches a single URL and extracts its main text plus any contact
// details found in the markup.
func (f *Fetcher) Page(ctx context.Context, pageURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", fmt.Errorf("fetch: build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch: get %s: %w", pageURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetch: get %s: http %d", pageURL, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", fmt.Errorf("fetch: read %s: %w", pageURL, err)
	}

	parsedURL, _ := url.Parse(pageURL)
	result, err := trafilatura.Extract(bytes.NewReader(body), trafilatura.Options{
		OriginalURL:     parsedURL,
		ExcludeComments: true,
		IncludeLinks:    true,
		EnableFallback:  true,
	})
	if err != nil || result == nil || strings.TrimSpace(result.ContentText) == "" {
		return "", fmt.Errorf("fetch: no extractable content at %s", pageURL)
	}

	text := strings.TrimSpace(result.ContentText)
	if contacts := harvestContacts(bytes.NewReader(body)); len(contacts) > 0 {
		text += "\n\n=== EXTRACTED CONTACT INFORMATION ===\n" + strings.Join(contacts, "\n")
	}
	return text, nil
}

// harvestContacts pulls mailto/tel/social links out of the raw HTML. Text
// extraction drops hrefs, and contact details usually live only there.
func harvestContacts(r io.Reader) []string {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil
	}

	var contacts []string
	seen := map[string]bool{}
	add := func(line string) {
		if !seen[line] {
			seen[line] = true
			contacts = append(contacts, line)
		}
	}

	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		switch {
		case strings.HasPrefix(href, "mailto:"):
			add("Email found: " + strings.TrimPrefix(href, "mailto:"))
		case strings.HasPrefix(href, "tel:"):
			add("Phone found: " + strings.TrimPrefix(href, "tel:"))
		default:
			for _, domain := range socialDomains {
				if strings.Contains(href, domain) {
					add("Social media found: " + href)
					break
				}
			}
		}
	})
	return contacts
}

// BuildContentInput assembles scraped sections into the analysis input,
// flattening whitespace and quotes so the content embeds cleanly in a
// prompt.
func BuildContentInput(sections map[string]string) string {
	var b strings.Builder
	b.WriteString("=== WEBSITE CONTENT ANALYSIS ===\n\n")
	replacer := strings.NewReplacer(`"`, "'", "\n", " ", "\r", " ", "\t", " ")
	for _, section := range sectionOrder {
		content, ok := sections[section]
		if !ok || content == "" {
			continue
		}
		fmt.Fprintf(&b, "=== %s PAGE ===\n%s\n\n", strings.ToUpper(section), replacer.Replace(content))
	}
	return b.String()
}

// truncate cuts content to at most limit bytes on a rune boundary, so a
// multi-byte character is never split into invalid bytes.
func truncate(content string, limit int) string {
	cut := limit
	for cut > 0 && !utf8.RuneStart(content[cut]) {
		cut--
	}
	return content[:cut] + "...[truncated]"
}

func normalizeBaseURL(raw string) string {
	if !strings.HasPrefix(raw, "http://") && !strings.HasPrefix(raw, "https://") {
		raw = "https://" + raw
	}
	return strings.TrimRight(raw, "/")
}
