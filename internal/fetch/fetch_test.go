package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func page(title, body string) string {
	return `<!DOCTYPE html><html><head><title>` + title + `</title></head><body>
<article><h1>` + title + `</h1>` + body + `</article>
</body></html>`
}

func testSite(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(page("Acme Anvils", `
<p>Acme manufactures precision anvils for discerning coyotes. Our products ship worldwide and our team has decades of metallurgy experience.</p>
<p>Reach us at <a href="mailto:sales@acme.example">sales</a> or call <a href="tel:+15551234567">555-123-4567</a>.</p>
<p>Follow us on <a href="https://linkedin.com/company/acme">LinkedIn</a>.</p>`)))
	})
	mux.HandleFunc("/about-us", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(page("About Acme", `<p>Founded in 1949, Acme has grown from a garage workshop into a mid-size manufacturer serving industrial customers across three continents.</p>`)))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestFetcher_SiteExtractsSections(t *testing.T) {
	srv := testSite(t)
	f := New(5*time.Second, 2000)

	sections, err := f.Site(context.Background(), srv.URL)
	require.NoError(t, err)

	require.Contains(t, sections, "homepage")
	assert.Contains(t, sections["homepage"], "precision anvils")
	assert.Contains(t, sections["homepage"], "Email found: sales@acme.example")
	assert.Contains(t, sections["homepage"], "Phone found: +15551234567")
	assert.Contains(t, sections["homepage"], "Social media found: https://linkedin.com/company/acme")

	require.Contains(t, sections, "about")
	assert.Contains(t, sections["about"], "Founded in 1949")

	assert.NotContains(t, sections, "contact")
	assert.NotContains(t, sections, "mission")
}

func TestFetcher_SiteTruncatesLongSections(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, _ *http.Request) {
		long := strings.Repeat("This sentence pads the page with believable prose. ", 40)
		_, _ = w.Write([]byte(page("Padding", "<p>"+long+"</p>")))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	f := New(5*time.Second, 300)
	sections, err := f.Site(context.Background(), srv.URL)
	require.NoError(t, err)

	homepage := sections["homepage"]
	assert.True(t, strings.HasSuffix(homepage, "...[truncated]"), "expected truncation marker, got tail %q", homepage[len(homepage)-30:])
	assert.Len(t, homepage, 300+len("...[truncated]"))
}

func TestTruncate_RespectsRuneBoundaries(t *testing.T) {
	t.Parallel()

	// Two-byte runes with an odd limit force the cut into the middle of a
	// rune; the boundary must move back instead of emitting invalid bytes.
	content := strings.Repeat("é", 100)
	out := truncate(content, 101)
	assert.True(t, utf8.ValidString(out), "truncation split a rune: %q", out)
	assert.True(t, strings.HasSuffix(out, "...[truncated]"))
	assert.Len(t, strings.TrimSuffix(out, "...[truncated]"), 100)

	ascii := strings.Repeat("a", 50)
	assert.Equal(t, ascii[:10]+"...[truncated]", truncate(ascii, 10))
}

func TestFetcher_SiteAllPagesFailing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "down", http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)

	f := New(2*time.Second, 2000)
	_, err := f.Site(context.Background(), srv.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "could not extract content")
}

func TestBuildContentInput_OrderAndCleaning(t *testing.T) {
	t.Parallel()

	input := BuildContentInput(map[string]string{
		"about":    "Line one\nLine \"two\"",
		"homepage": "Welcome\thome",
	})

	homepageIdx := strings.Index(input, "=== HOMEPAGE PAGE ===")
	aboutIdx := strings.Index(input, "=== ABOUT PAGE ===")
	require.GreaterOrEqual(t, homepageIdx, 0)
	require.GreaterOrEqual(t, aboutIdx, 0)
	assert.Less(t, homepageIdx, aboutIdx)

	assert.Contains(t, input, "Welcome home")
	assert.Contains(t, input, "Line one Line 'two'")
	assert.True(t, strings.HasPrefix(input, "=== WEBSITE CONTENT ANALYSIS ===\n\n"))
}
