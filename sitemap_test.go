package presskit

import (
	"strings"
	"testing"
)

func TestRenderSitemap(t *testing.T) {
	out, err := RenderSitemap(feedConfig(), feedRoutes())
	if err != nil {
		t.Fatalf("RenderSitemap failed: %v", err)
	}
	got := string(out)

	// Site root plus one entry per route.
	if n := strings.Count(got, "<url>"); n != 3 {
		t.Errorf("url count = %d, want 3:\n%s", n, got)
	}
	for _, want := range []string{
		`xmlns="http://www.sitemaps.org/schemas/sitemap/0.9"`,
		"<loc>https://example.com</loc>",
		"<loc>https://example.com/blog/first-post/</loc>",
		"<loc>https://example.com/blog/second-post/</loc>",
		"<lastmod>2024-01-10</lastmod>",
		"<lastmod>2024-02-20</lastmod>",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("sitemap missing %q:\n%s", want, got)
		}
	}
}

func TestRenderSitemapEmptyRoutes(t *testing.T) {
	out, err := RenderSitemap(feedConfig(), nil)
	if err != nil {
		t.Fatalf("RenderSitemap failed: %v", err)
	}
	// The site root entry survives an empty route table.
	if n := strings.Count(string(out), "<url>"); n != 1 {
		t.Errorf("url count = %d, want 1 (site root only):\n%s", n, out)
	}
}
