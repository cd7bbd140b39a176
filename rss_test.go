package presskit

import (
	"strings"
	"testing"
	"time"
)

func feedConfig() SiteConfig {
	return SiteConfig{
		Name:        "Test Site",
		URL:         "https://example.com",
		Description: "A site for feed tests",
	}
}

func feedRoutes() []Route {
	return []Route{
		{Path: "/blog/first-post/", Doc: Document{Title: "First Post", Slug: "first-post", Date: "2024-01-10", Abstract: "The first one."}},
		{Path: "/blog/second-post/", Doc: Document{Title: "Second Post", Slug: "second-post", Date: "2024-02-20", Abstract: "The second one."}},
	}
}

func TestRenderRSS(t *testing.T) {
	out, err := RenderRSS(feedConfig(), feedRoutes())
	if err != nil {
		t.Fatalf("RenderRSS failed: %v", err)
	}
	got := string(out)

	if n := strings.Count(got, "<item>"); n != 2 {
		t.Errorf("item count = %d, want one per route (2):\n%s", n, got)
	}
	for _, want := range []string{
		"<title>Test Site</title>",
		"<link>https://example.com</link>",
		"<description>A site for feed tests</description>",
		"<title>First Post</title>",
		"<link>https://example.com/blog/first-post/</link>",
		"<guid>https://example.com/blog/first-post/</guid>",
		"<description>The second one.</description>",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("feed missing %q:\n%s", want, got)
		}
	}
}

func TestRenderRSSPubDateFormat(t *testing.T) {
	out, err := RenderRSS(feedConfig(), feedRoutes())
	if err != nil {
		t.Fatalf("RenderRSS failed: %v", err)
	}

	want := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC).Format(time.RFC1123Z)
	if !strings.Contains(string(out), "<pubDate>"+want+"</pubDate>") {
		t.Errorf("feed should carry the RFC1123Z pubDate %q:\n%s", want, out)
	}
}

func TestRenderRSSDeterministic(t *testing.T) {
	first, err := RenderRSS(feedConfig(), feedRoutes())
	if err != nil {
		t.Fatalf("RenderRSS failed: %v", err)
	}
	second, err := RenderRSS(feedConfig(), feedRoutes())
	if err != nil {
		t.Fatalf("RenderRSS failed: %v", err)
	}
	if string(first) != string(second) {
		t.Error("rendering the same routes twice produced different feeds")
	}
}
