package presskit

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func testConfig(t *testing.T) SiteConfig {
	t.Helper()
	root := t.TempDir()
	return SiteConfig{
		Name:        "Test Site",
		URL:         "https://example.com",
		Description: "Build pipeline test site",
		Author:      "Tester",
		ContentDir:  filepath.Join(root, "content"),
		OutputDir:   filepath.Join(root, "dist"),
		StaticDir:   filepath.Join(root, "public"),
		Highlight:   HighlightConfig{Theme: "monokai", Languages: []string{"go"}},
		Prerender:   []RouteRule{{Pattern: "/**", Prerender: true}},
		Workers:     2,
	}
}

func TestBuildWritesAllArtifacts(t *testing.T) {
	cfg := testConfig(t)
	writeContent(t, cfg.ContentDir, "first.md", `---
title: "First Post"
date: "2024-01-10"
slug: "first-post"
abstract: "The first one."
---

Some **bold** text and a code block:

`+"```go\nfunc main() {}\n```"+`
`)
	writeContent(t, cfg.ContentDir, "second.md", `---
title: "Second Post"
date: "2024-02-20"
slug: "second-post"
abstract: "The second one."
---

Plain body.
`)

	b := NewBuilder(cfg)
	res, err := b.Build(context.Background())
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if res.Pages != 2 {
		t.Errorf("Pages = %d, want 2", res.Pages)
	}
	if len(res.Warnings) != 0 {
		t.Errorf("Warnings = %v, want none", res.Warnings)
	}

	for _, rel := range []string{
		"index.html",
		"feed.xml",
		"sitemap.xml",
		"robots.txt",
		filepath.Join("public", "style.css"),
		filepath.Join("blog", "first-post", "index.html"),
		filepath.Join("blog", "second-post", "index.html"),
	} {
		if _, err := os.Stat(filepath.Join(cfg.OutputDir, rel)); err != nil {
			t.Errorf("missing artifact %s: %v", rel, err)
		}
	}

	page, err := os.ReadFile(filepath.Join(cfg.OutputDir, "blog", "first-post", "index.html"))
	if err != nil {
		t.Fatalf("read page: %v", err)
	}
	for _, want := range []string{"First Post", "<strong>bold</strong>", "code-lang-go"} {
		if !strings.Contains(string(page), want) {
			t.Errorf("page should contain %q", want)
		}
	}

	index, err := os.ReadFile(filepath.Join(cfg.OutputDir, "index.html"))
	if err != nil {
		t.Fatalf("read index: %v", err)
	}
	// Newest first on the index page.
	first := strings.Index(string(index), "First Post")
	second := strings.Index(string(index), "Second Post")
	if first < 0 || second < 0 {
		t.Fatal("index should list both posts")
	}
	if second > first {
		t.Error("index should list the newer post before the older one")
	}
}

func TestBuildIsIdempotent(t *testing.T) {
	cfg := testConfig(t)
	writeContent(t, cfg.ContentDir, "post.md", goodPost)

	b := NewBuilder(cfg)
	if _, err := b.Build(context.Background()); err != nil {
		t.Fatalf("first build failed: %v", err)
	}

	readAll := func() map[string][]byte {
		out := make(map[string][]byte)
		err := filepath.Walk(cfg.OutputDir, func(path string, info os.FileInfo, err error) error {
			if err != nil || info.IsDir() {
				return err
			}
			data, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			rel, _ := filepath.Rel(cfg.OutputDir, path)
			out[rel] = data
			return nil
		})
		if err != nil {
			t.Fatalf("walk output: %v", err)
		}
		return out
	}

	firstRun := readAll()
	if _, err := b.Build(context.Background()); err != nil {
		t.Fatalf("second build failed: %v", err)
	}
	secondRun := readAll()

	if len(firstRun) != len(secondRun) {
		t.Fatalf("output file count changed: %d vs %d", len(firstRun), len(secondRun))
	}
	for rel, data := range firstRun {
		if !bytes.Equal(data, secondRun[rel]) {
			t.Errorf("%s differs between identical builds", rel)
		}
	}
}

func TestBuildFailsOnSlugCollision(t *testing.T) {
	cfg := testConfig(t)
	writeContent(t, cfg.ContentDir, "solid-principles.md", `---
title: "SOLID Principles"
date: "2024-01-01"
slug: "solid-principles"
---
original
`)
	writeContent(t, cfg.ContentDir, "solid-principles-revised.md", `---
title: "SOLID Principles, Revisited"
date: "2024-05-01"
slug: "solid-principles"
---
rewrite
`)

	b := NewBuilder(cfg)
	_, err := b.Build(context.Background())
	if err == nil {
		t.Fatal("expected build to fail on slug collision")
	}
	msg := err.Error()
	if !strings.Contains(msg, "solid-principles.md") || !strings.Contains(msg, "solid-principles-revised.md") {
		t.Errorf("error should name both sources, got %q", msg)
	}

	// Nothing is emitted for a failed build.
	if _, statErr := os.Stat(filepath.Join(cfg.OutputDir, "blog")); !os.IsNotExist(statErr) {
		t.Error("no pages should be written when route resolution fails")
	}
}

func TestBuildSkipsBadDocumentsWithWarnings(t *testing.T) {
	cfg := testConfig(t)
	writeContent(t, cfg.ContentDir, "good.md", goodPost)
	writeContent(t, cfg.ContentDir, "broken.md", "---\ntitle: \"Broken\"\ndate: \"not-a-date\"\nslug: \"broken\"\n---\nx\n")

	b := NewBuilder(cfg)
	res, err := b.Build(context.Background())
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if res.Pages != 1 {
		t.Errorf("Pages = %d, want 1", res.Pages)
	}
	if len(res.Warnings) != 1 || res.Warnings[0].Source != "broken.md" {
		t.Errorf("Warnings = %v, want one for broken.md", res.Warnings)
	}
	if _, err := os.Stat(filepath.Join(cfg.OutputDir, "blog", "broken")); !os.IsNotExist(err) {
		t.Error("excluded document should not produce a page")
	}
}

func TestBuildHonorsOnDemandRules(t *testing.T) {
	cfg := testConfig(t)
	cfg.Prerender = []RouteRule{
		{Pattern: "/blog/keep-*", Prerender: true},
	}
	writeContent(t, cfg.ContentDir, "a.md", "---\ntitle: \"Keep\"\ndate: \"2024-01-01\"\nslug: \"keep-me\"\n---\nx\n")
	writeContent(t, cfg.ContentDir, "b.md", "---\ntitle: \"Lazy\"\ndate: \"2024-01-02\"\nslug: \"render-later\"\n---\nx\n")

	b := NewBuilder(cfg)
	res, err := b.Build(context.Background())
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if res.Pages != 1 {
		t.Errorf("Pages = %d, want 1 (only the matching route)", res.Pages)
	}
	if _, err := os.Stat(filepath.Join(cfg.OutputDir, "blog", "keep-me", "index.html")); err != nil {
		t.Errorf("prerendered page missing: %v", err)
	}
	if _, err := os.Stat(filepath.Join(cfg.OutputDir, "blog", "render-later")); !os.IsNotExist(err) {
		t.Error("on-demand route should not be written at build time")
	}

	// Both routes still appear in the sitemap.
	sitemap, err := os.ReadFile(filepath.Join(cfg.OutputDir, "sitemap.xml"))
	if err != nil {
		t.Fatalf("read sitemap: %v", err)
	}
	for _, slug := range []string{"keep-me", "render-later"} {
		if !strings.Contains(string(sitemap), slug) {
			t.Errorf("sitemap should contain %s", slug)
		}
	}
}

func TestBuildCopiesStaticOverDefaults(t *testing.T) {
	cfg := testConfig(t)
	writeContent(t, cfg.ContentDir, "post.md", goodPost)
	writeContent(t, cfg.StaticDir, "style.css", "body { color: red }\n")
	writeContent(t, cfg.StaticDir, "robots.txt", "User-agent: *\nDisallow: /drafts/\n")

	b := NewBuilder(cfg)
	if _, err := b.Build(context.Background()); err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	style, err := os.ReadFile(filepath.Join(cfg.OutputDir, "public", "style.css"))
	if err != nil {
		t.Fatalf("read style: %v", err)
	}
	if !strings.Contains(string(style), "color: red") {
		t.Error("user stylesheet should override the embedded default")
	}

	robots, err := os.ReadFile(filepath.Join(cfg.OutputDir, "robots.txt"))
	if err != nil {
		t.Fatalf("read robots: %v", err)
	}
	if !strings.Contains(string(robots), "Disallow: /drafts/") {
		t.Error("user robots.txt should be served from the output root")
	}
}

func TestBuildUsesRenderCache(t *testing.T) {
	cfg := testConfig(t)
	writeContent(t, cfg.ContentDir, "post.md", goodPost)

	cache, err := OpenRenderCache(filepath.Join(t.TempDir(), "render.db"))
	if err != nil {
		t.Fatalf("open cache: %v", err)
	}
	defer cache.Close()

	b := NewBuilder(cfg)
	b.Cache = cache

	res, err := b.Build(context.Background())
	if err != nil {
		t.Fatalf("first build failed: %v", err)
	}
	if res.CacheHits != 0 {
		t.Errorf("first build CacheHits = %d, want 0", res.CacheHits)
	}

	res, err = b.Build(context.Background())
	if err != nil {
		t.Fatalf("second build failed: %v", err)
	}
	if res.CacheHits != 1 {
		t.Errorf("second build CacheHits = %d, want 1", res.CacheHits)
	}
}
