package presskit

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/eringen/presskit/markdown"
)

func setupRenderCache(t *testing.T) *RenderCache {
	t.Helper()
	c, err := OpenRenderCache(filepath.Join(t.TempDir(), "render.db"))
	if err != nil {
		t.Fatalf("failed to open render cache: %v", err)
	}
	t.Cleanup(func() { c.Close() })
	return c
}

func TestRenderCacheRoundtrip(t *testing.T) {
	c := setupRenderCache(t)

	html := []byte("<p>rendered</p>")
	if err := c.Put("key-1", html); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	got, ok := c.Get("key-1")
	if !ok {
		t.Fatal("Get should hit after Put")
	}
	if !bytes.Equal(got, html) {
		t.Errorf("Get = %q, want %q", got, html)
	}
}

func TestRenderCacheMiss(t *testing.T) {
	c := setupRenderCache(t)
	if _, ok := c.Get("never-stored"); ok {
		t.Error("Get should miss for an unknown key")
	}
}

func TestRenderCacheOverwrite(t *testing.T) {
	c := setupRenderCache(t)
	if err := c.Put("k", []byte("old")); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if err := c.Put("k", []byte("new")); err != nil {
		t.Fatalf("Put update failed: %v", err)
	}
	got, ok := c.Get("k")
	if !ok || string(got) != "new" {
		t.Errorf("Get = %q, want %q", got, "new")
	}
}

func TestRenderKeyVariesWithInputs(t *testing.T) {
	doc := Document{Slug: "post", Body: "# Hello"}
	opts := markdown.Options{Theme: "monokai", Languages: []string{"go"}}

	base := RenderKey(doc, opts)
	if base != RenderKey(doc, opts) {
		t.Error("RenderKey should be deterministic")
	}

	changedBody := doc
	changedBody.Body = "# Goodbye"
	if RenderKey(changedBody, opts) == base {
		t.Error("RenderKey should change with the body")
	}

	changedTheme := opts
	changedTheme.Theme = "dracula"
	if RenderKey(doc, changedTheme) == base {
		t.Error("RenderKey should change with the highlight theme")
	}

	changedLangs := opts
	changedLangs.Languages = []string{"go", "rust"}
	if RenderKey(doc, changedLangs) == base {
		t.Error("RenderKey should change with the language allow-list")
	}
}
