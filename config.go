package presskit

import (
	"bytes"
	"fmt"
	"os"
	"runtime"
	"time"

	"gopkg.in/yaml.v3"
)

// HighlightConfig controls syntax highlighting of fenced code blocks.
// Languages is a fixed allow-list of info-string tags; blocks tagged with
// anything else render as plain code.
type HighlightConfig struct {
	Theme     string   `yaml:"theme"`
	Languages []string `yaml:"languages"`
}

// SiteConfig holds all configuration for a presskit site.
type SiteConfig struct {
	Name        string `yaml:"name"`        // Site name (default "Blog")
	URL         string `yaml:"url"`         // Canonical URL (default "http://localhost:3000")
	Description string `yaml:"description"` // Site description for RSS and meta tags
	Author      string `yaml:"author"`      // Author name for JSON-LD

	Addr       string `yaml:"addr"`        // Listen address for serve mode (default ":3000")
	ContentDir string `yaml:"content_dir"` // Markdown source directory (default "content")
	OutputDir  string `yaml:"output_dir"`  // Build output directory (default "dist")
	StaticDir  string `yaml:"static_dir"`  // User static assets (default "public")

	Highlight HighlightConfig `yaml:"highlight"`
	Prerender []RouteRule     `yaml:"prerender"`

	Workers   int    `yaml:"workers"`    // Build worker count (0 = GOMAXPROCS)
	CachePath string `yaml:"cache_path"` // Render cache SQLite path (default "data/render.db")

	DocCacheTTL time.Duration `yaml:"-"` // Serve-mode document cache TTL (default 5min)
}

// LoadConfig reads a site.yaml file into a SiteConfig and applies defaults.
// Unknown keys are an error so typos surface at startup instead of being
// silently ignored.
func LoadConfig(path string) (SiteConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return SiteConfig{}, fmt.Errorf("presskit: read config: %w", err)
	}
	var cfg SiteConfig
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return SiteConfig{}, fmt.Errorf("presskit: parse config %s: %w", path, err)
	}
	cfg.setDefaults()
	return cfg, nil
}

func (c *SiteConfig) setDefaults() {
	if c.Name == "" {
		c.Name = "Blog"
	}
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.ContentDir == "" {
		c.ContentDir = "content"
	}
	if c.OutputDir == "" {
		c.OutputDir = "dist"
	}
	if c.StaticDir == "" {
		c.StaticDir = "public"
	}
	if c.Highlight.Theme == "" {
		c.Highlight.Theme = "monokai"
	}
	if len(c.Prerender) == 0 {
		c.Prerender = []RouteRule{{Pattern: "/**", Prerender: true}}
	}
	if c.Workers <= 0 {
		c.Workers = runtime.GOMAXPROCS(0)
	}
	if c.CachePath == "" {
		c.CachePath = "data/render.db"
	}
	if c.DocCacheTTL == 0 {
		c.DocCacheTTL = 5 * time.Minute
	}
}

// Option configures additional App behavior.
type Option func(*App)

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback receives the App before the server starts.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// WithWatch enables content-dir watching in serve mode: edits trigger a
// rebuild and invalidate the document cache.
func WithWatch() Option {
	return func(a *App) {
		a.watch = true
	}
}
