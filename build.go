package presskit

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/eringen/presskit/markdown"
)

// Builder runs the build pipeline: load documents, resolve routes, render
// and assemble pages in parallel, then emit the shared artifacts (index,
// feed, sitemap, static assets, banners).
type Builder struct {
	cfg   SiteConfig
	store *Store
	md    *markdown.Renderer

	// Views supplies the page components; defaults to DefaultViews().
	Views ViewFuncs
	// Cache is the optional render cache; nil disables it.
	Cache *RenderCache
}

// NewBuilder creates a Builder for the given configuration.
func NewBuilder(cfg SiteConfig) *Builder {
	cfg.setDefaults()
	if !markdown.KnownTheme(cfg.Highlight.Theme) {
		log.Printf("presskit: unknown highlight theme %q, using fallback style", cfg.Highlight.Theme)
	}
	return &Builder{
		cfg:   cfg,
		store: NewStore(cfg.ContentDir),
		md:    markdown.New(markdownOptions(cfg)),
		Views: DefaultViews(),
	}
}

func markdownOptions(cfg SiteConfig) markdown.Options {
	return markdown.Options{
		Theme:     cfg.Highlight.Theme,
		Languages: cfg.Highlight.Languages,
	}
}

// BuildResult summarizes one completed build.
type BuildResult struct {
	Routes    []Route
	Warnings  []LoadWarning
	Pages     int // prerendered pages written
	CacheHits int
	Duration  time.Duration
}

// Build runs one complete pass. Route resolution acts as the barrier: all
// routes are known and collision-free before any worker writes a page. A
// build either completes or returns an error; nothing is retried.
func (b *Builder) Build(ctx context.Context) (*BuildResult, error) {
	start := time.Now()

	docs, warnings, err := b.store.Load()
	if err != nil {
		return nil, err
	}
	for _, w := range warnings {
		log.Printf("presskit: skipping %s", w)
	}

	routes, err := ResolveRoutes(docs, b.cfg.Prerender)
	if err != nil {
		return nil, fmt.Errorf("presskit: resolve routes: %w", err)
	}

	if err := os.MkdirAll(b.cfg.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("presskit: create output dir: %w", err)
	}

	// Per-route rendering is independent: documents are read-only and
	// each worker writes a distinct output key.
	var pages, cacheHits atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(b.cfg.Workers)
	for _, rt := range routes {
		if !rt.Prerender {
			continue
		}
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			body, hit, err := b.RenderBody(rt.Doc)
			if err != nil {
				return fmt.Errorf("render %s: %w", rt.Doc.Source, err)
			}
			if hit {
				cacheHits.Add(1)
			}
			page, err := b.assemblePage(rt, body)
			if err != nil {
				return fmt.Errorf("assemble %s: %w", rt.Path, err)
			}
			if err := b.writeRoute(rt, page); err != nil {
				return err
			}
			pages.Add(1)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if err := b.emitShared(routes); err != nil {
		return nil, err
	}
	if err := b.emitBanners(routes); err != nil {
		return nil, err
	}

	return &BuildResult{
		Routes:    routes,
		Warnings:  warnings,
		Pages:     int(pages.Load()),
		CacheHits: int(cacheHits.Load()),
		Duration:  time.Since(start),
	}, nil
}

// RenderBody renders a document's Markdown body, consulting the render
// cache when one is attached. The cache is never authoritative: any miss
// or read problem falls back to a fresh render.
func (b *Builder) RenderBody(doc Document) (html []byte, cacheHit bool, err error) {
	key := RenderKey(doc, markdownOptions(b.cfg))
	if b.Cache != nil {
		if cached, ok := b.Cache.Get(key); ok {
			return cached, true, nil
		}
	}
	html, err = b.md.Render([]byte(doc.Body))
	if err != nil {
		return nil, false, err
	}
	if b.Cache != nil {
		if err := b.Cache.Put(key, html); err != nil {
			log.Printf("presskit: render cache write: %v", err)
		}
	}
	return html, false, nil
}

func (b *Builder) writeRoute(rt Route, page []byte) error {
	dir := filepath.Join(b.cfg.OutputDir, filepath.FromSlash(strings.Trim(rt.Path, "/")))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, "index.html"), page, 0o644)
}

// emitShared writes the artifacts derived from the whole route table:
// index page, feed, sitemap, robots.txt, and static assets. Routes arrive
// sorted, so output does not depend on worker scheduling.
func (b *Builder) emitShared(routes []Route) error {
	docs := make([]Document, len(routes))
	for i, rt := range routes {
		docs[i] = rt.Doc
	}

	index, err := renderComponent(b.Views.Home(viewDocs(docs), viewSite(b.cfg)))
	if err != nil {
		return fmt.Errorf("presskit: assemble index: %w", err)
	}
	if err := os.WriteFile(filepath.Join(b.cfg.OutputDir, "index.html"), index, 0o644); err != nil {
		return err
	}

	feed, err := RenderRSS(b.cfg, routes)
	if err != nil {
		return fmt.Errorf("presskit: render feed: %w", err)
	}
	if err := os.WriteFile(filepath.Join(b.cfg.OutputDir, "feed.xml"), feed, 0o644); err != nil {
		return err
	}

	sitemap, err := RenderSitemap(b.cfg, routes)
	if err != nil {
		return fmt.Errorf("presskit: render sitemap: %w", err)
	}
	if err := os.WriteFile(filepath.Join(b.cfg.OutputDir, "sitemap.xml"), sitemap, 0o644); err != nil {
		return err
	}

	if err := b.emitStatic(); err != nil {
		return err
	}

	robotsPath := filepath.Join(b.cfg.OutputDir, "robots.txt")
	if _, err := os.Stat(robotsPath); os.IsNotExist(err) {
		robots := "User-agent: *\nAllow: /\nSitemap: " + b.cfg.URL + "/sitemap.xml\n"
		if err := os.WriteFile(robotsPath, []byte(robots), 0o644); err != nil {
			return err
		}
	}
	return nil
}

// emitStatic writes the embedded default stylesheet, then copies the
// user's static dir over it so user assets always win.
func (b *Builder) emitStatic() error {
	publicDir := filepath.Join(b.cfg.OutputDir, "public")
	if err := os.MkdirAll(publicDir, 0o755); err != nil {
		return err
	}
	style, err := EmbeddedAssets.ReadFile("embedded/style.css")
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(publicDir, "style.css"), style, 0o644); err != nil {
		return err
	}

	if _, err := os.Stat(b.cfg.StaticDir); os.IsNotExist(err) {
		return nil
	}
	return filepath.WalkDir(b.cfg.StaticDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(b.cfg.StaticDir, path)
		if err != nil {
			return err
		}
		dst := filepath.Join(publicDir, rel)
		if d.IsDir() {
			return os.MkdirAll(dst, 0o755)
		}
		// robots.txt is served from the site root, not /public/.
		if rel == "robots.txt" {
			dst = filepath.Join(b.cfg.OutputDir, "robots.txt")
		}
		return copyFile(path, dst)
	})
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
