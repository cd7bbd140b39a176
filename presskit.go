// Package presskit is a static blog generator built with Go, Echo, and
// templ. A directory of Markdown articles with YAML front-matter becomes a
// tree of routed, prerendered HTML pages with highlighted code blocks,
// an RSS feed, and a sitemap; routes excluded from prerendering are
// rendered on demand by the preview server.
//
// Sites provide their own templ components via the ViewFuncs struct, or
// use the defaults from the views package.
package presskit

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"

	"github.com/eringen/presskit/views"
)

// ViewFuncs holds the templ components the framework calls when rendering
// pages. This is the inversion-of-control mechanism that lets sites own
// and customize all templates.
type ViewFuncs struct {
	Home        func(docs []views.Document, site views.Site) templ.Component
	Post        func(doc views.Document, body templ.Component, site views.Site) templ.Component
	NotFound    func() templ.Component
	ServerError func() templ.Component
}

// DefaultViews returns the built-in component set from the views package.
func DefaultViews() ViewFuncs {
	return ViewFuncs{
		Home:        views.Home,
		Post:        views.Post,
		NotFound:    views.NotFound,
		ServerError: views.ServerError,
	}
}

// App is the presskit preview/on-demand server. It wires together the
// content store, builder, document cache, handlers, and views.
type App struct {
	Config  SiteConfig
	Echo    *echo.Echo
	Store   *Store
	Cache   *DocCache
	Builder *Builder
	Views   ViewFuncs

	renderLimiter *RateLimiter
	customRoutes  []func(*App)
	watch         bool

	mu      sync.RWMutex
	routes  map[string]Route
	ordered []Route // store order (newest first), for feed and sitemap
}

// New creates a new presskit App with the given configuration.
func New(cfg SiteConfig, opts ...Option) *App {
	cfg.setDefaults()

	a := &App{
		Config: cfg,
		Echo:   echo.New(),
		Views:  DefaultViews(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Start builds the site once, then serves it: prerendered routes from the
// output dir, everything else rendered on demand. A route collision fails
// the startup build, so a broken content store never serves.
func (a *App) Start() error {
	a.Store = NewStore(a.Config.ContentDir)
	a.Cache = NewDocCache(a.Store, a.Config.DocCacheTTL)
	a.Builder = NewBuilder(a.Config)
	a.Builder.Views = a.Views

	if cache, err := OpenRenderCache(a.Config.CachePath); err != nil {
		log.Printf("presskit: render cache unavailable: %v", err)
	} else {
		a.Builder.Cache = cache
	}

	result, err := a.Builder.Build(context.Background())
	if err != nil {
		return fmt.Errorf("presskit: initial build: %w", err)
	}
	a.setRoutes(result.Routes)
	log.Printf("presskit: built %d pages (%d cache hits) in %s", result.Pages, result.CacheHits, result.Duration.Round(time.Millisecond))

	a.renderLimiter = NewRateLimiter(60, time.Minute)

	a.setupMiddleware()
	a.setupRoutes()
	for _, fn := range a.customRoutes {
		fn(a)
	}

	if a.watch {
		go func() {
			if err := a.watchContent(context.Background()); err != nil {
				log.Printf("presskit: watch: %v", err)
			}
		}()
	}

	addr := EnvOr("PRESSKIT_ADDR", a.Config.Addr)
	if err := a.Echo.Start(addr); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Close cleans up resources. Call this when the app is shutting down.
func (a *App) Close() error {
	if a.Builder != nil && a.Builder.Cache != nil {
		return a.Builder.Cache.Close()
	}
	return nil
}

func (a *App) setupRoutes() {
	e := a.Echo

	e.Static("/public", a.Config.StaticDir)
	e.GET("/favicon.svg", a.handleFavicon)
	e.GET("/robots.txt", a.handleRobots)

	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/feed.xml", a.handleFeed)
	e.GET("/blog", handleBlogRedirect)
	e.GET("/", a.handleHome)
	e.GET("/blog/:slug/", a.handlePost)
}

func (a *App) setRoutes(routes []Route) {
	m := make(map[string]Route, len(routes))
	for _, rt := range routes {
		m[rt.Path] = rt
	}
	a.mu.Lock()
	a.routes = m
	a.ordered = routes
	a.mu.Unlock()
}

func (a *App) route(path string) (Route, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	rt, ok := a.routes[path]
	return rt, ok
}

func (a *App) routeList() []Route {
	a.mu.RLock()
	defer a.mu.RUnlock()
	out := make([]Route, len(a.ordered))
	copy(out, a.ordered)
	return out
}

// EnvOr returns the value of the environment variable key, or fallback if empty.
func EnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
