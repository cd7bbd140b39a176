package presskit

import (
	"errors"
	"net/http"
	"os"
	"path/filepath"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
)

func (a *App) handleHome(c echo.Context) error {
	docs, err := a.Cache.List()
	if err != nil {
		return err
	}
	return Render(c, a.Views.Home(viewDocs(docs), viewSite(a.Config)))
}

func (a *App) handlePost(c echo.Context) error {
	slug := c.Param("slug")
	rt, ok := a.route(RoutePath(slug))
	if !ok {
		return RenderStatus(c, http.StatusNotFound, a.Views.NotFound())
	}

	if rt.Prerender {
		file := filepath.Join(a.Config.OutputDir, "blog", slug, "index.html")
		if _, err := os.Stat(file); err == nil {
			return c.File(file)
		}
		// Artifact missing (e.g. output dir wiped); fall through to a
		// live render rather than 404 a known route.
	}

	if !a.renderLimiter.Allow(c.RealIP()) {
		return c.String(http.StatusTooManyRequests, "Too many requests. Try again later.")
	}

	doc, err := a.Cache.Get(slug)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return RenderStatus(c, http.StatusNotFound, a.Views.NotFound())
		}
		return err
	}
	body, _, err := a.Builder.RenderBody(doc)
	if err != nil {
		return err
	}
	return Render(c, a.Views.Post(viewDoc(doc), templ.Raw(string(body)), viewSite(a.Config)))
}

func (a *App) handleSitemap(c echo.Context) error {
	data, err := RenderSitemap(a.Config, a.routeList())
	if err != nil {
		return err
	}
	return c.Blob(http.StatusOK, "application/xml; charset=utf-8", data)
}

func (a *App) handleFeed(c echo.Context) error {
	data, err := RenderRSS(a.Config, a.routeList())
	if err != nil {
		return err
	}
	return c.Blob(http.StatusOK, "application/rss+xml; charset=utf-8", data)
}

func handleBlogRedirect(c echo.Context) error {
	return c.Redirect(http.StatusMovedPermanently, "/")
}

func (a *App) handleFavicon(c echo.Context) error {
	return c.File(filepath.Join(a.Config.StaticDir, "favicon.svg"))
}

func (a *App) handleRobots(c echo.Context) error {
	path := filepath.Join(a.Config.StaticDir, "robots.txt")
	if _, err := os.Stat(path); err == nil {
		return c.File(path)
	}
	return c.File(filepath.Join(a.Config.OutputDir, "robots.txt"))
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	he, ok := err.(*echo.HTTPError)
	if ok && he.Code == http.StatusNotFound {
		_ = RenderStatus(c, http.StatusNotFound, a.Views.NotFound())
		return
	}
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 {
		c.Logger().Errorf("server error: %v", err)
		_ = RenderStatus(c, code, a.Views.ServerError())
		return
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}
