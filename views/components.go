package views

import (
	"context"
	"html"
	"io"

	"github.com/a-h/templ"
)

func head(w io.Writer, meta PageMeta, jsonLD string) error {
	out := `<!DOCTYPE html><html lang="en"><head><meta charset="utf-8"/>` +
		`<meta name="viewport" content="width=device-width, initial-scale=1"/>` +
		`<title>` + html.EscapeString(meta.Title) + `</title>`
	if meta.Description != "" {
		out += `<meta name="description" content="` + html.EscapeString(meta.Description) + `"/>`
		out += `<meta property="og:description" content="` + html.EscapeString(meta.Description) + `"/>`
	}
	out += `<meta property="og:title" content="` + html.EscapeString(meta.Title) + `"/>`
	if meta.OGType != "" {
		out += `<meta property="og:type" content="` + meta.OGType + `"/>`
	}
	if meta.URL != "" {
		out += `<link rel="canonical" href="` + html.EscapeString(meta.URL) + `"/>`
		out += `<meta property="og:url" content="` + html.EscapeString(meta.URL) + `"/>`
	}
	out += `<link rel="icon" href="/public/favicon.svg"/>` +
		`<link rel="stylesheet" href="/public/style.css"/>`
	if jsonLD != "" {
		out += `<script type="application/ld+json">` + jsonLD + `</script>`
	}
	out += `</head><body>`
	_, err := io.WriteString(w, out)
	return err
}

func foot(w io.Writer, site Site) error {
	out := `<footer><p>` + html.EscapeString(site.Name)
	if site.Author != "" {
		out += ` — ` + html.EscapeString(site.Author)
	}
	out += ` · <a href="/feed.xml">RSS</a></p></footer></body></html>`
	_, err := io.WriteString(w, out)
	return err
}

func articleCard(doc Document) string {
	out := `<article class="post-card">`
	if doc.Banner != "" {
		out += `<img src="` + html.EscapeString(doc.Banner) + `" alt="" loading="lazy"/>`
	}
	out += `<h2><a href="/blog/` + html.EscapeString(doc.Slug) + `/">` + html.EscapeString(doc.Title) + `</a></h2>`
	if doc.Date != "" {
		out += `<time datetime="` + html.EscapeString(doc.Date) + `">` + html.EscapeString(doc.Date) + `</time>`
	}
	if doc.Abstract != "" {
		out += `<p>` + html.EscapeString(doc.Abstract) + `</p>`
	}
	out += `</article>`
	return out
}

// Home renders the index page: site chrome plus one card per document.
func Home(docs []Document, site Site) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		meta := PageMeta{
			Title:       site.Name,
			Description: site.Description,
			URL:         buildURL(site.URL),
			OGType:      "website",
		}
		if err := head(w, meta, WebsiteJsonLD(site)); err != nil {
			return err
		}
		out := `<header><h1><a href="/">` + html.EscapeString(site.Name) + `</a></h1>`
		if site.Description != "" {
			out += `<p>` + html.EscapeString(site.Description) + `</p>`
		}
		out += `</header><main class="post-list">`
		for _, d := range docs {
			out += articleCard(d)
		}
		out += `</main>`
		if _, err := io.WriteString(w, out); err != nil {
			return err
		}
		return foot(w, site)
	})
}

// Post renders a single article page. The rendered Markdown body arrives
// as a component so views stay decoupled from the renderer.
func Post(doc Document, body templ.Component, site Site) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		meta := PageMeta{
			Title:       doc.Title + " — " + site.Name,
			Description: doc.Abstract,
			URL:         PostURL(site, doc),
			OGType:      "article",
		}
		if err := head(w, meta, BlogPostingJsonLD(site, doc)); err != nil {
			return err
		}
		out := `<header><p><a href="/">` + html.EscapeString(site.Name) + `</a></p></header>` +
			`<main><article class="post">`
		if doc.Banner != "" {
			out += `<img class="post-banner" src="` + html.EscapeString(doc.Banner) + `" alt=""/>`
		}
		out += `<h1>` + html.EscapeString(doc.Title) + `</h1>`
		if doc.Date != "" {
			out += `<time datetime="` + html.EscapeString(doc.Date) + `">` + html.EscapeString(doc.Date) + `</time>`
		}
		if _, err := io.WriteString(w, out); err != nil {
			return err
		}
		if err := body.Render(ctx, w); err != nil {
			return err
		}
		if _, err := io.WriteString(w, `</article></main>`); err != nil {
			return err
		}
		return foot(w, site)
	})
}

// NotFound renders the 404 page.
func NotFound() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, `<!DOCTYPE html><html lang="en"><head><meta charset="utf-8"/><title>Not Found</title></head><body><main><h1>404</h1><p>This page does not exist. <a href="/">Back home</a>.</p></main></body></html>`)
		return err
	})
}

// ServerError renders the 500 page.
func ServerError() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, `<!DOCTYPE html><html lang="en"><head><meta charset="utf-8"/><title>Server Error</title></head><body><main><h1>500</h1><p>Something went wrong. <a href="/">Back home</a>.</p></main></body></html>`)
		return err
	})
}
