package presskit

import (
	"bytes"
	"context"

	"github.com/a-h/templ"

	"github.com/eringen/presskit/views"
)

func viewSite(cfg SiteConfig) views.Site {
	return views.Site{
		Name:        cfg.Name,
		URL:         cfg.URL,
		Description: cfg.Description,
		Author:      cfg.Author,
	}
}

func viewDoc(d Document) views.Document {
	return views.Document{
		ID:       d.ID,
		Title:    d.Title,
		Date:     d.Date,
		Banner:   d.Banner,
		Slug:     d.Slug,
		Abstract: d.Abstract,
	}
}

func viewDocs(docs []Document) []views.Document {
	out := make([]views.Document, len(docs))
	for i, d := range docs {
		out[i] = viewDoc(d)
	}
	return out
}

// renderComponent renders a templ component to bytes. Components are pure
// functions of their arguments, so assembling the same document state
// twice yields byte-identical output.
func renderComponent(cmp templ.Component) ([]byte, error) {
	var buf bytes.Buffer
	if err := cmp.Render(context.Background(), &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// assemblePage combines a route's rendered body with metadata and site
// chrome into the final page artifact.
func (b *Builder) assemblePage(route Route, bodyHTML []byte) ([]byte, error) {
	cmp := b.Views.Post(viewDoc(route.Doc), templ.Raw(string(bodyHTML)), viewSite(b.cfg))
	return renderComponent(cmp)
}
