// Package markdown renders article bodies to HTML with goldmark and
// highlights fenced code blocks with chroma. The renderer is stateless and
// safe for concurrent use; output is a pure function of (input, Options).
package markdown

import (
	"bytes"
	"context"
	"io"

	"github.com/a-h/templ"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/util"
)

// Options fixes the highlighting configuration for a build: one visual
// theme and an allow-list of fenced code block language tags. Blocks tagged
// with a language outside the list render as plain code.
type Options struct {
	Theme     string
	Languages []string
}

// Renderer converts Markdown body text to HTML.
type Renderer struct {
	md goldmark.Markdown
}

// New builds a Renderer. The goldmark instance is configured once and
// reused for every document.
func New(opts Options) *Renderer {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.Typographer,
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			renderer.WithNodeRenderers(
				util.Prioritized(newCodeRenderer(opts), 200),
			),
		),
	)
	return &Renderer{md: md}
}

// Render converts Markdown source to HTML bytes.
func (r *Renderer) Render(source []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.md.Convert(source, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Markdown returns a templ.Component that renders content as HTML.
func (r *Renderer) Markdown(content string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		out, err := r.Render([]byte(content))
		if err != nil {
			return err
		}
		_, err = w.Write(out)
		return err
	})
}
