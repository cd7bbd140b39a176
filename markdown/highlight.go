package markdown

import (
	"bytes"
	"html"
	"io"
	"regexp"
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/util"
)

// codeRenderer replaces goldmark's fenced code block output. Allow-listed
// languages are tokenized by chroma and styled inline per the configured
// theme; everything else degrades to the plain markup an untagged block
// produces.
type codeRenderer struct {
	style     *chroma.Style
	formatter *chromahtml.Formatter
	langs     map[string]struct{}
}

func newCodeRenderer(opts Options) *codeRenderer {
	langs := make(map[string]struct{}, len(opts.Languages))
	for _, l := range opts.Languages {
		langs[strings.ToLower(strings.TrimSpace(l))] = struct{}{}
	}
	return &codeRenderer{
		style: styles.Get(opts.Theme), // unknown names fall back
		formatter: chromahtml.New(
			chromahtml.WithClasses(false),
			chromahtml.TabWidth(4),
		),
		langs: langs,
	}
}

func (r *codeRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(ast.KindFencedCodeBlock, r.renderFencedCodeBlock)
}

func (r *codeRenderer) renderFencedCodeBlock(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	n := node.(*ast.FencedCodeBlock)

	info := ""
	if n.Info != nil {
		info = string(n.Info.Segment.Value(source))
	}
	lang, filename, hints := ParseInfo(info)

	var code bytes.Buffer
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		code.Write(seg.Value(source))
	}

	if r.allowed(lang) {
		var highlighted bytes.Buffer
		if err := r.highlight(&highlighted, lang, code.String()); err == nil {
			escapedLang := html.EscapeString(lang)
			w.WriteString(`<div class="code-block-wrapper"><span class="code-lang code-lang-` + escapedLang + `">` + escapedLang + `</span>`)
			if filename != "" {
				w.WriteString(`<span class="code-filename">` + html.EscapeString(filename) + `</span>`)
			}
			if caption := hints["caption"]; caption != "" {
				w.WriteString(`<span class="code-caption">` + html.EscapeString(caption) + `</span>`)
			}
			w.Write(highlighted.Bytes())
			w.WriteString("</div>\n")
			return ast.WalkSkipChildren, nil
		}
	}

	// Plain fallback: identical markup whether the block was untagged or
	// tagged with an unrecognized language.
	w.WriteString(`<pre class="code-block"><code>`)
	w.WriteString(html.EscapeString(code.String()))
	w.WriteString("</code></pre>\n")
	return ast.WalkSkipChildren, nil
}

func (r *codeRenderer) allowed(lang string) bool {
	if lang == "" {
		return false
	}
	_, ok := r.langs[strings.ToLower(lang)]
	return ok
}

func (r *codeRenderer) highlight(w io.Writer, lang, code string) error {
	lexer := lexers.Get(lang)
	if lexer == nil {
		return errNoLexer
	}
	lexer = chroma.Coalesce(lexer)
	it, err := lexer.Tokenise(nil, code)
	if err != nil {
		return err
	}
	return r.formatter.Format(w, r.style, it)
}

var errNoLexer = errString("markdown: no lexer for language")

type errString string

func (e errString) Error() string { return string(e) }

// reLangFile matches the `language[filename]` form of the info string.
var reLangFile = regexp.MustCompile(`^([^\[\s]+)\[([^\]]*)\]$`)

// ParseInfo splits a fenced code block info string of the form
// `language[filename] key=value ...`. The filename and hints are optional;
// unknown hints are passed through for callers to ignore.
func ParseInfo(info string) (lang, filename string, hints map[string]string) {
	fields := strings.Fields(info)
	if len(fields) == 0 {
		return "", "", nil
	}
	if m := reLangFile.FindStringSubmatch(fields[0]); m != nil {
		lang, filename = m[1], m[2]
	} else {
		lang = fields[0]
	}
	for _, f := range fields[1:] {
		k, v, ok := strings.Cut(f, "=")
		if !ok || k == "" {
			continue
		}
		if hints == nil {
			hints = make(map[string]string)
		}
		hints[k] = v
	}
	return lang, filename, hints
}

// KnownTheme reports whether name is a chroma style; the renderer falls
// back to a default style for unknown names, so this only exists to let
// callers warn.
func KnownTheme(name string) bool {
	_, ok := styles.Registry[name]
	return ok
}
