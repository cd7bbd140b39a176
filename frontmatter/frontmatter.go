// Package frontmatter extracts the YAML metadata header from a Markdown
// document and validates the fields presskit cares about.
package frontmatter

import (
	"bytes"
	"fmt"
	"time"

	"github.com/adrg/frontmatter"
)

// Meta is the structured front-matter header of a content document.
// All fields are optional at parse time; routing decisions about missing
// slugs belong to the caller.
type Meta struct {
	ID       int    `yaml:"id"`
	Title    string `yaml:"title"`
	Date     string `yaml:"date"`
	Banner   string `yaml:"banner"`
	Slug     string `yaml:"slug"`
	Abstract string `yaml:"abstract"`
}

const dateLayout = "2006-01-02"

var delimiter = []byte("---")

func startsWithDelimiter(source []byte) bool {
	line, _, _ := bytes.Cut(source, []byte("\n"))
	return bytes.Equal(bytes.TrimSpace(line), delimiter)
}

// Parse splits source at the first `---` delimiter pair and decodes the
// metadata block. A document with no front-matter block yields a zero Meta
// and the whole input as body. A malformed header (unterminated delimiter,
// invalid YAML, bad date format) is an error; callers exclude such
// documents from the build rather than aborting it.
func Parse(source []byte) (Meta, []byte, error) {
	var meta Meta
	body, err := frontmatter.Parse(bytes.NewReader(source), &meta)
	if err != nil {
		return Meta{}, nil, fmt.Errorf("frontmatter: %w", err)
	}
	// The adrg parser treats a header that never closes as "no
	// front-matter" and hands back the raw input, which would swallow the
	// header fields into the body. An opening delimiter with no consumed
	// header is therefore a malformed document.
	if startsWithDelimiter(source) && bytes.Equal(body, source) {
		return Meta{}, nil, fmt.Errorf("frontmatter: missing closing %s delimiter", delimiter)
	}
	if meta.Date != "" {
		if _, err := time.Parse(dateLayout, meta.Date); err != nil {
			return Meta{}, nil, fmt.Errorf("frontmatter: invalid date %q (want YYYY-MM-DD)", meta.Date)
		}
	}
	return meta, body, nil
}
