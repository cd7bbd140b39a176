package presskit

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/eringen/presskit/frontmatter"
)

// Store reads content documents from a directory of Markdown files.
// The directory is the system of record; documents are re-read on every
// load and never mutated.
type Store struct {
	dir string
}

// NewStore creates a Store over the given content directory.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// LoadWarning records a document that was excluded from the build and why.
type LoadWarning struct {
	Source string
	Err    error
}

func (w LoadWarning) String() string {
	return fmt.Sprintf("%s: %v", w.Source, w.Err)
}

// Load walks the content dir and parses every *.md file. Documents with
// malformed front-matter or a missing slug are excluded and reported as
// warnings; a single bad file never fails the load. Results are ordered by
// date descending, then slug, so output is stable across runs.
func (s *Store) Load() ([]Document, []LoadWarning, error) {
	var docs []Document
	var warnings []LoadWarning

	err := filepath.WalkDir(s.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".md") {
			return nil
		}
		rel, err := filepath.Rel(s.dir, path)
		if err != nil {
			rel = path
		}
		raw, err := os.ReadFile(path)
		if err != nil {
			warnings = append(warnings, LoadWarning{Source: rel, Err: err})
			return nil
		}
		meta, body, err := frontmatter.Parse(raw)
		if err != nil {
			warnings = append(warnings, LoadWarning{Source: rel, Err: err})
			return nil
		}
		if meta.Slug == "" {
			warnings = append(warnings, LoadWarning{Source: rel, Err: errMissingSlug})
			return nil
		}
		docs = append(docs, Document{
			ID:       meta.ID,
			Title:    meta.Title,
			Date:     meta.Date,
			Banner:   meta.Banner,
			Slug:     meta.Slug,
			Abstract: meta.Abstract,
			Body:     string(body),
			Source:   rel,
		})
		return nil
	})
	if err != nil {
		return nil, nil, fmt.Errorf("presskit: load content: %w", err)
	}

	sort.Slice(docs, func(i, j int) bool {
		if docs[i].Date != docs[j].Date {
			return docs[i].Date > docs[j].Date
		}
		return docs[i].Slug < docs[j].Slug
	})
	return docs, warnings, nil
}

var errMissingSlug = errString("missing slug, document is unroutable")

type errString string

func (e errString) Error() string { return string(e) }
