package presskit

// Document is a single Markdown article after front-matter extraction.
// Documents are immutable once loaded; every route and page artifact is
// re-derived from them on each build.
type Document struct {
	ID       int    // author-assigned, not guaranteed unique
	Title    string
	Date     string // YYYY-MM-DD
	Banner   string // relative image path, not validated for existence
	Slug     string // unique key, derives the route path
	Abstract string
	Body     string // Markdown body, front-matter removed
	Source   string // file path relative to the content dir
}

// RouteRule maps a path pattern to a prerender decision. Patterns use
// path.Match syntax; a trailing "/**" matches any suffix.
type RouteRule struct {
	Pattern   string `yaml:"pattern"`
	Prerender bool   `yaml:"prerender"`
}

// Route is a resolved URL path for a document.
type Route struct {
	Path      string
	Prerender bool
	Doc       Document
}

// Page is one assembled artifact, keyed by its route path.
type Page struct {
	Route Route
	HTML  []byte
}
