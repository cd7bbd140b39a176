// Package views holds the default templ components for presskit pages and
// the view-model types they consume. Sites can replace any component
// through the ViewFuncs struct on the App.
package views

// Site carries site-wide settings into page chrome; every component takes
// it so nothing is hardcoded.
type Site struct {
	Name        string
	URL         string
	Description string
	Author      string
}

// Document is the view model for one article.
type Document struct {
	ID       int
	Title    string
	Date     string
	Banner   string
	Slug     string
	Abstract string
}

// PageMeta carries per-page OpenGraph and SEO metadata into the <head>.
type PageMeta struct {
	Title       string
	Description string
	URL         string // canonical + og:url
	OGType      string // "website" or "article"
}
