package presskit

import (
	"errors"
	"fmt"
	"path"
	"sort"
	"strings"
)

// RoutePath derives the canonical URL path for a slug. It is a pure
// function: the same slug always yields the same path.
func RoutePath(slug string) string {
	return "/blog/" + slug + "/"
}

// RouteCollisionError reports two or more documents resolving to the same
// route path. The build must fail on collision rather than silently pick a
// winner, so the error names every conflicting source file.
type RouteCollisionError struct {
	Path    string
	Sources []string
}

func (e *RouteCollisionError) Error() string {
	return fmt.Sprintf("route collision at %s: %s", e.Path, strings.Join(e.Sources, ", "))
}

// ResolveRoutes maps each document to its route and applies the prerender
// rules (first match wins; no match means on-demand rendering). It returns
// an error covering every collision found, before any page is emitted.
func ResolveRoutes(docs []Document, rules []RouteRule) ([]Route, error) {
	byPath := make(map[string][]string, len(docs))
	routes := make([]Route, 0, len(docs))
	for _, d := range docs {
		p := RoutePath(d.Slug)
		byPath[p] = append(byPath[p], d.Source)
		routes = append(routes, Route{
			Path:      p,
			Prerender: prerender(p, rules),
			Doc:       d,
		})
	}

	var collisions []error
	paths := make([]string, 0, len(byPath))
	for p := range byPath {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	for _, p := range paths {
		if sources := byPath[p]; len(sources) > 1 {
			sort.Strings(sources)
			collisions = append(collisions, &RouteCollisionError{Path: p, Sources: sources})
		}
	}
	if len(collisions) > 0 {
		return nil, errors.Join(collisions...)
	}
	return routes, nil
}

func prerender(p string, rules []RouteRule) bool {
	for _, r := range rules {
		if matchPattern(r.Pattern, p) {
			return r.Prerender
		}
	}
	return false
}

// matchPattern matches p against a path pattern. A pattern ending in "/**"
// matches its prefix plus any suffix; otherwise path.Match semantics apply
// (with trailing slashes ignored on both sides).
func matchPattern(pattern, p string) bool {
	if prefix, ok := strings.CutSuffix(pattern, "/**"); ok {
		return prefix == "" || p == prefix+"/" || strings.HasPrefix(p, prefix+"/")
	}
	ok, err := path.Match(strings.TrimSuffix(pattern, "/"), strings.TrimSuffix(p, "/"))
	return err == nil && ok
}
