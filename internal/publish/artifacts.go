// Package publish collects rendered artifacts, verifies cross-artifact
// consistency, and writes the output tree atomically.
package publish

import (
	"strings"

	"git.home.luguber.info/inful/informer/internal/errors"
)

// Artifact is one generated output: a root-relative file path plus content.
// Owner names the producing entity (SKU, state slug, page kind) for
// collision diagnostics.
type Artifact struct {
	Path    string
	Owner   string
	Content []byte
}

// Set is an ordered collection of artifacts with unique paths. Uniqueness is
// guaranteed by construction from unique slugs; Add still rejects duplicates
// so a collision surfaces as a fatal configuration error, never a silent
// overwrite.
type Set struct {
	order  []string
	byPath map[string]Artifact
}

// NewSet creates an empty artifact set.
func NewSet() *Set {
	return &Set{byPath: make(map[string]Artifact)}
}

// Add registers an artifact. The path must be root-relative ("/index.html")
// and unique within the set.
func (s *Set) Add(path, owner string, content []byte) error {
	if !strings.HasPrefix(path, "/") {
		return errors.New(errors.CategoryPublish, errors.SeverityFatal, "artifact path must be root-relative").
			WithContext("path", path).
			WithContext("owner", owner)
	}
	if existing, dup := s.byPath[path]; dup {
		return errors.PathCollision(path, existing.Owner, owner)
	}
	s.byPath[path] = Artifact{Path: path, Owner: owner, Content: content}
	s.order = append(s.order, path)
	return nil
}

// AddPage registers an HTML page by its canonical directory path ("/x/y/"),
// storing it as .../index.html.
func (s *Set) AddPage(pagePath, owner string, html string) error {
	return s.Add(PageFile(pagePath), owner, []byte(html))
}

// Has reports whether a path is present.
func (s *Set) Has(path string) bool {
	_, ok := s.byPath[path]
	return ok
}

// Get returns the artifact at path.
func (s *Set) Get(path string) (Artifact, bool) {
	a, ok := s.byPath[path]
	return a, ok
}

// Paths returns all paths in insertion order.
func (s *Set) Paths() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Len returns the number of artifacts.
func (s *Set) Len() int { return len(s.order) }

// PageFile maps a canonical page path to the file that serves it:
// "/" and any directory-style path get index.html appended.
func PageFile(pagePath string) string {
	if strings.HasSuffix(pagePath, "/") {
		return pagePath + "index.html"
	}
	return pagePath
}
