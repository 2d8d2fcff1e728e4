package publish

import (
	"bytes"
	"strings"

	"golang.org/x/net/html"

	"git.home.luguber.info/inful/informer/internal/errors"
)

// VerifySitemap checks the sitemap/page round-trip both ways: every sitemap
// path must map to an artifact the set will write, and every HTML page in
// the set must be listed unless explicitly non-indexed. Runs before any
// write so a mismatch aborts the whole publish.
func VerifySitemap(set *Set, sitemapPaths []string, nonIndexed []string) error {
	listed := make(map[string]struct{}, len(sitemapPaths))
	for _, p := range sitemapPaths {
		file := PageFile(p)
		if !set.Has(file) {
			return errors.ArtifactInconsistency("sitemap references a page that is not published", p)
		}
		listed[file] = struct{}{}
	}

	skip := make(map[string]struct{}, len(nonIndexed))
	for _, p := range nonIndexed {
		skip[PageFile(p)] = struct{}{}
	}

	for _, path := range set.Paths() {
		if !strings.HasSuffix(path, ".html") {
			continue
		}
		if _, ok := skip[path]; ok {
			continue
		}
		if _, ok := listed[path]; !ok {
			return errors.ArtifactInconsistency("published page missing from sitemap", path)
		}
	}
	return nil
}

// VerifyLinks parses every HTML artifact and checks that each root-relative
// href/src resolves to an artifact in the set. API routes are served by the
// storefront process rather than the static tree and are exempt.
func VerifyLinks(set *Set) error {
	for _, path := range set.Paths() {
		if !strings.HasSuffix(path, ".html") {
			continue
		}
		a, _ := set.Get(path)
		refs, err := internalRefs(a.Content)
		if err != nil {
			return errors.WrapError(err, errors.CategoryPublish, "failed to parse published page").
				WithContext("path", path)
		}
		for _, ref := range refs {
			if strings.HasPrefix(ref, "/api/") {
				continue
			}
			target := PageFile(ref)
			if !set.Has(target) {
				return errors.ArtifactInconsistency("page links to a path that is not published", path).
					WithContext("target", ref)
			}
		}
	}
	return nil
}

// internalRefs extracts root-relative href and src attribute values from an
// HTML document. External URLs, fragments, and mailto links are ignored.
func internalRefs(content []byte) ([]string, error) {
	doc, err := html.Parse(bytes.NewReader(content))
	if err != nil {
		return nil, err
	}

	var refs []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			for _, attr := range n.Attr {
				if attr.Key != "href" && attr.Key != "src" {
					continue
				}
				val := strings.TrimSpace(attr.Val)
				if strings.HasPrefix(val, "/") && !strings.HasPrefix(val, "//") {
					// Strip query strings and fragments before resolution.
					if i := strings.IndexAny(val, "?#"); i >= 0 {
						val = val[:i]
					}
					if val != "" {
						refs = append(refs, val)
					}
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return refs, nil
}
