// Package index derives the cross-entity artifacts from the active record
// set: per-jurisdiction groupings, the flat search index, the catalog
// snapshot, and the sitemap URL list.
package index

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"git.home.luguber.info/inful/informer/internal/catalog"
	"git.home.luguber.info/inful/informer/internal/slug"
	"git.home.luguber.info/inful/informer/internal/states"
)

// Entry is one search-index record, consumed by the client-side substring
// filter. This is deliberately a flat list, not an inverted index.
type Entry struct {
	SKU   string  `json:"sku"`
	Title string  `json:"title"`
	Price float64 `json:"price"`
	State string  `json:"state"`
	Tags  string  `json:"tags"`
	URL   string  `json:"url"`
}

// GroupByState buckets records by jurisdiction code, preserving catalog
// order within each bucket, and returns the sorted list of codes for
// deterministic iteration.
func GroupByState(records []catalog.Record) (map[string][]catalog.Record, []string) {
	groups := make(map[string][]catalog.Record)
	var codes []string
	for _, r := range records {
		if _, seen := groups[r.State]; !seen {
			codes = append(codes, r.State)
		}
		groups[r.State] = append(groups[r.State], r)
	}
	sort.Strings(codes)
	return groups, codes
}

// Search builds the flat search index. An empty record set yields an empty
// (non-nil) slice so the JSON artifact is a well-formed empty array.
func Search(records []catalog.Record) ([]Entry, error) {
	entries := make([]Entry, 0, len(records))
	for _, r := range records {
		url, err := slug.ProductPath(r.SKU, r.Title)
		if err != nil {
			return nil, err
		}
		entries = append(entries, Entry{
			SKU:   r.SKU,
			Title: r.Title,
			Price: r.PriceUSD,
			State: r.State,
			Tags:  r.Tags,
			URL:   url,
		})
	}
	return entries, nil
}

// SearchJSON serializes the search index, pretty-printed.
func SearchJSON(entries []Entry) ([]byte, error) {
	if entries == nil {
		entries = []Entry{}
	}
	return marshalPretty(entries)
}

// ProductsJSON serializes the full active-record snapshot, pretty-printed.
func ProductsJSON(records []catalog.Record) ([]byte, error) {
	if records == nil {
		records = []catalog.Record{}
	}
	return marshalPretty(records)
}

func marshalPretty(v any) ([]byte, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// SitemapPaths lists the root-relative paths of every indexable page, in
// publication order: home, category, jurisdiction-scoped categories, product
// pages, the states index, and each state profile. Success/cancel and the
// info pages are published but not indexed.
func SitemapPaths(category string, records []catalog.Record, profiles []states.Profile) ([]string, error) {
	paths := []string{"/"}

	catPath, err := slug.CategoryPath(category)
	if err != nil {
		return nil, err
	}
	paths = append(paths, catPath)

	_, codes := GroupByState(records)
	for _, code := range codes {
		p, err := slug.StateCategoryPath(category, code)
		if err != nil {
			return nil, err
		}
		paths = append(paths, p)
	}

	for _, r := range records {
		p, err := slug.ProductPath(r.SKU, r.Title)
		if err != nil {
			return nil, err
		}
		paths = append(paths, p)
	}

	if len(profiles) > 0 {
		paths = append(paths, "/states/")
		for _, p := range profiles {
			paths = append(paths, "/states/"+p.Slug+"/")
		}
	}

	return paths, nil
}

// SitemapXML renders the standard sitemap document for the given absolute
// base URL and root-relative paths.
func SitemapXML(baseURL string, paths []string) string {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?><urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">`)
	for _, p := range paths {
		fmt.Fprintf(&b, "<url><loc>%s%s</loc></url>", baseURL, p)
	}
	b.WriteString("</urlset>\n")
	return b.String()
}
