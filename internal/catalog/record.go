// Package catalog models the product catalog and ingests it from the
// published tabular source (CSV export over HTTP, or a local file).
package catalog

import (
	"fmt"
	"strings"
)

// Record is one sellable item from the source catalog. JSON tags mirror the
// source column names so the published products.json snapshot keeps the
// original wire shape.
type Record struct {
	SKU              string  `json:"SKU"`
	Title            string  `json:"Title"`
	PriceUSD         float64 `json:"PriceUSD"`
	Category         string  `json:"Category"`
	State            string  `json:"State"`
	Tags             string  `json:"Tags"`
	IsActive         string  `json:"IsActive"`
	CoverImageURL    string  `json:"CoverImageURL"`
	ShortDescription string  `json:"ShortDescription"`
	LongDescription  string  `json:"LongDescription"`
	PartnerGroup     string  `json:"PartnerGroup"`
}

// Active reports whether the record is flagged active in the source.
func (r Record) Active() bool {
	return strings.EqualFold(strings.TrimSpace(r.IsActive), "true")
}

// InCategory reports whether the record belongs to the given category
// (case-insensitive, as the source sheet is hand-maintained).
func (r Record) InCategory(category string) bool {
	return strings.EqualFold(strings.TrimSpace(r.Category), strings.TrimSpace(category))
}

// TagSet splits the comma-delimited Tags field into trimmed, non-empty tags.
func (r Record) TagSet() []string {
	if strings.TrimSpace(r.Tags) == "" {
		return nil
	}
	parts := strings.Split(r.Tags, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// SharesTag reports whether two records have at least one overlapping tag.
func (r Record) SharesTag(other Record) bool {
	mine := r.TagSet()
	if len(mine) == 0 {
		return false
	}
	set := make(map[string]struct{}, len(mine))
	for _, t := range mine {
		set[t] = struct{}{}
	}
	for _, t := range other.TagSet() {
		if _, ok := set[t]; ok {
			return true
		}
	}
	return false
}

// PriceDisplay formats the price for page rendering, e.g. "$175.00".
func (r Record) PriceDisplay() string {
	return fmt.Sprintf("$%.2f", r.PriceUSD)
}
