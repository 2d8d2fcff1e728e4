package render

import (
	"github.com/yuin/goldmark"
)

// Site carries the publication identity embedded into every page.
type Site struct {
	BaseURL       string // absolute site origin, no trailing slash
	Title         string
	Tagline       string
	Publisher     string
	ContactEmail  string
	Edition       string // year stamp used in state page headlines
	DatePublished string
	DateModified  string
}

// Options selects renderer features. The conversion layer adds purchase
// sections and buy CTAs to informational state pages; with it off those
// pages stay purely informational.
type Options struct {
	IncludeConversionLayer bool
}

// Renderer builds complete HTML documents for every page mode. It holds no
// mutable state and performs no I/O.
type Renderer struct {
	site Site
	opts Options
	md   goldmark.Markdown
}

// New creates a renderer for the given site identity and feature options.
func New(site Site, opts Options) *Renderer {
	return &Renderer{
		site: site,
		opts: opts,
		md:   goldmark.New(),
	}
}

// Site exposes the configured site identity (read-only usage by the indexer).
func (r *Renderer) Site() Site { return r.site }
