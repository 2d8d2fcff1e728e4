package pipeline

import (
	"git.home.luguber.info/inful/informer/internal/catalog"
	"git.home.luguber.info/inful/informer/internal/config"
	"git.home.luguber.info/inful/informer/internal/metrics"
	"git.home.luguber.info/inful/informer/internal/publish"
	"git.home.luguber.info/inful/informer/internal/render"
	"git.home.luguber.info/inful/informer/internal/states"
)

// BuildState carries mutable state across stages.
type BuildState struct {
	Config   *config.Config
	Recorder metrics.Recorder
	Report   *BuildReport

	Renderer *render.Renderer

	// Populated by ingest_catalog.
	RawRecords []catalog.Record // every row in the source export
	Records    []catalog.Record // active records in the configured category

	// Populated by load_states.
	Profiles []states.Profile

	// Populated by render_pages / build_index, consumed by verify and publish.
	Artifacts    *publish.Set
	SitemapPaths []string
	NonIndexed   []string // published pages deliberately absent from the sitemap
}

func newBuildState(cfg *config.Config, recorder metrics.Recorder, report *BuildReport) *BuildState {
	return &BuildState{
		Config:    cfg,
		Recorder:  recorder,
		Report:    report,
		Artifacts: publish.NewSet(),
	}
}
