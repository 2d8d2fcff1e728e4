package pipeline

import (
	"context"
	"log/slog"
	"net/http"
	"path/filepath"
	"strconv"
	"time"

	"git.home.luguber.info/inful/informer/internal/catalog"
	"git.home.luguber.info/inful/informer/internal/config"
	"git.home.luguber.info/inful/informer/internal/index"
	"git.home.luguber.info/inful/informer/internal/logfields"
	"git.home.luguber.info/inful/informer/internal/metrics"
	"git.home.luguber.info/inful/informer/internal/publish"
	"git.home.luguber.info/inful/informer/internal/render"
	"git.home.luguber.info/inful/informer/internal/slug"
	"git.home.luguber.info/inful/informer/internal/states"
)

// Runner executes full generation runs for one configuration.
type Runner struct {
	cfg      *config.Config
	recorder metrics.Recorder
	client   *http.Client
}

// NewRunner creates a build runner.
func NewRunner(cfg *config.Config) *Runner {
	return &Runner{
		cfg:      cfg,
		recorder: metrics.NoopRecorder{},
		client:   &http.Client{Timeout: cfg.Catalog.Timeout()},
	}
}

// WithRecorder injects a metrics recorder.
func (r *Runner) WithRecorder(rec metrics.Recorder) *Runner {
	if rec != nil {
		r.recorder = rec
	}
	return r
}

// Run executes one generation run end to end. The report is returned even on
// failure; the error is the first fatal stage error.
func (r *Runner) Run(ctx context.Context) (*BuildReport, error) {
	report := NewBuildReport()
	bs := newBuildState(r.cfg, r.recorder, report)
	bs.Renderer = render.New(siteFromConfig(r.cfg.Site), render.Options{
		IncludeConversionLayer: r.cfg.Render.IncludeConversionLayer,
	})

	slog.Info("starting generation run", logfields.RunID(report.RunID))

	stages := NewPipeline().
		Add(StageIngestCatalog, r.stageIngestCatalog).
		Add(StageLoadStates, stageLoadStates).
		Add(StageValidate, stageValidate).
		Add(StageRenderPages, stageRenderPages).
		Add(StageBuildIndex, stageBuildIndex).
		Add(StageVerify, stageVerify).
		Add(StagePublish, stagePublish).
		Build()

	err := RunStages(ctx, bs, stages)

	report.Finish()
	report.DeriveOutcome()
	r.recorder.ObserveBuildDuration(report.End.Sub(report.Start))
	r.recorder.IncBuildOutcome(string(report.Outcome))
	if err == nil {
		r.recorder.SetProductsPublished(report.Products)
		r.recorder.SetStatesPublished(report.States)
	}

	if reportPath := r.reportPath(); reportPath != "" {
		if perr := report.Persist(reportPath); perr != nil {
			slog.Warn("failed to persist build report", logfields.Error(perr))
		}
	}

	slog.Info("generation run finished", logfields.RunID(report.RunID),
		slog.String("summary", report.Summary()))
	return report, err
}

// reportPath resolves where build-report.json goes: configured path, or a
// sibling of the output tree.
func (r *Runner) reportPath() string {
	if r.cfg.Output.Report != "" {
		return r.cfg.Output.Report
	}
	out := filepath.Clean(r.cfg.Output.Directory)
	return filepath.Join(filepath.Dir(out), "build-report.json")
}

func siteFromConfig(s config.SiteConfig) render.Site {
	edition := ""
	if s.Edition > 0 {
		edition = strconv.Itoa(s.Edition)
	}
	return render.Site{
		BaseURL:       s.BaseURL,
		Title:         s.Title,
		Tagline:       s.Tagline,
		Publisher:     s.Publisher,
		ContactEmail:  s.ContactEmail,
		Edition:       edition,
		DatePublished: s.DatePublished,
		DateModified:  s.DateModified,
	}
}

func (r *Runner) stageIngestCatalog(ctx context.Context, bs *BuildState) error {
	fetcher := catalog.NewFetcher(r.client, bs.Config.Catalog.Source)

	t0 := time.Now()
	records, err := fetcher.Fetch(ctx)
	bs.Recorder.ObserveCatalogFetchDuration(time.Since(t0), err == nil)
	if err != nil {
		return err
	}

	bs.RawRecords = records
	bs.Records = catalog.FilterActive(records, bs.Config.Catalog.Category)
	bs.Report.Products = len(bs.Records)
	slog.Info("catalog ingested", logfields.Products(len(bs.Records)),
		slog.Int("total_rows", len(records)))
	return nil
}

func stageLoadStates(_ context.Context, bs *BuildState) error {
	profiles, err := states.Load(bs.Config.States.File)
	if err != nil {
		return err
	}
	bs.Profiles = profiles
	bs.Report.States = len(profiles)
	slog.Info("state profiles loaded", logfields.States(len(profiles)))
	return nil
}

func stageValidate(_ context.Context, bs *BuildState) error {
	if err := catalog.Validate(bs.Records); err != nil {
		return err
	}
	return states.Validate(bs.Profiles, bs.Config.States.ExpectedCount)
}

func stageRenderPages(_ context.Context, bs *BuildState) error {
	category := bs.Config.Catalog.Category
	r := bs.Renderer

	home, err := r.Home(category, bs.Records)
	if err != nil {
		return err
	}
	if err := bs.Artifacts.AddPage("/", "home", home); err != nil {
		return err
	}

	catPage, err := r.Category(category, bs.Records)
	if err != nil {
		return err
	}
	catPath, err := slug.CategoryPath(category)
	if err != nil {
		return err
	}
	if err := bs.Artifacts.AddPage(catPath, "category", catPage); err != nil {
		return err
	}

	groups, codes := index.GroupByState(bs.Records)
	for _, code := range codes {
		page, err := r.StateCategory(category, code, groups[code])
		if err != nil {
			return err
		}
		path, err := slug.StateCategoryPath(category, code)
		if err != nil {
			return err
		}
		if err := bs.Artifacts.AddPage(path, "state-category:"+code, page); err != nil {
			return err
		}
	}

	for _, rec := range bs.Records {
		page, err := r.Product(rec, bs.Records)
		if err != nil {
			return err
		}
		path, err := slug.ProductPath(rec.SKU, rec.Title)
		if err != nil {
			return err
		}
		if err := bs.Artifacts.AddPage(path, rec.SKU, page); err != nil {
			return err
		}
	}

	if len(bs.Profiles) > 0 {
		byState := catalogByAbbrev(bs.Records)
		for i, profile := range bs.Profiles {
			page, err := r.StateProfile(profile, i, bs.Profiles, byState[profile.Abbreviation])
			if err != nil {
				return err
			}
			if err := bs.Artifacts.AddPage("/states/"+profile.Slug+"/", profile.Slug, page); err != nil {
				return err
			}
		}
		if err := bs.Artifacts.AddPage("/states/", "states-index", r.StatesIndex(bs.Profiles)); err != nil {
			return err
		}
	}

	static := []struct {
		path, owner, html string
	}{
		{"/refund-policy.html", "refund-policy", r.RefundPolicy()},
		{"/terms.html", "terms", r.Terms()},
		{"/contact.html", "contact", r.Contact()},
		{"/success.html", "success", r.Success()},
		{"/cancel.html", "cancel", r.Cancel()},
	}
	for _, p := range static {
		if err := bs.Artifacts.AddPage(p.path, p.owner, p.html); err != nil {
			return err
		}
	}
	bs.NonIndexed = []string{
		"/refund-policy.html", "/terms.html", "/contact.html",
		"/success.html", "/cancel.html",
	}

	pages := 0
	for _, p := range bs.Artifacts.Paths() {
		if filepath.Ext(p) == ".html" {
			pages++
		}
	}
	bs.Report.Pages = pages
	slog.Info("pages rendered", slog.Int("pages", pages))
	return nil
}

func stageBuildIndex(_ context.Context, bs *BuildState) error {
	entries, err := index.Search(bs.Records)
	if err != nil {
		return err
	}
	searchJSON, err := index.SearchJSON(entries)
	if err != nil {
		return err
	}
	if err := bs.Artifacts.Add("/search-index.json", "search-index", searchJSON); err != nil {
		return err
	}

	productsJSON, err := index.ProductsJSON(bs.Records)
	if err != nil {
		return err
	}
	if err := bs.Artifacts.Add("/products.json", "products-snapshot", productsJSON); err != nil {
		return err
	}

	paths, err := index.SitemapPaths(bs.Config.Catalog.Category, bs.Records, bs.Profiles)
	if err != nil {
		return err
	}
	bs.SitemapPaths = paths
	sitemap := index.SitemapXML(bs.Renderer.Site().BaseURL, paths)
	if err := bs.Artifacts.Add("/sitemap.xml", "sitemap", []byte(sitemap)); err != nil {
		return err
	}

	if err := bs.Artifacts.Add("/styles.css", "assets", []byte(render.StylesCSS)); err != nil {
		return err
	}
	if err := bs.Artifacts.Add("/placeholder.svg", "assets", []byte(render.PlaceholderSVG)); err != nil {
		return err
	}

	bs.Report.Artifacts = bs.Artifacts.Len()
	return nil
}

func stageVerify(_ context.Context, bs *BuildState) error {
	if err := publish.VerifySitemap(bs.Artifacts, bs.SitemapPaths, bs.NonIndexed); err != nil {
		return err
	}
	return publish.VerifyLinks(bs.Artifacts)
}

func stagePublish(_ context.Context, bs *BuildState) error {
	return publish.NewPublisher(bs.Config.Output.Directory).Publish(bs.Artifacts)
}

// catalogByAbbrev buckets active records by state code for state-page
// conversion sections.
func catalogByAbbrev(records []catalog.Record) map[string][]catalog.Record {
	groups, _ := index.GroupByState(records)
	return groups
}
