package pipeline

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/informer/internal/config"
)

const testCSV = `SKU,Title,PriceUSD,Category,State,Tags,IsActive,CoverImageURL,ShortDescription,LongDescription,PartnerGroup
INF-CA-NC,California Divorce Kit,175.00,Divorce Kits,CA,"divorce, no-children",TRUE,,Complete forms for an uncontested filing. No court visits needed.,Everything you need to file.,CA-KITS
INF-CA-WC,California Divorce Kit,199.00,Divorce Kits,CA,"divorce, with-children",TRUE,,Forms plus parenting plan worksheets. Built for families.,Includes custody worksheets.,CA-KITS
INF-TX-NC,Texas Divorce Kit,175.00,Divorce Kits,TX,"divorce, no-children",TRUE,,Texas forms for an agreed divorce. Ready to sign.,County-ready petition set.,
INF-OLD-01,Retired Kit,99.00,Divorce Kits,CA,divorce,FALSE,,Old kit.,Old.,
`

const testStatesYAML = `states:
  - name: California
    slug: california
    abbreviation: CA
    residency_requirement: Six months in California before filing. One county for three months.
    waiting_period: Six months from service.
    filing_fee_range: $435 to $450.
    fault_type: No-fault only.
    parenting_class_required: false
    fee_waiver_available: true
    citations:
      - title: California Courts Self-Help
        url: https://selfhelp.courts.ca.gov/divorce
    last_verified: "2026-07-01"
  - name: Texas
    slug: texas
    abbreviation: TX
    residency_requirement: Six months in Texas. Ninety days in the filing county.
    waiting_period: Sixty days from filing.
    filing_fee_range: $250 to $350.
    fault_type: Both fault and no-fault grounds.
    parenting_class_required: true
    fee_waiver_available: true
    citations:
      - title: Texas Law Help
        url: https://texaslawhelp.org/divorce
    last_verified: "2026-07-01"
`

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "catalog.csv")
	statesPath := filepath.Join(dir, "states.yaml")
	require.NoError(t, os.WriteFile(csvPath, []byte(testCSV), 0o644))
	require.NoError(t, os.WriteFile(statesPath, []byte(testStatesYAML), 0o644))

	return &config.Config{
		Site: config.SiteConfig{
			BaseURL:       "https://example.com",
			Title:         "InFormer Legal Documents",
			Tagline:       "State-specific divorce forms.",
			Publisher:     "InFormer Legal",
			ContactEmail:  "support@example.com",
			Edition:       2026,
			DatePublished: "2026-01-15",
			DateModified:  "2026-08-01",
		},
		Catalog: config.CatalogConfig{Source: csvPath, Category: "Divorce Kits", TimeoutSeconds: 5},
		States:  config.StatesConfig{File: statesPath},
		Render:  config.RenderConfig{IncludeConversionLayer: true},
		Output:  config.OutputConfig{Directory: filepath.Join(dir, "public")},
	}
}

func hashTree(t *testing.T, root string) map[string]string {
	t.Helper()
	sums := map[string]string{}
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		sum := sha256.Sum256(data)
		sums[rel] = hex.EncodeToString(sum[:])
		return nil
	})
	require.NoError(t, err)
	return sums
}

func TestRunPublishesSite(t *testing.T) {
	cfg := testConfig(t)
	report, err := NewRunner(cfg).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, OutcomeSuccess, report.Outcome)
	assert.Equal(t, 3, report.Products, "inactive records are excluded")
	assert.Equal(t, 2, report.States)
	assert.NotEmpty(t, report.RunID)

	out := cfg.Output.Directory
	for _, rel := range []string{
		"index.html",
		"category/divorce-kits/index.html",
		"category/divorce-kits/ca/index.html",
		"category/divorce-kits/tx/index.html",
		"products/inf-ca-nc-california-divorce-kit/index.html",
		"products/inf-tx-nc-texas-divorce-kit/index.html",
		"states/index.html",
		"states/california/index.html",
		"states/texas/index.html",
		"refund-policy.html",
		"success.html",
		"cancel.html",
		"search-index.json",
		"products.json",
		"sitemap.xml",
		"styles.css",
		"placeholder.svg",
	} {
		_, err := os.Stat(filepath.Join(out, filepath.FromSlash(rel)))
		assert.NoError(t, err, rel)
	}

	// Inactive record produced no page.
	_, err = os.Stat(filepath.Join(out, "products", "inf-old-01-retired-kit"))
	assert.True(t, os.IsNotExist(err))

	// Report lands next to the tree, never inside it.
	_, err = os.Stat(filepath.Join(filepath.Dir(out), "build-report.json"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(out, "build-report.json"))
	assert.True(t, os.IsNotExist(err))
}

func TestRunIsIdempotent(t *testing.T) {
	cfg := testConfig(t)
	runner := NewRunner(cfg)

	_, err := runner.Run(context.Background())
	require.NoError(t, err)
	first := hashTree(t, cfg.Output.Directory)

	_, err = runner.Run(context.Background())
	require.NoError(t, err)
	second := hashTree(t, cfg.Output.Directory)

	assert.Equal(t, first, second, "unchanged inputs must produce a byte-identical tree")
}

func TestSitemapMatchesPublishedPages(t *testing.T) {
	cfg := testConfig(t)
	_, err := NewRunner(cfg).Run(context.Background())
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(cfg.Output.Directory, "sitemap.xml"))
	require.NoError(t, err)

	locs := regexp.MustCompile(`<loc>([^<]+)</loc>`).FindAllStringSubmatch(string(data), -1)
	require.NotEmpty(t, locs)
	for _, m := range locs {
		path := strings.TrimPrefix(m[1], "https://example.com")
		if strings.HasSuffix(path, "/") {
			path += "index.html"
		}
		_, err := os.Stat(filepath.Join(cfg.Output.Directory, filepath.FromSlash(path)))
		assert.NoError(t, err, m[1])
	}
}

func TestFailedRunLeavesPreviousTree(t *testing.T) {
	cfg := testConfig(t)
	runner := NewRunner(cfg)

	_, err := runner.Run(context.Background())
	require.NoError(t, err)
	before := hashTree(t, cfg.Output.Directory)

	// Duplicate SKU makes validation fail before any write.
	broken := strings.Replace(testCSV, "INF-TX-NC", "INF-CA-NC", 1)
	require.NoError(t, os.WriteFile(cfg.Catalog.Source, []byte(broken), 0o644))

	report, err := NewRunner(cfg).Run(context.Background())
	require.Error(t, err)
	assert.Equal(t, OutcomeFailed, report.Outcome)

	after := hashTree(t, cfg.Output.Directory)
	assert.Equal(t, before, after, "failed run must not touch the published tree")
}

func TestRunRecordsStageDurations(t *testing.T) {
	cfg := testConfig(t)
	report, err := NewRunner(cfg).Run(context.Background())
	require.NoError(t, err)

	var stages []string
	for s := range report.StageDurations {
		stages = append(stages, s)
	}
	sort.Strings(stages)
	assert.Equal(t, []string{
		"build_index", "ingest_catalog", "load_states",
		"publish", "render_pages", "validate", "verify",
	}, stages)
}

func TestCanceledContextAbortsRun(t *testing.T) {
	cfg := testConfig(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report, err := NewRunner(cfg).Run(ctx)
	require.Error(t, err)
	assert.Equal(t, OutcomeCanceled, report.Outcome)

	_, statErr := os.Stat(cfg.Output.Directory)
	assert.True(t, os.IsNotExist(statErr), "canceled run must publish nothing")
}
