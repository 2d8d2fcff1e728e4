package index

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/informer/internal/catalog"
	"git.home.luguber.info/inful/informer/internal/states"
)

func testRecords() []catalog.Record {
	return []catalog.Record{
		{SKU: "INF-TX-NC", Title: "Texas Divorce Kit", PriceUSD: 175, State: "TX", Tags: "divorce"},
		{SKU: "INF-CA-NC", Title: "California Divorce Kit", PriceUSD: 175, State: "CA", Tags: "divorce, no-children"},
		{SKU: "INF-CA-WC", Title: "California Divorce Kit", PriceUSD: 199, State: "CA", Tags: "divorce, with-children"},
	}
}

func TestGroupByState(t *testing.T) {
	groups, codes := GroupByState(testRecords())

	assert.Equal(t, []string{"CA", "TX"}, codes, "codes must iterate sorted")
	require.Len(t, groups["CA"], 2)
	// Catalog order preserved within a group.
	assert.Equal(t, "INF-CA-NC", groups["CA"][0].SKU)
	assert.Equal(t, "INF-CA-WC", groups["CA"][1].SKU)
}

func TestSearch(t *testing.T) {
	entries, err := Search(testRecords())
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, "INF-TX-NC", entries[0].SKU)
	assert.Equal(t, 175.0, entries[0].Price)
	assert.Equal(t, "/products/inf-tx-nc-texas-divorce-kit/", entries[0].URL)
	assert.Equal(t, 199.0, entries[2].Price)
}

func TestSearchEmptySlugFails(t *testing.T) {
	_, err := Search([]catalog.Record{{SKU: "", Title: "½ !!"}})
	require.Error(t, err)
}

func TestSearchJSONEmptyIsArray(t *testing.T) {
	data, err := SearchJSON(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]\n", string(data))

	data, err = ProductsJSON(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]\n", string(data))
}

func TestProductsJSONKeepsColumnNames(t *testing.T) {
	data, err := ProductsJSON(testRecords()[:1])
	require.NoError(t, err)

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Len(t, decoded, 1)
	assert.Equal(t, "INF-TX-NC", decoded[0]["SKU"])
	assert.Equal(t, 175.0, decoded[0]["PriceUSD"])
}

func TestSitemapPaths(t *testing.T) {
	profiles := []states.Profile{
		{Name: "California", Slug: "california", Abbreviation: "CA"},
		{Name: "Texas", Slug: "texas", Abbreviation: "TX"},
	}
	paths, err := SitemapPaths("Divorce Kits", testRecords(), profiles)
	require.NoError(t, err)

	want := []string{
		"/",
		"/category/divorce-kits/",
		"/category/divorce-kits/ca/",
		"/category/divorce-kits/tx/",
		"/products/inf-tx-nc-texas-divorce-kit/",
		"/products/inf-ca-nc-california-divorce-kit/",
		"/products/inf-ca-wc-california-divorce-kit/",
		"/states/",
		"/states/california/",
		"/states/texas/",
	}
	assert.Equal(t, want, paths)
}

func TestSitemapPathsEmptyCatalog(t *testing.T) {
	paths, err := SitemapPaths("Divorce Kits", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"/", "/category/divorce-kits/"}, paths)
}

func TestSitemapXML(t *testing.T) {
	xml := SitemapXML("https://informerlegal.com", []string{"/", "/states/texas/"})

	assert.True(t, strings.HasPrefix(xml, `<?xml version="1.0" encoding="UTF-8"?>`))
	assert.Contains(t, xml, "<url><loc>https://informerlegal.com/</loc></url>")
	assert.Contains(t, xml, "<url><loc>https://informerlegal.com/states/texas/</loc></url>")
	assert.Contains(t, xml, `xmlns="http://www.sitemaps.org/schemas/sitemap/0.9"`)
}
