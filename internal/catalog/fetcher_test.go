package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ierrors "git.home.luguber.info/inful/informer/internal/errors"
)

const sampleCSV = `SKU,Title,PriceUSD,Category,State,Tags,IsActive,CoverImageURL,ShortDescription,LongDescription,PartnerGroup
INF-CA-NC,California Divorce Kit,175,Divorce Kits,CA,"divorce, no-children",true,,No minor children.,Long text. More text.,west
INF-CA-WC,California Divorce Kit,199,Divorce Kits,CA,"divorce, with-children",true,,With minor children.,Long text.,west
INF-TX-NC,Texas Divorce Kit,175,Divorce Kits,TX,divorce,TRUE,,No minor children.,Long text.,south
INF-XX-01,Retired Kit,99,Divorce Kits,XX,divorce,false,,Old.,Old.,
INF-WILL-01,Simple Will Kit,49,Will Kits,CA,estate,true,,Will.,Will.,
`

func TestParseCSV(t *testing.T) {
	records, err := ParseCSV(strings.NewReader(sampleCSV))
	require.NoError(t, err)
	require.Len(t, records, 5)

	assert.Equal(t, "INF-CA-NC", records[0].SKU)
	assert.Equal(t, 175.0, records[0].PriceUSD)
	assert.Equal(t, []string{"divorce", "no-children"}, records[0].TagSet())
	assert.True(t, records[0].Active())
	assert.True(t, records[2].Active(), "TRUE should be truthy")
	assert.False(t, records[3].Active())
}

func TestParseCSVMissingColumn(t *testing.T) {
	_, err := ParseCSV(strings.NewReader("SKU,Title\nX,Y\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PriceUSD")
}

func TestParseCSVEmptySource(t *testing.T) {
	_, err := ParseCSV(strings.NewReader(""))
	require.Error(t, err)
}

func TestParseCSVInvalidPrice(t *testing.T) {
	csv := "SKU,Title,PriceUSD,Category,State,IsActive\nX,Y,not-a-price,Divorce Kits,CA,true\n"
	_, err := ParseCSV(strings.NewReader(csv))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PriceUSD")
}

func TestFilterActive(t *testing.T) {
	records, err := ParseCSV(strings.NewReader(sampleCSV))
	require.NoError(t, err)

	active := FilterActive(records, "Divorce Kits")
	require.Len(t, active, 3)
	// Source order is preserved.
	assert.Equal(t, "INF-CA-NC", active[0].SKU)
	assert.Equal(t, "INF-CA-WC", active[1].SKU)
	assert.Equal(t, "INF-TX-NC", active[2].SKU)

	// Category match is case-insensitive.
	assert.Len(t, FilterActive(records, "divorce kits"), 3)
	assert.Len(t, FilterActive(records, "Will Kits"), 1)
}

func TestValidate(t *testing.T) {
	good := []Record{{SKU: "A", PriceUSD: 10}, {SKU: "B", PriceUSD: 0}}
	require.NoError(t, Validate(good))

	dup := []Record{{SKU: "A"}, {SKU: "A"}}
	err := Validate(dup)
	require.Error(t, err)
	assert.True(t, ierrors.IsCategory(err, ierrors.CategoryValidation))

	neg := []Record{{SKU: "A", PriceUSD: -1}}
	require.Error(t, Validate(neg))

	blank := []Record{{SKU: "", Title: "Nameless"}}
	require.Error(t, Validate(blank))
}

func TestFetcherHTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(sampleCSV))
	}))
	defer srv.Close()

	f := NewFetcher(srv.Client(), srv.URL)
	records, err := f.Fetch(context.Background())
	require.NoError(t, err)
	assert.Len(t, records, 5)
}

func TestFetcherHTTPFailureStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	}))
	defer srv.Close()

	f := NewFetcher(srv.Client(), srv.URL)
	_, err := f.Fetch(context.Background())
	require.Error(t, err)
	assert.True(t, ierrors.IsCategory(err, ierrors.CategoryIngest))
}

func TestFetcherLocalFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.csv")
	require.NoError(t, os.WriteFile(path, []byte(sampleCSV), 0o644))

	f := NewFetcher(nil, path)
	records, err := f.Fetch(context.Background())
	require.NoError(t, err)
	assert.Len(t, records, 5)

	missing := NewFetcher(nil, filepath.Join(dir, "nope.csv"))
	_, err = missing.Fetch(context.Background())
	require.Error(t, err)
	assert.True(t, ierrors.IsCategory(err, ierrors.CategoryIngest))
}

func TestSharesTag(t *testing.T) {
	a := Record{Tags: "divorce, no-children"}
	b := Record{Tags: "no-children"}
	c := Record{Tags: "estate"}
	empty := Record{}

	assert.True(t, a.SharesTag(b))
	assert.False(t, a.SharesTag(c))
	assert.False(t, empty.SharesTag(b))
	assert.False(t, a.SharesTag(empty))
}

func TestPriceDisplay(t *testing.T) {
	assert.Equal(t, "$175.00", Record{PriceUSD: 175}.PriceDisplay())
	assert.Equal(t, "$49.50", Record{PriceUSD: 49.5}.PriceDisplay())
}
