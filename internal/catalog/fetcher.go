package catalog

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"git.home.luguber.info/inful/informer/internal/errors"
)

// Fetcher retrieves and parses the catalog source. The HTTP client is
// injected so tests can substitute a stub transport.
type Fetcher struct {
	client *http.Client
	source string
}

// NewFetcher creates a fetcher for the given source, which is either an
// http(s) URL (published spreadsheet export) or a local file path.
func NewFetcher(client *http.Client, source string) *Fetcher {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &Fetcher{client: client, source: source}
}

// Fetch retrieves the source and parses it into records. Any fetch or parse
// failure is an ingestion error; the caller must abort before writing output.
func (f *Fetcher) Fetch(ctx context.Context) ([]Record, error) {
	if strings.HasPrefix(f.source, "http://") || strings.HasPrefix(f.source, "https://") {
		return f.fetchHTTP(ctx)
	}
	return f.fetchFile()
}

func (f *Fetcher) fetchHTTP(ctx context.Context) ([]Record, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.source, nil)
	if err != nil {
		return nil, errors.IngestionError(f.source, err)
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, errors.IngestionError(f.source, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, errors.IngestionStatus(f.source, resp.StatusCode)
	}
	records, err := ParseCSV(resp.Body)
	if err != nil {
		return nil, errors.IngestionError(f.source, err)
	}
	return records, nil
}

func (f *Fetcher) fetchFile() ([]Record, error) {
	file, err := os.Open(f.source)
	if err != nil {
		return nil, errors.IngestionError(f.source, err)
	}
	defer func() { _ = file.Close() }()

	records, err := ParseCSV(file)
	if err != nil {
		return nil, errors.IngestionError(f.source, err)
	}
	return records, nil
}

// ParseCSV parses a header-mapped CSV export into records. Rows shorter than
// the header are rejected; empty lines are skipped by the csv reader.
func ParseCSV(r io.Reader) ([]Record, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("source is empty: missing header row")
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.TrimSpace(name)] = i
	}
	for _, required := range []string{"SKU", "Title", "PriceUSD", "Category", "State", "IsActive"} {
		if _, ok := col[required]; !ok {
			return nil, fmt.Errorf("source is missing required column %q", required)
		}
	}

	field := func(row []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var records []Record
	line := 1
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", line, err)
		}

		rec := Record{
			SKU:              field(row, "SKU"),
			Title:            field(row, "Title"),
			Category:         field(row, "Category"),
			State:            field(row, "State"),
			Tags:             field(row, "Tags"),
			IsActive:         field(row, "IsActive"),
			CoverImageURL:    field(row, "CoverImageURL"),
			ShortDescription: field(row, "ShortDescription"),
			LongDescription:  field(row, "LongDescription"),
			PartnerGroup:     field(row, "PartnerGroup"),
		}
		if raw := field(row, "PriceUSD"); raw != "" {
			price, err := strconv.ParseFloat(strings.TrimPrefix(raw, "$"), 64)
			if err != nil {
				return nil, fmt.Errorf("row %d: invalid PriceUSD %q", line, raw)
			}
			rec.PriceUSD = price
		}
		records = append(records, rec)
	}
	return records, nil
}

// FilterActive returns the records included in the published catalog: active
// flag truthy and category matching the target vertical. Source order is
// preserved; downstream ordering guarantees depend on it.
func FilterActive(records []Record, category string) []Record {
	var out []Record
	for _, r := range records {
		if r.Active() && r.InCategory(category) {
			out = append(out, r)
		}
	}
	return out
}

// Validate enforces catalog invariants on the published set: unique SKUs and
// non-negative prices. Violations are fatal before any artifact is produced.
func Validate(records []Record) error {
	seen := make(map[string]struct{}, len(records))
	for _, r := range records {
		if r.SKU == "" {
			return errors.ValidationFailed("SKU", "empty SKU on active record "+r.Title)
		}
		if _, dup := seen[r.SKU]; dup {
			return errors.ValidationFailed("SKU", "duplicate SKU "+r.SKU)
		}
		seen[r.SKU] = struct{}{}
		if r.PriceUSD < 0 {
			return errors.ValidationFailed("PriceUSD", "negative price on "+r.SKU)
		}
	}
	return nil
}
