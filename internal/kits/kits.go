// Package kits queries the kit database (Supabase REST) used by the
// storefront API for live availability lookups.
package kits

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"git.home.luguber.info/inful/informer/internal/errors"
)

// Kit is one row of the kits table.
type Kit struct {
	ID           int64   `json:"id"`
	SKU          string  `json:"sku"`
	Title        string  `json:"title"`
	State        string  `json:"state"`
	PriceUSD     float64 `json:"price_usd"`
	WithChildren bool    `json:"with_children"`
	Active       bool    `json:"active"`
	DownloadURL  string  `json:"download_url"`
}

// Client is an explicit handle to the kit database's REST endpoint.
type Client struct {
	baseURL string
	apiKey  string
	httpc   *http.Client
}

// NewClient creates a client for the given Supabase project URL and service
// key.
func NewClient(baseURL, apiKey string, httpc *http.Client) *Client {
	if httpc == nil {
		httpc = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		apiKey:  apiKey,
		httpc:   httpc,
	}
}

// ProductsByState lists active kits for a state, optionally narrowed to the
// with-children variant.
func (c *Client) ProductsByState(ctx context.Context, state string, withChildren *bool) ([]Kit, error) {
	if state == "" {
		return nil, errors.ValidationFailed("state", "must not be empty")
	}
	q := url.Values{}
	q.Set("state", "eq."+state)
	q.Set("active", "eq.true")
	if withChildren != nil {
		if *withChildren {
			q.Set("with_children", "eq.true")
		} else {
			q.Set("with_children", "eq.false")
		}
	}
	return c.query(ctx, q)
}

// ProductBySKU fetches a single kit by SKU.
func (c *Client) ProductBySKU(ctx context.Context, sku string) (*Kit, error) {
	if sku == "" {
		return nil, errors.ValidationFailed("sku", "must not be empty")
	}
	q := url.Values{}
	q.Set("sku", "eq."+sku)
	q.Set("limit", "1")
	kits, err := c.query(ctx, q)
	if err != nil {
		return nil, err
	}
	if len(kits) == 0 {
		return nil, nil
	}
	return &kits[0], nil
}

func (c *Client) query(ctx context.Context, q url.Values) ([]Kit, error) {
	u := c.baseURL + "/rest/v1/kits?" + q.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, errors.InternalError("build kit database request", err)
	}
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, errors.WrapRetryable(err, errors.CategoryNetwork, errors.SeverityError, "kit database unreachable").
			WithContext("url", c.baseURL)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryNetwork, errors.SeverityError, "read kit database response")
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, errors.New(errors.CategoryNetwork, errors.SeverityError, "kit database returned non-success status").
			WithContext("status", resp.StatusCode)
	}

	var kits []Kit
	if err := json.Unmarshal(data, &kits); err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, errors.SeverityError, "decode kit database response")
	}
	return kits, nil
}
