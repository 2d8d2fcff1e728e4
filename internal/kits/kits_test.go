package kits

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func kitServer(t *testing.T, handler func(r *http.Request) (int, string)) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/rest/v1/kits", r.URL.Path)
		require.Equal(t, "test-key", r.Header.Get("apikey"))
		require.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		status, body := handler(r)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
}

func TestProductsByState(t *testing.T) {
	srv := kitServer(t, func(r *http.Request) (int, string) {
		q := r.URL.Query()
		assert.Equal(t, "eq.CA", q.Get("state"))
		assert.Equal(t, "eq.true", q.Get("active"))
		assert.Equal(t, "eq.false", q.Get("with_children"))
		return 200, `[{"id":1,"sku":"INF-CA-NC","title":"California Divorce Kit","state":"CA","price_usd":175,"with_children":false,"active":true}]`
	})
	defer srv.Close()

	withChildren := false
	c := NewClient(srv.URL, "test-key", srv.Client())
	kits, err := c.ProductsByState(context.Background(), "CA", &withChildren)
	require.NoError(t, err)
	require.Len(t, kits, 1)
	assert.Equal(t, "INF-CA-NC", kits[0].SKU)
	assert.Equal(t, 175.0, kits[0].PriceUSD)
}

func TestProductBySKU(t *testing.T) {
	srv := kitServer(t, func(r *http.Request) (int, string) {
		assert.Equal(t, "eq.INF-TX-NC", r.URL.Query().Get("sku"))
		return 200, `[{"id":2,"sku":"INF-TX-NC","title":"Texas Divorce Kit","state":"TX","price_usd":175,"active":true,"download_url":"https://files.example/tx-nc.zip"}]`
	})
	defer srv.Close()

	c := NewClient(srv.URL, "test-key", srv.Client())
	kit, err := c.ProductBySKU(context.Background(), "INF-TX-NC")
	require.NoError(t, err)
	require.NotNil(t, kit)
	assert.Equal(t, "https://files.example/tx-nc.zip", kit.DownloadURL)
}

func TestProductBySKUNotFound(t *testing.T) {
	srv := kitServer(t, func(*http.Request) (int, string) { return 200, `[]` })
	defer srv.Close()

	c := NewClient(srv.URL, "test-key", srv.Client())
	kit, err := c.ProductBySKU(context.Background(), "INF-NOPE")
	require.NoError(t, err)
	assert.Nil(t, kit)
}

func TestQueryErrorStatus(t *testing.T) {
	srv := kitServer(t, func(*http.Request) (int, string) { return 401, `{"message":"bad key"}` })
	defer srv.Close()

	c := NewClient(srv.URL, "test-key", srv.Client())
	_, err := c.ProductsByState(context.Background(), "CA", nil)
	require.Error(t, err)
}

func TestEmptyArgumentsRejected(t *testing.T) {
	c := NewClient("http://unused", "test-key", nil)

	_, err := c.ProductsByState(context.Background(), "", nil)
	require.Error(t, err)

	_, err = c.ProductBySKU(context.Background(), "")
	require.Error(t, err)
}
