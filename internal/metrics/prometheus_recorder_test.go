package metrics

import (
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

func TestPrometheusRecorder(t *testing.T) {
	reg := prom.NewRegistry()
	pr := NewPrometheusRecorder(reg)
	pr.ObserveStageDuration("render_pages", 150*time.Millisecond)
	pr.ObserveBuildDuration(500 * time.Millisecond)
	pr.IncStageResult("render_pages", ResultSuccess)
	pr.IncBuildOutcome("success")
	pr.ObserveCatalogFetchDuration(80*time.Millisecond, true)
	pr.SetProductsPublished(42)
	pr.SetStatesPublished(50)
	pr.IncCheckoutSession(true)
	pr.IncWebhookEvent("processed")
	pr.ObserveRequestDuration("/api/create-checkout-session", 200, 30*time.Millisecond)
	// Basic scrape to ensure metrics encode without panic
	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	if len(mfs) == 0 {
		t.Fatalf("expected metrics, got none")
	}
}

func TestNilRecorderIsSafe(t *testing.T) {
	var pr *PrometheusRecorder
	pr.ObserveStageDuration("render_pages", time.Second)
	pr.IncBuildOutcome("success")
	pr.IncWebhookEvent("rejected")
	pr.SetProductsPublished(1)
}
