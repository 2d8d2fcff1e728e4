package metrics

import (
	"strconv"
	"sync"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	once            sync.Once
	stageDuration   *prom.HistogramVec
	buildDuration   prom.Histogram
	stageResults    *prom.CounterVec
	buildOutcome    *prom.CounterVec
	catalogFetch    *prom.HistogramVec
	productsGauge   prom.Gauge
	statesGauge     prom.Gauge
	checkoutResults *prom.CounterVec
	webhookEvents   *prom.CounterVec
	requestDuration *prom.HistogramVec
}

// NewPrometheusRecorder constructs and registers Prometheus metrics (idempotent).
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{}
	pr.once.Do(func() {
		pr.stageDuration = prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: "informer",
			Name:      "stage_duration_seconds",
			Help:      "Duration of individual build stages",
			Buckets:   prom.DefBuckets,
		}, []string{"stage"})
		pr.buildDuration = prom.NewHistogram(prom.HistogramOpts{
			Namespace: "informer",
			Name:      "build_duration_seconds",
			Help:      "Total site build duration",
			Buckets:   prom.DefBuckets,
		})
		pr.stageResults = prom.NewCounterVec(prom.CounterOpts{
			Namespace: "informer",
			Name:      "stage_results_total",
			Help:      "Stage result counts by outcome",
		}, []string{"stage", "result"})
		pr.buildOutcome = prom.NewCounterVec(prom.CounterOpts{
			Namespace: "informer",
			Name:      "build_outcomes_total",
			Help:      "Build outcomes by final status",
		}, []string{"outcome"})
		pr.catalogFetch = prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: "informer",
			Name:      "catalog_fetch_duration_seconds",
			Help:      "Duration of catalog snapshot fetches",
			Buckets:   prom.DefBuckets,
		}, []string{"result"})
		pr.productsGauge = prom.NewGauge(prom.GaugeOpts{
			Namespace: "informer",
			Name:      "products_published",
			Help:      "Active products in the last published site",
		})
		pr.statesGauge = prom.NewGauge(prom.GaugeOpts{
			Namespace: "informer",
			Name:      "states_published",
			Help:      "State profile pages in the last published site",
		})
		pr.checkoutResults = prom.NewCounterVec(prom.CounterOpts{
			Namespace: "informer",
			Name:      "checkout_sessions_total",
			Help:      "Checkout session creation attempts by result",
		}, []string{"result"})
		pr.webhookEvents = prom.NewCounterVec(prom.CounterOpts{
			Namespace: "informer",
			Name:      "webhook_events_total",
			Help:      "Payment webhook events by processing result",
		}, []string{"result"})
		pr.requestDuration = prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: "informer",
			Name:      "http_request_duration_seconds",
			Help:      "Storefront HTTP request duration by route and status",
			Buckets:   prom.DefBuckets,
		}, []string{"route", "status"})
		reg.MustRegister(pr.stageDuration, pr.buildDuration, pr.stageResults, pr.buildOutcome,
			pr.catalogFetch, pr.productsGauge, pr.statesGauge, pr.checkoutResults,
			pr.webhookEvents, pr.requestDuration)
	})
	return pr
}

func (p *PrometheusRecorder) ObserveStageDuration(stage string, d time.Duration) {
	if p == nil || p.stageDuration == nil {
		return
	}
	p.stageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

func (p *PrometheusRecorder) ObserveBuildDuration(d time.Duration) {
	if p == nil || p.buildDuration == nil {
		return
	}
	p.buildDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncStageResult(stage string, result ResultLabel) {
	if p == nil || p.stageResults == nil {
		return
	}
	p.stageResults.WithLabelValues(stage, string(result)).Inc()
}

func (p *PrometheusRecorder) IncBuildOutcome(outcome string) {
	if p == nil || p.buildOutcome == nil {
		return
	}
	p.buildOutcome.WithLabelValues(outcome).Inc()
}

func (p *PrometheusRecorder) ObserveCatalogFetchDuration(d time.Duration, success bool) {
	if p == nil || p.catalogFetch == nil {
		return
	}
	res := "failed"
	if success {
		res = "success"
	}
	p.catalogFetch.WithLabelValues(res).Observe(d.Seconds())
}

func (p *PrometheusRecorder) SetProductsPublished(n int) {
	if p == nil || p.productsGauge == nil {
		return
	}
	p.productsGauge.Set(float64(n))
}

func (p *PrometheusRecorder) SetStatesPublished(n int) {
	if p == nil || p.statesGauge == nil {
		return
	}
	p.statesGauge.Set(float64(n))
}

func (p *PrometheusRecorder) IncCheckoutSession(success bool) {
	if p == nil || p.checkoutResults == nil {
		return
	}
	res := "failed"
	if success {
		res = "success"
	}
	p.checkoutResults.WithLabelValues(res).Inc()
}

func (p *PrometheusRecorder) IncWebhookEvent(result string) {
	if p == nil || p.webhookEvents == nil {
		return
	}
	p.webhookEvents.WithLabelValues(result).Inc()
}

func (p *PrometheusRecorder) ObserveRequestDuration(route string, status int, d time.Duration) {
	if p == nil || p.requestDuration == nil {
		return
	}
	p.requestDuration.WithLabelValues(route, strconv.Itoa(status)).Observe(d.Seconds())
}
