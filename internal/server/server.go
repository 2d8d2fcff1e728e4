// Package server hosts the published site and the storefront API glue:
// checkout session creation, the payment webhook, and verified downloads.
package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/informer/internal/errors"
	"git.home.luguber.info/inful/informer/internal/kits"
	"git.home.luguber.info/inful/informer/internal/metrics"
	"git.home.luguber.info/inful/informer/internal/orders"
	"git.home.luguber.info/inful/informer/internal/stripe"
)

// Options wires the server's collaborators. Payments and Kits may be nil,
// which disables the corresponding API routes with 503 responses.
type Options struct {
	SiteDir       string
	Payments      *stripe.Client
	WebhookSecret string
	Fulfillment   *FulfillmentForwarder
	Kits          *kits.Client
	Orders        *orders.Store
	Recorder      metrics.Recorder
	Registry      *prom.Registry
	Logger        *slog.Logger
}

// Server is the storefront HTTP server.
type Server struct {
	opts    Options
	adapter *errors.HTTPErrorAdapter
	httpSrv *http.Server
}

// New creates a server for the given listen address.
func New(listen string, opts Options) *Server {
	if opts.Recorder == nil {
		opts.Recorder = metrics.NoopRecorder{}
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	s := &Server{
		opts:    opts,
		adapter: errors.NewHTTPErrorAdapter(opts.Logger),
	}
	s.httpSrv = &http.Server{
		Addr:         listen,
		Handler:      s.routes(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	return s
}

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("POST /api/create-checkout-session", s.instrument("/api/create-checkout-session", s.handleCreateCheckoutSession))
	mux.Handle("POST /api/stripe-webhook", s.instrument("/api/stripe-webhook", s.handleWebhook))
	mux.Handle("GET /api/download", s.instrument("/api/download", s.handleDownload))
	mux.HandleFunc("GET /healthz", s.handleHealthz)
	if s.opts.Registry != nil {
		mux.Handle("GET /metrics", metrics.HTTPHandler(s.opts.Registry))
	}
	mux.Handle("/", http.FileServer(http.Dir(s.opts.SiteDir)))
	return s.withLogging(mux)
}

// Handler exposes the routed handler for tests.
func (s *Server) Handler() http.Handler { return s.httpSrv.Handler }

// ListenAndServe runs the server until ctx is canceled, then drains with a
// grace period.
func (s *Server) ListenAndServe(ctx context.Context) error {
	errc := make(chan error, 1)
	go func() {
		slog.Info("storefront server listening", slog.String("addr", s.httpSrv.Addr))
		errc <- s.httpSrv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return s.httpSrv.Shutdown(shutdownCtx)
	}
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	_, _ = w.Write([]byte("ok\n"))
}
