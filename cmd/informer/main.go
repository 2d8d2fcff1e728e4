package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/informer/internal/config"
	"git.home.luguber.info/inful/informer/internal/daemon"
	"git.home.luguber.info/inful/informer/internal/errors"
	"git.home.luguber.info/inful/informer/internal/kits"
	"git.home.luguber.info/inful/informer/internal/logfields"
	"git.home.luguber.info/inful/informer/internal/metrics"
	"git.home.luguber.info/inful/informer/internal/orders"
	"git.home.luguber.info/inful/informer/internal/pipeline"
	"git.home.luguber.info/inful/informer/internal/server"
	"git.home.luguber.info/inful/informer/internal/states"
	"git.home.luguber.info/inful/informer/internal/stripe"
	"git.home.luguber.info/inful/informer/internal/version"
)

var CLI struct {
	Config  string `short:"c" help:"Configuration file path" default:"informer.yaml"`
	Verbose bool   `short:"v" help:"Enable verbose logging"`

	Build struct {
		Output string `short:"o" help:"Override the configured output directory"`
	} `cmd:"" help:"Generate and publish the storefront site"`

	Validate struct {
	} `cmd:"" help:"Validate the state-profile data file without building"`

	Serve struct {
		Listen string `short:"l" help:"Override the configured listen address"`
	} `cmd:"" help:"Serve the published site and the storefront API"`

	Daemon struct {
	} `cmd:"" help:"Rebuild on data changes and on a schedule"`

	Init struct {
		Force bool `help:"Overwrite existing configuration file"`
	} `cmd:"" help:"Initialize a new configuration file"`

	Version struct {
	} `cmd:"" help:"Print version information"`
}

func main() {
	kctx := kong.Parse(&CLI)

	setupLogging(CLI.Verbose)
	adapter := errors.NewCLIErrorAdapter(CLI.Verbose, slog.Default())

	switch kctx.Command() {
	case "build":
		adapter.HandleError(runBuild())
	case "validate":
		adapter.HandleError(runValidate())
	case "serve":
		adapter.HandleError(runServe())
	case "daemon":
		adapter.HandleError(runDaemon())
	case "init":
		adapter.HandleError(config.Init(CLI.Config, CLI.Init.Force))
	case "version":
		fmt.Printf("informer %s (built %s, commit %s)\n", version.Version, version.BuildTime, version.GitCommit)
	}
}

func setupLogging(verbose bool) {
	configureLogging("", "", verbose)
}

func configureLogging(level, format string, verbose bool) {
	lvl := slog.LevelInfo
	switch {
	case verbose || level == "debug":
		lvl = slog.LevelDebug
	case level == "warn":
		lvl = slog.LevelWarn
	case level == "error":
		lvl = slog.LevelError
	}
	opts := &slog.HandlerOptions{Level: lvl}
	var handler slog.Handler = slog.NewTextHandler(os.Stderr, opts)
	if format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(handler))
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(CLI.Config)
	if err != nil {
		return nil, err
	}
	configureLogging(cfg.Logging.Level, cfg.Logging.Format, CLI.Verbose)
	return cfg, nil
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}

func runBuild() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if CLI.Build.Output != "" {
		cfg.Output.Directory = CLI.Build.Output
	}

	ctx, cancel := signalContext()
	defer cancel()

	_, err = pipeline.NewRunner(cfg).Run(ctx)
	return err
}

func runValidate() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	profiles, err := states.Load(cfg.States.File)
	if err != nil {
		return err
	}
	if err := states.Validate(profiles, cfg.States.ExpectedCount); err != nil {
		return err
	}
	slog.Info("state profiles valid", logfields.States(len(profiles)), logfields.Path(cfg.States.File))
	return nil
}

func runServe() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if CLI.Serve.Listen != "" {
		cfg.Server.Listen = CLI.Serve.Listen
	}
	if cfg.Commerce.StripeSecretKey == "" {
		return errors.ConfigRequired("commerce.stripe_secret_key")
	}
	if cfg.Commerce.StripeWebhookSecret == "" {
		return errors.ConfigRequired("commerce.stripe_webhook_secret")
	}

	store, err := orders.NewStore(cfg.Orders.Database)
	if err != nil {
		return err
	}
	defer store.Close()

	opts := server.Options{
		SiteDir: cfg.Output.Directory,
		Payments: stripe.NewClient(cfg.Commerce.StripeSecretKey, cfg.Commerce.StripeBaseURL,
			cfg.Commerce.SuccessURL, cfg.Commerce.CancelURL, nil),
		WebhookSecret: cfg.Commerce.StripeWebhookSecret,
		Orders:        store,
		Logger:        slog.Default(),
	}
	if cfg.Commerce.FulfillmentURL != "" {
		opts.Fulfillment = server.NewFulfillmentForwarder(cfg.Commerce.FulfillmentURL, nil)
	}
	if cfg.Commerce.SupabaseURL != "" {
		opts.Kits = kits.NewClient(cfg.Commerce.SupabaseURL, cfg.Commerce.SupabaseKey, nil)
	}
	if cfg.Server.Metrics {
		registry := prom.NewRegistry()
		opts.Registry = registry
		opts.Recorder = metrics.NewPrometheusRecorder(registry)
	}

	ctx, cancel := signalContext()
	defer cancel()

	err = server.New(cfg.Server.Listen, opts).ListenAndServe(ctx)
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

func runDaemon() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	registry := prom.NewRegistry()
	runner := pipeline.NewRunner(cfg).WithRecorder(metrics.NewPrometheusRecorder(registry))

	d := daemon.New(cfg, CLI.Config, func(ctx context.Context) error {
		_, err := runner.Run(ctx)
		return err
	})

	ctx, cancel := signalContext()
	defer cancel()
	return d.Run(ctx)
}
