// Package config loads and validates the informer.yaml configuration.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/informer/internal/errors"
)

// Config represents the application configuration.
type Config struct {
	Site     SiteConfig     `yaml:"site"`
	Catalog  CatalogConfig  `yaml:"catalog"`
	States   StatesConfig   `yaml:"states"`
	Render   RenderConfig   `yaml:"render"`
	Output   OutputConfig   `yaml:"output"`
	Server   ServerConfig   `yaml:"server"`
	Commerce CommerceConfig `yaml:"commerce"`
	Orders   OrdersConfig   `yaml:"orders"`
	Daemon   DaemonConfig   `yaml:"daemon"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// SiteConfig carries the storefront identity baked into every page.
type SiteConfig struct {
	BaseURL       string `yaml:"base_url"`
	Title         string `yaml:"title"`
	Tagline       string `yaml:"tagline,omitempty"`
	Publisher     string `yaml:"publisher,omitempty"`
	ContactEmail  string `yaml:"contact_email,omitempty"`
	Edition       int    `yaml:"edition,omitempty"`
	DatePublished string `yaml:"date_published,omitempty"`
	DateModified  string `yaml:"date_modified,omitempty"`
}

// CatalogConfig describes the product catalog source.
type CatalogConfig struct {
	Source         string `yaml:"source"` // HTTP(S) URL or local file path
	Category       string `yaml:"category,omitempty"`
	TimeoutSeconds int    `yaml:"timeout_seconds,omitempty"`
}

// Timeout returns the catalog fetch timeout.
func (c CatalogConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// StatesConfig points at the state-profile data file.
type StatesConfig struct {
	File          string `yaml:"file"`
	ExpectedCount int    `yaml:"expected_count,omitempty"` // 0 disables the count check
}

// RenderConfig controls page composition.
type RenderConfig struct {
	IncludeConversionLayer bool `yaml:"include_conversion_layer"`
}

// OutputConfig represents output configuration.
type OutputConfig struct {
	Directory string `yaml:"directory"`
	Report    string `yaml:"report,omitempty"` // build report path, sibling of the tree by default
}

// ServerConfig configures serve mode.
type ServerConfig struct {
	Listen  string `yaml:"listen,omitempty"`
	Metrics bool   `yaml:"metrics,omitempty"`
}

// CommerceConfig carries the payment-processor and kit-database handles.
// Secrets should be referenced as ${VAR} and supplied via the environment.
type CommerceConfig struct {
	StripeSecretKey     string `yaml:"stripe_secret_key,omitempty"`
	StripeWebhookSecret string `yaml:"stripe_webhook_secret,omitempty"`
	StripeBaseURL       string `yaml:"stripe_base_url,omitempty"`
	SuccessURL          string `yaml:"success_url,omitempty"`
	CancelURL           string `yaml:"cancel_url,omitempty"`
	FulfillmentURL      string `yaml:"fulfillment_url,omitempty"`
	SupabaseURL         string `yaml:"supabase_url,omitempty"`
	SupabaseKey         string `yaml:"supabase_key,omitempty"`
}

// OrdersConfig configures the order store.
type OrdersConfig struct {
	Database string `yaml:"database,omitempty"`
}

// DaemonConfig configures daemon mode.
type DaemonConfig struct {
	Interval   string   `yaml:"interval,omitempty"` // Go duration, "" disables scheduled rebuilds
	DebounceMS int      `yaml:"debounce_ms,omitempty"`
	Watch      []string `yaml:"watch,omitempty"` // extra paths beyond config + states file
}

// Debounce returns the watcher debounce window.
func (d DaemonConfig) Debounce() time.Duration {
	return time.Duration(d.DebounceMS) * time.Millisecond
}

// LoggingConfig controls slog setup.
type LoggingConfig struct {
	Level  string `yaml:"level,omitempty"`  // debug|info|warn|error
	Format string `yaml:"format,omitempty"` // text|json
}

// Load reads, expands, and validates configuration from the specified file.
func Load(configPath string) (*Config, error) {
	// A .env file is optional; missing is fine, existing vars win.
	_ = godotenv.Load()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, errors.ConfigNotFound(configPath)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryConfig, errors.SeverityFatal, "failed to read config file").
			WithContext("path", configPath)
	}

	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, errors.Wrap(err, errors.CategoryConfig, errors.SeverityFatal, "failed to parse config file").
			WithContext("path", configPath)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Site.Title == "" {
		c.Site.Title = "InFormer Legal Documents"
	}
	if c.Catalog.Category == "" {
		c.Catalog.Category = "Divorce Kits"
	}
	if c.Catalog.TimeoutSeconds <= 0 {
		c.Catalog.TimeoutSeconds = 30
	}
	if c.States.File == "" {
		c.States.File = "data/states.yaml"
	}
	if c.Output.Directory == "" {
		c.Output.Directory = "./public"
	}
	if c.Server.Listen == "" {
		c.Server.Listen = ":8080"
	}
	if c.Commerce.StripeBaseURL == "" {
		c.Commerce.StripeBaseURL = "https://api.stripe.com"
	}
	if c.Orders.Database == "" {
		c.Orders.Database = "informer.db"
	}
	if c.Daemon.DebounceMS <= 0 {
		c.Daemon.DebounceMS = 500
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "text"
	}
}

// Validate checks the fields every mode depends on. Mode-specific
// requirements (commerce secrets for serve) are checked by the commands
// that need them.
func (c *Config) Validate() error {
	if c.Catalog.Source == "" {
		return errors.ConfigRequired("catalog.source")
	}
	if c.Site.BaseURL == "" {
		return errors.ConfigRequired("site.base_url")
	}
	if c.Daemon.Interval != "" {
		if _, err := time.ParseDuration(c.Daemon.Interval); err != nil {
			return errors.ValidationFailed("daemon.interval", fmt.Sprintf("not a duration: %v", err))
		}
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return errors.ValidationFailed("logging.level", "must be debug, info, warn, or error")
	}
	switch c.Logging.Format {
	case "text", "json":
	default:
		return errors.ValidationFailed("logging.format", "must be text or json")
	}
	return nil
}
