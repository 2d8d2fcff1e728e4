package config

import (
	"os"

	"git.home.luguber.info/inful/informer/internal/errors"
)

const starterConfig = `# InFormer storefront configuration.
# ${VAR} references are expanded from the environment (.env is loaded first).

site:
  base_url: https://informerlegal.com
  title: InFormer Legal Documents
  tagline: State-specific divorce forms, prepared for you.
  publisher: InFormer Legal
  contact_email: support@informerlegal.com
  edition: 2026
  date_published: "2026-01-15"
  date_modified: "2026-08-01"

catalog:
  # HTTP(S) URL of the published CSV export, or a local file path.
  source: ${CATALOG_CSV_URL}
  category: Divorce Kits
  timeout_seconds: 30

states:
  file: data/states.yaml
  # Uncomment once the full registry is in place; 0 disables the count check.
  # expected_count: 50

render:
  include_conversion_layer: true

output:
  directory: ./public

server:
  listen: ":8080"
  metrics: true

commerce:
  stripe_secret_key: ${STRIPE_SECRET_KEY}
  stripe_webhook_secret: ${STRIPE_WEBHOOK_SECRET}
  success_url: https://informerlegal.com/success.html
  cancel_url: https://informerlegal.com/cancel.html
  fulfillment_url: ${FULFILLMENT_URL}
  supabase_url: ${SUPABASE_URL}
  supabase_key: ${SUPABASE_SERVICE_KEY}

orders:
  database: informer.db

daemon:
  interval: 6h
  debounce_ms: 500

logging:
  level: info
  format: text
`

// Init writes a starter configuration file.
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return errors.New(errors.CategoryConfig, errors.SeverityFatal, "configuration file already exists, use --force to overwrite").
			WithContext("path", configPath)
	}
	if err := os.WriteFile(configPath, []byte(starterConfig), 0o644); err != nil {
		return errors.Wrap(err, errors.CategoryConfig, errors.SeverityFatal, "failed to write config file").
			WithContext("path", configPath)
	}
	return nil
}
