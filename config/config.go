// config/config.go
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// DefaultScope is the capability scope requested during authorization.
// Tokens stored without a scope have this injected before use.
const DefaultScope = "offline_access openid profile email accounting.transactions " +
	"accounting.journals.read payroll.payruns accounting.reports.read " +
	"files accounting.settings.read accounting.settings accounting.attachments payroll.payslip " +
	"payroll.settings files.read assets.read payroll.employees projects.read " +
	"accounting.contacts.read accounting.attachments.read projects assets accounting.contacts " +
	"payroll.timesheets accounting.budgets.read"

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port    string `env:"PORT" envDefault:"8000"`
	Timeout int    `env:"SERVER_TIMEOUT" envDefault:"15"`
}

// XeroConfig holds Xero OAuth and API settings
type XeroConfig struct {
	ClientID      string `env:"XERO_CLIENT_ID"`
	ClientSecret  string `env:"XERO_CLIENT_SECRET"`
	RedirectURI   string `env:"XERO_REDIRECT_URI" envDefault:"http://localhost:8000/callback"`
	Scope         string `env:"XERO_SCOPE"`
	AuthURL       string `env:"XERO_AUTH_URL" envDefault:"https://login.xero.com/identity/connect/authorize"`
	TokenURL      string `env:"XERO_TOKEN_URL" envDefault:"https://identity.xero.com/connect/token"`
	AccountingURL string `env:"XERO_ACCOUNTING_URL" envDefault:"https://api.xero.com/api.xro/2.0"`
	IdentityURL   string `env:"XERO_IDENTITY_URL" envDefault:"https://api.xero.com"`
	// FrontendURL is where the index page sends an authenticated browser.
	FrontendURL string `env:"FRONTEND_DASHBOARD_URL" envDefault:"http://localhost:3000/dashboard"`
}

// SessionConfig holds cookie session settings
type SessionConfig struct {
	Secret     string `env:"SESSION_SECRET" envDefault:"insecure-dev-secret"`
	CookieName string `env:"SESSION_COOKIE_NAME" envDefault:"session"`
}

// RedisConfig holds optional Redis token store settings
type RedisConfig struct {
	Enabled   bool   `env:"REDIS_ENABLED" envDefault:"false"`
	Addr      string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	Password  string `env:"REDIS_PASSWORD"`
	DB        int    `env:"REDIS_DB" envDefault:"0"`
	KeyPrefix string `env:"REDIS_KEY_PREFIX" envDefault:"xeroserver"`
	EnableTLS bool   `env:"REDIS_TLS" envDefault:"false"`
}

// Config is the root application configuration
type Config struct {
	Env     string `env:"ENV" envDefault:"development"`
	Server  ServerConfig
	Xero    XeroConfig
	Session SessionConfig
	Redis   RedisConfig
}

// Load reads configuration from the environment, consulting a .env file
// when one is present
func Load() (Config, error) {
	// Missing .env is fine; real deployments use the process environment
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse environment: %w", err)
	}

	if cfg.Xero.Scope == "" {
		cfg.Xero.Scope = DefaultScope
	}

	if cfg.Xero.ClientID == "" || cfg.Xero.ClientSecret == "" {
		return Config{}, fmt.Errorf("XERO_CLIENT_ID and XERO_CLIENT_SECRET must be set")
	}

	return cfg, nil
}
