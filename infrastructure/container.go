// infrastructure/container.go
package infrastructure

import (
	"context"
	"log/slog"
	"time"

	goredis "github.com/go-redis/redis/v8"

	"github.com/accountsync/xeroserver/config"
	redisinfra "github.com/accountsync/xeroserver/infrastructure/redis"
	"github.com/accountsync/xeroserver/internal/account"
	"github.com/accountsync/xeroserver/internal/auth"
	"github.com/accountsync/xeroserver/internal/banktransaction"
	"github.com/accountsync/xeroserver/internal/contact"
	"github.com/accountsync/xeroserver/internal/invoice"
	"github.com/accountsync/xeroserver/internal/tenant"
	"github.com/accountsync/xeroserver/pkg/xeroclient"
)

// Container provides application dependencies
type Container struct {
	Logger *slog.Logger

	// Services
	AuthService    *auth.Service
	TenantService  *tenant.Service
	AccountService *account.Service

	// Handlers
	AuthHandler            *auth.Handler
	TenantHandler          *tenant.Handler
	AccountHandler         *account.Handler
	InvoiceHandler         *invoice.Handler
	ContactHandler         *contact.Handler
	BankTransactionHandler *banktransaction.Handler

	// Infrastructure
	RedisClient goredis.UniversalClient
	RedisHealth *redisinfra.HealthChecker
	TokenStore  auth.TokenStore
	XeroClient  *xeroclient.Client
}

// NewContainer creates and initializes the dependency container
func NewContainer(ctx context.Context, cfg config.Config, logger *slog.Logger) (*Container, error) {
	if logger == nil {
		logger = slog.Default()
	}
	container := &Container{Logger: logger}

	// Session store backs tenant/account selection per request
	auth.InitSessionStore([]byte(cfg.Session.Secret), cfg.Session.CookieName)

	// Token store: memory by default, Redis-with-fallback when enabled
	if cfg.Redis.Enabled {
		redisCfg := redisinfra.DefaultConfig()
		redisCfg.Addr = cfg.Redis.Addr
		redisCfg.Password = cfg.Redis.Password
		redisCfg.DB = cfg.Redis.DB
		redisCfg.EnableTLS = cfg.Redis.EnableTLS

		container.RedisClient = redisinfra.NewClient(redisCfg)
		container.RedisHealth = redisinfra.NewHealthChecker(container.RedisClient, 30*time.Second, logger)
		container.RedisHealth.Check(ctx)

		container.TokenStore = auth.NewFallbackTokenStore(
			container.RedisClient,
			cfg.Redis.KeyPrefix,
			container.RedisHealth.IsHealthy,
			logger,
		)
	} else {
		container.TokenStore = auth.NewMemoryTokenStore()
	}

	// Auth service owns the token lifecycle
	container.AuthService = auth.NewService(auth.OAuthConfig{
		ClientID:     cfg.Xero.ClientID,
		ClientSecret: cfg.Xero.ClientSecret,
		RedirectURI:  cfg.Xero.RedirectURI,
		Scope:        cfg.Xero.Scope,
		AuthURL:      cfg.Xero.AuthURL,
		TokenURL:     cfg.Xero.TokenURL,
	}, container.TokenStore, logger)

	// Xero API façade
	container.XeroClient = xeroclient.NewClient(
		cfg.Xero.AccountingURL,
		cfg.Xero.IdentityURL,
		container.AuthService,
		logger,
	)

	// Domain services
	container.TenantService = tenant.NewService(container.XeroClient, logger)
	container.AccountService = account.NewService(container.XeroClient, logger)

	// Handlers
	container.AuthHandler = auth.NewHandler(container.AuthService, cfg.Xero.FrontendURL, logger)
	container.TenantHandler = tenant.NewHandler(container.TenantService, logger)
	container.AccountHandler = account.NewHandler(container.AccountService, logger)
	container.InvoiceHandler = invoice.NewHandler(container.XeroClient, logger)
	container.ContactHandler = contact.NewHandler(container.XeroClient, logger)
	container.BankTransactionHandler = banktransaction.NewHandler(container.XeroClient, logger)

	return container, nil
}

// Shutdown gracefully closes connections
func (c *Container) Shutdown() {
	if c.RedisHealth != nil {
		c.RedisHealth.Stop()
	}
	if c.RedisClient != nil {
		if err := c.RedisClient.Close(); err != nil {
			c.Logger.Error("error closing redis connection", "error", err)
		}
	}
}
