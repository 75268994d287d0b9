// tenant/service.go
package tenant

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/accountsync/xeroserver/internal/apperr"
	"github.com/accountsync/xeroserver/pkg/xeroclient"
)

// Tenant is an organisation-scoped context in Xero, recomputed per
// listing request from the remote connection list.
type Tenant struct {
	TenantID     string `json:"tenantId"`
	TenantName   string `json:"tenantName"`
	TenantType   string `json:"tenantType"`
	LastAccessed string `json:"lastAccessed"`
}

// Service lists and validates tenants against the Xero identity service
type Service struct {
	xero   *xeroclient.Client
	logger *slog.Logger

	// retryInitial is the first backoff delay for tenant listing;
	// tests shrink it
	retryInitial time.Duration
	now          func() time.Time
}

// NewService creates a new tenant service
func NewService(xero *xeroclient.Client, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		xero:         xero,
		logger:       logger,
		retryInitial: 1 * time.Second,
		now:          time.Now,
	}
}

// ListTenants fetches the organisation tenants available to the
// authenticated principal. The fetch is retried up to 3 times with
// exponential backoff; an empty result is a domain error, not retried.
func (s *Service) ListTenants(ctx context.Context) ([]Tenant, error) {
	tenants, err := retryWithBackoff(func() ([]Tenant, error) {
		return s.fetchTenants(ctx)
	}, 3, s.retryInitial)
	if err != nil {
		var ae *apperr.Error
		if errors.As(err, &ae) {
			return nil, ae
		}
		s.logger.Error("failed to fetch organizations", "error", err)
		fetchErr := apperr.Domainf("FETCH_ERROR", "Failed to fetch organizations").WithStatus(500)
		fetchErr.Err = err
		return nil, fetchErr
	}
	return tenants, nil
}

// fetchTenants performs one listing attempt. Per-connection organisation
// lookups that fail are logged and skipped, so partial results are
// allowed.
func (s *Service) fetchTenants(ctx context.Context) ([]Tenant, error) {
	connections, err := s.xero.GetConnections(ctx)
	if err != nil {
		var ae *apperr.Error
		if errors.As(err, &ae) && ae.Kind == apperr.AuthRequired {
			// Retrying cannot conjure a token
			return nil, backoff.Permanent(err)
		}
		return nil, fmt.Errorf("failed to fetch connections: %w", err)
	}

	var tenants []Tenant
	for _, conn := range connections {
		if conn.TenantType != "ORGANISATION" {
			continue
		}

		orgs, err := s.xero.GetOrganisations(ctx, conn.TenantID)
		if err != nil {
			s.logger.Warn("failed to fetch organisation details for tenant",
				"tenant_id", conn.TenantID, "error", err)
			continue
		}

		name := "Unknown"
		if len(orgs.Organisations) > 0 {
			name = orgs.Organisations[0].Name
		}

		tenants = append(tenants, Tenant{
			TenantID:     conn.TenantID,
			TenantName:   name,
			TenantType:   conn.TenantType,
			LastAccessed: s.now().UTC().Format(time.RFC3339),
		})
	}

	if len(tenants) == 0 {
		return nil, backoff.Permanent(apperr.Domainf("NO_TENANTS", "No available organizations found"))
	}

	return tenants, nil
}

// ValidateTenantID reports whether the ID appears in the current
// connection list. Used before trusting a client-supplied selection.
func (s *Service) ValidateTenantID(ctx context.Context, tenantID string) bool {
	connections, err := s.xero.GetConnections(ctx)
	if err != nil {
		s.logger.Error("failed to validate tenant ID", "tenant_id", tenantID, "error", err)
		return false
	}

	for _, conn := range connections {
		if conn.TenantID == tenantID {
			return true
		}
	}
	return false
}

// ConnectionByID returns the connection for a tenant ID, or nil when the
// ID is not among the principal's connections
func (s *Service) ConnectionByID(ctx context.Context, tenantID string) (*xeroclient.Connection, error) {
	connections, err := s.xero.GetConnections(ctx)
	if err != nil {
		return nil, err
	}

	for _, conn := range connections {
		if conn.TenantID == tenantID {
			found := conn
			return &found, nil
		}
	}
	return nil, nil
}
