// account/service.go
package account

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/accountsync/xeroserver/pkg/xeroclient"
)

// bankAccountsFilter restricts listings to active bank accounts
const bankAccountsFilter = `Status=="ACTIVE" AND Type=="BANK"`

// Service validates and fetches bank accounts for a tenant
type Service struct {
	xero   *xeroclient.Client
	logger *slog.Logger
}

// NewService creates a new account service
func NewService(xero *xeroclient.Client, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		xero:   xero,
		logger: logger,
	}
}

// escapeFilterValue escapes a value for embedding in a Xero where
// filter string literal
func escapeFilterValue(v string) string {
	v = strings.ReplaceAll(v, `\`, `\\`)
	return strings.ReplaceAll(v, `"`, `\"`)
}

// ListBankAccounts returns the active bank accounts for a tenant
func (s *Service) ListBankAccounts(ctx context.Context, tenantID string) (*xeroclient.AccountsResponse, error) {
	return s.xero.GetAccounts(ctx, tenantID, bankAccountsFilter)
}

// ValidateAccountID reports whether an active bank account with the
// given ID exists under the tenant. Validation runs as a server-side
// filtered query; the account ID is escaped into the filter rather than
// matched client-side.
func (s *Service) ValidateAccountID(ctx context.Context, tenantID, accountID string) bool {
	where := fmt.Sprintf(`%s AND AccountID=guid("%s")`, bankAccountsFilter, escapeFilterValue(accountID))

	accounts, err := s.xero.GetAccounts(ctx, tenantID, where)
	if err != nil {
		s.logger.Error("failed to validate account ID", "tenant_id", tenantID, "account_id", accountID, "error", err)
		return false
	}

	return len(accounts.Accounts) > 0
}

// AccountDetails fetches a specific account under the tenant, returning
// nil when it does not exist
func (s *Service) AccountDetails(ctx context.Context, tenantID, accountID string) (*xeroclient.Account, error) {
	where := fmt.Sprintf(`AccountID=guid("%s")`, escapeFilterValue(accountID))

	accounts, err := s.xero.GetAccounts(ctx, tenantID, where)
	if err != nil {
		return nil, err
	}
	if len(accounts.Accounts) == 0 {
		return nil, nil
	}

	account := accounts.Accounts[0]
	return &account, nil
}
