// banktransaction/handlers.go
package banktransaction

import (
	"log/slog"
	"net/http"

	"github.com/accountsync/xeroserver/internal/apperr"
	"github.com/accountsync/xeroserver/internal/auth"
	"github.com/accountsync/xeroserver/pkg/xeroclient"
)

// Handler provides HTTP handlers for bank transaction listings
type Handler struct {
	xero   *xeroclient.Client
	logger *slog.Logger
}

// NewHandler creates a new bank transaction handler
func NewHandler(xero *xeroclient.Client, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		xero:   xero,
		logger: logger,
	}
}

// ListBankTransactions proxies the tenant's bank transaction list
func (h *Handler) ListBankTransactions(w http.ResponseWriter, r *http.Request) {
	tenantID := auth.StoredTenantID(r)
	h.logger.Debug("bank transactions request", "tenant_id", tenantID)
	if tenantID == "" {
		apperr.WriteError(w, apperr.Domainf("NO_TENANT_SELECTED", "No organisation tenant found").WithStatus(http.StatusNotFound))
		return
	}

	transactions, err := h.xero.GetBankTransactions(r.Context(), tenantID)
	if err != nil {
		h.logger.Error("bank transactions error", "tenant_id", tenantID, "error", err)
		apperr.WriteError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(transactions)
}
