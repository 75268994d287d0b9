// account/handlers.go
package account

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/accountsync/xeroserver/internal/apperr"
	"github.com/accountsync/xeroserver/internal/auth"
)

// Handler provides HTTP handlers for bank account listing and selection
type Handler struct {
	service *Service
	logger  *slog.Logger
}

// NewHandler creates a new account handler
func NewHandler(service *Service, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// ListAccounts lists the active bank accounts for the selected tenant
func (h *Handler) ListAccounts(w http.ResponseWriter, r *http.Request) {
	tenantID := auth.StoredTenantID(r)
	if tenantID == "" {
		apperr.WriteError(w, apperr.Domainf("NO_TENANT_SELECTED", "No organisation tenant found").WithStatus(http.StatusNotFound))
		return
	}

	accounts, err := h.service.ListBankAccounts(r.Context(), tenantID)
	if err != nil {
		h.logger.Error("accounts error", "tenant_id", tenantID, "error", err)
		apperr.WriteError(w, err)
		return
	}

	apperr.WriteJSON(w, http.StatusOK, accounts)
}

// SelectedAccount reports the currently selected bank account, clearing
// the stored ID when it is no longer valid under the tenant
func (h *Handler) SelectedAccount(w http.ResponseWriter, r *http.Request) {
	tenantID := auth.StoredTenantID(r)
	accountID := auth.StoredAccountID(r)

	if tenantID == "" {
		apperr.WriteJSON(w, http.StatusOK, map[string]string{
			"status":  "no_tenant",
			"message": "No tenant currently selected",
		})
		return
	}

	if accountID == "" {
		apperr.WriteJSON(w, http.StatusOK, map[string]string{
			"status":  "no_account",
			"message": "No bank account currently selected",
		})
		return
	}

	details, err := h.service.AccountDetails(r.Context(), tenantID, accountID)
	if err != nil {
		h.logger.Error("failed to fetch selected account", "account_id", accountID, "error", err)
		apperr.WriteError(w, err)
		return
	}

	if details == nil {
		if err := auth.ClearAccountID(w, r); err != nil {
			h.logger.Error("failed to clear invalid account ID", "error", err)
		}
		apperr.WriteJSON(w, http.StatusOK, map[string]string{
			"status":  "invalid_account",
			"message": "Previously selected account is no longer valid",
		})
		return
	}

	apperr.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status":          "active",
		"account_id":      accountID,
		"account_details": details,
	})
}

// SelectAccount validates and stores a bank account selection. The
// selection is only trusted after a server-side filtered query confirms
// an active bank account with that ID exists under the tenant.
func (h *Handler) SelectAccount(w http.ResponseWriter, r *http.Request) {
	accountID := mux.Vars(r)["account_id"]

	tenantID := auth.StoredTenantID(r)
	if tenantID == "" {
		apperr.WriteError(w, apperr.Domainf("NO_TENANT_SELECTED",
			"No tenant selected. Please select a tenant first."))
		return
	}

	if !h.service.ValidateAccountID(r.Context(), tenantID, accountID) {
		apperr.WriteError(w, apperr.Domainf("INVALID_ACCOUNT",
			"Invalid account ID or account not found in selected organization"))
		return
	}

	details, err := h.service.AccountDetails(r.Context(), tenantID, accountID)
	if err != nil {
		h.logger.Error("failed to fetch account details", "account_id", accountID, "error", err)
		apperr.WriteError(w, err)
		return
	}

	if err := auth.StoreAccountID(w, r, accountID); err != nil {
		h.logger.Error("failed to store account ID", "account_id", accountID, "error", err)
		apperr.WriteError(w, apperr.Remotef(err, "Failed to store account selection"))
		return
	}

	apperr.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status":          "success",
		"message":         "Bank account selected successfully",
		"account_id":      accountID,
		"account_details": details,
	})
}
