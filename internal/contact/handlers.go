// contact/handlers.go
package contact

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/accountsync/xeroserver/internal/apperr"
	"github.com/accountsync/xeroserver/internal/auth"
	"github.com/accountsync/xeroserver/pkg/xeroclient"
)

// Handler provides HTTP handlers for contact lookups
type Handler struct {
	xero   *xeroclient.Client
	logger *slog.Logger
}

// NewHandler creates a new contact handler
func NewHandler(xero *xeroclient.Client, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		xero:   xero,
		logger: logger,
	}
}

// ListContacts proxies the tenant's contact list
func (h *Handler) ListContacts(w http.ResponseWriter, r *http.Request) {
	tenantID := auth.StoredTenantID(r)
	if tenantID == "" {
		apperr.WriteError(w, apperr.Domainf("NO_TENANT_SELECTED", "No organisation tenant found").WithStatus(http.StatusNotFound))
		return
	}

	contacts, err := h.xero.GetContacts(r.Context(), tenantID)
	if err != nil {
		h.logger.Error("contacts error", "tenant_id", tenantID, "error", err)
		apperr.WriteError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(contacts)
}

// GetContact returns one contact wrapped in a success envelope
func (h *Handler) GetContact(w http.ResponseWriter, r *http.Request) {
	contactID := mux.Vars(r)["contact_id"]

	tenantID := auth.StoredTenantID(r)
	if tenantID == "" {
		apperr.WriteError(w, apperr.Domainf("NO_TENANT_SELECTED",
			"No tenant selected. Please select a tenant first."))
		return
	}

	contact, err := h.xero.GetContact(r.Context(), tenantID, contactID)
	if err != nil {
		h.logger.Error("failed to fetch contact", "contact_id", contactID, "error", err)
		apperr.WriteError(w, err)
		return
	}

	apperr.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"contact": json.RawMessage(contact),
	})
}
