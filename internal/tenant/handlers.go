// tenant/handlers.go
package tenant

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/accountsync/xeroserver/internal/apperr"
	"github.com/accountsync/xeroserver/internal/auth"
)

// Handler provides HTTP handlers for tenant listing and selection
type Handler struct {
	service *Service
	logger  *slog.Logger
}

// NewHandler creates a new tenant handler
func NewHandler(service *Service, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// ListTenants returns the tenants available to the current principal
func (h *Handler) ListTenants(w http.ResponseWriter, r *http.Request) {
	tenants, err := h.service.ListTenants(r.Context())
	if err != nil {
		apperr.WriteError(w, err)
		return
	}

	apperr.WriteJSON(w, http.StatusOK, map[string]interface{}{"tenants": tenants})
}

// SelectTenant validates and stores a tenant selection in the session
func (h *Handler) SelectTenant(w http.ResponseWriter, r *http.Request) {
	tenantID := mux.Vars(r)["tenant_id"]

	if !h.service.ValidateTenantID(r.Context(), tenantID) {
		apperr.WriteError(w, apperr.Domainf("INVALID_TENANT",
			"Invalid tenant ID or tenant not found in available connections"))
		return
	}

	if err := auth.StoreTenantID(w, r, tenantID); err != nil {
		h.logger.Error("failed to store tenant ID", "tenant_id", tenantID, "error", err)
		apperr.WriteError(w, apperr.Remotef(err, "Failed to store tenant selection"))
		return
	}

	apperr.WriteJSON(w, http.StatusOK, map[string]string{
		"status":    "success",
		"message":   "Tenant ID selected and stored successfully",
		"tenant_id": tenantID,
	})
}

// SelectedTenant reports the currently selected tenant, clearing the
// stored ID when it is no longer among the principal's connections
func (h *Handler) SelectedTenant(w http.ResponseWriter, r *http.Request) {
	tenantID := auth.StoredTenantID(r)
	if tenantID == "" {
		apperr.WriteJSON(w, http.StatusOK, map[string]string{
			"status":  "no_tenant",
			"message": "No tenant currently selected",
		})
		return
	}

	conn, err := h.service.ConnectionByID(r.Context(), tenantID)
	if err != nil {
		h.logger.Error("failed to look up selected tenant", "tenant_id", tenantID, "error", err)
		apperr.WriteError(w, err)
		return
	}

	if conn == nil {
		if err := auth.ClearTenantID(w, r); err != nil {
			h.logger.Error("failed to clear invalid tenant ID", "error", err)
		}
		apperr.WriteJSON(w, http.StatusOK, map[string]string{
			"status":  "invalid_tenant",
			"message": "Previously selected tenant is no longer valid",
		})
		return
	}

	apperr.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status":      "active",
		"tenant_id":   tenantID,
		"tenant_info": conn,
	})
}
