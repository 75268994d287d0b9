// invoice/handlers.go
package invoice

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/accountsync/xeroserver/internal/apperr"
	"github.com/accountsync/xeroserver/internal/auth"
	"github.com/accountsync/xeroserver/pkg/xeroclient"
)

// maxAttachmentSize bounds multipart attachment uploads
const maxAttachmentSize = 25 << 20 // 25 MB, Xero's attachment limit

// Handler provides HTTP handlers for invoice operations
type Handler struct {
	xero   *xeroclient.Client
	logger *slog.Logger
}

// NewHandler creates a new invoice handler
func NewHandler(xero *xeroclient.Client, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		xero:   xero,
		logger: logger,
	}
}

// ListInvoices proxies the tenant's invoice list
func (h *Handler) ListInvoices(w http.ResponseWriter, r *http.Request) {
	tenantID := auth.StoredTenantID(r)
	if tenantID == "" {
		apperr.WriteError(w, apperr.Domainf("NO_TENANT_SELECTED", "No organisation tenant found").WithStatus(http.StatusNotFound))
		return
	}

	invoices, err := h.xero.GetInvoices(r.Context(), tenantID)
	if err != nil {
		h.logger.Error("failed to fetch invoices", "tenant_id", tenantID, "error", err)
		apperr.WriteError(w, err)
		return
	}

	writeRaw(w, http.StatusOK, invoices)
}

// GetInvoice returns one invoice wrapped in a success envelope
func (h *Handler) GetInvoice(w http.ResponseWriter, r *http.Request) {
	invoiceID := mux.Vars(r)["invoice_id"]

	tenantID := auth.StoredTenantID(r)
	if tenantID == "" {
		apperr.WriteError(w, apperr.Domainf("NO_TENANT_SELECTED",
			"No tenant selected. Please select a tenant first."))
		return
	}

	invoice, err := h.xero.GetInvoice(r.Context(), tenantID, invoiceID)
	if err != nil {
		h.logger.Error("failed to fetch invoice", "invoice_id", invoiceID, "error", err)
		apperr.WriteError(w, err)
		return
	}

	apperr.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"invoice": json.RawMessage(invoice),
	})
}

// CreateInvoices validates a batch of invoices and submits them to Xero
// as a single create call. Validation failures never reach the remote
// system; Xero's partial-success semantics pass through unmodified.
func (h *Handler) CreateInvoices(w http.ResponseWriter, r *http.Request) {
	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apperr.WriteError(w, apperr.Validationf("Invalid request body: %v", err))
		return
	}
	if err := req.Validate(); err != nil {
		apperr.WriteError(w, apperr.Validationf("%v", err))
		return
	}

	tenantID := auth.StoredTenantID(r)
	if tenantID == "" {
		apperr.WriteError(w, apperr.Domainf("NO_TENANT_SELECTED", "No tenant selected"))
		return
	}

	h.logger.Info("creating invoices", "count", len(req.Invoices), "tenant_id", tenantID)

	created, err := h.xero.CreateInvoices(r.Context(), tenantID, req)
	if err != nil {
		h.logger.Error("failed to create invoices", "tenant_id", tenantID, "error", err)
		apperr.WriteError(w, err)
		return
	}

	apperr.WriteJSON(w, http.StatusCreated, map[string]interface{}{
		"status":  "success",
		"message": "Invoices created successfully",
		"data":    json.RawMessage(created),
	})
}

// CreateAttachment uploads a multipart file as an invoice attachment
func (h *Handler) CreateAttachment(w http.ResponseWriter, r *http.Request) {
	invoiceID := mux.Vars(r)["invoice_id"]

	tenantID := auth.StoredTenantID(r)
	if tenantID == "" {
		h.logger.Error("no tenant ID found for attachment upload", "invoice_id", invoiceID)
		apperr.WriteError(w, apperr.Domainf("NO_TENANT_SELECTED", "No tenant selected"))
		return
	}

	if err := r.ParseMultipartForm(maxAttachmentSize); err != nil {
		apperr.WriteError(w, apperr.Validationf("Invalid multipart request: %v", err))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		apperr.WriteError(w, apperr.Validationf("Please provide a file."))
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		apperr.WriteError(w, apperr.Remotef(err, "Failed to read uploaded file"))
		return
	}

	mimeType := header.Header.Get("Content-Type")
	// Deterministic key so a retried upload is deduplicated by Xero
	idempotencyKey := fmt.Sprintf("attachment_%s_%s", invoiceID, header.Filename)

	h.logger.Info("uploading invoice attachment",
		"invoice_id", invoiceID, "filename", header.Filename, "mime_type", mimeType)

	attachment, err := h.xero.CreateInvoiceAttachment(r.Context(), tenantID, invoiceID,
		header.Filename, mimeType, content, idempotencyKey)
	if err != nil {
		h.logger.Error("failed to upload attachment", "invoice_id", invoiceID, "error", err)
		apperr.WriteError(w, err)
		return
	}

	apperr.WriteJSON(w, http.StatusCreated, map[string]interface{}{
		"status":  "success",
		"message": "Attachment uploaded successfully",
		"data":    json.RawMessage(attachment),
	})
}

// writeRaw relays a remote JSON payload without re-encoding it
func writeRaw(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}
