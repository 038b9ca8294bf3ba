package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"timetrack-backend/internal/middleware"
	"timetrack-backend/internal/models"
	"timetrack-backend/internal/services"
	"timetrack-backend/internal/timeutil"
	"timetrack-backend/pkg/utils"
)

type InvoiceHandler struct {
	Service   *services.InvoiceService
	Documents *services.DocumentService
}

func NewInvoiceHandler(s *services.InvoiceService, docs *services.DocumentService) *InvoiceHandler {
	return &InvoiceHandler{Service: s, Documents: docs}
}

// CreateInvoice composes a new invoice from selected work-hour entries
func (h *InvoiceHandler) CreateInvoice(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req models.CreateInvoiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	invoice, err := h.Service.CreateInvoice(r.Context(), userID, &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	utils.JSON(w, http.StatusCreated, invoice)
}

func (h *InvoiceHandler) GetInvoice(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	id, err := pathID(r, "id")
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid invoice ID")
		return
	}

	invoice, err := h.Service.GetInvoice(r.Context(), userID, id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, invoice)
}

// ListInvoices returns the user's invoices, optionally narrowed by
// ?client_id=, ?status=, ?from= and ?to=.
func (h *InvoiceHandler) ListInvoices(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	filter, err := invoiceFilter(userID, r)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	invoices, err := h.Service.ListInvoices(r.Context(), filter)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, invoices)
}

func (h *InvoiceHandler) UpdateInvoice(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	id, err := pathID(r, "id")
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid invoice ID")
		return
	}

	var req models.UpdateInvoiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	invoice, err := h.Service.UpdateInvoice(r.Context(), userID, id, &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, invoice)
}

// UpdateInvoiceStatus performs a user-driven status transition
func (h *InvoiceHandler) UpdateInvoiceStatus(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	id, err := pathID(r, "id")
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid invoice ID")
		return
	}

	var req models.UpdateInvoiceStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	invoice, err := h.Service.UpdateStatus(r.Context(), userID, id, req.Status)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, invoice)
}

func (h *InvoiceHandler) DeleteInvoice(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	id, err := pathID(r, "id")
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid invoice ID")
		return
	}

	if err := h.Service.DeleteInvoice(r.Context(), userID, id); err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DownloadInvoicePDF renders the invoice as a PDF and streams it back
func (h *InvoiceHandler) DownloadInvoicePDF(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	id, err := pathID(r, "id")
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid invoice ID")
		return
	}

	pdf, err := h.Documents.RenderInvoicePDF(r.Context(), userID, id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="invoice-%d.pdf"`, id))
	w.Write(pdf)
}

// PublishInvoicePDF renders the invoice PDF, uploads it to object storage
// and stores the resulting URL on the invoice
func (h *InvoiceHandler) PublishInvoicePDF(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	id, err := pathID(r, "id")
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid invoice ID")
		return
	}

	url, err := h.Documents.PublishInvoicePDF(r.Context(), userID, id)
	if err != nil {
		if errors.Is(err, services.ErrStorageDisabled) {
			utils.Error(w, http.StatusServiceUnavailable, "Object storage is not configured")
			return
		}
		writeServiceError(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, map[string]string{"file_url": url})
}

func invoiceFilter(userID int, r *http.Request) (models.InvoiceFilter, error) {
	filter := models.InvoiceFilter{UserID: userID}
	q := r.URL.Query()

	if raw := q.Get("client_id"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil {
			return filter, errInvalidQuery("client_id")
		}
		filter.ClientID = &id
	}
	if raw := q.Get("status"); raw != "" {
		if !models.ValidInvoiceStatus(raw) {
			return filter, errInvalidQuery("status")
		}
		filter.Status = &raw
	}
	if raw := q.Get("from"); raw != "" {
		t, err := time.Parse(timeutil.DateLayout, raw)
		if err != nil {
			return filter, errInvalidQuery("from")
		}
		filter.From = &t
	}
	if raw := q.Get("to"); raw != "" {
		t, err := time.Parse(timeutil.DateLayout, raw)
		if err != nil {
			return filter, errInvalidQuery("to")
		}
		filter.To = &t
	}
	return filter, nil
}
