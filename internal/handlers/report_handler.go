package handlers

import (
	"net/http"
	"strconv"
	"time"

	"timetrack-backend/internal/middleware"
	"timetrack-backend/internal/models"
	"timetrack-backend/internal/services"
	"timetrack-backend/internal/timeutil"
	"timetrack-backend/pkg/utils"
)

type ReportHandler struct {
	Service *services.ReportService
}

func NewReportHandler(s *services.ReportService) *ReportHandler {
	return &ReportHandler{Service: s}
}

// HoursReport aggregates the user's work hours for an optional client and
// date range given as ?client_id=, ?from= and ?to=.
func (h *ReportHandler) HoursReport(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	filter, err := reportFilter(r)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	report, err := h.Service.GetHoursReport(r.Context(), userID, filter)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, report)
}

// InvoiceReport aggregates the user's invoices; accepts ?status= on top of
// the common report filters.
func (h *ReportHandler) InvoiceReport(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	filter, err := reportFilter(r)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	report, err := h.Service.GetInvoiceReport(r.Context(), userID, filter)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, report)
}

func reportFilter(r *http.Request) (services.ReportFilter, error) {
	var filter services.ReportFilter
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
