package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"timetrack-backend/internal/middleware"
	"timetrack-backend/internal/models"
	"timetrack-backend/internal/services"
	"timetrack-backend/internal/timeutil"
	"timetrack-backend/pkg/utils"
)

type WorkHourHandler struct {
	Service *services.WorkHourService
}

func NewWorkHourHandler(s *services.WorkHourService) *WorkHourHandler {
	return &WorkHourHandler{Service: s}
}

func (h *WorkHourHandler) CreateWorkHour(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req models.CreateWorkHourRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	wh, err := h.Service.Create(r.Context(), userID, &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	utils.JSON(w, http.StatusCreated, wh)
}

func (h *WorkHourHandler) GetWorkHour(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	id, err := pathID(r, "id")
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid work hour ID")
		return
	}

	wh, err := h.Service.Get(r.Context(), userID, id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, wh)
}

// ListWorkHours returns the user's entries, optionally narrowed by
// ?client_id=, ?from= and ?to= (dates as YYYY-MM-DD).
func (h *WorkHourHandler) ListWorkHours(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	filter, err := workHourFilter(userID, r)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	entries, err := h.Service.List(r.Context(), filter)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, entries)
}

func (h *WorkHourHandler) UpdateWorkHour(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	id, err := pathID(r, "id")
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid work hour ID")
		return
	}

	var req models.UpdateWorkHourRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	wh, err := h.Service.Update(r.Context(), userID, id, &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, wh)
}

func (h *WorkHourHandler) DeleteWorkHour(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	id, err := pathID(r, "id")
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid work hour ID")
		return
	}

	if err := h.Service.Delete(r.Context(), userID, id); err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func workHourFilter(userID int, r *http.Request) (models.WorkHourFilter, error) {
	filter := models.WorkHourFilter{UserID: userID}
	q := r.URL.Query()

	if raw := q.Get("client_id"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil {
			return filter, errInvalidQuery("client_id")
		}
		filter.ClientID = &id
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

type queryError string

func (e queryError) Error() string { return "invalid query parameter " + string(e) }

func errInvalidQuery(name string) error { return queryError(name) }
