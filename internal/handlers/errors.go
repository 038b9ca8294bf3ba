package handlers

import (
	"errors"
	"net/http"

	"timetrack-backend/internal/services"
	"timetrack-backend/pkg/utils"
)

// writeServiceError maps service errors onto HTTP status codes. Unknown
// errors become a generic 500 so internals never leak to clients.
func writeServiceError(w http.ResponseWriter, err error) {
	var notFound *services.NotFoundError
	var validation *services.ValidationError
	var duplicate *services.DuplicateBillingError

	switch {
	case errors.As(err, &notFound):
		utils.Error(w, http.StatusNotFound, notFound.Error())
	case errors.As(err, &validation):
		utils.Error(w, http.StatusBadRequest, validation.Error())
	case errors.As(err, &duplicate):
		utils.Error(w, http.StatusConflict, duplicate.Error())
	default:
		utils.Error(w, http.StatusInternalServerError, "Internal server error")
	}
}
