package handlers

import (
	"errors"
	"net/http"

	"github.com/tomward0606/StockSystem/internal/models"
	"github.com/tomward0606/StockSystem/pkg/utils"
)

// respondError maps service errors onto HTTP statuses in one place so every
// handler reports the same way.
func respondError(w http.ResponseWriter, err error) {
	var vErr *models.ValidationError
	switch {
	case errors.As(err, &vErr):
		utils.Error(w, http.StatusBadRequest, vErr.Error())
	case errors.Is(err, models.ErrNotFound):
		utils.Error(w, http.StatusNotFound, "not found")
	case errors.Is(err, models.ErrDuplicateKey):
		utils.Error(w, http.StatusConflict, "already exists")
	case errors.Is(err, models.ErrConcurrencyConflict):
		utils.Error(w, http.StatusConflict, "catalogue was modified by another user, please retry")
	case errors.Is(err, models.ErrNotConfigured):
		utils.Error(w, http.StatusServiceUnavailable, "remote catalogue is not configured")
	case errors.Is(err, models.ErrRemoteUnavailable):
		utils.Error(w, http.StatusBadGateway, "remote catalogue is unavailable")
	default:
		utils.Error(w, http.StatusInternalServerError, err.Error())
	}
}
