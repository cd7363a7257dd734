package handlers

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/ruralpay/ledger/internal/models"
	"github.com/ruralpay/ledger/internal/services"
)

// writeServiceError maps domain errors onto HTTP responses
func writeServiceError(w http.ResponseWriter, logger *zap.Logger, err error) {
	switch {
	case models.IsNotFound(err):
		services.SendErrorResponse(w, err.Error(), http.StatusNotFound, nil)
	case models.IsValidation(err):
		services.SendErrorResponse(w, err.Error(), http.StatusBadRequest, nil)
	case errors.Is(err, models.ErrInsufficientBalance):
		services.SendErrorResponse(w, models.ErrInsufficientBalance.Error(), http.StatusUnprocessableEntity, nil)
	case errors.Is(err, models.ErrDuplicateReference):
		services.SendErrorResponse(w, err.Error(), http.StatusConflict, nil)
	case errors.Is(err, models.ErrInvalidCallback):
		services.SendErrorResponse(w, "Invalid callback token", http.StatusUnauthorized, nil)
	case errors.Is(err, models.ErrGatewayUnavailable):
		logger.Warn("payment gateway unavailable", zap.Error(err))
		w.Header().Set("Retry-After", "30")
		services.SendErrorResponse(w, models.ErrGatewayUnavailable.Error(), http.StatusServiceUnavailable, nil)
	default:
		logger.Error("request failed", zap.Error(err))
		services.SendErrorResponse(w, "Internal server error", http.StatusInternalServerError, nil)
	}
}
