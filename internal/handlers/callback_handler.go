package handlers

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/ruralpay/ledger/internal/models"
	"github.com/ruralpay/ledger/internal/services"
)

type CallbackProcessor interface {
	Verify(r *http.Request) error
	VirtualAccountCreated(ctx context.Context, payload models.VirtualAccountCallback) (*models.Ledger, error)
	PaymentReceived(ctx context.Context, payload models.PaymentCallback) (*models.Transaction, bool, error)
}

type CallbackResponse struct {
	Status        string `json:"status"`
	LedgerID      int64  `json:"ledger_id,omitempty"`
	TransactionID string `json:"transaction_id,omitempty"`
}

type CallbackHandler struct {
	callbacks CallbackProcessor
	validator *services.ValidationHelper
	logger    *zap.Logger
}

func NewCallbackHandler(callbacks CallbackProcessor, logger *zap.Logger) *CallbackHandler {
	return &CallbackHandler{
		callbacks: callbacks,
		validator: services.NewValidationHelper(),
		logger:    logger,
	}
}

// VirtualAccountCreated handles the gateway's fixed virtual account callback
// @Summary Virtual account callback
// @Tags callbacks
// @Accept json
// @Produce json
// @Param X-CALLBACK-TOKEN header string true "Callback token"
// @Param request body models.VirtualAccountCallback true "Callback"
// @Success 200 {object} CallbackResponse
// @Failure 401 {object} services.ErrorResponse
// @Failure 404 {object} services.ErrorResponse
// @Router /callbacks/fixed-virtual-account-created [post]
func (h *CallbackHandler) VirtualAccountCreated(w http.ResponseWriter, r *http.Request) {
	if err := h.callbacks.Verify(r); err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	var payload models.VirtualAccountCallback
	if err := services.DecodeJSON(w, r, &payload, false); err != nil {
		services.SendErrorResponse(w, err.Error(), http.StatusBadRequest, nil)
		return
	}

	if err := h.validator.ValidateStruct(&payload); err != nil {
		services.SendErrorResponse(w, "Validation failed", http.StatusBadRequest, err)
		return
	}

	ledger, err := h.callbacks.VirtualAccountCreated(r.Context(), payload)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	services.SendJSON(w, http.StatusOK, CallbackResponse{Status: "ok", LedgerID: ledger.ID})
}

// PaymentReceived handles the gateway's fixed virtual account payment callback
// @Summary Payment callback
// @Description A redelivered payment is acknowledged without crediting again
// @Tags callbacks
// @Accept json
// @Produce json
// @Param X-CALLBACK-TOKEN header string true "Callback token"
// @Param request body models.PaymentCallback true "Callback"
// @Success 200 {object} CallbackResponse
// @Failure 401 {object} services.ErrorResponse
// @Failure 404 {object} services.ErrorResponse
// @Failure 409 {object} services.ErrorResponse
// @Router /callbacks/fixed-virtual-account-payment [post]
func (h *CallbackHandler) PaymentReceived(w http.ResponseWriter, r *http.Request) {
	if err := h.callbacks.Verify(r); err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	var payload models.PaymentCallback
	if err := services.DecodeJSON(w, r, &payload, false); err != nil {
		services.SendErrorResponse(w, err.Error(), http.StatusBadRequest, nil)
		return
	}

	if err := h.validator.ValidateStruct(&payload); err != nil {
		services.SendErrorResponse(w, "Validation failed", http.StatusBadRequest, err)
		return
	}

	tx, duplicate, err := h.callbacks.PaymentReceived(r.Context(), payload)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	status := "ok"
	if duplicate {
		status = "duplicate"
	}
	services.SendJSON(w, http.StatusOK, CallbackResponse{
		Status:        status,
		LedgerID:      tx.LedgerID,
		TransactionID: tx.ID,
	})
}
