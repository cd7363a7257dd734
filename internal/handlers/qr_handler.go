package handlers

import (
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/ruralpay/ledger/internal/models"
	"github.com/ruralpay/ledger/internal/services"
)

type DepositQRGenerator interface {
	GenerateDepositQR(ledger *models.Ledger, amount int64) (*services.DepositQR, error)
}

type QRHandler struct {
	ledgers LedgerOperations
	service DepositQRGenerator
	logger  *zap.Logger
}

func NewQRHandler(ledgers LedgerOperations, service DepositQRGenerator, logger *zap.Logger) *QRHandler {
	return &QRHandler{
		ledgers: ledgers,
		service: service,
		logger:  logger,
	}
}

// DepositQR generates a QR code for paying into the ledger's virtual account
// @Summary Deposit QR Code
// @Description PNG QR code describing the ledger's virtual account, optionally with a requested amount
// @Tags QR
// @Produce json
// @Security BearerAuth
// @Param ledgerId path int true "Ledger ID"
// @Param amount query int false "Requested amount in minor units"
// @Success 200 {object} services.DepositQR
// @Failure 400 {object} services.ErrorResponse
// @Failure 404 {object} services.ErrorResponse
// @Router /ledgers/{ledgerId}/deposit-qr [get]
func (h *QRHandler) DepositQR(w http.ResponseWriter, r *http.Request) {
	ledger, ok := loadOwnedLedger(w, r, h.ledgers, h.logger)
	if !ok {
		return
	}

	var amount int64
	if v := r.URL.Query().Get("amount"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil || n <= 0 {
			services.SendErrorResponse(w, "Invalid amount parameter", http.StatusBadRequest, nil)
			return
		}
		amount = n
	}

	qr, err := h.service.GenerateDepositQR(ledger, amount)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	services.SendJSON(w, http.StatusOK, qr)
}
