package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/ruralpay/ledger/internal/middleware"
	"github.com/ruralpay/ledger/internal/models"
	"github.com/ruralpay/ledger/internal/services"
)

const maxPageSize = 100

// LedgerOperations is the part of the ledger service the HTTP layer uses
type LedgerOperations interface {
	Create(ctx context.Context, userID int64, name, bankCode string) (*models.Ledger, error)
	CreateDebitTransaction(ctx context.Context, ledgerID int64, input models.TransactionInput) (*models.Transaction, error)
	CreateCreditTransaction(ctx context.Context, ledgerID int64, input models.TransactionInput) (*models.Transaction, error)
	SendTo(ctx context.Context, fromID, toID int64, amount int64) (*models.Transaction, *models.Transaction, error)
	ListLedgers(ctx context.Context, filter models.LedgerFilter) ([]models.Ledger, error)
	GetLedger(ctx context.Context, id int64, mustExist bool) (*models.Ledger, error)
	ListTransactions(ctx context.Context, ledgerID int64, filter models.TransactionFilter) ([]models.Transaction, error)
	GetTransaction(ctx context.Context, ledgerID int64, id string, mustExist bool) (*models.Transaction, error)
	StatusHistory(ctx context.Context, ledgerID int64) ([]models.LedgerStatusHistory, error)
}

type BankValidator interface {
	IsValidBankCode(ctx context.Context, code string) bool
}

type CreateLedgerRequest struct {
	Name     string `json:"name" validate:"required,max=255"`
	BankCode string `json:"bank_code" validate:"required,max=32"`
}

type SendToRequest struct {
	LedgerID int64 `json:"ledger_id" validate:"required,gt=0"`
	Amount   int64 `json:"amount" validate:"required,gt=0"`
}

type LedgerHandler struct {
	ledgers   LedgerOperations
	banks     BankValidator
	validator *services.ValidationHelper
	logger    *zap.Logger
}

func NewLedgerHandler(ledgers LedgerOperations, banks BankValidator, logger *zap.Logger) *LedgerHandler {
	return &LedgerHandler{
		ledgers:   ledgers,
		banks:     banks,
		validator: services.NewValidationHelper(),
		logger:    logger,
	}
}

// CreateLedger opens a ledger for the authenticated user
// @Summary Create ledger
// @Description Provision a virtual account and open a Pending ledger
// @Tags ledgers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateLedgerRequest true "Ledger"
// @Success 201 {object} LedgerResponse
// @Failure 400 {object} services.ErrorResponse
// @Failure 401 {object} services.ErrorResponse
// @Failure 503 {object} services.ErrorResponse
// @Router /ledgers [post]
func (h *LedgerHandler) CreateLedger(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		services.SendErrorResponse(w, "Unauthorized", http.StatusUnauthorized, nil)
		return
	}

	var req CreateLedgerRequest
	if err := services.DecodeJSON(w, r, &req, true); err != nil {
		services.SendErrorResponse(w, err.Error(), http.StatusBadRequest, nil)
		return
	}

	if err := h.validator.ValidateStruct(&req); err != nil {
		services.SendErrorResponse(w, "Validation failed", http.StatusBadRequest, err)
		return
	}

	if !h.banks.IsValidBankCode(r.Context(), req.BankCode) {
		services.SendErrorResponse(w, models.ErrInvalidBankCode.Error(), http.StatusBadRequest, nil)
		return
	}

	ledger, err := h.ledgers.Create(r.Context(), userID, req.Name, req.BankCode)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	services.SendJSON(w, http.StatusCreated, newLedgerResponse(ledger))
}

// ListLedgers lists the user's ledgers
// @Summary List ledgers
// @Tags ledgers
// @Produce json
// @Security BearerAuth
// @Param search query string false "Substring of name, virtual account or reference"
// @Param bank_code query string false "Exact bank code"
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {array} LedgerResponse
// @Failure 401 {object} services.ErrorResponse
// @Router /ledgers [get]
func (h *LedgerHandler) ListLedgers(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		services.SendErrorResponse(w, "Unauthorized", http.StatusUnauthorized, nil)
		return
	}

	limit, offset, err := parsePage(r)
	if err != nil {
		services.SendErrorResponse(w, err.Error(), http.StatusBadRequest, nil)
		return
	}

	q := r.URL.Query()
	ledgers, err := h.ledgers.ListLedgers(r.Context(), models.LedgerFilter{
		UserID:   userID,
		BankCode: q.Get("bank_code"),
		Search:   q.Get("search"),
		Limit:    limit,
		Offset:   offset,
	})
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	services.SendJSON(w, http.StatusOK, newLedgerResponses(ledgers))
}

// GetLedger returns one of the user's ledgers
// @Summary Get ledger
// @Tags ledgers
// @Produce json
// @Security BearerAuth
// @Param ledgerId path int true "Ledger ID"
// @Success 200 {object} LedgerResponse
// @Failure 404 {object} services.ErrorResponse
// @Router /ledgers/{ledgerId} [get]
func (h *LedgerHandler) GetLedger(w http.ResponseWriter, r *http.Request) {
	ledger, ok := loadOwnedLedger(w, r, h.ledgers, h.logger)
	if !ok {
		return
	}
	services.SendJSON(w, http.StatusOK, newLedgerResponse(ledger))
}

// SendTo transfers money to another ledger
// @Summary Send money
// @Description Debit this ledger and credit the target ledger atomically
// @Tags ledgers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param ledgerId path int true "Sender ledger ID"
// @Param request body SendToRequest true "Transfer"
// @Success 201 {object} TransferResponse
// @Failure 400 {object} services.ErrorResponse
// @Failure 404 {object} services.ErrorResponse
// @Failure 422 {object} services.ErrorResponse
// @Router /ledgers/{ledgerId}/send-to [post]
func (h *LedgerHandler) SendTo(w http.ResponseWriter, r *http.Request) {
	ledger, ok := loadOwnedLedger(w, r, h.ledgers, h.logger)
	if !ok {
		return
	}

	var req SendToRequest
	if err := services.DecodeJSON(w, r, &req, true); err != nil {
		services.SendErrorResponse(w, err.Error(), http.StatusBadRequest, nil)
		return
	}

	if err := h.validator.ValidateStruct(&req); err != nil {
		services.SendErrorResponse(w, "Validation failed", http.StatusBadRequest, err)
		return
	}

	debit, credit, err := h.ledgers.SendTo(r.Context(), ledger.ID, req.LedgerID, req.Amount)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	services.SendJSON(w, http.StatusCreated, TransferResponse{
		Debit:  newTransactionResponse(debit),
		Credit: newTransactionResponse(credit),
	})
}

// StatusHistory lists the ledger's status changes
// @Summary Ledger status history
// @Tags ledgers
// @Produce json
// @Security BearerAuth
// @Param ledgerId path int true "Ledger ID"
// @Success 200 {array} StatusHistoryResponse
// @Failure 404 {object} services.ErrorResponse
// @Router /ledgers/{ledgerId}/status-history [get]
func (h *LedgerHandler) StatusHistory(w http.ResponseWriter, r *http.Request) {
	ledger, ok := loadOwnedLedger(w, r, h.ledgers, h.logger)
	if !ok {
		return
	}

	histories, err := h.ledgers.StatusHistory(r.Context(), ledger.ID)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	services.SendJSON(w, http.StatusOK, newStatusHistoryResponses(histories))
}

// loadOwnedLedger resolves {ledgerId} to a ledger of the authenticated user. Ledgers of other
// users are reported as not found.
func loadOwnedLedger(w http.ResponseWriter, r *http.Request, ledgers LedgerOperations, logger *zap.Logger) (*models.Ledger, bool) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		services.SendErrorResponse(w, "Unauthorized", http.StatusUnauthorized, nil)
		return nil, false
	}

	ledgerID, err := strconv.ParseInt(chi.URLParam(r, "ledgerId"), 10, 64)
	if err != nil || ledgerID <= 0 {
		services.SendErrorResponse(w, "Invalid ledger id", http.StatusBadRequest, nil)
		return nil, false
	}

	ledger, err := ledgers.GetLedger(r.Context(), ledgerID, true)
	if err != nil {
		writeServiceError(w, logger, err)
		return nil, false
	}
	if ledger.UserID != userID {
		services.SendErrorResponse(w, models.ErrLedgerNotFound.Error(), http.StatusNotFound, nil)
		return nil, false
	}
	return ledger, true
}

func parsePage(r *http.Request) (int, int, error) {
	q := r.URL.Query()
	limit, offset := 0, 0

	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return 0, 0, errInvalidQuery("limit")
		}
		limit = min(n, maxPageSize)
	}
	if v := q.Get("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return 0, 0, errInvalidQuery("offset")
		}
		offset = n
	}
	return limit, offset, nil
}

type errInvalidQuery string

func (e errInvalidQuery) Error() string {
	return "Invalid " + string(e) + " parameter"
}
