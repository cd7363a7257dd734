package handlers

import (
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/ruralpay/ledger/internal/models"
	"github.com/ruralpay/ledger/internal/services"
)

// StatementWriter renders a ledger statement file
type StatementWriter interface {
	Filename(ledger *models.Ledger) string
	Write(w io.Writer, ledger *models.Ledger, transactions []models.Transaction) error
}

type CreateTransactionRequest struct {
	Type            string `json:"type" validate:"required,oneof=1 2"`
	Amount          int64  `json:"amount" validate:"required,gt=0"`
	Reference       string `json:"reference" validate:"max=255"`
	BankAccountName string `json:"bank_account_name" validate:"max=255"`
	AccountName     string `json:"account_name" validate:"max=255"`
	AccountNumber   string `json:"account_number" validate:"max=64"`
	Notes           string `json:"notes"`
}

type TransactionHandler struct {
	ledgers    LedgerOperations
	statements StatementWriter
	validator  *services.ValidationHelper
	logger     *zap.Logger
}

func NewTransactionHandler(ledgers LedgerOperations, statements StatementWriter, logger *zap.Logger) *TransactionHandler {
	return &TransactionHandler{
		ledgers:    ledgers,
		statements: statements,
		validator:  services.NewValidationHelper(),
		logger:     logger,
	}
}

// CreateTransaction records a credit or debit
// @Summary Create transaction
// @Description type "1" credits the ledger, "2" debits it
// @Tags transactions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param ledgerId path int true "Ledger ID"
// @Param request body CreateTransactionRequest true "Transaction"
// @Success 201 {object} TransactionResponse
// @Failure 400 {object} services.ErrorResponse
// @Failure 404 {object} services.ErrorResponse
// @Failure 409 {object} services.ErrorResponse
// @Failure 422 {object} services.ErrorResponse
// @Router /ledgers/{ledgerId}/transactions [post]
func (h *TransactionHandler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	ledger, ok := loadOwnedLedger(w, r, h.ledgers, h.logger)
	if !ok {
		return
	}

	var req CreateTransactionRequest
	if err := services.DecodeJSON(w, r, &req, true); err != nil {
		services.SendErrorResponse(w, err.Error(), http.StatusBadRequest, nil)
		return
	}

	if err := h.validator.ValidateStruct(&req); err != nil {
		services.SendErrorResponse(w, "Validation failed", http.StatusBadRequest, err)
		return
	}

	input := models.TransactionInput{
		Amount: req.Amount,
		Counterparty: models.Counterparty{
			BankAccountName: req.BankAccountName,
			AccountName:     req.AccountName,
			AccountNumber:   req.AccountNumber,
		},
		Reference: req.Reference,
		Notes:     req.Notes,
	}

	var (
		tx  *models.Transaction
		err error
	)
	if models.TransactionType(req.Type) == models.TransactionTypeDebit {
		tx, err = h.ledgers.CreateDebitTransaction(r.Context(), ledger.ID, input)
	} else {
		tx, err = h.ledgers.CreateCreditTransaction(r.Context(), ledger.ID, input)
	}
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	services.SendJSON(w, http.StatusCreated, newTransactionResponse(tx))
}

// ListTransactions lists ledger transactions, newest first
// @Summary List transactions
// @Tags transactions
// @Produce json
// @Security BearerAuth
// @Param ledgerId path int true "Ledger ID"
// @Param type query string false "1 credit, 2 debit"
// @Param search query string false "Substring of id, reference, counterparty or notes"
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {array} TransactionResponse
// @Failure 404 {object} services.ErrorResponse
// @Router /ledgers/{ledgerId}/transactions [get]
func (h *TransactionHandler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	ledger, ok := loadOwnedLedger(w, r, h.ledgers, h.logger)
	if !ok {
		return
	}

	filter, ok := h.transactionFilter(w, r)
	if !ok {
		return
	}

	transactions, err := h.ledgers.ListTransactions(r.Context(), ledger.ID, filter)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	services.SendJSON(w, http.StatusOK, newTransactionResponses(transactions))
}

// GetTransaction returns one transaction
// @Summary Get transaction
// @Tags transactions
// @Produce json
// @Security BearerAuth
// @Param ledgerId path int true "Ledger ID"
// @Param txId path string true "Transaction ID"
// @Success 200 {object} TransactionResponse
// @Failure 404 {object} services.ErrorResponse
// @Router /ledgers/{ledgerId}/transactions/{txId} [get]
func (h *TransactionHandler) GetTransaction(w http.ResponseWriter, r *http.Request) {
	ledger, ok := loadOwnedLedger(w, r, h.ledgers, h.logger)
	if !ok {
		return
	}

	txID := chi.URLParam(r, "txId")
	if len(txID) != models.TransactionIDLength {
		services.SendErrorResponse(w, models.ErrTransactionNotFound.Error(), http.StatusNotFound, nil)
		return
	}

	tx, err := h.ledgers.GetTransaction(r.Context(), ledger.ID, txID, true)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	services.SendJSON(w, http.StatusOK, newTransactionResponse(tx))
}

// ExportTransactions downloads the ledger statement
// @Summary Export statement
// @Tags transactions
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Param ledgerId path int true "Ledger ID"
// @Param type query string false "1 credit, 2 debit"
// @Param search query string false "Substring filter"
// @Success 200 {file} file
// @Failure 404 {object} services.ErrorResponse
// @Router /ledgers/{ledgerId}/transactions/export [get]
func (h *TransactionHandler) ExportTransactions(w http.ResponseWriter, r *http.Request) {
	ledger, ok := loadOwnedLedger(w, r, h.ledgers, h.logger)
	if !ok {
		return
	}

	filter, ok := h.transactionFilter(w, r)
	if !ok {
		return
	}
	filter.Limit, filter.Offset = 0, 0

	transactions, err := h.ledgers.ListTransactions(r.Context(), ledger.ID, filter)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", h.statements.Filename(ledger)))

	if err := h.statements.Write(w, ledger, transactions); err != nil {
		h.logger.Error("statement export failed", zap.Int64("ledger_id", ledger.ID), zap.Error(err))
	}
}

func (h *TransactionHandler) transactionFilter(w http.ResponseWriter, r *http.Request) (models.TransactionFilter, bool) {
	limit, offset, err := parsePage(r)
	if err != nil {
		services.SendErrorResponse(w, err.Error(), http.StatusBadRequest, nil)
		return models.TransactionFilter{}, false
	}

	q := r.URL.Query()
	txType := models.TransactionType(q.Get("type"))
	if txType != "" && !txType.IsValid() {
		services.SendErrorResponse(w, "Invalid type parameter", http.StatusBadRequest, nil)
		return models.TransactionFilter{}, false
	}

	return models.TransactionFilter{
		Type:   txType,
		Search: q.Get("search"),
		Limit:  limit,
		Offset: offset,
	}, true
}
