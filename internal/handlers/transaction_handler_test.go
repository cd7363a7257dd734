package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/ruralpay/ledger/internal/models"
)

func transactionRoutes(h *TransactionHandler) func(r chi.Router) {
	return func(r chi.Router) {
		r.Post("/ledgers/{ledgerId}/transactions", h.CreateTransaction)
		r.Get("/ledgers/{ledgerId}/transactions", h.ListTransactions)
		r.Get("/ledgers/{ledgerId}/transactions/export", h.ExportTransactions)
		r.Get("/ledgers/{ledgerId}/transactions/{txId}", h.GetTransaction)
	}
}

func TestTransactionHandler_CreateTransaction(t *testing.T) {
	input := models.TransactionInput{
		Amount: 5000,
		Counterparty: models.Counterparty{
			BankAccountName: "BCA",
			AccountName:     "Budi",
			AccountNumber:   "12345",
		},
		Reference: "INV-1",
	}
	body := `{"type":"%s","amount":5000,"reference":"INV-1","bank_account_name":"BCA","account_name":"Budi","account_number":"12345"}`

	t.Run("credit", func(t *testing.T) {
		ledgers := new(MockLedgerOperations)
		ledgers.On("GetLedger", mock.Anything, int64(1), true).Return(testLedger(1, 0), nil)
		tx := testTransaction(1, models.TransactionTypeCredit, 5000)
		tx.Counterparty = input.Counterparty
		ledgers.On("CreateCreditTransaction", mock.Anything, int64(1), input).Return(tx, nil)
		h := NewTransactionHandler(ledgers, new(MockStatementWriter), testLogger())

		rec := serve(newRouter(testUserID, transactionRoutes(h)), http.MethodPost, "/ledgers/1/transactions",
			fmt.Sprintf(body, "1"))

		assert.Equal(t, http.StatusCreated, rec.Code)
		var resp TransactionResponse
		decodeBody(t, rec, &resp)
		assert.Equal(t, "Credit", resp.Type.DisplayName)
		assert.Equal(t, "Budi - BCA 12345", resp.Origin)
		assert.Equal(t, "-", resp.Destination)
		ledgers.AssertExpectations(t)
	})

	t.Run("debit with insufficient balance", func(t *testing.T) {
		ledgers := new(MockLedgerOperations)
		ledgers.On("GetLedger", mock.Anything, int64(1), true).Return(testLedger(1, 0), nil)
		ledgers.On("CreateDebitTransaction", mock.Anything, int64(1), input).Return(nil, models.ErrInsufficientBalance)
		h := NewTransactionHandler(ledgers, new(MockStatementWriter), testLogger())

		rec := serve(newRouter(testUserID, transactionRoutes(h)), http.MethodPost, "/ledgers/1/transactions",
			fmt.Sprintf(body, "2"))

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		ledgers.AssertNotCalled(t, "CreateCreditTransaction", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("duplicate reference", func(t *testing.T) {
		ledgers := new(MockLedgerOperations)
		ledgers.On("GetLedger", mock.Anything, int64(1), true).Return(testLedger(1, 0), nil)
		ledgers.On("CreateCreditTransaction", mock.Anything, int64(1), input).Return(nil, models.ErrDuplicateReference)
		h := NewTransactionHandler(ledgers, new(MockStatementWriter), testLogger())

		rec := serve(newRouter(testUserID, transactionRoutes(h)), http.MethodPost, "/ledgers/1/transactions",
			fmt.Sprintf(body, "1"))

		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	tests := []struct {
		name string
		body string
	}{
		{"unknown type", `{"type":"3","amount":5000}`},
		{"negative amount", `{"type":"1","amount":-5}`},
		{"missing amount", `{"type":"1"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ledgers := new(MockLedgerOperations)
			ledgers.On("GetLedger", mock.Anything, int64(1), true).Return(testLedger(1, 0), nil)
			h := NewTransactionHandler(ledgers, new(MockStatementWriter), testLogger())

			rec := serve(newRouter(testUserID, transactionRoutes(h)), http.MethodPost, "/ledgers/1/transactions", tt.body)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			ledgers.AssertNotCalled(t, "CreateCreditTransaction", mock.Anything, mock.Anything, mock.Anything)
			ledgers.AssertNotCalled(t, "CreateDebitTransaction", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestTransactionHandler_ListTransactions(t *testing.T) {
	ledgers := new(MockLedgerOperations)
	ledgers.On("GetLedger", mock.Anything, int64(1), true).Return(testLedger(1, 0), nil)
	filter := models.TransactionFilter{Type: models.TransactionTypeDebit, Search: "INV", Limit: 10}
	ledgers.On("ListTransactions", mock.Anything, int64(1), filter).Return([]models.Transaction{
		*testTransaction(1, models.TransactionTypeDebit, 100),
	}, nil)
	h := NewTransactionHandler(ledgers, new(MockStatementWriter), testLogger())
	router := newRouter(testUserID, transactionRoutes(h))

	rec := serve(router, http.MethodGet, "/ledgers/1/transactions?type=2&search=INV&limit=10", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	var resp []TransactionResponse
	decodeBody(t, rec, &resp)
	assert.Len(t, resp, 1)
	ledgers.AssertExpectations(t)

	t.Run("invalid type", func(t *testing.T) {
		rec := serve(router, http.MethodGet, "/ledgers/1/transactions?type=credit", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestTransactionHandler_GetTransaction(t *testing.T) {
	ledgers := new(MockLedgerOperations)
	ledgers.On("GetLedger", mock.Anything, int64(1), true).Return(testLedger(1, 0), nil)
	ledgers.On("GetTransaction", mock.Anything, int64(1), "202610140000001", true).
		Return(testTransaction(1, models.TransactionTypeCredit, 100), nil)
	ledgers.On("GetTransaction", mock.Anything, int64(1), "202610140000009", true).
		Return(nil, models.ErrTransactionNotFound)
	h := NewTransactionHandler(ledgers, new(MockStatementWriter), testLogger())
	router := newRouter(testUserID, transactionRoutes(h))

	tests := []struct {
		name   string
		path   string
		status int
	}{
		{"found", "/ledgers/1/transactions/202610140000001", http.StatusOK},
		{"missing", "/ledgers/1/transactions/202610140000009", http.StatusNotFound},
		{"malformed id", "/ledgers/1/transactions/123", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(router, http.MethodGet, tt.path, "")
			assert.Equal(t, tt.status, rec.Code)
		})
	}

	ledgers.AssertNotCalled(t, "GetTransaction", mock.Anything, int64(1), "123", true)
}

func TestTransactionHandler_ExportTransactions(t *testing.T) {
	ledger := testLedger(1, 0)
	txs := []models.Transaction{*testTransaction(1, models.TransactionTypeCredit, 100)}

	ledgers := new(MockLedgerOperations)
	ledgers.On("GetLedger", mock.Anything, int64(1), true).Return(ledger, nil)
	ledgers.On("ListTransactions", mock.Anything, int64(1), models.TransactionFilter{Type: models.TransactionTypeCredit}).
		Return(txs, nil)

	statements := new(MockStatementWriter)
	statements.On("Filename", ledger).Return("ledger_1_statement.xlsx")
	statements.On("Write", mock.Anything, ledger, txs).Return(nil).Run(func(args mock.Arguments) {
		io.WriteString(args.Get(0).(io.Writer), "xlsx-bytes")
	})
	h := NewTransactionHandler(ledgers, statements, testLogger())

	rec := serve(newRouter(testUserID, transactionRoutes(h)), http.MethodGet,
		"/ledgers/1/transactions/export?type=1&limit=5", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="ledger_1_statement.xlsx"`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, "xlsx-bytes", rec.Body.String())
	statements.AssertExpectations(t)
	ledgers.AssertExpectations(t)

	t.Run("list failure", func(t *testing.T) {
		ledgers := new(MockLedgerOperations)
		ledgers.On("GetLedger", mock.Anything, int64(1), true).Return(ledger, nil)
		ledgers.On("ListTransactions", mock.Anything, int64(1), models.TransactionFilter{}).
			Return(nil, errors.New("connection reset"))
		statements := new(MockStatementWriter)
		h := NewTransactionHandler(ledgers, statements, testLogger())

		rec := serve(newRouter(testUserID, transactionRoutes(h)), http.MethodGet, "/ledgers/1/transactions/export", "")

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		statements.AssertNotCalled(t, "Write", mock.Anything, mock.Anything, mock.Anything)
	})
}
