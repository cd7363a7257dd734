package handlers

import (
	"context"
	"io"
	"net/http"

	"github.com/stretchr/testify/mock"

	"github.com/ruralpay/ledger/internal/models"
	"github.com/ruralpay/ledger/internal/services"
)

type MockLedgerOperations struct {
	mock.Mock
}

func (m *MockLedgerOperations) Create(ctx context.Context, userID int64, name, bankCode string) (*models.Ledger, error) {
	args := m.Called(ctx, userID, name, bankCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Ledger), args.Error(1)
}

func (m *MockLedgerOperations) CreateDebitTransaction(ctx context.Context, ledgerID int64, input models.TransactionInput) (*models.Transaction, error) {
	args := m.Called(ctx, ledgerID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Transaction), args.Error(1)
}

func (m *MockLedgerOperations) CreateCreditTransaction(ctx context.Context, ledgerID int64, input models.TransactionInput) (*models.Transaction, error) {
	args := m.Called(ctx, ledgerID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Transaction), args.Error(1)
}

func (m *MockLedgerOperations) SendTo(ctx context.Context, fromID, toID int64, amount int64) (*models.Transaction, *models.Transaction, error) {
	args := m.Called(ctx, fromID, toID, amount)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*models.Transaction), args.Get(1).(*models.Transaction), args.Error(2)
}

func (m *MockLedgerOperations) ListLedgers(ctx context.Context, filter models.LedgerFilter) ([]models.Ledger, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Ledger), args.Error(1)
}

func (m *MockLedgerOperations) GetLedger(ctx context.Context, id int64, mustExist bool) (*models.Ledger, error) {
	args := m.Called(ctx, id, mustExist)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Ledger), args.Error(1)
}

func (m *MockLedgerOperations) ListTransactions(ctx context.Context, ledgerID int64, filter models.TransactionFilter) ([]models.Transaction, error) {
	args := m.Called(ctx, ledgerID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Transaction), args.Error(1)
}

func (m *MockLedgerOperations) GetTransaction(ctx context.Context, ledgerID int64, id string, mustExist bool) (*models.Transaction, error) {
	args := m.Called(ctx, ledgerID, id, mustExist)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Transaction), args.Error(1)
}

func (m *MockLedgerOperations) StatusHistory(ctx context.Context, ledgerID int64) ([]models.LedgerStatusHistory, error) {
	args := m.Called(ctx, ledgerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.LedgerStatusHistory), args.Error(1)
}

type MockBankValidator struct {
	mock.Mock
}

func (m *MockBankValidator) IsValidBankCode(ctx context.Context, code string) bool {
	return m.Called(ctx, code).Bool(0)
}

type MockCallbackProcessor struct {
	mock.Mock
}

func (m *MockCallbackProcessor) Verify(r *http.Request) error {
	return m.Called(r).Error(0)
}

func (m *MockCallbackProcessor) VirtualAccountCreated(ctx context.Context, payload models.VirtualAccountCallback) (*models.Ledger, error) {
	args := m.Called(ctx, payload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Ledger), args.Error(1)
}

func (m *MockCallbackProcessor) PaymentReceived(ctx context.Context, payload models.PaymentCallback) (*models.Transaction, bool, error) {
	args := m.Called(ctx, payload)
	if args.Get(0) == nil {
		return nil, false, args.Error(2)
	}
	return args.Get(0).(*models.Transaction), args.Bool(1), args.Error(2)
}

type MockQRGenerator struct {
	mock.Mock
}

func (m *MockQRGenerator) GenerateDepositQR(ledger *models.Ledger, amount int64) (*services.DepositQR, error) {
	args := m.Called(ledger, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.DepositQR), args.Error(1)
}

type MockStatementWriter struct {
	mock.Mock
}

func (m *MockStatementWriter) Filename(ledger *models.Ledger) string {
	return m.Called(ledger).String(0)
}

func (m *MockStatementWriter) Write(w io.Writer, ledger *models.Ledger, transactions []models.Transaction) error {
	return m.Called(w, ledger, transactions).Error(0)
}
