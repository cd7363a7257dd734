package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ruralpay/ledger/internal/audit"
	"github.com/ruralpay/ledger/internal/gateway"
	"github.com/ruralpay/ledger/internal/models"
	"github.com/ruralpay/ledger/internal/repository"
)

const (
	initialLedgerNotes = "Initial Ledger"
	callbackNotes      = "Callback from instamoney"
	sendMoneyNotes     = "Send money"
	receiveMoneyNotes  = "Receive money"
)

// VirtualAccountProvisioner issues the bank virtual account behind a ledger
type VirtualAccountProvisioner interface {
	CreateVirtualAccount(ctx context.Context, name, bankCode, externalID string) (*gateway.VirtualAccount, error)
}

// VirtualAccountUpdate is the gateway's view of a ledger's virtual account
type VirtualAccountUpdate struct {
	BankCode      string
	AccountNumber string
	Status        string
}

// LedgerService owns ledger balances and status. Every balance change happens inside one
// database transaction holding the ledger row lock.
type LedgerService struct {
	db           *sql.DB
	ledgers      *repository.LedgerRepository
	transactions *repository.TransactionRepository
	histories    *repository.StatusHistoryRepository
	provisioner  VirtualAccountProvisioner
	audit        *audit.Logger
	logger       *zap.Logger
	now          func() time.Time
}

func NewLedgerService(db *sql.DB, provisioner VirtualAccountProvisioner, auditLogger *audit.Logger, logger *zap.Logger) *LedgerService {
	return &LedgerService{
		db:           db,
		ledgers:      repository.NewLedgerRepository(),
		transactions: repository.NewTransactionRepository(),
		histories:    repository.NewStatusHistoryRepository(),
		provisioner:  provisioner,
		audit:        auditLogger,
		logger:       logger.Named("ledger"),
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// Create provisions a virtual account and stores a new Pending ledger with zero balance.
// Nothing is stored when provisioning fails.
func (s *LedgerService) Create(ctx context.Context, userID int64, name, bankCode string) (*models.Ledger, error) {
	externalID := uuid.NewString()

	va, err := s.provisioner.CreateVirtualAccount(ctx, name, bankCode, externalID)
	if err != nil {
		if !errors.Is(err, models.ErrGatewayUnavailable) {
			err = fmt.Errorf("%w: %v", models.ErrGatewayUnavailable, err)
		}
		return nil, err
	}

	now := s.now()
	ledger := &models.Ledger{
		UserID:         userID,
		Name:           name,
		VirtualAccount: va.AccountNumber,
		Balance:        0,
		Reference:      va.ID,
		BankCode:       bankCode,
		ExternalID:     externalID,
		Status:         models.LedgerStatusPending,
		CreatedAt:      now,
	}

	err = repository.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		if err := s.ledgers.Create(ctx, tx, ledger); err != nil {
			return err
		}
		return s.histories.Create(ctx, tx, &models.LedgerStatusHistory{
			LedgerID:  ledger.ID,
			Status:    models.LedgerStatusPending,
			Notes:     initialLedgerNotes,
			CreatedAt: now,
		})
	})
	if err != nil {
		s.logger.Error("failed to store ledger",
			zap.String("reference", va.ID),
			zap.String("external_id", externalID),
			zap.Error(err),
		)
		return nil, err
	}

	s.logger.Info("ledger created",
		zap.Int64("ledger_id", ledger.ID),
		zap.Int64("user_id", userID),
		zap.String("bank_code", bankCode),
	)
	return ledger, nil
}

// CreateDebitTransaction removes input.Amount from the ledger. It fails with
// ErrInsufficientBalance and writes nothing when the balance does not cover the amount.
func (s *LedgerService) CreateDebitTransaction(ctx context.Context, ledgerID int64, input models.TransactionInput) (*models.Transaction, error) {
	return s.createTransaction(ctx, ledgerID, models.TransactionTypeDebit, input)
}

func (s *LedgerService) CreateCreditTransaction(ctx context.Context, ledgerID int64, input models.TransactionInput) (*models.Transaction, error) {
	return s.createTransaction(ctx, ledgerID, models.TransactionTypeCredit, input)
}

func (s *LedgerService) createTransaction(ctx context.Context, ledgerID int64, txType models.TransactionType, input models.TransactionInput) (*models.Transaction, error) {
	if input.Amount <= 0 {
		return nil, models.ErrInvalidAmount
	}

	var created *models.Transaction
	err := repository.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		ledger, err := s.ledgers.LockByID(ctx, tx, ledgerID)
		if err != nil {
			return err
		}
		created, err = s.applyTransaction(ctx, tx, ledger, txType, input)
		return err
	})
	if err != nil {
		s.audit.LogError(auditType(txType), ledgerID, err)
		return nil, err
	}

	s.audit.LogTransaction(created.ID, ledgerID, auditType(txType), created.Amount, created.BalanceAfter)
	return created, nil
}

// ReceivePayment credits an inbound gateway payment. A payment whose reference is already
// recorded on this ledger is returned as is with duplicate set.
func (s *LedgerService) ReceivePayment(ctx context.Context, ledgerID int64, input models.TransactionInput) (*models.Transaction, bool, error) {
	if input.Amount <= 0 {
		return nil, false, models.ErrInvalidAmount
	}

	var (
		result    *models.Transaction
		duplicate bool
	)
	err := repository.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		ledger, err := s.ledgers.LockByID(ctx, tx, ledgerID)
		if err != nil {
			return err
		}

		existing, err := s.existingPayment(ctx, tx, ledgerID, input.Reference)
		if err != nil {
			return err
		}
		if existing != nil {
			result, duplicate = existing, true
			return nil
		}

		result, err = s.applyTransaction(ctx, tx, ledger, models.TransactionTypeCredit, input)
		return err
	})

	if errors.Is(err, models.ErrDuplicateReference) {
		existing, lookupErr := s.existingPayment(ctx, s.db, ledgerID, input.Reference)
		if lookupErr == nil && existing != nil {
			result, duplicate, err = existing, true, nil
		}
	}
	if err != nil {
		s.audit.LogError("PAYMENT", ledgerID, err)
		return nil, false, err
	}

	if duplicate {
		s.logger.Warn("duplicate payment ignored",
			zap.Int64("ledger_id", ledgerID),
			zap.String("reference", input.Reference),
			zap.String("transaction_id", result.ID),
		)
		return result, true, nil
	}

	s.audit.LogTransaction(result.ID, ledgerID, "PAYMENT", result.Amount, result.BalanceAfter)
	return result, false, nil
}

// existingPayment returns the transaction already holding reference on ledgerID, nil when the
// reference is unused, or ErrDuplicateReference when another ledger holds it.
func (s *LedgerService) existingPayment(ctx context.Context, q repository.DBTX, ledgerID int64, reference string) (*models.Transaction, error) {
	if reference == "" {
		return nil, nil
	}

	existing, err := s.transactions.FindByReference(ctx, q, reference)
	if errors.Is(err, models.ErrTransactionNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if existing.LedgerID != ledgerID {
		return nil, fmt.Errorf("%w: %s", models.ErrDuplicateReference, reference)
	}
	return existing, nil
}

// applyTransaction records a transaction against a ledger already locked by tx and moves the
// ledger balance to the transaction's balance_after.
func (s *LedgerService) applyTransaction(ctx context.Context, tx *sql.Tx, ledger *models.Ledger, txType models.TransactionType, input models.TransactionInput) (*models.Transaction, error) {
	if txType == models.TransactionTypeDebit && !ledger.IsBalanceSufficient(input.Amount) {
		return nil, fmt.Errorf("%w: ledger %d has %d, needs %d",
			models.ErrInsufficientBalance, ledger.ID, ledger.Balance, input.Amount)
	}
	if txType == models.TransactionTypeCredit && input.Amount > math.MaxInt64-ledger.Balance {
		return nil, fmt.Errorf("%w: credit of %d overflows ledger %d balance", models.ErrInvalidAmount, input.Amount, ledger.ID)
	}

	now := s.now()
	t := models.NewTransaction(ledger, txType, input.Counterparty, input.Notes, now)

	lastID, err := s.transactions.LastIDInMonth(ctx, tx, ledger.ID, now)
	if err != nil {
		return nil, err
	}
	if err := t.SetID(now, lastID); err != nil {
		return nil, err
	}
	if err := t.SetReference(input.Reference); err != nil {
		return nil, err
	}
	if err := t.SetAmount(ledger, input.Amount); err != nil {
		return nil, err
	}

	if err := s.transactions.Create(ctx, tx, t); err != nil {
		return nil, err
	}

	ledger.Balance = t.BalanceAfter
	if err := s.ledgers.Update(ctx, tx, ledger); err != nil {
		return nil, err
	}
	return t, nil
}

// SendTo moves amount from one ledger to another in a single database transaction.
// Rows are locked in ascending id order.
func (s *LedgerService) SendTo(ctx context.Context, fromID, toID int64, amount int64) (*models.Transaction, *models.Transaction, error) {
	if fromID == toID {
		return nil, nil, models.ErrSameLedger
	}
	if amount <= 0 {
		return nil, nil, models.ErrInvalidAmount
	}

	var debit, credit *models.Transaction
	err := repository.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		firstID, secondID := fromID, toID
		if firstID > secondID {
			firstID, secondID = secondID, firstID
		}

		first, err := s.ledgers.LockByID(ctx, tx, firstID)
		if err != nil {
			return err
		}
		second, err := s.ledgers.LockByID(ctx, tx, secondID)
		if err != nil {
			return err
		}

		sender, receiver := first, second
		if firstID != fromID {
			sender, receiver = second, first
		}

		debit, err = s.applyTransaction(ctx, tx, sender, models.TransactionTypeDebit, models.TransactionInput{
			Amount:       amount,
			Counterparty: receiver.Counterparty(),
			Notes:        sendMoneyNotes,
		})
		if err != nil {
			return err
		}

		credit, err = s.applyTransaction(ctx, tx, receiver, models.TransactionTypeCredit, models.TransactionInput{
			Amount:       amount,
			Counterparty: sender.Counterparty(),
			Notes:        receiveMoneyNotes,
		})
		return err
	})
	if err != nil {
		s.audit.LogError("TRANSFER", fromID, err)
		return nil, nil, err
	}

	s.audit.LogTransfer(debit.ID, credit.ID, fromID, toID, amount)
	return debit, credit, nil
}

// SetStatus writes status and appends a history entry, even when status is unchanged.
func (s *LedgerService) SetStatus(ctx context.Context, ledgerID int64, status models.LedgerStatus, notes string) (*models.Ledger, error) {
	if !status.IsValid() {
		return nil, fmt.Errorf("%w: %q", models.ErrInvalidStatus, status)
	}

	var ledger *models.Ledger
	err := repository.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		var err error
		ledger, err = s.ledgers.LockByID(ctx, tx, ledgerID)
		if err != nil {
			return err
		}
		return s.setStatus(ctx, tx, ledger, status, notes)
	})
	if err != nil {
		return nil, err
	}
	return ledger, nil
}

func (s *LedgerService) setStatus(ctx context.Context, tx *sql.Tx, ledger *models.Ledger, status models.LedgerStatus, notes string) error {
	previous := ledger.Status
	ledger.Status = status

	if err := s.ledgers.Update(ctx, tx, ledger); err != nil {
		return err
	}
	if err := s.histories.Create(ctx, tx, &models.LedgerStatusHistory{
		LedgerID:  ledger.ID,
		Status:    status,
		Notes:     notes,
		CreatedAt: s.now(),
	}); err != nil {
		return err
	}

	s.audit.LogStatusChange(ledger.ID, previous.DisplayName(), status.DisplayName(), notes)
	return nil
}

// UpdateFromCallback applies the gateway's virtual account details to the ledger holding
// reference. Unknown status codes are ignored; the ledger is saved either way.
func (s *LedgerService) UpdateFromCallback(ctx context.Context, reference string, update VirtualAccountUpdate) (*models.Ledger, error) {
	var ledger *models.Ledger
	err := repository.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		var err error
		ledger, err = s.ledgers.LockByReference(ctx, tx, reference)
		if err != nil {
			return err
		}

		if update.BankCode != "" {
			ledger.BankCode = update.BankCode
		}
		if update.AccountNumber != "" {
			ledger.VirtualAccount = update.AccountNumber
		}

		status, ok := models.ParseGatewayStatus(update.Status)
		if !ok && update.Status != "" {
			s.logger.Warn("unknown gateway status ignored",
				zap.String("reference", reference),
				zap.String("status", update.Status),
			)
		}
		if ok && status != ledger.Status {
			return s.setStatus(ctx, tx, ledger, status, callbackNotes)
		}
		return s.ledgers.Update(ctx, tx, ledger)
	})
	if err != nil {
		return nil, err
	}
	return ledger, nil
}

func (s *LedgerService) ListLedgers(ctx context.Context, filter models.LedgerFilter) ([]models.Ledger, error) {
	return s.ledgers.List(ctx, s.db, filter)
}

// GetLedger returns nil without error for a missing ledger unless mustExist is set.
func (s *LedgerService) GetLedger(ctx context.Context, id int64, mustExist bool) (*models.Ledger, error) {
	ledger, err := s.ledgers.FindByID(ctx, s.db, id)
	return optional(ledger, err, mustExist)
}

func (s *LedgerService) GetLedgerByReference(ctx context.Context, reference string, mustExist bool) (*models.Ledger, error) {
	ledger, err := s.ledgers.FindByReference(ctx, s.db, reference)
	return optional(ledger, err, mustExist)
}

func (s *LedgerService) ListTransactions(ctx context.Context, ledgerID int64, filter models.TransactionFilter) ([]models.Transaction, error) {
	return s.transactions.List(ctx, s.db, ledgerID, filter)
}

func (s *LedgerService) GetTransaction(ctx context.Context, ledgerID int64, id string, mustExist bool) (*models.Transaction, error) {
	t, err := s.transactions.FindByID(ctx, s.db, ledgerID, id)
	return optional(t, err, mustExist)
}

func (s *LedgerService) StatusHistory(ctx context.Context, ledgerID int64) ([]models.LedgerStatusHistory, error) {
	return s.histories.ListByLedger(ctx, s.db, ledgerID)
}

func optional[T any](v *T, err error, mustExist bool) (*T, error) {
	if err != nil && !mustExist && models.IsNotFound(err) {
		return nil, nil
	}
	return v, err
}

func auditType(txType models.TransactionType) string {
	if txType == models.TransactionTypeDebit {
		return "DEBIT"
	}
	return "CREDIT"
}
