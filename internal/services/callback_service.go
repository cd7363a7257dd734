package services

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/ruralpay/ledger/internal/models"
)

// CallbackVerifier authenticates gateway webhooks
type CallbackVerifier interface {
	VerifyCallback(r *http.Request) error
}

// CallbackService turns gateway notifications into ledger updates and credits.
type CallbackService struct {
	verifier CallbackVerifier
	ledgers  *LedgerService
	logger   *zap.Logger
}

func NewCallbackService(verifier CallbackVerifier, ledgers *LedgerService, logger *zap.Logger) *CallbackService {
	return &CallbackService{
		verifier: verifier,
		ledgers:  ledgers,
		logger:   logger.Named("callback"),
	}
}

// Verify must succeed before a callback body is read.
func (s *CallbackService) Verify(r *http.Request) error {
	if err := s.verifier.VerifyCallback(r); err != nil {
		s.logger.Warn("rejected callback",
			zap.String("path", r.URL.Path),
			zap.String("remote_addr", r.RemoteAddr),
		)
		return err
	}
	return nil
}

func (s *CallbackService) VirtualAccountCreated(ctx context.Context, payload models.VirtualAccountCallback) (*models.Ledger, error) {
	ledger, err := s.ledgers.UpdateFromCallback(ctx, payload.ID, VirtualAccountUpdate{
		BankCode:      payload.BankCode,
		AccountNumber: payload.AccountNumber,
		Status:        payload.Status,
	})
	if err != nil {
		s.logger.Error("virtual account callback failed", zap.String("reference", payload.ID), zap.Error(err))
		return nil, err
	}

	s.logger.Info("virtual account updated",
		zap.Int64("ledger_id", ledger.ID),
		zap.String("status", ledger.Status.DisplayName()),
	)
	return ledger, nil
}

// PaymentReceived credits the ledger behind payload.CallbackVirtualAccountID. Redelivery of
// an already recorded payment returns the recorded transaction with duplicate set.
func (s *CallbackService) PaymentReceived(ctx context.Context, payload models.PaymentCallback) (*models.Transaction, bool, error) {
	ledger, err := s.ledgers.GetLedgerByReference(ctx, payload.CallbackVirtualAccountID, true)
	if err != nil {
		s.logger.Error("payment for unknown virtual account",
			zap.String("reference", payload.CallbackVirtualAccountID),
			zap.String("payment_id", payload.PaymentID),
			zap.Error(err),
		)
		return nil, false, err
	}

	t, duplicate, err := s.ledgers.ReceivePayment(ctx, ledger.ID, payload.TransactionInput())
	if err != nil {
		s.logger.Error("payment callback failed",
			zap.Int64("ledger_id", ledger.ID),
			zap.String("payment_id", payload.PaymentID),
			zap.Error(err),
		)
		return nil, false, err
	}
	return t, duplicate, nil
}
