package audit

import (
	"strconv"
	"time"

	"go.uber.org/zap"
)

type Event struct {
	Timestamp     time.Time
	EventType     string
	TransactionID string
	LedgerID      int64
	Amount        int64
	Status        string
	Details       map[string]string
}

// Logger writes ledger money movements and status changes to a dedicated "audit" logger.
type Logger struct {
	logger *zap.Logger
}

func NewLogger(logger *zap.Logger) *Logger {
	return &Logger{logger: logger.Named("audit")}
}

func (a *Logger) LogTransaction(transactionID string, ledgerID int64, txType string, amount, balanceAfter int64) {
	a.log(Event{
		Timestamp:     time.Now().UTC(),
		EventType:     txType,
		TransactionID: transactionID,
		LedgerID:      ledgerID,
		Amount:        amount,
		Status:        "SUCCESS",
		Details:       map[string]string{"balance_after": strconv.FormatInt(balanceAfter, 10)},
	})
}

func (a *Logger) LogTransfer(debitID, creditID string, fromLedger, toLedger, amount int64) {
	a.log(Event{
		Timestamp:     time.Now().UTC(),
		EventType:     "TRANSFER",
		TransactionID: debitID,
		LedgerID:      fromLedger,
		Amount:        amount,
		Status:        "SUCCESS",
		Details: map[string]string{
			"credit_transaction_id": creditID,
			"to_ledger":             strconv.FormatInt(toLedger, 10),
		},
	})
}

func (a *Logger) LogStatusChange(ledgerID int64, from, to, notes string) {
	a.log(Event{
		Timestamp: time.Now().UTC(),
		EventType: "STATUS_CHANGE",
		LedgerID:  ledgerID,
		Status:    "SUCCESS",
		Details:   map[string]string{"from": from, "to": to, "notes": notes},
	})
}

func (a *Logger) LogError(operation string, ledgerID int64, err error) {
	a.log(Event{
		Timestamp: time.Now().UTC(),
		EventType: operation,
		LedgerID:  ledgerID,
		Status:    "FAILED",
		Details:   map[string]string{"error": err.Error()},
	})
}

func (a *Logger) log(event Event) {
	fields := []zap.Field{
		zap.Time("event_time", event.Timestamp),
		zap.String("event_type", event.EventType),
		zap.Int64("ledger_id", event.LedgerID),
		zap.String("status", event.Status),
	}
	if event.TransactionID != "" {
		fields = append(fields, zap.String("transaction_id", event.TransactionID))
	}
	if event.Amount != 0 {
		fields = append(fields, zap.Int64("amount", event.Amount))
	}
	if len(event.Details) > 0 {
		fields = append(fields, zap.Any("details", event.Details))
	}

	if event.Status == "FAILED" {
		a.logger.Warn("AUDIT", fields...)
		return
	}
	a.logger.Info("AUDIT", fields...)
}
