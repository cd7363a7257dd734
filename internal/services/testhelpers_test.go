package services

import (
	"database/sql/driver"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ruralpay/ledger/internal/audit"
)

var testNow = time.Date(2026, time.October, 14, 10, 0, 0, 0, time.UTC)

var (
	monthStart = time.Date(2026, time.October, 1, 0, 0, 0, 0, time.UTC)
	monthEnd   = time.Date(2026, time.November, 1, 0, 0, 0, 0, time.UTC)
)

var ledgerColumns = []string{"id", "user_id", "name", "virtual_account", "balance", "reference",
	"bank_code", "external_id", "status", "created_at", "updated_at"}

var transactionColumns = []string{"id", "ledger_id", "type", "reference", "balance_before", "amount",
	"balance_after", "bank_account_name", "account_name", "account_number", "notes", "created_at"}

type testLedger struct {
	id        int64
	name      string
	account   string
	reference string
	balance   int64
	status    string
}

var (
	ledgerA = testLedger{id: 1, name: "Wallet A", account: "111", reference: "va-a", status: "1"}
	ledgerB = testLedger{id: 2, name: "Wallet B", account: "222", reference: "va-b", status: "1"}
)

func (l testLedger) withBalance(balance int64) testLedger {
	l.balance = balance
	return l
}

func (l testLedger) rows() *sqlmock.Rows {
	return sqlmock.NewRows(ledgerColumns).
		AddRow(l.id, 1, l.name, l.account, l.balance, l.reference, "BNI", "ext", l.status, testNow, nil)
}

func newTestLedgerService(t *testing.T) (*LedgerService, sqlmock.Sqlmock, *MockProvisioner) {
	db, sqlMock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	provisioner := new(MockProvisioner)
	service := NewLedgerService(db, provisioner, audit.NewLogger(zap.NewNop()), zap.NewNop())
	service.now = func() time.Time { return testNow }
	return service, sqlMock, provisioner
}

func expectLock(sqlMock sqlmock.Sqlmock, l testLedger) {
	sqlMock.ExpectQuery(`SELECT .* FROM ledgers WHERE id = \$1 FOR UPDATE`).
		WithArgs(l.id).
		WillReturnRows(l.rows())
}

func expectLastID(sqlMock sqlmock.Sqlmock, ledgerID int64, lastID string) {
	rows := sqlmock.NewRows([]string{"id"})
	if lastID != "" {
		rows.AddRow(lastID)
	}
	sqlMock.ExpectQuery(`SELECT id FROM ledger_transactions WHERE ledger_id = \$1 AND created_at >= \$2 AND created_at < \$3`).
		WithArgs(ledgerID, monthStart, monthEnd).
		WillReturnRows(rows)
}

type expectedTx struct {
	id                                  string
	ledgerID                            int64
	txType                              string
	reference                           driver.Value
	before, amount, after               int64
	bankAccountName, accountName, accNo driver.Value
	notes                               driver.Value
}

func expectInsertTx(sqlMock sqlmock.Sqlmock, e expectedTx) {
	reference := e.reference
	if reference == nil {
		reference = sqlmock.AnyArg()
	}
	sqlMock.ExpectExec(`INSERT INTO ledger_transactions`).
		WithArgs(e.id, e.ledgerID, e.txType, reference, e.before, e.amount, e.after,
			e.bankAccountName, e.accountName, e.accNo, e.notes, testNow).
		WillReturnResult(sqlmock.NewResult(0, 1))
}

func expectUpdate(sqlMock sqlmock.Sqlmock, l testLedger, balance int64, status string) {
	sqlMock.ExpectExec(`UPDATE ledgers SET name = \$1`).
		WithArgs(l.name, l.account, balance, l.reference, "BNI", status, sqlmock.AnyArg(), l.id).
		WillReturnResult(sqlmock.NewResult(0, 1))
}
