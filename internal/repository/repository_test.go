package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ruralpay/ledger/internal/models"
)

var ledgerRowColumns = []string{"id", "user_id", "name", "virtual_account", "balance", "reference",
	"bank_code", "external_id", "status", "created_at", "updated_at"}

func TestLedgerRepository_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewLedgerRepository()
	ctx := context.Background()
	now := time.Now()

	t.Run("bank code and search", func(t *testing.T) {
		mock.ExpectQuery(`SELECT .* FROM ledgers WHERE bank_code = \$1 AND \(name ILIKE \$2 OR virtual_account ILIKE \$2 OR reference ILIKE \$2\) ORDER BY id DESC`).
			WithArgs("BNI", "%wallet%").
			WillReturnRows(sqlmock.NewRows(ledgerRowColumns).
				AddRow(2, 1, "Wallet B", "222", 0, "ref-2", "BNI", "ext-2", "3", now, nil).
				AddRow(1, 1, "Wallet A", "111", 100, "ref-1", "BNI", "ext-1", "1", now, now))

		ledgers, err := repo.List(ctx, db, models.LedgerFilter{BankCode: "BNI", Search: "wallet"})
		require.NoError(t, err)
		require.Len(t, ledgers, 2)
		assert.Equal(t, int64(2), ledgers[0].ID)
		assert.Equal(t, models.LedgerStatusPending, ledgers[0].Status)
		assert.True(t, ledgers[0].UpdatedAt.IsZero())
		assert.Equal(t, int64(100), ledgers[1].Balance)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no filters with page", func(t *testing.T) {
		mock.ExpectQuery(`SELECT .* FROM ledgers ORDER BY id DESC LIMIT \$1 OFFSET \$2`).
			WithArgs(10, 20).
			WillReturnRows(sqlmock.NewRows(ledgerRowColumns))

		ledgers, err := repo.List(ctx, db, models.LedgerFilter{Limit: 10, Offset: 20})
		require.NoError(t, err)
		assert.Empty(t, ledgers)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("owner scope", func(t *testing.T) {
		mock.ExpectQuery(`SELECT .* FROM ledgers WHERE user_id = \$1 AND bank_code = \$2 ORDER BY id DESC`).
			WithArgs(int64(5), "BNI").
			WillReturnRows(sqlmock.NewRows(ledgerRowColumns))

		_, err := repo.List(ctx, db, models.LedgerFilter{UserID: 5, BankCode: "BNI"})
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("search escapes wildcards", func(t *testing.T) {
		mock.ExpectQuery(`SELECT .* FROM ledgers WHERE`).
			WithArgs(`%50\%\_off%`).
			WillReturnRows(sqlmock.NewRows(ledgerRowColumns))

		_, err := repo.List(ctx, db, models.LedgerFilter{Search: "50%_off"})
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestLedgerRepository_FindByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewLedgerRepository()

	mock.ExpectQuery(`SELECT .* FROM ledgers WHERE id = \$1`).
		WithArgs(int64(99)).
		WillReturnError(sql.ErrNoRows)

	ledger, err := repo.FindByID(context.Background(), db, 99)
	assert.Nil(t, ledger)
	assert.ErrorIs(t, err, models.ErrLedgerNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLedgerRepository_Update(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewLedgerRepository()
	ledger := &models.Ledger{ID: 7, Name: "Wallet", VirtualAccount: "123", Balance: 500,
		Reference: "ref", BankCode: "BNI", Status: models.LedgerStatusActive}

	t.Run("updates row", func(t *testing.T) {
		mock.ExpectExec(`UPDATE ledgers SET name = \$1, virtual_account = \$2, balance = \$3`).
			WithArgs("Wallet", "123", 500, "ref", "BNI", "1", sqlmock.AnyArg(), 7).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Update(context.Background(), db, ledger))
		assert.False(t, ledger.UpdatedAt.IsZero())
	})

	t.Run("missing row", func(t *testing.T) {
		mock.ExpectExec(`UPDATE ledgers`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.Update(context.Background(), db, ledger), models.ErrLedgerNotFound)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionRepository_LastIDInMonth(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewTransactionRepository()
	at := time.Date(2026, time.October, 14, 12, 0, 0, 0, time.UTC)
	start := time.Date(2026, time.October, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, time.November, 1, 0, 0, 0, 0, time.UTC)

	t.Run("existing transaction", func(t *testing.T) {
		mock.ExpectQuery(`SELECT id FROM ledger_transactions WHERE ledger_id = \$1 AND created_at >= \$2 AND created_at < \$3 ORDER BY id DESC LIMIT 1`).
			WithArgs(int64(1), start, end).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("202610130000004"))

		id, err := repo.LastIDInMonth(context.Background(), db, 1, at)
		require.NoError(t, err)
		assert.Equal(t, "202610130000004", id)
	})

	t.Run("none this month", func(t *testing.T) {
		mock.ExpectQuery(`SELECT id FROM ledger_transactions`).
			WithArgs(int64(1), start, end).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		id, err := repo.LastIDInMonth(context.Background(), db, 1, at)
		require.NoError(t, err)
		assert.Equal(t, "", id)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewTransactionRepository()
	tx := &models.Transaction{
		ID: "202610140000001", LedgerID: 1, Type: models.TransactionTypeCredit, Reference: "P1",
		BalanceBefore: 0, Amount: 50000, BalanceAfter: 50000, CreatedAt: time.Now(),
	}

	t.Run("inserts with null counterparty", func(t *testing.T) {
		mock.ExpectExec(`INSERT INTO ledger_transactions`).
			WithArgs("202610140000001", int64(1), "1", "P1", 0, 50000, 50000, nil, nil, nil, nil, sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Create(context.Background(), db, tx))
	})

	t.Run("duplicate reference", func(t *testing.T) {
		mock.ExpectExec(`INSERT INTO ledger_transactions`).
			WillReturnError(&pq.Error{Code: "23505", Constraint: referenceConstraint})

		err := repo.Create(context.Background(), db, tx)
		assert.ErrorIs(t, err, models.ErrDuplicateReference)
	})

	t.Run("duplicate id is not a duplicate reference", func(t *testing.T) {
		mock.ExpectExec(`INSERT INTO ledger_transactions`).
			WillReturnError(&pq.Error{Code: "23505", Constraint: "ledger_transactions_pkey"})

		err := repo.Create(context.Background(), db, tx)
		assert.Error(t, err)
		assert.False(t, errors.Is(err, models.ErrDuplicateReference))
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStatusHistoryRepository(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewStatusHistoryRepository()
	now := time.Now()

	mock.ExpectQuery(`INSERT INTO ledger_status_histories`).
		WithArgs(int64(3), "3", "Initial Ledger", now).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(11))

	h := &models.LedgerStatusHistory{LedgerID: 3, Status: models.LedgerStatusPending, Notes: "Initial Ledger", CreatedAt: now}
	require.NoError(t, repo.Create(context.Background(), db, h))
	assert.Equal(t, int64(11), h.ID)

	mock.ExpectQuery(`SELECT id, ledger_id, status, COALESCE\(notes, ''\), created_at FROM ledger_status_histories`).
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "ledger_id", "status", "notes", "created_at"}).
			AddRow(11, 3, "3", "Initial Ledger", now).
			AddRow(12, 3, "1", "Callback from instamoney", now))

	histories, err := repo.ListByLedger(context.Background(), db, 3)
	require.NoError(t, err)
	require.Len(t, histories, 2)
	assert.Equal(t, models.LedgerStatusActive, histories[1].Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithTx(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	t.Run("commit", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectCommit()
		assert.NoError(t, WithTx(context.Background(), db, func(tx *sql.Tx) error { return nil }))
	})

	t.Run("rollback on error", func(t *testing.T) {
		boom := errors.New("boom")
		mock.ExpectBegin()
		mock.ExpectRollback()
		assert.ErrorIs(t, WithTx(context.Background(), db, func(tx *sql.Tx) error { return boom }), boom)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}
