package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ruralpay/ledger/internal/models"
)

const transactionColumns = `id, ledger_id, type, reference, balance_before, amount, balance_after,
	COALESCE(bank_account_name, ''), COALESCE(account_name, ''), COALESCE(account_number, ''),
	COALESCE(notes, ''), created_at`

const referenceConstraint = "ledger_transactions_reference_key"

// TransactionRepository stores immutable ledger transactions. There is no update or
// delete path.
type TransactionRepository struct{}

func NewTransactionRepository() *TransactionRepository {
	return &TransactionRepository{}
}

func scanTransaction(row rowScanner) (*models.Transaction, error) {
	var t models.Transaction
	err := row.Scan(&t.ID, &t.LedgerID, &t.Type, &t.Reference, &t.BalanceBefore, &t.Amount,
		&t.BalanceAfter, &t.BankAccountName, &t.AccountName, &t.AccountNumber, &t.Notes, &t.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TransactionRepository) Create(ctx context.Context, q DBTX, t *models.Transaction) error {
	_, err := q.ExecContext(ctx, `
		INSERT INTO ledger_transactions
		(id, ledger_id, type, reference, balance_before, amount, balance_after,
		 bank_account_name, account_name, account_number, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		t.ID, t.LedgerID, t.Type, t.Reference, t.BalanceBefore, t.Amount, t.BalanceAfter,
		nullString(t.BankAccountName), nullString(t.AccountName), nullString(t.AccountNumber),
		nullString(t.Notes), t.CreatedAt)
	if err != nil {
		if uniqueViolationOn(err, referenceConstraint) {
			return fmt.Errorf("%w: %s", models.ErrDuplicateReference, t.Reference)
		}
		return fmt.Errorf("insert transaction %s: %w", t.ID, err)
	}
	return nil
}

// LastIDInMonth returns the id of the ledger's newest transaction created in the calendar
// month containing at, or "" when there is none.
func (r *TransactionRepository) LastIDInMonth(ctx context.Context, q DBTX, ledgerID int64, at time.Time) (string, error) {
	start, end := models.MonthBounds(at)

	var id string
	err := q.QueryRowContext(ctx, `
		SELECT id FROM ledger_transactions
		WHERE ledger_id = $1 AND created_at >= $2 AND created_at < $3
		ORDER BY id DESC
		LIMIT 1`, ledgerID, start, end).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("fetch last transaction: %w", err)
	}
	return id, nil
}

func (r *TransactionRepository) FindByID(ctx context.Context, q DBTX, ledgerID int64, id string) (*models.Transaction, error) {
	row := q.QueryRowContext(ctx,
		`SELECT `+transactionColumns+` FROM ledger_transactions WHERE ledger_id = $1 AND id = $2`, ledgerID, id)
	return r.one(row)
}

func (r *TransactionRepository) FindByReference(ctx context.Context, q DBTX, reference string) (*models.Transaction, error) {
	row := q.QueryRowContext(ctx,
		`SELECT `+transactionColumns+` FROM ledger_transactions WHERE reference = $1`, reference)
	return r.one(row)
}

func (r *TransactionRepository) one(row *sql.Row) (*models.Transaction, error) {
	t, err := scanTransaction(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrTransactionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("fetch transaction: %w", err)
	}
	return t, nil
}

// List returns the ledger's transactions matching filter, newest id first.
func (r *TransactionRepository) List(ctx context.Context, q DBTX, ledgerID int64, filter models.TransactionFilter) ([]models.Transaction, error) {
	conditions := []string{"ledger_id = $1"}
	args := []any{ledgerID}
	argIndex := 2

	if filter.Type != "" {
		conditions = append(conditions, fmt.Sprintf("type = $%d", argIndex))
		args = append(args, filter.Type)
		argIndex++
	}

	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf(`(id ILIKE $%[1]d OR reference ILIKE $%[1]d
			OR bank_account_name ILIKE $%[1]d OR account_number ILIKE $%[1]d
			OR account_name ILIKE $%[1]d OR notes ILIKE $%[1]d)`, argIndex))
		args = append(args, likePattern(filter.Search))
		argIndex++
	}

	query := `SELECT ` + transactionColumns + ` FROM ledger_transactions WHERE ` +
		strings.Join(conditions, " AND ") + " ORDER BY id DESC"

	page, args := pageClause(filter.Limit, filter.Offset, argIndex, args)
	query += page

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	transactions := []models.Transaction{}
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, *t)
	}
	return transactions, rows.Err()
}
