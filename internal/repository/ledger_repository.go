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

const ledgerColumns = `id, user_id, name, virtual_account, balance, reference, bank_code,
	COALESCE(external_id, ''), status, created_at, updated_at`

type LedgerRepository struct{}

func NewLedgerRepository() *LedgerRepository {
	return &LedgerRepository{}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLedger(row rowScanner) (*models.Ledger, error) {
	var l models.Ledger
	var updatedAt sql.NullTime
	err := row.Scan(&l.ID, &l.UserID, &l.Name, &l.VirtualAccount, &l.Balance, &l.Reference,
		&l.BankCode, &l.ExternalID, &l.Status, &l.CreatedAt, &updatedAt)
	if err != nil {
		return nil, err
	}
	l.UpdatedAt = updatedAt.Time
	return &l, nil
}

func (r *LedgerRepository) Create(ctx context.Context, q DBTX, l *models.Ledger) error {
	err := q.QueryRowContext(ctx, `
		INSERT INTO ledgers (user_id, name, virtual_account, balance, reference, bank_code, external_id, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`,
		l.UserID, l.Name, l.VirtualAccount, l.Balance, l.Reference, l.BankCode,
		nullString(l.ExternalID), l.Status, l.CreatedAt,
	).Scan(&l.ID)
	if err != nil {
		return fmt.Errorf("insert ledger: %w", err)
	}
	return nil
}

// Update persists every mutable column of l
func (r *LedgerRepository) Update(ctx context.Context, q DBTX, l *models.Ledger) error {
	l.UpdatedAt = time.Now().UTC()
	result, err := q.ExecContext(ctx, `
		UPDATE ledgers
		SET name = $1, virtual_account = $2, balance = $3, reference = $4, bank_code = $5, status = $6, updated_at = $7
		WHERE id = $8`,
		l.Name, l.VirtualAccount, l.Balance, l.Reference, l.BankCode, l.Status, l.UpdatedAt, l.ID)
	if err != nil {
		return fmt.Errorf("update ledger %d: %w", l.ID, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return models.ErrLedgerNotFound
	}
	return nil
}

func (r *LedgerRepository) FindByID(ctx context.Context, q DBTX, id int64) (*models.Ledger, error) {
	row := q.QueryRowContext(ctx, `SELECT `+ledgerColumns+` FROM ledgers WHERE id = $1`, id)
	return r.one(row)
}

// LockByID loads the ledger and holds a row lock until the surrounding transaction ends.
func (r *LedgerRepository) LockByID(ctx context.Context, tx *sql.Tx, id int64) (*models.Ledger, error) {
	row := tx.QueryRowContext(ctx, `SELECT `+ledgerColumns+` FROM ledgers WHERE id = $1 FOR UPDATE`, id)
	return r.one(row)
}

func (r *LedgerRepository) FindByReference(ctx context.Context, q DBTX, reference string) (*models.Ledger, error) {
	row := q.QueryRowContext(ctx, `SELECT `+ledgerColumns+` FROM ledgers WHERE reference = $1`, reference)
	return r.one(row)
}

// LockByReference is LockByID keyed on the gateway reference.
func (r *LedgerRepository) LockByReference(ctx context.Context, tx *sql.Tx, reference string) (*models.Ledger, error) {
	row := tx.QueryRowContext(ctx, `SELECT `+ledgerColumns+` FROM ledgers WHERE reference = $1 FOR UPDATE`, reference)
	return r.one(row)
}

func (r *LedgerRepository) one(row *sql.Row) (*models.Ledger, error) {
	l, err := scanLedger(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrLedgerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("fetch ledger: %w", err)
	}
	return l, nil
}

// List returns ledgers matching filter, newest id first.
func (r *LedgerRepository) List(ctx context.Context, q DBTX, filter models.LedgerFilter) ([]models.Ledger, error) {
	var conditions []string
	var args []any
	argIndex := 1

	if filter.UserID != 0 {
		conditions = append(conditions, fmt.Sprintf("user_id = $%d", argIndex))
		args = append(args, filter.UserID)
		argIndex++
	}

	if filter.BankCode != "" {
		conditions = append(conditions, fmt.Sprintf("bank_code = $%d", argIndex))
		args = append(args, filter.BankCode)
		argIndex++
	}

	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf(
			"(name ILIKE $%[1]d OR virtual_account ILIKE $%[1]d OR reference ILIKE $%[1]d)", argIndex))
		args = append(args, likePattern(filter.Search))
		argIndex++
	}

	query := `SELECT ` + ledgerColumns + ` FROM ledgers`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY id DESC"

	page, args := pageClause(filter.Limit, filter.Offset, argIndex, args)
	query += page

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list ledgers: %w", err)
	}
	defer rows.Close()

	ledgers := []models.Ledger{}
	for rows.Next() {
		l, err := scanLedger(rows)
		if err != nil {
			return nil, err
		}
		ledgers = append(ledgers, *l)
	}
	return ledgers, rows.Err()
}
