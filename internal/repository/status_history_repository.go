package repository

import (
	"context"
	"fmt"

	"github.com/ruralpay/ledger/internal/models"
)

// StatusHistoryRepository appends ledger status changes
type StatusHistoryRepository struct{}

func NewStatusHistoryRepository() *StatusHistoryRepository {
	return &StatusHistoryRepository{}
}

func (r *StatusHistoryRepository) Create(ctx context.Context, q DBTX, h *models.LedgerStatusHistory) error {
	err := q.QueryRowContext(ctx, `
		INSERT INTO ledger_status_histories (ledger_id, status, notes, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id`,
		h.LedgerID, h.Status, nullString(h.Notes), h.CreatedAt,
	).Scan(&h.ID)
	if err != nil {
		return fmt.Errorf("insert status history: %w", err)
	}
	return nil
}

// ListByLedger returns the ledger's history, oldest first
func (r *StatusHistoryRepository) ListByLedger(ctx context.Context, q DBTX, ledgerID int64) ([]models.LedgerStatusHistory, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT id, ledger_id, status, COALESCE(notes, ''), created_at
		FROM ledger_status_histories
		WHERE ledger_id = $1
		ORDER BY id ASC`, ledgerID)
	if err != nil {
		return nil, fmt.Errorf("list status history: %w", err)
	}
	defer rows.Close()

	histories := []models.LedgerStatusHistory{}
	for rows.Next() {
		var h models.LedgerStatusHistory
		if err := rows.Scan(&h.ID, &h.LedgerID, &h.Status, &h.Notes, &h.CreatedAt); err != nil {
			return nil, err
		}
		histories = append(histories, h)
	}
	return histories, rows.Err()
}
