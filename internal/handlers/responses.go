package handlers

import (
	"time"

	"github.com/ruralpay/ledger/internal/models"
)

// Choice renders a coded field together with its label
type Choice struct {
	Value       string `json:"value"`
	DisplayName string `json:"display_name"`
}

type LedgerResponse struct {
	ID             int64      `json:"id"`
	Name           string     `json:"name"`
	VirtualAccount string     `json:"virtual_account"`
	Balance        int64      `json:"balance"`
	Reference      string     `json:"reference"`
	BankCode       string     `json:"bank_code"`
	Status         Choice     `json:"status"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      *time.Time `json:"updated_at,omitempty"`
}

type TransactionResponse struct {
	ID              string    `json:"id"`
	LedgerID        int64     `json:"ledger_id"`
	Type            Choice    `json:"type"`
	Reference       string    `json:"reference"`
	BalanceBefore   int64     `json:"balance_before"`
	Amount          int64     `json:"amount"`
	BalanceAfter    int64     `json:"balance_after"`
	BankAccountName string    `json:"bank_account_name,omitempty"`
	AccountName     string    `json:"account_name,omitempty"`
	AccountNumber   string    `json:"account_number,omitempty"`
	Notes           string    `json:"notes,omitempty"`
	Origin          string    `json:"origin"`
	Destination     string    `json:"destination"`
	CreatedAt       time.Time `json:"created_at"`
}

type StatusHistoryResponse struct {
	ID        int64     `json:"id"`
	Status    Choice    `json:"status"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type TransferResponse struct {
	Debit  TransactionResponse `json:"debit"`
	Credit TransactionResponse `json:"credit"`
}

func statusChoice(s models.LedgerStatus) Choice {
	return Choice{Value: string(s), DisplayName: s.DisplayName()}
}

func newLedgerResponse(l *models.Ledger) LedgerResponse {
	resp := LedgerResponse{
		ID:             l.ID,
		Name:           l.Name,
		VirtualAccount: l.VirtualAccount,
		Balance:        l.Balance,
		Reference:      l.Reference,
		BankCode:       l.BankCode,
		Status:         statusChoice(l.Status),
		CreatedAt:      l.CreatedAt,
	}
	if !l.UpdatedAt.IsZero() {
		updatedAt := l.UpdatedAt
		resp.UpdatedAt = &updatedAt
	}
	return resp
}

func newLedgerResponses(ledgers []models.Ledger) []LedgerResponse {
	out := make([]LedgerResponse, 0, len(ledgers))
	for i := range ledgers {
		out = append(out, newLedgerResponse(&ledgers[i]))
	}
	return out
}

func newTransactionResponse(t *models.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:              t.ID,
		LedgerID:        t.LedgerID,
		Type:            Choice{Value: string(t.Type), DisplayName: t.Type.DisplayName()},
		Reference:       t.Reference,
		BalanceBefore:   t.BalanceBefore,
		Amount:          t.Amount,
		BalanceAfter:    t.BalanceAfter,
		BankAccountName: t.BankAccountName,
		AccountName:     t.AccountName,
		AccountNumber:   t.AccountNumber,
		Notes:           t.Notes,
		Origin:          t.Origin(),
		Destination:     t.Destination(),
		CreatedAt:       t.CreatedAt,
	}
}

func newTransactionResponses(transactions []models.Transaction) []TransactionResponse {
	out := make([]TransactionResponse, 0, len(transactions))
	for i := range transactions {
		out = append(out, newTransactionResponse(&transactions[i]))
	}
	return out
}

func newStatusHistoryResponses(histories []models.LedgerStatusHistory) []StatusHistoryResponse {
	out := make([]StatusHistoryResponse, 0, len(histories))
	for _, h := range histories {
		out = append(out, StatusHistoryResponse{
			ID:        h.ID,
			Status:    statusChoice(h.Status),
			Notes:     h.Notes,
			CreatedAt: h.CreatedAt,
		})
	}
	return out
}
