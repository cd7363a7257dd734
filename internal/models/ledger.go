package models

import (
	"time"
)

// LedgerStatus is stored as a single character code
type LedgerStatus string

const (
	LedgerStatusActive   LedgerStatus = "1"
	LedgerStatusInactive LedgerStatus = "2"
	LedgerStatusPending  LedgerStatus = "3"
)

var ledgerStatusNames = map[LedgerStatus]string{
	LedgerStatusActive:   "Active",
	LedgerStatusInactive: "Inactive",
	LedgerStatusPending:  "Pending",
}

// DisplayName returns the human readable status
func (s LedgerStatus) DisplayName() string {
	if name, ok := ledgerStatusNames[s]; ok {
		return name
	}
	return string(s)
}

func (s LedgerStatus) IsValid() bool {
	_, ok := ledgerStatusNames[s]
	return ok
}

// ParseGatewayStatus maps the status string sent by the gateway to a LedgerStatus.
// Unknown codes return false.
func ParseGatewayStatus(code string) (LedgerStatus, bool) {
	switch code {
	case "ACTIVE":
		return LedgerStatusActive, true
	case "PENDING":
		return LedgerStatusPending, true
	case "INACTIVE":
		return LedgerStatusInactive, true
	}
	return "", false
}

// Ledger is a user's wallet backed by a gateway-issued virtual account
type Ledger struct {
	ID             int64        `json:"id" db:"id"`
	UserID         int64        `json:"user_id" db:"user_id"`
	Name           string       `json:"name" db:"name"`
	VirtualAccount string       `json:"virtual_account" db:"virtual_account"`
	Balance        int64        `json:"balance" db:"balance"` // minor units
	Reference      string       `json:"reference" db:"reference"`
	BankCode       string       `json:"bank_code" db:"bank_code"`
	ExternalID     string       `json:"external_id" db:"external_id"`
	Status         LedgerStatus `json:"status" db:"status"`
	CreatedAt      time.Time    `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at" db:"updated_at"`
}

func (l *Ledger) IsBalanceSufficient(amount int64) bool {
	return l.Balance >= amount
}

// Counterparty describes the other side of a transaction as seen from this ledger.
func (l *Ledger) Counterparty() Counterparty {
	return Counterparty{
		BankAccountName: l.BankCode,
		AccountName:     l.Name,
		AccountNumber:   l.VirtualAccount,
	}
}

// LedgerStatusHistory is an append-only record of a status change
type LedgerStatusHistory struct {
	ID        int64        `json:"id" db:"id"`
	LedgerID  int64        `json:"ledger_id" db:"ledger_id"`
	Status    LedgerStatus `json:"status" db:"status"`
	Notes     string       `json:"notes,omitempty" db:"notes"`
	CreatedAt time.Time    `json:"created_at" db:"created_at"`
}

// LedgerFilter narrows ledger listings. Empty fields are ignored.
type LedgerFilter struct {
	UserID   int64
	BankCode string
	Search   string
	Limit    int
	Offset   int
}
