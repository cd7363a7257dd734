package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// TransactionType is stored as a single character code
type TransactionType string

const (
	TransactionTypeCredit TransactionType = "1"
	TransactionTypeDebit  TransactionType = "2"
)

var transactionTypeNames = map[TransactionType]string{
	TransactionTypeCredit: "Credit",
	TransactionTypeDebit:  "Debit",
}

func (t TransactionType) DisplayName() string {
	if name, ok := transactionTypeNames[t]; ok {
		return name
	}
	return string(t)
}

func (t TransactionType) IsValid() bool {
	_, ok := transactionTypeNames[t]
	return ok
}

const (
	transactionDateLayout = "20060102"
	transactionSeqDigits  = 7
	// TransactionIDLength is the length of a generated transaction id (YYYYMMDD + sequence)
	TransactionIDLength = len(transactionDateLayout) + transactionSeqDigits
)

// Counterparty holds the optional fields describing the other side of a money movement
type Counterparty struct {
	BankAccountName string `json:"bank_account_name,omitempty"`
	AccountName     string `json:"account_name,omitempty"`
	AccountNumber   string `json:"account_number,omitempty"`
}

// TransactionInput carries the caller-provided parts of a new transaction
type TransactionInput struct {
	Amount       int64
	Counterparty Counterparty
	Reference    string
	Notes        string
}

// Transaction is an immutable credit or debit record against a ledger
type Transaction struct {
	ID            string          `json:"id" db:"id"`
	LedgerID      int64           `json:"ledger_id" db:"ledger_id"`
	Type          TransactionType `json:"type" db:"type"`
	Reference     string          `json:"reference" db:"reference"`
	BalanceBefore int64           `json:"balance_before" db:"balance_before"`
	Amount        int64           `json:"amount" db:"amount"`
	BalanceAfter  int64           `json:"balance_after" db:"balance_after"`
	Counterparty
	Notes     string    `json:"notes,omitempty" db:"notes"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// NewTransaction prepares an unsaved transaction of the given type for ledger.
// The write-once fields (id, reference, amount) are left unset.
func NewTransaction(ledger *Ledger, txType TransactionType, cp Counterparty, notes string, now time.Time) *Transaction {
	return &Transaction{
		LedgerID:     ledger.ID,
		Type:         txType,
		Counterparty: cp,
		Notes:        notes,
		CreatedAt:    now,
	}
}

// SetID assigns the next id in the ledger's monthly sequence. lastID is the id of the
// ledger's most recent transaction created in now's calendar month, or "" if none.
func (t *Transaction) SetID(now time.Time, lastID string) error {
	if t.ID != "" {
		return &ImmutableFieldError{Field: "id"}
	}

	t.ID = FormatTransactionID(now, ParseTransactionNumber(lastID)+1)
	return nil
}

// SetReference uses ref verbatim, or a random token when ref is empty.
func (t *Transaction) SetReference(ref string) error {
	if t.Reference != "" {
		return &ImmutableFieldError{Field: "reference"}
	}

	if ref == "" {
		ref = strings.ReplaceAll(uuid.NewString(), "-", "")
	}
	t.Reference = ref
	return nil
}

// SetAmount records amount and derives the balances from the ledger's current balance.
func (t *Transaction) SetAmount(ledger *Ledger, amount int64) error {
	if t.Amount != 0 {
		return &ImmutableFieldError{Field: "amount"}
	}

	current := ledger.Balance
	var after int64
	switch {
	case t.IsDebit():
		after = current - amount
	case t.IsCredit():
		after = current + amount
	}

	t.BalanceBefore = current
	t.Amount = amount
	t.BalanceAfter = after
	return nil
}

// TransactionNumber returns the monthly sequence encoded in the id
func (t *Transaction) TransactionNumber() int {
	return ParseTransactionNumber(t.ID)
}

func (t *Transaction) IsDebit() bool {
	return t.Type == TransactionTypeDebit
}

func (t *Transaction) IsCredit() bool {
	return t.Type == TransactionTypeCredit
}

// Bank renders the counterparty as "account name - bank account number"
func (t *Transaction) Bank() string {
	return strings.TrimSpace(fmt.Sprintf("%s - %s %s", t.AccountName, t.BankAccountName, t.AccountNumber))
}

// Origin is the counterparty for credits
func (t *Transaction) Origin() string {
	if t.IsCredit() {
		return t.Bank()
	}
	return "-"
}

// Destination is the counterparty for debits
func (t *Transaction) Destination() string {
	if t.IsDebit() {
		return t.Bank()
	}
	return "-"
}

// FormatTransactionID builds YYYYMMDD followed by the zero padded sequence
func FormatTransactionID(now time.Time, seq int) string {
	return now.Format(transactionDateLayout) + fmt.Sprintf("%0*d", transactionSeqDigits, seq)
}

// ParseTransactionNumber extracts the sequence from a transaction id. Ids that are too
// short or not numeric yield 0.
func ParseTransactionNumber(id string) int {
	if len(id) <= len(transactionDateLayout) {
		return 0
	}
	n, err := strconv.Atoi(id[len(transactionDateLayout):])
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// MonthBounds returns the [start, end) range of t's calendar month in t's location.
func MonthBounds(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	return start, start.AddDate(0, 1, 0)
}

// TransactionFilter narrows transaction listings. Empty fields are ignored.
type TransactionFilter struct {
	Type   TransactionType
	Search string
	Limit  int
	Offset int
}
