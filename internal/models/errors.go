package models

import (
	"errors"
	"fmt"
)

var (
	ErrLedgerNotFound      = errors.New("ledger not found")
	ErrTransactionNotFound = errors.New("ledger transaction not found")
	ErrInsufficientBalance = errors.New("insufficient ledger balance")
	ErrInvalidAmount       = errors.New("amount must be positive")
	ErrInvalidBankCode     = errors.New("invalid bank code")
	ErrInvalidStatus       = errors.New("invalid ledger status")
	ErrSameLedger          = errors.New("cannot send money to the same ledger")
	ErrDuplicateReference  = errors.New("transaction reference already exists")
	ErrImmutableField      = errors.New("immutable field")
	ErrGatewayUnavailable  = errors.New("payment gateway unavailable")
	ErrInvalidCallback     = errors.New("invalid callback token")
)

// ImmutableFieldError is returned when a write-once transaction field is set twice.
type ImmutableFieldError struct {
	Field string
}

func (e *ImmutableFieldError) Error() string {
	return fmt.Sprintf("ledger transaction %s cannot be changed", e.Field)
}

func (e *ImmutableFieldError) Is(target error) bool {
	return target == ErrImmutableField
}

// IsNotFound reports whether err is a ledger or transaction lookup miss.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrLedgerNotFound) || errors.Is(err, ErrTransactionNotFound)
}

// IsValidation reports whether err was caused by caller input.
func IsValidation(err error) bool {
	return errors.Is(err, ErrInvalidAmount) ||
		errors.Is(err, ErrInvalidBankCode) ||
		errors.Is(err, ErrInvalidStatus) ||
		errors.Is(err, ErrSameLedger)
}
