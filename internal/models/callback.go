package models

// VirtualAccountCallback is sent by the gateway when a fixed virtual account is created or
// changes state.
type VirtualAccountCallback struct {
	ID            string `json:"id" validate:"required"`
	ExternalID    string `json:"external_id"`
	BankCode      string `json:"bank_code"`
	AccountNumber string `json:"account_number"`
	Name          string `json:"name"`
	Status        string `json:"status"`
}

// PaymentCallback is sent by the gateway when money lands on a fixed virtual account.
type PaymentCallback struct {
	PaymentID                string `json:"payment_id" validate:"required"`
	CallbackVirtualAccountID string `json:"callback_virtual_account_id" validate:"required"`
	ExternalID               string `json:"external_id"`
	Amount                   int64  `json:"amount" validate:"required,gt=0"`
	BankCode                 string `json:"bank_code"`
	SenderName               string `json:"sender_name"`
	AccountNumber            string `json:"account_number"`
}

// TransactionInput maps the payment onto a credit
func (p PaymentCallback) TransactionInput() TransactionInput {
	return TransactionInput{
		Amount: p.Amount,
		Counterparty: Counterparty{
			BankAccountName: p.BankCode,
			AccountName:     p.SenderName,
			AccountNumber:   p.AccountNumber,
		},
		Reference: p.PaymentID,
	}
}
