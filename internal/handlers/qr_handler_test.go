package handlers

import (
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/ruralpay/ledger/internal/services"
)

func TestQRHandler_DepositQR(t *testing.T) {
	ledger := testLedger(1, 0)

	tests := []struct {
		name   string
		query  string
		amount int64
		status int
	}{
		{"open amount", "", 0, http.StatusOK},
		{"fixed amount", "?amount=25000", 25000, http.StatusOK},
		{"zero amount", "?amount=0", 0, http.StatusBadRequest},
		{"not a number", "?amount=ten", 0, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ledgers := new(MockLedgerOperations)
			ledgers.On("GetLedger", mock.Anything, int64(1), true).Return(ledger, nil)
			generator := new(MockQRGenerator)
			if tt.status == http.StatusOK {
				generator.On("GenerateDepositQR", ledger, tt.amount).
					Return(&services.DepositQR{Code: "payload", Image: "iVBORw0KGgo="}, nil)
			}
			h := NewQRHandler(ledgers, generator, testLogger())
			router := newRouter(testUserID, func(r chi.Router) {
				r.Get("/ledgers/{ledgerId}/deposit-qr", h.DepositQR)
			})

			rec := serve(router, http.MethodGet, "/ledgers/1/deposit-qr"+tt.query, "")

			assert.Equal(t, tt.status, rec.Code)
			if tt.status == http.StatusOK {
				var resp services.DepositQR
				decodeBody(t, rec, &resp)
				assert.Equal(t, "payload", resp.Code)
			}
			generator.AssertExpectations(t)
		})
	}
}
