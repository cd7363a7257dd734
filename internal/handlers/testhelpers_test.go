package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ruralpay/ledger/internal/middleware"
	"github.com/ruralpay/ledger/internal/models"
)

const testUserID int64 = 42

var testCreatedAt = time.Date(2026, time.October, 14, 10, 0, 0, 0, time.UTC)

func testLedger(id int64, balance int64) *models.Ledger {
	return &models.Ledger{
		ID:             id,
		UserID:         testUserID,
		Name:           "Wallet",
		VirtualAccount: "8808000001",
		Balance:        balance,
		Reference:      "va-ref",
		BankCode:       "BNI",
		Status:         models.LedgerStatusActive,
		CreatedAt:      testCreatedAt,
	}
}

func testTransaction(ledgerID int64, txType models.TransactionType, amount int64) *models.Transaction {
	return &models.Transaction{
		ID:        "202610140000001",
		LedgerID:  ledgerID,
		Type:      txType,
		Reference: "ref-1",
		Amount:    amount,
		CreatedAt: testCreatedAt,
	}
}

// newRouter mounts routes behind a fake authenticator. userID 0 leaves the request anonymous.
func newRouter(userID int64, mount func(r chi.Router)) http.Handler {
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			if userID != 0 {
				req = req.WithContext(middleware.WithUserID(req.Context(), userID))
			}
			next.ServeHTTP(w, req)
		})
	})
	mount(r)
	return r
}

func serve(h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v))
}

func testLogger() *zap.Logger {
	return zap.NewNop()
}
