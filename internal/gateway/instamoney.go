package gateway

import (
	"bytes"
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/big"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"github.com/ruralpay/ledger/internal/config"
	"github.com/ruralpay/ledger/internal/models"
)

// CallbackTokenHeader carries the shared secret on every gateway webhook
const CallbackTokenHeader = "X-CALLBACK-TOKEN"

const maxResponseBytes = 1 << 20

// VirtualAccount is the gateway's fixed virtual account resource
type VirtualAccount struct {
	ID            string `json:"id"`
	ExternalID    string `json:"external_id"`
	AccountNumber string `json:"account_number"`
	BankCode      string `json:"bank_code"`
	Name          string `json:"name"`
	Status        string `json:"status"`
}

// Bank is an entry of the gateway's available virtual account banks
type Bank struct {
	Name string `json:"name"`
	Code string `json:"code"`
}

// APIError is a non-2xx answer from the gateway
type APIError struct {
	StatusCode int
	ErrorCode  string `json:"error_code"`
	Message    string `json:"message"`
}

func (e *APIError) Error() string {
	if e.ErrorCode != "" {
		return fmt.Sprintf("instamoney: %d %s: %s", e.StatusCode, e.ErrorCode, e.Message)
	}
	return fmt.Sprintf("instamoney: unexpected status %d", e.StatusCode)
}

func (e *APIError) Unwrap() error {
	return models.ErrGatewayUnavailable
}

// Client talks to the Instamoney API. Every call is bounded by the configured timeout and
// guarded by a circuit breaker.
type Client struct {
	baseURL       string
	secretKey     string
	callbackToken string
	sandbox       bool
	http          *http.Client
	breaker       *gobreaker.CircuitBreaker
	logger        *zap.Logger
}

func NewClient(cfg config.GatewayConfig, logger *zap.Logger) *Client {
	logger = logger.Named("instamoney")

	maxFailures := cfg.MaxFailures
	if maxFailures == 0 {
		maxFailures = 5
	}

	settings := gobreaker.Settings{
		Name:        "instamoney",
		MaxRequests: cfg.HalfOpenReqs,
		Timeout:     cfg.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= maxFailures
		},
		IsSuccessful: isBreakerSuccess,
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	}

	return &Client{
		baseURL:       strings.TrimRight(cfg.BaseURL, "/"),
		secretKey:     cfg.SecretKey,
		callbackToken: cfg.CallbackToken,
		sandbox:       cfg.Sandbox,
		http:          &http.Client{Timeout: cfg.Timeout},
		breaker:       gobreaker.NewCircuitBreaker(settings),
		logger:        logger,
	}
}

// CreateVirtualAccount provisions a fixed virtual account. externalID is the idempotency
// key the gateway deduplicates on.
func (c *Client) CreateVirtualAccount(ctx context.Context, name, bankCode, externalID string) (*VirtualAccount, error) {
	if c.sandbox {
		return sandboxVirtualAccount(name, bankCode, externalID), nil
	}

	payload := map[string]string{
		"name":        name,
		"bank_code":   bankCode,
		"external_id": externalID,
	}

	var va VirtualAccount
	if err := c.do(ctx, http.MethodPost, "/callback_virtual_accounts", payload, &va); err != nil {
		c.logger.Error("create virtual account failed",
			zap.String("external_id", externalID),
			zap.String("bank_code", bankCode),
			zap.Error(err),
		)
		return nil, err
	}

	c.logger.Info("virtual account created",
		zap.String("id", va.ID),
		zap.String("external_id", externalID),
	)
	return &va, nil
}

// ListBanks returns the banks that can issue virtual accounts
func (c *Client) ListBanks(ctx context.Context) ([]Bank, error) {
	var banks []Bank
	if err := c.do(ctx, http.MethodGet, "/available_virtual_account_banks", nil, &banks); err != nil {
		return nil, err
	}
	return banks, nil
}

// VerifyCallback checks the webhook token header in constant time.
func (c *Client) VerifyCallback(r *http.Request) error {
	token := r.Header.Get(CallbackTokenHeader)
	if c.callbackToken == "" || token == "" {
		return models.ErrInvalidCallback
	}
	if subtle.ConstantTimeCompare([]byte(token), []byte(c.callbackToken)) != 1 {
		return models.ErrInvalidCallback
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	_, err := c.breaker.Execute(func() (any, error) {
		return nil, c.roundTrip(ctx, method, path, body, out)
	})

	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return fmt.Errorf("%w: %v", models.ErrGatewayUnavailable, err)
	}
	return err
}

func (c *Client) roundTrip(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.SetBasicAuth(c.secretKey, "")
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", models.ErrGatewayUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("%w: read response: %v", models.ErrGatewayUnavailable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		// non-JSON error bodies keep only the status code
		if err := json.Unmarshal(data, apiErr); err != nil {
			c.logger.Debug("undecodable error body", zap.Int("status", resp.StatusCode), zap.Error(err))
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: decode response: %v", models.ErrGatewayUnavailable, err)
	}
	return nil
}

// isBreakerSuccess counts 4xx answers as successes so bad input cannot open the breaker.
func isBreakerSuccess(err error) bool {
	if err == nil {
		return true
	}
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode < http.StatusInternalServerError
}

func sandboxVirtualAccount(name, bankCode, externalID string) *VirtualAccount {
	return &VirtualAccount{
		ID:            uuid.NewString(),
		ExternalID:    externalID,
		AccountNumber: randomDigits(10),
		BankCode:      bankCode,
		Name:          name,
		Status:        "PENDING",
	}
}

func randomDigits(n int) string {
	var sb strings.Builder
	for i := 0; i < n; i++ {
		d, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			d = big.NewInt(int64(time.Now().UnixNano() % 10))
		}
		sb.WriteByte(byte('0' + d.Int64()))
	}
	return sb.String()
}
