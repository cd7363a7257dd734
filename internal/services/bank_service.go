package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/ruralpay/ledger/internal/cache"
	"github.com/ruralpay/ledger/internal/gateway"
)

// BankLister fetches the banks able to issue virtual accounts
type BankLister interface {
	ListBanks(ctx context.Context) ([]gateway.Bank, error)
}

type BankService struct {
	lister BankLister
	cache  cache.BankCache
	ttl    time.Duration
	logger *zap.Logger
}

func NewBankService(lister BankLister, bankCache cache.BankCache, ttl time.Duration, logger *zap.Logger) *BankService {
	return &BankService{
		lister: lister,
		cache:  bankCache,
		ttl:    ttl,
		logger: logger.Named("bank"),
	}
}

// ListBanks never fails. When neither the cache nor the gateway can answer the list is empty.
func (bs *BankService) ListBanks(ctx context.Context) []gateway.Bank {
	banks, err := bs.cache.GetBanks(ctx)
	if err == nil {
		return banks
	}
	if !errors.Is(err, cache.ErrCacheMiss) {
		bs.logger.Warn("bank cache read failed", zap.Error(err))
	}

	banks, err = bs.lister.ListBanks(ctx)
	if err != nil {
		bs.logger.Error("failed to fetch banks from gateway", zap.Error(err))
		return []gateway.Bank{}
	}
	if len(banks) == 0 {
		return []gateway.Bank{}
	}

	if err := bs.cache.SetBanks(ctx, banks, bs.ttl); err != nil {
		bs.logger.Warn("bank cache write failed", zap.Error(err))
	}
	return banks
}

func (bs *BankService) IsValidBankCode(ctx context.Context, code string) bool {
	if code == "" {
		return false
	}
	for _, bank := range bs.ListBanks(ctx) {
		if bank.Code == code {
			return true
		}
	}
	return false
}

// GetAllBanks godoc
// @Summary List banks
// @Description Banks that can issue a ledger virtual account
// @Tags banks
// @Produce json
// @Success 200 {array} gateway.Bank
// @Router /banks [get]
func (bs *BankService) GetAllBanks(w http.ResponseWriter, r *http.Request) {
	banks := bs.ListBanks(r.Context())

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", fmt.Sprintf("public, max-age=%d", int(bs.ttl.Seconds())))
	if err := json.NewEncoder(w).Encode(banks); err != nil {
		bs.logger.Error("failed to write bank list", zap.Error(err))
	}
}
