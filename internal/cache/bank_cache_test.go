package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ruralpay/ledger/internal/gateway"
)

var testBanks = []gateway.Bank{
	{Name: "Bank Negara Indonesia", Code: "BNI"},
	{Name: "Bank Mandiri", Code: "MANDIRI"},
}

const testBanksJSON = `[{"name":"Bank Negara Indonesia","code":"BNI"},{"name":"Bank Mandiri","code":"MANDIRI"}]`

func TestRedisBankCache(t *testing.T) {
	client, mock := redismock.NewClientMock()
	cache := NewRedisBankCache(client)
	ctx := context.Background()

	t.Run("miss", func(t *testing.T) {
		mock.ExpectGet(BankListKey).RedisNil()

		_, err := cache.GetBanks(ctx)
		assert.ErrorIs(t, err, ErrCacheMiss)
	})

	t.Run("set", func(t *testing.T) {
		mock.ExpectSet(BankListKey, testBanksJSON, time.Hour).SetVal("OK")

		assert.NoError(t, cache.SetBanks(ctx, testBanks, time.Hour))
	})

	t.Run("hit", func(t *testing.T) {
		mock.ExpectGet(BankListKey).SetVal(testBanksJSON)

		banks, err := cache.GetBanks(ctx)
		require.NoError(t, err)
		assert.Equal(t, testBanks, banks)
	})

	t.Run("redis error", func(t *testing.T) {
		mock.ExpectGet(BankListKey).SetErr(errors.New("connection refused"))

		_, err := cache.GetBanks(ctx)
		assert.Error(t, err)
		assert.False(t, errors.Is(err, ErrCacheMiss))
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMemoryBankCache(t *testing.T) {
	now := time.Date(2026, time.October, 14, 9, 0, 0, 0, time.UTC)
	cache := NewMemoryBankCache()
	cache.now = func() time.Time { return now }
	ctx := context.Background()

	_, err := cache.GetBanks(ctx)
	assert.ErrorIs(t, err, ErrCacheMiss)

	require.NoError(t, cache.SetBanks(ctx, testBanks, time.Hour))

	banks, err := cache.GetBanks(ctx)
	require.NoError(t, err)
	assert.Equal(t, testBanks, banks)

	banks[0].Code = "changed"
	again, _ := cache.GetBanks(ctx)
	assert.Equal(t, "BNI", again[0].Code)

	now = now.Add(time.Hour)
	_, err = cache.GetBanks(ctx)
	assert.ErrorIs(t, err, ErrCacheMiss)
}
