package services

import (
	"context"
	"net/http"

	"github.com/stretchr/testify/mock"

	"github.com/ruralpay/ledger/internal/gateway"
)

type MockProvisioner struct {
	mock.Mock
}

func (m *MockProvisioner) CreateVirtualAccount(ctx context.Context, name, bankCode, externalID string) (*gateway.VirtualAccount, error) {
	args := m.Called(ctx, name, bankCode, externalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*gateway.VirtualAccount), args.Error(1)
}

type MockBankLister struct {
	mock.Mock
}

func (m *MockBankLister) ListBanks(ctx context.Context) ([]gateway.Bank, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]gateway.Bank), args.Error(1)
}

type MockVerifier struct {
	mock.Mock
}

func (m *MockVerifier) VerifyCallback(r *http.Request) error {
	args := m.Called(r)
	return args.Error(0)
}
