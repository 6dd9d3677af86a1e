package mocks

import (
	"context"

	"simplebanking/internal/auth"
	"simplebanking/internal/model"
	"simplebanking/internal/service"

	"github.com/stretchr/testify/mock"
)

type AccountService struct {
	mock.Mock
}

func (m *AccountService) GetAccount(principal auth.Principal, accountID int64) (model.Account, error) {
	args := m.Called(principal, accountID)
	return args.Get(0).(model.Account), args.Error(1)
}

func (m *AccountService) Deposit(ctx context.Context, principal auth.Principal, cmd service.BalanceChangeCommand) (model.Account, error) {
	args := m.Called(ctx, principal, cmd)
	return args.Get(0).(model.Account), args.Error(1)
}

func (m *AccountService) Withdraw(ctx context.Context, principal auth.Principal, cmd service.BalanceChangeCommand) (model.Account, error) {
	args := m.Called(ctx, principal, cmd)
	return args.Get(0).(model.Account), args.Error(1)
}
