package service_test

import (
	"context"
	"errors"
	"testing"

	"simplebanking/internal/auth"
	"simplebanking/internal/constants"
	"simplebanking/internal/mocks"
	"simplebanking/internal/model"
	"simplebanking/internal/repository"
	"simplebanking/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestAccountService_GetAccount(t *testing.T) {
	logger := zap.NewNop()
	owner := auth.Principal{UserID: 7, Username: "ivan", Role: auth.RoleUser}

	t.Run("returns the owner's account", func(t *testing.T) {
		accountRepo := &mocks.AccountRepository{}
		svc := service.NewAccountService(&mocks.TxManager{}, accountRepo, logger)

		accountRepo.On("FindByID", int64(1)).
			Return(model.Account{ID: 1, UserID: 7, Currency: model.RUB, Amount: 500}, nil)

		acc, err := svc.GetAccount(owner, 1)

		require.NoError(t, err)
		assert.Equal(t, int64(1), acc.ID)
		assert.Equal(t, int64(500), acc.Amount)
		assert.Equal(t, model.RUB, acc.Currency)
	})

	t.Run("unknown account is not found", func(t *testing.T) {
		accountRepo := &mocks.AccountRepository{}
		svc := service.NewAccountService(&mocks.TxManager{}, accountRepo, logger)

		accountRepo.On("FindByID", int64(99)).
			Return(model.Account{}, repository.ErrAccountNotFound)

		_, err := svc.GetAccount(owner, 99)

		var serviceErr service.Error
		require.True(t, errors.As(err, &serviceErr))
		assert.Equal(t, constants.ErrCodeAccountNotFound, serviceErr.Code)
	})

	t.Run("someone else's account is forbidden", func(t *testing.T) {
		accountRepo := &mocks.AccountRepository{}
		svc := service.NewAccountService(&mocks.TxManager{}, accountRepo, logger)

		accountRepo.On("FindByID", int64(1)).
			Return(model.Account{ID: 1, UserID: 8, Currency: model.RUB, Amount: 500}, nil)

		_, err := svc.GetAccount(owner, 1)

		var serviceErr service.Error
		require.True(t, errors.As(err, &serviceErr))
		assert.Equal(t, constants.ErrCodeForbidden, serviceErr.Code)
	})
}

func TestAccountService_Deposit(t *testing.T) {
	logger := zap.NewNop()
	owner := auth.Principal{UserID: 7, Username: "ivan", Role: auth.RoleUser}

	t.Run("increases the balance by exactly the amount", func(t *testing.T) {
		txManager := &mocks.TxManager{}
		accountRepo := &mocks.AccountRepository{}
		svc := service.NewAccountService(txManager, accountRepo, logger)

		txManager.On("WithTx", mock.Anything, mock.Anything).Return(nil)
		accountRepo.On("FindByIDForUpdate", mock.Anything, int64(1)).
			Return(model.Account{ID: 1, UserID: 7, Currency: model.RUB, Amount: 1_000_000}, nil)
		accountRepo.On("UpdateAmount", mock.Anything, int64(1), int64(1_000_500)).Return(nil)

		acc, err := svc.Deposit(context.Background(), owner, service.BalanceChangeCommand{AccountID: 1, Amount: 500})

		require.NoError(t, err)
		assert.Equal(t, int64(1_000_500), acc.Amount)
		accountRepo.AssertExpectations(t)
	})

	t.Run("rejects a non-positive amount before touching the store", func(t *testing.T) {
		txManager := &mocks.TxManager{}
		accountRepo := &mocks.AccountRepository{}
		svc := service.NewAccountService(txManager, accountRepo, logger)

		for _, amount := range []int64{0, -1000} {
			_, err := svc.Deposit(context.Background(), owner, service.BalanceChangeCommand{AccountID: 1, Amount: amount})

			var serviceErr service.Error
			require.True(t, errors.As(err, &serviceErr))
			assert.Equal(t, constants.ErrCodeAmountNotPositive, serviceErr.Code)
			assert.Equal(t, constants.ErrMsgAmountNotPositive, serviceErr.Message)
		}

		txManager.AssertNotCalled(t, "WithTx", mock.Anything, mock.Anything)
		accountRepo.AssertNotCalled(t, "UpdateAmount", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unknown account is not found", func(t *testing.T) {
		txManager := &mocks.TxManager{}
		accountRepo := &mocks.AccountRepository{}
		svc := service.NewAccountService(txManager, accountRepo, logger)

		txManager.On("WithTx", mock.Anything, mock.Anything).Return(nil)
		accountRepo.On("FindByIDForUpdate", mock.Anything, int64(42)).
			Return(model.Account{}, repository.ErrAccountNotFound)

		_, err := svc.Deposit(context.Background(), owner, service.BalanceChangeCommand{AccountID: 42, Amount: 500})

		var serviceErr service.Error
		require.True(t, errors.As(err, &serviceErr))
		assert.Equal(t, constants.ErrCodeAccountNotFound, serviceErr.Code)
	})

	t.Run("someone else's account is forbidden and unchanged", func(t *testing.T) {
		txManager := &mocks.TxManager{}
		accountRepo := &mocks.AccountRepository{}
		svc := service.NewAccountService(txManager, accountRepo, logger)

		txManager.On("WithTx", mock.Anything, mock.Anything).Return(nil)
		accountRepo.On("FindByIDForUpdate", mock.Anything, int64(1)).
			Return(model.Account{ID: 1, UserID: 8, Currency: model.RUB, Amount: 100}, nil)

		_, err := svc.Deposit(context.Background(), owner, service.BalanceChangeCommand{AccountID: 1, Amount: 500})

		var serviceErr service.Error
		require.True(t, errors.As(err, &serviceErr))
		assert.Equal(t, constants.ErrCodeForbidden, serviceErr.Code)
		accountRepo.AssertNotCalled(t, "UpdateAmount", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestAccountService_Withdraw(t *testing.T) {
	logger := zap.NewNop()
	owner := auth.Principal{UserID: 7, Username: "ivan", Role: auth.RoleUser}

	t.Run("decreases the balance by exactly the amount", func(t *testing.T) {
		txManager := &mocks.TxManager{}
		accountRepo := &mocks.AccountRepository{}
		svc := service.NewAccountService(txManager, accountRepo, logger)

		txManager.On("WithTx", mock.Anything, mock.Anything).Return(nil)
		accountRepo.On("FindByIDForUpdate", mock.Anything, int64(1)).
			Return(model.Account{ID: 1, UserID: 7, Currency: model.RUB, Amount: 1_000_500}, nil)
		accountRepo.On("UpdateAmount", mock.Anything, int64(1), int64(990_495)).Return(nil)

		acc, err := svc.Withdraw(context.Background(), owner, service.BalanceChangeCommand{AccountID: 1, Amount: 10_005})

		require.NoError(t, err)
		assert.Equal(t, int64(990_495), acc.Amount)
		accountRepo.AssertExpectations(t)
	})

	t.Run("withdrawing the full balance empties the account", func(t *testing.T) {
		txManager := &mocks.TxManager{}
		accountRepo := &mocks.AccountRepository{}
		svc := service.NewAccountService(txManager, accountRepo, logger)

		txManager.On("WithTx", mock.Anything, mock.Anything).Return(nil)
		accountRepo.On("FindByIDForUpdate", mock.Anything, int64(1)).
			Return(model.Account{ID: 1, UserID: 7, Currency: model.USD, Amount: 300}, nil)
		accountRepo.On("UpdateAmount", mock.Anything, int64(1), int64(0)).Return(nil)

		acc, err := svc.Withdraw(context.Background(), owner, service.BalanceChangeCommand{AccountID: 1, Amount: 300})

		require.NoError(t, err)
		assert.Equal(t, int64(0), acc.Amount)
	})

	t.Run("insufficient funds leaves the balance untouched", func(t *testing.T) {
		txManager := &mocks.TxManager{}
		accountRepo := &mocks.AccountRepository{}
		svc := service.NewAccountService(txManager, accountRepo, logger)

		txManager.On("WithTx", mock.Anything, mock.Anything).Return(nil)
		accountRepo.On("FindByIDForUpdate", mock.Anything, int64(1)).
			Return(model.Account{ID: 1, UserID: 7, Currency: model.RUB, Amount: 990_495}, nil)

		_, err := svc.Withdraw(context.Background(), owner, service.BalanceChangeCommand{AccountID: 1, Amount: 2_000_000})

		var serviceErr service.Error
		require.True(t, errors.As(err, &serviceErr))
		assert.Equal(t, constants.ErrCodeInsufficientFunds, serviceErr.Code)
		assert.Equal(t, "Cannot withdraw 2000000 RUB", serviceErr.Message)
		accountRepo.AssertNotCalled(t, "UpdateAmount", mock.Anything, mock.Anything, mock.Anything)
	})
}
