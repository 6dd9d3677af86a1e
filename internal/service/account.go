package service

import (
	"context"
	"errors"
	"fmt"

	"simplebanking/internal/auth"
	"simplebanking/internal/constants"
	"simplebanking/internal/model"
	"simplebanking/internal/repository"

	"go.uber.org/zap"
)

var (
	ErrAmountNotPositive = errors.New("AMOUNT_NOT_POSITIVE")
	ErrInsufficientFunds = errors.New("INSUFFICIENT_FUNDS")
	ErrNotOwner          = errors.New("NOT_OWNER")
)

// AccountService reads and mutates single-account balances on behalf of the
// account owner. Every mutation is all-or-nothing: validation failures leave
// the persisted balance untouched.
type AccountService interface {
	GetAccount(principal auth.Principal, accountID int64) (model.Account, error)
	Deposit(ctx context.Context, principal auth.Principal, cmd BalanceChangeCommand) (model.Account, error)
	Withdraw(ctx context.Context, principal auth.Principal, cmd BalanceChangeCommand) (model.Account, error)
}

type accountService struct {
	txManager   repository.TxManager
	accountRepo repository.AccountRepository
	log         *zap.Logger
}

func NewAccountService(txManager repository.TxManager, accountRepo repository.AccountRepository, log *zap.Logger) AccountService {
	return &accountService{txManager: txManager, accountRepo: accountRepo, log: log}
}

func (s *accountService) GetAccount(principal auth.Principal, accountID int64) (model.Account, error) {
	acc, err := s.accountRepo.FindByID(accountID)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return model.Account{}, NewServiceError(constants.ErrCodeAccountNotFound, err)
		}
		return model.Account{}, NewServiceError(constants.ErrCodeOperationFailed, err)
	}

	if acc.UserID != principal.UserID {
		return model.Account{}, NewServiceError(constants.ErrCodeForbidden, ErrNotOwner)
	}

	return acc, nil
}

func (s *accountService) Deposit(ctx context.Context, principal auth.Principal, cmd BalanceChangeCommand) (model.Account, error) {
	acc, err := s.adjust(ctx, principal, cmd, cmd.Amount)
	if err != nil {
		return model.Account{}, err
	}

	s.log.Info("Deposit applied",
		zap.Int64("account_id", acc.ID),
		zap.Int64("amount", cmd.Amount),
		zap.Int64("balance", acc.Amount),
	)

	return acc, nil
}

func (s *accountService) Withdraw(ctx context.Context, principal auth.Principal, cmd BalanceChangeCommand) (model.Account, error) {
	acc, err := s.adjust(ctx, principal, cmd, -cmd.Amount)
	if err != nil {
		return model.Account{}, err
	}

	s.log.Info("Withdrawal applied",
		zap.Int64("account_id", acc.ID),
		zap.Int64("amount", cmd.Amount),
		zap.Int64("balance", acc.Amount),
	)

	return acc, nil
}

// adjust applies a signed delta to one account under a row lock, so
// concurrent changes to the same account serialize and never lose updates.
func (s *accountService) adjust(ctx context.Context, principal auth.Principal, cmd BalanceChangeCommand, delta int64) (model.Account, error) {
	if cmd.Amount <= 0 {
		return model.Account{}, NewServiceError(constants.ErrCodeAmountNotPositive, ErrAmountNotPositive)
	}

	var updated model.Account

	err := s.txManager.WithTx(ctx, func(ctx context.Context) error {
		acc, err := s.accountRepo.FindByIDForUpdate(ctx, cmd.AccountID)
		if err != nil {
			if errors.Is(err, repository.ErrAccountNotFound) {
				return NewServiceError(constants.ErrCodeAccountNotFound, err)
			}
			return NewServiceError(constants.ErrCodeOperationFailed, err)
		}

		if acc.UserID != principal.UserID {
			return NewServiceError(constants.ErrCodeForbidden, ErrNotOwner)
		}

		newAmount := acc.Amount + delta
		if newAmount < 0 {
			message := fmt.Sprintf(constants.ErrMsgCannotWithdraw, cmd.Amount, acc.Currency)
			return NewServiceErrorWithMessage(constants.ErrCodeInsufficientFunds, message, ErrInsufficientFunds)
		}

		if err := s.accountRepo.UpdateAmount(ctx, acc.ID, newAmount); err != nil {
			s.log.Error("Failed to update account amount",
				zap.Int64("account_id", acc.ID), zap.Error(err))
			return NewServiceError(constants.ErrCodeOperationFailed, err)
		}

		acc.Amount = newAmount
		updated = acc
		return nil
	})
	if err != nil {
		return model.Account{}, err
	}

	return updated, nil
}
