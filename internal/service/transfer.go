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

var ErrCurrencyMismatch = errors.New("CURRENCY_MISMATCH")

// TransferService moves money between two currency-matched accounts. The
// debit and the credit are applied in one transaction; a failure at any step
// rolls the whole thing back.
type TransferService interface {
	Transfer(ctx context.Context, principal auth.Principal, cmd TransferCommand) error
}

type transferService struct {
	txManager   repository.TxManager
	accountRepo repository.AccountRepository
	userRepo    repository.UserRepository
	log         *zap.Logger
}

func NewTransferService(txManager repository.TxManager, accountRepo repository.AccountRepository, userRepo repository.UserRepository, log *zap.Logger) TransferService {
	return &transferService{txManager: txManager, accountRepo: accountRepo, userRepo: userRepo, log: log}
}

func (s *transferService) Transfer(ctx context.Context, principal auth.Principal, cmd TransferCommand) error {
	if cmd.Amount <= 0 {
		return NewServiceError(constants.ErrCodeAmountNotPositive, ErrAmountNotPositive)
	}

	err := s.txManager.WithTx(ctx, func(ctx context.Context) error {
		from, to, err := s.lockAccounts(ctx, cmd.FromAccountID, cmd.ToAccountID)
		if err != nil {
			return err
		}

		// The source lookup is scoped to the caller: someone else's account
		// is indistinguishable from a missing one.
		if from.UserID != principal.UserID {
			return NewServiceError(constants.ErrCodeAccountNotFound, repository.ErrAccountNotFound)
		}

		if _, err := s.userRepo.FindByID(cmd.ToUserID); err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return NewServiceError(constants.ErrCodeUserNotFound, err)
			}
			return NewServiceError(constants.ErrCodeOperationFailed, err)
		}

		if to.UserID != cmd.ToUserID {
			return NewServiceError(constants.ErrCodeAccountNotFound, repository.ErrAccountNotFound)
		}

		if from.Currency != to.Currency {
			return NewServiceError(constants.ErrCodeCurrencyMismatch, ErrCurrencyMismatch)
		}

		if from.Amount < cmd.Amount {
			message := fmt.Sprintf(constants.ErrMsgCannotWithdraw, cmd.Amount, from.Currency)
			return NewServiceErrorWithMessage(constants.ErrCodeInsufficientFunds, message, ErrInsufficientFunds)
		}

		if from.ID == to.ID {
			// Same account on both sides nets out to zero.
			return nil
		}

		if err := s.accountRepo.UpdateAmount(ctx, from.ID, from.Amount-cmd.Amount); err != nil {
			return NewServiceError(constants.ErrCodeOperationFailed, err)
		}
		if err := s.accountRepo.UpdateAmount(ctx, to.ID, to.Amount+cmd.Amount); err != nil {
			return NewServiceError(constants.ErrCodeOperationFailed, err)
		}

		return nil
	})
	if err != nil {
		return err
	}

	s.log.Info("Transfer applied",
		zap.Int64("from_account_id", cmd.FromAccountID),
		zap.Int64("to_account_id", cmd.ToAccountID),
		zap.Int64("amount", cmd.Amount),
	)

	return nil
}

// lockAccounts row-locks both accounts in ascending id order, so two
// opposite concurrent transfers cannot deadlock on each other.
func (s *transferService) lockAccounts(ctx context.Context, fromID, toID int64) (from, to model.Account, err error) {
	lock := func(id int64) (model.Account, error) {
		acc, err := s.accountRepo.FindByIDForUpdate(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrAccountNotFound) {
				return model.Account{}, NewServiceError(constants.ErrCodeAccountNotFound, err)
			}
			return model.Account{}, NewServiceError(constants.ErrCodeOperationFailed, err)
		}
		return acc, nil
	}

	if fromID == toID {
		from, err = lock(fromID)
		return from, from, err
	}

	if fromID < toID {
		if from, err = lock(fromID); err != nil {
			return from, to, err
		}
		to, err = lock(toID)
		return from, to, err
	}

	if to, err = lock(toID); err != nil {
		return from, to, err
	}
	from, err = lock(fromID)
	return from, to, err
}
