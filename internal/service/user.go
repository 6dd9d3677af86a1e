package service

import (
	"context"
	"errors"

	"simplebanking/internal/auth"
	"simplebanking/internal/config"
	"simplebanking/internal/constants"
	"simplebanking/internal/model"
	"simplebanking/internal/repository"

	"go.uber.org/zap"
)

// UserService provisions users and serves the user-facing read endpoints.
// A new user gets one account per configured currency, each seeded with the
// configured initial balance; accounts are never created any other way.
type UserService interface {
	CreateUser(ctx context.Context, cmd CreateUserCommand) (model.User, error)
	ListUsers() ([]model.User, error)
	GetProfile(principal auth.Principal) (model.User, error)
}

type userService struct {
	txManager      repository.TxManager
	userRepo       repository.UserRepository
	currencies     []model.Currency
	initialBalance int64
	log            *zap.Logger
}

func NewUserService(txManager repository.TxManager, userRepo repository.UserRepository, cfg *config.Config, log *zap.Logger) UserService {
	return &userService{
		txManager:      txManager,
		userRepo:       userRepo,
		currencies:     cfg.Bank.Currencies,
		initialBalance: cfg.Bank.InitialBalance,
		log:            log,
	}
}

func (s *userService) CreateUser(ctx context.Context, cmd CreateUserCommand) (model.User, error) {
	hash, err := auth.HashPassword(cmd.Password)
	if err != nil {
		return model.User{}, NewServiceError(constants.ErrCodeOperationFailed, err)
	}

	user := model.User{
		Username: cmd.Username,
		Password: hash,
		Accounts: make([]model.Account, 0, len(s.currencies)),
	}
	for _, currency := range s.currencies {
		user.Accounts = append(user.Accounts, model.Account{
			Currency: currency,
			Amount:   s.initialBalance,
		})
	}

	err = s.txManager.WithTx(ctx, func(ctx context.Context) error {
		if err := s.userRepo.Create(ctx, &user); err != nil {
			if errors.Is(err, repository.ErrUserExists) {
				return NewServiceError(constants.ErrCodeUserExisted, err)
			}
			s.log.Error("Failed to create user", zap.Error(err))
			return NewServiceError(constants.ErrCodeOperationFailed, err)
		}
		return nil
	})
	if err != nil {
		return model.User{}, err
	}

	total, err := s.userRepo.Count()
	if err != nil {
		s.log.Warn("Failed to count users after creation", zap.Error(err))
	}

	s.log.Info("User created",
		zap.Int64("user_id", user.ID),
		zap.String("username", user.Username),
		zap.Int("accounts", len(user.Accounts)),
		zap.Int64("total_users", total),
	)

	return user, nil
}

func (s *userService) ListUsers() ([]model.User, error) {
	users, err := s.userRepo.FindAll()
	if err != nil {
		return nil, NewServiceError(constants.ErrCodeOperationFailed, err)
	}
	return users, nil
}

func (s *userService) GetProfile(principal auth.Principal) (model.User, error) {
	user, err := s.userRepo.FindByID(principal.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return model.User{}, NewServiceError(constants.ErrCodeUserNotFound, err)
		}
		return model.User{}, NewServiceError(constants.ErrCodeOperationFailed, err)
	}
	return user, nil
}
