package mocks

import (
	"context"

	"simplebanking/internal/auth"
	"simplebanking/internal/model"
	"simplebanking/internal/service"

	"github.com/stretchr/testify/mock"
)

type UserService struct {
	mock.Mock
}

func (m *UserService) CreateUser(ctx context.Context, cmd service.CreateUserCommand) (model.User, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *UserService) ListUsers() ([]model.User, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

func (m *UserService) GetProfile(principal auth.Principal) (model.User, error) {
	args := m.Called(principal)
	return args.Get(0).(model.User), args.Error(1)
}
