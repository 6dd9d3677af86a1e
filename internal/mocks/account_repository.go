package mocks

import (
	"context"

	"simplebanking/internal/model"

	"github.com/stretchr/testify/mock"
)

type AccountRepository struct {
	mock.Mock
}

func (m *AccountRepository) FindByID(id int64) (model.Account, error) {
	args := m.Called(id)
	return args.Get(0).(model.Account), args.Error(1)
}

func (m *AccountRepository) FindByIDForUpdate(ctx context.Context, id int64) (model.Account, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Account), args.Error(1)
}

func (m *AccountRepository) UpdateAmount(ctx context.Context, id int64, newAmount int64) error {
	args := m.Called(ctx, id, newAmount)
	return args.Error(0)
}
