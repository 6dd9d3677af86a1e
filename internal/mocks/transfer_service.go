package mocks

import (
	"context"

	"simplebanking/internal/auth"
	"simplebanking/internal/service"

	"github.com/stretchr/testify/mock"
)

type TransferService struct {
	mock.Mock
}

func (m *TransferService) Transfer(ctx context.Context, principal auth.Principal, cmd service.TransferCommand) error {
	args := m.Called(ctx, principal, cmd)
	return args.Error(0)
}
