package services

import (
	"context"

	"library-desk/internal/core/domain"

	"github.com/stretchr/testify/mock"
)

type mockPayment struct {
	mock.Mock
}

func (m *mockPayment) Charge(ctx context.Context, amount float64, card string) (*domain.ChargeResult, error) {
	args := m.Called(ctx, amount, card)
	result, _ := args.Get(0).(*domain.ChargeResult)
	return result, args.Error(1)
}

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) Send(ctx context.Context, to, subject, body string) error {
	args := m.Called(ctx, to, subject, body)
	return args.Error(0)
}
