package payment

import (
	"context"
	"fmt"

	"library-desk/internal/core/domain"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// StubGateway approves every charge. It stands in for a card processor in demos and dev.
type StubGateway struct {
	log *zap.Logger
}

// NewStubGateway creates a new stub payment gateway
func NewStubGateway(log *zap.Logger) *StubGateway {
	return &StubGateway{log: log}
}

// Charge approves the charge and returns a fresh transaction id
func (g *StubGateway) Charge(ctx context.Context, amount float64, card string) (*domain.ChargeResult, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("invalid amount %.2f", amount)
	}

	txnID := "TXN-" + uuid.New().String()
	g.log.Info("💳 Charged card",
		zap.String("card", MaskCard(card)),
		zap.Float64("amount", amount),
		zap.String("txn", txnID),
	)

	return &domain.ChargeResult{
		OK:            true,
		TransactionID: txnID,
	}, nil
}

// MaskCard hides all but the last four characters of a card number
func MaskCard(card string) string {
	if len(card) <= 4 {
		return "****"
	}
	return "****" + card[len(card)-4:]
}
