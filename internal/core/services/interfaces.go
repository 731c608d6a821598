package services

import (
	"context"

	"library-desk/internal/core/domain"
)

// PaymentPort charges a member's card
type PaymentPort interface {
	Charge(ctx context.Context, amount float64, card string) (*domain.ChargeResult, error)
}

// NotifierPort delivers a message to a member. Delivery is best effort.
type NotifierPort interface {
	Send(ctx context.Context, to, subject, body string) error
}

// FeePolicy computes the fee for borrowing a book for a number of days
type FeePolicy interface {
	Calculate(days int) float64
}

// Checkout defaults
const (
	DefaultCheckoutDays = 21
	DefaultCard         = "4111-1111"
)

// CheckoutInput for checking a book out. A nil Days means DefaultCheckoutDays.
type CheckoutInput struct {
	BookID   string
	MemberID string
	Days     *int
	Card     string
}

// ListMembersInput represents list members input
type ListMembersInput struct {
	Offset int
	Limit  int
}

// ListMembersOutput represents list members output
type ListMembersOutput struct {
	Members []*domain.Member `json:"members"`
	Total   int64            `json:"total"`
}
