package domain

import "strings"

// Book represents a catalogue entry in the domain layer
type Book struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Author    string `json:"author"`
	Available bool   `json:"available"`
}

// MatchesTerm reports whether the lower-cased term is a substring of the title or author
func (b *Book) MatchesTerm(term string) bool {
	return strings.Contains(strings.ToLower(b.Title), term) ||
		strings.Contains(strings.ToLower(b.Author), term)
}

// Member represents a registered library member
type Member struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Email string  `json:"email"`
	Fees  float64 `json:"fees"`
}

// HasOutstandingFees returns true if the member has accumulated any fees
func (m *Member) HasOutstandingFees() bool {
	return m.Fees > 0
}

// ChargeResult is what a payment gateway reports for a single charge
type ChargeResult struct {
	OK            bool   `json:"ok"`
	TransactionID string `json:"txn,omitempty"`
}

// CheckoutResult is returned by a successful checkout
type CheckoutResult struct {
	Book          *Book   `json:"book"`
	Member        *Member `json:"member"`
	Fee           float64 `json:"fee"`
	TransactionID string  `json:"txn,omitempty"`
}
