package services

// Late fee defaults
const (
	DefaultFreeDays  = 14
	DefaultDailyRate = 0.5
)

// LateFeePolicy charges DailyRate for every day past FreeDays
type LateFeePolicy struct {
	FreeDays  int
	DailyRate float64
}

// NewLateFeePolicy creates the standard 14 days free, $0.50/day policy
func NewLateFeePolicy() *LateFeePolicy {
	return &LateFeePolicy{
		FreeDays:  DefaultFreeDays,
		DailyRate: DefaultDailyRate,
	}
}

// Calculate returns the late fee for days
func (p *LateFeePolicy) Calculate(days int) float64 {
	if days <= p.FreeDays {
		return 0
	}
	return float64(days-p.FreeDays) * p.DailyRate
}

// FlatFeePolicy charges the same amount for every checkout
type FlatFeePolicy struct {
	Amount float64
}

// Calculate returns the flat amount regardless of days
func (p *FlatFeePolicy) Calculate(days int) float64 {
	if p.Amount < 0 {
		return 0
	}
	return p.Amount
}
