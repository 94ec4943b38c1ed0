package entities

import (
	"errors"
	"fmt"
)

// Default fee policy values.
const (
	DefaultCommissionPercent      int64 = 10
	DefaultTVAPercent             int64 = 18
	DefaultUrgentSurchargePercent int64 = 20
	DefaultAdvancePercent         int64 = 50
)

// MaxAmount bounds any base amount so that a 100% surcharge followed by a
// percentage of the total stays within int64.
const MaxAmount int64 = 1_000_000_000_000_000

var (
	ErrInvalidFeeAmount  = errors.New("quote amount must be a positive integer not above the maximum amount")
	ErrInvalidFeePercent = errors.New("fee percentages must be between 0 and 100")
)

// FeePolicy holds the platform-wide rates applied when an escrow is created.
type FeePolicy struct {
	CommissionPercent      int64
	TVAPercent             int64
	UrgentSurchargePercent int64
	AdvancePercent         int64
}

// Repricing returns the input that recomputes b for a new base amount with
// the rates b was originally created with.
func (b FeeBreakdown) Repricing(baseAmount int64, urgent, providerVerified bool, fallbackAdvancePercent int64) FeeInput {
	advance := b.AdvancePercent
	if advance == 0 {
		advance = fallbackAdvancePercent
	}
	return FeeInput{
		BaseAmount:             baseAmount,
		Urgent:                 urgent,
		UrgentSurchargePercent: b.UrgentSurchargePercent,
		CommissionPercent:      b.CommissionPercent,
		TVAPercent:             b.TVAPercent,
		ProviderVerified:       providerVerified,
		AdvancePercent:         advance,
	}
}

// DefaultFeePolicy returns the rates used when nothing is configured.
func DefaultFeePolicy() FeePolicy {
	return FeePolicy{
		CommissionPercent:      DefaultCommissionPercent,
		TVAPercent:             DefaultTVAPercent,
		UrgentSurchargePercent: DefaultUrgentSurchargePercent,
		AdvancePercent:         DefaultAdvancePercent,
	}
}

// Input builds a FeeInput for a base amount using this policy's rates.
func (p FeePolicy) Input(baseAmount int64, urgent, providerVerified bool) FeeInput {
	return FeeInput{
		BaseAmount:             baseAmount,
		Urgent:                 urgent,
		UrgentSurchargePercent: p.UrgentSurchargePercent,
		CommissionPercent:      p.CommissionPercent,
		TVAPercent:             p.TVAPercent,
		ProviderVerified:       providerVerified,
		AdvancePercent:         p.AdvancePercent,
	}
}

// FeeInput is everything the fee calculation depends on.
type FeeInput struct {
	BaseAmount             int64
	Urgent                 bool
	UrgentSurchargePercent int64
	CommissionPercent      int64
	TVAPercent             int64
	ProviderVerified       bool
	AdvancePercent         int64
}

// FeeBreakdown is the immutable cost split stored on an escrow.
//
// All amounts are in the smallest currency unit.
type FeeBreakdown struct {
	BaseAmount             int64 `json:"base_amount"`
	UrgentSurchargePercent int64 `json:"urgent_surcharge_percent"`
	UrgentSurcharge        int64 `json:"urgent_surcharge"`
	TotalAmount            int64 `json:"total_amount"`
	CommissionPercent      int64 `json:"commission_percent"`
	CommissionAmount       int64 `json:"commission_amount"`
	TVAPercent             int64 `json:"tva_percent"`
	TVAAmount              int64 `json:"tva_amount"`
	ArtisanPayout          int64 `json:"artisan_payout"`
	AdvancePercent         int64 `json:"advance_percent"`
	AdvanceAmount          int64 `json:"advance_amount"`
}

// CalculateFees turns a quoted amount into a full cost breakdown.
//
// Commission and TVA are both taken from the gross total, not from the payout.
func CalculateFees(in FeeInput) (FeeBreakdown, error) {
	if in.BaseAmount <= 0 || in.BaseAmount > MaxAmount {
		return FeeBreakdown{}, ErrInvalidFeeAmount
	}
	for _, pct := range []int64{in.CommissionPercent, in.TVAPercent, in.UrgentSurchargePercent, in.AdvancePercent} {
		if pct < 0 || pct > 100 {
			return FeeBreakdown{}, ErrInvalidFeePercent
		}
	}

	b := FeeBreakdown{
		BaseAmount:        in.BaseAmount,
		CommissionPercent: in.CommissionPercent,
		TVAPercent:        in.TVAPercent,
	}
	if in.Urgent {
		b.UrgentSurchargePercent = in.UrgentSurchargePercent
		b.UrgentSurcharge = percentOf(in.BaseAmount, in.UrgentSurchargePercent)
	}
	b.TotalAmount = b.BaseAmount + b.UrgentSurcharge
	b.CommissionAmount = percentOf(b.TotalAmount, in.CommissionPercent)
	b.TVAAmount = percentOf(b.TotalAmount, in.TVAPercent)
	b.ArtisanPayout = b.TotalAmount - b.CommissionAmount - b.TVAAmount
	if in.ProviderVerified {
		b.AdvancePercent = in.AdvancePercent
		b.AdvanceAmount = percentOf(b.ArtisanPayout, in.AdvancePercent)
	}

	if err := b.Validate(); err != nil {
		return FeeBreakdown{}, err
	}
	return b, nil
}

// Validate checks the breakdown's arithmetic. A failure is fatal for the
// operation that produced it.
func (b FeeBreakdown) Validate() error {
	if b.TotalAmount != b.BaseAmount+b.UrgentSurcharge {
		return &InvariantViolationError{
			Invariant: "total_amount",
			Detail:    fmt.Sprintf("base %d + surcharge %d != total %d", b.BaseAmount, b.UrgentSurcharge, b.TotalAmount),
		}
	}
	if b.ArtisanPayout+b.CommissionAmount+b.TVAAmount != b.TotalAmount {
		return &InvariantViolationError{
			Invariant: "payout_split",
			Detail: fmt.Sprintf("payout %d + commission %d + tva %d != total %d",
				b.ArtisanPayout, b.CommissionAmount, b.TVAAmount, b.TotalAmount),
		}
	}
	for name, v := range map[string]int64{
		"base_amount":       b.BaseAmount,
		"urgent_surcharge":  b.UrgentSurcharge,
		"commission_amount": b.CommissionAmount,
		"tva_amount":        b.TVAAmount,
		"artisan_payout":    b.ArtisanPayout,
		"advance_amount":    b.AdvanceAmount,
	} {
		if v < 0 {
			return &InvariantViolationError{Invariant: "non_negative", Detail: fmt.Sprintf("%s is %d", name, v)}
		}
	}
	if b.AdvanceAmount > b.ArtisanPayout {
		return &InvariantViolationError{
			Invariant: "advance_amount",
			Detail:    fmt.Sprintf("advance %d exceeds payout %d", b.AdvanceAmount, b.ArtisanPayout),
		}
	}
	return nil
}

// percentOf returns round(amount * pct / 100), rounding halves away from zero.
func percentOf(amount, pct int64) int64 {
	n := amount * pct
	if n >= 0 {
		return (n + 50) / 100
	}
	return (n - 50) / 100
}
