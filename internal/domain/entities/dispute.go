package entities

import (
	"errors"
	"fmt"
	"time"
)

// ResolutionMode is the administrator's choice when closing a dispute.
type ResolutionMode string

const (
	ResolutionRefundClient ResolutionMode = "refund_client"
	ResolutionPayArtisan   ResolutionMode = "pay_artisan"
	ResolutionSplit        ResolutionMode = "split"
)

var (
	ErrInvalidResolutionMode = errors.New("invalid dispute resolution mode")
	ErrInvalidClientShare    = errors.New("client share percent must be between 0 and 100")
)

func (m ResolutionMode) Valid() bool {
	switch m {
	case ResolutionRefundClient, ResolutionPayArtisan, ResolutionSplit:
		return true
	}
	return false
}

// Dispute describes an open or resolved dispute on a project.
type Dispute struct {
	RaisedBy   string    `json:"raised_by"`
	Reason     string    `json:"reason"`
	RaisedAt   time.Time `json:"raised_at"`
	ResolvedBy string    `json:"resolved_by,omitempty"`
}

// DisputeSettlement is the final fund split of a disputed escrow.
//
// ClientRefund + ArtisanPayment + PlatformRetained always equals the escrow
// total. ArtisanPayment includes any advance released before the dispute.
type DisputeSettlement struct {
	Mode               ResolutionMode `json:"mode"`
	ClientSharePercent int64          `json:"client_share_percent"`
	ClientRefund       int64          `json:"client_refund"`
	ArtisanPayment     int64          `json:"artisan_payment"`
	PlatformRetained   int64          `json:"platform_retained"`
	AdvanceAlreadyPaid int64          `json:"advance_already_paid"`
	ResolvedBy         string         `json:"resolved_by"`
	ResolvedAt         time.Time      `json:"resolved_at"`
}

// OutstandingArtisanPayment is what still has to move to the artisan.
func (s DisputeSettlement) OutstandingArtisanPayment() int64 {
	return s.ArtisanPayment - s.AdvanceAlreadyPaid
}

// ComputeSettlement applies a resolution mode to an escrow's breakdown.
//
// The artisan's share is never negative and never below an advance that has
// already been released; the client's refund shrinks to keep the split whole.
func ComputeSettlement(fees FeeBreakdown, advancePaid int64, mode ResolutionMode, clientSharePercent int64) (DisputeSettlement, error) {
	if !mode.Valid() {
		return DisputeSettlement{}, ErrInvalidResolutionMode
	}
	total := fees.TotalAmount
	s := DisputeSettlement{Mode: mode, AdvanceAlreadyPaid: advancePaid}

	switch mode {
	case ResolutionRefundClient:
		s.ClientSharePercent = 100
		s.ClientRefund = total
		s.ArtisanPayment = 0
	case ResolutionPayArtisan:
		s.ClientSharePercent = 0
		s.ClientRefund = 0
		s.ArtisanPayment = fees.ArtisanPayout
	case ResolutionSplit:
		if clientSharePercent < 0 || clientSharePercent > 100 {
			return DisputeSettlement{}, ErrInvalidClientShare
		}
		s.ClientSharePercent = clientSharePercent
		s.ClientRefund = percentOf(total, clientSharePercent)
		s.ArtisanPayment = total - s.ClientRefund - fees.CommissionAmount
	}

	if s.ArtisanPayment < 0 {
		s.ArtisanPayment = 0
	}
	if s.ArtisanPayment < advancePaid {
		s.ArtisanPayment = advancePaid
	}
	if s.ClientRefund > total-s.ArtisanPayment {
		s.ClientRefund = total - s.ArtisanPayment
	}
	s.PlatformRetained = total - s.ClientRefund - s.ArtisanPayment

	if err := s.Validate(total); err != nil {
		return DisputeSettlement{}, err
	}
	return s, nil
}

// Validate checks that the split is non-negative and accounts for the whole total.
func (s DisputeSettlement) Validate(total int64) error {
	if s.ClientRefund < 0 || s.ArtisanPayment < 0 || s.PlatformRetained < 0 {
		return &InvariantViolationError{
			Invariant: "settlement_non_negative",
			Detail:    fmt.Sprintf("refund %d payment %d retained %d", s.ClientRefund, s.ArtisanPayment, s.PlatformRetained),
		}
	}
	if s.ClientRefund+s.ArtisanPayment+s.PlatformRetained != total {
		return &InvariantViolationError{
			Invariant: "settlement_sum",
			Detail:    fmt.Sprintf("refund %d + payment %d + retained %d != total %d", s.ClientRefund, s.ArtisanPayment, s.PlatformRetained, total),
		}
	}
	if s.ArtisanPayment < s.AdvanceAlreadyPaid {
		return &InvariantViolationError{
			Invariant: "settlement_advance",
			Detail:    fmt.Sprintf("payment %d below advance already paid %d", s.ArtisanPayment, s.AdvanceAlreadyPaid),
		}
	}
	return nil
}
