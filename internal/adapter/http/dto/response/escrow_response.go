package response

import (
	"time"

	"artisan_escrow/internal/domain/entities"
)

type EscrowResponse struct {
	ID               string                      `json:"id"`
	ProjectID        string                      `json:"project_id"`
	QuoteID          string                      `json:"quote_id"`
	ClientID         string                      `json:"client_id"`
	ArtisanID        string                      `json:"artisan_id"`
	Status           string                      `json:"status"`
	ProviderVerified bool                        `json:"provider_verified"`
	Urgent           bool                        `json:"urgent"`
	Fees             entities.FeeBreakdown       `json:"fees"`
	Deposit          *entities.DepositInfo       `json:"deposit,omitempty"`
	AdvancePaid      int64                       `json:"advance_paid"`
	FinalRelease     int64                       `json:"final_release,omitempty"`
	RefundAmount     int64                       `json:"refund_amount,omitempty"`
	FrozenReason     string                      `json:"frozen_reason,omitempty"`
	Settlement       *entities.DisputeSettlement `json:"settlement,omitempty"`
	CreatedAt        time.Time                   `json:"created_at"`
	UpdatedAt        time.Time                   `json:"updated_at"`
}

func FromEscrow(e entities.Escrow) EscrowResponse {
	out := EscrowResponse{
		ID:               e.ID,
		ProjectID:        e.ProjectID,
		QuoteID:          e.QuoteID,
		ClientID:         e.ClientID,
		ArtisanID:        e.ArtisanID,
		Status:           string(e.Status()),
		ProviderVerified: e.ProviderVerified,
		Urgent:           e.Urgent,
		Fees:             e.Fees,
		Deposit:          e.Deposit(),
		AdvancePaid:      e.AdvancePaid(),
		Settlement:       e.Settlement(),
		CreatedAt:        e.CreatedAt,
		UpdatedAt:        e.UpdatedAt,
	}
	switch s := e.State.(type) {
	case entities.EscrowReleased:
		out.FinalRelease = s.FinalRelease
	case entities.EscrowRefunded:
		out.RefundAmount = s.RefundAmount
	case entities.EscrowFrozen:
		out.FrozenReason = s.Reason
	}
	return out
}

type LedgerEntryResponse struct {
	ID        string    `json:"id"`
	Kind      string    `json:"kind"`
	Amount    int64     `json:"amount"`
	Reference string    `json:"reference,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func FromLedger(entries []entities.LedgerEntry) []LedgerEntryResponse {
	out := make([]LedgerEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, LedgerEntryResponse{
			ID:        e.ID,
			Kind:      string(e.Kind),
			Amount:    e.Amount,
			Reference: e.Reference,
			CreatedAt: e.CreatedAt,
		})
	}
	return out
}
