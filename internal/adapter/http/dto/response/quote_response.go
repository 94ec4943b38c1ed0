package response

import (
	"time"

	"artisan_escrow/internal/domain/entities"
	"artisan_escrow/internal/usecase"
)

type QuoteResponse struct {
	ID                     string    `json:"id"`
	ProjectID              string    `json:"project_id"`
	ArtisanID              string    `json:"artisan_id"`
	Amount                 int64     `json:"amount"`
	Urgent                 bool      `json:"urgent"`
	UrgentSurchargePercent int64     `json:"urgent_surcharge_percent,omitempty"`
	LaborCost              *int64    `json:"labor_cost,omitempty"`
	MaterialsCost          *int64    `json:"materials_cost,omitempty"`
	Message                string    `json:"message,omitempty"`
	Status                 string    `json:"status"`
	RejectionReason        string    `json:"rejection_reason,omitempty"`
	CreatedAt              time.Time `json:"created_at"`
	UpdatedAt              time.Time `json:"updated_at"`
}

func FromQuote(q entities.Quote) QuoteResponse {
	return QuoteResponse{
		ID:                     q.ID,
		ProjectID:              q.ProjectID,
		ArtisanID:              q.ArtisanID,
		Amount:                 q.Amount,
		Urgent:                 q.Urgent,
		UrgentSurchargePercent: q.UrgentSurchargePercent,
		LaborCost:              q.LaborCost,
		MaterialsCost:          q.MaterialsCost,
		Message:                q.Message,
		Status:                 string(q.Status),
		RejectionReason:        q.RejectionReason,
		CreatedAt:              q.CreatedAt,
		UpdatedAt:              q.UpdatedAt,
	}
}

func FromQuotes(qs []entities.Quote) []QuoteResponse {
	out := make([]QuoteResponse, 0, len(qs))
	for _, q := range qs {
		out = append(out, FromQuote(q))
	}
	return out
}

// AcceptanceResponse has a nil escrow when the project is waiting in
// payment_pending.
type AcceptanceResponse struct {
	Project ProjectResponse `json:"project"`
	Quote   QuoteResponse   `json:"quote"`
	Escrow  *EscrowResponse `json:"escrow"`
}

func FromAcceptance(a usecase.Acceptance) AcceptanceResponse {
	out := AcceptanceResponse{Project: FromProject(a.Project), Quote: FromQuote(a.Quote)}
	if a.Escrow != nil {
		e := FromEscrow(*a.Escrow)
		out.Escrow = &e
	}
	return out
}
