package response

import (
	"time"

	"artisan_escrow/internal/domain/entities"
)

type ProjectResponse struct {
	ID                    string            `json:"id"`
	ClientID              string            `json:"client_id"`
	Title                 string            `json:"title"`
	Description           string            `json:"description,omitempty"`
	Category              string            `json:"category,omitempty"`
	Urgent                bool              `json:"urgent"`
	Status                string            `json:"status"`
	AcceptedQuoteID       string            `json:"accepted_quote_id,omitempty"`
	ArtisanID             string            `json:"artisan_id,omitempty"`
	CompletionRequestedBy string            `json:"completion_requested_by,omitempty"`
	DegradedReason        string            `json:"degraded_reason,omitempty"`
	Dispute               *entities.Dispute `json:"dispute,omitempty"`
	ExpiresAt             *time.Time        `json:"expires_at,omitempty"`
	CreatedAt             time.Time         `json:"created_at"`
	UpdatedAt             time.Time         `json:"updated_at"`
}

func FromProject(p entities.Project) ProjectResponse {
	out := ProjectResponse{
		ID:                    p.ID,
		ClientID:              p.ClientID,
		Title:                 p.Title,
		Description:           p.Description,
		Category:              p.Category,
		Urgent:                p.Urgent,
		Status:                string(p.Status),
		AcceptedQuoteID:       p.AcceptedQuoteID,
		ArtisanID:             p.ArtisanID,
		CompletionRequestedBy: p.CompletionRequestedBy,
		DegradedReason:        p.DegradedReason,
		Dispute:               p.Dispute,
		CreatedAt:             p.CreatedAt,
		UpdatedAt:             p.UpdatedAt,
	}
	if !p.ExpiresAt.IsZero() {
		expires := p.ExpiresAt
		out.ExpiresAt = &expires
	}
	return out
}

// ProjectEscrowResponse is returned by transitions that move project and
// escrow together.
type ProjectEscrowResponse struct {
	Project ProjectResponse `json:"project"`
	Escrow  EscrowResponse  `json:"escrow"`
}

func FromProjectEscrow(p entities.Project, e entities.Escrow) ProjectEscrowResponse {
	return ProjectEscrowResponse{Project: FromProject(p), Escrow: FromEscrow(e)}
}

type ExpireResponse struct {
	Expired int `json:"expired"`
}
