package entities

import (
	"fmt"
	"time"
)

// ProjectStatus is the top-level lifecycle that quote and escrow state are
// projected onto.
type ProjectStatus string

const (
	ProjectStatusDraft               ProjectStatus = "draft"
	ProjectStatusOpen                ProjectStatus = "open"
	ProjectStatusQuoteReceived       ProjectStatus = "quote_received"
	ProjectStatusQuoteAccepted       ProjectStatus = "quote_accepted"
	ProjectStatusPaymentPending      ProjectStatus = "payment_pending"
	ProjectStatusInProgress          ProjectStatus = "in_progress"
	ProjectStatusCompletionRequested ProjectStatus = "completion_requested"
	ProjectStatusDisputed            ProjectStatus = "disputed"
	ProjectStatusCompleted           ProjectStatus = "completed"
	ProjectStatusExpired             ProjectStatus = "expired"
	ProjectStatusCancelled           ProjectStatus = "cancelled"
)

// Project transition names.
const (
	TransitionProjectPublish           = "publish"
	TransitionProjectReceiveQuote      = "receive_quote"
	TransitionProjectAcceptQuote       = "accept_quote"
	TransitionProjectPaymentPending    = "payment_pending"
	TransitionProjectStart             = "start_work"
	TransitionProjectRequestCompletion = "request_completion"
	TransitionProjectConfirmCompletion = "confirm_completion"
	TransitionProjectDispute           = "raise_dispute"
	TransitionProjectResolveDispute    = "resolve_dispute"
	TransitionProjectExpire            = "expire"
	TransitionProjectCancel            = "cancel"
	TransitionProjectAdminCancel       = "admin_cancel"
)

// DefaultQuoteWindow is how long a published project accepts quotes.
const DefaultQuoteWindow = 6 * 24 * time.Hour

const projectResource = "project"

// Project is posted by a client and never physically deleted; it ends in
// completed, expired or cancelled.
type Project struct {
	ID                    string
	ClientID              string
	Title                 string
	Description           string
	Category              string
	Urgent                bool
	Status                ProjectStatus
	AcceptedQuoteID       string
	ArtisanID             string
	ArtisanVerified       bool
	CompletionRequestedBy string
	// DegradedReason is set while the project sits in payment_pending and
	// explains why (no escrow yet, gateway failure).
	DegradedReason string
	Dispute        *Dispute
	Version        int64
	ExpiresAt      time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (p Project) IsTerminal() bool {
	switch p.Status {
	case ProjectStatusCompleted, ProjectStatusExpired, ProjectStatusCancelled:
		return true
	}
	return false
}

// AcceptsQuotes reports whether artisans may still respond.
func (p Project) AcceptsQuotes() bool {
	return p.Status == ProjectStatusOpen || p.Status == ProjectStatusQuoteReceived
}

// IsExpiredAt reports whether the quote window has elapsed without acceptance.
func (p Project) IsExpiredAt(now time.Time) bool {
	return p.AcceptsQuotes() && !p.ExpiresAt.IsZero() && now.After(p.ExpiresAt)
}

func (p Project) IsParty(userID string) bool {
	return userID != "" && (userID == p.ClientID || userID == p.ArtisanID)
}

func (p Project) invalid(transition string) error {
	return newInvalidTransition(projectResource, transition, string(p.Status))
}

func (p *Project) move(to ProjectStatus, at time.Time) {
	p.Status = to
	p.UpdatedAt = at
}

func (p *Project) Publish(window time.Duration, at time.Time) error {
	if p.Status != ProjectStatusDraft {
		return p.invalid(TransitionProjectPublish)
	}
	if window <= 0 {
		window = DefaultQuoteWindow
	}
	p.ExpiresAt = at.Add(window)
	p.move(ProjectStatusOpen, at)
	return nil
}

// RecordQuote notes that a quote arrived; the first one moves an open
// project to quote_received.
func (p *Project) RecordQuote(at time.Time) bool {
	if p.Status != ProjectStatusOpen {
		return false
	}
	p.move(ProjectStatusQuoteReceived, at)
	return true
}

// CheckAcceptsQuotes returns an InvalidTransitionError when the project no
// longer takes new quotes.
func (p Project) CheckAcceptsQuotes() error {
	if !p.AcceptsQuotes() {
		return p.invalid(TransitionProjectReceiveQuote)
	}
	return nil
}

func (p *Project) AcceptQuote(q Quote, artisanVerified bool, at time.Time) error {
	if !p.AcceptsQuotes() {
		return p.invalid(TransitionProjectAcceptQuote)
	}
	p.AcceptedQuoteID = q.ID
	p.ArtisanID = q.ArtisanID
	p.ArtisanVerified = artisanVerified
	p.move(ProjectStatusQuoteAccepted, at)
	return nil
}

// MarkPaymentPending records the degraded branch: a quote is accepted but no
// funds are held yet. It is reversible through StartWork.
func (p *Project) MarkPaymentPending(reason string, at time.Time) error {
	if p.Status != ProjectStatusQuoteAccepted && p.Status != ProjectStatusPaymentPending {
		return p.invalid(TransitionProjectPaymentPending)
	}
	p.DegradedReason = reason
	p.move(ProjectStatusPaymentPending, at)
	return nil
}

// StartWork follows a confirmed deposit.
func (p *Project) StartWork(at time.Time) error {
	if p.Status != ProjectStatusQuoteAccepted && p.Status != ProjectStatusPaymentPending {
		return p.invalid(TransitionProjectStart)
	}
	p.DegradedReason = ""
	p.move(ProjectStatusInProgress, at)
	return nil
}

func (p *Project) RequestCompletion(actorID string, at time.Time) error {
	if !p.IsParty(actorID) {
		return ErrForbiddenActor
	}
	if p.Status != ProjectStatusInProgress {
		return p.invalid(TransitionProjectRequestCompletion)
	}
	p.CompletionRequestedBy = actorID
	p.move(ProjectStatusCompletionRequested, at)
	return nil
}

// ConfirmCompletion is the client's sign-off; the caller releases the
// escrow in the same unit of work.
func (p *Project) ConfirmCompletion(actorID string, at time.Time) error {
	if actorID != p.ClientID {
		return ErrForbiddenActor
	}
	if p.Status != ProjectStatusCompletionRequested {
		return p.invalid(TransitionProjectConfirmCompletion)
	}
	p.move(ProjectStatusCompleted, at)
	return nil
}

func (p *Project) RaiseDispute(actorID, reason string, at time.Time) error {
	if !p.IsParty(actorID) {
		return ErrForbiddenActor
	}
	if p.Status != ProjectStatusInProgress && p.Status != ProjectStatusCompletionRequested {
		return p.invalid(TransitionProjectDispute)
	}
	p.Dispute = &Dispute{RaisedBy: actorID, Reason: reason, RaisedAt: at}
	p.move(ProjectStatusDisputed, at)
	return nil
}

// ResolveDispute always completes the project; a dispute never reopens work.
func (p *Project) ResolveDispute(adminID string, at time.Time) error {
	if p.Status != ProjectStatusDisputed {
		return p.invalid(TransitionProjectResolveDispute)
	}
	if p.Dispute == nil {
		p.Dispute = &Dispute{RaisedAt: at}
	}
	p.Dispute.ResolvedBy = adminID
	p.move(ProjectStatusCompleted, at)
	return nil
}

func (p *Project) Expire(at time.Time) error {
	if !p.AcceptsQuotes() {
		return p.invalid(TransitionProjectExpire)
	}
	p.move(ProjectStatusExpired, at)
	return nil
}

// Cancel is the client's cancellation, permitted only before any quote is
// accepted. Escrow-side conditions are checked by the caller.
func (p *Project) Cancel(actorID string, at time.Time) error {
	if actorID != p.ClientID {
		return ErrForbiddenActor
	}
	switch p.Status {
	case ProjectStatusDraft, ProjectStatusOpen, ProjectStatusQuoteReceived:
	default:
		if p.IsTerminal() {
			return p.invalid(TransitionProjectCancel)
		}
		return &PolicyError{
			Rule:   "cancellation",
			Detail: fmt.Sprintf("project in status %s has an accepted quote and cannot be cancelled by the client", p.Status),
		}
	}
	p.move(ProjectStatusCancelled, at)
	return nil
}

// CancelByAdmin closes a project whose escrow is being refunded outside a dispute.
func (p *Project) CancelByAdmin(at time.Time) error {
	switch p.Status {
	case ProjectStatusQuoteAccepted, ProjectStatusPaymentPending, ProjectStatusInProgress, ProjectStatusCompletionRequested:
	default:
		return p.invalid(TransitionProjectAdminCancel)
	}
	p.DegradedReason = ""
	p.move(ProjectStatusCancelled, at)
	return nil
}
