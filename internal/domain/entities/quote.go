package entities

import (
	"errors"
	"time"
)

// QuoteStatus represents the negotiation lifecycle of a quote.
type QuoteStatus string

const (
	QuoteStatusPending   QuoteStatus = "pending"
	QuoteStatusViewed    QuoteStatus = "viewed"
	QuoteStatusAccepted  QuoteStatus = "accepted"
	QuoteStatusRejected  QuoteStatus = "rejected"
	QuoteStatusExpired   QuoteStatus = "expired"
	QuoteStatusAbandoned QuoteStatus = "abandoned"
)

// Quote transition names.
const (
	TransitionQuoteView     = "view"
	TransitionQuoteAccept   = "accept"
	TransitionQuoteReject   = "reject"
	TransitionQuoteWithdraw = "withdraw"
	TransitionQuoteExpire   = "expire"
	TransitionQuoteAmend    = "update_amount"
)

const quoteResource = "quote"

var ErrInvalidQuoteAmount = errors.New("quote amount must be a positive integer not above the maximum amount")

// Quote is a priced offer submitted by an artisan against an open project.
//
// Labor and materials costs are informational only; Amount is authoritative.
type Quote struct {
	ID                     string
	ProjectID              string
	ArtisanID              string
	Amount                 int64
	Urgent                 bool
	UrgentSurchargePercent int64
	LaborCost              *int64
	MaterialsCost          *int64
	Message                string
	Status                 QuoteStatus
	RejectionReason        string
	Version                int64
	CreatedAt              time.Time
	UpdatedAt              time.Time
}

// IsLive reports whether the quote can still be acted upon.
func (q Quote) IsLive() bool {
	return q.Status == QuoteStatusPending || q.Status == QuoteStatusViewed
}

func (q *Quote) invalid(transition string) error {
	return newInvalidTransition(quoteResource, transition, string(q.Status))
}

func (q *Quote) move(transition string, to QuoteStatus, at time.Time) error {
	if !q.IsLive() {
		return q.invalid(transition)
	}
	q.Status = to
	q.UpdatedAt = at
	return nil
}

// MarkViewed records that the client opened the quote.
func (q *Quote) MarkViewed(at time.Time) error {
	if q.Status != QuoteStatusPending {
		return q.invalid(TransitionQuoteView)
	}
	q.Status = QuoteStatusViewed
	q.UpdatedAt = at
	return nil
}

func (q *Quote) Accept(at time.Time) error {
	return q.move(TransitionQuoteAccept, QuoteStatusAccepted, at)
}

// Reject closes the quote. The reason is optional.
func (q *Quote) Reject(reason string, at time.Time) error {
	if err := q.move(TransitionQuoteReject, QuoteStatusRejected, at); err != nil {
		return err
	}
	q.RejectionReason = reason
	return nil
}

// Withdraw is the artisan abandoning their own quote.
func (q *Quote) Withdraw(at time.Time) error {
	return q.move(TransitionQuoteWithdraw, QuoteStatusAbandoned, at)
}

func (q *Quote) Expire(at time.Time) error {
	return q.move(TransitionQuoteExpire, QuoteStatusExpired, at)
}

// UpdateAmount renegotiates the price. Accepted quotes are immutable.
func (q *Quote) UpdateAmount(amount int64, at time.Time) error {
	if amount <= 0 || amount > MaxAmount {
		return ErrInvalidQuoteAmount
	}
	if !q.IsLive() {
		return q.invalid(TransitionQuoteAmend)
	}
	q.Amount = amount
	q.UpdatedAt = at
	return nil
}
