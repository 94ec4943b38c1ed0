package usecase

import "errors"

var (
	ErrProjectNotFound = errors.New("project not found")
	ErrQuoteNotFound   = errors.New("quote not found")
	ErrEscrowNotFound  = errors.New("escrow not found")

	ErrInvalidProjectID     = errors.New("invalid project_id")
	ErrInvalidQuoteID       = errors.New("invalid quote_id")
	ErrInvalidEscrowID      = errors.New("invalid escrow_id")
	ErrInvalidActorID       = errors.New("invalid actor id")
	ErrInvalidProjectTitle  = errors.New("project title is required")
	ErrInvalidPaymentMethod = errors.New("payment method is required")
	ErrInvalidDisputeReason = errors.New("dispute reason is required")

	// ErrQuoteAlreadyAccepted is returned when a different quote of the same
	// project has already been accepted.
	ErrQuoteAlreadyAccepted = errors.New("another quote has already been accepted for this project")
	// ErrDuplicateQuote is returned when an artisan already has a live quote
	// on the project.
	ErrDuplicateQuote = errors.New("artisan already has an active quote on this project")
	// ErrEscrowMissing is returned when a transition needs held funds but the
	// project has no escrow.
	ErrEscrowMissing = errors.New("project has no escrow")
	// ErrProjectBusy is returned when the project lock could not be taken in
	// time.
	ErrProjectBusy = errors.New("project is busy, retry later")
)
