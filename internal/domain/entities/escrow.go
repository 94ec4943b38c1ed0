package entities

import (
	"fmt"
	"time"
)

// EscrowStatus is the persisted discriminator of an escrow's state.
type EscrowStatus string

const (
	EscrowStatusPending     EscrowStatus = "pending"
	EscrowStatusHeld        EscrowStatus = "held"
	EscrowStatusAdvancePaid EscrowStatus = "advance_paid"
	EscrowStatusReleased    EscrowStatus = "released"
	EscrowStatusFrozen      EscrowStatus = "frozen"
	EscrowStatusRefunded    EscrowStatus = "refunded"
)

// Escrow transition names, used in errors, logs and metrics.
const (
	TransitionCreateEscrow   = "create"
	TransitionConfirmDeposit = "confirm_deposit"
	TransitionReleaseAdvance = "release_advance"
	TransitionReleaseFull    = "release_full_payment"
	TransitionFreeze         = "freeze"
	TransitionRefund         = "refund"
	TransitionReprice        = "update_for_new_amount"
	TransitionSettle         = "settle_dispute"
)

const escrowResource = "escrow"

// DepositInfo records the gateway confirmation of the client's deposit.
type DepositInfo struct {
	Reference   string    `json:"reference"`
	Method      string    `json:"method"`
	Fees        int64     `json:"fees"`
	ConfirmedAt time.Time `json:"confirmed_at"`
}

// EscrowState is implemented by one struct per escrow status. Each variant
// carries only the fields that are meaningful in that status.
type EscrowState interface {
	Status() EscrowStatus
	escrowState()
}

type EscrowPending struct{}

type EscrowHeld struct {
	Deposit DepositInfo
}

type EscrowAdvancePaid struct {
	Deposit       DepositInfo
	AdvancePaid   int64
	AdvancePaidAt time.Time
}

type EscrowFrozen struct {
	Deposit     DepositInfo
	AdvancePaid int64
	Reason      string
	FrozenAt    time.Time
}

// EscrowReleased is terminal. FinalRelease is what moved at release time,
// on top of any advance already paid.
type EscrowReleased struct {
	Deposit      DepositInfo
	AdvancePaid  int64
	FinalRelease int64
	Settlement   *DisputeSettlement
	ReleasedAt   time.Time
}

// EscrowRefunded is terminal. Deposit is nil when the escrow was refunded
// before any deposit was confirmed.
type EscrowRefunded struct {
	Deposit      *DepositInfo
	AdvancePaid  int64
	RefundAmount int64
	Settlement   *DisputeSettlement
	RefundedAt   time.Time
}

func (EscrowPending) Status() EscrowStatus     { return EscrowStatusPending }
func (EscrowHeld) Status() EscrowStatus        { return EscrowStatusHeld }
func (EscrowAdvancePaid) Status() EscrowStatus { return EscrowStatusAdvancePaid }
func (EscrowFrozen) Status() EscrowStatus      { return EscrowStatusFrozen }
func (EscrowReleased) Status() EscrowStatus    { return EscrowStatusReleased }
func (EscrowRefunded) Status() EscrowStatus    { return EscrowStatusRefunded }

func (EscrowPending) escrowState()     {}
func (EscrowHeld) escrowState()        {}
func (EscrowAdvancePaid) escrowState() {}
func (EscrowFrozen) escrowState()      {}
func (EscrowReleased) escrowState()    {}
func (EscrowRefunded) escrowState()    {}

// Escrow is the platform-held record of a project's funds. There is exactly
// one per project.
type Escrow struct {
	ID               string
	ProjectID        string
	QuoteID          string
	ClientID         string
	ArtisanID        string
	ProviderVerified bool
	Urgent           bool
	Fees             FeeBreakdown
	State            EscrowState
	Version          int64
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// NewEscrow returns a pending escrow for an accepted quote.
func NewEscrow(id string, q Quote, clientID string, providerVerified bool, fees FeeBreakdown, now time.Time) Escrow {
	return Escrow{
		ID:               id,
		ProjectID:        q.ProjectID,
		QuoteID:          q.ID,
		ClientID:         clientID,
		ArtisanID:        q.ArtisanID,
		ProviderVerified: providerVerified,
		Urgent:           q.Urgent,
		Fees:             fees,
		State:            EscrowPending{},
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}

func (e Escrow) Status() EscrowStatus {
	if e.State == nil {
		return EscrowStatusPending
	}
	return e.State.Status()
}

// AdvancePaid is the portion of the payout already released to the artisan.
func (e Escrow) AdvancePaid() int64 {
	switch s := e.State.(type) {
	case EscrowAdvancePaid:
		return s.AdvancePaid
	case EscrowFrozen:
		return s.AdvancePaid
	case EscrowReleased:
		return s.AdvancePaid
	case EscrowRefunded:
		return s.AdvancePaid
	}
	return 0
}

// Deposit returns the confirmed deposit, or nil while pending.
func (e Escrow) Deposit() *DepositInfo {
	switch s := e.State.(type) {
	case EscrowHeld:
		return &s.Deposit
	case EscrowAdvancePaid:
		return &s.Deposit
	case EscrowFrozen:
		return &s.Deposit
	case EscrowReleased:
		return &s.Deposit
	case EscrowRefunded:
		return s.Deposit
	}
	return nil
}

// Settlement returns the dispute split that closed the escrow, if any.
func (e Escrow) Settlement() *DisputeSettlement {
	switch s := e.State.(type) {
	case EscrowReleased:
		return s.Settlement
	case EscrowRefunded:
		return s.Settlement
	}
	return nil
}

// FundsHeld reports whether the client's deposit is currently held.
func (e Escrow) FundsHeld() bool {
	s := e.Status()
	return s == EscrowStatusHeld || s == EscrowStatusAdvancePaid
}

// IsTerminal reports whether no further transition can apply.
func (e Escrow) IsTerminal() bool {
	s := e.Status()
	return s == EscrowStatusReleased || s == EscrowStatusRefunded
}

func (e *Escrow) invalid(transition string) error {
	return newInvalidTransition(escrowResource, transition, string(e.Status()))
}

func (e *Escrow) set(state EscrowState, at time.Time) {
	e.State = state
	e.UpdatedAt = at
}

// ConfirmDeposit moves a pending escrow to held.
func (e *Escrow) ConfirmDeposit(dep DepositInfo, at time.Time) error {
	if e.Status() != EscrowStatusPending {
		return e.invalid(TransitionConfirmDeposit)
	}
	e.set(EscrowHeld{Deposit: dep}, at)
	return nil
}

// ReleaseAdvance pays the verified artisan's advance. It returns the amount released.
func (e *Escrow) ReleaseAdvance(at time.Time) (int64, error) {
	held, ok := e.State.(EscrowHeld)
	if !ok || e.Fees.AdvanceAmount <= 0 {
		return 0, e.invalid(TransitionReleaseAdvance)
	}
	e.set(EscrowAdvancePaid{
		Deposit:       held.Deposit,
		AdvancePaid:   e.Fees.AdvanceAmount,
		AdvancePaidAt: at,
	}, at)
	return e.Fees.AdvanceAmount, nil
}

// ReleaseFull releases what remains of the artisan payout and returns it.
func (e *Escrow) ReleaseFull(at time.Time) (int64, error) {
	var dep DepositInfo
	switch s := e.State.(type) {
	case EscrowHeld:
		dep = s.Deposit
	case EscrowAdvancePaid:
		dep = s.Deposit
	default:
		return 0, e.invalid(TransitionReleaseFull)
	}
	advance := e.AdvancePaid()
	remaining := e.Fees.ArtisanPayout - advance
	e.set(EscrowReleased{
		Deposit:      dep,
		AdvancePaid:  advance,
		FinalRelease: remaining,
		ReleasedAt:   at,
	}, at)
	return remaining, nil
}

// Freeze blocks further releases until a dispute is resolved.
func (e *Escrow) Freeze(reason string, at time.Time) error {
	var dep DepositInfo
	switch s := e.State.(type) {
	case EscrowHeld:
		dep = s.Deposit
	case EscrowAdvancePaid:
		dep = s.Deposit
	default:
		return e.invalid(TransitionFreeze)
	}
	e.set(EscrowFrozen{
		Deposit:     dep,
		AdvancePaid: e.AdvancePaid(),
		Reason:      reason,
		FrozenAt:    at,
	}, at)
	return nil
}

// Refund returns the client's funds. Anything already advanced to the
// artisan cannot be returned and is excluded from the refund amount.
func (e *Escrow) Refund(at time.Time) (int64, error) {
	switch e.Status() {
	case EscrowStatusPending, EscrowStatusHeld, EscrowStatusFrozen:
	default:
		return 0, e.invalid(TransitionRefund)
	}
	advance := e.AdvancePaid()
	amount := e.Fees.TotalAmount - advance
	e.set(EscrowRefunded{
		Deposit:      e.Deposit(),
		AdvancePaid:  advance,
		RefundAmount: amount,
		RefundedAt:   at,
	}, at)
	return amount, nil
}

// Reprice overwrites the breakdown before any deposit has been made.
func (e *Escrow) Reprice(fees FeeBreakdown, at time.Time) error {
	if e.Status() != EscrowStatusPending {
		return e.invalid(TransitionReprice)
	}
	if err := fees.Validate(); err != nil {
		return err
	}
	e.Fees = fees
	e.UpdatedAt = at
	return nil
}

// Settle closes a frozen escrow with an administrator's dispute split.
func (e *Escrow) Settle(s DisputeSettlement, at time.Time) error {
	frozen, ok := e.State.(EscrowFrozen)
	if !ok {
		return e.invalid(TransitionSettle)
	}
	if err := s.Validate(e.Fees.TotalAmount); err != nil {
		return err
	}
	settlement := s
	if s.Mode == ResolutionRefundClient {
		dep := frozen.Deposit
		e.set(EscrowRefunded{
			Deposit:      &dep,
			AdvancePaid:  frozen.AdvancePaid,
			RefundAmount: s.ClientRefund,
			Settlement:   &settlement,
			RefundedAt:   at,
		}, at)
		return nil
	}
	e.set(EscrowReleased{
		Deposit:      frozen.Deposit,
		AdvancePaid:  frozen.AdvancePaid,
		FinalRelease: s.ArtisanPayment - frozen.AdvancePaid,
		Settlement:   &settlement,
		ReleasedAt:   at,
	}, at)
	return nil
}

// Validate checks the record-level invariants.
func (e Escrow) Validate() error {
	if err := e.Fees.Validate(); err != nil {
		return err
	}
	if paid := e.AdvancePaid(); paid > e.Fees.AdvanceAmount {
		return &InvariantViolationError{
			Invariant: "advance_paid",
			Detail:    fmt.Sprintf("advance paid %d exceeds advance amount %d", paid, e.Fees.AdvanceAmount),
		}
	}
	return nil
}
