package entities

import "fmt"

const noEscrow EscrowStatus = ""

type projectShape struct {
	escrow        []EscrowStatus
	needsAccepted bool
	noAccepted    bool
}

// projectShapes maps each project status to the escrow statuses it may be
// paired with and whether an accepted quote must (or must not) exist.
var projectShapes = map[ProjectStatus]projectShape{
	ProjectStatusDraft:               {escrow: []EscrowStatus{noEscrow}, noAccepted: true},
	ProjectStatusOpen:                {escrow: []EscrowStatus{noEscrow}, noAccepted: true},
	ProjectStatusQuoteReceived:       {escrow: []EscrowStatus{noEscrow}, noAccepted: true},
	ProjectStatusExpired:             {escrow: []EscrowStatus{noEscrow}, noAccepted: true},
	ProjectStatusQuoteAccepted:       {escrow: []EscrowStatus{EscrowStatusPending}, needsAccepted: true},
	ProjectStatusPaymentPending:      {escrow: []EscrowStatus{noEscrow, EscrowStatusPending}, needsAccepted: true},
	ProjectStatusInProgress:          {escrow: []EscrowStatus{EscrowStatusHeld, EscrowStatusAdvancePaid}, needsAccepted: true},
	ProjectStatusCompletionRequested: {escrow: []EscrowStatus{EscrowStatusHeld, EscrowStatusAdvancePaid}, needsAccepted: true},
	ProjectStatusDisputed:            {escrow: []EscrowStatus{EscrowStatusFrozen}, needsAccepted: true},
	ProjectStatusCompleted:           {escrow: []EscrowStatus{EscrowStatusReleased, EscrowStatusRefunded}, needsAccepted: true},
	ProjectStatusCancelled:           {escrow: []EscrowStatus{noEscrow, EscrowStatusRefunded}},
}

// CheckConsistency verifies that a project, its escrow and its accepted quote
// form one of the combinations the lifecycle allows. Any other combination is
// a defect and is reported as an InvariantViolationError.
func CheckConsistency(p Project, escrow *Escrow, accepted *Quote) error {
	shape, ok := projectShapes[p.Status]
	if !ok {
		return &InvariantViolationError{Invariant: "project_status", Detail: fmt.Sprintf("unknown status %q", p.Status)}
	}

	escrowStatus := noEscrow
	if escrow != nil {
		escrowStatus = escrow.Status()
		if escrow.ProjectID != p.ID {
			return &InvariantViolationError{
				Invariant: "escrow_project",
				Detail:    fmt.Sprintf("escrow %s belongs to project %s, not %s", escrow.ID, escrow.ProjectID, p.ID),
			}
		}
		if err := escrow.Validate(); err != nil {
			return err
		}
	}
	if !containsEscrowStatus(shape.escrow, escrowStatus) {
		return &InvariantViolationError{
			Invariant: "project_escrow",
			Detail:    fmt.Sprintf("project status %s cannot pair with escrow status %q", p.Status, escrowStatus),
		}
	}

	if accepted != nil {
		if accepted.Status != QuoteStatusAccepted || accepted.ProjectID != p.ID {
			return &InvariantViolationError{
				Invariant: "accepted_quote",
				Detail:    fmt.Sprintf("quote %s (status %s) is not the accepted quote of project %s", accepted.ID, accepted.Status, p.ID),
			}
		}
		if p.AcceptedQuoteID != "" && p.AcceptedQuoteID != accepted.ID {
			return &InvariantViolationError{
				Invariant: "accepted_quote",
				Detail:    fmt.Sprintf("project references quote %s but quote %s is accepted", p.AcceptedQuoteID, accepted.ID),
			}
		}
	}
	if shape.needsAccepted && accepted == nil {
		return &InvariantViolationError{Invariant: "accepted_quote", Detail: fmt.Sprintf("project status %s requires an accepted quote", p.Status)}
	}
	if shape.noAccepted && accepted != nil {
		return &InvariantViolationError{Invariant: "accepted_quote", Detail: fmt.Sprintf("project status %s cannot have an accepted quote", p.Status)}
	}
	return nil
}

func containsEscrowStatus(list []EscrowStatus, s EscrowStatus) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
