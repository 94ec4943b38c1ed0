package usecase

import (
	"context"
	"errors"
	"strings"

	"artisan_escrow/internal/domain/entities"
	"artisan_escrow/internal/usecase/interfaces"

	"go.uber.org/zap"
)

const (
	reasonOtherQuoteAccepted = "another quote was accepted"
	degradedEscrowNotCreated = "escrow could not be created"
)

// QuoteSubmission is an artisan's offer on a project.
type QuoteSubmission struct {
	ProjectID     string
	ArtisanID     string
	Amount        int64
	Urgent        bool
	LaborCost     *int64
	MaterialsCost *int64
	Message       string
}

// Acceptance is the outcome of accepting a quote. Escrow is nil when the
// project fell back to payment_pending.
type Acceptance struct {
	Project entities.Project
	Quote   entities.Quote
	Escrow  *entities.Escrow
}

type IQuoteUseCase interface {
	Submit(ctx context.Context, s QuoteSubmission) (entities.Quote, error)
	GetByID(ctx context.Context, quoteID string) (entities.Quote, error)
	ListByProjectID(ctx context.Context, projectID string) ([]entities.Quote, error)
	MarkViewed(ctx context.Context, quoteID, clientID string) (entities.Quote, error)
	Reject(ctx context.Context, quoteID, clientID, reason string) (entities.Quote, error)
	Withdraw(ctx context.Context, quoteID, artisanID string) (entities.Quote, error)
	UpdateAmount(ctx context.Context, quoteID, artisanID string, amount int64) (entities.Quote, error)
	Accept(ctx context.Context, quoteID, clientID string, providerVerified bool) (Acceptance, error)
}

type QuoteUseCase struct {
	engine
}

var _ IQuoteUseCase = (*QuoteUseCase)(nil)

func NewQuoteUseCase(d Deps) *QuoteUseCase {
	return &QuoteUseCase{engine: newEngine(d)}
}

func (u *QuoteUseCase) Submit(ctx context.Context, s QuoteSubmission) (entities.Quote, error) {
	projectID, err := cleanID(s.ProjectID, ErrInvalidProjectID)
	if err != nil {
		return entities.Quote{}, err
	}
	artisanID, err := cleanID(s.ArtisanID, ErrInvalidActorID)
	if err != nil {
		return entities.Quote{}, err
	}
	if s.Amount <= 0 || s.Amount > entities.MaxAmount {
		return entities.Quote{}, entities.ErrInvalidQuoteAmount
	}

	var out entities.Quote
	err = u.withProjectLock(ctx, projectID, func() error {
		p, err := u.loadProject(ctx, projectID)
		if err != nil {
			return err
		}
		p, err = u.expireIfDue(ctx, p)
		if err != nil {
			return err
		}
		if err := p.CheckAcceptsQuotes(); err != nil {
			return err
		}
		if artisanID == p.ClientID {
			return entities.ErrForbiddenActor
		}
		existing, err := u.Quotes.ListByProjectID(ctx, projectID)
		if err != nil {
			return err
		}
		for _, q := range existing {
			if q.ArtisanID == artisanID && q.IsLive() {
				return ErrDuplicateQuote
			}
		}

		now := u.Now()
		q := entities.Quote{
			ID:            u.NewID(),
			ProjectID:     projectID,
			ArtisanID:     artisanID,
			Amount:        s.Amount,
			Urgent:        p.Urgent || s.Urgent,
			LaborCost:     s.LaborCost,
			MaterialsCost: s.MaterialsCost,
			Message:       strings.TrimSpace(s.Message),
			Status:        entities.QuoteStatusPending,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		if q.Urgent {
			q.UrgentSurchargePercent = u.Fees.UrgentSurchargePercent
		}
		out, err = u.Quotes.Create(ctx, q)
		if err != nil {
			return err
		}
		if p.RecordQuote(now) {
			if _, err := u.Projects.Update(ctx, p); err != nil {
				return err
			}
			observeProject(entities.TransitionProjectReceiveQuote)
		}
		u.Logger.Info("[quote][usecase] submitted",
			zap.String("quote_id", out.ID),
			zap.String("project_id", projectID),
			zap.String("artisan_id", artisanID),
			zap.Int64("amount", out.Amount))
		u.notify(ctx, p.ClientID, entities.NotifyQuoteReceived, map[string]any{
			"project_id": projectID,
			"quote_id":   out.ID,
			"amount":     out.Amount,
		})
		return nil
	})
	if err != nil {
		return entities.Quote{}, err
	}
	return out, nil
}

func (u *QuoteUseCase) GetByID(ctx context.Context, quoteID string) (entities.Quote, error) {
	quoteID, err := cleanID(quoteID, ErrInvalidQuoteID)
	if err != nil {
		return entities.Quote{}, err
	}
	return u.loadQuote(ctx, quoteID)
}

func (u *QuoteUseCase) ListByProjectID(ctx context.Context, projectID string) ([]entities.Quote, error) {
	projectID, err := cleanID(projectID, ErrInvalidProjectID)
	if err != nil {
		return nil, err
	}
	if _, err := u.loadProject(ctx, projectID); err != nil {
		return nil, err
	}
	return u.Quotes.ListByProjectID(ctx, projectID)
}

// quoteAction runs a single-quote transition under the owning project's lock.
// check receives the freshly loaded project and quote and performs the
// transition in place.
func (u *QuoteUseCase) quoteAction(ctx context.Context, quoteID string, check func(p entities.Project, q *entities.Quote) error) (entities.Quote, error) {
	quoteID, err := cleanID(quoteID, ErrInvalidQuoteID)
	if err != nil {
		return entities.Quote{}, err
	}
	current, err := u.loadQuote(ctx, quoteID)
	if err != nil {
		return entities.Quote{}, err
	}

	var out entities.Quote
	err = u.withProjectLock(ctx, current.ProjectID, func() error {
		q, err := u.loadQuote(ctx, quoteID)
		if err != nil {
			return err
		}
		p, err := u.loadProject(ctx, q.ProjectID)
		if err != nil {
			return err
		}
		if err := check(p, &q); err != nil {
			return err
		}
		out, err = u.Quotes.Update(ctx, q)
		return err
	})
	if err != nil {
		return entities.Quote{}, err
	}
	return out, nil
}

// MarkViewed is idempotent: a quote the client already opened is returned
// unchanged.
func (u *QuoteUseCase) MarkViewed(ctx context.Context, quoteID, clientID string) (entities.Quote, error) {
	quoteID, err := cleanID(quoteID, ErrInvalidQuoteID)
	if err != nil {
		return entities.Quote{}, err
	}
	q, err := u.loadQuote(ctx, quoteID)
	if err != nil {
		return entities.Quote{}, err
	}
	if q.Status == entities.QuoteStatusViewed {
		p, err := u.loadProject(ctx, q.ProjectID)
		if err != nil {
			return entities.Quote{}, err
		}
		if p.ClientID != clientID {
			return entities.Quote{}, entities.ErrForbiddenActor
		}
		return q, nil
	}
	return u.quoteAction(ctx, quoteID, func(p entities.Project, q *entities.Quote) error {
		if p.ClientID != clientID {
			return entities.ErrForbiddenActor
		}
		if q.Status == entities.QuoteStatusViewed {
			return nil
		}
		return q.MarkViewed(u.Now())
	})
}

func (u *QuoteUseCase) Reject(ctx context.Context, quoteID, clientID, reason string) (entities.Quote, error) {
	out, err := u.quoteAction(ctx, quoteID, func(p entities.Project, q *entities.Quote) error {
		if p.ClientID != clientID {
			return entities.ErrForbiddenActor
		}
		return q.Reject(strings.TrimSpace(reason), u.Now())
	})
	if err != nil {
		return entities.Quote{}, err
	}
	u.notify(ctx, out.ArtisanID, entities.NotifyQuoteRejected, map[string]any{
		"project_id": out.ProjectID,
		"quote_id":   out.ID,
		"reason":     out.RejectionReason,
	})
	return out, nil
}

func (u *QuoteUseCase) Withdraw(ctx context.Context, quoteID, artisanID string) (entities.Quote, error) {
	return u.quoteAction(ctx, quoteID, func(_ entities.Project, q *entities.Quote) error {
		if q.ArtisanID != artisanID {
			return entities.ErrForbiddenActor
		}
		return q.Withdraw(u.Now())
	})
}

// UpdateAmount renegotiates a live quote. The project must still be
// collecting quotes.
func (u *QuoteUseCase) UpdateAmount(ctx context.Context, quoteID, artisanID string, amount int64) (entities.Quote, error) {
	return u.quoteAction(ctx, quoteID, func(p entities.Project, q *entities.Quote) error {
		if q.ArtisanID != artisanID {
			return entities.ErrForbiddenActor
		}
		if err := p.CheckAcceptsQuotes(); err != nil {
			return err
		}
		return q.UpdateAmount(amount, u.Now())
	})
}

// Accept closes negotiation on a project: the quote is accepted, every other
// live quote is rejected, the pending escrow is created and the project moves
// to quote_accepted, all in one transaction. When that transaction fails for
// any reason other than a concurrent modification, the acceptance is
// committed without an escrow and the project is parked in payment_pending.
func (u *QuoteUseCase) Accept(ctx context.Context, quoteID, clientID string, providerVerified bool) (Acceptance, error) {
	quoteID, err := cleanID(quoteID, ErrInvalidQuoteID)
	if err != nil {
		return Acceptance{}, err
	}
	current, err := u.loadQuote(ctx, quoteID)
	if err != nil {
		return Acceptance{}, err
	}

	var out Acceptance
	err = u.withProjectLock(ctx, current.ProjectID, func() error {
		q, err := u.loadQuote(ctx, quoteID)
		if err != nil {
			return err
		}
		p, err := u.loadProject(ctx, q.ProjectID)
		if err != nil {
			return err
		}
		if p.ClientID != clientID {
			return entities.ErrForbiddenActor
		}

		if p.AcceptedQuoteID != "" {
			if p.AcceptedQuoteID != q.ID {
				return ErrQuoteAlreadyAccepted
			}
			es, err := u.findEscrow(ctx, p.ID)
			if err != nil {
				return err
			}
			out = Acceptance{Project: p, Quote: q, Escrow: es}
			return nil
		}

		p, err = u.expireIfDue(ctx, p)
		if err != nil {
			return err
		}
		now := u.Now()
		if err := q.Accept(now); err != nil {
			return err
		}
		if err := p.AcceptQuote(q, providerVerified, now); err != nil {
			return err
		}
		fees, err := u.feesFor(q, providerVerified)
		if err != nil {
			return err
		}
		es := entities.NewEscrow(u.NewID(), q, p.ClientID, providerVerified, fees, now)
		if err := u.checkConsistency(p, &es, &q); err != nil {
			return err
		}

		siblings, err := u.Quotes.ListByProjectID(ctx, p.ID)
		if err != nil {
			return err
		}
		var rejected []entities.Quote
		for _, s := range siblings {
			if s.ID == q.ID || !s.IsLive() {
				continue
			}
			if err := s.Reject(reasonOtherQuoteAccepted, now); err != nil {
				return err
			}
			rejected = append(rejected, s)
		}

		commit, err := u.Tx.CommitAcceptance(ctx, interfaces.AcceptanceCommit{
			Project:  p,
			Accepted: q,
			Rejected: rejected,
			Escrow:   &es,
		})
		if err != nil {
			if errors.Is(err, interfaces.ErrVersionConflict) {
				return err
			}
			u.Logger.Warn("[quote][usecase] acceptance with escrow failed, committing without escrow",
				zap.String("project_id", p.ID),
				zap.String("quote_id", q.ID),
				zap.Error(err))
			commit, err = u.acceptDegraded(ctx, p, q, rejected)
			if err != nil {
				return err
			}
		}
		observeProject(entities.TransitionProjectAcceptQuote)
		if commit.Escrow != nil {
			observeEscrow(entities.TransitionCreateEscrow, nil)
		}
		u.Logger.Info("[quote][usecase] accepted",
			zap.String("project_id", commit.Project.ID),
			zap.String("quote_id", commit.Accepted.ID),
			zap.String("project_status", string(commit.Project.Status)))

		u.notify(ctx, commit.Accepted.ArtisanID, entities.NotifyQuoteAccepted, map[string]any{
			"project_id": commit.Project.ID,
			"quote_id":   commit.Accepted.ID,
			"amount":     commit.Accepted.Amount,
		})
		for _, r := range commit.Rejected {
			u.notify(ctx, r.ArtisanID, entities.NotifyQuoteRejected, map[string]any{
				"project_id": r.ProjectID,
				"quote_id":   r.ID,
				"reason":     r.RejectionReason,
			})
		}
		if commit.Escrow == nil {
			u.notify(ctx, commit.Project.ClientID, entities.NotifyPaymentPendingInfo, map[string]any{
				"project_id": commit.Project.ID,
				"reason":     commit.Project.DegradedReason,
			})
		}
		out = Acceptance{Project: commit.Project, Quote: commit.Accepted, Escrow: commit.Escrow}
		return nil
	})
	if err != nil {
		return Acceptance{}, err
	}
	return out, nil
}

// acceptDegraded commits the acceptance without an escrow. The project lands
// in payment_pending until EscrowUseCase.Create succeeds for it.
func (u *QuoteUseCase) acceptDegraded(ctx context.Context, p entities.Project, q entities.Quote, rejected []entities.Quote) (interfaces.AcceptanceCommit, error) {
	if err := p.MarkPaymentPending(degradedEscrowNotCreated, u.Now()); err != nil {
		return interfaces.AcceptanceCommit{}, err
	}
	if err := u.checkConsistency(p, nil, &q); err != nil {
		return interfaces.AcceptanceCommit{}, err
	}
	commit, err := u.Tx.CommitAcceptance(ctx, interfaces.AcceptanceCommit{
		Project:  p,
		Accepted: q,
		Rejected: rejected,
	})
	if err != nil {
		u.Logger.Error("[quote][usecase] degraded acceptance failed",
			zap.String("project_id", p.ID),
			zap.String("quote_id", q.ID),
			zap.Error(err))
		return interfaces.AcceptanceCommit{}, err
	}
	observeProject(entities.TransitionProjectPaymentPending)
	return commit, nil
}
