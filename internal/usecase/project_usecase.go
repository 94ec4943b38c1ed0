package usecase

import (
	"context"
	"strings"
	"time"

	"artisan_escrow/internal/domain/entities"

	"go.uber.org/zap"
)

// ProjectDraft is the client's input when posting a project.
type ProjectDraft struct {
	ClientID    string
	Title       string
	Description string
	Category    string
	Urgent      bool
	// Publish opens the project for quotes immediately.
	Publish bool
}

type IProjectUseCase interface {
	Create(ctx context.Context, draft ProjectDraft) (entities.Project, error)
	Publish(ctx context.Context, projectID, clientID string) (entities.Project, error)
	GetByID(ctx context.Context, projectID string) (entities.Project, error)
	Cancel(ctx context.Context, projectID, clientID string) (entities.Project, error)
	AdminCancel(ctx context.Context, projectID, adminID string) (entities.Project, error)
	RequestCompletion(ctx context.Context, projectID, actorID string) (entities.Project, error)
	ConfirmCompletion(ctx context.Context, projectID, clientID string) (entities.Project, entities.Escrow, error)
	ExpireStale(ctx context.Context) (int, error)
}

type ProjectUseCase struct {
	engine
}

var _ IProjectUseCase = (*ProjectUseCase)(nil)

func NewProjectUseCase(d Deps) *ProjectUseCase {
	return &ProjectUseCase{engine: newEngine(d)}
}

func (u *ProjectUseCase) Create(ctx context.Context, draft ProjectDraft) (entities.Project, error) {
	clientID, err := cleanID(draft.ClientID, ErrInvalidActorID)
	if err != nil {
		return entities.Project{}, err
	}
	title := strings.TrimSpace(draft.Title)
	if title == "" {
		return entities.Project{}, ErrInvalidProjectTitle
	}

	now := u.Now()
	p := entities.Project{
		ID:          u.NewID(),
		ClientID:    clientID,
		Title:       title,
		Description: strings.TrimSpace(draft.Description),
		Category:    strings.TrimSpace(draft.Category),
		Urgent:      draft.Urgent,
		Status:      entities.ProjectStatusDraft,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if draft.Publish {
		if err := p.Publish(u.QuoteWindow, now); err != nil {
			return entities.Project{}, err
		}
	}

	created, err := u.Projects.Create(ctx, p)
	if err != nil {
		return entities.Project{}, err
	}
	if created.Status == entities.ProjectStatusOpen {
		observeProject(entities.TransitionProjectPublish)
	}
	u.Logger.Info("[project][usecase] created",
		zap.String("project_id", created.ID),
		zap.String("client_id", clientID),
		zap.String("status", string(created.Status)))
	return created, nil
}

func (u *ProjectUseCase) Publish(ctx context.Context, projectID, clientID string) (entities.Project, error) {
	projectID, err := cleanID(projectID, ErrInvalidProjectID)
	if err != nil {
		return entities.Project{}, err
	}

	var out entities.Project
	err = u.withProjectLock(ctx, projectID, func() error {
		p, err := u.loadProject(ctx, projectID)
		if err != nil {
			return err
		}
		if p.ClientID != clientID {
			return entities.ErrForbiddenActor
		}
		if err := p.Publish(u.QuoteWindow, u.Now()); err != nil {
			return err
		}
		out, err = u.Projects.Update(ctx, p)
		if err != nil {
			return err
		}
		observeProject(entities.TransitionProjectPublish)
		return nil
	})
	if err != nil {
		return entities.Project{}, err
	}
	return out, nil
}

// GetByID returns the project, expiring it first when its quote window has
// elapsed.
func (u *ProjectUseCase) GetByID(ctx context.Context, projectID string) (entities.Project, error) {
	projectID, err := cleanID(projectID, ErrInvalidProjectID)
	if err != nil {
		return entities.Project{}, err
	}
	p, err := u.loadProject(ctx, projectID)
	if err != nil {
		return entities.Project{}, err
	}
	if !p.IsExpiredAt(u.Now()) {
		return p, nil
	}

	var out entities.Project
	err = u.withProjectLock(ctx, projectID, func() error {
		p, err := u.loadProject(ctx, projectID)
		if err != nil {
			return err
		}
		out, err = u.expireIfDue(ctx, p)
		return err
	})
	if err != nil {
		return entities.Project{}, err
	}
	return out, nil
}

// Cancel is the client withdrawing the project before any quote is accepted.
// Live quotes are closed as rejected.
func (u *ProjectUseCase) Cancel(ctx context.Context, projectID, clientID string) (entities.Project, error) {
	projectID, err := cleanID(projectID, ErrInvalidProjectID)
	if err != nil {
		return entities.Project{}, err
	}

	var out entities.Project
	err = u.withProjectLock(ctx, projectID, func() error {
		p, err := u.loadProject(ctx, projectID)
		if err != nil {
			return err
		}
		es, err := u.findEscrow(ctx, projectID)
		if err != nil {
			return err
		}
		if es != nil && es.FundsHeld() {
			return &entities.PolicyError{
				Rule:   "cancellation",
				Detail: "funds are held in escrow; raise a dispute or ask an administrator for a refund",
			}
		}
		now := u.Now()
		if err := p.Cancel(clientID, now); err != nil {
			return err
		}
		if err := u.checkConsistency(p, nil, nil); err != nil {
			return err
		}
		out, err = u.Projects.Update(ctx, p)
		if err != nil {
			return err
		}
		observeProject(entities.TransitionProjectCancel)
		u.Logger.Info("[project][usecase] cancelled", zap.String("project_id", projectID))

		u.rejectLiveQuotes(ctx, projectID, "project cancelled", now)
		u.notify(ctx, p.ClientID, entities.NotifyProjectCancelled, map[string]any{"project_id": projectID})
		return nil
	})
	if err != nil {
		return entities.Project{}, err
	}
	return out, nil
}

// rejectLiveQuotes closes the remaining quotes after the project itself has
// been committed. Failures are logged only.
func (e engine) rejectLiveQuotes(ctx context.Context, projectID, reason string, now time.Time) {
	quotes, err := e.Quotes.ListByProjectID(ctx, projectID)
	if err != nil {
		e.Logger.Warn("[quote][usecase] list quotes failed", zap.String("project_id", projectID), zap.Error(err))
		return
	}
	for _, q := range quotes {
		if !q.IsLive() {
			continue
		}
		if err := q.Reject(reason, now); err != nil {
			continue
		}
		if _, err := e.Quotes.Update(ctx, q); err != nil {
			e.Logger.Warn("[quote][usecase] reject failed", zap.String("quote_id", q.ID), zap.Error(err))
			continue
		}
		e.notify(ctx, q.ArtisanID, entities.NotifyQuoteRejected, map[string]any{
			"project_id": projectID,
			"quote_id":   q.ID,
			"reason":     reason,
		})
	}
}

// AdminCancel closes an accepted project and refunds whatever the escrow
// holds.
func (u *ProjectUseCase) AdminCancel(ctx context.Context, projectID, adminID string) (entities.Project, error) {
	projectID, err := cleanID(projectID, ErrInvalidProjectID)
	if err != nil {
		return entities.Project{}, err
	}
	p, _, err := u.refund(ctx, projectID, adminID)
	if err != nil {
		return entities.Project{}, err
	}
	return p, nil
}

func (u *ProjectUseCase) RequestCompletion(ctx context.Context, projectID, actorID string) (entities.Project, error) {
	projectID, err := cleanID(projectID, ErrInvalidProjectID)
	if err != nil {
		return entities.Project{}, err
	}

	var out entities.Project
	err = u.withProjectLock(ctx, projectID, func() error {
		p, err := u.loadProject(ctx, projectID)
		if err != nil {
			return err
		}
		if err := p.RequestCompletion(actorID, u.Now()); err != nil {
			return err
		}
		es, err := u.findEscrow(ctx, projectID)
		if err != nil {
			return err
		}
		accepted, err := u.findAccepted(ctx, p)
		if err != nil {
			return err
		}
		if err := u.checkConsistency(p, es, accepted); err != nil {
			return err
		}
		out, err = u.Projects.Update(ctx, p)
		if err != nil {
			return err
		}
		observeProject(entities.TransitionProjectRequestCompletion)

		other := p.ClientID
		if actorID == p.ClientID {
			other = p.ArtisanID
		}
		u.notify(ctx, other, entities.NotifyCompletionRequest, map[string]any{
			"project_id":   projectID,
			"requested_by": actorID,
		})
		return nil
	})
	if err != nil {
		return entities.Project{}, err
	}
	return out, nil
}

func (u *ProjectUseCase) ConfirmCompletion(ctx context.Context, projectID, clientID string) (entities.Project, entities.Escrow, error) {
	projectID, err := cleanID(projectID, ErrInvalidProjectID)
	if err != nil {
		return entities.Project{}, entities.Escrow{}, err
	}
	return u.confirmCompletion(ctx, projectID, clientID)
}

// confirmCompletion releases the remaining payout and completes the project
// in one write. A project whose escrow was already released is only moved to
// completed.
func (e engine) confirmCompletion(ctx context.Context, projectID, clientID string) (entities.Project, entities.Escrow, error) {
	var outP entities.Project
	var outE entities.Escrow
	err := e.withProjectLock(ctx, projectID, func() error {
		p, err := e.loadProject(ctx, projectID)
		if err != nil {
			return err
		}
		es, err := e.findEscrow(ctx, projectID)
		if err != nil {
			return err
		}
		if es == nil {
			return ErrEscrowMissing
		}
		accepted, err := e.findAccepted(ctx, p)
		if err != nil {
			return err
		}
		now := e.Now()

		if es.Status() == entities.EscrowStatusReleased {
			if err := p.ConfirmCompletion(clientID, now); err != nil {
				return err
			}
			if err := e.checkConsistency(p, es, accepted); err != nil {
				return err
			}
			outP, err = e.Projects.Update(ctx, p)
			if err != nil {
				return err
			}
			observeProject(entities.TransitionProjectConfirmCompletion)
			e.Logger.Warn("[project][usecase] completed over an already released escrow", zap.String("project_id", projectID))
			outE = *es
			return nil
		}

		if err := p.ConfirmCompletion(clientID, now); err != nil {
			return err
		}
		amount, err := es.ReleaseFull(now)
		observeEscrow(entities.TransitionReleaseFull, err)
		if err != nil {
			return err
		}
		if err := e.checkConsistency(p, es, accepted); err != nil {
			return err
		}
		p, released, err := e.Tx.CommitProjectEscrow(ctx, p, *es)
		if err != nil {
			return err
		}
		observeProject(entities.TransitionProjectConfirmCompletion)
		e.Logger.Info("[escrow][usecase] full payment released",
			zap.String("project_id", projectID),
			zap.String("escrow_id", released.ID),
			zap.Int64("amount", amount))

		e.journal(ctx,
			e.ledgerEntry(released, entities.LedgerPayoutReleased, amount, ""),
			e.ledgerEntry(released, entities.LedgerCommissionKept, released.Fees.CommissionAmount, ""),
		)
		e.notify(ctx, p.ArtisanID, entities.NotifyPaymentReleased, map[string]any{
			"project_id": projectID,
			"escrow_id":  released.ID,
			"amount":     amount,
		})
		outP, outE = p, released
		return nil
	})
	if err != nil {
		return entities.Project{}, entities.Escrow{}, err
	}
	return outP, outE, nil
}

// ExpireStale sweeps every project still collecting quotes and expires those
// whose window has elapsed. It returns how many were expired.
func (u *ProjectUseCase) ExpireStale(ctx context.Context) (int, error) {
	candidates, err := u.Projects.ListByStatus(ctx, entities.ProjectStatusOpen, entities.ProjectStatusQuoteReceived)
	if err != nil {
		return 0, err
	}

	expired := 0
	for _, c := range candidates {
		if !c.IsExpiredAt(u.Now()) {
			continue
		}
		err := u.withProjectLock(ctx, c.ID, func() error {
			p, err := u.loadProject(ctx, c.ID)
			if err != nil {
				return err
			}
			updated, err := u.expireIfDue(ctx, p)
			if err != nil {
				return err
			}
			if updated.Status == entities.ProjectStatusExpired && p.Status != entities.ProjectStatusExpired {
				expired++
			}
			return nil
		})
		if err != nil {
			u.Logger.Warn("[project][usecase] expire sweep failed", zap.String("project_id", c.ID), zap.Error(err))
		}
	}
	u.Logger.Info("[project][usecase] expire sweep done", zap.Int("candidates", len(candidates)), zap.Int("expired", expired))
	return expired, nil
}
