package usecase

import (
	"context"
	"strings"

	"artisan_escrow/internal/domain/entities"

	"go.uber.org/zap"
)

// DisputeResolution is an administrator's decision on a disputed project.
// ClientSharePercent is only read for the split mode.
type DisputeResolution struct {
	ProjectID          string
	AdminID            string
	Mode               entities.ResolutionMode
	ClientSharePercent int64
}

type IDisputeUseCase interface {
	Raise(ctx context.Context, projectID, actorID, reason string) (entities.Project, entities.Escrow, error)
	Resolve(ctx context.Context, r DisputeResolution) (entities.Project, entities.Escrow, error)
}

type DisputeUseCase struct {
	engine
}

var _ IDisputeUseCase = (*DisputeUseCase)(nil)

func NewDisputeUseCase(d Deps) *DisputeUseCase {
	return &DisputeUseCase{engine: newEngine(d)}
}

func (u *DisputeUseCase) Raise(ctx context.Context, projectID, actorID, reason string) (entities.Project, entities.Escrow, error) {
	projectID, err := cleanID(projectID, ErrInvalidProjectID)
	if err != nil {
		return entities.Project{}, entities.Escrow{}, err
	}
	return u.raiseDispute(ctx, projectID, actorID, reason)
}

// raiseDispute freezes the escrow and moves the project to disputed.
func (e engine) raiseDispute(ctx context.Context, projectID, actorID, reason string) (entities.Project, entities.Escrow, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return entities.Project{}, entities.Escrow{}, ErrInvalidDisputeReason
	}

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
		now := e.Now()
		if err := p.RaiseDispute(actorID, reason, now); err != nil {
			return err
		}
		if es == nil {
			return ErrEscrowMissing
		}
		err = es.Freeze(reason, now)
		observeEscrow(entities.TransitionFreeze, err)
		if err != nil {
			return err
		}
		accepted, err := e.findAccepted(ctx, p)
		if err != nil {
			return err
		}
		if err := e.checkConsistency(p, es, accepted); err != nil {
			return err
		}
		p, frozen, err := e.Tx.CommitProjectEscrow(ctx, p, *es)
		if err != nil {
			return err
		}
		observeProject(entities.TransitionProjectDispute)
		e.Logger.Info("[dispute][usecase] raised",
			zap.String("project_id", projectID),
			zap.String("raised_by", actorID),
			zap.String("escrow_id", frozen.ID))

		e.notifyBoth(ctx, p, entities.NotifyDisputeRaised, map[string]any{
			"project_id": projectID,
			"raised_by":  actorID,
			"reason":     reason,
		})
		outP, outE = p, frozen
		return nil
	})
	if err != nil {
		return entities.Project{}, entities.Escrow{}, err
	}
	return outP, outE, nil
}

// Resolve settles a frozen escrow and completes the project.
func (u *DisputeUseCase) Resolve(ctx context.Context, r DisputeResolution) (entities.Project, entities.Escrow, error) {
	projectID, err := cleanID(r.ProjectID, ErrInvalidProjectID)
	if err != nil {
		return entities.Project{}, entities.Escrow{}, err
	}
	adminID, err := cleanID(r.AdminID, ErrInvalidActorID)
	if err != nil {
		return entities.Project{}, entities.Escrow{}, err
	}
	if !r.Mode.Valid() {
		return entities.Project{}, entities.Escrow{}, entities.ErrInvalidResolutionMode
	}

	var outP entities.Project
	var outE entities.Escrow
	err = u.withProjectLock(ctx, projectID, func() error {
		p, err := u.loadProject(ctx, projectID)
		if err != nil {
			return err
		}
		es, err := u.findEscrow(ctx, projectID)
		if err != nil {
			return err
		}
		if es == nil {
			return ErrEscrowMissing
		}
		now := u.Now()
		if err := p.ResolveDispute(adminID, now); err != nil {
			return err
		}
		settlement, err := entities.ComputeSettlement(es.Fees, es.AdvancePaid(), r.Mode, r.ClientSharePercent)
		if err != nil {
			return err
		}
		settlement.ResolvedBy = adminID
		settlement.ResolvedAt = now
		err = es.Settle(settlement, now)
		observeEscrow(entities.TransitionSettle, err)
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
		p, settled, err := u.Tx.CommitProjectEscrow(ctx, p, *es)
		if err != nil {
			return err
		}
		observeProject(entities.TransitionProjectResolveDispute)
		u.Logger.Info("[dispute][usecase] resolved",
			zap.String("project_id", projectID),
			zap.String("mode", string(settlement.Mode)),
			zap.Int64("client_refund", settlement.ClientRefund),
			zap.Int64("artisan_payment", settlement.ArtisanPayment),
			zap.Int64("platform_retained", settlement.PlatformRetained))

		var entries []entities.LedgerEntry
		if settlement.ClientRefund > 0 {
			entries = append(entries, u.ledgerEntry(settled, entities.LedgerDisputeRefund, settlement.ClientRefund, ""))
		}
		if outstanding := settlement.OutstandingArtisanPayment(); outstanding > 0 {
			entries = append(entries, u.ledgerEntry(settled, entities.LedgerDisputePayment, outstanding, ""))
		}
		if settlement.PlatformRetained > 0 {
			entries = append(entries, u.ledgerEntry(settled, entities.LedgerDisputeRetention, settlement.PlatformRetained, ""))
		}
		u.journal(ctx, entries...)

		u.notify(ctx, p.ClientID, entities.NotifyDisputeResolved, map[string]any{
			"project_id": projectID,
			"mode":       string(settlement.Mode),
			"amount":     settlement.ClientRefund,
		})
		u.notify(ctx, p.ArtisanID, entities.NotifyDisputeResolved, map[string]any{
			"project_id": projectID,
			"mode":       string(settlement.Mode),
			"amount":     settlement.OutstandingArtisanPayment(),
		})
		outP, outE = p, settled
		return nil
	})
	if err != nil {
		return entities.Project{}, entities.Escrow{}, err
	}
	return outP, outE, nil
}
