package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"artisan_escrow/internal/domain/entities"
	"artisan_escrow/internal/infrastructure/metrics"

	"go.uber.org/zap"
)

const paymentGatewayService = "payment_gateway"

// IEscrowUseCase drives the escrow ledger. Every transition is taken under
// the owning project's lock and leaves project and escrow consistent.
type IEscrowUseCase interface {
	Create(ctx context.Context, projectID string) (entities.Escrow, error)
	ConfirmDeposit(ctx context.Context, escrowID, method string) (entities.Escrow, error)
	ReleaseAdvance(ctx context.Context, escrowID string) (entities.Escrow, error)
	ReleaseFullPayment(ctx context.Context, escrowID, clientID string) (entities.Escrow, error)
	Freeze(ctx context.Context, escrowID, actorID, reason string) (entities.Escrow, error)
	Refund(ctx context.Context, escrowID, adminID string) (entities.Escrow, error)
	UpdateForNewAmount(ctx context.Context, escrowID string, baseAmount int64) (entities.Escrow, error)
	GetByID(ctx context.Context, escrowID string) (entities.Escrow, error)
	GetByProjectID(ctx context.Context, projectID string) (entities.Escrow, error)
	ListLedger(ctx context.Context, escrowID string) ([]entities.LedgerEntry, error)
}

type EscrowUseCase struct {
	engine
}

var _ IEscrowUseCase = (*EscrowUseCase)(nil)

func NewEscrowUseCase(d Deps) *EscrowUseCase {
	return &EscrowUseCase{engine: newEngine(d)}
}

// Create returns the project's escrow, creating it from the accepted quote
// when the project has none yet (the payment_pending recovery path).
// Calling it again returns the same escrow.
func (u *EscrowUseCase) Create(ctx context.Context, projectID string) (entities.Escrow, error) {
	projectID, err := cleanID(projectID, ErrInvalidProjectID)
	if err != nil {
		return entities.Escrow{}, err
	}

	var out entities.Escrow
	err = u.withProjectLock(ctx, projectID, func() error {
		p, err := u.loadProject(ctx, projectID)
		if err != nil {
			return err
		}
		existing, err := u.findEscrow(ctx, projectID)
		if err != nil {
			return err
		}
		if existing != nil {
			out = *existing
			return nil
		}
		accepted, err := u.findAccepted(ctx, p)
		if err != nil {
			return err
		}
		if accepted == nil {
			return &entities.InvalidTransitionError{Resource: "escrow", Transition: entities.TransitionCreateEscrow, From: string(p.Status)}
		}
		out, err = u.createEscrow(ctx, p, *accepted)
		return err
	})
	if err != nil {
		return entities.Escrow{}, err
	}
	return out, nil
}

// createEscrow inserts a pending escrow for an accepted quote. A concurrent
// insert for the same project resolves to the existing record.
func (e engine) createEscrow(ctx context.Context, p entities.Project, q entities.Quote) (entities.Escrow, error) {
	fees, err := e.feesFor(q, p.ArtisanVerified)
	if err != nil {
		return entities.Escrow{}, err
	}
	es := entities.NewEscrow(e.NewID(), q, p.ClientID, p.ArtisanVerified, fees, e.Now())
	if err := e.checkConsistency(p, &es, &q); err != nil {
		return entities.Escrow{}, err
	}

	created, err := e.Escrows.Create(ctx, es)
	var exists *entities.AlreadyExistsError
	if errors.As(err, &exists) {
		current, getErr := e.findEscrow(ctx, p.ID)
		if getErr != nil {
			return entities.Escrow{}, getErr
		}
		if current != nil {
			return *current, nil
		}
	}
	if err != nil {
		return entities.Escrow{}, err
	}
	observeEscrow(entities.TransitionCreateEscrow, nil)
	e.Logger.Info("[escrow][usecase] created",
		zap.String("project_id", p.ID),
		zap.String("escrow_id", created.ID),
		zap.Int64("total_amount", fees.TotalAmount))
	return created, nil
}

// feesFor prices an accepted quote. The surcharge rate captured on the quote
// wins over the current policy.
func (e engine) feesFor(q entities.Quote, providerVerified bool) (entities.FeeBreakdown, error) {
	in := e.Fees.Input(q.Amount, q.Urgent, providerVerified)
	if q.Urgent && q.UrgentSurchargePercent > 0 {
		in.UrgentSurchargePercent = q.UrgentSurchargePercent
	}
	return entities.CalculateFees(in)
}

func (u *EscrowUseCase) ConfirmDeposit(ctx context.Context, escrowID, method string) (entities.Escrow, error) {
	escrowID, err := cleanID(escrowID, ErrInvalidEscrowID)
	if err != nil {
		return entities.Escrow{}, err
	}
	method = strings.TrimSpace(method)
	if method == "" {
		return entities.Escrow{}, ErrInvalidPaymentMethod
	}
	current, err := u.loadEscrow(ctx, escrowID)
	if err != nil {
		return entities.Escrow{}, err
	}

	var out entities.Escrow
	err = u.withProjectLock(ctx, current.ProjectID, func() error {
		es, err := u.loadEscrow(ctx, escrowID)
		if err != nil {
			return err
		}
		if es.Status() != entities.EscrowStatusPending {
			err := &entities.InvalidTransitionError{Resource: "escrow", Transition: entities.TransitionConfirmDeposit, From: string(es.Status())}
			observeEscrow(entities.TransitionConfirmDeposit, err)
			return err
		}
		p, err := u.loadProject(ctx, es.ProjectID)
		if err != nil {
			return err
		}
		probe := p
		if err := probe.StartWork(u.Now()); err != nil {
			return err
		}
		accepted, err := u.findAccepted(ctx, p)
		if err != nil {
			return err
		}

		result, chargeErr := u.charge(ctx, es, method)
		// The charge may have captured funds; finish bookkeeping even if the
		// caller has gone away.
		writeCtx := context.WithoutCancel(ctx)
		if chargeErr != nil {
			observeEscrow(entities.TransitionConfirmDeposit, chargeErr)
			u.markPaymentPending(writeCtx, p, chargeErr.Error())
			u.notify(writeCtx, p.ClientID, entities.NotifyPaymentFailed, map[string]any{
				"project_id": p.ID,
				"escrow_id":  es.ID,
				"reason":     chargeErr.Error(),
			})
			return chargeErr
		}

		now := u.Now()
		err = es.ConfirmDeposit(entities.DepositInfo{
			Reference:   result.Reference,
			Method:      method,
			Fees:        result.Fees,
			ConfirmedAt: now,
		}, now)
		observeEscrow(entities.TransitionConfirmDeposit, err)
		if err != nil {
			return err
		}
		if err := p.StartWork(now); err != nil {
			return err
		}
		if err := u.checkConsistency(p, &es, accepted); err != nil {
			return err
		}
		p, es, err = u.Tx.CommitProjectEscrow(writeCtx, p, es)
		if err != nil {
			u.Logger.Error("[escrow][usecase] deposit captured but commit failed",
				zap.String("escrow_id", escrowID),
				zap.String("payment_reference", result.Reference),
				zap.Error(err))
			return err
		}
		observeProject(entities.TransitionProjectStart)
		u.Logger.Info("[escrow][usecase] deposit confirmed",
			zap.String("escrow_id", es.ID),
			zap.String("project_id", p.ID),
			zap.String("payment_reference", result.Reference))

		u.journal(writeCtx, u.ledgerEntry(es, entities.LedgerDepositHeld, es.Fees.TotalAmount, result.Reference))
		payload := map[string]any{"project_id": p.ID, "escrow_id": es.ID, "amount": es.Fees.TotalAmount}
		u.notify(writeCtx, es.ClientID, entities.NotifyFundsHeld, payload)
		u.notify(writeCtx, es.ArtisanID, entities.NotifyFundsHeld, payload)
		out = es
		return nil
	})
	if err != nil {
		return entities.Escrow{}, err
	}
	return out, nil
}

// charge calls the gateway under the payment timeout. Any failure comes
// back as an ExternalServiceError and leaves the escrow untouched.
func (e engine) charge(ctx context.Context, es entities.Escrow, method string) (entities.PaymentResult, error) {
	ctx, cancel := context.WithTimeout(ctx, e.PaymentTimeout)
	defer cancel()

	start := time.Now()
	res, err := e.Gateway.ProcessPayment(ctx, entities.PaymentRequest{
		Amount: es.Fees.TotalAmount,
		Method: method,
		Metadata: map[string]string{
			"project_id": es.ProjectID,
			"escrow_id":  es.ID,
			"quote_id":   es.QuoteID,
			"client_id":  es.ClientID,
		},
	})

	var outErr error
	outcome := "approved"
	switch {
	case err != nil && (errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded)):
		outcome = "timeout"
		outErr = &entities.ExternalServiceError{
			Service:   paymentGatewayService,
			Reason:    "timeout",
			Message:   fmt.Sprintf("no response within %s", e.PaymentTimeout),
			Retryable: true,
			Err:       err,
		}
	case err != nil:
		outcome = "error"
		outErr = &entities.ExternalServiceError{
			Service:   paymentGatewayService,
			Reason:    "unavailable",
			Message:   err.Error(),
			Retryable: true,
			Err:       err,
		}
	case !res.Success:
		outcome = "declined"
		msg := res.Message
		if msg == "" {
			msg = "payment declined"
		}
		outErr = &entities.ExternalServiceError{
			Service:   paymentGatewayService,
			Reason:    "declined",
			Message:   msg,
			Retryable: true,
		}
	}
	metrics.PaymentGatewayDuration.WithLabelValues(outcome).Observe(time.Since(start).Seconds())

	if outErr != nil {
		e.Logger.Warn("[escrow][usecase] payment failed",
			zap.String("escrow_id", es.ID),
			zap.String("outcome", outcome),
			zap.Error(outErr))
		return entities.PaymentResult{}, outErr
	}
	return res, nil
}

// markPaymentPending records a failed deposit on the project. The escrow
// stays pending so the client can retry.
func (e engine) markPaymentPending(ctx context.Context, p entities.Project, reason string) {
	if err := p.MarkPaymentPending(reason, e.Now()); err != nil {
		return
	}
	if _, err := e.Projects.Update(ctx, p); err != nil {
		e.Logger.Warn("[project][usecase] payment_pending update failed", zap.String("project_id", p.ID), zap.Error(err))
		return
	}
	observeProject(entities.TransitionProjectPaymentPending)
}

func (u *EscrowUseCase) ReleaseAdvance(ctx context.Context, escrowID string) (entities.Escrow, error) {
	escrowID, err := cleanID(escrowID, ErrInvalidEscrowID)
	if err != nil {
		return entities.Escrow{}, err
	}
	current, err := u.loadEscrow(ctx, escrowID)
	if err != nil {
		return entities.Escrow{}, err
	}

	var out entities.Escrow
	err = u.withProjectLock(ctx, current.ProjectID, func() error {
		es, err := u.loadEscrow(ctx, escrowID)
		if err != nil {
			return err
		}
		p, err := u.loadProject(ctx, es.ProjectID)
		if err != nil {
			return err
		}
		amount, err := es.ReleaseAdvance(u.Now())
		observeEscrow(entities.TransitionReleaseAdvance, err)
		if err != nil {
			return err
		}
		accepted, err := u.findAccepted(ctx, p)
		if err != nil {
			return err
		}
		if err := u.checkConsistency(p, &es, accepted); err != nil {
			return err
		}
		es, err = u.Escrows.Update(ctx, es)
		if err != nil {
			return err
		}
		u.Logger.Info("[escrow][usecase] advance released", zap.String("escrow_id", es.ID), zap.Int64("amount", amount))

		u.journal(ctx, u.ledgerEntry(es, entities.LedgerAdvanceReleased, amount, ""))
		u.notify(ctx, es.ArtisanID, entities.NotifyAdvanceReleased, map[string]any{
			"project_id": es.ProjectID,
			"escrow_id":  es.ID,
			"amount":     amount,
		})
		out = es
		return nil
	})
	if err != nil {
		return entities.Escrow{}, err
	}
	return out, nil
}

// ReleaseFullPayment is the client's confirmation of completion seen from
// the escrow side; project and escrow move together.
func (u *EscrowUseCase) ReleaseFullPayment(ctx context.Context, escrowID, clientID string) (entities.Escrow, error) {
	escrowID, err := cleanID(escrowID, ErrInvalidEscrowID)
	if err != nil {
		return entities.Escrow{}, err
	}
	current, err := u.loadEscrow(ctx, escrowID)
	if err != nil {
		return entities.Escrow{}, err
	}
	_, es, err := u.confirmCompletion(ctx, current.ProjectID, clientID)
	if err != nil {
		return entities.Escrow{}, err
	}
	return es, nil
}

// Freeze opens a dispute on the escrow's project.
func (u *EscrowUseCase) Freeze(ctx context.Context, escrowID, actorID, reason string) (entities.Escrow, error) {
	escrowID, err := cleanID(escrowID, ErrInvalidEscrowID)
	if err != nil {
		return entities.Escrow{}, err
	}
	current, err := u.loadEscrow(ctx, escrowID)
	if err != nil {
		return entities.Escrow{}, err
	}
	_, es, err := u.raiseDispute(ctx, current.ProjectID, actorID, reason)
	if err != nil {
		return entities.Escrow{}, err
	}
	return es, nil
}

// Refund is an administrator returning the client's funds.
func (u *EscrowUseCase) Refund(ctx context.Context, escrowID, adminID string) (entities.Escrow, error) {
	escrowID, err := cleanID(escrowID, ErrInvalidEscrowID)
	if err != nil {
		return entities.Escrow{}, err
	}
	current, err := u.loadEscrow(ctx, escrowID)
	if err != nil {
		return entities.Escrow{}, err
	}
	_, es, err := u.refund(ctx, current.ProjectID, adminID)
	if err != nil {
		return entities.Escrow{}, err
	}
	if es == nil {
		return entities.Escrow{}, ErrEscrowNotFound
	}
	return *es, nil
}

// refund returns the client's funds and closes the project: a disputed
// project completes, any other active project is cancelled. A project
// without an escrow is simply cancelled.
func (e engine) refund(ctx context.Context, projectID, adminID string) (entities.Project, *entities.Escrow, error) {
	adminID, err := cleanID(adminID, ErrInvalidActorID)
	if err != nil {
		return entities.Project{}, nil, err
	}

	var outP entities.Project
	var outE *entities.Escrow
	err = e.withProjectLock(ctx, projectID, func() error {
		p, err := e.loadProject(ctx, projectID)
		if err != nil {
			return err
		}
		es, err := e.findEscrow(ctx, projectID)
		if err != nil {
			return err
		}
		accepted, err := e.findAccepted(ctx, p)
		if err != nil {
			return err
		}
		now := e.Now()

		if es == nil {
			if err := p.CancelByAdmin(now); err != nil {
				return err
			}
			if err := e.checkConsistency(p, nil, accepted); err != nil {
				return err
			}
			p, err = e.Projects.Update(ctx, p)
			if err != nil {
				return err
			}
			observeProject(entities.TransitionProjectAdminCancel)
			e.notifyBoth(ctx, p, entities.NotifyProjectCancelled, map[string]any{"project_id": p.ID})
			outP = p
			return nil
		}

		hadDeposit := es.Deposit() != nil
		amount, err := es.Refund(now)
		observeEscrow(entities.TransitionRefund, err)
		if err != nil {
			return err
		}
		projectTransition := entities.TransitionProjectAdminCancel
		if p.Status == entities.ProjectStatusDisputed {
			projectTransition = entities.TransitionProjectResolveDispute
			err = p.ResolveDispute(adminID, now)
		} else {
			err = p.CancelByAdmin(now)
		}
		if err != nil {
			return err
		}
		if err := e.checkConsistency(p, es, accepted); err != nil {
			return err
		}
		p, updated, err := e.Tx.CommitProjectEscrow(ctx, p, *es)
		if err != nil {
			return err
		}
		observeProject(projectTransition)
		e.Logger.Info("[escrow][usecase] refunded",
			zap.String("escrow_id", updated.ID),
			zap.String("admin_id", adminID),
			zap.Int64("amount", amount))

		if hadDeposit {
			e.journal(ctx, e.ledgerEntry(updated, entities.LedgerClientRefunded, amount, ""))
		}
		e.notifyBoth(ctx, p, entities.NotifyEscrowRefunded, map[string]any{
			"project_id": p.ID,
			"escrow_id":  updated.ID,
			"amount":     amount,
		})
		outP, outE = p, &updated
		return nil
	})
	if err != nil {
		return entities.Project{}, nil, err
	}
	return outP, outE, nil
}

// UpdateForNewAmount reprices a pending escrow with the rates it was
// created with. The accepted quote is not modified.
func (u *EscrowUseCase) UpdateForNewAmount(ctx context.Context, escrowID string, baseAmount int64) (entities.Escrow, error) {
	escrowID, err := cleanID(escrowID, ErrInvalidEscrowID)
	if err != nil {
		return entities.Escrow{}, err
	}
	current, err := u.loadEscrow(ctx, escrowID)
	if err != nil {
		return entities.Escrow{}, err
	}

	var out entities.Escrow
	err = u.withProjectLock(ctx, current.ProjectID, func() error {
		es, err := u.loadEscrow(ctx, escrowID)
		if err != nil {
			return err
		}
		if es.Status() != entities.EscrowStatusPending {
			err := &entities.InvalidTransitionError{Resource: "escrow", Transition: entities.TransitionReprice, From: string(es.Status())}
			observeEscrow(entities.TransitionReprice, err)
			return err
		}
		fees, err := entities.CalculateFees(es.Fees.Repricing(baseAmount, es.Urgent, es.ProviderVerified, u.Fees.AdvancePercent))
		if err != nil {
			return err
		}
		err = es.Reprice(fees, u.Now())
		observeEscrow(entities.TransitionReprice, err)
		if err != nil {
			return err
		}
		p, err := u.loadProject(ctx, es.ProjectID)
		if err != nil {
			return err
		}
		accepted, err := u.findAccepted(ctx, p)
		if err != nil {
			return err
		}
		if err := u.checkConsistency(p, &es, accepted); err != nil {
			return err
		}
		es, err = u.Escrows.Update(ctx, es)
		if err != nil {
			return err
		}
		u.Logger.Info("[escrow][usecase] repriced",
			zap.String("escrow_id", es.ID),
			zap.Int64("base_amount", baseAmount),
			zap.Int64("total_amount", es.Fees.TotalAmount))
		out = es
		return nil
	})
	if err != nil {
		return entities.Escrow{}, err
	}
	return out, nil
}

func (u *EscrowUseCase) GetByID(ctx context.Context, escrowID string) (entities.Escrow, error) {
	escrowID, err := cleanID(escrowID, ErrInvalidEscrowID)
	if err != nil {
		return entities.Escrow{}, err
	}
	return u.loadEscrow(ctx, escrowID)
}

func (u *EscrowUseCase) GetByProjectID(ctx context.Context, projectID string) (entities.Escrow, error) {
	projectID, err := cleanID(projectID, ErrInvalidProjectID)
	if err != nil {
		return entities.Escrow{}, err
	}
	es, err := u.findEscrow(ctx, projectID)
	if err != nil {
		return entities.Escrow{}, err
	}
	if es == nil {
		return entities.Escrow{}, ErrEscrowNotFound
	}
	return *es, nil
}

func (u *EscrowUseCase) ListLedger(ctx context.Context, escrowID string) ([]entities.LedgerEntry, error) {
	escrowID, err := cleanID(escrowID, ErrInvalidEscrowID)
	if err != nil {
		return nil, err
	}
	if _, err := u.loadEscrow(ctx, escrowID); err != nil {
		return nil, err
	}
	if u.Journal == nil {
		return []entities.LedgerEntry{}, nil
	}
	return u.Journal.ListByEscrowID(ctx, escrowID)
}

func (e engine) notifyBoth(ctx context.Context, p entities.Project, template string, payload map[string]any) {
	e.notify(ctx, p.ClientID, template, payload)
	e.notify(ctx, p.ArtisanID, template, payload)
}
