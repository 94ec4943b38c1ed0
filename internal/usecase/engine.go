package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"artisan_escrow/internal/domain/entities"
	"artisan_escrow/internal/infrastructure/metrics"
	"artisan_escrow/internal/usecase/interfaces"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const defaultPaymentTimeout = 15 * time.Second

// Deps are the ports and settings shared by the marketplace use cases.
// Notifier and Journal are optional.
type Deps struct {
	Projects interfaces.IProjectRepository
	Quotes   interfaces.IQuoteRepository
	Escrows  interfaces.IEscrowRepository
	Tx       interfaces.ITransactionRepository
	Gateway  interfaces.IPaymentGateway
	Notifier interfaces.INotificationSink
	Locker   interfaces.IProjectLocker
	Journal  interfaces.ILedgerJournal

	Fees           entities.FeePolicy
	QuoteWindow    time.Duration
	PaymentTimeout time.Duration

	Logger *zap.Logger
	Now    func() time.Time
	NewID  func() string
}

// engine carries the helpers every use case needs: project locking, record
// loading, the consistency check and post-commit side effects.
type engine struct {
	Deps
}

func newEngine(d Deps) engine {
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	if d.Now == nil {
		d.Now = func() time.Time { return time.Now().UTC() }
	}
	if d.NewID == nil {
		d.NewID = uuid.NewString
	}
	if d.Fees == (entities.FeePolicy{}) {
		d.Fees = entities.DefaultFeePolicy()
	}
	if d.QuoteWindow <= 0 {
		d.QuoteWindow = entities.DefaultQuoteWindow
	}
	if d.PaymentTimeout <= 0 {
		d.PaymentTimeout = defaultPaymentTimeout
	}
	return engine{Deps: d}
}

// withProjectLock runs fn while holding the project's lock. Every state
// change on a project, its quotes or its escrow goes through here.
func (e engine) withProjectLock(ctx context.Context, projectID string, fn func() error) error {
	unlock, err := e.Locker.Lock(ctx, projectID)
	if err != nil {
		e.Logger.Warn("[lock] acquire failed", zap.String("project_id", projectID), zap.Error(err))
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("%w: project %s: %v", ErrProjectBusy, projectID, err)
	}
	defer unlock()
	return fn()
}

func cleanID(id string, invalid error) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", invalid
	}
	return id, nil
}

func (e engine) loadProject(ctx context.Context, id string) (entities.Project, error) {
	p, err := e.Projects.GetByID(ctx, id)
	if err != nil {
		return entities.Project{}, err
	}
	if p.ID == "" {
		return entities.Project{}, ErrProjectNotFound
	}
	return p, nil
}

func (e engine) loadQuote(ctx context.Context, id string) (entities.Quote, error) {
	q, err := e.Quotes.GetByID(ctx, id)
	if err != nil {
		return entities.Quote{}, err
	}
	if q.ID == "" {
		return entities.Quote{}, ErrQuoteNotFound
	}
	return q, nil
}

func (e engine) loadEscrow(ctx context.Context, id string) (entities.Escrow, error) {
	es, err := e.Escrows.GetByID(ctx, id)
	if err != nil {
		return entities.Escrow{}, err
	}
	if es.ID == "" {
		return entities.Escrow{}, ErrEscrowNotFound
	}
	return es, nil
}

// findEscrow returns the project's escrow, or nil when it has none.
func (e engine) findEscrow(ctx context.Context, projectID string) (*entities.Escrow, error) {
	es, err := e.Escrows.GetByProjectID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if es.ID == "" {
		return nil, nil
	}
	return &es, nil
}

// findAccepted returns the project's accepted quote, or nil.
func (e engine) findAccepted(ctx context.Context, p entities.Project) (*entities.Quote, error) {
	if p.AcceptedQuoteID == "" {
		return nil, nil
	}
	q, err := e.Quotes.GetByID(ctx, p.AcceptedQuoteID)
	if err != nil {
		return nil, err
	}
	if q.ID == "" {
		return nil, &entities.InvariantViolationError{
			Invariant: "accepted_quote",
			Detail:    fmt.Sprintf("project %s references missing quote %s", p.ID, p.AcceptedQuoteID),
		}
	}
	return &q, nil
}

// checkConsistency must pass before any write that changes a project or its
// escrow.
func (e engine) checkConsistency(p entities.Project, es *entities.Escrow, accepted *entities.Quote) error {
	if err := entities.CheckConsistency(p, es, accepted); err != nil {
		e.Logger.Error("[consistency] refusing to persist inconsistent state",
			zap.String("project_id", p.ID),
			zap.String("project_status", string(p.Status)),
			zap.Error(err))
		return err
	}
	return nil
}

// expireIfDue lazily expires a project whose quote window has elapsed.
// Must be called with the project lock held.
func (e engine) expireIfDue(ctx context.Context, p entities.Project) (entities.Project, error) {
	now := e.Now()
	if !p.IsExpiredAt(now) {
		return p, nil
	}
	if err := p.Expire(now); err != nil {
		return entities.Project{}, err
	}
	if err := e.checkConsistency(p, nil, nil); err != nil {
		return entities.Project{}, err
	}
	updated, err := e.Projects.Update(ctx, p)
	if err != nil {
		return entities.Project{}, err
	}
	metrics.ProjectTransitions.WithLabelValues(entities.TransitionProjectExpire).Inc()
	e.Logger.Info("[project][usecase] expired", zap.String("project_id", p.ID))

	quotes, err := e.Quotes.ListByProjectID(ctx, p.ID)
	if err != nil {
		e.Logger.Warn("[project][usecase] list quotes for expiry failed", zap.String("project_id", p.ID), zap.Error(err))
		quotes = nil
	}
	for _, q := range quotes {
		if !q.IsLive() {
			continue
		}
		if err := q.Expire(now); err != nil {
			continue
		}
		if _, err := e.Quotes.Update(ctx, q); err != nil {
			e.Logger.Warn("[quote][usecase] expire failed", zap.String("quote_id", q.ID), zap.Error(err))
			continue
		}
		e.notify(ctx, q.ArtisanID, entities.NotifyProjectExpired, map[string]any{"project_id": p.ID, "quote_id": q.ID})
	}
	e.notify(ctx, p.ClientID, entities.NotifyProjectExpired, map[string]any{"project_id": p.ID})
	return updated, nil
}

// notify is fire-and-forget: a failure never undoes the committed transition.
func (e engine) notify(ctx context.Context, userID, template string, payload map[string]any) {
	if e.Notifier == nil || userID == "" {
		return
	}
	if err := e.Notifier.Notify(ctx, userID, template, payload); err != nil {
		metrics.NotificationsFailed.WithLabelValues(template).Inc()
		e.Logger.Warn("[notification] delivery failed",
			zap.String("user_id", userID),
			zap.String("template", template),
			zap.Error(err))
	}
}

func (e engine) ledgerEntry(es entities.Escrow, kind entities.LedgerEntryKind, amount int64, reference string) entities.LedgerEntry {
	return entities.LedgerEntry{
		ID:        e.NewID(),
		EscrowID:  es.ID,
		ProjectID: es.ProjectID,
		Kind:      kind,
		Amount:    amount,
		Reference: reference,
		CreatedAt: e.Now(),
	}
}

// journal records money movements after commit. A failure is logged and
// counted; the escrow record stays authoritative.
func (e engine) journal(ctx context.Context, entries ...entities.LedgerEntry) {
	if e.Journal == nil || len(entries) == 0 {
		return
	}
	if err := e.Journal.Record(ctx, entries...); err != nil {
		metrics.JournalFailures.Inc()
		e.Logger.Error("[ledger] journal write failed",
			zap.String("escrow_id", entries[0].EscrowID),
			zap.Int("entries", len(entries)),
			zap.Error(err))
	}
}

// observeEscrow counts an escrow transition attempt by outcome.
func observeEscrow(transition string, err error) {
	result := metrics.ResultOK
	switch {
	case err == nil:
	case entities.IsInvalidTransition(err), entities.IsPolicy(err):
		result = metrics.ResultRejected
	default:
		result = metrics.ResultError
	}
	metrics.EscrowTransitions.WithLabelValues(transition, result).Inc()
}

func observeProject(transition string) {
	metrics.ProjectTransitions.WithLabelValues(transition).Inc()
}
