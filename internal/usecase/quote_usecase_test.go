package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"

	"artisan_escrow/internal/domain/entities"
	"artisan_escrow/internal/usecase/interfaces"
	mock_interfaces "artisan_escrow/internal/usecase/interfaces/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestQuoteUseCase_Submit(t *testing.T) {
	ctx := context.Background()

	t.Run("first quote moves project to quote_received", func(t *testing.T) {
		h := newHarness(t)
		p := h.openProject(false)
		q := h.submit(p.ID, artisanID, 50000)

		assert.Equal(t, entities.QuoteStatusPending, q.Status)
		got, err := h.projects.GetByID(ctx, p.ID)
		require.NoError(t, err)
		assert.Equal(t, entities.ProjectStatusQuoteReceived, got.Status)
	})

	t.Run("urgent project makes the quote urgent", func(t *testing.T) {
		h := newHarness(t)
		p := h.openProject(true)
		q := h.submit(p.ID, artisanID, 50000)

		assert.True(t, q.Urgent)
		assert.Equal(t, entities.DefaultUrgentSurchargePercent, q.UrgentSurchargePercent)
	})

	t.Run("one live quote per artisan", func(t *testing.T) {
		h := newHarness(t)
		p := h.openProject(false)
		h.submit(p.ID, artisanID, 50000)

		_, err := h.quotes.Submit(ctx, QuoteSubmission{ProjectID: p.ID, ArtisanID: artisanID, Amount: 40000})
		assert.ErrorIs(t, err, ErrDuplicateQuote)
	})

	t.Run("resubmit after withdraw", func(t *testing.T) {
		h := newHarness(t)
		p := h.openProject(false)
		q := h.submit(p.ID, artisanID, 50000)
		_, err := h.quotes.Withdraw(ctx, q.ID, artisanID)
		require.NoError(t, err)

		_, err = h.quotes.Submit(ctx, QuoteSubmission{ProjectID: p.ID, ArtisanID: artisanID, Amount: 40000})
		assert.NoError(t, err)
	})

	t.Run("client cannot quote own project", func(t *testing.T) {
		h := newHarness(t)
		p := h.openProject(false)
		_, err := h.quotes.Submit(ctx, QuoteSubmission{ProjectID: p.ID, ArtisanID: clientID, Amount: 100})
		assert.ErrorIs(t, err, entities.ErrForbiddenActor)
	})

	t.Run("draft project rejects quotes", func(t *testing.T) {
		h := newHarness(t)
		p, err := h.projects.Create(ctx, ProjectDraft{ClientID: clientID, Title: "Fence"})
		require.NoError(t, err)

		_, err = h.quotes.Submit(ctx, QuoteSubmission{ProjectID: p.ID, ArtisanID: artisanID, Amount: 100})
		assert.True(t, entities.IsInvalidTransition(err), "got %v", err)
	})

	t.Run("expired project rejects quotes", func(t *testing.T) {
		h := newHarness(t)
		p := h.openProject(false)
		h.now = p.ExpiresAt.Add(1)

		_, err := h.quotes.Submit(ctx, QuoteSubmission{ProjectID: p.ID, ArtisanID: artisanID, Amount: 100})
		assert.True(t, entities.IsInvalidTransition(err), "got %v", err)
		got, err := h.projects.GetByID(ctx, p.ID)
		require.NoError(t, err)
		assert.Equal(t, entities.ProjectStatusExpired, got.Status)
	})

	t.Run("invalid input", func(t *testing.T) {
		h := newHarness(t)
		_, err := h.quotes.Submit(ctx, QuoteSubmission{ProjectID: " ", ArtisanID: artisanID, Amount: 100})
		assert.ErrorIs(t, err, ErrInvalidProjectID)
		_, err = h.quotes.Submit(ctx, QuoteSubmission{ProjectID: "p", ArtisanID: artisanID, Amount: 0})
		assert.ErrorIs(t, err, entities.ErrInvalidQuoteAmount)
	})
}

func TestQuoteUseCase_Negotiation(t *testing.T) {
	ctx := context.Background()

	t.Run("mark viewed is idempotent", func(t *testing.T) {
		h := newHarness(t)
		p := h.openProject(false)
		q := h.submit(p.ID, artisanID, 50000)

		first, err := h.quotes.MarkViewed(ctx, q.ID, clientID)
		require.NoError(t, err)
		second, err := h.quotes.MarkViewed(ctx, q.ID, clientID)
		require.NoError(t, err)
		assert.Equal(t, entities.QuoteStatusViewed, second.Status)
		assert.Equal(t, first.Version, second.Version)
	})

	t.Run("only the client views", func(t *testing.T) {
		h := newHarness(t)
		p := h.openProject(false)
		q := h.submit(p.ID, artisanID, 50000)

		_, err := h.quotes.MarkViewed(ctx, q.ID, artisan2ID)
		assert.ErrorIs(t, err, entities.ErrForbiddenActor)
	})

	t.Run("reject keeps reason", func(t *testing.T) {
		h := newHarness(t)
		p := h.openProject(false)
		q := h.submit(p.ID, artisanID, 50000)

		got, err := h.quotes.Reject(ctx, q.ID, clientID, " too expensive ")
		require.NoError(t, err)
		assert.Equal(t, entities.QuoteStatusRejected, got.Status)
		assert.Equal(t, "too expensive", got.RejectionReason)
	})

	t.Run("update amount only by owner while live", func(t *testing.T) {
		h := newHarness(t)
		p := h.openProject(false)
		q := h.submit(p.ID, artisanID, 50000)

		_, err := h.quotes.UpdateAmount(ctx, q.ID, artisan2ID, 45000)
		assert.ErrorIs(t, err, entities.ErrForbiddenActor)

		got, err := h.quotes.UpdateAmount(ctx, q.ID, artisanID, 45000)
		require.NoError(t, err)
		assert.Equal(t, int64(45000), got.Amount)
	})

	t.Run("accepted quote is immutable", func(t *testing.T) {
		h := newHarness(t)
		acc, _ := h.accepted(false)

		_, err := h.quotes.UpdateAmount(ctx, acc.Quote.ID, artisanID, 1)
		assert.Error(t, err)
		_, err = h.quotes.Withdraw(ctx, acc.Quote.ID, artisanID)
		assert.True(t, entities.IsInvalidTransition(err), "got %v", err)

		got, err := h.quotes.GetByID(ctx, acc.Quote.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(100000), got.Amount)
		assert.Equal(t, entities.QuoteStatusAccepted, got.Status)
	})

	t.Run("list by project", func(t *testing.T) {
		h := newHarness(t)
		p := h.openProject(false)
		h.submit(p.ID, artisanID, 50000)
		h.submit(p.ID, artisan2ID, 60000)

		got, err := h.quotes.ListByProjectID(ctx, p.ID)
		require.NoError(t, err)
		assert.Len(t, got, 2)

		_, err = h.quotes.ListByProjectID(ctx, "missing")
		assert.ErrorIs(t, err, ErrProjectNotFound)
	})
}

func TestQuoteUseCase_Accept(t *testing.T) {
	ctx := context.Background()

	t.Run("creates escrow and rejects siblings", func(t *testing.T) {
		h := newHarness(t)
		acc, other := h.accepted(true)

		assert.Equal(t, entities.ProjectStatusQuoteAccepted, acc.Project.Status)
		assert.Equal(t, acc.Quote.ID, acc.Project.AcceptedQuoteID)
		assert.Equal(t, artisanID, acc.Project.ArtisanID)
		assert.Equal(t, entities.QuoteStatusAccepted, acc.Quote.Status)
		require.NotNil(t, acc.Escrow)
		assert.Equal(t, entities.EscrowStatusPending, acc.Escrow.Status())
		assert.Equal(t, int64(100000), acc.Escrow.Fees.TotalAmount)
		assert.Equal(t, int64(36000), acc.Escrow.Fees.AdvanceAmount)

		rejected, err := h.quotes.GetByID(ctx, other.ID)
		require.NoError(t, err)
		assert.Equal(t, entities.QuoteStatusRejected, rejected.Status)
		assert.Equal(t, reasonOtherQuoteAccepted, rejected.RejectionReason)
	})

	t.Run("accepting the same quote again is a no-op", func(t *testing.T) {
		h := newHarness(t)
		acc, _ := h.accepted(false)

		again, err := h.quotes.Accept(ctx, acc.Quote.ID, clientID, false)
		require.NoError(t, err)
		assert.Equal(t, acc.Escrow.ID, again.Escrow.ID)
		assert.Equal(t, acc.Project.Version, again.Project.Version)
	})

	t.Run("second quote cannot be accepted", func(t *testing.T) {
		h := newHarness(t)
		acc, other := h.accepted(false)

		_, err := h.quotes.Accept(ctx, other.ID, clientID, false)
		assert.ErrorIs(t, err, ErrQuoteAlreadyAccepted)

		got, err := h.projects.GetByID(ctx, acc.Project.ID)
		require.NoError(t, err)
		assert.Equal(t, acc.Quote.ID, got.AcceptedQuoteID)
	})

	t.Run("only the client accepts", func(t *testing.T) {
		h := newHarness(t)
		p := h.openProject(false)
		q := h.submit(p.ID, artisanID, 1000)

		_, err := h.quotes.Accept(ctx, q.ID, artisanID, false)
		assert.ErrorIs(t, err, entities.ErrForbiddenActor)
	})

	t.Run("concurrent accepts pick one winner", func(t *testing.T) {
		h := newHarness(t)
		p := h.openProject(false)
		quotes := []entities.Quote{
			h.submit(p.ID, artisanID, 1000),
			h.submit(p.ID, artisan2ID, 2000),
			h.submit(p.ID, "artisan-3", 3000),
		}

		var wg sync.WaitGroup
		errs := make([]error, len(quotes))
		for i, q := range quotes {
			wg.Add(1)
			go func(i int, id string) {
				defer wg.Done()
				_, errs[i] = h.quotes.Accept(ctx, id, clientID, false)
			}(i, q.ID)
		}
		wg.Wait()

		wins := 0
		for _, err := range errs {
			if err == nil {
				wins++
				continue
			}
			assert.ErrorIs(t, err, ErrQuoteAlreadyAccepted)
		}
		assert.Equal(t, 1, wins)

		list, err := h.quotes.ListByProjectID(ctx, p.ID)
		require.NoError(t, err)
		accepted := 0
		for _, q := range list {
			if q.Status == entities.QuoteStatusAccepted {
				accepted++
			}
		}
		assert.Equal(t, 1, accepted)
	})

	t.Run("falls back to payment_pending when escrow write fails", func(t *testing.T) {
		h := newHarness(t)
		p := h.openProject(false)
		q := h.submit(p.ID, artisanID, 1000)
		other := h.submit(p.ID, artisan2ID, 2000)

		memTx := h.store.Transactions()
		tx := mock_interfaces.NewMockITransactionRepository(h.ctrl)
		tx.EXPECT().CommitAcceptance(gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, c interfaces.AcceptanceCommit) (interfaces.AcceptanceCommit, error) {
				if c.Escrow != nil {
					return interfaces.AcceptanceCommit{}, errors.New("escrow table unavailable")
				}
				return memTx.CommitAcceptance(ctx, c)
			}).Times(2)
		h.deps.Tx = tx
		h.rebuild()

		acc, err := h.quotes.Accept(ctx, q.ID, clientID, false)
		require.NoError(t, err)
		assert.Nil(t, acc.Escrow)
		assert.Equal(t, entities.ProjectStatusPaymentPending, acc.Project.Status)
		assert.Equal(t, degradedEscrowNotCreated, acc.Project.DegradedReason)

		rejected, err := h.quotes.GetByID(ctx, other.ID)
		require.NoError(t, err)
		assert.Equal(t, entities.QuoteStatusRejected, rejected.Status)

		es, err := h.escrows.Create(ctx, p.ID)
		require.NoError(t, err)
		assert.Equal(t, entities.EscrowStatusPending, es.Status())
		again, err := h.escrows.Create(ctx, p.ID)
		require.NoError(t, err)
		assert.Equal(t, es.ID, again.ID)
	})

	t.Run("version conflict is surfaced", func(t *testing.T) {
		h := newHarness(t)
		p := h.openProject(false)
		q := h.submit(p.ID, artisanID, 1000)

		tx := mock_interfaces.NewMockITransactionRepository(h.ctrl)
		tx.EXPECT().CommitAcceptance(gomock.Any(), gomock.Any()).Return(interfaces.AcceptanceCommit{}, interfaces.ErrVersionConflict)
		h.deps.Tx = tx
		h.rebuild()

		_, err := h.quotes.Accept(ctx, q.ID, clientID, false)
		assert.ErrorIs(t, err, interfaces.ErrVersionConflict)

		got, err := h.quotes.GetByID(ctx, q.ID)
		require.NoError(t, err)
		assert.Equal(t, entities.QuoteStatusPending, got.Status)
	})
}
