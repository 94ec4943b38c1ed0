package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"artisan_escrow/internal/domain/entities"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestEscrowUseCase_ConfirmDeposit(t *testing.T) {
	ctx := context.Background()

	t.Run("success holds funds and starts work", func(t *testing.T) {
		h := newHarness(t)
		acc, _ := h.accepted(false)
		h.gateway.EXPECT().ProcessPayment(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, req entities.PaymentRequest) (entities.PaymentResult, error) {
				assert.Equal(t, int64(100000), req.Amount)
				assert.Equal(t, "card", req.Method)
				assert.Equal(t, acc.Project.ID, req.Metadata["project_id"])
				assert.Equal(t, acc.Escrow.ID, req.Metadata["escrow_id"])
				return entities.PaymentResult{Success: true, Reference: "pay-42", Fees: 300}, nil
			})

		es, err := h.escrows.ConfirmDeposit(ctx, acc.Escrow.ID, "card")
		require.NoError(t, err)
		assert.Equal(t, entities.EscrowStatusHeld, es.Status())
		require.NotNil(t, es.Deposit())
		assert.Equal(t, "pay-42", es.Deposit().Reference)

		p, err := h.projects.GetByID(ctx, acc.Project.ID)
		require.NoError(t, err)
		assert.Equal(t, entities.ProjectStatusInProgress, p.Status)

		ledger, err := h.escrows.ListLedger(ctx, es.ID)
		require.NoError(t, err)
		require.Len(t, ledger, 1)
		assert.Equal(t, entities.LedgerDepositHeld, ledger[0].Kind)
		assert.Equal(t, int64(100000), ledger[0].Amount)
	})

	t.Run("declined payment parks project in payment_pending", func(t *testing.T) {
		h := newHarness(t)
		acc, _ := h.accepted(false)
		h.gateway.EXPECT().ProcessPayment(gomock.Any(), gomock.Any()).
			Return(entities.PaymentResult{Success: false, Message: "insufficient funds"}, nil)

		_, err := h.escrows.ConfirmDeposit(ctx, acc.Escrow.ID, "card")
		var ext *entities.ExternalServiceError
		require.True(t, errors.As(err, &ext), "got %v", err)
		assert.Equal(t, "declined", ext.Reason)
		assert.Equal(t, "insufficient funds", ext.Message)
		assert.True(t, ext.Retryable)

		es, err := h.escrows.GetByID(ctx, acc.Escrow.ID)
		require.NoError(t, err)
		assert.Equal(t, entities.EscrowStatusPending, es.Status())
		p, err := h.projects.GetByID(ctx, acc.Project.ID)
		require.NoError(t, err)
		assert.Equal(t, entities.ProjectStatusPaymentPending, p.Status)

		h.approveNextPayment()
		es, err = h.escrows.ConfirmDeposit(ctx, acc.Escrow.ID, "card")
		require.NoError(t, err)
		assert.Equal(t, entities.EscrowStatusHeld, es.Status())
		p, err = h.projects.GetByID(ctx, acc.Project.ID)
		require.NoError(t, err)
		assert.Equal(t, entities.ProjectStatusInProgress, p.Status)
		assert.Empty(t, p.DegradedReason)
	})

	t.Run("gateway timeout", func(t *testing.T) {
		h := newHarness(t)
		h.deps.PaymentTimeout = 20 * time.Millisecond
		h.rebuild()
		acc, _ := h.accepted(false)
		h.gateway.EXPECT().ProcessPayment(gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, _ entities.PaymentRequest) (entities.PaymentResult, error) {
				<-ctx.Done()
				return entities.PaymentResult{}, ctx.Err()
			})

		_, err := h.escrows.ConfirmDeposit(ctx, acc.Escrow.ID, "card")
		var ext *entities.ExternalServiceError
		require.True(t, errors.As(err, &ext), "got %v", err)
		assert.Equal(t, "timeout", ext.Reason)

		es, err := h.escrows.GetByID(ctx, acc.Escrow.ID)
		require.NoError(t, err)
		assert.Equal(t, entities.EscrowStatusPending, es.Status())
	})

	t.Run("early deadline error is a timeout", func(t *testing.T) {
		h := newHarness(t)
		acc, _ := h.accepted(false)
		h.gateway.EXPECT().ProcessPayment(gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, _ entities.PaymentRequest) (entities.PaymentResult, error) {
				require.NoError(t, ctx.Err())
				return entities.PaymentResult{}, fmt.Errorf("%w: rate: Wait(n=1) would exceed context deadline", context.DeadlineExceeded)
			})

		_, err := h.escrows.ConfirmDeposit(ctx, acc.Escrow.ID, "card")
		var ext *entities.ExternalServiceError
		require.True(t, errors.As(err, &ext), "got %v", err)
		assert.Equal(t, "timeout", ext.Reason)
	})

	t.Run("gateway error is unavailable", func(t *testing.T) {
		h := newHarness(t)
		acc, _ := h.accepted(false)
		h.gateway.EXPECT().ProcessPayment(gomock.Any(), gomock.Any()).
			Return(entities.PaymentResult{}, errors.New("connection refused"))

		_, err := h.escrows.ConfirmDeposit(ctx, acc.Escrow.ID, "card")
		var ext *entities.ExternalServiceError
		require.True(t, errors.As(err, &ext), "got %v", err)
		assert.Equal(t, "unavailable", ext.Reason)
	})

	t.Run("held escrow is not charged twice", func(t *testing.T) {
		h := newHarness(t)
		_, es := h.funded(false)

		_, err := h.escrows.ConfirmDeposit(ctx, es.ID, "card")
		assert.True(t, entities.IsInvalidTransition(err), "got %v", err)
	})

	t.Run("method is required", func(t *testing.T) {
		h := newHarness(t)
		_, err := h.escrows.ConfirmDeposit(ctx, "e-1", " ")
		assert.ErrorIs(t, err, ErrInvalidPaymentMethod)
	})
}

func TestEscrowUseCase_Releases(t *testing.T) {
	ctx := context.Background()

	t.Run("advance once for verified artisan", func(t *testing.T) {
		h := newHarness(t)
		_, es := h.funded(true)

		got, err := h.escrows.ReleaseAdvance(ctx, es.ID)
		require.NoError(t, err)
		assert.Equal(t, entities.EscrowStatusAdvancePaid, got.Status())
		assert.Equal(t, int64(36000), got.AdvancePaid())

		_, err = h.escrows.ReleaseAdvance(ctx, es.ID)
		assert.True(t, entities.IsInvalidTransition(err), "got %v", err)
		after, err := h.escrows.GetByID(ctx, es.ID)
		require.NoError(t, err)
		assert.Equal(t, entities.EscrowStatusAdvancePaid, after.Status())
	})

	t.Run("no advance for unverified artisan", func(t *testing.T) {
		h := newHarness(t)
		_, es := h.funded(false)

		_, err := h.escrows.ReleaseAdvance(ctx, es.ID)
		assert.True(t, entities.IsInvalidTransition(err), "got %v", err)
	})

	t.Run("full release completes the project", func(t *testing.T) {
		h := newHarness(t)
		p, es := h.funded(true)
		_, err := h.escrows.ReleaseAdvance(ctx, es.ID)
		require.NoError(t, err)
		_, err = h.projects.RequestCompletion(ctx, p.ID, artisanID)
		require.NoError(t, err)

		_, err = h.escrows.ReleaseFullPayment(ctx, es.ID, artisanID)
		assert.ErrorIs(t, err, entities.ErrForbiddenActor)

		got, err := h.escrows.ReleaseFullPayment(ctx, es.ID, clientID)
		require.NoError(t, err)
		assert.Equal(t, entities.EscrowStatusReleased, got.Status())
		released, ok := got.State.(entities.EscrowReleased)
		require.True(t, ok)
		assert.Equal(t, int64(36000), released.FinalRelease)

		proj, err := h.projects.GetByID(ctx, p.ID)
		require.NoError(t, err)
		assert.Equal(t, entities.ProjectStatusCompleted, proj.Status)

		ledger, err := h.escrows.ListLedger(ctx, es.ID)
		require.NoError(t, err)
		kinds := make([]entities.LedgerEntryKind, 0, len(ledger))
		for _, e := range ledger {
			kinds = append(kinds, e.Kind)
		}
		assert.Equal(t, []entities.LedgerEntryKind{
			entities.LedgerDepositHeld,
			entities.LedgerAdvanceReleased,
			entities.LedgerPayoutReleased,
			entities.LedgerCommissionKept,
		}, kinds)
	})

	t.Run("full release needs a completion request", func(t *testing.T) {
		h := newHarness(t)
		_, es := h.funded(false)

		_, err := h.escrows.ReleaseFullPayment(ctx, es.ID, clientID)
		assert.True(t, entities.IsInvalidTransition(err), "got %v", err)
		after, err := h.escrows.GetByID(ctx, es.ID)
		require.NoError(t, err)
		assert.Equal(t, entities.EscrowStatusHeld, after.Status())
	})
}

func TestEscrowUseCase_RefundAndReprice(t *testing.T) {
	ctx := context.Background()

	t.Run("admin refund of held funds cancels project", func(t *testing.T) {
		h := newHarness(t)
		p, es := h.funded(false)

		got, err := h.escrows.Refund(ctx, es.ID, adminID)
		require.NoError(t, err)
		refunded, ok := got.State.(entities.EscrowRefunded)
		require.True(t, ok)
		assert.Equal(t, int64(100000), refunded.RefundAmount)

		proj, err := h.projects.GetByID(ctx, p.ID)
		require.NoError(t, err)
		assert.Equal(t, entities.ProjectStatusCancelled, proj.Status)
	})

	t.Run("advance paid escrow cannot be refunded directly", func(t *testing.T) {
		h := newHarness(t)
		_, es := h.funded(true)
		_, err := h.escrows.ReleaseAdvance(ctx, es.ID)
		require.NoError(t, err)

		_, err = h.escrows.Refund(ctx, es.ID, adminID)
		assert.True(t, entities.IsInvalidTransition(err), "got %v", err)
	})

	t.Run("reprice pending escrow keeps original rates", func(t *testing.T) {
		h := newHarness(t)
		acc, _ := h.accepted(true)

		h.deps.Fees = entities.FeePolicy{CommissionPercent: 50, TVAPercent: 0, UrgentSurchargePercent: 0, AdvancePercent: 10}
		h.rebuild()
		got, err := h.escrows.UpdateForNewAmount(ctx, acc.Escrow.ID, 200000)
		require.NoError(t, err)
		assert.Equal(t, int64(200000), got.Fees.TotalAmount)
		assert.Equal(t, int64(20000), got.Fees.CommissionAmount)
		assert.Equal(t, int64(36000), got.Fees.TVAAmount)
		assert.Equal(t, int64(72000), got.Fees.AdvanceAmount)

		q, err := h.quotes.GetByID(ctx, acc.Quote.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(100000), q.Amount)
	})

	t.Run("reprice after deposit is rejected", func(t *testing.T) {
		h := newHarness(t)
		_, es := h.funded(false)

		_, err := h.escrows.UpdateForNewAmount(ctx, es.ID, 5)
		assert.True(t, entities.IsInvalidTransition(err), "got %v", err)
	})

	t.Run("lookups", func(t *testing.T) {
		h := newHarness(t)
		acc, _ := h.accepted(false)

		got, err := h.escrows.GetByProjectID(ctx, acc.Project.ID)
		require.NoError(t, err)
		assert.Equal(t, acc.Escrow.ID, got.ID)

		_, err = h.escrows.GetByID(ctx, "missing")
		assert.ErrorIs(t, err, ErrEscrowNotFound)
		_, err = h.escrows.GetByProjectID(ctx, "missing")
		assert.ErrorIs(t, err, ErrEscrowNotFound)
	})

	t.Run("create without accepted quote", func(t *testing.T) {
		h := newHarness(t)
		p := h.openProject(false)

		_, err := h.escrows.Create(ctx, p.ID)
		assert.True(t, entities.IsInvalidTransition(err), "got %v", err)
	})
}
