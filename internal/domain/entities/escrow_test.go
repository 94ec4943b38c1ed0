package entities

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func newTestEscrow(t *testing.T, verified bool) Escrow {
	t.Helper()
	fees, err := CalculateFees(DefaultFeePolicy().Input(100_000, false, verified))
	require.NoError(t, err)
	q := Quote{ID: "q-1", ProjectID: "p-1", ArtisanID: "artisan-1", Amount: 100_000, Status: QuoteStatusAccepted}
	return NewEscrow("esc-1", q, "client-1", verified, fees, testNow)
}

func heldEscrow(t *testing.T, verified bool) Escrow {
	t.Helper()
	e := newTestEscrow(t, verified)
	require.NoError(t, e.ConfirmDeposit(DepositInfo{Reference: "ref-1", Method: "card", ConfirmedAt: testNow}, testNow))
	return e
}

func TestEscrow_AdvanceThenFullRelease(t *testing.T) {
	e := heldEscrow(t, true)

	paid, err := e.ReleaseAdvance(testNow)
	require.NoError(t, err)
	assert.Equal(t, int64(36_000), paid)
	assert.Equal(t, EscrowStatusAdvancePaid, e.Status())
	assert.Equal(t, int64(36_000), e.AdvancePaid())

	remaining, err := e.ReleaseFull(testNow)
	require.NoError(t, err)
	assert.Equal(t, int64(36_000), remaining)
	assert.Equal(t, EscrowStatusReleased, e.Status())
	assert.Equal(t, int64(36_000), e.AdvancePaid())
	require.NoError(t, e.Validate())
}

func TestEscrow_SecondAdvanceFailsAndKeepsAmount(t *testing.T) {
	e := heldEscrow(t, true)
	_, err := e.ReleaseAdvance(testNow)
	require.NoError(t, err)

	_, err = e.ReleaseAdvance(testNow)
	require.Error(t, err)
	assert.True(t, IsInvalidTransition(err))
	assert.Equal(t, int64(36_000), e.AdvancePaid())
	assert.Equal(t, EscrowStatusAdvancePaid, e.Status())
}

func TestEscrow_AdvanceRequiresVerifiedProvider(t *testing.T) {
	e := heldEscrow(t, false)
	_, err := e.ReleaseAdvance(testNow)
	require.Error(t, err)
	assert.True(t, IsInvalidTransition(err))
	assert.Equal(t, EscrowStatusHeld, e.Status())
}

func TestEscrow_FullReleaseWithoutAdvance(t *testing.T) {
	e := heldEscrow(t, false)
	remaining, err := e.ReleaseFull(testNow)
	require.NoError(t, err)
	assert.Equal(t, int64(72_000), remaining)
}

func TestEscrow_InvalidTransitionsLeaveStateUnchanged(t *testing.T) {
	cases := []struct {
		name  string
		setup func(t *testing.T) Escrow
		apply func(e *Escrow) error
	}{
		{"deposit twice", func(t *testing.T) Escrow { return heldEscrow(t, false) }, func(e *Escrow) error {
			return e.ConfirmDeposit(DepositInfo{Reference: "other"}, testNow)
		}},
		{"advance from pending", func(t *testing.T) Escrow { return newTestEscrow(t, true) }, func(e *Escrow) error {
			_, err := e.ReleaseAdvance(testNow)
			return err
		}},
		{"release from pending", func(t *testing.T) Escrow { return newTestEscrow(t, true) }, func(e *Escrow) error {
			_, err := e.ReleaseFull(testNow)
			return err
		}},
		{"freeze from pending", func(t *testing.T) Escrow { return newTestEscrow(t, true) }, func(e *Escrow) error {
			return e.Freeze("x", testNow)
		}},
		{"refund from advance_paid", func(t *testing.T) Escrow {
			e := heldEscrow(t, true)
			_, err := e.ReleaseAdvance(testNow)
			require.NoError(t, err)
			return e
		}, func(e *Escrow) error {
			_, err := e.Refund(testNow)
			return err
		}},
		{"reprice after deposit", func(t *testing.T) Escrow { return heldEscrow(t, false) }, func(e *Escrow) error {
			return e.Reprice(e.Fees, testNow)
		}},
		{"release from frozen", func(t *testing.T) Escrow {
			e := heldEscrow(t, false)
			require.NoError(t, e.Freeze("dispute", testNow))
			return e
		}, func(e *Escrow) error {
			_, err := e.ReleaseFull(testNow)
			return err
		}},
		{"refund after release", func(t *testing.T) Escrow {
			e := heldEscrow(t, false)
			_, err := e.ReleaseFull(testNow)
			require.NoError(t, err)
			return e
		}, func(e *Escrow) error {
			_, err := e.Refund(testNow)
			return err
		}},
		{"settle while held", func(t *testing.T) Escrow { return heldEscrow(t, false) }, func(e *Escrow) error {
			return e.Settle(DisputeSettlement{Mode: ResolutionPayArtisan}, testNow)
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := tc.setup(t)
			before := e
			err := tc.apply(&e)
			require.Error(t, err)
			var ite *InvalidTransitionError
			require.ErrorAs(t, err, &ite)
			assert.Equal(t, string(before.Status()), ite.From)
			assert.Equal(t, before, e)
		})
	}
}

func TestEscrow_RefundFromPendingHeldAndFrozen(t *testing.T) {
	pending := newTestEscrow(t, false)
	amount, err := pending.Refund(testNow)
	require.NoError(t, err)
	assert.Equal(t, int64(100_000), amount)
	assert.Nil(t, pending.Deposit())

	held := heldEscrow(t, false)
	amount, err = held.Refund(testNow)
	require.NoError(t, err)
	assert.Equal(t, int64(100_000), amount)
	require.NotNil(t, held.Deposit())
	assert.Equal(t, "ref-1", held.Deposit().Reference)

	frozen := heldEscrow(t, true)
	_, err = frozen.ReleaseAdvance(testNow)
	require.NoError(t, err)
	require.NoError(t, frozen.Freeze("dispute", testNow))
	amount, err = frozen.Refund(testNow)
	require.NoError(t, err)
	assert.Equal(t, int64(64_000), amount)
	assert.Equal(t, EscrowStatusRefunded, frozen.Status())
}

func TestEscrow_RepriceWhilePending(t *testing.T) {
	e := newTestEscrow(t, true)
	fees, err := CalculateFees(DefaultFeePolicy().Input(200_000, false, true))
	require.NoError(t, err)

	require.NoError(t, e.Reprice(fees, testNow.Add(time.Minute)))
	assert.Equal(t, int64(200_000), e.Fees.TotalAmount)
	assert.Equal(t, int64(144_000), e.Fees.ArtisanPayout)
	assert.Equal(t, int64(72_000), e.Fees.AdvanceAmount)
	assert.Equal(t, EscrowStatusPending, e.Status())
}

func TestEscrow_SettleSplit(t *testing.T) {
	e := heldEscrow(t, false)
	require.NoError(t, e.Freeze("dispute", testNow))

	s, err := ComputeSettlement(e.Fees, e.AdvancePaid(), ResolutionSplit, 40)
	require.NoError(t, err)
	require.NoError(t, e.Settle(s, testNow))

	assert.Equal(t, EscrowStatusReleased, e.Status())
	rel := e.State.(EscrowReleased)
	assert.Equal(t, int64(50_000), rel.FinalRelease)
	require.NotNil(t, e.Settlement())
	assert.Equal(t, int64(40_000), e.Settlement().ClientRefund)
}

func TestEscrow_SettleRefundClient(t *testing.T) {
	e := heldEscrow(t, false)
	require.NoError(t, e.Freeze("dispute", testNow))

	s, err := ComputeSettlement(e.Fees, 0, ResolutionRefundClient, 0)
	require.NoError(t, err)
	require.NoError(t, e.Settle(s, testNow))
	assert.Equal(t, EscrowStatusRefunded, e.Status())
	assert.Equal(t, int64(100_000), e.State.(EscrowRefunded).RefundAmount)
}
