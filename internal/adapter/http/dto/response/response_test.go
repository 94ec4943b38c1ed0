package response

import (
	"testing"
	"time"

	"artisan_escrow/internal/domain/entities"
	"artisan_escrow/internal/usecase"
)

func TestFromProject(t *testing.T) {
	now := time.Now().UTC()

	t.Run("draft has no expiry", func(t *testing.T) {
		res := FromProject(entities.Project{ID: "p-1", Status: entities.ProjectStatusDraft, CreatedAt: now})
		if res.ExpiresAt != nil {
			t.Fatalf("expected nil expires_at, got %v", res.ExpiresAt)
		}
		if res.Status != "draft" {
			t.Fatalf("unexpected status: %+v", res)
		}
	})

	t.Run("open carries expiry", func(t *testing.T) {
		res := FromProject(entities.Project{ID: "p-1", Status: entities.ProjectStatusOpen, ExpiresAt: now})
		if res.ExpiresAt == nil || !res.ExpiresAt.Equal(now) {
			t.Fatalf("unexpected expires_at: %v", res.ExpiresAt)
		}
	})
}

func TestFromEscrow(t *testing.T) {
	now := time.Now().UTC()
	base := entities.Escrow{
		ID:        "e-1",
		ProjectID: "p-1",
		Fees:      entities.FeeBreakdown{TotalAmount: 1000, ArtisanPayout: 720, AdvanceAmount: 360},
	}

	t.Run("pending", func(t *testing.T) {
		e := base
		e.State = entities.EscrowPending{}
		res := FromEscrow(e)
		if res.Status != "pending" || res.Deposit != nil || res.AdvancePaid != 0 {
			t.Fatalf("unexpected pending mapping: %+v", res)
		}
	})

	t.Run("frozen after advance", func(t *testing.T) {
		e := base
		e.State = entities.EscrowFrozen{Deposit: entities.DepositInfo{Reference: "pay-1"}, AdvancePaid: 360, Reason: "late", FrozenAt: now}
		res := FromEscrow(e)
		if res.Status != "frozen" || res.FrozenReason != "late" || res.AdvancePaid != 360 {
			t.Fatalf("unexpected frozen mapping: %+v", res)
		}
		if res.Deposit == nil || res.Deposit.Reference != "pay-1" {
			t.Fatalf("expected deposit, got %+v", res.Deposit)
		}
	})

	t.Run("released", func(t *testing.T) {
		e := base
		e.State = entities.EscrowReleased{AdvancePaid: 360, FinalRelease: 360, ReleasedAt: now}
		res := FromEscrow(e)
		if res.FinalRelease != 360 || res.Settlement != nil {
			t.Fatalf("unexpected released mapping: %+v", res)
		}
	})

	t.Run("refunded by settlement", func(t *testing.T) {
		e := base
		s := entities.DisputeSettlement{Mode: entities.ResolutionRefundClient, ClientRefund: 1000}
		e.State = entities.EscrowRefunded{RefundAmount: 1000, Settlement: &s}
		res := FromEscrow(e)
		if res.RefundAmount != 1000 || res.Settlement == nil || res.Settlement.Mode != entities.ResolutionRefundClient {
			t.Fatalf("unexpected refunded mapping: %+v", res)
		}
	})
}

func TestFromAcceptance(t *testing.T) {
	t.Run("degraded", func(t *testing.T) {
		res := FromAcceptance(usecase.Acceptance{
			Project: entities.Project{ID: "p-1", Status: entities.ProjectStatusPaymentPending, DegradedReason: "escrow could not be created"},
			Quote:   entities.Quote{ID: "q-1", Status: entities.QuoteStatusAccepted},
		})
		if res.Escrow != nil {
			t.Fatalf("expected nil escrow, got %+v", res.Escrow)
		}
		if res.Project.DegradedReason == "" {
			t.Fatalf("expected degraded reason")
		}
	})

	t.Run("with escrow", func(t *testing.T) {
		e := entities.Escrow{ID: "e-1", State: entities.EscrowPending{}}
		res := FromAcceptance(usecase.Acceptance{Escrow: &e})
		if res.Escrow == nil || res.Escrow.ID != "e-1" {
			t.Fatalf("unexpected escrow: %+v", res.Escrow)
		}
	})
}

func TestFromLedger(t *testing.T) {
	res := FromLedger(nil)
	if res == nil || len(res) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", res)
	}
	res = FromLedger([]entities.LedgerEntry{{ID: "l-1", Kind: entities.LedgerDepositHeld, Amount: 10}})
	if len(res) != 1 || res[0].Kind != "deposit_held" {
		t.Fatalf("unexpected ledger mapping: %+v", res)
	}
}
