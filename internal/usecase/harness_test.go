package usecase

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"artisan_escrow/internal/adapter/persistence/journal"
	"artisan_escrow/internal/adapter/persistence/memory"
	"artisan_escrow/internal/domain/entities"
	"artisan_escrow/internal/infrastructure/lock"
	mock_interfaces "artisan_escrow/internal/usecase/interfaces/mocks"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap/zaptest"
)

const (
	clientID   = "client-1"
	artisanID  = "artisan-1"
	artisan2ID = "artisan-2"
	adminID    = "admin-1"
)

// harness wires the use cases over the in-memory store with a mocked
// gateway, so flows run end to end.
type harness struct {
	t       *testing.T
	ctrl    *gomock.Controller
	store   *memory.Store
	journal *journal.MemoryJournal
	gateway *mock_interfaces.MockIPaymentGateway
	deps    Deps
	now     time.Time
	seq     atomic.Int64

	projects *ProjectUseCase
	quotes   *QuoteUseCase
	escrows  *EscrowUseCase
	disputes *DisputeUseCase
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	ctrl := gomock.NewController(t)
	notifier := mock_interfaces.NewMockINotificationSink(ctrl)
	notifier.EXPECT().Notify(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	h := &harness{
		t:       t,
		ctrl:    ctrl,
		store:   memory.NewStore(),
		journal: journal.NewMemoryJournal(),
		gateway: mock_interfaces.NewMockIPaymentGateway(ctrl),
		now:     time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC),
	}
	h.deps = Deps{
		Projects:       h.store.Projects(),
		Quotes:         h.store.Quotes(),
		Escrows:        h.store.Escrows(),
		Tx:             h.store.Transactions(),
		Gateway:        h.gateway,
		Notifier:       notifier,
		Locker:         lock.NewLocalLocker(2 * time.Second),
		Journal:        h.journal,
		PaymentTimeout: time.Second,
		Logger:         zaptest.NewLogger(t),
		Now:            func() time.Time { return h.now },
		NewID:          func() string { return fmt.Sprintf("id-%d", h.seq.Add(1)) },
	}
	h.rebuild()
	return h
}

// rebuild recreates the use cases after h.deps was changed.
func (h *harness) rebuild() {
	h.projects = NewProjectUseCase(h.deps)
	h.quotes = NewQuoteUseCase(h.deps)
	h.escrows = NewEscrowUseCase(h.deps)
	h.disputes = NewDisputeUseCase(h.deps)
}

func (h *harness) openProject(urgent bool) entities.Project {
	h.t.Helper()
	p, err := h.projects.Create(context.Background(), ProjectDraft{
		ClientID: clientID,
		Title:    "Repaint kitchen",
		Category: "painting",
		Urgent:   urgent,
		Publish:  true,
	})
	require.NoError(h.t, err)
	return p
}

func (h *harness) submit(projectID, artisan string, amount int64) entities.Quote {
	h.t.Helper()
	q, err := h.quotes.Submit(context.Background(), QuoteSubmission{ProjectID: projectID, ArtisanID: artisan, Amount: amount})
	require.NoError(h.t, err)
	return q
}

// accepted returns a project with two quotes where the first was accepted.
func (h *harness) accepted(verified bool) (Acceptance, entities.Quote) {
	h.t.Helper()
	p := h.openProject(false)
	q := h.submit(p.ID, artisanID, 100000)
	other := h.submit(p.ID, artisan2ID, 90000)
	acc, err := h.quotes.Accept(context.Background(), q.ID, clientID, verified)
	require.NoError(h.t, err)
	require.NotNil(h.t, acc.Escrow)
	return acc, other
}

func (h *harness) approveNextPayment() {
	h.gateway.EXPECT().ProcessPayment(gomock.Any(), gomock.Any()).
		Return(entities.PaymentResult{Success: true, Reference: "pay-1", Fees: 350}, nil)
}

// funded returns an in-progress project whose deposit is held.
func (h *harness) funded(verified bool) (entities.Project, entities.Escrow) {
	h.t.Helper()
	acc, _ := h.accepted(verified)
	h.approveNextPayment()
	es, err := h.escrows.ConfirmDeposit(context.Background(), acc.Escrow.ID, "card")
	require.NoError(h.t, err)
	p, err := h.projects.GetByID(context.Background(), acc.Project.ID)
	require.NoError(h.t, err)
	return p, es
}
