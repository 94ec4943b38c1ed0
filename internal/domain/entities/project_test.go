package entities

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openProject(t *testing.T) Project {
	t.Helper()
	p := Project{ID: "p-1", ClientID: "client-1", Status: ProjectStatusDraft, CreatedAt: testNow}
	require.NoError(t, p.Publish(0, testNow))
	return p
}

func TestProject_PublishSetsQuoteWindow(t *testing.T) {
	p := openProject(t)
	assert.Equal(t, ProjectStatusOpen, p.Status)
	assert.Equal(t, testNow.Add(DefaultQuoteWindow), p.ExpiresAt)
	assert.False(t, p.IsExpiredAt(testNow.Add(DefaultQuoteWindow)))
	assert.True(t, p.IsExpiredAt(testNow.Add(DefaultQuoteWindow+time.Second)))
}

func TestProject_HappyPath(t *testing.T) {
	p := openProject(t)
	assert.True(t, p.RecordQuote(testNow))
	assert.False(t, p.RecordQuote(testNow))
	assert.Equal(t, ProjectStatusQuoteReceived, p.Status)

	q := Quote{ID: "q-1", ProjectID: p.ID, ArtisanID: "artisan-1"}
	require.NoError(t, p.AcceptQuote(q, false, testNow))
	assert.Equal(t, "artisan-1", p.ArtisanID)

	require.NoError(t, p.StartWork(testNow))
	require.NoError(t, p.RequestCompletion("artisan-1", testNow))
	assert.Equal(t, "artisan-1", p.CompletionRequestedBy)

	err := p.ConfirmCompletion("artisan-1", testNow)
	assert.True(t, errors.Is(err, ErrForbiddenActor))

	require.NoError(t, p.ConfirmCompletion("client-1", testNow))
	assert.Equal(t, ProjectStatusCompleted, p.Status)
	assert.True(t, p.IsTerminal())
}

func TestProject_DegradedBranchIsReversible(t *testing.T) {
	p := openProject(t)
	require.NoError(t, p.AcceptQuote(Quote{ID: "q-1", ArtisanID: "artisan-1"}, true, testNow))
	require.NoError(t, p.MarkPaymentPending("escrow creation failed", testNow))
	assert.Equal(t, "escrow creation failed", p.DegradedReason)

	require.NoError(t, p.StartWork(testNow))
	assert.Equal(t, ProjectStatusInProgress, p.Status)
	assert.Empty(t, p.DegradedReason)
}

func TestProject_CancelPolicy(t *testing.T) {
	p := openProject(t)
	assert.ErrorIs(t, p.Cancel("artisan-1", testNow), ErrForbiddenActor)

	accepted := openProject(t)
	require.NoError(t, accepted.AcceptQuote(Quote{ID: "q-1", ArtisanID: "artisan-1"}, true, testNow))
	err := accepted.Cancel("client-1", testNow)
	require.Error(t, err)
	assert.True(t, IsPolicy(err))
	assert.Equal(t, ProjectStatusQuoteAccepted, accepted.Status)

	require.NoError(t, p.Cancel("client-1", testNow))
	assert.Equal(t, ProjectStatusCancelled, p.Status)

	err = p.Cancel("client-1", testNow)
	assert.True(t, IsInvalidTransition(err))
}

func TestProject_DisputeAlwaysCompletes(t *testing.T) {
	p := openProject(t)
	require.NoError(t, p.AcceptQuote(Quote{ID: "q-1", ArtisanID: "artisan-1"}, true, testNow))
	require.NoError(t, p.StartWork(testNow))

	assert.ErrorIs(t, p.RaiseDispute("stranger", "late", testNow), ErrForbiddenActor)
	require.NoError(t, p.RaiseDispute("client-1", "late", testNow))
	require.NotNil(t, p.Dispute)
	assert.Equal(t, "client-1", p.Dispute.RaisedBy)

	require.NoError(t, p.ResolveDispute("admin-1", testNow))
	assert.Equal(t, ProjectStatusCompleted, p.Status)
	assert.Equal(t, "admin-1", p.Dispute.ResolvedBy)
}

func TestProject_ExpireOnlyWhileAcceptingQuotes(t *testing.T) {
	p := openProject(t)
	require.NoError(t, p.CheckAcceptsQuotes())
	require.NoError(t, p.Expire(testNow))
	assert.True(t, IsInvalidTransition(p.CheckAcceptsQuotes()))
	assert.Equal(t, ProjectStatusExpired, p.Status)
	assert.True(t, IsInvalidTransition(p.Expire(testNow)))
}
