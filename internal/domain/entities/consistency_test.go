package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckConsistency(t *testing.T) {
	accepted := &Quote{ID: "q-1", ProjectID: "p-1", Status: QuoteStatusAccepted}

	pending := newTestEscrow(t, false)
	held := heldEscrow(t, false)
	frozen := heldEscrow(t, false)
	require.NoError(t, frozen.Freeze("x", testNow))
	released := heldEscrow(t, false)
	_, err := released.ReleaseFull(testNow)
	require.NoError(t, err)

	cases := []struct {
		name   string
		status ProjectStatus
		escrow *Escrow
		quote  *Quote
		ok     bool
	}{
		{"open without escrow", ProjectStatusOpen, nil, nil, true},
		{"open with escrow", ProjectStatusOpen, &pending, nil, false},
		{"open with accepted quote", ProjectStatusOpen, nil, accepted, false},
		{"quote accepted with pending escrow", ProjectStatusQuoteAccepted, &pending, accepted, true},
		{"quote accepted without escrow", ProjectStatusQuoteAccepted, nil, accepted, false},
		{"payment pending without escrow", ProjectStatusPaymentPending, nil, accepted, true},
		{"payment pending with pending escrow", ProjectStatusPaymentPending, &pending, accepted, true},
		{"in progress with held escrow", ProjectStatusInProgress, &held, accepted, true},
		{"in progress with pending escrow", ProjectStatusInProgress, &pending, accepted, false},
		{"disputed with frozen escrow", ProjectStatusDisputed, &frozen, accepted, true},
		{"disputed with held escrow", ProjectStatusDisputed, &held, accepted, false},
		{"completed with released escrow", ProjectStatusCompleted, &released, accepted, true},
		{"completed with held escrow", ProjectStatusCompleted, &held, accepted, false},
		{"cancelled without escrow", ProjectStatusCancelled, nil, nil, true},
		{"cancelled with held escrow", ProjectStatusCancelled, &held, accepted, false},
		{"in progress without accepted quote", ProjectStatusInProgress, &held, nil, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := Project{ID: "p-1", Status: tc.status}
			err := CheckConsistency(p, tc.escrow, tc.quote)
			if tc.ok {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, IsInvariantViolation(err))
		})
	}
}

func TestCheckConsistency_EscrowFromAnotherProject(t *testing.T) {
	e := newTestEscrow(t, false)
	e.ProjectID = "p-other"
	err := CheckConsistency(Project{ID: "p-1", Status: ProjectStatusQuoteAccepted}, &e, &Quote{ID: "q-1", ProjectID: "p-1", Status: QuoteStatusAccepted})
	assert.True(t, IsInvariantViolation(err))
}
