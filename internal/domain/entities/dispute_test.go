package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func referenceFees(t *testing.T) FeeBreakdown {
	t.Helper()
	fees, err := CalculateFees(DefaultFeePolicy().Input(100_000, false, true))
	require.NoError(t, err)
	return fees
}

func TestComputeSettlement_Modes(t *testing.T) {
	fees := referenceFees(t)

	cases := []struct {
		name     string
		mode     ResolutionMode
		share    int64
		advance  int64
		refund   int64
		payment  int64
		retained int64
	}{
		{"refund client", ResolutionRefundClient, 0, 0, 100_000, 0, 0},
		{"pay artisan", ResolutionPayArtisan, 0, 0, 0, 72_000, 28_000},
		{"split 50", ResolutionSplit, 50, 0, 50_000, 40_000, 10_000},
		{"split 0", ResolutionSplit, 0, 0, 0, 90_000, 10_000},
		{"split 100 clamps artisan to zero", ResolutionSplit, 100, 0, 100_000, 0, 0},
		{"split 95 clamps artisan to zero", ResolutionSplit, 95, 0, 95_000, 0, 5_000},
		{"refund client keeps advance", ResolutionRefundClient, 0, 36_000, 64_000, 36_000, 0},
		{"split 80 floors at advance", ResolutionSplit, 80, 36_000, 64_000, 36_000, 0},
		{"pay artisan after advance", ResolutionPayArtisan, 0, 36_000, 0, 72_000, 28_000},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s, err := ComputeSettlement(fees, tc.advance, tc.mode, tc.share)
			require.NoError(t, err)
			assert.Equal(t, tc.refund, s.ClientRefund)
			assert.Equal(t, tc.payment, s.ArtisanPayment)
			assert.Equal(t, tc.retained, s.PlatformRetained)
			assert.Equal(t, fees.TotalAmount, s.ClientRefund+s.ArtisanPayment+s.PlatformRetained)
			assert.Equal(t, tc.payment-tc.advance, s.OutstandingArtisanPayment())
		})
	}
}

func TestComputeSettlement_NeverNegative(t *testing.T) {
	fees := referenceFees(t)
	for p := int64(0); p <= 100; p++ {
		s, err := ComputeSettlement(fees, 0, ResolutionSplit, p)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, s.ArtisanPayment, int64(0), "p=%d", p)
		assert.GreaterOrEqual(t, s.ClientRefund, int64(0), "p=%d", p)
		assert.GreaterOrEqual(t, s.PlatformRetained, int64(0), "p=%d", p)
	}
}

func TestComputeSettlement_InvalidInput(t *testing.T) {
	fees := referenceFees(t)

	_, err := ComputeSettlement(fees, 0, ResolutionMode("coin_flip"), 0)
	assert.ErrorIs(t, err, ErrInvalidResolutionMode)

	_, err = ComputeSettlement(fees, 0, ResolutionSplit, 101)
	assert.ErrorIs(t, err, ErrInvalidClientShare)

	_, err = ComputeSettlement(fees, 0, ResolutionSplit, -1)
	assert.ErrorIs(t, err, ErrInvalidClientShare)
}
