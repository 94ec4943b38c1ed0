package entities

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuote_UpdateAmountBound(t *testing.T) {
	q := Quote{Status: QuoteStatusPending}
	assert.ErrorIs(t, q.UpdateAmount(MaxAmount+1, time.Now()), ErrInvalidQuoteAmount)
	require.NoError(t, q.UpdateAmount(MaxAmount, time.Now()))
	assert.Equal(t, MaxAmount, q.Amount)
}
