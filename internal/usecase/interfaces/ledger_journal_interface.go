package interfaces

import (
	"context"

	"artisan_escrow/internal/domain/entities"
)

// ILedgerJournal appends platform-level bookkeeping lines for money movements.
type ILedgerJournal interface {
	Record(ctx context.Context, entries ...entities.LedgerEntry) error
	ListByEscrowID(ctx context.Context, escrowID string) ([]entities.LedgerEntry, error)
}
