package journal

import (
	"context"
	"sync"

	"artisan_escrow/internal/domain/entities"
	"artisan_escrow/internal/usecase/interfaces"
)

// MemoryJournal keeps entries in process memory when no JOURNAL_DSN is set.
type MemoryJournal struct {
	mu      sync.RWMutex
	entries []entities.LedgerEntry
}

var _ interfaces.ILedgerJournal = (*MemoryJournal)(nil)

func NewMemoryJournal() *MemoryJournal {
	return &MemoryJournal{}
}

func (j *MemoryJournal) Record(_ context.Context, entries ...entities.LedgerEntry) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.entries = append(j.entries, entries...)
	return nil
}

func (j *MemoryJournal) ListByEscrowID(_ context.Context, escrowID string) ([]entities.LedgerEntry, error) {
	j.mu.RLock()
	defer j.mu.RUnlock()
	var out []entities.LedgerEntry
	for _, e := range j.entries {
		if e.EscrowID == escrowID {
			out = append(out, e)
		}
	}
	return out, nil
}
