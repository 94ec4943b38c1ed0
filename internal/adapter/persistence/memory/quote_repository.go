package memory

import (
	"context"

	"artisan_escrow/internal/domain/entities"
	"artisan_escrow/internal/usecase/interfaces"
)

type QuoteRepository struct {
	s *Store
}

var _ interfaces.IQuoteRepository = (*QuoteRepository)(nil)

func (r *QuoteRepository) Create(_ context.Context, q entities.Quote) (entities.Quote, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.quotes[q.ID]; ok {
		return entities.Quote{}, &entities.AlreadyExistsError{Resource: "quote", ID: q.ID}
	}
	q.Version = 0
	return cloneQuote(r.s.putQuote(q)), nil
}

func (r *QuoteRepository) GetByID(_ context.Context, id string) (entities.Quote, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return cloneQuote(r.s.quotes[id]), nil
}

func (r *QuoteRepository) ListByProjectID(_ context.Context, projectID string) ([]entities.Quote, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]entities.Quote, 0)
	for _, q := range r.s.quotes {
		if q.ProjectID == projectID {
			out = append(out, cloneQuote(q))
		}
	}
	sortQuotes(out)
	return out, nil
}

func (r *QuoteRepository) Update(_ context.Context, q entities.Quote) (entities.Quote, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.checkQuote(q); err != nil {
		return entities.Quote{}, err
	}
	return cloneQuote(r.s.putQuote(q)), nil
}
