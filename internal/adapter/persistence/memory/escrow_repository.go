package memory

import (
	"context"

	"artisan_escrow/internal/domain/entities"
	"artisan_escrow/internal/usecase/interfaces"
)

type EscrowRepository struct {
	s *Store
}

var _ interfaces.IEscrowRepository = (*EscrowRepository)(nil)

func (r *EscrowRepository) Create(_ context.Context, e entities.Escrow) (entities.Escrow, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.checkNewEscrow(e); err != nil {
		return entities.Escrow{}, err
	}
	e.Version = 0
	return r.s.putEscrow(e), nil
}

func (r *EscrowRepository) GetByID(_ context.Context, id string) (entities.Escrow, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.escrows[id], nil
}

func (r *EscrowRepository) GetByProjectID(_ context.Context, projectID string) (entities.Escrow, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	id, ok := r.s.escrowByProject[projectID]
	if !ok {
		return entities.Escrow{}, nil
	}
	return r.s.escrows[id], nil
}

func (r *EscrowRepository) Update(_ context.Context, e entities.Escrow) (entities.Escrow, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.checkEscrow(e); err != nil {
		return entities.Escrow{}, err
	}
	return r.s.putEscrow(e), nil
}
