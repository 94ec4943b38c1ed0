package memory

import (
	"context"

	"artisan_escrow/internal/domain/entities"
	"artisan_escrow/internal/usecase/interfaces"
)

// TransactionRepository applies multi-record writes under the store lock.
// Every precondition is checked before anything is written.
type TransactionRepository struct {
	s *Store
}

var _ interfaces.ITransactionRepository = (*TransactionRepository)(nil)

func (r *TransactionRepository) CommitAcceptance(_ context.Context, c interfaces.AcceptanceCommit) (interfaces.AcceptanceCommit, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if err := r.s.checkProject(c.Project); err != nil {
		return interfaces.AcceptanceCommit{}, err
	}
	if err := r.s.checkQuote(c.Accepted); err != nil {
		return interfaces.AcceptanceCommit{}, err
	}
	for _, q := range c.Rejected {
		if err := r.s.checkQuote(q); err != nil {
			return interfaces.AcceptanceCommit{}, err
		}
	}
	if c.Escrow != nil {
		if err := r.s.checkNewEscrow(*c.Escrow); err != nil {
			return interfaces.AcceptanceCommit{}, err
		}
	}

	out := interfaces.AcceptanceCommit{
		Project:  cloneProject(r.s.putProject(c.Project)),
		Accepted: cloneQuote(r.s.putQuote(c.Accepted)),
	}
	for _, q := range c.Rejected {
		out.Rejected = append(out.Rejected, cloneQuote(r.s.putQuote(q)))
	}
	if c.Escrow != nil {
		e := *c.Escrow
		e.Version = 0
		e = r.s.putEscrow(e)
		out.Escrow = &e
	}
	return out, nil
}

func (r *TransactionRepository) CommitProjectEscrow(_ context.Context, p entities.Project, e entities.Escrow) (entities.Project, entities.Escrow, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if err := r.s.checkProject(p); err != nil {
		return entities.Project{}, entities.Escrow{}, err
	}
	if err := r.s.checkEscrow(e); err != nil {
		return entities.Project{}, entities.Escrow{}, err
	}
	return cloneProject(r.s.putProject(p)), r.s.putEscrow(e), nil
}
