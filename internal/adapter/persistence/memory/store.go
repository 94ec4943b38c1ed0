// Package memory keeps every record in process memory. It backs local runs
// and tests and honours the same version and uniqueness rules as the
// DynamoDB repositories.
package memory

import (
	"fmt"
	"sort"
	"sync"

	"artisan_escrow/internal/domain/entities"
	"artisan_escrow/internal/usecase/interfaces"
)

// Store is shared by the repositories returned from its accessors so that
// transactional commits can see and lock every table at once.
type Store struct {
	mu              sync.RWMutex
	projects        map[string]entities.Project
	quotes          map[string]entities.Quote
	escrows         map[string]entities.Escrow
	escrowByProject map[string]string
}

func NewStore() *Store {
	return &Store{
		projects:        make(map[string]entities.Project),
		quotes:          make(map[string]entities.Quote),
		escrows:         make(map[string]entities.Escrow),
		escrowByProject: make(map[string]string),
	}
}

func (s *Store) Projects() *ProjectRepository         { return &ProjectRepository{s: s} }
func (s *Store) Quotes() *QuoteRepository             { return &QuoteRepository{s: s} }
func (s *Store) Escrows() *EscrowRepository           { return &EscrowRepository{s: s} }
func (s *Store) Transactions() *TransactionRepository { return &TransactionRepository{s: s} }

func cloneProject(p entities.Project) entities.Project {
	if p.Dispute != nil {
		d := *p.Dispute
		p.Dispute = &d
	}
	return p
}

func cloneQuote(q entities.Quote) entities.Quote {
	if q.LaborCost != nil {
		v := *q.LaborCost
		q.LaborCost = &v
	}
	if q.MaterialsCost != nil {
		v := *q.MaterialsCost
		q.MaterialsCost = &v
	}
	return q
}

// checkProject and friends must be called with s.mu held.
func (s *Store) checkProject(p entities.Project) error {
	cur, ok := s.projects[p.ID]
	if !ok {
		return fmt.Errorf("project %s not found", p.ID)
	}
	if cur.Version != p.Version {
		return interfaces.ErrVersionConflict
	}
	return nil
}

func (s *Store) checkQuote(q entities.Quote) error {
	cur, ok := s.quotes[q.ID]
	if !ok {
		return fmt.Errorf("quote %s not found", q.ID)
	}
	if cur.Version != q.Version {
		return interfaces.ErrVersionConflict
	}
	return nil
}

func (s *Store) checkEscrow(e entities.Escrow) error {
	cur, ok := s.escrows[e.ID]
	if !ok {
		return fmt.Errorf("escrow %s not found", e.ID)
	}
	if cur.Version != e.Version {
		return interfaces.ErrVersionConflict
	}
	return nil
}

func (s *Store) checkNewEscrow(e entities.Escrow) error {
	if id, ok := s.escrowByProject[e.ProjectID]; ok {
		return &entities.AlreadyExistsError{Resource: "escrow", ID: id}
	}
	if _, ok := s.escrows[e.ID]; ok {
		return &entities.AlreadyExistsError{Resource: "escrow", ID: e.ID}
	}
	return nil
}

func (s *Store) putProject(p entities.Project) entities.Project {
	p.Version++
	s.projects[p.ID] = cloneProject(p)
	return p
}

func (s *Store) putQuote(q entities.Quote) entities.Quote {
	q.Version++
	s.quotes[q.ID] = cloneQuote(q)
	return q
}

func (s *Store) putEscrow(e entities.Escrow) entities.Escrow {
	e.Version++
	s.escrows[e.ID] = e
	s.escrowByProject[e.ProjectID] = e.ID
	return e
}

func sortQuotes(qs []entities.Quote) {
	sort.Slice(qs, func(i, j int) bool {
		if qs[i].CreatedAt.Equal(qs[j].CreatedAt) {
			return qs[i].ID < qs[j].ID
		}
		return qs[i].CreatedAt.Before(qs[j].CreatedAt)
	})
}
