package interfaces

import (
	"context"
	"errors"

	"artisan_escrow/internal/domain/entities"
)

// ErrVersionConflict is returned by Update/Commit methods when the stored
// record's version no longer matches the one the caller read.
var ErrVersionConflict = errors.New("record was modified concurrently")

// IProjectRepository abstracts persistence for Project.
//
// Lookups return a zero-value Project (empty ID) when nothing is found.
// Update is an atomic read-modify-write guarded by Project.Version.
type IProjectRepository interface {
	Create(ctx context.Context, p entities.Project) (entities.Project, error)
	GetByID(ctx context.Context, id string) (entities.Project, error)
	Update(ctx context.Context, p entities.Project) (entities.Project, error)
	ListByStatus(ctx context.Context, statuses ...entities.ProjectStatus) ([]entities.Project, error)
}

// IQuoteRepository abstracts persistence for Quote.
type IQuoteRepository interface {
	Create(ctx context.Context, q entities.Quote) (entities.Quote, error)
	GetByID(ctx context.Context, id string) (entities.Quote, error)
	ListByProjectID(ctx context.Context, projectID string) ([]entities.Quote, error)
	Update(ctx context.Context, q entities.Quote) (entities.Quote, error)
}

// IEscrowRepository abstracts persistence for Escrow. There is one escrow per
// project: Create fails with *entities.AlreadyExistsError when the project
// already has one.
type IEscrowRepository interface {
	Create(ctx context.Context, e entities.Escrow) (entities.Escrow, error)
	GetByID(ctx context.Context, id string) (entities.Escrow, error)
	GetByProjectID(ctx context.Context, projectID string) (entities.Escrow, error)
	Update(ctx context.Context, e entities.Escrow) (entities.Escrow, error)
}

// AcceptanceCommit is everything quote acceptance writes at once.
// Escrow is nil only on the degraded payment_pending branch.
type AcceptanceCommit struct {
	Project  entities.Project
	Accepted entities.Quote
	Rejected []entities.Quote
	Escrow   *entities.Escrow
}

// ITransactionRepository groups the multi-record writes that must be atomic.
type ITransactionRepository interface {
	CommitAcceptance(ctx context.Context, c AcceptanceCommit) (AcceptanceCommit, error)
	CommitProjectEscrow(ctx context.Context, p entities.Project, e entities.Escrow) (entities.Project, entities.Escrow, error)
}
