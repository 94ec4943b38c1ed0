package repository

import (
	"context"

	"artisan_escrow/internal/domain/entities"
	"artisan_escrow/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// TransactionDynamoRepository writes project, quote and escrow records in a
// single TransactWriteItems call. Each item carries its own version
// condition, so a stale read anywhere aborts the whole write.
type TransactionDynamoRepository struct {
	ddb      DynamoAPI
	projects *ProjectDynamoRepository
	quotes   *QuoteDynamoRepository
	escrows  *EscrowDynamoRepository
}

var _ interfaces.ITransactionRepository = (*TransactionDynamoRepository)(nil)

func NewTransactionDynamoRepository(ddb DynamoAPI, projects *ProjectDynamoRepository, quotes *QuoteDynamoRepository, escrows *EscrowDynamoRepository) *TransactionDynamoRepository {
	return &TransactionDynamoRepository{ddb: ddb, projects: projects, quotes: quotes, escrows: escrows}
}

func (r *TransactionDynamoRepository) CommitAcceptance(ctx context.Context, c interfaces.AcceptanceCommit) (interfaces.AcceptanceCommit, error) {
	var items []types.TransactWriteItem
	out := interfaces.AcceptanceCommit{Project: c.Project, Accepted: c.Accepted}

	out.Project.Version++
	put, err := r.projects.put(out.Project, c.Project.Version)
	if err != nil {
		return interfaces.AcceptanceCommit{}, err
	}
	items = append(items, types.TransactWriteItem{Put: put})

	out.Accepted.Version++
	put, err = r.quotes.put(out.Accepted, c.Accepted.Version)
	if err != nil {
		return interfaces.AcceptanceCommit{}, err
	}
	items = append(items, types.TransactWriteItem{Put: put})

	escrowIndex := -1
	if c.Escrow != nil {
		e := *c.Escrow
		e.Version = 1
		put, err = r.escrows.put(e, 0)
		if err != nil {
			return interfaces.AcceptanceCommit{}, err
		}
		escrowIndex = len(items)
		items = append(items, types.TransactWriteItem{Put: put})
		out.Escrow = &e
	}

	for _, q := range c.Rejected {
		next := q
		next.Version++
		put, err = r.quotes.put(next, q.Version)
		if err != nil {
			return interfaces.AcceptanceCommit{}, err
		}
		items = append(items, types.TransactWriteItem{Put: put})
		out.Rejected = append(out.Rejected, next)
	}

	if err := r.transact(ctx, items, escrowIndex, c.Project.ID); err != nil {
		return interfaces.AcceptanceCommit{}, err
	}
	return out, nil
}

func (r *TransactionDynamoRepository) CommitProjectEscrow(ctx context.Context, p entities.Project, e entities.Escrow) (entities.Project, entities.Escrow, error) {
	nextP, nextE := p, e
	nextP.Version++
	nextE.Version++

	pPut, err := r.projects.put(nextP, p.Version)
	if err != nil {
		return entities.Project{}, entities.Escrow{}, err
	}
	ePut, err := r.escrows.put(nextE, e.Version)
	if err != nil {
		return entities.Project{}, entities.Escrow{}, err
	}
	if err := r.transact(ctx, []types.TransactWriteItem{{Put: pPut}, {Put: ePut}}, -1, p.ID); err != nil {
		return entities.Project{}, entities.Escrow{}, err
	}
	return nextP, nextE, nil
}

// transact maps a cancelled transaction to the error of the item that
// failed: the escrow insert means the project already has one, anything
// else is a stale version.
func (r *TransactionDynamoRepository) transact(ctx context.Context, items []types.TransactWriteItem, escrowIndex int, projectID string) error {
	_, err := r.ddb.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{TransactItems: items})
	if err == nil {
		return nil
	}
	failed, ok := cancelledAt(err)
	if !ok {
		return err
	}
	if escrowIndex >= 0 && escrowIndex < len(failed) && failed[escrowIndex] {
		return &entities.AlreadyExistsError{Resource: "escrow", ID: projectID}
	}
	for _, f := range failed {
		if f {
			return interfaces.ErrVersionConflict
		}
	}
	return err
}
