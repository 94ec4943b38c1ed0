package repository

import (
	"context"
	"sort"

	"artisan_escrow/internal/config"
	"artisan_escrow/internal/domain/entities"
	"artisan_escrow/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	defaultQuotesTableName = "quotes"
	quotesProjectIDIndex   = "project_id-index"
)

type quoteItem struct {
	ID                     string `dynamodbav:"id"`
	ProjectID              string `dynamodbav:"project_id"`
	ArtisanID              string `dynamodbav:"artisan_id"`
	Amount                 int64  `dynamodbav:"amount"`
	Urgent                 bool   `dynamodbav:"urgent"`
	UrgentSurchargePercent int64  `dynamodbav:"urgent_surcharge_percent"`
	LaborCost              *int64 `dynamodbav:"labor_cost,omitempty"`
	MaterialsCost          *int64 `dynamodbav:"materials_cost,omitempty"`
	Message                string `dynamodbav:"message,omitempty"`
	Status                 string `dynamodbav:"status"`
	RejectionReason        string `dynamodbav:"rejection_reason,omitempty"`
	Version                int64  `dynamodbav:"version"`
	CreatedAt              string `dynamodbav:"created_at"`
	UpdatedAt              string `dynamodbav:"updated_at"`
}

// QuoteDynamoRepository persists Quote entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI project_id-index: project_id (string)
type QuoteDynamoRepository struct {
	ddb       DynamoAPI
	tableName string
}

var _ interfaces.IQuoteRepository = (*QuoteDynamoRepository)(nil)

func NewQuoteDynamoRepository(ddb DynamoAPI, cfg config.StorageConfig) *QuoteDynamoRepository {
	return &QuoteDynamoRepository{
		ddb:       ddb,
		tableName: tableOrDefault(cfg.QuotesTable, defaultQuotesTableName),
	}
}

func (r *QuoteDynamoRepository) Create(ctx context.Context, q entities.Quote) (entities.Quote, error) {
	q.Version = 1
	put, err := r.put(q, 0)
	if err != nil {
		return entities.Quote{}, err
	}
	if err := putItem(ctx, r.ddb, put); err != nil {
		if isConditionalCheckFailed(err) {
			return entities.Quote{}, &entities.AlreadyExistsError{Resource: "quote", ID: q.ID}
		}
		return entities.Quote{}, err
	}
	return q, nil
}

func (r *QuoteDynamoRepository) GetByID(ctx context.Context, id string) (entities.Quote, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.tableName),
		Key:            stringKey("id", id),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Quote{}, err
	}
	if len(out.Item) == 0 {
		return entities.Quote{}, nil
	}

	var it quoteItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Quote{}, err
	}
	return fromQuoteItem(it), nil
}

func (r *QuoteDynamoRepository) ListByProjectID(ctx context.Context, projectID string) ([]entities.Quote, error) {
	out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(quotesProjectIDIndex),
		KeyConditionExpression: aws.String("project_id = :pid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pid": &types.AttributeValueMemberS{Value: projectID},
		},
	})
	if err != nil {
		return nil, err
	}

	res := make([]entities.Quote, 0, len(out.Items))
	for _, item := range out.Items {
		var it quoteItem
		if err := attributevalue.UnmarshalMap(item, &it); err != nil {
			return nil, err
		}
		res = append(res, fromQuoteItem(it))
	}
	sort.Slice(res, func(i, j int) bool { return res[i].CreatedAt.Before(res[j].CreatedAt) })
	return res, nil
}

func (r *QuoteDynamoRepository) Update(ctx context.Context, q entities.Quote) (entities.Quote, error) {
	expected := q.Version
	q.Version++
	put, err := r.put(q, expected)
	if err != nil {
		return entities.Quote{}, err
	}
	if err := putItem(ctx, r.ddb, put); err != nil {
		return entities.Quote{}, mapUpdateError(err)
	}
	return q, nil
}

func (r *QuoteDynamoRepository) put(q entities.Quote, expected int64) (*types.Put, error) {
	av, err := attributevalue.MarshalMap(toQuoteItem(q))
	if err != nil {
		return nil, err
	}
	return versionedPut(r.tableName, "id", av, expected), nil
}

func toQuoteItem(q entities.Quote) quoteItem {
	return quoteItem{
		ID:                     q.ID,
		ProjectID:              q.ProjectID,
		ArtisanID:              q.ArtisanID,
		Amount:                 q.Amount,
		Urgent:                 q.Urgent,
		UrgentSurchargePercent: q.UrgentSurchargePercent,
		LaborCost:              q.LaborCost,
		MaterialsCost:          q.MaterialsCost,
		Message:                q.Message,
		Status:                 string(q.Status),
		RejectionReason:        q.RejectionReason,
		Version:                q.Version,
		CreatedAt:              formatTime(q.CreatedAt),
		UpdatedAt:              formatTime(q.UpdatedAt),
	}
}

func fromQuoteItem(it quoteItem) entities.Quote {
	return entities.Quote{
		ID:                     it.ID,
		ProjectID:              it.ProjectID,
		ArtisanID:              it.ArtisanID,
		Amount:                 it.Amount,
		Urgent:                 it.Urgent,
		UrgentSurchargePercent: it.UrgentSurchargePercent,
		LaborCost:              it.LaborCost,
		MaterialsCost:          it.MaterialsCost,
		Message:                it.Message,
		Status:                 entities.QuoteStatus(it.Status),
		RejectionReason:        it.RejectionReason,
		Version:                it.Version,
		CreatedAt:              parseTime(it.CreatedAt),
		UpdatedAt:              parseTime(it.UpdatedAt),
	}
}
