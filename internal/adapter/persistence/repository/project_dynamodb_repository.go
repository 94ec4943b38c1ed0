package repository

import (
	"context"

	"artisan_escrow/internal/config"
	"artisan_escrow/internal/domain/entities"
	"artisan_escrow/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	defaultProjectsTableName = "projects"
	projectsStatusIndex      = "status-index"
)

type disputeItem struct {
	RaisedBy   string `dynamodbav:"raised_by"`
	Reason     string `dynamodbav:"reason"`
	RaisedAt   string `dynamodbav:"raised_at"`
	ResolvedBy string `dynamodbav:"resolved_by,omitempty"`
}

type projectItem struct {
	ID                    string       `dynamodbav:"id"`
	ClientID              string       `dynamodbav:"client_id"`
	Title                 string       `dynamodbav:"title"`
	Description           string       `dynamodbav:"description"`
	Category              string       `dynamodbav:"category"`
	Urgent                bool         `dynamodbav:"urgent"`
	Status                string       `dynamodbav:"status"`
	AcceptedQuoteID       string       `dynamodbav:"accepted_quote_id,omitempty"`
	ArtisanID             string       `dynamodbav:"artisan_id,omitempty"`
	ArtisanVerified       bool         `dynamodbav:"artisan_verified"`
	CompletionRequestedBy string       `dynamodbav:"completion_requested_by,omitempty"`
	DegradedReason        string       `dynamodbav:"degraded_reason,omitempty"`
	Dispute               *disputeItem `dynamodbav:"dispute,omitempty"`
	Version               int64        `dynamodbav:"version"`
	ExpiresAt             string       `dynamodbav:"expires_at,omitempty"`
	CreatedAt             string       `dynamodbav:"created_at"`
	UpdatedAt             string       `dynamodbav:"updated_at"`
}

// ProjectDynamoRepository persists Project entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI status-index: status (string)
type ProjectDynamoRepository struct {
	ddb       DynamoAPI
	tableName string
}

var _ interfaces.IProjectRepository = (*ProjectDynamoRepository)(nil)

func NewProjectDynamoRepository(ddb DynamoAPI, cfg config.StorageConfig) *ProjectDynamoRepository {
	return &ProjectDynamoRepository{
		ddb:       ddb,
		tableName: tableOrDefault(cfg.ProjectsTable, defaultProjectsTableName),
	}
}

func (r *ProjectDynamoRepository) Create(ctx context.Context, p entities.Project) (entities.Project, error) {
	p.Version = 1
	put, err := r.put(p, 0)
	if err != nil {
		return entities.Project{}, err
	}
	if err := putItem(ctx, r.ddb, put); err != nil {
		if isConditionalCheckFailed(err) {
			return entities.Project{}, &entities.AlreadyExistsError{Resource: "project", ID: p.ID}
		}
		return entities.Project{}, err
	}
	return p, nil
}

func (r *ProjectDynamoRepository) GetByID(ctx context.Context, id string) (entities.Project, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.tableName),
		Key:            stringKey("id", id),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Project{}, err
	}
	if len(out.Item) == 0 {
		return entities.Project{}, nil
	}

	var it projectItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Project{}, err
	}
	return fromProjectItem(it), nil
}

func (r *ProjectDynamoRepository) Update(ctx context.Context, p entities.Project) (entities.Project, error) {
	expected := p.Version
	p.Version++
	put, err := r.put(p, expected)
	if err != nil {
		return entities.Project{}, err
	}
	if err := putItem(ctx, r.ddb, put); err != nil {
		return entities.Project{}, mapUpdateError(err)
	}
	return p, nil
}

func (r *ProjectDynamoRepository) ListByStatus(ctx context.Context, statuses ...entities.ProjectStatus) ([]entities.Project, error) {
	var res []entities.Project
	for _, status := range statuses {
		var startKey map[string]types.AttributeValue
		for {
			out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
				TableName:              aws.String(r.tableName),
				IndexName:              aws.String(projectsStatusIndex),
				KeyConditionExpression: aws.String("#status = :status"),
				ExpressionAttributeNames: map[string]string{
					"#status": "status",
				},
				ExpressionAttributeValues: map[string]types.AttributeValue{
					":status": &types.AttributeValueMemberS{Value: string(status)},
				},
				ExclusiveStartKey: startKey,
			})
			if err != nil {
				return nil, err
			}
			for _, item := range out.Items {
				var it projectItem
				if err := attributevalue.UnmarshalMap(item, &it); err != nil {
					return nil, err
				}
				res = append(res, fromProjectItem(it))
			}
			if len(out.LastEvaluatedKey) == 0 {
				break
			}
			startKey = out.LastEvaluatedKey
		}
	}
	return res, nil
}

func (r *ProjectDynamoRepository) put(p entities.Project, expected int64) (*types.Put, error) {
	av, err := attributevalue.MarshalMap(toProjectItem(p))
	if err != nil {
		return nil, err
	}
	return versionedPut(r.tableName, "id", av, expected), nil
}

func toProjectItem(p entities.Project) projectItem {
	it := projectItem{
		ID:                    p.ID,
		ClientID:              p.ClientID,
		Title:                 p.Title,
		Description:           p.Description,
		Category:              p.Category,
		Urgent:                p.Urgent,
		Status:                string(p.Status),
		AcceptedQuoteID:       p.AcceptedQuoteID,
		ArtisanID:             p.ArtisanID,
		ArtisanVerified:       p.ArtisanVerified,
		CompletionRequestedBy: p.CompletionRequestedBy,
		DegradedReason:        p.DegradedReason,
		Version:               p.Version,
		ExpiresAt:             formatTime(p.ExpiresAt),
		CreatedAt:             formatTime(p.CreatedAt),
		UpdatedAt:             formatTime(p.UpdatedAt),
	}
	if p.Dispute != nil {
		it.Dispute = &disputeItem{
			RaisedBy:   p.Dispute.RaisedBy,
			Reason:     p.Dispute.Reason,
			RaisedAt:   formatTime(p.Dispute.RaisedAt),
			ResolvedBy: p.Dispute.ResolvedBy,
		}
	}
	return it
}

func fromProjectItem(it projectItem) entities.Project {
	p := entities.Project{
		ID:                    it.ID,
		ClientID:              it.ClientID,
		Title:                 it.Title,
		Description:           it.Description,
		Category:              it.Category,
		Urgent:                it.Urgent,
		Status:                entities.ProjectStatus(it.Status),
		AcceptedQuoteID:       it.AcceptedQuoteID,
		ArtisanID:             it.ArtisanID,
		ArtisanVerified:       it.ArtisanVerified,
		CompletionRequestedBy: it.CompletionRequestedBy,
		DegradedReason:        it.DegradedReason,
		Version:               it.Version,
		ExpiresAt:             parseTime(it.ExpiresAt),
		CreatedAt:             parseTime(it.CreatedAt),
		UpdatedAt:             parseTime(it.UpdatedAt),
	}
	if it.Dispute != nil {
		p.Dispute = &entities.Dispute{
			RaisedBy:   it.Dispute.RaisedBy,
			Reason:     it.Dispute.Reason,
			RaisedAt:   parseTime(it.Dispute.RaisedAt),
			ResolvedBy: it.Dispute.ResolvedBy,
		}
	}
	return p
}
