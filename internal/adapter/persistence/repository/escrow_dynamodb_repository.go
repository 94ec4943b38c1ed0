package repository

import (
	"context"
	"fmt"

	"artisan_escrow/internal/config"
	"artisan_escrow/internal/domain/entities"
	"artisan_escrow/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	defaultEscrowsTableName = "escrows"
	escrowsIDIndex          = "id-index"
)

type feesItem struct {
	BaseAmount             int64 `dynamodbav:"base_amount"`
	UrgentSurchargePercent int64 `dynamodbav:"urgent_surcharge_percent"`
	UrgentSurcharge        int64 `dynamodbav:"urgent_surcharge"`
	TotalAmount            int64 `dynamodbav:"total_amount"`
	CommissionPercent      int64 `dynamodbav:"commission_percent"`
	CommissionAmount       int64 `dynamodbav:"commission_amount"`
	TVAPercent             int64 `dynamodbav:"tva_percent"`
	TVAAmount              int64 `dynamodbav:"tva_amount"`
	ArtisanPayout          int64 `dynamodbav:"artisan_payout"`
	AdvancePercent         int64 `dynamodbav:"advance_percent"`
	AdvanceAmount          int64 `dynamodbav:"advance_amount"`
}

type depositItem struct {
	Reference   string `dynamodbav:"reference"`
	Method      string `dynamodbav:"method"`
	Fees        int64  `dynamodbav:"fees"`
	ConfirmedAt string `dynamodbav:"confirmed_at"`
}

type settlementItem struct {
	Mode               string `dynamodbav:"mode"`
	ClientSharePercent int64  `dynamodbav:"client_share_percent"`
	ClientRefund       int64  `dynamodbav:"client_refund"`
	ArtisanPayment     int64  `dynamodbav:"artisan_payment"`
	PlatformRetained   int64  `dynamodbav:"platform_retained"`
	AdvanceAlreadyPaid int64  `dynamodbav:"advance_already_paid"`
	ResolvedBy         string `dynamodbav:"resolved_by"`
	ResolvedAt         string `dynamodbav:"resolved_at"`
}

// escrowItem flattens the escrow state variants; which optional attributes
// are present depends on status.
type escrowItem struct {
	ProjectID        string          `dynamodbav:"project_id"`
	ID               string          `dynamodbav:"id"`
	QuoteID          string          `dynamodbav:"quote_id"`
	ClientID         string          `dynamodbav:"client_id"`
	ArtisanID        string          `dynamodbav:"artisan_id"`
	ProviderVerified bool            `dynamodbav:"provider_verified"`
	Urgent           bool            `dynamodbav:"urgent"`
	Fees             feesItem        `dynamodbav:"fees"`
	Status           string          `dynamodbav:"status"`
	Deposit          *depositItem    `dynamodbav:"deposit,omitempty"`
	AdvancePaid      int64           `dynamodbav:"advance_paid"`
	AdvancePaidAt    string          `dynamodbav:"advance_paid_at,omitempty"`
	FinalRelease     int64           `dynamodbav:"final_release"`
	RefundAmount     int64           `dynamodbav:"refund_amount"`
	FrozenReason     string          `dynamodbav:"frozen_reason,omitempty"`
	FrozenAt         string          `dynamodbav:"frozen_at,omitempty"`
	ReleasedAt       string          `dynamodbav:"released_at,omitempty"`
	RefundedAt       string          `dynamodbav:"refunded_at,omitempty"`
	Settlement       *settlementItem `dynamodbav:"settlement,omitempty"`
	Version          int64           `dynamodbav:"version"`
	CreatedAt        string          `dynamodbav:"created_at"`
	UpdatedAt        string          `dynamodbav:"updated_at"`
}

// EscrowDynamoRepository persists Escrow entities in DynamoDB.
//
// Table requirements:
//   - PK: project_id (string)
//   - GSI id-index: id (string)
//
// Keying by project id makes "one escrow per project" a conditional put.
type EscrowDynamoRepository struct {
	ddb       DynamoAPI
	tableName string
}

var _ interfaces.IEscrowRepository = (*EscrowDynamoRepository)(nil)

func NewEscrowDynamoRepository(ddb DynamoAPI, cfg config.StorageConfig) *EscrowDynamoRepository {
	return &EscrowDynamoRepository{
		ddb:       ddb,
		tableName: tableOrDefault(cfg.EscrowsTable, defaultEscrowsTableName),
	}
}

func (r *EscrowDynamoRepository) Create(ctx context.Context, e entities.Escrow) (entities.Escrow, error) {
	e.Version = 1
	put, err := r.put(e, 0)
	if err != nil {
		return entities.Escrow{}, err
	}
	if err := putItem(ctx, r.ddb, put); err != nil {
		if isConditionalCheckFailed(err) {
			existing, getErr := r.GetByProjectID(ctx, e.ProjectID)
			if getErr != nil {
				return entities.Escrow{}, getErr
			}
			return entities.Escrow{}, &entities.AlreadyExistsError{Resource: "escrow", ID: existing.ID}
		}
		return entities.Escrow{}, err
	}
	return e, nil
}

func (r *EscrowDynamoRepository) GetByID(ctx context.Context, id string) (entities.Escrow, error) {
	out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(escrowsIDIndex),
		KeyConditionExpression: aws.String("id = :id"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":id": &types.AttributeValueMemberS{Value: id},
		},
		Limit: aws.Int32(1),
	})
	if err != nil {
		return entities.Escrow{}, err
	}
	if len(out.Items) == 0 {
		return entities.Escrow{}, nil
	}
	// GSI reads are eventually consistent; re-read the base item.
	var it escrowItem
	if err := attributevalue.UnmarshalMap(out.Items[0], &it); err != nil {
		return entities.Escrow{}, err
	}
	return r.GetByProjectID(ctx, it.ProjectID)
}

func (r *EscrowDynamoRepository) GetByProjectID(ctx context.Context, projectID string) (entities.Escrow, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.tableName),
		Key:            stringKey("project_id", projectID),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Escrow{}, err
	}
	if len(out.Item) == 0 {
		return entities.Escrow{}, nil
	}

	var it escrowItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Escrow{}, err
	}
	return fromEscrowItem(it)
}

func (r *EscrowDynamoRepository) Update(ctx context.Context, e entities.Escrow) (entities.Escrow, error) {
	expected := e.Version
	e.Version++
	put, err := r.put(e, expected)
	if err != nil {
		return entities.Escrow{}, err
	}
	if err := putItem(ctx, r.ddb, put); err != nil {
		return entities.Escrow{}, mapUpdateError(err)
	}
	return e, nil
}

func (r *EscrowDynamoRepository) put(e entities.Escrow, expected int64) (*types.Put, error) {
	av, err := attributevalue.MarshalMap(toEscrowItem(e))
	if err != nil {
		return nil, err
	}
	return versionedPut(r.tableName, "project_id", av, expected), nil
}

func toDepositItem(d entities.DepositInfo) *depositItem {
	return &depositItem{
		Reference:   d.Reference,
		Method:      d.Method,
		Fees:        d.Fees,
		ConfirmedAt: formatTime(d.ConfirmedAt),
	}
}

func fromDepositItem(d *depositItem) entities.DepositInfo {
	if d == nil {
		return entities.DepositInfo{}
	}
	return entities.DepositInfo{
		Reference:   d.Reference,
		Method:      d.Method,
		Fees:        d.Fees,
		ConfirmedAt: parseTime(d.ConfirmedAt),
	}
}

func toSettlementItem(s *entities.DisputeSettlement) *settlementItem {
	if s == nil {
		return nil
	}
	return &settlementItem{
		Mode:               string(s.Mode),
		ClientSharePercent: s.ClientSharePercent,
		ClientRefund:       s.ClientRefund,
		ArtisanPayment:     s.ArtisanPayment,
		PlatformRetained:   s.PlatformRetained,
		AdvanceAlreadyPaid: s.AdvanceAlreadyPaid,
		ResolvedBy:         s.ResolvedBy,
		ResolvedAt:         formatTime(s.ResolvedAt),
	}
}

func fromSettlementItem(s *settlementItem) *entities.DisputeSettlement {
	if s == nil {
		return nil
	}
	return &entities.DisputeSettlement{
		Mode:               entities.ResolutionMode(s.Mode),
		ClientSharePercent: s.ClientSharePercent,
		ClientRefund:       s.ClientRefund,
		ArtisanPayment:     s.ArtisanPayment,
		PlatformRetained:   s.PlatformRetained,
		AdvanceAlreadyPaid: s.AdvanceAlreadyPaid,
		ResolvedBy:         s.ResolvedBy,
		ResolvedAt:         parseTime(s.ResolvedAt),
	}
}

func toEscrowItem(e entities.Escrow) escrowItem {
	f := e.Fees
	it := escrowItem{
		ProjectID:        e.ProjectID,
		ID:               e.ID,
		QuoteID:          e.QuoteID,
		ClientID:         e.ClientID,
		ArtisanID:        e.ArtisanID,
		ProviderVerified: e.ProviderVerified,
		Urgent:           e.Urgent,
		Fees: feesItem{
			BaseAmount:             f.BaseAmount,
			UrgentSurchargePercent: f.UrgentSurchargePercent,
			UrgentSurcharge:        f.UrgentSurcharge,
			TotalAmount:            f.TotalAmount,
			CommissionPercent:      f.CommissionPercent,
			CommissionAmount:       f.CommissionAmount,
			TVAPercent:             f.TVAPercent,
			TVAAmount:              f.TVAAmount,
			ArtisanPayout:          f.ArtisanPayout,
			AdvancePercent:         f.AdvancePercent,
			AdvanceAmount:          f.AdvanceAmount,
		},
		Status:    string(e.Status()),
		Version:   e.Version,
		CreatedAt: formatTime(e.CreatedAt),
		UpdatedAt: formatTime(e.UpdatedAt),
	}

	switch s := e.State.(type) {
	case entities.EscrowHeld:
		it.Deposit = toDepositItem(s.Deposit)
	case entities.EscrowAdvancePaid:
		it.Deposit = toDepositItem(s.Deposit)
		it.AdvancePaid = s.AdvancePaid
		it.AdvancePaidAt = formatTime(s.AdvancePaidAt)
	case entities.EscrowFrozen:
		it.Deposit = toDepositItem(s.Deposit)
		it.AdvancePaid = s.AdvancePaid
		it.FrozenReason = s.Reason
		it.FrozenAt = formatTime(s.FrozenAt)
	case entities.EscrowReleased:
		it.Deposit = toDepositItem(s.Deposit)
		it.AdvancePaid = s.AdvancePaid
		it.FinalRelease = s.FinalRelease
		it.Settlement = toSettlementItem(s.Settlement)
		it.ReleasedAt = formatTime(s.ReleasedAt)
	case entities.EscrowRefunded:
		if s.Deposit != nil {
			it.Deposit = toDepositItem(*s.Deposit)
		}
		it.AdvancePaid = s.AdvancePaid
		it.RefundAmount = s.RefundAmount
		it.Settlement = toSettlementItem(s.Settlement)
		it.RefundedAt = formatTime(s.RefundedAt)
	}
	return it
}

func fromEscrowItem(it escrowItem) (entities.Escrow, error) {
	f := it.Fees
	e := entities.Escrow{
		ID:               it.ID,
		ProjectID:        it.ProjectID,
		QuoteID:          it.QuoteID,
		ClientID:         it.ClientID,
		ArtisanID:        it.ArtisanID,
		ProviderVerified: it.ProviderVerified,
		Urgent:           it.Urgent,
		Fees: entities.FeeBreakdown{
			BaseAmount:             f.BaseAmount,
			UrgentSurchargePercent: f.UrgentSurchargePercent,
			UrgentSurcharge:        f.UrgentSurcharge,
			TotalAmount:            f.TotalAmount,
			CommissionPercent:      f.CommissionPercent,
			CommissionAmount:       f.CommissionAmount,
			TVAPercent:             f.TVAPercent,
			TVAAmount:              f.TVAAmount,
			ArtisanPayout:          f.ArtisanPayout,
			AdvancePercent:         f.AdvancePercent,
			AdvanceAmount:          f.AdvanceAmount,
		},
		Version:   it.Version,
		CreatedAt: parseTime(it.CreatedAt),
		UpdatedAt: parseTime(it.UpdatedAt),
	}

	switch entities.EscrowStatus(it.Status) {
	case entities.EscrowStatusPending:
		e.State = entities.EscrowPending{}
	case entities.EscrowStatusHeld:
		e.State = entities.EscrowHeld{Deposit: fromDepositItem(it.Deposit)}
	case entities.EscrowStatusAdvancePaid:
		e.State = entities.EscrowAdvancePaid{
			Deposit:       fromDepositItem(it.Deposit),
			AdvancePaid:   it.AdvancePaid,
			AdvancePaidAt: parseTime(it.AdvancePaidAt),
		}
	case entities.EscrowStatusFrozen:
		e.State = entities.EscrowFrozen{
			Deposit:     fromDepositItem(it.Deposit),
			AdvancePaid: it.AdvancePaid,
			Reason:      it.FrozenReason,
			FrozenAt:    parseTime(it.FrozenAt),
		}
	case entities.EscrowStatusReleased:
		e.State = entities.EscrowReleased{
			Deposit:      fromDepositItem(it.Deposit),
			AdvancePaid:  it.AdvancePaid,
			FinalRelease: it.FinalRelease,
			Settlement:   fromSettlementItem(it.Settlement),
			ReleasedAt:   parseTime(it.ReleasedAt),
		}
	case entities.EscrowStatusRefunded:
		var dep *entities.DepositInfo
		if it.Deposit != nil {
			d := fromDepositItem(it.Deposit)
			dep = &d
		}
		e.State = entities.EscrowRefunded{
			Deposit:      dep,
			AdvancePaid:  it.AdvancePaid,
			RefundAmount: it.RefundAmount,
			Settlement:   fromSettlementItem(it.Settlement),
			RefundedAt:   parseTime(it.RefundedAt),
		}
	default:
		return entities.Escrow{}, fmt.Errorf("escrow %s has unknown status %q", it.ID, it.Status)
	}
	return e, nil
}
