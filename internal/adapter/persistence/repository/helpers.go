package repository

import (
	"context"
	"errors"
	"strconv"
	"time"

	"artisan_escrow/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// DynamoAPI is the part of *dynamodb.Client the repositories use.
type DynamoAPI interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
	TransactWriteItems(ctx context.Context, params *dynamodb.TransactWriteItemsInput, optFns ...func(*dynamodb.Options)) (*dynamodb.TransactWriteItemsOutput, error)
}

var _ DynamoAPI = (*dynamodb.Client)(nil)

func tableOrDefault(name, def string) string {
	if name != "" {
		return name
	}
	return def
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, _ := time.Parse(time.RFC3339Nano, s)
	return t
}

func stringKey(attr, value string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{attr: &types.AttributeValueMemberS{Value: value}}
}

// versionedPut builds a Put that only succeeds when the stored record still
// carries expected. expected == 0 means the record must not exist yet.
func versionedPut(table, keyAttr string, item map[string]types.AttributeValue, expected int64) *types.Put {
	put := &types.Put{
		TableName:                aws.String(table),
		Item:                     item,
		ExpressionAttributeNames: map[string]string{"#pk": keyAttr},
	}
	if expected == 0 {
		put.ConditionExpression = aws.String("attribute_not_exists(#pk)")
		return put
	}
	put.ConditionExpression = aws.String("attribute_exists(#pk) AND #version = :expected")
	put.ExpressionAttributeNames["#version"] = "version"
	put.ExpressionAttributeValues = map[string]types.AttributeValue{
		":expected": &types.AttributeValueMemberN{Value: strconv.FormatInt(expected, 10)},
	}
	return put
}

func putItem(ctx context.Context, ddb DynamoAPI, put *types.Put) error {
	_, err := ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:                 put.TableName,
		Item:                      put.Item,
		ConditionExpression:       put.ConditionExpression,
		ExpressionAttributeNames:  put.ExpressionAttributeNames,
		ExpressionAttributeValues: put.ExpressionAttributeValues,
	})
	return err
}

func isConditionalCheckFailed(err error) bool {
	var cfe *types.ConditionalCheckFailedException
	return errors.As(err, &cfe)
}

// mapUpdateError turns a failed version condition into ErrVersionConflict.
func mapUpdateError(err error) error {
	if isConditionalCheckFailed(err) {
		return interfaces.ErrVersionConflict
	}
	return err
}

// cancelledAt reports which transaction items failed their condition.
func cancelledAt(err error) ([]bool, bool) {
	var tce *types.TransactionCanceledException
	if !errors.As(err, &tce) {
		return nil, false
	}
	failed := make([]bool, len(tce.CancellationReasons))
	for i, r := range tce.CancellationReasons {
		failed[i] = aws.ToString(r.Code) == "ConditionalCheckFailed"
	}
	return failed, true
}
