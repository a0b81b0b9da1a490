package dal

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbattribute"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbiface"
	dynamo_configuration "github.com/bezalel-media-core/crosspost/configuration/dynamo"
	tables "github.com/bezalel-media-core/crosspost/dal/tables/v1"
)

// DynamoDB caps a transaction at 100 items, far above the 7 user keys.
const max_transact_items = 100

type DynamoMetaDao struct {
	svc       dynamodbiface.DynamoDBAPI
	tableName string
}

func NewDynamoMetaDao(svc dynamodbiface.DynamoDBAPI, tableName string) *DynamoMetaDao {
	return &DynamoMetaDao{svc: svc, tableName: tableName}
}

func (d *DynamoMetaDao) GetAllMeta(ctx context.Context, kind tables.MetaKind, entityID string) (map[string]string, error) {
	queryInput := &dynamodb.QueryInput{
		TableName:              aws.String(d.tableName),
		KeyConditionExpression: aws.String(dynamo_configuration.META_PARTITION_KEY + " = :k"),
		ExpressionAttributeValues: map[string]*dynamodb.AttributeValue{
			":k": {
				S: aws.String(tables.EntityKey(kind, entityID)),
			},
		},
		ConsistentRead: aws.Bool(true), // Profile and post saves re-read straight after writing.
	}

	result := map[string]string{}
	var unmarshalErr error
	err := d.svc.QueryPagesWithContext(ctx, queryInput, func(page *dynamodb.QueryOutput, lastPage bool) bool {
		var entries []tables.MetaEntry
		unmarshalErr = dynamodbattribute.UnmarshalListOfMaps(page.Items, &entries)
		if unmarshalErr != nil {
			return false
		}
		for _, e := range entries {
			result[e.MetaKey] = e.MetaValue
		}
		return true
	})
	if err != nil {
		return nil, fmt.Errorf("query meta items: %w", err)
	}
	if unmarshalErr != nil {
		return nil, fmt.Errorf("unmarshal meta items: %w", unmarshalErr)
	}
	return result, nil
}

func (d *DynamoMetaDao) UpdateMeta(ctx context.Context, kind tables.MetaKind, entityID string, values map[string]string) error {
	if len(values) == 0 {
		return nil
	}
	now := time.Now().UnixMilli()
	items := make([]*dynamodb.TransactWriteItem, 0, len(values))
	for _, key := range sortedKeys(values) {
		av, err := dynamodbattribute.MarshalMap(tables.MetaEntry{
			EntityKey:           tables.EntityKey(kind, entityID),
			MetaKey:             key,
			MetaValue:           values[key],
			UpdatedAtEpochMilli: now,
		})
		if err != nil {
			return fmt.Errorf("marshal meta item %s: %w", key, err)
		}
		items = append(items, &dynamodb.TransactWriteItem{
			Put: &dynamodb.Put{
				Item:      av,
				TableName: aws.String(d.tableName),
			},
		})
	}
	if len(items) > max_transact_items {
		return fmt.Errorf("%w: %d keys", ErrTooManyMetaKeys, len(items))
	}

	_, err := d.svc.TransactWriteItemsWithContext(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: items,
	})
	if err != nil {
		return fmt.Errorf("write meta items: %w", err)
	}
	return nil
}
