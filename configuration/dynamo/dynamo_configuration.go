package dynamo

import (
	"errors"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbiface"
	"github.com/bezalel-media-core/crosspost/logger"
)

const META_PARTITION_KEY = "EntityKey" // <kind>#<entity id>, e.g. user#42
const META_SORT_KEY = "MetaKey"        // medium_user_id, medium_post_url, ...

// Init creates the metadata table if it is missing.
func Init(svc dynamodbiface.DynamoDBAPI, tableName string, log logger.Logger) error {
	log.Info("Initializing DynamoDB Tables")
	return createMetaTable(svc, tableName, log)
}

// Creates the Medium metadata table.
// PK: EntityKey, one partition per user or post.
// SK: MetaKey, one item per metadata key so single keys can be read without the others.
func createMetaTable(svc dynamodbiface.DynamoDBAPI, tableName string, log logger.Logger) error {
	input := &dynamodb.CreateTableInput{
		AttributeDefinitions: []*dynamodb.AttributeDefinition{
			{
				AttributeName: aws.String(META_PARTITION_KEY),
				AttributeType: aws.String("S"),
			},
			{
				AttributeName: aws.String(META_SORT_KEY),
				AttributeType: aws.String("S"),
			},
		},
		KeySchema: []*dynamodb.KeySchemaElement{
			{
				AttributeName: aws.String(META_PARTITION_KEY),
				KeyType:       aws.String("HASH"),
			},
			{
				AttributeName: aws.String(META_SORT_KEY),
				KeyType:       aws.String("RANGE"),
			},
		},
		BillingMode: aws.String(dynamodb.BillingModePayPerRequest),
		TableName:   aws.String(tableName),
	}
	return createTable(svc, input, log)
}

func createTable(svc dynamodbiface.DynamoDBAPI, input *dynamodb.CreateTableInput, log logger.Logger) error {
	log = log.With(logger.String("table", aws.StringValue(input.TableName)))
	_, err := svc.CreateTable(input)
	if tableAlreadyExists(err) {
		log.Info("Table already exists")
		return nil
	} else if err != nil {
		log.Error("Got error calling CreateTable", logger.Error(err))
		return err
	}
	log.Info("Created the table")
	return nil
}

func tableAlreadyExists(err error) bool {
	var aerr awserr.Error
	if errors.As(err, &aerr) {
		return aerr.Code() == dynamodb.ErrCodeResourceInUseException
	}
	return false
}
