package dynamo

import (
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbiface"
	"github.com/bezalel-media-core/crosspost/logger"
	"github.com/stretchr/testify/assert"
)

type createTableStub struct {
	dynamodbiface.DynamoDBAPI
	err   error
	input *dynamodb.CreateTableInput
}

func (s *createTableStub) CreateTable(in *dynamodb.CreateTableInput) (*dynamodb.CreateTableOutput, error) {
	s.input = in
	return &dynamodb.CreateTableOutput{}, s.err
}

func TestInitCreatesMetaTable(t *testing.T) {
	stub := &createTableStub{}
	err := Init(stub, "MediumMeta", logger.NewNop())
	assert.Nil(t, err)
	assert.Equal(t, "MediumMeta", *stub.input.TableName)
	assert.Equal(t, META_PARTITION_KEY, *stub.input.KeySchema[0].AttributeName)
	assert.Equal(t, "HASH", *stub.input.KeySchema[0].KeyType)
	assert.Equal(t, META_SORT_KEY, *stub.input.KeySchema[1].AttributeName)
	assert.Equal(t, "RANGE", *stub.input.KeySchema[1].KeyType)
}

func TestInitToleratesExistingTable(t *testing.T) {
	stub := &createTableStub{err: awserr.New(dynamodb.ErrCodeResourceInUseException, "exists", nil)}
	assert.Nil(t, Init(stub, "MediumMeta", logger.NewNop()))
}

func TestInitSurfacesOtherErrors(t *testing.T) {
	stub := &createTableStub{err: errors.New("boom")}
	assert.NotNil(t, Init(stub, "MediumMeta", logger.NewNop()))
}
