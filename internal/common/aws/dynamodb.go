// internal/common/aws/dynamodb.go
package aws

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

// DynamoDBAPI is the slice of the DynamoDB client the gateway uses.
type DynamoDBAPI interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
}

type DynamoDBClient struct {
	Client DynamoDBAPI
}

func NewDynamoDBClient(ctx context.Context, region string) (*DynamoDBClient, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, err
	}
	return &DynamoDBClient{Client: dynamodb.NewFromConfig(cfg)}, nil
}

// NewDynamoDBClientFromAPI wraps an existing client, used by tests.
func NewDynamoDBClientFromAPI(api DynamoDBAPI) *DynamoDBClient {
	return &DynamoDBClient{Client: api}
}
