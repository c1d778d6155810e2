// internal/intake/store.go
package intake

import (
	"context"
	"fmt"

	"intake-gateway/internal/models"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"

	commonaws "intake-gateway/internal/common/aws"
)

// listLimit bounds the triage view. This is not a paginated API.
const listLimit = 100

// Store is the durable record store owning intake submissions.
type Store interface {
	Put(ctx context.Context, sub models.IntakeSubmission) error
	List(ctx context.Context) ([]models.IntakeSubmission, error)
}

// DynamoStore persists submissions in one DynamoDB table keyed by
// submissionId.
type DynamoStore struct {
	db    *commonaws.DynamoDBClient
	table string
}

func NewDynamoStore(db *commonaws.DynamoDBClient, table string) *DynamoStore {
	return &DynamoStore{db: db, table: table}
}

// Put writes the full submission in a single atomic PutItem.
func (s *DynamoStore) Put(ctx context.Context, sub models.IntakeSubmission) error {
	item, err := attributevalue.MarshalMap(sub)
	if err != nil {
		return fmt.Errorf("failed to marshal submission: %w", err)
	}

	_, err = s.db.Client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: &s.table,
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("failed to put submission: %w", err)
	}
	return nil
}

// List returns up to listLimit submissions in whatever order the table
// scan yields them.
func (s *DynamoStore) List(ctx context.Context) ([]models.IntakeSubmission, error) {
	limit := int32(listLimit)
	out, err := s.db.Client.Scan(ctx, &dynamodb.ScanInput{
		TableName: &s.table,
		Limit:     &limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan submissions: %w", err)
	}

	subs := make([]models.IntakeSubmission, 0, len(out.Items))
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &subs); err != nil {
		return nil, fmt.Errorf("failed to unmarshal submissions: %w", err)
	}
	return subs, nil
}
