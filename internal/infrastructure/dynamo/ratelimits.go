package dynamo

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/contact-api/internal/domain"
)

// Attribute names of the rate-limit table.
const (
	attrPK  = "pk"
	attrSK  = "sk"
	attrTTL = "ttl"
)

// rateLimitAPI is the subset of *dynamodb.Client the repository uses.
type rateLimitAPI interface {
	dynamodb.QueryAPIClient
	PutItem(ctx context.Context, in *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
}

// RateLimitRepo stores one item per accepted submission and scope.
// PK: pk ("IP#..." | "EMAIL#..."), SK: sk (timestamp), TTL: ttl.
type RateLimitRepo struct {
	client    rateLimitAPI
	tableName string
}

func NewRateLimitRepo(client rateLimitAPI, tableName string) *RateLimitRepo {
	return &RateLimitRepo{client: client, tableName: tableName}
}

func (r *RateLimitRepo) Put(ctx context.Context, rec *domain.RateLimitRecord) error {
	item, err := attributevalue.MarshalMap(rec)
	if err != nil {
		return fmt.Errorf("marshal rate limit record: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("put rate limit record %s: %w", rec.PK, err)
	}
	return nil
}

// CountAfter counts items under pk with sk > sortKeyAfter. It pages through
// the whole key range since DynamoDB caps each COUNT response at 1 MB read.
func (r *RateLimitRepo) CountAfter(ctx context.Context, pk, sortKeyAfter string) (int, error) {
	p := dynamodb.NewQueryPaginator(r.client, countQuery(r.tableName, pk, sortKeyAfter))
	total := 0
	for p.HasMorePages() {
		out, err := p.NextPage(ctx)
		if err != nil {
			return 0, fmt.Errorf("count rate limit records %s: %w", pk, err)
		}
		total += int(out.Count)
	}
	return total, nil
}

func countQuery(table, pk, sortKeyAfter string) *dynamodb.QueryInput {
	return &dynamodb.QueryInput{
		TableName:              aws.String(table),
		KeyConditionExpression: aws.String("#pk = :pk AND #sk > :after"),
		ExpressionAttributeNames: map[string]string{
			"#pk": attrPK,
			"#sk": attrSK,
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pk":    &types.AttributeValueMemberS{Value: pk},
			":after": &types.AttributeValueMemberS{Value: sortKeyAfter},
		},
		Select: types.SelectCount,
	}
}
