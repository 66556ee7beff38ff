package dynamo

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/contact-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAPI serves Query pages in order and captures PutItem input.
type fakeAPI struct {
	pages    []*dynamodb.QueryOutput
	queryErr error
	queries  []*dynamodb.QueryInput
	puts     []*dynamodb.PutItemInput
	putErr   error
}

func (f *fakeAPI) Query(_ context.Context, in *dynamodb.QueryInput, _ ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	f.queries = append(f.queries, in)
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	out := f.pages[0]
	f.pages = f.pages[1:]
	return out, nil
}

func (f *fakeAPI) PutItem(_ context.Context, in *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	f.puts = append(f.puts, in)
	return &dynamodb.PutItemOutput{}, f.putErr
}

func TestCountQuery_Shape(t *testing.T) {
	in := countQuery("limits", "IP#1.2.3.4", "2026-10-18T12:00:00.000Z#~")
	assert.Equal(t, "limits", *in.TableName)
	assert.Equal(t, "#pk = :pk AND #sk > :after", *in.KeyConditionExpression)
	assert.Equal(t, types.SelectCount, in.Select)
	assert.Equal(t, "IP#1.2.3.4", in.ExpressionAttributeValues[":pk"].(*types.AttributeValueMemberS).Value)
	assert.Equal(t, "sk", in.ExpressionAttributeNames["#sk"])
}

func TestCountAfter_SumsPages(t *testing.T) {
	api := &fakeAPI{pages: []*dynamodb.QueryOutput{
		{Count: 3, LastEvaluatedKey: map[string]types.AttributeValue{"pk": &types.AttributeValueMemberS{Value: "x"}}},
		{Count: 2},
	}}
	n, err := NewRateLimitRepo(api, "limits").CountAfter(context.Background(), "IP#1.2.3.4", "cutoff")
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	require.Len(t, api.queries, 2)
	assert.NotNil(t, api.queries[1].ExclusiveStartKey)
}

func TestCountAfter_Error(t *testing.T) {
	api := &fakeAPI{queryErr: errors.New("ProvisionedThroughputExceeded")}
	_, err := NewRateLimitRepo(api, "limits").CountAfter(context.Background(), "IP#1.2.3.4", "cutoff")
	assert.ErrorContains(t, err, "count rate limit records IP#1.2.3.4")
}

func TestPut_MarshalsRecord(t *testing.T) {
	api := &fakeAPI{}
	rec := &domain.RateLimitRecord{
		PK: "EMAIL#jane@example.com", SK: "2026-10-18T12:00:00.000Z#01J", TTL: 1792324800, RequestID: "req-1",
		Metadata: &domain.RateLimitMetadata{Service: "Web Design"},
	}
	require.NoError(t, NewRateLimitRepo(api, "limits").Put(context.Background(), rec))
	require.Len(t, api.puts, 1)
	item := api.puts[0].Item
	assert.Equal(t, "EMAIL#jane@example.com", item["pk"].(*types.AttributeValueMemberS).Value)
	assert.Equal(t, "1792324800", item["ttl"].(*types.AttributeValueMemberN).Value)
	assert.Equal(t, "req-1", item["requestId"].(*types.AttributeValueMemberS).Value)
	meta := item["metadata"].(*types.AttributeValueMemberM).Value
	assert.Equal(t, "Web Design", meta["service"].(*types.AttributeValueMemberS).Value)
	_, hasUA := meta["userAgent"]
	assert.False(t, hasUA)
}

func TestPut_WrapsError(t *testing.T) {
	api := &fakeAPI{putErr: errors.New("denied")}
	err := NewRateLimitRepo(api, "limits").Put(context.Background(), &domain.RateLimitRecord{PK: "IP#x"})
	assert.ErrorContains(t, err, "put rate limit record IP#x")
}
