package sns

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/contact-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSNS struct {
	in  *sns.PublishInput
	err error
}

func (f *fakeSNS) Publish(_ context.Context, in *sns.PublishInput, _ ...func(*sns.Options)) (*sns.PublishOutput, error) {
	f.in = in
	return &sns.PublishOutput{}, f.err
}

func TestAlert_PublishesSummary(t *testing.T) {
	f := &fakeSNS{}
	err := NewAlerter(f, "arn:aws:sns:us-east-1:123456789012:contact").Alert(context.Background(), "req-9", &domain.SubmissionRequest{
		Name: "Jane", Email: "jane@example.com", Service: "AI Enablement", Message: "Hello",
	})
	require.NoError(t, err)
	assert.Equal(t, "arn:aws:sns:us-east-1:123456789012:contact", aws.ToString(f.in.TopicArn))
	assert.Equal(t, "New contact request: AI Enablement", aws.ToString(f.in.Subject))
	msg := aws.ToString(f.in.Message)
	assert.Contains(t, msg, "Jane <jane@example.com> asked about AI Enablement.")
	assert.Contains(t, msg, "Hello")
	assert.Contains(t, msg, "Request ID: req-9")
}

func TestAlert_TruncatesSubject(t *testing.T) {
	f := &fakeSNS{}
	require.NoError(t, NewAlerter(f, "arn").Alert(context.Background(), "r", &domain.SubmissionRequest{
		Service: strings.Repeat("s", 200),
	}))
	assert.Len(t, []rune(aws.ToString(f.in.Subject)), maxSubject)
}

func TestAlert_WrapsError(t *testing.T) {
	err := NewAlerter(&fakeSNS{err: errors.New("AuthorizationError")}, "arn").
		Alert(context.Background(), "r", &domain.SubmissionRequest{})
	assert.ErrorContains(t, err, "sns publish: AuthorizationError")
}
