package sns

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/contact-api/internal/config"
	"github.com/contact-api/internal/domain"
	"github.com/contact-api/internal/infrastructure/awscfg"
)

// SNS subjects are limited to 100 characters.
const maxSubject = 100

// publishAPI is the subset of *sns.Client used by Alerter.
type publishAPI interface {
	Publish(ctx context.Context, in *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

// Alerter publishes a short summary of each delivered submission to an SNS
// topic the operator subscribes to (SMS, chat webhook, etc.).
type Alerter struct {
	client   publishAPI
	topicARN string
}

func NewClient(awsCfg aws.Config, cfg *config.Config) *sns.Client {
	return sns.NewFromConfig(awsCfg, func(o *sns.Options) {
		if ep := awscfg.Endpoint(cfg); ep != nil {
			o.BaseEndpoint = ep
		}
	})
}

func NewAlerter(client publishAPI, topicARN string) *Alerter {
	return &Alerter{client: client, topicARN: topicARN}
}

func (a *Alerter) Alert(ctx context.Context, requestID string, req *domain.SubmissionRequest) error {
	subject := truncate(fmt.Sprintf("New contact request: %s", req.Service), maxSubject)
	_, err := a.client.Publish(ctx, &sns.PublishInput{
		TopicArn: aws.String(a.topicARN),
		Subject:  aws.String(subject),
		Message:  aws.String(summary(requestID, req)),
	})
	if err != nil {
		return fmt.Errorf("sns publish: %w", err)
	}
	return nil
}

func summary(requestID string, req *domain.SubmissionRequest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s <%s> asked about %s.\n", req.Name, req.Email, req.Service)
	if req.Message != "" {
		fmt.Fprintf(&b, "\n%s\n", truncate(req.Message, 280))
	}
	fmt.Fprintf(&b, "\nRequest ID: %s", requestID)
	return b.String()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
