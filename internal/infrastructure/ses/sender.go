package ses

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
	"github.com/contact-api/internal/config"
	"github.com/contact-api/internal/domain"
	"github.com/contact-api/internal/infrastructure/awscfg"
)

const charset = "UTF-8"

// sendAPI is the subset of *sesv2.Client used by Sender.
type sendAPI interface {
	SendEmail(ctx context.Context, in *sesv2.SendEmailInput, optFns ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error)
}

// Sender delivers HTML email through Amazon SES.
type Sender struct {
	client sendAPI
}

func NewClient(awsCfg aws.Config, cfg *config.Config) *sesv2.Client {
	return sesv2.NewFromConfig(awsCfg, func(o *sesv2.Options) {
		if ep := awscfg.Endpoint(cfg); ep != nil {
			o.BaseEndpoint = ep
		}
	})
}

func NewSender(client sendAPI) *Sender {
	return &Sender{client: client}
}

func (s *Sender) Send(ctx context.Context, msg *domain.EmailMessage) error {
	_, err := s.client.SendEmail(ctx, buildInput(msg))
	if err != nil {
		return fmt.Errorf("ses send email: %w", err)
	}
	return nil
}

func buildInput(msg *domain.EmailMessage) *sesv2.SendEmailInput {
	return &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(msg.From),
		Destination:      &types.Destination{ToAddresses: msg.To},
		ReplyToAddresses: msg.ReplyTo,
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: aws.String(msg.Subject), Charset: aws.String(charset)},
				Body: &types.Body{
					Html: &types.Content{Data: aws.String(msg.HTMLBody), Charset: aws.String(charset)},
				},
			},
		},
	}
}
