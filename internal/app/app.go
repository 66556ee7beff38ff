// Package app wires configuration and infrastructure into the contact service.
package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/contact-api/internal/application/contact"
	"github.com/contact-api/internal/config"
	"github.com/contact-api/internal/infrastructure/awscfg"
	"github.com/contact-api/internal/infrastructure/dynamo"
	"github.com/contact-api/internal/infrastructure/recaptcha"
	s3infra "github.com/contact-api/internal/infrastructure/s3"
	"github.com/contact-api/internal/infrastructure/ses"
	"github.com/contact-api/internal/infrastructure/smtp"
	"github.com/contact-api/internal/infrastructure/sns"
	"github.com/contact-api/internal/infrastructure/ssm"
)

// NewLogger returns a JSON logger for Lambda and a text logger otherwise.
func NewLogger(w io.Writer, cfg *config.Config, json bool) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.LogLevel}
	if json {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// NewContactService builds the submission pipeline from cfg. It is called
// once per process; clients and the cached secret live as long as it does.
func NewContactService(ctx context.Context, cfg *config.Config, log *slog.Logger) (contact.Service, error) {
	awsCfg, err := awscfg.Load(ctx, cfg)
	if err != nil {
		return nil, err
	}

	dynamoClient := dynamo.NewClient(awsCfg, cfg)
	if cfg.BootstrapTables {
		dynamo.Bootstrap(ctx, dynamoClient, cfg.RateLimitTable)
	}

	secrets := ssm.NewSecretSource(ssm.NewClient(awsCfg, cfg), cfg.RecaptchaSecretParameter)

	mailer, err := newEmailSender(awsCfg, cfg)
	if err != nil {
		return nil, err
	}

	loc, err := time.LoadLocation(cfg.DisplayTimezone)
	if err != nil {
		log.Warn("unknown display timezone, using UTC", "timezone", cfg.DisplayTimezone, "error", err)
		loc = time.UTC
	}

	deps := contact.ServiceDeps{
		Store:          dynamo.NewRateLimitRepo(dynamoClient, cfg.RateLimitTable),
		Bots:           recaptcha.NewClient(secrets, cfg.RecaptchaVerifyURL, cfg.RecaptchaTimeout),
		Mailer:         mailer,
		ScoreThreshold: cfg.RecaptchaThreshold,
		Email: contact.DispatcherConfig{
			From:     cfg.SESFromEmail,
			Operator: cfg.SESToEmail,
			Brand:    cfg.BrandName,
			Location: loc,
		},
		Logger: log,
	}
	if cfg.ArchiveBucket != "" {
		deps.Archive = s3infra.NewArchive(s3infra.NewClient(awsCfg, cfg), cfg.ArchiveBucket)
	}
	if cfg.AlertTopicARN != "" {
		deps.Alerts = sns.NewAlerter(sns.NewClient(awsCfg, cfg), cfg.AlertTopicARN)
	}

	return contact.NewService(deps), nil
}

func newEmailSender(awsCfg aws.Config, cfg *config.Config) (contact.EmailSender, error) {
	switch cfg.EmailTransport {
	case "ses":
		return ses.NewSender(ses.NewClient(awsCfg, cfg)), nil
	case "smtp":
		return smtp.NewMailer(cfg), nil
	default:
		return nil, fmt.Errorf("unsupported email transport %q", cfg.EmailTransport)
	}
}
