package app

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/contact-api/internal/config"
	"github.com/contact-api/internal/infrastructure/ses"
	"github.com/contact-api/internal/infrastructure/smtp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEmailSender(t *testing.T) {
	awsCfg := aws.Config{Region: "us-east-1"}

	s, err := newEmailSender(awsCfg, &config.Config{EmailTransport: "ses"})
	require.NoError(t, err)
	assert.IsType(t, &ses.Sender{}, s)

	s, err = newEmailSender(awsCfg, &config.Config{EmailTransport: "smtp", SMTPHost: "localhost", SMTPPort: "1025"})
	require.NoError(t, err)
	assert.IsType(t, &smtp.Mailer{}, s)

	_, err = newEmailSender(awsCfg, &config.Config{EmailTransport: "fax"})
	assert.ErrorContains(t, err, "fax")
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger(&buf, &config.Config{LogLevel: slog.LevelWarn}, true)
	log.Info("hidden")
	log.Warn("shown", "request_id", "abc")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"request_id":"abc"`)
}
