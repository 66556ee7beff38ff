package contact

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/contact-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCompose_AddressesAndTimestamp(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)
	d := NewDispatcher(&mockMailer{}, DispatcherConfig{
		From: "noreply@example.com", Operator: "ops@example.com", Brand: "Acme", Location: loc,
	})
	d.now = func() time.Time { return time.Date(2026, 10, 18, 13, 5, 0, 0, time.UTC) }

	msg, err := d.Compose(validRequest(), "req-42")
	require.NoError(t, err)
	assert.Equal(t, "noreply@example.com", msg.From)
	assert.Equal(t, []string{"jane@example.com", "ops@example.com"}, msg.To)
	assert.Equal(t, []string{"ops@example.com", "jane@example.com"}, msg.ReplyTo)
	assert.Equal(t, "Thanks for contacting Acme - Cloud Consulting", msg.Subject)
	assert.Contains(t, msg.HTMLBody, "Sunday, October 18, 2026 at 9:05 AM EDT")
	assert.Contains(t, msg.HTMLBody, "Jane O&#39;Neil-Smith")
	assert.Contains(t, msg.HTMLBody, "Reference: req-42")
}

func TestDispatch_SendErrorBecomesFailure(t *testing.T) {
	m := &mockMailer{}
	m.On("Send", mock.Anything, mock.Anything).Return(errors.New("connection reset")).Once()
	d := NewDispatcher(m, DispatcherConfig{From: "a@example.com", Operator: "b@example.com"})

	msg, err := d.Dispatch(context.Background(), validRequest(), "req-1", discardLogger())
	assert.Nil(t, msg)
	var f *domain.Failure
	require.True(t, errors.As(err, &f))
	assert.Equal(t, domain.CodeEmailSendFailed, f.Code)
	// Single attempt.
	m.AssertNumberOfCalls(t, "Send", 1)
}
