package contact

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/contact-api/internal/domain"
	"github.com/contact-api/internal/pkg/mailtmpl"
)

// EmailSender delivers one message. Implementations make a single attempt.
type EmailSender interface {
	Send(ctx context.Context, msg *domain.EmailMessage) error
}

const (
	noMessage    = "(no message provided)"
	notAvailable = "N/A"
	// displayLayout renders e.g. "Sunday, October 18, 2026 at 9:05 AM EDT".
	displayLayout = "Monday, January 2, 2006 at 3:04 PM MST"
)

// Dispatcher renders the confirmation email and sends it to the submitter and
// the operator on one shared thread.
type Dispatcher struct {
	sender   EmailSender
	from     string
	operator string
	brand    string
	loc      *time.Location
	now      func() time.Time
}

// DispatcherConfig holds the fixed addresses and presentation settings.
type DispatcherConfig struct {
	From     string
	Operator string
	Brand    string
	Location *time.Location
}

func NewDispatcher(sender EmailSender, cfg DispatcherConfig) *Dispatcher {
	loc := cfg.Location
	if loc == nil {
		loc = time.UTC
	}
	return &Dispatcher{
		sender:   sender,
		from:     cfg.From,
		operator: cfg.Operator,
		brand:    cfg.Brand,
		loc:      loc,
		now:      time.Now,
	}
}

// Compose builds the message for req without sending it.
func (d *Dispatcher) Compose(req *domain.SubmissionRequest, requestID string) (*domain.EmailMessage, error) {
	body, err := mailtmpl.RenderHTML(mailtmpl.ContactConfirmation, map[string]string{
		"name":      req.Name,
		"email":     req.Email,
		"service":   req.Service,
		"message":   orDefault(req.Message, noMessage),
		"requestId": requestID,
		"timestamp": d.now().In(d.loc).Format(displayLayout),
		"userAgent": orDefault(req.UserAgent(), notAvailable),
		"referrer":  orDefault(req.Referrer(), notAvailable),
	})
	if err != nil {
		return nil, err
	}
	return &domain.EmailMessage{
		From:     d.from,
		To:       []string{req.Email, d.operator},
		ReplyTo:  []string{d.operator, req.Email},
		Subject:  fmt.Sprintf("Thanks for contacting %s - %s", d.brand, req.Service),
		HTMLBody: body,
	}, nil
}

// Dispatch composes and sends the message. Any error becomes EMAIL_SEND_FAILED;
// there is no retry.
func (d *Dispatcher) Dispatch(ctx context.Context, req *domain.SubmissionRequest, requestID string, log *slog.Logger) (*domain.EmailMessage, error) {
	msg, err := d.Compose(req, requestID)
	if err == nil {
		err = d.sender.Send(ctx, msg)
	}
	if err != nil {
		log.ErrorContext(ctx, "send contact email failed", "err", err)
		return nil, domain.NewFailure(domain.CodeEmailSendFailed, "Failed to send initial contact email")
	}
	return msg, nil
}

func orDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
