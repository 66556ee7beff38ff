package contact

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/contact-api/internal/domain"
	"github.com/contact-api/internal/pkg/id"
)

const (
	successMessage    = "Message sent successfully"
	estimatedResponse = "as soon as possible"
)

// Client describes the caller of one submission, as seen by the transport.
type Client struct {
	SourceIP  string
	UserAgent string
}

// Archiver keeps a copy of each delivered message. Failures are not fatal.
type Archiver interface {
	Archive(ctx context.Context, requestID string, msg *domain.EmailMessage) error
}

// Alerter notifies the operator of a delivered submission. Failures are not fatal.
type Alerter interface {
	Alert(ctx context.Context, requestID string, req *domain.SubmissionRequest) error
}

// Service runs the contact submission pipeline.
type Service interface {
	// Submit returns a receipt on success. Rejections are returned as
	// *domain.Failure; any other error is unexpected.
	Submit(ctx context.Context, body []byte, client Client) (*domain.SubmissionReceipt, error)
}

// ServiceDeps groups the collaborators of the pipeline. Archive and Alerts
// are optional.
type ServiceDeps struct {
	Store          RateLimitStore
	Bots           BotVerifier
	Mailer         EmailSender
	Archive        Archiver
	Alerts         Alerter
	Limits         RateLimitPolicy
	ScoreThreshold float64
	Email          DispatcherConfig
	Logger         *slog.Logger
}

type service struct {
	limiter    *RateLimiter
	dispatcher *Dispatcher
	bots       BotVerifier
	threshold  float64
	archive    Archiver
	alerts     Alerter
	log        *slog.Logger
	newID      func() string
}

func NewService(deps ServiceDeps) Service {
	limits := deps.Limits
	if limits == (RateLimitPolicy{}) {
		limits = DefaultRateLimits
	}
	threshold := deps.ScoreThreshold
	if threshold == 0 {
		threshold = DefaultScoreThreshold
	}
	log := deps.Logger
	if log == nil {
		log = slog.Default()
	}
	return &service{
		limiter:    NewRateLimiter(deps.Store, limits),
		dispatcher: NewDispatcher(deps.Mailer, deps.Email),
		bots:       deps.Bots,
		threshold:  threshold,
		archive:    deps.Archive,
		alerts:     deps.Alerts,
		log:        log,
		newID:      id.NewRequestID,
	}
}

func (s *service) Submit(ctx context.Context, body []byte, client Client) (*domain.SubmissionReceipt, error) {
	requestID := s.newID()
	log := s.log.With("request_id", requestID)
	log.InfoContext(ctx, "contact form submission received", "source_ip", client.SourceIP, "user_agent", client.UserAgent)

	req, err := ParseSubmission(body)
	if err != nil {
		return nil, s.reject(ctx, log, "parse", err)
	}
	if err := ValidateSubmission(req); err != nil {
		return nil, s.reject(ctx, log, "validate", err)
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)

	score, err := verifyBotScore(ctx, s.bots, s.threshold, req.VerificationToken, client.SourceIP, log)
	if err != nil {
		return nil, s.reject(ctx, log, "verify", err)
	}
	if score != nil {
		log.DebugContext(ctx, "bot verification passed", "score", *score)
	}

	if err := s.limiter.Check(ctx, client.SourceIP, req.Email, log); err != nil {
		return nil, s.reject(ctx, log, "rate_limit", err)
	}

	msg, err := s.dispatcher.Dispatch(ctx, req, requestID, log)
	if err != nil {
		return nil, s.reject(ctx, log, "email", err)
	}

	s.limiter.Record(ctx, client.SourceIP, req.Email, requestID, &domain.RateLimitMetadata{
		Service:   req.Service,
		UserAgent: req.UserAgent(),
	}, log)

	if s.archive != nil {
		if err := s.archive.Archive(ctx, requestID, msg); err != nil {
			log.WarnContext(ctx, "archive contact email failed", "err", err)
		}
	}
	if s.alerts != nil {
		if err := s.alerts.Alert(ctx, requestID, req); err != nil {
			log.WarnContext(ctx, "operator alert failed", "err", err)
		}
	}

	log.InfoContext(ctx, "contact form submission successful", "email", req.Email, "service", req.Service)
	return &domain.SubmissionReceipt{RequestID: requestID, EstimatedResponse: estimatedResponse}, nil
}

func (s *service) reject(ctx context.Context, log *slog.Logger, stage string, err error) error {
	var f *domain.Failure
	if errors.As(err, &f) {
		log.InfoContext(ctx, "contact form submission rejected", "stage", stage, "code", f.Code, "reason", f.Message)
		return f
	}
	return fmt.Errorf("%s: %w", stage, err)
}

// Respond maps the outcome of Submit to an HTTP status and JSON body.
// Errors that are not a *domain.Failure become INTERNAL_ERROR without leaking
// their text.
func Respond(receipt *domain.SubmissionReceipt, err error) (int, any) {
	if err == nil && receipt != nil {
		return http.StatusOK, domain.SuccessResponse{
			Success:           true,
			Message:           successMessage,
			RequestID:         receipt.RequestID,
			EstimatedResponse: receipt.EstimatedResponse,
		}
	}
	var f *domain.Failure
	if !errors.As(err, &f) {
		f = domain.NewFailure(domain.CodeInternal, "An unexpected error occurred")
	}
	return f.Code.HTTPStatus(), f.Body()
}
