package contact

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/contact-api/internal/domain"
	"github.com/contact-api/internal/pkg/id"
)

// RateLimitStore persists rate-limit records and counts them per partition.
type RateLimitStore interface {
	Put(ctx context.Context, rec *domain.RateLimitRecord) error
	// CountAfter returns the number of records under pk whose sort key is
	// strictly greater than sortKeyAfter.
	CountAfter(ctx context.Context, pk, sortKeyAfter string) (int, error)
}

// RateLimitPolicy caps accepted submissions per IP and per email address
// over trailing windows.
type RateLimitPolicy struct {
	IPLimit     int
	IPWindow    time.Duration
	EmailLimit  int
	EmailWindow time.Duration
}

// DefaultRateLimits allows 5 submissions per IP per hour and 10 per email
// address per 24 hours.
var DefaultRateLimits = RateLimitPolicy{
	IPLimit:     5,
	IPWindow:    time.Hour,
	EmailLimit:  10,
	EmailWindow: 24 * time.Hour,
}

// recordTTL covers the longer of the two windows so one expiry serves both scopes.
func (p RateLimitPolicy) recordTTL() time.Duration {
	if p.EmailWindow > p.IPWindow {
		return p.EmailWindow
	}
	return p.IPWindow
}

// RateLimiter enforces RateLimitPolicy as a sliding window over a RateLimitStore.
type RateLimiter struct {
	store  RateLimitStore
	policy RateLimitPolicy
	now    func() time.Time
	newID  func() string
}

func NewRateLimiter(store RateLimitStore, policy RateLimitPolicy) *RateLimiter {
	return &RateLimiter{store: store, policy: policy, now: time.Now, newID: id.New}
}

// Check returns a RATE_LIMIT_EXCEEDED failure once a scope's count reaches its
// limit. The IP scope is checked before the email scope. Store errors fail
// open: the submission is allowed.
func (l *RateLimiter) Check(ctx context.Context, ip, email string, log *slog.Logger) error {
	now := l.now()

	ipCount, err := l.store.CountAfter(ctx, domain.IPKey(ip), domain.SortKeyAfter(now.Add(-l.policy.IPWindow)))
	if err != nil {
		log.ErrorContext(ctx, "rate limit check failed, allowing request", "scope", "ip", "err", err)
		return nil
	}
	if ipCount >= l.policy.IPLimit {
		return &domain.Failure{
			Code:    domain.CodeRateLimitExceeded,
			Message: fmt.Sprintf("Too many requests from this IP. Limit: %d requests per %s", l.policy.IPLimit, describeWindow(l.policy.IPWindow)),
			Details: map[string]any{"retryAfterSeconds": int(l.policy.IPWindow.Seconds())},
		}
	}

	emailCount, err := l.store.CountAfter(ctx, domain.EmailKey(email), domain.SortKeyAfter(now.Add(-l.policy.EmailWindow)))
	if err != nil {
		log.ErrorContext(ctx, "rate limit check failed, allowing request", "scope", "email", "err", err)
		return nil
	}
	if emailCount >= l.policy.EmailLimit {
		return &domain.Failure{
			Code:    domain.CodeRateLimitExceeded,
			Message: fmt.Sprintf("Too many requests from this email. Limit: %d requests per %s", l.policy.EmailLimit, describeWindow(l.policy.EmailWindow)),
			Details: map[string]any{"retryAfterSeconds": int(l.policy.EmailWindow.Seconds())},
		}
	}
	return nil
}

// Record writes one record for the IP scope and one for the email scope.
// Both share a timestamp, request id and expiry. Write errors are logged and
// swallowed; a partial write is not rolled back.
func (l *RateLimiter) Record(ctx context.Context, ip, email, requestID string, meta *domain.RateLimitMetadata, log *slog.Logger) {
	now := l.now()
	ttl := now.Add(l.policy.recordTTL()).Unix()

	for _, pk := range []string{domain.IPKey(ip), domain.EmailKey(email)} {
		rec := &domain.RateLimitRecord{
			PK:        pk,
			SK:        domain.SortKey(now, l.newID()),
			TTL:       ttl,
			RequestID: requestID,
			Metadata:  meta,
		}
		if err := l.store.Put(ctx, rec); err != nil {
			log.ErrorContext(ctx, "failed to record rate limit", "pk", pk, "err", err)
		}
	}
}

func describeWindow(d time.Duration) string {
	if d == time.Hour {
		return "hour"
	}
	if d%time.Hour == 0 {
		return fmt.Sprintf("%d hours", int(d.Hours()))
	}
	return d.String()
}
