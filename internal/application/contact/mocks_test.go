package contact

import (
	"context"
	"io"
	"log/slog"

	"github.com/contact-api/internal/domain"
	"github.com/stretchr/testify/mock"
)

// --- mocks ---

type mockStore struct{ mock.Mock }

func (m *mockStore) Put(ctx context.Context, rec *domain.RateLimitRecord) error {
	return m.Called(ctx, rec).Error(0)
}

func (m *mockStore) CountAfter(ctx context.Context, pk, sortKeyAfter string) (int, error) {
	args := m.Called(ctx, pk, sortKeyAfter)
	return args.Int(0), args.Error(1)
}

type mockBots struct{ mock.Mock }

func (m *mockBots) Verify(ctx context.Context, token, remoteIP string) (*domain.BotAssessment, error) {
	args := m.Called(ctx, token, remoteIP)
	if a, _ := args.Get(0).(*domain.BotAssessment); a != nil {
		return a, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockMailer struct{ mock.Mock }

func (m *mockMailer) Send(ctx context.Context, msg *domain.EmailMessage) error {
	return m.Called(ctx, msg).Error(0)
}

type mockArchive struct{ mock.Mock }

func (m *mockArchive) Archive(ctx context.Context, requestID string, msg *domain.EmailMessage) error {
	return m.Called(ctx, requestID, msg).Error(0)
}

type mockAlerts struct{ mock.Mock }

func (m *mockAlerts) Alert(ctx context.Context, requestID string, req *domain.SubmissionRequest) error {
	return m.Called(ctx, requestID, req).Error(0)
}

// --- helpers ---

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func score(v float64) *float64 { return &v }

func passing(v float64) *domain.BotAssessment {
	return &domain.BotAssessment{Success: true, Score: score(v)}
}
