package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/contact-api/internal/application/contact"
	"github.com/contact-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- mock ---

type mockContactSvc struct{ mock.Mock }

func (m *mockContactSvc) Submit(ctx context.Context, body []byte, client contact.Client) (*domain.SubmissionReceipt, error) {
	args := m.Called(ctx, body, client)
	if r, _ := args.Get(0).(*domain.SubmissionReceipt); r != nil {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}

func postContact(body string) *http.Request {
	r := httptest.NewRequest(http.MethodPost, "/v1/contact", bytes.NewBufferString(body))
	r.Header.Set("Content-Type", "application/json")
	r.Header.Set("User-Agent", "test-agent")
	r.Header.Set("X-Forwarded-For", "198.51.100.23, 10.0.0.1")
	return r
}

func TestSubmit_Success(t *testing.T) {
	svc := &mockContactSvc{}
	svc.On("Submit", mock.Anything, []byte(`{"name":"Jane"}`), contact.Client{SourceIP: "192.0.2.1", UserAgent: "test-agent"}).
		Return(&domain.SubmissionReceipt{RequestID: "9b2f6c1e-0a4d-4f8e-9d1a-2b3c4d5e6f70", EstimatedResponse: "as soon as possible"}, nil)

	rr := httptest.NewRecorder()
	NewContactHandler(svc).Submit(rr, postContact(`{"name":"Jane"}`))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	var resp domain.SuccessResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "Message sent successfully", resp.Message)
	assert.Equal(t, "9b2f6c1e-0a4d-4f8e-9d1a-2b3c4d5e6f70", resp.RequestID)
	svc.AssertExpectations(t)
}

func TestSubmit_FailureCodes(t *testing.T) {
	cases := []struct {
		code   domain.ErrorCode
		status int
	}{
		{domain.CodeInvalidEmail, http.StatusBadRequest},
		{domain.CodeRecaptchaLowScore, http.StatusForbidden},
		{domain.CodeRateLimitExceeded, http.StatusTooManyRequests},
		{domain.CodeEmailSendFailed, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(string(tc.code), func(t *testing.T) {
			svc := &mockContactSvc{}
			svc.On("Submit", mock.Anything, mock.Anything, mock.Anything).Return(nil, domain.NewFailure(tc.code, "nope"))

			rr := httptest.NewRecorder()
			NewContactHandler(svc).Submit(rr, postContact(`{}`))

			assert.Equal(t, tc.status, rr.Code)
			var resp domain.ErrorResponse
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
			assert.False(t, resp.Success)
			assert.Equal(t, tc.code, resp.Error.Code)
			assert.Equal(t, "nope", resp.Error.Message)
		})
	}
}

func TestSubmit_RateLimitDetails(t *testing.T) {
	svc := &mockContactSvc{}
	svc.On("Submit", mock.Anything, mock.Anything, mock.Anything).Return(nil, &domain.Failure{
		Code: domain.CodeRateLimitExceeded, Message: "slow", Details: map[string]any{"retryAfterSeconds": 3600},
	})
	rr := httptest.NewRecorder()
	NewContactHandler(svc).Submit(rr, postContact(`{}`))
	assert.JSONEq(t, `{"success":false,"error":{"code":"RATE_LIMIT_EXCEEDED","message":"slow","details":{"retryAfterSeconds":3600}}}`, rr.Body.String())
}

func TestSubmit_UnexpectedErrorIsOpaque(t *testing.T) {
	svc := &mockContactSvc{}
	svc.On("Submit", mock.Anything, mock.Anything, mock.Anything).Return(nil, errors.New("dial tcp 10.1.2.3:443"))

	rr := httptest.NewRecorder()
	NewContactHandler(svc).Submit(rr, postContact(`{}`))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.NotContains(t, rr.Body.String(), "10.1.2.3")
	assert.Contains(t, rr.Body.String(), "INTERNAL_ERROR")
}

func TestSubmit_BodyTooLarge(t *testing.T) {
	svc := &mockContactSvc{}
	rr := httptest.NewRecorder()
	NewContactHandler(svc).Submit(rr, postContact(`{"message":"`+strings.Repeat("x", maxBodyBytes)+`"}`))

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "VALIDATION_ERROR")
	svc.AssertNotCalled(t, "Submit", mock.Anything, mock.Anything, mock.Anything)
}
