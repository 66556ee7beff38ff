// Package lambda adapts the contact service to API Gateway HTTP API events.
package lambda

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/aws/aws-lambda-go/events"
	"github.com/contact-api/internal/application/contact"
	"github.com/contact-api/internal/domain"
)

var jsonHeaders = map[string]string{"Content-Type": "application/json"}

// Handler serves POST /v1/contact invocations.
type Handler struct {
	svc contact.Service
}

func NewHandler(svc contact.Service) *Handler { return &Handler{svc: svc} }

// Handle never returns an error: every outcome, including a panic, is
// encoded as a JSON response.
func (h *Handler) Handle(ctx context.Context, req events.APIGatewayV2HTTPRequest) (resp events.APIGatewayV2HTTPResponse, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			slog.ErrorContext(ctx, "panic handling invocation", "panic", rec, "stack", string(debug.Stack()))
			f := domain.NewFailure(domain.CodeInternal, "An unexpected error occurred")
			resp, err = encode(f.Code.HTTPStatus(), f.Body()), nil
		}
	}()

	body := []byte(req.Body)
	if req.IsBase64Encoded {
		decoded, decErr := base64.StdEncoding.DecodeString(req.Body)
		if decErr != nil {
			f := domain.NewFailure(domain.CodeValidation, "Invalid request body")
			return encode(f.Code.HTTPStatus(), f.Body()), nil
		}
		body = decoded
	}

	userAgent := req.RequestContext.HTTP.UserAgent
	if userAgent == "" {
		userAgent = header(req.Headers, "user-agent")
	}

	receipt, subErr := h.svc.Submit(ctx, body, contact.Client{
		SourceIP:  req.RequestContext.HTTP.SourceIP,
		UserAgent: userAgent,
	})
	status, out := contact.Respond(receipt, subErr)
	return encode(status, out), nil
}

func encode(status int, v any) events.APIGatewayV2HTTPResponse {
	b, err := json.Marshal(v)
	if err != nil {
		status = http.StatusInternalServerError
		b = []byte(`{"success":false,"error":{"code":"INTERNAL_ERROR","message":"An unexpected error occurred"}}`)
	}
	return events.APIGatewayV2HTTPResponse{
		StatusCode: status,
		Headers:    jsonHeaders,
		Body:       string(b),
	}
}

// header looks a name up case-insensitively; HTTP API lowercases header
// names but test events and proxies may not.
func header(h map[string]string, name string) string {
	if v, ok := h[name]; ok {
		return v
	}
	for k, v := range h {
		if http.CanonicalHeaderKey(k) == http.CanonicalHeaderKey(name) {
			return v
		}
	}
	return ""
}
