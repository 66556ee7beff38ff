package recaptcha

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/contact-api/internal/domain"
)

// SecretSource supplies the siteverify secret.
type SecretSource interface {
	Secret(ctx context.Context) (string, error)
}

// Client verifies tokens against the reCAPTCHA siteverify endpoint.
type Client struct {
	secrets    SecretSource
	verifyURL  string
	httpClient *http.Client
}

// NewClient returns a Client whose round trip is bounded by timeout.
func NewClient(secrets SecretSource, verifyURL string, timeout time.Duration) *Client {
	return &Client{
		secrets:    secrets,
		verifyURL:  verifyURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Verify posts the token and returns the decoded assessment. Transport,
// status and decoding problems are returned as errors.
func (c *Client) Verify(ctx context.Context, token, remoteIP string) (*domain.BotAssessment, error) {
	secret, err := c.secrets.Secret(ctx)
	if err != nil {
		return nil, fmt.Errorf("load recaptcha secret: %w", err)
	}

	form := url.Values{}
	form.Set("secret", secret)
	form.Set("response", token)
	if remoteIP != "" {
		form.Set("remoteip", remoteIP)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.verifyURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("build siteverify request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("siteverify: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("siteverify: unexpected status %d: %w", resp.StatusCode, domain.ErrUnavailable)
	}
	var out domain.BotAssessment
	if err := json.NewDecoder(io.LimitReader(resp.Body, 64<<10)).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode siteverify response: %w", err)
	}
	return &out, nil
}
