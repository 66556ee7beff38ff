package contact

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/contact-api/internal/domain"
)

// DefaultScoreThreshold is the minimum bot-verification score accepted.
const DefaultScoreThreshold = 0.5

// BotVerifier asks the bot-verification service about a client token.
// Implementations own secret retrieval and network timeouts.
type BotVerifier interface {
	Verify(ctx context.Context, token, remoteIP string) (*domain.BotAssessment, error)
}

// verifyBotScore fails closed: any error from the verifier blocks the submission.
func verifyBotScore(ctx context.Context, v BotVerifier, threshold float64, token, remoteIP string, log *slog.Logger) (*float64, error) {
	res, err := v.Verify(ctx, token, remoteIP)
	if err != nil {
		log.ErrorContext(ctx, "bot verification error", "err", err)
		return nil, domain.NewFailure(domain.CodeRecaptchaFailed, "Failed to verify reCAPTCHA")
	}
	if !res.Success {
		log.WarnContext(ctx, "bot verification rejected token", "error_codes", res.ErrorCodes)
		return nil, domain.NewFailure(domain.CodeRecaptchaFailed, "reCAPTCHA verification failed")
	}
	if res.Score != nil && *res.Score < threshold {
		return res.Score, domain.NewFailure(domain.CodeRecaptchaLowScore,
			fmt.Sprintf("reCAPTCHA score too low: %s", strconv.FormatFloat(*res.Score, 'f', -1, 64)))
	}
	return res.Score, nil
}
