package contact

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/contact-api/internal/domain"
	"github.com/contact-api/internal/pkg/validate"
)

// requiredFields is checked first; every field must be non-empty.
type requiredFields struct {
	Name              string `validate:"required"`
	Email             string `validate:"required"`
	Service           string `validate:"required"`
	VerificationToken string `validate:"required"`
}

// ParseSubmission decodes a raw request body. An empty body is treated as an
// empty object so it fails on missing fields rather than on JSON syntax.
func ParseSubmission(body []byte) (*domain.SubmissionRequest, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		body = []byte("{}")
	}
	if !json.Valid(body) {
		return nil, domain.NewFailure(domain.CodeValidation, "Invalid JSON in request body")
	}
	if body[0] != '{' {
		return nil, domain.NewFailure(domain.CodeValidation, "Invalid request body")
	}
	var req domain.SubmissionRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return nil, domain.NewFailure(domain.CodeValidation, "Invalid request body")
	}
	return &req, nil
}

// ValidateSubmission applies the field rules in a fixed order and reports the
// first one violated.
func ValidateSubmission(req *domain.SubmissionRequest) error {
	if req == nil {
		return domain.NewFailure(domain.CodeValidation, "Invalid request body")
	}
	if err := validate.Struct(requiredFields{
		Name:              req.Name,
		Email:             req.Email,
		Service:           req.Service,
		VerificationToken: req.VerificationToken,
	}); err != nil {
		return domain.NewFailure(domain.CodeValidation, "Missing required fields: name, email, service, verificationToken")
	}
	if validate.Var(strings.TrimSpace(req.Name), "contactname") != nil {
		return domain.NewFailure(domain.CodeValidation,
			"Name must be 1-100 characters and contain only letters, spaces, hyphens, and apostrophes")
	}
	if validate.Var(strings.TrimSpace(req.Email), "simpleemail") != nil {
		return domain.NewFailure(domain.CodeInvalidEmail, "Invalid email address format")
	}
	if req.Message != "" && validate.Var(strings.TrimSpace(req.Message), "maxutf16=1000") != nil {
		return domain.NewFailure(domain.CodeMessageTooLong, "Message must be 1000 characters or less")
	}
	if validate.Var(req.VerificationToken, "minutf16=20") != nil {
		return domain.NewFailure(domain.CodeValidation, "Invalid verification token")
	}
	return nil
}
