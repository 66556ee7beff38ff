package domain

import "encoding/json"

// SubmissionMetadata is optional client context sent along with a submission.
type SubmissionMetadata struct {
	UserAgent string `json:"userAgent,omitempty"`
	Referrer  string `json:"referrer,omitempty"`
	Timestamp string `json:"timestamp,omitempty"`
}

// SubmissionRequest is the untrusted contact form payload.
type SubmissionRequest struct {
	Name              string              `json:"name"`
	Email             string              `json:"email"`
	Service           string              `json:"service"`
	Message           string              `json:"message,omitempty"`
	VerificationToken string              `json:"verificationToken"`
	Metadata          *SubmissionMetadata `json:"metadata,omitempty"`
}

// UnmarshalJSON accepts the legacy "recaptchaToken" field when
// "verificationToken" is absent.
func (r *SubmissionRequest) UnmarshalJSON(b []byte) error {
	type plain SubmissionRequest
	var aux struct {
		plain
		RecaptchaToken string `json:"recaptchaToken"`
	}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	*r = SubmissionRequest(aux.plain)
	if r.VerificationToken == "" {
		r.VerificationToken = aux.RecaptchaToken
	}
	return nil
}

// UserAgent returns the submitter's user agent from metadata, if any.
func (r *SubmissionRequest) UserAgent() string {
	if r.Metadata == nil {
		return ""
	}
	return r.Metadata.UserAgent
}

// Referrer returns the page the form was submitted from, if any.
func (r *SubmissionRequest) Referrer() string {
	if r.Metadata == nil {
		return ""
	}
	return r.Metadata.Referrer
}

// SubmissionReceipt is returned for an accepted submission.
type SubmissionReceipt struct {
	RequestID         string
	EstimatedResponse string
}

// SuccessResponse is the JSON body of a 200 response.
type SuccessResponse struct {
	Success           bool   `json:"success"`
	Message           string `json:"message"`
	RequestID         string `json:"requestId"`
	EstimatedResponse string `json:"estimatedResponse"`
}

// ErrorBody describes a rejected submission.
type ErrorBody struct {
	Code    ErrorCode      `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

// ErrorResponse is the JSON body of every non-200 response.
type ErrorResponse struct {
	Success bool      `json:"success"`
	Error   ErrorBody `json:"error"`
}

// BotAssessment is the decoded answer of the bot-verification service.
type BotAssessment struct {
	Success    bool     `json:"success"`
	Score      *float64 `json:"score,omitempty"`
	Action     string   `json:"action,omitempty"`
	Hostname   string   `json:"hostname,omitempty"`
	ErrorCodes []string `json:"error-codes,omitempty"`
}

// EmailMessage is a single outbound HTML email.
type EmailMessage struct {
	From     string
	To       []string
	ReplyTo  []string
	Subject  string
	HTMLBody string
}
