package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/contact-api/internal/application/contact"
	"github.com/contact-api/internal/domain"
	"github.com/contact-api/internal/transport/http/middleware"
)

// maxBodyBytes comfortably fits a 1000-character message plus metadata.
const maxBodyBytes = 64 << 10

// ContactHandler serves POST /v1/contact.
type ContactHandler struct {
	svc contact.Service
}

func NewContactHandler(svc contact.Service) *ContactHandler { return &ContactHandler{svc: svc} }

func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeFailure(w, domain.NewFailure(domain.CodeValidation, "Request body too large"))
			return
		}
		writeFailure(w, domain.NewFailure(domain.CodeValidation, "Invalid request body"))
		return
	}

	receipt, err := h.svc.Submit(r.Context(), body, contact.Client{
		SourceIP:  middleware.ClientIP(r),
		UserAgent: r.UserAgent(),
	})
	status, resp := contact.Respond(receipt, err)
	writeJSON(w, status, resp)
}
