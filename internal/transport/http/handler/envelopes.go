package handler

import (
	"encoding/json"
	"net/http"

	"github.com/contact-api/internal/domain"
)

// MessageEnvelope is the response wrapper for non-contact endpoints.
type MessageEnvelope struct {
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, MessageEnvelope{Error: msg})
}

func writeFailure(w http.ResponseWriter, f *domain.Failure) {
	writeJSON(w, f.Code.HTTPStatus(), f.Body())
}
