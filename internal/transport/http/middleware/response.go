package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/contact-api/internal/domain"
)

// writeJSONError writes the API error envelope with the status for code.
func writeJSONError(w http.ResponseWriter, code domain.ErrorCode, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code.HTTPStatus())
	_ = json.NewEncoder(w).Encode(domain.NewFailure(code, msg).Body())
}
