package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/contact-api/internal/domain"
)

// Recover converts a panic into a 500 INTERNAL_ERROR envelope. The panic
// value and stack go to the log only.
func Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				slog.ErrorContext(r.Context(), "panic serving request",
					"path", r.URL.Path, "panic", rec, "stack", string(debug.Stack()))
				writeJSONError(w, domain.CodeInternal, "An unexpected error occurred")
			}
		}()
		next.ServeHTTP(w, r)
	})
}
