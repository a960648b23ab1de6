package middleware

import (
	"log/slog"
	"net/http"

	"academy/pkg/requestcontext"
	"academy/pkg/secrets"
)

// AdminToken guards bootstrap endpoints with a shared platform token.
// The configured value is a bcrypt hash; the header carries the cleartext.
// An empty hash disables the endpoints entirely rather than leaving them open.
func AdminToken(tokenHash string, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if tokenHash == "" {
				writeJSONError(w, http.StatusForbidden, "forbidden", "admin endpoints disabled")
				return
			}

			token := r.Header.Get("X-Admin-Token")
			if err := secrets.Verify(token, tokenHash); err != nil {
				logger.WarnContext(r.Context(), "unauthorized admin access attempt",
					"request_id", requestcontext.RequestID(r.Context()),
				)
				writeJSONError(w, http.StatusUnauthorized, "unauthorized", "invalid admin token")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
