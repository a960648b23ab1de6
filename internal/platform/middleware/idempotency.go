package middleware

import (
	"bytes"
	"log/slog"
	"net/http"

	"academy/internal/idempotency"
	"academy/pkg/requestcontext"
)

// Idempotency replays cached responses for requests bearing an
// Idempotency-Key header. Only successful (2xx) responses are cached; a
// failed attempt may be retried with the same key.
func Idempotency(store idempotency.Store, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			headerKey := r.Header.Get("Idempotency-Key")
			if headerKey == "" || r.Method != http.MethodPost {
				next.ServeHTTP(w, r)
				return
			}

			ctx := r.Context()
			// The cache entry is scoped to the actor and the route; a reused
			// header value must never replay another actor's or another
			// endpoint's response.
			key := requestcontext.ActorID(ctx).String() + ":" + r.Method + ":" + r.URL.Path + ":" + headerKey
			cached, err := store.Get(ctx, key)
			if err != nil {
				logger.ErrorContext(ctx, "idempotency lookup failed",
					"error", err,
					"request_id", requestcontext.RequestID(ctx),
				)
				// Degrade to processing the request rather than failing it.
			} else if cached != nil {
				w.Header().Set("Content-Type", "application/json")
				w.Header().Set("Idempotency-Replayed", "true")
				w.WriteHeader(cached.StatusCode)
				_, _ = w.Write(cached.Body)
				return
			}

			rec := &responseRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)

			if rec.status >= 200 && rec.status < 300 {
				err := store.Set(ctx, key, &idempotency.CachedResponse{
					StatusCode: rec.status,
					Body:       bytes.Clone(rec.body.Bytes()),
				})
				if err != nil {
					logger.ErrorContext(ctx, "idempotency store failed",
						"error", err,
						"request_id", requestcontext.RequestID(ctx),
					)
				}
			}
		})
	}
}

// responseRecorder tees the response so it can be cached after writing.
type responseRecorder struct {
	http.ResponseWriter
	status int
	body   bytes.Buffer
}

func (r *responseRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (r *responseRecorder) Write(b []byte) (int, error) {
	r.body.Write(b)
	return r.ResponseWriter.Write(b)
}
