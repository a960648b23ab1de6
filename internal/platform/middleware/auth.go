package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	id "academy/pkg/domain"
	"academy/pkg/requestcontext"
)

// Claims are the token claims the authority oracle vouches for. The service
// never verifies identities itself beyond this signature check; a valid
// token is a verified actor.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Verifier validates bearer tokens and extracts the verified actor identity.
type Verifier struct {
	signingKey []byte
}

// NewVerifier constructs a Verifier over an HMAC signing key.
func NewVerifier(signingKey string) *Verifier {
	return &Verifier{signingKey: []byte(signingKey)}
}

// Verify parses and validates a token string, returning the actor identity.
func (v *Verifier) Verify(tokenString string) (id.AccountID, requestcontext.Role, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return v.signingKey, nil
	})
	if err != nil || !token.Valid {
		return id.AccountID{}, "", fmt.Errorf("invalid token: %w", err)
	}

	actor, err := id.ParseAccountID(claims.Subject)
	if err != nil {
		return id.AccountID{}, "", fmt.Errorf("invalid subject claim: %w", err)
	}

	switch requestcontext.Role(claims.Role) {
	case requestcontext.RoleStudent, requestcontext.RoleAdmin:
		return actor, requestcontext.Role(claims.Role), nil
	default:
		return id.AccountID{}, "", fmt.Errorf("unknown role claim %q", claims.Role)
	}
}

// Auth authenticates the request via a Bearer token and injects the verified
// actor into the request context. Requests without a valid token are rejected.
func Auth(verifier *Verifier, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				writeJSONError(w, http.StatusUnauthorized, "unauthorized", "missing bearer token")
				return
			}

			actor, role, err := verifier.Verify(strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				logger.WarnContext(r.Context(), "unauthorized access - invalid token",
					"error", err,
					"request_id", requestcontext.RequestID(r.Context()),
				)
				writeJSONError(w, http.StatusUnauthorized, "unauthorized", "invalid bearer token")
				return
			}

			ctx := requestcontext.WithActor(r.Context(), actor, role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole rejects authenticated requests whose actor holds a different role.
func RequireRole(role requestcontext.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if requestcontext.ActorRole(r.Context()) != role {
				writeJSONError(w, http.StatusForbidden, "forbidden", "insufficient role")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// writeJSONError writes a JSON error response with the given status code and error details.
func writeJSONError(w http.ResponseWriter, status int, errCode, errDesc string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(fmt.Appendf(nil, `{"error":"%s","error_description":"%s"}`, errCode, errDesc))
}
