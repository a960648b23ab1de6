// Package httptransport assembles the public HTTP surface. Handlers stay in
// their modules; this package only owns middleware ordering and route
// grouping by role.
package httptransport

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	cataloghandler "academy/internal/catalog/handler"
	enginehandler "academy/internal/engine/handler"
	"academy/internal/idempotency"
	"academy/internal/platform/middleware"
	registryhandler "academy/internal/registry/handler"
	"academy/pkg/platform/httputil"
	"academy/pkg/requestcontext"
)

// Deps carries everything the router mounts.
type Deps struct {
	Registry *registryhandler.Handler
	Catalog  *cataloghandler.Handler
	Engine   *enginehandler.Handler

	Verifier    *middleware.Verifier
	Idempotency idempotency.Store

	// AdminTokenHash, when set, additionally gates admin routes behind the
	// X-Admin-Token header.
	AdminTokenHash string

	// Health probes; nil probes are skipped.
	Checks map[string]func(context.Context) error

	Logger *slog.Logger
}

// NewRouter wires all public endpoints with the middleware stack.
func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestID)
	r.Use(middleware.ClientMetadata)
	r.Use(middleware.Logger(deps.Logger))
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(middleware.ContentTypeJSON)

	r.Get("/healthz", healthHandler(deps.Checks))
	r.Handle("/metrics", promhttp.Handler())

	// Authenticated surface.
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(deps.Verifier, deps.Logger))
		if deps.Idempotency != nil {
			r.Use(middleware.Idempotency(deps.Idempotency, deps.Logger))
		}

		deps.Registry.Register(r)
		deps.Catalog.Register(r)
		deps.Engine.RegisterStudent(r)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(requestcontext.RoleAdmin))
			if deps.AdminTokenHash != "" {
				r.Use(middleware.AdminToken(deps.AdminTokenHash, deps.Logger))
			}

			deps.Registry.RegisterAdmin(r)
			deps.Catalog.RegisterAdmin(r)
			deps.Engine.RegisterAdmin(r)
		})
	})

	return r
}

// healthHandler reports readiness of the attached backends. With no probes
// configured it degrades to a liveness check.
func healthHandler(checks map[string]func(context.Context) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		status := http.StatusOK
		result := make(map[string]string, len(checks)+1)
		result["status"] = "ok"
		for name, check := range checks {
			if check == nil {
				continue
			}
			if err := check(ctx); err != nil {
				status = http.StatusServiceUnavailable
				result[name] = err.Error()
				result["status"] = "degraded"
			} else {
				result[name] = "ok"
			}
		}

		httputil.WriteJSON(w, status, result)
	}
}
