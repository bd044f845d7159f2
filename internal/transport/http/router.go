package httptransport

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"medhope/internal/platform/metrics"
	"medhope/internal/platform/middleware"
	"medhope/pkg/platform/httputil"
	"medhope/pkg/platform/middleware/requesttime"
)

// Registrar mounts feature endpoints on a router.
type Registrar interface {
	Register(r chi.Router)
}

// HealthCheck reports whether a dependency is reachable.
type HealthCheck func(ctx context.Context) error

// Options configures NewRouter. Handlers are mounted behind RequireAuth.
type Options struct {
	Logger         *slog.Logger
	Metrics        *metrics.Metrics
	Authenticator  middleware.Authenticator
	RequestTimeout time.Duration
	HealthChecks   map[string]HealthCheck
	Handlers       []Registrar
}

// NewRouter wires the middleware chain, the public probes and the
// authenticated feature routes.
func NewRouter(opts Options) http.Handler {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logger(logger))
	r.Use(middleware.LatencyMiddleware(opts.Metrics))
	r.Use(middleware.Timeout(opts.RequestTimeout))
	r.Use(requesttime.Middleware)

	r.Get("/health", healthHandler(opts.HealthChecks, logger))
	r.Handle("/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(opts.Authenticator, logger))
		for _, h := range opts.Handlers {
			h.Register(r)
		}
	})
	return r
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

func healthHandler(checks map[string]HealthCheck, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		resp := healthResponse{Status: "ok", Checks: make(map[string]string, len(checks))}
		status := http.StatusOK
		for name, check := range checks {
			if err := check(ctx); err != nil {
				logger.WarnContext(ctx, "health check failed",
					"dependency", name,
					"error", err,
				)
				resp.Checks[name] = "unavailable"
				resp.Status = "degraded"
				status = http.StatusServiceUnavailable
				continue
			}
			resp.Checks[name] = "ok"
		}
		httputil.WriteJSON(w, status, resp)
	}
}
