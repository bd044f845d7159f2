package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"slices"
	"strings"

	id "medhope/pkg/domain"
	dErrors "medhope/pkg/domain-errors"
	"medhope/pkg/platform/httputil"
	"medhope/pkg/requestcontext"
)

// Authenticator resolves a bearer token into the caller's user ID and role.
type Authenticator interface {
	AuthenticateToken(ctx context.Context, token string) (id.UserID, string, error)
}

// RequireAuth rejects requests without a valid bearer token and stores the
// caller in the request context.
func RequireAuth(authenticator Authenticator, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			requestID := GetRequestID(ctx)

			token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !ok || token == "" {
				logger.WarnContext(ctx, "unauthorized access - missing token",
					"request_id", requestID,
				)
				httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "Missing or invalid Authorization header"))
				return
			}

			userID, role, err := authenticator.AuthenticateToken(ctx, token)
			if err != nil {
				logger.WarnContext(ctx, "unauthorized access - invalid token",
					"error", err,
					"request_id", requestID,
				)
				if dErrors.HasCode(err, dErrors.CodeForbidden) {
					httputil.WriteError(w, err)
					return
				}
				httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "Invalid or expired token"))
				return
			}

			ctx = requestcontext.WithUserID(ctx, userID)
			ctx = requestcontext.WithRole(ctx, role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole allows only callers whose role is one of roles.
func RequireRole(logger *slog.Logger, roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			if !slices.Contains(roles, requestcontext.Role(ctx)) {
				logger.WarnContext(ctx, "forbidden - role not permitted",
					"role", requestcontext.Role(ctx),
					"request_id", GetRequestID(ctx),
				)
				httputil.WriteError(w, dErrors.New(dErrors.CodeForbidden, "role not permitted for this operation"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
