package testutil

import (
	"net/http"

	id "medhope/pkg/domain"
	"medhope/pkg/requestcontext"
)

// WithCaller adds the authenticated caller to the request context, the same
// way RequireAuth does after verifying a token.
func WithCaller(req *http.Request, userID id.UserID, role string) *http.Request {
	ctx := requestcontext.WithUserID(req.Context(), userID)
	ctx = requestcontext.WithRole(ctx, role)
	return req.WithContext(ctx)
}
