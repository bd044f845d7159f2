package httptransport

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/suite"

	id "medhope/pkg/domain"
	dErrors "medhope/pkg/domain-errors"
	"medhope/pkg/platform/httputil"
	"medhope/pkg/requestcontext"
	"medhope/pkg/testutil"
)

type stubAuthenticator struct {
	userID id.UserID
}

func (a stubAuthenticator) AuthenticateToken(_ context.Context, token string) (id.UserID, string, error) {
	if token != "valid" {
		return id.UserID{}, "", dErrors.New(dErrors.CodeUnauthorized, "bad token")
	}
	return a.userID, "admin", nil
}

type whoAmI struct{}

func (whoAmI) Register(r chi.Router) {
	r.Get("/whoami", func(w http.ResponseWriter, r *http.Request) {
		httputil.WriteJSON(w, http.StatusOK, map[string]string{
			"user_id": requestcontext.UserID(r.Context()).String(),
			"role":    requestcontext.Role(r.Context()),
		})
	})
}

type RouterSuite struct {
	suite.Suite
	userID id.UserID
	dbErr  error
	router http.Handler
}

func TestRouterSuite(t *testing.T) {
	suite.Run(t, new(RouterSuite))
}

func (s *RouterSuite) SetupTest() {
	s.userID = id.NewUserID()
	s.dbErr = nil
	s.router = NewRouter(Options{
		Logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
		Authenticator: stubAuthenticator{userID: s.userID},
		HealthChecks: map[string]HealthCheck{
			"database": func(context.Context) error { return s.dbErr },
		},
		Handlers: []Registrar{whoAmI{}},
	})
}

func (s *RouterSuite) TestHealth() {
	s.Run("reports ok when dependencies respond", func() {
		rr := testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodGet, "/health", nil))
		s.Equal(http.StatusOK, rr.Code)
		body := testutil.UnmarshalResponse[healthResponse](s.T(), rr)
		s.Equal("ok", body.Status)
		s.Equal("ok", body.Checks["database"])
	})

	s.Run("reports degraded without leaking the error", func() {
		s.dbErr = errors.New("dial tcp 10.0.0.5:5432: connection refused")
		rr := testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodGet, "/health", nil))
		s.Equal(http.StatusServiceUnavailable, rr.Code)
		s.NotContains(rr.Body.String(), "10.0.0.5")
		body := testutil.UnmarshalResponse[healthResponse](s.T(), rr)
		s.Equal("degraded", body.Status)
		s.Equal("unavailable", body.Checks["database"])
	})
}

func (s *RouterSuite) TestMetricsEndpointIsPublic() {
	rr := testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodGet, "/metrics", nil))
	s.Equal(http.StatusOK, rr.Code)
}

func (s *RouterSuite) TestFeatureRoutesRequireAuth() {
	s.Run("missing token is unauthorized", func() {
		rr := testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodGet, "/whoami", nil))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusUnauthorized, string(dErrors.CodeUnauthorized))
	})

	s.Run("invalid token is unauthorized", func() {
		req := testutil.NewJSONRequest(s.T(), http.MethodGet, "/whoami", nil)
		req.Header.Set("Authorization", "Bearer nope")
		rr := testutil.DoRequest(s.router, req)
		testutil.AssertStatusAndError(s.T(), rr, http.StatusUnauthorized, string(dErrors.CodeUnauthorized))
	})

	s.Run("valid token reaches the handler with the caller in context", func() {
		req := testutil.NewJSONRequest(s.T(), http.MethodGet, "/whoami", nil)
		req.Header.Set("Authorization", "Bearer valid")
		rr := testutil.DoRequest(s.router, req)
		s.Require().Equal(http.StatusOK, rr.Code)
		body := testutil.UnmarshalResponse[map[string]string](s.T(), rr)
		s.Equal(s.userID.String(), (*body)["user_id"])
		s.Equal("admin", (*body)["role"])
		s.NotEmpty(rr.Header().Get("X-Request-ID"))
	})
}
