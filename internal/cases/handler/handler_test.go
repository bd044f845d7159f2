package handler

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks Service,AuditReader

import (
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"medhope/internal/cases/handler/mocks"
	"medhope/internal/cases/models"
	identity "medhope/internal/identity/models"
	"medhope/internal/priority"
	id "medhope/pkg/domain"
	dErrors "medhope/pkg/domain-errors"
	"medhope/pkg/platform/audit"
	"medhope/pkg/testutil"
)

type CaseHandlerSuite struct {
	suite.Suite
	ctrl    *gomock.Controller
	service *mocks.MockService
	audit   *mocks.MockAuditReader
	router  chi.Router

	admin     id.UserID
	volunteer id.UserID
	submitter id.UserID
}

func TestCaseHandlerSuite(t *testing.T) {
	suite.Run(t, new(CaseHandlerSuite))
}

func (s *CaseHandlerSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.service = mocks.NewMockService(s.ctrl)
	s.audit = mocks.NewMockAuditReader(s.ctrl)
	h := New(s.service, s.audit, slog.New(slog.NewTextHandler(io.Discard, nil)))
	s.router = chi.NewRouter()
	h.Register(s.router)

	s.admin = id.NewUserID()
	s.volunteer = id.NewUserID()
	s.submitter = id.NewUserID()
}

func (s *CaseHandlerSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *CaseHandlerSuite) sampleCase() *models.Case {
	now := time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)
	return &models.Case{
		ID:             id.NewCaseID(),
		CaseNumber:     "CASE-2025-00001",
		SubmitterID:    s.submitter,
		Applicant:      models.Applicant{FullName: "Ayesha Khan"},
		Disease:        models.Disease{Name: "Thalassemia"},
		District:       "South",
		Area:           "Lyari",
		Priority:       priority.High,
		Status:         models.StatusPending,
		FundingTarget:  decimal.NewFromInt(50000),
		TotalDonations: decimal.Zero,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

func (s *CaseHandlerSuite) do(method, path string, body any, caller id.UserID, role identity.Role) *http.Request {
	req := testutil.NewJSONRequest(s.T(), method, path, body)
	if !caller.IsNil() {
		req = testutil.WithCaller(req, caller, string(role))
	}
	return req
}

func (s *CaseHandlerSuite) TestSubmit() {
	s.Run("creates the case", func() {
		c := s.sampleCase()
		s.service.EXPECT().SubmitCase(gomock.Any(), models.Actor{ID: s.submitter, Role: identity.RoleSubmitter}, gomock.Any()).
			DoAndReturn(func(_ any, _ models.Actor, req models.SubmitCaseRequest) (*models.Case, error) {
				s.Equal("Lyari", req.Area)
				s.True(req.FundingTarget.Equal(decimal.NewFromInt(50000)))
				return c, nil
			})

		body := map[string]any{
			"applicant":      map[string]string{"full_name": "Ayesha Khan"},
			"disease":        map[string]string{"name": "Thalassemia"},
			"district":       "South",
			"area":           "Lyari",
			"funding_target": "50000",
		}
		rr := testutil.DoRequest(s.router, s.do(http.MethodPost, "/cases", body, s.submitter, identity.RoleSubmitter))
		s.Require().Equal(http.StatusCreated, rr.Code)

		resp := testutil.UnmarshalResponse[CaseResponse](s.T(), rr)
		s.Equal("CASE-2025-00001", resp.CaseNumber)
		s.Equal("High", resp.Priority)
		s.Equal("unassigned", resp.State)
		s.Nil(resp.VolunteerID)
		s.Empty(resp.VolunteerRejectionReasons)
	})

	s.Run("rejects unknown fields", func() {
		rr := testutil.DoRequest(s.router, s.do(http.MethodPost, "/cases", map[string]any{"bogus": 1}, s.submitter, identity.RoleSubmitter))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, string(dErrors.CodeBadRequest))
	})

	s.Run("requires a caller", func() {
		rr := testutil.DoRequest(s.router, s.do(http.MethodPost, "/cases", map[string]any{}, id.UserID{}, ""))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusUnauthorized, string(dErrors.CodeUnauthorized))
	})

	s.Run("maps service errors", func() {
		s.service.EXPECT().SubmitCase(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, dErrors.New(dErrors.CodeForbidden, "only submitters can submit cases"))
		rr := testutil.DoRequest(s.router, s.do(http.MethodPost, "/cases", map[string]any{"district": "South"}, s.volunteer, identity.RoleVolunteer))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusForbidden, string(dErrors.CodeForbidden))
	})
}

func (s *CaseHandlerSuite) TestTransitions() {
	c := s.sampleCase()

	s.Run("assign", func() {
		s.service.EXPECT().AssignVolunteer(gomock.Any(), gomock.Any(), c.ID, s.volunteer).Return(c, nil)
		rr := testutil.DoRequest(s.router, s.do(http.MethodPost, "/cases/"+c.ID.String()+"/assignment",
			AssignRequest{VolunteerID: s.volunteer.String()}, s.admin, identity.RoleAdmin))
		s.Equal(http.StatusOK, rr.Code)
	})

	s.Run("assign requires a volunteer id", func() {
		rr := testutil.DoRequest(s.router, s.do(http.MethodPost, "/cases/"+c.ID.String()+"/assignment",
			AssignRequest{}, s.admin, identity.RoleAdmin))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, string(dErrors.CodeValidation))
	})

	s.Run("volunteer reject forwards reasons", func() {
		s.service.EXPECT().VolunteerReject(gomock.Any(), gomock.Any(), c.ID, []string{"financial_info"}).Return(c, nil)
		rr := testutil.DoRequest(s.router, s.do(http.MethodPost, "/cases/"+c.ID.String()+"/volunteer/reject",
			RejectRequest{Reasons: []string{"financial_info"}}, s.volunteer, identity.RoleVolunteer))
		s.Equal(http.StatusOK, rr.Code)
	})

	s.Run("volunteer approve", func() {
		s.service.EXPECT().VolunteerApprove(gomock.Any(), models.Actor{ID: s.volunteer, Role: identity.RoleVolunteer}, c.ID).Return(c, nil)
		rr := testutil.DoRequest(s.router, s.do(http.MethodPost, "/cases/"+c.ID.String()+"/volunteer/approve", nil, s.volunteer, identity.RoleVolunteer))
		s.Equal(http.StatusOK, rr.Code)
	})

	s.Run("admin approve conflict", func() {
		s.service.EXPECT().AdminApprove(gomock.Any(), gomock.Any(), c.ID).
			Return(nil, dErrors.New(dErrors.CodeConflict, "conflict"))
		rr := testutil.DoRequest(s.router, s.do(http.MethodPost, "/cases/"+c.ID.String()+"/approve", nil, s.admin, identity.RoleAdmin))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusConflict, string(dErrors.CodeConflict))
	})

	s.Run("admin reject unknown case", func() {
		s.service.EXPECT().AdminReject(gomock.Any(), gomock.Any(), c.ID).
			Return(nil, dErrors.New(dErrors.CodeNotFound, "case not found"))
		rr := testutil.DoRequest(s.router, s.do(http.MethodPost, "/cases/"+c.ID.String()+"/reject", nil, s.admin, identity.RoleAdmin))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusNotFound, string(dErrors.CodeNotFound))
	})

	s.Run("priority override", func() {
		s.service.EXPECT().OverridePriority(gomock.Any(), gomock.Any(), c.ID, "Low").Return(c, nil)
		rr := testutil.DoRequest(s.router, s.do(http.MethodPut, "/cases/"+c.ID.String()+"/priority",
			PriorityRequest{Priority: "Low"}, s.admin, identity.RoleAdmin))
		s.Equal(http.StatusOK, rr.Code)
	})

	s.Run("malformed case id", func() {
		rr := testutil.DoRequest(s.router, s.do(http.MethodPost, "/cases/not-a-uuid/approve", nil, s.admin, identity.RoleAdmin))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, string(dErrors.CodeBadRequest))
	})
}

func (s *CaseHandlerSuite) TestQueries() {
	c := s.sampleCase()

	s.Run("list by status", func() {
		s.service.EXPECT().ListCasesByStatus(gomock.Any(), models.StatusAccepted).Return([]*models.Case{c}, nil)
		rr := testutil.DoRequest(s.router, s.do(http.MethodGet, "/cases?status=accepted", nil, s.admin, identity.RoleAdmin))
		s.Require().Equal(http.StatusOK, rr.Code)
		resp := testutil.UnmarshalResponse[ListResponse](s.T(), rr)
		s.Equal(1, resp.Count)
	})

	s.Run("non-admins only list cases they may view", func() {
		accepted := s.sampleCase()
		accepted.Status = models.StatusAccepted
		accepted.SubmitterID = id.NewUserID()
		own := s.sampleCase()
		assigned := s.sampleCase()
		assigned.SubmitterID = id.NewUserID()
		assigned.VolunteerID = &s.volunteer
		someoneElses := s.sampleCase()
		someoneElses.SubmitterID = id.NewUserID()
		rejected := s.sampleCase()
		rejected.SubmitterID = id.NewUserID()
		rejected.Status = models.StatusRejected
		all := func() []*models.Case {
			return []*models.Case{accepted, own, assigned, someoneElses, rejected}
		}

		s.service.EXPECT().ListCasesByStatus(gomock.Any(), models.Status("")).Return(all(), nil)
		rr := testutil.DoRequest(s.router, s.do(http.MethodGet, "/cases", nil, s.submitter, identity.RoleSubmitter))
		s.Require().Equal(http.StatusOK, rr.Code)
		resp := testutil.UnmarshalResponse[ListResponse](s.T(), rr)
		ids := make([]string, 0, resp.Count)
		for _, c := range resp.Cases {
			ids = append(ids, c.ID)
		}
		s.ElementsMatch([]string{accepted.ID.String(), own.ID.String()}, ids)

		s.service.EXPECT().ListCasesByStatus(gomock.Any(), models.Status("")).Return(all(), nil)
		rr = testutil.DoRequest(s.router, s.do(http.MethodGet, "/cases", nil, s.volunteer, identity.RoleVolunteer))
		s.Require().Equal(http.StatusOK, rr.Code)
		resp = testutil.UnmarshalResponse[ListResponse](s.T(), rr)
		s.Equal(2, resp.Count)

		s.service.EXPECT().ListCasesByStatus(gomock.Any(), models.Status("")).Return(all(), nil)
		rr = testutil.DoRequest(s.router, s.do(http.MethodGet, "/cases", nil, s.admin, identity.RoleAdmin))
		s.Require().Equal(http.StatusOK, rr.Code)
		resp = testutil.UnmarshalResponse[ListResponse](s.T(), rr)
		s.Equal(5, resp.Count)
	})

	s.Run("hidden case reads as not found", func() {
		pending := s.sampleCase()
		pending.SubmitterID = id.NewUserID()
		s.service.EXPECT().GetCase(gomock.Any(), pending.ID).Return(pending, nil)
		rr := testutil.DoRequest(s.router, s.do(http.MethodGet, "/cases/"+pending.ID.String(), nil, s.submitter, identity.RoleSubmitter))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusNotFound, string(dErrors.CodeNotFound))

		s.service.EXPECT().GetCaseByNumber(gomock.Any(), pending.CaseNumber).Return(pending, nil)
		rr = testutil.DoRequest(s.router, s.do(http.MethodGet, "/cases/by-number/"+pending.CaseNumber, nil, s.volunteer, identity.RoleVolunteer))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusNotFound, string(dErrors.CodeNotFound))

		s.service.EXPECT().GetCase(gomock.Any(), c.ID).Return(c, nil)
		rr = testutil.DoRequest(s.router, s.do(http.MethodGet, "/cases/"+c.ID.String(), nil, s.submitter, identity.RoleSubmitter))
		s.Equal(http.StatusOK, rr.Code)
	})

	s.Run("audit trail is admin only", func() {
		rr := testutil.DoRequest(s.router, s.do(http.MethodGet, "/cases/"+c.ID.String()+"/audit", nil, s.submitter, identity.RoleSubmitter))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusForbidden, string(dErrors.CodeForbidden))
	})

	s.Run("stats are admin only", func() {
		rr := testutil.DoRequest(s.router, s.do(http.MethodGet, "/cases/stats", nil, s.volunteer, identity.RoleVolunteer))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusForbidden, string(dErrors.CodeForbidden))

		s.service.EXPECT().StatusCounts(gomock.Any()).Return(&models.StatusCounts{Pending: 2, Accepted: 1}, nil)
		rr = testutil.DoRequest(s.router, s.do(http.MethodGet, "/cases/stats", nil, s.admin, identity.RoleAdmin))
		s.Require().Equal(http.StatusOK, rr.Code)
		resp := testutil.UnmarshalResponse[StatsResponse](s.T(), rr)
		s.Equal(3, resp.Total)
	})

	s.Run("by number", func() {
		s.service.EXPECT().GetCaseByNumber(gomock.Any(), "CASE-2025-00001").Return(c, nil)
		rr := testutil.DoRequest(s.router, s.do(http.MethodGet, "/cases/by-number/CASE-2025-00001", nil, s.admin, identity.RoleAdmin))
		s.Equal(http.StatusOK, rr.Code)
	})

	s.Run("volunteer cases", func() {
		s.service.EXPECT().ListCasesForVolunteer(gomock.Any(), gomock.Any(), s.volunteer).Return([]*models.Case{}, nil)
		rr := testutil.DoRequest(s.router, s.do(http.MethodGet, "/volunteers/"+s.volunteer.String()+"/cases", nil, s.volunteer, identity.RoleVolunteer))
		s.Require().Equal(http.StatusOK, rr.Code)
		resp := testutil.UnmarshalResponse[ListResponse](s.T(), rr)
		s.Equal(0, resp.Count)
	})

	s.Run("audit trail", func() {
		s.service.EXPECT().GetCase(gomock.Any(), c.ID).Return(c, nil)
		s.audit.EXPECT().List(gomock.Any(), c.ID).Return([]audit.Event{
			{Action: string(audit.EventCaseSubmitted), Category: audit.CategoryLifecycle, CaseID: c.ID, ActorID: s.submitter},
		}, nil)
		rr := testutil.DoRequest(s.router, s.do(http.MethodGet, "/cases/"+c.ID.String()+"/audit", nil, s.admin, identity.RoleAdmin))
		s.Require().Equal(http.StatusOK, rr.Code)
		resp := testutil.UnmarshalResponse[AuditResponse](s.T(), rr)
		s.Require().Len(resp.Events, 1)
		s.Equal(s.submitter.String(), resp.Events[0].ActorID)
		s.Empty(resp.Events[0].TargetID)
	})
}
