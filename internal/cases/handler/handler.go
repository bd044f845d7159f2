package handler

import (
	"context"
	"log/slog"
	"net/http"
	"slices"

	"github.com/go-chi/chi/v5"

	"medhope/internal/cases/models"
	identity "medhope/internal/identity/models"
	"medhope/internal/platform/middleware"
	id "medhope/pkg/domain"
	dErrors "medhope/pkg/domain-errors"
	"medhope/pkg/platform/audit"
	"medhope/pkg/platform/httputil"
	"medhope/pkg/requestcontext"
)

// Service defines the case lifecycle operations exposed over HTTP.
type Service interface {
	SubmitCase(ctx context.Context, actor models.Actor, req models.SubmitCaseRequest) (*models.Case, error)
	GetCase(ctx context.Context, caseID id.CaseID) (*models.Case, error)
	GetCaseByNumber(ctx context.Context, caseNumber string) (*models.Case, error)
	ListCasesByStatus(ctx context.Context, status models.Status) ([]*models.Case, error)
	StatusCounts(ctx context.Context) (*models.StatusCounts, error)
	AssignVolunteer(ctx context.Context, actor models.Actor, caseID id.CaseID, volunteerID id.UserID) (*models.Case, error)
	ListCasesForVolunteer(ctx context.Context, actor models.Actor, volunteerID id.UserID) ([]*models.Case, error)
	VolunteerApprove(ctx context.Context, actor models.Actor, caseID id.CaseID) (*models.Case, error)
	VolunteerReject(ctx context.Context, actor models.Actor, caseID id.CaseID, reasons []string) (*models.Case, error)
	AdminApprove(ctx context.Context, actor models.Actor, caseID id.CaseID) (*models.Case, error)
	AdminReject(ctx context.Context, actor models.Actor, caseID id.CaseID) (*models.Case, error)
	OverridePriority(ctx context.Context, actor models.Actor, caseID id.CaseID, priority string) (*models.Case, error)
}

// AuditReader lists recorded audit events for a case.
type AuditReader interface {
	List(ctx context.Context, caseID id.CaseID) ([]audit.Event, error)
}

// Handler wires case endpoints to the lifecycle service.
type Handler struct {
	service Service
	audit   AuditReader
	logger  *slog.Logger
}

// New constructs a case handler. audit may be nil, in which case the audit
// endpoint returns an empty list.
func New(service Service, auditReader AuditReader, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{service: service, audit: auditReader, logger: logger}
}

// Register mounts case endpoints on an authenticated router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/cases", h.HandleSubmit)
	r.Get("/cases", h.HandleList)
	r.Get("/cases/by-number/{caseNumber}", h.HandleGetByNumber)
	r.Get("/cases/{caseID}", h.HandleGet)
	r.Post("/cases/{caseID}/volunteer/approve", h.HandleVolunteerApprove)
	r.Post("/cases/{caseID}/volunteer/reject", h.HandleVolunteerReject)
	r.Get("/volunteers/{volunteerID}/cases", h.HandleVolunteerCases)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireRole(h.logger, identity.RoleAdmin.String()))
		r.Get("/cases/stats", h.HandleStats)
		r.Post("/cases/{caseID}/assignment", h.HandleAssign)
		r.Post("/cases/{caseID}/approve", h.HandleAdminApprove)
		r.Post("/cases/{caseID}/reject", h.HandleAdminReject)
		r.Put("/cases/{caseID}/priority", h.HandleOverridePriority)
		r.Get("/cases/{caseID}/audit", h.HandleAudit)
	})
}

// HandleSubmit handles POST /cases.
func (h *Handler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}
	var req models.SubmitCaseRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		h.logger.WarnContext(ctx, "invalid submit case request",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	c, err := h.service.SubmitCase(ctx, actor, req)
	if err != nil {
		h.fail(ctx, w, "submit case failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, FromCase(c))
}

// HandleList handles GET /cases?status=. Non-admins only see the cases
// they may view.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}
	status := models.Status(r.URL.Query().Get("status"))
	cases, err := h.service.ListCasesByStatus(r.Context(), status)
	if err != nil {
		h.fail(r.Context(), w, "list cases failed", err)
		return
	}
	if !actor.Is(identity.RoleAdmin) {
		cases = slices.DeleteFunc(cases, func(c *models.Case) bool { return !c.CanView(actor) })
	}
	httputil.WriteJSON(w, http.StatusOK, FromCases(cases))
}

// HandleStats handles GET /cases/stats.
func (h *Handler) HandleStats(w http.ResponseWriter, r *http.Request) {
	counts, err := h.service.StatusCounts(r.Context())
	if err != nil {
		h.fail(r.Context(), w, "status counts failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, StatsResponse{
		Pending:  counts.Pending,
		Accepted: counts.Accepted,
		Rejected: counts.Rejected,
		Total:    counts.Total(),
	})
}

func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	actor, caseID, ok := h.actorAndCase(w, r)
	if !ok {
		return
	}
	c, err := h.service.GetCase(r.Context(), caseID)
	if err != nil {
		h.fail(r.Context(), w, "get case failed", err)
		return
	}
	h.writeVisible(w, r, actor, c)
}

func (h *Handler) HandleGetByNumber(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}
	c, err := h.service.GetCaseByNumber(r.Context(), chi.URLParam(r, "caseNumber"))
	if err != nil {
		h.fail(r.Context(), w, "get case by number failed", err)
		return
	}
	h.writeVisible(w, r, actor, c)
}

// writeVisible answers not found for cases the caller may not view so their
// existence is not disclosed.
func (h *Handler) writeVisible(w http.ResponseWriter, r *http.Request, actor models.Actor, c *models.Case) {
	if !c.CanView(actor) {
		h.fail(r.Context(), w, "case hidden from caller", dErrors.New(dErrors.CodeNotFound, "case not found"))
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromCase(c))
}

// HandleAssign handles POST /cases/{caseID}/assignment.
func (h *Handler) HandleAssign(w http.ResponseWriter, r *http.Request) {
	actor, caseID, ok := h.actorAndCase(w, r)
	if !ok {
		return
	}
	var req AssignRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}
	volunteerID, err := req.Parse()
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	c, err := h.service.AssignVolunteer(r.Context(), actor, caseID, volunteerID)
	if err != nil {
		h.fail(r.Context(), w, "assign volunteer failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromCase(c))
}

func (h *Handler) HandleVolunteerApprove(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, "volunteer approve failed", h.service.VolunteerApprove)
}

// HandleVolunteerReject handles POST /cases/{caseID}/volunteer/reject.
func (h *Handler) HandleVolunteerReject(w http.ResponseWriter, r *http.Request) {
	actor, caseID, ok := h.actorAndCase(w, r)
	if !ok {
		return
	}
	var req RejectRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}
	c, err := h.service.VolunteerReject(r.Context(), actor, caseID, req.Reasons)
	if err != nil {
		h.fail(r.Context(), w, "volunteer reject failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromCase(c))
}

func (h *Handler) HandleAdminApprove(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, "admin approve failed", h.service.AdminApprove)
}

func (h *Handler) HandleAdminReject(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, "admin reject failed", h.service.AdminReject)
}

// HandleOverridePriority handles PUT /cases/{caseID}/priority.
func (h *Handler) HandleOverridePriority(w http.ResponseWriter, r *http.Request) {
	actor, caseID, ok := h.actorAndCase(w, r)
	if !ok {
		return
	}
	var req PriorityRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}
	c, err := h.service.OverridePriority(r.Context(), actor, caseID, req.Priority)
	if err != nil {
		h.fail(r.Context(), w, "override priority failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromCase(c))
}

// HandleVolunteerCases handles GET /volunteers/{volunteerID}/cases.
func (h *Handler) HandleVolunteerCases(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}
	volunteerID, err := id.ParseUserID(chi.URLParam(r, "volunteerID"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid volunteer id"))
		return
	}
	cases, err := h.service.ListCasesForVolunteer(r.Context(), actor, volunteerID)
	if err != nil {
		h.fail(r.Context(), w, "list volunteer cases failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromCases(cases))
}

// HandleAudit handles GET /cases/{caseID}/audit.
func (h *Handler) HandleAudit(w http.ResponseWriter, r *http.Request) {
	caseID, ok := parseCaseID(w, r)
	if !ok {
		return
	}
	if _, err := h.service.GetCase(r.Context(), caseID); err != nil {
		h.fail(r.Context(), w, "get case failed", err)
		return
	}
	var events []audit.Event
	if h.audit != nil {
		var err error
		events, err = h.audit.List(r.Context(), caseID)
		if err != nil {
			h.fail(r.Context(), w, "list audit events failed", dErrors.Wrap(err, dErrors.CodeInternal, "failed to list audit events"))
			return
		}
	}
	httputil.WriteJSON(w, http.StatusOK, FromEvents(events))
}

type transitionFunc func(ctx context.Context, actor models.Actor, caseID id.CaseID) (*models.Case, error)

func (h *Handler) transition(w http.ResponseWriter, r *http.Request, failMsg string, fn transitionFunc) {
	actor, caseID, ok := h.actorAndCase(w, r)
	if !ok {
		return
	}
	c, err := fn(r.Context(), actor, caseID)
	if err != nil {
		h.fail(r.Context(), w, failMsg, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromCase(c))
}

func (h *Handler) actor(w http.ResponseWriter, r *http.Request) (models.Actor, bool) {
	ctx := r.Context()
	userID := requestcontext.UserID(ctx)
	if userID.IsNil() {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return models.Actor{}, false
	}
	return models.Actor{ID: userID, Role: identity.Role(requestcontext.Role(ctx))}, true
}

func (h *Handler) actorAndCase(w http.ResponseWriter, r *http.Request) (models.Actor, id.CaseID, bool) {
	actor, ok := h.actor(w, r)
	if !ok {
		return models.Actor{}, id.CaseID{}, false
	}
	caseID, ok := parseCaseID(w, r)
	if !ok {
		return models.Actor{}, id.CaseID{}, false
	}
	return actor, caseID, true
}

func parseCaseID(w http.ResponseWriter, r *http.Request) (id.CaseID, bool) {
	caseID, err := id.ParseCaseID(chi.URLParam(r, "caseID"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid case id"))
		return id.CaseID{}, false
	}
	return caseID, true
}

// fail logs server-side failures at error level and client mistakes at warn.
func (h *Handler) fail(ctx context.Context, w http.ResponseWriter, msg string, err error) {
	level := slog.LevelWarn
	if dErrors.HasCode(err, dErrors.CodeInternal) {
		level = slog.LevelError
	}
	h.logger.Log(ctx, level, msg,
		"request_id", requestcontext.RequestID(ctx),
		"error", err,
	)
	httputil.WriteError(w, err)
}
