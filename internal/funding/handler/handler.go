package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"medhope/internal/funding/models"
	identity "medhope/internal/identity/models"
	"medhope/internal/platform/middleware"
	id "medhope/pkg/domain"
	dErrors "medhope/pkg/domain-errors"
	"medhope/pkg/platform/httputil"
	"medhope/pkg/requestcontext"
)

// Service defines the funding ledger operations exposed over HTTP.
type Service interface {
	RecordDonation(ctx context.Context, donorID id.UserID, req models.DonationRequest) (*models.Donation, error)
	Contribute(ctx context.Context, donorID id.UserID, req models.DonationRequest) (*models.Donation, error)
	FundingStatus(ctx context.Context, caseID id.CaseID) (*models.FundingStatus, error)
	ListDonations(ctx context.Context, caseID id.CaseID) ([]*models.Donation, error)
	ListDonorDonations(ctx context.Context, donorID id.UserID, caseID id.CaseID) ([]*models.Donation, error)
	HasContributed(ctx context.Context, donorID id.UserID, caseID id.CaseID) (bool, error)
}

// Handler wires funding endpoints to the ledger.
type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{service: service, logger: logger}
}

// Register mounts funding endpoints on an authenticated router. Recording an
// externally captured payment and listing every donor are admin-only.
func (h *Handler) Register(r chi.Router) {
	r.Post("/cases/{caseID}/contributions", h.HandleContribute)
	r.Get("/cases/{caseID}/funding", h.HandleFundingStatus)
	r.Get("/cases/{caseID}/donations/mine", h.HandleMyDonations)
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireRole(h.logger, identity.RoleAdmin.String()))
		r.Post("/cases/{caseID}/donations", h.HandleRecordDonation)
		r.Get("/cases/{caseID}/donations", h.HandleListDonations)
	})
}

// HandleRecordDonation handles POST /cases/{caseID}/donations for payments
// captured outside this service.
func (h *Handler) HandleRecordDonation(w http.ResponseWriter, r *http.Request) {
	caseID, ok := parseCaseID(w, r)
	if !ok {
		return
	}
	var body RecordDonationRequest
	if err := httputil.DecodeJSON(r, &body); err != nil {
		h.logger.WarnContext(r.Context(), "invalid record donation request",
			"request_id", requestcontext.RequestID(r.Context()),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	donorID, req, err := body.Parse(caseID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	d, err := h.service.RecordDonation(r.Context(), donorID, req)
	if err != nil {
		h.fail(r.Context(), w, "record donation failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, FromDonation(d))
}

// HandleContribute handles POST /cases/{caseID}/contributions. A declined
// payment answers 402 with the failed donation.
func (h *Handler) HandleContribute(w http.ResponseWriter, r *http.Request) {
	donorID, req, ok := h.decodeDonation(w, r)
	if !ok {
		return
	}
	d, err := h.service.Contribute(r.Context(), donorID, req)
	if err != nil {
		h.fail(r.Context(), w, "contribution failed", err)
		return
	}
	status := http.StatusCreated
	if d.Status == models.DonationFailed {
		status = http.StatusPaymentRequired
	}
	httputil.WriteJSON(w, status, FromDonation(d))
}

func (h *Handler) HandleFundingStatus(w http.ResponseWriter, r *http.Request) {
	caseID, ok := parseCaseID(w, r)
	if !ok {
		return
	}
	status, err := h.service.FundingStatus(r.Context(), caseID)
	if err != nil {
		h.fail(r.Context(), w, "funding status failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromFundingStatus(status))
}

func (h *Handler) HandleListDonations(w http.ResponseWriter, r *http.Request) {
	caseID, ok := parseCaseID(w, r)
	if !ok {
		return
	}
	donations, err := h.service.ListDonations(r.Context(), caseID)
	if err != nil {
		h.fail(r.Context(), w, "list donations failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromDonations(donations))
}

// HandleMyDonations handles GET /cases/{caseID}/donations/mine.
func (h *Handler) HandleMyDonations(w http.ResponseWriter, r *http.Request) {
	donorID, ok := caller(w, r)
	if !ok {
		return
	}
	caseID, ok := parseCaseID(w, r)
	if !ok {
		return
	}
	donations, err := h.service.ListDonorDonations(r.Context(), donorID, caseID)
	if err != nil {
		h.fail(r.Context(), w, "list donor donations failed", err)
		return
	}
	contributed, err := h.service.HasContributed(r.Context(), donorID, caseID)
	if err != nil {
		h.fail(r.Context(), w, "contribution check failed", err)
		return
	}
	resp := FromDonations(donations)
	resp.HasContributed = &contributed
	httputil.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) decodeDonation(w http.ResponseWriter, r *http.Request) (id.UserID, models.DonationRequest, bool) {
	donorID, ok := caller(w, r)
	if !ok {
		return id.UserID{}, models.DonationRequest{}, false
	}
	caseID, ok := parseCaseID(w, r)
	if !ok {
		return id.UserID{}, models.DonationRequest{}, false
	}
	var req models.DonationRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		h.logger.WarnContext(r.Context(), "invalid donation request",
			"request_id", requestcontext.RequestID(r.Context()),
			"error", err,
		)
		httputil.WriteError(w, err)
		return id.UserID{}, models.DonationRequest{}, false
	}
	req.CaseID = caseID
	return donorID, req, true
}

func caller(w http.ResponseWriter, r *http.Request) (id.UserID, bool) {
	userID := requestcontext.UserID(r.Context())
	if userID.IsNil() {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return id.UserID{}, false
	}
	return userID, true
}

func parseCaseID(w http.ResponseWriter, r *http.Request) (id.CaseID, bool) {
	caseID, err := id.ParseCaseID(chi.URLParam(r, "caseID"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid case id"))
		return id.CaseID{}, false
	}
	return caseID, true
}

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
