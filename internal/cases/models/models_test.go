package models

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	identity "medhope/internal/identity/models"
	"medhope/internal/priority"
	id "medhope/pkg/domain"
	dErrors "medhope/pkg/domain-errors"
)

var now = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

func newPendingCase() *Case {
	return &Case{
		ID:            id.NewCaseID(),
		CaseNumber:    "CASE-2026-00001",
		Status:        StatusPending,
		Priority:      priority.Medium,
		FundingTarget: decimal.NewFromInt(50000),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

func TestFormatCaseNumber(t *testing.T) {
	for seq, want := range map[int64]string{
		1:               "CASE-2026-00001",
		12345:           "CASE-2026-12345",
		MaxCaseSequence: "CASE-2026-99999",
	} {
		got, err := FormatCaseNumber(2026, seq)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	for _, seq := range []int64{0, -1, MaxCaseSequence + 1} {
		_, err := FormatCaseNumber(2026, seq)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvariantViolation), "seq %d", seq)
	}
}

func TestCanView(t *testing.T) {
	submitter := id.NewUserID()
	volunteer := id.NewUserID()
	stranger := Actor{ID: id.NewUserID(), Role: identity.RoleSubmitter}
	c := newPendingCase()
	c.SubmitterID = submitter
	c.ApplyAssignment(volunteer, now)

	assert.True(t, c.CanView(Actor{ID: id.NewUserID(), Role: identity.RoleAdmin}))
	assert.True(t, c.CanView(Actor{ID: submitter, Role: identity.RoleSubmitter}))
	assert.True(t, c.CanView(Actor{ID: volunteer, Role: identity.RoleVolunteer}))
	assert.False(t, c.CanView(stranger))
	assert.False(t, c.CanView(Actor{ID: id.NewUserID(), Role: identity.RoleVolunteer}))
	assert.False(t, c.CanView(Actor{}))

	c.Status = StatusAccepted
	assert.True(t, c.CanView(stranger))

	c.Status = StatusRejected
	assert.False(t, c.CanView(stranger))
}

func TestStateDerivation(t *testing.T) {
	c := newPendingCase()
	assert.Equal(t, StateUnassigned, c.State())

	v := id.NewUserID()
	c.ApplyAssignment(v, now)
	assert.Equal(t, StateVolunteerPending, c.State())

	c.ApplyVolunteerApproval(now)
	assert.Equal(t, StateVolunteerApproved, c.State())
	assert.Equal(t, StatusPending, c.Status, "volunteer verdict leaves status untouched")

	c.ApplyAssignment(v, now)
	c.ApplyVolunteerRejection([]RejectionReason{ReasonFinancialInfo}, now)
	assert.Equal(t, StateVolunteerRejected, c.State())
	assert.Equal(t, StatusPending, c.Status)

	c.ApplyAdminRejection(id.NewUserID(), now)
	assert.Equal(t, StateAdminRejected, c.State())
	assert.True(t, c.IsTerminal())
}

func TestTerminalReachableFromEveryNonTerminalState(t *testing.T) {
	setups := map[State]func(c *Case){
		StateUnassigned:       func(c *Case) {},
		StateVolunteerPending: func(c *Case) { c.ApplyAssignment(id.NewUserID(), now) },
		StateVolunteerApproved: func(c *Case) {
			c.ApplyAssignment(id.NewUserID(), now)
			c.ApplyVolunteerApproval(now)
		},
		StateVolunteerRejected: func(c *Case) {
			c.ApplyAssignment(id.NewUserID(), now)
			c.ApplyVolunteerRejection([]RejectionReason{ReasonDiseaseInfo}, now)
		},
	}

	for state, setup := range setups {
		t.Run(string(state)+" to accepted", func(t *testing.T) {
			c := newPendingCase()
			setup(c)
			require.Equal(t, state, c.State())
			assert.True(t, c.ApplyAdminApproval(id.NewUserID(), now))
			assert.Equal(t, StateAdminAccepted, c.State())
			assert.Equal(t, StatusAccepted, c.Status)
		})
		t.Run(string(state)+" to rejected", func(t *testing.T) {
			c := newPendingCase()
			setup(c)
			assert.True(t, c.ApplyAdminRejection(id.NewUserID(), now))
			assert.Equal(t, StateAdminRejected, c.State())
			assert.Equal(t, StatusRejected, c.Status)
		})
	}
}

func TestAdminDecisionsOnTerminalCases(t *testing.T) {
	admin := id.NewUserID()

	t.Run("approving an accepted case is a no-op", func(t *testing.T) {
		c := newPendingCase()
		require.True(t, c.ApplyAdminApproval(admin, now))
		decided := *c.DecidedAt
		assert.False(t, c.ApplyAdminApproval(admin, now.Add(time.Hour)))
		assert.Equal(t, decided, *c.DecidedAt)
	})

	t.Run("rejecting a terminal case is a no-op", func(t *testing.T) {
		c := newPendingCase()
		require.True(t, c.ApplyAdminApproval(admin, now))
		assert.False(t, c.ApplyAdminRejection(admin, now))
		assert.Equal(t, StatusAccepted, c.Status)
	})

	t.Run("approval overrides an earlier rejection", func(t *testing.T) {
		c := newPendingCase()
		require.True(t, c.ApplyAdminRejection(admin, now))
		assert.True(t, c.ApplyAdminApproval(admin, now))
		assert.Equal(t, StatusAccepted, c.Status)
	})
}

func TestReassignmentDiscardsPriorVerdict(t *testing.T) {
	c := newPendingCase()
	v1, v2 := id.NewUserID(), id.NewUserID()

	c.ApplyAssignment(v1, now)
	c.ApplyVolunteerRejection([]RejectionReason{ReasonPersonalInfo}, now)
	require.NoError(t, c.CanAssign())
	c.ApplyAssignment(v2, now)

	assert.Equal(t, v2, *c.VolunteerID)
	assert.Equal(t, VolunteerPending, *c.VolunteerApprovalStatus)
	assert.Empty(t, c.VolunteerRejectionReasons)
	assert.Nil(t, c.VolunteerReviewedAt)
}

func TestCanAssign(t *testing.T) {
	c := newPendingCase()
	assert.NoError(t, c.CanAssign())

	c.ApplyAdminApproval(id.NewUserID(), now)
	assert.True(t, dErrors.HasCode(c.CanAssign(), dErrors.CodeConflict))
}

func TestCanRecordVerdict(t *testing.T) {
	v := id.NewUserID()

	t.Run("unassigned", func(t *testing.T) {
		c := newPendingCase()
		assert.True(t, dErrors.HasCode(c.CanRecordVerdict(v), dErrors.CodeConflict))
	})
	t.Run("other volunteer", func(t *testing.T) {
		c := newPendingCase()
		c.ApplyAssignment(v, now)
		assert.True(t, dErrors.HasCode(c.CanRecordVerdict(id.NewUserID()), dErrors.CodeConflict))
	})
	t.Run("assigned volunteer", func(t *testing.T) {
		c := newPendingCase()
		c.ApplyAssignment(v, now)
		assert.NoError(t, c.CanRecordVerdict(v))
	})
	t.Run("verdict already recorded", func(t *testing.T) {
		c := newPendingCase()
		c.ApplyAssignment(v, now)
		c.ApplyVolunteerApproval(now)
		assert.True(t, dErrors.HasCode(c.CanRecordVerdict(v), dErrors.CodeConflict))
	})
	t.Run("admin already decided", func(t *testing.T) {
		c := newPendingCase()
		c.ApplyAssignment(v, now)
		c.ApplyAdminApproval(id.NewUserID(), now)
		assert.True(t, dErrors.HasCode(c.CanRecordVerdict(v), dErrors.CodeConflict))
	})
}

func TestParseRejectionReasons(t *testing.T) {
	_, err := ParseRejectionReasons(nil)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))

	_, err = ParseRejectionReasons([]string{"  ", ""})
	assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))

	_, err = ParseRejectionReasons([]string{"Looks fishy"})
	assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))

	reasons, err := ParseRejectionReasons([]string{
		"Financial information issue",
		" Financial information issue ",
		"Disease information issue",
	})
	require.NoError(t, err)
	assert.Equal(t, []RejectionReason{ReasonFinancialInfo, ReasonDiseaseInfo}, reasons)
}

func TestCanReceiveDonation(t *testing.T) {
	c := newPendingCase()
	assert.True(t, dErrors.HasCode(c.CanReceiveDonation(false), dErrors.CodeConflict))

	c.ApplyAdminApproval(id.NewUserID(), now)
	assert.NoError(t, c.CanReceiveDonation(false))
	assert.True(t, dErrors.HasCode(c.CanReceiveDonation(true), dErrors.CodeValidation))

	c.ZakatEligible = true
	assert.NoError(t, c.CanReceiveDonation(true))
}

func TestCanCredit(t *testing.T) {
	c := newPendingCase()
	c.Status = StatusAccepted
	c.TotalDonations = MaxAmount.Sub(decimal.NewFromInt(1))

	assert.NoError(t, c.CanCredit(decimal.NewFromInt(1), false))
	assert.ErrorIs(t, c.CanCredit(decimal.RequireFromString("1.01"), false), ErrTotalExceedsMax)
	assert.True(t, dErrors.HasCode(c.CanCredit(decimal.NewFromInt(1), true), dErrors.CodeValidation))

	c.Status = StatusPending
	assert.True(t, dErrors.HasCode(c.CanCredit(decimal.NewFromInt(1), false), dErrors.CodeConflict))
}

func TestRemaining(t *testing.T) {
	c := newPendingCase()
	c.TotalDonations = decimal.NewFromInt(20000)
	assert.True(t, decimal.NewFromInt(30000).Equal(c.Remaining()))

	c.TotalDonations = decimal.NewFromInt(60000)
	assert.True(t, c.Remaining().IsZero())
}

func TestClone(t *testing.T) {
	c := newPendingCase()
	c.ApplyAssignment(id.NewUserID(), now)
	c.DocumentRefs = []string{"doc-1"}

	cp := c.Clone()
	*cp.VolunteerApprovalStatus = VolunteerApproved
	cp.DocumentRefs[0] = "changed"

	assert.Equal(t, VolunteerPending, *c.VolunteerApprovalStatus)
	assert.Equal(t, "doc-1", c.DocumentRefs[0])
}

func TestSubmitCaseRequestValidate(t *testing.T) {
	valid := func() SubmitCaseRequest {
		return SubmitCaseRequest{
			Applicant:     Applicant{FullName: " Bilal Ahmed "},
			Disease:       Disease{Name: "Thalassemia"},
			District:      " south ",
			Area:          "  Lyari  ",
			DocumentRefs:  []string{"doc-1", "doc-1", " "},
			FundingTarget: decimal.RequireFromString("50000.00"),
		}
	}

	t.Run("normalizes fields", func(t *testing.T) {
		r := valid()
		r.Normalize()
		require.NoError(t, r.Validate())
		assert.Equal(t, "South", r.District)
		assert.Equal(t, "Lyari", r.Area)
		assert.Equal(t, "Bilal Ahmed", r.Applicant.FullName)
		assert.Equal(t, []string{"doc-1"}, r.DocumentRefs)
	})

	cases := map[string]func(r *SubmitCaseRequest){
		"missing applicant": func(r *SubmitCaseRequest) { r.Applicant.FullName = "" },
		"missing disease":   func(r *SubmitCaseRequest) { r.Disease.Name = "" },
		"missing district":  func(r *SubmitCaseRequest) { r.District = "" },
		"unknown district":  func(r *SubmitCaseRequest) { r.District = "Lahore" },
		"zero target":       func(r *SubmitCaseRequest) { r.FundingTarget = decimal.Zero },
		"negative target":   func(r *SubmitCaseRequest) { r.FundingTarget = decimal.NewFromInt(-5) },
		"fractional paisa":  func(r *SubmitCaseRequest) { r.FundingTarget = decimal.RequireFromString("10.005") },
		"target past max":   func(r *SubmitCaseRequest) { r.FundingTarget = MaxAmount.Add(decimal.RequireFromString("0.01")) },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			r := valid()
			mutate(&r)
			r.Normalize()
			assert.True(t, dErrors.HasCode(r.Validate(), dErrors.CodeValidation))
		})
	}
}
