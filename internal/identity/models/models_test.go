package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	id "medhope/pkg/domain"
	dErrors "medhope/pkg/domain-errors"
)

func TestParseRole(t *testing.T) {
	r, err := ParseRole(" Volunteer ")
	require.NoError(t, err)
	assert.Equal(t, RoleVolunteer, r)

	_, err = ParseRole("donor")
	assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
}

func TestNewIdentity(t *testing.T) {
	now := time.Now()

	u, err := NewIdentity(id.NewUserID(), "  Admin@Example.ORG", " Ayesha ", RoleAdmin, now)
	require.NoError(t, err)
	assert.Equal(t, "admin@example.org", u.Email)
	assert.Equal(t, "Ayesha", u.FullName)
	assert.True(t, u.Active)
	assert.True(t, u.HasRole(RoleAdmin))

	_, err = NewIdentity(id.UserID{}, "a@b.c", "", RoleAdmin, now)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvariantViolation))

	_, err = NewIdentity(id.NewUserID(), "a@b.c", "", Role("root"), now)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvariantViolation))
}
