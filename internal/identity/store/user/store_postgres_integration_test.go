//go:build integration

package user_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"medhope/internal/identity/models"
	"medhope/internal/identity/store/user"
	id "medhope/pkg/domain"
	"medhope/pkg/platform/sentinel"
	"medhope/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *user.PostgresStore
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	s.postgres = containers.GetManager().GetPostgres(s.T())
	s.store = user.NewPostgres(s.postgres.DB)
}

func (s *PostgresStoreSuite) SetupTest() {
	s.Require().NoError(s.postgres.TruncateTables(context.Background(), "users"))
}

func (s *PostgresStoreSuite) TestRoundTrip() {
	ctx := context.Background()
	u, err := models.NewIdentity(id.UserID(uuid.New()), "Admin@Example.org", "Ayesha Khan", models.RoleAdmin, time.Now().UTC().Truncate(time.Microsecond))
	s.Require().NoError(err)
	s.Require().NoError(s.store.Save(ctx, u))

	found, err := s.store.FindByEmail(ctx, "admin@example.org")
	s.Require().NoError(err)
	s.Equal(u.ID, found.ID)
	s.Equal(models.RoleAdmin, found.Role)
	s.True(found.Active)

	s.Require().NoError(s.store.SetActive(ctx, u.ID, false))
	found, err = s.store.FindByID(ctx, u.ID)
	s.Require().NoError(err)
	s.False(found.Active)
}

func (s *PostgresStoreSuite) TestEmailUniqueness() {
	ctx := context.Background()
	a, _ := models.NewIdentity(id.UserID(uuid.New()), "same@example.org", "", models.RoleVolunteer, time.Now())
	b, _ := models.NewIdentity(id.UserID(uuid.New()), "same@example.org", "", models.RoleVolunteer, time.Now())
	s.Require().NoError(s.store.Save(ctx, a))
	s.ErrorIs(s.store.Save(ctx, b), sentinel.ErrAlreadyUsed)
}

func (s *PostgresStoreSuite) TestNotFound() {
	_, err := s.store.FindByID(context.Background(), id.UserID(uuid.New()))
	s.ErrorIs(err, sentinel.ErrNotFound)
}
