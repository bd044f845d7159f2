package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"medhope/internal/identity/models"
	"medhope/internal/platform/postgres"
	id "medhope/pkg/domain"
	"medhope/pkg/platform/sentinel"
	txcontext "medhope/pkg/platform/tx"
)

// PostgresStore reads and writes the users table.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const selectUser = `SELECT id, email, full_name, role, is_active, created_at FROM users`

func (s *PostgresStore) Save(ctx context.Context, user *models.Identity) error {
	_, err := txcontext.Pick(ctx, s.db).ExecContext(ctx, `
		INSERT INTO users (id, email, full_name, role, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			email = EXCLUDED.email,
			full_name = EXCLUDED.full_name,
			role = EXCLUDED.role,
			is_active = EXCLUDED.is_active
	`, uuid.UUID(user.ID), strings.ToLower(user.Email), user.FullName, string(user.Role), user.Active, user.CreatedAt)
	if err != nil {
		if postgres.IsUniqueViolation(err, "users_email_key") {
			return sentinel.ErrAlreadyUsed
		}
		return fmt.Errorf("save user: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, userID id.UserID) (*models.Identity, error) {
	row := txcontext.Pick(ctx, s.db).QueryRowContext(ctx, selectUser+` WHERE id = $1`, uuid.UUID(userID))
	u, err := scanUser(row)
	if err != nil {
		return nil, fmt.Errorf("find user by id: %w", err)
	}
	return u, nil
}

func (s *PostgresStore) FindByEmail(ctx context.Context, email string) (*models.Identity, error) {
	row := txcontext.Pick(ctx, s.db).QueryRowContext(ctx, selectUser+` WHERE email = $1`, strings.ToLower(strings.TrimSpace(email)))
	u, err := scanUser(row)
	if err != nil {
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	return u, nil
}

func (s *PostgresStore) SetActive(ctx context.Context, userID id.UserID, active bool) error {
	res, err := txcontext.Pick(ctx, s.db).ExecContext(ctx, `UPDATE users SET is_active = $2 WHERE id = $1`, uuid.UUID(userID), active)
	if err != nil {
		return fmt.Errorf("set user active: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func scanUser(row *sql.Row) (*models.Identity, error) {
	var (
		u      models.Identity
		userID uuid.UUID
		role   string
	)
	if err := row.Scan(&userID, &u.Email, &u.FullName, &role, &u.Active, &u.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, err
	}
	u.ID = id.UserID(userID)
	u.Role = models.Role(role)
	return &u, nil
}
