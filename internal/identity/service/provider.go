// Package service is the identity provider consumed by the case engine. It
// resolves bearer tokens and user IDs into roles and active flags; it never
// manages credentials.
package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"medhope/internal/identity/models"
	"medhope/internal/identity/token"
	id "medhope/pkg/domain"
	dErrors "medhope/pkg/domain-errors"
	"medhope/pkg/platform/sentinel"
)

type UserStore interface {
	Save(ctx context.Context, user *models.Identity) error
	FindByID(ctx context.Context, userID id.UserID) (*models.Identity, error)
	FindByEmail(ctx context.Context, email string) (*models.Identity, error)
	SetActive(ctx context.Context, userID id.UserID, active bool) error
}

type TokenService interface {
	GenerateAccessToken(userID id.UserID, role string, expiresIn time.Duration) (string, error)
	ValidateToken(tokenString string) (*token.Claims, error)
}

// Provider resolves callers for the HTTP layer and identities for services.
type Provider struct {
	users    UserStore
	tokens   TokenService
	tokenTTL time.Duration
	logger   *slog.Logger
	now      func() time.Time
}

type Option func(*Provider)

func WithLogger(logger *slog.Logger) Option {
	return func(p *Provider) {
		p.logger = logger
	}
}

func WithTokenTTL(ttl time.Duration) Option {
	return func(p *Provider) {
		if ttl > 0 {
			p.tokenTTL = ttl
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(p *Provider) {
		p.now = now
	}
}

func New(users UserStore, tokens TokenService, opts ...Option) (*Provider, error) {
	if users == nil {
		return nil, errors.New("user store is required")
	}
	if tokens == nil {
		return nil, errors.New("token service is required")
	}
	p := &Provider{
		users:    users,
		tokens:   tokens,
		tokenTTL: 24 * time.Hour,
		logger:   slog.Default(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Authenticate verifies the token and returns the caller's current identity.
// A deactivated account is refused even with a valid token.
func (p *Provider) Authenticate(ctx context.Context, tokenString string) (*models.Identity, error) {
	claims, err := p.tokens.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}
	userID, err := id.ParseUserID(claims.UserID)
	if err != nil {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid token claims")
	}
	user, err := p.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeUnauthorized, "unknown user")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load user")
	}
	if !user.Active {
		return nil, dErrors.New(dErrors.CodeForbidden, "account is deactivated")
	}
	return user, nil
}

// AuthenticateToken satisfies the HTTP auth middleware.
func (p *Provider) AuthenticateToken(ctx context.Context, tokenString string) (id.UserID, string, error) {
	user, err := p.Authenticate(ctx, tokenString)
	if err != nil {
		return id.UserID{}, "", err
	}
	return user.ID, user.Role.String(), nil
}

// Lookup returns the identity for userID, active or not.
func (p *Provider) Lookup(ctx context.Context, userID id.UserID) (*models.Identity, error) {
	user, err := p.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "user not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load user")
	}
	return user, nil
}

// LookupByEmail returns the identity registered under email.
func (p *Provider) LookupByEmail(ctx context.Context, email string) (*models.Identity, error) {
	user, err := p.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "user not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load user")
	}
	return user, nil
}

// Register adds a user to the directory.
func (p *Provider) Register(ctx context.Context, email, fullName string, role models.Role) (*models.Identity, error) {
	user, err := models.NewIdentity(id.NewUserID(), email, fullName, role, p.now())
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeInvariantViolation) {
			return nil, dErrors.New(dErrors.CodeValidation, err.Error())
		}
		return nil, err
	}
	if err := p.users.Save(ctx, user); err != nil {
		if errors.Is(err, sentinel.ErrAlreadyUsed) {
			return nil, dErrors.New(dErrors.CodeConflict, "email is already registered")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to save user")
	}
	p.logger.InfoContext(ctx, "user registered",
		"user_id", user.ID.String(),
		"role", user.Role.String(),
	)
	return user, nil
}

// Deactivate marks a user inactive. Existing assignments are not revisited.
func (p *Provider) Deactivate(ctx context.Context, userID id.UserID) error {
	if err := p.users.SetActive(ctx, userID, false); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.New(dErrors.CodeNotFound, "user not found")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to deactivate user")
	}
	p.logger.InfoContext(ctx, "user deactivated", "user_id", userID.String())
	return nil
}

// IssueToken signs an access token for an active user.
func (p *Provider) IssueToken(ctx context.Context, userID id.UserID) (string, error) {
	user, err := p.Lookup(ctx, userID)
	if err != nil {
		return "", err
	}
	if !user.Active {
		return "", dErrors.New(dErrors.CodeForbidden, "account is deactivated")
	}
	signed, err := p.tokens.GenerateAccessToken(user.ID, user.Role.String(), p.tokenTTL)
	if err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "failed to sign token")
	}
	return signed, nil
}
