// Command issue-token registers a user in the PostgreSQL directory when
// needed and prints a signed access token for it. It bootstraps the first
// admin and volunteer accounts; the server itself never manages credentials.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"medhope/internal/identity/models"
	identityservice "medhope/internal/identity/service"
	"medhope/internal/identity/store/user"
	"medhope/internal/identity/token"
	"medhope/internal/platform/config"
	"medhope/internal/platform/logger"
	"medhope/internal/platform/postgres"
	dErrors "medhope/pkg/domain-errors"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	email := flag.String("email", "", "user email (required)")
	name := flag.String("name", "", "full name, used when the user is created")
	role := flag.String("role", "submitter", "submitter, volunteer or admin")
	flag.Parse()

	if err := run(context.Background(), *configPath, *email, *name, *role, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "issue-token: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, configPath, email, name, rawRole string, out io.Writer) error {
	if email == "" {
		return errors.New("-email is required")
	}
	r, err := models.ParseRole(rawRole)
	if err != nil {
		return err
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if cfg.Database.URL == "" {
		return errors.New("database.url is required; in-memory users do not outlive this process")
	}
	db, err := postgres.Open(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	log := logger.NewWithWriter(cfg.Logging, os.Stderr)
	provider, err := identityservice.New(user.NewPostgres(db),
		token.NewJWTService(cfg.Auth.JWTSigningKey, cfg.Auth.Issuer, cfg.Auth.Audience),
		identityservice.WithLogger(log),
		identityservice.WithTokenTTL(cfg.Auth.TokenTTL),
	)
	if err != nil {
		return err
	}

	identity, err := provider.LookupByEmail(ctx, email)
	switch {
	case dErrors.HasCode(err, dErrors.CodeNotFound):
		if name == "" {
			name = email
		}
		identity, err = provider.Register(ctx, email, name, r)
		if err != nil {
			return err
		}
	case err != nil:
		return err
	case identity.Role != r:
		log.Warn("user exists with a different role; issuing for the stored role",
			"requested", r.String(),
			"stored", identity.Role.String(),
		)
	}

	signed, err := provider.IssueToken(ctx, identity.ID)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, signed)
	return err
}
