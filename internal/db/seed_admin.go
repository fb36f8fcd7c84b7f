package db

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/vndigital/sitehub/internal/config"
	"github.com/vndigital/sitehub/internal/domain/user"
	"github.com/vndigital/sitehub/internal/security"
)

// EnsureAdminUser seeds the designated admin account on first startup.
// Subsequent startups find the existing row and do nothing. Credentials
// come from configuration, never from source.
func EnsureAdminUser(ctx context.Context, pool *pgxpool.Pool, cfg config.Config) error {
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		return nil
	}

	// check if the user exists

	var dummy int

	err := pool.QueryRow(ctx, `SELECT id FROM users WHERE email = $1`, cfg.AdminEmail).Scan(&dummy)

	if err == nil {
		return nil
	}

	if !errors.Is(err, pgx.ErrNoRows) {
		return err
	}

	hash, err := security.HashPassword(cfg.AdminPassword)

	if err != nil {
		return err
	}

	_, err = pool.Exec(ctx,
		`INSERT INTO users (email, password, is_admin) VALUES ($1, $2, $3)`,
		cfg.AdminEmail, hash, user.AdminFlagTrue,
	)

	return err
}
