package db

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"appraisal/internal/domain/auth"
	"appraisal/internal/platform/config"
)

// Seed provisions the bootstrap HR admin account when the employee table is
// empty. Without it a fresh deployment has no one able to log in and create
// cycles.
func Seed(ctx context.Context, pool *pgxpool.Pool, cfg config.Config) error {
	if cfg.SeedAdminEmail == "" || cfg.SeedAdminPassword == "" {
		return nil
	}

	var count int
	if err := pool.QueryRow(ctx, "SELECT COUNT(1) FROM employees").Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := auth.HashPassword(cfg.SeedAdminPassword)
	if err != nil {
		return err
	}

	_, err = pool.Exec(ctx, `
    INSERT INTO employees (first_name, last_name, email, password_hash, role, status)
    VALUES ($1, $2, $3, $4, $5, 'active')
    ON CONFLICT (email) DO NOTHING
  `, "HR", "Admin", cfg.SeedAdminEmail, hash, auth.RoleHR)
	return err
}
