package registry

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRegistry serves template records from a cv_templates table for
// deployments that host their own registry instead of calling a remote one.
type PostgresRegistry struct {
	pool *pgxpool.Pool
}

// ConnectPostgres establishes a connection pool and verifies it.
func ConnectPostgres(ctx context.Context, databaseURL string) (*PostgresRegistry, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresRegistry{pool: pool}, nil
}

// Get looks the template up by id.
func (r *PostgresRegistry) Get(ctx context.Context, id string) (Template, error) {
	var tpl Template
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, pdf_url FROM cv_templates WHERE id = $1`,
		id,
	).Scan(&tpl.ID, &tpl.Name, &tpl.PDFURL)

	if errors.Is(err, pgx.ErrNoRows) {
		return Template{}, fmt.Errorf("template %q: %w", id, ErrNotFound)
	}
	if err != nil {
		return Template{}, fmt.Errorf("registry query failed: %w", err)
	}

	return tpl, nil
}

// Close releases the connection pool.
func (r *PostgresRegistry) Close() {
	if r.pool != nil {
		r.pool.Close()
	}
}
