package postgres

import (
	"context"
	"database/sql"

	"rawstore/internal/model"
	"rawstore/internal/usage"
)

// RegistryPostgres is a PostgreSQL implementation of usage.Registry.
// It uses database/sql with parameterized queries and contains no business
// logic.
type RegistryPostgres struct {
	db *sql.DB
}

// NewRegistryPostgres creates a new RegistryPostgres.
func NewRegistryPostgres(db *sql.DB) *RegistryPostgres {
	return &RegistryPostgres{db: db}
}

var _ usage.Registry = (*RegistryPostgres)(nil)

// TotalBytes sums the sizes of all registered files for the owner and
// visibility class. An owner with no rows has zero usage.
func (r *RegistryPostgres) TotalBytes(ctx context.Context, owner string, visibility model.Visibility) (int64, error) {
	const q = `
		SELECT COALESCE(SUM(size), 0)
		FROM stored_files
		WHERE owner = $1 AND visibility = $2
	`
	var total int64
	if err := r.db.QueryRowContext(ctx, q, owner, string(visibility)).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}
