package pgsql

import (
	"context"

	portsrepo "github.com/finbooks-app/finbooks_backend/internal/core/ports/repositories"
	"github.com/finbooks-app/finbooks_backend/internal/utils/accounting"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxSequenceRepository struct {
	BaseRepository
}

// newPgxSequenceRepository creates a new repository for entry number allocation.
func newPgxSequenceRepository(pool *pgxpool.Pool) portsrepo.SequenceRepository {
	return &PgxSequenceRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.SequenceRepository = (*PgxSequenceRepository)(nil)

// NextEntryNumber advances the per-tenant-per-year counter and returns the
// formatted entry number. The single-statement upsert makes concurrent
// allocations serialize on the row without ever handing out the same value.
func (r *PgxSequenceRepository) NextEntryNumber(ctx context.Context, tenantID string, year int) (string, error) {
	query := `
		INSERT INTO entry_sequences (tenant_id, year, counter)
		VALUES ($1, $2, 1)
		ON CONFLICT (tenant_id, year)
		DO UPDATE SET counter = entry_sequences.counter + 1
		RETURNING counter;
	`
	var counter int64
	if err := r.Pool.QueryRow(ctx, query, tenantID, year).Scan(&counter); err != nil {
		return "", mapPgError(err, "failed to advance entry sequence")
	}
	return accounting.FormatEntryNumber(year, counter), nil
}
