package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fastygo/careconnect/repository"
)

// SlotRepository stores slots as rows of the slots table created by the migrations.
type SlotRepository struct {
	pool *pgxpool.Pool
}

var (
	_ repository.SlotStore     = (*SlotRepository)(nil)
	_ repository.SlotClearer   = (*SlotRepository)(nil)
	_ repository.HealthChecker = (*SlotRepository)(nil)
)

// NewSlotRepository returns a Postgres-backed slot store.
func NewSlotRepository(pool *pgxpool.Pool) *SlotRepository {
	return &SlotRepository{pool: pool}
}

func (r *SlotRepository) Load(ctx context.Context, key string) (string, bool, error) {
	const query = `SELECT value FROM slots WHERE key = $1`

	var value string
	if err := r.pool.QueryRow(ctx, query, key).Scan(&value); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", false, nil
		}
		return "", false, err
	}
	return value, true, nil
}

func (r *SlotRepository) Save(ctx context.Context, key, value string) error {
	const query = `
	INSERT INTO slots (key, value, updated_at)
	VALUES ($1, $2, NOW())
	ON CONFLICT (key) DO UPDATE
	SET value = EXCLUDED.value,
	    updated_at = EXCLUDED.updated_at
	`
	_, err := r.pool.Exec(ctx, query, key, value)
	return err
}

func (r *SlotRepository) Clear(ctx context.Context, key string) error {
	const query = `DELETE FROM slots WHERE key = $1`
	_, err := r.pool.Exec(ctx, query, key)
	return err
}

func (r *SlotRepository) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}
