package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/menu-interativo/back-end/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// tableRepository implements the TableRepository interface using PostgreSQL.
type tableRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewTableRepository creates a new PostgreSQL-backed table repository.
func NewTableRepository(pool *pgxpool.Pool, logger zerolog.Logger) TableRepository {
	return &tableRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "table").Logger(),
	}
}

const tableColumns = `id, table_number, location, status, waiter_id, created_at`

func scanTable(row pgx.Row) (*model.Table, error) {
	var t model.Table
	if err := row.Scan(&t.ID, &t.TableNumber, &t.Location, &t.Status, &t.WaiterID, &t.CreatedAt); err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *tableRepository) Create(ctx context.Context, t *model.Table) error {
	query := `
		INSERT INTO tables (id, table_number, location, status, waiter_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	if _, err := r.pool.Exec(ctx, query, t.ID, t.TableNumber, t.Location, t.Status, t.WaiterID, t.CreatedAt); err != nil {
		r.logger.Error().Err(err).Str("table_id", t.ID.String()).Msg("failed to create table")
		return fmt.Errorf("failed to create table: %w", err)
	}
	return nil
}

func (r *tableRepository) list(ctx context.Context, query string, args ...any) ([]model.Table, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query tables")
		return nil, fmt.Errorf("failed to query tables: %w", err)
	}
	defer rows.Close()

	tables := make([]model.Table, 0)
	for rows.Next() {
		t, err := scanTable(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan table: %w", err)
		}
		tables = append(tables, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tables: %w", err)
	}
	return tables, nil
}

func (r *tableRepository) List(ctx context.Context) ([]model.Table, error) {
	return r.list(ctx, `SELECT `+tableColumns+` FROM tables ORDER BY table_number, id`)
}

func (r *tableRepository) ListByWaiter(ctx context.Context, waiterID uuid.UUID) ([]model.Table, error) {
	return r.list(ctx, `SELECT `+tableColumns+` FROM tables WHERE waiter_id = $1 ORDER BY table_number, id`, waiterID)
}

func (r *tableRepository) getOne(ctx context.Context, query string, id uuid.UUID) (*model.Table, error) {
	t, err := scanTable(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error().Err(err).Str("table_id", id.String()).Msg("failed to query table")
		return nil, fmt.Errorf("failed to query table: %w", err)
	}
	return t, nil
}

func (r *tableRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Table, error) {
	return r.getOne(ctx, `SELECT `+tableColumns+` FROM tables WHERE id = $1`, id)
}

func (r *tableRepository) FindOrderable(ctx context.Context, id uuid.UUID) (*model.Table, error) {
	return r.getOne(ctx, `
		SELECT `+tableColumns+`
		FROM tables
		WHERE id = $1 AND status <> 'OUT_OF_SERVICE' AND waiter_id IS NOT NULL
	`, id)
}

func (r *tableRepository) Update(ctx context.Context, t *model.Table) (bool, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE tables SET waiter_id = $2, location = $3, status = $4 WHERE id = $1`,
		t.ID, t.WaiterID, t.Location, t.Status,
	)
	if err != nil {
		r.logger.Error().Err(err).Str("table_id", t.ID.String()).Msg("failed to update table")
		return false, fmt.Errorf("failed to update table: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *tableRepository) CountExisting(ctx context.Context, ids []uuid.UUID) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	var n int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM tables WHERE id = ANY($1)`, ids).Scan(&n); err != nil {
		r.logger.Error().Err(err).Msg("failed to count tables")
		return 0, fmt.Errorf("failed to count tables: %w", err)
	}
	return n, nil
}

func (r *tableRepository) AssignWaiter(ctx context.Context, waiterID uuid.UUID, tableIDs []uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `UPDATE tables SET waiter_id = $1 WHERE id = ANY($2)`, waiterID, tableIDs)
	if err != nil {
		r.logger.Error().Err(err).Str("waiter_id", waiterID.String()).Msg("failed to assign tables")
		return fmt.Errorf("failed to assign tables: %w", err)
	}
	r.logger.Debug().
		Str("waiter_id", waiterID.String()).
		Int64("tables", tag.RowsAffected()).
		Msg("tables assigned")
	return nil
}
