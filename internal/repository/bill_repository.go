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
	"github.com/shopspring/decimal"
)

// billRepository implements the BillRepository interface using PostgreSQL.
type billRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewBillRepository creates a new PostgreSQL-backed bill repository.
func NewBillRepository(pool *pgxpool.Pool, logger zerolog.Logger) BillRepository {
	return &billRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "bill").Logger(),
	}
}

func (r *billRepository) BeginTx(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to begin transaction")
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return tx, nil
}

func (r *billRepository) LockUnbilledOrders(ctx context.Context, tx pgx.Tx, tableID uuid.UUID) ([]uuid.UUID, decimal.Decimal, error) {
	rows, err := tx.Query(ctx, `
		SELECT id, total
		FROM orders
		WHERE table_id = $1 AND bill_id IS NULL AND status <> 'CANCELED'
		ORDER BY created_at, id
		FOR UPDATE
	`, tableID)
	if err != nil {
		r.logger.Error().Err(err).Str("table_id", tableID.String()).Msg("failed to lock unbilled orders")
		return nil, decimal.Zero, fmt.Errorf("failed to lock unbilled orders: %w", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	total := decimal.Zero
	for rows.Next() {
		var (
			id  uuid.UUID
			sub decimal.Decimal
		)
		if err := rows.Scan(&id, &sub); err != nil {
			return nil, decimal.Zero, fmt.Errorf("failed to scan order: %w", err)
		}
		ids = append(ids, id)
		total = total.Add(sub)
	}
	if err := rows.Err(); err != nil {
		return nil, decimal.Zero, fmt.Errorf("error iterating orders: %w", err)
	}
	return ids, total, nil
}

func (r *billRepository) Create(ctx context.Context, tx pgx.Tx, b *model.Bill) error {
	_, err := tx.Exec(ctx,
		`INSERT INTO bills (id, table_id, total, status, created_at) VALUES ($1, $2, $3, $4, $5)`,
		b.ID, b.TableID, b.Total, b.Status, b.CreatedAt,
	)
	if err != nil {
		r.logger.Error().Err(err).Str("bill_id", b.ID.String()).Msg("failed to create bill")
		return fmt.Errorf("failed to create bill: %w", err)
	}
	return nil
}

func (r *billRepository) AttachOrders(ctx context.Context, tx pgx.Tx, billID uuid.UUID, orderIDs []uuid.UUID) error {
	if _, err := tx.Exec(ctx, `UPDATE orders SET bill_id = $1 WHERE id = ANY($2)`, billID, orderIDs); err != nil {
		r.logger.Error().Err(err).Str("bill_id", billID.String()).Msg("failed to attach orders to bill")
		return fmt.Errorf("failed to attach orders to bill: %w", err)
	}
	return nil
}

func (r *billRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Bill, error) {
	var b model.Bill
	err := r.pool.QueryRow(ctx,
		`SELECT id, table_id, total, status, created_at FROM bills WHERE id = $1`, id,
	).Scan(&b.ID, &b.TableID, &b.Total, &b.Status, &b.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error().Err(err).Str("bill_id", id.String()).Msg("failed to query bill")
		return nil, fmt.Errorf("failed to query bill: %w", err)
	}
	return &b, nil
}

func (r *billRepository) TransitionStatus(ctx context.Context, id uuid.UUID, from, to model.BillStatus) (bool, error) {
	tag, err := r.pool.Exec(ctx, `UPDATE bills SET status = $3 WHERE id = $1 AND status = $2`, id, from, to)
	if err != nil {
		r.logger.Error().Err(err).Str("bill_id", id.String()).Msg("failed to update bill status")
		return false, fmt.Errorf("failed to update bill status: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}
