package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/menu-interativo/back-end/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// reportRepository implements ReportRepository with aggregate SQL.
type reportRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewReportRepository creates a new PostgreSQL-backed report repository.
func NewReportRepository(pool *pgxpool.Pool, logger zerolog.Logger) ReportRepository {
	return &reportRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "report").Logger(),
	}
}

func (r *reportRepository) TotalSales(ctx context.Context) (decimal.Decimal, error) {
	var total decimal.Decimal
	if err := r.pool.QueryRow(ctx, `SELECT COALESCE(SUM(total), 0) FROM bills`).Scan(&total); err != nil {
		r.logger.Error().Err(err).Msg("failed to sum bills")
		return decimal.Zero, fmt.Errorf("failed to sum bills: %w", err)
	}
	return total, nil
}

func (r *reportRepository) BestDish(ctx context.Context) (*model.BestDish, error) {
	var best model.BestDish
	err := r.pool.QueryRow(ctx, `
		SELECT COALESCE(d.name, $1), SUM(oi.quantity)::BIGINT
		FROM order_items oi
		LEFT JOIN dishes d ON d.id = oi.dish_id
		GROUP BY oi.dish_id, d.name
		ORDER BY SUM(oi.quantity) DESC, oi.dish_id ASC
		LIMIT 1
	`, model.UnknownDish).Scan(&best.Name, &best.TotalSales)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error().Err(err).Msg("failed to query best dish")
		return nil, fmt.Errorf("failed to query best dish: %w", err)
	}
	return &best, nil
}

func (r *reportRepository) BestWaiter(ctx context.Context) (*model.BestWaiter, error) {
	var best model.BestWaiter
	err := r.pool.QueryRow(ctx, `
		SELECT COALESCE(u.name, $1), SUM(o.total)
		FROM orders o
		LEFT JOIN users u ON u.id = o.waiter_id
		GROUP BY o.waiter_id, u.name
		ORDER BY SUM(o.total) DESC, o.waiter_id ASC
		LIMIT 1
	`, model.UnknownWaiter).Scan(&best.Name, &best.TotalSales)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error().Err(err).Msg("failed to query best waiter")
		return nil, fmt.Errorf("failed to query best waiter: %w", err)
	}
	return &best, nil
}

// bucketExpr groups by the raw timestamp unless truncation is requested.
func bucketExpr(unit string, truncate bool) string {
	if truncate {
		return "date_trunc('" + unit + "', created_at)"
	}
	return "created_at"
}

func (r *reportRepository) PeakSales(ctx context.Context, since time.Time, truncate bool) (*model.SalesBucket, error) {
	query := `
		SELECT bucket, SUM(total)
		FROM (SELECT ` + bucketExpr("hour", truncate) + ` AS bucket, total FROM orders WHERE created_at >= $1) o
		GROUP BY bucket
		ORDER BY SUM(total) DESC, bucket ASC
		LIMIT 1
	`

	var b model.SalesBucket
	if err := r.pool.QueryRow(ctx, query, since).Scan(&b.At, &b.Total); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error().Err(err).Msg("failed to query peak sales")
		return nil, fmt.Errorf("failed to query peak sales: %w", err)
	}
	return &b, nil
}

func (r *reportRepository) BillSales(ctx context.Context, since time.Time, truncate bool) ([]model.SalesBucket, error) {
	query := `
		SELECT bucket, SUM(total)
		FROM (SELECT ` + bucketExpr("day", truncate) + ` AS bucket, total FROM bills WHERE created_at >= $1) b
		GROUP BY bucket
		ORDER BY SUM(total) DESC, bucket ASC
	`

	rows, err := r.pool.Query(ctx, query, since)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query bill sales")
		return nil, fmt.Errorf("failed to query bill sales: %w", err)
	}
	defer rows.Close()

	buckets := make([]model.SalesBucket, 0)
	for rows.Next() {
		var b model.SalesBucket
		if err := rows.Scan(&b.At, &b.Total); err != nil {
			return nil, fmt.Errorf("failed to scan bill sales: %w", err)
		}
		buckets = append(buckets, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating bill sales: %w", err)
	}
	return buckets, nil
}
