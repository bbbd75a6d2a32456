package repository

import (
	"context"
	"fmt"

	"github.com/menu-interativo/back-end/internal/model"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

type reviewRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewReviewRepository creates a new PostgreSQL-backed review repository.
func NewReviewRepository(pool *pgxpool.Pool, logger zerolog.Logger) ReviewRepository {
	return &reviewRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "review").Logger(),
	}
}

func (r *reviewRepository) Create(ctx context.Context, rv *model.Review) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO reviews (id, rating, category, comment, created_at) VALUES ($1, $2, $3, $4, $5)`,
		rv.ID, rv.Rating, rv.Category, rv.Comment, rv.CreatedAt,
	)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to create review")
		return fmt.Errorf("failed to create review: %w", err)
	}
	return nil
}

func (r *reviewRepository) List(ctx context.Context) ([]model.Review, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, rating, category, comment, created_at FROM reviews ORDER BY created_at, id`)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query reviews")
		return nil, fmt.Errorf("failed to query reviews: %w", err)
	}
	defer rows.Close()

	reviews := make([]model.Review, 0)
	for rows.Next() {
		var rv model.Review
		if err := rows.Scan(&rv.ID, &rv.Rating, &rv.Category, &rv.Comment, &rv.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan review: %w", err)
		}
		reviews = append(reviews, rv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating reviews: %w", err)
	}
	return reviews, nil
}
