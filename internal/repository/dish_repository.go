package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/menu-interativo/back-end/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// dishRepository implements the DishRepository interface using PostgreSQL.
type dishRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewDishRepository creates a new PostgreSQL-backed dish repository.
func NewDishRepository(pool *pgxpool.Pool, logger zerolog.Logger) DishRepository {
	return &dishRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "dish").Logger(),
	}
}

const dishColumns = `id, slug, name, description, category, price, stock, image_url, created_at`

func scanDish(row pgx.Row) (*model.Dish, error) {
	var d model.Dish
	err := row.Scan(&d.ID, &d.Slug, &d.Name, &d.Description, &d.Category, &d.Price, &d.Stock, &d.ImageURL, &d.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *dishRepository) Create(ctx context.Context, d *model.Dish) error {
	query := `
		INSERT INTO dishes (id, slug, name, description, category, price, stock, image_url, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := r.pool.Exec(ctx, query, d.ID, d.Slug, d.Name, d.Description, d.Category, d.Price, d.Stock, d.ImageURL, d.CreatedAt)
	if err != nil {
		if _, ok := uniqueViolationOn(err); ok {
			return model.ErrDishExists
		}
		r.logger.Error().Err(err).Str("slug", d.Slug).Msg("failed to create dish")
		return fmt.Errorf("failed to create dish: %w", err)
	}

	r.logger.Debug().Str("dish_id", d.ID.String()).Str("slug", d.Slug).Msg("dish created successfully")
	return nil
}

func (r *dishRepository) GetBySlug(ctx context.Context, slug string) (*model.Dish, error) {
	d, err := scanDish(r.pool.QueryRow(ctx, `SELECT `+dishColumns+` FROM dishes WHERE slug = $1`, slug))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Str("slug", slug).Msg("dish not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("slug", slug).Msg("failed to query dish")
		return nil, fmt.Errorf("failed to query dish: %w", err)
	}
	return d, nil
}

func (r *dishRepository) list(ctx context.Context, query string, args ...any) ([]model.Dish, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query dishes")
		return nil, fmt.Errorf("failed to query dishes: %w", err)
	}
	defer rows.Close()

	dishes := make([]model.Dish, 0)
	for rows.Next() {
		d, err := scanDish(rows)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan dish row")
			return nil, fmt.Errorf("failed to scan dish: %w", err)
		}
		dishes = append(dishes, *d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating dishes: %w", err)
	}
	return dishes, nil
}

func (r *dishRepository) List(ctx context.Context) ([]model.Dish, error) {
	return r.list(ctx, `SELECT `+dishColumns+` FROM dishes ORDER BY name, id`)
}

func (r *dishRepository) ListAvailableByCategory(ctx context.Context, category model.DishCategory) ([]model.Dish, error) {
	return r.list(ctx, `
		SELECT `+dishColumns+`
		FROM dishes
		WHERE category = $1 AND stock > 0
		ORDER BY name, id
	`, category)
}

func (r *dishRepository) GetWithCustomizations(ctx context.Context, ids []uuid.UUID) ([]model.DishWithCustomizations, error) {
	if len(ids) == 0 {
		return []model.DishWithCustomizations{}, nil
	}

	query := `
		SELECT d.id, d.slug, d.name, d.description, d.category, d.price, d.stock, d.image_url, d.created_at,
		       c.id, c.name, c.price, c.created_at
		FROM dishes d
		LEFT JOIN customizations c ON c.dish_id = d.id
		WHERE d.id = ANY($1)
		ORDER BY d.id, c.created_at, c.id
	`

	rows, err := r.pool.Query(ctx, query, ids)
	if err != nil {
		r.logger.Error().Err(err).Int("count", len(ids)).Msg("failed to query dishes by IDs")
		return nil, fmt.Errorf("failed to query dishes by IDs: %w", err)
	}
	defer rows.Close()

	result := make([]model.DishWithCustomizations, 0, len(ids))
	for rows.Next() {
		var (
			d          model.Dish
			cID        *uuid.UUID
			cName      *string
			cPrice     decimal.NullDecimal
			cCreatedAt *time.Time
		)
		err := rows.Scan(&d.ID, &d.Slug, &d.Name, &d.Description, &d.Category, &d.Price, &d.Stock, &d.ImageURL, &d.CreatedAt,
			&cID, &cName, &cPrice, &cCreatedAt)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan dish row")
			return nil, fmt.Errorf("failed to scan dish: %w", err)
		}

		if n := len(result); n == 0 || result[n-1].ID != d.ID {
			result = append(result, model.DishWithCustomizations{Dish: d, Customizations: []model.Customization{}})
		}
		if cID != nil {
			last := &result[len(result)-1]
			dishID := d.ID
			last.Customizations = append(last.Customizations, model.Customization{
				ID:        *cID,
				Name:      *cName,
				Price:     cPrice.Decimal,
				DishID:    &dishID,
				CreatedAt: *cCreatedAt,
			})
		}
	}
	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating dish rows")
		return nil, fmt.Errorf("error iterating dishes: %w", err)
	}

	r.logger.Debug().
		Int("requested", len(ids)).
		Int("found", len(result)).
		Msg("dishes retrieved by IDs")

	return result, nil
}

func (r *dishRepository) CreateCustomization(ctx context.Context, c *model.Customization) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO customizations (id, name, price, dish_id, created_at) VALUES ($1, $2, $3, $4, $5)`,
		c.ID, c.Name, c.Price, c.DishID, c.CreatedAt,
	)
	if err != nil {
		r.logger.Error().Err(err).Str("customization_id", c.ID.String()).Msg("failed to create customization")
		return fmt.Errorf("failed to create customization: %w", err)
	}
	return nil
}

func (r *dishRepository) AttachCustomizations(ctx context.Context, dishID uuid.UUID, customizationIDs []uuid.UUID) (int64, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE customizations SET dish_id = $1 WHERE id = ANY($2)`,
		dishID, customizationIDs,
	)
	if err != nil {
		r.logger.Error().Err(err).Str("dish_id", dishID.String()).Msg("failed to attach customizations")
		return 0, fmt.Errorf("failed to attach customizations: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (r *dishRepository) UpdateImage(ctx context.Context, slug, imageURL string) (bool, error) {
	tag, err := r.pool.Exec(ctx, `UPDATE dishes SET image_url = $2 WHERE slug = $1`, slug, imageURL)
	if err != nil {
		r.logger.Error().Err(err).Str("slug", slug).Msg("failed to update dish image")
		return false, fmt.Errorf("failed to update dish image: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *dishRepository) DecrementStock(ctx context.Context, tx pgx.Tx, dishID uuid.UUID, qty int) (bool, error) {
	tag, err := tx.Exec(ctx,
		`UPDATE dishes SET stock = stock - $2 WHERE id = $1 AND stock >= $2`,
		dishID, qty,
	)
	if err != nil {
		r.logger.Error().Err(err).Str("dish_id", dishID.String()).Int("quantity", qty).Msg("failed to decrement stock")
		return false, fmt.Errorf("failed to decrement stock: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}
