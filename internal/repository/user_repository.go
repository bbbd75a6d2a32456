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

// userRepository implements the UserRepository interface using PostgreSQL.
type userRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewUserRepository creates a new PostgreSQL-backed user repository.
func NewUserRepository(pool *pgxpool.Pool, logger zerolog.Logger) UserRepository {
	return &userRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "user").Logger(),
	}
}

const userColumns = `id, name, email, registration_number, password_hash, role, avatar_url, created_at`

func scanUser(row pgx.Row) (*model.User, error) {
	var u model.User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.RegistrationNumber, &u.PasswordHash, &u.Role, &u.AvatarURL, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) FindRole(ctx context.Context, id uuid.UUID) (model.Role, bool, error) {
	var role model.Role
	err := r.pool.QueryRow(ctx, `SELECT role FROM users WHERE id = $1`, id).Scan(&role)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", false, nil
		}
		r.logger.Error().Err(err).Str("user_id", id.String()).Msg("failed to query role")
		return "", false, fmt.Errorf("failed to query role: %w", err)
	}
	return role, true, nil
}

func (r *userRepository) Create(ctx context.Context, u *model.User) error {
	query := `
		INSERT INTO users (id, name, email, registration_number, password_hash, role, avatar_url, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.pool.Exec(ctx, query, u.ID, u.Name, u.Email, u.RegistrationNumber, u.PasswordHash, u.Role, u.AvatarURL, u.CreatedAt)
	if err != nil {
		if constraint, ok := uniqueViolationOn(err); ok {
			if constraint == "users_registration_number_key" {
				return model.ErrRegistrationInUse
			}
			return model.ErrEmailInUse
		}
		r.logger.Error().Err(err).Str("user_id", u.ID.String()).Msg("failed to create user")
		return fmt.Errorf("failed to create user: %w", err)
	}

	r.logger.Debug().Str("user_id", u.ID.String()).Msg("user created successfully")
	return nil
}

func (r *userRepository) getOne(ctx context.Context, where string, arg any) (*model.User, error) {
	u, err := scanUser(r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE `+where, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error().Err(err).Msg("failed to query user")
		return nil, fmt.Errorf("failed to query user: %w", err)
	}
	return u, nil
}

func (r *userRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	return r.getOne(ctx, "id = $1", id)
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.getOne(ctx, "email = $1", email)
}

func (r *userRepository) GetByRegistrationNumber(ctx context.Context, registrationNumber string) (*model.User, error) {
	return r.getOne(ctx, "registration_number = $1", registrationNumber)
}

func (r *userRepository) List(ctx context.Context) ([]model.User, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY name, id`)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query users")
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	users := make([]model.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating users: %w", err)
	}
	return users, nil
}

func (r *userRepository) Update(ctx context.Context, u *model.User) (bool, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE users SET name = $2, avatar_url = $3, role = $4 WHERE id = $1`,
		u.ID, u.Name, u.AvatarURL, u.Role,
	)
	if err != nil {
		r.logger.Error().Err(err).Str("user_id", u.ID.String()).Msg("failed to update user")
		return false, fmt.Errorf("failed to update user: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *userRepository) UpdateAvatar(ctx context.Context, id uuid.UUID, avatarURL string) (bool, error) {
	tag, err := r.pool.Exec(ctx, `UPDATE users SET avatar_url = $2 WHERE id = $1`, id, avatarURL)
	if err != nil {
		r.logger.Error().Err(err).Str("user_id", id.String()).Msg("failed to update avatar")
		return false, fmt.Errorf("failed to update avatar: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}
