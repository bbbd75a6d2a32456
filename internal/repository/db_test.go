package repository

import (
	"context"
	"testing"
	"time"

	"github.com/menu-interativo/back-end/internal/database"
	"github.com/menu-interativo/back-end/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// setupTestDB creates a PostgreSQL testcontainer with the service schema applied.
func setupTestDB(t *testing.T) *pgxpool.Pool {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}

	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("postgres"),
		postgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := database.Open(ctx, connStr, nil)
	require.NoError(t, err)
	require.NoError(t, database.EnsureSchema(ctx, pool))

	t.Cleanup(func() {
		pool.Close()
		_ = pgContainer.Terminate(ctx)
	})

	return pool
}

func seedUser(t *testing.T, pool *pgxpool.Pool, name string, role model.Role) model.User {
	t.Helper()
	u := model.User{
		ID:                 uuid.New(),
		Name:               name,
		Email:              uuid.NewString()[:8] + "@example.com",
		RegistrationNumber: uuid.NewString()[:6],
		PasswordHash:       "hash",
		Role:               role,
		CreatedAt:          time.Now(),
	}
	_, err := pool.Exec(context.Background(),
		`INSERT INTO users (id, name, email, registration_number, password_hash, role, created_at) VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		u.ID, u.Name, u.Email, u.RegistrationNumber, u.PasswordHash, u.Role, u.CreatedAt)
	require.NoError(t, err)
	return u
}

func seedTable(t *testing.T, pool *pgxpool.Pool, number int, status model.TableStatus, waiterID *uuid.UUID) model.Table {
	t.Helper()
	tbl := model.Table{ID: uuid.New(), TableNumber: number, Status: status, WaiterID: waiterID, CreatedAt: time.Now()}
	_, err := pool.Exec(context.Background(),
		`INSERT INTO tables (id, table_number, status, waiter_id, created_at) VALUES ($1,$2,$3,$4,$5)`,
		tbl.ID, tbl.TableNumber, tbl.Status, tbl.WaiterID, tbl.CreatedAt)
	require.NoError(t, err)
	return tbl
}

func seedDish(t *testing.T, pool *pgxpool.Pool, name, price string, stock int, category model.DishCategory) model.Dish {
	t.Helper()
	d := model.Dish{
		ID:          uuid.New(),
		Slug:        name,
		Name:        name,
		Description: "tasty",
		Category:    category,
		Price:       decimal.RequireFromString(price),
		Stock:       stock,
		CreatedAt:   time.Now(),
	}
	_, err := pool.Exec(context.Background(),
		`INSERT INTO dishes (id, slug, name, description, category, price, stock, created_at) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		d.ID, d.Slug, d.Name, d.Description, d.Category, d.Price, d.Stock, d.CreatedAt)
	require.NoError(t, err)
	return d
}

func seedCustomization(t *testing.T, pool *pgxpool.Pool, name, price string, dishID *uuid.UUID) model.Customization {
	t.Helper()
	c := model.Customization{ID: uuid.New(), Name: name, Price: decimal.RequireFromString(price), DishID: dishID, CreatedAt: time.Now()}
	_, err := pool.Exec(context.Background(),
		`INSERT INTO customizations (id, name, price, dish_id, created_at) VALUES ($1,$2,$3,$4,$5)`,
		c.ID, c.Name, c.Price, c.DishID, c.CreatedAt)
	require.NoError(t, err)
	return c
}

func stockOf(t *testing.T, pool *pgxpool.Pool, dishID uuid.UUID) int {
	t.Helper()
	var stock int
	require.NoError(t, pool.QueryRow(context.Background(), `SELECT stock FROM dishes WHERE id = $1`, dishID).Scan(&stock))
	return stock
}
