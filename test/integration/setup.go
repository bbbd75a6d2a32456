package integration

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/menu-interativo/back-end/internal/auth"
	"github.com/menu-interativo/back-end/internal/database"
	"github.com/menu-interativo/back-end/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestDB represents a test database instance.
type TestDB struct {
	Container *postgres.PostgresContainer
	Pool      *pgxpool.Pool
	ConnStr   string
}

// SetupTestDB creates a PostgreSQL test container with the service schema applied.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	ctx := context.Background()

	postgresContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	pool, err := database.Open(ctx, connStr, nil)
	if err != nil {
		t.Fatalf("failed to create connection pool: %v", err)
	}

	if err := database.EnsureSchema(ctx, pool); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	t.Cleanup(func() {
		pool.Close()
		if err := postgresContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	return &TestDB{
		Container: postgresContainer,
		Pool:      pool,
		ConnStr:   connStr,
	}
}

// Fixture is the restaurant every API test starts from: one admin, one waiter
// serving table 1, and a dish with a single customization.
type Fixture struct {
	Admin         model.User
	AdminPassword string
	Waiter        model.User
	Table         model.Table
	Dish          model.Dish
	Customization model.Customization
}

// SeedRestaurant inserts the standard fixture.
func SeedRestaurant(t *testing.T, pool *pgxpool.Pool) Fixture {
	t.Helper()

	ctx := context.Background()
	f := Fixture{AdminPassword: "admin-password"}

	hash, err := auth.HashPassword(f.AdminPassword, 4)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	users := []*model.User{&f.Admin, &f.Waiter}
	seeds := []struct {
		name, email, registration string
		role                      model.Role
	}{
		{"Admin", "admin@example.com", "A-001", model.RoleAdmin},
		{"Ana", "ana@example.com", "W-001", model.RoleWaiter},
	}
	for i, s := range seeds {
		*users[i] = model.User{
			ID:                 uuid.New(),
			Name:               s.name,
			Email:              s.email,
			RegistrationNumber: s.registration,
			PasswordHash:       hash,
			Role:               s.role,
		}
		_, err := pool.Exec(ctx,
			"INSERT INTO users (id, name, email, registration_number, password_hash, role) VALUES ($1, $2, $3, $4, $5, $6)",
			users[i].ID, s.name, s.email, s.registration, hash, s.role,
		)
		if err != nil {
			t.Fatalf("failed to seed user %s: %v", s.name, err)
		}
	}

	f.Table = model.Table{ID: uuid.New(), TableNumber: 1, Status: model.TableAvailable, WaiterID: &f.Waiter.ID}
	if _, err := pool.Exec(ctx,
		"INSERT INTO tables (id, table_number, status, waiter_id) VALUES ($1, $2, $3, $4)",
		f.Table.ID, f.Table.TableNumber, f.Table.Status, f.Table.WaiterID,
	); err != nil {
		t.Fatalf("failed to seed table: %v", err)
	}

	f.Dish = model.Dish{
		ID:          uuid.New(),
		Slug:        "x-burger",
		Name:        "X-Burger",
		Description: "House burger",
		Category:    model.CategoryMainCourse,
		Price:       decimal.RequireFromString("10.00"),
		Stock:       5,
	}
	if _, err := pool.Exec(ctx,
		"INSERT INTO dishes (id, slug, name, description, category, price, stock) VALUES ($1, $2, $3, $4, $5, $6, $7)",
		f.Dish.ID, f.Dish.Slug, f.Dish.Name, f.Dish.Description, f.Dish.Category, f.Dish.Price, f.Dish.Stock,
	); err != nil {
		t.Fatalf("failed to seed dish: %v", err)
	}

	f.Customization = model.Customization{ID: uuid.New(), Name: "bacon", Price: decimal.RequireFromString("2.00"), DishID: &f.Dish.ID}
	if _, err := pool.Exec(ctx,
		"INSERT INTO customizations (id, name, price, dish_id) VALUES ($1, $2, $3, $4)",
		f.Customization.ID, f.Customization.Name, f.Customization.Price, f.Customization.DishID,
	); err != nil {
		t.Fatalf("failed to seed customization: %v", err)
	}

	return f
}

// DishStock reads the current stock of a dish.
func DishStock(t *testing.T, pool *pgxpool.Pool, dishID uuid.UUID) int {
	t.Helper()

	var stock int
	if err := pool.QueryRow(context.Background(), "SELECT stock FROM dishes WHERE id = $1", dishID).Scan(&stock); err != nil {
		t.Fatalf("failed to read stock: %v", err)
	}
	return stock
}

// CleanupDB cleans all data from test tables.
func CleanupDB(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()

	tables := []string{
		"order_item_customizations", "order_items", "orders", "bills",
		"customizations", "dishes", "tables", "users", "reviews",
	}
	for _, table := range tables {
		_, err := pool.Exec(ctx, fmt.Sprintf("DELETE FROM %s", table))
		if err != nil {
			t.Logf("failed to clean table %s: %v", table, err)
		}
	}
}
