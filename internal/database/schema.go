package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Schema is the relational model of the service. Every statement is idempotent.
const Schema = `
CREATE TABLE IF NOT EXISTS users (
	id                  UUID PRIMARY KEY,
	name                TEXT NOT NULL,
	email               TEXT NOT NULL UNIQUE,
	registration_number TEXT NOT NULL UNIQUE,
	password_hash       TEXT NOT NULL,
	role                TEXT NOT NULL DEFAULT 'WAITER',
	avatar_url          TEXT,
	created_at          TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS tables (
	id           UUID PRIMARY KEY,
	table_number INTEGER NOT NULL,
	location     TEXT,
	status       TEXT NOT NULL DEFAULT 'AVAILABLE',
	waiter_id    UUID REFERENCES users(id) ON DELETE SET NULL,
	created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_tables_waiter_id ON tables(waiter_id);

CREATE TABLE IF NOT EXISTS dishes (
	id          UUID PRIMARY KEY,
	slug        TEXT NOT NULL UNIQUE,
	name        TEXT NOT NULL,
	description TEXT NOT NULL,
	category    TEXT NOT NULL,
	price       NUMERIC(10,2) NOT NULL CHECK (price > 0),
	stock       INTEGER NOT NULL,
	image_url   TEXT,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_dishes_category ON dishes(category);

CREATE TABLE IF NOT EXISTS customizations (
	id         UUID PRIMARY KEY,
	name       TEXT NOT NULL,
	price      NUMERIC(10,2) NOT NULL CHECK (price > 0),
	dish_id    UUID REFERENCES dishes(id) ON DELETE SET NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_customizations_dish_id ON customizations(dish_id);

CREATE TABLE IF NOT EXISTS bills (
	id         UUID PRIMARY KEY,
	table_id   UUID NOT NULL REFERENCES tables(id),
	total      NUMERIC(10,2) NOT NULL,
	status     TEXT NOT NULL DEFAULT 'PENDING',
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE SEQUENCE IF NOT EXISTS order_number_seq;

CREATE TABLE IF NOT EXISTS orders (
	id           UUID PRIMARY KEY,
	order_number TEXT NOT NULL UNIQUE,
	table_id     UUID NOT NULL REFERENCES tables(id),
	waiter_id    UUID NOT NULL REFERENCES users(id),
	total        NUMERIC(10,2) NOT NULL CHECK (total > 0),
	session_id   TEXT NOT NULL,
	status       TEXT NOT NULL DEFAULT 'PENDING',
	bill_id      UUID REFERENCES bills(id),
	created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_orders_session_id ON orders(session_id);
CREATE INDEX IF NOT EXISTS idx_orders_table_id ON orders(table_id);
CREATE INDEX IF NOT EXISTS idx_orders_created_at ON orders(created_at DESC);

CREATE TABLE IF NOT EXISTS order_items (
	id       UUID PRIMARY KEY,
	order_id UUID NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
	dish_id  UUID NOT NULL REFERENCES dishes(id),
	quantity INTEGER NOT NULL CHECK (quantity > 0),
	price    NUMERIC(10,2) NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_order_items_order_id ON order_items(order_id);

CREATE TABLE IF NOT EXISTS order_item_customizations (
	id               UUID PRIMARY KEY,
	order_item_id    UUID NOT NULL REFERENCES order_items(id) ON DELETE CASCADE,
	customization_id UUID NOT NULL REFERENCES customizations(id),
	quantity         INTEGER NOT NULL CHECK (quantity > 0),
	price            NUMERIC(10,2) NOT NULL
);

CREATE TABLE IF NOT EXISTS reviews (
	id         UUID PRIMARY KEY,
	rating     SMALLINT NOT NULL CHECK (rating IN (1, 2)),
	category   TEXT NOT NULL,
	comment    TEXT,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
`

// EnsureSchema creates any missing tables, indexes and sequences.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}

// Tables lists every table created by Schema.
var Tables = []string{
	"users", "tables", "dishes", "customizations", "bills",
	"orders", "order_items", "order_item_customizations", "reviews",
}

// MissingTables returns the entries of Tables absent from the public schema.
func MissingTables(ctx context.Context, pool *pgxpool.Pool) ([]string, error) {
	rows, err := pool.Query(ctx, `
		SELECT table_name FROM information_schema.tables
		WHERE table_schema = 'public' AND table_name = ANY($1)`, Tables)
	if err != nil {
		return nil, fmt.Errorf("failed to list tables: %w", err)
	}
	defer rows.Close()

	present := make(map[string]bool, len(Tables))
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan table name: %w", err)
		}
		present[name] = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list tables: %w", err)
	}

	var missing []string
	for _, t := range Tables {
		if !present[t] {
			missing = append(missing, t)
		}
	}
	return missing, nil
}
