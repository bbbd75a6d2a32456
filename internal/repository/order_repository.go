package repository

import (
	"context"
	"fmt"

	"github.com/menu-interativo/back-end/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// orderRepository implements the OrderRepository interface using PostgreSQL.
type orderRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewOrderRepository creates a new PostgreSQL-backed order repository.
func NewOrderRepository(pool *pgxpool.Pool, logger zerolog.Logger) OrderRepository {
	return &orderRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "order").Logger(),
	}
}

// BeginTx starts a new database transaction.
func (r *orderRepository) BeginTx(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to begin transaction")
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return tx, nil
}

// NextOrderNumber draws from order_number_seq, which never hands out the same value twice.
func (r *orderRepository) NextOrderNumber(ctx context.Context, tx pgx.Tx) (int64, error) {
	var n int64
	if err := tx.QueryRow(ctx, `SELECT nextval('order_number_seq')`).Scan(&n); err != nil {
		r.logger.Error().Err(err).Msg("failed to draw order number")
		return 0, fmt.Errorf("failed to draw order number: %w", err)
	}
	return n, nil
}

// CreateOrder inserts a new order within the provided transaction.
func (r *orderRepository) CreateOrder(ctx context.Context, tx pgx.Tx, order *model.Order) error {
	query := `
		INSERT INTO orders (id, order_number, table_id, waiter_id, total, session_id, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := tx.Exec(ctx, query,
		order.ID, order.OrderNumber, order.TableID, order.WaiterID,
		order.Total, order.SessionID, order.Status, order.CreatedAt,
	)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("order_id", order.ID.String()).
			Msg("failed to create order")
		return fmt.Errorf("failed to create order: %w", err)
	}

	r.logger.Debug().
		Str("order_id", order.ID.String()).
		Str("order_number", order.OrderNumber).
		Msg("order created successfully")

	return nil
}

// CreateOrderItems inserts order items and their customizations in a single batch.
func (r *orderRepository) CreateOrderItems(ctx context.Context, tx pgx.Tx, items []model.OrderItem) error {
	if len(items) == 0 {
		return nil
	}

	itemQuery := `
		INSERT INTO order_items (id, order_id, dish_id, quantity, price)
		VALUES ($1, $2, $3, $4, $5)
	`
	customizationQuery := `
		INSERT INTO order_item_customizations (id, order_item_id, customization_id, quantity, price)
		VALUES ($1, $2, $3, $4, $5)
	`

	batch := &pgx.Batch{}
	queued := 0
	for _, item := range items {
		batch.Queue(itemQuery, item.ID, item.OrderID, item.DishID, item.Quantity, item.Price)
		queued++
		for _, c := range item.Customizations {
			batch.Queue(customizationQuery, c.ID, c.OrderItemID, c.CustomizationID, c.Quantity, c.Price)
			queued++
		}
	}

	results := tx.SendBatch(ctx, batch)
	defer results.Close()

	for i := 0; i < queued; i++ {
		if _, err := results.Exec(); err != nil {
			r.logger.Error().
				Err(err).
				Str("order_id", items[0].OrderID.String()).
				Int("statement", i).
				Msg("failed to create order item")
			return fmt.Errorf("failed to create order item: %w", err)
		}
	}

	r.logger.Debug().
		Int("items", len(items)).
		Int("statements", queued).
		Msg("order items created successfully")

	return nil
}

const orderColumns = `o.id, o.order_number, o.table_id, o.waiter_id, o.total, o.session_id, o.status, o.bill_id, o.created_at`

func (r *orderRepository) list(ctx context.Context, query string, args ...any) ([]model.Order, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query orders")
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	orders := make([]model.Order, 0)
	for rows.Next() {
		var o model.Order
		err := rows.Scan(&o.ID, &o.OrderNumber, &o.TableID, &o.WaiterID, &o.Total, &o.SessionID, &o.Status, &o.BillID, &o.CreatedAt)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan order row")
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		o.Items = []model.OrderItem{}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating order rows")
		return nil, fmt.Errorf("error iterating orders: %w", err)
	}
	rows.Close()

	if err := loadItems(ctx, r.pool, orders); err != nil {
		r.logger.Error().Err(err).Msg("failed to load order items")
		return nil, err
	}
	return orders, nil
}

func (r *orderRepository) List(ctx context.Context) ([]model.Order, error) {
	return r.list(ctx, `SELECT `+orderColumns+` FROM orders o ORDER BY o.created_at DESC, o.id`)
}

func (r *orderRepository) ListBySession(ctx context.Context, sessionID string) ([]model.Order, error) {
	return r.list(ctx, `SELECT `+orderColumns+` FROM orders o WHERE o.session_id = $1 ORDER BY o.created_at DESC, o.id`, sessionID)
}

func (r *orderRepository) ListByTable(ctx context.Context, tableID uuid.UUID) ([]model.Order, error) {
	return r.list(ctx, `SELECT `+orderColumns+` FROM orders o WHERE o.table_id = $1 ORDER BY o.created_at DESC, o.id`, tableID)
}

func (r *orderRepository) ListCurrentByTable(ctx context.Context, tableID uuid.UUID) ([]model.Order, error) {
	return r.list(ctx, `
		SELECT `+orderColumns+`
		FROM orders o
		LEFT JOIN bills b ON b.id = o.bill_id
		WHERE o.table_id = $1 AND (o.bill_id IS NULL OR b.status = 'PENDING')
		ORDER BY o.created_at DESC, o.id
	`, tableID)
}

func (r *orderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.OrderStatus) (bool, error) {
	tag, err := r.pool.Exec(ctx, `UPDATE orders SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		r.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to update order status")
		return false, fmt.Errorf("failed to update order status: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// loadItems fills Items of every order with two queries regardless of the number of orders.
func loadItems(ctx context.Context, q querier, orders []model.Order) error {
	if len(orders) == 0 {
		return nil
	}

	orderIdx := make(map[uuid.UUID]int, len(orders))
	orderIDs := make([]uuid.UUID, len(orders))
	for i, o := range orders {
		orderIdx[o.ID] = i
		orderIDs[i] = o.ID
	}

	rows, err := q.Query(ctx, `
		SELECT id, order_id, dish_id, quantity, price
		FROM order_items
		WHERE order_id = ANY($1)
		ORDER BY order_id, id
	`, orderIDs)
	if err != nil {
		return fmt.Errorf("failed to query order items: %w", err)
	}

	type itemRef struct{ order, item int }
	itemIdx := make(map[uuid.UUID]itemRef)
	var itemIDs []uuid.UUID
	for rows.Next() {
		var it model.OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.DishID, &it.Quantity, &it.Price); err != nil {
			rows.Close()
			return fmt.Errorf("failed to scan order item: %w", err)
		}
		it.Customizations = []model.OrderItemCustomization{}
		oi := orderIdx[it.OrderID]
		orders[oi].Items = append(orders[oi].Items, it)
		itemIdx[it.ID] = itemRef{order: oi, item: len(orders[oi].Items) - 1}
		itemIDs = append(itemIDs, it.ID)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating order items: %w", err)
	}
	if len(itemIDs) == 0 {
		return nil
	}

	rows, err = q.Query(ctx, `
		SELECT id, order_item_id, customization_id, quantity, price
		FROM order_item_customizations
		WHERE order_item_id = ANY($1)
		ORDER BY order_item_id, id
	`, itemIDs)
	if err != nil {
		return fmt.Errorf("failed to query order item customizations: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var c model.OrderItemCustomization
		if err := rows.Scan(&c.ID, &c.OrderItemID, &c.CustomizationID, &c.Quantity, &c.Price); err != nil {
			return fmt.Errorf("failed to scan order item customization: %w", err)
		}
		ref := itemIdx[c.OrderItemID]
		item := &orders[ref.order].Items[ref.item]
		item.Customizations = append(item.Customizations, c)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating order item customizations: %w", err)
	}
	return nil
}
