package repository

import (
	"context"
	"time"

	"github.com/menu-interativo/back-end/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// UserRepository defines the interface for user data access operations.
type UserRepository interface {
	// FindRole returns the user's current role, found=false when the user does not exist.
	FindRole(ctx context.Context, id uuid.UUID) (model.Role, bool, error)

	Create(ctx context.Context, user *model.User) error

	// GetByID returns nil when the user does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByRegistrationNumber(ctx context.Context, registrationNumber string) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)

	// Update writes name, avatar and role. It reports whether the user exists.
	Update(ctx context.Context, user *model.User) (bool, error)
	UpdateAvatar(ctx context.Context, id uuid.UUID, avatarURL string) (bool, error)
}

// TableRepository defines the interface for table data access operations.
type TableRepository interface {
	Create(ctx context.Context, table *model.Table) error
	List(ctx context.Context) ([]model.Table, error)
	ListByWaiter(ctx context.Context, waiterID uuid.UUID) ([]model.Table, error)

	// GetByID returns nil when the table does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Table, error)

	// FindOrderable returns the table only if it is in service and has a waiter.
	FindOrderable(ctx context.Context, id uuid.UUID) (*model.Table, error)

	// Update writes waiter, location and status. It reports whether the table exists.
	Update(ctx context.Context, table *model.Table) (bool, error)

	// CountExisting counts how many of ids exist.
	CountExisting(ctx context.Context, ids []uuid.UUID) (int, error)
	AssignWaiter(ctx context.Context, waiterID uuid.UUID, tableIDs []uuid.UUID) error
}

// DishRepository defines the interface for dish and customization data access operations.
type DishRepository interface {
	// Create inserts a dish. A duplicate slug yields model.ErrDishExists.
	Create(ctx context.Context, dish *model.Dish) error
	GetBySlug(ctx context.Context, slug string) (*model.Dish, error)
	List(ctx context.Context) ([]model.Dish, error)
	ListAvailableByCategory(ctx context.Context, category model.DishCategory) ([]model.Dish, error)

	// GetWithCustomizations loads the dishes matching ids and their customization sets in one round trip.
	GetWithCustomizations(ctx context.Context, ids []uuid.UUID) ([]model.DishWithCustomizations, error)

	CreateCustomization(ctx context.Context, c *model.Customization) error

	// AttachCustomizations links customizations to a dish and returns how many were linked.
	AttachCustomizations(ctx context.Context, dishID uuid.UUID, customizationIDs []uuid.UUID) (int64, error)
	UpdateImage(ctx context.Context, slug, imageURL string) (bool, error)

	// DecrementStock lowers stock within tx. It returns false, leaving the row
	// untouched, when the dish is missing or holds fewer than qty units.
	DecrementStock(ctx context.Context, tx pgx.Tx, dishID uuid.UUID, qty int) (bool, error)
}

// OrderRepository defines the interface for order data access operations.
type OrderRepository interface {
	// BeginTx starts a new database transaction.
	BeginTx(ctx context.Context) (pgx.Tx, error)

	// NextOrderNumber draws the next value of the order number sequence.
	NextOrderNumber(ctx context.Context, tx pgx.Tx) (int64, error)

	// CreateOrder inserts a new order within the provided transaction.
	CreateOrder(ctx context.Context, tx pgx.Tx, order *model.Order) error

	// CreateOrderItems inserts order items and their customizations within the provided transaction.
	CreateOrderItems(ctx context.Context, tx pgx.Tx, items []model.OrderItem) error

	List(ctx context.Context) ([]model.Order, error)
	ListBySession(ctx context.Context, sessionID string) ([]model.Order, error)
	ListByTable(ctx context.Context, tableID uuid.UUID) ([]model.Order, error)

	// ListCurrentByTable returns the table's orders that are unbilled or whose bill is still pending.
	ListCurrentByTable(ctx context.Context, tableID uuid.UUID) ([]model.Order, error)

	UpdateStatus(ctx context.Context, id uuid.UUID, status model.OrderStatus) (bool, error)
}

// BillRepository defines the interface for bill data access operations.
type BillRepository interface {
	BeginTx(ctx context.Context) (pgx.Tx, error)

	// LockUnbilledOrders locks the table's unbilled, non-canceled orders and returns their ids and total.
	LockUnbilledOrders(ctx context.Context, tx pgx.Tx, tableID uuid.UUID) ([]uuid.UUID, decimal.Decimal, error)
	Create(ctx context.Context, tx pgx.Tx, bill *model.Bill) error
	AttachOrders(ctx context.Context, tx pgx.Tx, billID uuid.UUID, orderIDs []uuid.UUID) error

	GetByID(ctx context.Context, id uuid.UUID) (*model.Bill, error)

	// TransitionStatus moves a bill from one status to another and reports whether a row changed.
	TransitionStatus(ctx context.Context, id uuid.UUID, from, to model.BillStatus) (bool, error)
}

// ReviewRepository defines the interface for review data access operations.
type ReviewRepository interface {
	Create(ctx context.Context, review *model.Review) error

	// List returns all reviews oldest first.
	List(ctx context.Context) ([]model.Review, error)
}

// ReportRepository runs the read-only sales aggregates.
type ReportRepository interface {
	TotalSales(ctx context.Context) (decimal.Decimal, error)

	// BestDish returns nil when nothing was sold. Ties go to the lowest dish id.
	BestDish(ctx context.Context) (*model.BestDish, error)

	// BestWaiter returns nil when there are no orders. Ties go to the lowest waiter id.
	BestWaiter(ctx context.Context) (*model.BestWaiter, error)

	// PeakSales returns the order bucket since `since` with the highest total, nil when empty.
	PeakSales(ctx context.Context, since time.Time, truncate bool) (*model.SalesBucket, error)

	// BillSales returns bill totals since `since` grouped by bucket, highest first.
	BillSales(ctx context.Context, since time.Time, truncate bool) ([]model.SalesBucket, error)
}
