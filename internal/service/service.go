package service

import (
	"context"
	"io"

	"github.com/menu-interativo/back-end/internal/model"

	"github.com/google/uuid"
)

// Upload is an image received from a multipart form.
type Upload struct {
	Body        io.Reader
	ContentType string
	Size        int64
}

// UserService defines operations for staff accounts.
type UserService interface {
	// Authenticate checks credentials and issues a bearer token.
	Authenticate(ctx context.Context, req *model.AuthenticateRequest) (*model.AuthenticateResponse, error)

	// Profile returns the user behind the current token.
	Profile(ctx context.Context, id uuid.UUID) (*model.User, error)

	Create(ctx context.Context, req *model.CreateUserRequest) (uuid.UUID, error)
	List(ctx context.Context) ([]model.User, error)
	GetByID(ctx context.Context, id string) (*model.User, error)
	Update(ctx context.Context, id string, req *model.UpdateUserRequest) (*model.User, error)

	// AssignTables makes the waiter responsible for every listed table.
	AssignTables(ctx context.Context, userID string, req *model.AssignTablesRequest) error
	UploadAvatar(ctx context.Context, userID string, upload Upload) (string, error)
}

// TableService defines operations for dining tables.
type TableService interface {
	Create(ctx context.Context, req *model.CreateTableRequest) (uuid.UUID, error)
	List(ctx context.Context) ([]model.Table, error)
	ListAssigned(ctx context.Context, waiterID uuid.UUID) ([]model.Table, error)
	Update(ctx context.Context, id string, req *model.UpdateTableRequest) error

	// Details returns the table with its assigned waiter and all of its orders.
	Details(ctx context.Context, id string) (*model.TableDetails, error)

	// QRCode renders a PNG linking the public menu to the table.
	QRCode(ctx context.Context, id string) ([]byte, error)
}

// BillService defines operations for closing and paying tables.
type BillService interface {
	// Close groups the table's unbilled orders into a pending bill.
	Close(ctx context.Context, tableID string) (*model.Bill, error)
	Pay(ctx context.Context, billID string) error
}

// DishService defines operations for the menu.
type DishService interface {
	Create(ctx context.Context, req *model.CreateDishRequest) (uuid.UUID, error)
	List(ctx context.Context) ([]model.Dish, error)
	ListAvailable(ctx context.Context, category string) ([]model.Dish, error)
	CreateCustomization(ctx context.Context, req *model.CreateCustomizationRequest) (uuid.UUID, error)
	AttachCustomizations(ctx context.Context, slug string, req *model.AttachCustomizationsRequest) error
	UploadImage(ctx context.Context, slug string, upload Upload) (string, error)
}

// OrderService defines operations for order management.
type OrderService interface {
	// PlaceOrder validates and prices the cart, then persists the order and
	// decrements stock in a single transaction. An empty sessionID starts a new session.
	PlaceOrder(ctx context.Context, req *model.PlaceOrderRequest, sessionID string) (*model.PlaceOrderResult, error)

	ListOrders(ctx context.Context) ([]model.Order, error)

	// ListMyOrders returns the orders of the session; none for an empty session.
	ListMyOrders(ctx context.Context, sessionID string) ([]model.Order, error)
	ListCurrentByTable(ctx context.Context, tableID string) ([]model.Order, error)
	UpdateStatus(ctx context.Context, orderID string, req *model.UpdateOrderStatusRequest) error
}

// ReviewService defines operations for customer feedback.
type ReviewService interface {
	Create(ctx context.Context, req *model.CreateReviewRequest) (uuid.UUID, error)
	Statistics(ctx context.Context) (*model.ReviewReport, error)
}

// ReportService builds the sales dashboard.
type ReportService interface {
	SalesStatistics(ctx context.Context) (*model.SalesReport, error)
}

// parseID parses a path identifier, reporting a validation error keyed by field.
func parseID(field, raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, model.NewValidationError(field, "must be a valid UUID")
	}
	return id, nil
}
