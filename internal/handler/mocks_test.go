package handler

import (
	"context"
	"net/http"

	"github.com/menu-interativo/back-end/internal/auth"
	"github.com/menu-interativo/back-end/internal/model"
	"github.com/menu-interativo/back-end/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// stubAuthorizer authenticates every request as userID holding role.
// A nil userID makes every request anonymous.
type stubAuthorizer struct {
	userID uuid.UUID
	role   model.Role
}

func (a stubAuthorizer) For(r *http.Request) auth.Context {
	return stubContext(a)
}

type stubContext stubAuthorizer

func (c stubContext) CurrentUserID() (uuid.UUID, error) {
	if c.userID == uuid.Nil {
		return uuid.Nil, model.ErrUnauthorized
	}
	return c.userID, nil
}

func (c stubContext) RequireAnyRole(ctx context.Context, roles ...model.Role) error {
	if _, err := c.CurrentUserID(); err != nil {
		return err
	}
	for _, r := range roles {
		if r == c.role {
			return nil
		}
	}
	return model.ErrForbidden
}

func as(role model.Role) stubAuthorizer {
	return stubAuthorizer{userID: uuid.New(), role: role}
}

var anonymous = stubAuthorizer{}

// MockOrderService is a mock implementation of OrderService.
type MockOrderService struct {
	mock.Mock
}

func (m *MockOrderService) PlaceOrder(ctx context.Context, req *model.PlaceOrderRequest, sessionID string) (*model.PlaceOrderResult, error) {
	args := m.Called(ctx, req, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PlaceOrderResult), args.Error(1)
}

func (m *MockOrderService) ListOrders(ctx context.Context) ([]model.Order, error) {
	args := m.Called(ctx)
	return args.Get(0).([]model.Order), args.Error(1)
}

func (m *MockOrderService) ListMyOrders(ctx context.Context, sessionID string) ([]model.Order, error) {
	args := m.Called(ctx, sessionID)
	return args.Get(0).([]model.Order), args.Error(1)
}

func (m *MockOrderService) ListCurrentByTable(ctx context.Context, tableID string) ([]model.Order, error) {
	args := m.Called(ctx, tableID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Order), args.Error(1)
}

func (m *MockOrderService) UpdateStatus(ctx context.Context, orderID string, req *model.UpdateOrderStatusRequest) error {
	return m.Called(ctx, orderID, req).Error(0)
}

// MockTableService is a mock implementation of TableService.
type MockTableService struct {
	mock.Mock
}

func (m *MockTableService) Create(ctx context.Context, req *model.CreateTableRequest) (uuid.UUID, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *MockTableService) List(ctx context.Context) ([]model.Table, error) {
	args := m.Called(ctx)
	return args.Get(0).([]model.Table), args.Error(1)
}

func (m *MockTableService) ListAssigned(ctx context.Context, waiterID uuid.UUID) ([]model.Table, error) {
	args := m.Called(ctx, waiterID)
	return args.Get(0).([]model.Table), args.Error(1)
}

func (m *MockTableService) Update(ctx context.Context, id string, req *model.UpdateTableRequest) error {
	return m.Called(ctx, id, req).Error(0)
}

func (m *MockTableService) Details(ctx context.Context, id string) (*model.TableDetails, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.TableDetails), args.Error(1)
}

func (m *MockTableService) QRCode(ctx context.Context, id string) ([]byte, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// MockBillService is a mock implementation of BillService.
type MockBillService struct {
	mock.Mock
}

func (m *MockBillService) Close(ctx context.Context, tableID string) (*model.Bill, error) {
	args := m.Called(ctx, tableID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Bill), args.Error(1)
}

func (m *MockBillService) Pay(ctx context.Context, billID string) error {
	return m.Called(ctx, billID).Error(0)
}

// MockUserService is a mock implementation of UserService.
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) user(args mock.Arguments) (*model.User, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserService) Authenticate(ctx context.Context, req *model.AuthenticateRequest) (*model.AuthenticateResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.AuthenticateResponse), args.Error(1)
}

func (m *MockUserService) Profile(ctx context.Context, id uuid.UUID) (*model.User, error) {
	return m.user(m.Called(ctx, id))
}

func (m *MockUserService) Create(ctx context.Context, req *model.CreateUserRequest) (uuid.UUID, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *MockUserService) List(ctx context.Context) ([]model.User, error) {
	args := m.Called(ctx)
	return args.Get(0).([]model.User), args.Error(1)
}

func (m *MockUserService) GetByID(ctx context.Context, id string) (*model.User, error) {
	return m.user(m.Called(ctx, id))
}

func (m *MockUserService) Update(ctx context.Context, id string, req *model.UpdateUserRequest) (*model.User, error) {
	return m.user(m.Called(ctx, id, req))
}

func (m *MockUserService) AssignTables(ctx context.Context, userID string, req *model.AssignTablesRequest) error {
	return m.Called(ctx, userID, req).Error(0)
}

func (m *MockUserService) UploadAvatar(ctx context.Context, userID string, upload service.Upload) (string, error) {
	args := m.Called(ctx, userID, upload)
	return args.String(0), args.Error(1)
}

// MockDishService is a mock implementation of DishService.
type MockDishService struct {
	mock.Mock
}

func (m *MockDishService) Create(ctx context.Context, req *model.CreateDishRequest) (uuid.UUID, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *MockDishService) List(ctx context.Context) ([]model.Dish, error) {
	args := m.Called(ctx)
	return args.Get(0).([]model.Dish), args.Error(1)
}

func (m *MockDishService) ListAvailable(ctx context.Context, category string) ([]model.Dish, error) {
	args := m.Called(ctx, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Dish), args.Error(1)
}

func (m *MockDishService) CreateCustomization(ctx context.Context, req *model.CreateCustomizationRequest) (uuid.UUID, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *MockDishService) AttachCustomizations(ctx context.Context, slug string, req *model.AttachCustomizationsRequest) error {
	return m.Called(ctx, slug, req).Error(0)
}

func (m *MockDishService) UploadImage(ctx context.Context, slug string, upload service.Upload) (string, error) {
	args := m.Called(ctx, slug, upload)
	return args.String(0), args.Error(1)
}

// MockReportService is a mock implementation of ReportService.
type MockReportService struct {
	mock.Mock
}

func (m *MockReportService) SalesStatistics(ctx context.Context) (*model.SalesReport, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.SalesReport), args.Error(1)
}

// MockReviewService is a mock implementation of ReviewService.
type MockReviewService struct {
	mock.Mock
}

func (m *MockReviewService) Create(ctx context.Context, req *model.CreateReviewRequest) (uuid.UUID, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *MockReviewService) Statistics(ctx context.Context) (*model.ReviewReport, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ReviewReport), args.Error(1)
}
