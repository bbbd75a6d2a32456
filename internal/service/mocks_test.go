package service

import (
	"context"
	"io"
	"time"

	"github.com/menu-interativo/back-end/internal/events"
	"github.com/menu-interativo/back-end/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// MockTx is a minimal mock implementation of pgx.Tx for testing.
type MockTx struct {
	mock.Mock
	committed  bool
	rolledBack bool
}

func (m *MockTx) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	m.committed = true
	return args.Error(0)
}

func (m *MockTx) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	m.rolledBack = true
	return args.Error(0)
}

// Stub methods to satisfy pgx.Tx interface - these are not used in our tests
func (m *MockTx) Begin(ctx context.Context) (pgx.Tx, error) { return nil, nil }
func (m *MockTx) CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error) {
	return 0, nil
}
func (m *MockTx) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults { return nil }
func (m *MockTx) LargeObjects() pgx.LargeObjects                               { return pgx.LargeObjects{} }
func (m *MockTx) Prepare(ctx context.Context, name, sql string) (*pgconn.StatementDescription, error) {
	return nil, nil
}
func (m *MockTx) Exec(ctx context.Context, sql string, arguments ...any) (commandTag pgconn.CommandTag, err error) {
	return
}
func (m *MockTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}
func (m *MockTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row { return nil }
func (m *MockTx) Conn() *pgx.Conn                                               { return nil }

// MockOrderRepository is a mock implementation of OrderRepository.
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) BeginTx(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	// Return a MockTx interface value, not a pointer
	if tx, ok := args.Get(0).(pgx.Tx); ok {
		return tx, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockOrderRepository) NextOrderNumber(ctx context.Context, tx pgx.Tx) (int64, error) {
	args := m.Called(ctx, tx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOrderRepository) CreateOrder(ctx context.Context, tx pgx.Tx, order *model.Order) error {
	return m.Called(ctx, tx, order).Error(0)
}

func (m *MockOrderRepository) CreateOrderItems(ctx context.Context, tx pgx.Tx, items []model.OrderItem) error {
	return m.Called(ctx, tx, items).Error(0)
}

func (m *MockOrderRepository) orders(args mock.Arguments) ([]model.Order, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Order), args.Error(1)
}

func (m *MockOrderRepository) List(ctx context.Context) ([]model.Order, error) {
	return m.orders(m.Called(ctx))
}

func (m *MockOrderRepository) ListBySession(ctx context.Context, sessionID string) ([]model.Order, error) {
	return m.orders(m.Called(ctx, sessionID))
}

func (m *MockOrderRepository) ListByTable(ctx context.Context, tableID uuid.UUID) ([]model.Order, error) {
	return m.orders(m.Called(ctx, tableID))
}

func (m *MockOrderRepository) ListCurrentByTable(ctx context.Context, tableID uuid.UUID) ([]model.Order, error) {
	return m.orders(m.Called(ctx, tableID))
}

func (m *MockOrderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.OrderStatus) (bool, error) {
	args := m.Called(ctx, id, status)
	return args.Bool(0), args.Error(1)
}

// MockTableRepository is a mock implementation of TableRepository.
type MockTableRepository struct {
	mock.Mock
}

func (m *MockTableRepository) table(args mock.Arguments) (*model.Table, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Table), args.Error(1)
}

func (m *MockTableRepository) Create(ctx context.Context, table *model.Table) error {
	return m.Called(ctx, table).Error(0)
}

func (m *MockTableRepository) List(ctx context.Context) ([]model.Table, error) {
	args := m.Called(ctx)
	return args.Get(0).([]model.Table), args.Error(1)
}

func (m *MockTableRepository) ListByWaiter(ctx context.Context, waiterID uuid.UUID) ([]model.Table, error) {
	args := m.Called(ctx, waiterID)
	return args.Get(0).([]model.Table), args.Error(1)
}

func (m *MockTableRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Table, error) {
	return m.table(m.Called(ctx, id))
}

func (m *MockTableRepository) FindOrderable(ctx context.Context, id uuid.UUID) (*model.Table, error) {
	return m.table(m.Called(ctx, id))
}

func (m *MockTableRepository) Update(ctx context.Context, table *model.Table) (bool, error) {
	args := m.Called(ctx, table)
	return args.Bool(0), args.Error(1)
}

func (m *MockTableRepository) CountExisting(ctx context.Context, ids []uuid.UUID) (int, error) {
	args := m.Called(ctx, ids)
	return args.Int(0), args.Error(1)
}

func (m *MockTableRepository) AssignWaiter(ctx context.Context, waiterID uuid.UUID, tableIDs []uuid.UUID) error {
	return m.Called(ctx, waiterID, tableIDs).Error(0)
}

// MockDishRepository is a mock implementation of DishRepository.
type MockDishRepository struct {
	mock.Mock
}

func (m *MockDishRepository) Create(ctx context.Context, dish *model.Dish) error {
	return m.Called(ctx, dish).Error(0)
}

func (m *MockDishRepository) GetBySlug(ctx context.Context, slug string) (*model.Dish, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Dish), args.Error(1)
}

func (m *MockDishRepository) List(ctx context.Context) ([]model.Dish, error) {
	args := m.Called(ctx)
	return args.Get(0).([]model.Dish), args.Error(1)
}

func (m *MockDishRepository) ListAvailableByCategory(ctx context.Context, category model.DishCategory) ([]model.Dish, error) {
	args := m.Called(ctx, category)
	return args.Get(0).([]model.Dish), args.Error(1)
}

func (m *MockDishRepository) GetWithCustomizations(ctx context.Context, ids []uuid.UUID) ([]model.DishWithCustomizations, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.DishWithCustomizations), args.Error(1)
}

func (m *MockDishRepository) CreateCustomization(ctx context.Context, c *model.Customization) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockDishRepository) AttachCustomizations(ctx context.Context, dishID uuid.UUID, customizationIDs []uuid.UUID) (int64, error) {
	args := m.Called(ctx, dishID, customizationIDs)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockDishRepository) UpdateImage(ctx context.Context, slug, imageURL string) (bool, error) {
	args := m.Called(ctx, slug, imageURL)
	return args.Bool(0), args.Error(1)
}

func (m *MockDishRepository) DecrementStock(ctx context.Context, tx pgx.Tx, dishID uuid.UUID, qty int) (bool, error) {
	args := m.Called(ctx, tx, dishID, qty)
	return args.Bool(0), args.Error(1)
}

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) user(args mock.Arguments) (*model.User, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindRole(ctx context.Context, id uuid.UUID) (model.Role, bool, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Role), args.Bool(1), args.Error(2)
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	return m.user(m.Called(ctx, id))
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return m.user(m.Called(ctx, email))
}

func (m *MockUserRepository) GetByRegistrationNumber(ctx context.Context, registrationNumber string) (*model.User, error) {
	return m.user(m.Called(ctx, registrationNumber))
}

func (m *MockUserRepository) List(ctx context.Context) ([]model.User, error) {
	args := m.Called(ctx)
	return args.Get(0).([]model.User), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, user *model.User) (bool, error) {
	args := m.Called(ctx, user)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) UpdateAvatar(ctx context.Context, id uuid.UUID, avatarURL string) (bool, error) {
	args := m.Called(ctx, id, avatarURL)
	return args.Bool(0), args.Error(1)
}

// MockBillRepository is a mock implementation of BillRepository.
type MockBillRepository struct {
	mock.Mock
}

func (m *MockBillRepository) BeginTx(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if tx, ok := args.Get(0).(pgx.Tx); ok {
		return tx, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockBillRepository) LockUnbilledOrders(ctx context.Context, tx pgx.Tx, tableID uuid.UUID) ([]uuid.UUID, decimal.Decimal, error) {
	args := m.Called(ctx, tx, tableID)
	ids, _ := args.Get(0).([]uuid.UUID)
	return ids, args.Get(1).(decimal.Decimal), args.Error(2)
}

func (m *MockBillRepository) Create(ctx context.Context, tx pgx.Tx, bill *model.Bill) error {
	return m.Called(ctx, tx, bill).Error(0)
}

func (m *MockBillRepository) AttachOrders(ctx context.Context, tx pgx.Tx, billID uuid.UUID, orderIDs []uuid.UUID) error {
	return m.Called(ctx, tx, billID, orderIDs).Error(0)
}

func (m *MockBillRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Bill, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Bill), args.Error(1)
}

func (m *MockBillRepository) TransitionStatus(ctx context.Context, id uuid.UUID, from, to model.BillStatus) (bool, error) {
	args := m.Called(ctx, id, from, to)
	return args.Bool(0), args.Error(1)
}

// MockReviewRepository is a mock implementation of ReviewRepository.
type MockReviewRepository struct {
	mock.Mock
}

func (m *MockReviewRepository) Create(ctx context.Context, review *model.Review) error {
	return m.Called(ctx, review).Error(0)
}

func (m *MockReviewRepository) List(ctx context.Context) ([]model.Review, error) {
	args := m.Called(ctx)
	return args.Get(0).([]model.Review), args.Error(1)
}

// MockReportRepository is a mock implementation of ReportRepository.
type MockReportRepository struct {
	mock.Mock
}

func (m *MockReportRepository) TotalSales(ctx context.Context) (decimal.Decimal, error) {
	args := m.Called(ctx)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockReportRepository) BestDish(ctx context.Context) (*model.BestDish, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.BestDish), args.Error(1)
}

func (m *MockReportRepository) BestWaiter(ctx context.Context) (*model.BestWaiter, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.BestWaiter), args.Error(1)
}

func (m *MockReportRepository) PeakSales(ctx context.Context, since time.Time, truncate bool) (*model.SalesBucket, error) {
	args := m.Called(ctx, since, truncate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.SalesBucket), args.Error(1)
}

func (m *MockReportRepository) BillSales(ctx context.Context, since time.Time, truncate bool) ([]model.SalesBucket, error) {
	args := m.Called(ctx, since, truncate)
	return args.Get(0).([]model.SalesBucket), args.Error(1)
}

// MockPublisher is a mock implementation of events.Publisher.
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishOrderPlaced(ctx context.Context, event events.OrderPlaced) error {
	return m.Called(ctx, event).Error(0)
}

func (m *MockPublisher) Close() error {
	return m.Called().Error(0)
}

// MockImageStore is a mock implementation of storage.ImageStore.
type MockImageStore struct {
	mock.Mock
}

func (m *MockImageStore) Save(ctx context.Context, key string, body io.Reader, contentType string) (string, error) {
	args := m.Called(ctx, key, body, contentType)
	return args.String(0), args.Error(1)
}

// MockCache is a mock implementation of cache.Cache.
type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	args := m.Called(ctx, key, dst)
	return args.Bool(0), args.Error(1)
}

func (m *MockCache) Set(ctx context.Context, key string, v any) error {
	return m.Called(ctx, key, v).Error(0)
}
