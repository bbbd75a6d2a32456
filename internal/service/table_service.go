package service

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/menu-interativo/back-end/internal/model"
	"github.com/menu-interativo/back-end/internal/repository"
	"github.com/menu-interativo/back-end/internal/validation"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/skip2/go-qrcode"
)

// QRCodeSize is the side of the generated PNG in pixels.
const QRCodeSize = 256

// tableService implements TableService.
type tableService struct {
	tableRepo repository.TableRepository
	userRepo  repository.UserRepository
	orderRepo repository.OrderRepository
	menuURL   string
	logger    zerolog.Logger
}

// NewTableService creates a new table service. menuURL is encoded in table QR codes.
func NewTableService(
	tableRepo repository.TableRepository,
	userRepo repository.UserRepository,
	orderRepo repository.OrderRepository,
	menuURL string,
	logger zerolog.Logger,
) TableService {
	return &tableService{
		tableRepo: tableRepo,
		userRepo:  userRepo,
		orderRepo: orderRepo,
		menuURL:   menuURL,
		logger:    logger.With().Str("service", "table").Logger(),
	}
}

func (s *tableService) Create(ctx context.Context, req *model.CreateTableRequest) (uuid.UUID, error) {
	if err := validation.Struct(req); err != nil {
		return uuid.Nil, err
	}

	table := &model.Table{
		ID:          uuid.New(),
		TableNumber: req.TableNumber,
		Location:    req.Location,
		Status:      model.TableAvailable,
		CreatedAt:   time.Now(),
	}
	if err := s.tableRepo.Create(ctx, table); err != nil {
		return uuid.Nil, fmt.Errorf("failed to create table: %w", err)
	}

	s.logger.Info().Str("table_id", table.ID.String()).Int("table_number", table.TableNumber).Msg("table created")
	return table.ID, nil
}

func (s *tableService) List(ctx context.Context) ([]model.Table, error) {
	tables, err := s.tableRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tables: %w", err)
	}
	return tables, nil
}

func (s *tableService) ListAssigned(ctx context.Context, waiterID uuid.UUID) ([]model.Table, error) {
	tables, err := s.tableRepo.ListByWaiter(ctx, waiterID)
	if err != nil {
		return nil, fmt.Errorf("failed to list assigned tables: %w", err)
	}
	return tables, nil
}

func (s *tableService) Update(ctx context.Context, id string, req *model.UpdateTableRequest) error {
	tableID, err := parseID("id", id)
	if err != nil {
		return err
	}
	if err := validation.Struct(req); err != nil {
		return err
	}

	table := &model.Table{ID: tableID, Location: req.Location, Status: req.Status}
	if req.WaiterID != nil {
		waiterID := uuid.MustParse(*req.WaiterID)
		table.WaiterID = &waiterID
	}

	ok, err := s.tableRepo.Update(ctx, table)
	if err != nil {
		return fmt.Errorf("failed to update table: %w", err)
	}
	if !ok {
		return model.ErrTableNotFound
	}

	s.logger.Info().Str("table_id", tableID.String()).Str("status", string(req.Status)).Msg("table updated")
	return nil
}

func (s *tableService) Details(ctx context.Context, id string) (*model.TableDetails, error) {
	tableID, err := parseID("tableId", id)
	if err != nil {
		return nil, err
	}

	table, err := s.tableRepo.GetByID(ctx, tableID)
	if err != nil {
		return nil, fmt.Errorf("failed to get table: %w", err)
	}
	if table == nil {
		return nil, model.ErrTableNotFound
	}

	details := &model.TableDetails{Table: *table}
	if table.WaiterID != nil {
		waiter, err := s.userRepo.GetByID(ctx, *table.WaiterID)
		if err != nil {
			return nil, fmt.Errorf("failed to get table waiter: %w", err)
		}
		if waiter != nil {
			details.AssignedTo = &model.WaiterSummary{
				ID:                 waiter.ID,
				Name:               waiter.Name,
				RegistrationNumber: waiter.RegistrationNumber,
			}
		}
	}

	details.Orders, err = s.orderRepo.ListByTable(ctx, tableID)
	if err != nil {
		return nil, fmt.Errorf("failed to get table orders: %w", err)
	}
	return details, nil
}

func (s *tableService) QRCode(ctx context.Context, id string) ([]byte, error) {
	tableID, err := parseID("tableId", id)
	if err != nil {
		return nil, err
	}

	table, err := s.tableRepo.GetByID(ctx, tableID)
	if err != nil {
		return nil, fmt.Errorf("failed to get table: %w", err)
	}
	if table == nil {
		return nil, model.ErrTableNotFound
	}

	png, err := qrcode.Encode(s.tableURL(tableID), qrcode.Medium, QRCodeSize)
	if err != nil {
		return nil, fmt.Errorf("failed to encode QR code: %w", err)
	}
	return png, nil
}

// tableURL appends the table id to the menu URL, keeping any existing query.
func (s *tableService) tableURL(id uuid.UUID) string {
	u, err := url.Parse(s.menuURL)
	if err != nil {
		return s.menuURL + "?table=" + id.String()
	}
	q := u.Query()
	q.Set("table", id.String())
	u.RawQuery = q.Encode()
	return u.String()
}
