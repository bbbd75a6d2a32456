package service

import (
	"context"
	"fmt"
	"time"

	"github.com/menu-interativo/back-end/internal/model"
	"github.com/menu-interativo/back-end/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// billService implements BillService.
type billService struct {
	billRepo  repository.BillRepository
	tableRepo repository.TableRepository
	logger    zerolog.Logger
}

// NewBillService creates a new bill service.
func NewBillService(billRepo repository.BillRepository, tableRepo repository.TableRepository, logger zerolog.Logger) BillService {
	return &billService{
		billRepo:  billRepo,
		tableRepo: tableRepo,
		logger:    logger.With().Str("service", "bill").Logger(),
	}
}

func (s *billService) Close(ctx context.Context, tableID string) (*model.Bill, error) {
	id, err := parseID("tableId", tableID)
	if err != nil {
		return nil, err
	}

	table, err := s.tableRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to close table: %w", err)
	}
	if table == nil {
		return nil, model.ErrTableNotFound
	}

	tx, err := s.billRepo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to close table: %w", err)
	}

	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				s.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	orderIDs, total, err := s.billRepo.LockUnbilledOrders(ctx, tx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to close table: %w", err)
	}
	if len(orderIDs) == 0 {
		err = model.ErrNothingToBill
		return nil, err
	}

	bill := &model.Bill{
		ID:        uuid.New(),
		TableID:   id,
		Total:     total,
		Status:    model.BillPending,
		CreatedAt: time.Now(),
	}
	if err = s.billRepo.Create(ctx, tx, bill); err != nil {
		return nil, fmt.Errorf("failed to create bill: %w", err)
	}
	if err = s.billRepo.AttachOrders(ctx, tx, bill.ID, orderIDs); err != nil {
		return nil, fmt.Errorf("failed to create bill: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		s.logger.Error().Err(err).Str("bill_id", bill.ID.String()).Msg("failed to commit transaction")
		return nil, fmt.Errorf("failed to create bill: %w", err)
	}

	s.logger.Info().
		Str("bill_id", bill.ID.String()).
		Str("table_id", id.String()).
		Int("orders", len(orderIDs)).
		Str("total", total.StringFixed(2)).
		Msg("bill created")
	return bill, nil
}

func (s *billService) Pay(ctx context.Context, billID string) error {
	id, err := parseID("billId", billID)
	if err != nil {
		return err
	}

	ok, err := s.billRepo.TransitionStatus(ctx, id, model.BillPending, model.BillPaid)
	if err != nil {
		return fmt.Errorf("failed to pay bill: %w", err)
	}
	if ok {
		s.logger.Info().Str("bill_id", id.String()).Msg("bill paid")
		return nil
	}

	bill, err := s.billRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to pay bill: %w", err)
	}
	if bill == nil {
		return model.ErrBillNotFound
	}
	return model.ErrBillNotPending
}
