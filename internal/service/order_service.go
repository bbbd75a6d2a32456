package service

import (
	"context"
	"fmt"
	"time"

	"github.com/menu-interativo/back-end/internal/events"
	"github.com/menu-interativo/back-end/internal/model"
	"github.com/menu-interativo/back-end/internal/ordering"
	"github.com/menu-interativo/back-end/internal/repository"
	"github.com/menu-interativo/back-end/internal/validation"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// orderService implements OrderService.
type orderService struct {
	orderRepo repository.OrderRepository
	tableRepo repository.TableRepository
	dishRepo  repository.DishRepository
	publisher events.Publisher
	logger    zerolog.Logger
}

// NewOrderService creates a new order service.
func NewOrderService(
	orderRepo repository.OrderRepository,
	tableRepo repository.TableRepository,
	dishRepo repository.DishRepository,
	publisher events.Publisher,
	logger zerolog.Logger,
) OrderService {
	return &orderService{
		orderRepo: orderRepo,
		tableRepo: tableRepo,
		dishRepo:  dishRepo,
		publisher: publisher,
		logger:    logger.With().Str("service", "order").Logger(),
	}
}

// PlaceOrder persists a priced cart against an orderable table.
func (s *orderService) PlaceOrder(ctx context.Context, req *model.PlaceOrderRequest, sessionID string) (*model.PlaceOrderResult, error) {
	if req == nil {
		return nil, fmt.Errorf("order request is nil")
	}
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	tableID, err := parseID("tableId", req.TableID)
	if err != nil {
		return nil, err
	}

	table, err := s.tableRepo.FindOrderable(ctx, tableID)
	if err != nil {
		s.logger.Error().Err(err).Str("table_id", tableID.String()).Msg("failed to look up table")
		return nil, fmt.Errorf("failed to place order: %w", err)
	}
	if table == nil || !table.Orderable() {
		s.logger.Warn().Str("table_id", tableID.String()).Msg("table not available for orders")
		return nil, model.ErrTableUnavailable
	}

	dishIDs, err := ordering.DishIDs(req.Dishes)
	if err != nil {
		return nil, err
	}

	dishes, err := s.dishRepo.GetWithCustomizations(ctx, dishIDs)
	if err != nil {
		s.logger.Error().Err(err).Int("dish_count", len(dishIDs)).Msg("failed to load dishes")
		return nil, fmt.Errorf("failed to place order: %w", err)
	}

	lines, total, err := ordering.PriceCart(req.Dishes, dishes)
	if err != nil {
		s.logger.Warn().Err(err).Str("table_id", tableID.String()).Msg("cart rejected")
		return nil, err
	}

	isNewSession := sessionID == ""
	if isNewSession {
		sessionID = uuid.NewString()
	}

	// Start transaction
	tx, err := s.orderRepo.BeginTx(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to begin transaction")
		return nil, fmt.Errorf("failed to place order: %w", err)
	}

	// Ensure transaction is rolled back on error
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				s.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	seq, err := s.orderRepo.NextOrderNumber(ctx, tx)
	if err != nil {
		return nil, fmt.Errorf("failed to place order: %w", err)
	}

	order := &model.Order{
		ID:          uuid.New(),
		OrderNumber: ordering.FormatOrderNumber(seq),
		TableID:     table.ID,
		WaiterID:    *table.WaiterID,
		Total:       total,
		SessionID:   sessionID,
		Status:      model.OrderPending,
		CreatedAt:   time.Now(),
	}

	if err = s.orderRepo.CreateOrder(ctx, tx, order); err != nil {
		s.logger.Error().Err(err).Str("order_id", order.ID.String()).Msg("failed to create order")
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	items := orderItems(order.ID, lines)
	if err = s.orderRepo.CreateOrderItems(ctx, tx, items); err != nil {
		s.logger.Error().
			Err(err).
			Str("order_id", order.ID.String()).
			Int("item_count", len(items)).
			Msg("failed to create order items")
		return nil, fmt.Errorf("failed to create order items: %w", err)
	}

	demand := ordering.StockDemand(lines)
	for _, dishID := range dishIDs {
		var ok bool
		ok, err = s.dishRepo.DecrementStock(ctx, tx, dishID, demand[dishID])
		if err != nil {
			return nil, fmt.Errorf("failed to update stock: %w", err)
		}
		if !ok {
			s.logger.Warn().
				Str("dish_id", dishID.String()).
				Int("quantity", demand[dishID]).
				Msg("insufficient stock")
			err = model.ErrInsufficientStock
			return nil, err
		}
	}

	// Commit transaction
	if err = tx.Commit(ctx); err != nil {
		s.logger.Error().Err(err).Str("order_id", order.ID.String()).Msg("failed to commit transaction")
		return nil, fmt.Errorf("failed to place order: %w", err)
	}

	s.logger.Info().
		Str("order_id", order.ID.String()).
		Str("order_number", order.OrderNumber).
		Str("total", total.StringFixed(2)).
		Bool("new_session", isNewSession).
		Msg("order placed successfully")

	event := events.OrderPlaced{
		OrderID:     order.ID,
		OrderNumber: order.OrderNumber,
		TableID:     order.TableID,
		WaiterID:    order.WaiterID,
		Total:       order.Total,
		ItemCount:   len(items),
		PlacedAt:    order.CreatedAt,
	}
	if pubErr := s.publisher.PublishOrderPlaced(ctx, event); pubErr != nil {
		s.logger.Warn().Err(pubErr).Str("order_id", order.ID.String()).Msg("failed to publish order event")
	}

	return &model.PlaceOrderResult{
		OrderID:      order.ID,
		OrderNumber:  order.OrderNumber,
		Total:        total,
		SessionID:    sessionID,
		IsNewSession: isNewSession,
	}, nil
}

// orderItems turns priced lines into rows with fresh ids.
func orderItems(orderID uuid.UUID, lines []model.PricedLine) []model.OrderItem {
	items := make([]model.OrderItem, len(lines))
	for i, l := range lines {
		item := model.OrderItem{
			ID:             uuid.New(),
			OrderID:        orderID,
			DishID:         l.DishID,
			Quantity:       l.Quantity,
			Price:          l.UnitPrice,
			Customizations: make([]model.OrderItemCustomization, len(l.Customizations)),
		}
		for j, c := range l.Customizations {
			item.Customizations[j] = model.OrderItemCustomization{
				ID:              uuid.New(),
				OrderItemID:     item.ID,
				CustomizationID: c.CustomizationID,
				Quantity:        c.Quantity,
				Price:           c.UnitPrice,
			}
		}
		items[i] = item
	}
	return items
}

func (s *orderService) ListOrders(ctx context.Context) ([]model.Order, error) {
	orders, err := s.orderRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

func (s *orderService) ListMyOrders(ctx context.Context, sessionID string) ([]model.Order, error) {
	if sessionID == "" {
		return []model.Order{}, nil
	}
	orders, err := s.orderRepo.ListBySession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list session orders: %w", err)
	}
	return orders, nil
}

func (s *orderService) ListCurrentByTable(ctx context.Context, tableID string) ([]model.Order, error) {
	id, err := parseID("tableId", tableID)
	if err != nil {
		return nil, err
	}
	orders, err := s.orderRepo.ListCurrentByTable(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to list current orders: %w", err)
	}
	return orders, nil
}

func (s *orderService) UpdateStatus(ctx context.Context, orderID string, req *model.UpdateOrderStatusRequest) error {
	id, err := parseID("orderId", orderID)
	if err != nil {
		return err
	}
	if err := validation.Struct(req); err != nil {
		return err
	}

	ok, err := s.orderRepo.UpdateStatus(ctx, id, req.Status)
	if err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}
	if !ok {
		return model.ErrOrderNotFound
	}

	s.logger.Info().Str("order_id", id.String()).Str("status", string(req.Status)).Msg("order status updated")
	return nil
}
