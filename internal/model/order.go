package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderStatus tracks an order through the kitchen.
type OrderStatus string

const (
	OrderPending   OrderStatus = "PENDING"
	OrderPreparing OrderStatus = "PREPARING"
	OrderReady     OrderStatus = "READY"
	OrderDelivered OrderStatus = "DELIVERED"
	OrderCanceled  OrderStatus = "CANCELED"
)

// MaxLineQuantity caps the quantity of a single cart line or customization.
const MaxLineQuantity = 1000

// Order represents a customer order placed against a table.
type Order struct {
	ID          uuid.UUID       `json:"id" db:"id"`
	OrderNumber string          `json:"orderNumber" db:"order_number"`
	TableID     uuid.UUID       `json:"tableId" db:"table_id"`
	WaiterID    uuid.UUID       `json:"waiterId" db:"waiter_id"`
	Total       decimal.Decimal `json:"total" db:"total"`
	SessionID   string          `json:"-" db:"session_id"`
	Status      OrderStatus     `json:"status" db:"status"`
	BillID      *uuid.UUID      `json:"billId" db:"bill_id"`
	CreatedAt   time.Time       `json:"createdAt" db:"created_at"`
	Items       []OrderItem     `json:"items"`
}

// OrderItem is a dish line with its price snapshotted at order time.
type OrderItem struct {
	ID             uuid.UUID                `json:"id" db:"id"`
	OrderID        uuid.UUID                `json:"-" db:"order_id"`
	DishID         uuid.UUID                `json:"dishId" db:"dish_id"`
	Quantity       int                      `json:"quantity" db:"quantity"`
	Price          decimal.Decimal          `json:"price" db:"price"`
	Customizations []OrderItemCustomization `json:"customizations"`
}

// OrderItemCustomization is a customization line under an order item.
type OrderItemCustomization struct {
	ID              uuid.UUID       `json:"id" db:"id"`
	OrderItemID     uuid.UUID       `json:"-" db:"order_item_id"`
	CustomizationID uuid.UUID       `json:"customizationId" db:"customization_id"`
	Quantity        int             `json:"quantity" db:"quantity"`
	Price           decimal.Decimal `json:"price" db:"price"`
}

// CartCustomization selects a customization for a cart line.
type CartCustomization struct {
	CustomizationID string `json:"customizationId" validate:"required,uuid"`
	Quantity        int    `json:"quantity" validate:"gt=0,lte=1000"`
}

// CartLine selects a dish and its customizations.
type CartLine struct {
	DishID         string              `json:"dishId" validate:"required,uuid"`
	Quantity       int                 `json:"quantity" validate:"gt=0,lte=1000"`
	Customizations []CartCustomization `json:"customizations" validate:"omitempty,dive"`
}

// PlaceOrderRequest is the payload for POST /orders.
type PlaceOrderRequest struct {
	TableID string     `json:"tableId" validate:"required,uuid"`
	Dishes  []CartLine `json:"dishes" validate:"required,min=1,dive"`
}

// PricedCustomization is a validated customization line with its unit price.
type PricedCustomization struct {
	CustomizationID uuid.UUID
	Quantity        int
	UnitPrice       decimal.Decimal
}

// PricedLine is a validated cart line with snapshotted prices.
type PricedLine struct {
	DishID         uuid.UUID
	Quantity       int
	UnitPrice      decimal.Decimal
	Subtotal       decimal.Decimal
	Customizations []PricedCustomization
}

// PlaceOrderResult is returned by a successful order placement.
type PlaceOrderResult struct {
	OrderID      uuid.UUID       `json:"orderId"`
	OrderNumber  string          `json:"orderNumber"`
	Total        decimal.Decimal `json:"total"`
	SessionID    string          `json:"-"`
	IsNewSession bool            `json:"-"`
}

// UpdateOrderStatusRequest is the payload for PATCH /orders/{orderId}/status.
type UpdateOrderStatusRequest struct {
	Status OrderStatus `json:"status" validate:"required,oneof=PENDING PREPARING READY DELIVERED CANCELED"`
}

// OrdersResponse wraps a list of orders.
type OrdersResponse struct {
	Orders []Order `json:"orders"`
}
