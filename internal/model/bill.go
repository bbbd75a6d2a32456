package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BillStatus is the payment state of a bill.
type BillStatus string

const (
	BillPending  BillStatus = "PENDING"
	BillPaid     BillStatus = "PAID"
	BillCanceled BillStatus = "CANCELED"
)

// Bill groups the orders of a table for payment.
type Bill struct {
	ID        uuid.UUID       `json:"id" db:"id"`
	TableID   uuid.UUID       `json:"tableId" db:"table_id"`
	Total     decimal.Decimal `json:"total" db:"total"`
	Status    BillStatus      `json:"status" db:"status"`
	CreatedAt time.Time       `json:"createdAt" db:"created_at"`
}
