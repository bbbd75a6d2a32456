package model

import (
	"time"

	"github.com/google/uuid"
)

// TableStatus is the service state of a dining table.
type TableStatus string

const (
	TableAvailable    TableStatus = "AVAILABLE"
	TableOccupied     TableStatus = "OCCUPIED"
	TableReserved     TableStatus = "RESERVED"
	TableOutOfService TableStatus = "OUT_OF_SERVICE"
)

// Table represents a dining table.
type Table struct {
	ID          uuid.UUID   `json:"id" db:"id"`
	TableNumber int         `json:"tableNumber" db:"table_number"`
	Location    *string     `json:"location" db:"location"`
	Status      TableStatus `json:"status" db:"status"`
	WaiterID    *uuid.UUID  `json:"waiterId" db:"waiter_id"`
	CreatedAt   time.Time   `json:"createdAt" db:"created_at"`
}

// Orderable reports whether orders may be placed against the table.
func (t *Table) Orderable() bool {
	return t.Status != TableOutOfService && t.WaiterID != nil
}

// TableDetails is a table with its assigned waiter and orders.
type TableDetails struct {
	Table
	AssignedTo *WaiterSummary `json:"assignedTo"`
	Orders     []Order        `json:"orders"`
}

// CreateTableRequest is the payload for POST /tables.
type CreateTableRequest struct {
	TableNumber int     `json:"tableNumber" validate:"required,gt=0,lte=2147483647"`
	Location    *string `json:"location"`
}

// UpdateTableRequest is the payload for PUT /tables/{id}.
type UpdateTableRequest struct {
	WaiterID *string     `json:"waiterId" validate:"omitempty,uuid"`
	Location *string     `json:"location"`
	Status   TableStatus `json:"status" validate:"required,oneof=AVAILABLE OCCUPIED RESERVED OUT_OF_SERVICE"`
}
