package model

import (
	"time"

	"github.com/google/uuid"
)

// Role is the access level of a staff member.
type Role string

const (
	RoleAdmin   Role = "ADMIN"
	RoleWaiter  Role = "WAITER"
	RoleKitchen Role = "KITCHEN"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleWaiter, RoleKitchen:
		return true
	}
	return false
}

// User represents a staff member.
type User struct {
	ID                 uuid.UUID `json:"id" db:"id"`
	Name               string    `json:"name" db:"name"`
	Email              string    `json:"email" db:"email"`
	RegistrationNumber string    `json:"registrationNumber" db:"registration_number"`
	PasswordHash       string    `json:"-" db:"password_hash"`
	Role               Role      `json:"role" db:"role"`
	AvatarURL          *string   `json:"avatarUrl" db:"avatar_url"`
	CreatedAt          time.Time `json:"createdAt" db:"created_at"`
}

// WaiterSummary is the public view of a table's assigned waiter.
type WaiterSummary struct {
	ID                 uuid.UUID `json:"id"`
	Name               string    `json:"name"`
	RegistrationNumber string    `json:"registrationNumber"`
}

// AuthenticateRequest is the payload for POST /sessions.
type AuthenticateRequest struct {
	Email              string `json:"email" validate:"omitempty,email"`
	RegistrationNumber string `json:"registrationNumber" validate:"omitempty"`
	Password           string `json:"password" validate:"required"`
}

// AuthenticateResponse carries the issued bearer token.
type AuthenticateResponse struct {
	Token string `json:"token"`
}

// CreateUserRequest is the payload for POST /users.
type CreateUserRequest struct {
	Name               string `json:"name" validate:"required,min=2"`
	Email              string `json:"email" validate:"required,email"`
	RegistrationNumber string `json:"registrationNumber" validate:"required"`
	Password           string `json:"password" validate:"required,min=8"`
	Role               Role   `json:"role" validate:"omitempty,oneof=ADMIN WAITER KITCHEN"`
}

// UpdateUserRequest is the payload for PUT /users/{id}.
type UpdateUserRequest struct {
	Name      string  `json:"name" validate:"required,min=2"`
	AvatarURL *string `json:"avatarUrl" validate:"omitempty,url"`
	Role      Role    `json:"role" validate:"required,oneof=ADMIN WAITER KITCHEN"`
}

// AssignTablesRequest is the payload for PUT /users/{userId}/assign-tables.
type AssignTablesRequest struct {
	TableIDs []string `json:"tableIds" validate:"required,min=1,dive,uuid"`
}

// CreatedResponse returns the id of a newly created resource.
type CreatedResponse struct {
	UserID          *uuid.UUID `json:"userId,omitempty"`
	TableID         *uuid.UUID `json:"tableId,omitempty"`
	DishID          *uuid.UUID `json:"dishId,omitempty"`
	CustomizationID *uuid.UUID `json:"customizationId,omitempty"`
	OrderID         *uuid.UUID `json:"orderId,omitempty"`
	BillID          *uuid.UUID `json:"billId,omitempty"`
	ReviewID        *uuid.UUID `json:"reviewId,omitempty"`
}
