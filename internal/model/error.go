package model

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Message string              `json:"message"`
	Code    string              `json:"code,omitempty"`
	Issues  map[string][]string `json:"issues,omitempty"`
}

// ErrorKind classifies a domain error for translation at the HTTP boundary.
type ErrorKind int

const (
	KindBadRequest ErrorKind = iota + 1
	KindUnauthorized
	KindForbidden
	KindNotFound
	KindConflict
)

func (k ErrorKind) String() string {
	switch k {
	case KindBadRequest:
		return "bad_request"
	case KindUnauthorized:
		return "unauthorized"
	case KindForbidden:
		return "forbidden"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	default:
		return "unknown"
	}
}

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON           = "INVALID_JSON"
	ErrCodeValidation            = "VALIDATION_ERROR"
	ErrCodeInvalidCredentials    = "INVALID_CREDENTIALS"
	ErrCodeMissingIdentifier     = "MISSING_IDENTIFIER"
	ErrCodeUnauthorised          = "UNAUTHORIZED"
	ErrCodeForbidden             = "FORBIDDEN"
	ErrCodeUserNotFound          = "USER_NOT_FOUND"
	ErrCodeEmailInUse            = "EMAIL_IN_USE"
	ErrCodeRegistrationInUse     = "REGISTRATION_NUMBER_IN_USE"
	ErrCodeNotAWaiter            = "NOT_A_WAITER"
	ErrCodeTablesMissing         = "TABLES_MISSING"
	ErrCodeTableNotFound         = "TABLE_NOT_FOUND"
	ErrCodeTableUnavailable      = "TABLE_UNAVAILABLE"
	ErrCodeDishNotFound          = "DISH_NOT_FOUND"
	ErrCodeDishesNotFound        = "DISHES_NOT_FOUND"
	ErrCodeDishExists            = "DISH_EXISTS"
	ErrCodeCustomizationNotFound = "CUSTOMIZATION_NOT_FOUND"
	ErrCodeInsufficientStock     = "INSUFFICIENT_STOCK"
	ErrCodeOrderNotFound         = "ORDER_NOT_FOUND"
	ErrCodeNothingToBill         = "NOTHING_TO_BILL"
	ErrCodeBillNotFound          = "BILL_NOT_FOUND"
	ErrCodeBillNotPending        = "BILL_NOT_PENDING"
	ErrCodeInvalidImage          = "INVALID_IMAGE"
	ErrCodeInternalError         = "INTERNAL_ERROR"
)

// DomainError is raised where a business rule fails and translated once by the handler layer.
type DomainError struct {
	Kind    ErrorKind
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// Is matches domain errors by code so wrapped copies compare equal to the sentinels below.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// NewDomainError creates a new domain error
func NewDomainError(kind ErrorKind, code, message string) *DomainError {
	return &DomainError{
		Kind:    kind,
		Code:    code,
		Message: message,
	}
}

func NewBadRequest(code, message string) *DomainError {
	return NewDomainError(KindBadRequest, code, message)
}

func NewNotFound(code, message string) *DomainError {
	return NewDomainError(KindNotFound, code, message)
}

func NewConflict(code, message string) *DomainError {
	return NewDomainError(KindConflict, code, message)
}

// Common domain errors
var (
	ErrUnauthorized       = NewDomainError(KindUnauthorized, ErrCodeUnauthorised, "Invalid or missing token")
	ErrForbidden          = NewDomainError(KindForbidden, ErrCodeForbidden, "You do not have permission to access this resource")
	ErrInvalidCredentials = NewBadRequest(ErrCodeInvalidCredentials, "Invalid credentials")
	ErrMissingIdentifier  = NewBadRequest(ErrCodeMissingIdentifier, "You must provide either a registration number or an email")
	ErrUserNotFound       = NewNotFound(ErrCodeUserNotFound, "User not found")
	ErrEmailInUse         = NewConflict(ErrCodeEmailInUse, "Email already in use")
	ErrRegistrationInUse  = NewConflict(ErrCodeRegistrationInUse, "Registration number already in use")
	ErrNotAWaiter         = NewBadRequest(ErrCodeNotAWaiter, "User is not a waiter")
	ErrTablesMissing      = NewBadRequest(ErrCodeTablesMissing, "Some tables do not exist")
	ErrTableNotFound      = NewNotFound(ErrCodeTableNotFound, "Table not found")
	ErrTableUnavailable   = NewNotFound(ErrCodeTableUnavailable, "Table not found or not available for orders")
	ErrDishNotFound       = NewNotFound(ErrCodeDishNotFound, "Dish not found")
	ErrDishesNotFound     = NewNotFound(ErrCodeDishesNotFound, "Some dishes were not found")
	ErrDishExists         = NewConflict(ErrCodeDishExists, "A dish with the same name already exists")
	ErrInsufficientStock  = NewConflict(ErrCodeInsufficientStock, "Insufficient stock for one or more dishes")
	ErrOrderNotFound      = NewNotFound(ErrCodeOrderNotFound, "Order not found")
	ErrNothingToBill      = NewBadRequest(ErrCodeNothingToBill, "There are no open orders to bill for this table")
	ErrBillNotFound       = NewNotFound(ErrCodeBillNotFound, "Bill not found")
	ErrBillNotPending     = NewConflict(ErrCodeBillNotPending, "Bill is not pending")
	ErrInvalidImage       = NewBadRequest(ErrCodeInvalidImage, "Image must be a PNG, JPEG or WEBP file up to 5MB")
)

// ErrCustomizationNotFound reports a customization id outside the dish's customization set.
func ErrCustomizationNotFound(id string) *DomainError {
	return NewNotFound(ErrCodeCustomizationNotFound, fmt.Sprintf("Customization not found: %s", id))
}

// ValidationError carries schema-level violations keyed by field name.
type ValidationError struct {
	Fields map[string][]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+strings.Join(e.Fields[k], ", "))
	}
	return "validation error: " + strings.Join(parts, "; ")
}

// Add records a violation for field.
func (e *ValidationError) Add(field, message string) {
	if e.Fields == nil {
		e.Fields = make(map[string][]string)
	}
	e.Fields[field] = append(e.Fields[field], message)
}

// NewValidationError creates a validation error with a single violation.
func NewValidationError(field, message string) *ValidationError {
	v := &ValidationError{}
	v.Add(field, message)
	return v
}

// AsDomainError unwraps err into a DomainError when possible.
func AsDomainError(err error) (*DomainError, bool) {
	var de *DomainError
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}
