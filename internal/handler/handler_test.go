package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/menu-interativo/back-end/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeError(t *testing.T, w *httptest.ResponseRecorder) model.ErrorResponse {
	t.Helper()
	var resp model.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestWriteServiceError(t *testing.T) {
	tests := []struct {
		name            string
		err             error
		expectedStatus  int
		expectedMessage string
	}{
		{
			name:            "Bad request",
			err:             model.ErrMissingIdentifier,
			expectedStatus:  http.StatusBadRequest,
			expectedMessage: "You must provide either a registration number or an email",
		},
		{
			name:            "Unauthorized",
			err:             model.ErrUnauthorized,
			expectedStatus:  http.StatusUnauthorized,
			expectedMessage: "Invalid or missing token",
		},
		{
			name:            "Forbidden",
			err:             model.ErrForbidden,
			expectedStatus:  http.StatusForbidden,
			expectedMessage: "You do not have permission to access this resource",
		},
		{
			name:            "Not found",
			err:             model.ErrTableUnavailable,
			expectedStatus:  http.StatusNotFound,
			expectedMessage: "Table not found or not available for orders",
		},
		{
			name:            "Conflict",
			err:             model.ErrInsufficientStock,
			expectedStatus:  http.StatusConflict,
			expectedMessage: "Insufficient stock for one or more dishes",
		},
		{
			name:            "Wrapped domain error",
			err:             fmt.Errorf("failed to place order: %w", model.ErrDishesNotFound),
			expectedStatus:  http.StatusNotFound,
			expectedMessage: "Some dishes were not found",
		},
		{
			name:            "Infrastructure error is hidden",
			err:             errors.New("pq: connection refused on 10.0.0.3"),
			expectedStatus:  http.StatusInternalServerError,
			expectedMessage: "Internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodGet, "/anything", nil)

			writeServiceError(w, r, tt.err, zerolog.Nop())

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
			assert.Equal(t, tt.expectedMessage, decodeError(t, w).Message)
		})
	}
}

func TestWriteServiceError_Validation(t *testing.T) {
	verr := &model.ValidationError{}
	verr.Add("tableId", "must be a valid UUID")
	verr.Add("dishes", "must contain at least 1 item(s)")

	w := httptest.NewRecorder()
	writeServiceError(w, httptest.NewRequest(http.MethodPost, "/orders", nil), verr, zerolog.Nop())

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeError(t, w)
	assert.Equal(t, "Validation error.", resp.Message)
	assert.Equal(t, []string{"must be a valid UUID"}, resp.Issues["tableId"])
	assert.Equal(t, []string{"must contain at least 1 item(s)"}, resp.Issues["dishes"])
}

func TestHealth(t *testing.T) {
	w := httptest.NewRecorder()
	Health(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"healthy"}`, w.Body.String())
}
