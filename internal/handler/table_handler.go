package handler

import (
	"net/http"

	"github.com/menu-interativo/back-end/internal/auth"
	"github.com/menu-interativo/back-end/internal/model"
	"github.com/menu-interativo/back-end/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// TableHandler handles table and bill requests.
type TableHandler struct {
	tables service.TableService
	bills  service.BillService
	auth   auth.Authorizer
	logger zerolog.Logger
}

// NewTableHandler creates a new table handler.
func NewTableHandler(tables service.TableService, bills service.BillService, authorizer auth.Authorizer, logger zerolog.Logger) *TableHandler {
	return &TableHandler{
		tables: tables,
		bills:  bills,
		auth:   authorizer,
		logger: logger.With().Str("handler", "table").Logger(),
	}
}

// Create handles POST /tables requests.
func (h *TableHandler) Create(w http.ResponseWriter, r *http.Request) {
	if authorize(w, r, h.auth, h.logger, model.RoleAdmin) == nil {
		return
	}

	var req model.CreateTableRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	id, err := h.tables.Create(r.Context(), &req)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, model.CreatedResponse{TableID: &id})
}

// List handles GET /tables requests.
func (h *TableHandler) List(w http.ResponseWriter, r *http.Request) {
	if authorize(w, r, h.auth, h.logger, model.RoleAdmin) == nil {
		return
	}

	tables, err := h.tables.List(r.Context())
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, model.TablesResponse{Tables: tables})
}

// ListAssigned handles GET /tables/assigned requests.
func (h *TableHandler) ListAssigned(w http.ResponseWriter, r *http.Request) {
	ac := authorize(w, r, h.auth, h.logger, model.RoleWaiter)
	if ac == nil {
		return
	}
	waiterID, err := ac.CurrentUserID()
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	tables, err := h.tables.ListAssigned(r.Context(), waiterID)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, model.TablesResponse{Tables: tables})
}

// Update handles PUT /tables/{id} requests.
func (h *TableHandler) Update(w http.ResponseWriter, r *http.Request) {
	if authorize(w, r, h.auth, h.logger, model.RoleAdmin) == nil {
		return
	}

	var req model.UpdateTableRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	if err := h.tables.Update(r.Context(), chi.URLParam(r, "id"), &req); err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Get handles GET /tables/{tableId} requests.
func (h *TableHandler) Get(w http.ResponseWriter, r *http.Request) {
	if authorize(w, r, h.auth, h.logger, model.RoleAdmin, model.RoleWaiter) == nil {
		return
	}

	details, err := h.tables.Details(r.Context(), chi.URLParam(r, "tableId"))
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, model.TableResponse{Table: *details})
}

// QRCode handles GET /tables/{tableId}/qrcode requests.
func (h *TableHandler) QRCode(w http.ResponseWriter, r *http.Request) {
	if authorize(w, r, h.auth, h.logger, model.RoleAdmin) == nil {
		return
	}

	png, err := h.tables.QRCode(r.Context(), chi.URLParam(r, "tableId"))
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(png)
}

// CloseBill handles POST /tables/{tableId}/bill requests.
func (h *TableHandler) CloseBill(w http.ResponseWriter, r *http.Request) {
	if authorize(w, r, h.auth, h.logger, model.RoleAdmin, model.RoleWaiter) == nil {
		return
	}

	bill, err := h.bills.Close(r.Context(), chi.URLParam(r, "tableId"))
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, bill)
}

// PayBill handles PATCH /bills/{billId}/pay requests.
func (h *TableHandler) PayBill(w http.ResponseWriter, r *http.Request) {
	if authorize(w, r, h.auth, h.logger, model.RoleAdmin, model.RoleWaiter) == nil {
		return
	}

	if err := h.bills.Pay(r.Context(), chi.URLParam(r, "billId")); err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
