package handler

import (
	"net/http"

	"github.com/menu-interativo/back-end/internal/auth"
	"github.com/menu-interativo/back-end/internal/model"
	"github.com/menu-interativo/back-end/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// DishHandler handles menu requests.
type DishHandler struct {
	service service.DishService
	auth    auth.Authorizer
	logger  zerolog.Logger
}

// NewDishHandler creates a new dish handler.
func NewDishHandler(service service.DishService, authorizer auth.Authorizer, logger zerolog.Logger) *DishHandler {
	return &DishHandler{
		service: service,
		auth:    authorizer,
		logger:  logger.With().Str("handler", "dish").Logger(),
	}
}

// Create handles POST /dishes requests.
func (h *DishHandler) Create(w http.ResponseWriter, r *http.Request) {
	if authorize(w, r, h.auth, h.logger, model.RoleAdmin) == nil {
		return
	}

	var req model.CreateDishRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	id, err := h.service.Create(r.Context(), &req)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, model.CreatedResponse{DishID: &id})
}

// List handles GET /dishes requests.
func (h *DishHandler) List(w http.ResponseWriter, r *http.Request) {
	if authorize(w, r, h.auth, h.logger, model.RoleAdmin) == nil {
		return
	}

	dishes, err := h.service.List(r.Context())
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, model.DishesResponse{Dishes: dishes})
}

// ListAvailable handles GET /dishes/{category}/available requests.
func (h *DishHandler) ListAvailable(w http.ResponseWriter, r *http.Request) {
	dishes, err := h.service.ListAvailable(r.Context(), chi.URLParam(r, "category"))
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, model.DishesResponse{Dishes: dishes})
}

// CreateCustomization handles POST /dishes/customizations requests.
func (h *DishHandler) CreateCustomization(w http.ResponseWriter, r *http.Request) {
	if authorize(w, r, h.auth, h.logger, model.RoleAdmin) == nil {
		return
	}

	var req model.CreateCustomizationRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	id, err := h.service.CreateCustomization(r.Context(), &req)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, model.CreatedResponse{CustomizationID: &id})
}

// AttachCustomizations handles PUT /dishes/{slug}/customizations requests.
func (h *DishHandler) AttachCustomizations(w http.ResponseWriter, r *http.Request) {
	if authorize(w, r, h.auth, h.logger, model.RoleAdmin) == nil {
		return
	}

	var req model.AttachCustomizationsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	if err := h.service.AttachCustomizations(r.Context(), chi.URLParam(r, "slug"), &req); err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// UploadImage handles PUT /dishes/{slug}/image requests.
func (h *DishHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	if authorize(w, r, h.auth, h.logger, model.RoleAdmin) == nil {
		return
	}

	upload, body, err := readImage(w, r)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}
	defer body.Close()

	url, err := h.service.UploadImage(r.Context(), chi.URLParam(r, "slug"), upload)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, model.ImageResponse{URL: url})
}
