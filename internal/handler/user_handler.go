package handler

import (
	"net/http"

	"github.com/menu-interativo/back-end/internal/auth"
	"github.com/menu-interativo/back-end/internal/model"
	"github.com/menu-interativo/back-end/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// UserHandler handles authentication and staff account requests.
type UserHandler struct {
	service service.UserService
	auth    auth.Authorizer
	logger  zerolog.Logger
}

// NewUserHandler creates a new user handler.
func NewUserHandler(service service.UserService, authorizer auth.Authorizer, logger zerolog.Logger) *UserHandler {
	return &UserHandler{
		service: service,
		auth:    authorizer,
		logger:  logger.With().Str("handler", "user").Logger(),
	}
}

// Authenticate handles POST /sessions requests.
func (h *UserHandler) Authenticate(w http.ResponseWriter, r *http.Request) {
	var req model.AuthenticateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	resp, err := h.service.Authenticate(r.Context(), &req)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// Profile handles GET /profile requests.
func (h *UserHandler) Profile(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r, h.auth, h.logger)
	if !ok {
		return
	}

	user, err := h.service.Profile(r.Context(), userID)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, model.UserResponse{User: *user})
}

// Create handles POST /users requests.
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	if authorize(w, r, h.auth, h.logger, model.RoleAdmin) == nil {
		return
	}

	var req model.CreateUserRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	id, err := h.service.Create(r.Context(), &req)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, model.CreatedResponse{UserID: &id})
}

// List handles GET /users requests.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	if authorize(w, r, h.auth, h.logger, model.RoleAdmin) == nil {
		return
	}

	users, err := h.service.List(r.Context())
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, model.UsersResponse{Users: users})
}

// Get handles GET /users/{userId} requests.
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	if authorize(w, r, h.auth, h.logger, model.RoleAdmin) == nil {
		return
	}

	user, err := h.service.GetByID(r.Context(), chi.URLParam(r, "userId"))
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, model.UserResponse{User: *user})
}

// Update handles PUT /users/{id} requests.
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	if authorize(w, r, h.auth, h.logger, model.RoleAdmin) == nil {
		return
	}

	var req model.UpdateUserRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	user, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, model.UserResponse{User: *user})
}

// AssignTables handles PUT /users/{userId}/assign-tables requests.
func (h *UserHandler) AssignTables(w http.ResponseWriter, r *http.Request) {
	if authorize(w, r, h.auth, h.logger, model.RoleAdmin) == nil {
		return
	}

	var req model.AssignTablesRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	if err := h.service.AssignTables(r.Context(), chi.URLParam(r, "userId"), &req); err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// UploadAvatar handles PUT /users/{userId}/avatar requests.
func (h *UserHandler) UploadAvatar(w http.ResponseWriter, r *http.Request) {
	if authorize(w, r, h.auth, h.logger, model.RoleAdmin) == nil {
		return
	}

	upload, body, err := readImage(w, r)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}
	defer body.Close()

	url, err := h.service.UploadAvatar(r.Context(), chi.URLParam(r, "userId"), upload)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, model.ImageResponse{URL: url})
}
