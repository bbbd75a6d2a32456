package handler

import (
	"net/http"

	"github.com/menu-interativo/back-end/internal/auth"
	"github.com/menu-interativo/back-end/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// authorize gates a request on the caller holding one of roles. On failure the
// response has been written and the returned context is nil.
func authorize(w http.ResponseWriter, r *http.Request, a auth.Authorizer, logger zerolog.Logger, roles ...model.Role) auth.Context {
	ac := a.For(r)
	if err := ac.RequireAnyRole(r.Context(), roles...); err != nil {
		writeServiceError(w, r, err, logger)
		return nil
	}
	return ac
}

// currentUser resolves the authenticated caller without a role check.
func currentUser(w http.ResponseWriter, r *http.Request, a auth.Authorizer, logger zerolog.Logger) (uuid.UUID, bool) {
	id, err := a.For(r).CurrentUserID()
	if err != nil {
		writeServiceError(w, r, err, logger)
		return uuid.Nil, false
	}
	return id, true
}
