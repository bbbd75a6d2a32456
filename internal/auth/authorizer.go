// Package auth resolves the caller's identity from a bearer token and gates
// access by role. Roles are always re-read from storage so that promotions and
// revocations apply to the very next request.
package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/menu-interativo/back-end/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// RoleFinder looks up a user's current role. It returns found=false for unknown users.
type RoleFinder interface {
	FindRole(ctx context.Context, userID uuid.UUID) (role model.Role, found bool, err error)
}

// Context is the authorization capability of a single request.
type Context interface {
	// CurrentUserID returns the verified subject or model.ErrUnauthorized.
	CurrentUserID() (uuid.UUID, error)

	// RequireAnyRole fails with model.ErrUnauthorized when the caller is not
	// authenticated and model.ErrForbidden when the caller is unknown or holds
	// none of roles.
	RequireAnyRole(ctx context.Context, roles ...model.Role) error
}

// Authorizer builds a Context per request.
type Authorizer interface {
	For(r *http.Request) Context
}

type authorizer struct {
	tokens *TokenManager
	roles  RoleFinder
	logger zerolog.Logger
}

// NewAuthorizer creates an authorizer backed by tokens and roles.
func NewAuthorizer(tokens *TokenManager, roles RoleFinder, logger zerolog.Logger) Authorizer {
	return &authorizer{
		tokens: tokens,
		roles:  roles,
		logger: logger.With().Str("component", "authorizer").Logger(),
	}
}

func (a *authorizer) For(r *http.Request) Context {
	return &requestContext{
		a:     a,
		token: bearerToken(r),
		path:  r.URL.Path,
	}
}

type requestContext struct {
	a     *authorizer
	token string
	path  string

	resolved bool
	userID   uuid.UUID
	err      error
}

func (c *requestContext) CurrentUserID() (uuid.UUID, error) {
	if !c.resolved {
		c.resolved = true
		c.userID, c.err = c.a.tokens.Verify(c.token)
		if c.err != nil {
			c.a.logger.Debug().Err(c.err).Str("path", c.path).Msg("token rejected")
			c.err = model.ErrUnauthorized
		}
	}
	return c.userID, c.err
}

func (c *requestContext) RequireAnyRole(ctx context.Context, roles ...model.Role) error {
	if len(roles) == 0 {
		return errors.New("RequireAnyRole called without roles")
	}

	userID, err := c.CurrentUserID()
	if err != nil {
		return err
	}

	role, found, err := c.a.roles.FindRole(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to look up role: %w", err)
	}
	if !found {
		c.a.logger.Warn().Str("user_id", userID.String()).Str("path", c.path).Msg("token subject no longer exists")
		return model.ErrForbidden
	}

	for _, allowed := range roles {
		if role == allowed {
			return nil
		}
	}

	c.a.logger.Warn().
		Str("user_id", userID.String()).
		Str("role", string(role)).
		Str("path", c.path).
		Msg("role not permitted")
	return model.ErrForbidden
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if len(h) < 7 || !strings.EqualFold(h[:7], "bearer ") {
		return ""
	}
	return strings.TrimSpace(h[7:])
}
