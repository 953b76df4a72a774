package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/royalsilk/storefront/internal/api/middleware"
	"github.com/royalsilk/storefront/internal/core/domain"
	"github.com/royalsilk/storefront/internal/core/ports"
)

// UsersHandler serves the list_users route. The listing is restricted to
// admins; the session's user_id is resolved to a profile to check the role.
type UsersHandler struct {
	users    ports.UserRepository
	sessions ports.SessionStore
	logger   zerolog.Logger
}

func NewUsersHandler(users ports.UserRepository, sessions ports.SessionStore, logger zerolog.Logger) *UsersHandler {
	return &UsersHandler{users: users, sessions: sessions, logger: logger}
}

// ListUsers serves the list_users route.
func (h *UsersHandler) ListUsers(c echo.Context) error {
	ctx := c.Request().Context()
	sid := middleware.SessionID(c)

	raw, found, err := h.sessions.Get(ctx, sid, ports.SessionKeyUserID)
	if err != nil {
		return err
	}
	if !found {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "login required"})
	}

	userID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "login required"})
	}

	profile, err := h.users.FetchProfileByID(ctx, userID)
	if errors.Is(err, domain.ErrUserNotFound) {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "login required"})
	}
	if err != nil {
		return err
	}

	if profile.Role != domain.RoleAdmin {
		return c.JSON(http.StatusForbidden, map[string]string{"error": "access forbidden"})
	}

	profiles, err := h.users.ListUsers(ctx)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]any{
		"page":  "list_users",
		"users": profiles,
	})
}
