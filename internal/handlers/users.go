package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"client-portal-backend/internal/identity"
	"client-portal-backend/internal/middleware"
	"client-portal-backend/internal/models"
)

type UsersHandler struct {
	resolver *identity.Resolver
}

func NewUsersHandler(resolver *identity.Resolver) *UsersHandler {
	return &UsersHandler{resolver: resolver}
}

// Sync godoc
// @Summary     Sync the authenticated user
// @Description Creates or updates the internal user record from the authenticated identity. Invited placeholders are linked by email on first call.
// @Tags        users
// @Produce     json
// @Security    Bearer
// @Success     200 {object} models.UserResponse
// @Failure     401 {object} models.ErrorResponse
// @Router      /users/sync [post]
func (h *UsersHandler) Sync(c *gin.Context) {
	id, ok := middleware.IdentityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "unauthenticated"})
		return
	}

	user, err := h.resolver.ResolveOrCreate(id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, userResponse(user))
}

// Me returns the current user, or JSON null for an anonymous caller. The
// route sits behind the optional auth middleware on purpose.
func (h *UsersHandler) Me(c *gin.Context) {
	id, _ := middleware.IdentityFrom(c)

	user, err := h.resolver.Current(id)
	if err != nil {
		respondError(c, err)
		return
	}
	if user == nil {
		c.JSON(http.StatusOK, nil)
		return
	}

	c.JSON(http.StatusOK, userResponse(user))
}

// ElevateToAdmin promotes the caller's own record to admin. Bootstrap
// convenience; idempotent.
func (h *UsersHandler) ElevateToAdmin(c *gin.Context) {
	id, ok := middleware.IdentityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "unauthenticated"})
		return
	}

	user, err := h.resolver.ElevateToAdmin(id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, userResponse(user))
}
