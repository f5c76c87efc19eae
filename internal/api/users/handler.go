package users

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"artist-portfolio/internal/api/auth"
	"artist-portfolio/internal/api/respond"
	"artist-portfolio/internal/remote"
	"artist-portfolio/internal/session"
)

type Store interface {
	remote.Users
	remote.Roles
}

type Handler struct {
	store Store
}

func NewHandler(store Store) *Handler {
	return &Handler{store: store}
}

// GET /auth/me
func (h *Handler) GetCurrentUser(c *gin.Context) {
	s, ok := session.FromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	user, err := h.store.UserByID(c.Request.Context(), s.UserID)
	if err != nil {
		respond.Error(c, remote.Wrap("User not found", err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":       auth.ToUserDTO(user),
		"expires_at": s.ExpiresAt,
	})
}

// GET /roles/:role
func (h *Handler) HasOwnRole(c *gin.Context) {
	h.hasRole(c, c.GetUint("user_id"))
}

// GET /admin/users/:id/roles/:role
func (h *Handler) HasRole(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user id"})
		return
	}
	h.hasRole(c, uint(id))
}

func (h *Handler) hasRole(c *gin.Context, userID uint) {
	role := c.Param("role")
	ok, err := h.store.HasRole(c.Request.Context(), userID, role)
	if err != nil {
		respond.Error(c, remote.Wrap("Failed to check role", err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"user_id": userID, "role": role, "has_role": ok})
}
