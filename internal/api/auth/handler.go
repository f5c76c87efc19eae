package auth

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"artist-portfolio/internal/domain/users"
	"artist-portfolio/internal/remote"
	"artist-portfolio/internal/session"
)

type Options struct {
	Secret     string
	SessionTTL time.Duration
	Google     *GoogleConfig
	Logger     *zap.Logger
	Now        func() time.Time
}

// Handler signs operators in. Every token it issues is backed by a session
// that logout revokes.
type Handler struct {
	users    remote.Users
	sessions session.Store
	secret   string
	ttl      time.Duration
	google   *GoogleConfig
	log      *zap.Logger
	now      func() time.Time
}

func NewHandler(u remote.Users, sessions session.Store, opts Options) *Handler {
	if opts.SessionTTL <= 0 {
		opts.SessionTTL = 24 * time.Hour
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Handler{
		users:    u,
		sessions: sessions,
		secret:   opts.Secret,
		ttl:      opts.SessionTTL,
		google:   opts.Google,
		log:      opts.Logger,
		now:      opts.Now,
	}
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	User      UserDTO   `json:"user"`
}

type UserDTO struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

func ToUserDTO(u users.User) UserDTO {
	return UserDTO{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}

// POST /auth/login
func (h *Handler) Login(c *gin.Context) {
	var input LoginRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email and password are required"})
		return
	}

	user, err := h.users.UserByEmail(c.Request.Context(), strings.ToLower(strings.TrimSpace(input.Email)))
	if err != nil {
		if !errors.Is(err, remote.ErrNotFound) {
			h.log.Error("login lookup failed", zap.Error(err))
		}
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	if user.Password == nil || *user.Password == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "This account uses Google sign-in"})
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*user.Password), []byte(input.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	resp, err := h.startSession(c, user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create token"})
		return
	}
	c.JSON(http.StatusOK, resp)
}

// POST /auth/logout
func (h *Handler) Logout(c *gin.Context) {
	s, ok := session.FromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	if err := h.sessions.Revoke(c.Request.Context(), s.ID); err != nil {
		h.log.Error("session revoke failed", zap.String("session_id", s.ID), zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Could not sign out"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Signed out"})
}

func (h *Handler) startSession(c *gin.Context, user users.User) (LoginResponse, error) {
	s := session.New(user.ID, user.Email, user.Role, h.now(), h.ttl)
	if err := h.sessions.Create(c.Request.Context(), s); err != nil {
		h.log.Error("session create failed", zap.Uint("user_id", user.ID), zap.Error(err))
		return LoginResponse{}, err
	}
	token, err := session.IssueToken(h.secret, s)
	if err != nil {
		return LoginResponse{}, err
	}
	h.log.Info("operator signed in", zap.Uint("user_id", user.ID), zap.String("role", user.Role))
	return LoginResponse{Token: token, ExpiresAt: s.ExpiresAt, User: ToUserDTO(user)}, nil
}
