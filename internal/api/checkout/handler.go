package checkout

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"artist-portfolio/internal/domain/works"
	"artist-portfolio/internal/infra/stripe"
)

// Sessions opens a payment session for one artwork.
type Sessions interface {
	Create(ctx context.Context, a works.Artwork) (stripe.Session, error)
}

type Artworks interface {
	Find(id string) (works.Artwork, bool)
}

type Handler struct {
	sessions Sessions
	artworks Artworks
	log      *zap.Logger
}

func NewHandler(sessions Sessions, artworks Artworks, log *zap.Logger) *Handler {
	return &Handler{sessions: sessions, artworks: artworks, log: log}
}

// POST /artworks/:id/checkout
func (h *Handler) Create(c *gin.Context) {
	a, ok := h.artworks.Find(c.Param("id"))
	if !ok || !a.IsPublished {
		c.JSON(http.StatusNotFound, gin.H{"error": "Artwork not found"})
		return
	}

	s, err := h.sessions.Create(c.Request.Context(), a)
	switch {
	case errors.Is(err, stripe.ErrNotForSale):
		c.JSON(http.StatusConflict, gin.H{"error": "This artwork is no longer available"})
		return
	case errors.Is(err, stripe.ErrNoPrice):
		c.JSON(http.StatusConflict, gin.H{"error": "This artwork has no price"})
		return
	case err != nil:
		h.log.Error("checkout session failed", zap.String("artwork_id", a.ID), zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to create checkout session"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": s.ID, "url": s.URL})
}
