package stripewebhooks

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v75"
	"go.uber.org/zap"

	"artist-portfolio/internal/apperr"
	"artist-portfolio/internal/domain/works"
	stripeinfra "artist-portfolio/internal/infra/stripe"
)

// SoldMarker is satisfied by the catalog manager, so the gallery cache sees
// the sale right away.
type SoldMarker interface {
	Update(ctx context.Context, id string, p works.ArtworkPatch) (works.Artwork, error)
}

func (h *Handler) handleCheckoutSessionCompleted(c *gin.Context, session *stripe.CheckoutSession) error {
	if !stripeinfra.Paid(session) {
		h.log.Info("checkout completed without payment yet", zap.String("session_id", session.ID))
		return nil
	}

	artworkID := stripeinfra.ArtworkID(session)
	if artworkID == "" {
		// nothing to retry
		h.log.Warn("checkout session without artwork", zap.String("session_id", session.ID))
		return nil
	}

	sold := true
	if _, err := h.sold.Update(c.Request.Context(), artworkID, works.ArtworkPatch{IsSold: &sold}); err != nil {
		if apperr.Is(err, apperr.CodeNotFound) {
			h.log.Warn("sold artwork no longer exists", zap.String("artwork_id", artworkID))
			return nil
		}
		return fmt.Errorf("failed to mark artwork %s sold: %w", artworkID, err)
	}

	h.log.Info("artwork sold", zap.String("artwork_id", artworkID), zap.String("session_id", session.ID))
	return nil
}
