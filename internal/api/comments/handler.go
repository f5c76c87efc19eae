package comments

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"artist-portfolio/internal/api/respond"
	"artist-portfolio/internal/apperr"
	"artist-portfolio/internal/domain/comments"
	"artist-portfolio/internal/domain/works"
	"artist-portfolio/internal/remote"
	"artist-portfolio/internal/state/moderation"
)

// Artworks tells whether a visitor may comment on an artwork.
type Artworks interface {
	Find(id string) (works.Artwork, bool)
}

type Handler struct {
	store    remote.Comments
	artworks Artworks
	log      *zap.Logger
}

func NewHandler(store remote.Comments, artworks Artworks, log *zap.Logger) *Handler {
	return &Handler{store: store, artworks: artworks, log: log}
}

// Each request gets its own manager; the store is the shared state.
func (h *Handler) manager() *moderation.Manager {
	return moderation.New(h.store, moderation.Options{Logger: h.log})
}

type SubmitRequest struct {
	UserName    string `json:"user_name"`
	UserEmail   string `json:"user_email"`
	CommentText string `json:"comment_text"`
	Rating      int    `json:"rating"`
}

type ListResponse struct {
	Comments []comments.Comment `json:"comments"`
	Pending  int                `json:"pending"`
	Approved int                `json:"approved"`
}

func (h *Handler) publishedArtwork(c *gin.Context) (string, bool) {
	id := c.Param("id")
	if a, ok := h.artworks.Find(id); !ok || !a.IsPublished {
		c.JSON(http.StatusNotFound, gin.H{"error": "Artwork not found"})
		return "", false
	}
	return id, true
}

// GET /artworks/:id/comments
func (h *Handler) ListApproved(c *gin.Context) {
	id, ok := h.publishedArtwork(c)
	if !ok {
		return
	}
	m := h.manager()
	if err := m.Load(c.Request.Context(), id); err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, m.Approved())
}

// POST /artworks/:id/comments
func (h *Handler) Submit(c *gin.Context) {
	id, ok := h.publishedArtwork(c)
	if !ok {
		return
	}
	var req SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BadJSON(c, err)
		return
	}

	saved, err := h.manager().Submit(c.Request.Context(), comments.Comment{
		ArtworkID:   id,
		UserName:    req.UserName,
		UserEmail:   req.UserEmail,
		CommentText: req.CommentText,
		Rating:      req.Rating,
	})
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "Comment submitted and awaiting approval",
		"comment": saved,
	})
}

// GET /admin/comments?artwork_id=&filter=all|pending|approved
func (h *Handler) AdminList(c *gin.Context) {
	filter, ok := comments.ParseFilter(c.Query("filter"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid filter", "code": apperr.CodeValidation})
		return
	}

	m := h.manager()
	if err := m.Load(c.Request.Context(), c.Query("artwork_id")); err != nil {
		respond.Error(c, err)
		return
	}
	pending, approved := m.Counts()
	c.JSON(http.StatusOK, ListResponse{
		Comments: m.Filter(filter),
		Pending:  pending,
		Approved: approved,
	})
}

// POST /admin/comments/:id/approve
func (h *Handler) Approve(c *gin.Context) {
	saved, err := h.manager().Approve(c.Request.Context(), c.Param("id"))
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, saved)
}

// DELETE /admin/comments/:id
func (h *Handler) Delete(c *gin.Context) {
	if err := h.manager().Delete(c.Request.Context(), c.Param("id")); err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
