package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"artist-portfolio/internal/api/respond"
	"artist-portfolio/internal/domain/blog"
	"artist-portfolio/internal/domain/comments"
	"artist-portfolio/internal/domain/works"
	"artist-portfolio/internal/remote"
)

type Stats struct {
	Artworks          int `json:"artworks"`
	PublishedArtworks int `json:"published_artworks"`
	SoldArtworks      int `json:"sold_artworks"`
	Categories        int `json:"categories"`
	PendingComments   int `json:"pending_comments"`
	ApprovedComments  int `json:"approved_comments"`
	PublishedPosts    int `json:"published_posts"`
	DraftPosts        int `json:"draft_posts"`
}

type Handler struct {
	store remote.Client
}

func NewHandler(store remote.Client) *Handler {
	return &Handler{store: store}
}

// GET /admin/dashboard
func (h *Handler) AdminDashboard(c *gin.Context) {
	ctx := c.Request.Context()
	var (
		arts  []works.Artwork
		cats  []works.Category
		comms []comments.Comment
		posts []blog.Post
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		arts, err = h.store.SelectArtworks(gctx, remote.ArtworkFilter{})
		return err
	})
	g.Go(func() (err error) {
		cats, err = h.store.SelectCategories(gctx)
		return err
	})
	g.Go(func() (err error) {
		comms, err = h.store.SelectComments(gctx, remote.CommentFilter{})
		return err
	})
	g.Go(func() (err error) {
		posts, err = h.store.SelectPosts(gctx, remote.PostFilter{})
		return err
	})
	if err := g.Wait(); err != nil {
		respond.Error(c, remote.Wrap("Failed to load dashboard", err))
		return
	}

	stats := Stats{Artworks: len(arts), Categories: len(cats)}
	for _, a := range arts {
		if a.IsPublished {
			stats.PublishedArtworks++
		}
		if a.IsSold {
			stats.SoldArtworks++
		}
	}
	for _, cm := range comms {
		if cm.IsApproved {
			stats.ApprovedComments++
		} else {
			stats.PendingComments++
		}
	}
	for _, p := range posts {
		if p.IsPublished {
			stats.PublishedPosts++
		} else {
			stats.DraftPosts++
		}
	}

	c.JSON(http.StatusOK, stats)
}
