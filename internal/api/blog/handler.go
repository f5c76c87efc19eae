package blog

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"artist-portfolio/internal/api/respond"
	"artist-portfolio/internal/domain/blog"
	"artist-portfolio/internal/remote"
	"artist-portfolio/internal/state/posts"
)

type Handler struct {
	store remote.Posts
	log   *zap.Logger
}

func NewHandler(store remote.Posts, log *zap.Logger) *Handler {
	return &Handler{store: store, log: log}
}

func (h *Handler) manager() *posts.Manager {
	return posts.New(h.store, posts.Options{Logger: h.log})
}

type PostInput struct {
	Title            string   `json:"title"`
	Content          string   `json:"content"`
	Excerpt          *string  `json:"excerpt"`
	Slug             string   `json:"slug"`
	FeaturedImageURL *string  `json:"featured_image_url"`
	IsPublished      bool     `json:"is_published"`
	IsFeatured       bool     `json:"is_featured"`
	Tags             []string `json:"tags"`
	MetaDescription  *string  `json:"meta_description"`
}

type SlugRequest struct {
	Title string `json:"title"`
}

// GET /blog
func (h *Handler) ListPublished(c *gin.Context) {
	m := h.manager()
	if err := m.Load(c.Request.Context(), true); err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, m.Posts())
}

// GET /blog/:slug
func (h *Handler) GetBySlug(c *gin.Context) {
	list, err := h.store.SelectPosts(c.Request.Context(), remote.PostFilter{
		PublishedOnly: true,
		Slug:          c.Param("slug"),
	})
	if err != nil {
		respond.Error(c, remote.Wrap("Failed to load blog post", err))
		return
	}
	if len(list) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}
	c.JSON(http.StatusOK, list[0])
}

// GET /admin/blog
func (h *Handler) AdminList(c *gin.Context) {
	m := h.manager()
	if err := m.Load(c.Request.Context(), false); err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, m.Posts())
}

// POST /admin/blog
func (h *Handler) Create(c *gin.Context) {
	var in PostInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respond.BadJSON(c, err)
		return
	}

	p := blog.Post{
		Title:            strings.TrimSpace(in.Title),
		Content:          in.Content,
		Excerpt:          in.Excerpt,
		Slug:             strings.TrimSpace(in.Slug),
		FeaturedImageURL: in.FeaturedImageURL,
		IsPublished:      in.IsPublished,
		IsFeatured:       in.IsFeatured,
		Tags:             in.Tags,
		MetaDescription:  in.MetaDescription,
	}
	if uid := c.GetUint("user_id"); uid != 0 {
		p.AuthorID = &uid
	}

	saved, err := h.manager().Create(c.Request.Context(), p)
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, saved)
}

// PATCH /admin/blog/:id
func (h *Handler) Update(c *gin.Context) {
	var patch blog.PostPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		respond.BadJSON(c, err)
		return
	}

	// The manager only stamps published_at when it knows the post was never
	// published, so it needs the current list first.
	m := h.manager()
	if patch.IsPublished != nil && *patch.IsPublished {
		if err := m.Load(c.Request.Context(), false); err != nil {
			respond.Error(c, err)
			return
		}
	}

	saved, err := m.Update(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, saved)
}

// DELETE /admin/blog/:id
func (h *Handler) Delete(c *gin.Context) {
	if err := h.manager().Delete(c.Request.Context(), c.Param("id")); err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// POST /admin/blog/slug
func (h *Handler) Slug(c *gin.Context) {
	var req SlugRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Title) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Title is required"})
		return
	}
	slug, err := h.store.GenerateSlug(c.Request.Context(), req.Title)
	if err != nil {
		respond.Error(c, remote.Wrap("Failed to generate slug", err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"slug": slug})
}
