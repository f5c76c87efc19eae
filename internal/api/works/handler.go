package works

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"artist-portfolio/internal/api/respond"
	"artist-portfolio/internal/domain/works"
	"artist-portfolio/internal/gallery"
	"artist-portfolio/internal/remote"
	"artist-portfolio/internal/state/catalog"
)

// Handler serves the public gallery from the catalog cache. Admin writes go
// through the same manager so the cache never lags behind them.
type Handler struct {
	catalog  *catalog.Manager
	store    remote.Artworks
	pageSize int
}

func NewHandler(m *catalog.Manager, store remote.Artworks, pageSize int) *Handler {
	if pageSize <= 0 {
		pageSize = gallery.DefaultPageSize
	}
	return &Handler{catalog: m, store: store, pageSize: pageSize}
}

// GET /categories
func (h *Handler) ListCategories(c *gin.Context) {
	c.JSON(http.StatusOK, h.catalog.Categories())
}

// GET /periods
func (h *Handler) ListPeriods(c *gin.Context) {
	c.JSON(http.StatusOK, works.Periods())
}

// GET /artworks
func (h *Handler) ListPublished(c *gin.Context) {
	c.JSON(http.StatusOK, toDTOs(h.catalog.Published()))
}

// GET /artworks/:id
func (h *Handler) GetPublished(c *gin.Context) {
	a, ok := h.catalog.Find(c.Param("id"))
	if !ok || !a.IsPublished {
		c.JSON(http.StatusNotFound, gin.H{"error": "Artwork not found"})
		return
	}
	c.JSON(http.StatusOK, toDTO(a))
}

// GET /gallery?category=&period=&page=&page_size=
func (h *Handler) Gallery(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	size := h.pageSize
	if v, err := strconv.Atoi(c.Query("page_size")); err == nil && v > 0 && v <= 100 {
		size = v
	}

	published := h.catalog.Published()
	res := gallery.ComputeVisible(published, gallery.Filter{
		Category: c.Query("category"),
		Period:   c.Query("period"),
	}, page, size)

	c.JSON(http.StatusOK, GalleryResponse{
		Artworks:   toDTOs(res.Visible),
		Page:       res.Page,
		PageSize:   res.PageSize,
		TotalPages: res.TotalPages,
		Total:      res.Total,
		Categories: gallery.Categories(published),
		Periods:    works.Periods(),
	})
}

// ------------------------------
// Admin
// ------------------------------

// GET /admin/artworks
func (h *Handler) AdminList(c *gin.Context) {
	list, err := h.store.SelectArtworks(c.Request.Context(), remote.ArtworkFilter{
		CategoryID: c.Query("category_id"),
	})
	if err != nil {
		respond.Error(c, remote.Wrap("Failed to load artworks", err))
		return
	}
	c.JSON(http.StatusOK, list)
}

// GET /admin/artworks/:id
func (h *Handler) AdminGet(c *gin.Context) {
	a, err := h.store.GetArtwork(c.Request.Context(), c.Param("id"))
	if err != nil {
		respond.Error(c, remote.Wrap("Artwork not found", err))
		return
	}
	c.JSON(http.StatusOK, a)
}

// POST /admin/artworks
func (h *Handler) Create(c *gin.Context) {
	var in ArtworkInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respond.BadJSON(c, err)
		return
	}
	saved, err := h.catalog.Create(c.Request.Context(), in.toArtwork())
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, saved)
}

// PATCH /admin/artworks/:id
func (h *Handler) Update(c *gin.Context) {
	var p works.ArtworkPatch
	if err := c.ShouldBindJSON(&p); err != nil {
		respond.BadJSON(c, err)
		return
	}
	saved, err := h.catalog.Update(c.Request.Context(), c.Param("id"), p)
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, saved)
}

// DELETE /admin/artworks/:id
func (h *Handler) Delete(c *gin.Context) {
	if err := h.catalog.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// POST /admin/categories
func (h *Handler) CreateCategory(c *gin.Context) {
	var in CategoryInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respond.BadJSON(c, err)
		return
	}
	saved, err := h.catalog.CreateCategory(c.Request.Context(), works.Category{
		Name:        in.Name,
		Description: in.Description,
	})
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, saved)
}
