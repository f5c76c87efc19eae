package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	adminapi "artist-portfolio/internal/api/admin"
	authapi "artist-portfolio/internal/api/auth"
	blogapi "artist-portfolio/internal/api/blog"
	checkoutapi "artist-portfolio/internal/api/checkout"
	commentsapi "artist-portfolio/internal/api/comments"
	mediaapi "artist-portfolio/internal/api/media"
	stripewebhooks "artist-portfolio/internal/api/stripewebhook"
	usersapi "artist-portfolio/internal/api/users"
	worksapi "artist-portfolio/internal/api/works"
	"artist-portfolio/internal/app/http/middleware"
	"artist-portfolio/internal/domain/users"
	"artist-portfolio/internal/infra/blob"
	"artist-portfolio/internal/remote"
	"artist-portfolio/internal/session"
)

// Handlers is everything RegisterRoutes mounts. Checkout and Media may be
// nil when Stripe or the blob store is not configured.
type Handlers struct {
	Works    *worksapi.Handler
	Comments *commentsapi.Handler
	Blog     *blogapi.Handler
	Media    *mediaapi.Handler
	Checkout *checkoutapi.Handler
	Webhook  *stripewebhooks.Handler
	Auth     *authapi.Handler
	Users    *usersapi.Handler
	Admin    *adminapi.Handler
}

type Deps struct {
	Handlers   Handlers
	Secret     string
	Sessions   session.Store
	Roles      remote.Roles
	CORSOrigin string
	// DevBlobs serves uploads from memory at GET /media/:id in dev mode.
	DevBlobs   *blob.Memory
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	h := d.Handlers

	// CORS must be in place before any route is added
	if d.CORSOrigin != "" {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     []string{d.CORSOrigin},
			AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
			ExposeHeaders:    []string{"Content-Length"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}
	if d.DevBlobs != nil {
		r.GET("/media/:id", serveBlob(d.DevBlobs))
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if h.Webhook != nil {
		r.POST("/webhook", h.Webhook.StripeWebhook)
	}

	r.GET("/categories", h.Works.ListCategories)
	r.GET("/periods", h.Works.ListPeriods)
	r.GET("/artworks", h.Works.ListPublished)
	r.GET("/artworks/:id", h.Works.GetPublished)
	r.GET("/gallery", h.Works.Gallery)
	r.GET("/artworks/:id/comments", h.Comments.ListApproved)
	r.GET("/blog", h.Blog.ListPublished)
	r.GET("/blog/:slug", h.Blog.GetBySlug)

	// Credentials are compared byte for byte, so login skips the sanitizer
	r.POST("/auth/login", h.Auth.Login)

	// ✅ Visitor writes are sanitized
	public := r.Group("/")
	public.Use(middleware.SanitizeAndCleanInputMiddleware())
	public.POST("/artworks/:id/comments", h.Comments.Submit)
	if h.Checkout != nil {
		public.POST("/artworks/:id/checkout", h.Checkout.Create)
	}
	public.GET("/auth/google", h.Auth.GoogleStart)
	public.GET("/auth/google/callback", h.Auth.GoogleCallback)

	// Authenticated
	auth := r.Group("/")
	auth.Use(middleware.AuthMiddleware(d.Secret, d.Sessions))
	auth.GET("/auth/me", h.Users.GetCurrentUser)
	auth.POST("/auth/logout", h.Auth.Logout)
	auth.GET("/roles/:role", h.Users.HasOwnRole)

	// Admin routes
	admin := r.Group("/admin")
	admin.Use(
		middleware.AuthMiddleware(d.Secret, d.Sessions),
		middleware.RequireRole(users.RoleAdmin),
		middleware.RequireOperator(d.Roles, users.RoleAdmin),
	)
	admin.GET("/dashboard", h.Admin.AdminDashboard)

	admin.GET("/artworks", h.Works.AdminList)
	admin.GET("/artworks/:id", h.Works.AdminGet)
	admin.POST("/artworks", h.Works.Create)
	admin.PATCH("/artworks/:id", h.Works.Update)
	admin.DELETE("/artworks/:id", h.Works.Delete)
	admin.POST("/categories", h.Works.CreateCategory)

	admin.GET("/comments", h.Comments.AdminList)
	admin.POST("/comments/:id/approve", h.Comments.Approve)
	admin.DELETE("/comments/:id", h.Comments.Delete)

	admin.GET("/blog", h.Blog.AdminList)
	admin.POST("/blog", h.Blog.Create)
	admin.POST("/blog/slug", h.Blog.Slug)
	admin.PATCH("/blog/:id", h.Blog.Update)
	admin.DELETE("/blog/:id", h.Blog.Delete)

	if h.Media != nil {
		admin.POST("/media", h.Media.Upload)
		admin.GET("/media", h.Media.List)
	}

	admin.GET("/users/:id/roles/:role", h.Users.HasRole)
}

func serveBlob(blobs *blob.Memory) gin.HandlerFunc {
	return func(c *gin.Context) {
		b, ok := blobs.Get(c.Param("id"))
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
			return
		}
		c.Data(http.StatusOK, http.DetectContentType(b), b)
	}
}
