package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"artist-portfolio/config"
	"artist-portfolio/database"
	adminapi "artist-portfolio/internal/api/admin"
	authapi "artist-portfolio/internal/api/auth"
	blogapi "artist-portfolio/internal/api/blog"
	checkoutapi "artist-portfolio/internal/api/checkout"
	commentsapi "artist-portfolio/internal/api/comments"
	mediaapi "artist-portfolio/internal/api/media"
	stripewebhooks "artist-portfolio/internal/api/stripewebhook"
	usersapi "artist-portfolio/internal/api/users"
	worksapi "artist-portfolio/internal/api/works"
	routes "artist-portfolio/internal/app/http"
	cronrunner "artist-portfolio/internal/cron"
	"artist-portfolio/internal/domain/media"
	"artist-portfolio/internal/infra/blob"
	"artist-portfolio/internal/infra/stripe"
	"artist-portfolio/internal/logger"
	"artist-portfolio/internal/notify"
	"artist-portfolio/internal/remote"
	"artist-portfolio/internal/remote/gormstore"
	"artist-portfolio/internal/remote/memstore"
	"artist-portfolio/internal/session"
	"artist-portfolio/internal/state/catalog"
)

func main() {
	config.LoadEnv()

	log, err := logger.New(config.LOG_LEVEL, config.LOG_ENCODING)
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	r := gin.Default()

	var (
		store    remote.Store
		blobs    media.BlobStore
		devBlobs *blob.Memory
	)
	if config.DEV_MODE && config.DB_URL == "" {
		log.Warn("DEV_MODE without DB_URL: using the in-memory store")
		mem := memstore.New()
		store = mem
		devBlobs = blob.NewMemory("http://localhost:" + config.PORT + "/media")
		blobs = devBlobs
	} else {
		store = gormstore.New(database.InitDB(log))
		if config.CLOUDINARY_URL != "" {
			cld, err := blob.NewCloudinary(config.CLOUDINARY_URL, config.CLOUDINARY_FOLDER)
			if err != nil {
				log.Fatal("cloudinary init failed", zap.Error(err))
			}
			blobs = cld
		}
	}

	var sessions session.Store = session.NewMemoryStore(time.Now)
	if config.REDIS_URL != "" {
		client, err := session.Dial(ctx, config.REDIS_URL)
		if err != nil {
			log.Fatal("redis connect failed", zap.Error(err))
		}
		defer client.Close()
		sessions = session.NewRedisStore(client)
	}

	if err := database.Seed(ctx, store, config.ADMIN_EMAIL, config.ADMIN_PASSWORD, log); err != nil {
		log.Fatal("seed failed", zap.Error(err))
	}

	cat := catalog.New(store, catalog.Options{
		Notifier: notify.Log{Logger: log.Named("notify")},
		Logger:   log,
	})
	if err := cat.Load(ctx); err != nil {
		// public endpoints serve an empty gallery until the next refresh
		log.Error("initial catalog load failed", zap.Error(err))
	}

	jobs := cronrunner.New(log.Named("cron"), ctx)
	if _, err := jobs.Add("catalog_refresh", config.CATALOG_REFRESH, cat.Load); err != nil {
		log.Fatal("invalid CATALOG_REFRESH", zap.String("schedule", config.CATALOG_REFRESH), zap.Error(err))
	}
	jobs.Start()
	defer jobs.Stop()

	h := routes.Handlers{
		Works:    worksapi.NewHandler(cat, store, config.GALLERY_PAGE_SIZE),
		Comments: commentsapi.NewHandler(store, cat, log),
		Blog:     blogapi.NewHandler(store, log),
		Auth: authapi.NewHandler(store, sessions, authapi.Options{
			Secret:     config.JWT_SECRET,
			SessionTTL: config.SESSION_TTL,
			Google:     googleConfig(),
			Logger:     log.Named("auth"),
		}),
		Users: usersapi.NewHandler(store),
		Admin: adminapi.NewHandler(store),
	}
	if blobs != nil {
		h.Media = mediaapi.NewHandler(blobs, store, log)
	} else {
		log.Warn("CLOUDINARY_URL not set: media uploads disabled")
	}
	if config.STRIPE_SECRET_KEY != "" {
		h.Checkout = checkoutapi.NewHandler(
			stripe.NewCheckout(config.STRIPE_SECRET_KEY, config.APP_URL, config.STRIPE_CURRENCY), cat, log)
		h.Webhook = stripewebhooks.NewHandler(config.STRIPE_WEBHOOK_SECRET, cat, log.Named("stripe"))
	} else {
		log.Warn("STRIPE_SECRET_KEY not set: checkout disabled")
	}

	routes.RegisterRoutes(r, routes.Deps{
		Handlers:   h,
		Secret:     config.JWT_SECRET,
		Sessions:   sessions,
		Roles:      store,
		CORSOrigin: config.CORS_ORIGIN,
		DevBlobs:   devBlobs,
	})

	srv := &http.Server{Addr: ":" + config.PORT, Handler: r}
	go func() {
		log.Info("listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", zap.Error(err))
	}
}

func googleConfig() *authapi.GoogleConfig {
	if !config.GoogleEnabled() {
		return nil
	}
	return &authapi.GoogleConfig{
		ClientID:         config.GOOGLE_CLIENT_ID,
		ClientSecret:     config.GOOGLE_CLIENT_SECRET,
		RedirectURL:      config.GOOGLE_REDIRECT_URL,
		FrontendRedirect: config.GOOGLE_FRONTEND_REDIRECT,
	}
}
