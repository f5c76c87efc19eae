// Package apitest runs the full HTTP API on an in-memory store for tests.
package apitest

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

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
	"artist-portfolio/internal/domain/works"
	"artist-portfolio/internal/infra/blob"
	"artist-portfolio/internal/infra/stripe"
	"artist-portfolio/internal/remote/memstore"
	"artist-portfolio/internal/session"
	"artist-portfolio/internal/state/catalog"
)

const (
	Secret        = "test-secret"
	WebhookSecret = "whsec_test"
	AdminEmail    = "admin@example.com"
	AdminPassword = "correct-horse-1"
	Origin        = "http://gallery.test"
)

type Env struct {
	Server   *httptest.Server
	Engine   *gin.Engine
	Store    *memstore.Store
	Catalog  *catalog.Manager
	Sessions *session.MemoryStore
	Blobs    *blob.Memory
}

// FakeCheckout hands out deterministic sessions without calling Stripe.
type FakeCheckout struct{}

func (FakeCheckout) Create(_ context.Context, a works.Artwork) (stripe.Session, error) {
	if err := stripe.Purchasable(a); err != nil {
		return stripe.Session{}, err
	}
	return stripe.Session{ID: "cs_test_" + a.ID, URL: "https://checkout.example/" + a.ID}, nil
}

// New seeds the default categories and the bootstrap admin, then serves the
// API. The server is closed when the test ends.
func New(t testing.TB) *Env {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log := zap.NewNop()
	store := memstore.New()
	require.NoError(t, database.Seed(context.Background(), store, AdminEmail, AdminPassword, log))

	cat := catalog.New(store, catalog.Options{Logger: log})
	require.NoError(t, cat.Load(context.Background()))

	sessions := session.NewMemoryStore(time.Now)
	blobs := blob.NewMemory("http://blobs.test")

	h := routes.Handlers{
		Works:    worksapi.NewHandler(cat, store, 0),
		Comments: commentsapi.NewHandler(store, cat, log),
		Blog:     blogapi.NewHandler(store, log),
		Media:    mediaapi.NewHandler(blobs, store, log),
		Checkout: checkoutapi.NewHandler(FakeCheckout{}, cat, log),
		Webhook:  stripewebhooks.NewHandler(WebhookSecret, cat, log),
		Auth:     authapi.NewHandler(store, sessions, authapi.Options{Secret: Secret, Logger: log}),
		Users:    usersapi.NewHandler(store),
		Admin:    adminapi.NewHandler(store),
	}

	r := gin.New()
	routes.RegisterRoutes(r, routes.Deps{
		Handlers:   h,
		Secret:     Secret,
		Sessions:   sessions,
		Roles:      store,
		CORSOrigin: Origin,
		DevBlobs:   blobs,
	})

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	return &Env{Server: srv, Engine: r, Store: store, Catalog: cat, Sessions: sessions, Blobs: blobs}
}

// Category returns the id of a seeded category by name.
func (e *Env) Category(t testing.TB, name string) string {
	t.Helper()
	for _, c := range e.Catalog.Categories() {
		if c.Name == name {
			return c.ID
		}
	}
	t.Fatalf("category %q not seeded", name)
	return ""
}

// Do serves one request in process. body is JSON-encoded unless it is
// already an io.Reader.
func (e *Env) Do(t testing.TB, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	switch b := body.(type) {
	case nil:
	case io.Reader:
		r = b
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.Engine.ServeHTTP(w, req)
	return w
}

// Login signs the bootstrap admin in and returns the bearer token.
func (e *Env) Login(t testing.TB) string {
	t.Helper()
	w := e.Do(t, http.MethodPost, "/auth/login", map[string]string{
		"email":    AdminEmail,
		"password": AdminPassword,
	}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var out struct {
		Token string `json:"token"`
	}
	Decode(t, w, &out)
	return out.Token
}

func Decode(t testing.TB, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out), w.Body.String())
}
