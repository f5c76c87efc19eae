// Package catalog caches artworks and categories in front of a remote store.
// Local state is only patched after the remote write succeeded; see package
// journal for how loads and mutations that overlap are reconciled.
package catalog

import (
	"context"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"artist-portfolio/internal/domain/works"
	"artist-portfolio/internal/logger"
	"artist-portfolio/internal/notify"
	"artist-portfolio/internal/remote"
	"artist-portfolio/internal/state/journal"
	"artist-portfolio/internal/validate"
)

const (
	MinYear = 1000
	MaxYear = 9999
)

// Store is the slice of remote.Client the catalog needs.
type Store interface {
	remote.Artworks
	remote.Categories
}

type Options struct {
	Notifier notify.Notifier
	Logger   *zap.Logger
	Now      func() time.Time
}

type Manager struct {
	store    Store
	notifier notify.Notifier
	log      *zap.Logger
	now      func() time.Time

	mu         sync.RWMutex
	artworks   []works.Artwork
	categories []works.Category
	err        error
	loaded     bool
	art        *journal.Journal[works.Artwork]
	cats       *journal.Journal[works.Category]
}

func New(store Store, opts Options) *Manager {
	if opts.Notifier == nil {
		opts.Notifier = notify.Nop{}
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Manager{
		store:    store,
		notifier: opts.Notifier,
		log:      logger.OrNop(opts.Logger).Named("catalog"),
		now:      opts.Now,
		art: journal.New(
			func(a works.Artwork) string { return a.ID },
			func(a works.Artwork) time.Time { return a.UpdatedAt },
		),
		cats: journal.New(func(c works.Category) string { return c.ID }, nil),
	}
}

// Load fetches artworks and categories in parallel. On failure the previous
// cache is kept and Err reports the failure. If ctx is done by the time the
// store answers the result is discarded.
func (m *Manager) Load(ctx context.Context) error {
	m.mu.Lock()
	artTicket := m.art.Begin()
	catTicket := m.cats.Begin()
	m.mu.Unlock()

	var (
		artworks   []works.Artwork
		categories []works.Category
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		list, err := m.store.SelectArtworks(gctx, remote.ArtworkFilter{})
		artworks = list
		return err
	})
	g.Go(func() error {
		list, err := m.store.SelectCategories(gctx)
		categories = list
		return err
	})
	err := g.Wait()

	m.mu.Lock()
	defer m.mu.Unlock()

	if ctx.Err() != nil {
		m.art.Cancel(artTicket)
		m.cats.Cancel(catTicket)
		return ctx.Err()
	}

	if err != nil {
		relevant := m.art.Fail(artTicket)
		m.cats.Fail(catTicket)
		wrapped := remote.Wrap("Failed to load artworks", err)
		if relevant {
			m.err = wrapped
		}
		m.notifier.Failure("Error", "Failed to load artworks")
		m.log.Error("load failed", zap.Error(err))
		return wrapped
	}

	mergedArt, okArt := m.art.Finish(artTicket, artworks)
	mergedCats, okCats := m.cats.Finish(catTicket, categories)
	if okArt {
		m.artworks = mergedArt
		m.err = nil
		m.loaded = true
	}
	if okCats {
		m.categories = mergedCats
	}
	return nil
}

// Create validates the required fields before any remote call, then inserts
// and prepends the stored record.
func (m *Manager) Create(ctx context.Context, a works.Artwork) (works.Artwork, error) {
	if err := ValidateNew(a); err != nil {
		return works.Artwork{}, err
	}

	saved, err := m.store.InsertArtwork(ctx, a)
	if err != nil {
		return works.Artwork{}, m.fail("create", "Failed to add artwork", err)
	}
	if saved.Category == nil {
		saved.Category = m.categoryByID(saved.CategoryID)
	}

	m.mu.Lock()
	if indexOf(m.artworks, saved.ID) < 0 {
		m.artworks = append([]works.Artwork{saved}, m.artworks...)
	}
	m.art.Created(saved)
	m.mu.Unlock()

	m.notifier.Success("Success", "Artwork added successfully")
	return saved, nil
}

// Update sends the patch with a fresh updated_at and replaces the cached
// record in place.
func (m *Manager) Update(ctx context.Context, id string, p works.ArtworkPatch) (works.Artwork, error) {
	if err := ValidatePatch(p); err != nil {
		return works.Artwork{}, err
	}
	p.UpdatedAt = m.now()

	saved, err := m.store.UpdateArtwork(ctx, id, p)
	if err != nil {
		return works.Artwork{}, m.fail("update", "Failed to update artwork", err)
	}
	if saved.Category == nil {
		saved.Category = m.categoryByID(saved.CategoryID)
	}

	m.mu.Lock()
	if i := indexOf(m.artworks, id); i >= 0 {
		m.artworks[i] = saved
	}
	m.art.Updated(saved)
	m.mu.Unlock()

	m.notifier.Success("Success", "Artwork updated successfully")
	return saved, nil
}

func (m *Manager) Delete(ctx context.Context, id string) error {
	if err := m.store.DeleteArtwork(ctx, id); err != nil {
		return m.fail("delete", "Failed to delete artwork", err)
	}

	m.mu.Lock()
	if i := indexOf(m.artworks, id); i >= 0 {
		m.artworks = append(m.artworks[:i:i], m.artworks[i+1:]...)
	}
	m.art.Deleted(id)
	m.mu.Unlock()

	m.notifier.Success("Success", "Artwork deleted successfully")
	return nil
}

// CreateCategory adds a category and keeps the list sorted by name.
func (m *Manager) CreateCategory(ctx context.Context, c works.Category) (works.Category, error) {
	if err := validate.New().Required("name", c.Name).MaxLen("name", c.Name, 100).Err(); err != nil {
		return works.Category{}, err
	}
	c.Name = strings.TrimSpace(c.Name)

	saved, err := m.store.InsertCategory(ctx, c)
	if err != nil {
		return works.Category{}, m.fail("create_category", "Failed to add category", err)
	}

	m.mu.Lock()
	m.categories = insertSorted(m.categories, saved)
	m.cats.Created(saved)
	m.mu.Unlock()

	m.notifier.Success("Success", "Category added successfully")
	return saved, nil
}

func (m *Manager) fail(op, msg string, err error) error {
	m.log.Error(op+" failed", zap.Error(err))
	m.notifier.Failure("Error", msg)
	return remote.Wrap(msg, err)
}

func (m *Manager) categoryByID(id string) *works.Category {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for i := range m.categories {
		if m.categories[i].ID == id {
			c := m.categories[i]
			return &c
		}
	}
	return nil
}

/* ---------------- reads ---------------- */

// Artworks returns a copy of the cache, newest first.
func (m *Manager) Artworks() []works.Artwork {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]works.Artwork(nil), m.artworks...)
}

// Published returns the cached artworks visitors may see.
func (m *Manager) Published() []works.Artwork {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]works.Artwork, 0, len(m.artworks))
	for _, a := range m.artworks {
		if a.IsPublished {
			out = append(out, a)
		}
	}
	return out
}

func (m *Manager) Categories() []works.Category {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]works.Category(nil), m.categories...)
}

func (m *Manager) Find(id string) (works.Artwork, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if i := indexOf(m.artworks, id); i >= 0 {
		return m.artworks[i], true
	}
	return works.Artwork{}, false
}

func (m *Manager) IsLoading() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.art.Loading()
}

// Loaded reports whether at least one load has succeeded.
func (m *Manager) Loaded() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.loaded
}

// Err is the last load failure, cleared by the next successful load.
func (m *Manager) Err() error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.err
}

/* ---------------- helpers ---------------- */

func ValidateNew(a works.Artwork) error {
	return validate.New().
		Required("title", a.Title).
		MaxLen("title", a.Title, 200).
		Required("category_id", a.CategoryID).
		Range("year_created", a.Year, MinYear, MaxYear).
		Custom("price", a.Price != nil && a.Price.IsNegative(), "Must not be negative").
		Err()
}

func ValidatePatch(p works.ArtworkPatch) error {
	v := validate.New()
	if p.Title != nil {
		v.Required("title", *p.Title).MaxLen("title", *p.Title, 200)
	}
	if p.CategoryID != nil {
		v.Required("category_id", *p.CategoryID)
	}
	if p.Year != nil {
		v.Range("year_created", *p.Year, MinYear, MaxYear)
	}
	if p.Price != nil {
		v.Custom("price", p.Price.IsNegative(), "Must not be negative")
	}
	return v.Err()
}

func indexOf(list []works.Artwork, id string) int {
	for i := range list {
		if list[i].ID == id {
			return i
		}
	}
	return -1
}

func insertSorted(list []works.Category, c works.Category) []works.Category {
	for _, existing := range list {
		if existing.ID == c.ID {
			return list
		}
	}
	out := make([]works.Category, 0, len(list)+1)
	placed := false
	for _, existing := range list {
		if !placed && c.Name < existing.Name {
			out = append(out, c)
			placed = true
		}
		out = append(out, existing)
	}
	if !placed {
		out = append(out, c)
	}
	return out
}
