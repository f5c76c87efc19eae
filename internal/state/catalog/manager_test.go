package catalog

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"artist-portfolio/internal/apperr"
	"artist-portfolio/internal/domain/works"
	"artist-portfolio/internal/notify"
	"artist-portfolio/internal/remote"
	"artist-portfolio/internal/remote/memstore"
)

// heldStore answers SelectArtworks with a snapshot taken before it blocks,
// so the test can mutate while a stale load is in flight.
type heldStore struct {
	*memstore.Store
	started chan struct{}
	release chan struct{}
}

func newHeld(s *memstore.Store) *heldStore {
	return &heldStore{Store: s, started: make(chan struct{}), release: make(chan struct{})}
}

func (h *heldStore) SelectArtworks(ctx context.Context, f remote.ArtworkFilter) ([]works.Artwork, error) {
	list, err := h.Store.SelectArtworks(ctx, f)
	close(h.started)
	select {
	case <-h.release:
	case <-ctx.Done():
	}
	return list, err
}

type fixture struct {
	store *memstore.Store
	cats  []works.Category
	rec   *notify.Recorder
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	s := memstore.New()
	return fixture{store: s, cats: s.SeedCategories("Landscape", "Portrait"), rec: &notify.Recorder{}}
}

func (f fixture) seed(t *testing.T, title string, published bool) works.Artwork {
	t.Helper()
	a, err := f.store.InsertArtwork(context.Background(), works.Artwork{
		Title: title, CategoryID: f.cats[0].ID, Year: 2022, IsPublished: published,
	})
	require.NoError(t, err)
	return a
}

func titles(list []works.Artwork) []string {
	out := []string{}
	for _, a := range list {
		out = append(out, a.Title)
	}
	return out
}

func count(list []works.Artwork, id string) int {
	n := 0
	for _, a := range list {
		if a.ID == id {
			n++
		}
	}
	return n
}

func TestLoad_PopulatesCache(t *testing.T) {
	f := newFixture(t)
	f.seed(t, "Old", true)
	f.seed(t, "Draft", false)

	m := New(f.store, Options{Notifier: f.rec})
	require.NoError(t, m.Load(context.Background()))

	assert.False(t, m.IsLoading())
	assert.True(t, m.Loaded())
	assert.NoError(t, m.Err())
	assert.Equal(t, []string{"Draft", "Old"}, titles(m.Artworks()))
	assert.Equal(t, []string{"Old"}, titles(m.Published()))
	assert.Len(t, m.Categories(), 2)
}

/*
TestLoad_FailureKeepsCache: a failing reload surfaces a remote error and
leaves the previously cached data in place.
*/
func TestLoad_FailureKeepsCache(t *testing.T) {
	f := newFixture(t)
	f.seed(t, "Kept", true)
	m := New(f.store, Options{Notifier: f.rec})
	require.NoError(t, m.Load(context.Background()))

	f.store.Before = func(_ context.Context, op string) error {
		if op == memstore.OpSelectCategories {
			return errors.New("connection refused")
		}
		return nil
	}
	err := m.Load(context.Background())

	require.Error(t, err)
	assert.True(t, apperr.IsRemote(err))
	assert.True(t, apperr.IsRemote(m.Err()))
	assert.False(t, m.IsLoading())
	last, _ := f.rec.Last()
	assert.Equal(t, notify.Notice{OK: false, Title: "Error", Message: "Failed to load artworks"}, last)
	assert.Equal(t, []string{"Kept"}, titles(m.Artworks()))
	assert.Len(t, m.Categories(), 2)

	f.store.Before = nil
	require.NoError(t, m.Load(context.Background()))
	assert.NoError(t, m.Err())
}

func TestCreate_ValidationMakesNoRemoteCall(t *testing.T) {
	f := newFixture(t)
	var inserts int32
	f.store.Before = func(_ context.Context, op string) error {
		if op == memstore.OpInsertArtwork {
			atomic.AddInt32(&inserts, 1)
		}
		return nil
	}
	m := New(f.store, Options{Notifier: f.rec})

	tests := []struct {
		name  string
		input works.Artwork
		field string
	}{
		{"missing_title", works.Artwork{CategoryID: f.cats[0].ID, Year: 2020}, "title"},
		{"missing_category", works.Artwork{Title: "A", Year: 2020}, "category_id"},
		{"missing_year", works.Artwork{Title: "A", CategoryID: f.cats[0].ID}, "year_created"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := m.Create(context.Background(), tt.input)
			ae := apperr.As(err)
			require.NotNil(t, ae)
			assert.Equal(t, apperr.CodeValidation, ae.Code)
			assert.Equal(t, tt.field, ae.Details[0].Field)
		})
	}

	assert.Equal(t, int32(0), atomic.LoadInt32(&inserts))
	assert.Empty(t, m.Artworks())
}

func TestCreate_PrependsAndNotifies(t *testing.T) {
	f := newFixture(t)
	f.seed(t, "First", true)
	m := New(f.store, Options{Notifier: f.rec})
	require.NoError(t, m.Load(context.Background()))

	price := decimal.RequireFromString("850")
	saved, err := m.Create(context.Background(), works.Artwork{
		Title: "Second", CategoryID: f.cats[1].ID, Year: 2024, Price: &price, IsPublished: true,
	})
	require.NoError(t, err)

	assert.NotEmpty(t, saved.ID)
	assert.False(t, saved.CreatedAt.IsZero())
	assert.Equal(t, "Portrait", saved.CategoryName())
	assert.Equal(t, []string{"Second", "First"}, titles(m.Artworks()))

	last, _ := f.rec.Last()
	assert.Equal(t, notify.Notice{OK: true, Title: "Success", Message: "Artwork added successfully"}, last)
}

func TestCreate_ThenLoadIsIdempotent(t *testing.T) {
	f := newFixture(t)
	m := New(f.store, Options{})
	saved, err := m.Create(context.Background(), works.Artwork{Title: "A", CategoryID: f.cats[0].ID, Year: 2021})
	require.NoError(t, err)

	require.NoError(t, m.Load(context.Background()))
	assert.Equal(t, 1, count(m.Artworks(), saved.ID))
}

/*
TestCreate_DuringInFlightLoad: the load's snapshot predates the create, so
the record must survive the load exactly once.
*/
func TestCreate_DuringInFlightLoad(t *testing.T) {
	f := newFixture(t)
	f.seed(t, "Old", true)
	held := newHeld(f.store)
	m := New(held, Options{})

	done := make(chan error, 1)
	go func() { done <- m.Load(context.Background()) }()
	<-held.started
	assert.True(t, m.IsLoading())

	saved, err := m.Create(context.Background(), works.Artwork{Title: "New", CategoryID: f.cats[0].ID, Year: 2021})
	require.NoError(t, err)

	close(held.release)
	require.NoError(t, <-done)

	assert.Equal(t, 1, count(m.Artworks(), saved.ID))
	assert.Equal(t, []string{"New", "Old"}, titles(m.Artworks()))
}

/*
TestDelete_DuringInFlightLoad pins the no-resurrection rule: the stale load
still carries the record but it stays deleted.
*/
func TestDelete_DuringInFlightLoad(t *testing.T) {
	f := newFixture(t)
	victim := f.seed(t, "Victim", true)
	f.seed(t, "Survivor", true)

	m := New(f.store, Options{})
	require.NoError(t, m.Load(context.Background()))

	held := newHeld(f.store)
	m.store = held

	done := make(chan error, 1)
	go func() { done <- m.Load(context.Background()) }()
	<-held.started

	require.NoError(t, m.Delete(context.Background(), victim.ID))
	assert.Equal(t, 0, count(m.Artworks(), victim.ID))

	close(held.release)
	require.NoError(t, <-done)

	assert.Equal(t, 0, count(m.Artworks(), victim.ID))
	assert.Equal(t, []string{"Survivor"}, titles(m.Artworks()))
}

func TestUpdate_ReplacesInPlace(t *testing.T) {
	f := newFixture(t)
	a := f.seed(t, "A", true)
	f.seed(t, "B", true)
	f.seed(t, "C", true)

	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	m := New(f.store, Options{Now: func() time.Time { return fixed }})
	require.NoError(t, m.Load(context.Background()))

	title := "A (revised)"
	year := 1995
	saved, err := m.Update(context.Background(), a.ID, works.ArtworkPatch{Title: &title, Year: &year})
	require.NoError(t, err)

	assert.Equal(t, fixed, saved.UpdatedAt)
	assert.Equal(t, works.PeriodClassical, saved.Period())
	assert.Equal(t, []string{"C", "B", "A (revised)"}, titles(m.Artworks()))

	got, ok := m.Find(a.ID)
	require.True(t, ok)
	assert.Equal(t, fixed, got.UpdatedAt)
}

func TestUpdate_MissingIDLeavesCache(t *testing.T) {
	f := newFixture(t)
	f.seed(t, "A", true)
	m := New(f.store, Options{Notifier: f.rec})
	require.NoError(t, m.Load(context.Background()))
	before := m.Artworks()

	title := "x"
	_, err := m.Update(context.Background(), "missing", works.ArtworkPatch{Title: &title})

	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.CodeNotFound))
	assert.True(t, apperr.IsRemote(err))
	assert.Equal(t, "Failed to update artwork", err.Error())
	assert.Equal(t, before, m.Artworks())

	last, _ := f.rec.Last()
	assert.False(t, last.OK)
}

func TestDelete_RemoteFailureLeavesCache(t *testing.T) {
	f := newFixture(t)
	a := f.seed(t, "A", true)
	m := New(f.store, Options{})
	require.NoError(t, m.Load(context.Background()))

	f.store.Before = func(_ context.Context, op string) error {
		if op == memstore.OpDeleteArtwork {
			return errors.New("permission denied")
		}
		return nil
	}
	err := m.Delete(context.Background(), a.ID)
	assert.True(t, apperr.Is(err, apperr.CodeRemote))
	assert.Equal(t, 1, count(m.Artworks(), a.ID))
}

func TestLoad_CancelledResultDiscarded(t *testing.T) {
	f := newFixture(t)
	m := New(f.store, Options{})
	require.NoError(t, m.Load(context.Background()))

	f.seed(t, "Late", true)
	held := newHeld(f.store)
	m.store = held

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- m.Load(ctx) }()
	<-held.started
	cancel()

	assert.ErrorIs(t, <-done, context.Canceled)
	assert.Empty(t, m.Artworks())
	assert.False(t, m.IsLoading())
	assert.NoError(t, m.Err())
}

func TestCreateCategory_SortedByName(t *testing.T) {
	f := newFixture(t)
	m := New(f.store, Options{})
	require.NoError(t, m.Load(context.Background()))

	_, err := m.CreateCategory(context.Background(), works.Category{Name: "Abstract"})
	require.NoError(t, err)

	names := []string{}
	for _, c := range m.Categories() {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"Abstract", "Landscape", "Portrait"}, names)

	_, err = m.CreateCategory(context.Background(), works.Category{Name: " "})
	assert.True(t, apperr.IsValidation(err))
}
