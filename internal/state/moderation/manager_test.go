package moderation

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"artist-portfolio/internal/apperr"
	"artist-portfolio/internal/domain/comments"
	"artist-portfolio/internal/domain/works"
	"artist-portfolio/internal/notify"
	"artist-portfolio/internal/remote"
	"artist-portfolio/internal/remote/memstore"
)

type heldStore struct {
	*memstore.Store
	started chan struct{}
	release chan struct{}
}

func (h *heldStore) SelectComments(ctx context.Context, f remote.CommentFilter) ([]comments.Comment, error) {
	list, err := h.Store.SelectComments(ctx, f)
	close(h.started)
	<-h.release
	return list, err
}

func setup(t *testing.T) (*memstore.Store, works.Artwork, works.Artwork) {
	t.Helper()
	s := memstore.New()
	cat := s.SeedCategories("Landscape")[0]
	a, err := s.InsertArtwork(context.Background(), works.Artwork{Title: "A", CategoryID: cat.ID, Year: 2021, IsPublished: true})
	require.NoError(t, err)
	b, err := s.InsertArtwork(context.Background(), works.Artwork{Title: "B", CategoryID: cat.ID, Year: 2021, IsPublished: true})
	require.NoError(t, err)
	return s, a, b
}

func valid(artworkID, text string) comments.Comment {
	return comments.Comment{
		ArtworkID:   artworkID,
		UserName:    "Nino",
		UserEmail:   "nino@example.com",
		CommentText: text,
		Rating:      5,
	}
}

func seedComment(t *testing.T, s *memstore.Store, c comments.Comment, approved bool) comments.Comment {
	t.Helper()
	c.IsApproved = approved
	saved, err := s.InsertComment(context.Background(), c)
	require.NoError(t, err)
	return saved
}

func texts(list []comments.Comment) []string {
	out := []string{}
	for _, c := range list {
		out = append(out, c.CommentText)
	}
	return out
}

func TestLoad_NewestFirstAndScoped(t *testing.T) {
	s, a, b := setup(t)
	seedComment(t, s, valid(a.ID, "first"), true)
	seedComment(t, s, valid(b.ID, "other"), false)
	seedComment(t, s, valid(a.ID, "second"), false)

	m := New(s, Options{})
	require.NoError(t, m.Load(context.Background(), ""))
	assert.Equal(t, []string{"second", "other", "first"}, texts(m.Comments()))

	require.NoError(t, m.Load(context.Background(), a.ID))
	assert.Equal(t, a.ID, m.Scope())
	assert.Equal(t, []string{"second", "first"}, texts(m.Comments()))
	assert.Equal(t, []string{"first"}, texts(m.Approved()))
}

/*
TestSubmit_EmptyTextRejectedBeforeRemote: the store is never called and the
cache is untouched.
*/
func TestSubmit_EmptyTextRejectedBeforeRemote(t *testing.T) {
	s, a, _ := setup(t)
	var inserts int32
	s.Before = func(_ context.Context, op string) error {
		if op == memstore.OpInsertComment {
			atomic.AddInt32(&inserts, 1)
		}
		return nil
	}
	m := New(s, Options{})
	require.NoError(t, m.Load(context.Background(), ""))

	_, err := m.Submit(context.Background(), valid(a.ID, ""))

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, apperr.CodeValidation, ae.Code)
	assert.Equal(t, "comment_text", ae.Details[0].Field)
	assert.Equal(t, int32(0), atomic.LoadInt32(&inserts))
	assert.Empty(t, m.Comments())
}

func TestSubmit_Validation(t *testing.T) {
	_, a, _ := setup(t)
	tests := []struct {
		name   string
		mutate func(*comments.Comment)
		field  string
	}{
		{"no_name", func(c *comments.Comment) { c.UserName = "  " }, "user_name"},
		{"bad_email", func(c *comments.Comment) { c.UserEmail = "nino" }, "user_email"},
		{"rating_low", func(c *comments.Comment) { c.Rating = 0 }, "rating"},
		{"rating_high", func(c *comments.Comment) { c.Rating = 6 }, "rating"},
		{"no_artwork", func(c *comments.Comment) { c.ArtworkID = "" }, "artwork_id"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid(a.ID, "nice")
			tt.mutate(&c)
			ae := apperr.As(ValidateSubmission(c))
			require.NotNil(t, ae)
			assert.Equal(t, tt.field, ae.Details[0].Field)
		})
	}
}

func TestSubmit_ForcesPendingAndPrepends(t *testing.T) {
	s, a, b := setup(t)
	seedComment(t, s, valid(a.ID, "older"), true)
	rec := &notify.Recorder{}
	m := New(s, Options{Notifier: rec})
	require.NoError(t, m.Load(context.Background(), a.ID))

	c := valid(a.ID, "self approved?")
	c.IsApproved = true
	saved, err := m.Submit(context.Background(), c)
	require.NoError(t, err)

	assert.False(t, saved.IsApproved)
	assert.Equal(t, []string{"self approved?", "older"}, texts(m.Comments()))
	assert.Equal(t, []string{"older"}, texts(m.Approved()))

	_, err = m.Submit(context.Background(), valid(b.ID, "elsewhere"))
	require.NoError(t, err)
	assert.Len(t, m.Comments(), 2, "comment for another artwork stays out of a scoped cache")

	last, _ := rec.Last()
	assert.True(t, last.OK)
}

func TestApprove_Idempotent(t *testing.T) {
	s, a, _ := setup(t)
	first := seedComment(t, s, valid(a.ID, "one"), false)
	seedComment(t, s, valid(a.ID, "two"), false)
	m := New(s, Options{})
	require.NoError(t, m.Load(context.Background(), ""))

	for i := 0; i < 2; i++ {
		got, err := m.Approve(context.Background(), first.ID)
		require.NoError(t, err)
		assert.True(t, got.IsApproved)
	}

	assert.Equal(t, []string{"two", "one"}, texts(m.Comments()), "order is preserved")
	pending, approved := m.Counts()
	assert.Equal(t, 1, pending)
	assert.Equal(t, 1, approved)
}

/*
TestApprove_UnknownIDIsRemoteError: the cache never held the id and the store
does not either.
*/
func TestApprove_UnknownIDIsRemoteError(t *testing.T) {
	s, a, _ := setup(t)
	seedComment(t, s, valid(a.ID, "one"), false)
	m := New(s, Options{})
	require.NoError(t, m.Load(context.Background(), ""))
	before := m.Comments()

	_, err := m.Approve(context.Background(), "00000000-0000-0000-0000-000000000000")

	require.Error(t, err)
	assert.True(t, apperr.IsRemote(err))
	assert.Equal(t, before, m.Comments())
}

func TestDelete(t *testing.T) {
	s, a, _ := setup(t)
	c := seedComment(t, s, valid(a.ID, "spam"), false)
	m := New(s, Options{})
	require.NoError(t, m.Load(context.Background(), ""))

	require.NoError(t, m.Delete(context.Background(), c.ID))
	assert.Empty(t, m.Comments())

	err := m.Delete(context.Background(), c.ID)
	assert.True(t, apperr.Is(err, apperr.CodeNotFound))
}

func TestDelete_DuringInFlightLoad(t *testing.T) {
	s, a, _ := setup(t)
	c := seedComment(t, s, valid(a.ID, "spam"), false)
	held := &heldStore{Store: s, started: make(chan struct{}), release: make(chan struct{})}
	m := New(held, Options{})

	done := make(chan error, 1)
	go func() { done <- m.Load(context.Background(), "") }()
	<-held.started
	require.NoError(t, m.Delete(context.Background(), c.ID))
	close(held.release)
	require.NoError(t, <-done)

	assert.Empty(t, m.Comments())
}

func TestFilter_LocalPartitions(t *testing.T) {
	s, a, _ := setup(t)
	seedComment(t, s, valid(a.ID, "p1"), false)
	seedComment(t, s, valid(a.ID, "a1"), true)
	seedComment(t, s, valid(a.ID, "p2"), false)

	var selects int32
	s.Before = func(_ context.Context, op string) error {
		if op == memstore.OpSelectComments {
			atomic.AddInt32(&selects, 1)
		}
		return nil
	}
	m := New(s, Options{})
	require.NoError(t, m.Load(context.Background(), ""))

	assert.Equal(t, []string{"p2", "a1", "p1"}, texts(m.Filter(comments.FilterAll)))
	assert.Equal(t, []string{"p2", "p1"}, texts(m.Filter(comments.FilterPending)))
	assert.Equal(t, []string{"a1"}, texts(m.Filter(comments.FilterApproved)))
	assert.Equal(t, int32(1), atomic.LoadInt32(&selects))
}

func TestLoad_FailureKeepsCache(t *testing.T) {
	s, a, _ := setup(t)
	seedComment(t, s, valid(a.ID, "kept"), false)
	rec := &notify.Recorder{}
	m := New(s, Options{Notifier: rec})
	require.NoError(t, m.Load(context.Background(), ""))

	s.Before = func(context.Context, string) error { return errors.New("timeout") }
	err := m.Load(context.Background(), "")
	assert.True(t, apperr.IsRemote(err))
	assert.Equal(t, []string{"kept"}, texts(m.Comments()))
	assert.Error(t, m.Err())

	last, _ := rec.Last()
	assert.Equal(t, notify.Notice{OK: false, Title: "Error", Message: "Failed to load comments"}, last)
}
