// Package moderation caches artwork comments. Visitors submit comments that
// stay pending until an operator approves them; approval is one-way and
// deletion is permanent.
package moderation

import (
	"context"
	"strings"
	"sync"

	"go.uber.org/zap"

	"artist-portfolio/internal/domain/comments"
	"artist-portfolio/internal/logger"
	"artist-portfolio/internal/notify"
	"artist-portfolio/internal/remote"
	"artist-portfolio/internal/state/journal"
	"artist-portfolio/internal/validate"
)

type Options struct {
	Notifier notify.Notifier
	Logger   *zap.Logger
}

type Manager struct {
	store    remote.Comments
	notifier notify.Notifier
	log      *zap.Logger

	mu       sync.RWMutex
	comments []comments.Comment
	scope    string
	err      error
	j        *journal.Journal[comments.Comment]
}

func New(store remote.Comments, opts Options) *Manager {
	if opts.Notifier == nil {
		opts.Notifier = notify.Nop{}
	}
	return &Manager{
		store:    store,
		notifier: opts.Notifier,
		log:      logger.OrNop(opts.Logger).Named("comments"),
		j:        journal.New(func(c comments.Comment) string { return c.ID }, nil),
	}
}

// Load fetches the comments of one artwork, or the whole moderation queue
// when artworkID is empty. Newest first.
func (m *Manager) Load(ctx context.Context, artworkID string) error {
	m.mu.Lock()
	ticket := m.j.Begin()
	m.mu.Unlock()

	list, err := m.store.SelectComments(ctx, remote.CommentFilter{ArtworkID: artworkID})

	m.mu.Lock()
	defer m.mu.Unlock()

	if ctx.Err() != nil {
		m.j.Cancel(ticket)
		return ctx.Err()
	}
	if err != nil {
		wrapped := remote.Wrap("Failed to load comments", err)
		if m.j.Fail(ticket) {
			m.err = wrapped
		}
		m.notifier.Failure("Error", "Failed to load comments")
		m.log.Error("load failed", zap.String("artwork_id", artworkID), zap.Error(err))
		return wrapped
	}

	merged, ok := m.j.Finish(ticket, list)
	if !ok {
		return nil
	}
	if artworkID != "" {
		merged = onlyArtwork(merged, artworkID)
	}
	m.comments = merged
	m.scope = artworkID
	m.err = nil
	return nil
}

// Submit creates a pending comment. Approval requested by the caller is
// ignored.
func (m *Manager) Submit(ctx context.Context, c comments.Comment) (comments.Comment, error) {
	c.UserName = strings.TrimSpace(c.UserName)
	c.UserEmail = strings.TrimSpace(c.UserEmail)
	if err := ValidateSubmission(c); err != nil {
		return comments.Comment{}, err
	}
	c.ID = ""
	c.IsApproved = false

	saved, err := m.store.InsertComment(ctx, c)
	if err != nil {
		return comments.Comment{}, m.fail("submit", "Failed to submit comment", err)
	}

	m.mu.Lock()
	if (m.scope == "" || m.scope == saved.ArtworkID) && indexOf(m.comments, saved.ID) < 0 {
		m.comments = append([]comments.Comment{saved}, m.comments...)
	}
	m.j.Created(saved)
	m.mu.Unlock()

	m.notifier.Success("Success", "Comment submitted and awaiting approval")
	return saved, nil
}

// Approve marks the comment approved. Approving twice is harmless. The list
// keeps its order.
func (m *Manager) Approve(ctx context.Context, id string) (comments.Comment, error) {
	approved := true
	saved, err := m.store.UpdateComment(ctx, id, comments.CommentPatch{IsApproved: &approved})
	if err != nil {
		return comments.Comment{}, m.fail("approve", "Failed to approve comment", err)
	}

	m.mu.Lock()
	if i := indexOf(m.comments, id); i >= 0 {
		m.comments[i] = saved
	}
	m.j.Updated(saved)
	m.mu.Unlock()

	m.notifier.Success("Success", "Comment approved")
	return saved, nil
}

func (m *Manager) Delete(ctx context.Context, id string) error {
	if err := m.store.DeleteComment(ctx, id); err != nil {
		return m.fail("delete", "Failed to delete comment", err)
	}

	m.mu.Lock()
	if i := indexOf(m.comments, id); i >= 0 {
		m.comments = append(m.comments[:i:i], m.comments[i+1:]...)
	}
	m.j.Deleted(id)
	m.mu.Unlock()

	m.notifier.Success("Success", "Comment deleted")
	return nil
}

func (m *Manager) fail(op, msg string, err error) error {
	m.log.Error(op+" failed", zap.Error(err))
	m.notifier.Failure("Error", msg)
	return remote.Wrap(msg, err)
}

/* ---------------- local views ---------------- */

func (m *Manager) Comments() []comments.Comment {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]comments.Comment(nil), m.comments...)
}

// Filter partitions the cache without a remote call.
func (m *Manager) Filter(f comments.Filter) []comments.Comment {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []comments.Comment{}
	for _, c := range m.comments {
		if f.Match(c) {
			out = append(out, c)
		}
	}
	return out
}

// Approved is what the public artwork page shows.
func (m *Manager) Approved() []comments.Comment {
	return m.Filter(comments.FilterApproved)
}

func (m *Manager) Counts() (pending, approved int) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, c := range m.comments {
		if c.IsApproved {
			approved++
		} else {
			pending++
		}
	}
	return pending, approved
}

// Scope is the artwork the cache was loaded for, empty for the full queue.
func (m *Manager) Scope() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.scope
}

func (m *Manager) IsLoading() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.j.Loading()
}

func (m *Manager) Err() error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.err
}

func ValidateSubmission(c comments.Comment) error {
	return validate.New().
		Required("artwork_id", c.ArtworkID).
		Required("user_name", c.UserName).
		MaxLen("user_name", c.UserName, 100).
		Email("user_email", c.UserEmail).
		Required("comment_text", c.CommentText).
		MaxLen("comment_text", c.CommentText, 2000).
		Range("rating", c.Rating, comments.MinRating, comments.MaxRating).
		Err()
}

func indexOf(list []comments.Comment, id string) int {
	for i := range list {
		if list[i].ID == id {
			return i
		}
	}
	return -1
}

func onlyArtwork(list []comments.Comment, artworkID string) []comments.Comment {
	out := list[:0]
	for _, c := range list {
		if c.ArtworkID == artworkID {
			out = append(out, c)
		}
	}
	return out
}
