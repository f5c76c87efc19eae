// Package posts caches blog posts and handles the publish workflow.
package posts

import (
	"context"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"artist-portfolio/internal/domain/blog"
	"artist-portfolio/internal/logger"
	"artist-portfolio/internal/notify"
	"artist-portfolio/internal/remote"
	"artist-portfolio/internal/state/journal"
	"artist-portfolio/internal/validate"
)

type Options struct {
	Notifier notify.Notifier
	Logger   *zap.Logger
	Now      func() time.Time
}

type Manager struct {
	store    remote.Posts
	notifier notify.Notifier
	log      *zap.Logger
	now      func() time.Time

	mu    sync.RWMutex
	posts []blog.Post
	err   error
	j     *journal.Journal[blog.Post]
}

func New(store remote.Posts, opts Options) *Manager {
	if opts.Notifier == nil {
		opts.Notifier = notify.Nop{}
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Manager{
		store:    store,
		notifier: opts.Notifier,
		log:      logger.OrNop(opts.Logger).Named("posts"),
		now:      opts.Now,
		j: journal.New(
			func(p blog.Post) string { return p.ID },
			func(p blog.Post) time.Time { return p.UpdatedAt },
		),
	}
}

func (m *Manager) Load(ctx context.Context, publishedOnly bool) error {
	m.mu.Lock()
	ticket := m.j.Begin()
	m.mu.Unlock()

	list, err := m.store.SelectPosts(ctx, remote.PostFilter{PublishedOnly: publishedOnly})

	m.mu.Lock()
	defer m.mu.Unlock()

	if ctx.Err() != nil {
		m.j.Cancel(ticket)
		return ctx.Err()
	}
	if err != nil {
		wrapped := remote.Wrap("Failed to load blog posts", err)
		if m.j.Fail(ticket) {
			m.err = wrapped
		}
		m.notifier.Failure("Error", "Failed to load blog posts")
		m.log.Error("load failed", zap.Error(err))
		return wrapped
	}
	if merged, ok := m.j.Finish(ticket, list); ok {
		m.posts = merged
		m.err = nil
	}
	return nil
}

// Create fills slug, reading time and publish stamp the way the admin form
// expects. A failing slug RPC falls back to a local slug.
func (m *Manager) Create(ctx context.Context, p blog.Post) (blog.Post, error) {
	if err := validate.New().
		Required("title", p.Title).
		MaxLen("title", p.Title, 200).
		Required("content", p.Content).
		Err(); err != nil {
		return blog.Post{}, err
	}

	if strings.TrimSpace(p.Slug) == "" {
		slug, err := m.store.GenerateSlug(ctx, p.Title)
		if err != nil || slug == "" {
			m.log.Warn("slug rpc failed, using fallback", zap.Error(err))
			slug = blog.FallbackSlug(p.Title)
		}
		p.Slug = slug
	}
	p.ReadingTime = blog.ReadingTime(p.Content)
	if p.IsPublished && p.PublishedAt == nil {
		now := m.now()
		p.PublishedAt = &now
	}

	saved, err := m.store.InsertPost(ctx, p)
	if err != nil {
		return blog.Post{}, m.fail("create", "Failed to create blog post", err)
	}

	m.mu.Lock()
	if indexOf(m.posts, saved.ID) < 0 {
		m.posts = append([]blog.Post{saved}, m.posts...)
	}
	m.j.Created(saved)
	m.mu.Unlock()

	m.notifier.Success("Success", "Blog post created successfully")
	return saved, nil
}

// Update recomputes reading time when content changes and stamps
// published_at the first time a post is published.
func (m *Manager) Update(ctx context.Context, id string, patch blog.PostPatch) (blog.Post, error) {
	v := validate.New()
	if patch.Title != nil {
		v.Required("title", *patch.Title)
	}
	if patch.Content != nil {
		v.Required("content", *patch.Content)
	}
	if err := v.Err(); err != nil {
		return blog.Post{}, err
	}

	now := m.now()
	patch.UpdatedAt = now
	if patch.Content != nil {
		rt := blog.ReadingTime(*patch.Content)
		patch.ReadingTime = &rt
	}
	if patch.IsPublished != nil && *patch.IsPublished && patch.PublishedAt == nil {
		if cur, ok := m.Find(id); !ok || cur.PublishedAt == nil {
			patch.PublishedAt = &now
		}
	}

	saved, err := m.store.UpdatePost(ctx, id, patch)
	if err != nil {
		return blog.Post{}, m.fail("update", "Failed to update blog post", err)
	}

	m.mu.Lock()
	if i := indexOf(m.posts, id); i >= 0 {
		m.posts[i] = saved
	}
	m.j.Updated(saved)
	m.mu.Unlock()

	m.notifier.Success("Success", "Blog post updated successfully")
	return saved, nil
}

func (m *Manager) Delete(ctx context.Context, id string) error {
	if err := m.store.DeletePost(ctx, id); err != nil {
		return m.fail("delete", "Failed to delete blog post", err)
	}

	m.mu.Lock()
	if i := indexOf(m.posts, id); i >= 0 {
		m.posts = append(m.posts[:i:i], m.posts[i+1:]...)
	}
	m.j.Deleted(id)
	m.mu.Unlock()

	m.notifier.Success("Success", "Blog post deleted successfully")
	return nil
}

// Slug asks the store for a unique slug, falling back locally on failure.
func (m *Manager) Slug(ctx context.Context, title string) string {
	slug, err := m.store.GenerateSlug(ctx, title)
	if err != nil || slug == "" {
		return blog.FallbackSlug(title)
	}
	return slug
}

func (m *Manager) fail(op, msg string, err error) error {
	m.log.Error(op+" failed", zap.Error(err))
	m.notifier.Failure("Error", msg)
	return remote.Wrap(msg, err)
}

func (m *Manager) Posts() []blog.Post {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]blog.Post(nil), m.posts...)
}

func (m *Manager) Find(id string) (blog.Post, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if i := indexOf(m.posts, id); i >= 0 {
		return m.posts[i], true
	}
	return blog.Post{}, false
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

func indexOf(list []blog.Post, id string) int {
	for i := range list {
		if list[i].ID == id {
			return i
		}
	}
	return -1
}
