// Package memstore is an in-memory remote.Store used in dev mode and tests.
package memstore

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"artist-portfolio/internal/domain/blog"
	"artist-portfolio/internal/domain/comments"
	"artist-portfolio/internal/domain/media"
	"artist-portfolio/internal/domain/users"
	"artist-portfolio/internal/domain/works"
	"artist-portfolio/internal/remote"
)

// Store keeps every collection newest first. Before, when set, runs ahead of
// each operation and can block or fail it; tests use it to hold a load in
// flight or to simulate an outage.
type Store struct {
	mu sync.Mutex

	artworks   []works.Artwork
	categories []works.Category
	comments   []comments.Comment
	posts      []blog.Post
	users      []users.User
	images     []media.Image
	nextUserID uint

	Now    func() time.Time
	Before func(ctx context.Context, op string) error
}

var _ remote.Store = (*Store)(nil)

func New() *Store {
	return &Store{Now: time.Now, nextUserID: 1}
}

// Operation names passed to Before.
const (
	OpSelectArtworks   = "select_artworks"
	OpGetArtwork       = "get_artwork"
	OpInsertArtwork    = "insert_artwork"
	OpUpdateArtwork    = "update_artwork"
	OpDeleteArtwork    = "delete_artwork"
	OpSelectCategories = "select_categories"
	OpInsertCategory   = "insert_category"
	OpSelectComments   = "select_comments"
	OpInsertComment    = "insert_comment"
	OpUpdateComment    = "update_comment"
	OpDeleteComment    = "delete_comment"
	OpSelectPosts      = "select_posts"
	OpInsertPost       = "insert_post"
	OpUpdatePost       = "update_post"
	OpDeletePost       = "delete_post"
	OpGenerateSlug     = "generate_slug"
	OpHasRole          = "has_role"
)

func (s *Store) before(ctx context.Context, op string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.Before != nil {
		return s.Before(ctx, op)
	}
	return nil
}

func (s *Store) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

// SeedCategories inserts the given names and returns the stored rows.
func (s *Store) SeedCategories(names ...string) []works.Category {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]works.Category, 0, len(names))
	for _, n := range names {
		c := works.Category{ID: uuid.NewString(), Name: n, CreatedAt: s.now()}
		s.categories = append(s.categories, c)
		out = append(out, c)
	}
	return out
}

func (s *Store) categoryLocked(id string) *works.Category {
	for i := range s.categories {
		if s.categories[i].ID == id {
			c := s.categories[i]
			return &c
		}
	}
	return nil
}

func (s *Store) withCategoryLocked(a works.Artwork) works.Artwork {
	a.Category = s.categoryLocked(a.CategoryID)
	return a
}

/* ---------------- artworks ---------------- */

func (s *Store) SelectArtworks(ctx context.Context, f remote.ArtworkFilter) ([]works.Artwork, error) {
	if err := s.before(ctx, OpSelectArtworks); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []works.Artwork{}
	for _, a := range s.artworks {
		if f.PublishedOnly && !a.IsPublished {
			continue
		}
		if f.CategoryID != "" && a.CategoryID != f.CategoryID {
			continue
		}
		out = append(out, s.withCategoryLocked(a))
	}
	return out, nil
}

func (s *Store) GetArtwork(ctx context.Context, id string) (works.Artwork, error) {
	if err := s.before(ctx, OpGetArtwork); err != nil {
		return works.Artwork{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.artworks {
		if a.ID == id {
			return s.withCategoryLocked(a), nil
		}
	}
	return works.Artwork{}, remote.ErrNotFound
}

func (s *Store) InsertArtwork(ctx context.Context, a works.Artwork) (works.Artwork, error) {
	if err := s.before(ctx, OpInsertArtwork); err != nil {
		return works.Artwork{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	a.ID = uuid.NewString()
	a.Category = nil
	a.CreatedAt = now
	a.UpdatedAt = now
	s.artworks = append([]works.Artwork{a}, s.artworks...)
	return s.withCategoryLocked(a), nil
}

func (s *Store) UpdateArtwork(ctx context.Context, id string, p works.ArtworkPatch) (works.Artwork, error) {
	if err := s.before(ctx, OpUpdateArtwork); err != nil {
		return works.Artwork{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.artworks {
		if s.artworks[i].ID != id {
			continue
		}
		if p.UpdatedAt.IsZero() {
			p.UpdatedAt = s.now()
		}
		p.Apply(&s.artworks[i])
		return s.withCategoryLocked(s.artworks[i]), nil
	}
	return works.Artwork{}, remote.ErrNotFound
}

func (s *Store) DeleteArtwork(ctx context.Context, id string) error {
	if err := s.before(ctx, OpDeleteArtwork); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.artworks {
		if s.artworks[i].ID == id {
			s.artworks = append(s.artworks[:i], s.artworks[i+1:]...)
			kept := s.comments[:0]
			for _, c := range s.comments {
				if c.ArtworkID != id {
					kept = append(kept, c)
				}
			}
			s.comments = kept
			return nil
		}
	}
	return remote.ErrNotFound
}

/* ---------------- categories ---------------- */

func (s *Store) SelectCategories(ctx context.Context) ([]works.Category, error) {
	if err := s.before(ctx, OpSelectCategories); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	out := append([]works.Category{}, s.categories...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *Store) InsertCategory(ctx context.Context, c works.Category) (works.Category, error) {
	if err := s.before(ctx, OpInsertCategory); err != nil {
		return works.Category{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.categories {
		if strings.EqualFold(existing.Name, c.Name) {
			return works.Category{}, errDuplicate("category name")
		}
	}
	c.ID = uuid.NewString()
	c.CreatedAt = s.now()
	s.categories = append(s.categories, c)
	return c, nil
}

/* ---------------- comments ---------------- */

func (s *Store) SelectComments(ctx context.Context, f remote.CommentFilter) ([]comments.Comment, error) {
	if err := s.before(ctx, OpSelectComments); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []comments.Comment{}
	for _, c := range s.comments {
		if f.ArtworkID != "" && c.ArtworkID != f.ArtworkID {
			continue
		}
		if f.ApprovedOnly && !c.IsApproved {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

func (s *Store) InsertComment(ctx context.Context, c comments.Comment) (comments.Comment, error) {
	if err := s.before(ctx, OpInsertComment); err != nil {
		return comments.Comment{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	c.ID = uuid.NewString()
	c.CreatedAt = s.now()
	s.comments = append([]comments.Comment{c}, s.comments...)
	return c, nil
}

func (s *Store) UpdateComment(ctx context.Context, id string, p comments.CommentPatch) (comments.Comment, error) {
	if err := s.before(ctx, OpUpdateComment); err != nil {
		return comments.Comment{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.comments {
		if s.comments[i].ID != id {
			continue
		}
		if p.IsApproved != nil {
			s.comments[i].IsApproved = *p.IsApproved
		}
		return s.comments[i], nil
	}
	return comments.Comment{}, remote.ErrNotFound
}

func (s *Store) DeleteComment(ctx context.Context, id string) error {
	if err := s.before(ctx, OpDeleteComment); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.comments {
		if s.comments[i].ID == id {
			s.comments = append(s.comments[:i], s.comments[i+1:]...)
			return nil
		}
	}
	return remote.ErrNotFound
}

/* ---------------- blog ---------------- */

func (s *Store) SelectPosts(ctx context.Context, f remote.PostFilter) ([]blog.Post, error) {
	if err := s.before(ctx, OpSelectPosts); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []blog.Post{}
	for _, p := range s.posts {
		if f.PublishedOnly && !p.IsPublished {
			continue
		}
		if f.Slug != "" && p.Slug != f.Slug {
			continue
		}
		out = append(out, p)
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].PublishedAt, out[j].PublishedAt
		switch {
		case a == nil && b == nil:
			return false
		case a == nil:
			return false
		case b == nil:
			return true
		}
		return a.After(*b)
	})
	return out, nil
}

func (s *Store) InsertPost(ctx context.Context, p blog.Post) (blog.Post, error) {
	if err := s.before(ctx, OpInsertPost); err != nil {
		return blog.Post{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.posts {
		if existing.Slug == p.Slug {
			return blog.Post{}, errDuplicate("slug")
		}
	}
	now := s.now()
	p.ID = uuid.NewString()
	p.CreatedAt = now
	p.UpdatedAt = now
	s.posts = append([]blog.Post{p}, s.posts...)
	return p, nil
}

func (s *Store) UpdatePost(ctx context.Context, id string, patch blog.PostPatch) (blog.Post, error) {
	if err := s.before(ctx, OpUpdatePost); err != nil {
		return blog.Post{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.posts {
		if s.posts[i].ID != id {
			continue
		}
		if patch.UpdatedAt.IsZero() {
			patch.UpdatedAt = s.now()
		}
		patch.Apply(&s.posts[i])
		return s.posts[i], nil
	}
	return blog.Post{}, remote.ErrNotFound
}

func (s *Store) DeletePost(ctx context.Context, id string) error {
	if err := s.before(ctx, OpDeletePost); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.posts {
		if s.posts[i].ID == id {
			s.posts = append(s.posts[:i], s.posts[i+1:]...)
			return nil
		}
	}
	return remote.ErrNotFound
}

func (s *Store) GenerateSlug(ctx context.Context, title string) (string, error) {
	if err := s.before(ctx, OpGenerateSlug); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return blog.UniqueSlug(title, func(slug string) (bool, error) {
		for _, p := range s.posts {
			if p.Slug == slug {
				return true, nil
			}
		}
		return false, nil
	})
}

/* ---------------- users ---------------- */

func (s *Store) UserByID(ctx context.Context, id uint) (users.User, error) {
	return s.findUser(ctx, func(u users.User) bool { return u.ID == id })
}

func (s *Store) UserByEmail(ctx context.Context, email string) (users.User, error) {
	return s.findUser(ctx, func(u users.User) bool { return strings.EqualFold(u.Email, email) })
}

func (s *Store) UserByGoogleSub(ctx context.Context, sub string) (users.User, error) {
	return s.findUser(ctx, func(u users.User) bool { return u.GoogleSub != nil && *u.GoogleSub == sub })
}

func (s *Store) findUser(ctx context.Context, match func(users.User) bool) (users.User, error) {
	if err := ctx.Err(); err != nil {
		return users.User{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if match(u) {
			return u, nil
		}
	}
	return users.User{}, remote.ErrNotFound
}

func (s *Store) InsertUser(ctx context.Context, u users.User) (users.User, error) {
	if err := ctx.Err(); err != nil {
		return users.User{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if strings.EqualFold(existing.Email, u.Email) {
			return users.User{}, errDuplicate("email")
		}
	}
	now := s.now()
	u.ID = s.nextUserID
	s.nextUserID++
	u.CreatedAt = now
	u.UpdatedAt = now
	s.users = append(s.users, u)
	return u, nil
}

func (s *Store) LinkGoogle(ctx context.Context, id uint, sub string) error {
	return s.mutateUser(ctx, id, func(u *users.User) {
		u.GoogleSub = &sub
		u.AuthProvider = "google"
	})
}

func (s *Store) SetRole(ctx context.Context, id uint, role string) error {
	return s.mutateUser(ctx, id, func(u *users.User) { u.Role = role })
}

func (s *Store) mutateUser(ctx context.Context, id uint, fn func(*users.User)) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.users {
		if s.users[i].ID == id {
			fn(&s.users[i])
			s.users[i].UpdatedAt = s.now()
			return nil
		}
	}
	return remote.ErrNotFound
}

func (s *Store) HasRole(ctx context.Context, userID uint, role string) (bool, error) {
	if err := s.before(ctx, OpHasRole); err != nil {
		return false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.ID == userID {
			return u.Role == role, nil
		}
	}
	return false, nil
}

/* ---------------- images ---------------- */

func (s *Store) InsertImage(ctx context.Context, img media.Image) (media.Image, error) {
	if err := ctx.Err(); err != nil {
		return media.Image{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	img.ID = uuid.NewString()
	img.CreatedAt = s.now()
	s.images = append([]media.Image{img}, s.images...)
	return img, nil
}

func (s *Store) SelectImages(ctx context.Context) ([]media.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]media.Image{}, s.images...), nil
}

type errDuplicate string

func (e errDuplicate) Error() string { return "duplicate " + string(e) }
