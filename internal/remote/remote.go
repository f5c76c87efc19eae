// Package remote is the contract the state managers use to reach the
// persistent store. Every call may block on I/O and honours ctx.
package remote

import (
	"context"
	"errors"

	"artist-portfolio/internal/domain/blog"
	"artist-portfolio/internal/domain/comments"
	"artist-portfolio/internal/domain/media"
	"artist-portfolio/internal/domain/users"
	"artist-portfolio/internal/domain/works"
)

// ErrNotFound is returned by update/delete/get on an id the store does not hold.
var ErrNotFound = errors.New("record not found")

type ArtworkFilter struct {
	PublishedOnly bool
	CategoryID    string
}

// Artworks are returned newest first with Category loaded.
type Artworks interface {
	SelectArtworks(ctx context.Context, f ArtworkFilter) ([]works.Artwork, error)
	GetArtwork(ctx context.Context, id string) (works.Artwork, error)
	InsertArtwork(ctx context.Context, a works.Artwork) (works.Artwork, error)
	UpdateArtwork(ctx context.Context, id string, p works.ArtworkPatch) (works.Artwork, error)
	DeleteArtwork(ctx context.Context, id string) error
}

// Categories are returned ordered by name.
type Categories interface {
	SelectCategories(ctx context.Context) ([]works.Category, error)
	InsertCategory(ctx context.Context, c works.Category) (works.Category, error)
}

type CommentFilter struct {
	ArtworkID    string
	ApprovedOnly bool
}

// Comments are returned newest first.
type Comments interface {
	SelectComments(ctx context.Context, f CommentFilter) ([]comments.Comment, error)
	InsertComment(ctx context.Context, c comments.Comment) (comments.Comment, error)
	UpdateComment(ctx context.Context, id string, p comments.CommentPatch) (comments.Comment, error)
	DeleteComment(ctx context.Context, id string) error
}

type PostFilter struct {
	PublishedOnly bool
	Slug          string
}

// Posts are returned by published_at descending, unpublished drafts last.
type Posts interface {
	SelectPosts(ctx context.Context, f PostFilter) ([]blog.Post, error)
	InsertPost(ctx context.Context, p blog.Post) (blog.Post, error)
	UpdatePost(ctx context.Context, id string, p blog.PostPatch) (blog.Post, error)
	DeletePost(ctx context.Context, id string) error
	// GenerateSlug returns a slug for title that no stored post uses yet.
	GenerateSlug(ctx context.Context, title string) (string, error)
}

type Roles interface {
	HasRole(ctx context.Context, userID uint, role string) (bool, error)
}

// Client is everything the state managers consume.
type Client interface {
	Artworks
	Categories
	Comments
	Posts
	Roles
}

// Users backs operator sign-in. Only server-side stores implement it.
type Users interface {
	UserByID(ctx context.Context, id uint) (users.User, error)
	UserByEmail(ctx context.Context, email string) (users.User, error)
	UserByGoogleSub(ctx context.Context, sub string) (users.User, error)
	InsertUser(ctx context.Context, u users.User) (users.User, error)
	LinkGoogle(ctx context.Context, id uint, sub string) error
	SetRole(ctx context.Context, id uint, role string) error
}

// Images is the upload log kept next to the blob store, newest first.
type Images interface {
	InsertImage(ctx context.Context, img media.Image) (media.Image, error)
	SelectImages(ctx context.Context) ([]media.Image, error)
}

type Store interface {
	Client
	Users
	Images
}
