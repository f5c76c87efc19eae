package media

import (
	"context"
	"io"
	"time"
)

// Image records an upload kept in the blob store.
type Image struct {
	ID          string `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	URL         string `gorm:"not null" json:"url"`
	PublicID    string `gorm:"not null;index" json:"public_id"`
	ContentType string `gorm:"not null" json:"content_type"`
	Bytes       int64  `gorm:"not null" json:"bytes"`
	Filename    string `json:"filename"`

	CreatedAt time.Time `json:"created_at"`
}

type Stored struct {
	URL      string
	PublicID string
}

// BlobStore is where image bytes live. Only the returned URL is kept on the
// artwork or post.
type BlobStore interface {
	Put(ctx context.Context, name string, r io.Reader) (Stored, error)
	Delete(ctx context.Context, publicID string) error
}
