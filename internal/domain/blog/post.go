package blog

import (
	"time"

	"github.com/lib/pq"
)

type Post struct {
	ID               string         `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Title            string         `gorm:"not null" json:"title"`
	Content          string         `gorm:"type:text;not null" json:"content"`
	Excerpt          *string        `json:"excerpt"`
	Slug             string         `gorm:"not null;uniqueIndex" json:"slug"`
	AuthorID         *uint          `gorm:"index" json:"author_id"`
	FeaturedImageURL *string        `gorm:"column:featured_image_url" json:"featured_image_url"`
	IsPublished      bool           `gorm:"not null;default:false;index" json:"is_published"`
	IsFeatured       bool           `gorm:"not null;default:false" json:"is_featured"`
	PublishedAt      *time.Time     `gorm:"index" json:"published_at"`
	ReadingTime      int            `gorm:"not null;default:1" json:"reading_time"`
	Tags             pq.StringArray `gorm:"type:text[]" json:"tags"`
	MetaDescription  *string        `json:"meta_description"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Post) TableName() string { return "blog_posts" }

type PostPatch struct {
	Title            *string    `json:"title,omitempty"`
	Content          *string    `json:"content,omitempty"`
	Excerpt          *string    `json:"excerpt,omitempty"`
	FeaturedImageURL *string    `json:"featured_image_url,omitempty"`
	IsPublished      *bool      `json:"is_published,omitempty"`
	IsFeatured       *bool      `json:"is_featured,omitempty"`
	Tags             []string   `json:"tags,omitempty"`
	MetaDescription  *string    `json:"meta_description,omitempty"`
	ReadingTime      *int       `json:"reading_time,omitempty"`
	PublishedAt      *time.Time `json:"published_at,omitempty"`
	ClearPublishedAt bool       `json:"clear_published_at,omitempty"`

	UpdatedAt time.Time `json:"updated_at"`
}

func (p PostPatch) Columns() map[string]interface{} {
	cols := map[string]interface{}{}
	if p.Title != nil {
		cols["title"] = *p.Title
	}
	if p.Content != nil {
		cols["content"] = *p.Content
	}
	if p.Excerpt != nil {
		cols["excerpt"] = *p.Excerpt
	}
	if p.FeaturedImageURL != nil {
		cols["featured_image_url"] = *p.FeaturedImageURL
	}
	if p.IsPublished != nil {
		cols["is_published"] = *p.IsPublished
	}
	if p.IsFeatured != nil {
		cols["is_featured"] = *p.IsFeatured
	}
	if p.Tags != nil {
		cols["tags"] = pq.StringArray(p.Tags)
	}
	if p.MetaDescription != nil {
		cols["meta_description"] = *p.MetaDescription
	}
	if p.ReadingTime != nil {
		cols["reading_time"] = *p.ReadingTime
	}
	if p.ClearPublishedAt {
		cols["published_at"] = nil
	} else if p.PublishedAt != nil {
		cols["published_at"] = *p.PublishedAt
	}
	if !p.UpdatedAt.IsZero() {
		cols["updated_at"] = p.UpdatedAt
	}
	return cols
}

func (p PostPatch) Apply(post *Post) {
	if p.Title != nil {
		post.Title = *p.Title
	}
	if p.Content != nil {
		post.Content = *p.Content
	}
	if p.Excerpt != nil {
		v := *p.Excerpt
		post.Excerpt = &v
	}
	if p.FeaturedImageURL != nil {
		v := *p.FeaturedImageURL
		post.FeaturedImageURL = &v
	}
	if p.IsPublished != nil {
		post.IsPublished = *p.IsPublished
	}
	if p.IsFeatured != nil {
		post.IsFeatured = *p.IsFeatured
	}
	if p.Tags != nil {
		post.Tags = append(pq.StringArray(nil), p.Tags...)
	}
	if p.MetaDescription != nil {
		v := *p.MetaDescription
		post.MetaDescription = &v
	}
	if p.ReadingTime != nil {
		post.ReadingTime = *p.ReadingTime
	}
	if p.ClearPublishedAt {
		post.PublishedAt = nil
	} else if p.PublishedAt != nil {
		v := *p.PublishedAt
		post.PublishedAt = &v
	}
	if !p.UpdatedAt.IsZero() {
		post.UpdatedAt = p.UpdatedAt
	}
}
