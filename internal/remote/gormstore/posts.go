package gormstore

import (
	"context"
	"time"

	"artist-portfolio/internal/apperr"
	"artist-portfolio/internal/domain/blog"
	"artist-portfolio/internal/remote"
)

func (s *Store) SelectPosts(ctx context.Context, f remote.PostFilter) ([]blog.Post, error) {
	q := s.db.WithContext(ctx).Model(&blog.Post{})
	if f.PublishedOnly {
		q = q.Where("is_published = ?", true)
	}
	if f.Slug != "" {
		q = q.Where("slug = ?", f.Slug)
	}
	var items []blog.Post
	if err := q.Order("published_at DESC NULLS LAST").Order("created_at DESC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) InsertPost(ctx context.Context, p blog.Post) (blog.Post, error) {
	p.ID = ""
	if err := s.db.WithContext(ctx).Create(&p).Error; err != nil {
		if isUniqueViolation(err) {
			return blog.Post{}, apperr.Conflict("A post with this slug already exists", err)
		}
		return blog.Post{}, err
	}
	return p, nil
}

func (s *Store) UpdatePost(ctx context.Context, id string, p blog.PostPatch) (blog.Post, error) {
	cols := p.Columns()
	if _, ok := cols["updated_at"]; !ok {
		cols["updated_at"] = time.Now()
	}
	res := s.db.WithContext(ctx).Model(&blog.Post{}).Where("id = ?", id).Updates(cols)
	if res.Error != nil {
		return blog.Post{}, res.Error
	}
	if res.RowsAffected == 0 {
		return blog.Post{}, remote.ErrNotFound
	}
	var out blog.Post
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&out).Error
	return out, notFound(err)
}

func (s *Store) DeletePost(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Where("id = ?", id).Delete(&blog.Post{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return remote.ErrNotFound
	}
	return nil
}

func (s *Store) GenerateSlug(ctx context.Context, title string) (string, error) {
	return blog.UniqueSlug(title, func(slug string) (bool, error) {
		var count int64
		err := s.db.WithContext(ctx).Model(&blog.Post{}).Where("slug = ?", slug).Count(&count).Error
		return count > 0, err
	})
}
