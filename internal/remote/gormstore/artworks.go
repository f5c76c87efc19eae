package gormstore

import (
	"context"
	"time"

	"gorm.io/gorm"

	"artist-portfolio/internal/domain/comments"
	"artist-portfolio/internal/domain/works"
	"artist-portfolio/internal/remote"
)

func (s *Store) SelectArtworks(ctx context.Context, f remote.ArtworkFilter) ([]works.Artwork, error) {
	q := s.db.WithContext(ctx).Model(&works.Artwork{}).Preload("Category")
	if f.PublishedOnly {
		q = q.Where("is_published = ?", true)
	}
	if f.CategoryID != "" {
		q = q.Where("category_id = ?", f.CategoryID)
	}
	var items []works.Artwork
	if err := q.Order("created_at DESC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) GetArtwork(ctx context.Context, id string) (works.Artwork, error) {
	var a works.Artwork
	err := s.db.WithContext(ctx).Preload("Category").Where("id = ?", id).First(&a).Error
	return a, notFound(err)
}

func (s *Store) InsertArtwork(ctx context.Context, a works.Artwork) (works.Artwork, error) {
	a.ID = ""
	a.Category = nil
	if err := s.db.WithContext(ctx).Create(&a).Error; err != nil {
		return works.Artwork{}, err
	}
	return s.GetArtwork(ctx, a.ID)
}

func (s *Store) UpdateArtwork(ctx context.Context, id string, p works.ArtworkPatch) (works.Artwork, error) {
	cols := p.Columns()
	if _, ok := cols["updated_at"]; !ok {
		cols["updated_at"] = time.Now()
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&works.Artwork{}).Where("id = ?", id).Updates(cols)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return remote.ErrNotFound
		}
		return nil
	})
	if err != nil {
		return works.Artwork{}, err
	}
	return s.GetArtwork(ctx, id)
}

func (s *Store) DeleteArtwork(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("artwork_id = ?", id).Delete(&comments.Comment{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&works.Artwork{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return remote.ErrNotFound
		}
		return nil
	})
}

func (s *Store) SelectCategories(ctx context.Context) ([]works.Category, error) {
	var items []works.Category
	if err := s.db.WithContext(ctx).Order("name ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) InsertCategory(ctx context.Context, c works.Category) (works.Category, error) {
	c.ID = ""
	if err := s.db.WithContext(ctx).Create(&c).Error; err != nil {
		return works.Category{}, err
	}
	return c, nil
}
