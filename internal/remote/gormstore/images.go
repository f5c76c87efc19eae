package gormstore

import (
	"context"

	"artist-portfolio/internal/domain/media"
)

func (s *Store) InsertImage(ctx context.Context, img media.Image) (media.Image, error) {
	img.ID = ""
	if err := s.db.WithContext(ctx).Create(&img).Error; err != nil {
		return media.Image{}, err
	}
	return img, nil
}

func (s *Store) SelectImages(ctx context.Context) ([]media.Image, error) {
	var items []media.Image
	if err := s.db.WithContext(ctx).Order("created_at DESC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}
