package gormstore

import (
	"context"

	"artist-portfolio/internal/domain/comments"
	"artist-portfolio/internal/remote"
)

func (s *Store) SelectComments(ctx context.Context, f remote.CommentFilter) ([]comments.Comment, error) {
	q := s.db.WithContext(ctx).Model(&comments.Comment{})
	if f.ArtworkID != "" {
		q = q.Where("artwork_id = ?", f.ArtworkID)
	}
	if f.ApprovedOnly {
		q = q.Where("is_approved = ?", true)
	}
	var items []comments.Comment
	if err := q.Order("created_at DESC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) InsertComment(ctx context.Context, c comments.Comment) (comments.Comment, error) {
	c.ID = ""
	if err := s.db.WithContext(ctx).Create(&c).Error; err != nil {
		return comments.Comment{}, err
	}
	return c, nil
}

func (s *Store) UpdateComment(ctx context.Context, id string, p comments.CommentPatch) (comments.Comment, error) {
	var c comments.Comment
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&c).Error; err != nil {
		return comments.Comment{}, notFound(err)
	}
	if p.IsApproved != nil {
		if err := s.db.WithContext(ctx).Model(&c).Update("is_approved", *p.IsApproved).Error; err != nil {
			return comments.Comment{}, err
		}
		c.IsApproved = *p.IsApproved
	}
	return c, nil
}

func (s *Store) DeleteComment(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Where("id = ?", id).Delete(&comments.Comment{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return remote.ErrNotFound
	}
	return nil
}
