package gormstore

import (
	"context"

	"artist-portfolio/internal/domain/users"
	"artist-portfolio/internal/remote"
)

func (s *Store) UserByID(ctx context.Context, id uint) (users.User, error) {
	var u users.User
	err := s.db.WithContext(ctx).First(&u, id).Error
	return u, notFound(err)
}

func (s *Store) UserByEmail(ctx context.Context, email string) (users.User, error) {
	var u users.User
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&u).Error
	return u, notFound(err)
}

func (s *Store) UserByGoogleSub(ctx context.Context, sub string) (users.User, error) {
	var u users.User
	err := s.db.WithContext(ctx).Where("google_sub = ?", sub).First(&u).Error
	return u, notFound(err)
}

func (s *Store) InsertUser(ctx context.Context, u users.User) (users.User, error) {
	if err := s.db.WithContext(ctx).Create(&u).Error; err != nil {
		return users.User{}, err
	}
	return u, nil
}

func (s *Store) LinkGoogle(ctx context.Context, id uint, sub string) error {
	res := s.db.WithContext(ctx).Model(&users.User{}).Where("id = ?", id).
		Updates(map[string]interface{}{"google_sub": sub, "auth_provider": "google"})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return remote.ErrNotFound
	}
	return nil
}

func (s *Store) SetRole(ctx context.Context, id uint, role string) error {
	res := s.db.WithContext(ctx).Model(&users.User{}).Where("id = ?", id).Update("role", role)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return remote.ErrNotFound
	}
	return nil
}

// HasRole answers false for unknown users instead of failing.
func (s *Store) HasRole(ctx context.Context, userID uint, role string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&users.User{}).
		Where("id = ? AND role = ?", userID, role).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
