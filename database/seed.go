package database

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"artist-portfolio/internal/domain/users"
	"artist-portfolio/internal/domain/works"
	"artist-portfolio/internal/remote"
)

type Seeder interface {
	remote.Categories
	remote.Users
}

// Seed inserts the default categories into an empty catalog and creates or
// promotes the bootstrap operator. It is safe to run on every start.
func Seed(ctx context.Context, store Seeder, adminEmail, adminPassword string, log *zap.Logger) error {
	existing, err := store.SelectCategories(ctx)
	if err != nil {
		return err
	}
	if len(existing) == 0 {
		for _, name := range works.DefaultCategories {
			if _, err := store.InsertCategory(ctx, works.Category{Name: name}); err != nil {
				return err
			}
		}
		log.Info("seeded categories", zap.Int("count", len(works.DefaultCategories)))
	}

	adminEmail = strings.TrimSpace(strings.ToLower(adminEmail))
	if adminEmail == "" {
		return nil
	}

	u, err := store.UserByEmail(ctx, adminEmail)
	switch {
	case err == nil:
		if u.Role != users.RoleAdmin {
			if err := store.SetRole(ctx, u.ID, users.RoleAdmin); err != nil {
				return err
			}
			log.Info("promoted operator", zap.String("email", adminEmail))
		}
		return nil
	case !errors.Is(err, remote.ErrNotFound):
		return err
	}

	if adminPassword == "" {
		log.Warn("ADMIN_EMAIL set without ADMIN_PASSWORD, operator must use Google sign-in")
		_, err := store.InsertUser(ctx, users.User{Name: "Admin", Email: adminEmail, AuthProvider: "google", Role: users.RoleAdmin})
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	pw := string(hashed)
	if _, err := store.InsertUser(ctx, users.User{
		Name:         "Admin",
		Email:        adminEmail,
		Password:     &pw,
		AuthProvider: "local",
		Role:         users.RoleAdmin,
	}); err != nil {
		return err
	}
	log.Info("created operator", zap.String("email", adminEmail))
	return nil
}
