package database

import (
	"artist-portfolio/config"
	"artist-portfolio/internal/domain/blog"
	"artist-portfolio/internal/domain/comments"
	"artist-portfolio/internal/domain/media"
	"artist-portfolio/internal/domain/users"
	"artist-portfolio/internal/domain/works"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var DB *gorm.DB

// InitDB connects to config.DB_URL and migrates every model. Any failure is
// fatal: the server cannot run without its store.
func InitDB(log *zap.Logger) *gorm.DB {
	dsn := config.DB_URL
	if dsn == "" {
		log.Fatal("DB_URL not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}

	DB = db

	// gen_random_uuid()
	if err := DB.Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto;`).Error; err != nil {
		log.Fatal("failed to enable pgcrypto extension", zap.Error(err))
	}

	if err := Migrate(DB); err != nil {
		log.Fatal("automigrate failed", zap.Error(err))
	}

	log.Info("connected and migrated")
	return DB
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&users.User{},

		&works.Category{},
		&works.Artwork{},
		&comments.Comment{},

		&blog.Post{},
		&media.Image{},
	)
}
