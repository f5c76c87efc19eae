package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadEnv_DevModeDefaults(t *testing.T) {
	t.Setenv("DEV_MODE", "true")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("SESSION_TTL", "2h")
	t.Setenv("GALLERY_PAGE_SIZE", "nope")

	LoadEnv()

	assert.True(t, DEV_MODE)
	assert.Equal(t, "8080", PORT)
	assert.Equal(t, 2*time.Hour, SESSION_TTL)
	assert.Equal(t, 6, GALLERY_PAGE_SIZE)
	assert.Equal(t, "@every 5m", CATALOG_REFRESH)
	assert.False(t, GoogleEnabled())
}

func TestHelpers(t *testing.T) {
	t.Setenv("X_INT", "12")
	t.Setenv("X_BAD_INT", "-3")
	t.Setenv("X_BOOL", "1")
	t.Setenv("X_DUR", "90s")

	assert.Equal(t, 12, getInt("X_INT", 1))
	assert.Equal(t, 1, getInt("X_BAD_INT", 1))
	assert.True(t, getBool("X_BOOL", false))
	assert.False(t, getBool("X_MISSING", false))
	assert.Equal(t, 90*time.Second, getDuration("X_DUR", time.Minute))
	assert.Equal(t, time.Minute, getDuration("X_MISSING", time.Minute))
}
