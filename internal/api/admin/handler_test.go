package admin_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	adminapi "artist-portfolio/internal/api/admin"
	"artist-portfolio/internal/domain/works"
	"artist-portfolio/internal/testutil/apitest"
)

func TestDashboard_Counts(t *testing.T) {
	env := apitest.New(t)
	token := env.Login(t)

	var live works.Artwork
	for i, fields := range []map[string]any{
		{"is_published": true},
		{"is_published": true, "is_sold": true},
		{"is_published": false},
	} {
		body := map[string]any{"title": "Work", "category_id": env.Category(t, "Portrait"), "year_created": 2010 + i}
		for k, v := range fields {
			body[k] = v
		}
		w := env.Do(t, http.MethodPost, "/admin/artworks", body, token)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		if i == 0 {
			apitest.Decode(t, w, &live)
		}
	}

	w := env.Do(t, http.MethodPost, "/artworks/"+live.ID+"/comments", map[string]any{
		"user_name": "Ana", "user_email": "ana@example.com", "comment_text": "Nice", "rating": 5,
	}, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	require.Equal(t, http.StatusCreated, env.Do(t, http.MethodPost, "/admin/blog", map[string]any{
		"title": "Notes", "content": "text", "is_published": true,
	}, token).Code)
	require.Equal(t, http.StatusCreated, env.Do(t, http.MethodPost, "/admin/blog", map[string]any{
		"title": "Draft notes", "content": "text",
	}, token).Code)

	w = env.Do(t, http.MethodGet, "/admin/dashboard", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	var stats adminapi.Stats
	apitest.Decode(t, w, &stats)

	assert.Equal(t, adminapi.Stats{
		Artworks:          3,
		PublishedArtworks: 2,
		SoldArtworks:      1,
		Categories:        len(works.DefaultCategories),
		PendingComments:   1,
		ApprovedComments:  0,
		PublishedPosts:    1,
		DraftPosts:        1,
	}, stats)
}
