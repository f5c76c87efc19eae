package cli

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"artist-portfolio/internal/domain/works"
	"artist-portfolio/internal/testutil/apitest"
)

type harness struct {
	t      *testing.T
	env    *apitest.Env
	config string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	return &harness{
		t:      t,
		env:    apitest.New(t),
		config: filepath.Join(t.TempDir(), "galleryctl.yaml"),
	}
}

func (h *harness) run(args ...string) (stdout, stderr string, code int) {
	h.t.Helper()
	var out, errOut bytes.Buffer
	full := append([]string{"--config", h.config, "--api-url", h.env.Server.URL}, args...)
	code = Execute(context.Background(), &out, &errOut, full)
	return out.String(), errOut.String(), code
}

func (h *harness) login() {
	h.t.Helper()
	out, errOut, code := h.run("login", "--email", apitest.AdminEmail, "--password", apitest.AdminPassword)
	require.Equal(h.t, 0, code, errOut)
	require.Contains(h.t, out, "Signed in as "+apitest.AdminEmail)
}

func TestLogin_StoresToken(t *testing.T) {
	h := newHarness(t)
	h.login()

	v, err := newViper(h.config)
	require.NoError(t, err)
	assert.NotEmpty(t, v.GetString(keyToken))
}

func TestLogin_BadPassword(t *testing.T) {
	h := newHarness(t)
	_, errOut, code := h.run("login", "--email", apitest.AdminEmail, "--password", "wrong")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "Invalid credentials")
}

func TestArtworks_AddListShowDelete(t *testing.T) {
	h := newHarness(t)
	h.login()

	out, errOut, code := h.run("artworks", "add",
		"--title", "Olive grove", "--category", "landscape",
		"--year", "2012", "--price", "800", "--published")
	require.Equal(t, 0, code, errOut)
	assert.Contains(t, errOut, "Artwork added successfully")
	id := strings.TrimSpace(out)
	require.NotEmpty(t, id)

	_, _, code = h.run("artworks", "add", "--title", "Draft", "--category", "Portrait", "--year", "2023")
	require.Equal(t, 0, code)

	out, _, code = h.run("artworks", "list", "--period", works.PeriodModern)
	require.Equal(t, 0, code)
	assert.Contains(t, out, "Olive grove")
	assert.NotContains(t, out, "Draft")
	assert.Contains(t, out, "page 1/1, 1 published artworks match")

	out, _, code = h.run("artworks", "list", "--all")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "Draft")
	assert.Contains(t, out, "2 artworks")

	out, _, code = h.run("artworks", "show", id)
	require.Equal(t, 0, code)
	assert.Contains(t, out, works.PeriodModern)
	assert.Contains(t, out, "800.00")

	_, errOut, code = h.run("artworks", "update", id, "--sold")
	require.Equal(t, 0, code, errOut)
	a, ok := h.env.Catalog.Find(id)
	require.True(t, ok)
	assert.True(t, a.IsSold)

	_, errOut, code = h.run("artworks", "delete", id)
	require.Equal(t, 0, code, errOut)
	_, ok = h.env.Catalog.Find(id)
	assert.False(t, ok)
}

func TestArtworks_AddValidationFailsWithDetails(t *testing.T) {
	h := newHarness(t)
	h.login()

	_, errOut, code := h.run("artworks", "add", "--title", "No year", "--category", "Portrait")

	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "year_created")
	assert.NotContains(t, errOut, "✗")
}

func TestArtworks_UnknownCategory(t *testing.T) {
	h := newHarness(t)
	h.login()

	_, errOut, code := h.run("artworks", "add", "--title", "X", "--category", "Baroque", "--year", "2001")

	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, `unknown category "Baroque"`)
}

func TestComments_ListApproveDelete(t *testing.T) {
	h := newHarness(t)
	h.login()

	out, _, code := h.run("artworks", "add", "--title", "Market day", "--category", "Cultural Heritage", "--year", "1988", "--published")
	require.Equal(t, 0, code)
	artID := strings.TrimSpace(out)

	cm, err := h.env.Store.InsertComment(context.Background(), commentFor(artID))
	require.NoError(t, err)

	out, _, code = h.run("comments", "list", "--filter", "pending")
	require.Equal(t, 0, code)
	assert.Contains(t, out, cm.ID)
	assert.Contains(t, out, "1 pending, 0 approved")

	_, errOut, code := h.run("comments", "approve", cm.ID)
	require.Equal(t, 0, code, errOut)

	out, _, code = h.run("comments", "list", "--artwork", artID)
	require.Equal(t, 0, code)
	assert.Contains(t, out, "0 pending, 1 approved")

	_, _, code = h.run("comments", "delete", cm.ID)
	require.Equal(t, 0, code)

	_, errOut, code = h.run("comments", "delete", cm.ID)
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "Failed to delete comment")
}

func TestComments_BadFilter(t *testing.T) {
	h := newHarness(t)
	h.login()
	_, errOut, code := h.run("comments", "list", "--filter", "spam")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "invalid --filter")
}

func TestBlog_AddListDelete(t *testing.T) {
	h := newHarness(t)
	h.login()

	out, errOut, code := h.run("blog", "add", "--title", "New Series", "--content", "a few words here", "--published", "--tags", "oil,studio")
	require.Equal(t, 0, code, errOut)
	fields := strings.Fields(out)
	require.Len(t, fields, 2)
	assert.Equal(t, "new-series", fields[1])

	out, _, code = h.run("blog", "list", "--published")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "new-series")
	assert.Contains(t, out, "published")

	_, _, code = h.run("blog", "delete", fields[0])
	require.Equal(t, 0, code)

	out, _, code = h.run("blog", "list")
	require.Equal(t, 0, code)
	assert.NotContains(t, out, "new-series")
}

func TestCommands_NeedLogin(t *testing.T) {
	h := newHarness(t)
	_, errOut, code := h.run("artworks", "list")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "Authorization header missing")
}
