// Package restclient implements remote.Client against the portfolio HTTP API.
// Mutations use the /admin surface and need a token from Login.
package restclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"artist-portfolio/internal/apperr"
	"artist-portfolio/internal/domain/blog"
	"artist-portfolio/internal/domain/comments"
	"artist-portfolio/internal/domain/works"
	"artist-portfolio/internal/remote"
)

var _ remote.Client = (*Client)(nil)

type Client struct {
	BaseURL string
	HTTP    *http.Client

	mu    sync.RWMutex
	token string
}

func New(baseURL, token string) *Client {
	return &Client{BaseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"), token: token}
}

type LoginResult struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	User      struct {
		ID    uint   `json:"id"`
		Name  string `json:"name"`
		Email string `json:"email"`
		Role  string `json:"role"`
	} `json:"user"`
}

// Login exchanges credentials for a session token and keeps it for later calls.
func (c *Client) Login(ctx context.Context, email, password string) (LoginResult, error) {
	var out LoginResult
	err := c.do(ctx, http.MethodPost, "/auth/login", map[string]string{
		"email":    email,
		"password": password,
	}, &out)
	if err != nil {
		return LoginResult{}, err
	}
	c.SetToken(out.Token)
	return out, nil
}

func (c *Client) Logout(ctx context.Context) error {
	if err := c.do(ctx, http.MethodPost, "/auth/logout", nil, nil); err != nil {
		return err
	}
	c.SetToken("")
	return nil
}

func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = strings.TrimSpace(token)
	c.mu.Unlock()
}

func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

/* ---------------- artworks ---------------- */

func (c *Client) SelectArtworks(ctx context.Context, f remote.ArtworkFilter) ([]works.Artwork, error) {
	var list []works.Artwork
	if f.PublishedOnly {
		if err := c.do(ctx, http.MethodGet, "/artworks", nil, &list); err != nil {
			return nil, err
		}
		if f.CategoryID == "" {
			return list, nil
		}
		out := list[:0]
		for _, a := range list {
			if a.CategoryID == f.CategoryID {
				out = append(out, a)
			}
		}
		return out, nil
	}

	q := url.Values{}
	if f.CategoryID != "" {
		q.Set("category_id", f.CategoryID)
	}
	if err := c.do(ctx, http.MethodGet, withQuery("/admin/artworks", q), nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (c *Client) GetArtwork(ctx context.Context, id string) (works.Artwork, error) {
	var a works.Artwork
	err := c.do(ctx, http.MethodGet, "/admin/artworks/"+url.PathEscape(id), nil, &a)
	return a, err
}

func (c *Client) InsertArtwork(ctx context.Context, a works.Artwork) (works.Artwork, error) {
	var out works.Artwork
	err := c.do(ctx, http.MethodPost, "/admin/artworks", a, &out)
	return out, err
}

func (c *Client) UpdateArtwork(ctx context.Context, id string, p works.ArtworkPatch) (works.Artwork, error) {
	var out works.Artwork
	err := c.do(ctx, http.MethodPatch, "/admin/artworks/"+url.PathEscape(id), p, &out)
	return out, err
}

func (c *Client) DeleteArtwork(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/admin/artworks/"+url.PathEscape(id), nil, nil)
}

/* ---------------- categories ---------------- */

func (c *Client) SelectCategories(ctx context.Context) ([]works.Category, error) {
	var list []works.Category
	err := c.do(ctx, http.MethodGet, "/categories", nil, &list)
	return list, err
}

func (c *Client) InsertCategory(ctx context.Context, cat works.Category) (works.Category, error) {
	var out works.Category
	err := c.do(ctx, http.MethodPost, "/admin/categories", cat, &out)
	return out, err
}

/* ---------------- comments ---------------- */

type commentList struct {
	Comments []comments.Comment `json:"comments"`
	Pending  int                `json:"pending"`
	Approved int                `json:"approved"`
}

func (c *Client) SelectComments(ctx context.Context, f remote.CommentFilter) ([]comments.Comment, error) {
	if f.ApprovedOnly && f.ArtworkID != "" {
		var list []comments.Comment
		err := c.do(ctx, http.MethodGet, "/artworks/"+url.PathEscape(f.ArtworkID)+"/comments", nil, &list)
		return list, err
	}

	q := url.Values{}
	if f.ArtworkID != "" {
		q.Set("artwork_id", f.ArtworkID)
	}
	if f.ApprovedOnly {
		q.Set("filter", string(comments.FilterApproved))
	}
	var out commentList
	if err := c.do(ctx, http.MethodGet, withQuery("/admin/comments", q), nil, &out); err != nil {
		return nil, err
	}
	return out.Comments, nil
}

func (c *Client) InsertComment(ctx context.Context, cm comments.Comment) (comments.Comment, error) {
	var out struct {
		Comment comments.Comment `json:"comment"`
	}
	err := c.do(ctx, http.MethodPost, "/artworks/"+url.PathEscape(cm.ArtworkID)+"/comments", map[string]any{
		"user_name":    cm.UserName,
		"user_email":   cm.UserEmail,
		"comment_text": cm.CommentText,
		"rating":       cm.Rating,
	}, &out)
	return out.Comment, err
}

// UpdateComment only supports approval; the API has no way to un-approve.
func (c *Client) UpdateComment(ctx context.Context, id string, p comments.CommentPatch) (comments.Comment, error) {
	if p.IsApproved == nil || !*p.IsApproved {
		return comments.Comment{}, apperr.ValidationError("Comments can only be approved")
	}
	var out comments.Comment
	err := c.do(ctx, http.MethodPost, "/admin/comments/"+url.PathEscape(id)+"/approve", nil, &out)
	return out, err
}

func (c *Client) DeleteComment(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/admin/comments/"+url.PathEscape(id), nil, nil)
}

/* ---------------- posts ---------------- */

func (c *Client) SelectPosts(ctx context.Context, f remote.PostFilter) ([]blog.Post, error) {
	if f.Slug != "" {
		var p blog.Post
		err := c.do(ctx, http.MethodGet, "/blog/"+url.PathEscape(f.Slug), nil, &p)
		if errors.Is(err, remote.ErrNotFound) {
			return []blog.Post{}, nil
		}
		if err != nil {
			return nil, err
		}
		return []blog.Post{p}, nil
	}

	path := "/admin/blog"
	if f.PublishedOnly {
		path = "/blog"
	}
	var list []blog.Post
	err := c.do(ctx, http.MethodGet, path, nil, &list)
	return list, err
}

func (c *Client) InsertPost(ctx context.Context, p blog.Post) (blog.Post, error) {
	var out blog.Post
	err := c.do(ctx, http.MethodPost, "/admin/blog", p, &out)
	return out, err
}

func (c *Client) UpdatePost(ctx context.Context, id string, p blog.PostPatch) (blog.Post, error) {
	var out blog.Post
	err := c.do(ctx, http.MethodPatch, "/admin/blog/"+url.PathEscape(id), p, &out)
	return out, err
}

func (c *Client) DeletePost(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/admin/blog/"+url.PathEscape(id), nil, nil)
}

func (c *Client) GenerateSlug(ctx context.Context, title string) (string, error) {
	var out struct {
		Slug string `json:"slug"`
	}
	err := c.do(ctx, http.MethodPost, "/admin/blog/slug", map[string]string{"title": title}, &out)
	return out.Slug, err
}

/* ---------------- roles ---------------- */

func (c *Client) HasRole(ctx context.Context, userID uint, role string) (bool, error) {
	var out struct {
		HasRole bool `json:"has_role"`
	}
	path := fmt.Sprintf("/admin/users/%d/roles/%s", userID, url.PathEscape(role))
	err := c.do(ctx, http.MethodGet, path, nil, &out)
	return out.HasRole, err
}

/* ---------------- transport ---------------- */

type errorBody struct {
	Error   string              `json:"error"`
	Code    string              `json:"code"`
	Details []apperr.FieldError `json:"details"`
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	if c.BaseURL == "" {
		return errors.New("api base url is empty")
	}

	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if tok := c.Token(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	b, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	if err != nil {
		return err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return statusError(method, path, resp.StatusCode, b)
	}
	if out == nil || len(b) == 0 {
		return nil
	}
	return json.Unmarshal(b, out)
}

// statusError maps an error response back onto the error kinds the state
// managers understand.
func statusError(method, path string, status int, b []byte) error {
	var eb errorBody
	_ = json.Unmarshal(b, &eb)
	msg := strings.TrimSpace(eb.Error)
	if msg == "" {
		msg = strings.TrimSpace(string(b))
	}
	if msg == "" {
		msg = http.StatusText(status)
	}

	switch status {
	case http.StatusNotFound:
		return fmt.Errorf("%s %s: %s: %w", method, path, msg, remote.ErrNotFound)
	case http.StatusBadRequest, http.StatusRequestEntityTooLarge:
		return apperr.ValidationError(msg, eb.Details...)
	case http.StatusUnauthorized:
		return apperr.Unauthorized(msg)
	case http.StatusForbidden:
		return apperr.Forbidden(msg)
	case http.StatusConflict:
		return apperr.Conflict(msg, nil)
	}
	return fmt.Errorf("%s %s: http %d: %s", method, path, status, msg)
}

func withQuery(path string, q url.Values) string {
	if len(q) == 0 {
		return path
	}
	return path + "?" + q.Encode()
}

func (c *Client) httpClient() *http.Client {
	if c.HTTP != nil {
		return c.HTTP
	}
	return &http.Client{Timeout: 15 * time.Second}
}
