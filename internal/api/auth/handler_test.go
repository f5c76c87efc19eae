package auth_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"artist-portfolio/database"
	authapi "artist-portfolio/internal/api/auth"
	"artist-portfolio/internal/domain/users"
	"artist-portfolio/internal/testutil/apitest"
)

func TestLogin(t *testing.T) {
	env := apitest.New(t)

	w := env.Do(t, http.MethodPost, "/auth/login", map[string]string{
		"email":    "ADMIN@example.com",
		"password": apitest.AdminPassword,
	}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp authapi.LoginResponse
	apitest.Decode(t, w, &resp)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, apitest.AdminEmail, resp.User.Email)
	assert.Equal(t, users.RoleAdmin, resp.User.Role)
	assert.False(t, resp.ExpiresAt.IsZero())
}

func TestLogin_Failures(t *testing.T) {
	env := apitest.New(t)
	_, err := env.Store.InsertUser(context.Background(), users.User{
		Name: "Google Only", Email: "g@example.com", AuthProvider: "google", Role: users.RoleAdmin,
	})
	require.NoError(t, err)

	tests := []struct {
		name string
		body map[string]string
		want string
		code int
	}{
		{"wrong_password", map[string]string{"email": apitest.AdminEmail, "password": "nope"}, "Invalid credentials", http.StatusUnauthorized},
		{"unknown_email", map[string]string{"email": "who@example.com", "password": "x"}, "Invalid credentials", http.StatusUnauthorized},
		{"google_account", map[string]string{"email": "g@example.com", "password": "x"}, "This account uses Google sign-in", http.StatusUnauthorized},
		{"missing_fields", map[string]string{"email": "not-an-email"}, "Email and password are required", http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := env.Do(t, http.MethodPost, "/auth/login", tt.body, "")
			assert.Equal(t, tt.code, w.Code)
			var body map[string]string
			apitest.Decode(t, w, &body)
			assert.Equal(t, tt.want, body["error"])
		})
	}
}

func TestLogout_RevokesSession(t *testing.T) {
	env := apitest.New(t)
	token := env.Login(t)

	require.Equal(t, http.StatusOK, env.Do(t, http.MethodGet, "/auth/me", nil, token).Code)
	require.Equal(t, http.StatusOK, env.Do(t, http.MethodPost, "/auth/logout", nil, token).Code)

	w := env.Do(t, http.MethodGet, "/auth/me", nil, token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Session expired")
}

func TestGoogle_DisabledWithoutConfig(t *testing.T) {
	env := apitest.New(t)
	assert.Equal(t, http.StatusNotFound, env.Do(t, http.MethodGet, "/auth/google", nil, "").Code)
	assert.Equal(t, http.StatusNotFound, env.Do(t, http.MethodGet, "/auth/google/callback?code=x&state=y", nil, "").Code)
}

/*
TestLogin_PasswordIsComparedVerbatim: the seeded hash is taken from the raw
password, so markup characters and surrounding spaces must reach bcrypt as
typed.
*/
func TestLogin_PasswordIsComparedVerbatim(t *testing.T) {
	env := apitest.New(t)

	passwords := map[string]string{
		"amp@example.com":    "fish&chips<3",
		"quote@example.com":  `"O'Brien" <b>`,
		"spaced@example.com": "  padded secret  ",
	}
	for email, pw := range passwords {
		require.NoError(t, database.Seed(context.Background(), env.Store, email, pw, zap.NewNop()))
	}

	for email, pw := range passwords {
		t.Run(email, func(t *testing.T) {
			w := env.Do(t, http.MethodPost, "/auth/login", map[string]string{"email": email, "password": pw}, "")
			require.Equal(t, http.StatusOK, w.Code, w.Body.String())

			w = env.Do(t, http.MethodPost, "/auth/login", map[string]string{"email": email, "password": pw + "x"}, "")
			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
}
