package handlers

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Amke0501/Private-Notes-App/internal/auth"
	"github.com/Amke0501/Private-Notes-App/internal/models"
)

func TestSignup(t *testing.T) {
	env := newTestEnv(t)
	browser := env.newBrowser(t)

	resp := env.request(t, browser, http.MethodPost, "/api/auth/signup",
		map[string]string{"email": "A@X.com", "password": "password123"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var body struct {
		Message string       `json:"message"`
		User    *models.User `json:"user"`
	}
	decodeBody(t, resp, &body)
	require.NotNil(t, body.User)
	assert.NotEmpty(t, body.User.ID)
	// Email is normalized and the password hash never leaves the server.
	assert.Equal(t, "a@x.com", body.User.Email)

	stored, err := env.store.UserByEmail(context.Background(), "a@x.com")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.NotEqual(t, "password123", stored.Password)
	assert.True(t, strings.HasPrefix(stored.Password, "$2"), "expected a bcrypt hash")
}

func TestSignup_Validation(t *testing.T) {
	env := newTestEnv(t)
	browser := env.newBrowser(t)

	cases := []struct {
		name  string
		email string
		pass  string
	}{
		{"missing email", "", "password123"},
		{"missing password", "a@x.com", ""},
		{"bad email", "not-an-email", "password123"},
		{"short password", "a@x.com", "pw1"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := env.request(t, browser, http.MethodPost, "/api/auth/signup",
				map[string]string{"email": tc.email, "password": tc.pass})
			defer resp.Body.Close()
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		})
	}
}

func TestSignup_DuplicateEmail(t *testing.T) {
	env := newTestEnv(t)
	browser := env.newBrowser(t)

	resp := env.request(t, browser, http.MethodPost, "/api/auth/signup",
		map[string]string{"email": "a@x.com", "password": "password123"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = env.request(t, browser, http.MethodPost, "/api/auth/signup",
		map[string]string{"email": "a@x.com", "password": "different123"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body map[string]string
	decodeBody(t, resp, &body)
	assert.Equal(t, "email already registered", body["error"])
}

func TestLogin_SetsSessionCookie(t *testing.T) {
	env := newTestEnv(t)
	browser := env.newBrowser(t)

	resp := env.request(t, browser, http.MethodPost, "/api/auth/signup",
		map[string]string{"email": "a@x.com", "password": "password123"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = env.request(t, browser, http.MethodPost, "/api/auth/login",
		map[string]string{"email": "a@x.com", "password": "password123"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	var session *http.Cookie
	for _, c := range resp.Cookies() {
		if c.Name == auth.SessionCookieName {
			session = c
		}
	}
	require.NotNil(t, session, "login must set the session cookie")
	assert.True(t, session.HttpOnly)
	assert.NotEmpty(t, session.Value)

	// The cookie value is a verifiable token for the logged-in user.
	identity, err := env.tokens.Verify(session.Value)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", identity.Email)
}

func TestLogin_BadCredentials(t *testing.T) {
	env := newTestEnv(t)
	browser := env.newBrowser(t)

	resp := env.request(t, browser, http.MethodPost, "/api/auth/signup",
		map[string]string{"email": "a@x.com", "password": "password123"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	// Wrong password and unknown email produce the same response.
	for _, creds := range []map[string]string{
		{"email": "a@x.com", "password": "wrong-password"},
		{"email": "nobody@x.com", "password": "password123"},
	} {
		resp := env.request(t, browser, http.MethodPost, "/api/auth/login", creds)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		var body map[string]string
		decodeBody(t, resp, &body)
		assert.Equal(t, "Invalid email or password", body["error"])
	}
}

func TestMe(t *testing.T) {
	env := newTestEnv(t)
	browser := env.signupAndLogin(t, "a@x.com", "password123")

	resp := env.request(t, browser, http.MethodGet, "/api/auth/me", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		User *models.User `json:"user"`
	}
	decodeBody(t, resp, &body)
	require.NotNil(t, body.User)
	assert.Equal(t, "a@x.com", body.User.Email)
}

func TestMe_Unauthenticated(t *testing.T) {
	env := newTestEnv(t)
	browser := env.newBrowser(t)

	resp := env.request(t, browser, http.MethodGet, "/api/auth/me", nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestLogout_ClearsSession(t *testing.T) {
	env := newTestEnv(t)
	browser := env.signupAndLogin(t, "a@x.com", "password123")

	resp := env.request(t, browser, http.MethodPost, "/api/auth/logout", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// The cleared cookie means subsequent requests carry no session.
	resp = env.request(t, browser, http.MethodGet, "/api/auth/me", nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestLogout_RequiresSession(t *testing.T) {
	env := newTestEnv(t)
	browser := env.newBrowser(t)

	resp := env.request(t, browser, http.MethodPost, "/api/auth/logout", nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestHealthCheck(t *testing.T) {
	env := newTestEnv(t)
	browser := env.newBrowser(t)

	resp := env.request(t, browser, http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	decodeBody(t, resp, &body)
	assert.Equal(t, "Private Notes API is running", body["message"])
}
