//go:build integration

package integration

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/quotedash/internal/domain"
	"github.com/jsamuelsen/quotedash/internal/platform/config"
)

func startStack(t *testing.T, remote *fakeYouQuote, overrides ...func(*config.Config)) *stack {
	t.Helper()

	s, err := newStack(remote, overrides...)
	require.NoError(t, err)
	t.Cleanup(s.Close)

	return s
}

func seededRemote(t *testing.T) *fakeYouQuote {
	t.Helper()

	remote := newFakeYouQuote()
	t.Cleanup(remote.Close)

	remote.AddUser("Ada", "ada@example.com", "password1", "user")
	remote.AddUser("Root", "root@example.com", "password1", "admin")
	remote.AddCategory("Wisdom")
	remote.AddTag("short")
	remote.AddQuote("Less is more.", "Mies", "Wisdom", 3, false)
	remote.AddQuote("Simplicity is prerequisite for reliability.", "Dijkstra", "", 7, true)

	return remote
}

func TestSession_LoginSendsBearerAndIDs(t *testing.T) {
	remote := seededRemote(t)
	s := startStack(t, remote)

	resp, err := s.Login("ada@example.com", "password1")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.Status, string(resp.Body))
	assert.Contains(t, string(resp.Body), `"landing":"user"`)
	assert.NotContains(t, string(resp.Body), "access_token")

	resp, err = s.Do(http.MethodGet, "/api/v1/dashboard", nil,
		"X-Request-ID", "req-42",
		"X-Correlation-ID", "corr-7",
	)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.Status, string(resp.Body))

	for _, path := range []string{"/quotes", "/categories", "/tags", "/quotes/Favorie"} {
		assert.Equal(t, 1, remote.Hits(http.MethodGet, path), path)

		header := remote.LastHeader(http.MethodGet, path)
		assert.Regexp(t, `^Bearer \S+$`, header.Get("Authorization"), path)
		assert.Equal(t, "req-42", header.Get("X-Request-ID"), path)
		assert.Equal(t, "corr-7", header.Get("X-Correlation-ID"), path)
	}

	assert.Empty(t, remote.LastHeader(http.MethodPost, "/login").Get("Authorization"))
}

func TestSession_AdminLandsOnAdmin(t *testing.T) {
	s := startStack(t, seededRemote(t))

	resp, err := s.Login("root@example.com", "password1")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.Status)
	assert.Contains(t, string(resp.Body), `"landing":"admin"`)
}

func TestSession_WrongPassword(t *testing.T) {
	s := startStack(t, seededRemote(t))

	resp, err := s.Login("ada@example.com", "nope-nope")
	require.NoError(t, err)

	assert.Equal(t, http.StatusBadRequest, resp.Status)
	assert.Contains(t, string(resp.Body), "Invalid credentials")

	_, ok := s.creds.Current()
	assert.False(t, ok)
}

func TestSession_RemoteRegistrationErrors(t *testing.T) {
	s := startStack(t, seededRemote(t))

	resp, err := s.Do(http.MethodPost, "/api/v1/session/register", map[string]string{
		"name":                  "Ada Again",
		"email":                 "ada@example.com",
		"password":              "password1",
		"password_confirmation": "password1",
	})
	require.NoError(t, err)

	assert.Equal(t, http.StatusBadRequest, resp.Status)
	assert.Contains(t, string(resp.Body), "The email has already been taken.")
}

func TestSession_RegisterSignsIn(t *testing.T) {
	remote := seededRemote(t)
	s := startStack(t, remote)

	resp, err := s.Do(http.MethodPost, "/api/v1/session/register", map[string]string{
		"name":                  "Grace",
		"email":                 "grace@example.com",
		"password":              "password1",
		"password_confirmation": "password1",
	})
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.Status, string(resp.Body))

	session, ok := s.creds.Current()
	require.True(t, ok)
	assert.Equal(t, "Grace", session.User.Name)
}

func TestSession_RejectedTokenClearsEverything(t *testing.T) {
	remote := seededRemote(t)
	s := startStack(t, remote)

	_, err := s.Login("ada@example.com", "password1")
	require.NoError(t, err)

	resp, err := s.Do(http.MethodGet, "/api/v1/dashboard", nil)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.Status)

	remote.RevokeTokens()

	resp, err = s.Do(http.MethodPost, "/api/v1/dashboard/refresh", nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.Status)
	assert.Contains(t, string(resp.Body), `"redirect":"/login"`)

	resp, err = s.Do(http.MethodGet, "/api/v1/session", nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.Status)

	_, err = s.store.Load(context.Background())
	assert.True(t, domain.IsNotFound(err), "stored session removed")
}

func TestSession_SurvivesRestart(t *testing.T) {
	remote := seededRemote(t)
	dir := t.TempDir()
	onDisk := func(cfg *config.Config) {
		cfg.Session.InMemory = false
		cfg.Session.StorePath = dir
	}

	first, err := newStack(remote, onDisk)
	require.NoError(t, err)

	resp, err := first.Login("ada@example.com", "password1")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.Status)
	first.Close()

	second := startStack(t, remote, onDisk)
	require.NoError(t, second.creds.Restore(context.Background()))

	resp, err = second.Do(http.MethodGet, "/api/v1/session", nil)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.Status)
	assert.Contains(t, string(resp.Body), `"email":"ada@example.com"`)

	resp, err = second.Do(http.MethodGet, "/api/v1/dashboard", nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.Status, "restored token is accepted by the remote")
}

func TestSession_LogoutForgetsStoredToken(t *testing.T) {
	s := startStack(t, seededRemote(t))

	_, err := s.Login("ada@example.com", "password1")
	require.NoError(t, err)

	resp, err := s.Do(http.MethodDelete, "/api/v1/session", nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, resp.Status)

	_, err = s.store.Load(context.Background())
	assert.True(t, domain.IsNotFound(err), "stored session removed")

	resp, err = s.Do(http.MethodGet, "/api/v1/quotes", nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.Status)
}

func TestSession_RejectedLoginWhileSignedInClearsSession(t *testing.T) {
	remote := seededRemote(t)
	s := startStack(t, remote)

	_, err := s.Login("ada@example.com", "password1")
	require.NoError(t, err)

	resp, err := s.Login("ada@example.com", "nope-nope")
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.Status)
	assert.Empty(t, remote.LastHeader(http.MethodPost, "/login").Get("Authorization"))

	resp, err = s.Do(http.MethodGet, "/api/v1/session", nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.Status)

	_, err = s.store.Load(context.Background())
	assert.True(t, domain.IsNotFound(err))
}
