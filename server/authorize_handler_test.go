package server_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/mazehq/maze-server/authorize"
	"github.com/mazehq/maze-server/internal/config"
	"github.com/mazehq/maze-server/server"
	"github.com/stretchr/testify/require"
)

func doAuthorize(t *testing.T, target string) *httptest.ResponseRecorder {
	t.Helper()

	srv := server.New(config.New())
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func cookiesByName(t *testing.T, rec *httptest.ResponseRecorder) map[string]*http.Cookie {
	t.Helper()

	byName := map[string]*http.Cookie{}
	for _, c := range rec.Result().Cookies() {
		byName[c.Name] = c
	}
	return byName
}

func TestAuthorizeHandler(t *testing.T) {
	t.Setenv("VERCEL_APP_CLIENT_ID", "abc123")
	t.Setenv("ENV", "production")

	rec := doAuthorize(t, "https://maze.example/api/auth/authorize")

	require.Equal(t, http.StatusFound, rec.Code)

	location := rec.Header().Get("Location")
	require.True(t, strings.HasPrefix(location, "https://vercel.com/oauth/authorize?"), location)
	require.Contains(t, location, "client_id=abc123&redirect_uri=https%3A%2F%2Fmaze.example%2Fapi%2Fauth%2Fcallback")
	require.Contains(t, location, "code_challenge_method=S256")
	require.Contains(t, location, "response_type=code")
	require.Contains(t, location, "scope=openid+email+profile+offline_access")

	cookies := cookiesByName(t, rec)
	require.Len(t, cookies, 3)
	for _, name := range []string{"oauth_state", "oauth_nonce", "oauth_code_verifier"} {
		c, ok := cookies[name]
		require.True(t, ok, "missing cookie %s", name)
		require.Equal(t, 600, c.MaxAge)
		require.True(t, c.HttpOnly)
		require.True(t, c.Secure)
		require.Equal(t, http.SameSiteLaxMode, c.SameSite)
	}

	u, err := url.Parse(location)
	require.NoError(t, err)
	q := u.Query()

	t.Run("secrets match the redirect parameters", func(t *testing.T) {
		require.Equal(t, cookies["oauth_state"].Value, q.Get("state"))
		require.Equal(t, cookies["oauth_nonce"].Value, q.Get("nonce"))
		require.Len(t, q.Get("state"), 43)
		require.Len(t, q.Get("nonce"), 43)
	})

	t.Run("challenge recomputes from the verifier cookie", func(t *testing.T) {
		verifier := cookies["oauth_code_verifier"].Value
		require.Len(t, verifier, 86)
		require.Equal(t, authorize.CodeChallengeS256(verifier), q.Get("code_challenge"))
		require.NotContains(t, location, verifier)
	})
}

func TestAuthorizeHandler_MissingClientID(t *testing.T) {
	t.Setenv("VERCEL_APP_CLIENT_ID", "")

	rec := doAuthorize(t, "https://maze.example/api/auth/authorize")

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Empty(t, rec.Header().Get("Location"))
	require.Empty(t, rec.Result().Cookies())
	require.JSONEq(t, `{"error":"OAuth not configured. Missing VERCEL_APP_CLIENT_ID"}`, rec.Body.String())
}

func TestAuthorizeHandler_DevelopmentCookies(t *testing.T) {
	t.Setenv("VERCEL_APP_CLIENT_ID", "abc123")
	t.Setenv("ENV", "")

	rec := doAuthorize(t, "http://localhost:8080/api/auth/authorize")

	require.Equal(t, http.StatusFound, rec.Code)
	require.Contains(t, rec.Header().Get("Location"), "redirect_uri=http%3A%2F%2Flocalhost%3A8080%2Fapi%2Fauth%2Fcallback")

	for _, c := range cookiesByName(t, rec) {
		require.False(t, c.Secure)
		require.True(t, c.HttpOnly)
	}
}

func TestAuthorizeHandler_ForwardedProto(t *testing.T) {
	t.Setenv("VERCEL_APP_CLIENT_ID", "abc123")
	t.Setenv("ENV", "production")

	srv := server.New(config.New())
	req := httptest.NewRequest(http.MethodGet, "http://maze.example/api/auth/authorize", nil)
	req.Header.Set("X-Forwarded-Proto", "https")
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	require.Equal(t, http.StatusFound, rec.Code)
	require.Contains(t, rec.Header().Get("Location"), "redirect_uri=https%3A%2F%2Fmaze.example%2Fapi%2Fauth%2Fcallback")
}

func TestAuthorizeHandler_IndependentAttempts(t *testing.T) {
	t.Setenv("VERCEL_APP_CLIENT_ID", "abc123")
	t.Setenv("ENV", "production")

	first := doAuthorize(t, "https://maze.example/api/auth/authorize")
	second := doAuthorize(t, "https://maze.example/api/auth/authorize")

	require.NotEqual(t, first.Header().Get("Location"), second.Header().Get("Location"))
	require.NotEqual(t,
		cookiesByName(t, first)["oauth_state"].Value,
		cookiesByName(t, second)["oauth_state"].Value)
	require.NotEqual(t,
		cookiesByName(t, first)["oauth_code_verifier"].Value,
		cookiesByName(t, second)["oauth_code_verifier"].Value)
}
