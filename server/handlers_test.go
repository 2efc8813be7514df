package server_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mazehq/maze-server/internal/config"
	"github.com/mazehq/maze-server/server"
	"github.com/stretchr/testify/require"
)

func TestHealthHandler(t *testing.T) {
	srv := server.New(config.New())

	req := httptest.NewRequest(http.MethodGet, "http://localhost/api/health", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestIndexHandler(t *testing.T) {
	t.Setenv("APP_NAME", "Maze Server")
	t.Setenv("ENV", "production")
	srv := server.New(config.New())

	req := httptest.NewRequest(http.MethodGet, "http://localhost/", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"app":"Maze Server","env":"PRODUCTION"}`, rec.Body.String())
}
