package http

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/trustabee/honey-marketplace/internal/identity/application"
	"github.com/trustabee/honey-marketplace/internal/identity/domain"
	"github.com/trustabee/honey-marketplace/internal/identity/infrastructure/memory"
	"github.com/trustabee/honey-marketplace/internal/identity/infrastructure/token"
	"github.com/trustabee/honey-marketplace/pkg/auth"
	"github.com/trustabee/honey-marketplace/pkg/httpx"
)

type countingSessions struct{ open atomic.Int32 }

func (c *countingSessions) Open(u domain.User) string {
	c.open.Add(1)
	return "sess-" + u.ID
}

func (c *countingSessions) Close(string) { c.open.Add(-1) }

func newServer(t *testing.T) (*httptest.Server, *countingSessions) {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	issuer := token.NewIssuer("k", "trustabee", time.Hour)
	revoked := memory.NewRevocations()
	sessions := &countingSessions{}
	svc := application.NewService(log, memory.NewUserStore(), issuer, sessions,
		application.WithRevoker(revoked), application.WithHashCost(bcrypt.MinCost))
	require.NoError(t, svc.SeedDemoUsers(t.Context(), "password"))

	r := chi.NewRouter()
	NewHandler(log, svc, httpx.NewValidator()).Mount(r, auth.RequireAuth(issuer, revoked, log))
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv, sessions
}

func do(t *testing.T, srv *httptest.Server, method, path, token, body string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, srv.URL+path, strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func TestLoginMeLogout(t *testing.T) {
	srv, sessions := newServer(t)

	resp := do(t, srv, http.MethodPost, "/auth/login", "", `{"email":"farmer@example.com","password":"password"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var res application.LoginResult
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&res))
	assert.Equal(t, "farmer1", res.User.ID)
	assert.EqualValues(t, 1, sessions.open.Load())

	resp = do(t, srv, http.MethodGet, "/me", res.Token, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var me map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&me))
	assert.Equal(t, "farmer", me["role"])
	assert.NotContains(t, me, "password")
	assert.NotContains(t, me, "PasswordHash")

	resp = do(t, srv, http.MethodPost, "/auth/logout", res.Token, "")
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.EqualValues(t, 0, sessions.open.Load())

	resp = do(t, srv, http.MethodGet, "/me", res.Token, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, auth.LoginPath, resp.Header.Get("Location"))
}

func TestLoginErrors(t *testing.T) {
	srv, _ := newServer(t)

	resp := do(t, srv, http.MethodPost, "/auth/login", "", `{"email":"farmer@example.com","password":"nope"}`)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = do(t, srv, http.MethodPost, "/auth/login", "", `{"email":"not-an-email","password":"x"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRegister(t *testing.T) {
	srv, _ := newServer(t)

	body := `{"name":"Kamal","email":"kamal@hive.lk","password":"longenough","role":"client"}`
	resp := do(t, srv, http.MethodPost, "/auth/register", "", body)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = do(t, srv, http.MethodPost, "/auth/register", "", body)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp = do(t, srv, http.MethodPost, "/auth/register", "", `{"name":"Root","email":"root@hive.lk","password":"longenough","role":"admin"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
