package auth

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticValidator map[string]Principal

func (v staticValidator) Validate(token string) (Principal, error) {
	p, ok := v[token]
	if !ok {
		return Principal{}, errors.New("bad token")
	}
	return p, nil
}

type revokedSet map[string]bool

func (s revokedSet) IsRevoked(_ context.Context, id string) (bool, error) {
	if id == "boom" {
		return false, errors.New("redis down")
	}
	return s[id], nil
}

func guarded(revoked RevocationChecker, roles ...string) http.Handler {
	v := staticValidator{
		"farmer": {UserID: "farmer1", Role: "farmer", SessionID: "s1", TokenID: "t1"},
		"client": {UserID: "client1", Role: "client", SessionID: "s2", TokenID: "t2"},
		"old":    {UserID: "client1", Role: "client", TokenID: "revoked"},
		"broken": {UserID: "client1", Role: "client", TokenID: "boom"},
	}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p, _ := PrincipalFrom(r.Context())
		_, _ = io.WriteString(w, p.UserID)
	})
	return RequireAuth(v, revoked, log)(RequireRoles(roles...)(ok))
}

func TestRouteGuard(t *testing.T) {
	tests := []struct {
		name     string
		header   string
		roles    []string
		status   int
		location string
		body     string
	}{
		{name: "no header", roles: []string{"farmer"}, status: http.StatusUnauthorized, location: LoginPath},
		{name: "not bearer", header: "Basic abc", roles: []string{"farmer"}, status: http.StatusUnauthorized, location: LoginPath},
		{name: "unknown token", header: "Bearer nope", roles: []string{"farmer"}, status: http.StatusUnauthorized, location: LoginPath},
		{name: "wrong role", header: "Bearer client", roles: []string{"farmer"}, status: http.StatusForbidden},
		{name: "allowed", header: "Bearer farmer", roles: []string{"farmer", "admin"}, status: http.StatusOK, body: "farmer1"},
		{name: "revoked", header: "Bearer old", roles: []string{"client"}, status: http.StatusUnauthorized, location: LoginPath},
		{name: "revocation store down", header: "Bearer broken", roles: []string{"client"}, status: http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/farmer/orders", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			guarded(revokedSet{"revoked": true}, tt.roles...).ServeHTTP(rec, req)

			require.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.location, rec.Header().Get("Location"))
			if tt.body != "" {
				assert.Equal(t, tt.body, rec.Body.String())
			}
		})
	}
}

func TestRequireRolesWithoutPrincipal(t *testing.T) {
	h := RequireRoles("admin")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	}))
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/samples", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, LoginPath, rec.Header().Get("Location"))
}

func TestPrincipalRoundTrip(t *testing.T) {
	_, ok := PrincipalFrom(context.Background())
	assert.False(t, ok)

	ctx := WithPrincipal(context.Background(), Principal{UserID: "u", Role: "admin"})
	p, ok := PrincipalFrom(ctx)
	require.True(t, ok)
	assert.Equal(t, "admin", p.Role)
}
