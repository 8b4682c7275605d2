// Package auth carries the authenticated principal through request contexts
// and guards routes by role.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"slices"
	"strings"
	"time"
)

const LoginPath = "/login"

var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
)

type Principal struct {
	UserID    string
	Role      string
	SessionID string
	TokenID   string
	ExpiresAt time.Time
}

// Validator turns a bearer token into a principal.
type Validator interface {
	Validate(token string) (Principal, error)
}

type RevocationChecker interface {
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

type principalKey struct{}

func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

func PrincipalFrom(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(Principal)
	return p, ok
}

func writeError(w http.ResponseWriter, status int, code, desc string) {
	if status == http.StatusUnauthorized {
		w.Header().Set("Location", LoginPath)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(fmt.Appendf(nil, `{"error":%q,"error_description":%q}`, code, desc))
}

// RequireAuth rejects requests without a valid bearer token with 401 and a
// Location pointing at the login view. revoked may be nil.
func RequireAuth(v Validator, revoked RevocationChecker, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !ok || token == "" {
				log.WarnContext(ctx, "unauthorized access - missing token", "path", r.URL.Path)
				writeError(w, http.StatusUnauthorized, "unauthorized", "Missing or invalid Authorization header")
				return
			}

			p, err := v.Validate(token)
			if err != nil {
				log.WarnContext(ctx, "unauthorized access - invalid token", "err", err)
				writeError(w, http.StatusUnauthorized, "unauthorized", "Invalid or expired token")
				return
			}

			if revoked != nil {
				gone, err := revoked.IsRevoked(ctx, p.TokenID)
				if err != nil {
					log.ErrorContext(ctx, "failed to check token revocation", "err", err)
					writeError(w, http.StatusInternalServerError, "internal_error", "Failed to validate token")
					return
				}
				if gone {
					log.WarnContext(ctx, "unauthorized access - token revoked", "jti", p.TokenID)
					writeError(w, http.StatusUnauthorized, "unauthorized", "Token has been revoked")
					return
				}
			}

			next.ServeHTTP(w, r.WithContext(WithPrincipal(ctx, p)))
		})
	}
}

// RequireRoles lets through principals whose role is one of roles. It must
// run after RequireAuth.
func RequireRoles(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, ok := PrincipalFrom(r.Context())
			if !ok {
				writeError(w, http.StatusUnauthorized, "unauthorized", "Authentication required")
				return
			}
			if !slices.Contains(roles, p.Role) {
				writeError(w, http.StatusForbidden, "forbidden", "Role not allowed")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
