package application

import (
	"context"
	"time"

	"github.com/trustabee/honey-marketplace/internal/identity/domain"
	"github.com/trustabee/honey-marketplace/pkg/auth"
)

// UserStore returns ErrUserNotFound for unknown users and ErrEmailTaken when
// Create collides on email.
type UserStore interface {
	Create(ctx context.Context, u domain.User) error
	ByEmail(ctx context.Context, email string) (domain.User, error)
	ByID(ctx context.Context, id string) (domain.User, error)
}

// Sessions opens and closes the per-login shop state.
type Sessions interface {
	Open(u domain.User) string
	Close(sessionID string)
}

type TokenIssuer interface {
	Issue(userID string, role domain.Role, sessionID string) (string, auth.Principal, error)
}

type Revoker interface {
	Revoke(ctx context.Context, tokenID string, until time.Time) error
}
