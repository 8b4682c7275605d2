package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/trustabee/honey-marketplace/internal/identity/domain"
	"github.com/trustabee/honey-marketplace/pkg/auth"
)

type Service struct {
	log      *slog.Logger
	users    UserStore
	tokens   TokenIssuer
	sessions Sessions
	revoker  Revoker
	cost     int
	now      func() time.Time
}

type Option func(*Service)

func WithRevoker(r Revoker) Option {
	return func(s *Service) { s.revoker = r }
}

// WithHashCost overrides the bcrypt cost.
func WithHashCost(cost int) Option {
	return func(s *Service) { s.cost = cost }
}

func NewService(log *slog.Logger, users UserStore, tokens TokenIssuer, sessions Sessions, opts ...Option) *Service {
	s := &Service{
		log:      log,
		users:    users,
		tokens:   tokens,
		sessions: sessions,
		cost:     bcrypt.DefaultCost,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type LoginResult struct {
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expiresAt"`
	User      domain.User `json:"user"`
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     domain.Role
}

func (s *Service) Login(ctx context.Context, email, password string) (LoginResult, error) {
	u, err := s.users.ByEmail(ctx, domain.NormalizeEmail(email))
	if errors.Is(err, ErrUserNotFound) {
		s.log.WarnContext(ctx, "login failed", "reason", "unknown email")
		return LoginResult{}, ErrInvalidCredentials
	}
	if err != nil {
		return LoginResult{}, fmt.Errorf("find user: %w", err)
	}
	if err := verifyPassword(password, u.PasswordHash); err != nil {
		s.log.WarnContext(ctx, "login failed", "user_id", u.ID, "err", err)
		return LoginResult{}, err
	}
	return s.startSession(ctx, u)
}

// Register creates a farmer or client account and logs it in.
func (s *Service) Register(ctx context.Context, in RegisterInput) (LoginResult, error) {
	if !in.Role.SelfService() {
		return LoginResult{}, ErrInvalidRole
	}
	hash, err := hashPassword(in.Password, s.cost)
	if err != nil {
		return LoginResult{}, err
	}
	u := domain.User{
		ID:           uuid.NewString(),
		Email:        domain.NormalizeEmail(in.Email),
		Name:         in.Name,
		Role:         in.Role,
		PasswordHash: hash,
		CreatedAt:    s.now().UTC(),
	}
	if err := s.users.Create(ctx, u); err != nil {
		return LoginResult{}, err
	}
	s.log.InfoContext(ctx, "user registered", "user_id", u.ID, "role", u.Role)
	return s.startSession(ctx, u)
}

func (s *Service) startSession(ctx context.Context, u domain.User) (LoginResult, error) {
	sessionID := s.sessions.Open(u)
	token, p, err := s.tokens.Issue(u.ID, u.Role, sessionID)
	if err != nil {
		s.sessions.Close(sessionID)
		return LoginResult{}, fmt.Errorf("issue token: %w", err)
	}
	s.log.InfoContext(ctx, "user logged in", "user_id", u.ID, "role", u.Role)
	return LoginResult{Token: token, ExpiresAt: p.ExpiresAt, User: u}, nil
}

// Logout drops the session state and, when a revoker is configured, rejects
// the token for the rest of its lifetime.
func (s *Service) Logout(ctx context.Context, p auth.Principal) error {
	s.sessions.Close(p.SessionID)
	if s.revoker != nil && p.TokenID != "" {
		if err := s.revoker.Revoke(ctx, p.TokenID, p.ExpiresAt); err != nil {
			return fmt.Errorf("revoke token: %w", err)
		}
	}
	s.log.InfoContext(ctx, "user logged out", "user_id", p.UserID)
	return nil
}

func (s *Service) Me(ctx context.Context, userID string) (domain.User, error) {
	return s.users.ByID(ctx, userID)
}

// SeedDemoUsers creates the demo accounts with a shared password. Accounts
// that already exist are left alone.
func (s *Service) SeedDemoUsers(ctx context.Context, password string) error {
	hash, err := hashPassword(password, s.cost)
	if err != nil {
		return err
	}
	for _, u := range domain.DemoUsers(s.now().UTC()) {
		u.PasswordHash = hash
		err := s.users.Create(ctx, u)
		if errors.Is(err, ErrEmailTaken) {
			continue
		}
		if err != nil {
			return fmt.Errorf("seed %s: %w", u.Email, err)
		}
	}
	return nil
}
