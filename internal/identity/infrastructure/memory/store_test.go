package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trustabee/honey-marketplace/internal/identity/application"
	"github.com/trustabee/honey-marketplace/internal/identity/domain"
)

func TestUserStore(t *testing.T) {
	ctx := context.Background()
	s := NewUserStore()
	u := domain.User{ID: "u1", Email: "bee@farm.lk", Role: domain.RoleFarmer}

	require.NoError(t, s.Create(ctx, u))
	assert.ErrorIs(t, s.Create(ctx, domain.User{ID: "u2", Email: "bee@farm.lk"}), application.ErrEmailTaken)

	got, err := s.ByEmail(ctx, "bee@farm.lk")
	require.NoError(t, err)
	assert.Equal(t, u, got)

	got, err = s.ByID(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, u, got)

	_, err = s.ByEmail(ctx, "nobody@farm.lk")
	assert.ErrorIs(t, err, application.ErrUserNotFound)
	_, err = s.ByID(ctx, "u2")
	assert.ErrorIs(t, err, application.ErrUserNotFound)
}

func TestRevocationsExpire(t *testing.T) {
	ctx := context.Background()
	r := NewRevocations()
	now := time.Date(2024, 6, 11, 0, 0, 0, 0, time.UTC)
	r.now = func() time.Time { return now }

	require.NoError(t, r.Revoke(ctx, "jti-1", now.Add(time.Hour)))

	revoked, err := r.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	revoked, _ = r.IsRevoked(ctx, "jti-2")
	assert.False(t, revoked)

	now = now.Add(2 * time.Hour)
	revoked, _ = r.IsRevoked(ctx, "jti-1")
	assert.False(t, revoked)
}
