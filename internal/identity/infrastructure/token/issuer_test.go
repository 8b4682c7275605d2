package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trustabee/honey-marketplace/internal/identity/domain"
)

func TestIssuer_RoundTrip(t *testing.T) {
	i := NewIssuer("secret", "trustabee", time.Hour)

	token, issued, err := i.Issue("farmer1", domain.RoleFarmer, "sess-1")
	require.NoError(t, err)
	require.NotEmpty(t, issued.TokenID)

	p, err := i.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "farmer1", p.UserID)
	assert.Equal(t, "farmer", p.Role)
	assert.Equal(t, "sess-1", p.SessionID)
	assert.Equal(t, issued.TokenID, p.TokenID)
	assert.True(t, issued.ExpiresAt.Equal(p.ExpiresAt))
}

func TestIssuer_Rejects(t *testing.T) {
	i := NewIssuer("secret", "trustabee", time.Hour)
	token, _, err := i.Issue("client1", domain.RoleClient, "sess-2")
	require.NoError(t, err)

	t.Run("wrong key", func(t *testing.T) {
		_, err := NewIssuer("other", "trustabee", time.Hour).Validate(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("wrong issuer", func(t *testing.T) {
		_, err := NewIssuer("secret", "someone-else", time.Hour).Validate(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired", func(t *testing.T) {
		late := NewIssuer("secret", "trustabee", time.Hour)
		late.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
		_, err := late.Validate(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := i.Validate("not.a.token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}
