package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"orderdesk/internal/domain"
)

func TestTokenIssuer_RoundTrip(t *testing.T) {
	now := time.Now()
	issuer := NewTokenIssuer("secret", time.Hour, func() time.Time { return now })
	id := domain.Identity{Username: "admin", DisplayName: "Admin", Role: domain.RoleAdmin}

	raw, err := issuer.Issue(id)
	require.NoError(t, err)

	got, err := issuer.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, id, got)
}

func TestTokenIssuer_Rejects(t *testing.T) {
	now := time.Now()
	issuer := NewTokenIssuer("secret", time.Hour, func() time.Time { return now })
	raw, err := issuer.Issue(domain.Identity{Username: "sam", Role: domain.RoleEmployee})
	require.NoError(t, err)

	t.Run("expired", func(t *testing.T) {
		later := NewTokenIssuer("secret", time.Hour, func() time.Time { return now.Add(2 * time.Hour) })
		_, err := later.Parse(raw)
		assert.Error(t, err)
	})

	t.Run("other secret", func(t *testing.T) {
		other := NewTokenIssuer("other", time.Hour, func() time.Time { return now })
		_, err := other.Parse(raw)
		assert.Error(t, err)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := issuer.Parse("not-a-token")
		assert.Error(t, err)
	})
}
