package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/identity/internal/identity/domain"
	"github.com/aussiebroadwan/identity/pkg/jwtx"
)

func TestSessionIssuer(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	tok, exp, err := f.sessions.Mint("acct-1", domain.RoleAdmin)
	require.NoError(t, err)
	require.Equal(t, f.clock.Now().Add(time.Hour), exp)

	actor, err := f.sessions.Verify(tok)
	require.NoError(t, err)
	require.Equal(t, domain.Actor{ID: "acct-1", Role: domain.RoleAdmin}, actor)

	t.Run("tampered token", func(t *testing.T) {
		_, err := f.sessions.Verify(tok[:len(tok)-2] + "xx")
		require.ErrorIs(t, err, ErrInvalidSession)
	})

	t.Run("foreign secret", func(t *testing.T) {
		other, err := jwtx.NewHS256([]byte("ffffffffffffffffffffffffffffffff"), "identity-test", f.clock.Now)
		require.NoError(t, err)
		forged, err := other.Sign(jwtx.NewSessionClaims("acct-1", "ADMIN", "identity-test", time.Hour, f.clock.Now()))
		require.NoError(t, err)

		_, err = f.sessions.Verify(forged)
		require.ErrorIs(t, err, ErrInvalidSession)
	})

	t.Run("unknown role claim", func(t *testing.T) {
		_, err := ActorFromClaims(jwtx.Claims{Role: "ROOT"})
		require.ErrorIs(t, err, ErrInvalidSession)
	})
}

func TestSessionIssuer_Expiry(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	tok, _, err := f.sessions.Mint("acct-1", domain.RoleUser)
	require.NoError(t, err)

	f.clock.Advance(time.Hour + time.Second)
	_, err = f.sessions.Verify(tok)
	require.ErrorIs(t, err, ErrInvalidSession)
}
