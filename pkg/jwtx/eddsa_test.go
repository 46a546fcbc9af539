package jwtx_test

import (
	"testing"
	"time"

	"github.com/aussiebroadwan/identity/pkg/cryptox"
	"github.com/aussiebroadwan/identity/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

func TestEdDSA_SignAndVerify(t *testing.T) {
	pemKey, err := cryptox.GenerateEd25519Key()
	require.NoError(t, err)

	s, err := jwtx.NewSignerEdDSA("kid-1", pemKey)
	require.NoError(t, err)
	require.NoError(t, s.Validate())

	ks := jwtx.NewKeySet()
	require.NoError(t, ks.AddJWK(s.PublicJWK()))

	v := jwtx.NewVerifierEdDSA(ks, "identity", nil)
	tok, err := s.Sign(jwtx.NewSessionClaims("acc-9", "ADMIN", "identity", time.Hour, time.Now().UTC()))
	require.NoError(t, err)

	claims, err := v.Verify(tok)
	require.NoError(t, err)
	require.Equal(t, "acc-9", claims.Subject)
	require.Equal(t, "ADMIN", claims.Role)
}

func TestEdDSA_UnknownKID(t *testing.T) {
	pemKey, err := cryptox.GenerateEd25519Key()
	require.NoError(t, err)
	s, err := jwtx.NewSignerEdDSA("kid-unpublished", pemKey)
	require.NoError(t, err)

	v := jwtx.NewVerifierEdDSA(jwtx.NewKeySet(), "identity", nil)
	tok, err := s.Sign(jwtx.NewSessionClaims("acc-9", "USER", "identity", time.Hour, time.Now().UTC()))
	require.NoError(t, err)

	_, err = v.Verify(tok)
	require.ErrorIs(t, err, jwtx.ErrUnknownKID)
}

func TestEdDSA_RejectsHS256Token(t *testing.T) {
	km, err := jwtx.NewKeyManager(jwtx.KeyManagerOptions{Algorithm: jwtx.AlgorithmEdDSA, Issuer: "identity"})
	require.NoError(t, err)

	hs, err := jwtx.NewHS256(testSecret, "identity", nil)
	require.NoError(t, err)
	tok, err := hs.Sign(jwtx.NewSessionClaims("acc-9", "ADMIN", "identity", time.Hour, time.Now().UTC()))
	require.NoError(t, err)

	_, err = km.Verifier.Verify(tok)
	require.Error(t, err)
}
