package jwtx_test

import (
	"strings"
	"testing"
	"time"

	"github.com/aussiebroadwan/identity/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

func TestNewKeyManager(t *testing.T) {
	tests := []struct {
		name      string
		opts      jwtx.KeyManagerOptions
		wantKeys  int
		wantError bool
	}{
		{
			name:     "HS256",
			opts:     jwtx.KeyManagerOptions{Algorithm: jwtx.AlgorithmHS256, Issuer: "identity", Secret: testSecret},
			wantKeys: 0,
		},
		{
			name:     "EdDSA ephemeral",
			opts:     jwtx.KeyManagerOptions{Algorithm: jwtx.AlgorithmEdDSA, Issuer: "identity"},
			wantKeys: 1,
		},
		{
			name:      "missing issuer",
			opts:      jwtx.KeyManagerOptions{Algorithm: jwtx.AlgorithmHS256, Secret: testSecret},
			wantError: true,
		},
		{
			name:      "HS256 without secret",
			opts:      jwtx.KeyManagerOptions{Algorithm: jwtx.AlgorithmHS256, Issuer: "identity"},
			wantError: true,
		},
		{
			name:      "unsupported",
			opts:      jwtx.KeyManagerOptions{Algorithm: "RS256", Issuer: "identity"},
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			km, err := jwtx.NewKeyManager(tt.opts)
			if tt.wantError {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.True(t, km.IsReady())
			require.Equal(t, tt.opts.Algorithm, km.Algorithm())
			require.Len(t, km.JWKS().Keys, tt.wantKeys)

			tok, err := km.Signer.Sign(jwtx.NewSessionClaims("acc", "USER", "identity", time.Minute, time.Now().UTC()))
			require.NoError(t, err)
			_, err = km.Verifier.Verify(tok)
			require.NoError(t, err)
		})
	}
}

func TestJWK_PEM(t *testing.T) {
	km, err := jwtx.NewKeyManager(jwtx.KeyManagerOptions{Algorithm: jwtx.AlgorithmEdDSA, Issuer: "identity"})
	require.NoError(t, err)

	keys := km.JWKS().Keys
	require.Len(t, keys, 1)
	require.Equal(t, "OKP", keys[0].Kty)
	require.True(t, strings.HasPrefix(keys[0].Kid, "identity-"))

	p, err := keys[0].PEM()
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(p, "-----BEGIN PUBLIC KEY-----"))

	_, err = jwtx.JWK{Kty: "RSA"}.PEM()
	require.Error(t, err)
}
