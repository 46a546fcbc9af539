package app

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/aussiebroadwan/identity/pkg/jwtx"
)

// InitSessionKeys builds the KeyManager that signs and verifies sessions.
//
//   - HS256: the shared IDENTITY_TOKEN_SECRET. Nothing is published at the
//     JWKS endpoint.
//   - EdDSA: the key in IDENTITY_SIGNING_KEY_FILE, or a fresh key when unset.
//     A fresh key invalidates every session on restart.
func InitSessionKeys(cfg Config, logger *slog.Logger) (*jwtx.KeyManager, error) {
	opts := jwtx.KeyManagerOptions{
		Algorithm: cfg.Algorithm,
		Issuer:    cfg.Issuer,
		Secret:    []byte(cfg.TokenSecret),
	}

	if cfg.Algorithm == jwtx.AlgorithmEdDSA && cfg.SigningKeyFile != "" {
		pemKey, err := os.ReadFile(cfg.SigningKeyFile)
		if err != nil {
			return nil, fmt.Errorf("read signing key: %w", err)
		}
		opts.PrivateKeyPEM = pemKey
	}

	km, err := jwtx.NewKeyManager(opts)
	if err != nil {
		return nil, err
	}

	if cfg.Algorithm == jwtx.AlgorithmEdDSA && cfg.SigningKeyFile == "" {
		logger.Warn("no signing key configured, generated an ephemeral EdDSA key")
	}
	logger.Info("session signer ready", "algorithm", km.Algorithm(), "issuer", cfg.Issuer)
	return km, nil
}
