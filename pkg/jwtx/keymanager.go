package jwtx

import (
	"fmt"
	"time"

	"github.com/aussiebroadwan/identity/pkg/cryptox"
)

// KeyManager bundles the active signer, the matching verifier and, for
// EdDSA, the KeySet published as JWKS.
type KeyManager struct {
	Signer   Signer
	Verifier Verifier
	KeySet   *KeySet

	algorithm string
}

// KeyManagerOptions configures a KeyManager.
type KeyManagerOptions struct {
	// Algorithm is "HS256" or "EdDSA".
	Algorithm string

	// Issuer is written to and enforced on the iss claim.
	Issuer string

	// Secret is the shared HS256 secret.
	Secret []byte

	// PrivateKeyPEM is an Ed25519 PKCS8 key. When empty with EdDSA a key is
	// generated and lives only for the process lifetime.
	PrivateKeyPEM []byte

	// Now overrides the verification clock.
	Now func() time.Time
}

// NewKeyManager builds the signer and verifier for opts.Algorithm.
func NewKeyManager(opts KeyManagerOptions) (*KeyManager, error) {
	if opts.Issuer == "" {
		return nil, fmt.Errorf("jwtx: Issuer is required")
	}

	switch opts.Algorithm {
	case AlgorithmHS256:
		s, err := NewHS256(opts.Secret, opts.Issuer, opts.Now)
		if err != nil {
			return nil, err
		}
		return &KeyManager{Signer: s, Verifier: s, algorithm: AlgorithmHS256}, nil

	case AlgorithmEdDSA:
		pemKey := opts.PrivateKeyPEM
		if len(pemKey) == 0 {
			var err error
			if pemKey, err = cryptox.GenerateEd25519Key(); err != nil {
				return nil, err
			}
		}
		kid, err := generateRandomKeyID()
		if err != nil {
			return nil, err
		}
		s, err := NewSignerEdDSA(kid, pemKey)
		if err != nil {
			return nil, err
		}
		ks := NewKeySet()
		if err := ks.AddJWK(s.PublicJWK()); err != nil {
			return nil, err
		}
		return &KeyManager{
			Signer:    s,
			Verifier:  NewVerifierEdDSA(ks, opts.Issuer, opts.Now),
			KeySet:    ks,
			algorithm: AlgorithmEdDSA,
		}, nil

	default:
		return nil, fmt.Errorf("jwtx: unsupported algorithm %q (supported: HS256, EdDSA)", opts.Algorithm)
	}
}

// Algorithm returns the signing algorithm being used.
func (km *KeyManager) Algorithm() string { return km.algorithm }

// IsReady reports whether the signer holds usable key material.
func (km *KeyManager) IsReady() bool {
	if km == nil || km.Signer == nil {
		return false
	}
	if km.Signer.Validate() != nil {
		return false
	}
	return km.KeySet == nil || km.KeySet.IsReady()
}

// JWKS returns the published key set, empty for shared-secret signing.
func (km *KeyManager) JWKS() JWKS {
	if km.KeySet == nil {
		return JWKS{Keys: []JWK{}}
	}
	return km.KeySet.PublicJWKS()
}

func generateRandomKeyID() (string, error) {
	token, err := cryptox.GenerateToken(cryptox.TokenSize128)
	if err != nil {
		return "", fmt.Errorf("jwtx: generate key id: %w", err)
	}
	return "identity-" + token, nil
}
