package jwtx

import (
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// MinHS256SecretLen is the shortest shared secret accepted for HS256.
const MinHS256SecretLen = 32

// HS256Signer signs and verifies sessions with a shared secret. Any holder of
// the secret can validate a token without calling back into the issuer.
type HS256Signer struct {
	kid    string
	secret []byte
	issuer string
	now    func() time.Time
}

// NewHS256 returns a signer/verifier pair over secret. The kid is derived
// from the secret so rotating it is visible in token headers.
func NewHS256(secret []byte, issuer string, now func() time.Time) (*HS256Signer, error) {
	if len(secret) < MinHS256SecretLen {
		return nil, errors.New("jwtx: HS256 secret must be at least 32 bytes")
	}
	if now == nil {
		now = nowUTC
	}
	sum := sha256.Sum256(secret)
	return &HS256Signer{
		kid:    "hs-" + base64.RawURLEncoding.EncodeToString(sum[:6]),
		secret: append([]byte(nil), secret...),
		issuer: issuer,
		now:    now,
	}, nil
}

func (s *HS256Signer) Alg() string { return AlgorithmHS256 }
func (s *HS256Signer) KID() string { return s.kid }

// Sign takes your claims and turns them into a signed JWT string.
func (s *HS256Signer) Sign(claims Claims) (string, error) {
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	t.Header["kid"] = s.kid
	return t.SignedString(s.secret)
}

// Verify validates the JWT string and returns its parsed Claims.
func (s *HS256Signer) Verify(tokenStr string) (Claims, error) {
	return parse(tokenStr, AlgorithmHS256, s.issuer, s.now, func(*jwt.Token) (any, error) {
		return s.secret, nil
	})
}

// Validate does a quick sanity check to make sure we actually have a secret.
func (s *HS256Signer) Validate() error {
	if len(s.secret) < MinHS256SecretLen {
		return errors.New("jwtx: HS256 secret too short")
	}
	return nil
}
