package service

import (
	"fmt"
	"time"

	"github.com/aussiebroadwan/identity/internal/identity/domain"
	"github.com/aussiebroadwan/identity/pkg/jwtx"
)

// Session is the result of a successful login.
type Session struct {
	Token     string
	ExpiresAt time.Time
	Account   domain.PublicAccount
}

// SessionIssuer mints and verifies the stateless bearer session tokens.
type SessionIssuer struct {
	Signer   jwtx.Signer
	Verifier jwtx.Verifier
	Issuer   string
	TTL      time.Duration
	Now      func() time.Time
}

// Mint signs a session for subjectID carrying role.
func (s *SessionIssuer) Mint(subjectID string, role domain.Role) (string, time.Time, error) {
	ttl := s.TTL
	if ttl <= 0 {
		ttl = jwtx.DefaultSessionTTL
	}
	now := clock(s.Now)
	claims := jwtx.NewSessionClaims(subjectID, role.String(), s.Issuer, ttl, now)

	token, err := s.Signer.Sign(claims)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign session: %w", err)
	}
	return token, claims.ExpiresAt.Time.UTC(), nil
}

// Verify checks a session token and resolves the actor it was issued to.
func (s *SessionIssuer) Verify(token string) (domain.Actor, error) {
	claims, err := s.Verifier.Verify(token)
	if err != nil {
		return domain.Actor{}, fmt.Errorf("%w: %v", ErrInvalidSession, err)
	}
	return ActorFromClaims(claims)
}

// ActorFromClaims converts verified claims into an Actor.
func ActorFromClaims(c jwtx.Claims) (domain.Actor, error) {
	role, err := domain.ParseRole(c.Role)
	if err != nil || c.Subject == "" {
		return domain.Actor{}, ErrInvalidSession
	}
	return domain.Actor{ID: c.Subject, Role: role}, nil
}

func clock(now func() time.Time) time.Time {
	if now == nil {
		return time.Now().UTC()
	}
	return now().UTC()
}
