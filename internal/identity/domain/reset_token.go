package domain

import "time"

// DefaultResetTTL is the validity window of a password reset token.
const DefaultResetTTL = 24 * time.Hour

// ResetToken is a single-use password reset credential. Only the fingerprint
// of the token handed to the user is stored.
type ResetToken struct {
	TokenHash string // deterministic fingerprint (base64url SHA-256)
	AccountID string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// Expired reports whether the token is past its expiry at now.
func (t ResetToken) Expired(now time.Time) bool {
	return now.After(t.ExpiresAt)
}
