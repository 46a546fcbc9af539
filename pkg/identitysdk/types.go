package identitysdk

import (
	"time"

	"github.com/aussiebroadwan/identity/pkg/jwtx"
)

// ============================================================================
// Error Types
// ============================================================================

// ErrorResponse is the JSON body of every non-validation error.
type ErrorResponse struct {
	// Error is the machine readable code (e.g., "duplicate_identity", "forbidden")
	Error string `json:"error"`

	// ErrorDescription is a human-readable description of the error
	ErrorDescription string `json:"error_description"`
}

// ValidationErrorResponse is returned when request fields fail validation.
type ValidationErrorResponse struct {
	// Code is always "validation_error"
	Code string `json:"code"`

	Message string `json:"message"`

	// Details maps field names to the reason they were rejected
	Details map[string]string `json:"details,omitempty"`
}

// ============================================================================
// Account Types
// ============================================================================

// Account is the public projection of an account. It never carries the
// password hash.
type Account struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// AccountPage is one page of a listing.
type AccountPage struct {
	Content       []Account `json:"content"`
	Page          int       `json:"page"`
	Size          int       `json:"size"`
	TotalElements int64     `json:"totalElements"`
	TotalPages    int       `json:"totalPages"`
}

// ListOptions controls paging and ordering of GET /v1/users.
type ListOptions struct {
	Page  int    // 0-based
	Size  int    // 1..100, server default 20
	Sort  string // createdAt, email, firstName or lastName
	Order string // asc or desc
}

// ============================================================================
// Auth Types
// ============================================================================

// RegisterRequest creates an account. Also used by admin account creation.
type RegisterRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse carries the bearer session token.
type LoginResponse struct {
	Token     string    `json:"token"`
	TokenType string    `json:"tokenType"`
	ExpiresAt time.Time `json:"expiresAt"`
	User      Account   `json:"user"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

type ResetPasswordRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"newPassword"`
}

// MessageResponse is a plain acknowledgement.
type MessageResponse struct {
	Message string `json:"message"`
}

// ============================================================================
// Profile and Admin Types
// ============================================================================

// UpdateProfileRequest replaces the email and names of an account.
type UpdateProfileRequest struct {
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type ChangeRoleRequest struct {
	Role string `json:"role"`
}

// BootstrapRequest creates the first administrator. The bootstrap token goes
// in the X-Bootstrap-Token header.
type BootstrapRequest = RegisterRequest

// ============================================================================
// System Types
// ============================================================================

// HealthResponse is returned by /livez and /readyz.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

type HealthChecks struct {
	Database string `json:"database"`
	Signer   string `json:"signer"`
}

// JWKSResponse is the published key set. Empty when sessions use a shared
// secret.
type JWKSResponse jwtx.JWKS
