package store

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/identity/internal/identity/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite, postgres)
// implement this. Sub-repositories are reached through methods so a Tx can
// hand out tx-scoped repos with the same shape.
type Store interface {
	Accounts() Accounts
	ResetTokens() ResetTokens

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx runs fn in a transaction, committing when fn returns nil and
	// rolling back otherwise. Inside fn only the repos reached through tx may
	// be used.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

// Accounts is the User Store.
type Accounts interface {
	GetByID(ctx context.Context, id string) (domain.Account, error)

	// GetByEmail expects an already-normalized email.
	GetByEmail(ctx context.Context, email string) (domain.Account, error)

	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// Create inserts a new account. A unique violation on email yields
	// ErrAlreadyExists.
	Create(ctx context.Context, a domain.Account) error

	// UpdateProfile overwrites email and names. ErrNotFound when id is
	// unknown, ErrAlreadyExists when the email belongs to another account.
	UpdateProfile(ctx context.Context, id string, p domain.ProfileUpdate, now time.Time) error

	UpdateRole(ctx context.Context, id string, role domain.Role, now time.Time) error

	UpdatePasswordHash(ctx context.Context, id, hash string, now time.Time) error

	// Delete removes the account; its reset tokens cascade.
	Delete(ctx context.Context, id string) error

	// List returns a page ordered by the whitelisted sort field.
	List(ctx context.Context, req domain.PageRequest) ([]domain.Account, error)

	Count(ctx context.Context) (int64, error)
}

// ResetTokens is the Reset Token Ledger.
type ResetTokens interface {
	// Create stores a token. ErrNotFound when the account no longer exists.
	Create(ctx context.Context, t domain.ResetToken) error

	GetByHash(ctx context.Context, hash string) (domain.ResetToken, error)

	// Delete removes a single token; ErrNotFound if it was already gone.
	Delete(ctx context.Context, hash string) error

	DeleteByAccount(ctx context.Context, accountID string) error

	// DeleteExpiredBefore is housekeeping and returns the number of rows removed.
	DeleteExpiredBefore(ctx context.Context, t time.Time) (int64, error)
}
