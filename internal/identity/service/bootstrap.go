package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/aussiebroadwan/identity/internal/identity/domain"
	"github.com/aussiebroadwan/identity/internal/identity/metrics"
	"github.com/aussiebroadwan/identity/internal/identity/store"
	"github.com/aussiebroadwan/identity/pkg/cryptox"
	"github.com/aussiebroadwan/identity/pkg/idx"
	"github.com/aussiebroadwan/identity/pkg/slogx"
)

var (
	ErrBootstrapAlready      = errors.New("system already bootstrapped")
	ErrBootstrapUnauthorized = errors.New("unauthorized bootstrap attempt")
	ErrBootstrapDisabled     = errors.New("bootstrap is disabled")
)

// BootstrapService creates the first ADMIN of an empty system.
type BootstrapService struct {
	Store   store.Store
	Token   string // pre-configured bootstrap token; empty disables bootstrap
	Metrics *metrics.Recorder
	Now     func() time.Time
}

// IsBootstrapped reports whether any account exists.
func (s *BootstrapService) IsBootstrapped(ctx context.Context) (bool, error) {
	n, err := s.Store.Accounts().Count(ctx)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Bootstrap creates the initial administrator when token matches and the
// account table is empty.
func (s *BootstrapService) Bootstrap(ctx context.Context, token string, in NewAccount) (domain.PublicAccount, error) {
	l := slogx.FromContext(ctx)

	if s.Token == "" {
		return domain.PublicAccount{}, ErrBootstrapDisabled
	}
	if bootstrapped, err := s.IsBootstrapped(ctx); err != nil {
		return domain.PublicAccount{}, fmt.Errorf("check bootstrap: %w", err)
	} else if bootstrapped {
		l.Warn("attempted bootstrap on already-bootstrapped system")
		return domain.PublicAccount{}, ErrBootstrapAlready
	}
	if !cryptox.EqualTokens(token, s.Token) {
		l.Warn("unauthorized bootstrap attempt")
		return domain.PublicAccount{}, ErrBootstrapUnauthorized
	}

	hash, err := cryptox.HashPassword(in.Password)
	if err != nil {
		return domain.PublicAccount{}, fmt.Errorf("hash password: %w", err)
	}

	now := clock(s.Now)
	admin := domain.Account{
		ID:           idx.NewAt(now).String(),
		Email:        domain.NormalizeEmail(in.Email),
		PasswordHash: hash,
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
		Role:         domain.RoleAdmin,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	// Re-check inside the transaction so two racing bootstraps cannot both
	// create an admin.
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		n, err := tx.Accounts().Count(ctx)
		if err != nil {
			return err
		}
		if n > 0 {
			return ErrBootstrapAlready
		}
		return tx.Accounts().Create(ctx, admin)
	})
	if err != nil {
		if errors.Is(err, ErrBootstrapAlready) {
			return domain.PublicAccount{}, err
		}
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.PublicAccount{}, ErrBootstrapAlready
		}
		return domain.PublicAccount{}, fmt.Errorf("create admin: %w", err)
	}

	s.Metrics.Registration("bootstrap")
	l.Info("successfully bootstrapped system", slog.String("admin_account_id", admin.ID))
	return admin.Public(), nil
}
