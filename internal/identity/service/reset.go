package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/aussiebroadwan/identity/internal/identity/domain"
	"github.com/aussiebroadwan/identity/internal/identity/metrics"
	"github.com/aussiebroadwan/identity/internal/identity/store"
	"github.com/aussiebroadwan/identity/pkg/cryptox"
	"github.com/aussiebroadwan/identity/pkg/slogx"
)

// ResetService runs the two-phase password reset. The raw token only ever
// exists in the emailed link; the ledger stores its fingerprint.
type ResetService struct {
	Store       store.Store
	Notifier    Notifier
	Metrics     *metrics.Recorder
	FrontendURL string
	TTL         time.Duration
	Now         func() time.Time
}

// RequestReset issues a fresh token for email and mails the link. Earlier
// tokens stay valid until used or expired.
func (s *ResetService) RequestReset(ctx context.Context, email string) error {
	log := slogx.FromContext(ctx)

	acc, err := s.Store.Accounts().GetByEmail(ctx, domain.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			s.Metrics.Reset("request", metrics.OutcomeFailure)
			return ErrNotFound
		}
		return fmt.Errorf("lookup account: %w", err)
	}

	raw, err := cryptox.GenerateToken(cryptox.TokenSize256)
	if err != nil {
		return err
	}

	ttl := s.TTL
	if ttl <= 0 {
		ttl = domain.DefaultResetTTL
	}
	now := clock(s.Now)
	err = s.Store.ResetTokens().Create(ctx, domain.ResetToken{
		TokenHash: cryptox.FingerprintToken(raw),
		AccountID: acc.ID,
		ExpiresAt: now.Add(ttl),
		CreatedAt: now,
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// The account was deleted between the lookup and the insert.
			s.Metrics.Reset("request", metrics.OutcomeFailure)
			return ErrNotFound
		}
		return fmt.Errorf("store reset token: %w", err)
	}

	log.Info("password reset requested", slog.String("account_id", acc.ID))
	s.Metrics.Reset("request", metrics.OutcomeSuccess)

	notifier := s.Notifier
	if notifier == nil {
		notifier = NopNotifier{}
	}
	notifier.NotifyPasswordReset(acc.Email, acc.FirstName, s.resetLink(raw))
	return nil
}

// ValidateResetToken reports whether token can still complete a reset. An
// expired token is deleted on sight.
func (s *ResetService) ValidateResetToken(ctx context.Context, token string) error {
	_, err := s.lookup(ctx, token)
	if err != nil {
		s.Metrics.Reset("validate", metrics.OutcomeFailure)
		return err
	}
	s.Metrics.Reset("validate", metrics.OutcomeSuccess)
	return nil
}

// CompleteReset consumes token and sets the owner's password. The password
// update and the token deletion commit together; a token that was consumed
// concurrently fails with ErrInvalidToken.
func (s *ResetService) CompleteReset(ctx context.Context, token, newPassword string) error {
	log := slogx.FromContext(ctx)

	t, err := s.lookup(ctx, token)
	if err != nil {
		s.Metrics.Reset("complete", metrics.OutcomeFailure)
		return err
	}

	hash, err := cryptox.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	now := clock(s.Now)
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Accounts().UpdatePasswordHash(ctx, t.AccountID, hash, now); err != nil {
			return err
		}
		return tx.ResetTokens().Delete(ctx, t.TokenHash)
	})
	if err != nil {
		s.Metrics.Reset("complete", metrics.OutcomeFailure)
		if errors.Is(err, store.ErrNotFound) {
			return ErrInvalidToken
		}
		return fmt.Errorf("complete reset: %w", err)
	}

	log.Info("password reset completed", slog.String("account_id", t.AccountID))
	s.Metrics.Reset("complete", metrics.OutcomeSuccess)
	return nil
}

// lookup resolves a raw token to its ledger row, deleting it if expired.
func (s *ResetService) lookup(ctx context.Context, token string) (domain.ResetToken, error) {
	if token == "" {
		return domain.ResetToken{}, ErrInvalidToken
	}
	t, err := s.Store.ResetTokens().GetByHash(ctx, cryptox.FingerprintToken(token))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.ResetToken{}, ErrInvalidToken
		}
		return domain.ResetToken{}, fmt.Errorf("lookup reset token: %w", err)
	}

	if t.Expired(clock(s.Now)) {
		if err := s.Store.ResetTokens().Delete(ctx, t.TokenHash); err != nil && !errors.Is(err, store.ErrNotFound) {
			slogx.FromContext(ctx).Warn("failed to delete expired reset token", slog.Any("error", err))
		}
		return domain.ResetToken{}, ErrTokenExpired
	}
	return t, nil
}

func (s *ResetService) resetLink(token string) string {
	return strings.TrimRight(s.FrontendURL, "/") + "/reset-password?token=" + url.QueryEscape(token)
}
