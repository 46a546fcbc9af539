package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/aussiebroadwan/identity/internal/identity/domain"
	"github.com/aussiebroadwan/identity/internal/identity/metrics"
	"github.com/aussiebroadwan/identity/internal/identity/store"
	"github.com/aussiebroadwan/identity/pkg/cryptox"
	"github.com/aussiebroadwan/identity/pkg/idx"
	"github.com/aussiebroadwan/identity/pkg/slogx"
)

// NewAccount is the input to registration and admin account creation.
type NewAccount struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// AccountService implements registration, login and the role-gated profile
// operations.
type AccountService struct {
	Store    store.Store
	Sessions *SessionIssuer
	Notifier Notifier
	Metrics  *metrics.Recorder
	Now      func() time.Time

	dummyOnce sync.Once
	dummyHash string
}

// Register creates a USER account. Self-registration never grants ADMIN.
func (s *AccountService) Register(ctx context.Context, in NewAccount) (domain.PublicAccount, error) {
	acc, err := s.create(ctx, in, domain.RoleUser)
	if err != nil {
		return domain.PublicAccount{}, err
	}
	s.Metrics.Registration("self")
	return acc.Public(), nil
}

// CreateAccount is the admin variant of Register. The new account is still a
// USER; promotion goes through ChangeRole.
func (s *AccountService) CreateAccount(ctx context.Context, actor domain.Actor, in NewAccount) (domain.PublicAccount, error) {
	if !domain.CanCreateAccount(actor) {
		return domain.PublicAccount{}, s.deny(ctx, actor, "createAccount", "")
	}
	acc, err := s.create(ctx, in, domain.RoleUser)
	if err != nil {
		return domain.PublicAccount{}, err
	}
	s.Metrics.Registration("admin")
	return acc.Public(), nil
}

func (s *AccountService) create(ctx context.Context, in NewAccount, role domain.Role) (domain.Account, error) {
	log := slogx.FromContext(ctx)
	email := domain.NormalizeEmail(in.Email)

	// Fast path for a clean error; the unique constraint is the real guard.
	exists, err := s.Store.Accounts().ExistsByEmail(ctx, email)
	if err != nil {
		return domain.Account{}, fmt.Errorf("check email: %w", err)
	}
	if exists {
		log.Info("registration rejected, email taken")
		return domain.Account{}, ErrDuplicateIdentity
	}

	hash, err := cryptox.HashPassword(in.Password)
	if err != nil {
		return domain.Account{}, fmt.Errorf("hash password: %w", err)
	}

	now := clock(s.Now)
	acc := domain.Account{
		ID:           idx.NewAt(now).String(),
		Email:        email,
		PasswordHash: hash,
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.Store.Accounts().Create(ctx, acc); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.Account{}, ErrDuplicateIdentity
		}
		return domain.Account{}, fmt.Errorf("create account: %w", err)
	}

	log.Info("account created",
		slog.String("account_id", acc.ID),
		slog.String("role", acc.Role.String()),
	)
	s.notifier().NotifyWelcome(acc.Email, acc.FirstName)
	return acc, nil
}

// Login verifies credentials and mints a session. Unknown email and wrong
// password produce the same error after the same amount of hashing work.
func (s *AccountService) Login(ctx context.Context, email, password string) (Session, error) {
	log := slogx.FromContext(ctx)

	acc, err := s.Store.Accounts().GetByEmail(ctx, domain.NormalizeEmail(email))
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			return Session{}, fmt.Errorf("lookup account: %w", err)
		}
		_ = cryptox.VerifyPassword(password, s.dummy())
		s.Metrics.Login(metrics.OutcomeFailure)
		log.Info("login failed")
		return Session{}, ErrInvalidCredentials
	}

	if err := cryptox.VerifyPassword(password, acc.PasswordHash); err != nil {
		s.Metrics.Login(metrics.OutcomeFailure)
		if !errors.Is(err, cryptox.ErrPasswordMismatch) {
			log.Error("stored password hash unusable",
				slog.String("account_id", acc.ID),
				slog.Any("error", err),
			)
		} else {
			log.Info("login failed")
		}
		return Session{}, ErrInvalidCredentials
	}

	if cryptox.NeedsRehash(acc.PasswordHash) {
		s.upgradeHash(ctx, acc.ID, password)
	}

	token, exp, err := s.Sessions.Mint(acc.ID, acc.Role)
	if err != nil {
		return Session{}, err
	}
	s.Metrics.Login(metrics.OutcomeSuccess)
	log.Info("login succeeded", slog.String("account_id", acc.ID))
	return Session{Token: token, ExpiresAt: exp, Account: acc.Public()}, nil
}

// upgradeHash replaces a legacy hash after a successful login. Failure leaves
// the old hash in place.
func (s *AccountService) upgradeHash(ctx context.Context, id, password string) {
	log := slogx.FromContext(ctx)
	hash, err := cryptox.HashPassword(password)
	if err == nil {
		err = s.Store.Accounts().UpdatePasswordHash(ctx, id, hash, clock(s.Now))
	}
	if err != nil {
		log.Warn("password rehash failed", slog.String("account_id", id), slog.Any("error", err))
		return
	}
	log.Info("password hash upgraded", slog.String("account_id", id))
}

// CurrentProfile returns the caller's own account. Always permitted.
func (s *AccountService) CurrentProfile(ctx context.Context, actor domain.Actor) (domain.PublicAccount, error) {
	acc, err := s.get(ctx, actor.ID)
	if err != nil {
		return domain.PublicAccount{}, err
	}
	return acc.Public(), nil
}

// GetAccount reads any account by id. Admin only.
func (s *AccountService) GetAccount(ctx context.Context, actor domain.Actor, id string) (domain.PublicAccount, error) {
	if !domain.CanReadAccount(actor, id) {
		return domain.PublicAccount{}, s.deny(ctx, actor, "getAccount", id)
	}
	acc, err := s.get(ctx, id)
	if err != nil {
		return domain.PublicAccount{}, err
	}
	return acc.Public(), nil
}

// ListAccounts returns one page of accounts. Admin only.
func (s *AccountService) ListAccounts(ctx context.Context, actor domain.Actor, req domain.PageRequest) (domain.Page[domain.PublicAccount], error) {
	if !domain.CanListAccounts(actor) {
		return domain.Page[domain.PublicAccount]{}, s.deny(ctx, actor, "listAccounts", "")
	}
	req = req.Normalize()

	accounts, err := s.Store.Accounts().List(ctx, req)
	if err != nil {
		return domain.Page[domain.PublicAccount]{}, fmt.Errorf("list accounts: %w", err)
	}
	total, err := s.Store.Accounts().Count(ctx)
	if err != nil {
		return domain.Page[domain.PublicAccount]{}, fmt.Errorf("count accounts: %w", err)
	}

	items := make([]domain.PublicAccount, 0, len(accounts))
	for _, a := range accounts {
		items = append(items, a.Public())
	}
	return domain.NewPage(items, req, total), nil
}

// UpdateProfile overwrites email and names of targetID. Role and password are
// never touched here.
func (s *AccountService) UpdateProfile(ctx context.Context, actor domain.Actor, targetID string, upd domain.ProfileUpdate) (domain.PublicAccount, error) {
	if !domain.CanUpdateProfile(actor, targetID) {
		return domain.PublicAccount{}, s.deny(ctx, actor, "updateProfile", targetID)
	}

	acc, err := s.get(ctx, targetID)
	if err != nil {
		return domain.PublicAccount{}, err
	}

	upd.Email = domain.NormalizeEmail(upd.Email)
	upd.FirstName = strings.TrimSpace(upd.FirstName)
	upd.LastName = strings.TrimSpace(upd.LastName)

	if upd.Email != acc.Email {
		taken, err := s.Store.Accounts().ExistsByEmail(ctx, upd.Email)
		if err != nil {
			return domain.PublicAccount{}, fmt.Errorf("check email: %w", err)
		}
		if taken {
			return domain.PublicAccount{}, ErrDuplicateIdentity
		}
	}

	now := clock(s.Now)
	if err := s.Store.Accounts().UpdateProfile(ctx, targetID, upd, now); err != nil {
		switch {
		case errors.Is(err, store.ErrAlreadyExists):
			return domain.PublicAccount{}, ErrDuplicateIdentity
		case errors.Is(err, store.ErrNotFound):
			return domain.PublicAccount{}, ErrNotFound
		}
		return domain.PublicAccount{}, fmt.Errorf("update profile: %w", err)
	}

	acc.Email, acc.FirstName, acc.LastName, acc.UpdatedAt = upd.Email, upd.FirstName, upd.LastName, now
	slogx.FromContext(ctx).Info("profile updated",
		slog.String("account_id", targetID),
		slog.String("actor_id", actor.ID),
	)
	return acc.Public(), nil
}

// ChangeRole sets the role of targetID. Admin only; admins may change their
// own role.
func (s *AccountService) ChangeRole(ctx context.Context, actor domain.Actor, targetID string, role domain.Role) (domain.PublicAccount, error) {
	if !domain.CanChangeRole(actor, targetID) {
		return domain.PublicAccount{}, s.deny(ctx, actor, "changeRole", targetID)
	}
	if !role.Valid() {
		return domain.PublicAccount{}, ErrInvalidRole
	}

	if err := s.Store.Accounts().UpdateRole(ctx, targetID, role, clock(s.Now)); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.PublicAccount{}, ErrNotFound
		}
		return domain.PublicAccount{}, fmt.Errorf("update role: %w", err)
	}

	acc, err := s.get(ctx, targetID)
	if err != nil {
		return domain.PublicAccount{}, err
	}
	slogx.FromContext(ctx).Info("role changed",
		slog.String("account_id", targetID),
		slog.String("actor_id", actor.ID),
		slog.String("role", role.String()),
	)
	return acc.Public(), nil
}

// DeleteAccount removes targetID and its reset tokens. Admin only.
func (s *AccountService) DeleteAccount(ctx context.Context, actor domain.Actor, targetID string) error {
	if !domain.CanDeleteAccount(actor, targetID) {
		return s.deny(ctx, actor, "deleteAccount", targetID)
	}

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.ResetTokens().DeleteByAccount(ctx, targetID); err != nil {
			return err
		}
		return tx.Accounts().Delete(ctx, targetID)
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("delete account: %w", err)
	}

	slogx.FromContext(ctx).Info("account deleted",
		slog.String("account_id", targetID),
		slog.String("actor_id", actor.ID),
	)
	return nil
}

func (s *AccountService) get(ctx context.Context, id string) (domain.Account, error) {
	acc, err := s.Store.Accounts().GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Account{}, ErrNotFound
		}
		return domain.Account{}, fmt.Errorf("lookup account: %w", err)
	}
	return acc, nil
}

func (s *AccountService) deny(ctx context.Context, actor domain.Actor, op, targetID string) error {
	s.Metrics.Denied(op)
	slogx.FromContext(ctx).Warn("operation forbidden",
		slog.String("operation", op),
		slog.String("actor_id", actor.ID),
		slog.String("actor_role", actor.Role.String()),
		slog.String("target_id", targetID),
	)
	return ErrForbidden
}

func (s *AccountService) notifier() Notifier {
	if s.Notifier == nil {
		return NopNotifier{}
	}
	return s.Notifier
}

// dummy returns a real hash to verify against when the account is unknown.
func (s *AccountService) dummy() string {
	s.dummyOnce.Do(func() {
		secret, err := cryptox.GenerateToken(cryptox.TokenSize128)
		if err != nil {
			return
		}
		s.dummyHash, _ = cryptox.HashPassword(secret)
	})
	return s.dummyHash
}
