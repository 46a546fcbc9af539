package service

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/aussiebroadwan/identity/internal/identity/domain"
	"github.com/aussiebroadwan/identity/pkg/cryptox"
)

func TestRegister(t *testing.T) {
	t.Parallel()

	t.Run("creates a USER and sends a welcome mail", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)

		acc, err := f.accounts.Register(t.Context(), NewAccount{
			Email: "  Alice@X.com ", Password: "secret123", FirstName: "Alice", LastName: "Smith",
		})
		require.NoError(t, err)
		require.Equal(t, "alice@x.com", acc.Email)
		require.Equal(t, domain.RoleUser, acc.Role)
		require.Equal(t, f.clock.Now(), acc.CreatedAt)

		stored, err := f.store.Accounts().GetByID(t.Context(), acc.ID)
		require.NoError(t, err)
		require.NotEqual(t, "secret123", stored.PasswordHash)
		require.NoError(t, cryptox.VerifyPassword("secret123", stored.PasswordHash))

		mails := f.notifier.all()
		require.Len(t, mails, 1)
		require.Equal(t, "welcome", mails[0].Kind)
		require.Equal(t, "alice@x.com", mails[0].Email)
	})

	t.Run("duplicate email is rejected and the first account is untouched", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		first := f.register(t, "bob@x.com")

		_, err := f.accounts.Register(t.Context(), NewAccount{
			Email: "BOB@x.com", Password: "other123", FirstName: "Other", LastName: "Bob",
		})
		require.ErrorIs(t, err, ErrDuplicateIdentity)

		got, err := f.store.Accounts().GetByID(t.Context(), first.ID)
		require.NoError(t, err)
		require.Equal(t, "Test", got.FirstName)
		require.NoError(t, cryptox.VerifyPassword("password1", got.PasswordHash))
	})

	t.Run("works without a notifier", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		f.accounts.Notifier = nil
		_ = f.register(t, "quiet@x.com")
	})
}

func TestLogin(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	acc := f.register(t, "carol@x.com")

	t.Run("valid credentials mint a verifiable session", func(t *testing.T) {
		sess, err := f.accounts.Login(t.Context(), "Carol@X.com", "password1")
		require.NoError(t, err)
		require.NotEmpty(t, sess.Token)
		require.Equal(t, acc.ID, sess.Account.ID)
		require.Equal(t, f.clock.Now().Add(f.sessions.TTL), sess.ExpiresAt)

		actor, err := f.sessions.Verify(sess.Token)
		require.NoError(t, err)
		require.Equal(t, domain.Actor{ID: acc.ID, Role: domain.RoleUser}, actor)
	})

	t.Run("unknown email and wrong password are indistinguishable", func(t *testing.T) {
		_, errWrong := f.accounts.Login(t.Context(), "carol@x.com", "nope-nope")
		_, errUnknown := f.accounts.Login(t.Context(), "nobody@x.com", "password1")

		require.ErrorIs(t, errWrong, ErrInvalidCredentials)
		require.ErrorIs(t, errUnknown, ErrInvalidCredentials)
		require.Equal(t, errWrong.Error(), errUnknown.Error())
	})
}

func TestLogin_UpgradesLegacyBcryptHash(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	acc := f.register(t, "legacy@x.com")

	legacy, err := bcrypt.GenerateFromPassword([]byte("oldpass1"), bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, f.store.Accounts().UpdatePasswordHash(t.Context(), acc.ID, string(legacy), f.clock.Now()))

	_, err = f.accounts.Login(t.Context(), "legacy@x.com", "oldpass1")
	require.NoError(t, err)

	stored, err := f.store.Accounts().GetByID(t.Context(), acc.ID)
	require.NoError(t, err)
	require.False(t, cryptox.NeedsRehash(stored.PasswordHash))
	require.NoError(t, cryptox.VerifyPassword("oldpass1", stored.PasswordHash))
}

func TestUpdateProfile(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	alice := f.register(t, "alice@x.com")
	bob := f.register(t, "bob@x.com")
	admin := f.promote(t, f.register(t, "admin@x.com").ID)

	aliceActor := domain.Actor{ID: alice.ID, Role: domain.RoleUser}

	t.Run("non-admin cannot edit someone else", func(t *testing.T) {
		_, err := f.accounts.UpdateProfile(t.Context(), aliceActor, bob.ID, domain.ProfileUpdate{
			Email: "bob@x.com", FirstName: "Hacked", LastName: "Bob",
		})
		require.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("self edit keeps role", func(t *testing.T) {
		got, err := f.accounts.UpdateProfile(t.Context(), aliceActor, alice.ID, domain.ProfileUpdate{
			Email: "alice2@x.com", FirstName: "Alicia", LastName: "Smith",
		})
		require.NoError(t, err)
		require.Equal(t, "alice2@x.com", got.Email)
		require.Equal(t, "Alicia", got.FirstName)
		require.Equal(t, domain.RoleUser, got.Role)
	})

	t.Run("admin can edit anyone", func(t *testing.T) {
		got, err := f.accounts.UpdateProfile(t.Context(), admin, bob.ID, domain.ProfileUpdate{
			Email: "bob@x.com", FirstName: "Robert", LastName: "Jones",
		})
		require.NoError(t, err)
		require.Equal(t, "Robert", got.FirstName)
	})

	t.Run("email taken by another account", func(t *testing.T) {
		_, err := f.accounts.UpdateProfile(t.Context(), admin, bob.ID, domain.ProfileUpdate{
			Email: "ADMIN@x.com", FirstName: "Robert", LastName: "Jones",
		})
		require.ErrorIs(t, err, ErrDuplicateIdentity)
	})

	t.Run("unknown target", func(t *testing.T) {
		_, err := f.accounts.UpdateProfile(t.Context(), admin, "missing", domain.ProfileUpdate{
			Email: "x@x.com", FirstName: "X", LastName: "Y",
		})
		require.ErrorIs(t, err, ErrNotFound)
	})
}

func TestChangeRole(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	user := f.register(t, "user@x.com")
	adminAcc := f.register(t, "admin@x.com")
	admin := f.promote(t, adminAcc.ID)

	userActor := domain.Actor{ID: user.ID, Role: domain.RoleUser}

	_, err := f.accounts.ChangeRole(t.Context(), userActor, user.ID, domain.RoleAdmin)
	require.ErrorIs(t, err, ErrForbidden)
	_, err = f.accounts.ChangeRole(t.Context(), userActor, user.ID, domain.Role("ROOT"))
	require.ErrorIs(t, err, ErrForbidden)

	_, err = f.accounts.ChangeRole(t.Context(), admin, user.ID, domain.Role("ROOT"))
	require.ErrorIs(t, err, ErrInvalidRole)

	_, err = f.accounts.ChangeRole(t.Context(), admin, "missing", domain.RoleAdmin)
	require.ErrorIs(t, err, ErrNotFound)

	got, err := f.accounts.ChangeRole(t.Context(), admin, user.ID, domain.RoleAdmin)
	require.NoError(t, err)
	require.Equal(t, domain.RoleAdmin, got.Role)

	// An admin may demote themselves.
	got, err = f.accounts.ChangeRole(t.Context(), admin, adminAcc.ID, domain.RoleUser)
	require.NoError(t, err)
	require.Equal(t, domain.RoleUser, got.Role)
}

func TestDeleteAccount(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	victim := f.register(t, "victim@x.com")
	admin := f.promote(t, f.register(t, "admin@x.com").ID)

	require.NoError(t, f.resets.RequestReset(t.Context(), "victim@x.com"))

	err := f.accounts.DeleteAccount(t.Context(), domain.Actor{ID: victim.ID, Role: domain.RoleUser}, victim.ID)
	require.ErrorIs(t, err, ErrForbidden)

	require.NoError(t, f.accounts.DeleteAccount(t.Context(), admin, victim.ID))
	require.ErrorIs(t, f.accounts.DeleteAccount(t.Context(), admin, victim.ID), ErrNotFound)

	_, err = f.accounts.GetAccount(t.Context(), admin, victim.ID)
	require.ErrorIs(t, err, ErrNotFound)

	// The outstanding reset token went with the account.
	require.ErrorIs(t, f.resets.ValidateResetToken(t.Context(), f.notifier.lastResetToken(t)), ErrInvalidToken)
}

func TestReadOperations(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	user := f.register(t, "user@x.com")
	f.register(t, "other@x.com")
	admin := f.promote(t, f.register(t, "admin@x.com").ID)
	userActor := domain.Actor{ID: user.ID, Role: domain.RoleUser}

	t.Run("current profile is always allowed", func(t *testing.T) {
		got, err := f.accounts.CurrentProfile(t.Context(), userActor)
		require.NoError(t, err)
		require.Equal(t, user.ID, got.ID)
	})

	t.Run("get by id is admin only, even for self", func(t *testing.T) {
		_, err := f.accounts.GetAccount(t.Context(), userActor, user.ID)
		require.ErrorIs(t, err, ErrForbidden)

		got, err := f.accounts.GetAccount(t.Context(), admin, user.ID)
		require.NoError(t, err)
		require.Equal(t, "user@x.com", got.Email)
	})

	t.Run("list is admin only and paged", func(t *testing.T) {
		_, err := f.accounts.ListAccounts(t.Context(), userActor, domain.PageRequest{})
		require.ErrorIs(t, err, ErrForbidden)

		page, err := f.accounts.ListAccounts(t.Context(), admin, domain.PageRequest{
			Page: 0, Size: 2, Sort: domain.SortEmail,
		})
		require.NoError(t, err)
		require.EqualValues(t, 3, page.Total)
		require.Equal(t, 2, page.TotalPages)
		require.Len(t, page.Items, 2)
		require.Equal(t, "admin@x.com", page.Items[0].Email)
		require.Equal(t, "other@x.com", page.Items[1].Email)
	})
}

func TestCreateAccount(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	user := f.register(t, "user@x.com")
	admin := f.promote(t, f.register(t, "admin@x.com").ID)

	in := NewAccount{Email: "new@x.com", Password: "password1", FirstName: "New", LastName: "Person"}

	_, err := f.accounts.CreateAccount(t.Context(), domain.Actor{ID: user.ID, Role: domain.RoleUser}, in)
	require.ErrorIs(t, err, ErrForbidden)

	got, err := f.accounts.CreateAccount(t.Context(), admin, in)
	require.NoError(t, err)
	require.Equal(t, domain.RoleUser, got.Role)

	_, err = f.accounts.CreateAccount(t.Context(), admin, in)
	require.ErrorIs(t, err, ErrDuplicateIdentity)
}
