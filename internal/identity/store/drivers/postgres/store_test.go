package postgres_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/identity/internal/identity/domain"
	"github.com/aussiebroadwan/identity/internal/identity/store"
	"github.com/aussiebroadwan/identity/internal/identity/store/drivers/postgres"
)

func newMockStore(t *testing.T) (*postgres.Store, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	})
	return postgres.New(db), mock
}

var accountCols = []string{"id", "email", "password_hash", "first_name", "last_name", "role", "created_at", "updated_at"}

func TestAccounts_GetByEmail(t *testing.T) {
	t.Parallel()
	s, mock := newMockStore(t)

	created := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`(?s)^SELECT\s+id,\s*email,.*FROM\s+accounts\s+WHERE\s+email\s*=\s*\$1\s*$`).
		WithArgs("alice@x.io").
		WillReturnRows(sqlmock.NewRows(accountCols).
			AddRow("01J0", "alice@x.io", "hash", "Alice", "Smith", "USER", created, created))

	a, err := s.Accounts().GetByEmail(context.Background(), "alice@x.io")
	require.NoError(t, err)
	require.Equal(t, "01J0", a.ID)
	require.Equal(t, domain.RoleUser, a.Role)
	require.True(t, a.CreatedAt.Equal(created))
}

func TestAccounts_GetByID_NotFound(t *testing.T) {
	t.Parallel()
	s, mock := newMockStore(t)

	mock.ExpectQuery(`(?s)^SELECT\s+id,.*FROM\s+accounts\s+WHERE\s+id\s*=\s*\$1\s*$`).
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	_, err := s.Accounts().GetByID(context.Background(), "ghost")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestAccounts_Create_UniqueViolation(t *testing.T) {
	t.Parallel()
	s, mock := newMockStore(t)

	mock.ExpectExec(`(?s)^INSERT\s+INTO\s+accounts\s*\(.*\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3,\s*\$4,\s*\$5,\s*\$6,\s*\$7,\s*\$8\)\s*$`).
		WithArgs("01J0", "alice@x.io", "hash", "Alice", "Smith", "USER", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	now := time.Now().UTC()
	err := s.Accounts().Create(context.Background(), domain.Account{
		ID: "01J0", Email: "alice@x.io", PasswordHash: "hash",
		FirstName: "Alice", LastName: "Smith", Role: domain.RoleUser,
		CreatedAt: now, UpdatedAt: now,
	})
	require.ErrorIs(t, err, store.ErrAlreadyExists)
}

func TestAccounts_ExistsByEmail(t *testing.T) {
	t.Parallel()
	s, mock := newMockStore(t)

	mock.ExpectQuery(`(?s)^SELECT\s+EXISTS\s*\(SELECT\s+1\s+FROM\s+accounts\s+WHERE\s+email\s*=\s*\$1\)\s*$`).
		WithArgs("alice@x.io").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	ok, err := s.Accounts().ExistsByEmail(context.Background(), "alice@x.io")
	require.NoError(t, err)
	require.True(t, ok)
}

func TestAccounts_ExistsByEmail_DBError(t *testing.T) {
	t.Parallel()
	s, mock := newMockStore(t)

	mock.ExpectQuery(`(?s)^SELECT\s+EXISTS`).
		WithArgs("alice@x.io").
		WillReturnError(errors.New("db down"))

	_, err := s.Accounts().ExistsByEmail(context.Background(), "alice@x.io")
	require.ErrorContains(t, err, "db error: db down")
}

func TestAccounts_UpdateRole_NoRows(t *testing.T) {
	t.Parallel()
	s, mock := newMockStore(t)

	mock.ExpectExec(`(?s)^UPDATE\s+accounts\s+SET\s+role\s*=\s*\$1,\s*updated_at\s*=\s*\$2\s+WHERE\s+id\s*=\s*\$3\s*$`).
		WithArgs("ADMIN", sqlmock.AnyArg(), "ghost").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := s.Accounts().UpdateRole(context.Background(), "ghost", domain.RoleAdmin, time.Now().UTC())
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestAccounts_List_OrderAndPaging(t *testing.T) {
	t.Parallel()
	s, mock := newMockStore(t)

	now := time.Now().UTC()
	mock.ExpectQuery(`(?s)^SELECT\s+.*FROM\s+accounts\s+ORDER\s+BY\s+email\s+DESC,\s*id\s+DESC\s+LIMIT\s+\$1\s+OFFSET\s+\$2\s*$`).
		WithArgs(10, 20).
		WillReturnRows(sqlmock.NewRows(accountCols).
			AddRow("b", "b@x.io", "h", "B", "B", "USER", now, now).
			AddRow("a", "a@x.io", "h", "A", "A", "ADMIN", now, now))

	got, err := s.Accounts().List(context.Background(), domain.PageRequest{
		Page: 2, Size: 10, Sort: domain.SortEmail, Desc: true,
	})
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, "b", got[0].ID)
	require.Equal(t, domain.RoleAdmin, got[1].Role)
}

func TestResetTokens_DeleteAlreadyGone(t *testing.T) {
	t.Parallel()
	s, mock := newMockStore(t)

	mock.ExpectExec(`(?s)^DELETE\s+FROM\s+reset_tokens\s+WHERE\s+token_hash\s*=\s*\$1\s*$`).
		WithArgs("fp").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := s.ResetTokens().Delete(context.Background(), "fp")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestResetTokens_CreateUnknownAccount(t *testing.T) {
	t.Parallel()
	s, mock := newMockStore(t)

	mock.ExpectExec(`(?s)^INSERT\s+INTO\s+reset_tokens`).
		WithArgs("fp", "ghost", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnError(&pgconn.PgError{Code: "23503"})

	now := time.Now().UTC()
	err := s.ResetTokens().Create(context.Background(), domain.ResetToken{
		TokenHash: "fp", AccountID: "ghost", ExpiresAt: now.Add(time.Hour), CreatedAt: now,
	})
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestResetTokens_DeleteExpiredBefore(t *testing.T) {
	t.Parallel()
	s, mock := newMockStore(t)

	mock.ExpectExec(`(?s)^DELETE\s+FROM\s+reset_tokens\s+WHERE\s+expires_at\s*<\s*\$1\s*$`).
		WithArgs(sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 3))

	n, err := s.ResetTokens().DeleteExpiredBefore(context.Background(), time.Now().UTC())
	require.NoError(t, err)
	require.EqualValues(t, 3, n)
}

func TestWithTx_CommitAndRollback(t *testing.T) {
	t.Parallel()

	t.Run("commit", func(t *testing.T) {
		s, mock := newMockStore(t)
		mock.ExpectBegin()
		mock.ExpectExec(`(?s)^UPDATE\s+accounts\s+SET\s+password_hash`).
			WithArgs("new", sqlmock.AnyArg(), "a").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`(?s)^DELETE\s+FROM\s+reset_tokens\s+WHERE\s+token_hash`).
			WithArgs("fp").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := s.WithTx(context.Background(), func(tx store.Tx) error {
			if err := tx.Accounts().UpdatePasswordHash(context.Background(), "a", "new", time.Now().UTC()); err != nil {
				return err
			}
			return tx.ResetTokens().Delete(context.Background(), "fp")
		})
		require.NoError(t, err)
	})

	t.Run("rollback on error", func(t *testing.T) {
		s, mock := newMockStore(t)
		mock.ExpectBegin()
		mock.ExpectExec(`(?s)^DELETE\s+FROM\s+reset_tokens\s+WHERE\s+token_hash`).
			WithArgs("fp").
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		err := s.WithTx(context.Background(), func(tx store.Tx) error {
			return tx.ResetTokens().Delete(context.Background(), "fp")
		})
		require.ErrorIs(t, err, store.ErrNotFound)
	})
}
