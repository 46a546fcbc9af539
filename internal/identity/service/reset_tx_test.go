package service

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/identity/internal/identity/domain"
	"github.com/aussiebroadwan/identity/internal/identity/store"
	"github.com/aussiebroadwan/identity/internal/identity/store/drivers/sqlite"
	"github.com/aussiebroadwan/identity/pkg/cryptox"
)

var errLedgerDown = errors.New("ledger unavailable")

// brokenLedgerStore fails every token deletion made inside a transaction.
type brokenLedgerStore struct {
	store.Store
}

func (s brokenLedgerStore) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	return s.Store.WithTx(ctx, func(tx store.Tx) error {
		return fn(brokenLedgerTx{innerTx: tx})
	})
}

// innerTx lets brokenLedgerTx embed store.Tx without the field name
// colliding with the promoted Tx method.
type innerTx = store.Tx

type brokenLedgerTx struct {
	innerTx
}

func (t brokenLedgerTx) ResetTokens() store.ResetTokens {
	return brokenLedger{ResetTokens: t.innerTx.ResetTokens()}
}

type brokenLedger struct {
	store.ResetTokens
}

func (brokenLedger) Delete(context.Context, string) error { return errLedgerDown }

// vanishingStore deletes an account right after it is looked up by email,
// the way a concurrent admin delete would.
type vanishingStore struct {
	store.Store
}

func (s vanishingStore) Accounts() store.Accounts {
	return vanishingAccounts{Accounts: s.Store.Accounts()}
}

type vanishingAccounts struct {
	store.Accounts
}

func (a vanishingAccounts) GetByEmail(ctx context.Context, email string) (domain.Account, error) {
	acc, err := a.Accounts.GetByEmail(ctx, email)
	if err != nil {
		return acc, err
	}
	return acc, a.Accounts.Delete(ctx, acc.ID)
}

func TestCompleteReset_RollsBackWhenConsumeFails(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	f.register(t, "ivy@x.com")
	require.NoError(t, f.resets.RequestReset(t.Context(), "ivy@x.com"))
	tok := f.notifier.lastResetToken(t)

	broken := &ResetService{
		Store:       brokenLedgerStore{Store: f.store},
		FrontendURL: "https://app.example.com",
		Now:         f.clock.Now,
	}
	err := broken.CompleteReset(t.Context(), tok, "newpass123")
	require.ErrorIs(t, err, errLedgerDown)
	require.NotErrorIs(t, err, ErrInvalidToken)

	// Neither half of the reset happened.
	_, err = f.accounts.Login(t.Context(), "ivy@x.com", "password1")
	require.NoError(t, err)
	_, err = f.accounts.Login(t.Context(), "ivy@x.com", "newpass123")
	require.ErrorIs(t, err, ErrInvalidCredentials)
	require.NoError(t, f.resets.ValidateResetToken(t.Context(), tok))

	require.NoError(t, f.resets.CompleteReset(t.Context(), tok, "newpass123"))
	_, err = f.accounts.Login(t.Context(), "ivy@x.com", "newpass123")
	require.NoError(t, err)
}

func TestCompleteReset_ConcurrentUseConsumesOnce(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	s, err := sqlite.NewStore(sqlite.FileDSN(filepath.Join(t.TempDir(), "identity.db")))
	require.NoError(t, err)
	require.NoError(t, s.ApplyMigrations())
	t.Cleanup(func() { _ = s.Close() })

	n := &recordingNotifier{}
	accounts := &AccountService{Store: s, Notifier: n}
	resets := &ResetService{Store: s, Notifier: n, FrontendURL: "https://app.example.com"}

	_, err = accounts.Register(ctx, NewAccount{
		Email: "jack@x.com", Password: "password1", FirstName: "Jack", LastName: "J",
	})
	require.NoError(t, err)
	require.NoError(t, resets.RequestReset(ctx, "jack@x.com"))
	tok := n.lastResetToken(t)

	const workers = 8
	var (
		wg    sync.WaitGroup
		start = make(chan struct{})
		errs  = make(chan error, workers)
	)
	for i := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			errs <- resets.CompleteReset(ctx, tok, fmt.Sprintf("winner%03d", i))
		}()
	}
	close(start)
	wg.Wait()
	close(errs)

	succeeded := 0
	for err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		require.ErrorIs(t, err, ErrInvalidToken)
	}
	require.Equal(t, 1, succeeded)

	_, err = s.ResetTokens().GetByHash(ctx, cryptox.FingerprintToken(tok))
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestRequestReset_AccountDeletedMeanwhile(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	f.register(t, "kate@x.com")
	before := len(f.notifier.all())

	racing := &ResetService{
		Store:       vanishingStore{Store: f.store},
		Notifier:    f.notifier,
		FrontendURL: "https://app.example.com",
		Now:         f.clock.Now,
	}
	require.ErrorIs(t, racing.RequestReset(t.Context(), "kate@x.com"), ErrNotFound)
	require.Len(t, f.notifier.all(), before)
}
