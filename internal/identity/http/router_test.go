package http

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"math"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/identity/internal/identity/domain"
	"github.com/aussiebroadwan/identity/internal/identity/metrics"
	"github.com/aussiebroadwan/identity/internal/identity/service"
	"github.com/aussiebroadwan/identity/internal/identity/store/drivers/sqlite"
	"github.com/aussiebroadwan/identity/pkg/cryptox"
	"github.com/aussiebroadwan/identity/pkg/identitysdk"
	"github.com/aussiebroadwan/identity/pkg/jwtx"
)

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "identity-http-*")
	if err != nil {
		panic(err)
	}
	cryptox.SetPepperPath(filepath.Join(dir, "pepper"))
	code := m.Run()
	_ = os.RemoveAll(dir)
	os.Exit(code)
}

type linkCatcher struct {
	mu    sync.Mutex
	links []string
}

func (c *linkCatcher) NotifyWelcome(string, string) {}

func (c *linkCatcher) NotifyPasswordReset(_, _, link string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.links = append(c.links, link)
}

func (c *linkCatcher) lastToken(t *testing.T) string {
	t.Helper()
	c.mu.Lock()
	defer c.mu.Unlock()
	require.NotEmpty(t, c.links)
	u, err := url.Parse(c.links[len(c.links)-1])
	require.NoError(t, err)
	return u.Query().Get("token")
}

type testServer struct {
	client   *identitysdk.Client
	url      string
	links    *linkCatcher
	metrics  *metrics.Recorder
	keys     *jwtx.KeyManager
	accounts *service.AccountService
}

const bootstrapToken = "bootstrap-secret"

func newTestServer(t *testing.T, algorithm string) *testServer {
	t.Helper()

	st, err := sqlite.NewStore(sqlite.MemoryDSN)
	require.NoError(t, err)
	require.NoError(t, st.ApplyMigrations())
	t.Cleanup(func() { _ = st.Close() })

	km, err := jwtx.NewKeyManager(jwtx.KeyManagerOptions{
		Algorithm: algorithm,
		Issuer:    "identity-test",
		Secret:    []byte("0123456789abcdef0123456789abcdef"),
	})
	require.NoError(t, err)

	m := metrics.New()
	links := &linkCatcher{}
	sessions := &service.SessionIssuer{Signer: km.Signer, Verifier: km.Verifier, Issuer: "identity-test"}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	router := NewRouter(km, "test", st, logger, m)
	router.AccountService = &service.AccountService{Store: st, Sessions: sessions, Notifier: links, Metrics: m}
	router.ResetService = &service.ResetService{Store: st, Notifier: links, Metrics: m, FrontendURL: "https://app.example.com"}
	router.BootstrapService = &service.BootstrapService{Store: st, Token: bootstrapToken, Metrics: m}
	router.ApplyRoutes()

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	return &testServer{
		client:   identitysdk.NewClient(srv.URL),
		url:      srv.URL,
		links:    links,
		metrics:  m,
		keys:     km,
		accounts: router.AccountService,
	}
}

func newAccount(email string) identitysdk.RegisterRequest {
	return identitysdk.RegisterRequest{Email: email, Password: "password1", FirstName: "Test", LastName: "User"}
}

func TestAccountLifecycle(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t, jwtx.AlgorithmHS256)
	ctx := context.Background()

	admin, err := ts.client.Bootstrap(ctx, bootstrapToken, newAccount("root@example.com"))
	require.NoError(t, err)
	require.Equal(t, "ADMIN", admin.Role)

	_, err = ts.client.Bootstrap(ctx, bootstrapToken, newAccount("again@example.com"))
	require.ErrorIs(t, err, identitysdk.ErrUnauthorized)

	alice, err := ts.client.Register(ctx, newAccount("Alice@Example.com"))
	require.NoError(t, err)
	require.Equal(t, "alice@example.com", alice.Email)
	require.Equal(t, "USER", alice.Role)

	_, err = ts.client.Register(ctx, newAccount("ALICE@example.com"))
	require.ErrorIs(t, err, identitysdk.ErrDuplicateIdentity)

	_, err = ts.client.Login(ctx, "alice@example.com", "wrong-password")
	require.ErrorIs(t, err, identitysdk.ErrInvalidCredentials)
	_, err = ts.client.Login(ctx, "nobody@example.com", "password1")
	require.ErrorIs(t, err, identitysdk.ErrInvalidCredentials)

	aliceSession, err := ts.client.Login(ctx, "alice@example.com", "password1")
	require.NoError(t, err)

	me, err := aliceSession.Profile(ctx)
	require.NoError(t, err)
	require.Equal(t, alice.ID, me.ID)

	updated, err := aliceSession.UpdateProfile(ctx, identitysdk.UpdateProfileRequest{
		Email: "alice@example.com", FirstName: "Alicia", LastName: "User",
	})
	require.NoError(t, err)
	require.Equal(t, "Alicia", updated.FirstName)

	// A USER cannot touch other accounts or admin endpoints.
	_, err = aliceSession.ListUsers(ctx, identitysdk.ListOptions{})
	require.ErrorIs(t, err, identitysdk.ErrForbidden)
	_, err = aliceSession.GetUser(ctx, admin.ID)
	require.ErrorIs(t, err, identitysdk.ErrForbidden)
	_, err = aliceSession.UpdateUser(ctx, admin.ID, identitysdk.UpdateProfileRequest{
		Email: "root@example.com", FirstName: "X", LastName: "Y",
	})
	require.ErrorIs(t, err, identitysdk.ErrForbidden)
	_, err = aliceSession.ChangeRole(ctx, alice.ID, "ADMIN")
	require.ErrorIs(t, err, identitysdk.ErrForbidden)
	_, err = aliceSession.ChangeRole(ctx, alice.ID, "ROOT")
	require.ErrorIs(t, err, identitysdk.ErrForbidden)
	_, err = aliceSession.ChangeRole(ctx, alice.ID, "")
	require.ErrorIs(t, err, identitysdk.ErrForbidden)
	require.ErrorIs(t, aliceSession.DeleteUser(ctx, admin.ID), identitysdk.ErrForbidden)

	adminSession, err := ts.client.Login(ctx, "root@example.com", "password1")
	require.NoError(t, err)

	bob, err := adminSession.CreateUser(ctx, newAccount("bob@example.com"))
	require.NoError(t, err)
	require.Equal(t, "USER", bob.Role)

	page, err := adminSession.ListUsers(ctx, identitysdk.ListOptions{Size: 2, Sort: "email"})
	require.NoError(t, err)
	require.Equal(t, int64(3), page.TotalElements)
	require.Equal(t, 2, page.TotalPages)
	require.Len(t, page.Content, 2)
	require.Equal(t, "alice@example.com", page.Content[0].Email)
	require.Equal(t, "bob@example.com", page.Content[1].Email)

	far, err := adminSession.ListUsers(ctx, identitysdk.ListOptions{Page: math.MaxInt, Size: 100})
	require.NoError(t, err)
	require.Empty(t, far.Content)
	require.Equal(t, domain.MaxPage, far.Page)

	promoted, err := adminSession.ChangeRole(ctx, bob.ID, "admin")
	require.NoError(t, err)
	require.Equal(t, "ADMIN", promoted.Role)

	_, err = adminSession.ChangeRole(ctx, bob.ID, "ROOT")
	var verr *identitysdk.ValidationError
	require.True(t, errors.As(err, &verr))
	require.Contains(t, verr.Details, "role")

	require.NoError(t, adminSession.DeleteUser(ctx, bob.ID))
	_, err = adminSession.GetUser(ctx, bob.ID)
	require.ErrorIs(t, err, identitysdk.ErrNotFound)
	require.ErrorIs(t, adminSession.DeleteUser(ctx, bob.ID), identitysdk.ErrNotFound)
}

func TestPasswordResetFlow(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t, jwtx.AlgorithmHS256)
	ctx := context.Background()

	_, err := ts.client.Register(ctx, newAccount("carol@example.com"))
	require.NoError(t, err)

	require.ErrorIs(t, ts.client.ForgotPassword(ctx, "missing@example.com"), identitysdk.ErrNotFound)
	require.NoError(t, ts.client.ForgotPassword(ctx, "carol@example.com"))

	token := ts.links.lastToken(t)
	require.NoError(t, ts.client.ValidateResetToken(ctx, token))
	require.ErrorIs(t, ts.client.ValidateResetToken(ctx, "bogus"), identitysdk.ErrInvalidToken)

	require.NoError(t, ts.client.ResetPassword(ctx, token, "new-password"))
	require.ErrorIs(t, ts.client.ResetPassword(ctx, token, "other-password"), identitysdk.ErrInvalidToken)

	_, err = ts.client.Login(ctx, "carol@example.com", "password1")
	require.ErrorIs(t, err, identitysdk.ErrInvalidCredentials)
	_, err = ts.client.Login(ctx, "carol@example.com", "new-password")
	require.NoError(t, err)
}

func TestRequestErrors(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t, jwtx.AlgorithmHS256)

	tests := []struct {
		name    string
		method  string
		path    string
		body    string
		headers map[string]string
		status  int
		code    string
	}{
		{
			name:   "malformed json",
			method: http.MethodPost,
			path:   "/v1/auth/register",
			body:   `{"email":`,
			status: http.StatusBadRequest,
			code:   identitysdk.ErrorCodeInvalidRequest,
		},
		{
			name:   "unknown field",
			method: http.MethodPost,
			path:   "/v1/auth/login",
			body:   `{"email":"a@x.com","password":"p","admin":true}`,
			status: http.StatusBadRequest,
			code:   identitysdk.ErrorCodeInvalidRequest,
		},
		{
			name:   "validation",
			method: http.MethodPost,
			path:   "/v1/auth/register",
			body:   `{"email":"nope","password":"123","firstName":"","lastName":"x"}`,
			status: http.StatusBadRequest,
			code:   identitysdk.ErrorCodeValidation,
		},
		{
			name:   "missing bearer",
			method: http.MethodGet,
			path:   "/v1/users/profile",
			status: http.StatusUnauthorized,
			code:   identitysdk.ErrorCodeUnauthorized,
		},
		{
			name:    "garbage bearer",
			method:  http.MethodGet,
			path:    "/v1/users",
			headers: map[string]string{"Authorization": "Bearer not-a-jwt"},
			status:  http.StatusUnauthorized,
			code:    identitysdk.ErrorCodeUnauthorized,
		},
		{
			name:   "bootstrap without token",
			method: http.MethodPost,
			path:   "/v1/bootstrap",
			body:   `{}`,
			status: http.StatusUnauthorized,
			code:   identitysdk.ErrorCodeUnauthorized,
		},
		{
			name:    "bootstrap wrong token",
			method:  http.MethodPost,
			path:    "/v1/bootstrap",
			body:    `{"email":"r@x.com","password":"password1","firstName":"R","lastName":"X"}`,
			headers: map[string]string{identitysdk.BootstrapTokenHeader: "wrong"},
			status:  http.StatusUnauthorized,
			code:    identitysdk.ErrorCodeUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req, err := http.NewRequest(tt.method, ts.url+tt.path, strings.NewReader(tt.body))
			require.NoError(t, err)
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			resp, err := http.DefaultClient.Do(req)
			require.NoError(t, err)
			defer resp.Body.Close()

			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err)
			require.Equal(t, tt.status, resp.StatusCode, string(body))
			require.Contains(t, string(body), `"`+tt.code+`"`)
			require.Equal(t, "no-store", resp.Header.Get("Cache-Control"))
		})
	}
}

func TestSystemEndpoints(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("hs256 publishes no keys", func(t *testing.T) {
		t.Parallel()
		ts := newTestServer(t, jwtx.AlgorithmHS256)

		live, err := ts.client.GetLiveness(ctx)
		require.NoError(t, err)
		require.Equal(t, "ok", live.Status)
		require.Equal(t, "test", live.Version)

		ready, err := ts.client.GetReadiness(ctx)
		require.NoError(t, err)
		require.Equal(t, "ok", ready.Checks.Database)
		require.Equal(t, "ok", ready.Checks.Signer)

		jwks, err := ts.client.GetJWKS(ctx)
		require.NoError(t, err)
		require.Empty(t, jwks.Keys)
	})

	t.Run("eddsa publishes its key", func(t *testing.T) {
		t.Parallel()
		ts := newTestServer(t, jwtx.AlgorithmEdDSA)

		jwks, err := ts.client.GetJWKS(ctx)
		require.NoError(t, err)
		require.Len(t, jwks.Keys, 1)
		require.Equal(t, "OKP", jwks.Keys[0].Kty)

		_, err = ts.client.Register(ctx, newAccount("dave@example.com"))
		require.NoError(t, err)
		sess, err := ts.client.Login(ctx, "dave@example.com", "password1")
		require.NoError(t, err)
		_, err = sess.Profile(ctx)
		require.NoError(t, err)
	})

	t.Run("metrics see route patterns", func(t *testing.T) {
		t.Parallel()
		ts := newTestServer(t, jwtx.AlgorithmHS256)

		_, err := ts.client.GetLiveness(ctx)
		require.NoError(t, err)

		resp, err := http.Get(ts.url + "/metrics")
		require.NoError(t, err)
		defer resp.Body.Close()
		var buf bytes.Buffer
		_, err = io.Copy(&buf, resp.Body)
		require.NoError(t, err)
		require.Contains(t, buf.String(), `path="GET /livez"`)
	})
}
