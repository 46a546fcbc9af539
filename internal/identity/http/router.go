package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/identity/internal/identity/metrics"
	"github.com/aussiebroadwan/identity/internal/identity/service"
	"github.com/aussiebroadwan/identity/internal/identity/store"
	"github.com/aussiebroadwan/identity/pkg/httpx"
	"github.com/aussiebroadwan/identity/pkg/jwtx"
	"github.com/aussiebroadwan/identity/pkg/slogx"

	_ "github.com/aussiebroadwan/identity/api/identity" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware
	handler     http.Handler

	keys         *jwtx.KeyManager
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger
	metrics      *metrics.Recorder

	store            store.Store
	AccountService   *service.AccountService
	ResetService     *service.ResetService
	BootstrapService *service.BootstrapService
}

func NewRouter(
	keys *jwtx.KeyManager,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
	m *metrics.Recorder,
) *Router {
	if logger == nil {
		logger = slog.Default()
	}
	r := &Router{
		Mux:          http.NewServeMux(),
		keys:         keys,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
		metrics:      m,
	}

	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}
	// Instrument sits directly on the mux so it sees the matched pattern.
	r.handler = httpx.Chain(r.metrics.Instrument(r.Mux), r.middlewares...)

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerUsers()
	r.registerAdmin()
	r.registerBootstrap()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Identity Service API
//	@version		0.1.0
//	@description	Account registration, login, password reset and role-gated profile management.
//	@description
//	@description				Sessions are stateless bearer tokens signed with HS256 or EdDSA. EdDSA keys are published at the JWKS endpoint.
//
//	@contact.name				AussieBroadWAN Team
//	@contact.url				https://github.com/aussiebroadwan/identity
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Session token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.handler.ServeHTTP(w, req)
}

func (r *Router) secured(h http.HandlerFunc) http.Handler {
	return httpx.Chain(h, httpx.AuthnMiddleware(r.keys.Verifier))
}

func (r *Router) registerAuth() {
	h := &AuthHandler{
		AccountService: r.AccountService,
		ResetService:   r.ResetService,
	}

	r.Mux.HandleFunc("POST /v1/auth/register", h.HandleRegister)
	r.Mux.HandleFunc("POST /v1/auth/login", h.HandleLogin)
	r.Mux.HandleFunc("POST /v1/auth/forgot-password", h.HandleForgotPassword)
	r.Mux.HandleFunc("GET /v1/auth/reset-password/validate/{token}", h.HandleValidateResetToken)
	r.Mux.HandleFunc("POST /v1/auth/reset-password", h.HandleResetPassword)
}

func (r *Router) registerUsers() {
	h := &UsersHandler{AccountService: r.AccountService}

	r.Mux.Handle("GET /v1/users/profile", r.secured(h.HandleGetProfile))
	r.Mux.Handle("PUT /v1/users/profile", r.secured(h.HandleUpdateProfile))
	r.Mux.Handle("GET /v1/users", r.secured(h.HandleList))
	r.Mux.Handle("GET /v1/users/{id}", r.secured(h.HandleGet))
	r.Mux.Handle("PUT /v1/users/{id}", r.secured(h.HandleUpdate))
	r.Mux.Handle("DELETE /v1/users/{id}", r.secured(h.HandleDelete))
}

func (r *Router) registerAdmin() {
	h := &AdminHandler{AccountService: r.AccountService}

	r.Mux.Handle("POST /v1/admin/users", r.secured(h.HandleCreate))
	r.Mux.Handle("PUT /v1/admin/users/{id}/role", r.secured(h.HandleChangeRole))
}

func (r *Router) registerBootstrap() {
	r.Mux.Handle("POST /v1/bootstrap", &BootstrapHandler{BootstrapService: r.BootstrapService})
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez", LivezHandler(r.startTime, r.buildVersion))
	r.Mux.Handle("GET /readyz", ReadyzHandler(r.startTime, r.buildVersion, r.store, r.keys))
	r.Mux.Handle("GET /.well-known/jwks.json", JWKSHandler(r.keys))
	r.Mux.Handle("GET /metrics", r.metrics.Handler())
}
