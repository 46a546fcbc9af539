package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/aussiebroadwan/identity/internal/identity/domain"
	"github.com/aussiebroadwan/identity/internal/identity/service"
	"github.com/aussiebroadwan/identity/pkg/httpx"
	"github.com/aussiebroadwan/identity/pkg/identitysdk"
	"github.com/aussiebroadwan/identity/pkg/slogx"
)

var errInvalidSession = identitysdk.NewAPIError(
	http.StatusUnauthorized, identitysdk.ErrorCodeUnauthorized, "session does not identify an account",
)

// writeServiceError maps service errors onto API errors. Anything unmapped is
// logged and reported as a server_error without detail.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var apiErr *identitysdk.APIError
	switch {
	case errors.Is(err, service.ErrDuplicateIdentity):
		apiErr = identitysdk.ErrDuplicateIdentity
	case errors.Is(err, service.ErrNotFound):
		apiErr = identitysdk.ErrNotFound
	case errors.Is(err, service.ErrInvalidCredentials):
		apiErr = identitysdk.ErrInvalidCredentials
	case errors.Is(err, service.ErrInvalidToken):
		apiErr = identitysdk.ErrInvalidToken
	case errors.Is(err, service.ErrTokenExpired):
		apiErr = identitysdk.ErrTokenExpired
	case errors.Is(err, service.ErrForbidden):
		apiErr = identitysdk.ErrForbidden
	case errors.Is(err, service.ErrInvalidSession):
		apiErr = errInvalidSession
	case errors.Is(err, service.ErrInvalidRole):
		identitysdk.WriteValidationError(w, map[string]string{"role": "must be USER or ADMIN"})
		return
	default:
		slogx.FromContext(r.Context()).Error("request failed", slog.Any("err", err))
		apiErr = identitysdk.ErrServerError
	}
	apiErr.WriteError(w)
}

// decodeAndValidate reads the body into dst and runs its field validation.
// It writes the error response itself and reports whether to continue.
func decodeAndValidate[T interface{ Validate() map[string]string }](w http.ResponseWriter, r *http.Request, dst *T) bool {
	if !decodeBody(w, r, dst) {
		return false
	}
	if errs := (*dst).Validate(); len(errs) > 0 {
		identitysdk.WriteValidationError(w, errs)
		return false
	}
	return true
}

// decodeBody reads the body into dst, answering invalid_request on failure.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := httpx.DecodeJSON(r, dst); err != nil {
		identitysdk.NewAPIError(
			http.StatusBadRequest, identitysdk.ErrorCodeInvalidRequest, "request body must be valid JSON",
		).WriteError(w)
		return false
	}
	return true
}

// actor resolves the caller from the claims AuthnMiddleware verified.
func actor(w http.ResponseWriter, r *http.Request) (domain.Actor, bool) {
	claims, ok := httpx.ClaimsFromContext(r.Context())
	if !ok {
		identitysdk.ErrUnauthorized.WriteError(w)
		return domain.Actor{}, false
	}
	a, err := service.ActorFromClaims(claims)
	if err != nil {
		errInvalidSession.WriteError(w)
		return domain.Actor{}, false
	}
	return a, true
}

func toAccount(a domain.PublicAccount) identitysdk.Account {
	return identitysdk.Account{
		ID:        a.ID,
		Email:     a.Email,
		FirstName: a.FirstName,
		LastName:  a.LastName,
		Role:      a.Role.String(),
		CreatedAt: a.CreatedAt,
	}
}

func toNewAccount(req identitysdk.RegisterRequest) service.NewAccount {
	return service.NewAccount{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	}
}
