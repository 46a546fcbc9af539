package http

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/identity/internal/identity/service"
	"github.com/aussiebroadwan/identity/pkg/httpx"
	"github.com/aussiebroadwan/identity/pkg/identitysdk"
	"github.com/aussiebroadwan/identity/pkg/slogx"
)

type BootstrapHandler struct {
	BootstrapService *service.BootstrapService
}

// ServeHTTP creates the first administrator of an empty system.
//
//	@Summary		Bootstrap the identity service
//	@Description	Creates the first ADMIN account. Only available when a bootstrap token is configured and no account exists yet.
//	@Tags			Bootstrap
//	@Accept			json
//	@Produce		json
//	@Param			X-Bootstrap-Token	header		string								true	"Bootstrap token for authorization"
//	@Param			request				body		identitysdk.BootstrapRequest		true	"Administrator account"
//	@Success		201					{object}	identitysdk.Account					"Created administrator"
//	@Failure		400					{object}	identitysdk.ValidationErrorResponse	"Invalid request body or validation failed"
//	@Failure		401					{object}	identitysdk.ErrorResponse			"Missing or invalid bootstrap token, or system already bootstrapped"
//	@Failure		404					{object}	identitysdk.ErrorResponse			"Bootstrap not enabled (no token configured)"
//	@Failure		500					{object}	identitysdk.ErrorResponse			"Failed to create administrator"
//	@Router			/v1/bootstrap [post].
func (h *BootstrapHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	l := slogx.FromContext(r.Context())
	l.Info("Starting to bootstrap")

	if h.BootstrapService.Token == "" {
		identitysdk.NewAPIError(http.StatusNotFound, identitysdk.ErrorCodeNotFound,
			"Bootstrap endpoint is not enabled").WriteError(w)
		return
	}

	token := r.Header.Get(identitysdk.BootstrapTokenHeader)
	if token == "" {
		identitysdk.NewAPIError(http.StatusUnauthorized, identitysdk.ErrorCodeUnauthorized,
			"Bootstrap token is required in X-Bootstrap-Token header").WriteError(w)
		return
	}

	var req identitysdk.BootstrapRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	acc, err := h.BootstrapService.Bootstrap(r.Context(), token, toNewAccount(req))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrBootstrapDisabled):
			identitysdk.NewAPIError(http.StatusNotFound, identitysdk.ErrorCodeNotFound,
				"Bootstrap endpoint is not enabled").WriteError(w)
		case errors.Is(err, service.ErrBootstrapAlready):
			identitysdk.NewAPIError(http.StatusUnauthorized, identitysdk.ErrorCodeUnauthorized,
				"System has already been bootstrapped").WriteError(w)
		case errors.Is(err, service.ErrBootstrapUnauthorized):
			identitysdk.NewAPIError(http.StatusUnauthorized, identitysdk.ErrorCodeUnauthorized,
				"Invalid bootstrap token").WriteError(w)
		default:
			writeServiceError(w, r, err)
		}
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, toAccount(acc))
}
