package http

import (
	"net/http"

	"github.com/aussiebroadwan/identity/internal/identity/domain"
	"github.com/aussiebroadwan/identity/internal/identity/service"
	"github.com/aussiebroadwan/identity/pkg/httpx"
	"github.com/aussiebroadwan/identity/pkg/identitysdk"
)

type AdminHandler struct {
	AccountService *service.AccountService
}

// HandleCreate creates a USER account on someone else's behalf.
//
//	@Summary		Create account
//	@Description	Admin only. The new account always starts as USER; promote it with the role endpoint.
//	@Tags			Admin
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		identitysdk.RegisterRequest			true	"New account"
//	@Success		201		{object}	identitysdk.Account					"Created account"
//	@Failure		400		{object}	identitysdk.ValidationErrorResponse	"Validation failed"
//	@Failure		403		{object}	identitysdk.ErrorResponse			"Caller is not an admin"
//	@Failure		409		{object}	identitysdk.ErrorResponse			"Email already registered"
//	@Router			/v1/admin/users [post].
func (h *AdminHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	a, ok := actor(w, r)
	if !ok {
		return
	}
	var req identitysdk.RegisterRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	acc, err := h.AccountService.CreateAccount(r.Context(), a, toNewAccount(req))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toAccount(acc))
}

// HandleChangeRole sets an account's role.
//
//	@Summary		Change role
//	@Description	Admin only. Admins may demote themselves.
//	@Tags			Admin
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id		path		string								true	"Account ID"
//	@Param			request	body		identitysdk.ChangeRoleRequest		true	"USER or ADMIN"
//	@Success		200		{object}	identitysdk.Account					"Updated account"
//	@Failure		400		{object}	identitysdk.ValidationErrorResponse	"Unknown role"
//	@Failure		403		{object}	identitysdk.ErrorResponse			"Caller is not an admin"
//	@Failure		404		{object}	identitysdk.ErrorResponse			"Account not found"
//	@Router			/v1/admin/users/{id}/role [put].
func (h *AdminHandler) HandleChangeRole(w http.ResponseWriter, r *http.Request) {
	a, ok := actor(w, r)
	if !ok {
		return
	}
	// The role is checked by the service after authorization, so non-admins
	// see 403 whatever they send.
	var req identitysdk.ChangeRoleRequest
	if !decodeBody(w, r, &req) {
		return
	}
	role, _ := domain.ParseRole(req.Role)

	acc, err := h.AccountService.ChangeRole(r.Context(), a, r.PathValue("id"), role)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toAccount(acc))
}
