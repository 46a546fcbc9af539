package http

import (
	"net/http"
	"strconv"

	"github.com/aussiebroadwan/identity/internal/identity/domain"
	"github.com/aussiebroadwan/identity/internal/identity/service"
	"github.com/aussiebroadwan/identity/pkg/httpx"
	"github.com/aussiebroadwan/identity/pkg/identitysdk"
)

type UsersHandler struct {
	AccountService *service.AccountService
}

// HandleGetProfile returns the caller's account.
//
//	@Summary		Current profile
//	@Tags			Users
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	identitysdk.Account			"Caller's account"
//	@Failure		401	{object}	identitysdk.ErrorResponse	"Missing or invalid session"
//	@Failure		404	{object}	identitysdk.ErrorResponse	"Account no longer exists"
//	@Router			/v1/users/profile [get].
func (h *UsersHandler) HandleGetProfile(w http.ResponseWriter, r *http.Request) {
	a, ok := actor(w, r)
	if !ok {
		return
	}
	acc, err := h.AccountService.CurrentProfile(r.Context(), a)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toAccount(acc))
}

// HandleUpdateProfile replaces the caller's email and names.
//
//	@Summary		Update current profile
//	@Tags			Users
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		identitysdk.UpdateProfileRequest	true	"New profile"
//	@Success		200		{object}	identitysdk.Account					"Updated account"
//	@Failure		400		{object}	identitysdk.ValidationErrorResponse	"Validation failed"
//	@Failure		409		{object}	identitysdk.ErrorResponse			"Email already registered"
//	@Router			/v1/users/profile [put].
func (h *UsersHandler) HandleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	a, ok := actor(w, r)
	if !ok {
		return
	}
	h.update(w, r, a, a.ID)
}

// HandleList returns a page of accounts.
//
//	@Summary		List accounts
//	@Description	Admin only. Pages are zero-based; size is capped at 100.
//	@Tags			Users
//	@Produce		json
//	@Security		BearerAuth
//	@Param			page	query		int							false	"Page number (0-based)"
//	@Param			size	query		int							false	"Page size (default 20)"
//	@Param			sort	query		string						false	"createdAt, email, firstName or lastName"
//	@Param			order	query		string						false	"asc or desc"
//	@Success		200		{object}	identitysdk.AccountPage		"Page of accounts"
//	@Failure		403		{object}	identitysdk.ErrorResponse	"Caller is not an admin"
//	@Router			/v1/users [get].
func (h *UsersHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	a, ok := actor(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	size, _ := strconv.Atoi(q.Get("size"))
	req := domain.PageRequest{
		Page: page,
		Size: size,
		Sort: domain.SortField(q.Get("sort")),
		Desc: domain.ParseSortOrder(q.Get("order")),
	}

	res, err := h.AccountService.ListAccounts(r.Context(), a, req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	out := identitysdk.AccountPage{
		Content:       make([]identitysdk.Account, 0, len(res.Items)),
		Page:          res.Page,
		Size:          res.Size,
		TotalElements: res.Total,
		TotalPages:    res.TotalPages,
	}
	for _, acc := range res.Items {
		out.Content = append(out.Content, toAccount(acc))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleGet returns one account.
//
//	@Summary		Get account
//	@Description	Admin only.
//	@Tags			Users
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id	path		string						true	"Account ID"
//	@Success		200	{object}	identitysdk.Account			"Account"
//	@Failure		403	{object}	identitysdk.ErrorResponse	"Caller is not an admin"
//	@Failure		404	{object}	identitysdk.ErrorResponse	"Account not found"
//	@Router			/v1/users/{id} [get].
func (h *UsersHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	a, ok := actor(w, r)
	if !ok {
		return
	}
	acc, err := h.AccountService.GetAccount(r.Context(), a, r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toAccount(acc))
}

// HandleUpdate replaces an account's email and names.
//
//	@Summary		Update account
//	@Description	Allowed for admins and for the account owner.
//	@Tags			Users
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id		path		string								true	"Account ID"
//	@Param			request	body		identitysdk.UpdateProfileRequest	true	"New profile"
//	@Success		200		{object}	identitysdk.Account					"Updated account"
//	@Failure		400		{object}	identitysdk.ValidationErrorResponse	"Validation failed"
//	@Failure		403		{object}	identitysdk.ErrorResponse			"Not the owner and not an admin"
//	@Failure		404		{object}	identitysdk.ErrorResponse			"Account not found"
//	@Failure		409		{object}	identitysdk.ErrorResponse			"Email already registered"
//	@Router			/v1/users/{id} [put].
func (h *UsersHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	a, ok := actor(w, r)
	if !ok {
		return
	}
	h.update(w, r, a, r.PathValue("id"))
}

func (h *UsersHandler) update(w http.ResponseWriter, r *http.Request, a domain.Actor, targetID string) {
	var req identitysdk.UpdateProfileRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	acc, err := h.AccountService.UpdateProfile(r.Context(), a, targetID, domain.ProfileUpdate{
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toAccount(acc))
}

// HandleDelete removes an account and its reset tokens.
//
//	@Summary		Delete account
//	@Description	Admin only.
//	@Tags			Users
//	@Security		BearerAuth
//	@Param			id	path	string	true	"Account ID"
//	@Success		204	"Deleted"
//	@Failure		403	{object}	identitysdk.ErrorResponse	"Caller is not an admin"
//	@Failure		404	{object}	identitysdk.ErrorResponse	"Account not found"
//	@Router			/v1/users/{id} [delete].
func (h *UsersHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	a, ok := actor(w, r)
	if !ok {
		return
	}
	if err := h.AccountService.DeleteAccount(r.Context(), a, r.PathValue("id")); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
