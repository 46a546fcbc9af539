package http

import (
	"net/http"

	"github.com/aussiebroadwan/identity/internal/identity/service"
	"github.com/aussiebroadwan/identity/pkg/httpx"
	"github.com/aussiebroadwan/identity/pkg/identitysdk"
)

type AuthHandler struct {
	AccountService *service.AccountService
	ResetService   *service.ResetService
}

// HandleRegister creates a USER account.
//
//	@Summary		Register an account
//	@Description	Creates a USER account. The email must not already be registered (case-insensitive).
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		identitysdk.RegisterRequest				true	"New account"
//	@Success		201		{object}	identitysdk.Account						"Created account"
//	@Failure		400		{object}	identitysdk.ValidationErrorResponse		"Validation failed"
//	@Failure		409		{object}	identitysdk.ErrorResponse				"Email already registered"
//	@Router			/v1/auth/register [post].
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req identitysdk.RegisterRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	acc, err := h.AccountService.Register(r.Context(), toNewAccount(req))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toAccount(acc))
}

// HandleLogin exchanges credentials for a session token.
//
//	@Summary		Log in
//	@Description	Verifies credentials and returns a signed session token. Unknown emails and wrong passwords produce the same error.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		identitysdk.LoginRequest			true	"Credentials"
//	@Success		200		{object}	identitysdk.LoginResponse			"Session token and account"
//	@Failure		400		{object}	identitysdk.ValidationErrorResponse	"Validation failed"
//	@Failure		401		{object}	identitysdk.ErrorResponse			"Invalid email or password"
//	@Router			/v1/auth/login [post].
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req identitysdk.LoginRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	sess, err := h.AccountService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, identitysdk.LoginResponse{
		Token:     sess.Token,
		TokenType: "Bearer",
		ExpiresAt: sess.ExpiresAt,
		User:      toAccount(sess.Account),
	})
}

// HandleForgotPassword issues a reset token and mails the link.
//
//	@Summary		Request a password reset
//	@Description	Issues a single-use reset token valid for 24 hours and emails the reset link.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		identitysdk.ForgotPasswordRequest	true	"Account email"
//	@Success		200		{object}	identitysdk.MessageResponse			"Reset email queued"
//	@Failure		400		{object}	identitysdk.ValidationErrorResponse	"Validation failed"
//	@Failure		404		{object}	identitysdk.ErrorResponse			"No account with this email"
//	@Router			/v1/auth/forgot-password [post].
func (h *AuthHandler) HandleForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req identitysdk.ForgotPasswordRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if err := h.ResetService.RequestReset(r.Context(), req.Email); err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, identitysdk.MessageResponse{
		Message: "password reset email sent",
	})
}

// HandleValidateResetToken reports whether a reset token can still be used.
//
//	@Summary		Validate a reset token
//	@Description	Checks a reset token without consuming it. An expired token is discarded.
//	@Tags			Auth
//	@Produce		json
//	@Param			token	path		string						true	"Reset token from the emailed link"
//	@Success		200		{object}	identitysdk.MessageResponse	"Token is valid"
//	@Failure		400		{object}	identitysdk.ErrorResponse	"Unknown or already used token"
//	@Failure		410		{object}	identitysdk.ErrorResponse	"Token expired"
//	@Router			/v1/auth/reset-password/validate/{token} [get].
func (h *AuthHandler) HandleValidateResetToken(w http.ResponseWriter, r *http.Request) {
	if err := h.ResetService.ValidateResetToken(r.Context(), r.PathValue("token")); err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, identitysdk.MessageResponse{Message: "token is valid"})
}

// HandleResetPassword redeems a reset token.
//
//	@Summary		Reset password
//	@Description	Consumes the reset token and sets the new password in one step.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		identitysdk.ResetPasswordRequest	true	"Token and new password"
//	@Success		200		{object}	identitysdk.MessageResponse			"Password updated"
//	@Failure		400		{object}	identitysdk.ErrorResponse			"Unknown or already used token, or validation failed"
//	@Failure		410		{object}	identitysdk.ErrorResponse			"Token expired"
//	@Router			/v1/auth/reset-password [post].
func (h *AuthHandler) HandleResetPassword(w http.ResponseWriter, r *http.Request) {
	var req identitysdk.ResetPasswordRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if err := h.ResetService.CompleteReset(r.Context(), req.Token, req.NewPassword); err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, identitysdk.MessageResponse{Message: "password has been reset"})
}
