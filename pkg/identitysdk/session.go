package identitysdk

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// ErrSessionExpired is returned before any request once the token's expiry
// has passed. Sessions cannot be refreshed; log in again.
var ErrSessionExpired = errors.New("identitysdk: session expired")

// Session is an authenticated handle. It is safe for concurrent use.
type Session struct {
	client    *Client
	token     string
	expiresAt time.Time
	user      Account
}

// Token returns the bearer token.
func (s *Session) Token() string { return s.token }

// ExpiresAt returns when the token stops being accepted.
func (s *Session) ExpiresAt() time.Time { return s.expiresAt }

// User returns the account as it was at login.
func (s *Session) User() Account { return s.user }

func (s *Session) do(ctx context.Context, method, path string, body any) (*http.Response, error) {
	if !s.expiresAt.IsZero() && time.Now().After(s.expiresAt) {
		return nil, ErrSessionExpired
	}
	return s.client.do(ctx, method, path, body, s.token, nil)
}

func (s *Session) account(ctx context.Context, method, path string, body any, status int) (*Account, error) {
	resp, err := s.do(ctx, method, path, body)
	if err != nil {
		return nil, err
	}
	var out Account
	if err := decodeJSON(resp, &out, status); err != nil {
		return nil, err
	}
	return &out, nil
}

// Profile returns the caller's own account.
func (s *Session) Profile(ctx context.Context) (*Account, error) {
	return s.account(ctx, http.MethodGet, "/v1/users/profile", nil, http.StatusOK)
}

// UpdateProfile replaces the caller's email and names.
func (s *Session) UpdateProfile(ctx context.Context, req UpdateProfileRequest) (*Account, error) {
	return s.account(ctx, http.MethodPut, "/v1/users/profile", req, http.StatusOK)
}

// ListUsers returns one page of accounts. Requires ADMIN.
func (s *Session) ListUsers(ctx context.Context, opts ListOptions) (*AccountPage, error) {
	q := url.Values{}
	if opts.Page > 0 {
		q.Set("page", strconv.Itoa(opts.Page))
	}
	if opts.Size > 0 {
		q.Set("size", strconv.Itoa(opts.Size))
	}
	if opts.Sort != "" {
		q.Set("sort", opts.Sort)
	}
	if opts.Order != "" {
		q.Set("order", opts.Order)
	}
	path := "/v1/users"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	resp, err := s.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	var out AccountPage
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetUser fetches an account by id. Allowed for ADMIN or the owner.
func (s *Session) GetUser(ctx context.Context, id string) (*Account, error) {
	return s.account(ctx, http.MethodGet, "/v1/users/"+url.PathEscape(id), nil, http.StatusOK)
}

// UpdateUser replaces an account's email and names.
func (s *Session) UpdateUser(ctx context.Context, id string, req UpdateProfileRequest) (*Account, error) {
	return s.account(ctx, http.MethodPut, "/v1/users/"+url.PathEscape(id), req, http.StatusOK)
}

// DeleteUser removes an account. Requires ADMIN.
func (s *Session) DeleteUser(ctx context.Context, id string) error {
	resp, err := s.do(ctx, http.MethodDelete, "/v1/users/"+url.PathEscape(id), nil)
	if err != nil {
		return err
	}
	return checkStatusNoContent(resp)
}

// CreateUser creates a USER account on behalf of someone else. Requires ADMIN.
func (s *Session) CreateUser(ctx context.Context, req RegisterRequest) (*Account, error) {
	return s.account(ctx, http.MethodPost, "/v1/admin/users", req, http.StatusCreated)
}

// ChangeRole sets an account's role. Requires ADMIN.
func (s *Session) ChangeRole(ctx context.Context, id, role string) (*Account, error) {
	path := "/v1/admin/users/" + url.PathEscape(id) + "/role"
	return s.account(ctx, http.MethodPut, path, ChangeRoleRequest{Role: role}, http.StatusOK)
}
