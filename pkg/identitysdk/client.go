package identitysdk

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// BootstrapTokenHeader carries the one-time bootstrap secret.
const BootstrapTokenHeader = "X-Bootstrap-Token"

// Client talks to the identity service. It covers the unauthenticated
// endpoints and creates authenticated Sessions.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient creates a client with a 10 second timeout.
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Register creates a USER account.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*Account, error) {
	resp, err := c.do(ctx, http.MethodPost, "/v1/auth/register", req, "", nil)
	if err != nil {
		return nil, err
	}
	var out Account
	if err := decodeJSON(resp, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

// Login authenticates and returns a Session bound to the issued token.
func (c *Client) Login(ctx context.Context, email, password string) (*Session, error) {
	resp, err := c.do(ctx, http.MethodPost, "/v1/auth/login", LoginRequest{Email: email, Password: password}, "", nil)
	if err != nil {
		return nil, err
	}
	var out LoginResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return c.NewSession(out.Token, out.ExpiresAt, out.User), nil
}

// NewSession wraps an existing token.
func (c *Client) NewSession(token string, expiresAt time.Time, user Account) *Session {
	return &Session{client: c, token: token, expiresAt: expiresAt, user: user}
}

// ForgotPassword asks the service to mail a reset link.
func (c *Client) ForgotPassword(ctx context.Context, email string) error {
	resp, err := c.do(ctx, http.MethodPost, "/v1/auth/forgot-password", ForgotPasswordRequest{Email: email}, "", nil)
	if err != nil {
		return err
	}
	var out MessageResponse
	return decodeJSON(resp, &out, http.StatusOK)
}

// ValidateResetToken reports whether token can still be redeemed.
func (c *Client) ValidateResetToken(ctx context.Context, token string) error {
	resp, err := c.do(ctx, http.MethodGet, "/v1/auth/reset-password/validate/"+url.PathEscape(token), nil, "", nil)
	if err != nil {
		return err
	}
	var out MessageResponse
	return decodeJSON(resp, &out, http.StatusOK)
}

// ResetPassword redeems token and sets a new password.
func (c *Client) ResetPassword(ctx context.Context, token, newPassword string) error {
	body := ResetPasswordRequest{Token: token, NewPassword: newPassword}
	resp, err := c.do(ctx, http.MethodPost, "/v1/auth/reset-password", body, "", nil)
	if err != nil {
		return err
	}
	var out MessageResponse
	return decodeJSON(resp, &out, http.StatusOK)
}

// Bootstrap creates the first ADMIN account.
func (c *Client) Bootstrap(ctx context.Context, bootstrapToken string, req BootstrapRequest) (*Account, error) {
	headers := map[string]string{BootstrapTokenHeader: bootstrapToken}
	resp, err := c.do(ctx, http.MethodPost, "/v1/bootstrap", req, "", headers)
	if err != nil {
		return nil, err
	}
	var out Account
	if err := decodeJSON(resp, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetLiveness calls /livez.
func (c *Client) GetLiveness(ctx context.Context) (*HealthResponse, error) {
	return c.health(ctx, "/livez")
}

// GetReadiness calls /readyz. A not-ready service returns an *APIError with
// status 503.
func (c *Client) GetReadiness(ctx context.Context) (*HealthResponse, error) {
	return c.health(ctx, "/readyz")
}

func (c *Client) health(ctx context.Context, path string) (*HealthResponse, error) {
	resp, err := c.do(ctx, http.MethodGet, path, nil, "", nil)
	if err != nil {
		return nil, err
	}
	var out HealthResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetJWKS fetches the public signing keys.
func (c *Client) GetJWKS(ctx context.Context) (*JWKSResponse, error) {
	resp, err := c.do(ctx, http.MethodGet, "/.well-known/jwks.json", nil, "", nil)
	if err != nil {
		return nil, err
	}
	var out JWKSResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}
