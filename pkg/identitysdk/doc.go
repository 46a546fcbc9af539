/*
Package identitysdk provides a client SDK and wire types for the identity service.

# Client vs Session

  - Client: registration, login, password reset, bootstrap and health checks
  - Session: operations that need a bearer token (profile, user management)

	client := identitysdk.NewClient("https://id.example.com")

	_, err := client.Register(ctx, identitysdk.RegisterRequest{...})

	session, err := client.Login(ctx, "alice@example.com", "s3cret!")
	me, err := session.Profile(ctx)

# Errors

Failed calls return *APIError, or *ValidationError when fields were rejected.
The predefined values compare with errors.Is:

	if errors.Is(err, identitysdk.ErrInvalidCredentials) {
		// unknown email or wrong password; the service does not say which
	}

Session tokens are not refreshable. Once ExpiresAt has passed every Session
call returns ErrSessionExpired.
*/
package identitysdk
