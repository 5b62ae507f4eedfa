package auth

import (
	"errors"
	"fmt"
)

// ErrMissingRefreshToken is returned when a token exchange is requested but
// no refresh token was configured. The OAuth variant is then usable only
// until the initial access token expires.
var ErrMissingRefreshToken = errors.New("no refresh token configured")

// ErrInvalidSigningKey is returned when the service-account private key
// cannot be parsed as a PEM-encoded RSA key.
var ErrInvalidSigningKey = errors.New("invalid service account signing key")

// AuthorizationError indicates that the remote authorization server refused
// a token exchange: revoked consent, an invalid client secret, a disabled
// API, or a rejected assertion.
type AuthorizationError struct {
	// Variant names the credential variant that failed ("oauth" or
	// "service_account").
	Variant string
	Err     error
}

func (e *AuthorizationError) Error() string {
	return fmt.Sprintf("authorization rejected (%s): %v", e.Variant, e.Err)
}

func (e *AuthorizationError) Unwrap() error {
	return e.Err
}
