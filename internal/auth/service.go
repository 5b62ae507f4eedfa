package auth

import (
	"context"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"golang.org/x/oauth2/jwt"

	"github.com/workweave/workspace-mcp/internal/config"
)

// ServiceAccountProvider mints access tokens by signing a fresh assertion
// with the stored private key. There is no refresh-token concept and no
// staleness risk, so it carries no status or keepalive surface.
type ServiceAccountProvider struct {
	conf   *jwt.Config
	logger *slog.Logger

	// mint fetches a token for the configured assertion. Tests replace it
	// with a stub.
	mint func(ctx context.Context) (*oauth2.Token, error)

	now func() time.Time
}

// NewServiceAccountProvider constructs the service-identity credential
// variant. Construction fails when the identity email or private key is
// absent.
func NewServiceAccountProvider(creds config.ServiceAccountCredentials, logger *slog.Logger) (*ServiceAccountProvider, error) {
	if creds.Email == "" || creds.PrivateKey == "" {
		return nil, &config.ValidationError{Reason: "service account email and private key are required"}
	}
	if logger == nil {
		logger = slog.Default()
	}

	p := &ServiceAccountProvider{
		conf: &jwt.Config{
			Email:      creds.Email,
			PrivateKey: []byte(creds.PrivateKey),
			Scopes:     DefaultScopes,
			TokenURL:   google.JWTTokenURL,
		},
		logger: logger,
		now:    time.Now,
	}
	p.mint = p.mintToken

	return p, nil
}

// AcquireLease signs a fresh assertion and exchanges it for an access token.
func (p *ServiceAccountProvider) AcquireLease(ctx context.Context) (*Lease, error) {
	if err := validateSigningKey(p.conf.PrivateKey); err != nil {
		return nil, err
	}

	token, err := p.mint(ctx)
	if err != nil {
		var retrieveErr *oauth2.RetrieveError
		if errors.As(err, &retrieveErr) {
			return nil, &AuthorizationError{Variant: "service_account", Err: err}
		}
		return nil, fmt.Errorf("token mint failed: %w", err)
	}

	return &Lease{Token: token, AcquiredAt: p.now()}, nil
}

// validateSigningKey checks that the configured key is a parseable
// PEM-encoded RSA private key before any assertion is signed. The jwt
// package would only fail lazily inside the token source.
func validateSigningKey(key []byte) error {
	block, _ := pem.Decode(key)
	if block == nil {
		return fmt.Errorf("%w: key is not PEM encoded", ErrInvalidSigningKey)
	}

	if _, err := x509.ParsePKCS8PrivateKey(block.Bytes); err == nil {
		return nil
	}
	if _, err := x509.ParsePKCS1PrivateKey(block.Bytes); err == nil {
		return nil
	}

	return fmt.Errorf("%w: key is not a valid PKCS#1 or PKCS#8 private key", ErrInvalidSigningKey)
}

func (p *ServiceAccountProvider) mintToken(ctx context.Context) (*oauth2.Token, error) {
	return p.conf.TokenSource(ctx).Token()
}
