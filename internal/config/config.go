package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	// DefaultRedirectURI is used when no OAuth redirect URI is configured.
	// It matches the OAuth Playground, which is the usual way a refresh
	// token for this kind of single-user adapter is obtained.
	DefaultRedirectURI = "https://developers.google.com/oauthplayground"

	// DefaultMaxFileSize caps Drive upload/download payloads (100 MiB).
	DefaultMaxFileSize = 100 * 1024 * 1024

	// DefaultServerName is the MCP server name advertised to clients.
	DefaultServerName = "workspace-mcp"

	// DefaultMetricsAddr is the address of the optional metrics endpoint.
	DefaultMetricsAddr = ":9090"
)

// ValidationError is a fatal configuration error. It is the only error class
// that prevents the process from starting.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "invalid configuration: " + e.Reason
}

// OAuthCredentials holds the OAuth client credential variant.
type OAuthCredentials struct {
	ClientID     string
	ClientSecret string
	RedirectURI  string
	RefreshToken string
}

// Usable reports whether the variant can authenticate at all.
// A missing refresh token degrades the variant but does not disable it.
func (c OAuthCredentials) Usable() bool {
	return c.ClientID != "" && c.ClientSecret != ""
}

// ServiceAccountCredentials holds the service-identity credential variant.
type ServiceAccountCredentials struct {
	Email      string
	PrivateKey string
}

// Usable reports whether both fields of the variant are present.
func (c ServiceAccountCredentials) Usable() bool {
	return c.Email != "" && c.PrivateKey != ""
}

// Config holds all environment-sourced settings for the server.
type Config struct {
	OAuth          OAuthCredentials
	ServiceAccount ServiceAccountCredentials

	ServerName    string
	ServerVersion string

	// DefaultFolderID scopes Drive listings when the caller gives no folder.
	DefaultFolderID string

	// MaxFileSize is the largest file content, in bytes, that upload and
	// download operations will accept.
	MaxFileSize int64

	Debug bool

	MetricsEnabled bool
	MetricsAddr    string
}

// LoadEnvFile loads a .env file if one exists. A missing file is not an
// error; explicit paths that fail to load are.
func LoadEnvFile(path string) error {
	if path != "" {
		if err := godotenv.Load(path); err != nil {
			return fmt.Errorf("failed to load env file %s: %w", path, err)
		}
		return nil
	}
	// Best effort for the conventional ./.env
	_ = godotenv.Load()
	return nil
}

// Load reads the configuration from the environment and validates it.
// It returns a *ValidationError when neither credential variant is complete.
func Load(logger *slog.Logger) (*Config, error) {
	if logger == nil {
		logger = slog.Default()
	}

	cfg := &Config{
		OAuth: OAuthCredentials{
			ClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
			ClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
			RedirectURI:  os.Getenv("GOOGLE_REDIRECT_URI"),
			RefreshToken: os.Getenv("GOOGLE_REFRESH_TOKEN"),
		},
		ServiceAccount: ServiceAccountCredentials{
			Email:      os.Getenv("GOOGLE_SERVICE_ACCOUNT_EMAIL"),
			PrivateKey: unescapePrivateKey(os.Getenv("GOOGLE_PRIVATE_KEY")),
		},
		ServerName:      os.Getenv("SERVER_NAME"),
		ServerVersion:   os.Getenv("SERVER_VERSION"),
		DefaultFolderID: os.Getenv("GOOGLE_DRIVE_FOLDER_ID"),
		MaxFileSize:     DefaultMaxFileSize,
		Debug:           os.Getenv("DEBUG") == "true",
		MetricsEnabled:  os.Getenv("METRICS_ENABLED") == "true",
		MetricsAddr:     os.Getenv("METRICS_ADDR"),
	}

	if cfg.OAuth.RedirectURI == "" {
		cfg.OAuth.RedirectURI = DefaultRedirectURI
	}
	if cfg.ServerName == "" {
		cfg.ServerName = DefaultServerName
	}
	if cfg.MetricsAddr == "" {
		cfg.MetricsAddr = DefaultMetricsAddr
	}

	if sizeStr := os.Getenv("MAX_FILE_SIZE"); sizeStr != "" {
		size, err := strconv.ParseInt(sizeStr, 10, 64)
		if err != nil || size <= 0 {
			logger.Warn("invalid MAX_FILE_SIZE, using default",
				"value", sizeStr, "default", DefaultMaxFileSize)
		} else {
			cfg.MaxFileSize = size
		}
	}

	if err := cfg.validate(logger); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validate checks credential completeness as a group. Partial presence of a
// variant produces warnings; only the absence of every usable variant is fatal.
func (c *Config) validate(logger *slog.Logger) error {
	if c.OAuth.ClientID != "" && c.OAuth.ClientSecret == "" {
		logger.Warn("GOOGLE_CLIENT_ID is set but GOOGLE_CLIENT_SECRET is missing; OAuth variant unusable")
	}
	if c.OAuth.ClientSecret != "" && c.OAuth.ClientID == "" {
		logger.Warn("GOOGLE_CLIENT_SECRET is set but GOOGLE_CLIENT_ID is missing; OAuth variant unusable")
	}
	if c.OAuth.Usable() && c.OAuth.RefreshToken == "" {
		logger.Warn("no GOOGLE_REFRESH_TOKEN configured; token keepalive disabled and re-authorization will be required")
	}
	if c.ServiceAccount.Email != "" && c.ServiceAccount.PrivateKey == "" {
		logger.Warn("GOOGLE_SERVICE_ACCOUNT_EMAIL is set but GOOGLE_PRIVATE_KEY is missing; service-account variant unusable")
	}
	if c.ServiceAccount.PrivateKey != "" && c.ServiceAccount.Email == "" {
		logger.Warn("GOOGLE_PRIVATE_KEY is set but GOOGLE_SERVICE_ACCOUNT_EMAIL is missing; service-account variant unusable")
	}

	if !c.OAuth.Usable() && !c.ServiceAccount.Usable() {
		return &ValidationError{
			Reason: "no usable credentials: set GOOGLE_CLIENT_ID and GOOGLE_CLIENT_SECRET, " +
				"or GOOGLE_SERVICE_ACCOUNT_EMAIL and GOOGLE_PRIVATE_KEY",
		}
	}

	return nil
}

// unescapePrivateKey converts the newline-escaped single-line form that
// deployment environments commonly use for PEM keys back into real newlines.
func unescapePrivateKey(key string) string {
	return strings.ReplaceAll(key, `\n`, "\n")
}
