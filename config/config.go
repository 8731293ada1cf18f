// Package config loads runtime settings for the accounts service.
//
// Values are resolved in layers: built in defaults, then an optional YAML
// file, then environment variables (a .env file is loaded first when
// present), then command-line flags.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Config holds runtime settings for the accounts service.
type Config struct {
	Address         string           `yaml:"address"`
	Debug           bool             `yaml:"debug"`
	ShutdownTimeout time.Duration    `yaml:"shutdown_timeout"`
	Database        DatabaseConfig   `yaml:"database"`
	Auth            AuthConfig       `yaml:"auth"`
	Pagination      PaginationConfig `yaml:"pagination"`
}

// DatabaseConfig selects the store backend
type DatabaseConfig struct {
	Driver string `yaml:"driver"`
	DSN    string `yaml:"dsn"`
}

// AuthConfig configures token verification
type AuthConfig struct {
	SigningKey    string   `yaml:"signing_key"`
	SigningMethod string   `yaml:"signing_method"`
	Issuer        string   `yaml:"issuer"`
	Audience      []string `yaml:"audience"`
	JWKSURL       string   `yaml:"jwks_url"`
	ContextKey    string   `yaml:"context_key"`
	TokenLookup   string   `yaml:"token_lookup"`
	AuthScheme    string   `yaml:"auth_scheme"`
}

// PaginationConfig bounds list requests
type PaginationConfig struct {
	MaxLimit int `yaml:"max_limit"`
}

// LoadDefaults populates Config with development defaults.
// There is no default signing key.
func (c *Config) LoadDefaults() {
	c.Address = ":8080"
	c.Debug = false
	c.ShutdownTimeout = 10 * time.Second
	c.Database.Driver = "sqlite"
	c.Database.DSN = "file:accounts.db?cache=shared"
	c.Auth.SigningMethod = "HS256"
	c.Auth.ContextKey = "user"
	c.Auth.TokenLookup = "header:Authorization"
	c.Auth.AuthScheme = "Bearer"
	c.Pagination.MaxLimit = 100
}

// Validate checks the settings needed to serve requests
func (c *Config) Validate() error {
	var errs []error

	if strings.TrimSpace(c.Address) == "" {
		errs = append(errs, errors.New("address is required"))
	}

	switch strings.ToLower(c.Database.Driver) {
	case "sqlite", "sqlite3", "postgres", "postgresql", "pgx":
	default:
		errs = append(errs, fmt.Errorf("unsupported database driver %q", c.Database.Driver))
	}

	if c.Database.DSN == "" {
		errs = append(errs, errors.New("database dsn is required"))
	}

	if c.Auth.SigningKey == "" && c.Auth.JWKSURL == "" {
		errs = append(errs, errors.New("auth signing key or jwks url is required"))
	}

	if c.Pagination.MaxLimit < 0 {
		errs = append(errs, errors.New("pagination max limit must not be negative"))
	}

	return errors.Join(errs...)
}

func (c *Config) GetSigningKey() string {
	return c.Auth.SigningKey
}

func (c *Config) GetSigningMethod() string {
	return c.Auth.SigningMethod
}

func (c *Config) GetContextKey() string {
	return c.Auth.ContextKey
}

func (c *Config) GetTokenLookup() string {
	return c.Auth.TokenLookup
}

func (c *Config) GetAuthScheme() string {
	return c.Auth.AuthScheme
}

func (c *Config) GetIssuer() string {
	return c.Auth.Issuer
}

func (c *Config) GetAudience() []string {
	return c.Auth.Audience
}

func (c *Config) GetJWKSURL() string {
	return c.Auth.JWKSURL
}
