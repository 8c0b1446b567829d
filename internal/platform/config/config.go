// Copyright (c) 2026 Silo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing early validation and default values. All variables carry
the "SILO_" prefix (e.g. SILO_DATABASE_URL).

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Architecture:

  - Immutability: Once loaded, configuration is read-only.
  - DI-Friendly: Passed to core components (DB, LDAP, JWT) via constructors.
  - Zero Hidden State: No global variables are used to store config.

This ensures the application is Twelve-Factor compliant by storing config in the env.
*/
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// # Configuration Schema

// Config holds all runtime configuration for the Silo API server.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// Relational Database (PostgreSQL)
	DatabaseURL string `env:"DATABASE_URL,required"`

	// MigrationPath is the filesystem path to the SQL migrations directory.
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./data/migrations"`

	// Key-Value Cache (Redis), used for login attempt throttling.
	RedisURL string `env:"REDIS_URL,required"`

	// Directory service (LDAP) used for credential verification.
	LDAPServerURI       string   `env:"LDAP_SERVER_URI,required"`
	LDAPBaseDN          string   `env:"LDAP_BASE_DN,required"`
	LDAPUserDNTemplate  string   `env:"LDAP_USER_DN_TEMPLATE,required"`
	LDAPUserFilter      string   `env:"LDAP_USER_SEARCH_FILTER" envDefault:"(uid={username})"`
	LDAPBindDN          string   `env:"LDAP_BIND_DN"`
	LDAPBindPassword    string   `env:"LDAP_BIND_PW"`
	LDAPUseTLS          bool     `env:"LDAP_USE_SSL"         envDefault:"true"`
	LDAPSkipTLSVerify   bool     `env:"LDAP_SSL_SKIP_VERIFY" envDefault:"false"`
	LDAPConnectTimeout  int      `env:"LDAP_CONNECT_TIMEOUT" envDefault:"5"`
	LDAPReceiveTimeout  int      `env:"LDAP_RECEIVE_TIMEOUT" envDefault:"10"`
	LDAPUsernameAttr    string   `env:"LDAP_USERNAME_ATTRIBUTE"     envDefault:"uid"`
	LDAPMailAttr        string   `env:"LDAP_MAIL_ATTRIBUTE"         envDefault:"mail"`
	LDAPGroupsAttr      string   `env:"LDAP_GROUPS_ATTRIBUTE"       envDefault:"memberOf"`
	LDAPDisplayNameAttr string   `env:"LDAP_DISPLAY_NAME_ATTRIBUTE" envDefault:"cn"`
	LDAPAllowedGroups   []string `env:"LDAP_ALLOWED_GROUPS" envSeparator:","`

	// Token signing. A leaked secret allows minting arbitrary identities;
	// rotation invalidates every outstanding token.
	JWTSecret       string `env:"JWT_SECRET_KEY,required"`
	JWTAlgorithm    string `env:"JWT_ALGORITHM" envDefault:"HS256"`
	AccessTokenTTL  int    `env:"JWT_ACCESS_TOKEN_EXPIRE_MINUTES" envDefault:"60"`
	RefreshTokenTTL int    `env:"JWT_REFRESH_TOKEN_EXPIRE_DAYS"   envDefault:"7"`

	// PublicPaths are glob patterns (matched after stripping the /api/v1
	// prefix) reachable without a bearer token.
	PublicPaths []string `env:"PUBLIC_PATHS" envSeparator:"," envDefault:"/auth/*,/version"`

	// FirstAdminUser is the directory username granted the admin role when
	// the database holds no admin yet.
	FirstAdminUser string `env:"FIRST_ADMIN_USER"`

	// Document storage
	DocumentUploadDir   string `env:"DOCUMENT_UPLOAD_DIRECTORY" envDefault:"./data/uploads"`
	DocumentMaxFileSize int64  `env:"DOCUMENT_MAX_FILE_SIZE"    envDefault:"10485760"`

	// Cross-Origin Resource Sharing
	ExtraOrigins []string `env:"EXTRA_ORIGINS" envSeparator:","`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct.
func Load() (*Config, error) {
	cfg := &Config{}

	// Map environment variables to struct fields. This fails fast if any
	// field marked with 'required' is missing.
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: "SILO_"}); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	return cfg, nil
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the server is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// CORSOrigins returns the explicitly allow-listed cross-origin hosts.
func (c *Config) CORSOrigins() []string {
	return c.ExtraOrigins
}

// AccessTokenLifetime returns the configured access token TTL as a duration.
func (c *Config) AccessTokenLifetime() time.Duration {
	return time.Duration(c.AccessTokenTTL) * time.Minute
}

// RefreshTokenLifetime returns the configured refresh token TTL as a duration.
func (c *Config) RefreshTokenLifetime() time.Duration {
	return time.Duration(c.RefreshTokenTTL) * 24 * time.Hour
}
