// Package config defines the application configuration and its loading rules.
package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server     ServerConfig     `mapstructure:"server"      validate:"required"`
	Database   DatabaseConfig   `mapstructure:"database"    validate:"required"`
	Auth       AuthConfig       `mapstructure:"auth"        validate:"required"`
	Cache      CacheConfig      `mapstructure:"cache"       validate:"required"`
	FirstAdmin FirstAdminConfig `mapstructure:"first_admin"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required"`
}

// AuthConfig contains all authentication and authorization settings.
type AuthConfig struct {
	// JWTSecret is the HMAC signing key for bearer tokens.
	// Must be long enough to resist brute force attacks.
	JWTSecret string `mapstructure:"jwt_secret" validate:"required,min=32"`

	// TokenLifetimeMinutes is the validity window of issued tokens.
	// There is no refresh flow; re-authentication is the only way to
	// obtain a new token.
	TokenLifetimeMinutes int `mapstructure:"token_lifetime_minutes" validate:"required,gt=0"`
}

// CacheConfig bounds the in-memory resource cache regions.
type CacheConfig struct {
	// MaxEntries is the per-region capacity; the least recently used
	// entry is evicted when a region is full.
	MaxEntries int `mapstructure:"max_entries" validate:"required,gt=0"`

	// TTLMinutes is the age after which a cached entry is treated as absent.
	TTLMinutes int `mapstructure:"ttl_minutes" validate:"required,gt=0"`
}

// FirstAdminConfig seeds the initial administrator account when the
// store holds no admin yet. All fields empty disables seeding.
type FirstAdminConfig struct {
	FirstName string `mapstructure:"first_name"`
	LastName  string `mapstructure:"last_name"`
	Email     string `mapstructure:"email"     validate:"omitempty,email"`
	Password  string `mapstructure:"password"`
}

// Enabled reports whether first-admin seeding is configured.
func (c FirstAdminConfig) Enabled() bool {
	return c.Email != "" && c.Password != ""
}
