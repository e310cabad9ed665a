// Package config manages environment variables.
//
// It reads variables from the `.env` file (when present),
// loads them into structured Go types, and validates that
// required values are present so they can be reused across
// the application runtime.
//
// Responsibilities:
//   - Load environment variables (optionally from a `.env` file).
//   - Map env vars into a structured Go config (structs).
//   - Validate required values so the app fails fast on bad/missing config.
//   - Provide sane defaults for optional config blocks (e.g. observability).
package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	// Side-effect import: if a `.env` file exists, it gets loaded into the
	// process env before anything in this package reads it.
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

/*
	Env vars are read using the prefix LANDING_.

	The prefix is stripped, the key is lowercased and a double underscore
	marks nesting, so:

	  LANDING_STORE__API_KEY        -> store.api_key        -> Config.Store.APIKey
	  LANDING_SERVER__READ_TIMEOUT  -> server.read_timeout  -> Config.Server.ReadTimeout

	Single underscores stay part of the key name.
*/

// EnvPrefix is the prefix every recognised environment variable carries.
const EnvPrefix = "LANDING_"

// Store drivers.
const (
	// DriverPostgREST talks to the hosted Supabase REST endpoint with a public API key.
	DriverPostgREST = "postgrest"

	// DriverPostgres connects straight to the Postgres database behind it.
	DriverPostgres = "postgres"
)

// listKeys are config keys whose env value is a comma-separated list.
var listKeys = map[string]bool{
	"server.cors_allowed_origins":         true,
	"observability.health_checks.checks": true,
}

// Config is the root configuration object for the application.
//
// Database and Observability are pointers because they are optional.
// Database is only needed by the postgres driver; observability defaults are
// injected at load time.
type Config struct {
	Primary       Primary              `koanf:"primary" validate:"required"`
	Server        ServerConfig         `koanf:"server" validate:"required"`
	Store         StoreConfig          `koanf:"store" validate:"required"`
	Database      *DatabaseConfig      `koanf:"database"`
	Redis         RedisConfig          `koanf:"redis"`
	Integration   IntegrationConfig    `koanf:"integration"`
	Site          SiteConfig           `koanf:"site"`
	Observability *ObservabilityConfig `koanf:"observability"`
}

// Primary holds top-level information about the runtime environment.
// Used to tag logs/traces and switch behavior based on env.
type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

// ServerConfig groups settings for the HTTP server runtime.
// Timeouts are whole seconds.
type ServerConfig struct {
	Port               string   `koanf:"port" validate:"required"`
	ReadTimeout        int      `koanf:"read_timeout" validate:"min=1"`
	WriteTimeout       int      `koanf:"write_timeout" validate:"min=1"`
	IdleTimeout        int      `koanf:"idle_timeout" validate:"min=1"`
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins"`
}

// StoreConfig selects and configures the persistence client shared by the
// form handlers.
//
// With the postgrest driver, URL is the project URL (e.g. https://xyz.supabase.co)
// and APIKey the public anon key. Both are the only two values the hosted
// store needs.
type StoreConfig struct {
	Driver string `koanf:"driver" validate:"required,oneof=postgrest postgres"`
	URL    string `koanf:"url" validate:"required_if=Driver postgrest"`
	APIKey string `koanf:"api_key" validate:"required_if=Driver postgrest"`
}

// DatabaseConfig contains PostgreSQL connection parameters and pool tuning.
type DatabaseConfig struct {
	Host            string `koanf:"host" validate:"required"`
	Port            int    `koanf:"port" validate:"required"`
	User            string `koanf:"user" validate:"required"`
	Password        string `koanf:"password" validate:"required"`
	Name            string `koanf:"name" validate:"required"`
	SSLMode         string `koanf:"ssl_mode" validate:"required"`
	MaxOpenConns    int    `koanf:"max_open_conns"`
	MaxIdleConns    int    `koanf:"max_idle_conns"`
	ConnMaxLifetime int    `koanf:"conn_max_lifetime"`
	ConnMaxIdleTime int    `koanf:"conn_max_idle_time"`

	// AutoMigrate runs the embedded tern migrations at startup.
	AutoMigrate bool `koanf:"auto_migrate"`
}

// RedisConfig contains Redis connection details.
// Address is "host:port". Empty disables background jobs.
type RedisConfig struct {
	Address string `koanf:"address"`
}

// Enabled reports whether a Redis address was configured.
func (r RedisConfig) Enabled() bool {
	return r.Address != ""
}

// IntegrationConfig stores third-party credentials.
type IntegrationConfig struct {
	ResendAPIKey string `koanf:"resend_api_key"`
	EmailFrom    string `koanf:"email_from" validate:"omitempty,email"`
	ContactInbox string `koanf:"contact_inbox" validate:"omitempty,email"`
}

// SiteConfig describes the public website served in front of this backend.
type SiteConfig struct {
	BaseURL string `koanf:"base_url" validate:"omitempty,url"`
}

// LoadConfig loads configuration from environment variables, unmarshals it
// into Config, applies defaults and validates the result.
//
// Behavior summary:
//   - Loads env vars with prefix LANDING_
//   - Splits list-valued keys on commas
//   - Unmarshals into Config
//   - Fills defaults for optional values
//   - Validates required config blocks/fields
//   - Sets default observability if missing, then validates it as well
func LoadConfig() (*Config, error) {
	k := koanf.New(".")

	err := k.Load(env.ProviderWithValue(EnvPrefix, ".", func(key, value string) (string, any) {
		key = envKey(key)
		if listKeys[key] {
			return key, splitList(value)
		}
		return key, value
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("could not load env variables: %w", err)
	}

	// Observability starts from defaults so a partial
	// LANDING_OBSERVABILITY__* override merges onto them.
	mainConfig := &Config{Observability: DefaultObservabilityConfig()}
	if err := k.Unmarshal("", mainConfig); err != nil {
		return nil, fmt.Errorf("could not unmarshal main config: %w", err)
	}

	mainConfig.applyDefaults()

	if err := validator.New().Struct(mainConfig); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	if mainConfig.Store.Driver == DriverPostgres && mainConfig.Database == nil {
		return nil, fmt.Errorf("config validation failed: database block is required for the %s driver", DriverPostgres)
	}

	if mainConfig.Observability == nil {
		mainConfig.Observability = DefaultObservabilityConfig()
	}

	// Service name and environment always follow the primary config so
	// logs and traces see consistent naming.
	mainConfig.Observability.ServiceName = ServiceName
	mainConfig.Observability.Environment = mainConfig.Primary.Env

	if err := mainConfig.Observability.Validate(); err != nil {
		return nil, fmt.Errorf("invalid observability config: %w", err)
	}

	return mainConfig, nil
}

// envKey turns LANDING_SERVER__READ_TIMEOUT into server.read_timeout.
func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(s, "__", ".")
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func (c *Config) applyDefaults() {
	if c.Server.Port == "" {
		c.Server.Port = "8080"
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 30
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 30
	}
	if c.Server.IdleTimeout == 0 {
		c.Server.IdleTimeout = 60
	}
	if len(c.Server.CORSAllowedOrigins) == 0 {
		c.Server.CORSAllowedOrigins = []string{"*"}
	}
	if c.Store.Driver == "" {
		c.Store.Driver = DriverPostgREST
	}
	c.Store.URL = strings.TrimRight(c.Store.URL, "/")
	c.Site.BaseURL = strings.TrimRight(c.Site.BaseURL, "/")
	if c.Integration.EmailFrom == "" {
		c.Integration.EmailFrom = "hello@velyralabs.com"
	}
}
