// Package config carga la configuración del servicio desde defaults + variables de entorno (viper).
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	DriverMemory   = "memory"
	DriverRedis    = "redis"
	DriverPostgres = "postgres"
)

type Config struct {
	Server  ServerConfig
	Store   StoreConfig
	Auth    AuthConfig
	Logging LoggingConfig
}

type ServerConfig struct {
	Port            string
	ShutdownTimeout time.Duration
}

// StoreConfig elige el backend de documentos (memory|redis|postgres).
type StoreConfig struct {
	Driver   string
	Redis    RedisConfig
	Postgres PostgresConfig
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	Prefix   string
}

type PostgresConfig struct {
	DSN string
}

// AuthConfig: sin Odin configurado el servicio corre en modo dev (X-Debug-User-ID).
type AuthConfig struct {
	Odin OdinConfig
}

type OdinConfig struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

func (o OdinConfig) Enabled() bool {
	return strings.TrimSpace(o.BaseURL) != "" && strings.TrimSpace(o.APIKey) != ""
}

type LoggingConfig struct {
	Level  string
	Format string // json | text
	App    string
}

func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	bindEnvVars(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.Store.Driver = strings.ToLower(strings.TrimSpace(cfg.Store.Driver))

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.shutdowntimeout", 15*time.Second)

	v.SetDefault("store.driver", DriverMemory)
	v.SetDefault("store.redis.addr", "localhost:6379")
	v.SetDefault("store.redis.db", 0)
	v.SetDefault("store.redis.prefix", "petcare:")

	v.SetDefault("auth.odin.timeout", 5*time.Second)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.app", "pet-care-tracker")
}

func bindEnvVars(v *viper.Viper) {
	_ = v.BindEnv("server.port", "PORT")
	_ = v.BindEnv("server.shutdowntimeout", "SHUTDOWN_TIMEOUT")

	_ = v.BindEnv("store.driver", "STORE_DRIVER")
	_ = v.BindEnv("store.redis.addr", "REDIS_ADDR")
	_ = v.BindEnv("store.redis.password", "REDIS_PASSWORD")
	_ = v.BindEnv("store.redis.db", "REDIS_DB")
	_ = v.BindEnv("store.redis.prefix", "REDIS_PREFIX")
	_ = v.BindEnv("store.postgres.dsn", "DB_DSN", "DATABASE_URL")

	_ = v.BindEnv("auth.odin.baseurl", "ODIN_BASE_URL")
	_ = v.BindEnv("auth.odin.apikey", "ODIN_API_KEY")
	_ = v.BindEnv("auth.odin.timeout", "ODIN_TIMEOUT")

	_ = v.BindEnv("logging.level", "LOG_LEVEL")
	_ = v.BindEnv("logging.format", "LOG_FORMAT")
	_ = v.BindEnv("logging.app", "APP_NAME")
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.Server.Port) == "" {
		return fmt.Errorf("server.port is required")
	}

	switch c.Store.Driver {
	case DriverMemory:
	case DriverRedis:
		if strings.TrimSpace(c.Store.Redis.Addr) == "" {
			return fmt.Errorf("store.redis.addr is required for driver %q", DriverRedis)
		}
	case DriverPostgres:
		if strings.TrimSpace(c.Store.Postgres.DSN) == "" {
			return fmt.Errorf("store.postgres.dsn is required for driver %q", DriverPostgres)
		}
	default:
		return fmt.Errorf("unknown store.driver %q", c.Store.Driver)
	}

	// Odin: o los dos o ninguno
	if (c.Auth.Odin.BaseURL == "") != (c.Auth.Odin.APIKey == "") {
		return fmt.Errorf("auth.odin.baseurl and auth.odin.apikey must be set together")
	}
	return nil
}

// Addr arma la dirección de escucha del servidor HTTP.
func (c *Config) Addr() string {
	return ":" + strings.TrimPrefix(c.Server.Port, ":")
}
