package config

import (
	"fmt"
	"log/slog"
	"net"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

type Config struct {
	// Server
	Port   string
	AppEnv string

	// Logging
	LogLevel          string
	LogRetentionDays  int
	SentryDSN         string
	MetricsEnabled    bool
	AuthRateLimit     int
	AuthRateLimitSpan time.Duration

	// Storage
	StoreDriver   string
	DBHost        string
	DBPort        string
	DBUser        string
	DBPassword    string
	DBName        string
	DBSSLMode     string
	DBAutoMigrate bool

	// JWT
	JWTSecret     string
	JWTExpiration time.Duration
	BcryptCost    int

	CORSOrigins string
}

// Load reads an optional .env file, then an optional CONFIG_FILE (yaml),
// then environment variables. Environment wins.
func Load() (*Config, error) {
	cfg, err := read()
	if err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadDatabase reads the same sources as Load but only checks the
// database settings. Used by cmd/migrate, which never signs tokens.
func LoadDatabase() (*Config, error) {
	cfg, err := read()
	if err != nil {
		return nil, err
	}
	if cfg.DBPassword == "" {
		return nil, fmt.Errorf("DB_PASSWORD is required")
	}
	return cfg, nil
}

func read() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file found")
	}

	v := viper.New()
	setDefaults(v)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	cfg := &Config{
		Port:   v.GetString("port"),
		AppEnv: v.GetString("app_env"),

		LogLevel:          v.GetString("log_level"),
		LogRetentionDays:  v.GetInt("log_retention_days"),
		SentryDSN:         v.GetString("sentry_dsn"),
		MetricsEnabled:    v.GetBool("metrics_enabled"),
		AuthRateLimit:     v.GetInt("auth_rate_limit"),
		AuthRateLimitSpan: v.GetDuration("auth_rate_limit_span"),

		StoreDriver:   strings.ToLower(v.GetString("store_driver")),
		DBHost:        v.GetString("db_host"),
		DBPort:        v.GetString("db_port"),
		DBUser:        v.GetString("db_user"),
		DBPassword:    v.GetString("db_password"),
		DBName:        v.GetString("db_name"),
		DBSSLMode:     v.GetString("db_sslmode"),
		DBAutoMigrate: v.GetBool("db_auto_migrate"),

		JWTSecret:     v.GetString("jwt_secret"),
		JWTExpiration: time.Duration(v.GetInt64("jwt_expiration_ms")) * time.Millisecond,
		BcryptCost:    v.GetInt("bcrypt_cost"),

		CORSOrigins: v.GetString("cors_origins"),
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "8080")
	v.SetDefault("app_env", "production")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_retention_days", 30)
	v.SetDefault("sentry_dsn", "")
	v.SetDefault("metrics_enabled", false)
	v.SetDefault("auth_rate_limit", 10)
	v.SetDefault("auth_rate_limit_span", "1m")

	v.SetDefault("store_driver", StorePostgres)
	v.SetDefault("db_host", "localhost")
	v.SetDefault("db_port", "5432")
	v.SetDefault("db_user", "postgres")
	v.SetDefault("db_password", "")
	v.SetDefault("db_name", "gymgoers")
	v.SetDefault("db_sslmode", "disable")
	v.SetDefault("db_auto_migrate", true)

	v.SetDefault("jwt_secret", "")
	v.SetDefault("jwt_expiration_ms", 86400000)
	v.SetDefault("bcrypt_cost", 10)

	v.SetDefault("cors_origins", "http://localhost:5173")
}

func (c *Config) validate() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if c.JWTExpiration <= 0 {
		return fmt.Errorf("JWT_EXPIRATION_MS must be positive")
	}
	switch c.StoreDriver {
	case StorePostgres:
		if c.DBPassword == "" {
			return fmt.Errorf("DB_PASSWORD is required for the postgres store")
		}
	case StoreMemory:
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver)
	}
	return nil
}

func (c *Config) DSN() string {
	return "host=" + c.DBHost +
		" user=" + c.DBUser +
		" password=" + c.DBPassword +
		" dbname=" + c.DBName +
		" port=" + c.DBPort +
		" sslmode=" + c.DBSSLMode +
		" TimeZone=UTC"
}

// MigrateURL is the postgres:// form used by golang-migrate. Credentials
// are escaped so passwords may contain URL delimiters.
func (c *Config) MigrateURL() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.DBUser, c.DBPassword),
		Host:     net.JoinHostPort(c.DBHost, c.DBPort),
		Path:     "/" + c.DBName,
		RawQuery: url.Values{"sslmode": {c.DBSSLMode}}.Encode(),
	}
	return u.String()
}
