package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

const (
	StoreDriverPostgres = "postgres"
	StoreDriverMemory   = "memory"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL    string
	Port           string
	IsProduction   bool
	EnableDBCheck  bool
	StoreDriver    string
	MigrationsPath string

	JWTSecret string
	JWTIssuer string

	// RateLimit uses the limiter format "<limit>-<period>", e.g. "100-M".
	RateLimit          string
	CORSAllowedOrigins []string
	OTLPEndpoint       string

	AccountNumberMaxAttempts int
	AccountNumberBackoff     time.Duration
	DepositCeiling           decimal.Decimal
	StatementPageSize        int
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("ENABLE_DB_CHECK", false)
	v.SetDefault("STORE_DRIVER", StoreDriverPostgres)
	v.SetDefault("MIGRATIONS_PATH", "file://migrations")
	v.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	v.SetDefault("JWT_ISSUER", "bank-ledger")
	v.SetDefault("RATE_LIMIT", "100-M")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	v.SetDefault("OTLP_ENDPOINT", "")
	v.SetDefault("ACCOUNT_NUMBER_MAX_ATTEMPTS", 10)
	v.SetDefault("ACCOUNT_NUMBER_BACKOFF", "5ms")
	v.SetDefault("DEPOSIT_CEILING", "50000")
	v.SetDefault("STATEMENT_PAGE_SIZE", 50)

	v.AutomaticEnv()

	cfg := &Config{
		DatabaseURL:    v.GetString("PGSQL_URL"),
		Port:           v.GetString("PORT"),
		IsProduction:   v.GetBool("IS_PRODUCTION"),
		EnableDBCheck:  v.GetBool("ENABLE_DB_CHECK"),
		StoreDriver:    strings.ToLower(v.GetString("STORE_DRIVER")),
		MigrationsPath: v.GetString("MIGRATIONS_PATH"),
		JWTSecret:      v.GetString("JWT_SECRET"),
		JWTIssuer:      v.GetString("JWT_ISSUER"),
		RateLimit:      v.GetString("RATE_LIMIT"),
		OTLPEndpoint:   v.GetString("OTLP_ENDPOINT"),

		AccountNumberMaxAttempts: v.GetInt("ACCOUNT_NUMBER_MAX_ATTEMPTS"),
		StatementPageSize:        v.GetInt("STATEMENT_PAGE_SIZE"),
	}

	for _, origin := range strings.Split(v.GetString("CORS_ALLOWED_ORIGINS"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, origin)
		}
	}

	switch cfg.StoreDriver {
	case StoreDriverPostgres:
		if cfg.DatabaseURL == "" {
			slog.Warn("PGSQL_URL environment variable not set.")
		}
	case StoreDriverMemory:
	default:
		return nil, fmt.Errorf("unknown STORE_DRIVER %q", cfg.StoreDriver)
	}

	if cfg.IsProduction && cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		slog.Warn("JWT_SECRET is the insecure default. THIS IS NOT FOR PRODUCTION.")
	}

	backoffStr := v.GetString("ACCOUNT_NUMBER_BACKOFF")
	backoff, err := time.ParseDuration(backoffStr)
	if err != nil {
		backoff = 5 * time.Millisecond
		slog.Warn("Invalid value for ACCOUNT_NUMBER_BACKOFF, using default", "value", backoffStr, "default", backoff.String())
	}
	cfg.AccountNumberBackoff = backoff

	if cfg.AccountNumberMaxAttempts < 1 {
		return nil, fmt.Errorf("ACCOUNT_NUMBER_MAX_ATTEMPTS must be at least 1, got %d", cfg.AccountNumberMaxAttempts)
	}
	if cfg.StatementPageSize < 1 {
		cfg.StatementPageSize = 50
	}

	ceiling, err := decimal.NewFromString(v.GetString("DEPOSIT_CEILING"))
	if err != nil || !ceiling.IsPositive() {
		return nil, fmt.Errorf("invalid DEPOSIT_CEILING %q", v.GetString("DEPOSIT_CEILING"))
	}
	cfg.DepositCeiling = ceiling

	return cfg, nil
}
