package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

type Config struct {
	Database DatabaseConfig
	JWT      JWTConfig
	App      AppConfig
	Payroll  PayrollConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string
	AccessExpiration string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port     int
	Env      string
	LogLevel string
}

// PayrollConfig holds the payroll policy constants. The flat 30-day divisor
// and flat tax rate are policy values, not derived from the calendar, so a
// period-aware rate or tax brackets can replace them without touching the
// aggregation code.
type PayrollConfig struct {
	// DailyRateDivisor divides the monthly basic salary into a daily rate
	// regardless of how many days the period actually spans.
	DailyRateDivisor int64
	// TaxRate is a flat fraction of the basic salary, independent of period
	// length.
	TaxRate decimal.Decimal
	// StrictTransitions enforces the draft -> finalized -> paid ordering on
	// status updates. When false any status value is accepted, matching the
	// legacy behavior.
	StrictTransitions bool
}

func Load() (*Config, error) {
	// A missing .env is fine; real deployments set env vars directly.
	_ = godotenv.Load()

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "payroll"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:     appPort,
		Env:      getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret:           getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration: getEnv("JWT_ACCESS_EXPIRATION_TIME", "1h"),
	}

	// Payroll policy configuration
	divisor, err := strconv.ParseInt(getEnv("PAYROLL_DAILY_RATE_DIVISOR", "30"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid PAYROLL_DAILY_RATE_DIVISOR: %w", err)
	}
	taxRate, err := decimal.NewFromString(getEnv("PAYROLL_TAX_RATE", "0.05"))
	if err != nil {
		return nil, fmt.Errorf("invalid PAYROLL_TAX_RATE: %w", err)
	}
	strict, err := strconv.ParseBool(getEnv("PAYROLL_STRICT_TRANSITIONS", "true"))
	if err != nil {
		return nil, fmt.Errorf("invalid PAYROLL_STRICT_TRANSITIONS: %w", err)
	}

	config.Payroll = PayrollConfig{
		DailyRateDivisor:  divisor,
		TaxRate:           taxRate,
		StrictTransitions: strict,
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if c.Payroll.DailyRateDivisor <= 0 {
		return fmt.Errorf("PAYROLL_DAILY_RATE_DIVISOR must be positive")
	}
	if c.Payroll.TaxRate.IsNegative() {
		return fmt.Errorf("PAYROLL_TAX_RATE must be non-negative")
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
