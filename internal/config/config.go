package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	JWT       JWTConfig
	CORS      CORSConfig
	RateLimit RateLimitConfig
	Receipt   ReceiptConfig
	Printer   PrinterConfig
	Admin     AdminConfig
}

type AppConfig struct {
	Name  string
	Env   string
	Port  string
	Debug bool
}

type DatabaseConfig struct {
	// Driver is "postgres" or "sqlite"
	Driver     string
	Host       string
	Port       string
	Name       string
	User       string
	Password   string
	SSLMode    string
	Timezone   string
	SQLitePath string
}

type JWTConfig struct {
	Secret             string
	ExpiryHours        time.Duration
	RefreshExpiryHours time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
}

type RateLimitConfig struct {
	Requests int
	Duration int
}

type ReceiptConfig struct {
	Currency    string
	Title       string
	TicketWidth int
}

// PrinterConfig addresses the receipt printer. Type is usb, network or none.
type PrinterConfig struct {
	Type       string
	DevicePath string
	Address    string
}

// AdminConfig is the back-office account created on first start
type AdminConfig struct {
	Name     string
	Email    string
	Password string
}

// Load reads .env when present, then the environment. Every key has a default.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()

	// a missing .env is fine, environment variables still apply
	readErr := v.ReadInConfig()

	setDefaults(v)

	cfg := &Config{
		App: AppConfig{
			Name:  v.GetString("APP_NAME"),
			Env:   v.GetString("APP_ENV"),
			Port:  v.GetString("APP_PORT"),
			Debug: v.GetBool("APP_DEBUG"),
		},
		Database: DatabaseConfig{
			Driver:     v.GetString("DB_DRIVER"),
			Host:       v.GetString("DB_HOST"),
			Port:       v.GetString("DB_PORT"),
			Name:       v.GetString("DB_NAME"),
			User:       v.GetString("DB_USER"),
			Password:   v.GetString("DB_PASSWORD"),
			SSLMode:    v.GetString("DB_SSL_MODE"),
			Timezone:   v.GetString("DB_TIMEZONE"),
			SQLitePath: v.GetString("DB_SQLITE_PATH"),
		},
		JWT: JWTConfig{
			Secret:             v.GetString("JWT_SECRET"),
			ExpiryHours:        time.Duration(v.GetInt("JWT_EXPIRY_HOURS")) * time.Hour,
			RefreshExpiryHours: time.Duration(v.GetInt("JWT_REFRESH_EXPIRY_HOURS")) * time.Hour,
		},
		CORS: CORSConfig{
			AllowedOrigins: v.GetStringSlice("CORS_ALLOWED_ORIGINS"),
			AllowedMethods: v.GetStringSlice("CORS_ALLOWED_METHODS"),
			AllowedHeaders: v.GetStringSlice("CORS_ALLOWED_HEADERS"),
		},
		RateLimit: RateLimitConfig{
			Requests: v.GetInt("RATE_LIMIT_REQUESTS"),
			Duration: v.GetInt("RATE_LIMIT_DURATION"),
		},
		Receipt: ReceiptConfig{
			Currency:    v.GetString("RECEIPT_CURRENCY"),
			Title:       v.GetString("RECEIPT_TITLE"),
			TicketWidth: v.GetInt("RECEIPT_TICKET_WIDTH"),
		},
		Printer: PrinterConfig{
			Type:       v.GetString("PRINTER_TYPE"),
			DevicePath: v.GetString("PRINTER_DEVICE_PATH"),
			Address:    v.GetString("PRINTER_ADDRESS"),
		},
		Admin: AdminConfig{
			Name:     v.GetString("ADMIN_NAME"),
			Email:    v.GetString("ADMIN_EMAIL"),
			Password: v.GetString("ADMIN_PASSWORD"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if readErr != nil {
		return cfg, &MissingFileError{Err: readErr}
	}
	return cfg, nil
}

// MissingFileError is returned together with a usable Config when .env
// could not be read.
type MissingFileError struct {
	Err error
}

func (e *MissingFileError) Error() string {
	return ".env not loaded, using environment variables: " + e.Err.Error()
}

func (e *MissingFileError) Unwrap() error {
	return e.Err
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_NAME", "commandes-api")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("APP_DEBUG", false)
	v.SetDefault("DB_DRIVER", "postgres")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_NAME", "commandes")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_TIMEZONE", "UTC")
	v.SetDefault("DB_SQLITE_PATH", "commandes.db")
	v.SetDefault("JWT_SECRET", "change-this-secret-in-production")
	v.SetDefault("JWT_EXPIRY_HOURS", 24)
	v.SetDefault("JWT_REFRESH_EXPIRY_HOURS", 168)
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	v.SetDefault("CORS_ALLOWED_HEADERS", []string{})
	v.SetDefault("RATE_LIMIT_REQUESTS", 100)
	v.SetDefault("RATE_LIMIT_DURATION", 60)
	v.SetDefault("RECEIPT_CURRENCY", "$")
	v.SetDefault("RECEIPT_TITLE", "Order Receipt")
	v.SetDefault("RECEIPT_TICKET_WIDTH", 32)
	v.SetDefault("PRINTER_TYPE", "none")
	v.SetDefault("PRINTER_DEVICE_PATH", "/dev/usb/lp0")
	v.SetDefault("PRINTER_ADDRESS", "")
	v.SetDefault("ADMIN_NAME", "Administrator")
	v.SetDefault("ADMIN_EMAIL", "admin@example.com")
	v.SetDefault("ADMIN_PASSWORD", "password")
}

// Validate rejects settings the server cannot start with
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.Database.Driver)
	}
	switch c.Printer.Type {
	case "none", "usb", "network":
	default:
		return fmt.Errorf("unsupported PRINTER_TYPE %q", c.Printer.Type)
	}
	if c.Printer.Type == "network" && c.Printer.Address == "" {
		return fmt.Errorf("PRINTER_ADDRESS is required for a network printer")
	}
	if c.App.Env == "production" && c.JWT.Secret == "change-this-secret-in-production" {
		return fmt.Errorf("JWT_SECRET must be set in production")
	}
	if c.RateLimit.Duration <= 0 || c.RateLimit.Requests <= 0 {
		return fmt.Errorf("RATE_LIMIT_REQUESTS and RATE_LIMIT_DURATION must be positive")
	}
	return nil
}

// DSN returns the connection string for the configured driver
func (c *DatabaseConfig) DSN() string {
	if c.Driver == "sqlite" {
		return c.SQLitePath
	}
	return "host=" + c.Host +
		" user=" + c.User +
		" password=" + c.Password +
		" dbname=" + c.Name +
		" port=" + c.Port +
		" sslmode=" + c.SSLMode +
		" TimeZone=" + c.Timezone
}
