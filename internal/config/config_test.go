package config

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	var missing *MissingFileError
	if err != nil {
		require.True(t, errors.As(err, &missing), "unexpected error: %v", err)
	}
	require.NotNil(t, cfg)

	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, "$", cfg.Receipt.Currency)
	assert.Equal(t, "Order Receipt", cfg.Receipt.Title)
	assert.Equal(t, 24*time.Hour, cfg.JWT.ExpiryHours)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_SQLITE_PATH", "/tmp/test.db")
	t.Setenv("RECEIPT_CURRENCY", "€")

	cfg, err := Load()
	if err != nil {
		var missing *MissingFileError
		require.ErrorAs(t, err, &missing)
	}
	assert.Equal(t, "/tmp/test.db", cfg.Database.DSN())
	assert.Equal(t, "€", cfg.Receipt.Currency)
}

func TestLoad_RejectsUnknownDriver(t *testing.T) {
	t.Setenv("DB_DRIVER", "mysql")

	cfg, err := Load()
	assert.Nil(t, cfg)
	assert.Error(t, err)
}

func TestValidate_ProductionSecret(t *testing.T) {
	cfg := &Config{
		App:       AppConfig{Env: "production"},
		Database:  DatabaseConfig{Driver: "postgres"},
		JWT:       JWTConfig{Secret: "change-this-secret-in-production"},
		RateLimit: RateLimitConfig{Requests: 1, Duration: 1},
		Printer:   PrinterConfig{Type: "none"},
	}
	assert.Error(t, cfg.Validate())

	cfg.JWT.Secret = "real"
	assert.NoError(t, cfg.Validate())
}

func TestLoad_Printer(t *testing.T) {
	t.Setenv("PRINTER_TYPE", "network")

	_, err := Load()
	require.Error(t, err)
	var missing *MissingFileError
	assert.False(t, errors.As(err, &missing))

	t.Setenv("PRINTER_ADDRESS", "192.168.1.100:9100")
	cfg, err := Load()
	if err != nil {
		require.ErrorAs(t, err, &missing)
	}
	assert.Equal(t, "192.168.1.100:9100", cfg.Printer.Address)

	t.Setenv("PRINTER_TYPE", "bluetooth")
	_, err = Load()
	assert.Error(t, err)
}

func TestDSN_Postgres(t *testing.T) {
	c := DatabaseConfig{Driver: "postgres", Host: "db", User: "u", Password: "p", Name: "n", Port: "5432", SSLMode: "disable", Timezone: "UTC"}
	assert.Equal(t, "host=db user=u password=p dbname=n port=5432 sslmode=disable TimeZone=UTC", c.DSN())
}
