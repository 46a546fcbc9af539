package app

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("IDENTITY_TOKEN_SECRET", testSecret)

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, "HS256", cfg.Algorithm)
	require.Equal(t, DriverSQLite, cfg.DatabaseDriver)
	require.Equal(t, "identity.db", cfg.DatabaseFile)
	require.Equal(t, MailModeLog, cfg.MailMode)
	require.Equal(t, 24*time.Hour, cfg.SessionTTL)
	require.Equal(t, 24*time.Hour, cfg.ResetTTL)
	require.Equal(t, 8080, cfg.Port)
	require.Equal(t, 10*time.Second, cfg.ShutdownGracePeriod)
	require.Equal(t, time.Hour, cfg.HousekeepingInterval)
	require.Empty(t, cfg.BootstrapToken)
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("IDENTITY_TOKEN_ALGORITHM", "EdDSA")
	t.Setenv("IDENTITY_DATABASE_DRIVER", "Postgres")
	t.Setenv("IDENTITY_DATABASE_URL", "postgres://identity@db/identity")
	t.Setenv("IDENTITY_MAIL_MODE", "SMTP")
	t.Setenv("IDENTITY_SMTP_HOST", "smtp.example.com")
	t.Setenv("IDENTITY_MAIL_FROM", "no-reply@example.com")
	t.Setenv("IDENTITY_RESET_TTL", "2h")
	t.Setenv("BOOTSTRAP_TOKEN", "let-me-in")
	t.Setenv("PORT", "9090")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, DriverPostgres, cfg.DatabaseDriver)
	require.Equal(t, MailModeSMTP, cfg.MailMode)
	require.Equal(t, 2*time.Hour, cfg.ResetTTL)
	require.Equal(t, "let-me-in", cfg.BootstrapToken)
	require.Equal(t, 9090, cfg.Port)
}

func TestLoadConfigRejectsBadDuration(t *testing.T) {
	t.Setenv("IDENTITY_TOKEN_SECRET", testSecret)
	t.Setenv("IDENTITY_SESSION_TTL", "forever")

	_, err := LoadConfig()
	require.Error(t, err)
}

func TestConfigValidate(t *testing.T) {
	t.Parallel()

	valid := func() Config {
		return Config{
			Issuer:         "identity",
			Algorithm:      "HS256",
			TokenSecret:    testSecret,
			SessionTTL:     time.Hour,
			ResetTTL:       24 * time.Hour,
			DatabaseDriver: DriverSQLite,
			DatabaseFile:   "identity.db",
			FrontendURL:    "https://app.example.com",
			MailMode:       MailModeLog,
			Port:           8080,
		}
	}

	tests := []struct {
		name   string
		mutate func(c *Config)
		want   string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "short secret", mutate: func(c *Config) { c.TokenSecret = "short" }, want: "IDENTITY_TOKEN_SECRET"},
		{name: "eddsa needs no secret", mutate: func(c *Config) { c.Algorithm = "EdDSA"; c.TokenSecret = "" }},
		{name: "unknown algorithm", mutate: func(c *Config) { c.Algorithm = "RS256" }, want: "IDENTITY_TOKEN_ALGORITHM"},
		{name: "postgres without url", mutate: func(c *Config) { c.DatabaseDriver = DriverPostgres }, want: "IDENTITY_DATABASE_URL"},
		{name: "unknown driver", mutate: func(c *Config) { c.DatabaseDriver = "mysql" }, want: "IDENTITY_DATABASE_DRIVER"},
		{name: "smtp without host", mutate: func(c *Config) { c.MailMode = MailModeSMTP }, want: "IDENTITY_SMTP_HOST"},
		{name: "relative frontend", mutate: func(c *Config) { c.FrontendURL = "/app" }, want: "IDENTITY_FRONTEND_URL"},
		{name: "zero reset ttl", mutate: func(c *Config) { c.ResetTTL = 0 }, want: "IDENTITY_RESET_TTL"},
		{name: "bad port", mutate: func(c *Config) { c.Port = 70000 }, want: "PORT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := valid()
			tt.mutate(&c)
			err := c.Validate()
			if tt.want == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			require.True(t, strings.Contains(err.Error(), tt.want), err.Error())
		})
	}
}
