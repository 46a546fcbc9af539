package app

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/aussiebroadwan/identity/pkg/jwtx"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"

	MailModeLog  = "log"
	MailModeSMTP = "smtp"
)

type Config struct {
	Issuer         string        `env:"IDENTITY_ISSUER"          envDefault:"aussiebroadwan-identity"`
	Algorithm      string        `env:"IDENTITY_TOKEN_ALGORITHM" envDefault:"HS256"`
	TokenSecret    string        `env:"IDENTITY_TOKEN_SECRET"`
	SigningKeyFile string        `env:"IDENTITY_SIGNING_KEY_FILE"` // Ed25519 PKCS8 PEM; generated per process when empty
	SessionTTL     time.Duration `env:"IDENTITY_SESSION_TTL"     envDefault:"24h"`
	ResetTTL       time.Duration `env:"IDENTITY_RESET_TTL"       envDefault:"24h"`
	BootstrapToken string        `env:"BOOTSTRAP_TOKEN"` // empty disables bootstrap

	DatabaseDriver string `env:"IDENTITY_DATABASE_DRIVER" envDefault:"sqlite"`
	DatabaseFile   string `env:"IDENTITY_DATABASE_FILE"   envDefault:"identity.db"`
	DatabaseURL    string `env:"IDENTITY_DATABASE_URL"`
	PepperFile     string `env:"IDENTITY_PEPPER_FILE"     envDefault:"pepper"`

	AppName       string `env:"IDENTITY_APP_NAME"       envDefault:"Identity"`
	FrontendURL   string `env:"IDENTITY_FRONTEND_URL"   envDefault:"http://localhost:3000"`
	MailMode      string `env:"IDENTITY_MAIL_MODE"      envDefault:"log"`
	MailFrom      string `env:"IDENTITY_MAIL_FROM"`
	SMTPHost      string `env:"IDENTITY_SMTP_HOST"`
	SMTPPort      int    `env:"IDENTITY_SMTP_PORT"      envDefault:"587"`
	SMTPUsername  string `env:"IDENTITY_SMTP_USERNAME"`
	SMTPPassword  string `env:"IDENTITY_SMTP_PASSWORD"`
	NotifyWorkers int    `env:"IDENTITY_NOTIFY_WORKERS" envDefault:"2"`
	NotifyQueue   int    `env:"IDENTITY_NOTIFY_QUEUE"   envDefault:"100"`

	Env                  string        `env:"ENV"                   envDefault:"dev"`
	LogLevel             string        `env:"LOG_LEVEL"             envDefault:"info"`
	LogFormat            string        `env:"LOG_FORMAT"            envDefault:"json"`
	Port                 int           `env:"PORT"                  envDefault:"8080"`
	ShutdownGracePeriod  time.Duration `env:"SHUTDOWN_GRACE_PERIOD" envDefault:"10s"`
	HousekeepingInterval time.Duration `env:"HOUSEKEEPING_INTERVAL" envDefault:"1h"`
}

// LoadConfig reads the configuration from the environment and validates it.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	cfg.DatabaseDriver = strings.ToLower(strings.TrimSpace(cfg.DatabaseDriver))
	cfg.MailMode = strings.ToLower(strings.TrimSpace(cfg.MailMode))
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports every configuration problem at once.
func (c Config) Validate() error {
	var errs []error

	switch c.Algorithm {
	case jwtx.AlgorithmHS256:
		if len(c.TokenSecret) < jwtx.MinHS256SecretLen {
			errs = append(errs, fmt.Errorf("IDENTITY_TOKEN_SECRET must be at least %d bytes for HS256", jwtx.MinHS256SecretLen))
		}
	case jwtx.AlgorithmEdDSA:
	default:
		errs = append(errs, fmt.Errorf("IDENTITY_TOKEN_ALGORITHM %q is not supported (HS256, EdDSA)", c.Algorithm))
	}

	switch c.DatabaseDriver {
	case DriverSQLite:
		if c.DatabaseFile == "" {
			errs = append(errs, errors.New("IDENTITY_DATABASE_FILE is required for sqlite"))
		}
	case DriverPostgres:
		if c.DatabaseURL == "" {
			errs = append(errs, errors.New("IDENTITY_DATABASE_URL is required for postgres"))
		}
	default:
		errs = append(errs, fmt.Errorf("IDENTITY_DATABASE_DRIVER %q is not supported (sqlite, postgres)", c.DatabaseDriver))
	}

	switch c.MailMode {
	case MailModeLog:
	case MailModeSMTP:
		if c.SMTPHost == "" || c.MailFrom == "" {
			errs = append(errs, errors.New("IDENTITY_SMTP_HOST and IDENTITY_MAIL_FROM are required for smtp mail"))
		}
	default:
		errs = append(errs, fmt.Errorf("IDENTITY_MAIL_MODE %q is not supported (log, smtp)", c.MailMode))
	}

	if u, err := url.Parse(c.FrontendURL); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, fmt.Errorf("IDENTITY_FRONTEND_URL %q must be an absolute URL", c.FrontendURL))
	}
	if c.SessionTTL <= 0 {
		errs = append(errs, errors.New("IDENTITY_SESSION_TTL must be positive"))
	}
	if c.ResetTTL <= 0 {
		errs = append(errs, errors.New("IDENTITY_RESET_TTL must be positive"))
	}
	if c.Port <= 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("PORT %d is out of range", c.Port))
	}

	return errors.Join(errs...)
}
