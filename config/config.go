package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Addr    string `env:"SITE_ADDR" envDefault:":8080"`
	GinMode string `env:"GIN_MODE" envDefault:"debug"`

	ContactEndpoint    string `env:"CONTACT_ENDPOINT" envDefault:"https://formspree.io/f/xdkogkqw"`
	EnrollmentEndpoint string `env:"FORMSPREE_ENDPOINT"`

	AllowedHosts           []string      `env:"ALLOWED_HOSTS" envSeparator:","`
	RateLimitPerMinute     float64       `env:"RATE_LIMIT_PER_MINUTE" envDefault:"30"`
	EditRateLimitPerMinute float64       `env:"EDIT_RATE_LIMIT_PER_MINUTE" envDefault:"1200"`
	SessionTTL             time.Duration `env:"SESSION_TTL" envDefault:"2h"`
	CleanupInterval        time.Duration `env:"CLEANUP_INTERVAL" envDefault:"10m"`
	CookieSecure           bool          `env:"COOKIE_SECURE" envDefault:"false"`

	TurnstileSecret  string `env:"TURNSTILE_SECRET_KEY"`
	TurnstileSiteKey string `env:"TURNSTILE_SITE_KEY"`
	TestToken        string `env:"TEST_TOKEN"`
}

// Load reads envFile into the process environment when it exists and then
// parses the environment. A missing file is not an error.
func Load(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	}
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

func (c Config) Release() bool {
	return c.GinMode == "release"
}

func (c Config) Validate() error {
	var errs []error
	if c.SessionTTL <= 0 {
		errs = append(errs, errors.New("SESSION_TTL must be positive"))
	}
	if c.CleanupInterval <= 0 {
		errs = append(errs, errors.New("CLEANUP_INTERVAL must be positive"))
	}
	if c.RateLimitPerMinute <= 0 {
		errs = append(errs, errors.New("RATE_LIMIT_PER_MINUTE must be positive"))
	}
	if c.EditRateLimitPerMinute <= 0 {
		errs = append(errs, errors.New("EDIT_RATE_LIMIT_PER_MINUTE must be positive"))
	}
	if err := checkEndpoint("CONTACT_ENDPOINT", c.ContactEndpoint); err != nil {
		errs = append(errs, err)
	}
	if err := checkEndpoint("FORMSPREE_ENDPOINT", c.EnrollmentEndpoint); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// An empty endpoint is allowed; submissions to it fail at send time.
func checkEndpoint(name, raw string) error {
	if raw == "" {
		return nil
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" || u.Host == "" {
		return fmt.Errorf("%s: %q is not an absolute http(s) URL", name, raw)
	}
	return nil
}
