package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port        string `envconfig:"PORT" default:"8080"`
	Env         string `envconfig:"ENV" default:"development"`
	DatabaseURL string `envconfig:"DATABASE_URL" required:"true"`

	EmailDomain  string   `envconfig:"EMAIL_DOMAIN" default:"stanford.edu"`
	MonthlyLimit int      `envconfig:"MONTHLY_LIMIT" default:"3"`
	ExemptEmails []string `envconfig:"EXEMPT_EMAILS" default:"dkiss@stanford.edu"`

	SendGridAPIKey    string   `envconfig:"SENDGRID_API_KEY"`
	SendGridFromEmail string   `envconfig:"SENDGRID_FROM_EMAIL"`
	SendGridFromName  string   `envconfig:"SENDGRID_FROM_NAME" default:"Campus Bikes"`
	AdminEmails       []string `envconfig:"ADMIN_EMAILS"`

	TwilioAccountSID string `envconfig:"TWILIO_ACCOUNT_SID"`
	TwilioAuthToken  string `envconfig:"TWILIO_AUTH_TOKEN"`
	TwilioFromNumber string `envconfig:"TWILIO_FROM_NUMBER"`
	AdminPhone       string `envconfig:"ADMIN_PHONE"`

	NotifyTimeout time.Duration `envconfig:"NOTIFY_TIMEOUT" default:"10s"`

	JWTSecret string        `envconfig:"JWT_SECRET"`
	JWTTTL    time.Duration `envconfig:"JWT_TTL" default:"1h"`

	AllowedOrigins   []string `envconfig:"ALLOWED_ORIGINS" default:"*"`
	BookingsPerMin   int      `envconfig:"BOOKINGS_PER_MIN" default:"20"`
	TrustProxy       bool     `envconfig:"TRUST_PROXY" default:"false"`
	ReminderSchedule string   `envconfig:"REMINDER_SCHEDULE" default:"0 18 * * *"`
	TimeZone         string   `envconfig:"TIME_ZONE" default:"America/Los_Angeles"`
}

// Load reads an optional .env file and then the process environment.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	if cfg.MonthlyLimit <= 0 {
		return Config{}, fmt.Errorf("load config: MONTHLY_LIMIT must be positive, got %d", cfg.MonthlyLimit)
	}
	if cfg.NotifyTimeout <= 0 {
		return Config{}, fmt.Errorf("load config: NOTIFY_TIMEOUT must be positive")
	}
	cfg.EmailDomain = strings.ToLower(strings.TrimSpace(cfg.EmailDomain))
	cfg.ExemptEmails = cleanList(cfg.ExemptEmails)
	cfg.AdminEmails = cleanList(cfg.AdminEmails)
	return cfg, nil
}

func (c Config) IsProduction() bool {
	return c.Env == "production"
}

func (c Config) EmailEnabled() bool {
	return c.SendGridAPIKey != "" && c.SendGridFromEmail != ""
}

func (c Config) SMSEnabled() bool {
	return c.TwilioAccountSID != "" && c.TwilioAuthToken != "" && c.TwilioFromNumber != "" && c.AdminPhone != ""
}

// Location falls back to UTC when TIME_ZONE cannot be loaded.
func (c Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func cleanList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, v := range in {
		v = strings.ToLower(strings.TrimSpace(v))
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}
