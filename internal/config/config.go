package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all runtime configuration loaded from environment variables.
type Config struct {
	AppPort        string
	AppEnv         string
	LogLevel       slog.Level
	AWSRegion      string
	AWSEndpointURL string // empty in prod, set to LocalStack URL in dev
	AWSAccessKeyID string
	AWSSecretKey   string

	RateLimitTable  string
	BootstrapTables bool

	RecaptchaSecretParameter string
	RecaptchaVerifyURL       string
	RecaptchaTimeout         time.Duration
	RecaptchaThreshold       float64

	EmailTransport  string // "ses" | "smtp"
	SESFromEmail    string
	SESToEmail      string
	BrandName       string
	DisplayTimezone string
	SMTPHost        string
	SMTPPort        string
	SMTPUsername    string
	SMTPPassword    string

	ArchiveBucket  string // empty disables the S3 archive
	AlertTopicARN  string // empty disables SNS alerts
	AllowedOrigins []string
	TrustedProxies []string // CIDRs or addresses whose forwarding headers are honored
}

// Load reads all configuration from environment variables.
func Load() *Config {
	return &Config{
		AppPort:        getEnv("APP_PORT", "3000"),
		AppEnv:         getEnv("APP_ENV", "development"),
		LogLevel:       getEnvLevel("LOG_LEVEL", slog.LevelInfo),
		AWSRegion:      getEnv("AWS_REGION", "us-east-1"),
		AWSEndpointURL: getEnv("AWS_ENDPOINT_URL", ""),
		AWSAccessKeyID: getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretKey:   getEnv("AWS_SECRET_ACCESS_KEY", ""),

		RateLimitTable:  getEnv("RATE_LIMIT_TABLE_NAME", ""),
		BootstrapTables: getEnvBool("BOOTSTRAP_TABLES", false),

		RecaptchaSecretParameter: getEnv("RECAPTCHA_SECRET_PARAMETER", ""),
		RecaptchaVerifyURL:       getEnv("RECAPTCHA_VERIFY_URL", "https://www.google.com/recaptcha/api/siteverify"),
		RecaptchaTimeout:         getEnvDuration("RECAPTCHA_TIMEOUT", 5*time.Second),
		RecaptchaThreshold:       getEnvFloat("RECAPTCHA_THRESHOLD", 0.5),

		EmailTransport:  strings.ToLower(getEnv("EMAIL_TRANSPORT", "ses")),
		SESFromEmail:    getEnv("SES_FROM_EMAIL", ""),
		SESToEmail:      getEnv("SES_TO_EMAIL", ""),
		BrandName:       getEnv("BRAND_NAME", "I Develop Tech"),
		DisplayTimezone: getEnv("DISPLAY_TIMEZONE", "America/New_York"),
		SMTPHost:        getEnv("SMTP_HOST", "localhost"),
		SMTPPort:        getEnv("SMTP_PORT", "1025"),
		SMTPUsername:    getEnv("SMTP_USERNAME", ""),
		SMTPPassword:    getEnv("SMTP_PASSWORD", ""),

		ArchiveBucket:  getEnv("ARCHIVE_BUCKET", ""),
		AlertTopicARN:  getEnv("ALERT_TOPIC_ARN", ""),
		AllowedOrigins: strings.Split(getEnv("ALLOWED_ORIGINS", "*"), ","),
		TrustedProxies: getEnvList("TRUSTED_PROXIES"),
	}
}

// Validate reports every required setting that is missing. Callers treat a
// non-nil error as fatal at startup.
func (c *Config) Validate() error {
	var missing []string
	required := []struct{ key, val string }{
		{"RATE_LIMIT_TABLE_NAME", c.RateLimitTable},
		{"RECAPTCHA_SECRET_PARAMETER", c.RecaptchaSecretParameter},
		{"SES_FROM_EMAIL", c.SESFromEmail},
		{"SES_TO_EMAIL", c.SESToEmail},
	}
	for _, r := range required {
		if r.val == "" {
			missing = append(missing, r.key)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}
	if c.EmailTransport != "ses" && c.EmailTransport != "smtp" {
		return fmt.Errorf("EMAIL_TRANSPORT must be ses or smtp, got %q", c.EmailTransport)
	}
	if !(c.RecaptchaThreshold > 0 && c.RecaptchaThreshold <= 1) {
		return fmt.Errorf("RECAPTCHA_THRESHOLD must be in (0, 1], got %v", c.RecaptchaThreshold)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvList(key string) []string {
	var out []string
	for _, v := range strings.Split(os.Getenv(key), ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func getEnvLevel(key string, fallback slog.Level) slog.Level {
	if v := os.Getenv(key); v != "" {
		var l slog.Level
		if err := l.UnmarshalText([]byte(v)); err == nil {
			return l
		}
	}
	return fallback
}
