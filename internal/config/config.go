package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type StripeConfig struct {
	SecretKey     string
	WebhookSecret string
}

type EmailConfig struct {
	ResendAPIKey string
	FromAddress  string
	FromName     string
	LeadInbox    string
}

type RateLimitConfig struct {
	Max    int
	Window time.Duration
}

type Config struct {
	Port      string
	BaseURL   string
	PublicDir string
	RedisAddr string
	Stripe    StripeConfig
	Email     EmailConfig
	RateLimit RateLimitConfig
}

// Load builds the configuration once at startup. Components receive the
// struct by reference and never read the environment themselves.
func Load() *Config {
	cfg := &Config{
		Port:      getEnv("PORT", "3000"),
		PublicDir: getEnv("PUBLIC_DIR", "public"),
		RedisAddr: os.Getenv("REDIS_ADDR"),
	}

	cfg.BaseURL = getEnv("BASE_URL", fmt.Sprintf("http://localhost:%s", cfg.Port))

	cfg.Stripe.SecretKey = os.Getenv("STRIPE_SECRET_KEY")
	cfg.Stripe.WebhookSecret = os.Getenv("STRIPE_WEBHOOK_SECRET")

	cfg.Email.ResendAPIKey = os.Getenv("RESEND_API_KEY")
	cfg.Email.FromAddress = os.Getenv("EMAIL_FROM_ADDRESS")
	cfg.Email.FromName = getEnv("EMAIL_FROM_NAME", "DiegoUSA")
	cfg.Email.LeadInbox = os.Getenv("LEAD_INBOX")

	cfg.RateLimit.Max = getEnvInt("RATE_LIMIT_MAX", 90)
	cfg.RateLimit.Window = time.Duration(getEnvInt("RATE_LIMIT_WINDOW_SECONDS", 60)) * time.Second

	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
