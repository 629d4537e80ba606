package config

import (
	"flag"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the runtime configuration of the service.
type Config struct {
	RunAddress  string
	DatabaseURI string

	JWTSecret       string
	TokenExpiration time.Duration

	UploadDir    string
	UploadSecret string

	ResendAPIKey     string
	MailFrom         string
	ContactRecipient string

	PayPalBaseURL  string
	PayPalClientID string
	PayPalSecret   string

	ShippingSettingsFile string
}

// Load reads configuration from command-line flags and environment
// variables. Priority: environment variables > flags > defaults.
// A .env file in the working directory is loaded first when present.
func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{}

	flag.StringVar(&cfg.RunAddress, "a", "localhost:8080", "address and port to listen on")
	flag.StringVar(&cfg.DatabaseURI, "d", "", "PostgreSQL connection string")
	flag.StringVar(&cfg.UploadDir, "u", "uploads", "directory for uploaded photos")
	flag.StringVar(&cfg.ShippingSettingsFile, "s", "shipping_settings.json", "path to the shipping tariffs file")
	flag.Parse()

	if env := os.Getenv("RUN_ADDRESS"); env != "" {
		cfg.RunAddress = env
	}
	if env := os.Getenv("DATABASE_URI"); env != "" {
		cfg.DatabaseURI = env
	}
	if env := os.Getenv("UPLOAD_DIR"); env != "" {
		cfg.UploadDir = env
	}
	if env := os.Getenv("SHIPPING_SETTINGS_FILE"); env != "" {
		cfg.ShippingSettingsFile = env
	}

	cfg.JWTSecret = os.Getenv("JWT_SECRET")
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = "default-secret-change-in-production"
	}
	cfg.TokenExpiration = 24 * time.Hour

	cfg.UploadSecret = os.Getenv("UPLOAD_SECRET")
	if cfg.UploadSecret == "" {
		cfg.UploadSecret = cfg.JWTSecret
	}

	cfg.ResendAPIKey = os.Getenv("RESEND_API_KEY")
	cfg.MailFrom = os.Getenv("MAIL_FROM")
	if cfg.MailFrom == "" {
		cfg.MailFrom = "TAGADOU <contact@tagadou.fr>"
	}
	cfg.ContactRecipient = os.Getenv("CONTACT_RECIPIENT")
	if cfg.ContactRecipient == "" {
		cfg.ContactRecipient = "contact@tagadou.fr"
	}

	cfg.PayPalBaseURL = os.Getenv("PAYPAL_BASE_URL")
	if cfg.PayPalBaseURL == "" {
		cfg.PayPalBaseURL = "https://api-m.sandbox.paypal.com"
	}
	cfg.PayPalClientID = os.Getenv("PAYPAL_CLIENT_ID")
	cfg.PayPalSecret = os.Getenv("PAYPAL_SECRET")

	return cfg
}
