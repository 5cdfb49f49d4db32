package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPAddr string
	Env      string

	MongoURI string
	MongoDB  string

	JWTSecret string
	AccessTTL time.Duration

	SMTPHost string
	SMTPPort int
	SMTPUser string
	SMTPPass string
	SMTPFrom string

	BroadcastPassword string

	MailchimpAPIKey       string
	MailchimpServerPrefix string
	MailchimpAudienceID   string

	CORSOrigins string
}

func Load() Config {
	// .env is for local runs; in production everything comes from the environment
	_ = godotenv.Load()

	return Config{
		HTTPAddr: getenv("HTTP_ADDR", ":5000"),
		Env:      os.Getenv("APP_ENV"),

		MongoURI: getenv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:  getenv("MONGO_DB", "hoob"),

		JWTSecret: getenv("JWT_SECRET", "super-secret"),
		AccessTTL: getdur("JWT_TTL", 7*24*time.Hour),

		SMTPHost: getenv("SMTP_HOST", "localhost"),
		SMTPPort: getint("SMTP_PORT", 587),
		SMTPUser: os.Getenv("SMTP_USER"),
		SMTPPass: os.Getenv("SMTP_PASS"),
		SMTPFrom: getenv("SMTP_FROM", "no-reply@hoob.africa"),

		BroadcastPassword: os.Getenv("ADMIN_BROADCAST_PASSWORD"),

		MailchimpAPIKey:       os.Getenv("MAILCHIMP_API_KEY"),
		MailchimpServerPrefix: os.Getenv("MAILCHIMP_SERVER_PREFIX"),
		MailchimpAudienceID:   os.Getenv("MAILCHIMP_AUDIENCE_ID"),

		CORSOrigins: getenv("CORS_ORIGINS", "*"),
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getint(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getdur(k string, def time.Duration) time.Duration {
	if v := os.Getenv(k); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
