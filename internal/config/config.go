package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	Environment string
	ServerPort  string
	MySQLDSN    string
	RedisAddr   string
	RedisDB     int
	RedisPass   string
	JWTSecret   string
	DemoMode    bool

	// Content backend (headless CMS bucket).
	CMSBaseURL  string
	CMSBucket   string
	CMSReadKey  string
	CMSWriteKey string

	// Outbound email.
	PostmarkServerToken  string
	PostmarkAccountToken string
	MailSender           string

	SwaggerHost string
}

// Load builds Config from environment with sensible defaults. A .env file in
// the working directory is applied first when present.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Environment: getEnv("APP_ENV", "development"),
		ServerPort:  getEnv("SERVER_PORT", "8080"),
		MySQLDSN:    getEnv("MYSQL_DSN", "user:password@tcp(localhost:3306)/crm?charset=utf8mb4&parseTime=True&loc=Local"),
		RedisAddr:   getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:     getEnvInt("REDIS_DB", 0),
		RedisPass:   os.Getenv("REDIS_PASSWORD"),
		JWTSecret:   os.Getenv("JWT_SECRET"),
		DemoMode:    getEnvBool("DEMO_MODE", true),

		CMSBaseURL:  getEnv("CMS_BASE_URL", "https://api.cosmicjs.com/v3"),
		CMSBucket:   os.Getenv("CMS_BUCKET_SLUG"),
		CMSReadKey:  os.Getenv("CMS_READ_KEY"),
		CMSWriteKey: os.Getenv("CMS_WRITE_KEY"),

		PostmarkServerToken:  os.Getenv("POSTMARK_SERVER_TOKEN"),
		PostmarkAccountToken: os.Getenv("POSTMARK_ACCOUNT_TOKEN"),
		MailSender:           os.Getenv("MAIL_SENDER"),

		SwaggerHost: os.Getenv("SWAGGER_HOST"),
	}
}

// IsProduction reports whether the service runs with production hardening
// (Secure cookies, etc).
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.ParseBool(v); err == nil {
			return parsed
		}
	}
	return def
}
