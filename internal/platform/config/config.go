package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	EnableDBCheck bool

	// Token signing
	JWTSecret          string
	JWTIssuer          string
	AccessTokenExpiry  time.Duration
	RefreshTokenExpiry time.Duration
	EmailTokenExpiry   time.Duration

	// Identity cache
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	UserCacheTTL  time.Duration

	// Outbound email
	ResendAPIKey string
	MailFrom     string

	// Avatar storage
	CloudinaryURL string

	// Public base URL used in confirmation links
	AppBaseURL string

	PosthogAPIKey string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_ISSUER", "contacts-api")
	viper.SetDefault("ACCESS_TOKEN_EXPIRY", "15m")
	viper.SetDefault("REFRESH_TOKEN_EXPIRY", "336h") // 14 days
	viper.SetDefault("EMAIL_TOKEN_EXPIRY", "168h")   // 7 days
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("USER_CACHE_TTL", "900s")
	viper.SetDefault("RESEND_API_KEY", "")
	viper.SetDefault("MAIL_FROM", "noreply@contacts-api.local")
	viper.SetDefault("CLOUDINARY_URL", "")
	viper.SetDefault("APP_BASE_URL", "http://localhost:8080")
	viper.SetDefault("POSTHOG_API_KEY", "")

	// Environment variables override defaults and any .env values.
	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}
	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")

	cfg.AccessTokenExpiry = parseDurationOrDefault("ACCESS_TOKEN_EXPIRY", 15*time.Minute)
	cfg.RefreshTokenExpiry = parseDurationOrDefault("REFRESH_TOKEN_EXPIRY", 14*24*time.Hour)
	cfg.EmailTokenExpiry = parseDurationOrDefault("EMAIL_TOKEN_EXPIRY", 7*24*time.Hour)
	cfg.UserCacheTTL = parseDurationOrDefault("USER_CACHE_TTL", 900*time.Second)

	cfg.RedisAddr = viper.GetString("REDIS_ADDR")
	cfg.RedisPassword = viper.GetString("REDIS_PASSWORD")
	cfg.RedisDB = viper.GetInt("REDIS_DB")

	cfg.ResendAPIKey = viper.GetString("RESEND_API_KEY")
	if cfg.ResendAPIKey == "" {
		log.Println("Warning: RESEND_API_KEY not set. Confirmation emails will not be sent.")
	}
	cfg.MailFrom = viper.GetString("MAIL_FROM")

	cfg.CloudinaryURL = viper.GetString("CLOUDINARY_URL")
	if cfg.CloudinaryURL == "" {
		log.Println("Warning: CLOUDINARY_URL not set. Avatar upload will not function.")
	}

	cfg.AppBaseURL = viper.GetString("APP_BASE_URL")
	cfg.PosthogAPIKey = viper.GetString("POSTHOG_API_KEY")

	return cfg, nil
}

func parseDurationOrDefault(key string, fallback time.Duration) time.Duration {
	raw := viper.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil {
		if raw != "" {
			log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, fallback.String())
		}
		return fallback
	}
	return d
}
