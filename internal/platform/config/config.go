package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL  string
	RedisURL     string
	Port         string
	IsProduction bool
	Debug        bool

	// Access and refresh tokens are signed with distinct secrets; a token of
	// one class never validates against the other key.
	JWTSecret                  string
	JWTExpiryDuration          time.Duration
	JWTIssuer                  string
	JWTRefreshSecret           string
	RefreshTokenExpiryDuration time.Duration

	// Outbound email (verification / password reset OTPs)
	SMTPHost string
	SMTPPort string
	SMTPUser string
	SMTPPass string
	SMTPFrom string

	// Amazon Selling Partner OAuth
	AmazonClientID     string `mapstructure:"AMAZON_CLIENT_ID"`
	AmazonClientSecret string `mapstructure:"AMAZON_CLIENT_SECRET"`
	AmazonRedirectURI  string `mapstructure:"AMAZON_REDIRECT_URI"`
	// AmazonTokenURL is overridable so tests can point the exchange at a
	// local server.
	AmazonTokenURL  string `mapstructure:"AMAZON_TOKEN_URL"`
	FrontendBaseURL string `mapstructure:"FRONTEND_BASE_URL"`

	PosthogAPIKey string `mapstructure:"POSTHOG_API_KEY"`
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("REDIS_URL", "redis://localhost:6379/0")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_EXPIRY_DURATION", "1h")
	viper.SetDefault("JWT_ISSUER", "auth-backend")
	viper.SetDefault("JWT_REFRESH_SECRET", "default_insecure_refresh_secret_please_change_this_!@#$")
	viper.SetDefault("REFRESH_TOKEN_EXPIRY_DURATION", "168h")
	viper.SetDefault("SMTP_HOST", "")
	viper.SetDefault("SMTP_PORT", "587")
	viper.SetDefault("SMTP_USER", "")
	viper.SetDefault("SMTP_PASS", "")
	viper.SetDefault("SMTP_FROM", "noreply@sellerpulse.dev")
	viper.SetDefault("AMAZON_CLIENT_ID", "")
	viper.SetDefault("AMAZON_CLIENT_SECRET", "")
	viper.SetDefault("AMAZON_REDIRECT_URI", "")
	viper.SetDefault("AMAZON_TOKEN_URL", "https://api.amazon.com/auth/o2/token")
	viper.SetDefault("FRONTEND_BASE_URL", "http://localhost:3000")
	viper.SetDefault("POSTHOG_API_KEY", "")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.RedisURL = viper.GetString("REDIS_URL")

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	jwtSecret := viper.GetString("JWT_SECRET")
	if jwtSecret == "" {
		jwtSecret = "a-very-secret-key-should-be-longer-and-random" // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	jwtExpiryStr := viper.GetString("JWT_EXPIRY_DURATION")
	jwtExpiryDuration, err := time.ParseDuration(jwtExpiryStr)
	if err != nil {
		jwtExpiryDuration = time.Hour * 1
		if jwtExpiryStr != "" {
			log.Printf("Warning: Invalid value for JWT_EXPIRY_DURATION ('%s'). Defaulting to %s.\n", jwtExpiryStr, jwtExpiryDuration.String())
		}
	}

	jwtIssuer := viper.GetString("JWT_ISSUER")
	if jwtIssuer == "" {
		jwtIssuer = "auth-backend"
		log.Printf("Warning: JWT_ISSUER not set. Defaulting to %s.\n", jwtIssuer)
	}

	jwtRefreshSecret := viper.GetString("JWT_REFRESH_SECRET")
	if jwtRefreshSecret == "" {
		log.Println("Warning: JWT_REFRESH_SECRET is not set, using default insecure secret. THIS IS NOT FOR PRODUCTION.")
		jwtRefreshSecret = "default_insecure_refresh_secret_please_change_this_!@#$"
	}

	refreshTokenExpiryStr := viper.GetString("REFRESH_TOKEN_EXPIRY_DURATION")
	refreshTokenExpiryDuration, err := time.ParseDuration(refreshTokenExpiryStr)
	if err != nil {
		refreshTokenExpiryDuration = time.Hour * 24 * 7
		if refreshTokenExpiryStr != "" {
			log.Printf("Warning: Invalid value for REFRESH_TOKEN_EXPIRY_DURATION ('%s'). Defaulting to %s.\n", refreshTokenExpiryStr, refreshTokenExpiryDuration.String())
		}
	}

	cfg.SMTPHost = viper.GetString("SMTP_HOST")
	cfg.SMTPPort = viper.GetString("SMTP_PORT")
	cfg.SMTPUser = viper.GetString("SMTP_USER")
	cfg.SMTPPass = viper.GetString("SMTP_PASS")
	cfg.SMTPFrom = viper.GetString("SMTP_FROM")

	cfg.AmazonClientID = viper.GetString("AMAZON_CLIENT_ID")
	cfg.AmazonClientSecret = viper.GetString("AMAZON_CLIENT_SECRET")
	cfg.AmazonRedirectURI = viper.GetString("AMAZON_REDIRECT_URI")
	cfg.AmazonTokenURL = viper.GetString("AMAZON_TOKEN_URL")
	cfg.FrontendBaseURL = viper.GetString("FRONTEND_BASE_URL")

	if cfg.AmazonClientID == "" {
		log.Println("Warning: AMAZON_CLIENT_ID not set. Amazon OAuth will not function.")
	}
	if cfg.AmazonClientSecret == "" {
		log.Println("Warning: AMAZON_CLIENT_SECRET not set. Amazon OAuth will not function.")
	}
	if cfg.AmazonRedirectURI == "" {
		log.Println("Warning: AMAZON_REDIRECT_URI not set. Amazon OAuth will not function.")
	}

	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.Debug = viper.GetBool("DEBUG")
	cfg.JWTSecret = jwtSecret
	cfg.JWTExpiryDuration = jwtExpiryDuration
	cfg.JWTIssuer = jwtIssuer
	cfg.JWTRefreshSecret = jwtRefreshSecret
	cfg.RefreshTokenExpiryDuration = refreshTokenExpiryDuration
	cfg.PosthogAPIKey = viper.GetString("POSTHOG_API_KEY")

	if cfg.SMTPHost == "" && cfg.IsProduction {
		log.Println("Warning: SMTP_HOST not set in production. OTP emails cannot be delivered.")
	}

	return cfg, nil
}
