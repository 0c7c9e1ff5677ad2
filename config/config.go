package config

import (
	"os"
	"strconv"
)

// Config holds all runtime settings, loaded once at startup.
type Config struct {
	// Server settings
	Port   string
	AppEnv string

	// Database settings
	MongoURI string
	DBName   string

	// Auth settings
	JWTKey        string
	SessionSecret string

	// Email settings
	SMTPHost       string
	SMTPPort       int
	SMTPUser       string
	SMTPPass       string
	SMTPSecure     bool
	EmailFrom      string
	SendGridAPIKey string

	// Logging settings
	LogFile string
}

// Load reads configuration from environment variables. Missing values fall
// back to development defaults where one exists.
func Load() *Config {
	cfg := &Config{
		Port:           os.Getenv("PORT"),
		AppEnv:         os.Getenv("APP_ENV"),
		MongoURI:       os.Getenv("MONGODB_URI"),
		DBName:         os.Getenv("DB_NAME"),
		JWTKey:         os.Getenv("JWT_KEY"),
		SessionSecret:  os.Getenv("SESSION_SECRET"),
		SMTPHost:       os.Getenv("SMTP_HOST"),
		SMTPUser:       os.Getenv("SMTP_USER"),
		SMTPPass:       os.Getenv("SMTP_PASS"),
		EmailFrom:      os.Getenv("EMAIL_FROM"),
		SendGridAPIKey: os.Getenv("SENDGRID_API_KEY"),
		LogFile:        os.Getenv("LOG_FILE"),
	}

	if cfg.Port == "" {
		cfg.Port = "3000"
	}
	if cfg.AppEnv == "" {
		cfg.AppEnv = "development"
	}
	// Secrets must never silently default in production: an empty JWT key
	// would make every token forgeable.
	if cfg.JWTKey == "" {
		if cfg.Production() {
			panic("JWT_KEY must be set in production")
		}
		cfg.JWTKey = "veloura-dev-jwt-key"
	}
	if cfg.SessionSecret == "" {
		if cfg.Production() {
			panic("SESSION_SECRET must be set in production")
		}
		cfg.SessionSecret = "veloura-dev-session-secret"
	}
	if cfg.MongoURI == "" {
		cfg.MongoURI = "mongodb://localhost:27017"
	}
	if cfg.DBName == "" {
		cfg.DBName = "veloura"
	}
	if cfg.EmailFrom == "" {
		cfg.EmailFrom = cfg.SMTPUser
	}

	cfg.SMTPPort, _ = strconv.Atoi(os.Getenv("SMTP_PORT"))
	if cfg.SMTPPort == 0 {
		cfg.SMTPPort = 587
	}
	cfg.SMTPSecure = os.Getenv("SMTP_SECURE") == "true"

	return cfg
}

// Production reports whether the app runs in production mode.
func (c *Config) Production() bool {
	return c.AppEnv == "production"
}
