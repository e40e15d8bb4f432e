package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	JWT        JWTConfig
	Cloudinary CloudinaryConfig
	Admin      AdminConfig
	Mail       MailConfig
	Log        LogConfig
	Site       SiteConfig
}

type ServerConfig struct {
	Port           string
	GinMode        string
	PublicBaseURL  string
	AllowedOrigins []string
	CookieSecure   bool
}

type DatabaseConfig struct {
	Driver string // postgres or sqlite
	URL    string
}

type JWTConfig struct {
	Secret             string
	ExpiryHours        int
	RefreshExpiryHours int
}

type CloudinaryConfig struct {
	URL          string
	CloudName    string
	APIKey       string
	APISecret    string
	Folder       string
	MaxAttempts  int
	RetryBackoff time.Duration
}

// AdminConfig seeds the first admin account when the users table is empty
type AdminConfig struct {
	Email    string
	Password string
	Name     string
}

type MailConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
	NotifyTo string
}

type LogConfig struct {
	Level string
}

type SiteConfig struct {
	TestimonialInterval time.Duration
	ContentFile         string // optional replacement for the embedded site copy
}

var AppConfig *Config

// Load reads the configuration from the environment into AppConfig
func Load() *Config {
	AppConfig = &Config{
		Server: ServerConfig{
			Port:           getEnv("PORT", "8080"),
			GinMode:        getEnv("GIN_MODE", "debug"),
			PublicBaseURL:  getEnv("PUBLIC_BASE_URL", "http://localhost:8080"),
			AllowedOrigins: getEnvAsList("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000", "http://localhost:8080"}),
			CookieSecure:   getEnvAsBool("COOKIE_SECURE", false),
		},
		Database: DatabaseConfig{
			Driver: getEnv("DB_DRIVER", "postgres"),
			URL:    getEnv("DB_URL", ""),
		},
		JWT: JWTConfig{
			Secret:             getEnv("JWT_SECRET", "your-super-secret-jwt-key-change-this-in-production"),
			ExpiryHours:        getEnvAsInt("JWT_EXPIRY_HOURS", 24),
			RefreshExpiryHours: getEnvAsInt("JWT_REFRESH_EXPIRY_HOURS", 24*30),
		},
		Cloudinary: CloudinaryConfig{
			URL:          getEnv("CLOUDINARY_URL", ""),
			CloudName:    getEnv("CLOUDINARY_CLOUD_NAME", ""),
			APIKey:       getEnv("CLOUDINARY_API_KEY", ""),
			APISecret:    getEnv("CLOUDINARY_API_SECRET", ""),
			Folder:       getEnv("CLOUDINARY_FOLDER", "agency"),
			MaxAttempts:  getEnvAsInt("UPLOAD_MAX_ATTEMPTS", 3),
			RetryBackoff: getEnvAsDuration("UPLOAD_RETRY_BACKOFF", time.Second),
		},
		Admin: AdminConfig{
			Email:    getEnv("ADMIN_EMAIL", ""),
			Password: getEnv("ADMIN_PASSWORD", ""),
			Name:     getEnv("ADMIN_NAME", "Administrator"),
		},
		Mail: MailConfig{
			Host:     getEnv("SMTP_HOST", ""),
			Port:     getEnvAsInt("SMTP_PORT", 587),
			User:     getEnv("SMTP_USER", ""),
			Password: getEnv("SMTP_PASSWORD", ""),
			From:     getEnv("MAIL_FROM", ""),
			NotifyTo: getEnv("MAIL_NOTIFY_TO", ""),
		},
		Log: LogConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Site: SiteConfig{
			TestimonialInterval: getEnvAsDuration("TESTIMONIAL_INTERVAL", 6*time.Second),
			ContentFile:         getEnv("SITE_CONTENT_FILE", ""),
		},
	}
	return AppConfig
}

// Validate checks the settings the server cannot start without
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q (want postgres or sqlite)", c.Database.Driver)
	}
	if c.Database.URL == "" {
		return fmt.Errorf("DB_URL is required. Set DB_URL to a valid Postgres URL or SQLite file path")
	}
	if c.Server.GinMode == "release" && (c.JWT.Secret == "" || strings.Contains(c.JWT.Secret, "change-this")) {
		return fmt.Errorf("JWT_SECRET must be set in release mode")
	}
	if c.JWT.ExpiryHours <= 0 {
		return fmt.Errorf("JWT_EXPIRY_HOURS must be positive")
	}
	return nil
}

// Enabled reports whether enough credentials are present to reach the CDN
func (c CloudinaryConfig) Enabled() bool {
	return c.URL != "" || (c.CloudName != "" && c.APIKey != "" && c.APISecret != "")
}

// ConnectionURL returns the cloudinary:// URL for the SDK
func (c CloudinaryConfig) ConnectionURL() string {
	if c.URL != "" {
		return c.URL
	}
	return fmt.Sprintf("cloudinary://%s:%s@%s", c.APIKey, c.APISecret, c.CloudName)
}

// Enabled reports whether SMTP notifications are configured
func (m MailConfig) Enabled() bool {
	return m.Host != "" && m.From != "" && m.NotifyTo != ""
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getEnvAsList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
