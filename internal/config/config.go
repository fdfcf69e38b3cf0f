package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const DefaultBaseURL = "https://mindsync-backend-c7v9.onrender.com"

type Config struct {
	// Application
	AppName string
	AppEnv  string
	Port    string
	BaseURL string // Prefix for relative photo paths in API responses
	AppURL  string // Frontend address used in email links

	// Database (sqlite, pgx or mongo)
	DBDriver      string
	DBConnection  string
	MongoDatabase string

	// Security
	JWTSecret    string
	CookieSecure bool

	// CORS
	CORSAllowedOrigins []string

	// Email
	EmailFrom    string
	ResendAPIKey string

	// Observability (optional)
	SentryDSN string

	// Storage: local disk by default, S3-compatible when S3Bucket is set
	UploadDir   string
	S3Region    string
	S3Bucket    string
	S3AccessKey string
	S3SecretKey string
	S3Endpoint  string        // Optional: for S3-compatible services (MinIO, DO Spaces, R2, etc.)
	S3Timeout   time.Duration // Per-call timeout for uploads and deletes
}

func Load() *Config {
	// Load .env file if it exists
	err := godotenv.Load()
	if err != nil {
		slog.Info("no .env file found, using environment variables")
	}

	driver := envString("DB_DRIVER", "sqlite")

	cfg := &Config{
		// Application
		AppName: envString("APP_NAME", "MindSync"),
		AppEnv:  envRequired("APP_ENV"), // Required: 'development' or 'production'
		Port:    envString("PORT", "5000"),
		BaseURL: strings.TrimSuffix(envString("BASE_URL", DefaultBaseURL), "/"),
		AppURL:  strings.TrimSuffix(envString("APP_URL", "http://localhost:5500"), "/"),

		// Database
		DBDriver:      driver,
		DBConnection:  envString("DB_CONNECTION", defaultConnection(driver)),
		MongoDatabase: envString("MONGO_DATABASE", "mindsync"),

		// Security
		JWTSecret:    envRequired("JWT_SECRET"),
		CookieSecure: envBool("COOKIE_SECURE", envString("APP_ENV", "development") == "production"),

		// CORS
		CORSAllowedOrigins: envList("CORS_ALLOWED_ORIGINS", []string{
			"http://localhost:5500",
			"https://mindsync-frontend.onrender.com",
			"https://sumit210903.github.io",
		}),

		// Email (RESEND_API_KEY optional, welcome emails are logged without it)
		EmailFrom:    envString("EMAIL_FROM", "noreply@example.com"),
		ResendAPIKey: envString("RESEND_API_KEY", ""),

		// Observability
		SentryDSN: envString("SENTRY_DSN", ""),

		// Storage
		UploadDir:   envString("UPLOAD_DIR", "./uploads"),
		S3Region:    envString("S3_REGION", "us-east-1"),
		S3Bucket:    envString("S3_BUCKET", ""),
		S3AccessKey: envString("S3_ACCESS_KEY", ""),
		S3SecretKey: envString("S3_SECRET_KEY", ""),
		S3Endpoint:  envString("S3_ENDPOINT", ""),
		S3Timeout:   envDuration("S3_TIMEOUT", 30*time.Second),
	}

	if cfg.IsProduction() {
		validateProduction(cfg)
	}

	return cfg
}

// validateProduction refuses to boot a production server with an unusable store.
func validateProduction(cfg *Config) {
	if cfg.DBDriver == "sqlite" && strings.HasPrefix(cfg.DBConnection, "./data/") {
		slog.Warn("production deployment is using the default sqlite file",
			"hint", "set DB_DRIVER and DB_CONNECTION for a managed database")
	}
	if cfg.DBDriver == "mongo" && cfg.DBConnection == defaultConnection("mongo") {
		slog.Error("production deployment requires DB_CONNECTION for mongo")
		os.Exit(1)
	}
}

func defaultConnection(driver string) string {
	switch driver {
	case "mongo":
		return "mongodb://localhost:27017"
	case "pgx":
		return "postgres://localhost:5432/mindsync?sslmode=disable"
	default:
		return "./data/mindsync.db?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)"
	}
}

func envString(key, def string) string {
	value := os.Getenv(key)
	if value == "" {
		value = def
	}
	return value
}

func envBool(key string, def bool) bool {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("config invalid bool, using default", "key", key, "value", v, "default", def)
		return def
	}
	return b
}

func envDuration(key string, def time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		slog.Warn("config invalid duration, using default", "key", key, "value", v, "default", def)
		return def
	}
	return d
}

func envList(key string, def []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

func envRequired(key string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	slog.Error("config required env var missing", "key", key)
	os.Exit(1)
	return ""
}

func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// UsesS3 reports whether avatars go to S3-compatible storage instead of local disk.
func (c *Config) UsesS3() bool {
	return c.S3Bucket != ""
}
