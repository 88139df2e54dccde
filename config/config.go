package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

var (
	Env              string
	ServerPort       string
	LogLevel         string
	ClientUrl        string
	PublicDeckUrl    string
	CorsOrigins      string
	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	RedisHost        string
	RedisPort        string
	RedisPassword    string
	JWTSecret        string
	JWTExpiration    time.Duration
	MailHost         string
	MailPort         string
	MailUsername     string
	MailPassword     string
	CatalogSeedPath  string
	AutosaveDelay    time.Duration
	S3Endpoint       string
	S3Region         string
	S3Bucket         string
	S3AccessKey      string
	S3SecretKey      string
	S3PublicUrl      string
)

// LoadConfig reads the .env file (if any) and the process environment
func LoadConfig() {
	// A missing .env is fine, everything can come from the environment
	_ = godotenv.Load()

	Env = getEnv("ENV", "development")
	ServerPort = getEnv("SERVER_PORT", "8080")
	LogLevel = getEnv("LOG_LEVEL", "info")
	ClientUrl = getEnv("CLIENT_URL", "http://localhost:3000")
	PublicDeckUrl = getEnv("PUBLIC_DECK_URL", ClientUrl+"/decks")
	CorsOrigins = getEnv("CORS_ORIGINS", ClientUrl)

	PostgresHost = getEnv("POSTGRES_HOST", "localhost")
	PostgresPort = getEnv("POSTGRES_PORT", "5432")
	PostgresUser = getEnv("POSTGRES_USER", "postgres")
	PostgresPassword = getEnv("POSTGRES_PASSWORD", "postgres")
	PostgresDB = getEnv("POSTGRES_DB", "decks")

	RedisHost = getEnv("REDIS_HOST", "localhost")
	RedisPort = getEnv("REDIS_PORT", "6379")
	RedisPassword = getEnv("REDIS_PASSWORD", "")

	JWTSecret = getEnv("JWT_SECRET", "change-me")
	JWTExpiration = getDuration("JWT_EXPIRATION", 24*time.Hour)

	MailHost = getEnv("MAIL_HOST", "")
	MailPort = getEnv("MAIL_PORT", "587")
	MailUsername = getEnv("MAIL_USERNAME", "")
	MailPassword = getEnv("MAIL_PASSWORD", "")

	CatalogSeedPath = getEnv("CATALOG_SEED_PATH", "")
	AutosaveDelay = getDuration("AUTOSAVE_DELAY", DefaultAutosaveDelay)

	S3Endpoint = getEnv("S3_ENDPOINT", "")
	S3Region = getEnv("S3_REGION", "us-east-1")
	S3Bucket = getEnv("S3_BUCKET", "")
	S3AccessKey = getEnv("S3_ACCESS_KEY", "")
	S3SecretKey = getEnv("S3_SECRET_KEY", "")
	S3PublicUrl = getEnv("S3_PUBLIC_URL", "")
}

// IsProduction reports whether the server runs with ENV=production
func IsProduction() bool {
	return Env == "production"
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

// getDuration accepts Go durations ("3s") or a plain number of milliseconds
func getDuration(key string, fallback time.Duration) time.Duration {
	raw := getEnv(key, "")
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	if ms, err := strconv.Atoi(raw); err == nil {
		return time.Duration(ms) * time.Millisecond
	}
	return fallback
}

// AllowedOrigins splits CORS_ORIGINS on commas
func AllowedOrigins() []string {
	origins := []string{}
	for _, o := range strings.Split(CorsOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}
