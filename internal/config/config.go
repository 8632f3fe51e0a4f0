package config

import (
	"os"
	"strconv"
)

// DatabaseConfig holds PostgreSQL connection settings for the usage registry.
type DatabaseConfig struct {
	Host               string
	Port               string
	User               string
	Password           string
	Name               string
	SSLMode            string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeSec int
}

// StorageConfig holds settings for the S3-compatible object storage backend.
type StorageConfig struct {
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	Bucket          string
	UseSSL          bool
	// PathPattern renders object keys from per-file attributes,
	// e.g. "{owner}/{dataset}/{path}" or "{md5_hex}{extension}".
	PathPattern string
	// HostDomain is the provider's generic domain; URLs hosted on it are
	// path-style and carry the bucket as the first path segment.
	HostDomain string
	// EnsureBucket creates the bucket at startup when it does not exist.
	EnsureBucket bool
	// SignedURLExpirySec bounds the validity of signed read URLs.
	SignedURLExpirySec int
}

// AuthConfig holds token verification settings.
type AuthConfig struct {
	// PublicKey is the PEM-encoded RSA key verifying token signatures.
	PublicKey string
	// ServiceName must match the token's service claim.
	ServiceName string
	// AllowTestToken accepts the fixed test credential. Never enable in
	// production: the sentinel bypasses signature verification entirely.
	AllowTestToken bool
}

// AppConfig is the immutable configuration snapshot for the application.
// It is built once from environment variables and handed to components at
// construction time; business logic never reads the process environment.
type AppConfig struct {
	AppHost  string
	Port     string
	Database DatabaseConfig
	Storage  StorageConfig
	Auth     AuthConfig
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// Real environment variables take precedence over the .env file.
func Load() *AppConfig {
	return &AppConfig{
		AppHost: getEnv("APP_HOST", "localhost:8080"),
		Port:    getEnv("PORT", "8080"),
		Database: DatabaseConfig{
			Host:               getEnv("DB_HOST", ""),
			Port:               getEnv("DB_PORT", "5432"),
			User:               getEnv("DB_USER", ""),
			Password:           getEnv("DB_PASSWORD", ""),
			Name:               getEnv("DB_NAME", ""),
			SSLMode:            getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:       getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:       getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetimeSec: getEnvInt("DB_CONN_MAX_LIFETIME_SEC", 300),
		},
		Storage: StorageConfig{
			Endpoint:           getEnv("STORAGE_ENDPOINT", ""),
			AccessKeyID:        getEnv("STORAGE_ACCESS_KEY_ID", ""),
			SecretAccessKey:    getEnv("STORAGE_SECRET_ACCESS_KEY", ""),
			Bucket:             getEnv("STORAGE_BUCKET_NAME", ""),
			UseSSL:             getEnvBool("STORAGE_USE_SSL", true),
			PathPattern:        getEnv("STORAGE_PATH_PATTERN", "{owner}/{dataset}/{path}"),
			HostDomain:         getEnv("STORAGE_HOST_DOMAIN", "s3.amazonaws.com"),
			EnsureBucket:       getEnvBool("STORAGE_ENSURE_BUCKET", false),
			SignedURLExpirySec: getEnvInt("SIGNED_URL_EXPIRY_SEC", 86400),
		},
		Auth: AuthConfig{
			PublicKey:      getEnv("AUTH_PUBLIC_KEY", ""),
			ServiceName:    getEnv("AUTH_SERVICE_NAME", "rawstore"),
			AllowTestToken: getEnvBool("AUTH_ALLOW_TEST_TOKEN", false),
		},
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return def
}
