package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Env      string
	LogLevel string
	Release  string
	HTTPAddr string

	DatabaseURL       string
	AutoMigrate       bool
	DBMaxOpenConns    int
	DBMaxIdleConns    int
	DBConnMaxLifetime time.Duration

	SupabaseURL   string
	SupabaseKey   string
	MediaBucket   string
	MediaMaxWidth int

	AuthMode                string
	DevAuthName             string
	AdminUsername           string
	AdminPasswordHash       string
	SessionSecret           string
	SessionTTL              time.Duration
	FirebaseCredentialsFile string

	CORSAllowList   []string
	RefreshInterval time.Duration
	RemoteTimeout   time.Duration
	ChartCacheTTL   time.Duration
	SentryDSN       string
}

func Load() Config {
	_ = godotenv.Load()
	return Config{
		Env:      getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		Release:  getEnv("RELEASE", "dev"),
		HTTPAddr: getEnv("HTTP_ADDR", ":8080"),

		DatabaseURL:       getEnv("DATABASE_URL", ""),
		AutoMigrate:       getBool("AUTO_MIGRATE", true),
		DBMaxOpenConns:    getInt("DB_MAX_OPEN_CONNS", 10),
		DBMaxIdleConns:    getInt("DB_MAX_IDLE_CONNS", 5),
		DBConnMaxLifetime: getDuration("DB_CONN_MAX_LIFETIME", 30*time.Minute),

		SupabaseURL:   strings.TrimRight(getEnv("SUPABASE_URL", ""), "/"),
		SupabaseKey:   getEnv("SUPABASE_KEY", ""),
		MediaBucket:   getEnv("MEDIA_BUCKET", "images"),
		MediaMaxWidth: getInt("MEDIA_MAX_WIDTH", 1920),

		AuthMode:                getEnv("AUTH_MODE", "dev"),
		DevAuthName:             getEnv("DEV_AUTH_NAME", "admin"),
		AdminUsername:           getEnv("ADMIN_USERNAME", "admin"),
		AdminPasswordHash:       getEnv("ADMIN_PASSWORD_HASH", ""),
		SessionSecret:           getEnv("SESSION_SECRET", ""),
		SessionTTL:              getDuration("SESSION_TTL", 12*time.Hour),
		FirebaseCredentialsFile: getEnv("FIREBASE_CREDENTIALS_FILE", ""),

		CORSAllowList:   getList("CORS_ALLOW_LIST"),
		RefreshInterval: getDuration("REFRESH_INTERVAL", 10*time.Minute),
		RemoteTimeout:   getDuration("REMOTE_TIMEOUT", 10*time.Second),
		ChartCacheTTL:   getDuration("CHART_CACHE_TTL", 5*time.Minute),
		SentryDSN:       getEnv("SENTRY_DSN", ""),
	}
}

// StoreConfigured reports whether the content tables are reachable.
func (c Config) StoreConfigured() bool {
	return c.DatabaseURL != ""
}

// StorageConfigured reports whether the media bucket is reachable.
func (c Config) StorageConfigured() bool {
	return c.SupabaseURL != "" && len(c.SupabaseKey) > 10
}

func getEnv(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if parsed, err := strconv.Atoi(getEnv(key, "")); err == nil {
		return parsed
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	if parsed, err := strconv.ParseBool(getEnv(key, "")); err == nil {
		return parsed
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if parsed, err := time.ParseDuration(getEnv(key, "")); err == nil {
		return parsed
	}
	return fallback
}

func getList(key string) []string {
	var items []string
	for _, part := range strings.Split(getEnv(key, ""), ",") {
		if part = strings.TrimSpace(part); part != "" {
			items = append(items, part)
		}
	}
	return items
}
