package config

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Dataset sources.
const (
	DatasetSourceStatic   = "static"
	DatasetSourcePostgres = "postgres"
)

// Session store backends.
const (
	SessionStoreMemory = "memory"
	SessionStoreRedis  = "redis"
)

type Config struct {
	Env       string
	Port      int
	APIPrefix string

	Database DatabaseConfig
	Redis    RedisConfig
	CORS     CORSConfig
	Log      LogConfig
	Dataset  DatasetConfig
	Sessions SessionConfig
	Views    ViewConfig
}

type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// DatasetConfig selects where the read-only dashboard datasets come from.
type DatasetConfig struct {
	Source       string
	CacheEnabled bool
	CacheTTL     time.Duration
}

// SessionConfig governs view session storage.
type SessionConfig struct {
	Store string
	TTL   time.Duration
}

// ViewConfig tunes view model rendering.
type ViewConfig struct {
	DefaultLocale   string
	DefaultPageSize int
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")

	cfg.Database = DatabaseConfig{
		Host:         v.GetString("DB_HOST"),
		Port:         v.GetInt("DB_PORT"),
		User:         v.GetString("DB_USER"),
		Password:     v.GetString("DB_PASSWORD"),
		Name:         v.GetString("DB_NAME"),
		SSLMode:      v.GetString("DB_SSL_MODE"),
		MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
		MaxIdleConns: v.GetInt("DB_MAX_IDLE_CONNS"),
	}

	cfg.Redis = RedisConfig{
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Dataset = DatasetConfig{
		Source:       normaliseChoice(v.GetString("DATASET_SOURCE"), DatasetSourceStatic, DatasetSourceStatic, DatasetSourcePostgres),
		CacheEnabled: v.GetBool("ENABLE_DATASET_CACHE"),
		CacheTTL:     parseDuration(v.GetString("DATASET_CACHE_TTL"), 5*time.Minute),
	}

	cfg.Sessions = SessionConfig{
		Store: normaliseChoice(v.GetString("SESSION_STORE"), SessionStoreMemory, SessionStoreMemory, SessionStoreRedis),
		TTL:   parseDuration(v.GetString("SESSION_TTL"), 30*time.Minute),
	}

	pageSize := v.GetInt("DEFAULT_PAGE_SIZE")
	if pageSize <= 0 {
		pageSize = 20
	}
	cfg.Views = ViewConfig{
		DefaultLocale:   v.GetString("DEFAULT_LOCALE"),
		DefaultPageSize: pageSize,
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api/v1")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "campus_credit")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("DATASET_SOURCE", DatasetSourceStatic)
	v.SetDefault("ENABLE_DATASET_CACHE", false)
	v.SetDefault("DATASET_CACHE_TTL", "5m")

	v.SetDefault("SESSION_STORE", SessionStoreMemory)
	v.SetDefault("SESSION_TTL", "30m")

	v.SetDefault("DEFAULT_LOCALE", "zh-CN")
	v.SetDefault("DEFAULT_PAGE_SIZE", 20)
}

func normaliseChoice(raw, fallback string, allowed ...string) string {
	raw = strings.ToLower(strings.TrimSpace(raw))
	for _, candidate := range allowed {
		if raw == candidate {
			return raw
		}
	}
	return fallback
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
