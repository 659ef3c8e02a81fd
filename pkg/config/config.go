package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env       string
	Port      int
	APIPrefix string

	Database     DatabaseConfig
	Redis        RedisConfig
	CORS         CORSConfig
	Log          LogConfig
	Gateway      GatewayConfig
	Documents    DocumentsConfig
	Drafts       DraftsConfig
	Registration RegistrationConfig
	I18n         I18nConfig
	Metrics      MetricsConfig
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

// GatewayConfig points at the Supabase-compatible auth/storage gateway.
// Empty credentials are tolerated at startup; calls fail when first used.
type GatewayConfig struct {
	URL     string
	AnonKey string
	Timeout time.Duration
}

// DocumentsConfig selects and tunes the document store backend.
type DocumentsConfig struct {
	Backend          string // supabase | cloudinary | local
	Bucket           string
	LocalDir         string
	MaxFileSizeBytes int64
	AllowedMIMEs     []string
}

// DraftsConfig governs the server-side registration draft store.
type DraftsConfig struct {
	TTL       time.Duration
	KeyPrefix string
}

// RegistrationConfig carries submission-flow tunables.
type RegistrationConfig struct {
	ReceiptEnabled    bool
	DriverSignInURL   string
	StaffSignInURL    string
	MinPasswordLength int
}

// I18nConfig controls locale handling and preference persistence.
type I18nConfig struct {
	DefaultLocale   string
	LocaleKeyPrefix string
}

// MetricsConfig toggles the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool
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
		if !errors.As(err, &notFound) {
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

	cfg.Gateway = GatewayConfig{
		URL:     v.GetString("SUPABASE_URL"),
		AnonKey: v.GetString("SUPABASE_ANON_KEY"),
		Timeout: parseDuration(v.GetString("GATEWAY_TIMEOUT"), 30*time.Second),
	}

	maxUpload := v.GetInt64("DOCUMENTS_MAX_FILE_SIZE")
	if maxUpload <= 0 {
		maxUpload = 10 * 1024 * 1024
	}
	cfg.Documents = DocumentsConfig{
		Backend:          v.GetString("DOCUMENTS_BACKEND"),
		Bucket:           v.GetString("DOCUMENTS_BUCKET"),
		LocalDir:         v.GetString("DOCUMENTS_LOCAL_DIR"),
		MaxFileSizeBytes: maxUpload,
		AllowedMIMEs:     splitAndTrim(v.GetString("DOCUMENTS_ALLOWED_MIME_TYPES")),
	}

	cfg.Drafts = DraftsConfig{
		TTL:       parseDuration(v.GetString("DRAFT_TTL"), 24*time.Hour),
		KeyPrefix: v.GetString("DRAFT_KEY_PREFIX"),
	}

	cfg.Registration = RegistrationConfig{
		ReceiptEnabled:    v.GetBool("REGISTRATION_RECEIPT_ENABLED"),
		DriverSignInURL:   v.GetString("DRIVER_SIGNIN_URL"),
		StaffSignInURL:    v.GetString("STAFF_SIGNIN_URL"),
		MinPasswordLength: v.GetInt("MIN_PASSWORD_LENGTH"),
	}

	cfg.I18n = I18nConfig{
		DefaultLocale:   v.GetString("DEFAULT_LOCALE"),
		LocaleKeyPrefix: v.GetString("LOCALE_KEY_PREFIX"),
	}

	cfg.Metrics = MetricsConfig{Enabled: v.GetBool("ENABLE_METRICS")}

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
	v.SetDefault("DB_NAME", "travelintrips")
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

	v.SetDefault("SUPABASE_URL", "")
	v.SetDefault("SUPABASE_ANON_KEY", "")
	v.SetDefault("GATEWAY_TIMEOUT", "30s")

	v.SetDefault("DOCUMENTS_BACKEND", "supabase")
	v.SetDefault("DOCUMENTS_BUCKET", "user-documents")
	v.SetDefault("DOCUMENTS_LOCAL_DIR", "./documents")
	v.SetDefault("DOCUMENTS_MAX_FILE_SIZE", 10*1024*1024)
	v.SetDefault("DOCUMENTS_ALLOWED_MIME_TYPES", "image/jpeg,image/png,image/webp,application/pdf")

	v.SetDefault("DRAFT_TTL", "24h")
	v.SetDefault("DRAFT_KEY_PREFIX", "registration:draft:")

	v.SetDefault("REGISTRATION_RECEIPT_ENABLED", false)
	v.SetDefault("DRIVER_SIGNIN_URL", "https://driver.travelintrips.co.id/login")
	v.SetDefault("STAFF_SIGNIN_URL", "https://admin.travelintrips.co.id/login")
	v.SetDefault("MIN_PASSWORD_LENGTH", 6)

	v.SetDefault("DEFAULT_LOCALE", "en")
	v.SetDefault("LOCALE_KEY_PREFIX", "preferences:locale:")

	v.SetDefault("ENABLE_METRICS", true)
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
