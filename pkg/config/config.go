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

	Database    DatabaseConfig
	Redis       RedisConfig
	Google      GoogleConfig
	Cleanup     CleanupConfig
	JWT         JWTConfig
	Auth        AuthConfig
	CORS        CORSConfig
	Log         LogConfig
	Dashboard   DashboardConfig
	Suggestions SuggestionsConfig
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

// GoogleConfig points the outbound client at the Google API surfaces.
// The base URLs are overridable so tests can target a local server.
type GoogleConfig struct {
	DriveBaseURL   string
	OAuthBaseURL   string
	GmailBaseURL   string
	ListPageSize   int
	RequestTimeout time.Duration
}

// CleanupConfig tunes the drive listing cache and the trash ledger.
type CleanupConfig struct {
	CacheTTL       time.Duration
	TrashRetention time.Duration
}

type JWTConfig struct {
	Secret     string
	Expiration time.Duration
}

// AuthConfig gates the optional JWT guard on user endpoints.
type AuthConfig struct {
	RequireJWT bool
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// DashboardConfig governs the media preview listing on the dashboard payload.
type DashboardConfig struct {
	MediaPageSize int
}

// SuggestionsConfig sets thresholds for heuristic cleanup recommendations.
type SuggestionsConfig struct {
	LargeFileMinBytes int64
	StaleAfterDays    int
	MaxPerCategory    int
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

	cfg.Google = GoogleConfig{
		DriveBaseURL:   v.GetString("GOOGLE_DRIVE_BASE_URL"),
		OAuthBaseURL:   v.GetString("GOOGLE_OAUTH_BASE_URL"),
		GmailBaseURL:   v.GetString("GOOGLE_GMAIL_BASE_URL"),
		ListPageSize:   v.GetInt("GOOGLE_LIST_PAGE_SIZE"),
		RequestTimeout: parseDuration(v.GetString("GOOGLE_REQUEST_TIMEOUT"), 30*time.Second),
	}

	cfg.Cleanup = CleanupConfig{
		CacheTTL:       parseDuration(v.GetString("DRIVE_CACHE_TTL"), 3*time.Hour),
		TrashRetention: parseDuration(v.GetString("TRASH_RETENTION"), 7*24*time.Hour),
	}

	cfg.JWT = JWTConfig{
		Secret:     v.GetString("JWT_SECRET"),
		Expiration: parseDuration(v.GetString("JWT_EXPIRATION"), 24*time.Hour),
	}

	cfg.Auth = AuthConfig{RequireJWT: v.GetBool("AUTH_REQUIRE_JWT")}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Dashboard = DashboardConfig{
		MediaPageSize: v.GetInt("DASHBOARD_MEDIA_PAGE_SIZE"),
	}

	cfg.Suggestions = SuggestionsConfig{
		LargeFileMinBytes: v.GetInt64("SUGGESTIONS_LARGE_FILE_MIN_BYTES"),
		StaleAfterDays:    v.GetInt("SUGGESTIONS_STALE_AFTER_DAYS"),
		MaxPerCategory:    v.GetInt("SUGGESTIONS_MAX_PER_CATEGORY"),
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
	v.SetDefault("DB_NAME", "autocloud")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("GOOGLE_DRIVE_BASE_URL", "https://www.googleapis.com/drive/v3")
	v.SetDefault("GOOGLE_OAUTH_BASE_URL", "https://www.googleapis.com/oauth2/v2")
	v.SetDefault("GOOGLE_GMAIL_BASE_URL", "https://gmail.googleapis.com/gmail/v1")
	v.SetDefault("GOOGLE_LIST_PAGE_SIZE", 200)
	v.SetDefault("GOOGLE_REQUEST_TIMEOUT", "30s")

	v.SetDefault("DRIVE_CACHE_TTL", "3h")
	v.SetDefault("TRASH_RETENTION", "168h")

	v.SetDefault("JWT_SECRET", "dev_secret")
	v.SetDefault("JWT_EXPIRATION", "24h")
	v.SetDefault("AUTH_REQUIRE_JWT", false)

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("DASHBOARD_MEDIA_PAGE_SIZE", 10)

	v.SetDefault("SUGGESTIONS_LARGE_FILE_MIN_BYTES", 100*1024*1024)
	v.SetDefault("SUGGESTIONS_STALE_AFTER_DAYS", 365)
	v.SetDefault("SUGGESTIONS_MAX_PER_CATEGORY", 10)
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
