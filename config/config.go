package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Environment  string
	Name         string
	Version      string
	LogLevel     string
	HTTP         HTTPConfig
	Availability AvailabilityConfig
	Catalog      CatalogConfig
	Sessions     SessionsConfig
	Postgres     PostgresConfig
	Redis        RedisConfig
	S3           S3Config
}

type HTTPConfig struct {
	Port              string
	ReadTimeout       time.Duration
	WriteTimeout      time.Duration
	MaxHeaderMB       int
	AllowedOrigins    []string
	BookingRatePerMin int
}

type AvailabilityConfig struct {
	DefaultTimezone  string
	Location         *time.Location
	WindowDays       int
	MaxWindowDays    int
	LimitedThreshold int
	Locale           string
}

type CatalogConfig struct {
	Source string
	Path   string
	Object string
}

type SessionsConfig struct {
	Backend string
	Dir     string
	Key     string
}

type PostgresConfig struct {
	Host               string
	Port               string
	Username           string
	Password           string
	DBName             string
	SSLMode            string
	MaxConnections     int
	MaxIdleConnections int
	MaxLifetime        time.Duration
	MigrationsDir      string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type S3Config struct {
	Endpoint        string
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	Bucket          string
	UseSSL          bool
	PresignTTL      time.Duration
}

const (
	CatalogSourceFile = "file"
	CatalogSourceS3   = "s3"

	SessionsBackendFile     = "file"
	SessionsBackendMemory   = "memory"
	SessionsBackendRedis    = "redis"
	SessionsBackendPostgres = "postgres"
	SessionsBackendS3       = "s3"
	SessionsBackendNone     = "none"
)

// Load reads an optional .env file and then builds the configuration from the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("ошибка чтения .env: %w", err)
	}
	return NewConfig()
}

func NewConfig() (*Config, error) {
	httpReadTimeout, err := time.ParseDuration(getEnv("HTTP_READ_TIMEOUT", "10s"))
	if err != nil {
		return nil, err
	}

	httpWriteTimeout, err := time.ParseDuration(getEnv("HTTP_WRITE_TIMEOUT", "10s"))
	if err != nil {
		return nil, err
	}

	postgresMaxLifetime, err := time.ParseDuration(getEnv("POSTGRES_MAX_LIFETIME", "5m"))
	if err != nil {
		return nil, err
	}

	presignTTL, err := time.ParseDuration(getEnv("S3_PRESIGN_TTL", "1h"))
	if err != nil {
		return nil, err
	}

	timezone := getEnv("AVAILABILITY_DEFAULT_TIMEZONE", "America/Argentina/Buenos_Aires")
	location, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("неизвестный часовой пояс %q: %w", timezone, err)
	}

	windowDays := getEnvAsInt("AVAILABILITY_WINDOW_DAYS", 90)
	maxWindowDays := getEnvAsInt("AVAILABILITY_MAX_WINDOW_DAYS", 90)
	if windowDays < 1 || maxWindowDays < 1 {
		return nil, fmt.Errorf("окно доступности должно быть не меньше одного дня")
	}
	if windowDays > maxWindowDays {
		return nil, fmt.Errorf("окно доступности %d превышает максимум %d", windowDays, maxWindowDays)
	}

	catalogSource := getEnv("CATALOG_SOURCE", CatalogSourceFile)
	switch catalogSource {
	case CatalogSourceFile, CatalogSourceS3:
	default:
		return nil, fmt.Errorf("неизвестный источник каталога %q", catalogSource)
	}

	sessionsBackend := getEnv("SESSIONS_BACKEND", SessionsBackendFile)
	switch sessionsBackend {
	case SessionsBackendFile, SessionsBackendMemory, SessionsBackendRedis,
		SessionsBackendPostgres, SessionsBackendS3, SessionsBackendNone:
	default:
		return nil, fmt.Errorf("неизвестное хранилище сессий %q", sessionsBackend)
	}

	return &Config{
		Environment: getEnv("APP_ENV", "development"),
		Name:        getEnv("APP_NAME", "psicoagenda"),
		Version:     getEnv("APP_VERSION", "1.0.0"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		HTTP: HTTPConfig{
			Port:              getEnv("HTTP_PORT", "8080"),
			ReadTimeout:       httpReadTimeout,
			WriteTimeout:      httpWriteTimeout,
			MaxHeaderMB:       getEnvAsInt("HTTP_MAX_HEADER_MB", 1),
			AllowedOrigins:    getEnvAsList("HTTP_ALLOWED_ORIGINS", []string{"*"}),
			BookingRatePerMin: getEnvAsInt("HTTP_BOOKING_RATE_PER_MIN", 30),
		},
		Availability: AvailabilityConfig{
			DefaultTimezone:  timezone,
			Location:         location,
			WindowDays:       windowDays,
			MaxWindowDays:    maxWindowDays,
			LimitedThreshold: getEnvAsInt("AVAILABILITY_LIMITED_THRESHOLD", 5),
			Locale:           getEnv("AVAILABILITY_LOCALE", "es_ES"),
		},
		Catalog: CatalogConfig{
			Source: catalogSource,
			Path:   getEnv("CATALOG_PATH", "./data/professionals.json"),
			Object: getEnv("CATALOG_OBJECT", "catalog/professionals.json"),
		},
		Sessions: SessionsConfig{
			Backend: sessionsBackend,
			Dir:     getEnv("SESSIONS_DIR", "./var"),
			Key:     getEnv("SESSIONS_KEY", "scheduled_sessions_v1"),
		},
		Postgres: PostgresConfig{
			Host:               getEnv("POSTGRES_HOST", "localhost"),
			Port:               getEnv("POSTGRES_PORT", "5432"),
			Username:           getEnv("POSTGRES_USER", "postgres"),
			Password:           getEnv("POSTGRES_PASSWORD", "postgres"),
			DBName:             getEnv("POSTGRES_DB", "psicoagenda"),
			SSLMode:            getEnv("POSTGRES_SSL_MODE", "disable"),
			MaxConnections:     getEnvAsInt("POSTGRES_MAX_CONNECTIONS", 10),
			MaxIdleConnections: getEnvAsInt("POSTGRES_MAX_IDLE_CONNECTIONS", 5),
			MaxLifetime:        postgresMaxLifetime,
			MigrationsDir:      getEnv("POSTGRES_MIGRATIONS_DIR", "./migrations"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		S3: S3Config{
			Endpoint:        getEnv("S3_ENDPOINT", ""),
			Region:          getEnv("S3_REGION", "us-east-1"),
			AccessKeyID:     getEnv("S3_ACCESS_KEY_ID", ""),
			SecretAccessKey: getEnv("S3_SECRET_ACCESS_KEY", ""),
			Bucket:          getEnv("S3_BUCKET", "psicoagenda"),
			UseSSL:          getEnv("S3_USE_SSL", "true") == "true",
			PresignTTL:      presignTTL,
		},
	}, nil
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value := 0
	_, err := fmt.Sscanf(valueStr, "%d", &value)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsList(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	var values []string
	for _, part := range strings.Split(valueStr, ",") {
		if part = strings.TrimSpace(part); part != "" {
			values = append(values, part)
		}
	}
	if len(values) == 0 {
		return defaultValue
	}
	return values
}
