package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Store backends accepted by STORE_BACKEND.
const (
	BackendMemory   = "memory"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
	BackendSQLite   = "sqlite"
)

type Config struct {
	AppEnv   string
	LogLevel string

	GRPCPort int
	HTTPPort int

	StoreBackend string
	RedisURL     string
	RedisPrefix  string
	CartTTL      time.Duration
	DatabaseURL  string
	SQLitePath   string

	CatalogSeedFile      string
	CORSAllowedOrigins   []string
	SummaryMaxConcurrent int
	PaymentDelay         time.Duration

	OTelEnabled     bool
	OTelEndpoint    string
	OTelInsecure    bool
	OTelSampleRatio float64

	ShutdownTimeout time.Duration
}

func Load() Config {
	return Config{
		AppEnv:   getEnv("APP_ENV", "dev"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		HTTPPort: getEnvInt("HTTP_PORT", 8080),
		GRPCPort: getEnvInt("GRPC_PORT", 8081),

		StoreBackend: strings.ToLower(getEnv("STORE_BACKEND", BackendMemory)),
		RedisURL:     getEnv("REDIS_URL", "redis://localhost:6379/0"),
		RedisPrefix:  getEnv("REDIS_PREFIX", "techhub:"),
		CartTTL:      getEnvDuration("CART_TTL", 7*24*time.Hour),
		DatabaseURL:  getEnv("DATABASE_URL", ""),
		SQLitePath:   getEnv("SQLITE_PATH", "techhub.db"),

		CatalogSeedFile:      getEnv("CATALOG_SEED_FILE", ""),
		CORSAllowedOrigins:   getEnvList("CORS_ALLOWED_ORIGINS", []string{"*"}),
		SummaryMaxConcurrent: getEnvInt("SUMMARY_MAX_CONCURRENT", 10),
		PaymentDelay:         getEnvDuration("CHECKOUT_PAYMENT_DELAY", 0),

		OTelEnabled:     getEnvBool("OTEL_ENABLED", false),
		OTelEndpoint:    getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
		OTelInsecure:    getEnvBool("OTEL_EXPORTER_OTLP_INSECURE", false),
		OTelSampleRatio: getEnvFloat("OTEL_SAMPLER_RATIO", 1.0),

		ShutdownTimeout: getEnvDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
	}
}

// IsDev reports whether the process runs in a local development environment.
func (c Config) IsDev() bool {
	switch strings.ToLower(c.AppEnv) {
	case "dev", "development", "local":
		return true
	}
	return false
}

func getEnv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	v := getEnv(key, "")
	if v == "" {
		return def
	}

	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}

	return n
}

func getEnvFloat(key string, def float64) float64 {
	v := getEnv(key, "")
	if v == "" {
		return def
	}

	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def
	}
	return f
}

func getEnvBool(key string, def bool) bool {
	v := getEnv(key, "")
	if v == "" {
		return def
	}

	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

// getEnvDuration accepts Go durations ("90s", "168h") and bare integers as seconds.
func getEnvDuration(key string, def time.Duration) time.Duration {
	v := getEnv(key, "")
	if v == "" {
		return def
	}

	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if n, err := strconv.Atoi(v); err == nil {
		return time.Duration(n) * time.Second
	}
	return def
}

func getEnvList(key string, def []string) []string {
	v := getEnv(key, "")
	if v == "" {
		return def
	}

	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}
