package config

import (
	"os"
	"strconv"
	"time"
)

// Server captures process level configuration.
type Server struct {
	Addr        string
	MetricsAddr string

	// DatabaseURL selects the PostgreSQL-backed stores; empty falls back to
	// in-memory stores for local development.
	DatabaseURL string

	// Redis caches settings reads between instances; empty disables caching.
	Redis RedisConfig

	// KafkaBrokers enables the audit trail publisher; empty disables it.
	KafkaBrokers string
	AuditTopic   string

	// CollectorURL is the endpoint of the external usage-data collector that
	// receives consent state reports.
	CollectorURL     string
	ReportTimeout    time.Duration
	JWTSigningKey    string
	SettingsCacheTTL time.Duration
}

// RedisConfig holds connection settings for the shared Redis instance.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	cfg := Server{
		Addr:             envOr("CONSENTD_ADDR", ":8080"),
		MetricsAddr:      envOr("CONSENTD_METRICS_ADDR", ":9090"),
		DatabaseURL:      os.Getenv("CONSENTD_DATABASE_URL"),
		KafkaBrokers:     os.Getenv("CONSENTD_KAFKA_BROKERS"),
		AuditTopic:       envOr("CONSENTD_AUDIT_TOPIC", "consentd.audit"),
		CollectorURL:     os.Getenv("CONSENTD_COLLECTOR_URL"),
		ReportTimeout:    durationOr("CONSENTD_REPORT_TIMEOUT", 10*time.Second),
		SettingsCacheTTL: durationOr("CONSENTD_SETTINGS_CACHE_TTL", 30*time.Second),
		Redis: RedisConfig{
			URL:          os.Getenv("CONSENTD_REDIS_URL"),
			PoolSize:     intOr("CONSENTD_REDIS_POOL_SIZE", 10),
			MinIdleConns: intOr("CONSENTD_REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  durationOr("CONSENTD_REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  durationOr("CONSENTD_REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: durationOr("CONSENTD_REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
	}

	cfg.JWTSigningKey = os.Getenv("CONSENTD_JWT_SIGNING_KEY")
	if cfg.JWTSigningKey == "" {
		// Development default - must be overridden in production.
		cfg.JWTSigningKey = "dev-secret-key-change-in-production"
	}

	return cfg
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func durationOr(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func intOr(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
