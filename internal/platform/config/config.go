// Package config builds runtime configuration from environment variables so
// main stays lean. Every knob has a development default.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// SnapshotBackend selects where the donation collection is persisted.
type SnapshotBackend string

const (
	BackendMemory   SnapshotBackend = "memory"
	BackendRedis    SnapshotBackend = "redis"
	BackendPostgres SnapshotBackend = "postgres"
)

// Server captures the full service configuration.
type Server struct {
	Addr          string
	JWTSigningKey string
	JWTTTL        time.Duration

	SnapshotBackend SnapshotBackend
	Redis           RedisConfig
	PostgresURL     string

	Kafka KafkaConfig

	// GeoIPDBPath enables IP-based location resolution when set.
	GeoIPDBPath string
	// DefaultLat/DefaultLon feed the static location provider used when no
	// GeoIP database is configured.
	DefaultLat float64
	DefaultLon float64

	// SeedDemoUsers pre-registers the two demo accounts on startup.
	SeedDemoUsers bool
}

// RedisConfig captures blob store connection settings.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// KafkaConfig captures the optional event sink settings. Events stay
// in-process when Brokers is empty.
type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// FromEnv builds a Server config from environment variables.
func FromEnv() Server {
	return Server{
		Addr:          getenv("FOODBRIDGE_ADDR", ":8080"),
		JWTSigningKey: getenv("JWT_SIGNING_KEY", "dev-secret-key-change-in-production"),
		JWTTTL:        getDuration("JWT_TTL", 24*time.Hour),

		SnapshotBackend: SnapshotBackend(getenv("SNAPSHOT_BACKEND", string(BackendMemory))),
		Redis: RedisConfig{
			URL:          os.Getenv("REDIS_URL"),
			PoolSize:     getInt("REDIS_POOL_SIZE", 10),
			MinIdleConns: getInt("REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  getDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  getDuration("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: getDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
		PostgresURL: os.Getenv("POSTGRES_URL"),

		Kafka: KafkaConfig{
			Brokers: splitNonEmpty(os.Getenv("KAFKA_BROKERS")),
			Topic:   getenv("KAFKA_EVENTS_TOPIC", "foodbridge.donation-events"),
		},

		GeoIPDBPath: os.Getenv("GEOIP_DB_PATH"),
		DefaultLat:  getFloat("DEFAULT_LAT", -1.286389),
		DefaultLon:  getFloat("DEFAULT_LON", 36.817223),

		SeedDemoUsers: getenv("SEED_DEMO_USERS", "true") == "true",
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func getDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func splitNonEmpty(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
