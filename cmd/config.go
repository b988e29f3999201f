package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	StorageBackendPostgres = "postgres"
	StorageBackendMemory   = "memory"
)

type Config struct {
	HTTPPort string

	StorageBackend string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string
	DBDriver   string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	KafkaBrokers           []string
	KafkaOrderChangedTopic string

	LogLevel string

	ActivationSchedule     string
	ReconciliationSchedule string
}

// LoadConfig reads an optional .env file, then the process environment,
// falling back to defaults for anything unset.
func LoadConfig(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("failed to load %s: %w", f, err)
		}
	}

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("HTTP_PORT", "8080")
	v.SetDefault("STORAGE_BACKEND", StorageBackendPostgres)
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "valet")
	v.SetDefault("DB_PASSWORD", "valet")
	v.SetDefault("DB_NAME", "valet")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_DRIVER", "pgx")
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("KAFKA_BROKERS", "")
	v.SetDefault("KAFKA_ORDER_CHANGED_TOPIC", "valet.order.status-changed")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("ACTIVATION_SCHEDULE", "0 * * * * *")
	v.SetDefault("RECONCILIATION_SCHEDULE", "*/30 * * * * *")

	cfg := Config{
		HTTPPort:               v.GetString("HTTP_PORT"),
		StorageBackend:         strings.ToLower(v.GetString("STORAGE_BACKEND")),
		DBHost:                 v.GetString("DB_HOST"),
		DBPort:                 v.GetString("DB_PORT"),
		DBUser:                 v.GetString("DB_USER"),
		DBPassword:             v.GetString("DB_PASSWORD"),
		DBName:                 v.GetString("DB_NAME"),
		DBSslMode:              v.GetString("DB_SSLMODE"),
		DBDriver:               v.GetString("DB_DRIVER"),
		RedisAddr:              v.GetString("REDIS_ADDR"),
		RedisPassword:          v.GetString("REDIS_PASSWORD"),
		RedisDB:                v.GetInt("REDIS_DB"),
		KafkaBrokers:           splitList(v.GetString("KAFKA_BROKERS")),
		KafkaOrderChangedTopic: v.GetString("KAFKA_ORDER_CHANGED_TOPIC"),
		LogLevel:               v.GetString("LOG_LEVEL"),
		ActivationSchedule:     v.GetString("ACTIVATION_SCHEDULE"),
		ReconciliationSchedule: v.GetString("RECONCILIATION_SCHEDULE"),
	}

	switch cfg.StorageBackend {
	case StorageBackendPostgres, StorageBackendMemory:
	default:
		return Config{}, fmt.Errorf("unknown STORAGE_BACKEND %q", cfg.StorageBackend)
	}

	return cfg, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
