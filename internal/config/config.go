package config

import (
	"fmt"
	"time"

	"github.com/grandstay/service-hotel/pkg/config"
	"github.com/grandstay/service-hotel/pkg/database"
)

const (
	StorageDriverPostgres = "postgres"
	StorageDriverMemory   = "memory"
)

// ServiceConfig holds all configuration for the hotel service.
type ServiceConfig struct {
	Port          string
	AppEnv        string
	Timezone      *time.Location
	StorageDriver string
	MigrationsDir string
	DBConfig      database.PostgresConfig
	JWTConfig     config.JWTConfig
	KafkaConfig   config.KafkaConfig
	RedisConfig   config.RedisConfig
	CacheTTL      time.Duration
}

// Load reads configuration from environment variables and returns a ServiceConfig.
func Load() (*ServiceConfig, error) {
	v, err := config.Load("hotel")
	if err != nil {
		return nil, err
	}
	v.SetDefault("DB_NAME", "hotel")
	v.SetDefault("HOTEL_TIMEZONE", "UTC")
	v.SetDefault("STORAGE_DRIVER", StorageDriverPostgres)
	v.SetDefault("MIGRATIONS_DIR", "migrations")
	v.SetDefault("CACHE_TTL", "5m")
	v.SetDefault("KAFKA_GROUP_ID", "service-hotel")

	loc, err := time.LoadLocation(v.GetString("HOTEL_TIMEZONE"))
	if err != nil {
		return nil, fmt.Errorf("invalid HOTEL_TIMEZONE: %w", err)
	}

	driver := v.GetString("STORAGE_DRIVER")
	if driver != StorageDriverPostgres && driver != StorageDriverMemory {
		return nil, fmt.Errorf("unsupported STORAGE_DRIVER %q", driver)
	}

	return &ServiceConfig{
		Port:          config.GetServicePort(v, "SERVICE_PORT"),
		AppEnv:        config.GetAppEnv(v),
		Timezone:      loc,
		StorageDriver: driver,
		MigrationsDir: v.GetString("MIGRATIONS_DIR"),
		DBConfig:      config.LoadDatabaseConfig(v, "DB_NAME"),
		JWTConfig:     config.LoadJWTConfig(v),
		KafkaConfig:   config.LoadKafkaConfig(v),
		RedisConfig:   config.LoadRedisConfig(v),
		CacheTTL:      v.GetDuration("CACHE_TTL"),
	}, nil
}
