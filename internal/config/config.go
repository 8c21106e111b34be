package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Драйверы хранилища
const (
	DriverFile     = "file"
	DriverMemory   = "memory"
	DriverRedis    = "redis"
	DriverPostgres = "postgres"
)

type Config struct {
	TelegramToken string `mapstructure:"TELEGRAM_TOKEN"`
	Environment   string `mapstructure:"ENV"`
	LogLevel      string `mapstructure:"LOG_LEVEL"`

	StorageDriver string `mapstructure:"STORAGE_DRIVER"`
	StoragePath   string `mapstructure:"STORAGE_PATH"`
	DBDSN         string `mapstructure:"DB_DSN"`

	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisDB       int    `mapstructure:"REDIS_DB"`
	RedisPrefix   string `mapstructure:"REDIS_PREFIX"`

	Timezone       string        `mapstructure:"TIMEZONE"`
	SeedDefaults   bool          `mapstructure:"SEED_DEFAULTS"`
	ReportInterval time.Duration `mapstructure:"REPORT_INTERVAL"`
}

func Load() (*Config, error) {
	// Пытаемся загрузить .env файл (игнорируем ошибку, если файла нет)
	if err := godotenv.Load(".env"); err != nil {
		log.Println("No .env file found, using environment variables")
	} else {
		log.Println("Loaded configuration from .env file")
	}

	return FromEnv(os.Getenv)
}

// FromEnv собирает конфигурацию из функции чтения переменных
func FromEnv(getenv func(string) string) (*Config, error) {
	cfg := &Config{
		TelegramToken:  getenv("TELEGRAM_TOKEN"),
		Environment:    valueOr(getenv("ENV"), "development"),
		LogLevel:       strings.ToLower(getenv("LOG_LEVEL")),
		StorageDriver:  strings.ToLower(valueOr(getenv("STORAGE_DRIVER"), DriverFile)),
		StoragePath:    valueOr(getenv("STORAGE_PATH"), "data/gym.json"),
		DBDSN:          getenv("DB_DSN"),
		RedisAddr:      valueOr(getenv("REDIS_ADDR"), "localhost:6379"),
		RedisPassword:  getenv("REDIS_PASSWORD"),
		RedisPrefix:    valueOr(getenv("REDIS_PREFIX"), "gym:"),
		Timezone:       valueOr(getenv("TIMEZONE"), "Local"),
		SeedDefaults:   true,
		ReportInterval: 24 * time.Hour,
	}

	var err error
	if v := getenv("REDIS_DB"); v != "" {
		if cfg.RedisDB, err = strconv.Atoi(v); err != nil {
			return nil, fmt.Errorf("REDIS_DB: %w", err)
		}
	}
	if v := getenv("SEED_DEFAULTS"); v != "" {
		if cfg.SeedDefaults, err = strconv.ParseBool(v); err != nil {
			return nil, fmt.Errorf("SEED_DEFAULTS: %w", err)
		}
	}
	if v := getenv("REPORT_INTERVAL"); v != "" {
		if cfg.ReportInterval, err = time.ParseDuration(v); err != nil {
			return nil, fmt.Errorf("REPORT_INTERVAL: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate проверяет согласованность настроек
func (c *Config) Validate() error {
	switch c.StorageDriver {
	case DriverFile:
		if c.StoragePath == "" {
			return fmt.Errorf("STORAGE_PATH is required for file storage")
		}
	case DriverMemory:
	case DriverRedis:
		if c.RedisAddr == "" {
			return fmt.Errorf("REDIS_ADDR is required for redis storage")
		}
	case DriverPostgres:
		if c.DBDSN == "" {
			return fmt.Errorf("DB_DSN is required but not set")
		}
	default:
		return fmt.Errorf("unknown STORAGE_DRIVER %q", c.StorageDriver)
	}

	if c.ReportInterval <= 0 {
		return fmt.Errorf("REPORT_INTERVAL must be positive")
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// Location зона, в которой интерпретируются даты и время слотов
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("TIMEZONE: %w", err)
	}
	return loc, nil
}

func valueOr(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
