package config

import (
	"testing"
	"time"
)

func env(values map[string]string) func(string) string {
	return func(key string) string {
		return values[key]
	}
}

func TestFromEnv_Defaults(t *testing.T) {
	cfg, err := FromEnv(env(nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Environment != "development" {
		t.Errorf("expected development, got %s", cfg.Environment)
	}
	if cfg.StorageDriver != DriverFile || cfg.StoragePath != "data/gym.json" {
		t.Errorf("unexpected storage %s %s", cfg.StorageDriver, cfg.StoragePath)
	}
	if !cfg.SeedDefaults {
		t.Error("seeding must be on by default")
	}
	if cfg.ReportInterval != 24*time.Hour {
		t.Errorf("expected 24h report interval, got %s", cfg.ReportInterval)
	}
}

func TestFromEnv_Overrides(t *testing.T) {
	cfg, err := FromEnv(env(map[string]string{
		"STORAGE_DRIVER":  "Redis",
		"REDIS_ADDR":      "cache:6379",
		"REDIS_DB":        "3",
		"SEED_DEFAULTS":   "false",
		"REPORT_INTERVAL": "90m",
		"TIMEZONE":        "UTC",
		"LOG_LEVEL":       "WARN",
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.StorageDriver != DriverRedis || cfg.RedisAddr != "cache:6379" || cfg.RedisDB != 3 {
		t.Errorf("unexpected redis config %+v", cfg)
	}
	if cfg.SeedDefaults {
		t.Error("expected seeding disabled")
	}
	if cfg.ReportInterval != 90*time.Minute {
		t.Errorf("expected 90m, got %s", cfg.ReportInterval)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("expected warn log level, got %q", cfg.LogLevel)
	}
	loc, _ := cfg.Location()
	if loc != time.UTC {
		t.Errorf("expected UTC, got %s", loc)
	}
}

func TestFromEnv_Errors(t *testing.T) {
	tests := []struct {
		name string
		vars map[string]string
	}{
		{"postgres without dsn", map[string]string{"STORAGE_DRIVER": "postgres"}},
		{"unknown driver", map[string]string{"STORAGE_DRIVER": "mongo"}},
		{"bad redis db", map[string]string{"REDIS_DB": "x"}},
		{"bad seed flag", map[string]string{"SEED_DEFAULTS": "maybe"}},
		{"bad interval", map[string]string{"REPORT_INTERVAL": "daily"}},
		{"negative interval", map[string]string{"REPORT_INTERVAL": "-1h"}},
		{"bad timezone", map[string]string{"TIMEZONE": "Mars/Olympus"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := FromEnv(env(tt.vars)); err == nil {
				t.Error("expected error")
			}
		})
	}
}
