package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/yeremiapane/restaurant-floorplan/storage"
)

const (
	DriverSQLite = "sqlite"
	DriverMySQL  = "mysql"

	BackendGorm   = "gorm"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

type Config struct {
	Port               string
	GinMode            string
	LogLevel           string
	DBDriver           string
	DBDSN              string
	KVBackend          string
	KVNamespace        string
	Timezone           string
	Location           *time.Location
	MonitorInterval    time.Duration
	CanvasIdleTTL      time.Duration
	CORSOrigin         string
	RateLimitPerSecond int
	RateLimitBurst     int
}

// Load -> baca konfigurasi dari environment (setelah godotenv di main)
func Load() (Config, error) {
	cfg := Config{
		Port:               envStr("PORT", "8080"),
		GinMode:            envStr("GIN_MODE", "debug"),
		LogLevel:           envStr("LOG_LEVEL", "info"),
		DBDriver:           strings.ToLower(envStr("DB_DRIVER", DriverSQLite)),
		KVBackend:          strings.ToLower(envStr("KV_BACKEND", BackendGorm)),
		KVNamespace:        envStr("KV_NAMESPACE", storage.DefaultNamespace),
		Timezone:           envStr("APP_TIMEZONE", "Local"),
		MonitorInterval:    envDur("MONITOR_INTERVAL", 30*time.Second),
		CanvasIdleTTL:      envDur("CANVAS_IDLE_TTL", 2*time.Hour),
		CORSOrigin:         envStr("CORS_ORIGIN", "http://127.0.0.1:5500"),
		RateLimitPerSecond: envInt("RATE_LIMIT_PER_SECOND", 50),
		RateLimitBurst:     envInt("RATE_LIMIT_BURST", 100),
	}

	switch cfg.DBDriver {
	case DriverSQLite, DriverMySQL:
	default:
		return cfg, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}
	cfg.DBDSN = os.Getenv("DB_DSN")
	if cfg.DBDSN == "" {
		cfg.DBDSN = defaultDSN(cfg.DBDriver)
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return cfg, fmt.Errorf("invalid APP_TIMEZONE %q: %w", cfg.Timezone, err)
	}
	cfg.Location = loc

	if cfg.RateLimitPerSecond < 1 {
		cfg.RateLimitPerSecond = 1
	}
	if cfg.RateLimitBurst < cfg.RateLimitPerSecond {
		cfg.RateLimitBurst = cfg.RateLimitPerSecond
	}
	return cfg, nil
}

func defaultDSN(driver string) string {
	if driver == DriverSQLite {
		return envStr("DB_NAME", "floorplan.db")
	}
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		envStr("DB_USER", "root"),
		os.Getenv("DB_PASS"),
		envStr("DB_HOST", "127.0.0.1"),
		envStr("DB_PORT", "3306"),
		envStr("DB_NAME", "restaurant_floorplan"),
	)
}

func envStr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func envInt(k string, d int) int {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	if n, err := strconv.Atoi(v); err == nil {
		return n
	}
	return d
}

func envDur(k string, d time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	if dur, err := time.ParseDuration(v); err == nil {
		return dur
	}
	return d
}
