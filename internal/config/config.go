package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all service settings, populated from environment variables
// (optionally via a .env file).
type Config struct {
	DBHost     string
	DBPort     int
	DBUser     string
	DBPassword string
	DBName     string
	DBMaxConns int

	// StationsFile optionally overrides the compiled-in station registry.
	StationsFile string

	PollInterval time.Duration
	// WriteTimeout bounds each batch insert so one slow station cannot starve
	// the others sharing the connection pool.
	WriteTimeout time.Duration

	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration
}

// Load reads configuration from environment variables, applying defaults
// where unset.
func Load() (*Config, error) {
	_ = godotenv.Load(".env")

	pollInterval, err := envDuration("POLL_INTERVAL", time.Minute)
	if err != nil {
		return nil, err
	}
	writeTimeout, err := envDuration("WRITE_TIMEOUT", 15*time.Second)
	if err != nil {
		return nil, err
	}
	shutdownTimeout, err := envDuration("SHUTDOWN_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}
	dbPort, err := envInt("HYDROLOGY_DB_PORT", 3306)
	if err != nil {
		return nil, err
	}
	maxConns, err := envInt("HYDROLOGY_DB_MAX_CONNS", 10)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		DBHost:     envOrDefault("HYDROLOGY_DB_HOST", "localhost"),
		DBPort:     dbPort,
		DBUser:     envOrDefault("HYDROLOGY_DB_USER", "hydrology_admin"),
		DBPassword: os.Getenv("HYDROLOGY_DB_PASSWORD"),
		DBName:     envOrDefault("HYDROLOGY_DB_NAME", "Hydrology"),
		DBMaxConns: maxConns,

		StationsFile: os.Getenv("STATIONS_FILE"),

		PollInterval: pollInterval,
		WriteTimeout: writeTimeout,

		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
		LogFormat:       envOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,
	}

	if cfg.DBName == "" {
		return nil, errors.New("HYDROLOGY_DB_NAME is required")
	}
	if cfg.PollInterval <= 0 {
		return nil, errors.New("POLL_INTERVAL must be positive")
	}
	if cfg.WriteTimeout <= 0 {
		return nil, errors.New("WRITE_TIMEOUT must be positive")
	}

	return cfg, nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envDuration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func envInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}
