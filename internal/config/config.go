// Package config loads typed configuration from the environment, with
// optional .env support for local development.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Auth      AuthConfig
	Simulator SimulatorConfig
	Retention RetentionConfig
	Logging   LoggingConfig
	OpenAI    OpenAIConfig
}

type ServerConfig struct {
	Host            string
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	FrontendURL     string
	Environment     string
}

// DatabaseConfig covers all three drivers. Host/Port/User apply to
// postgres, Path to sqlite, neither to memory.
type DatabaseConfig struct {
	Driver          string
	Host            string
	Port            int
	Name            string
	User            string
	Password        string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	Path            string
}

type AuthConfig struct {
	JWTSecret          string
	AccessTokenExpiry  time.Duration
	RefreshTokenExpiry time.Duration
	BCryptCost         int
	// DemoMode seeds demo users and lets unauthenticated requests act
	// as the default administrator. Must be enabled deliberately,
	// never implied.
	DemoMode bool
}

type SimulatorConfig struct {
	Enabled           bool
	MetricsInterval   time.Duration
	DetectorInterval  time.Duration
	MonitorInterval   time.Duration
	BroadcastInterval time.Duration
	// ProfilePath points at a YAML attack profile file overriding the
	// built-in set.
	ProfilePath string
}

type RetentionConfig struct {
	Schedule      string
	MetricsMaxAge time.Duration
	ThreatsMaxAge time.Duration
}

type LoggingConfig struct {
	Level  string
	Format string
}

type OpenAIConfig struct {
	APIKey string
}

// Load reads the environment into a validated Config. A .env file is
// honored when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Host:            envString("SERVER_HOST", "0.0.0.0"),
			Port:            envInt("SERVER_PORT", 8080),
			ReadTimeout:     envDuration("SERVER_READ_TIMEOUT", 10*time.Second),
			WriteTimeout:    envDuration("SERVER_WRITE_TIMEOUT", 10*time.Second),
			ShutdownTimeout: envDuration("SERVER_SHUTDOWN_TIMEOUT", 30*time.Second),
			FrontendURL:     envString("FRONTEND_URL", "http://localhost:5173"),
			Environment:     envString("ENVIRONMENT", "development"),
		},
		Database: DatabaseConfig{
			Driver:          envString("DB_DRIVER", "sqlite"),
			Host:            envString("DB_HOST", "localhost"),
			Port:            envInt("DB_PORT", 5432),
			Name:            envString("DB_NAME", "agisfl"),
			User:            envString("DB_USER", ""),
			Password:        envString("DB_PASSWORD", ""),
			SSLMode:         envString("DB_SSLMODE", "disable"),
			MaxOpenConns:    envInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    envInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: envDuration("DB_CONN_MAX_LIFETIME", 5*time.Minute),
			Path:            envString("DB_PATH", "./agisfl.db"),
		},
		Auth: AuthConfig{
			JWTSecret:          envString("JWT_SECRET", ""),
			AccessTokenExpiry:  envDuration("JWT_ACCESS_EXPIRY", 15*time.Minute),
			RefreshTokenExpiry: envDuration("JWT_REFRESH_EXPIRY", 7*24*time.Hour),
			BCryptCost:         envInt("BCRYPT_COST", 12),
			DemoMode:           envBool("DEMO_MODE", false),
		},
		Simulator: SimulatorConfig{
			Enabled:           envBool("SIMULATOR_ENABLED", true),
			MetricsInterval:   envDuration("SIM_METRICS_INTERVAL", 5*time.Second),
			DetectorInterval:  envDuration("SIM_DETECTOR_INTERVAL", 5*time.Second),
			MonitorInterval:   envDuration("SIM_MONITOR_INTERVAL", 10*time.Second),
			BroadcastInterval: envDuration("WS_BROADCAST_INTERVAL", 3*time.Second),
			ProfilePath:       envString("SIM_PROFILE_PATH", ""),
		},
		Retention: RetentionConfig{
			Schedule:      envString("RETENTION_SCHEDULE", "0 * * * *"),
			MetricsMaxAge: envDuration("RETENTION_METRICS_MAX_AGE", 24*time.Hour),
			ThreatsMaxAge: envDuration("RETENTION_THREATS_MAX_AGE", 7*24*time.Hour),
		},
		Logging: LoggingConfig{
			Level:  envString("LOG_LEVEL", "info"),
			Format: envString("LOG_FORMAT", "json"),
		},
		OpenAI: OpenAIConfig{
			APIKey: envString("OPENAI_API_KEY", ""),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET must be set")
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	switch c.Database.Driver {
	case "sqlite", "postgres", "memory":
	default:
		return fmt.Errorf("unsupported database driver: %s", c.Database.Driver)
	}

	if c.Auth.DemoMode && c.Server.Environment == "production" {
		return fmt.Errorf("DEMO_MODE cannot be enabled in production")
	}
	return nil
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

func envBool(key string, fallback bool) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}
