package config

import (
	"fmt"
	"log/slog"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

var validEnvs = map[string]bool{
	"local": true,
	"alpha": true,
	"beta":  true,
	"prod":  true,
}

var validDrivers = map[string]bool{
	"postgres": true,
	"sqlite":   true,
}

type Config struct {
	ServerPort       string   `yaml:"server_port"`
	AppEnv           string   `yaml:"app_env"`
	LogLevel         string   `yaml:"log_level"`
	LogFile          string   `yaml:"log_file"`
	StorageDriver    string   `yaml:"storage_driver"`
	SQLitePath       string   `yaml:"sqlite_path"`
	AutoMigrate      bool     `yaml:"auto_migrate"`
	SeedOnStart      bool     `yaml:"seed_on_start"`
	StatsConcurrency int      `yaml:"stats_concurrency"`
	DB               DBConfig `yaml:"db"`
}

func (c Config) ParseLogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func (c Config) Validate() error {
	if _, err := strconv.Atoi(c.ServerPort); err != nil {
		return fmt.Errorf("invalid SERVER_PORT %q: %w", c.ServerPort, err)
	}
	if !validEnvs[c.AppEnv] {
		return fmt.Errorf("invalid APP_ENV %q: must be one of local, alpha, beta, prod", c.AppEnv)
	}
	if !validDrivers[c.StorageDriver] {
		return fmt.Errorf("invalid STORAGE_DRIVER %q: must be postgres or sqlite", c.StorageDriver)
	}
	if c.StorageDriver == "sqlite" && c.SQLitePath == "" {
		return fmt.Errorf("SQLITE_PATH is required when STORAGE_DRIVER is sqlite")
	}
	if c.StatsConcurrency < 1 {
		return fmt.Errorf("invalid STATS_CONCURRENCY %d: must be at least 1", c.StatsConcurrency)
	}
	if c.SeedOnStart && c.AppEnv == "prod" {
		return fmt.Errorf("SEED_ON_START must not be enabled in %s environment", c.AppEnv)
	}
	return nil
}

type DBConfig struct {
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	SSLMode  string `yaml:"sslmode"`
}

func (d DBConfig) DSN() string {
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Password),
		Host:     net.JoinHostPort(d.Host, d.Port),
		Path:     d.Name,
		RawQuery: fmt.Sprintf("sslmode=%s", url.QueryEscape(d.SSLMode)),
	}
	return u.String()
}

func defaults() Config {
	return Config{
		ServerPort:       "8080",
		AppEnv:           "local",
		LogLevel:         "info",
		StorageDriver:    "postgres",
		SQLitePath:       "habits.db",
		AutoMigrate:      true,
		StatsConcurrency: 4,
		DB: DBConfig{
			Host:     "localhost",
			Port:     "5432",
			User:     "habit",
			Password: "habit",
			Name:     "habit",
			SSLMode:  "disable",
		},
	}
}

// Load layers defaults, the optional YAML file at path, and environment
// variables, in increasing priority.
func Load(path string) (Config, error) {
	cfg := defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	cfg.ServerPort = envOrDefault("SERVER_PORT", cfg.ServerPort)
	cfg.AppEnv = envOrDefault("APP_ENV", cfg.AppEnv)
	cfg.LogLevel = envOrDefault("LOG_LEVEL", cfg.LogLevel)
	cfg.LogFile = envOrDefault("LOG_FILE", cfg.LogFile)
	cfg.StorageDriver = strings.ToLower(envOrDefault("STORAGE_DRIVER", cfg.StorageDriver))
	cfg.SQLitePath = envOrDefault("SQLITE_PATH", cfg.SQLitePath)
	cfg.AutoMigrate = envBool("AUTO_MIGRATE", cfg.AutoMigrate)
	cfg.SeedOnStart = envBool("SEED_ON_START", cfg.SeedOnStart)

	if v := os.Getenv("STATS_CONCURRENCY"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid STATS_CONCURRENCY %q: %w", v, err)
		}
		cfg.StatsConcurrency = n
	}

	cfg.DB.Host = envOrDefault("DB_HOST", cfg.DB.Host)
	cfg.DB.Port = envOrDefault("DB_PORT", cfg.DB.Port)
	cfg.DB.User = envOrDefault("DB_USER", cfg.DB.User)
	cfg.DB.Password = envOrDefault("DB_PASSWORD", cfg.DB.Password)
	cfg.DB.Name = envOrDefault("DB_NAME", cfg.DB.Name)
	cfg.DB.SSLMode = envOrDefault("DB_SSLMODE", cfg.DB.SSLMode)

	return cfg, nil
}

func envOrDefault(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func envBool(key string, defaultVal bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	return strings.EqualFold(v, "true")
}
