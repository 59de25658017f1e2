package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"fitclub/internal/logger"
)

const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

type Config struct {
	DataDir        string
	StorageBackend string
	DatabaseURL    string

	LogLevel string
	LogFile  string
	Debug    bool

	MetricsAddr string

	// Email settings are read so that .env files stay valid; nothing sends mail.
	Email EmailConfig
}

type EmailConfig struct {
	Server   string
	Port     int
	Username string
	Password string
	UseTLS   bool
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		DataDir:        getEnv("DATA_DIR", "data"),
		StorageBackend: strings.ToLower(getEnv("STORAGE_BACKEND", BackendJSON)),
		DatabaseURL:    getEnv("DATABASE_URL", "sqlite:///data/fitclub.db"),

		LogLevel: strings.ToUpper(getEnv("LOG_LEVEL", "INFO")),
		LogFile:  getEnv("LOG_FILE", ""),

		MetricsAddr: getEnv("METRICS_ADDR", ""),

		Email: EmailConfig{
			Server:   getEnv("EMAIL_SERVER", "smtp.example.com"),
			Username: getEnv("EMAIL_USERNAME", ""),
			Password: getEnv("EMAIL_PASSWORD", ""),
		},
	}

	var err error
	if cfg.Debug, err = getBool("DEBUG", false); err != nil {
		return nil, err
	}
	if cfg.Email.UseTLS, err = getBool("EMAIL_USE_TLS", true); err != nil {
		return nil, err
	}
	if cfg.Email.Port, err = getInt("EMAIL_PORT", 587); err != nil {
		return nil, err
	}

	if cfg.Debug {
		cfg.LogLevel = "DEBUG"
	}
	if _, err := logger.ParseLevel(cfg.LogLevel); err != nil {
		return nil, err
	}

	switch cfg.StorageBackend {
	case BackendJSON, BackendMemory:
	case BackendSQLite:
		if !strings.HasPrefix(cfg.DatabaseURL, "sqlite:///") {
			return nil, fmt.Errorf("DATABASE_URL must start with sqlite:///, got %q", cfg.DatabaseURL)
		}
	default:
		return nil, fmt.Errorf("unknown STORAGE_BACKEND %q", cfg.StorageBackend)
	}

	return cfg, nil
}

// SQLitePath converts DATABASE_URL into a filesystem path:
// sqlite:///app.db is relative, sqlite:////var/app.db is absolute.
func (c *Config) SQLitePath() string {
	return strings.TrimPrefix(c.DatabaseURL, "sqlite:///")
}

func (c *Config) CollectionPath(name string) string {
	return filepath.Join(c.DataDir, name+".json")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBool(key string, defaultValue bool) (bool, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %w", key, err)
	}
	return b, nil
}

func getInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}
