package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	toml "github.com/pelletier/go-toml/v2"

	"notekeeper/internal/service"
	"notekeeper/internal/storage"
)

// Config holds all configuration for the application.
type Config struct {
	APIPort        string
	DBPath         string
	StorageBackend string
	DocumentKey    string
	IDScheme       string
	SessionTTL     time.Duration
	LogLevel       slog.Level
	LogFormat      string
	LogFile        string
}

// fileConfig is the optional TOML file named by NOTEKEEPER_CONFIG.
type fileConfig struct {
	Server  fileServerConfig  `toml:"server"`
	Storage fileStorageConfig `toml:"storage"`
	Logging fileLoggingConfig `toml:"logging"`
}

type fileServerConfig struct {
	Port       string `toml:"port"`
	SessionTTL string `toml:"session_ttl"`
}

type fileStorageConfig struct {
	Backend     string `toml:"backend"`
	Path        string `toml:"path"`
	DocumentKey string `toml:"document_key"`
	IDScheme    string `toml:"id_scheme"`
}

type fileLoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
	File   string `toml:"file"`
}

func defaultFileConfig() fileConfig {
	return fileConfig{
		Server: fileServerConfig{
			Port:       "9000",
			SessionTTL: "30m",
		},
		Storage: fileStorageConfig{
			Backend:     storage.BackendSQLite,
			Path:        "./data/notekeeper.db",
			DocumentKey: service.DocumentKey,
			IDScheme:    service.IDSchemeUUID,
		},
		Logging: fileLoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads configuration and returns a Config struct.
// Values come from built-in defaults, then the TOML file named by NOTEKEEPER_CONFIG,
// then environment variables. If a .env file exists in the current directory or a
// parent, it is loaded first; variables already set take precedence over it.
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	wd, err := os.Getwd()
	if err == nil {
		dir := wd
		for i := 0; i < 5; i++ { // Limit search depth
			envPath := filepath.Join(dir, ".env")
			if _, err := os.Stat(envPath); err == nil {
				_ = godotenv.Load(envPath)
				break
			}
			parent := filepath.Dir(dir)
			if parent == dir {
				break // Reached filesystem root
			}
			dir = parent
		}
	}

	file := defaultFileConfig()
	if path := os.Getenv("NOTEKEEPER_CONFIG"); path != "" {
		if err := readTOML(path, &file); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	cfg := &Config{
		APIPort:        getEnv("API_PORT", file.Server.Port),
		DBPath:         getEnv("DB_PATH", file.Storage.Path),
		StorageBackend: strings.ToLower(getEnv("STORAGE_BACKEND", file.Storage.Backend)),
		DocumentKey:    getEnv("DOCUMENT_KEY", file.Storage.DocumentKey),
		IDScheme:       strings.ToLower(getEnv("ID_SCHEME", file.Storage.IDScheme)),
		LogFormat:      strings.ToLower(getEnv("LOG_FORMAT", file.Logging.Format)),
		LogFile:        getEnv("LOG_FILE", file.Logging.File),
	}

	ttl, err := time.ParseDuration(getEnv("SESSION_TTL", file.Server.SessionTTL))
	if err != nil {
		return nil, fmt.Errorf("SESSION_TTL must be a valid duration: %w", err)
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("SESSION_TTL must be greater than 0")
	}
	cfg.SessionTTL = ttl

	if err := cfg.LogLevel.UnmarshalText([]byte(getEnv("LOG_LEVEL", file.Logging.Level))); err != nil {
		return nil, fmt.Errorf("LOG_LEVEL must be debug, info, warn or error: %w", err)
	}

	// Validate enumerated fields
	switch cfg.StorageBackend {
	case storage.BackendSQLite, storage.BackendBolt:
	default:
		return nil, fmt.Errorf("STORAGE_BACKEND must be %q or %q, got %q", storage.BackendSQLite, storage.BackendBolt, cfg.StorageBackend)
	}
	switch cfg.IDScheme {
	case service.IDSchemeUUID, service.IDSchemeTimestamp:
	default:
		return nil, fmt.Errorf("ID_SCHEME must be %q or %q, got %q", service.IDSchemeUUID, service.IDSchemeTimestamp, cfg.IDScheme)
	}
	switch cfg.LogFormat {
	case "text", "json":
	default:
		return nil, fmt.Errorf("LOG_FORMAT must be text or json, got %q", cfg.LogFormat)
	}
	if cfg.DBPath == "" {
		return nil, fmt.Errorf("DB_PATH is required")
	}

	return cfg, nil
}

// readTOML decodes path into out. A missing or empty file leaves out unchanged.
func readTOML(path string, out any) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return errors.New("path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil
	}
	return toml.Unmarshal(data, out)
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
