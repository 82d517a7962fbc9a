// Package config holds the settings of the HelloWorld overlay service and the
// helpers that load, validate and export them.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/4chain-ag/go-overlay-helloworld/pkg/config/exporters"
	"github.com/4chain-ag/go-overlay-helloworld/pkg/config/loaders"
	"github.com/4chain-ag/go-overlay-helloworld/pkg/helloworld"
	"github.com/4chain-ag/go-overlay-helloworld/internal/mongodb"
	"github.com/4chain-ag/go-overlay-helloworld/pkg/server"
)

// EnvPrefix prefixes every environment variable read by the loader.
const EnvPrefix = "HELLOWORLD"

// Record store backends.
const (
	BackendMongo  = "mongo"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config contains the settings of the HTTP API, the storage layer and the logger.
type Config struct {
	Server  server.Config `mapstructure:"server"`
	Storage StorageConfig `mapstructure:"storage"`
	Logger  LoggerConfig  `mapstructure:"logger"`
}

// StorageConfig selects where admitted messages and the engine's output ledger are kept.
// An empty LedgerPath keeps the ledger in memory.
type StorageConfig struct {
	Backend    string         `mapstructure:"backend"`
	Timeout    time.Duration  `mapstructure:"timeout"`
	SQLitePath string         `mapstructure:"sqlite_path"`
	LedgerPath string         `mapstructure:"ledger_path"`
	Mongo      mongodb.Config `mapstructure:"mongo"`
}

// LoggerConfig configures the process-wide logger.
type LoggerConfig struct {
	Level       string `mapstructure:"level"`
	Format      string `mapstructure:"format"`
	PrettyPrint bool   `mapstructure:"pretty_print"`
}

// NewDefault returns a configuration that runs the service on local SQLite files.
func NewDefault() Config {
	return Config{
		Server: server.DefaultConfig,
		Storage: StorageConfig{
			Backend:    BackendSQLite,
			Timeout:    helloworld.DefaultStorageTimeout,
			SQLitePath: "helloworld.db",
			LedgerPath: "overlay.db",
			Mongo:      mongodb.DefaultConfig,
		},
		Logger: LoggerConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads the configuration from path (optional when it is the default
// "config.yaml") and the HELLOWORLD_* environment, then validates it.
func Load(path string) (Config, error) {
	loader := loaders.NewLoader(NewDefault, EnvPrefix)
	if path != "" {
		if err := loader.SetConfigFilePath(path); err != nil {
			return Config{}, err
		}
	}

	cfg, err := loader.Load()
	if err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports settings the service cannot start with.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("%w: server port %d out of range", ErrInvalidConfig, c.Server.Port)
	}
	if c.Storage.Timeout < 0 {
		return fmt.Errorf("%w: negative storage timeout", ErrInvalidConfig)
	}

	switch c.Storage.Backend {
	case BackendMongo:
		if strings.TrimSpace(c.Storage.Mongo.URI) == "" || strings.TrimSpace(c.Storage.Mongo.Database) == "" {
			return fmt.Errorf("%w: mongo backend requires uri and database", ErrInvalidConfig)
		}
	case BackendSQLite:
		if strings.TrimSpace(c.Storage.SQLitePath) == "" {
			return fmt.Errorf("%w: sqlite backend requires sqlite_path", ErrInvalidConfig)
		}
	case BackendMemory:
	default:
		return fmt.Errorf("%w: unknown storage backend %q", ErrInvalidConfig, c.Storage.Backend)
	}

	switch strings.ToLower(c.Logger.Format) {
	case "", "text", "json":
	default:
		return fmt.Errorf("%w: unknown logger format %q", ErrInvalidConfig, c.Logger.Format)
	}
	return nil
}

// Export writes the configuration to path, in the format given by its extension:
// json, env/dotenv or yaml (the default).
func (c *Config) Export(path string) error {
	var err error
	switch strings.TrimPrefix(filepath.Ext(path), ".") {
	case "json":
		err = exporters.ToJSONFile(c, path)
	case "env", "dotenv":
		err = exporters.ToEnvFile(c, path, EnvPrefix)
	default:
		err = exporters.ToYAMLFile(c, path)
	}

	if err != nil {
		return fmt.Errorf("failed to export configuration: %w", err)
	}
	return nil
}
