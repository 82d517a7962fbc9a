package loaders

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
)

// DefaultConfigFilePath is the file read when no other path is set. It is optional.
const DefaultConfigFilePath = "config.yaml"

// ErrUnsupportedExtension is returned for config files the loader cannot parse.
var ErrUnsupportedExtension = errors.New("unsupported config file extension")

// SupportedExts lists the config file extensions understood by the loader.
func SupportedExts() []string {
	return []string{"yaml", "yml", "json", "dotenv", "env"}
}

// Loader builds a configuration of type T from defaults, an optional config
// file and environment variables, in increasing order of priority.
type Loader[T any] struct {
	cfg            T
	envPrefix      string
	configFilePath string
	configFileExt  string
	viper          *viper.Viper
}

// NewLoader returns a loader seeded with defaults(). Environment variables are
// read as <ENVPREFIX>_<KEY>, nested keys joined with underscores, e.g.
// HELLOWORLD_STORAGE_MONGO_URI for storage.mongo.uri.
func NewLoader[T any](defaults func() T, envPrefix string) *Loader[T] {
	return &Loader[T]{
		cfg:            defaults(),
		envPrefix:      envPrefix,
		configFilePath: DefaultConfigFilePath,
		configFileExt:  "yaml",
		viper:          viper.New(),
	}
}

// SetConfigFilePath points the loader at path. A file set this way must exist
// when Load is called.
func (l *Loader[T]) SetConfigFilePath(path string) error {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if !slices.Contains(SupportedExts(), ext) {
		return fmt.Errorf("%w: %q", ErrUnsupportedExtension, ext)
	}

	l.configFilePath = path
	l.configFileExt = ext
	return nil
}

// Load resolves the configuration. Environment variables win over the config
// file, which wins over the defaults.
func (l *Loader[T]) Load() (T, error) {
	if err := l.setDefaults(); err != nil {
		return l.cfg, err
	}

	l.viper.SetEnvPrefix(l.envPrefix)
	l.viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	l.viper.AutomaticEnv()

	if err := l.readFile(); err != nil {
		return l.cfg, err
	}

	if err := l.viper.Unmarshal(&l.cfg); err != nil {
		return l.cfg, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return l.cfg, nil
}

func (l *Loader[T]) setDefaults() error {
	defaults := make(map[string]any)
	if err := mapstructure.Decode(l.cfg, &defaults); err != nil {
		return fmt.Errorf("failed to decode config defaults: %w", err)
	}

	for key, value := range defaults {
		l.viper.SetDefault(key, value)
	}
	return nil
}

func (l *Loader[T]) readFile() error {
	if l.configFilePath == DefaultConfigFilePath {
		if _, err := os.Stat(l.configFilePath); errors.Is(err, os.ErrNotExist) {
			return nil
		}
	}

	l.viper.SetConfigFile(l.configFilePath)
	if err := l.viper.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read config file %s: %w", l.configFilePath, err)
	}

	if l.configFileExt != "env" && l.configFileExt != "dotenv" {
		return nil
	}

	// dotenv keys cannot carry dots: PREFIX_STORAGE_BACKEND is aliased to storage.backend
	prefix := ""
	if l.envPrefix != "" {
		prefix = l.envPrefix + "_"
	}
	for _, key := range l.viper.AllKeys() {
		l.viper.RegisterAlias(prefix+strings.ReplaceAll(key, ".", "_"), key)
	}
	return nil
}
