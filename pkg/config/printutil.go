package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/gookit/slog"
	"gopkg.in/yaml.v3"
)

// ErrUnsupportedPrintFormat is returned when an unsupported print format is provided.
var ErrUnsupportedPrintFormat = errors.New("unsupported print format")

// Render returns the configuration as yaml or json. The admin token is masked.
func (c Config) Render(format string) (string, error) {
	masked := c
	if masked.Server.AdminBearerToken != "" {
		masked.Server.AdminBearerToken = "********"
	}
	if masked.Storage.Mongo.Password != "" {
		masked.Storage.Mongo.Password = "********"
	}

	var (
		data []byte
		err  error
	)
	switch strings.ToLower(format) {
	case "json":
		data, err = json.MarshalIndent(masked, "", "  ")
	case "yaml", "yml":
		data, err = yaml.Marshal(masked)
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedPrintFormat, format)
	}
	if err != nil {
		return "", fmt.Errorf("failed to marshal config for printing: %w", err)
	}
	return string(data), nil
}

// PrettyPrintAs logs the configuration in the given format (json or yaml).
func (c Config) PrettyPrintAs(format string) error {
	out, err := c.Render(format)
	if err != nil {
		return err
	}
	slog.Infof("Loaded configuration:\n%s", out)
	return nil
}
