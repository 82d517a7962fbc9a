// Package exporters writes configuration structs to yaml, json and dotenv files.
package exporters

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

const ownerReadWriteAccess = 0o600

// ErrEmptyConfig is returned when the config decodes to an empty map.
var ErrEmptyConfig = errors.New("config appears empty or unsupported, nothing to write")

// ToEnvFile writes cfg as sorted PREFIX_KEY="value" lines.
func ToEnvFile(cfg any, filename string, envPrefix string) error {
	m, err := toMap(cfg)
	if err != nil {
		return err
	}

	flat := make(map[string]string)
	flatten(strings.ToUpper(envPrefix), m, flat)

	lines := make([]string, 0, len(flat))
	for k, v := range flat {
		lines = append(lines, fmt.Sprintf("%s=%q", k, v))
	}
	slices.Sort(lines)

	return write(filename, []byte(strings.Join(lines, "\n")+"\n"))
}

// ToYAMLFile writes cfg as a yaml document keyed by the mapstructure tags.
func ToYAMLFile(cfg any, filename string) error {
	m, err := toMap(cfg)
	if err != nil {
		return err
	}

	bb, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("failed to marshal config to yaml: %w", err)
	}
	return write(filename, bb)
}

// ToJSONFile writes cfg as an indented json document keyed by the mapstructure tags.
func ToJSONFile(cfg any, filename string) error {
	m, err := toMap(cfg)
	if err != nil {
		return err
	}

	bb, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config to json: %w", err)
	}
	return write(filename, bb)
}

// toMap decodes cfg into nested maps. Durations are rendered as strings
// ("10s") so the written file reads back through the loader unchanged.
func toMap(cfg any) (map[string]any, error) {
	var m map[string]any
	if err := mapstructure.Decode(cfg, &m); err != nil {
		return nil, fmt.Errorf("failed to decode config to map: %w", err)
	}
	if len(m) == 0 {
		return nil, ErrEmptyConfig
	}
	return normalize(m), nil
}

func normalize(m map[string]any) map[string]any {
	for k, v := range m {
		switch val := v.(type) {
		case map[string]any:
			m[k] = normalize(val)
		case time.Duration:
			m[k] = val.String()
		}
	}
	return m
}

func write(filename string, content []byte) error {
	if err := os.WriteFile(filename, content, ownerReadWriteAccess); err != nil {
		return fmt.Errorf("failed to write config to %s: %w", filename, err)
	}
	return nil
}

func flatten(prefix string, input map[string]any, out map[string]string) {
	for k, v := range input {
		key := strings.ToUpper(k)
		if prefix != "" {
			key = prefix + "_" + key
		}

		if nested, ok := v.(map[string]any); ok {
			flatten(key, nested, out)
			continue
		}
		out[key] = fmt.Sprintf("%v", v)
	}
}
