package loaders_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/4chain-ag/go-overlay-helloworld/pkg/config/loaders"
	"github.com/stretchr/testify/require"
)

type testConfig struct {
	Name    string        `mapstructure:"name"`
	Limit   int           `mapstructure:"page_limit"`
	Timeout time.Duration `mapstructure:"timeout"`
	Store   testStore     `mapstructure:"record_store"`
}

type testStore struct {
	Backend string `mapstructure:"backend"`
}

func newTestConfig() testConfig {
	return testConfig{
		Name:    "default",
		Limit:   50,
		Timeout: 5 * time.Second,
		Store:   testStore{Backend: "memory"},
	}
}

func writeConfig(t *testing.T, content, ext string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config."+ext)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_ShouldReturnDefaults_WhenNothingElseIsSet(t *testing.T) {
	// given:
	l := loaders.NewLoader(newTestConfig, "HWTEST")

	// when:
	cfg, err := l.Load()

	// then:
	require.NoError(t, err)
	require.Equal(t, newTestConfig(), cfg)
}

func TestLoad_ShouldApplySourcesInPriorityOrder(t *testing.T) {
	tests := map[string]struct {
		content  string
		ext      string
		env      map[string]string
		expected testConfig
	}{
		"yaml file overrides defaults": {
			content: "page_limit: 10\nrecord_store:\n  backend: sqlite\n",
			ext:     "yaml",
			expected: testConfig{
				Name: "default", Limit: 10, Timeout: 5 * time.Second, Store: testStore{Backend: "sqlite"},
			},
		},
		"json file overrides defaults": {
			content: `{"timeout": "1m", "record_store": {"backend": "mongo"}}`,
			ext:     "json",
			expected: testConfig{
				Name: "default", Limit: 50, Timeout: time.Minute, Store: testStore{Backend: "mongo"},
			},
		},
		"dotenv keys are mapped onto nested fields": {
			content: "HWTEST_PAGE_LIMIT=7\nHWTEST_RECORD_STORE_BACKEND=\"sqlite\"\n",
			ext:     "env",
			expected: testConfig{
				Name: "default", Limit: 7, Timeout: 5 * time.Second, Store: testStore{Backend: "sqlite"},
			},
		},
		"environment overrides the file": {
			content: "page_limit: 10\nrecord_store:\n  backend: sqlite\n",
			ext:     "yml",
			env: map[string]string{
				"HWTEST_RECORD_STORE_BACKEND": "mongo",
				"HWTEST_TIMEOUT":              "250ms",
			},
			expected: testConfig{
				Name: "default", Limit: 10, Timeout: 250 * time.Millisecond, Store: testStore{Backend: "mongo"},
			},
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			// given:
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			l := loaders.NewLoader(newTestConfig, "HWTEST")
			require.NoError(t, l.SetConfigFilePath(writeConfig(t, tc.content, tc.ext)))

			// when:
			cfg, err := l.Load()

			// then:
			require.NoError(t, err)
			require.Equal(t, tc.expected, cfg)
		})
	}
}

func TestSetConfigFilePath_ShouldRejectUnsupportedExtensions(t *testing.T) {
	// given:
	l := loaders.NewLoader(newTestConfig, "HWTEST")

	// when:
	err := l.SetConfigFilePath("config.toml")

	// then:
	require.ErrorIs(t, err, loaders.ErrUnsupportedExtension)
}

func TestLoad_ShouldFail_WhenExplicitFileIsMissing(t *testing.T) {
	// given:
	l := loaders.NewLoader(newTestConfig, "HWTEST")
	require.NoError(t, l.SetConfigFilePath(filepath.Join(t.TempDir(), "missing.yaml")))

	// when:
	_, err := l.Load()

	// then:
	require.Error(t, err)
}
