// internal/appconfig/appconfig_test.go
package appconfig

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	validConfig := `{
		"model": "gemini-2.0-flash",
		"datasetPath": "data/train.json",
		"requestsPerMinute": 10,
		"dailyLimit": 1500,
		"timeout": 30
	}`

	t.Run("valid config", func(t *testing.T) {
		path := writeConfig(t, validConfig)
		cfg, err := Load(path)
		if err != nil {
			t.Fatalf("Load returned error: %v", err)
		}
		if cfg.Model != "gemini-2.0-flash" {
			t.Errorf("model = %q", cfg.Model)
		}
		if cfg.RequestTimeout() != 30*time.Second {
			t.Errorf("timeout = %s, want 30s", cfg.RequestTimeout())
		}
		if cfg.ConfigPath != path {
			t.Errorf("ConfigPath = %q, want %q", cfg.ConfigPath, path)
		}
	})

	t.Run("invalid json", func(t *testing.T) {
		if _, err := Load(writeConfig(t, "{invalid")); err == nil {
			t.Fatal("expected error for invalid JSON")
		}
	})

	t.Run("missing model", func(t *testing.T) {
		if _, err := Load(writeConfig(t, `{"datasetPath": "data/train.json"}`)); err == nil {
			t.Fatal("expected error for config without model")
		}
	})

	t.Run("missing file", func(t *testing.T) {
		if _, err := Load(filepath.Join(t.TempDir(), "nope.json")); err == nil {
			t.Fatal("expected error for missing file")
		}
	})
}

func TestConfigDefaults(t *testing.T) {
	t.Parallel()

	var cfg Config
	if cfg.RequestTimeout() != 120*time.Second {
		t.Errorf("default timeout = %s", cfg.RequestTimeout())
	}
	if cfg.RetryAttempts() != 3 {
		t.Errorf("default retries = %d", cfg.RetryAttempts())
	}
	if cfg.LogFilePath() != "finbench.log" {
		t.Errorf("default log file = %q", cfg.LogFilePath())
	}
	if cfg.ResultsDirPath() != "results" {
		t.Errorf("default results dir = %q", cfg.ResultsDirPath())
	}
	if cfg.APIKeyVariable() != "GEMINI_API_KEY" {
		t.Errorf("default api key env = %q", cfg.APIKeyVariable())
	}
	if cfg.TrainFraction() != 0.8 {
		t.Errorf("default train fraction = %v", cfg.TrainFraction())
	}
	if cfg.SplitSeed() != 42 {
		t.Errorf("default seed = %d", cfg.SplitSeed())
	}

	cfg.RetryCount = -1
	if cfg.RetryAttempts() != 0 {
		t.Errorf("negative retry count should disable retries, got %d", cfg.RetryAttempts())
	}
}

func TestAPIKey(t *testing.T) {
	cfg := Config{APIKeyEnv: "FINBENCH_TEST_KEY"}

	if _, err := cfg.APIKey(); err == nil || !strings.Contains(err.Error(), "FINBENCH_TEST_KEY") {
		t.Fatalf("expected error naming the variable, got %v", err)
	}

	t.Setenv("FINBENCH_TEST_KEY", "secret")
	key, err := cfg.APIKey()
	if err != nil {
		t.Fatalf("APIKey returned error: %v", err)
	}
	if key != "secret" {
		t.Fatalf("APIKey = %q", key)
	}
}
