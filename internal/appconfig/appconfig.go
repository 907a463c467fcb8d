// internal/appconfig/appconfig.go
// Package appconfig manages loading and interpreting application configuration.
package appconfig

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
)

const (
	// DefaultConfigPath is the default path to the application's configuration file.
	DefaultConfigPath = "config/config.json"
	// legacyConfigPath is the path to the configuration file used in previous versions.
	legacyConfigPath = "config.json"
	// defaultRequestTimeout is the default timeout for model HTTP requests.
	defaultRequestTimeout = 120 * time.Second
	// defaultRetryCount is how many times a model request is retried on
	// rate-limit or server errors when the config omits the value.
	defaultRetryCount = 3
	// defaultAPIKeyEnv is the environment variable holding the API key.
	defaultAPIKeyEnv = "GEMINI_API_KEY"
)

// Config represents the top-level application configuration.
type Config struct {
	Model             string     `json:"model"`
	BaseURL           string     `json:"baseUrl,omitempty"`
	APIKeyEnv         string     `json:"apiKeyEnv,omitempty"`
	DatasetPath       string     `json:"datasetPath"`
	TrainSplit        float64    `json:"trainSplit,omitempty"`
	Seed              int64      `json:"seed,omitempty"`
	RequestsPerMinute int        `json:"requestsPerMinute,omitempty"`
	DailyLimit        int        `json:"dailyLimit,omitempty"`
	MaxQuestions      int        `json:"maxQuestions,omitempty"`
	TimeoutSeconds    int        `json:"timeout,omitempty"`
	RetryCount        int        `json:"retryCount,omitempty"`
	ResultsDir        string     `json:"resultsDir,omitempty"`
	LogFile           string     `json:"logFile,omitempty"`
	Debug             bool       `json:"debug"`
	Progress          bool       `json:"progress"`
	Parameters        Parameters `json:"parameters"`
	ConfigPath        string     `json:"-"`
}

// Parameters defines the set of parameters that control the model's sampling
// behavior. Unset fields fall back to the provider's defaults.
type Parameters struct {
	Temperature     *float64 `json:"temperature,omitempty"`
	TopP            *float64 `json:"top_p,omitempty"`
	TopK            *int     `json:"top_k,omitempty"`
	MaxOutputTokens *int     `json:"max_output_tokens,omitempty"`
}

// RequestTimeout returns the timeout duration for model HTTP requests,
// falling back to the default if not specified.
func (c Config) RequestTimeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return defaultRequestTimeout
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// RetryAttempts returns the configured number of retry attempts for model
// requests.
func (c Config) RetryAttempts() int {
	if c.RetryCount < 0 {
		return 0
	}
	if c.RetryCount == 0 {
		return defaultRetryCount
	}
	return c.RetryCount
}

// LogFilePath returns the path to the application log file, applying a default if not set.
func (c Config) LogFilePath() string {
	if path := c.LogFile; strings.TrimSpace(path) != "" {
		return path
	}
	return "finbench.log"
}

// ResultsDirPath returns the directory evaluation artifacts are written to.
func (c Config) ResultsDirPath() string {
	if dir := strings.TrimSpace(c.ResultsDir); dir != "" {
		return dir
	}
	return "results"
}

// APIKeyVariable returns the environment variable name the API key is read
// from.
func (c Config) APIKeyVariable() string {
	if env := strings.TrimSpace(c.APIKeyEnv); env != "" {
		return env
	}
	return defaultAPIKeyEnv
}

// APIKey reads the model API key from the configured environment variable.
func (c Config) APIKey() (string, error) {
	key := strings.TrimSpace(os.Getenv(c.APIKeyVariable()))
	if key == "" {
		return "", fmt.Errorf("%s not set in environment", c.APIKeyVariable())
	}
	return key, nil
}

// TrainFraction returns the train/test split fraction, defaulting to 0.8.
func (c Config) TrainFraction() float64 {
	if c.TrainSplit <= 0 || c.TrainSplit >= 1 {
		return 0.8
	}
	return c.TrainSplit
}

// SplitSeed returns the shuffle seed for the dataset split, defaulting to 42.
func (c Config) SplitSeed() int64 {
	if c.Seed == 0 {
		return 42
	}
	return c.Seed
}

// Load reads the application configuration from the specified path, with fallback to a legacy path.
func Load(path string) (Config, error) {
	if path == "" {
		path = DefaultConfigPath
	}

	config, err := loadFromPath(path)
	if err == nil {
		if strings.TrimSpace(config.Model) == "" {
			return Config{}, errors.New("config must name a model")
		}
		config.ConfigPath = path
		return config, nil
	}

	if errors.Is(err, os.ErrNotExist) {
		if path == DefaultConfigPath {
			config, legacyErr := loadFromPath(legacyConfigPath)
			if legacyErr == nil {
				return config, nil
			}
			if errors.Is(legacyErr, os.ErrNotExist) {
				return Config{}, fmt.Errorf("no configuration file found (searched %q and %q)", DefaultConfigPath, legacyConfigPath)
			}
			return Config{}, fmt.Errorf("could not read config file %q: %w", legacyConfigPath, legacyErr)
		}
		return Config{}, fmt.Errorf("no configuration file found at %q", path)
	}

	return Config{}, fmt.Errorf("could not read config file %q: %w", path, err)
}

// loadFromPath is a helper function that loads the configuration from a specific file path.
func loadFromPath(path string) (Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return Config{}, err
	}
	defer file.Close()

	var config Config
	if err := json.NewDecoder(file).Decode(&config); err != nil {
		return Config{}, err
	}
	if config.TimeoutSeconds <= 0 {
		config.TimeoutSeconds = int(defaultRequestTimeout.Seconds())
	}

	return config, nil
}
