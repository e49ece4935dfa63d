package file

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

// Default configuration values.
const (
	DefaultBaseURL   = "https://api.moonshot.ai/v1"
	DefaultModel     = "kimi-k2.5"
	DefaultMaxTokens = 8192
)

// Environment variable names. The environment always wins over the
// config file; the API key is environment-only so it never ends up in
// a world-readable TOML file.
const (
	EnvAPIKey    = "KIMI_API_KEY"
	EnvBaseURL   = "KIMI_API_BASE"
	EnvModel     = "KIMI_MODEL"
	EnvMaxTokens = "KIMI_MAX_TOKENS"
)

// Config is the explicit configuration struct built once at process start
// and passed into constructors. No core logic reads the environment.
type Config struct {
	// APIKey is the Moonshot API key (required).
	APIKey string

	// BaseURL is the API base endpoint.
	BaseURL string

	// Model is the model identifier.
	Model string

	// MaxTokens is the default output token budget, used when the caller
	// does not override it.
	MaxTokens int

	// PromptDir overrides the system instruction directory. Empty means
	// the default under the config directory.
	PromptDir string
}

// fileConfig is the TOML file shape (~/.kimi-advisor/config.toml).
type fileConfig struct {
	BaseURL   string `toml:"base_url"`
	Model     string `toml:"model"`
	MaxTokens int    `toml:"max_tokens"`
	PromptDir string `toml:"prompt_dir"`
}

// LoadConfig builds the configuration: defaults, then the TOML file in
// configDir, then environment variables. `.env.local` and `.env` in the
// working directory are loaded first (best effort, never overriding an
// already-set variable), mirroring common dotenv behaviour.
//
// If configDir is empty, defaults to ~/.kimi-advisor.
func LoadConfig(configDir string) (*Config, error) {
	_ = godotenv.Load(".env.local")
	_ = godotenv.Load(".env")

	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("get home directory: %w", err)
		}
		configDir = filepath.Join(home, ".kimi-advisor")
	}

	cfg := &Config{
		BaseURL:   DefaultBaseURL,
		Model:     DefaultModel,
		MaxTokens: DefaultMaxTokens,
	}

	if err := applyFile(cfg, filepath.Join(configDir, "config.toml")); err != nil {
		return nil, err
	}
	if err := applyEnv(cfg); err != nil {
		return nil, err
	}

	cfg.APIKey = strings.TrimSpace(os.Getenv(EnvAPIKey))
	if cfg.APIKey == "" {
		return nil, errors.New(
			"KIMI_API_KEY not set. Add it to .env.local or export it. " +
				"Get your key at https://platform.moonshot.ai",
		)
	}

	return cfg, nil
}

// applyFile overlays non-empty values from the TOML config file, if present.
func applyFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read %s: %w", path, err)
	}

	var fc fileConfig
	if err := toml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	if fc.BaseURL != "" {
		cfg.BaseURL = fc.BaseURL
	}
	if fc.Model != "" {
		cfg.Model = fc.Model
	}
	if fc.MaxTokens > 0 {
		cfg.MaxTokens = fc.MaxTokens
	}
	if fc.PromptDir != "" {
		cfg.PromptDir = fc.PromptDir
	}
	return nil
}

// applyEnv overlays non-empty environment variables.
func applyEnv(cfg *Config) error {
	if v := os.Getenv(EnvBaseURL); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv(EnvModel); v != "" {
		cfg.Model = v
	}
	if v := os.Getenv(EnvMaxTokens); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return fmt.Errorf("invalid %s value %q: expected a positive integer", EnvMaxTokens, v)
		}
		cfg.MaxTokens = n
	}
	return nil
}
