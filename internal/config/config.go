package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

var (
	ErrMissingEndpoint   = errors.New("missing model endpoint (set OPENAI_API_BASE or base_url)")
	ErrMissingCredential = errors.New("missing API key (set OPENAI_API_KEY or api_key)")
	ErrUnknownProvider   = errors.New("unknown provider")
)

// Environment variables consulted by ApplyEnv.
const (
	EnvBaseURL    = "OPENAI_API_BASE"
	EnvAPIKey     = "OPENAI_API_KEY"
	EnvProvider   = "MAILEDIT_PROVIDER"
	EnvModel      = "MAILEDIT_MODEL"
	EnvJudgeModel = "MAILEDIT_JUDGE_MODEL"
	EnvTemplates  = "MAILEDIT_TEMPLATES"
	EnvDatasets   = "MAILEDIT_DATASETS"
)

type Config struct {
	Provider string `yaml:"provider"`
	APIKey   string `yaml:"api_key,omitempty"`
	BaseURL  string `yaml:"base_url,omitempty"`

	// Model generates rewrites; JudgeModel scores them.
	Model      string   `yaml:"model"`
	JudgeModel string   `yaml:"judge_model,omitempty"`
	Models     []string `yaml:"models,omitempty"`

	Templates string        `yaml:"templates,omitempty"`
	Datasets  string        `yaml:"datasets,omitempty"`
	Timeout   time.Duration `yaml:"timeout,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		Provider:   "azure",
		Model:      "gpt-4.1",
		JudgeModel: "gpt-4.1",
		Models:     []string{"gpt-4.1", "gpt-4o-mini"},
		Datasets:   "datasets",
		Timeout:    2 * time.Minute,
	}
}

func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "mailedit"), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

func Exists() bool {
	path, err := ConfigPath()
	if err != nil {
		return false
	}
	_, err = os.Stat(path)
	return err == nil
}

// Load reads the config from the default location. A missing file yields
// DefaultConfig.
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}

	cfg, err := LoadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return DefaultConfig(), nil
	}
	return cfg, err
}

// LoadFile reads a YAML config, filling unset fields from DefaultConfig.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

func (c *Config) Save() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	path, err := ConfigPath()
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0600)
}

// LoadEnv loads a .env file into the process environment without
// overriding variables that are already set. An empty path means ".env" in
// the working directory, which may be absent; an explicit path must exist.
func LoadEnv(path string) error {
	if path == "" {
		if _, err := os.Stat(".env"); err != nil {
			return nil
		}
		path = ".env"
	}

	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("config: load env file %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overlays environment variables onto the config.
func (c *Config) ApplyEnv() {
	set := func(dst *string, key string) {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			*dst = v
		}
	}

	set(&c.BaseURL, EnvBaseURL)
	set(&c.APIKey, EnvAPIKey)
	set(&c.Provider, EnvProvider)
	set(&c.Model, EnvModel)
	set(&c.JudgeModel, EnvJudgeModel)
	set(&c.Templates, EnvTemplates)
	set(&c.Datasets, EnvDatasets)
}

// Validate checks that the endpoint and credential the provider needs are
// present.
func (c *Config) Validate() error {
	info := GetProvider(c.Provider)
	if info == nil {
		return fmt.Errorf("config: %w: %q", ErrUnknownProvider, c.Provider)
	}

	var errs []error
	if c.BaseURL == "" && info.DefaultBaseURL == "" {
		errs = append(errs, ErrMissingEndpoint)
	}
	if c.APIKey == "" && info.NeedsAPIKey {
		errs = append(errs, ErrMissingCredential)
	}
	if c.Model == "" {
		errs = append(errs, errors.New("missing model"))
	}

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// JudgeModelOrDefault returns the model used for judging.
func (c *Config) JudgeModelOrDefault() string {
	if c.JudgeModel != "" {
		return c.JudgeModel
	}
	return c.Model
}

// ModelChoices returns the selectable generation models, current model first
// when it is not already listed.
func (c *Config) ModelChoices() []string {
	for _, m := range c.Models {
		if m == c.Model {
			return c.Models
		}
	}
	return append([]string{c.Model}, c.Models...)
}

// MaskedAPIKey hides all but the ends of the key for display.
func (c *Config) MaskedAPIKey() string {
	switch {
	case c.APIKey == "":
		return "Not set"
	case len(c.APIKey) > 8:
		return c.APIKey[:4] + "****" + c.APIKey[len(c.APIKey)-4:]
	default:
		return "****"
	}
}
