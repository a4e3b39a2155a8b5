package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
provider: openai
model: gpt-4o-mini
judge_model: gpt-4.1
templates: ./prompts.yaml
timeout: 45s
`), 0o600))

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, "openai", cfg.Provider)
	assert.Equal(t, "gpt-4o-mini", cfg.Model)
	assert.Equal(t, "gpt-4.1", cfg.JudgeModel)
	assert.Equal(t, "./prompts.yaml", cfg.Templates)
	assert.Equal(t, 45*time.Second, cfg.Timeout)
	// Unset fields keep their defaults.
	assert.Equal(t, "datasets", cfg.Datasets)
	assert.Equal(t, []string{"gpt-4.1", "gpt-4o-mini"}, cfg.Models)
}

func TestLoadFileErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadFile(filepath.Join(dir, "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("provider: [oops"), 0o600))
	_, err = LoadFile(bad)
	assert.Error(t, err)
}

func TestLoadDefaultsWhenMissing(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	assert.False(t, Exists())

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestSaveThenLoad(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg := DefaultConfig()
	cfg.Provider = "ollama"
	cfg.Model = "llama3.1:8b"
	require.NoError(t, cfg.Save())
	assert.True(t, Exists())

	loaded, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "ollama", loaded.Provider)
	assert.Equal(t, "llama3.1:8b", loaded.Model)
	assert.Equal(t, 2*time.Minute, loaded.Timeout)
}

func TestApplyEnv(t *testing.T) {
	t.Setenv(EnvBaseURL, "https://example.openai.azure.com/openai/v1/")
	t.Setenv(EnvAPIKey, "secret")
	t.Setenv(EnvJudgeModel, "gpt-4o")
	t.Setenv(EnvModel, "")

	cfg := DefaultConfig()
	cfg.ApplyEnv()

	assert.Equal(t, "https://example.openai.azure.com/openai/v1/", cfg.BaseURL)
	assert.Equal(t, "secret", cfg.APIKey)
	assert.Equal(t, "gpt-4o", cfg.JudgeModel)
	assert.Equal(t, "gpt-4.1", cfg.Model, "empty variables do not override")
}

func TestLoadEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.env")
	require.NoError(t, os.WriteFile(path, []byte("MAILEDIT_TEST_VALUE=from-file\n"), 0o600))

	t.Setenv("MAILEDIT_TEST_VALUE", "")
	require.NoError(t, os.Unsetenv("MAILEDIT_TEST_VALUE"))

	require.NoError(t, LoadEnv(path))
	assert.Equal(t, "from-file", os.Getenv("MAILEDIT_TEST_VALUE"))

	assert.Error(t, LoadEnv(filepath.Join(dir, "missing.env")))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr []error
	}{
		{
			name: "azure complete",
			mutate: func(c *Config) {
				c.BaseURL = "https://x.openai.azure.com/openai/v1/"
				c.APIKey = "k"
			},
		},
		{
			name:    "azure missing both",
			mutate:  func(c *Config) {},
			wantErr: []error{ErrMissingEndpoint, ErrMissingCredential},
		},
		{
			name:    "azure missing key",
			mutate:  func(c *Config) { c.BaseURL = "https://x" },
			wantErr: []error{ErrMissingCredential},
		},
		{
			name:   "openai has a default endpoint",
			mutate: func(c *Config) { c.Provider = "openai"; c.APIKey = "k" },
		},
		{
			name:   "ollama needs no key",
			mutate: func(c *Config) { c.Provider = "ollama" },
		},
		{
			name:    "unknown provider",
			mutate:  func(c *Config) { c.Provider = "nope" },
			wantErr: []error{ErrUnknownProvider},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if len(tt.wantErr) == 0 {
				assert.NoError(t, err)
				return
			}
			for _, want := range tt.wantErr {
				assert.ErrorIs(t, err, want)
			}
		})
	}
}

func TestModelHelpers(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, []string{"gpt-4.1", "gpt-4o-mini"}, cfg.ModelChoices())

	cfg.Model = "gpt-5"
	assert.Equal(t, []string{"gpt-5", "gpt-4.1", "gpt-4o-mini"}, cfg.ModelChoices())

	cfg.JudgeModel = ""
	assert.Equal(t, "gpt-5", cfg.JudgeModelOrDefault())

	assert.Equal(t, "Not set", cfg.MaskedAPIKey())
	cfg.APIKey = "sk-1234567890"
	assert.Equal(t, "sk-1****7890", cfg.MaskedAPIKey())
	cfg.APIKey = "short"
	assert.Equal(t, "****", cfg.MaskedAPIKey())
}
