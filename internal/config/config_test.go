package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	for _, name := range []string{
		"DEEPSEEK_API_KEY", "DEEPSEEK_API_BASE", "DEEPSEEK_MODEL", "DEEPSEEK_TIMEOUT",
		"SERVER_ADDRESS", "SERVER_PATH", "GIN_MODE", "LOG_LEVEL", "SYSTEM_PROMPT",
	} {
		t.Setenv(name, "")
		os.Unsetenv(name)
	}
}

func TestLoadConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "test_config.yaml")

	testConfig := `server:
  address: ":9090"
  path: "/chat"
deepseek:
  api_key: "sk-file"
  api_base: "http://localhost:8001"
  model: "deepseek-chat"
  timeout: 30s
prompts:
  system: "Answer in English, then translate."
log:
  level: debug
`

	err := os.WriteFile(configPath, []byte(testConfig), 0644)
	require.NoError(t, err)

	cfg, err := LoadConfig(configPath)
	assert.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, ":9090", cfg.Server.Address)
	assert.Equal(t, "/chat", cfg.Server.Path)
	assert.Equal(t, "sk-file", cfg.DeepSeek.APIKey)
	assert.Equal(t, "http://localhost:8001", cfg.DeepSeek.APIBase)
	assert.Equal(t, "deepseek-chat", cfg.DeepSeek.Model)
	assert.Equal(t, 30*time.Second, cfg.DeepSeek.Timeout)
	assert.Equal(t, "Answer in English, then translate.", cfg.Prompts.System)
	assert.Equal(t, "debug", cfg.Log.Level)

	t.Run("NonexistentFile", func(t *testing.T) {
		_, err := LoadConfig("nonexistent.yaml")
		assert.Error(t, err)
	})

	t.Run("InvalidYAML", func(t *testing.T) {
		invalidPath := filepath.Join(tmpDir, "invalid.yaml")
		err := os.WriteFile(invalidPath, []byte("invalid: yaml: {content"), 0644)
		require.NoError(t, err)

		_, err = LoadConfig(invalidPath)
		assert.Error(t, err)
	})

	t.Run("EmptyFile", func(t *testing.T) {
		emptyPath := filepath.Join(tmpDir, "empty.yaml")
		err := os.WriteFile(emptyPath, []byte{}, 0644)
		require.NoError(t, err)

		cfg, err := LoadConfig(emptyPath)
		assert.NoError(t, err)
		assert.Empty(t, cfg.DeepSeek.APIBase)
	})
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, DefaultAddress, cfg.Server.Address)
	assert.Equal(t, DefaultPath, cfg.Server.Path)
	assert.Equal(t, DefaultAPIBase, cfg.DeepSeek.APIBase)
	assert.Equal(t, DefaultModel, cfg.DeepSeek.Model)
	assert.Equal(t, 45*time.Second, cfg.DeepSeek.Timeout)
	assert.Equal(t, DefaultSystemPrompt, cfg.Prompts.System)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.False(t, cfg.DeepSeek.HasAPIKey(), "missing key must not fail loading")
}

func TestLoadEnvOverridesFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`deepseek:
  api_key: "sk-file"
  model: "file-model"
`), 0644))

	t.Setenv("DEEPSEEK_API_KEY", "sk-env")
	t.Setenv("DEEPSEEK_TIMEOUT", "2s")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "sk-env", cfg.DeepSeek.APIKey)
	assert.Equal(t, "file-model", cfg.DeepSeek.Model)
	assert.Equal(t, 2*time.Second, cfg.DeepSeek.Timeout)
	assert.True(t, cfg.DeepSeek.HasAPIKey())
}

func TestLoadErrors(t *testing.T) {
	t.Run("MissingFile", func(t *testing.T) {
		clearEnv(t)
		_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
		assert.Error(t, err)
	})

	t.Run("BadAPIBase", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("DEEPSEEK_API_BASE", "api.deepseek.com")
		_, err := Load("")
		assert.ErrorIs(t, err, ErrInvalidAPIBase)
	})

	t.Run("BadPath", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("SERVER_PATH", "chat")
		_, err := Load("")
		assert.ErrorIs(t, err, ErrInvalidPath)
	})
}

func TestHasAPIKey(t *testing.T) {
	assert.False(t, (&DeepSeekConfig{APIKey: "   "}).HasAPIKey())
	assert.True(t, (&DeepSeekConfig{APIKey: "sk-123"}).HasAPIKey())
}
