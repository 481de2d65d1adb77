package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DefaultAPIBase = "https://api.deepseek.com"
	DefaultModel   = "deepseek-chat"
	DefaultTimeout = 45 * time.Second
	DefaultAddress = ":8080"
	DefaultPath    = "/api/chat"
)

// DefaultSystemPrompt steers the model towards bilingual English-learning answers
const DefaultSystemPrompt = `You are a friendly and patient English teacher helping Chinese speakers learn English.
Answer every question in clear, natural English. When it helps, include example sentences, common phrases or short dialogues that show how the language is really used.
After your English answer, give a complete Chinese translation of the answer wrapped exactly like this:
<div class="translation">中文翻译</div>
Do not put anything after the closing </div> tag.`

// Config is the process-wide configuration, read once at cold start
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	DeepSeek DeepSeekConfig `yaml:"deepseek"`
	Prompts  PromptsConfig  `yaml:"prompts"`
	Log      LogConfig      `yaml:"log"`
}

// ServerConfig configures the long-running HTTP server
type ServerConfig struct {
	Address string `yaml:"address" env:"SERVER_ADDRESS"`
	Path    string `yaml:"path" env:"SERVER_PATH"`
	Mode    string `yaml:"mode" env:"GIN_MODE"`
}

// DeepSeekConfig contains the completion provider settings
type DeepSeekConfig struct {
	APIKey  string        `yaml:"api_key" env:"DEEPSEEK_API_KEY"`
	APIBase string        `yaml:"api_base" env:"DEEPSEEK_API_BASE"`
	Model   string        `yaml:"model" env:"DEEPSEEK_MODEL"`
	Timeout time.Duration `yaml:"timeout" env:"DEEPSEEK_TIMEOUT"`
}

// PromptsConfig contains the prompt sent ahead of every user message
type PromptsConfig struct {
	System string `yaml:"system" env:"SYSTEM_PROMPT"`
}

// LogConfig configures the logger
type LogConfig struct {
	Level string `yaml:"level" env:"LOG_LEVEL"`
}

// HasAPIKey reports whether the provider credential is present
func (c *DeepSeekConfig) HasAPIKey() bool {
	return strings.TrimSpace(c.APIKey) != ""
}

// Default returns a config populated with the built-in values
func Default() *Config {
	cfg := &Config{}
	cfg.SetDefaults()
	return cfg
}

// SetDefaults fills every empty field with its default value
func (c *Config) SetDefaults() {
	if c.Server.Address == "" {
		c.Server.Address = DefaultAddress
	}
	if c.Server.Path == "" {
		c.Server.Path = DefaultPath
	}
	if c.DeepSeek.APIBase == "" {
		c.DeepSeek.APIBase = DefaultAPIBase
	}
	if c.DeepSeek.Model == "" {
		c.DeepSeek.Model = DefaultModel
	}
	if c.DeepSeek.Timeout <= 0 {
		c.DeepSeek.Timeout = DefaultTimeout
	}
	if c.Prompts.System == "" {
		c.Prompts.System = DefaultSystemPrompt
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}

// Validate checks values that cannot be defaulted.
// A missing API key is not an error here: the gateway reports it per request.
func (c *Config) Validate() error {
	if c.DeepSeek.APIBase == "" {
		return ErrMissingAPIBase
	}
	if !strings.HasPrefix(c.DeepSeek.APIBase, "http://") && !strings.HasPrefix(c.DeepSeek.APIBase, "https://") {
		return fmt.Errorf("%w: %q", ErrInvalidAPIBase, c.DeepSeek.APIBase)
	}
	if c.DeepSeek.Timeout <= 0 {
		return ErrInvalidTimeout
	}
	if !strings.HasPrefix(c.Server.Path, "/") {
		return fmt.Errorf("%w: %q", ErrInvalidPath, c.Server.Path)
	}
	return nil
}

// LoadConfig loads configuration from a YAML file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Load builds the process configuration: an optional .env file, an optional
// YAML file, then environment variables on top, then defaults.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := &Config{}
	if path != "" {
		fileCfg, err := LoadConfig(path)
		if err != nil {
			return nil, fmt.Errorf("load config file: %w", err)
		}
		cfg = fileCfg
	}

	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, fmt.Errorf("read environment: %w", err)
	}

	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
