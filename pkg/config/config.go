// Package config loads and stores scriptmonkey settings.
//
// Values are resolved in order: ~/.scriptmonkey/config.yaml, the legacy
// ~/.scriptmonkey_config key file, a .env file in the working directory,
// environment variables, then command-line flags applied by the caller.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/helmcode/scriptmonkey/pkg/llm"
)

const (
	dirName        = ".scriptmonkey"
	fileName       = "config.yaml"
	legacyFileName = ".scriptmonkey_config"
)

// ProviderConfig holds the credentials of one completion service.
type ProviderConfig struct {
	APIKey  string `yaml:"api_key,omitempty"`
	Model   string `yaml:"model,omitempty"`
	BaseURL string `yaml:"base_url,omitempty"`
}

type Config struct {
	Provider       string         `yaml:"provider"`
	OpenAI         ProviderConfig `yaml:"openai"`
	Claude         ProviderConfig `yaml:"claude"`
	TimeoutSeconds int            `yaml:"timeout_seconds,omitempty"`
	LogFile        string         `yaml:"log_file,omitempty"`

	path string
	// stored holds only what the config file says, without the legacy key
	// or environment overrides. Save writes it back.
	stored *Config
}

func Default() *Config {
	return &Config{Provider: string(llm.ProviderOpenAI)}
}

// DefaultPath returns ~/.scriptmonkey/config.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate home directory: %w", err)
	}
	return filepath.Join(home, dirName, fileName), nil
}

// LoadDefault loads the config from DefaultPath and the .env file of the
// working directory.
func LoadDefault() (*Config, error) {
	path, err := DefaultPath()
	if err != nil {
		return nil, err
	}
	if wd, err := os.Getwd(); err == nil {
		LoadDotEnv(filepath.Join(wd, ".env"))
	}
	return Load(path)
}

// LoadDotEnv adds the variables of a .env file to the environment without
// overriding ones already set. A missing file is not an error.
func LoadDotEnv(path string) {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.WithError(err).Warn("failed to load .env file")
	}
}

// Load reads the config file at path, falling back to defaults when it does
// not exist, and applies the legacy key file and environment overrides.
func Load(path string) (*Config, error) {
	cfg := Default()
	cfg.path = path

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
		log.WithField("path", path).Debug("no config file, using defaults")
	default:
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	stored := *cfg
	cfg.stored = &stored

	if cfg.OpenAI.APIKey == "" {
		cfg.OpenAI.APIKey = readLegacyKey()
	}
	cfg.applyEnv()
	return cfg, nil
}

func readLegacyKey() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	data, err := os.ReadFile(filepath.Join(home, legacyFileName))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

func lookupEnv(keys ...string) (string, bool) {
	for _, key := range keys {
		if value, ok := os.LookupEnv(key); ok {
			if trimmed := strings.TrimSpace(value); trimmed != "" {
				return trimmed, true
			}
		}
	}
	return "", false
}

func (c *Config) applyEnv() {
	if v, ok := lookupEnv("LLM_PROVIDER"); ok {
		c.Provider = v
	}
	if v, ok := lookupEnv("OPENAI_API_KEY"); ok {
		c.OpenAI.APIKey = v
	}
	if v, ok := lookupEnv("OPENAI_MODEL"); ok {
		c.OpenAI.Model = v
	}
	if v, ok := lookupEnv("OPENAI_BASE_URL"); ok {
		c.OpenAI.BaseURL = v
	}
	if v, ok := lookupEnv("ANTHROPIC_API_KEY", "CLAUDE_API_KEY"); ok {
		c.Claude.APIKey = v
	}
	if v, ok := lookupEnv("CLAUDE_MODEL"); ok {
		c.Claude.Model = v
	}
	if v, ok := lookupEnv("ANTHROPIC_BASE_URL"); ok {
		c.Claude.BaseURL = v
	}
}

// Path is the file Save writes to.
func (c *Config) Path() string {
	return c.path
}

// Save writes the config file with owner-only permissions. For a loaded
// Config only values that came from the file or were set through SetAPIKey
// are written; environment overrides stay out of it.
func (c *Config) Save() error {
	if c.path == "" {
		return errors.New("config has no file path")
	}
	if err := os.MkdirAll(filepath.Dir(c.path), 0o700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	file := c
	if c.stored != nil {
		file = c.stored
	}
	data, err := yaml.Marshal(file)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.WriteFile(c.path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config %s: %w", c.path, err)
	}
	return nil
}

// SetAPIKey stores key for provider and saves the file.
func (c *Config) SetAPIKey(provider llm.Provider, key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return errors.New("no API key provided")
	}
	if err := c.setKey(provider, key); err != nil {
		return err
	}
	if c.stored != nil {
		if err := c.stored.setKey(provider, key); err != nil {
			return err
		}
	}
	return c.Save()
}

func (c *Config) setKey(provider llm.Provider, key string) error {
	switch provider {
	case llm.ProviderOpenAI:
		c.OpenAI.APIKey = key
	case llm.ProviderClaude:
		c.Claude.APIKey = key
	default:
		return fmt.Errorf("unsupported LLM provider: %q", provider)
	}
	return nil
}

// LLMConfig resolves the client settings. Non-empty provider and model
// override the configured ones.
func (c *Config) LLMConfig(provider, model string) (llm.Config, error) {
	name := c.Provider
	if provider != "" {
		name = provider
	}
	p, err := llm.ParseProvider(name)
	if err != nil {
		return llm.Config{}, err
	}

	pc := c.OpenAI
	if p == llm.ProviderClaude {
		pc = c.Claude
	}
	if model != "" {
		pc.Model = model
	}

	return llm.Config{
		Provider: p,
		APIKey:   pc.APIKey,
		Model:    pc.Model,
		BaseURL:  pc.BaseURL,
		Timeout:  time.Duration(c.TimeoutSeconds) * time.Second,
	}, nil
}

// MaskKey hides all but the last four characters of an API key.
func MaskKey(key string) string {
	if key == "" {
		return "(not set)"
	}
	if len(key) <= 8 {
		return strings.Repeat("*", len(key))
	}
	return key[:3] + "..." + key[len(key)-4:]
}
