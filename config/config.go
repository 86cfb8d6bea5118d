package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	ApiHost        string        `envconfig:"GLUCOMATE_API_HOST" default:"http://127.0.0.1:5000"`
	RequestTimeout time.Duration `envconfig:"GLUCOMATE_REQUEST_TIMEOUT" default:"15s"`
	TokenPath      string        `envconfig:"GLUCOMATE_TOKEN_PATH"`
	ChatLanguage   string        `envconfig:"GLUCOMATE_CHAT_LANGUAGE" default:"en"`
	SpeechLanguage string        `envconfig:"GLUCOMATE_SPEECH_LANGUAGE" default:"en-US"`
}

func New() *Config {
	return &Config{}
}

func (c *Config) LoadFromEnv() error {
	if err := envconfig.Process("", c); err != nil {
		return err
	}
	if c.TokenPath == "" {
		c.TokenPath = defaultTokenPath()
	}
	return nil
}

func NewFromEnv() (*Config, error) {
	cfg := New()
	if err := cfg.LoadFromEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func defaultTokenPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "glucomate", "token")
	}
	return filepath.Join(home, ".glucomate", "token")
}
