package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the application's configuration.
type Config struct {
	Server struct {
		Port string `yaml:"port"`
	} `yaml:"server"`
	Database struct {
		URI  string `yaml:"uri"`
		Name string `yaml:"name"`
	} `yaml:"database"`
	Auth struct {
		Secret     string `yaml:"secret"`
		TokenTTL   int64  `yaml:"token_ttl_seconds"`
		BcryptCost int    `yaml:"bcrypt_cost"`
	} `yaml:"auth"`
}

// LoadConfig reads configuration from the specified YAML file.
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}

	file, err := os.Open(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	if err := decoder.Decode(config); err != nil {
		return nil, fmt.Errorf("failed to decode config file: %w", err)
	}

	if config.Auth.Secret == "" {
		return nil, fmt.Errorf("auth.secret must be set")
	}
	if config.Auth.TokenTTL == 0 {
		config.Auth.TokenTTL = 3600
	}
	if config.Auth.BcryptCost == 0 {
		config.Auth.BcryptCost = 10
	}
	if config.Server.Port == "" {
		config.Server.Port = ":8080"
	}

	return config, nil
}
