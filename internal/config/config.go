package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config defines server configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Store   StoreConfig   `yaml:"store"`
	Uploads UploadsConfig `yaml:"uploads"`
	Log     LogConfig     `yaml:"log"`
}

type ServerConfig struct {
	Host           string   `yaml:"host"`
	Port           int      `yaml:"port"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// StoreConfig selects the document store backend: "json" keeps the flat
// JSON file, "sqlite" uses the embedded database.
type StoreConfig struct {
	Backend string `yaml:"backend"`
	Path    string `yaml:"path"`
}

type UploadsConfig struct {
	Dir string `yaml:"dir"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// Load reads configuration from an optional YAML file and environment variables.
func Load() (Config, error) {
	cfg := Config{
		Server: ServerConfig{
			Host:           "0.0.0.0",
			Port:           8080,
			AllowedOrigins: []string{"*"},
		},
		Store: StoreConfig{
			Backend: "json",
			Path:    "data/processes.json",
		},
		Uploads: UploadsConfig{
			Dir: "data/uploads",
		},
		Log: LogConfig{
			Level: "info",
		},
	}

	if path := os.Getenv("PROCFLOW_CONFIG_PATH"); path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if host := os.Getenv("PROCFLOW_SERVER_HOST"); host != "" {
		cfg.Server.Host = host
	}
	if portStr := os.Getenv("PROCFLOW_SERVER_PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return Config{}, fmt.Errorf("invalid PROCFLOW_SERVER_PORT: %w", err)
		}
		cfg.Server.Port = port
	}
	if origins := os.Getenv("PROCFLOW_ALLOWED_ORIGINS"); origins != "" {
		cfg.Server.AllowedOrigins = strings.Split(origins, ",")
	}
	if backend := os.Getenv("PROCFLOW_STORE_BACKEND"); backend != "" {
		cfg.Store.Backend = backend
	}
	if path := os.Getenv("PROCFLOW_STORE_PATH"); path != "" {
		cfg.Store.Path = path
	}
	if dir := os.Getenv("PROCFLOW_UPLOADS_DIR"); dir != "" {
		cfg.Uploads.Dir = dir
	}
	if level := os.Getenv("PROCFLOW_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}

	if cfg.Store.Backend != "json" && cfg.Store.Backend != "sqlite" {
		return Config{}, fmt.Errorf("invalid store backend %q: must be json or sqlite", cfg.Store.Backend)
	}

	return cfg, nil
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}
