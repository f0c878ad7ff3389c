package cli

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/laneviz/laneviz/pkg/errors"
)

// Config holds user configuration loaded from the TOML config file.
// All fields are optional; command-line flags override config values.
type Config struct {
	Render RenderConfig `toml:"render"`
	Server ServerConfig `toml:"server"`
}

// RenderConfig holds default render settings.
type RenderConfig struct {
	VizType    string   `toml:"viz_type"`
	Formats    []string `toml:"formats"`
	Scale      float64  `toml:"scale"`
	Background string   `toml:"background"`
}

// ServerConfig holds serve command settings.
type ServerConfig struct {
	Addr          string `toml:"addr"`
	RedisAddr     string `toml:"redis_addr"`
	RedisPassword string `toml:"redis_password"`
	RedisDB       int    `toml:"redis_db"`
	MongoURI      string `toml:"mongo_uri"`
	MongoDatabase string `toml:"mongo_database"`
}

// configPath returns the config file path using XDG conventions
// (~/.config/laneviz/config.toml).
func configPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// loadConfig reads the config file at path. An empty path resolves to the
// default location. A missing file yields a zero Config, not an error.
func loadConfig(path string) (Config, error) {
	var cfg Config

	if path == "" {
		var err error
		path, err = configPath()
		if err != nil {
			return cfg, nil
		}
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config %s", path)
	}
	return cfg, nil
}
