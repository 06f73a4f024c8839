package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Export   ExportConfig
}

// ServerConfig points at the map rendering backend.
type ServerConfig struct {
	BaseURL string `mapstructure:"base_url"`
}

// DatabaseConfig holds sqlite settings for the workspace autosave.
type DatabaseConfig struct {
	Path string
}

// ExportConfig holds default map sizing plus where downloaded artifacts
// are written.
type ExportConfig struct {
	Width     int
	Height    int
	DPI       int    `mapstructure:"dpi"`
	OutputDir string `mapstructure:"output_dir"`
}

// Load reads configuration from file and env. Env var overrides use prefix SALESMAP_.
func Load() (Config, error) {
	v := viper.New()

	// default values
	v.SetDefault("server.base_url", "http://localhost:5001")
	v.SetDefault("database.path", filepath.Join(os.Getenv("HOME"), ".local", "share", "salesmap", "salesmap.db"))
	v.SetDefault("export.width", 1600)
	v.SetDefault("export.height", 1000)
	v.SetDefault("export.dpi", 150)
	v.SetDefault("export.output_dir", filepath.Join(os.Getenv("HOME"), "Downloads"))

	v.SetConfigType("toml")

	cfgPath := os.Getenv("SALESMAP_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "salesmap"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("SALESMAP")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// read config file if present
	_ = v.ReadInConfig()

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}
