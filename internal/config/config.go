// Package config provides centralized configuration management using Viper.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration values for chainform.
type Config struct {
	Endpoint       string        `mapstructure:"endpoint" yaml:"endpoint"`
	Timeout        time.Duration `mapstructure:"timeout" yaml:"timeout"`
	ListenAddr     string        `mapstructure:"listen_addr" yaml:"listen_addr"`
	AllowedOrigins []string      `mapstructure:"allowed_origins" yaml:"allowed_origins"`
	DataDir        string        `mapstructure:"data_dir" yaml:"data_dir"`
	Ledger         bool          `mapstructure:"ledger" yaml:"ledger"`
	LogLevel       string        `mapstructure:"log_level" yaml:"log_level"`
	LogFile        string        `mapstructure:"log_file" yaml:"log_file"`
}

// Defaults, also used by setup when writing a fresh config file
const (
	DefaultEndpoint   = "http://localhost:8001"
	DefaultListenAddr = ":8001"
	DefaultDataDir    = ".chainform"
	DefaultTimeout    = 10 * time.Second
)

// DefaultAllowedOrigins mirrors the origins a local web client is served from
var DefaultAllowedOrigins = []string{"http://localhost:3000", "http://127.0.0.1:3000"}

// keys lists every configuration key; each is bound to CHAINFORM_<KEY> and to
// the CLI flag of the same name with dashes.
var keys = []string{
	"endpoint", "timeout", "listen_addr", "allowed_origins",
	"data_dir", "ledger", "log_level", "log_file",
}

// Default returns a config populated with default values.
func Default() *Config {
	return &Config{
		Endpoint:       DefaultEndpoint,
		Timeout:        DefaultTimeout,
		ListenAddr:     DefaultListenAddr,
		AllowedOrigins: append([]string(nil), DefaultAllowedOrigins...),
		DataDir:        DefaultDataDir,
		Ledger:         true,
		LogLevel:       "info",
		LogFile:        "",
	}
}

// Load loads configuration with full precedence:
// CLI flags > ENV vars > project config > XDG global config > defaults.
// flags may be nil; only flags the user actually set take effect.
func Load(flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigName("chainform")

	def := Default()
	v.SetDefault("endpoint", def.Endpoint)
	v.SetDefault("timeout", def.Timeout)
	v.SetDefault("listen_addr", def.ListenAddr)
	v.SetDefault("allowed_origins", def.AllowedOrigins)
	v.SetDefault("data_dir", def.DataDir)
	v.SetDefault("ledger", def.Ledger)
	v.SetDefault("log_level", def.LogLevel)
	v.SetDefault("log_file", def.LogFile)

	// Setup ENV binding with CHAINFORM_ prefix
	v.SetEnvPrefix("CHAINFORM")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	for _, key := range keys {
		env := "CHAINFORM_" + strings.ToUpper(key)
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("binding %s env: %w", key, err)
		}
		if flags == nil {
			continue
		}
		if f := flags.Lookup(strings.ReplaceAll(key, "_", "-")); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("binding %s flag: %w", key, err)
			}
		}
	}

	// Load global config first (if exists)
	globalPath := GlobalPath()
	if fileExists(globalPath) {
		v.SetConfigFile(globalPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading global config: %w", err)
		}
	}

	// Merge project config on top (if exists)
	projectPath := ProjectPath()
	if fileExists(projectPath) {
		v.SetConfigFile(projectPath)
		if err := v.MergeInConfig(); err != nil {
			return nil, fmt.Errorf("merging project config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}

// Validate checks the values the commands depend on.
func (c *Config) Validate() error {
	u, err := url.Parse(c.Endpoint)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("endpoint must be an http(s) URL, got %q", c.Endpoint)
	}
	if c.Timeout < 0 {
		return errors.New("timeout cannot be negative")
	}
	if strings.TrimSpace(c.ListenAddr) == "" {
		return errors.New("listen_addr cannot be empty")
	}
	if c.Ledger && strings.TrimSpace(c.DataDir) == "" {
		return errors.New("data_dir is required when the ledger is enabled")
	}
	return nil
}

// Exists returns true if any config file exists (global or project).
func Exists() bool {
	return fileExists(GlobalPath()) || fileExists(ProjectPath())
}

// GlobalPath returns the XDG global config path.
// Returns ~/.config/chainform/chainform.yml or $XDG_CONFIG_HOME/chainform/chainform.yml.
func GlobalPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "chainform", "chainform.yml")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "chainform", "chainform.yml")
}

// ProjectPath returns the project-local config path.
func ProjectPath() string {
	return "chainform.yml"
}

// WriteGlobal writes the config to the XDG global location.
func WriteGlobal(cfg *Config) error {
	return write(GlobalPath(), cfg)
}

// WriteProject writes the config to the project-local location.
func WriteProject(cfg *Config) error {
	return write(ProjectPath(), cfg)
}

func write(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// fileExists checks if a file exists.
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
