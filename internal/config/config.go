package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/gorewood/gitobj/internal/git"
)

// Config is the gitobj configuration.
type Config struct {
	Git GitConfig `yaml:"git" toml:"git"`
	Log LogConfig `yaml:"log" toml:"log"`

	// Path is the file the configuration was read from, empty for defaults.
	Path string `yaml:"-" toml:"-"`
}

// GitConfig controls how git is run.
type GitConfig struct {
	Binary  string        `yaml:"binary" toml:"binary"`
	Timeout time.Duration `yaml:"timeout" toml:"timeout"`
	// Env holds extra KEY=VALUE entries for every git process.
	Env []string `yaml:"env" toml:"env"`
}

// LogConfig controls diagnostic logging.
type LogConfig struct {
	Level  string `yaml:"level" toml:"level"`
	Format string `yaml:"format" toml:"format"`
}

// Environment overrides.
const (
	EnvGitBinary = "GITOBJ_GIT_BINARY"
	EnvTimeout   = "GITOBJ_TIMEOUT"
	EnvLogLevel  = "GITOBJ_LOG_LEVEL"
)

// Config file names looked up in Dir, in order.
var fileNames = []string{"config.yaml", "config.yml", "config.toml"}

var (
	logLevels  = []string{"debug", "info", "warn", "error"}
	logFormats = []string{"text", "json"}
)

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Git: GitConfig{Binary: git.DefaultBinary},
		Log: LogConfig{Level: "warn", Format: "text"},
	}
}

// Load reads the configuration.
//
// When path is empty the first of config.yaml, config.yml and config.toml
// found in Dir is used, and a missing file means defaults. A path given
// explicitly must exist. The file format follows the extension.
//
// The env file in Dir is read next; then GITOBJ_GIT_BINARY, GITOBJ_TIMEOUT
// and GITOBJ_LOG_LEVEL override the file.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = findFile(Dir())
	}
	if path != "" {
		if err := cfg.readFile(path); err != nil {
			if !explicit && errors.Is(err, os.ErrNotExist) {
				path = ""
			} else {
				return nil, err
			}
		}
		cfg.Path = path
	}

	if dir := Dir(); dir != "" {
		if err := cfg.loadEnvFile(filepath.Join(dir, "env")); err != nil {
			return nil, err
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func findFile(dir string) string {
	if dir == "" {
		return ""
	}
	for _, name := range fileNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

func (c *Config) readFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config %s: %w", path, err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, c); err != nil {
			return fmt.Errorf("parsing config %s: %w", path, err)
		}
	case ".toml":
		if _, err := toml.Decode(string(data), c); err != nil {
			return fmt.Errorf("parsing config %s: %w", path, err)
		}
	default:
		return fmt.Errorf("config %s: unsupported format %q (use .yaml, .yml or .toml)", path, ext)
	}
	return nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv(EnvGitBinary); v != "" {
		c.Git.Binary = v
	}
	if v := os.Getenv(EnvTimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvTimeout, err)
		}
		c.Git.Timeout = d
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Log.Level = strings.ToLower(v)
	}
	return nil
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if c.Git.Binary == "" {
		return errors.New("git.binary must not be empty")
	}
	if c.Git.Timeout < 0 {
		return fmt.Errorf("git.timeout must not be negative, got %s", c.Git.Timeout)
	}
	for _, kv := range c.Git.Env {
		if k, _, ok := strings.Cut(kv, "="); !ok || k == "" {
			return fmt.Errorf("git.env entry %q is not KEY=VALUE", kv)
		}
	}
	if !slices.Contains(logLevels, c.Log.Level) {
		return fmt.Errorf("log.level %q is not one of %s", c.Log.Level, strings.Join(logLevels, ", "))
	}
	if !slices.Contains(logFormats, c.Log.Format) {
		return fmt.Errorf("log.format %q is not one of %s", c.Log.Format, strings.Join(logFormats, ", "))
	}
	return nil
}

// RunnerOptions returns the git runner options for this configuration.
func (c *Config) RunnerOptions() []git.RunnerOption {
	opts := []git.RunnerOption{git.WithBinary(c.Git.Binary)}
	if c.Git.Timeout > 0 {
		opts = append(opts, git.WithTimeout(c.Git.Timeout))
	}
	if len(c.Git.Env) > 0 {
		opts = append(opts, git.WithEnv(c.Git.Env...))
	}
	return opts
}
