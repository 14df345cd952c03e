package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	toml "github.com/pelletier/go-toml/v2"

	"github.com/five82/launchpad/internal/launch"
)

// Config captures launcher settings.
type Config struct {
	LogDir        string
	LogLevel      string
	Platform      launch.Family // empty detects at runtime
	LaunchTimeout time.Duration
	PrefsPath     string
}

const (
	defaultConfigPath    = "~/.config/launchpad/config.toml"
	defaultLogDir        = "~/.local/share/launchpad/logs"
	defaultLogLevel      = "info"
	defaultPrefsPath     = "~/.config/launchpad/prefs.toml"
	defaultLaunchTimeout = launch.DefaultTimeout
	maxLaunchTimeout     = 30 * time.Second
	envPrefix            = "LAUNCHPAD"
)

// env holds LAUNCHPAD_* overrides; unset fields leave the file value alone.
type env struct {
	LogDir        string        `envconfig:"LOG_DIR"`
	LogLevel      string        `envconfig:"LOG_LEVEL"`
	Platform      string        `envconfig:"PLATFORM"`
	LaunchTimeout time.Duration `envconfig:"LAUNCH_TIMEOUT"`
	PrefsPath     string        `envconfig:"PREFS_PATH"`
}

// Load locates and parses the launcher config, falling back to defaults when
// missing, then applies LAUNCHPAD_* environment overrides.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	switch {
	case err == nil:
		defer file.Close()
		if err := cfg.readFile(file); err != nil {
			return Config{}, err
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return Config{}, fmt.Errorf("open config: %w", err)
	}

	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}

	cfg.LogDir = mustExpand(cfg.LogDir)
	cfg.PrefsPath = mustExpand(cfg.PrefsPath)
	return cfg, nil
}

// Default returns the built-in settings with paths unexpanded.
func Default() Config {
	return Config{
		LogDir:        defaultLogDir,
		LogLevel:      defaultLogLevel,
		LaunchTimeout: defaultLaunchTimeout,
		PrefsPath:     defaultPrefsPath,
	}
}

// LogPath returns the launcher log file.
func (c Config) LogPath() string {
	if strings.TrimSpace(c.LogDir) == "" {
		return mustExpand(defaultLogDir + "/launchpad.log")
	}
	return filepath.Join(c.LogDir, "launchpad.log")
}

func (c *Config) readFile(r io.Reader) error {
	bytes, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		LogDir        string `toml:"log_dir"`
		LogLevel      string `toml:"log_level"`
		Platform      string `toml:"platform"`
		LaunchTimeout string `toml:"launch_timeout"`
		PrefsPath     string `toml:"prefs_path"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}

	if v := strings.TrimSpace(raw.LogDir); v != "" {
		c.LogDir = v
	}
	if v := strings.TrimSpace(raw.LogLevel); v != "" {
		c.LogLevel = strings.ToLower(v)
	}
	if v := strings.TrimSpace(raw.PrefsPath); v != "" {
		c.PrefsPath = v
	}
	if err := c.setPlatform(raw.Platform); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}
	if v := strings.TrimSpace(raw.LaunchTimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("parse config: launch_timeout: %w", err)
		}
		c.setTimeout(d)
	}
	return nil
}

func (c *Config) applyEnv() error {
	var e env
	if err := envconfig.Process(envPrefix, &e); err != nil {
		return fmt.Errorf("read environment: %w", err)
	}
	if v := strings.TrimSpace(e.LogDir); v != "" {
		c.LogDir = v
	}
	if v := strings.TrimSpace(e.LogLevel); v != "" {
		c.LogLevel = strings.ToLower(v)
	}
	if v := strings.TrimSpace(e.PrefsPath); v != "" {
		c.PrefsPath = v
	}
	if strings.TrimSpace(e.Platform) != "" {
		if err := c.setPlatform(e.Platform); err != nil {
			return fmt.Errorf("%s_PLATFORM: %w", envPrefix, err)
		}
	}
	if e.LaunchTimeout > 0 {
		c.setTimeout(e.LaunchTimeout)
	}
	return nil
}

// SetPlatform applies a platform name such as "android" or "auto".
func (c *Config) SetPlatform(value string) error {
	return c.setPlatform(value)
}

func (c *Config) setPlatform(value string) error {
	family, err := launch.ParseFamily(value)
	if err != nil {
		return err
	}
	c.Platform = family
	return nil
}

func (c *Config) setTimeout(d time.Duration) {
	switch {
	case d <= 0:
		c.LaunchTimeout = defaultLaunchTimeout
	case d > maxLaunchTimeout:
		c.LaunchTimeout = maxLaunchTimeout
	default:
		c.LaunchTimeout = d
	}
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
