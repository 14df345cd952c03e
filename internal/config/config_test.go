package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/five82/launchpad/internal/launch"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestLoad_MissingConfigFallsBackToDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := Load(filepath.Join(home, "does-not-exist.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.LogLevel != defaultLogLevel {
		t.Fatalf("LogLevel = %q, want %q", cfg.LogLevel, defaultLogLevel)
	}
	if cfg.LaunchTimeout != launch.DefaultTimeout {
		t.Fatalf("LaunchTimeout = %v, want %v", cfg.LaunchTimeout, launch.DefaultTimeout)
	}
	if cfg.Platform != "" {
		t.Fatalf("Platform = %q, want runtime detection", cfg.Platform)
	}

	wantLogDir, err := expandPath(defaultLogDir)
	if err != nil {
		t.Fatalf("expandPath(defaultLogDir) returned error: %v", err)
	}
	if cfg.LogDir != wantLogDir {
		t.Fatalf("LogDir = %q, want %q", cfg.LogDir, wantLogDir)
	}
	if !strings.HasPrefix(cfg.PrefsPath, home) {
		t.Fatalf("PrefsPath = %q, want it under HOME %q", cfg.PrefsPath, home)
	}
}

func TestLoad_ParsesAndTrimsConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	path := writeConfig(t, `
log_dir = "  ~/.launchpad/logs  "
log_level = " DEBUG "
platform = "android"
launch_timeout = "1500ms"
prefs_path = "~/prefs.toml"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !strings.HasPrefix(cfg.LogDir, home) {
		t.Fatalf("LogDir = %q, want it under HOME %q", cfg.LogDir, home)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("LogLevel = %q, want debug", cfg.LogLevel)
	}
	if cfg.Platform != launch.FamilyAndroid {
		t.Fatalf("Platform = %q, want android", cfg.Platform)
	}
	if cfg.LaunchTimeout != 1500*time.Millisecond {
		t.Fatalf("LaunchTimeout = %v, want 1.5s", cfg.LaunchTimeout)
	}
	if cfg.PrefsPath != filepath.Join(home, "prefs.toml") {
		t.Fatalf("PrefsPath = %q, want %q", cfg.PrefsPath, filepath.Join(home, "prefs.toml"))
	}
}

func TestLoad_TimeoutIsCapped(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load(writeConfig(t, `launch_timeout = "5m"`))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.LaunchTimeout != maxLaunchTimeout {
		t.Fatalf("LaunchTimeout = %v, want %v", cfg.LaunchTimeout, maxLaunchTimeout)
	}
}

func TestLoad_EnvironmentOverridesFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("LAUNCHPAD_PLATFORM", "ios")
	t.Setenv("LAUNCHPAD_LAUNCH_TIMEOUT", "2s")
	t.Setenv("LAUNCHPAD_LOG_LEVEL", "warn")

	cfg, err := Load(writeConfig(t, "platform = \"android\"\nlog_level = \"debug\"\n"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Platform != launch.FamilyApple {
		t.Fatalf("Platform = %q, want apple", cfg.Platform)
	}
	if cfg.LaunchTimeout != 2*time.Second {
		t.Fatalf("LaunchTimeout = %v, want 2s", cfg.LaunchTimeout)
	}
	if cfg.LogLevel != "warn" {
		t.Fatalf("LogLevel = %q, want warn", cfg.LogLevel)
	}
}

func TestLoad_InvalidValuesFail(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cases := map[string]string{
		"toml":     `log_level = [`,
		"platform": `platform = "symbian"`,
		"duration": `launch_timeout = "soon"`,
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, content))
			if err == nil {
				t.Fatalf("Load returned nil error, want parse error")
			}
			if !strings.Contains(err.Error(), "parse config") {
				t.Fatalf("Load error = %q, want it to mention parse config", err.Error())
			}
		})
	}
}

func TestLoad_InvalidEnvironmentPlatformFails(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("LAUNCHPAD_PLATFORM", "palm")

	if _, err := Load(writeConfig(t, "")); err == nil {
		t.Fatalf("Load returned nil error, want platform error")
	}
}

func TestExpandPath_ExpandsTildeAndReturnsAbs(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := expandPath("~/a/b")
	if err != nil {
		t.Fatalf("expandPath returned error: %v", err)
	}
	want := filepath.Join(home, "a/b")
	if got != want {
		t.Fatalf("expandPath = %q, want %q", got, want)
	}
}

func TestExpandPath_EmptyErrors(t *testing.T) {
	if _, err := expandPath("   "); err == nil {
		t.Fatalf("expandPath returned nil error, want error")
	}
}

func TestLogPath_DefaultsWhenLogDirEmpty(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	var cfg Config
	got := cfg.LogPath()
	if !strings.HasPrefix(got, home) {
		t.Fatalf("LogPath = %q, want it under HOME %q", got, home)
	}
	if !strings.HasSuffix(got, filepath.FromSlash("/launchpad.log")) {
		t.Fatalf("LogPath = %q, want it to end with /launchpad.log", got)
	}
}

func TestSetPlatform(t *testing.T) {
	cfg := Default()
	if err := cfg.SetPlatform("desktop"); err != nil {
		t.Fatalf("SetPlatform returned error: %v", err)
	}
	if cfg.Platform != launch.FamilyDesktop {
		t.Fatalf("Platform = %q, want desktop", cfg.Platform)
	}
	if err := cfg.SetPlatform("nope"); err == nil {
		t.Fatalf("SetPlatform returned nil error for unknown platform")
	}
}
