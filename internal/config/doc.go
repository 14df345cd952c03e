// Package config loads launcher settings.
//
// # Resolution order
//
//  1. Built-in defaults
//  2. ~/.config/launchpad/config.toml, or the path passed to Load
//  3. LAUNCHPAD_* environment variables
//  4. Command-line flags, applied by the caller after Load
//
// A missing config file is not an error. Invalid TOML, an unknown platform
// name or an unparseable duration is.
//
// # TOML format
//
//	log_dir = "~/.local/share/launchpad/logs"
//	log_level = "info"
//	platform = "auto"          # apple, android, desktop or auto
//	launch_timeout = "3s"      # capped at 30s
//	prefs_path = "~/.config/launchpad/prefs.toml"
//
// # Environment
//
//	LAUNCHPAD_LOG_DIR, LAUNCHPAD_LOG_LEVEL, LAUNCHPAD_PLATFORM,
//	LAUNCHPAD_LAUNCH_TIMEOUT, LAUNCHPAD_PREFS_PATH
//
// Paths get tilde expansion and are made absolute.
package config
