// Package app is the composition root of the launcher.
//
// Run loads configuration, opens the log file, then wires the pieces:
//
//	Run()
//	 ├─> config.Load()           defaults, config.toml, LAUNCHPAD_* env
//	 ├─> logging.New()           zap logger writing to <log_dir>/launchpad.log
//	 ├─> Build()
//	 │    ├─> prefs.Open()       persisted selection, onboarding, theme
//	 │    ├─> selection.NewManager()
//	 │    ├─> launch.NewResolver()
//	 │    └─> state.NewStore()   starts in the loading state
//	 ├─> StartSync()             manager changes ──► store, async Load
//	 └─> ui.Run()                blocks until quit
//
// Loading the stored selection happens off the UI goroutine. Until it
// completes the store reports Loading and the UI shows a spinner instead of
// the default set, so the user never sees a selection flip on start.
//
// Fatal errors are limited to unreadable configuration, an unusable log
// directory and an invalid built-in catalog. Storage failures after start
// are logged and surfaced as notices.
package app
