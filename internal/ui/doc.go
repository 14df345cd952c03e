// Package ui is the Bubble Tea front end of the launcher.
//
// # Views
//
//   - Launcher: a three-column grid of the selected apps, each tile drawn in
//     the app's brand color. enter or a digit launches; the footer reads
//     "N apps • press s to customise".
//   - Choose Apps: the ordered selection (reorder with K/J, remove with x)
//     followed by the apps that can still be added. r resets to defaults
//     after a confirmation modal.
//   - Welcome: shown on first run until at least two apps are picked and
//     the user continues.
//   - Activity: the tail of the launcher log file.
//
// # Data flow
//
// The model never mutates the selection directly. Key handlers return
// commands that call the selection manager or the launch resolver off the
// UI goroutine. The manager notifies the state store, the store signals
// its subscribers, and the model picks up a fresh snapshot:
//
//	key ─► mutateCmd ─► selection.Manager ─► state.Store ─► changeMsg ─► View
//
// While a mutation or launch is running the model is busy and further
// mutations and launches are dropped, so two quick presses cannot race.
// Launch outcomes that need the user's attention ("isn't installed",
// "Couldn't open") appear in the footer for a few seconds.
//
// # Themes
//
// Midnight and Daylight follow the system dark and light palettes; Nightfox,
// Kanagawa and Slate are editor palettes. T cycles themes and saves the
// choice to the prefs file.
package ui
