// Package launch opens an assistant app by deep link, falling back to its
// store listing.
//
// # Resolution
//
// Resolver.Resolve follows one fixed path:
//
//  1. Pick the store URL for the platform family (Play Store on android when
//     the app has one, App Store otherwise).
//  2. Probe whether the app's URL scheme has a handler.
//  3. If it does, open the scheme. Success ends the attempt.
//  4. Otherwise, or if opening failed, open the store URL.
//
// A negative probe, a failed probe and a failed invocation are handled the
// same way. The probe is repeated on every launch because installed apps
// change between launches. Every host call is bounded by a timeout (3s by
// default); a call that runs over counts as failed.
//
// Resolve never returns an error. The Attempt it returns says which URL was
// opened, whether the store fallback was used, and whether anything opened at
// all, so the caller can decide what to tell the user.
//
// # Host integration
//
// Platform and Opener are interfaces so the algorithm runs the same under
// test. HostOpener is the desktop implementation: web URLs go to the default
// browser through github.com/pkg/browser, custom schemes through xdg-open,
// open or rundll32.
package launch
