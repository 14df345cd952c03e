// Package catalog holds the fixed table of assistant apps the launcher knows
// about.
//
// The built-in table is compiled into the binary from apps.yaml and parsed
// once on first use. It is never mutated at runtime; callers receive copies.
// Components take a *Catalog explicitly so tests can pass a small fixture
// built with New or MustNew.
//
// Each AppDescriptor carries a deep-link scheme plus two store listings: the
// App Store URL that pairs with the scheme convention, and an optional Play
// Store URL chosen by platform detection in the launch package.
package catalog
