package launch

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/five82/launchpad/internal/catalog"
)

// Family is a platform family with its own store convention.
type Family string

const (
	FamilyApple   Family = "apple"
	FamilyAndroid Family = "android"
	FamilyDesktop Family = "desktop"
)

// ParseFamily accepts apple/ios/macos, android, desktop, or auto (empty
// result meaning "detect at runtime").
func ParseFamily(value string) (Family, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "auto":
		return "", nil
	case "apple", "ios", "macos", "darwin":
		return FamilyApple, nil
	case "android", "play":
		return FamilyAndroid, nil
	case "desktop", "linux", "windows":
		return FamilyDesktop, nil
	default:
		return "", fmt.Errorf("unknown platform %q", value)
	}
}

// Platform reports which store family applies to the running host.
type Platform interface {
	Family() Family
}

// StaticPlatform always reports the same family.
type StaticPlatform Family

// Family implements Platform.
func (p StaticPlatform) Family() Family { return Family(p) }

// RuntimePlatform derives the family from GOOS; empty uses runtime.GOOS.
type RuntimePlatform struct {
	GOOS string
}

// Family implements Platform.
func (p RuntimePlatform) Family() Family {
	goos := p.GOOS
	if goos == "" {
		goos = runtime.GOOS
	}
	switch goos {
	case "darwin", "ios":
		return FamilyApple
	case "android":
		return FamilyAndroid
	default:
		return FamilyDesktop
	}
}

// PlatformFor returns a StaticPlatform for a forced family, or RuntimePlatform.
func PlatformFor(forced Family) Platform {
	if forced != "" {
		return StaticPlatform(forced)
	}
	return RuntimePlatform{}
}

// Store identifies which listing a fallback opened.
type Store string

const (
	StoreApp  Store = "App Store"
	StorePlay Store = "Play Store"
)

// StoreFor picks the listing for family. The Play Store URL is used only for
// the android family and only when the app has one.
func StoreFor(app catalog.AppDescriptor, family Family) (string, Store) {
	if family == FamilyAndroid && strings.TrimSpace(app.PlayStoreURL) != "" {
		return app.PlayStoreURL, StorePlay
	}
	return app.StoreURL, StoreApp
}
