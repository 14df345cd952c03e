package launch

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/launchpad/internal/catalog"
)

var claude = catalog.AppDescriptor{
	ID:           "claude",
	Name:         "Claude",
	URLScheme:    "claude://",
	StoreURL:     "https://apps.apple.com/app/claude-by-anthropic/id6473753684",
	PlayStoreURL: "https://play.google.com/store/apps/details?id=com.anthropic.claude",
}

// fakeOpener scripts probe and open results and records every opened URL.
type fakeOpener struct {
	mu       sync.Mutex
	canOpen  bool
	probeErr error
	failURLs map[string]error
	block    bool
	probes   int
	opened   []string
}

func (f *fakeOpener) CanOpen(ctx context.Context, _ string) (bool, error) {
	f.mu.Lock()
	f.probes++
	block := f.block
	f.mu.Unlock()
	if block {
		<-ctx.Done()
		return false, ctx.Err()
	}
	return f.canOpen, f.probeErr
}

func (f *fakeOpener) Open(_ context.Context, rawURL string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.opened = append(f.opened, rawURL)
	return f.failURLs[rawURL]
}

func (f *fakeOpener) openedURLs() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.opened...)
}

func TestResolve_InstalledAppOpensDirectly(t *testing.T) {
	opener := &fakeOpener{canOpen: true}
	r := NewResolver(opener, StaticPlatform(FamilyApple))

	a := r.Resolve(context.Background(), claude, FamilyApple)

	assert.True(t, a.Succeeded)
	assert.True(t, a.SchemeAvailable)
	assert.False(t, a.UsedFallback)
	assert.Equal(t, "claude://", a.OpenedURL)
	assert.Equal(t, []string{"claude://"}, opener.openedURLs())
	assert.Empty(t, a.Notice())
	assert.NoError(t, a.Err)
	assert.NotEmpty(t, a.ID)
}

func TestResolve_NotInstalledOpensStore(t *testing.T) {
	opener := &fakeOpener{canOpen: false}
	r := NewResolver(opener, nil)

	a := r.Resolve(context.Background(), claude, FamilyApple)

	assert.True(t, a.Succeeded)
	assert.True(t, a.UsedFallback)
	assert.Equal(t, StoreApp, a.Store)
	assert.Equal(t, claude.StoreURL, a.OpenedURL)
	assert.Equal(t, []string{claude.StoreURL}, opener.openedURLs())
	assert.Equal(t, "Claude isn't installed. Opening App Store…", a.Notice())
}

func TestResolve_AndroidUsesPlayStore(t *testing.T) {
	opener := &fakeOpener{canOpen: false}
	r := NewResolver(opener, StaticPlatform(FamilyAndroid))

	a := r.Launch(context.Background(), claude)

	assert.True(t, a.Succeeded)
	assert.Equal(t, FamilyAndroid, a.Platform)
	assert.Equal(t, StorePlay, a.Store)
	assert.Equal(t, claude.PlayStoreURL, a.OpenedURL)
}

func TestResolve_AndroidWithoutPlayStoreFallsBackToPrimary(t *testing.T) {
	app := claude
	app.PlayStoreURL = ""
	opener := &fakeOpener{canOpen: false}
	r := NewResolver(opener, nil)

	a := r.Resolve(context.Background(), app, FamilyAndroid)

	assert.Equal(t, app.StoreURL, a.OpenedURL)
	assert.Equal(t, StoreApp, a.Store)
}

func TestResolve_ProbeErrorTreatedAsNotInstalled(t *testing.T) {
	opener := &fakeOpener{canOpen: true, probeErr: errors.New("query restricted")}
	r := NewResolver(opener, nil)

	a := r.Resolve(context.Background(), claude, FamilyDesktop)

	assert.True(t, a.Succeeded)
	assert.False(t, a.SchemeAvailable)
	assert.True(t, a.UsedFallback)
	assert.Equal(t, claude.StoreURL, a.OpenedURL)
	assert.Equal(t, []string{claude.StoreURL}, opener.openedURLs())
	require.Error(t, a.Err)
}

func TestResolve_InvocationFailureFallsBack(t *testing.T) {
	opener := &fakeOpener{
		canOpen:  true,
		failURLs: map[string]error{"claude://": errors.New("no handler")},
	}
	r := NewResolver(opener, nil)

	a := r.Resolve(context.Background(), claude, FamilyApple)

	assert.True(t, a.Succeeded)
	assert.True(t, a.SchemeAvailable)
	assert.True(t, a.UsedFallback)
	assert.Equal(t, claude.StoreURL, a.OpenedURL)
	assert.Equal(t, []string{"claude://", claude.StoreURL}, opener.openedURLs())
}

func TestResolve_StoreFailureReportsUnsuccessful(t *testing.T) {
	opener := &fakeOpener{
		canOpen:  false,
		failURLs: map[string]error{claude.StoreURL: errors.New("no browser")},
	}
	r := NewResolver(opener, nil)

	a := r.Resolve(context.Background(), claude, FamilyApple)

	assert.False(t, a.Succeeded)
	assert.True(t, a.UsedFallback)
	assert.Empty(t, a.OpenedURL)
	assert.Equal(t, "Couldn't open Claude", a.Notice())
	require.Error(t, a.Err)
	assert.Contains(t, a.Err.Error(), "open store")
}

func TestResolve_ProbeTimeoutTakesFallback(t *testing.T) {
	opener := &fakeOpener{block: true}
	r := NewResolver(opener, nil, WithTimeout(20*time.Millisecond))

	a := r.Resolve(context.Background(), claude, FamilyApple)

	assert.True(t, a.Succeeded)
	assert.True(t, a.UsedFallback)
	assert.ErrorIs(t, a.Err, ErrTimeout)
}

func TestResolve_ProbesEveryTime(t *testing.T) {
	opener := &fakeOpener{canOpen: true}
	r := NewResolver(opener, nil)

	for i := 0; i < 3; i++ {
		r.Resolve(context.Background(), claude, FamilyApple)
	}
	assert.Equal(t, 3, opener.probes)
}

func TestResolve_NilOpenerFails(t *testing.T) {
	r := NewResolver(nil, nil)

	a := r.Resolve(context.Background(), claude, FamilyApple)
	assert.False(t, a.Succeeded)
	assert.Error(t, a.Err)
}

func TestResolve_RecordsTiming(t *testing.T) {
	clock := clockwork.NewFakeClock()
	r := NewResolver(&fakeOpener{canOpen: true}, nil, WithClock(clock))

	a := r.Resolve(context.Background(), claude, FamilyApple)
	assert.Equal(t, clock.Now(), a.StartedAt)
	assert.Equal(t, time.Duration(0), a.Duration)
}

func TestParseFamily(t *testing.T) {
	cases := map[string]Family{
		"":        "",
		"auto":    "",
		" iOS ":   FamilyApple,
		"macos":   FamilyApple,
		"android": FamilyAndroid,
		"linux":   FamilyDesktop,
	}
	for in, want := range cases {
		got, err := ParseFamily(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseFamily("symbian")
	assert.Error(t, err)
}

func TestRuntimePlatform(t *testing.T) {
	assert.Equal(t, FamilyApple, RuntimePlatform{GOOS: "darwin"}.Family())
	assert.Equal(t, FamilyAndroid, RuntimePlatform{GOOS: "android"}.Family())
	assert.Equal(t, FamilyDesktop, RuntimePlatform{GOOS: "linux"}.Family())
	assert.Equal(t, FamilyAndroid, PlatformFor(FamilyAndroid).Family())
}
