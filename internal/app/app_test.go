package app

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/launchpad/internal/config"
	"github.com/five82/launchpad/internal/launch"
	"github.com/five82/launchpad/internal/prefs"
)

type stubOpener struct{}

func (stubOpener) CanOpen(context.Context, string) (bool, error) { return true, nil }
func (stubOpener) Open(context.Context, string) error            { return nil }

func testConfig(t *testing.T) config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.PrefsPath = filepath.Join(t.TempDir(), "prefs.toml")
	cfg.Platform = launch.FamilyAndroid
	return cfg
}

func TestBuild_WiresServices(t *testing.T) {
	cfg := testConfig(t)

	svc, err := Build(cfg, nil, stubOpener{})
	require.NoError(t, err)

	assert.Equal(t, cfg.PrefsPath, svc.Prefs.Path())
	assert.Equal(t, launch.FamilyAndroid, svc.Resolver.Platform())
	assert.True(t, svc.Store.Snapshot().Loading)
	assert.Equal(t, 6, svc.Manager.Current().Len())
}

func TestStartSync_LoadsStoredSelection(t *testing.T) {
	cfg := testConfig(t)
	require.NoError(t, prefs.Save(cfg.PrefsPath, prefs.Prefs{
		SelectedApps: []string{"claude", "perplexity"},
		Onboarded:    true,
	}))

	svc, err := Build(cfg, nil, stubOpener{})
	require.NoError(t, err)

	stop := StartSync(context.Background(), svc)
	defer stop()

	require.Eventually(t, func() bool {
		return !svc.Store.Snapshot().Loading
	}, time.Second, 5*time.Millisecond)

	snap := svc.Store.Snapshot()
	assert.Equal(t, []string{"claude", "perplexity"}, snap.Selection.IDs)
	assert.True(t, snap.Onboarded)
	require.Len(t, snap.Apps, 2)
	assert.Equal(t, "Claude", snap.Apps[0].Name)
}

func TestStartSync_MirrorsMutations(t *testing.T) {
	cfg := testConfig(t)
	svc, err := Build(cfg, nil, stubOpener{})
	require.NoError(t, err)

	stop := StartSync(context.Background(), svc)
	defer stop()
	require.Eventually(t, func() bool {
		return !svc.Store.Snapshot().Loading
	}, time.Second, 5*time.Millisecond)

	_, err = svc.Manager.Remove(context.Background(), "grok")
	require.NoError(t, err)

	snap := svc.Store.Snapshot()
	assert.False(t, snap.Selection.Contains("grok"))
	assert.Equal(t, 5, snap.Selection.Len())
	assert.False(t, snap.Onboarded)
}

func TestLoadConfig_FlagsOverride(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	prefsPath := filepath.Join(t.TempDir(), "p.toml")

	cfg, err := loadConfig(Options{
		ConfigPath: filepath.Join(t.TempDir(), "missing.toml"),
		PrefsPath:  prefsPath,
		Platform:   "ios",
	})
	require.NoError(t, err)
	assert.Equal(t, prefsPath, cfg.PrefsPath)
	assert.Equal(t, launch.FamilyApple, cfg.Platform)

	_, err = loadConfig(Options{ConfigPath: filepath.Join(t.TempDir(), "missing.toml"), Platform: "beos"})
	assert.Error(t, err)
}
