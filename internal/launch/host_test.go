package launch

import (
	"context"
	"errors"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type call struct {
	name string
	args []string
}

func newTestHost(goos string) (*HostOpener, *[]call) {
	var calls []call
	h := &HostOpener{
		goos: goos,
		run: func(_ context.Context, name string, args ...string) error {
			calls = append(calls, call{name, args})
			return nil
		},
		output: func(_ context.Context, name string, args ...string) ([]byte, error) {
			calls = append(calls, call{name, args})
			return []byte("claude.desktop\n"), nil
		},
		openBrowser: func(rawURL string) error {
			calls = append(calls, call{"browser", []string{rawURL}})
			return nil
		},
	}
	return h, &calls
}

func TestHostOpener_LinuxProbeUsesXdgMime(t *testing.T) {
	h, calls := newTestHost("linux")

	ok, err := h.CanOpen(context.Background(), "claude://")
	require.NoError(t, err)
	assert.True(t, ok)
	require.Len(t, *calls, 1)
	assert.Equal(t, "xdg-mime", (*calls)[0].name)
	assert.Equal(t, []string{"query", "default", "x-scheme-handler/claude"}, (*calls)[0].args)

	h.output = func(context.Context, string, ...string) ([]byte, error) { return []byte("\n"), nil }
	ok, err = h.CanOpen(context.Background(), "claude://")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHostOpener_LinuxProbeErrorSurfaces(t *testing.T) {
	h, _ := newTestHost("linux")
	h.output = func(context.Context, string, ...string) ([]byte, error) {
		return nil, exec.ErrNotFound
	}

	_, err := h.CanOpen(context.Background(), "claude://")
	assert.ErrorIs(t, err, exec.ErrNotFound)
}

func TestHostOpener_WindowsProbeReadsRegistry(t *testing.T) {
	h, calls := newTestHost("windows")

	ok, err := h.CanOpen(context.Background(), "mscopilot://")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "reg", (*calls)[0].name)
	assert.Equal(t, `HKCR\mscopilot`, (*calls)[0].args[1])

	h.run = func(context.Context, string, ...string) error { return &exec.ExitError{} }
	ok, err = h.CanOpen(context.Background(), "mscopilot://")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHostOpener_DarwinProbeDefersToOpen(t *testing.T) {
	h, calls := newTestHost("darwin")

	ok, err := h.CanOpen(context.Background(), "grok://")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Empty(t, *calls)
}

func TestHostOpener_WebURLsUseBrowser(t *testing.T) {
	h, calls := newTestHost("linux")

	ok, err := h.CanOpen(context.Background(), "https://apps.apple.com/app/x")
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, h.Open(context.Background(), "https://apps.apple.com/app/x"))
	require.Len(t, *calls, 1)
	assert.Equal(t, "browser", (*calls)[0].name)
}

func TestHostOpener_SchemeOpenPerOS(t *testing.T) {
	cases := map[string]string{
		"linux":   "xdg-open",
		"freebsd": "xdg-open",
		"darwin":  "open",
		"windows": "rundll32",
	}
	for goos, want := range cases {
		t.Run(goos, func(t *testing.T) {
			h, calls := newTestHost(goos)
			require.NoError(t, h.Open(context.Background(), "poe://"))
			require.Len(t, *calls, 1)
			assert.Equal(t, want, (*calls)[0].name)
			assert.Equal(t, "poe://", (*calls)[0].args[len((*calls)[0].args)-1])
		})
	}
}

func TestHostOpener_OpenFailureWraps(t *testing.T) {
	h, _ := newTestHost("linux")
	boom := errors.New("exit status 4")
	h.run = func(context.Context, string, ...string) error { return boom }

	err := h.Open(context.Background(), "poe://")
	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "xdg-open")
}

func TestHostOpener_RejectsSchemelessURL(t *testing.T) {
	h, _ := newTestHost("linux")

	_, err := h.CanOpen(context.Background(), "just-text")
	assert.Error(t, err)
	assert.Error(t, h.Open(context.Background(), "just-text"))
}
