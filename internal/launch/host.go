package launch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os/exec"
	"runtime"
	"strings"
	"sync"

	"github.com/pkg/browser"
)

var quietBrowser sync.Once

// HostOpener hands URLs to the desktop's handlers. Web URLs open in the
// default browser; custom schemes go through the platform's URL launcher.
type HostOpener struct {
	goos string

	// Seams for tests.
	run         func(ctx context.Context, name string, args ...string) error
	output      func(ctx context.Context, name string, args ...string) ([]byte, error)
	openBrowser func(rawURL string) error
}

// NewHostOpener returns an opener for the running OS.
func NewHostOpener() *HostOpener {
	quietBrowser.Do(func() {
		// The TUI owns the terminal.
		browser.Stdout = io.Discard
		browser.Stderr = io.Discard
	})
	return &HostOpener{
		goos:        runtime.GOOS,
		run:         runCommand,
		output:      commandOutput,
		openBrowser: browser.OpenURL,
	}
}

// CanOpen implements Opener.
//
// Linux asks xdg-mime for a scheme handler and Windows checks the registry.
// macOS does not expose the LaunchServices lookup to a CLI, so it answers yes
// and lets Open decide.
func (h *HostOpener) CanOpen(ctx context.Context, rawURL string) (bool, error) {
	scheme, err := schemeOf(rawURL)
	if err != nil {
		return false, err
	}
	if isWeb(scheme) {
		return true, nil
	}

	switch h.goos {
	case "darwin":
		return true, nil
	case "windows":
		err := h.run(ctx, "reg", "query", `HKCR\`+scheme, "/v", "URL Protocol")
		if err == nil {
			return true, nil
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return false, nil
		}
		return false, fmt.Errorf("query registry: %w", err)
	default:
		out, err := h.output(ctx, "xdg-mime", "query", "default", "x-scheme-handler/"+scheme)
		if err != nil {
			return false, fmt.Errorf("xdg-mime: %w", err)
		}
		return strings.TrimSpace(string(out)) != "", nil
	}
}

// Open implements Opener.
func (h *HostOpener) Open(ctx context.Context, rawURL string) error {
	scheme, err := schemeOf(rawURL)
	if err != nil {
		return err
	}
	if isWeb(scheme) {
		if err := h.openBrowser(rawURL); err != nil {
			return fmt.Errorf("open browser: %w", err)
		}
		return nil
	}

	var name string
	var args []string
	switch h.goos {
	case "darwin":
		name, args = "open", []string{rawURL}
	case "windows":
		name, args = "rundll32", []string{"url.dll,FileProtocolHandler", rawURL}
	default:
		name, args = "xdg-open", []string{rawURL}
	}
	if err := h.run(ctx, name, args...); err != nil {
		return fmt.Errorf("%s %s: %w", name, rawURL, err)
	}
	return nil
}

func schemeOf(rawURL string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return "", fmt.Errorf("parse url %q: %w", rawURL, err)
	}
	if u.Scheme == "" {
		return "", fmt.Errorf("url %q has no scheme", rawURL)
	}
	return strings.ToLower(u.Scheme), nil
}

func isWeb(scheme string) bool {
	return scheme == "http" || scheme == "https"
}

func runCommand(ctx context.Context, name string, args ...string) error {
	return exec.CommandContext(ctx, name, args...).Run()
}

func commandOutput(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}
