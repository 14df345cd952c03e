package launch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"github.com/five82/launchpad/internal/catalog"
)

// DefaultTimeout bounds each probe and open call.
const DefaultTimeout = 3 * time.Second

// ErrTimeout marks a probe or open call that exceeded the timeout.
var ErrTimeout = errors.New("host did not respond in time")

// Opener is the host's URL-handling facility.
type Opener interface {
	// CanOpen asks whether a handler is registered for rawURL's scheme. The
	// answer is a hint; Open may still fail.
	CanOpen(ctx context.Context, rawURL string) (bool, error)
	Open(ctx context.Context, rawURL string) error
}

// Attempt records one launch resolution.
type Attempt struct {
	ID       string
	App      catalog.AppDescriptor
	Platform Family

	// SchemeAvailable is the probe's answer (false when the probe failed).
	SchemeAvailable bool
	OpenedURL       string
	UsedFallback    bool
	Store           Store
	Succeeded       bool

	// Err is the last failure seen, kept for logging; it is set even when a
	// fallback later succeeded.
	Err error

	StartedAt time.Time
	Duration  time.Duration
}

// Notice is the user-facing message for the attempt; empty when the app
// opened directly.
func (a Attempt) Notice() string {
	switch {
	case !a.Succeeded:
		return fmt.Sprintf("Couldn't open %s", a.App.Name)
	case a.UsedFallback:
		return fmt.Sprintf("%s isn't installed. Opening %s…", a.App.Name, a.Store)
	default:
		return ""
	}
}

// Option customises a Resolver.
type Option func(*Resolver)

// WithTimeout overrides DefaultTimeout.
func WithTimeout(d time.Duration) Option {
	return func(r *Resolver) {
		if d > 0 {
			r.timeout = d
		}
	}
}

// WithClock sets the clock used for attempt timing.
func WithClock(clock clockwork.Clock) Option {
	return func(r *Resolver) {
		if clock != nil {
			r.clock = clock
		}
	}
}

// WithLogger sets the resolver's logger.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Resolver) {
		if logger != nil {
			r.log = logger
		}
	}
}

// Resolver opens an app by deep link and degrades to its store listing.
type Resolver struct {
	opener   Opener
	platform Platform
	timeout  time.Duration
	clock    clockwork.Clock
	log      *zap.Logger
}

// NewResolver builds a Resolver. A nil platform detects the family at runtime.
func NewResolver(opener Opener, platform Platform, opts ...Option) *Resolver {
	if platform == nil {
		platform = RuntimePlatform{}
	}
	r := &Resolver{
		opener:   opener,
		platform: platform,
		timeout:  DefaultTimeout,
		clock:    clockwork.NewRealClock(),
		log:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Platform reports the store family launches resolve against.
func (r *Resolver) Platform() Family { return r.platform.Family() }

// Launch resolves app for the configured platform.
func (r *Resolver) Launch(ctx context.Context, app catalog.AppDescriptor) Attempt {
	return r.Resolve(ctx, app, r.platform.Family())
}

// Resolve tries app's deep link and falls back to the store listing for
// family. A negative probe, a failed probe and a failed invocation all lead
// to the same fallback. Failures never escape; see Attempt.Succeeded.
func (r *Resolver) Resolve(ctx context.Context, app catalog.AppDescriptor, family Family) Attempt {
	attempt := Attempt{
		ID:        uuid.NewString(),
		App:       app,
		Platform:  family,
		StartedAt: r.clock.Now(),
	}
	storeURL, store := StoreFor(app, family)
	log := r.log.With(
		zap.String("attempt", attempt.ID),
		zap.String("app", app.ID),
		zap.String("platform", string(family)),
	)

	if r.opener == nil {
		attempt.Err = errors.New("no url opener configured")
		return r.finish(log, attempt)
	}

	available, probeErr := bounded(ctx, r.timeout, func(ctx context.Context) (bool, error) {
		return r.opener.CanOpen(ctx, app.URLScheme)
	})
	if probeErr != nil {
		log.Debug("scheme probe failed", zap.Error(probeErr))
		attempt.Err = fmt.Errorf("probe %s: %w", app.URLScheme, probeErr)
		available = false
	}
	attempt.SchemeAvailable = available

	if available {
		_, err := bounded(ctx, r.timeout, func(ctx context.Context) (struct{}, error) {
			return struct{}{}, r.opener.Open(ctx, app.URLScheme)
		})
		if err == nil {
			attempt.OpenedURL = app.URLScheme
			attempt.Succeeded = true
			return r.finish(log, attempt)
		}
		log.Debug("deep link failed; using store", zap.Error(err))
		attempt.Err = fmt.Errorf("open %s: %w", app.URLScheme, err)
	}

	attempt.UsedFallback = true
	attempt.Store = store
	_, err := bounded(ctx, r.timeout, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, r.opener.Open(ctx, storeURL)
	})
	if err != nil {
		attempt.Err = fmt.Errorf("open store %s: %w", storeURL, err)
		return r.finish(log, attempt)
	}
	attempt.OpenedURL = storeURL
	attempt.Succeeded = true
	return r.finish(log, attempt)
}

func (r *Resolver) finish(log *zap.Logger, a Attempt) Attempt {
	a.Duration = r.clock.Since(a.StartedAt)
	fields := []zap.Field{
		zap.Bool("succeeded", a.Succeeded),
		zap.Bool("fallback", a.UsedFallback),
		zap.String("opened", a.OpenedURL),
		zap.Duration("took", a.Duration),
	}
	if a.Succeeded {
		log.Info("launch resolved", fields...)
	} else {
		log.Warn("launch failed", append(fields, zap.Error(a.Err))...)
	}
	return a
}

// bounded runs fn with a timeout. fn keeps running in the background if it
// ignores ctx, but its result is discarded.
func bounded[T any](ctx context.Context, timeout time.Duration, fn func(context.Context) (T, error)) (T, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	type result struct {
		val T
		err error
	}
	done := make(chan result, 1)
	go func() {
		val, err := fn(ctx)
		done <- result{val, err}
	}()

	select {
	case res := <-done:
		return res.val, res.err
	case <-ctx.Done():
		var zero T
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return zero, ErrTimeout
		}
		return zero, ctx.Err()
	}
}
