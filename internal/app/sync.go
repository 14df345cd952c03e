package app

import (
	"context"

	"go.uber.org/zap"

	"github.com/five82/launchpad/internal/selection"
)

// StartSync mirrors selection changes into the store and starts the initial
// load in the background. It returns immediately; the returned func stops
// mirroring.
func StartSync(ctx context.Context, svc *Services) (stop func()) {
	cat := svc.Manager.Catalog()
	unsubscribe := svc.Manager.Subscribe(func(s selection.State) {
		svc.Store.SetSelection(s, cat.Resolve(s.IDs))
	})

	done := make(chan struct{})
	go func() {
		defer close(done)
		load(ctx, svc)
	}()

	return func() {
		unsubscribe()
		<-done
	}
}

// load reads onboarding and selection state. Manager.Load notifies
// subscribers, which clears the store's loading flag.
func load(ctx context.Context, svc *Services) {
	svc.Store.SetOnboarded(svc.Prefs.Onboarded())
	s := svc.Manager.Load(ctx)
	svc.Logger.Debug("selection loaded", zap.Strings("ids", s.IDs))
}
