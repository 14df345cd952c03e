package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/five82/launchpad/internal/catalog"
	"github.com/five82/launchpad/internal/config"
	"github.com/five82/launchpad/internal/launch"
	"github.com/five82/launchpad/internal/logging"
	"github.com/five82/launchpad/internal/prefs"
	"github.com/five82/launchpad/internal/selection"
	"github.com/five82/launchpad/internal/state"
	"github.com/five82/launchpad/internal/ui"
)

// Options configure the launcher.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses the config value
	Platform   string // empty uses the config value
	Debug      bool
}

// Services are the long-lived components shared by the UI.
type Services struct {
	Config   config.Config
	Logger   *zap.Logger
	Prefs    *prefs.File
	Manager  *selection.Manager
	Resolver *launch.Resolver
	Store    *state.Store
}

// Run boots the launcher TUI until the user quits or the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	level := cfg.LogLevel
	if opts.Debug {
		level = "debug"
	}
	logger, err := logging.New(logging.Config{
		Level:       level,
		Development: opts.Debug,
		Path:        cfg.LogPath(),
	})
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	svc, err := Build(cfg, logger, launch.NewHostOpener())
	if err != nil {
		return err
	}

	stop := StartSync(ctx, svc)
	defer stop()

	logger.Info("launcher started",
		zap.String("platform", string(svc.Resolver.Platform())),
		zap.String("prefs", svc.Prefs.Path()))

	userPrefs := svc.Prefs.Read()
	return ui.Run(ui.Options{
		Context:   ctx,
		Manager:   svc.Manager,
		Resolver:  svc.Resolver,
		Store:     svc.Store,
		Prefs:     svc.Prefs,
		Logger:    logger,
		LogPath:   cfg.LogPath(),
		ThemeName: userPrefs.Theme,
	})
}

// Build wires the selection manager, resolver and store for cfg.
func Build(cfg config.Config, logger *zap.Logger, opener launch.Opener) (*Services, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	file := prefs.Open(cfg.PrefsPath)

	manager, err := selection.NewManager(catalog.Default(), file,
		selection.WithLogger(logger.Named("selection")))
	if err != nil {
		return nil, fmt.Errorf("init selection: %w", err)
	}

	resolver := launch.NewResolver(opener, launch.PlatformFor(cfg.Platform),
		launch.WithTimeout(cfg.LaunchTimeout),
		launch.WithLogger(logger.Named("launch")))

	return &Services{
		Config:   cfg,
		Logger:   logger,
		Prefs:    file,
		Manager:  manager,
		Resolver: resolver,
		Store:    state.NewStore(nil),
	}, nil
}

func loadConfig(opts Options) (config.Config, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	if opts.Platform != "" {
		if err := cfg.SetPlatform(opts.Platform); err != nil {
			return config.Config{}, err
		}
	}
	if opts.PrefsPath != "" {
		cfg.PrefsPath = opts.PrefsPath
	}
	return cfg, nil
}
