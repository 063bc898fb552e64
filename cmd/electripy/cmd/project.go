package cmd

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/electripy/electripy/cmd/electripy/internal/cache"
	"github.com/electripy/electripy/cmd/electripy/internal/config"
	"github.com/electripy/electripy/cmd/electripy/internal/manifest"
	"github.com/electripy/electripy/pkg/app"
	"github.com/electripy/electripy/pkg/assets"
	"github.com/electripy/electripy/pkg/errors"
)

// project is a loaded layout with its configuration.
type project struct {
	cfg     *config.Resolved
	logger  *zap.Logger
	app     *app.App
	closers []func() error
}

// overrides are command-line values that take precedence over electripy.yaml.
type overrides struct {
	layout       string
	host         string
	eelPort      int
	frontendPort int
}

func (o overrides) apply(cfg *config.Resolved) {
	if o.layout != "" {
		cfg.Layout = o.layout
	}
	if o.host != "" {
		cfg.Host = o.host
	}
	if o.eelPort != 0 {
		cfg.EelPort = o.eelPort
	}
	if o.frontendPort != 0 {
		cfg.FrontendPort = o.frontendPort
	}
}

// openProject resolves the configuration of the enclosing project and builds
// its layout.
func openProject(o overrides) (*project, error) {
	root, err := config.FindProjectRoot()
	if err != nil {
		return nil, err
	}
	cfg, err := config.Resolve(root)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	o.apply(cfg)

	logger, err := newLogger(cfg.LogLevel, cfg.LogDev)
	if err != nil {
		return nil, err
	}
	errors.SetHandler(errors.NewLogHandler(logger, cfg.LogDev))

	p := &project{cfg: cfg, logger: logger}
	fetchOpts := []assets.Option{
		assets.WithTimeout(cfg.FetchTimeout),
		assets.WithLogger(logger),
	}
	if cfg.Cache {
		if c, err := openAssetCache(); err != nil {
			logger.Warn("asset cache disabled", zap.Error(err))
		} else {
			fetchOpts = append(fetchOpts, assets.WithCache(c))
			p.closers = append(p.closers, c.Close)
		}
	}

	l, err := manifest.Load(cfg.Layout)
	if err != nil {
		p.Close()
		return nil, err
	}
	body, err := manifest.Build(l, manifest.Options{
		Loader: assets.NewFetcher(fetchOpts...),
		Logger: logger,
	})
	if err != nil {
		p.Close()
		return nil, fmt.Errorf("%s: %w", cfg.Layout, err)
	}

	p.app, err = app.New(body,
		app.WithWindow(cfg.Window),
		app.WithHost(cfg.Host),
		app.WithDevelopment(cfg.Development),
		app.WithLogger(logger))
	if err != nil {
		p.Close()
		return nil, err
	}
	p.app.Configure(cfg.EelPort, cfg.FrontendPort)
	return p, nil
}

func openAssetCache() (*assets.BoltCache, error) {
	path, err := cache.AssetsDB()
	if err != nil {
		return nil, err
	}
	return assets.OpenBoltCache(path)
}

// Close releases the asset cache and flushes the logger.
func (p *project) Close() {
	for _, c := range p.closers {
		if err := c(); err != nil {
			p.logger.Warn("close failed", zap.Error(err))
		}
	}
	p.closers = nil
	_ = p.logger.Sync()
}

func newLogger(level string, development bool) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log.level %q: %w", level, err)
	}
	cfg := zap.NewProductionConfig()
	if development {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.OutputPaths = []string{"stderr"}
	return cfg.Build()
}
