// Package app provides an application runner.
package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/fiffeek/hyprvirtualdisplays/internal/config"
	"github.com/fiffeek/hyprvirtualdisplays/internal/errs"
	"github.com/fiffeek/hyprvirtualdisplays/internal/exporter"
	"github.com/fiffeek/hyprvirtualdisplays/internal/filewatcher"
	"github.com/fiffeek/hyprvirtualdisplays/internal/hypr"
	"github.com/fiffeek/hyprvirtualdisplays/internal/reloader"
	"github.com/fiffeek/hyprvirtualdisplays/internal/signal"
	"github.com/fiffeek/hyprvirtualdisplays/internal/store"
	"github.com/fiffeek/hyprvirtualdisplays/internal/surface"
	"github.com/fiffeek/hyprvirtualdisplays/internal/utils"
	"github.com/fiffeek/hyprvirtualdisplays/internal/virtualdisplay"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

type Application struct {
	cfg       *config.Config
	store     *store.Store
	fswatcher *filewatcher.Service
	svc       *exporter.Service
	reloader  *reloader.Service
	signal    *signal.Handler
}

type Options struct {
	ConfigPath           string
	DryRun               bool
	DisableHypr          bool
	DisableStore         bool
	DisableAutoHotReload bool
}

func NewApplication(ctx context.Context, cancel context.CancelCauseFunc, opts *Options) (*Application, error) {
	cfg, err := config.NewConfig(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	var resolver exporter.IMonitorResolver
	if !opts.DisableHypr {
		hyprIPC, err := hypr.NewIPC()
		switch {
		case err == nil:
			resolver = hyprIPC
		case errors.Is(err, errs.ErrHyprNotRunning) && !cfg.Get().ReliesOnHypr():
			logrus.WithError(err).Debug("Hyprland not available, mirror_monitor resolution disabled")
		default:
			return nil, fmt.Errorf("failed to initialize Hyprland IPC: %w", err)
		}
	}

	codec := virtualdisplay.NewCodec(surface.NewParcelCodec())

	var payloads exporter.IStore
	var db *store.Store
	if !opts.DisableStore {
		db, err = store.Open(*cfg.Get().General.StorePath, codec)
		if err != nil {
			return nil, fmt.Errorf("failed to open store: %w", err)
		}
		payloads = db
	}

	svc := exporter.NewService(cfg, resolver, payloads, codec, &exporter.Config{DryRun: opts.DryRun})
	fswatcher := filewatcher.NewService(cfg, &opts.DisableAutoHotReload)
	reloader := reloader.NewService(cfg, fswatcher, svc, opts.DisableAutoHotReload)

	return &Application{
		cfg:       cfg,
		store:     db,
		fswatcher: fswatcher,
		svc:       svc,
		reloader:  reloader,
		signal:    signal.NewHandler(ctx, cancel),
	}, nil
}

func (a *Application) Close() {
	if a.store == nil {
		return
	}
	if err := a.store.Close(); err != nil {
		logrus.WithError(err).Error("Failed to close store")
	}
}

func (a *Application) RunOnce(ctx context.Context) error {
	logrus.Info("Will run one export")
	if err := a.svc.RunOnce(ctx); err != nil {
		return fmt.Errorf("run failed: %w", err)
	}
	logrus.Info("Run succeeded, exiting")
	return nil
}

func (a *Application) Run(ctx context.Context) error {
	if err := a.svc.UpdateOnce(ctx); err != nil {
		return fmt.Errorf("unable to export on start: %w", err)
	}

	a.signal.Start(a.svc)
	defer a.signal.Stop()

	eg, ctx := errgroup.WithContext(ctx)

	backgroundGoroutines := []struct {
		Fun  func(context.Context) error
		Name string
	}{
		{Fun: a.fswatcher.Run, Name: "filewatcher"},
		{Fun: a.reloader.Run, Name: "reloader"},
	}
	for _, bg := range backgroundGoroutines {
		bg := bg
		eg.Go(func() error {
			fields := logrus.Fields{"name": bg.Name, "fun": utils.GetFunctionName(bg.Fun)}
			logrus.WithFields(fields).Debug("Starting")
			if err := bg.Fun(ctx); err != nil {
				logrus.WithFields(fields).WithError(err).Debugf("Service finished %s", bg.Name)
				return fmt.Errorf("%s failed: %w", bg.Name, err)
			}
			logrus.WithFields(fields).Debug("Finished")
			return nil
		})
	}

	eg.Go(func() error {
		<-ctx.Done()
		logrus.Debug("Context cancelled, shutting down")
		return context.Cause(ctx)
	})

	if err := eg.Wait(); err != nil {
		return fmt.Errorf("main eg failed: %w", err)
	}

	logrus.Info("Shutdown complete")
	return nil
}
