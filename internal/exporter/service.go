// Package exporter builds every configured virtual display, writes the
// encoded payloads into the destination directory and keeps the store in sync.
package exporter

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fiffeek/hyprvirtualdisplays/internal/config"
	"github.com/fiffeek/hyprvirtualdisplays/internal/errs"
	"github.com/fiffeek/hyprvirtualdisplays/internal/payload"
	"github.com/fiffeek/hyprvirtualdisplays/internal/utils"
	"github.com/fiffeek/hyprvirtualdisplays/internal/virtualdisplay"
	"github.com/segmentio/ksuid"
	"github.com/sirupsen/logrus"
)

type IMonitorResolver interface {
	ResolveMonitorID(ctx context.Context, name string) (int32, error)
}

type IStore interface {
	PutRaw(name string, payload []byte) error
	Get(name string) (*virtualdisplay.VirtualDisplayConfig, error)
}

type Service struct {
	config        *config.Config
	resolver      IMonitorResolver
	store         IStore
	codec         *virtualdisplay.Codec
	serviceConfig *Config
}

type Config struct {
	DryRun bool
}

// NewService wires the exporter. resolver and store may be nil: displays that
// need monitor resolution then fail, and nothing is persisted.
func NewService(cfg *config.Config, resolver IMonitorResolver, store IStore,
	codec *virtualdisplay.Codec, svcCfg *Config,
) *Service {
	if svcCfg == nil {
		svcCfg = &Config{}
	}
	return &Service{
		config:        cfg,
		resolver:      resolver,
		store:         store,
		codec:         codec,
		serviceConfig: svcCfg,
	}
}

// BuildDisplay resolves the runtime fields of a configured display and builds it.
func (s *Service) BuildDisplay(ctx context.Context, display *config.Display) (*virtualdisplay.VirtualDisplayConfig, error) {
	b, err := display.NewBuilder()
	if err != nil {
		return nil, fmt.Errorf("cant create builder: %w", err)
	}

	if display.MirrorMonitor != nil {
		if s.resolver == nil {
			return nil, fmt.Errorf("mirror_monitor %s needs Hyprland: %w", *display.MirrorMonitor, errs.ErrHyprNotRunning)
		}
		id, err := s.resolver.ResolveMonitorID(ctx, *display.MirrorMonitor)
		if err != nil {
			return nil, fmt.Errorf("cant resolve mirror_monitor: %w", err)
		}
		b.SetDisplayIDToMirror(id)
	}

	if display.GenerateUniqueID != nil && *display.GenerateUniqueID {
		b.SetUniqueID(s.uniqueIDFor(display.Name))
	}

	cfg, err := b.Build()
	if err != nil {
		return nil, fmt.Errorf("cant build display: %w", err)
	}
	return cfg, nil
}

// uniqueIDFor keeps a previously generated id stable across exports.
func (s *Service) uniqueIDFor(name string) string {
	if s.store != nil {
		prev, err := s.store.Get(name)
		if err == nil {
			if id, ok := prev.UniqueID(); ok {
				return id
			}
		} else if !errors.Is(err, errs.ErrNotFound) {
			logrus.WithError(err).WithField("display", name).Warn("Cant read previous payload, generating a new unique id")
		}
	}

	id := ksuid.New().String()
	logrus.WithField("display", name).Debug("Generated unique id")
	return id
}

func (s *Service) RunOnce(ctx context.Context) error {
	return s.UpdateOnce(ctx)
}

// UpdateOnce exports every configured display.
func (s *Service) UpdateOnce(ctx context.Context) error {
	cfg := s.config.Get()
	for _, name := range cfg.DisplayNames() {
		select {
		case <-ctx.Done():
			return context.Cause(ctx)
		default:
		}

		if err := s.export(ctx, cfg, cfg.Displays[name]); err != nil {
			return fmt.Errorf("cant export display %s: %w", name, err)
		}
	}
	logrus.WithField("displays", len(cfg.Displays)).Info("Export finished")
	return nil
}

func (s *Service) export(ctx context.Context, cfg *config.UnsafeConfig, display *config.Display) error {
	vdc, err := s.BuildDisplay(ctx, display)
	if err != nil {
		return err
	}

	raw, err := s.codec.Encode(vdc)
	if err != nil {
		return fmt.Errorf("cant encode: %w", err)
	}
	format := *cfg.General.Format
	contents, err := payload.Marshal(format, raw)
	if err != nil {
		return err
	}
	destination := filepath.Join(*cfg.General.Destination, display.Name+format.Extension())

	fields := utils.NewLogrusCustomFields(logrus.Fields{
		"display":     display.Name,
		"destination": destination,
		"bytes":       len(raw),
	})

	if s.serviceConfig.DryRun {
		logrus.WithFields(fields.WithLogID(utils.DryRunLogID)).Info("[DRY RUN] Would write payload")
		return nil
	}

	//nolint:gosec
	if current, err := os.ReadFile(destination); err == nil && bytes.Equal(current, contents) {
		logrus.WithFields(fields.WithLogID(utils.PayloadUnchangedLogID)).Debug("Payload unchanged, skipping write")
	} else {
		if err := utils.WriteAtomic(destination, contents); err != nil {
			return fmt.Errorf("cant write payload: %w", err)
		}
		logrus.WithFields(fields.WithLogID(utils.PayloadWrittenLogID)).Info("Payload written")
	}

	// the store only records payloads that reached the destination
	if s.store != nil {
		if err := s.store.PutRaw(display.Name, raw); err != nil {
			return fmt.Errorf("cant persist payload: %w", err)
		}
		logrus.WithFields(fields.WithLogID(utils.PayloadStoredLogID)).Debug("Payload stored")
	}
	return nil
}
