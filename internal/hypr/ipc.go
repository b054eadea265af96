// Package hypr provides Hyprland IPC communication functionality.
package hypr

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/fiffeek/hyprvirtualdisplays/internal/dial"
	"github.com/fiffeek/hyprvirtualdisplays/internal/errs"
	"github.com/fiffeek/hyprvirtualdisplays/internal/utils"
	"github.com/sirupsen/logrus"
)

type IPC struct {
	instanceSignature string
	xdgRuntimeDir     string
}

func NewIPC() (*IPC, error) {
	signature := os.Getenv("HYPRLAND_INSTANCE_SIGNATURE")
	if signature == "" {
		return nil, fmt.Errorf("%w: HYPRLAND_INSTANCE_SIGNATURE environment variable not set - are you running under Hyprland?",
			errs.ErrHyprNotRunning)
	}

	xdgRuntimeDir, err := utils.GetXDGRuntimeDir()
	if err != nil {
		return nil, fmt.Errorf("cant get xdg runtime dir: %w", err)
	}

	return &IPC{
		instanceSignature: signature,
		xdgRuntimeDir:     xdgRuntimeDir,
	}, nil
}

func (h *IPC) QueryConnectedMonitors(ctx context.Context) (MonitorSpecs, error) {
	socketPath := GetHyprSocket(h.xdgRuntimeDir, h.instanceSignature)
	conn, teardown, err := dial.GetUnixSocketConnection(ctx, socketPath)
	if err != nil {
		return nil, fmt.Errorf("cant open socket to %s: %w", socketPath, err)
	}
	defer teardown()

	return dial.SyncQuerySocket[MonitorSpecs](conn, "j/monitors all")
}

// ResolveMonitorID returns the Hyprland id of the monitor with the given
// connector name or description.
func (h *IPC) ResolveMonitorID(ctx context.Context, name string) (int32, error) {
	monitors, err := h.QueryConnectedMonitors(ctx)
	if err != nil {
		return 0, fmt.Errorf("cant query monitors: %w", err)
	}

	monitor, ok := monitors.FindByName(name)
	if !ok {
		return 0, fmt.Errorf("monitor %s: %w", name, errs.ErrNotFound)
	}
	if *monitor.ID > math.MaxInt32 {
		return 0, errors.New("monitor id does not fit in int32")
	}

	logrus.WithFields(logrus.Fields{"monitor": name, "id": *monitor.ID}).Debug("Resolved monitor id")
	return int32(*monitor.ID), nil
}
