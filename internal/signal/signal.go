// Package signal provides signal handling functionality.
package signal

import (
	"context"
	"os"
	"os/signal"

	"github.com/sirupsen/logrus"
	"golang.org/x/sys/unix"
)

type Handler struct {
	sigChan     chan os.Signal
	ctx         context.Context
	cancelCause context.CancelCauseFunc
	stop        context.CancelCauseFunc
	done        chan struct{}
}

type SignalHandler interface {
	RunOnce(context.Context) error
}

// NewHandler creates a handler whose termination signals cancel ctx through cancelCause.
func NewHandler(ctx context.Context, cancelCause context.CancelCauseFunc) *Handler {
	return &Handler{
		sigChan:     make(chan os.Signal, 1),
		ctx:         ctx,
		cancelCause: cancelCause,
	}
}

func (h *Handler) Start(handler SignalHandler) {
	ctx, stop := context.WithCancelCause(h.ctx)
	h.stop = stop
	h.done = make(chan struct{})

	signal.Notify(h.sigChan, unix.SIGUSR1, unix.SIGTERM, unix.SIGINT, unix.SIGHUP)
	logrus.Debug("Signal notifications registered for SIGUSR1, SIGTERM, SIGINT, SIGHUP")

	go h.handleSignals(ctx, handler)
	logrus.Debug("Signal handler goroutine launched")
}

// Stop unregisters the signals and waits for the handler goroutine to exit.
// The parent context is left untouched.
func (h *Handler) Stop() {
	signal.Stop(h.sigChan)
	if h.stop == nil {
		return
	}
	h.stop(context.Canceled)
	<-h.done
}

func (h *Handler) handleSignals(ctx context.Context, handler SignalHandler) {
	defer close(h.done)
	logrus.Debug("Signal handler goroutine started")
	for {
		select {
		case sig := <-h.sigChan:
			logrus.WithField("signal", sig).Debug("Signal received")
			switch sig {
			case unix.SIGUSR1:
				logrus.Info("Received SIGUSR1, triggering a manual export")
				if err := handler.RunOnce(ctx); err != nil {
					logrus.WithError(err).Error("Manual export failed, service will keep running")
				} else {
					logrus.Info("Manual export completed successfully")
				}
			case unix.SIGTERM, unix.SIGINT, unix.SIGHUP:
				logrus.WithField("signal", sig).Info("Received termination signal, shutting down gracefully")
				h.cancelCause(context.Canceled)
				return
			}
		case <-ctx.Done():
			logrus.Debug("Signal handler context done, exiting")
			return
		}
	}
}
