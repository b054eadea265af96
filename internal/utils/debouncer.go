package utils

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// Debouncer collapses bursts of Do calls into a single execution of the last
// scheduled function. Functions run on the goroutine calling Run.
type Debouncer struct {
	mu    sync.Mutex
	timer *time.Timer
	ready chan func(context.Context) error
}

func NewDebouncer() *Debouncer {
	return &Debouncer{ready: make(chan func(context.Context) error, 1)}
}

// Do schedules fn to run after delay, replacing any pending function.
func (d *Debouncer) Do(ctx context.Context, delay time.Duration, fn func(context.Context) error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(delay, func() {
		select {
		case d.ready <- fn:
		case <-ctx.Done():
		}
	})
}

// Cancel drops the pending function, if any.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

func (d *Debouncer) Run(ctx context.Context) error {
	for {
		select {
		case fn := <-d.ready:
			if err := fn(ctx); err != nil {
				logrus.WithError(err).Error("Debounced function failed")
			}
		case <-ctx.Done():
			d.Cancel()
			return context.Cause(ctx)
		}
	}
}
