package utils_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fiffeek/hyprvirtualdisplays/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startDebouncer(t *testing.T) (*utils.Debouncer, context.Context, func()) {
	debouncer := utils.NewDebouncer()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)

	errCh := make(chan error, 1)
	go func() {
		errCh <- debouncer.Run(ctx)
	}()

	return debouncer, ctx, func() {
		cancel()
		select {
		case err := <-errCh:
			require.Error(t, err)
			assert.True(t, errors.Is(err, context.Canceled), "unexpected error %v", err)
		case <-time.After(500 * time.Millisecond):
			t.Fatal("timeout waiting for debouncer to shutdown")
		}
	}
}

func TestDebouncer_CollapsesBursts(t *testing.T) {
	debouncer, ctx, stop := startDebouncer(t)
	defer stop()

	var calls atomic.Int32
	var last atomic.Int32
	fn := func(i int32) func(context.Context) error {
		return func(context.Context) error {
			calls.Add(1)
			last.Store(i)
			return nil
		}
	}

	start := time.Now()
	for i := int32(0); i < 3; i++ {
		debouncer.Do(ctx, 100*time.Millisecond, fn(i))
	}

	assert.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, 10*time.Millisecond)
	assert.True(t, time.Since(start) >= 100*time.Millisecond, "function should run after the delay")

	time.Sleep(150 * time.Millisecond)
	assert.Equal(t, int32(1), calls.Load(), "burst should run exactly once")
	assert.Equal(t, int32(2), last.Load(), "last scheduled function should win")
}

func TestDebouncer_Cancel(t *testing.T) {
	debouncer, ctx, stop := startDebouncer(t)
	defer stop()

	var calls atomic.Int32
	debouncer.Do(ctx, 200*time.Millisecond, func(context.Context) error {
		calls.Add(1)
		return nil
	})
	time.Sleep(50 * time.Millisecond)
	debouncer.Cancel()

	time.Sleep(300 * time.Millisecond)
	assert.Equal(t, int32(0), calls.Load(), "function should not be called after cancel")
}
