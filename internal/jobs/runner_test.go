package jobs

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEveryRunsUntilCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var calls atomic.Int32
	New(ctx, nil).Every(5*time.Millisecond, "tick_test", func(context.Context) error {
		calls.Add(1)
		return nil
	})

	require.Eventually(t, func() bool { return calls.Load() >= 2 }, time.Second, 5*time.Millisecond)
	cancel()
	time.Sleep(20 * time.Millisecond)
	stopped := calls.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, stopped, calls.Load())
}

func TestEveryCountsErrors(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	New(ctx, nil).Every(5*time.Millisecond, "failing_test", func(context.Context) error {
		return errors.New("boom")
	})

	require.Eventually(t, func() bool {
		return testutil.ToFloat64(jobErrors.WithLabelValues("failing_test")) >= 1
	}, time.Second, 5*time.Millisecond)
}

func TestEveryDisabledForNonPositiveInterval(t *testing.T) {
	var calls atomic.Int32
	New(context.Background(), nil).Every(0, "disabled_test", func(context.Context) error {
		calls.Add(1)
		return nil
	})
	time.Sleep(20 * time.Millisecond)
	assert.Zero(t, calls.Load())
}
