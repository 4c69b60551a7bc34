package alog

import (
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAsyncLoggerRespectsSeverityFilter(t *testing.T) {
	pool, err := NewWorkerPool(16, 1)
	require.NoError(t, err)
	defer pool.Close()

	sink := &captureSink{}
	logger := NewAsyncLogger("svc", Warn, []Sink{sink}, pool, OverflowBlock)

	logger.Debug("below threshold")
	logger.Info("also below threshold")
	logger.Error("above threshold")

	require.NoError(t, logger.FlushAndWait(time.Second))
	assert.Equal(t, 1, sink.count())
}

func TestAsyncLoggerFlushAndWaitTimesOutWhenWorkersStall(t *testing.T) {
	pool, err := NewWorkerPool(4, 1)
	require.NoError(t, err)
	defer pool.Close()

	block := &blockingSink{release: make(chan struct{})}
	logger := NewAsyncLogger("svc", Trace, []Sink{block}, pool, OverflowBlock)
	logger.Info("occupies the only worker")
	waitUntil(t, time.Second, func() bool { return block.started() })

	err = logger.FlushAndWait(20 * time.Millisecond)
	require.Error(t, err)
	assert.ErrorIs(t, err, errFlushTimeout)

	close(block.release)
}

func TestAsyncLoggerToleratesACollectedPool(t *testing.T) {
	pool, err := NewWorkerPool(4, 1)
	require.NoError(t, err)

	logger := NewAsyncLogger("svc", Trace, []Sink{&captureSink{}}, pool, OverflowBlock)
	require.NoError(t, pool.Close())
	pool = nil
	runtime.GC()

	// logging against a pool that's gone must not panic; it's simply
	// undeliverable, matching the backend's own swallow-on-failure policy.
	assert.NotPanics(t, func() { logger.Info("nobody home") })

	err = logger.Flush()
	assert.ErrorIs(t, err, ErrPoolGone)
}

func TestAsyncLoggerLatchesDeliveryFailureForLastError(t *testing.T) {
	pool, err := NewWorkerPool(4, 1)
	require.NoError(t, err)

	logger := NewAsyncLogger("svc", Trace, []Sink{&captureSink{}}, pool, OverflowBlock)
	assert.NoError(t, logger.LastError(), "nothing delivered yet, nothing failed yet")

	// Close the pool but keep a strong reference alive, so the weak
	// pointer still resolves and the log call reaches submit()/the queue
	// instead of bailing out early on a collected pool.
	require.NoError(t, pool.Close())

	logger.Info("queue is gone, delivery must fail")
	assert.ErrorIs(t, logger.LastError(), ErrPoolGone)
}

func TestAsyncLoggerOverflowBlockVsOverwritePolicySelection(t *testing.T) {
	pool, err := NewWorkerPool(4, 1)
	require.NoError(t, err)
	defer pool.Close()

	blocking := NewAsyncLogger("svc", Trace, nil, pool, OverflowBlock)
	overwrite := NewAsyncLogger("svc", Trace, nil, pool, OverflowOverwriteOldest)

	assert.Equal(t, OverflowBlock, blocking.policy)
	assert.Equal(t, OverflowOverwriteOldest, overwrite.policy)
}

func TestAsyncLoggerPoolAccessor(t *testing.T) {
	pool, err := NewWorkerPool(4, 1)
	require.NoError(t, err)
	defer pool.Close()

	logger := NewAsyncLogger("svc", Trace, nil, pool, OverflowBlock)
	assert.Same(t, pool, logger.Pool())
}
