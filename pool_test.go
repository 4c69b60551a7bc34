package alog

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// captureSink records every record it receives, safe for concurrent use by
// the worker pool's goroutines.
type captureSink struct {
	mu      sync.Mutex
	records []Record
	flushes int
	closes  int
}

func (c *captureSink) Log(rec *Record) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.records = append(c.records, *rec)
	return nil
}

func (c *captureSink) Flush() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.flushes++
	return nil
}

func (c *captureSink) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closes++
	return nil
}

func (c *captureSink) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.records)
}

func (c *captureSink) ShouldLog(severity Severity) bool { return true }
func (c *captureSink) SetLevel(severity Severity)       {}
func (c *captureSink) GetLevel() Severity               { return Trace }
func (c *captureSink) SetFormatter(formatter Formatter) {}

func waitUntil(t *testing.T, timeout time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("condition never became true")
}

func TestNewWorkerPoolRejectsNonPositiveSizes(t *testing.T) {
	_, err := NewWorkerPool(0, 1)
	assert.ErrorIs(t, err, ErrConfig)

	_, err = NewWorkerPool(4, 0)
	assert.ErrorIs(t, err, ErrConfig)
}

func TestNewWorkerPoolRejectsWorkersAboveUpperBound(t *testing.T) {
	_, err := NewWorkerPool(8192, 1001)
	assert.ErrorIs(t, err, ErrConfig)
}

func TestWorkerPoolDispatchesLogEnvelopesToTheOwningLogger(t *testing.T) {
	pool, err := NewWorkerPool(16, 2)
	require.NoError(t, err)
	defer pool.Close()

	sink := &captureSink{}
	logger := NewAsyncLogger("svc", Trace, []Sink{sink}, pool, OverflowBlock)

	for i := 0; i < 10; i++ {
		logger.Info("event", "i", i)
	}

	waitUntil(t, time.Second, func() bool { return sink.count() == 10 })
}

func TestWorkerPoolFlushEnvelopeCompletesAndFlushesSinks(t *testing.T) {
	pool, err := NewWorkerPool(16, 1)
	require.NoError(t, err)
	defer pool.Close()

	sink := &captureSink{}
	logger := NewAsyncLogger("svc", Trace, []Sink{sink}, pool, OverflowBlock)
	logger.Info("before flush")

	require.NoError(t, logger.FlushAndWait(time.Second))
	assert.Equal(t, 1, sink.flushes)
}

func TestWorkerPoolOverwritePolicyDropsOldestUnderPressure(t *testing.T) {
	pool, err := NewWorkerPool(1, 1)
	require.NoError(t, err)
	defer pool.Close()

	// A single-worker pool whose one worker we keep busy lets the queue
	// actually fill before the overwrite kicks in.
	sink := &blockingSink{release: make(chan struct{})}
	logger := NewAsyncLogger("svc", Trace, []Sink{sink}, pool, OverflowOverwriteOldest)

	logger.Info("first")  // picked up by the worker, which blocks on sink.Log
	waitUntil(t, time.Second, func() bool { return sink.started() })
	logger.Info("second") // queued
	logger.Info("third")  // queue full (capacity 1): overwrites "second"

	close(sink.release)
	waitUntil(t, time.Second, func() bool { return pool.Overrun() >= 1 })
}

type blockingSink struct {
	mu      sync.Mutex
	begun   bool
	release chan struct{}
}

func (b *blockingSink) started() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.begun
}

func (b *blockingSink) Log(rec *Record) error {
	b.mu.Lock()
	b.begun = true
	b.mu.Unlock()
	<-b.release
	return nil
}

func (b *blockingSink) Flush() error { return nil }
func (b *blockingSink) Close() error { return nil }

func (b *blockingSink) ShouldLog(severity Severity) bool { return true }
func (b *blockingSink) SetLevel(severity Severity)       {}
func (b *blockingSink) GetLevel() Severity               { return Trace }
func (b *blockingSink) SetFormatter(formatter Formatter) {}

func TestWorkerPoolSubmitAfterCloseReturnsErrPoolGone(t *testing.T) {
	pool, err := NewWorkerPool(4, 1)
	require.NoError(t, err)
	require.NoError(t, pool.Close())

	err = pool.submitBlocking(newLogEnvelope(nil, Record{Message: "dropped"}))
	assert.ErrorIs(t, err, ErrPoolGone)
}

func TestWorkerPoolCloseIsIdempotent(t *testing.T) {
	pool, err := NewWorkerPool(4, 2)
	require.NoError(t, err)

	assert.NoError(t, pool.Close())
	assert.NoError(t, pool.Close())
}

func TestWorkerPoolWeakHandleResolvesWhilePoolIsReachable(t *testing.T) {
	pool, err := NewWorkerPool(4, 1)
	require.NoError(t, err)
	defer pool.Close()

	handle := pool.weakHandle()
	assert.Same(t, pool, handle.Value())
}
