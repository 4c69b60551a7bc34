package compat

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/alog"
)

// call records one invocation of a stub Logger method.
type call struct {
	level string
	msg   string
	args  []any
}

// stubLogger implements compat.Logger without touching the real alog
// pipeline, so adapters can be tested in isolation.
type stubLogger struct {
	mu      sync.Mutex
	calls   []call
	flushes int
}

func (s *stubLogger) record(level, msg string, args []any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, call{level: level, msg: msg, args: args})
}

func (s *stubLogger) Trace(msg string, args ...any)    { s.record("trace", msg, args) }
func (s *stubLogger) Debug(msg string, args ...any)    { s.record("debug", msg, args) }
func (s *stubLogger) Info(msg string, args ...any)     { s.record("info", msg, args) }
func (s *stubLogger) Warn(msg string, args ...any)     { s.record("warn", msg, args) }
func (s *stubLogger) Error(msg string, args ...any)    { s.record("error", msg, args) }
func (s *stubLogger) Critical(msg string, args ...any) { s.record("critical", msg, args) }
func (s *stubLogger) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.flushes++
	return nil
}

func (s *stubLogger) last() call {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[len(s.calls)-1]
}

func (s *stubLogger) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}

func TestGnetAdapterFormatsAndTagsSource(t *testing.T) {
	stub := &stubLogger{}
	adapter := NewGnetAdapter(stub)

	adapter.Infof("conn %s opened", "abc")

	last := stub.last()
	assert.Equal(t, "info", last.level)
	assert.Equal(t, "conn abc opened", last.msg)
	assert.Equal(t, []any{"source", "gnet"}, last.args)
}

func TestGnetAdapterFatalfFlushesAndInvokesHandler(t *testing.T) {
	stub := &stubLogger{}
	handled := make(chan string, 1)
	adapter := NewGnetAdapter(stub, WithFatalHandler(func(msg string) { handled <- msg }))

	adapter.Fatalf("unrecoverable: %d", 7)

	select {
	case msg := <-handled:
		assert.Equal(t, "unrecoverable: 7", msg)
	default:
		t.Fatal("fatal handler was not invoked")
	}
	assert.Equal(t, 1, stub.flushes)
	assert.Equal(t, "critical", stub.last().level)
}

func TestStructuredGnetAdapterExtractsKeyValueFields(t *testing.T) {
	stub := &stubLogger{}
	adapter := NewStructuredGnetAdapter(stub)

	adapter.Infof("request id=%d status=%d", 42, 200)

	last := stub.last()
	assert.Equal(t, "info", last.level)
	assert.Contains(t, last.args, "id")
	assert.Contains(t, last.args, int(42))
	assert.Contains(t, last.args, "source")
	assert.Contains(t, last.args, "gnet")
}

func TestStructuredGnetAdapterFallsBackToPlainMessageWithoutPatterns(t *testing.T) {
	stub := &stubLogger{}
	adapter := NewStructuredGnetAdapter(stub)

	adapter.Warnf("plain message %s", "here")

	last := stub.last()
	assert.Equal(t, "warn", last.level)
	assert.Equal(t, "plain message here", last.msg)
}

func TestFastHTTPAdapterDetectsLevelFromMessageContent(t *testing.T) {
	stub := &stubLogger{}
	adapter := NewFastHTTPAdapter(stub)

	adapter.Printf("request failed: %s", "timeout")
	assert.Equal(t, "error", stub.last().level)

	adapter.Printf("deprecated option used")
	assert.Equal(t, "warn", stub.last().level)

	adapter.Printf("plain notice")
	assert.Equal(t, "info", stub.last().level)
}

func TestFastHTTPAdapterHonorsCustomLevelDetector(t *testing.T) {
	stub := &stubLogger{}
	adapter := NewFastHTTPAdapter(stub,
		WithDefaultLevel(alog.Info),
		WithLevelDetector(func(msg string) alog.Severity {
			if msg == "special" {
				return alog.Critical
			}
			return alog.Info
		}),
	)

	adapter.Printf("special")
	assert.Equal(t, "critical", stub.last().level)
}

func TestDetectLogLevelClassifiesCommonMarkers(t *testing.T) {
	assert.Equal(t, alog.Error, DetectLogLevel("request failed"))
	assert.Equal(t, alog.Warn, DetectLogLevel("this is deprecated"))
	assert.Equal(t, alog.Debug, DetectLogLevel("trace point hit"))
	assert.Equal(t, alog.Info, DetectLogLevel("all good"))
}

func TestFiberAdapterTagsSourceAcrossAllThreeInterfaceShapes(t *testing.T) {
	stub := &stubLogger{}
	adapter := NewFiberAdapter(stub)

	adapter.Info("plain", "value")
	assert.Equal(t, "plain value", stub.last().msg)

	adapter.Infof("templated %d", 9)
	assert.Equal(t, "templated 9", stub.last().msg)

	adapter.Infow("keyed", "k", "v")
	last := stub.last()
	assert.Equal(t, "keyed", last.msg)
	assert.Equal(t, []any{"k", "v", "source", "fiber"}, last.args)
}

func TestFiberAdapterWriteImplementsIOWriter(t *testing.T) {
	stub := &stubLogger{}
	adapter := NewFiberAdapter(stub)

	n, err := adapter.Write([]byte("line from fiber\n"))
	require.NoError(t, err)
	assert.Equal(t, len("line from fiber\n"), n)
	assert.Equal(t, "line from fiber", stub.last().msg)
}

func TestFiberAdapterFatalInvokesConfiguredHandler(t *testing.T) {
	stub := &stubLogger{}
	handled := make(chan string, 1)
	adapter := NewFiberAdapter(stub, WithFiberFatalHandler(func(msg string) { handled <- msg }))

	adapter.Fatal("down we go")

	select {
	case msg := <-handled:
		assert.Equal(t, "down we go", msg)
	default:
		t.Fatal("fatal handler was not invoked")
	}
}

func TestBuilderWithLoggerReturnsTheSameLoggerForEveryAdapter(t *testing.T) {
	stub := &stubLogger{}
	b := NewBuilder().WithLogger(stub)

	gnetAdapter, err := b.BuildGnet()
	require.NoError(t, err)
	require.NotNil(t, gnetAdapter)

	got, err := b.GetLogger()
	require.NoError(t, err)
	assert.Same(t, stub, got)
}

func TestBuilderWithNilLoggerFails(t *testing.T) {
	b := NewBuilder().WithLogger(nil)
	_, err := b.GetLogger()
	assert.Error(t, err)
}

func TestBuilderBuildsFromConfigWhenNoLoggerProvided(t *testing.T) {
	dir := t.TempDir()
	pool, err := alog.NewWorkerPool(16, 1)
	require.NoError(t, err)
	defer pool.Close()

	cfg := alog.DefaultConfig()
	cfg.Directory = dir
	cfg.Name = "svc"

	b := NewBuilder().WithConfig(cfg).WithPool(pool)
	fasthttpAdapter, err := b.BuildFastHTTP()
	require.NoError(t, err)
	assert.NotNil(t, fasthttpAdapter)
}
