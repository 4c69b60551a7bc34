package alog

import (
	"sync"
	"sync/atomic"
	"time"
)

// baseLogger holds everything the synchronous and asynchronous logger
// facades share: identity, the severity filter, the sink list, and the
// flush-on-severity threshold. Both Logger and AsyncLogger embed
// baseLogger so they share one dispatch core through Go composition
// rather than inheritance.
type baseLogger struct {
	name  string
	level atomic.Uint32 // Severity

	mu              sync.RWMutex
	sinks           []Sink
	flushOnSeverity Severity // auto-flush any record at or above this level
}

func newBaseLogger(name string, level Severity, sinks []Sink) baseLogger {
	b := baseLogger{name: name, sinks: sinks, flushOnSeverity: Off}
	b.level.Store(uint32(level))
	return b
}

// SetLevel changes the minimum severity this logger will process.
func (b *baseLogger) SetLevel(level Severity) {
	b.level.Store(uint32(level))
}

// Level returns the current minimum severity.
func (b *baseLogger) Level() Severity {
	return Severity(b.level.Load())
}

// SetFlushOnSeverity configures automatic flushing for records at or above
// the given severity. Off disables automatic flushing.
func (b *baseLogger) SetFlushOnSeverity(level Severity) {
	b.mu.Lock()
	b.flushOnSeverity = level
	b.mu.Unlock()
}

func (b *baseLogger) enabled(level Severity) bool {
	return level >= b.Level() && b.Level() != Off
}

// backendProcessLog writes rec to every configured sink, continuing past
// individual sink errors rather than letting one broken sink stop delivery
// to the rest, and returns the first error it saw. This is the routine both Logger's synchronous
// path and the worker pool's dispatch loop call.
func (b *baseLogger) backendProcessLog(rec *Record) error {
	b.mu.RLock()
	sinks := b.sinks
	flushAt := b.flushOnSeverity
	b.mu.RUnlock()

	var firstErr error
	for _, s := range sinks {
		if !s.ShouldLog(rec.Severity) {
			continue
		}
		if err := s.Log(rec); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if flushAt != Off && rec.Severity >= flushAt {
		_ = b.backendFlush()
	}
	return firstErr
}

// backendFlush flushes every configured sink.
func (b *baseLogger) backendFlush() error {
	b.mu.RLock()
	sinks := b.sinks
	b.mu.RUnlock()

	var firstErr error
	for _, s := range sinks {
		if err := s.Flush(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// backendClose closes every configured sink.
func (b *baseLogger) backendClose() error {
	b.mu.Lock()
	sinks := b.sinks
	b.sinks = nil
	b.mu.Unlock()

	var firstErr error
	for _, s := range sinks {
		if err := s.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (b *baseLogger) addSink(s Sink) {
	b.mu.Lock()
	b.sinks = append(b.sinks, s)
	b.mu.Unlock()
}

func (b *baseLogger) makeRecord(level Severity, msg string, args []any) Record {
	return Record{
		Time:     time.Now(),
		Severity: level,
		Logger:   b.name,
		Message:  msg,
		Args:     args,
		ThreadID: goroutineID(),
	}
}

// Logger is the synchronous logging facade: every call dispatches to
// the configured sinks on the calling goroutine before returning.
// AsyncLogger's backend operations are exactly Logger's dispatch core,
// reused through baseLogger.
type Logger struct {
	baseLogger
}

// NewLogger creates a synchronous Logger writing to sinks, filtering out
// records below level.
func NewLogger(name string, level Severity, sinks ...Sink) *Logger {
	return &Logger{baseLogger: newBaseLogger(name, level, sinks)}
}

func (l *Logger) log(level Severity, msg string, args ...any) {
	if !l.enabled(level) {
		return
	}
	rec := l.makeRecord(level, msg, args)
	_ = l.backendProcessLog(&rec)
}

func (l *Logger) Trace(msg string, args ...any)    { l.log(Trace, msg, args...) }
func (l *Logger) Debug(msg string, args ...any)    { l.log(Debug, msg, args...) }
func (l *Logger) Info(msg string, args ...any)     { l.log(Info, msg, args...) }
func (l *Logger) Warn(msg string, args ...any)     { l.log(Warn, msg, args...) }
func (l *Logger) Error(msg string, args ...any)    { l.log(Error, msg, args...) }
func (l *Logger) Critical(msg string, args ...any) { l.log(Critical, msg, args...) }

// Flush flushes every configured sink synchronously.
func (l *Logger) Flush() error { return l.backendFlush() }

// Close flushes and closes every configured sink. The Logger must not be
// used afterward.
func (l *Logger) Close() error { return combineErrors(l.backendFlush(), l.backendClose()) }
