package alog

import (
	"sync"
	"time"
)

var (
	defaultLoggerOnce sync.Once
	defaultLoggerInst *AsyncLogger
)

// defaultAsyncLogger lazily builds the package-level logger from default
// configuration, backed by the process-wide default worker pool.
func defaultAsyncLogger() *AsyncLogger {
	defaultLoggerOnce.Do(func() {
		logger, err := NewBuilder().BuildAsync(DefaultPool())
		if err != nil {
			panic("alog: default logger construction failed: " + err.Error())
		}
		defaultLoggerInst = logger
	})
	return defaultLoggerInst
}

// Trace logs at trace level through the package-level default logger.
func Trace(msg string, args ...any) { defaultAsyncLogger().Trace(msg, args...) }

// Debug logs at debug level through the package-level default logger.
func Debug(msg string, args ...any) { defaultAsyncLogger().Debug(msg, args...) }

// Info logs at info level through the package-level default logger.
func Info(msg string, args ...any) { defaultAsyncLogger().Info(msg, args...) }

// Warn logs at warn level through the package-level default logger.
func Warn(msg string, args ...any) { defaultAsyncLogger().Warn(msg, args...) }

// Error logs at error level through the package-level default logger.
func Error(msg string, args ...any) { defaultAsyncLogger().Error(msg, args...) }

// Critical logs at critical level through the package-level default logger.
func Critical(msg string, args ...any) { defaultAsyncLogger().Critical(msg, args...) }

// Flush enqueues a flush on the package-level default logger and returns
// immediately.
func Flush() error { return defaultAsyncLogger().Flush() }

// FlushAndWait enqueues a flush on the package-level default logger and
// waits up to timeout for it to complete.
func FlushAndWait(timeout time.Duration) error { return defaultAsyncLogger().FlushAndWait(timeout) }
