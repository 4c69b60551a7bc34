// Package compat adapts alog's Logger and AsyncLogger to the logging
// interfaces third-party frameworks expect, so either can be dropped in as
// that framework's configured logger without the framework knowing about
// alog's own API.
package compat

import (
	"fmt"
	"os"
	"time"
)

// Logger is the subset of alog.Logger and alog.AsyncLogger every adapter
// in this package depends on. Accepting the interface rather than a
// concrete type lets the same adapter wrap either the synchronous or
// asynchronous facade.
type Logger interface {
	Trace(msg string, args ...any)
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	Critical(msg string, args ...any)
	Flush() error
}

// GnetAdapter wraps an alog Logger to implement gnet/v2's logging.Logger
// interface.
type GnetAdapter struct {
	logger       Logger
	fatalHandler func(msg string)
}

// NewGnetAdapter creates a new gnet-compatible logger adapter.
func NewGnetAdapter(logger Logger, opts ...GnetOption) *GnetAdapter {
	adapter := &GnetAdapter{
		logger: logger,
		fatalHandler: func(msg string) {
			os.Exit(1) // default behavior matches gnet's own expectations
		},
	}
	for _, opt := range opts {
		opt(adapter)
	}
	return adapter
}

// GnetOption customizes adapter behavior.
type GnetOption func(*GnetAdapter)

// WithFatalHandler sets a custom fatal handler.
func WithFatalHandler(handler func(string)) GnetOption {
	return func(a *GnetAdapter) {
		a.fatalHandler = handler
	}
}

func (a *GnetAdapter) Debugf(format string, args ...any) {
	a.logger.Debug(fmt.Sprintf(format, args...), "source", "gnet")
}

func (a *GnetAdapter) Infof(format string, args ...any) {
	a.logger.Info(fmt.Sprintf(format, args...), "source", "gnet")
}

func (a *GnetAdapter) Warnf(format string, args ...any) {
	a.logger.Warn(fmt.Sprintf(format, args...), "source", "gnet")
}

func (a *GnetAdapter) Errorf(format string, args ...any) {
	a.logger.Error(fmt.Sprintf(format, args...), "source", "gnet")
}

func (a *GnetAdapter) Fatalf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	a.logger.Critical(msg, "source", "gnet", "fatal", true)
	_ = a.logger.Flush()
	time.Sleep(50 * time.Millisecond) // give the async pipeline a beat to drain before exit
	if a.fatalHandler != nil {
		a.fatalHandler(msg)
	}
}
