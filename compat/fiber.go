package compat

import (
	"fmt"
	"os"
)

// FiberAdapter wraps an alog Logger to implement the logger shape Fiber's
// middleware expects: plain variadic, printf-style, and keyed variants.
// Fiber's logger interface is structural, so no direct import of the
// fiber module is required here.
type FiberAdapter struct {
	logger       Logger
	fatalHandler func(msg string)
	panicHandler func(msg string)
}

// NewFiberAdapter creates a new Fiber-compatible logger adapter.
func NewFiberAdapter(logger Logger, opts ...FiberOption) *FiberAdapter {
	adapter := &FiberAdapter{
		logger: logger,
		fatalHandler: func(msg string) {
			os.Exit(1)
		},
		panicHandler: func(msg string) {
			panic(msg)
		},
	}
	for _, opt := range opts {
		opt(adapter)
	}
	return adapter
}

// FiberOption customizes adapter behavior.
type FiberOption func(*FiberAdapter)

// WithFiberFatalHandler sets a custom fatal handler.
func WithFiberFatalHandler(handler func(string)) FiberOption {
	return func(a *FiberAdapter) { a.fatalHandler = handler }
}

// WithFiberPanicHandler sets a custom panic handler.
func WithFiberPanicHandler(handler func(string)) FiberOption {
	return func(a *FiberAdapter) { a.panicHandler = handler }
}

// --- Logger interface implementation ---

func (a *FiberAdapter) Trace(v ...any) { a.logger.Trace(fmt.Sprint(v...), "source", "fiber") }
func (a *FiberAdapter) Debug(v ...any) { a.logger.Debug(fmt.Sprint(v...), "source", "fiber") }
func (a *FiberAdapter) Info(v ...any)  { a.logger.Info(fmt.Sprint(v...), "source", "fiber") }
func (a *FiberAdapter) Warn(v ...any)  { a.logger.Warn(fmt.Sprint(v...), "source", "fiber") }
func (a *FiberAdapter) Error(v ...any) { a.logger.Error(fmt.Sprint(v...), "source", "fiber") }

func (a *FiberAdapter) Fatal(v ...any) {
	msg := fmt.Sprint(v...)
	a.logger.Critical(msg, "source", "fiber", "fatal", true)
	_ = a.logger.Flush()
	if a.fatalHandler != nil {
		a.fatalHandler(msg)
	}
}

func (a *FiberAdapter) Panic(v ...any) {
	msg := fmt.Sprint(v...)
	a.logger.Critical(msg, "source", "fiber", "panic", true)
	_ = a.logger.Flush()
	if a.panicHandler != nil {
		a.panicHandler(msg)
	}
}

// Write makes FiberAdapter implement io.Writer, for redirecting Fiber's
// error output through alog.
func (a *FiberAdapter) Write(p []byte) (int, error) {
	msg := string(p)
	if len(msg) > 0 && msg[len(msg)-1] == '\n' {
		msg = msg[:len(msg)-1]
	}
	a.logger.Info(msg, "source", "fiber")
	return len(p), nil
}

// --- FormatLogger interface implementation ---

func (a *FiberAdapter) Tracef(format string, v ...any) {
	a.logger.Trace(fmt.Sprintf(format, v...), "source", "fiber")
}
func (a *FiberAdapter) Debugf(format string, v ...any) {
	a.logger.Debug(fmt.Sprintf(format, v...), "source", "fiber")
}
func (a *FiberAdapter) Infof(format string, v ...any) {
	a.logger.Info(fmt.Sprintf(format, v...), "source", "fiber")
}
func (a *FiberAdapter) Warnf(format string, v ...any) {
	a.logger.Warn(fmt.Sprintf(format, v...), "source", "fiber")
}
func (a *FiberAdapter) Errorf(format string, v ...any) {
	a.logger.Error(fmt.Sprintf(format, v...), "source", "fiber")
}

func (a *FiberAdapter) Fatalf(format string, v ...any) {
	msg := fmt.Sprintf(format, v...)
	a.logger.Critical(msg, "source", "fiber", "fatal", true)
	_ = a.logger.Flush()
	if a.fatalHandler != nil {
		a.fatalHandler(msg)
	}
}

func (a *FiberAdapter) Panicf(format string, v ...any) {
	msg := fmt.Sprintf(format, v...)
	a.logger.Critical(msg, "source", "fiber", "panic", true)
	_ = a.logger.Flush()
	if a.panicHandler != nil {
		a.panicHandler(msg)
	}
}

// --- WithLogger interface implementation (structured key/value pairs) ---

func (a *FiberAdapter) Tracew(msg string, keysAndValues ...any) {
	a.logger.Trace(msg, append(keysAndValues, "source", "fiber")...)
}
func (a *FiberAdapter) Debugw(msg string, keysAndValues ...any) {
	a.logger.Debug(msg, append(keysAndValues, "source", "fiber")...)
}
func (a *FiberAdapter) Infow(msg string, keysAndValues ...any) {
	a.logger.Info(msg, append(keysAndValues, "source", "fiber")...)
}
func (a *FiberAdapter) Warnw(msg string, keysAndValues ...any) {
	a.logger.Warn(msg, append(keysAndValues, "source", "fiber")...)
}
func (a *FiberAdapter) Errorw(msg string, keysAndValues ...any) {
	a.logger.Error(msg, append(keysAndValues, "source", "fiber")...)
}

func (a *FiberAdapter) Fatalw(msg string, keysAndValues ...any) {
	a.logger.Critical(msg, append(keysAndValues, "source", "fiber", "fatal", true)...)
	_ = a.logger.Flush()
	if a.fatalHandler != nil {
		a.fatalHandler(msg)
	}
}

func (a *FiberAdapter) Panicw(msg string, keysAndValues ...any) {
	a.logger.Critical(msg, append(keysAndValues, "source", "fiber", "panic", true)...)
	_ = a.logger.Flush()
	if a.panicHandler != nil {
		a.panicHandler(msg)
	}
}
