package compat

import (
	"fmt"
	"strings"

	"github.com/lixenwraith/alog"
)

// FastHTTPAdapter wraps an alog Logger to implement fasthttp's single-
// method Logger interface (Printf(format string, args ...any)).
type FastHTTPAdapter struct {
	logger        Logger
	defaultLevel  alog.Severity
	levelDetector func(string) alog.Severity
}

// NewFastHTTPAdapter creates a new fasthttp-compatible logger adapter.
func NewFastHTTPAdapter(logger Logger, opts ...FastHTTPOption) *FastHTTPAdapter {
	adapter := &FastHTTPAdapter{
		logger:        logger,
		defaultLevel:  alog.Info,
		levelDetector: DetectLogLevel,
	}
	for _, opt := range opts {
		opt(adapter)
	}
	return adapter
}

// FastHTTPOption customizes adapter behavior.
type FastHTTPOption func(*FastHTTPAdapter)

// WithDefaultLevel sets the default severity for Printf calls the level
// detector can't classify.
func WithDefaultLevel(level alog.Severity) FastHTTPOption {
	return func(a *FastHTTPAdapter) {
		a.defaultLevel = level
	}
}

// WithLevelDetector sets a custom function to infer severity from message
// content.
func WithLevelDetector(detector func(string) alog.Severity) FastHTTPOption {
	return func(a *FastHTTPAdapter) {
		a.levelDetector = detector
	}
}

// Printf implements fasthttp's Logger interface.
func (a *FastHTTPAdapter) Printf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)

	level := a.defaultLevel
	if a.levelDetector != nil {
		if detected, ok := a.detect(msg); ok {
			level = detected
		}
	}

	switch level {
	case alog.Debug:
		a.logger.Debug(msg, "source", "fasthttp")
	case alog.Warn:
		a.logger.Warn(msg, "source", "fasthttp")
	case alog.Error:
		a.logger.Error(msg, "source", "fasthttp")
	case alog.Critical:
		a.logger.Critical(msg, "source", "fasthttp")
	default:
		a.logger.Info(msg, "source", "fasthttp")
	}
}

func (a *FastHTTPAdapter) detect(msg string) (alog.Severity, bool) {
	detected := a.levelDetector(msg)
	return detected, detected != alog.Info
}

// DetectLogLevel infers a severity from common message-content markers.
// Returns alog.Info when nothing more specific is detected.
func DetectLogLevel(msg string) alog.Severity {
	lower := strings.ToLower(msg)

	switch {
	case strings.Contains(lower, "error"),
		strings.Contains(lower, "failed"),
		strings.Contains(lower, "fatal"),
		strings.Contains(lower, "panic"):
		return alog.Error
	case strings.Contains(lower, "warn"),
		strings.Contains(lower, "deprecated"):
		return alog.Warn
	case strings.Contains(lower, "debug"),
		strings.Contains(lower, "trace"):
		return alog.Debug
	default:
		return alog.Info
	}
}
