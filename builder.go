package alog

import (
	"os"
	"path/filepath"

	"github.com/lixenwraith/alog/sanitizer"
)

// Builder provides a fluent API for assembling a Config and the sinks it
// describes.
type Builder struct {
	cfg *Config
	err error
}

// NewBuilder creates a configuration builder seeded with package defaults.
func NewBuilder() *Builder {
	return &Builder{cfg: DefaultConfig()}
}

func (b *Builder) Name(name string) *Builder {
	b.cfg.Name = name
	return b
}

func (b *Builder) Level(level string) *Builder {
	b.cfg.Level = level
	return b
}

func (b *Builder) Directory(dir string) *Builder {
	b.cfg.Directory = dir
	return b
}

func (b *Builder) Extension(ext string) *Builder {
	b.cfg.Extension = ext
	return b
}

func (b *Builder) Format(format string) *Builder {
	b.cfg.Format = format
	return b
}

func (b *Builder) SanitizePolicy(policy string) *Builder {
	b.cfg.SanitizePolicy = policy
	return b
}

func (b *Builder) MaxSizeMB(mb int64) *Builder {
	b.cfg.MaxSizeMB = mb
	return b
}

func (b *Builder) MaxHistory(n int64) *Builder {
	b.cfg.MaxHistory = n
	return b
}

func (b *Builder) EnableConsole(enable bool) *Builder {
	b.cfg.EnableConsole = enable
	return b
}

func (b *Builder) ConsoleColor(enable bool) *Builder {
	b.cfg.ConsoleColor = enable
	return b
}

func (b *Builder) EnableFile(enable bool) *Builder {
	b.cfg.EnableFile = enable
	return b
}

func (b *Builder) Workers(n int64) *Builder {
	b.cfg.Workers = n
	return b
}

func (b *Builder) QueueCapacity(n int64) *Builder {
	b.cfg.QueueCapacity = n
	return b
}

// OverflowPolicy sets "block" or "overwrite_oldest".
func (b *Builder) OverflowPolicy(policy string) *Builder {
	b.cfg.Overflow = policy
	return b
}

// InternalErrorsToStderr controls whether failures a sink or AsyncLogger
// cannot surface through its normal error return (a rotate/write failure
// behind an async Log call, a pool that has gone away behind a
// fire-and-forget log call) are additionally reported to stderr.
func (b *Builder) InternalErrorsToStderr(enable bool) *Builder {
	b.cfg.InternalErrorsToStderr = enable
	return b
}

// buildSinks constructs the sink list and formatter described by the
// accumulated Config. Shared by Build and BuildAsync.
func (b *Builder) buildSinks() ([]Sink, error) {
	if b.err != nil {
		return nil, b.err
	}
	if err := b.cfg.Validate(); err != nil {
		return nil, err
	}

	policy := sanitizer.PolicyPreset(b.cfg.SanitizePolicy)
	san := sanitizer.New().Policy(policy)
	mode := OutputMode(b.cfg.Format)

	var sinks []Sink

	if b.cfg.EnableFile {
		basePath := filepath.Join(b.cfg.Directory, b.cfg.Name+"."+b.cfg.Extension)
		fileFormatter := NewPatternFormatter(mode, san).
			WithTimestampFormat(b.cfg.TimestampFormat).
			WithFields(b.cfg.ShowTimestamp, b.cfg.ShowLevel)
		fileSink, err := NewRotatingFileSink(basePath, b.cfg.MaxSizeMB*1024*1024, b.cfg.MaxHistory, fileFormatter)
		if err != nil {
			return nil, err
		}
		fileSink.OnInternalError(b.cfg.internalErrorReporter("file"))
		sinks = append(sinks, fileSink)
	}

	if b.cfg.EnableConsole {
		var w *os.File
		if b.cfg.ConsoleTarget == "stderr" {
			w = os.Stderr
		} else {
			w = os.Stdout
		}
		consoleFormatter := NewPatternFormatter(mode, san).
			WithTimestampFormat(b.cfg.TimestampFormat).
			WithFields(b.cfg.ShowTimestamp, b.cfg.ShowLevel)
		if b.cfg.ConsoleColor {
			sinks = append(sinks, NewColorConsoleSink(w, consoleFormatter))
		} else {
			sinks = append(sinks, NewConsoleSink(w, consoleFormatter))
		}
	}

	return sinks, nil
}

// Build creates a synchronous Logger from the accumulated configuration.
func (b *Builder) Build() (*Logger, error) {
	sinks, err := b.buildSinks()
	if err != nil {
		return nil, err
	}
	level, _ := ParseSeverity(b.cfg.Level)
	return NewLogger(b.cfg.Name, level, sinks...), nil
}

// BuildAsync creates an AsyncLogger from the accumulated configuration,
// dispatching through pool.
func (b *Builder) BuildAsync(pool *WorkerPool) (*AsyncLogger, error) {
	sinks, err := b.buildSinks()
	if err != nil {
		return nil, err
	}
	level, _ := ParseSeverity(b.cfg.Level)
	policy := OverflowBlock
	if b.cfg.Overflow == "overwrite_oldest" {
		policy = OverflowOverwriteOldest
	}
	logger := NewAsyncLogger(b.cfg.Name, level, sinks, pool, policy)
	logger.OnInternalError(b.cfg.internalErrorReporter("async"))
	return logger, nil
}

// Example usage:
//
//	logger, err := alog.NewBuilder().
//		Directory("/var/log/app").
//		Level("debug").
//		Format("json").
//		EnableConsole(true).
//		Build()
//
//	if err == nil {
//		defer logger.Close()
//		logger.Info("logger initialized")
//	}
