package compat

import (
	"errors"

	"github.com/lixenwraith/alog"
)

// Builder provides a flexible way to create configured logger adapters for
// gnet, fasthttp, and Fiber. It can wrap an existing alog Logger/AsyncLogger
// or build a new AsyncLogger from an *alog.Config.
type Builder struct {
	logger Logger
	cfg    *alog.Config
	pool   *alog.WorkerPool
	err    error
}

// NewBuilder creates a new adapter builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// WithLogger specifies an existing logger to use for the adapters.
// Recommended for applications that already have a central logger
// instance. If set, WithConfig is ignored.
func (b *Builder) WithLogger(l Logger) *Builder {
	if l == nil {
		b.err = errors.New("alog/compat: provided logger cannot be nil")
		return b
	}
	b.logger = l
	return b
}

// WithConfig provides a configuration for a new AsyncLogger instance. Used
// only if an existing logger was not provided via WithLogger. Only Name,
// Level, Directory, Format, EnableConsole and EnableFile are taken from cfg;
// every other field keeps alog's default value.
func (b *Builder) WithConfig(cfg *alog.Config) *Builder {
	b.cfg = cfg
	return b
}

// WithPool provides the worker pool a newly built AsyncLogger should
// dispatch through. Defaults to alog.DefaultPool().
func (b *Builder) WithPool(pool *alog.WorkerPool) *Builder {
	b.pool = pool
	return b
}

func (b *Builder) getLogger() (Logger, error) {
	if b.err != nil {
		return nil, b.err
	}
	if b.logger != nil {
		return b.logger, nil
	}

	builder := alog.NewBuilder()
	if b.cfg != nil {
		builder = builder.
			Name(b.cfg.Name).
			Level(b.cfg.Level).
			Directory(b.cfg.Directory).
			Format(b.cfg.Format).
			EnableConsole(b.cfg.EnableConsole).
			EnableFile(b.cfg.EnableFile)
	}

	pool := b.pool
	if pool == nil {
		pool = alog.DefaultPool()
	}

	l, err := builder.BuildAsync(pool)
	if err != nil {
		return nil, err
	}
	b.logger = l
	return l, nil
}

// BuildGnet creates a gnet adapter.
func (b *Builder) BuildGnet(opts ...GnetOption) (*GnetAdapter, error) {
	l, err := b.getLogger()
	if err != nil {
		return nil, err
	}
	return NewGnetAdapter(l, opts...), nil
}

// BuildStructuredGnet creates a gnet adapter that attempts to extract
// structured fields from printf-style log messages.
func (b *Builder) BuildStructuredGnet(opts ...GnetOption) (*StructuredGnetAdapter, error) {
	l, err := b.getLogger()
	if err != nil {
		return nil, err
	}
	return NewStructuredGnetAdapter(l, opts...), nil
}

// BuildFastHTTP creates a fasthttp adapter.
func (b *Builder) BuildFastHTTP(opts ...FastHTTPOption) (*FastHTTPAdapter, error) {
	l, err := b.getLogger()
	if err != nil {
		return nil, err
	}
	return NewFastHTTPAdapter(l, opts...), nil
}

// BuildFiber creates a Fiber-compatible adapter.
func (b *Builder) BuildFiber(opts ...FiberOption) (*FiberAdapter, error) {
	l, err := b.getLogger()
	if err != nil {
		return nil, err
	}
	return NewFiberAdapter(l, opts...), nil
}

// GetLogger returns the underlying Logger, building a default one from
// configuration if nothing was supplied yet.
func (b *Builder) GetLogger() (Logger, error) {
	return b.getLogger()
}

// --- Example usage ---
//
//	appLogger, _ := alog.NewBuilder().Level("debug").BuildAsync(alog.DefaultPool())
//	builder := compat.NewBuilder().WithLogger(appLogger)
//
//	gnetLogger, _ := builder.BuildGnet()
//	go gnet.Run(events, "tcp://:9000", gnet.WithLogger(gnetLogger))
//
//	fasthttpLogger, _ := builder.BuildFastHTTP()
//	server := &fasthttp.Server{Logger: fasthttpLogger}
//	go server.ListenAndServe(":8080")
