package alog

import "sync"

// Registry is a process-wide name→logger directory. It holds both
// synchronous and asynchronous loggers behind the Sink-agnostic interfaces
// they share, so callers can look a logger up by name without knowing
// which kind it is.
type Registry struct {
	mu      sync.RWMutex
	loggers map[string]loggerHandle
}

// loggerHandle is the minimal surface every registry entry exposes.
type loggerHandle interface {
	Flush() error
}

var (
	defaultRegistryOnce sync.Once
	defaultRegistryInst *Registry

	defaultPoolMu   sync.Mutex
	defaultPoolInst *WorkerPool
)

// DefaultRegistry returns the process-wide Registry, creating it on first
// use.
func DefaultRegistry() *Registry {
	defaultRegistryOnce.Do(func() {
		defaultRegistryInst = &Registry{loggers: make(map[string]loggerHandle)}
	})
	return defaultRegistryInst
}

// Register adds logger under name, failing with ErrAlreadyExists if the
// name is already taken.
func (r *Registry) Register(name string, logger loggerHandle) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.loggers[name]; exists {
		return ErrAlreadyExists
	}
	r.loggers[name] = logger
	return nil
}

// Get returns the logger registered under name, or nil if no such name
// exists.
func (r *Registry) Get(name string) loggerHandle {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.loggers[name]
}

// Drop removes name from the registry. It is not an error to drop a name
// that isn't present.
func (r *Registry) Drop(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.loggers, name)
}

// Names returns every currently registered logger name.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.loggers))
	for name := range r.loggers {
		names = append(names, name)
	}
	return names
}

// DefaultPool returns the process-wide worker pool, lazily constructing it
// with queue_capacity=8192, workers=1 on first access, matching the
// package's documented defaults.
func DefaultPool() *WorkerPool {
	defaultPoolMu.Lock()
	defer defaultPoolMu.Unlock()
	if defaultPoolInst == nil {
		pool, err := NewWorkerPool(8192, 1)
		if err != nil {
			panic("alog: default pool construction failed: " + err.Error())
		}
		defaultPoolInst = pool
	}
	return defaultPoolInst
}

// InitDefaultPool replaces the process-wide worker pool with a freshly
// constructed one of the given size, closing (and thereby draining) any
// prior pool first.
func InitDefaultPool(queueCapacity, workers int) (*WorkerPool, error) {
	pool, err := NewWorkerPool(queueCapacity, workers)
	if err != nil {
		return nil, err
	}
	defaultPoolMu.Lock()
	prior := defaultPoolInst
	defaultPoolInst = pool
	defaultPoolMu.Unlock()
	if prior != nil {
		_ = prior.Close()
	}
	return pool, nil
}
