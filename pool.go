package alog

import (
	"sync"
	"time"
	"weak"

	"github.com/lixenwraith/alog/internal/queue"
)

// maxWorkers is the upper bound on a pool's worker count.
const maxWorkers = 1000

// WorkerPool drains a bounded queue of envelopes with a fixed number of
// goroutines, dispatching each envelope's backend operation (write, flush,
// or shut down) against whatever sinks its owning AsyncLogger configured.
// One pool can back many AsyncLoggers; an
// AsyncLogger holds only a weak.Pointer to its pool so the pool can be torn
// down without the logger keeping it artificially alive, and so the
// logger's death doesn't require pool-side bookkeeping to notice.
type WorkerPool struct {
	q       *queue.Blocking[*envelope]
	workers int

	wg     sync.WaitGroup
	once   sync.Once
	closed chan struct{}
}

// NewWorkerPool creates a pool with the given queue capacity and worker
// count, and starts its worker goroutines immediately.
func NewWorkerPool(queueCapacity, workers int) (*WorkerPool, error) {
	if queueCapacity <= 0 {
		return nil, newConfigError("queue_capacity", "must be positive")
	}
	if workers <= 0 || workers > maxWorkers {
		return nil, newConfigError("workers", "must be between 1 and 1000")
	}
	p := &WorkerPool{
		q:       queue.NewBlocking[*envelope](queueCapacity),
		workers: workers,
		closed:  make(chan struct{}),
	}
	p.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go p.runWorker()
	}
	return p, nil
}

// weakHandle returns a weak.Pointer an AsyncLogger can hold without
// keeping the pool alive on its own.
func (p *WorkerPool) weakHandle() weak.Pointer[WorkerPool] {
	return weak.Make(p)
}

func (p *WorkerPool) runWorker() {
	defer p.wg.Done()
	for {
		env, ok := p.q.DequeueTimed(250 * time.Millisecond)
		if !ok {
			select {
			case <-p.closed:
				return
			default:
				continue
			}
		}
		if p.dispatch(env) {
			return
		}
	}
}

// dispatch runs one envelope's backend operation, reporting whether the
// worker should exit (a terminate envelope was received).
func (p *WorkerPool) dispatch(env *envelope) bool {
	switch env.kind {
	case envelopeTerminate:
		return true
	case envelopeFlush:
		err := env.owner.backendFlush()
		env.complete(err)
	default:
		env.owner.backendProcessLog(&env.record)
	}
	return false
}

// submitBlocking enqueues env, blocking while the queue is full. Returns
// ErrPoolGone if the pool has been closed.
func (p *WorkerPool) submitBlocking(env *envelope) error {
	select {
	case <-p.closed:
		return ErrPoolGone
	default:
	}
	if !p.q.EnqueueBlocking(env) {
		return ErrPoolGone
	}
	return nil
}

// submitOverwrite enqueues env without blocking, dropping the oldest queued
// envelope if the queue is full. Returns ErrPoolGone if the pool has been
// closed.
func (p *WorkerPool) submitOverwrite(env *envelope) error {
	select {
	case <-p.closed:
		return ErrPoolGone
	default:
	}
	if !p.q.EnqueueOverwrite(env) {
		return ErrPoolGone
	}
	return nil
}

// Overrun returns the number of envelopes dropped by overwrite so far.
func (p *WorkerPool) Overrun() uint64 {
	return p.q.Overrun()
}

// QueueLen returns the number of envelopes currently queued.
func (p *WorkerPool) QueueLen() int {
	return p.q.Len()
}

// Close stops accepting new work, drains what's already queued, and waits
// for every worker goroutine to exit. Close is idempotent.
func (p *WorkerPool) Close() error {
	p.once.Do(func() {
		close(p.closed)
		for i := 0; i < p.workers; i++ {
			p.q.EnqueueBlocking(newTerminateEnvelope())
		}
		p.wg.Wait()
		p.q.Close()
	})
	return nil
}
