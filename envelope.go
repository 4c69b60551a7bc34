package alog

import (
	"reflect"
	"time"
)

// envelopeKind tags which of the three variants an envelope carries.
type envelopeKind uint8

const (
	envelopeLog envelopeKind = iota
	envelopeFlush
	envelopeTerminate
)

// envelope is the value the worker pool's queue carries. It owns its data:
// the record's arguments are snapshotted at construction time (see
// snapshotArg; the message itself is an immutable string), so the producing
// goroutine can reuse or mutate its own slices and maps once the envelope
// is built. owner keeps the originating AsyncLogger reachable for exactly as
// long as this envelope is queued or being processed; Go's garbage
// collector does the bookkeeping a manual refcount would otherwise need.
type envelope struct {
	kind  envelopeKind
	owner *AsyncLogger

	record Record

	// done is non-nil only for flush envelopes; the worker closes it once
	// the flush has been fully processed.
	done chan struct{}
	// err carries the outcome of a flush, readable once done is closed.
	err error
}

func newLogEnvelope(owner *AsyncLogger, rec Record) *envelope {
	args := make([]any, len(rec.Args))
	for i, a := range rec.Args {
		args[i] = snapshotArg(a)
	}
	rec.Args = args
	return &envelope{
		kind:   envelopeLog,
		owner:  owner,
		record: rec,
	}
}

// snapshotArg returns a value the worker can safely read after the calling
// goroutine has moved on. Formatting happens on a worker goroutine, so any
// argument backed by storage the caller might still mutate (a []byte, a
// map, or a slice) must be copied into the envelope rather than aliased;
// everything else (strings, numbers, time.Time, error, fmt.Stringer) is
// already an immutable value or interface.
func snapshotArg(v any) any {
	switch val := v.(type) {
	case []byte:
		cp := make([]byte, len(val))
		copy(cp, val)
		return cp
	case map[string]any:
		cp := make(map[string]any, len(val))
		for k, mv := range val {
			cp[k] = snapshotArg(mv)
		}
		return cp
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice:
		n := rv.Len()
		cp := reflect.MakeSlice(rv.Type(), n, n)
		for i := 0; i < n; i++ {
			cp.Index(i).Set(reflect.ValueOf(snapshotArg(rv.Index(i).Interface())))
		}
		return cp.Interface()
	case reflect.Map:
		cp := reflect.MakeMapWithSize(rv.Type(), rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			cp.SetMapIndex(iter.Key(), reflect.ValueOf(snapshotArg(iter.Value().Interface())))
		}
		return cp.Interface()
	default:
		return v
	}
}

func newFlushEnvelope(owner *AsyncLogger) *envelope {
	return &envelope{
		kind:  envelopeFlush,
		owner: owner,
		done:  make(chan struct{}),
	}
}

func newTerminateEnvelope() *envelope {
	return &envelope{kind: envelopeTerminate}
}

// wait blocks until a flush envelope has been processed, or the deadline
// passes, whichever comes first. Log and terminate envelopes have no done
// channel and return immediately.
func (e *envelope) wait(deadline time.Time) error {
	if e.done == nil {
		return nil
	}
	remaining := time.Until(deadline)
	if remaining <= 0 {
		select {
		case <-e.done:
			return e.err
		default:
			return newIoError("flush", "", errFlushTimeout)
		}
	}
	timer := time.NewTimer(remaining)
	defer timer.Stop()
	select {
	case <-e.done:
		return e.err
	case <-timer.C:
		return newIoError("flush", "", errFlushTimeout)
	}
}

func (e *envelope) complete(err error) {
	e.err = err
	if e.done != nil {
		close(e.done)
	}
}
