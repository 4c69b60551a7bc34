package alog

import (
	"bytes"
	"runtime"
	"strconv"
	"time"
)

// Record is the unit of data passed from a logging call into the pipeline.
// A Sink's Formatter renders a Record into bytes; the Sink then writes
// those bytes to its backing medium.
type Record struct {
	Time     time.Time
	Severity Severity
	Logger   string
	Message  string
	Args     []any
	ThreadID int64
}

// goroutineID extracts a best-effort identifier for the calling goroutine
// from its stack trace header ("goroutine 123 [running]:"). Go exposes no
// portable OS-thread id to user code, and goroutines are not threads, so
// this is a diagnostic value for correlating related log lines within one
// process, not a scheduling primitive.
func goroutineID() int64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	b := buf[:n]
	const prefix = "goroutine "
	if !bytes.HasPrefix(b, []byte(prefix)) {
		return -1
	}
	b = b[len(prefix):]
	end := bytes.IndexByte(b, ' ')
	if end < 0 {
		return -1
	}
	id, err := strconv.ParseInt(string(b[:end]), 10, 64)
	if err != nil {
		return -1
	}
	return id
}
