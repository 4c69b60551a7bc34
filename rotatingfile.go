package alog

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
)

// RotatingFileSink writes formatted records to a file, rotating to an
// indexed history chain once the current file would exceed maxBytes.
// Rotation renames base.<i-1> to base.<i> from maxHistory down to 1 and
// then truncates the base path fresh, the classic spdlog-style rotating
// sink scheme, rather than a timestamp-archive scheme.
type RotatingFileSink struct {
	base baseSink[*sync.Mutex]

	basePath    string
	stem        string
	ext         string
	maxBytes    int64
	maxHistory  int64
	currentSize int64
	file        *os.File

	lastErrMu sync.Mutex
	lastErr   error

	onInternalError func(error)
}

// NewRotatingFileSink opens basePath in append mode (creating it and any
// missing parent directory) and returns a sink that rotates once a write
// would push the file past maxBytes, keeping at most maxHistory older
// files.
func NewRotatingFileSink(basePath string, maxBytes, maxHistory int64, formatter Formatter) (*RotatingFileSink, error) {
	if maxBytes <= 0 {
		return nil, newConfigError("max_size_mb", "must be positive")
	}
	if maxHistory <= 0 {
		return nil, newConfigError("max_history", "must be positive")
	}

	if err := os.MkdirAll(filepath.Dir(basePath), 0o755); err != nil {
		return nil, newIoError("mkdir", filepath.Dir(basePath), err)
	}

	stem, ext := splitStemExt(basePath)

	f, err := os.OpenFile(basePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, newIoError("open", basePath, err)
	}
	size := int64(0)
	if fi, statErr := f.Stat(); statErr == nil {
		size = fi.Size()
	}

	return &RotatingFileSink{
		base:        newBaseSink[*sync.Mutex](formatter, &sync.Mutex{}),
		basePath:    basePath,
		stem:        stem,
		ext:         ext,
		maxBytes:    maxBytes,
		maxHistory:  maxHistory,
		currentSize: size,
		file:        f,
	}, nil
}

// splitStemExt mirrors spec's filename derivation: if basePath has an
// extension after the final separator, history files are "<stem>.<i><ext>";
// otherwise they are "basePath.<i>".
func splitStemExt(basePath string) (stem, ext string) {
	base := filepath.Base(basePath)
	ext = filepath.Ext(base)
	if ext == "" {
		return basePath, ""
	}
	dir := filepath.Dir(basePath)
	stemBase := strings.TrimSuffix(base, ext)
	return filepath.Join(dir, stemBase), ext
}

// filename returns the path for history index i (i==0 is basePath itself).
func (r *RotatingFileSink) filename(i int64) string {
	if i == 0 {
		return r.basePath
	}
	return r.stem + "." + strconv.FormatInt(i, 10) + r.ext
}

func (r *RotatingFileSink) Log(rec *Record) error {
	r.base.mu.Lock()
	defer r.base.mu.Unlock()

	if r.base.closed {
		return newIoError("log", r.basePath, ErrIO)
	}

	buf := r.base.formatter.Format(rec, make([]byte, 0, 256))
	n := int64(len(buf))

	if r.currentSize+n > r.maxBytes {
		if err := r.rotate(); err != nil {
			r.setLastErr(err)
			// On a rename failure rotate() has already reopened the rename
			// source truncated as r.file; on any other failure r.file is
			// still the closed handle. Either way the write is attempted
			// against r.file.
		}
	}

	written, err := r.file.Write(buf)
	if err != nil {
		wrapped := newIoError("write", r.basePath, err)
		r.setLastErr(wrapped)
		return wrapped
	}
	r.currentSize += int64(written)
	return nil
}

// rotate renames base.<i-1> to base.<i> from maxHistory down to 1. On a
// rename failure it reopens the source file truncated in place and stops
// further renames for this cycle, capping file growth even though the
// history chain did not fully shift.
func (r *RotatingFileSink) rotate() error {
	if err := r.file.Close(); err != nil {
		return newIoError("close", r.basePath, err)
	}

	for i := r.maxHistory; i >= 1; i-- {
		src := r.filename(i - 1)
		tgt := r.filename(i)

		if _, err := os.Stat(src); err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return newIoError("stat", src, err)
		}

		_ = os.Remove(tgt) // best effort; Rename below still fails loudly if this matters

		if err := os.Rename(src, tgt); err != nil {
			f, openErr := os.OpenFile(src, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
			if openErr != nil {
				return newIoError("reopen-fallback", src, openErr)
			}
			r.file = f
			r.currentSize = 0
			return newIoError("rename", src, err)
		}
	}

	f, err := os.OpenFile(r.basePath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return newIoError("reopen", r.basePath, err)
	}
	r.file = f
	r.currentSize = 0
	return nil
}

func (r *RotatingFileSink) Flush() error {
	r.base.mu.Lock()
	defer r.base.mu.Unlock()
	if r.base.closed {
		return nil
	}
	if err := r.file.Sync(); err != nil {
		wrapped := newIoError("sync", r.basePath, err)
		r.setLastErr(wrapped)
		return wrapped
	}
	return nil
}

func (r *RotatingFileSink) Close() error {
	r.base.mu.Lock()
	defer r.base.mu.Unlock()
	if r.base.closed {
		return nil
	}
	r.base.closed = true
	syncErr := r.file.Sync()
	closeErr := r.file.Close()
	return combineErrors(syncErr, closeErr)
}

// LastError returns the most recent write/rotate/sync failure, or nil.
// The worker pool swallows backend errors per the package's error policy
// (a broken sink must never stall delivery to other sinks); this accessor
// lets a supervising goroutine poll sink health without changing that.
func (r *RotatingFileSink) LastError() error {
	r.lastErrMu.Lock()
	defer r.lastErrMu.Unlock()
	return r.lastErr
}

func (r *RotatingFileSink) setLastErr(err error) {
	r.lastErrMu.Lock()
	r.lastErr = err
	r.lastErrMu.Unlock()
	if r.onInternalError != nil {
		r.onInternalError(err)
	}
}

// OnInternalError registers fn to be called, in addition to latching the
// error for LastError, whenever this sink swallows a rotate/write/sync
// failure that Log cannot surface without breaking its error contract.
// A nil fn disables reporting.
func (r *RotatingFileSink) OnInternalError(fn func(error)) {
	r.onInternalError = fn
}

func (r *RotatingFileSink) ShouldLog(severity Severity) bool { return r.base.ShouldLog(severity) }
func (r *RotatingFileSink) SetLevel(severity Severity)       { r.base.SetLevel(severity) }
func (r *RotatingFileSink) GetLevel() Severity               { return r.base.GetLevel() }
func (r *RotatingFileSink) SetFormatter(formatter Formatter) { r.base.SetFormatter(formatter) }
