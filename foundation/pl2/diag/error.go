// File: error.go
// Title: Fixed-Capacity Errors
// Description: Pooled error buffers with a bounded reason text. Writes past
//              the capacity are dropped and the text is cut on a rune
//              boundary.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial implementation

package diag

import (
	"errors"
	"fmt"
	"sync"
	"unicode/utf8"
)

// DefaultCapacity is the reason capacity used when a caller passes none.
const DefaultCapacity = 512

// Error is a diagnostic with a source location, a code and a reason text of
// at most Capacity bytes. The zero code means the buffer holds no error.
type Error struct {
	// ExtraData is free for the producer of the error.
	ExtraData any
	Source    SourceInfo

	code      Code
	kind      Kind
	capacity  uint16
	reason    []byte
	truncated bool
	released  bool
}

var bufferPool = sync.Pool{
	New: func() any { return new(Error) },
}

// NewErrorBuffer returns a cleared error with room for capacity bytes of
// reason text.
func NewErrorBuffer(capacity uint16) *Error {
	e := bufferPool.Get().(*Error)
	if cap(e.reason) < int(capacity) {
		e.reason = make([]byte, 0, capacity)
	}
	e.capacity = capacity
	e.clear()
	e.released = false
	return e
}

// Release hands the buffer back for reuse. It must be called at most once;
// a second call panics.
func (e *Error) Release() {
	if e.released {
		panic("diag: error buffer released twice")
	}
	e.clear()
	e.released = true
	bufferPool.Put(e)
}

// Reset clears code, kind, location and reason so the buffer can be reused
// by its current owner.
func (e *Error) Reset() {
	e.clear()
}

func (e *Error) clear() {
	e.ExtraData = nil
	e.Source = SourceInfo{}
	e.code = CodeNone
	e.kind = KindNone
	e.reason = e.reason[:0]
	e.truncated = false
}

// Format records an error. The kind is left as it is.
func (e *Error) Format(code Code, source SourceInfo, extra any, format string, args ...any) {
	e.code = code
	e.Source = source
	e.ExtraData = extra
	e.reason = e.reason[:0]
	e.truncated = false
	fmt.Fprintf((*boundedWriter)(e), format, args...)
}

// FormatKind records an error of the given kind.
func (e *Error) FormatKind(kind Kind, code Code, source SourceInfo, extra any, format string, args ...any) {
	e.Format(code, source, extra, format, args...)
	e.kind = kind
}

// SetKind sets the kind without touching the rest of the record.
func (e *Error) SetKind(kind Kind) {
	e.kind = kind
}

// Code returns the error code, CodeNone when no error was recorded.
func (e *Error) Code() Code { return e.code }

// Kind returns the error kind.
func (e *Error) Kind() Kind { return e.kind }

// Capacity returns the maximum reason length in bytes.
func (e *Error) Capacity() int { return int(e.capacity) }

// Reason returns the recorded reason text.
func (e *Error) Reason() string { return string(e.reason) }

// Truncated reports whether the reason was cut to fit the capacity.
func (e *Error) Truncated() bool { return e.truncated }

// Error renders the diagnostic for users.
func (e *Error) Error() string {
	return fmt.Sprintf("in file %s:%d: error[%d]: %s", e.Source.FileName, e.Source.Line, e.code, e.reason)
}

// IsError reports whether e holds an error.
func IsError(e *Error) bool {
	return e != nil && e.code != CodeNone
}

// AsError extracts a *Error holding an error from err's chain.
func AsError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) && IsError(e) {
		return e, true
	}
	return nil, false
}

// boundedWriter appends to the reason up to the capacity.
type boundedWriter Error

func (w *boundedWriter) Write(p []byte) (int, error) {
	room := int(w.capacity) - len(w.reason)
	if room <= 0 {
		if len(p) > 0 {
			w.truncated = true
		}
		return len(p), nil
	}
	if len(p) <= room {
		w.reason = append(w.reason, p...)
		return len(p), nil
	}

	w.reason = append(w.reason, p[:room]...)
	w.truncated = true
	if !utf8.RuneStart(p[room]) {
		// drop an incomplete last rune and stray continuation bytes
		i := len(w.reason) - 1
		for i >= 0 && !utf8.RuneStart(w.reason[i]) {
			i--
		}
		if i >= 0 {
			if utf8.FullRune(w.reason[i:]) {
				_, size := utf8.DecodeRune(w.reason[i:])
				w.reason = w.reason[:i+size]
			} else {
				w.reason = w.reason[:i]
			}
		}
	}
	return len(p), nil
}
