// Package errs provides structured error reporting for the motion
// library. Failures the scheduler recovers from (a throwing accessor, a
// bad preset file) are forwarded to a pluggable [Handler] instead of
// aborting the tick loop.
package errs

import (
	"fmt"
	"time"
)

// Kind identifies the category of an error.
type Kind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown Kind = iota
	// KindSpec indicates a malformed animation spec rejected at
	// registration time.
	KindSpec
	// KindAccessor indicates a property read or write failure.
	KindAccessor
	// KindPanic indicates a recovered panic.
	KindPanic
	// KindPreset indicates a preset file parse or resolve failure.
	KindPreset
	// KindWatch indicates a preset watcher failure.
	KindWatch
)

func (k Kind) String() string {
	switch k {
	case KindSpec:
		return "spec"
	case KindAccessor:
		return "accessor"
	case KindPanic:
		return "panic"
	case KindPreset:
		return "preset"
	case KindWatch:
		return "watch"
	default:
		return "unknown"
	}
}

// Error represents a structured error in the motion library.
type Error struct {
	// Op is the operation that failed (e.g., "motion.tick").
	Op string
	// Kind categorizes the error.
	Kind Kind
	// Owner is the identity of the animated object, if applicable.
	Owner any
	// Key is the animation key, if applicable.
	Key string
	// Err is the underlying error.
	Err error
	// StackTrace contains the call stack for recovered panics.
	StackTrace string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *Error) Error() string {
	switch {
	case e.Owner != nil && e.Key != "":
		return fmt.Sprintf("%s [%s] owner=%v key=%s: %v", e.Op, e.Kind, e.Owner, e.Key, e.Err)
	case e.Owner != nil:
		return fmt.Sprintf("%s [%s] owner=%v: %v", e.Op, e.Kind, e.Owner, e.Err)
	default:
		return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}
