// Package muderr defines the error taxonomy shared by the dispatcher, tick
// engine, and persistence layer. Each kind maps to a reporting rule: inline
// to the session, a log level, or a fatal/terminal action.
package muderr

import "fmt"

// Kind classifies an error for the purposes of reporting and logging.
type Kind int

const (
	// KindUser covers bad input, insufficient resource, wrong state as
	// perceived by the player. Never logged above INFO.
	KindUser Kind = iota
	// KindPermission covers admin-only actions attempted by non-admins,
	// or actions blocked by an active effect. Logged at INFO for audit.
	KindPermission
	// KindNotFound covers unknown command, item, room, or target.
	KindNotFound
	// KindState covers a session in the wrong state for the requested
	// command (e.g. attack while unconscious).
	KindState
	// KindIO covers persistence read/write failures. Logged at ERROR.
	KindIO
	// KindProtocol covers malformed frames or oversized lines; the
	// offending session is terminated.
	KindProtocol
	// KindInternal covers invariant violations. Logged at ERROR with
	// full context; the session receives a generic failure message.
	KindInternal
)

func (k Kind) String() string {
	switch k {
	case KindUser:
		return "user"
	case KindPermission:
		return "permission"
	case KindNotFound:
		return "not_found"
	case KindState:
		return "state"
	case KindIO:
		return "io"
	case KindProtocol:
		return "protocol"
	case KindInternal:
		return "internal"
	default:
		return "unknown"
	}
}

// Error is a classified error carrying a player-facing message distinct
// from the (possibly more detailed) wrapped cause.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Inline reports whether this error's kind is reported directly on the
// session's output rather than only logged.
func (e *Error) Inline() bool {
	switch e.Kind {
	case KindUser, KindPermission, KindNotFound, KindState:
		return true
	default:
		return false
	}
}

func newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// User builds a KindUser error.
func User(format string, args ...any) *Error { return newf(KindUser, format, args...) }

// Permission builds a KindPermission error.
func Permission(format string, args ...any) *Error { return newf(KindPermission, format, args...) }

// NotFound builds a KindNotFound error.
func NotFound(format string, args ...any) *Error { return newf(KindNotFound, format, args...) }

// State builds a KindState error.
func State(format string, args ...any) *Error { return newf(KindState, format, args...) }

// IO wraps a persistence failure as a KindIO error.
func IO(message string, cause error) *Error {
	return &Error{Kind: KindIO, Message: message, Cause: cause}
}

// Protocol builds a KindProtocol error.
func Protocol(format string, args ...any) *Error { return newf(KindProtocol, format, args...) }

// Internal wraps an invariant violation as a KindInternal error, keeping
// the original cause for logging while the session only ever sees a
// generic failure message.
func Internal(message string, cause error) *Error {
	return &Error{Kind: KindInternal, Message: message, Cause: cause}
}

// As is a convenience wrapper over errors.As for the common case of
// checking whether an error is a classified *Error.
func As(err error) (*Error, bool) {
	me, ok := err.(*Error)
	if ok {
		return me, true
	}
	type wrapper interface{ Unwrap() error }
	if w, ok := err.(wrapper); ok {
		return As(w.Unwrap())
	}
	return nil, false
}
