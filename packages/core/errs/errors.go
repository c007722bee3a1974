package errs

import (
	"errors"
	"fmt"
)

// Kind classifies a failure by what went wrong
type Kind int

const (
	KindUnknown Kind = iota
	// KindArgument covers invalid options that slipped past flag parsing (bad URL, method)
	KindArgument
	// KindFileAccess covers upload file open/read and output file creation failures
	KindFileAccess
	// KindTransport covers DNS, connect, TLS and redirect loop failures
	KindTransport
	// KindEncoding is returned when the response body is not valid text
	KindEncoding
	// KindIO covers sink write failures
	KindIO
)

func (k Kind) String() string {
	switch k {
	case KindArgument:
		return "argument error"
	case KindFileAccess:
		return "file access error"
	case KindTransport:
		return "transport error"
	case KindEncoding:
		return "encoding error"
	case KindIO:
		return "io error"
	default:
		return "error"
	}
}

// Sentinels for errors.Is checks against a Kind
var (
	ErrArgument   = &kindError{KindArgument}
	ErrFileAccess = &kindError{KindFileAccess}
	ErrTransport  = &kindError{KindTransport}
	ErrEncoding   = &kindError{KindEncoding}
	ErrIO         = &kindError{KindIO}
)

type kindError struct {
	kind Kind
}

func (e *kindError) Error() string {
	return e.kind.String()
}

// Phase names the pipeline stage an error surfaced in
type Phase string

const (
	PhaseBuilding Phase = "building"
	PhaseSending  Phase = "sending"
	PhaseWriting  Phase = "writing"
)

// Error is the single failure type surfaced to the CLI
type Error struct {
	Kind  Kind
	Phase Phase
	Op    string
	Err   error
}

func (e *Error) Error() string {
	msg := e.Op
	if e.Err != nil {
		if msg != "" {
			msg += ": "
		}
		msg += e.Err.Error()
	}
	if e.Phase != "" {
		return fmt.Sprintf("%s: %s", e.Phase, msg)
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is the sentinel for this error's kind.
func (e *Error) Is(target error) bool {
	var ke *kindError
	if errors.As(target, &ke) {
		return ke.kind == e.Kind
	}
	return false
}

// New wraps err with a kind and a short description of the failed operation.
func New(kind Kind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// Errorf builds an Error with a formatted cause.
func Errorf(kind Kind, op, format string, args ...any) *Error {
	return &Error{Kind: kind, Op: op, Err: fmt.Errorf(format, args...)}
}

// WithPhase stamps the phase on err. An *Error that already carries a phase keeps it;
// any other error is wrapped as KindUnknown.
func WithPhase(err error, phase Phase) error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		if e.Phase == "" {
			cp := *e
			cp.Phase = phase
			return &cp
		}
		return err
	}
	return &Error{Kind: KindUnknown, Phase: phase, Err: err}
}

// KindOf returns the Kind of the first *Error in err's chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// PhaseOf returns the Phase of the first *Error in err's chain.
func PhaseOf(err error) Phase {
	var e *Error
	if errors.As(err, &e) {
		return e.Phase
	}
	return ""
}
