// Package errs defines the structured error kinds shared across rookpkg's
// conversion and repository subsystems. The CLI (cmd/rookpkg) maps each kind
// to a process exit code.
package errs

import "fmt"

// Kind classifies an error for exit-code mapping and suggestion formatting.
type Kind int

const (
	// KindUnknown is used for errors that don't originate from this package.
	KindUnknown Kind = iota
	KindIO
	KindNetwork
	KindParse
	KindSignature
	KindSkipList
	KindMissingKey
	KindAlreadyExists
	KindMalformedInput
	KindNotARepository
)

func (k Kind) String() string {
	switch k {
	case KindIO:
		return "IO"
	case KindNetwork:
		return "Network"
	case KindParse:
		return "Parse"
	case KindSignature:
		return "Signature"
	case KindSkipList:
		return "SkipList"
	case KindMissingKey:
		return "MissingKey"
	case KindAlreadyExists:
		return "AlreadyExists"
	case KindMalformedInput:
		return "MalformedInput"
	case KindNotARepository:
		return "NotARepository"
	default:
		return "Unknown"
	}
}

// Error is a structured error carrying a Kind for exit-code mapping and an
// optional wrapped cause.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New constructs an *Error of the given kind.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap constructs an *Error of the given kind wrapping an underlying cause.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf returns the Kind of err if it is (or wraps) an *Error, else KindUnknown.
func KindOf(err error) Kind {
	var e *Error
	if As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// As is a thin indirection over errors.As kept local to avoid importing
// "errors" in callers that only need KindOf.
func As(err error, target **Error) bool {
	for err != nil {
		if e, ok := err.(*Error); ok {
			*target = e
			return true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}
