package cabrillo

import (
	"fmt"
)

// ErrorKind classifies parse and validation failures.
type ErrorKind int

const (
	KindInvalidFormat ErrorKind = iota + 1
	KindMissingRequiredField
	KindInvalidDate
	KindInvalidTime
	KindInvalidCallsign
	KindParseError
)

func (k ErrorKind) String() string {
	switch k {
	case KindInvalidFormat:
		return "Invalid format"
	case KindMissingRequiredField:
		return "Missing required field"
	case KindInvalidDate:
		return "Invalid date"
	case KindInvalidTime:
		return "Invalid time"
	case KindInvalidCallsign:
		return "Invalid callsign"
	case KindParseError:
		return "Parse error"
	default:
		return "Unknown error"
	}
}

// Error is returned by the parser and the validator
type Error struct {
	Kind  ErrorKind
	Value string
}

// Sentinels for errors.Is. They match any *Error of the same kind.
var (
	ErrInvalidFormat        = &Error{Kind: KindInvalidFormat}
	ErrMissingRequiredField = &Error{Kind: KindMissingRequiredField}
	ErrInvalidDate          = &Error{Kind: KindInvalidDate}
	ErrInvalidTime          = &Error{Kind: KindInvalidTime}
	ErrInvalidCallsign      = &Error{Kind: KindInvalidCallsign}
	ErrParse                = &Error{Kind: KindParseError}
)

func newError(kind ErrorKind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Value: fmt.Sprintf(format, args...)}
}

func (e *Error) Error() string {
	return e.Kind.String() + ": " + e.Value
}

// Is reports whether target is a sentinel of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && (t.Value == "" || t.Value == e.Value)
}

// QSOError ties a validation failure to the 1-based position of the QSO
// in the log.
type QSOError struct {
	Index int
	Err   error
}

func (e *QSOError) Error() string {
	return fmt.Sprintf("QSO %d: %v", e.Index, e.Err)
}

func (e *QSOError) Unwrap() error {
	return e.Err
}
