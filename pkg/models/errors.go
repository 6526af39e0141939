package models

import (
	"errors"
	"fmt"
)

// ErrorKind classifies path resolution and open failures.
type ErrorKind string

const (
	KindJobNumberNotFound   ErrorKind = "job_number_not_found"
	KindRangeRootNotFound   ErrorKind = "range_root_not_found"
	KindDestinationNotFound ErrorKind = "destination_not_found"
	KindOpenFailed          ErrorKind = "open_failed"
	KindInvalidArgument     ErrorKind = "invalid_argument"
)

// Sentinels for errors.Is. Any *PathError of the same kind matches.
var (
	ErrJobNumberNotFound   = &PathError{Kind: KindJobNumberNotFound}
	ErrRangeRootNotFound   = &PathError{Kind: KindRangeRootNotFound}
	ErrDestinationNotFound = &PathError{Kind: KindDestinationNotFound}
	ErrOpenFailed          = &PathError{Kind: KindOpenFailed}
	ErrInvalidArgument     = &PathError{Kind: KindInvalidArgument}
)

// PathError is the single error type returned by resolution and open
// operations. Input carries the offending text, job number or path.
type PathError struct {
	Kind  ErrorKind
	Input string
	// Root is the directory that was scanned for KindRangeRootNotFound.
	Root string
	Err  error
}

func (e *PathError) Error() string {
	var msg string
	switch e.Kind {
	case KindJobNumberNotFound:
		msg = fmt.Sprintf("no job number found in %q", e.Input)
	case KindRangeRootNotFound:
		if e.Root != "" {
			msg = fmt.Sprintf("no range folder under %q contains job %q", e.Root, e.Input)
		} else {
			msg = fmt.Sprintf("no range folder contains job %q", e.Input)
		}
	case KindDestinationNotFound:
		msg = fmt.Sprintf("%q could not be found", e.Input)
	case KindOpenFailed:
		msg = fmt.Sprintf("could not open %q", e.Input)
	case KindInvalidArgument:
		msg = fmt.Sprintf("invalid argument %q", e.Input)
	default:
		msg = fmt.Sprintf("path error for %q", e.Input)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *PathError) Unwrap() error { return e.Err }

// Is matches another *PathError of the same kind, so the sentinels above
// work with errors.Is regardless of Input.
func (e *PathError) Is(target error) bool {
	t, ok := target.(*PathError)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// KindOf returns the kind of the first *PathError in err's chain, or "".
func KindOf(err error) ErrorKind {
	var pe *PathError
	if errors.As(err, &pe) {
		return pe.Kind
	}
	return ""
}
