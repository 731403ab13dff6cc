package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
)

// ErrorKind classifies a failed call to the content API.
type ErrorKind string

const (
	ErrorKindNetwork  ErrorKind = "network-unreachable"
	ErrorKindNotFound ErrorKind = "not-found"
	ErrorKindServer   ErrorKind = "server-error"
	ErrorKindUnknown  ErrorKind = "unknown"
)

// Error is the classified failure surfaced by the content client and the data service.
// Message holds the text extracted from the response body, if any.
type Error struct {
	Kind       ErrorKind
	Message    string
	StatusCode int
	Err        error
}

func NewError(kind ErrorKind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

func (e *Error) Error() string {
	switch {
	case e.Message != "" && e.Err != nil:
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	case e.Message != "":
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	default:
		return string(e.Kind)
	}
}

func (e *Error) Unwrap() error { return e.Err }

// Is lets errors.Is(err, ErrNotFound) match not-found classified errors.
func (e *Error) Is(target error) bool {
	return target == ErrNotFound && e.Kind == ErrorKindNotFound
}

// UserMessage is the text a form or list view shows for this failure.
func (e *Error) UserMessage() string {
	switch e.Kind {
	case ErrorKindNetwork:
		return "Unable to reach the server. Please check your internet connection."
	case ErrorKindNotFound:
		return "The requested resource was not found."
	case ErrorKindServer:
		if e.Message != "" {
			return e.Message
		}
		return "An unexpected error occurred."
	default:
		if e.Message != "" {
			return e.Message
		}
		return "An unknown error occurred."
	}
}

// KindOf returns the classification of err. Unclassified not-found sentinels map to
// ErrorKindNotFound, anything else unclassified to ErrorKindUnknown.
func KindOf(err error) ErrorKind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	if errors.Is(err, ErrNotFound) {
		return ErrorKindNotFound
	}
	return ErrorKindUnknown
}
