// Package errclass maps normalized store errors onto the categories used for
// user-facing messages. Classification never changes control flow; it only
// picks the message.
package errclass

import (
	"errors"
	"fmt"
	"strings"
)

// Store error codes produced by the store boundary.
const (
	CodeNotFound              = "PGRST116"
	CodeUniqueViolation       = "23505"
	CodeInsufficientPrivilege = "42501"
)

// StoreError is the normalized shape every store implementation returns.
// Code is empty when the driver gave none.
type StoreError struct {
	Code    string
	Message string
	Err     error
}

func (e *StoreError) Error() string {
	if e.Code == "" {
		return e.Message
	}
	return fmt.Sprintf("%s (code %s)", e.Message, e.Code)
}

func (e *StoreError) Unwrap() error { return e.Err }

// Kind is the category of a failed store call.
type Kind string

const (
	KindAuth       Kind = "AUTH"
	KindNetwork    Kind = "NETWORK"
	KindValidation Kind = "VALIDATION"
	KindDatabase   Kind = "DATABASE"
	KindUnknown    Kind = "UNKNOWN"
)

// Error is a classified store failure.
type Error struct {
	Kind    Kind
	Message string
	Code    string
	Err     error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

var networkMarkers = []string{"network", "fetch", "connection refused", "connection reset", "timeout", "no such host"}

// Classify maps err onto a Kind. Errors that are not StoreErrors are treated
// as a StoreError without a code. Classify(nil) returns nil.
func Classify(err error) *Error {
	if err == nil {
		return nil
	}

	var already *Error
	if errors.As(err, &already) {
		return already
	}

	var se *StoreError
	if !errors.As(err, &se) {
		se = &StoreError{Message: err.Error(), Err: err}
	}

	switch se.Code {
	case CodeNotFound:
		return &Error{Kind: KindDatabase, Message: "The requested record was not found.", Code: se.Code, Err: err}
	case CodeUniqueViolation:
		return &Error{Kind: KindValidation, Message: "A record with this name already exists.", Code: se.Code, Err: err}
	case CodeInsufficientPrivilege:
		return &Error{Kind: KindAuth, Message: "You do not have permission to perform this action.", Code: se.Code, Err: err}
	}

	msg := strings.ToLower(se.Message)
	for _, marker := range networkMarkers {
		if strings.Contains(msg, marker) {
			return &Error{Kind: KindNetwork, Message: "Network error. Please check your connection and try again.", Code: se.Code, Err: err}
		}
	}

	return &Error{Kind: KindUnknown, Message: se.Message, Code: se.Code, Err: err}
}

// KindOf is a shorthand for Classify(err).Kind; it returns "" for nil.
func KindOf(err error) Kind {
	if c := Classify(err); c != nil {
		return c.Kind
	}
	return ""
}
