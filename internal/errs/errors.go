// Package errs provides the unified error type used across s3sync.
//
// Every subsystem (store, backend client, orchestrators) wraps its native
// errors into *errs.Error before returning them to callers. Callers use the
// Is* predicates to decide recovery actions without importing transport- or
// SDK-specific packages. Each kind implies a different recovery action and
// is never collapsed into a generic failure.
package errs

import (
	"errors"
	"fmt"
)

// Kind categorises a failure by the operation that produced it.
type Kind int

const (
	KindUnknown       Kind = iota
	KindAuthorization      // backend denied or was unreachable for a transfer authorization
	KindTransfer           // the authorized bytes-in/bytes-out operation failed
	KindListing            // a listing fetch failed or returned a malformed shape
	KindBundling           // server-side archive assembly failed or was rejected
)

func (k Kind) String() string {
	switch k {
	case KindAuthorization:
		return "authorization"
	case KindTransfer:
		return "transfer"
	case KindListing:
		return "listing"
	case KindBundling:
		return "bundling"
	default:
		return "unknown"
	}
}

// Error is the single error type returned by all s3sync subsystems.
type Error struct {
	Kind    Kind
	Message string
	Cause   error // original transport- or SDK-level error, preserved for logging
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Kind, e.Message)
}

// Unwrap allows errors.Is / errors.As to traverse the cause chain.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates an *Error with the given kind and message and no cause.
func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

// Wrap creates an *Error with the given kind, message, and underlying cause.
func Wrap(kind Kind, msg string, cause error) *Error {
	return &Error{Kind: kind, Message: msg, Cause: cause}
}

// IsAuthorization reports whether err came from a transfer-authorization
// request that was denied or could not reach the backend.
func IsAuthorization(err error) bool {
	return kindOf(err) == KindAuthorization
}

// IsTransfer reports whether err came from the raw bytes transfer itself.
func IsTransfer(err error) bool {
	return kindOf(err) == KindTransfer
}

// IsListing reports whether err came from a listing fetch.
func IsListing(err error) bool {
	return kindOf(err) == KindListing
}

// IsBundling reports whether err came from server-side archive assembly.
func IsBundling(err error) bool {
	return kindOf(err) == KindBundling
}

// kindOf extracts the Kind from any error in the chain.
func kindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}
