package types

import (
	"errors"
	"fmt"
)

// Kind classifies a per-file failure so the batch driver can decide how to
// react without inspecting error strings.
type Kind string

const (
	KindConfiguration  Kind = "configuration"
	KindMetadata       Kind = "metadata"
	KindSampling       Kind = "sampling"
	KindDecode         Kind = "decode"
	KindOutputConflict Kind = "output-conflict"
	KindPermission     Kind = "permission"
)

// Error is a classified processing error for one file.
type Error struct {
	Kind Kind
	Path string
	Err  error
}

func (e *Error) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", e.Kind, e.Path, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// NewError wraps err with a kind and the affected file path.
func NewError(kind Kind, path string, err error) *Error {
	return &Error{Kind: kind, Path: path, Err: err}
}

// Errorf is NewError with a formatted message.
func Errorf(kind Kind, path, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Path: path, Err: fmt.Errorf(format, args...)}
}

// KindOf returns the kind of a classified error, or an empty Kind if err was
// not produced by this package.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
