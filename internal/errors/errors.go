package errors

import (
	"errors"
	"fmt"
)

// Fatal-to-operation errors. Any of these aborts the entire sync run.
var (
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrEmptyAccount     = errors.New("account identifier is empty")
	ErrCloudUnreachable = errors.New("cloud store is unreachable")
)

// Per-entity errors. These are logged and counted, never propagated
// past the entity that produced them.
var (
	ErrDocNotFound   = errors.New("document not found")
	ErrImageTooLarge = errors.New("encoded image exceeds size limit")
	ErrImageDecode   = errors.New("image could not be decoded")
)

// Kind classifies a sync failure. Kinds never cross the caller
// boundary; callers receive a rendered string.
type Kind int

const (
	KindUnknown Kind = iota
	KindAuth
	KindNetwork
	KindStorage
	KindConflict
	KindDecode
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case KindAuth:
		return "auth"
	case KindNetwork:
		return "network"
	case KindStorage:
		return "storage"
	case KindConflict:
		return "conflict"
	case KindDecode:
		return "decode"
	default:
		return "unknown"
	}
}

// Error pairs a kind with an underlying cause.
type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Wrap attaches a kind to err. Returns nil when err is nil.
func Wrap(kind Kind, err error) error {
	if err == nil {
		return nil
	}

	return &Error{Kind: kind, Err: err}
}

// Wrapf attaches a kind to a formatted error.
func Wrapf(kind Kind, format string, args ...any) error {
	return &Error{Kind: kind, Err: fmt.Errorf(format, args...)}
}

// KindOf extracts the kind from err, or KindUnknown when none is attached.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}

	return KindUnknown
}

// IsFatal reports whether err should abort an entire sync run rather
// than a single entity.
func IsFatal(err error) bool {
	return errors.Is(err, ErrNotAuthenticated) ||
		errors.Is(err, ErrEmptyAccount) ||
		errors.Is(err, ErrCloudUnreachable)
}
