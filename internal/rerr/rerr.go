// Package rerr defines the gateway's error taxonomy as comparable
// sentinel kinds, wrapped with contextual messages the way the rest of
// this codebase wraps errors (github.com/pkg/errors).
package rerr

import "github.com/pkg/errors"

// Kind identifies one of the design-level error categories a caller
// may want to branch on with errors.Is.
type Kind error

var (
	// ResourceNotFound: no authority covers the queried resource.
	ResourceNotFound Kind = errors.New("resource not found")
	// MalformedRequest: caller input failed syntactic validation.
	MalformedRequest Kind = errors.New("malformed request")
	// BootstrapVersionError: document version missing or unsupported.
	BootstrapVersionError Kind = errors.New("unsupported bootstrap version")
	// BootstrapFormatError: JSON malformed or fails schema.
	BootstrapFormatError Kind = errors.New("malformed bootstrap document")
	// NetworkError: upstream unreachable, timed out, or non-2xx.
	NetworkError Kind = errors.New("network error")
	// AmbiguousAuthority: more than one authority claims an input URI set.
	AmbiguousAuthority Kind = errors.New("ambiguous authority")
	// ServerConflict: a server URI is already claimed by another authority.
	ServerConflict Kind = errors.New("server conflict")
)

// Wrap attaches msg as context to err while preserving errors.Is
// matching against the sentinel kinds above.
func Wrap(kind Kind, msg string) error {
	return errors.WithMessage(kind, msg)
}

// Wrapf is Wrap with fmt-style formatting.
func Wrapf(kind Kind, format string, args ...interface{}) error {
	return errors.WithMessage(kind, errors.Errorf(format, args...).Error())
}
