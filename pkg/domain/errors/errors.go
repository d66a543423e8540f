package errors

import (
	"errors"
	"fmt"
)

// Error kinds of the domain layer.
//
// Typed errors below unwrap to these sentinels,
// so callers can branch with errors.Is.
var (
	ErrMissing           = errors.New("missing")
	ErrInvalidArgument   = errors.New("invalid argument")
	ErrAccessDenied      = errors.New("access denied")
	ErrUnsupportedMethod = errors.New("unsupported method")
)

// requested data is missing.
type Missing struct {
	Table    string
	Identity string
}

var _ error = Missing{}

func (m Missing) Error() string {
	return fmt.Sprintf("%s is not found in %s", m.Identity, m.Table)
}

func (m Missing) Unwrap() error {
	return ErrMissing
}

// request parameter is out of range or malformed.
type InvalidArgument struct {
	Reason string
}

var _ error = InvalidArgument{}

func (e InvalidArgument) Error() string {
	return e.Reason
}

func (e InvalidArgument) Unwrap() error {
	return ErrInvalidArgument
}

// caller may not use the resource it requested.
type AccessDenied struct {
	Reason string
}

var _ error = AccessDenied{}

func (e AccessDenied) Error() string {
	return e.Reason
}

func (e AccessDenied) Unwrap() error {
	return ErrAccessDenied
}

// requested method is not registered for pagination.
type UnsupportedMethod struct {
	Name string
}

var _ error = UnsupportedMethod{}

func (e UnsupportedMethod) Error() string {
	return fmt.Sprintf("pagination is not supported for method %s", e.Name)
}

func (e UnsupportedMethod) Unwrap() error {
	return ErrUnsupportedMethod
}
