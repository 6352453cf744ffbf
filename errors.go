package vg

import (
	"errors"
	"fmt"
)

// Construction errors.
var (
	// ErrInvalidInput is returned for malformed geometry, styles or
	// transforms (NaN coordinates, negative widths, degenerate matrices).
	ErrInvalidInput = errors.New("vg: invalid input")

	// ErrTooFewStops is returned when a gradient has fewer than two stops.
	ErrTooFewStops = errors.New("vg: gradient needs at least two stops")

	// ErrInvalidImage is returned when a pixel buffer does not match the
	// declared dimensions and format.
	ErrInvalidImage = errors.New("vg: image buffer does not match size and format")

	// ErrMissingFont is returned when a font family cannot be resolved.
	ErrMissingFont = errors.New("vg: font family not found")

	// ErrFontLoad is returned when font data cannot be parsed.
	ErrFontLoad = errors.New("vg: font data could not be loaded")
)

// Backend and misuse errors.
var (
	// ErrNotSupported is matched by every [*UnsupportedError].
	ErrNotSupported = errors.New("vg: operation not supported by backend")

	// ErrFinished is wrapped by a [*MisuseError] when a context is used
	// after Finish.
	ErrFinished = errors.New("vg: render context already finished")

	// ErrUnbalancedRestore is wrapped by a [*MisuseError] when Restore is
	// called without a matching Save.
	ErrUnbalancedRestore = errors.New("vg: restore without matching save")
)

// MisuseError reports a violation of the drawing contract by the caller.
// It indicates a bug in the calling code, not an environmental failure.
type MisuseError struct {
	Op  string // contract operation, e.g. "Restore"
	Err error  // ErrFinished or ErrUnbalancedRestore
}

func (e *MisuseError) Error() string {
	return fmt.Sprintf("vg: misuse in %s: %v", e.Op, e.Err)
}

func (e *MisuseError) Unwrap() error { return e.Err }

// IsMisuse reports whether err is or wraps a [*MisuseError].
func IsMisuse(err error) bool {
	var me *MisuseError
	return errors.As(err, &me)
}

// UnsupportedError reports that a backend cannot honor a request exactly.
type UnsupportedError struct {
	Backend string
	Op      string
	Detail  string
}

func (e *UnsupportedError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("vg: %s backend does not support %s (%s)", e.Backend, e.Op, e.Detail)
	}
	return fmt.Sprintf("vg: %s backend does not support %s", e.Backend, e.Op)
}

// Is makes errors.Is(err, ErrNotSupported) true.
func (e *UnsupportedError) Is(target error) bool { return target == ErrNotSupported }

// BackendError wraps a failure of the underlying graphics library.
type BackendError struct {
	Backend string
	Op      string
	Err     error
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("vg: %s backend: %s: %v", e.Backend, e.Op, e.Err)
}

func (e *BackendError) Unwrap() error { return e.Err }

// InvalidInputf returns an error wrapping ErrInvalidInput with context.
func InvalidInputf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}
