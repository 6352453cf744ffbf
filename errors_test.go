package vg

import (
	"errors"
	"fmt"
	"testing"
)

func TestMisuseError(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", &MisuseError{Op: "Restore", Err: ErrUnbalancedRestore})
	if !IsMisuse(err) {
		t.Error("IsMisuse(wrapped misuse) = false")
	}
	if !errors.Is(err, ErrUnbalancedRestore) {
		t.Error("misuse error does not unwrap to its cause")
	}
	if IsMisuse(ErrInvalidInput) {
		t.Error("IsMisuse(ErrInvalidInput) = true")
	}
}

func TestUnsupportedError(t *testing.T) {
	err := &UnsupportedError{Backend: "svg", Op: "CaptureImageArea"}
	if !errors.Is(err, ErrNotSupported) {
		t.Error("UnsupportedError does not match ErrNotSupported")
	}
	if errors.Is(err, ErrInvalidInput) {
		t.Error("UnsupportedError matches ErrInvalidInput")
	}
	if got, want := err.Error(), "vg: svg backend does not support CaptureImageArea"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestBackendError(t *testing.T) {
	cause := errors.New("device lost")
	err := &BackendError{Backend: "gpu", Op: "Finish", Err: cause}
	if !errors.Is(err, cause) {
		t.Error("BackendError does not unwrap")
	}
}

func TestInvalidInputf(t *testing.T) {
	err := InvalidInputf("width %v", -1)
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("InvalidInputf does not wrap ErrInvalidInput: %v", err)
	}
	if got, want := err.Error(), "vg: invalid input: width -1"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}
