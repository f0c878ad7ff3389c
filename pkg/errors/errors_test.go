package errors

import (
	stderrors "errors"
	"fmt"
	"testing"
)

func TestNewAndError(t *testing.T) {
	err := New(ErrCodeInvalidFormat, "invalid format: %s", "gif")
	want := "INVALID_FORMAT: invalid format: gif"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := fmt.Errorf("disk full")
	err := Wrap(ErrCodeRenderFailed, cause, "render %s", "svg")

	if !stderrors.Is(err, cause) {
		t.Error("wrapped error should match its cause via errors.Is")
	}
	if err.Unwrap() != cause {
		t.Error("Unwrap should return the cause")
	}
}

func TestIsMatchesCode(t *testing.T) {
	err := New(ErrCodeFileNotFound, "no such diagram")

	if !Is(err, ErrCodeFileNotFound) {
		t.Error("Is should match the error's own code")
	}
	if Is(err, ErrCodeInternal) {
		t.Error("Is should not match a different code")
	}
	if Is(fmt.Errorf("plain"), ErrCodeInternal) {
		t.Error("Is should not match plain errors")
	}

	// The code survives wrapping with %w.
	wrapped := fmt.Errorf("outer: %w", err)
	if !Is(wrapped, ErrCodeFileNotFound) {
		t.Error("Is should unwrap to find the code")
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(New(ErrCodeNotFound, "x")); got != ErrCodeNotFound {
		t.Errorf("GetCode = %s, want %s", got, ErrCodeNotFound)
	}
	if got := GetCode(fmt.Errorf("plain")); got != "" {
		t.Errorf("GetCode on plain error = %s, want empty", got)
	}
}

func TestUserMessage(t *testing.T) {
	err := New(ErrCodeInvalidInput, "source text is empty")
	if got := UserMessage(err); got != "source text is empty" {
		t.Errorf("UserMessage = %q", got)
	}
	if got := UserMessage(fmt.Errorf("plain")); got != "plain" {
		t.Errorf("UserMessage on plain error = %q", got)
	}
}
