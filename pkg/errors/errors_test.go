package errors

import (
	stderrors "errors"
	"fmt"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidStatus, "invalid status: %s", "done")

	if err.Code != ErrCodeInvalidStatus {
		t.Errorf("Code = %q", err.Code)
	}
	if err.Message != "invalid status: done" {
		t.Errorf("Message = %q", err.Message)
	}
	if got := err.Error(); got != "INVALID_STATUS: invalid status: done" {
		t.Errorf("Error() = %q", got)
	}
}

func TestWrap(t *testing.T) {
	cause := stderrors.New("disk full")
	err := Wrap(ErrCodeInternal, cause, "store graph %s", "roadmap")

	if !stderrors.Is(err, cause) {
		t.Error("wrapped cause lost from the chain")
	}
	if got := err.Error(); got != "INTERNAL_ERROR: store graph roadmap: disk full" {
		t.Errorf("Error() = %q", got)
	}
}

func TestIs(t *testing.T) {
	err := New(ErrCodeGraphNotFound, "graph missing")

	if !Is(err, ErrCodeGraphNotFound) {
		t.Error("Is should match the code")
	}
	if Is(err, ErrCodeShareNotFound) {
		t.Error("Is matched the wrong code")
	}
	if Is(stderrors.New("plain"), ErrCodeInternal) {
		t.Error("Is matched a plain error")
	}

	// Codes survive fmt wrapping.
	wrapped := fmt.Errorf("context: %w", err)
	if !Is(wrapped, ErrCodeGraphNotFound) {
		t.Error("Is should unwrap fmt-wrapped errors")
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(New(ErrCodeNotFound, "x")); got != ErrCodeNotFound {
		t.Errorf("GetCode = %q", got)
	}
	if got := GetCode(stderrors.New("plain")); got != "" {
		t.Errorf("GetCode(plain) = %q, want empty", got)
	}
}

func TestUserMessage(t *testing.T) {
	err := Wrap(ErrCodeInternal, stderrors.New("dial tcp: refused"), "load graph")
	if got := UserMessage(err); got != "load graph" {
		t.Errorf("UserMessage = %q, want message without code and cause", got)
	}
	if got := UserMessage(stderrors.New("plain")); got != "plain" {
		t.Errorf("UserMessage(plain) = %q", got)
	}
}
