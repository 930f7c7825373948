package core

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorFormatting(t *testing.T) {
	e := NewError(ErrModel, "boom")
	if e.Error() != "model_error: boom" {
		t.Errorf("Error() = %q", e.Error())
	}
	e.Code = "overloaded_error"
	if e.Error() != "model_error: boom (code: overloaded_error)" {
		t.Errorf("Error() = %q", e.Error())
	}
}

func TestWrapErrorUnwraps(t *testing.T) {
	cause := errors.New("tcp reset")
	wrapped := fmt.Errorf("calling model: %w", WrapError(ErrModel, cause))
	if !errors.Is(wrapped, cause) {
		t.Error("cause lost through wrapping")
	}
	if TypeOf(wrapped) != ErrModel {
		t.Errorf("TypeOf = %q", TypeOf(wrapped))
	}
}

func TestTypeOfForeignError(t *testing.T) {
	if TypeOf(errors.New("plain")) != "" {
		t.Error("foreign errors must have no type")
	}
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		t    ErrorType
		want bool
	}{
		{ErrRateLimit, true},
		{ErrOverloaded, true},
		{ErrSynthesis, true},
		{ErrModel, false},
		{ErrInvalidRequest, false},
		{ErrMalformedCommand, false},
	}
	for _, tt := range tests {
		if got := NewError(tt.t, "x").IsRetryable(); got != tt.want {
			t.Errorf("IsRetryable(%s) = %v, want %v", tt.t, got, tt.want)
		}
	}
}
