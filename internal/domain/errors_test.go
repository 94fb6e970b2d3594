package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name     string
		appErr   *AppError
		expected string
	}{
		{
			name:     "error without wrapped error",
			appErr:   ErrIdentityNotFound,
			expected: "Identity not found",
		},
		{
			name: "error with wrapped error",
			appErr: &AppError{
				Code:    "TEST_ERROR",
				Message: "Test message",
				Err:     errors.New("underlying error"),
			},
			expected: "Test message: underlying error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.appErr.Error(); got != tt.expected {
				t.Errorf("Error() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	underlying := errors.New("db down")
	wrapped := ErrInternal.WithError(underlying)

	if !errors.Is(wrapped, underlying) {
		t.Error("wrapped error should match underlying via errors.Is")
	}
}

func TestAppError_WithError(t *testing.T) {
	underlying := errors.New("decode failed")
	wrapped := ErrGalleryCorrupt.WithError(underlying)

	if wrapped == ErrGalleryCorrupt {
		t.Error("WithError must return a copy, not mutate the sentinel")
	}
	if ErrGalleryCorrupt.Err != nil {
		t.Error("sentinel must stay unwrapped")
	}
	if wrapped.Code != ErrGalleryCorrupt.Code {
		t.Errorf("Code = %v, want %v", wrapped.Code, ErrGalleryCorrupt.Code)
	}
}

func TestAppError_Is(t *testing.T) {
	wrapped := ErrDimensionMismatch.WithError(errors.New("got 64, want 128"))

	if !errors.Is(wrapped, ErrDimensionMismatch) {
		t.Error("WithError copy should match its sentinel via errors.Is")
	}
	if errors.Is(wrapped, ErrGalleryCorrupt) {
		t.Error("should not match an unrelated sentinel")
	}

	deep := fmt.Errorf("load gallery: %w", wrapped)
	if !errors.Is(deep, ErrDimensionMismatch) {
		t.Error("sentinel should be found through an outer wrap")
	}
}
