package domain

import (
	"fmt"
)

type AppError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is matches on Code so errors.Is sees through WithError copies.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	return ok && t.Code == e.Code
}

func (e *AppError) WithError(err error) *AppError {
	return &AppError{
		Code:    e.Code,
		Message: e.Message,
		Err:     err,
	}
}

// Pre-defined errors
var (
	ErrInternal = &AppError{
		Code:    "INTERNAL_ERROR",
		Message: "An unexpected error occurred",
	}

	ErrDuplicateIdentity = &AppError{
		Code:    "DUPLICATE_IDENTITY",
		Message: "Identity already enrolled with this id",
	}

	ErrIdentityNotFound = &AppError{
		Code:    "IDENTITY_NOT_FOUND",
		Message: "Identity not found",
	}

	ErrGalleryCorrupt = &AppError{
		Code:    "GALLERY_CORRUPT",
		Message: "Gallery blob is present but unreadable",
	}

	ErrDimensionMismatch = &AppError{
		Code:    "DIMENSION_MISMATCH",
		Message: "Embedding dimensionality does not match the gallery contract",
	}

	ErrInvalidImage = &AppError{
		Code:    "INVALID_IMAGE",
		Message: "Invalid image format or corrupted file",
	}

	ErrNoFaceDetected = &AppError{
		Code:    "NO_FACE_DETECTED",
		Message: "No face detected in the image",
	}

	ErrEmbeddingFailed = &AppError{
		Code:    "EMBEDDING_FAILED",
		Message: "Embedding extraction failed for this face",
	}

	ErrLivenessFailed = &AppError{
		Code:    "LIVENESS_FAILED",
		Message: "Liveness check failed, possible spoofing attempt",
	}

	ErrInvalidThreshold = &AppError{
		Code:    "INVALID_THRESHOLD",
		Message: "Confidence threshold must be between 0 and 100",
	}

	ErrInvalidSampleCount = &AppError{
		Code:    "INVALID_SAMPLE_COUNT",
		Message: "Enrollment requires the configured number of face samples",
	}
)
