package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput signals an empty or degenerate training corpus or an oversized request.
	ErrInvalidInput = errors.New("invalid input")
	// ErrLengthMismatch signals resume and job sequences of different lengths.
	ErrLengthMismatch = errors.New("length mismatch")
	// ErrEmptyContent signals text that normalizes to nothing.
	ErrEmptyContent = errors.New("empty content")
	// ErrShapeMismatch signals vectors of incompatible dimensions.
	ErrShapeMismatch = errors.New("vector shape mismatch")
	// ErrModelNotReady signals that no model has been fitted or loaded yet.
	ErrModelNotReady = errors.New("model not ready")
)

// LengthMismatchError wraps ErrLengthMismatch with the offending sizes.
type LengthMismatchError struct {
	Resumes int
	Jobs    int
}

func (e *LengthMismatchError) Error() string {
	return fmt.Sprintf("%s: %d resumes vs %d job descriptions", ErrLengthMismatch.Error(), e.Resumes, e.Jobs)
}

func (e *LengthMismatchError) Unwrap() error { return ErrLengthMismatch }

// NewLengthMismatch creates a length mismatch error.
func NewLengthMismatch(resumes, jobs int) error {
	return &LengthMismatchError{Resumes: resumes, Jobs: jobs}
}
