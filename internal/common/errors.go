package common

import (
	"errors"
	"fmt"
)

// AppError represents application-specific errors
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Archive-level errors reject the whole request; per-document failures never
// surface through these.
var (
	ErrCorruptArchive   = errors.New("archive is not a valid zip file")
	ErrNoResumeFiles    = errors.New("archive contains no pdf or docx files")
	ErrArchiveTooLarge  = errors.New("archive exceeds the size limit")
	ErrUnsupportedMedia = errors.New("upload must be a zip file")
	ErrUnavailable      = errors.New("model extractor unavailable")
	ErrInternal         = errors.New("internal error")
	ErrDatabase         = errors.New("database error")
)

// Error constructors
func NewAppError(code, message string, cause error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}
