package journal

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound matches every *NotFoundError via errors.Is.
	ErrNotFound = errors.New("not found")

	ErrDuplicateID       = errors.New("trade id already exists")
	ErrInvalidProfile    = errors.New("invalid user profile")
	ErrInvalidSettings   = errors.New("invalid settings")
	ErrUnsupportedImport = errors.New("unsupported export version")
)

// NotFoundError reports a missing trade, draft or template.
type NotFoundError struct {
	Kind string
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.ID)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }
