package input

import (
	"errors"
	"fmt"
)

// Sentinel errors for input resolution.
var (
	// ErrSourceConflict indicates both --from-file and inline text were given.
	ErrSourceConflict = errors.New("input: --from-file and inline text are mutually exclusive")

	// ErrNoContent indicates neither text nor image was provided.
	ErrNoContent = errors.New("input: no content to send")

	// ErrUnsupportedImage indicates an image file extension outside the set
	// the Bot API accepts for sendPhoto.
	ErrUnsupportedImage = errors.New("input: unsupported image format")

	// ErrImageTooLarge indicates an image above the Bot API upload limit.
	ErrImageTooLarge = errors.New("input: image too large")
)

// ReadError indicates a content or image file could not be read.
type ReadError struct {
	Path string
	Err  error
}

// Error implements the error interface.
func (e *ReadError) Error() string {
	return fmt.Sprintf("input: read %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying filesystem error.
func (e *ReadError) Unwrap() error { return e.Err }
