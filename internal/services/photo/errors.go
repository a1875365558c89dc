package photo

import "errors"

// ValidationError carries a human-readable rejection reason detected
// before any storage or database call. The message is surfaced to the
// caller verbatim.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func newValidationError(message string) error {
	return &ValidationError{Message: message}
}

// IsValidationError reports whether err is a local validation failure.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// ErrPhotoNotFound is returned when an operation references a photo
// that does not exist.
var ErrPhotoNotFound = errors.New("photo not found")
