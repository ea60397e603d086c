package recorder

import "errors"

var (
	// ErrInvalidTransition is returned when an operation is not allowed in the current state
	ErrInvalidTransition = errors.New("invalid transition")
	// ErrSessionLocked is returned when url or name are edited while recording
	ErrSessionLocked = errors.New("session is locked while recording")
)

// ValidationError reports missing user input. Message is user-facing.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// IsValidation reports whether err is or wraps a ValidationError
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
