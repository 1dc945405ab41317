package services

import "errors"

var (
	ErrNotFound           = errors.New("item not found")
	ErrConflict           = errors.New("item already exists")
	ErrUsernameTaken      = errors.New("Username already exists")
	ErrEmailTaken         = errors.New("Email already registered")
	ErrInvalidCredentials = errors.New("Login failed")
	ErrUnauthenticated    = errors.New("The function must be called while authenticated.")
	ErrForbidden          = errors.New("not allowed")
	ErrChatNotConfigured  = errors.New("Stream API key or secret is not configured correctly on the server.")
)

// ValidationError is a client mistake that is reported back verbatim
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func invalid(message string) error {
	return &ValidationError{Message: message}
}

// MsgFillAllFields is returned when signup or login is missing a field
const MsgFillAllFields = "Please fill in all fields"
