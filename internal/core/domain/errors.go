package domain

import "errors"

var (
	ErrUserExists         = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user does not exist")
	ErrInvalidCredentials = errors.New("incorrect password")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrResetAlreadySent   = errors.New("reset link already sent, retry after it expires")
	ErrPasswordMismatch   = errors.New("password and confirm_password do not match")
	ErrInvalidPayload     = errors.New("invalid payload")

	ErrPostNotFound    = errors.New("blog not found")
	ErrCommentNotFound = errors.New("comment not found")
	ErrSlugTaken       = errors.New("slug already exists")

	ErrImageNotFound   = errors.New("image not found")
	ErrInvalidFileType = errors.New("invalid file type")
	ErrMissingFile     = errors.New("file is required")
)

// ValidationError is a field-level input error.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
