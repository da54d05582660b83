package domain

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailExists        = errors.New("user with this email already exists")
	ErrTooManyAttempts    = errors.New("too many login attempts")

	ErrTokenInvalid = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")

	ErrBusinessNotFound = errors.New("business not found")
	ErrBusinessExists   = errors.New("business configuration already exists")

	ErrExamNotFound    = errors.New("exam not found")
	ErrCourseNotFound  = errors.New("course not found")
	ErrSubjectNotFound = errors.New("subject not found")

	ErrBatchNotFound      = errors.New("batch not found")
	ErrBatchCodeExists    = errors.New("batch with this code name already exists")
	ErrBatchMemberExists  = errors.New("user is already in this batch")
	ErrBatchMemberMissing = errors.New("user is not in this batch")

	ErrAnnouncementNotFound = errors.New("announcement not found")

	ErrAssignmentExists  = errors.New("user is already assigned to this business")
	ErrAssignmentMissing = errors.New("user is not assigned to this business")
)

// ValidationError carries a caller-facing message for a malformed request
// field. It maps to HTTP 400 at the boundary.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// Invalid builds a ValidationError with the given message.
func Invalid(msg string) error {
	return &ValidationError{Msg: msg}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
