package services

import "errors"

// Error kinds. Every error returned by a service matches exactly one of
// these through errors.Is, or is an unexpected infrastructure failure.
var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("conflict")
	ErrAuth       = errors.New("authentication error")
)

type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Kind }

func newError(kind error, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

var (
	ErrBlankDetails      = newError(ErrValidation, "details cannot be empty or null")
	ErrBlankUserDetails  = newError(ErrValidation, "user details cannot be empty or null")
	ErrNilWorkout        = newError(ErrValidation, "workout to add cannot be null")
	ErrNoExercises       = newError(ErrValidation, "workout needs valid exercises")
	ErrBlankExercise     = newError(ErrValidation, "exercise needs a name")
	ErrBlankGroupName    = newError(ErrValidation, "gym group must have a name")
	ErrPasswordTooLong   = newError(ErrValidation, "password cannot be longer than 72 bytes")
	ErrUserNotFound      = newError(ErrNotFound, "user not found")
	ErrWorkoutNotFound   = newError(ErrNotFound, "workout not found")
	ErrGymGroupNotFound  = newError(ErrNotFound, "gym group not found")
	ErrUsernameTaken     = newError(ErrConflict, "username is already taken")
	ErrEmailTaken        = newError(ErrConflict, "email is already in use")
	ErrUserExists        = newError(ErrConflict, "username or email is already registered")
	ErrGymGroupExists    = newError(ErrConflict, "gym group with that name exists")
	ErrIncorrectUsername = newError(ErrAuth, "incorrect username")
	ErrIncorrectPassword = newError(ErrAuth, "incorrect password")
)
