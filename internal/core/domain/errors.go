package domain

import "errors"

var (
	// ErrUsernameTaken rejects a registration for an already-used username.
	ErrUsernameTaken = errors.New("the username is already in use")
	// ErrEmailTaken rejects a write that would duplicate a non-empty email.
	ErrEmailTaken = errors.New("the email is already in use")
	// ErrUserNotFound signals that an edit/delete target does not exist.
	ErrUserNotFound = errors.New("user not found")
	// ErrBadCredentials covers both unknown usernames and wrong passwords so
	// account existence never leaks through the login endpoint.
	ErrBadCredentials = errors.New("invalid username or password")
	// ErrSelfDelete rejects an identity deleting its own account.
	ErrSelfDelete = errors.New("you are not allowed to delete your own user account")
	// ErrInvalidArgument signals an under-specified request.
	ErrInvalidArgument = errors.New("both id and username fields are empty")
	// ErrTooManyAttempts throttles repeated failed logins for one username.
	ErrTooManyAttempts = errors.New("too many failed login attempts")

	// ErrInvalidToken covers malformed tokens and signature mismatches.
	ErrInvalidToken = errors.New("invalid or expired token")
	// ErrForbidden signals an authenticated identity lacking the required role.
	ErrForbidden = errors.New("you do not have permission to access this resource")

	// ErrGameNotFound signals an unknown catalog entry.
	ErrGameNotFound = errors.New("video game not found")
)

// ValidationError carries per-field validation failures so the error envelope
// can surface them as a detail list.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "Validation error"
}
