package guardkit

import (
	"errors"
	"fmt"
)

// Sentinel errors for GuardKit operations.
var (
	// ErrGuardNotFound is returned when a guard is not registered with the manager.
	ErrGuardNotFound = errors.New("guardkit: guard not found")

	// ErrPermissionNotFound is returned when a permission does not exist in a guard.
	ErrPermissionNotFound = errors.New("guardkit: permission not found")

	// ErrRoleNotFound is returned when a role does not exist in a guard.
	ErrRoleNotFound = errors.New("guardkit: role not found")

	// ErrGuardMismatch is returned when a permission tagged with one guard
	// is added to a role tagged with another.
	ErrGuardMismatch = errors.New("guardkit: guard mismatch")
)

// Error wraps a sentinel error with the identifier that caused it.
type Error struct {
	Err     error  // Underlying sentinel error
	Message string // Additional context
	Name    string // Permission/role/guard name involved
	Guard   string // Guard name involved
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Message)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error for errors.Is/As.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is checks if the error matches a target error.
func (e *Error) Is(target error) bool {
	return errors.Is(e.Err, target)
}

// NewError creates a new Error with context.
func NewError(err error, message string) *Error {
	return &Error{
		Err:     err,
		Message: message,
	}
}

// WithName adds the missing identifier to the error.
func (e *Error) WithName(name string) *Error {
	e.Name = name
	return e
}

// WithGuard adds guard information to the error.
func (e *Error) WithGuard(guard string) *Error {
	e.Guard = guard
	return e
}

// IsGuardNotFound checks if an error is a guard lookup miss.
func IsGuardNotFound(err error) bool {
	return errors.Is(err, ErrGuardNotFound)
}

// IsPermissionNotFound checks if an error is a permission lookup miss.
func IsPermissionNotFound(err error) bool {
	return errors.Is(err, ErrPermissionNotFound)
}

// IsRoleNotFound checks if an error is a role lookup miss.
func IsRoleNotFound(err error) bool {
	return errors.Is(err, ErrRoleNotFound)
}

// IsGuardMismatch checks if an error is a cross-guard rejection.
func IsGuardMismatch(err error) bool {
	return errors.Is(err, ErrGuardMismatch)
}
