package preferenceroom

import (
	"errors"
	"fmt"
)

// ErrNotInitialized is returned when a component singleton is accessed
// before its init function was called.
var ErrNotInitialized = errors.New("preferenceroom: component is not initialized")

// NotInitializedError represents an access to a component singleton
// that was never initialized.
type NotInitializedError struct {
	component string
}

// Error returns the error string.
func (e *NotInitializedError) Error() string {
	if e.component == "" {
		return ErrNotInitialized.Error()
	}
	return fmt.Sprintf("preferenceroom: component %s is not initialized", e.component)
}

// Is reports whether the target error matches NotInitializedError.
// This allows errors.Is(err, ErrNotInitialized) to return true.
func (e *NotInitializedError) Is(err error) bool {
	return err == ErrNotInitialized
}

// Component returns the name of the component, if known.
func (e *NotInitializedError) Component() string {
	return e.component
}

// NewNotInitializedError returns a new NotInitializedError for the given component.
func NewNotInitializedError(component string) *NotInitializedError {
	return &NotInitializedError{component: component}
}

// IsNotInitialized returns true if the error is a NotInitializedError.
func IsNotInitialized(err error) bool {
	if err == nil {
		return false
	}
	var e *NotInitializedError
	return errors.As(err, &e) || errors.Is(err, ErrNotInitialized)
}
