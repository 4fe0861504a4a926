package gen

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common failure cases.
var (
	// ErrValidationFailed indicates a component that cannot be generated.
	ErrValidationFailed = errors.New("preferenceroom: validation failed")
	// ErrLookupFailed indicates a reference that could not be resolved.
	ErrLookupFailed = errors.New("preferenceroom: lookup failed")
	// ErrNameCollision indicates two members deriving the same identifier.
	ErrNameCollision = errors.New("preferenceroom: name collision")
	// ErrMissingConfig indicates a configuration error.
	ErrMissingConfig = errors.New("preferenceroom: missing configuration")
	// ErrGenerationFailed indicates a rendering or writing failure.
	ErrGenerationFailed = errors.New("preferenceroom: code generation failed")
)

// ValidationError represents a component that violates a generation
// precondition, e.g. a declared method with a non-void return type.
type ValidationError struct {
	Component string // Component name
	Member    string // Key or method name (if applicable)
	Value     any
	Message   string
	Cause     error
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var b strings.Builder
	b.WriteString("preferenceroom: validation error")
	if e.Component != "" {
		b.WriteString(" on component ")
		b.WriteString(e.Component)
	}
	if e.Member != "" {
		b.WriteString(" member ")
		b.WriteString(e.Member)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *ValidationError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches the sentinel error for ValidationError.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidationFailed
}

// NewValidationError creates a new ValidationError.
func NewValidationError(component, member string, value any, message string) *ValidationError {
	return &ValidationError{
		Component: component,
		Member:    member,
		Value:     value,
		Message:   message,
	}
}

// LookupError represents a name that has no definition: an entity key
// missing from the registry, or a well-known type the resolver does not know.
type LookupError struct {
	Component string
	Kind      string // "entity" or "type"
	Name      string
}

// Error implements the error interface.
func (e *LookupError) Error() string {
	if e.Component != "" {
		return fmt.Sprintf("preferenceroom: lookup error on component %s: %s %q is not defined", e.Component, e.Kind, e.Name)
	}
	return fmt.Sprintf("preferenceroom: lookup error: %s %q is not defined", e.Kind, e.Name)
}

// Is reports whether the target matches the sentinel error for LookupError.
func (e *LookupError) Is(target error) bool {
	return target == ErrLookupFailed
}

// NewLookupError creates a new LookupError.
func NewLookupError(component, kind, name string) *LookupError {
	return &LookupError{
		Component: component,
		Kind:      kind,
		Name:      name,
	}
}

// CollisionError represents two distinct sources deriving the same
// identifier within one generated class.
type CollisionError struct {
	Component  string
	Identifier string
	First      string // Source of the first use, e.g. `key "user_id"`
	Second     string // Source of the conflicting use
}

// Error implements the error interface.
func (e *CollisionError) Error() string {
	return fmt.Sprintf("preferenceroom: name collision on component %s: identifier %q derived from both %s and %s",
		e.Component, e.Identifier, e.First, e.Second)
}

// Is reports whether the target matches the sentinel error for CollisionError.
func (e *CollisionError) Is(target error) bool {
	return target == ErrNameCollision
}

// NewCollisionError creates a new CollisionError.
func NewCollisionError(component, identifier, first, second string) *CollisionError {
	return &CollisionError{
		Component:  component,
		Identifier: identifier,
		First:      first,
		Second:     second,
	}
}

// ConfigError represents a configuration error.
type ConfigError struct {
	Option  string
	Value   any
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Value != nil {
		return fmt.Sprintf("preferenceroom: config error for %q (value: %v): %s", e.Option, e.Value, e.Message)
	}
	return fmt.Sprintf("preferenceroom: config error for %q: %s", e.Option, e.Message)
}

// Is reports whether the target matches the sentinel error for ConfigError.
func (e *ConfigError) Is(target error) bool {
	return target == ErrMissingConfig
}

// NewConfigError creates a new ConfigError.
func NewConfigError(option string, value any, message string) *ConfigError {
	return &ConfigError{
		Option:  option,
		Value:   value,
		Message: message,
	}
}

// GenerationError represents a rendering or writing error.
type GenerationError struct {
	Phase   string // "render", "format", "write"
	File    string
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *GenerationError) Error() string {
	var b strings.Builder
	b.WriteString("preferenceroom: generation error")
	if e.Phase != "" {
		b.WriteString(" in phase ")
		b.WriteString(e.Phase)
	}
	if e.File != "" {
		b.WriteString(" (file: ")
		b.WriteString(e.File)
		b.WriteString(")")
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *GenerationError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches the sentinel error for GenerationError.
func (e *GenerationError) Is(target error) bool {
	return target == ErrGenerationFailed
}

// NewGenerationError creates a new GenerationError.
func NewGenerationError(phase, file, message string, cause error) *GenerationError {
	return &GenerationError{
		Phase:   phase,
		File:    file,
		Message: message,
		Cause:   cause,
	}
}

// IsValidationError reports whether the error is a ValidationError.
func IsValidationError(err error) bool {
	var valErr *ValidationError
	return errors.As(err, &valErr)
}

// IsLookupError reports whether the error is a LookupError.
func IsLookupError(err error) bool {
	var lookupErr *LookupError
	return errors.As(err, &lookupErr)
}

// IsCollisionError reports whether the error is a CollisionError.
func IsCollisionError(err error) bool {
	var collErr *CollisionError
	return errors.As(err, &collErr)
}

// IsConfigError reports whether the error is a ConfigError.
func IsConfigError(err error) bool {
	var configErr *ConfigError
	return errors.As(err, &configErr)
}

// IsGenerationError reports whether the error is a GenerationError.
func IsGenerationError(err error) bool {
	var genErr *GenerationError
	return errors.As(err, &genErr)
}
