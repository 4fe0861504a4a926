package gen

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationError(t *testing.T) {
	t.Run("Error message with all fields", func(t *testing.T) {
		cause := errors.New("underlying error")
		err := NewValidationError("Manager", "sync", "int", "returned 'int'")
		err.Cause = cause

		assert.Contains(t, err.Error(), "preferenceroom: validation error")
		assert.Contains(t, err.Error(), "component Manager")
		assert.Contains(t, err.Error(), "member sync")
		assert.Contains(t, err.Error(), "returned 'int'")
		assert.Contains(t, err.Error(), "underlying error")
	})

	t.Run("Error message with component only", func(t *testing.T) {
		err := &ValidationError{Component: "Manager"}
		assert.Contains(t, err.Error(), "component Manager")
		assert.NotContains(t, err.Error(), "member")
	})

	t.Run("Unwrap returns cause", func(t *testing.T) {
		cause := errors.New("root cause")
		err := NewValidationError("Manager", "", nil, "")
		err.Cause = cause

		assert.Equal(t, cause, err.Unwrap())
		assert.True(t, errors.Is(err, cause))
	})

	t.Run("Is matches ErrValidationFailed", func(t *testing.T) {
		err := NewValidationError("Manager", "", nil, "")
		assert.True(t, err.Is(ErrValidationFailed))
		assert.False(t, err.Is(ErrLookupFailed))
	})

	t.Run("IsValidationError helper", func(t *testing.T) {
		err := NewValidationError("Manager", "sync", nil, "test")
		assert.True(t, IsValidationError(err))
		assert.True(t, IsValidationError(fmt.Errorf("wrapped: %w", err)))
		assert.False(t, IsValidationError(errors.New("other")))
	})
}

func TestLookupError(t *testing.T) {
	t.Run("Error message", func(t *testing.T) {
		err := NewLookupError("Manager", "entity", "missing")
		assert.Equal(t, `preferenceroom: lookup error on component Manager: entity "missing" is not defined`, err.Error())
	})

	t.Run("Error message without component", func(t *testing.T) {
		err := NewLookupError("", "type", PlatformContext)
		assert.Equal(t, `preferenceroom: lookup error: type "android.content.Context" is not defined`, err.Error())
	})

	t.Run("Is matches ErrLookupFailed", func(t *testing.T) {
		err := NewLookupError("Manager", "entity", "missing")
		assert.ErrorIs(t, err, ErrLookupFailed)
	})

	t.Run("IsLookupError helper", func(t *testing.T) {
		assert.True(t, IsLookupError(NewLookupError("Manager", "entity", "x")))
		assert.False(t, IsLookupError(NewValidationError("Manager", "", nil, "")))
	})
}

func TestCollisionError(t *testing.T) {
	t.Run("Error message", func(t *testing.T) {
		err := NewCollisionError("Manager", "instanceUserId", `key "user_id"`, `key "userId"`)
		assert.Equal(t,
			`preferenceroom: name collision on component Manager: identifier "instanceUserId" derived from both key "user_id" and key "userId"`,
			err.Error())
	})

	t.Run("Is matches ErrNameCollision", func(t *testing.T) {
		err := NewCollisionError("Manager", "User", "a", "b")
		assert.ErrorIs(t, err, ErrNameCollision)
	})

	t.Run("IsCollisionError helper", func(t *testing.T) {
		assert.True(t, IsCollisionError(NewCollisionError("Manager", "User", "a", "b")))
		assert.False(t, IsCollisionError(errors.New("other")))
	})
}

func TestConfigError(t *testing.T) {
	t.Run("Error message with value", func(t *testing.T) {
		err := NewConfigError("Dialect", "kotlin", "unknown dialect")

		assert.Contains(t, err.Error(), "preferenceroom: config error")
		assert.Contains(t, err.Error(), "Dialect")
		assert.Contains(t, err.Error(), "kotlin")
		assert.Contains(t, err.Error(), "unknown dialect")
	})

	t.Run("Error message without value", func(t *testing.T) {
		err := NewConfigError("Target", nil, "cannot be empty")

		assert.Contains(t, err.Error(), "Target")
		assert.Contains(t, err.Error(), "cannot be empty")
		assert.NotContains(t, err.Error(), "value:")
	})

	t.Run("Is matches ErrMissingConfig", func(t *testing.T) {
		err := NewConfigError("Target", nil, "missing")
		assert.True(t, err.Is(ErrMissingConfig))
	})

	t.Run("IsConfigError helper", func(t *testing.T) {
		err := NewConfigError("Target", nil, "missing")
		assert.True(t, IsConfigError(err))
		assert.False(t, IsConfigError(errors.New("other")))
	})
}

func TestGenerationError(t *testing.T) {
	t.Run("Error message with all fields", func(t *testing.T) {
		cause := errors.New("syntax error")
		err := NewGenerationError("format", "manager.go", "unformatted output", cause)

		assert.Contains(t, err.Error(), "preferenceroom: generation error")
		assert.Contains(t, err.Error(), "in phase format")
		assert.Contains(t, err.Error(), "(file: manager.go)")
		assert.Contains(t, err.Error(), "unformatted output")
		assert.Contains(t, err.Error(), "syntax error")
	})

	t.Run("Unwrap returns cause", func(t *testing.T) {
		cause := errors.New("disk full")
		err := NewGenerationError("write", "", "", cause)
		assert.ErrorIs(t, err, cause)
		assert.ErrorIs(t, err, ErrGenerationFailed)
	})

	t.Run("IsGenerationError helper", func(t *testing.T) {
		assert.True(t, IsGenerationError(NewGenerationError("render", "", "", nil)))
		assert.False(t, IsGenerationError(errors.New("other")))
	})
}
