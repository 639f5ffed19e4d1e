package guardkit

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestErrorMessage validates message formatting with and without context.
func TestErrorMessage(t *testing.T) {
	bare := NewError(ErrGuardNotFound, "")
	assert.Equal(t, "guardkit: guard not found", bare.Error())

	detailed := NewError(ErrPermissionNotFound, "no permission named edit-users")
	assert.Equal(t, "guardkit: permission not found: no permission named edit-users", detailed.Error())
}

// TestErrorUnwrap validates errors.Is/As through the wrapper.
func TestErrorUnwrap(t *testing.T) {
	err := NewError(ErrRoleNotFound, "no role named admin").
		WithName("admin").
		WithGuard("web")

	assert.True(t, errors.Is(err, ErrRoleNotFound))
	assert.False(t, errors.Is(err, ErrPermissionNotFound))

	var gkErr *Error
	require.True(t, errors.As(err, &gkErr))
	assert.Equal(t, "admin", gkErr.Name)
	assert.Equal(t, "web", gkErr.Guard)
}

// TestErrorWrappedFurther validates classification survives extra wrapping.
func TestErrorWrappedFurther(t *testing.T) {
	inner := NewError(ErrGuardMismatch, "permission belongs to another guard")
	outer := fmt.Errorf("adding permission: %w", inner)

	assert.True(t, IsGuardMismatch(outer))

	var gkErr *Error
	require.True(t, errors.As(outer, &gkErr))
	assert.Equal(t, ErrGuardMismatch, gkErr.Err)
}

// TestIsPredicates validates the classification helpers.
func TestIsPredicates(t *testing.T) {
	assert.True(t, IsGuardNotFound(NewError(ErrGuardNotFound, "")))
	assert.True(t, IsPermissionNotFound(NewError(ErrPermissionNotFound, "")))
	assert.True(t, IsRoleNotFound(NewError(ErrRoleNotFound, "")))
	assert.True(t, IsGuardMismatch(NewError(ErrGuardMismatch, "")))

	assert.False(t, IsGuardNotFound(nil))
	assert.False(t, IsGuardNotFound(errors.New("unrelated")))
	assert.False(t, IsPermissionNotFound(NewError(ErrRoleNotFound, "")))
}
