package guardkit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestGuardAddPermissionIdempotent validates equality-based idempotence.
func TestGuardAddPermissionIdempotent(t *testing.T) {
	g := NewGuard("web")
	p := NewPermission("edit-users", "web")

	g.AddPermission(&p)
	g.AddPermission(&p)
	assert.Len(t, g.Permissions(), 1)
	assert.True(t, g.HasPermission(&p))
}

// TestGuardGetPermission validates first-match-by-name lookup with a
// found/absent sentinel instead of an error.
func TestGuardGetPermission(t *testing.T) {
	g := NewGuard("web")
	p := NewPermission("edit-users", "web")
	g.AddPermission(&p)

	found, ok := g.GetPermission("edit-users")
	require.True(t, ok)
	assert.True(t, p.Equals(*found))

	_, ok = g.GetPermission("nonexistent")
	assert.False(t, ok)
}

// TestGuardGetPermissionFirstMatch validates that duplicate names are
// tolerated and the first registered entity wins the name lookup.
func TestGuardGetPermissionFirstMatch(t *testing.T) {
	g := NewGuard("web")
	first := NewPermission("edit-users", "web")
	second := NewPermission("edit-users", "web")

	g.AddPermission(&first)
	g.AddPermission(&second)
	assert.Len(t, g.Permissions(), 2)

	found, ok := g.GetPermission("edit-users")
	require.True(t, ok)
	assert.Equal(t, first.ID, found.ID)
}

// TestGuardRemovePermission validates removal and absent-removal no-op.
func TestGuardRemovePermission(t *testing.T) {
	g := NewGuard("web")
	p := NewPermission("edit-users", "web")
	g.AddPermission(&p)

	g.RemovePermission(&p)
	assert.Empty(t, g.Permissions())
	assert.False(t, g.HasPermission(&p))

	g.RemovePermission(&p)
	assert.Empty(t, g.Permissions())
}

// TestGuardRoles validates the role-side operations mirror permissions.
func TestGuardRoles(t *testing.T) {
	g := NewGuard("web")
	admin := NewRole("admin", "web")

	g.AddRole(&admin)
	g.AddRole(&admin)
	assert.Len(t, g.Roles(), 1)
	assert.True(t, g.HasRole(&admin))

	found, ok := g.GetRole("admin")
	require.True(t, ok)
	assert.True(t, admin.Equals(*found))

	_, ok = g.GetRole("nonexistent")
	assert.False(t, ok)

	g.RemoveRole(&admin)
	assert.Empty(t, g.Roles())
}

// TestGuardRegisteredRoleIsShared validates that mutating a role fetched
// from the guard is visible through subsequent lookups.
func TestGuardRegisteredRoleIsShared(t *testing.T) {
	g := NewGuard("web")
	admin := NewRole("admin", "web")
	g.AddRole(&admin)

	fetched, ok := g.GetRole("admin")
	require.True(t, ok)
	require.NoError(t, fetched.AddPermission(NewPermission("edit-users", "web")))

	again, ok := g.GetRole("admin")
	require.True(t, ok)
	assert.Len(t, again.Permissions, 1)
}
