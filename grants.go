package guardkit

// PermissionRef identifies a permission either by name or by entity.
// String names and Permission values are accepted interchangeably
// throughout the subject and manager APIs.
type PermissionRef interface {
	// permissionRef returns the referenced entity and whether it is a
	// full entity (true) or a name-only reference (false).
	permissionRef() (Permission, bool)
}

// PermissionName references a permission by name.
type PermissionName string

func (n PermissionName) permissionRef() (Permission, bool) {
	return Permission{Name: string(n)}, false
}

func (p Permission) permissionRef() (Permission, bool) {
	return p, true
}

// RoleRef identifies a role either by name or by entity.
type RoleRef interface {
	roleRef() (Role, bool)
}

// RoleName references a role by name.
type RoleName string

func (n RoleName) roleRef() (Role, bool) {
	return Role{Name: string(n)}, false
}

func (r Role) roleRef() (Role, bool) {
	return r, true
}

// Subject is the external entity whose access is being checked: a user,
// a service principal, an API token. GuardKit never constructs
// subjects; hosts implement this interface, typically by embedding
// Grants into their own user type.
type Subject interface {
	SubjectID() string
	HasPermission(perm PermissionRef, guard string) bool
	HasRole(role RoleRef, guard string) bool
}

// PermissionSet stores a subject's direct permissions, keyed loosely by
// (name, guard). It is meant to be embedded (via Grants) into a host's
// subject type.
type PermissionSet struct {
	permissions []Permission
}

// GivePermissionTo grants a direct permission. Given a name, a fresh
// permission tagged with the guard is constructed; given an entity, a
// copy of it is stored. The grant is idempotent: a second grant for the
// same name and guard leaves the set unchanged.
func (s *PermissionSet) GivePermissionTo(perm PermissionRef, guard string) Permission {
	guard = guardOrDefault(guard)
	entity, isEntity := perm.permissionRef()
	if !isEntity {
		entity = NewPermission(entity.Name, guard)
	}
	if existing, ok := s.directPermission(entity.Name, entity.GuardName); ok {
		return existing
	}
	s.permissions = append(s.permissions, entity)
	return entity
}

// RevokePermissionTo removes all direct permissions matching the
// reference's name under the given guard.
func (s *PermissionSet) RevokePermissionTo(perm PermissionRef, guard string) {
	guard = guardOrDefault(guard)
	entity, _ := perm.permissionRef()
	kept := s.permissions[:0]
	for _, p := range s.permissions {
		if p.Name == entity.Name && p.GuardName == guard {
			continue
		}
		kept = append(kept, p)
	}
	s.permissions = kept
}

// SyncPermissions replaces ALL direct permissions for the given guard
// with the supplied set. Direct permissions under other guards are
// preserved untouched.
func (s *PermissionSet) SyncPermissions(guard string, perms ...PermissionRef) {
	guard = guardOrDefault(guard)
	kept := make([]Permission, 0, len(s.permissions))
	for _, p := range s.permissions {
		if p.GuardName != guard {
			kept = append(kept, p)
		}
	}
	s.permissions = kept
	for _, perm := range perms {
		s.GivePermissionTo(perm, guard)
	}
}

// DirectPermissions returns the direct permissions held under a guard.
func (s *PermissionSet) DirectPermissions(guard string) []Permission {
	guard = guardOrDefault(guard)
	var out []Permission
	for _, p := range s.permissions {
		if p.GuardName == guard {
			out = append(out, p)
		}
	}
	return out
}

func (s *PermissionSet) directPermission(name, guard string) (Permission, bool) {
	for _, p := range s.permissions {
		if p.Name == name && p.GuardName == guard {
			return p, true
		}
	}
	return Permission{}, false
}

// RoleSet stores a subject's assigned roles.
type RoleSet struct {
	roles []Role
}

// AssignRole assigns a role. Given a name, a fresh role tagged with the
// guard is constructed; given an entity, a copy of it (including its
// permission list) is stored. Assignment is idempotent by name + guard.
func (s *RoleSet) AssignRole(role RoleRef, guard string) Role {
	guard = guardOrDefault(guard)
	entity, isEntity := role.roleRef()
	if !isEntity {
		entity = NewRole(entity.Name, guard)
	}
	if existing, ok := s.assignedRole(entity.Name, entity.GuardName); ok {
		return existing
	}
	s.roles = append(s.roles, entity)
	return entity
}

// RemoveRole removes all assigned roles matching the reference's name
// under the given guard.
func (s *RoleSet) RemoveRole(role RoleRef, guard string) {
	guard = guardOrDefault(guard)
	entity, _ := role.roleRef()
	kept := s.roles[:0]
	for _, r := range s.roles {
		if r.Name == entity.Name && r.GuardName == guard {
			continue
		}
		kept = append(kept, r)
	}
	s.roles = kept
}

// SyncRoles replaces ALL assigned roles for the given guard with the
// supplied set. Roles under other guards are preserved untouched.
func (s *RoleSet) SyncRoles(guard string, roles ...RoleRef) {
	guard = guardOrDefault(guard)
	kept := make([]Role, 0, len(s.roles))
	for _, r := range s.roles {
		if r.GuardName != guard {
			kept = append(kept, r)
		}
	}
	s.roles = kept
	for _, role := range roles {
		s.AssignRole(role, guard)
	}
}

// HasRole reports whether a role with the reference's name is assigned
// under the given guard. Comparison is by name + guard, not full
// entity equality.
func (s *RoleSet) HasRole(role RoleRef, guard string) bool {
	guard = guardOrDefault(guard)
	entity, _ := role.roleRef()
	_, ok := s.assignedRole(entity.Name, guard)
	return ok
}

// HasAnyRole reports whether at least one of the given roles is
// assigned under the guard. Short-circuits on the first match.
func (s *RoleSet) HasAnyRole(guard string, roles ...RoleRef) bool {
	for _, role := range roles {
		if s.HasRole(role, guard) {
			return true
		}
	}
	return false
}

// HasAllRoles reports whether every one of the given roles is assigned
// under the guard. Short-circuits on the first miss.
func (s *RoleSet) HasAllRoles(guard string, roles ...RoleRef) bool {
	for _, role := range roles {
		if !s.HasRole(role, guard) {
			return false
		}
	}
	return true
}

// AssignedRoles returns the roles assigned under a guard.
func (s *RoleSet) AssignedRoles(guard string) []Role {
	guard = guardOrDefault(guard)
	var out []Role
	for _, r := range s.roles {
		if r.GuardName == guard {
			out = append(out, r)
		}
	}
	return out
}

func (s *RoleSet) assignedRole(name, guard string) (Role, bool) {
	for _, r := range s.roles {
		if r.Name == name && r.GuardName == guard {
			return r, true
		}
	}
	return Role{}, false
}

// Grants combines direct permissions and role membership into the full
// subject-side capability contract. Host subject types embed it:
//
//	type User struct {
//	    ID string
//	    guardkit.Grants
//	}
//
//	func (u *User) SubjectID() string { return u.ID }
type Grants struct {
	PermissionSet
	RoleSet
}

// HasPermission reports whether the subject holds the permission under
// the guard, either directly or through any assigned role. Roles are
// walked regardless of their own guard tag; what must match is the
// name + guard of the permissions they hold.
func (g *Grants) HasPermission(perm PermissionRef, guard string) bool {
	guard = guardOrDefault(guard)
	entity, _ := perm.permissionRef()
	if _, ok := g.directPermission(entity.Name, guard); ok {
		return true
	}
	for _, role := range g.roles {
		if role.hasPermissionNamed(entity.Name, guard) {
			return true
		}
	}
	return false
}

// HasAnyPermission reports whether the subject holds at least one of
// the given permissions under the guard.
func (g *Grants) HasAnyPermission(guard string, perms ...PermissionRef) bool {
	for _, perm := range perms {
		if g.HasPermission(perm, guard) {
			return true
		}
	}
	return false
}

// HasAllPermissions reports whether the subject holds every one of the
// given permissions under the guard.
func (g *Grants) HasAllPermissions(guard string, perms ...PermissionRef) bool {
	for _, perm := range perms {
		if !g.HasPermission(perm, guard) {
			return false
		}
	}
	return true
}

// AllPermissions returns the union of the subject's direct permissions
// and the permissions inherited from all assigned roles for the guard,
// deduplicated by name. Direct permissions are merged first and role
// permissions second, so a role permission with the same name replaces
// the direct one in the returned view.
func (g *Grants) AllPermissions(guard string) []Permission {
	guard = guardOrDefault(guard)

	byName := make(map[string]Permission)
	var order []string

	merge := func(p Permission) {
		if _, seen := byName[p.Name]; !seen {
			order = append(order, p.Name)
		}
		byName[p.Name] = p
	}

	for _, p := range g.permissions {
		if p.GuardName == guard {
			merge(p)
		}
	}
	for _, role := range g.roles {
		for _, p := range role.Permissions {
			if p.GuardName == guard {
				merge(p)
			}
		}
	}

	out := make([]Permission, 0, len(order))
	for _, name := range order {
		out = append(out, byName[name])
	}
	return out
}
