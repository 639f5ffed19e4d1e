package guardkit

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// DefaultGuardName is the guard used whenever an operation receives an
// empty guard argument.
const DefaultGuardName = "web"

// guardOrDefault resolves an empty guard argument to the default guard.
func guardOrDefault(guard string) string {
	if guard == "" {
		return DefaultGuardName
	}
	return guard
}

// Permission is an atomic named capability scoped to a guard.
// Two permissions are equal iff their (ID, Name, GuardName) triples match.
type Permission struct {
	bun.BaseModel `bun:"table:permissions,alias:p" json:"-"`

	ID          string    `bun:"id,pk,type:uuid" json:"id"`
	Name        string    `bun:"name,notnull" json:"name"`
	GuardName   string    `bun:"guard_name,notnull" json:"guardName"`
	Description string    `bun:"description" json:"description,omitempty"`
	CreatedAt   time.Time `bun:"created_at,notnull,default:current_timestamp" json:"createdAt"`
	UpdatedAt   time.Time `bun:"updated_at,notnull,default:current_timestamp" json:"updatedAt"`
}

// NewPermission creates a Permission with a generated id and timestamps.
// An empty guard defaults to DefaultGuardName. Names are not validated;
// callers are trusted to supply meaningful identifiers.
func NewPermission(name, guard string) Permission {
	now := time.Now().UTC()
	return Permission{
		ID:        uuid.NewString(),
		Name:      name,
		GuardName: guardOrDefault(guard),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Equals reports whether two permissions carry the same id, name and guard.
func (p Permission) Equals(other Permission) bool {
	return p.ID == other.ID && p.Name == other.Name && p.GuardName == other.GuardName
}

// JSON serializes the permission.
func (p Permission) JSON() ([]byte, error) {
	return json.Marshal(p)
}

// PermissionFromJSON deserializes a permission produced by JSON.
func PermissionFromJSON(data []byte) (Permission, error) {
	var p Permission
	if err := json.Unmarshal(data, &p); err != nil {
		return Permission{}, err
	}
	return p, nil
}

// Role is a named bundle of permissions scoped to a guard. A role owns
// its permission list: adding a permission stores a copy, never a
// reference shared with a guard's registry.
type Role struct {
	bun.BaseModel `bun:"table:roles,alias:r" json:"-"`

	ID          string       `bun:"id,pk,type:uuid" json:"id"`
	Name        string       `bun:"name,notnull" json:"name"`
	GuardName   string       `bun:"guard_name,notnull" json:"guardName"`
	Description string       `bun:"description" json:"description,omitempty"`
	Permissions []Permission `bun:"permissions,type:jsonb" json:"permissions"`
	CreatedAt   time.Time    `bun:"created_at,notnull,default:current_timestamp" json:"createdAt"`
	UpdatedAt   time.Time    `bun:"updated_at,notnull,default:current_timestamp" json:"updatedAt"`
}

// NewRole creates a Role with a generated id, an empty permission list
// and timestamps. An empty guard defaults to DefaultGuardName.
func NewRole(name, guard string) Role {
	now := time.Now().UTC()
	return Role{
		ID:        uuid.NewString(),
		Name:      name,
		GuardName: guardOrDefault(guard),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Equals reports whether two roles carry the same id, name and guard.
// The permission lists do not participate in equality.
func (r Role) Equals(other Role) bool {
	return r.ID == other.ID && r.Name == other.Name && r.GuardName == other.GuardName
}

// AddPermission adds a permission to the role. It is a no-op when an
// equal permission is already present. Permissions tagged with a guard
// other than the role's are rejected with ErrGuardMismatch.
func (r *Role) AddPermission(p Permission) error {
	if p.GuardName != r.GuardName {
		return NewError(ErrGuardMismatch, "permission belongs to another guard").
			WithName(p.Name).
			WithGuard(p.GuardName)
	}
	if r.HasPermission(p) {
		return nil
	}
	r.Permissions = append(r.Permissions, p)
	return nil
}

// RemovePermission removes all permissions equal to p from the role.
func (r *Role) RemovePermission(p Permission) {
	kept := r.Permissions[:0]
	for _, existing := range r.Permissions {
		if !existing.Equals(p) {
			kept = append(kept, existing)
		}
	}
	r.Permissions = kept
}

// HasPermission reports whether an equal permission is present.
func (r Role) HasPermission(p Permission) bool {
	for _, existing := range r.Permissions {
		if existing.Equals(p) {
			return true
		}
	}
	return false
}

// SyncPermissions replaces the role's entire permission list with the
// given set. There is no merge: permissions absent from perms are gone.
func (r *Role) SyncPermissions(perms ...Permission) error {
	for _, p := range perms {
		if p.GuardName != r.GuardName {
			return NewError(ErrGuardMismatch, "permission belongs to another guard").
				WithName(p.Name).
				WithGuard(p.GuardName)
		}
	}
	r.Permissions = nil
	for _, p := range perms {
		_ = r.AddPermission(p)
	}
	return nil
}

// hasPermissionNamed reports whether the role holds a permission with
// the given name under the given guard. This is the loose comparison
// used for subject checks: name + guard only, not full equality.
func (r Role) hasPermissionNamed(name, guard string) bool {
	for _, p := range r.Permissions {
		if p.Name == name && p.GuardName == guard {
			return true
		}
	}
	return false
}

// JSON serializes the role, including its nested permission list.
func (r Role) JSON() ([]byte, error) {
	return json.Marshal(r)
}

// RoleFromJSON deserializes a role produced by JSON.
func RoleFromJSON(data []byte) (Role, error) {
	var r Role
	if err := json.Unmarshal(data, &r); err != nil {
		return Role{}, err
	}
	return r, nil
}
