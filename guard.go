package guardkit

// Guard is a named partition holding the universe of permissions and
// roles valid in one context (e.g. "web", "api"). It is the canonical
// registry for that context: the manager creates entities into it and
// resolves lookups through it.
//
// A Guard is not safe for concurrent mutation; callers embedding it in
// a concurrent host must serialize access externally.
type Guard struct {
	Name string

	permissions []*Permission
	roles       []*Role
}

// NewGuard creates an empty guard with the given name.
func NewGuard(name string) *Guard {
	return &Guard{Name: name}
}

// AddPermission registers a permission with the guard. It is a no-op
// when an equal permission is already registered.
func (g *Guard) AddPermission(p *Permission) {
	if p == nil || g.HasPermission(p) {
		return
	}
	g.permissions = append(g.permissions, p)
}

// RemovePermission removes all permissions equal to p from the guard.
func (g *Guard) RemovePermission(p *Permission) {
	if p == nil {
		return
	}
	kept := g.permissions[:0]
	for _, existing := range g.permissions {
		if !existing.Equals(*p) {
			kept = append(kept, existing)
		}
	}
	g.permissions = kept
}

// HasPermission reports whether an equal permission is registered.
func (g *Guard) HasPermission(p *Permission) bool {
	if p == nil {
		return false
	}
	for _, existing := range g.permissions {
		if existing.Equals(*p) {
			return true
		}
	}
	return false
}

// GetPermission returns the first registered permission with the given
// name, or false when none exists. Lookup is by name only.
func (g *Guard) GetPermission(name string) (*Permission, bool) {
	for _, p := range g.permissions {
		if p.Name == name {
			return p, true
		}
	}
	return nil, false
}

// Permissions returns the registered permissions.
func (g *Guard) Permissions() []*Permission {
	out := make([]*Permission, len(g.permissions))
	copy(out, g.permissions)
	return out
}

// AddRole registers a role with the guard. It is a no-op when an equal
// role is already registered.
func (g *Guard) AddRole(r *Role) {
	if r == nil || g.HasRole(r) {
		return
	}
	g.roles = append(g.roles, r)
}

// RemoveRole removes all roles equal to r from the guard.
func (g *Guard) RemoveRole(r *Role) {
	if r == nil {
		return
	}
	kept := g.roles[:0]
	for _, existing := range g.roles {
		if !existing.Equals(*r) {
			kept = append(kept, existing)
		}
	}
	g.roles = kept
}

// HasRole reports whether an equal role is registered.
func (g *Guard) HasRole(r *Role) bool {
	if r == nil {
		return false
	}
	for _, existing := range g.roles {
		if existing.Equals(*r) {
			return true
		}
	}
	return false
}

// GetRole returns the first registered role with the given name, or
// false when none exists. Lookup is by name only.
func (g *Guard) GetRole(name string) (*Role, bool) {
	for _, r := range g.roles {
		if r.Name == name {
			return r, true
		}
	}
	return nil, false
}

// Roles returns the registered roles.
func (g *Guard) Roles() []*Role {
	out := make([]*Role, len(g.roles))
	copy(out, g.roles)
	return out
}

// guardJSON is the serialized shape of a guard.
type guardJSON struct {
	Name        string       `json:"name"`
	Permissions []Permission `json:"permissions"`
	Roles       []Role       `json:"roles"`
}

func (g *Guard) toJSON() guardJSON {
	out := guardJSON{
		Name:        g.Name,
		Permissions: make([]Permission, 0, len(g.permissions)),
		Roles:       make([]Role, 0, len(g.roles)),
	}
	for _, p := range g.permissions {
		out.Permissions = append(out.Permissions, *p)
	}
	for _, r := range g.roles {
		out.Roles = append(out.Roles, *r)
	}
	return out
}
