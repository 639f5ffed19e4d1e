// Package guardkit provides a role-based access-control modeling library
// built around permissions, roles and named guards.
//
// GuardKit is designed to be embedded inside a host application that
// supplies its own subject representation and persistence. The library
// performs no I/O of its own: all storage, caching and eventing is
// delegated to optional injected collaborators.
//
// # Core Concepts
//
// Guard: a named partition holding the universe of permissions and roles
// valid in one context. "web" and "api" guards can each define a
// permission named "access" and they stay fully independent.
//
// Permission: an atomic named capability scoped to a guard. Two
// permissions are equal iff their (id, name, guard) triples match.
//
// Role: a named bundle of permissions scoped to a guard, assignable to
// subjects. A role owns copies of its permissions, never references
// shared with a guard's registry.
//
// Subject: the external entity whose access is being checked. Hosts
// implement the Subject interface, typically by embedding Grants:
//
//	type User struct {
//	    ID string
//	    guardkit.Grants
//	}
//
//	func (u *User) SubjectID() string { return u.ID }
//
// # Basic Usage
//
//	// 1. Create the manager (the default guard is created eagerly)
//	m := guardkit.NewManager(guardkit.Config{DefaultGuard: "web"}, guardkit.Deps{})
//
//	// 2. Define permissions and roles inside guards
//	edit, _ := m.CreatePermission(ctx, "edit-users", "")
//	admin, _ := m.CreateRole(ctx, "admin", "")
//	_ = admin.AddPermission(*edit)
//
//	// 3. Grant to subjects
//	user := &User{ID: "u1"}
//	user.AssignRole(*admin, "")
//	user.GivePermissionTo(guardkit.PermissionName("export-reports"), "")
//
//	// 4. Check membership
//	m.CheckPermission(user, guardkit.PermissionName("edit-users"), "")   // true, via role
//	m.CheckPermission(user, guardkit.PermissionName("edit-users"), "api") // false, other guard
//
// # Custom Checks
//
// A check function registered under a key replaces default resolution
// for any CheckPermission/CheckRole call addressed to that key:
//
//	m.RegisterPermissionCheck("api", func(s guardkit.Subject, name, guard string) bool {
//	    return name == "ping"
//	})
//
// # Collaborators
//
// Repositories (bun/PostgreSQL implementations included), a cache
// service (in-memory and Redis implementations included) and an event
// dispatcher can be injected through Deps. Absent collaborators turn the
// corresponding manager calls into no-ops; their failures propagate to
// the caller unwrapped. Lookup misses on Get* accessors are the only
// errors raised by the core itself: ErrGuardNotFound,
// ErrPermissionNotFound and ErrRoleNotFound, each carrying the missing
// name.
//
// # Concurrency
//
// Membership queries and mutations are pure in-memory computations. The
// manager's guard and check registries are lock-protected, but
// individual Guard/Role/subject instances assume single-writer access;
// concurrent hosts must serialize mutation externally.
package guardkit
