package guardkit

import (
	"context"
	"encoding/json"
	"sort"
	"sync"
	"time"
)

// CheckFunc is a caller-registered override for membership resolution.
// It receives the subject, the permission/role name, and the guard key
// the check was addressed to.
type CheckFunc func(subject Subject, name, guard string) bool

// Deps bundles the optional injected collaborators. A nil collaborator
// turns the corresponding persistence/cache/event call into a no-op.
type Deps struct {
	Permissions PermissionRepository
	Roles       RoleRepository
	Guards      GuardRepository
	Cache       CacheService
	Events      EventDispatcher
}

// Event names dispatched by the manager.
const (
	EventGuardCreated      = "guard.created"
	EventPermissionCreated = "permission.created"
	EventRoleCreated       = "role.created"
)

// Manager is the facade over the guard registry. It creates permissions
// and roles within guards, resolves a subject's permission/role status
// (optionally via a registered custom check), and forwards persistence,
// cache and event calls to the injected collaborators.
//
// The registry lock covers guard map and check registry access only;
// mutation of an individual Guard's collections is the caller's to
// serialize, as with every other entity in this package.
type Manager struct {
	config Config
	deps   Deps

	mu               sync.RWMutex
	guards           map[string]*Guard
	permissionChecks map[string]CheckFunc
	roleChecks       map[string]CheckFunc
}

// NewManager creates a manager and eagerly creates the configured
// default guard.
//
// Example:
//
//	m := guardkit.NewManager(guardkit.Config{DefaultGuard: "web"}, guardkit.Deps{})
//	editors, _ := m.CreateRole(ctx, "editors", "")
func NewManager(cfg Config, deps Deps) *Manager {
	m := &Manager{
		config:           cfg.normalize(),
		deps:             deps,
		guards:           make(map[string]*Guard),
		permissionChecks: make(map[string]CheckFunc),
		roleChecks:       make(map[string]CheckFunc),
	}
	m.CreateGuard(context.Background(), m.config.DefaultGuard)
	return m
}

// Config returns the manager configuration.
func (m *Manager) Config() Config {
	return m.config
}

// CreateGuard creates and registers a new guard, overwriting any
// existing guard of the same name (last write wins, no warning).
func (m *Manager) CreateGuard(ctx context.Context, name string) *Guard {
	guard := NewGuard(name)

	m.mu.Lock()
	m.guards[name] = guard
	m.mu.Unlock()

	m.dispatch(ctx, EventGuardCreated, map[string]any{"guard": name})
	return guard
}

// GetGuard returns the guard registered under name.
func (m *Manager) GetGuard(name string) (*Guard, error) {
	m.mu.RLock()
	guard, ok := m.guards[name]
	m.mu.RUnlock()

	if !ok {
		return nil, NewError(ErrGuardNotFound, "no guard named "+name).WithName(name)
	}
	return guard, nil
}

// DefaultGuard returns the configured default guard.
func (m *Manager) DefaultGuard() (*Guard, error) {
	return m.GetGuard(m.config.DefaultGuard)
}

// resolveGuard maps an empty guard argument to the configured default.
func (m *Manager) resolveGuard(guard string) string {
	if guard == "" {
		return m.config.DefaultGuard
	}
	return guard
}

// CreatePermission constructs a permission tagged with the resolved
// guard's name and registers it into that guard. An empty guard falls
// back to the default guard. The permission is not persisted to the
// repository automatically; see SavePermission.
func (m *Manager) CreatePermission(ctx context.Context, name, guard string) (*Permission, error) {
	g, err := m.GetGuard(m.resolveGuard(guard))
	if err != nil {
		return nil, err
	}

	p := NewPermission(name, g.Name)
	g.AddPermission(&p)

	m.dispatch(ctx, EventPermissionCreated, map[string]any{"name": name, "guard": g.Name})
	return &p, nil
}

// CreateRole constructs a role tagged with the resolved guard's name
// and registers it into that guard.
func (m *Manager) CreateRole(ctx context.Context, name, guard string) (*Role, error) {
	g, err := m.GetGuard(m.resolveGuard(guard))
	if err != nil {
		return nil, err
	}

	r := NewRole(name, g.Name)
	g.AddRole(&r)

	m.dispatch(ctx, EventRoleCreated, map[string]any{"name": name, "guard": g.Name})
	return &r, nil
}

// GetPermission looks up a permission by name within the resolved guard.
func (m *Manager) GetPermission(name, guard string) (*Permission, error) {
	g, err := m.GetGuard(m.resolveGuard(guard))
	if err != nil {
		return nil, err
	}

	p, ok := g.GetPermission(name)
	if !ok {
		return nil, NewError(ErrPermissionNotFound, "no permission named "+name).
			WithName(name).
			WithGuard(g.Name)
	}
	return p, nil
}

// GetRole looks up a role by name within the resolved guard.
func (m *Manager) GetRole(name, guard string) (*Role, error) {
	g, err := m.GetGuard(m.resolveGuard(guard))
	if err != nil {
		return nil, err
	}

	r, ok := g.GetRole(name)
	if !ok {
		return nil, NewError(ErrRoleNotFound, "no role named "+name).
			WithName(name).
			WithGuard(g.Name)
	}
	return r, nil
}

// AllPermissions returns every permission registered in the resolved guard.
func (m *Manager) AllPermissions(guard string) ([]*Permission, error) {
	g, err := m.GetGuard(m.resolveGuard(guard))
	if err != nil {
		return nil, err
	}
	return g.Permissions(), nil
}

// AllRoles returns every role registered in the resolved guard.
func (m *Manager) AllRoles(guard string) ([]*Role, error) {
	g, err := m.GetGuard(m.resolveGuard(guard))
	if err != nil {
		return nil, err
	}
	return g.Roles(), nil
}

// RegisterPermissionCheck installs an override for CheckPermission under
// the given key. The key is conventionally a guard name, but any string
// used as the guard argument at call time addresses it, which lets
// callers select check strategies by name.
func (m *Manager) RegisterPermissionCheck(key string, fn CheckFunc) {
	m.mu.Lock()
	m.permissionChecks[key] = fn
	m.mu.Unlock()
}

// RegisterRoleCheck installs an override for CheckRole under the given key.
func (m *Manager) RegisterRoleCheck(key string, fn CheckFunc) {
	m.mu.Lock()
	m.roleChecks[key] = fn
	m.mu.Unlock()
}

// CheckPermission resolves whether the subject holds the permission
// under the guard. When a custom check is registered under the resolved
// guard key it is invoked instead of the subject's own resolution and
// its result returned as-is.
func (m *Manager) CheckPermission(subject Subject, perm PermissionRef, guard string) bool {
	key := m.resolveGuard(guard)
	entity, _ := perm.permissionRef()

	m.mu.RLock()
	fn, ok := m.permissionChecks[key]
	m.mu.RUnlock()

	if ok {
		return fn(subject, entity.Name, key)
	}
	return subject.HasPermission(perm, key)
}

// CheckRole resolves whether the subject holds the role under the
// guard, honoring a registered custom check first.
func (m *Manager) CheckRole(subject Subject, role RoleRef, guard string) bool {
	key := m.resolveGuard(guard)
	entity, _ := role.roleRef()

	m.mu.RLock()
	fn, ok := m.roleChecks[key]
	m.mu.RUnlock()

	if ok {
		return fn(subject, entity.Name, key)
	}
	return subject.HasRole(role, key)
}

// ForUser returns the subject unchanged. It exists as a documented
// fluent entry point: m.ForUser(u).HasPermission(...).
func (m *Manager) ForUser(subject Subject) Subject {
	return subject
}

// ForGuard returns a new manager sharing a shallow copy of this
// manager's guard registry with its default guard reset to name.
// Construction side effects run again on the copy: a guard named name
// is created (overwriting the copied entry, if any) in the new
// manager's registry only. This manager's registry is unaffected.
func (m *Manager) ForGuard(name string) *Manager {
	cfg := m.config
	cfg.DefaultGuard = name

	clone := &Manager{
		config:           cfg.normalize(),
		deps:             m.deps,
		guards:           make(map[string]*Guard),
		permissionChecks: make(map[string]CheckFunc),
		roleChecks:       make(map[string]CheckFunc),
	}

	m.mu.RLock()
	for k, v := range m.guards {
		clone.guards[k] = v
	}
	for k, v := range m.permissionChecks {
		clone.permissionChecks[k] = v
	}
	for k, v := range m.roleChecks {
		clone.roleChecks[k] = v
	}
	m.mu.RUnlock()

	clone.CreateGuard(context.Background(), clone.config.DefaultGuard)
	return clone
}

// ClearCache clears the injected cache collaborator. It is a no-op
// when caching is disabled or no cache was injected.
func (m *Manager) ClearCache(ctx context.Context) error {
	if !m.config.CacheEnabled || m.deps.Cache == nil {
		return nil
	}
	return m.deps.Cache.Clear(ctx)
}

// CacheTTL returns the advisory TTL for cache collaborator calls.
func (m *Manager) CacheTTL() time.Duration {
	return m.config.CacheTTL
}

// SavePermission forwards the permission to the injected repository.
// No-op when none was injected; repository failures propagate unwrapped.
func (m *Manager) SavePermission(ctx context.Context, p Permission) error {
	if m.deps.Permissions == nil {
		return nil
	}
	return m.deps.Permissions.Save(ctx, p)
}

// SaveRole forwards the role to the injected repository.
func (m *Manager) SaveRole(ctx context.Context, r Role) error {
	if m.deps.Roles == nil {
		return nil
	}
	return m.deps.Roles.Save(ctx, r)
}

// SaveGuard forwards the guard's existence marker to the injected
// repository. Nested permissions/roles are not persisted here.
func (m *Manager) SaveGuard(ctx context.Context, g *Guard) error {
	if m.deps.Guards == nil || g == nil {
		return nil
	}
	return m.deps.Guards.Save(ctx, g.Name)
}

// DispatchEvent forwards an event to the injected dispatcher. No-op
// when none was injected.
func (m *Manager) DispatchEvent(ctx context.Context, event string, payload any) error {
	if m.deps.Events == nil {
		return nil
	}
	return m.deps.Events.Dispatch(ctx, event, payload)
}

// dispatch fires a creation event, ignoring delivery errors.
func (m *Manager) dispatch(ctx context.Context, event string, payload any) {
	_ = m.DispatchEvent(ctx, event, payload)
}

// managerJSON is the serialized shape of a manager.
type managerJSON struct {
	Config Config      `json:"config"`
	Guards []guardJSON `json:"guards"`
}

// JSON serializes the configuration and all guards (with their nested
// permissions and roles) for inspection and debugging.
func (m *Manager) JSON() ([]byte, error) {
	m.mu.RLock()
	out := managerJSON{
		Config: m.config,
		Guards: make([]guardJSON, 0, len(m.guards)),
	}
	for _, g := range m.guards {
		out.Guards = append(out.Guards, g.toJSON())
	}
	m.mu.RUnlock()

	sort.Slice(out.Guards, func(i, j int) bool {
		return out.Guards[i].Name < out.Guards[j].Name
	})
	return json.Marshal(out)
}
