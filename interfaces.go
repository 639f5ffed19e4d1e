package guardkit

import (
	"context"
	"time"

	"github.com/fernandezvara/dbkit"
)

// Database defines the database operations interface for dependency injection.
type Database interface {
	dbkit.IDB
}

// PermissionRepository persists permissions. All operations may block;
// failures propagate to the caller unwrapped.
type PermissionRepository interface {
	Save(ctx context.Context, p Permission) error
	Find(ctx context.Context, name, guard string) (Permission, error)
	FindAll(ctx context.Context, guard string) ([]Permission, error)
	Delete(ctx context.Context, name, guard string) error
}

// RoleRepository persists roles, including their nested permission lists.
type RoleRepository interface {
	Save(ctx context.Context, r Role) error
	Find(ctx context.Context, name, guard string) (Role, error)
	FindAll(ctx context.Context, guard string) ([]Role, error)
	Delete(ctx context.Context, name, guard string) error
}

// GuardRepository persists guard existence markers. Guard persistence
// does not recurse into the guard's permission/role collections; those
// belong to the permission and role repositories.
type GuardRepository interface {
	Save(ctx context.Context, name string) error
	Find(ctx context.Context, name string) (bool, error)
	FindAll(ctx context.Context) ([]string, error)
	Delete(ctx context.Context, name string) error
}

// CacheService is the minimal cache contract the manager forwards to.
// TTL is advisory; expiry enforcement is the implementation's concern.
type CacheService interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}

// EventHandler receives dispatched events.
type EventHandler func(ctx context.Context, event string, payload any)

// EventDispatcher delivers domain events to registered handlers.
// Dispatch is awaited but fire-and-forget from the domain's
// perspective; Subscribe/Unsubscribe exist for host use only and are
// never invoked by the manager.
type EventDispatcher interface {
	Dispatch(ctx context.Context, event string, payload any) error
	Subscribe(event string, handler EventHandler) int
	Unsubscribe(event string, id int)
}
