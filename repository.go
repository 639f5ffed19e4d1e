package guardkit

import (
	"context"
	"time"

	"github.com/fernandezvara/dbkit"
	"github.com/uptrace/bun"
)

// guardRecord is the persisted existence marker for a guard.
type guardRecord struct {
	bun.BaseModel `bun:"table:guards,alias:g"`

	ID        string    `bun:"id,pk,type:uuid,default:gen_random_uuid()"`
	Name      string    `bun:"name,notnull"`
	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp"`
}

// BunPermissionRepository is a PostgreSQL-backed PermissionRepository
// built on bun through dbkit.
type BunPermissionRepository struct {
	db dbkit.IDB
}

// NewBunPermissionRepository creates a permission repository on db.
func NewBunPermissionRepository(db dbkit.IDB) *BunPermissionRepository {
	return &BunPermissionRepository{db: db}
}

// Save upserts the permission, keyed by (name, guard_name).
func (r *BunPermissionRepository) Save(ctx context.Context, p Permission) error {
	result, err := r.db.NewInsert().
		Model(&p).
		On("CONFLICT (name, guard_name) DO UPDATE").
		Set("description = EXCLUDED.description").
		Set("updated_at = current_timestamp").
		Exec(ctx)
	return dbkit.WithErr(result, err, "SavePermission").Err()
}

// Find returns the permission stored under (name, guard). A miss is
// reported as ErrPermissionNotFound.
func (r *BunPermissionRepository) Find(ctx context.Context, name, guard string) (Permission, error) {
	var p Permission
	err := dbkit.WithErr1(r.db.NewSelect().
		Model(&p).
		Where("name = ? AND guard_name = ?", name, guard).
		Limit(1).
		Scan(ctx), "FindPermission").Err()
	if err != nil {
		if dbkit.IsNotFound(err) {
			return Permission{}, NewError(ErrPermissionNotFound, "no permission named "+name).
				WithName(name).
				WithGuard(guard)
		}
		return Permission{}, err
	}
	return p, nil
}

// FindAll returns every stored permission for the guard.
func (r *BunPermissionRepository) FindAll(ctx context.Context, guard string) ([]Permission, error) {
	var perms []Permission
	err := dbkit.WithErr1(r.db.NewSelect().
		Model(&perms).
		Where("guard_name = ?", guard).
		Order("name ASC").
		Scan(ctx), "FindAllPermissions").Err()
	if err != nil {
		return nil, err
	}
	return perms, nil
}

// Delete removes the permission stored under (name, guard).
func (r *BunPermissionRepository) Delete(ctx context.Context, name, guard string) error {
	result, err := r.db.NewDelete().
		Table("permissions").
		Where("name = ? AND guard_name = ?", name, guard).
		Exec(ctx)
	return dbkit.WithErr(result, err, "DeletePermission").Err()
}

// BunRoleRepository is a PostgreSQL-backed RoleRepository. The role's
// permission list is stored denormalized as jsonb; roles own copies of
// their permissions, so no join table is needed.
type BunRoleRepository struct {
	db dbkit.IDB
}

// NewBunRoleRepository creates a role repository on db.
func NewBunRoleRepository(db dbkit.IDB) *BunRoleRepository {
	return &BunRoleRepository{db: db}
}

// Save upserts the role, keyed by (name, guard_name).
func (r *BunRoleRepository) Save(ctx context.Context, role Role) error {
	result, err := r.db.NewInsert().
		Model(&role).
		On("CONFLICT (name, guard_name) DO UPDATE").
		Set("description = EXCLUDED.description").
		Set("permissions = EXCLUDED.permissions").
		Set("updated_at = current_timestamp").
		Exec(ctx)
	return dbkit.WithErr(result, err, "SaveRole").Err()
}

// Find returns the role stored under (name, guard). A miss is reported
// as ErrRoleNotFound.
func (r *BunRoleRepository) Find(ctx context.Context, name, guard string) (Role, error) {
	var role Role
	err := dbkit.WithErr1(r.db.NewSelect().
		Model(&role).
		Where("name = ? AND guard_name = ?", name, guard).
		Limit(1).
		Scan(ctx), "FindRole").Err()
	if err != nil {
		if dbkit.IsNotFound(err) {
			return Role{}, NewError(ErrRoleNotFound, "no role named "+name).
				WithName(name).
				WithGuard(guard)
		}
		return Role{}, err
	}
	return role, nil
}

// FindAll returns every stored role for the guard.
func (r *BunRoleRepository) FindAll(ctx context.Context, guard string) ([]Role, error) {
	var roles []Role
	err := dbkit.WithErr1(r.db.NewSelect().
		Model(&roles).
		Where("guard_name = ?", guard).
		Order("name ASC").
		Scan(ctx), "FindAllRoles").Err()
	if err != nil {
		return nil, err
	}
	return roles, nil
}

// Delete removes the role stored under (name, guard).
func (r *BunRoleRepository) Delete(ctx context.Context, name, guard string) error {
	result, err := r.db.NewDelete().
		Table("roles").
		Where("name = ? AND guard_name = ?", name, guard).
		Exec(ctx)
	return dbkit.WithErr(result, err, "DeleteRole").Err()
}

// BunGuardRepository persists guard existence markers.
type BunGuardRepository struct {
	db dbkit.IDB
}

// NewBunGuardRepository creates a guard repository on db.
func NewBunGuardRepository(db dbkit.IDB) *BunGuardRepository {
	return &BunGuardRepository{db: db}
}

// Save records that a guard exists. Saving an existing guard is a no-op.
func (r *BunGuardRepository) Save(ctx context.Context, name string) error {
	record := &guardRecord{Name: name}
	result, err := r.db.NewInsert().
		Model(record).
		On("CONFLICT (name) DO NOTHING").
		Exec(ctx)
	return dbkit.WithErr(result, err, "SaveGuard").Err()
}

// Find reports whether a guard marker exists.
func (r *BunGuardRepository) Find(ctx context.Context, name string) (bool, error) {
	exists, err := dbkit.Exists[guardRecord](ctx, r.db, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("name = ?", name)
	})
	if err != nil {
		return false, err
	}
	return exists, nil
}

// FindAll returns the names of every persisted guard.
func (r *BunGuardRepository) FindAll(ctx context.Context) ([]string, error) {
	var names []string
	err := dbkit.WithErr1(r.db.NewRaw("SELECT name FROM guards ORDER BY name").Scan(ctx, &names), "FindAllGuards").Err()
	if err != nil {
		return nil, err
	}
	return names, nil
}

// Delete removes a guard marker.
func (r *BunGuardRepository) Delete(ctx context.Context, name string) error {
	result, err := r.db.NewDelete().
		Table("guards").
		Where("name = ?", name).
		Exec(ctx)
	return dbkit.WithErr(result, err, "DeleteGuard").Err()
}
