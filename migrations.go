package guardkit

import (
	"github.com/fernandezvara/dbkit"
)

// Migrations returns the database migrations required by the bun-backed
// repositories. Use db.Migrate(ctx, guardkit.Migrations()) to apply them.
func Migrations() []dbkit.Migration {
	return []dbkit.Migration{
		{
			ID:          "guardkit-001",
			Description: "Create permissions table",
			SQL: `
                CREATE TABLE IF NOT EXISTS permissions (
                    id UUID PRIMARY KEY,
                    name TEXT NOT NULL,
                    guard_name TEXT NOT NULL,
                    description TEXT,
                    created_at TIMESTAMPTZ NOT NULL DEFAULT current_timestamp,
                    updated_at TIMESTAMPTZ NOT NULL DEFAULT current_timestamp,
                    UNIQUE (name, guard_name)
                )`,
		},
		{
			ID:          "guardkit-002",
			Description: "Create roles table",
			SQL: `
                CREATE TABLE IF NOT EXISTS roles (
                    id UUID PRIMARY KEY,
                    name TEXT NOT NULL,
                    guard_name TEXT NOT NULL,
                    description TEXT,
                    permissions JSONB,
                    created_at TIMESTAMPTZ NOT NULL DEFAULT current_timestamp,
                    updated_at TIMESTAMPTZ NOT NULL DEFAULT current_timestamp,
                    UNIQUE (name, guard_name)
                )`,
		},
		{
			ID:          "guardkit-003",
			Description: "Create guards table",
			SQL: `
                CREATE TABLE IF NOT EXISTS guards (
                    id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
                    name TEXT NOT NULL UNIQUE,
                    created_at TIMESTAMPTZ NOT NULL DEFAULT current_timestamp
                )`,
		},
	}
}
