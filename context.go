package guardkit

import (
	"context"
)

// Context keys for GuardKit values.
type contextKey string

const (
	contextKeySubjectID contextKey = "guardkit:subject_id"
	contextKeyGuard     contextKey = "guardkit:guard"
	contextKeyManager   contextKey = "guardkit:manager"
)

// WithSubjectID adds a subject ID to the context.
// This is the subject being checked for permissions.
func WithSubjectID(ctx context.Context, subjectID string) context.Context {
	return context.WithValue(ctx, contextKeySubjectID, subjectID)
}

// GetSubjectID retrieves the subject ID from context.
// Returns empty string if not set.
func GetSubjectID(ctx context.Context) string {
	if v := ctx.Value(contextKeySubjectID); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// WithGuardName adds a guard name to the context, letting request
// plumbing pick the guard once and have handlers read it back.
func WithGuardName(ctx context.Context, guard string) context.Context {
	return context.WithValue(ctx, contextKeyGuard, guard)
}

// GetGuardName retrieves the guard name from context.
// Falls back to DefaultGuardName if not set.
func GetGuardName(ctx context.Context) string {
	if v := ctx.Value(contextKeyGuard); v != nil {
		if s, ok := v.(string); ok && s != "" {
			return s
		}
	}
	return DefaultGuardName
}

// WithManager adds a Manager to the context. This replaces the global
// default-manager pattern: hosts construct one Manager and pass it
// through request context instead of reaching for hidden state.
func WithManager(ctx context.Context, m *Manager) context.Context {
	return context.WithValue(ctx, contextKeyManager, m)
}

// GetManager retrieves the Manager from context.
// Returns nil if not set.
func GetManager(ctx context.Context) *Manager {
	if v := ctx.Value(contextKeyManager); v != nil {
		if m, ok := v.(*Manager); ok {
			return m
		}
	}
	return nil
}

// FromContext retrieves the Manager from context.
// Alias for GetManager for convenience.
func FromContext(ctx context.Context) *Manager {
	return GetManager(ctx)
}
