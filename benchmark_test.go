package guardkit

import (
	"fmt"
	"testing"
)

func benchmarkSubject(roles, permsPerRole int) *testUser {
	u := &testUser{ID: "bench"}
	for i := 0; i < roles; i++ {
		role := NewRole(fmt.Sprintf("role-%d", i), "web")
		for j := 0; j < permsPerRole; j++ {
			_ = role.AddPermission(NewPermission(fmt.Sprintf("perm-%d-%d", i, j), "web"))
		}
		u.AssignRole(role, "web")
	}
	u.GivePermissionTo(PermissionName("direct"), "web")
	return u
}

func BenchmarkHasPermissionDirect(b *testing.B) {
	u := benchmarkSubject(10, 20)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		u.HasPermission(PermissionName("direct"), "web")
	}
}

func BenchmarkHasPermissionInherited(b *testing.B) {
	u := benchmarkSubject(10, 20)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		u.HasPermission(PermissionName("perm-9-19"), "web")
	}
}

func BenchmarkHasPermissionMiss(b *testing.B) {
	u := benchmarkSubject(10, 20)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		u.HasPermission(PermissionName("nonexistent"), "web")
	}
}

func BenchmarkAllPermissions(b *testing.B) {
	u := benchmarkSubject(10, 20)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		u.AllPermissions("web")
	}
}

func BenchmarkManagerCheckPermission(b *testing.B) {
	m := NewManager(Config{}, Deps{})
	u := benchmarkSubject(5, 10)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		m.CheckPermission(u, PermissionName("direct"), "")
	}
}

func BenchmarkManagerCheckPermissionCustom(b *testing.B) {
	m := NewManager(Config{}, Deps{})
	m.RegisterPermissionCheck("web", func(Subject, string, string) bool { return true })
	u := benchmarkSubject(5, 10)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		m.CheckPermission(u, PermissionName("direct"), "")
	}
}
