// Package testutil provides shared helpers for tests that need a fully
// booted memory manager.
package testutil

import (
	"testing"

	"github.com/ojas-mohbansi/memkit/mem"
	"github.com/ojas-mohbansi/memkit/pkg/types"
)

// SmallGeometry is a compact layout for tests: 16 frames of 4 KiB with
// a 4-frame kernel image.
var SmallGeometry = types.Geometry{
	PageSize:  4096,
	KernelEnd: 0x4000,
	PhysEnd:   0x10000,
}

// SetupManager boots a manager on the default geometry and returns it
// with a cleanup function.
//
// Example:
//
//	m, cleanup := testutil.SetupManager(t)
//	defer cleanup()
func SetupManager(t *testing.T) (*mem.Manager, func()) {
	t.Helper()
	return SetupManagerWith(t, mem.Config{})
}

// SetupManagerWith boots a manager from cfg. A zero geometry selects
// the default layout.
func SetupManagerWith(t *testing.T, cfg mem.Config) (*mem.Manager, func()) {
	t.Helper()

	m, err := mem.New(cfg)
	if err != nil {
		t.Fatalf("Failed to boot memory manager: %v", err)
	}

	cleanup := func() {
		m.Close()
	}
	return m, cleanup
}

// LoginAdmin authenticates the seeded admin account so allocation
// calls pass the principal gate.
func LoginAdmin(t *testing.T, m *mem.Manager) {
	t.Helper()
	if _, err := m.Users().Authenticate("admin", "admin123"); err != nil {
		t.Fatalf("Failed to log in default admin: %v", err)
	}
}
