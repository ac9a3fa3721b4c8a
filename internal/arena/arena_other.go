//go:build !linux && !freebsd && !darwin

package arena

// newArena falls back to a plain heap allocation on platforms without
// the Unix mmap path. Go heap allocations of page-multiple sizes are
// page-aligned in practice, but no alignment is guaranteed here.
func newArena(size int) (*Arena, error) {
	return &Arena{data: make([]byte, size)}, nil
}

func (a *Arena) release() error {
	return nil
}
