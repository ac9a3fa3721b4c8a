//go:build linux || freebsd || darwin

package arena

import (
	"golang.org/x/sys/unix"
)

// newArena maps an anonymous, private, zero-filled region. The mapping
// is page-aligned by construction.
func newArena(size int) (*Arena, error) {
	data, err := unix.Mmap(-1, 0, size,
		unix.PROT_READ|unix.PROT_WRITE,
		unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return nil, err
	}
	return &Arena{data: data, mapped: true}, nil
}

func (a *Arena) release() error {
	if !a.mapped {
		return nil
	}
	return unix.Munmap(a.data)
}
