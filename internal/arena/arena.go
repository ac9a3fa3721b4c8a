// Package arena provides the flat byte buffer that stands in for
// physical memory. Allocator addresses are offsets into this buffer, so
// consumers (the file system, the shell heap) can obtain real writable
// slices for the regions they own.
//
// On Unix platforms the buffer is an anonymous, page-aligned memory
// mapping; elsewhere it falls back to a plain Go allocation. The mapping
// guarantees the arena starts on a host page boundary, which keeps the
// simulated frame addresses naturally aligned in the host address space
// as well.
package arena

import "errors"

// ErrSize rejects a zero-length arena.
var ErrSize = errors.New("arena: size must be non-zero")

// Arena is a fixed-size physical memory buffer. It is created once at
// boot and released only when the owning manager is torn down.
type Arena struct {
	data   []byte
	mapped bool
}

// New reserves size bytes of backing memory.
func New(size uint32) (*Arena, error) {
	if size == 0 {
		return nil, ErrSize
	}
	return newArena(int(size))
}

// Bytes returns the whole backing buffer.
func (a *Arena) Bytes() []byte {
	return a.data
}

// Size returns the arena length in bytes.
func (a *Arena) Size() uint32 {
	return uint32(len(a.data))
}

// Slice returns the window [off, off+n). The caller is responsible for
// bounds validation; out-of-range requests return nil.
func (a *Arena) Slice(off, n uint32) []byte {
	end := uint64(off) + uint64(n)
	if end > uint64(len(a.data)) {
		return nil
	}
	return a.data[off:end:end]
}

// Release returns the backing memory to the host. The arena must not be
// used afterwards. Releasing twice has no effect.
func (a *Arena) Release() error {
	if a.data == nil {
		return nil
	}
	err := a.release()
	a.data = nil
	return err
}
