package types

import "errors"

// Geometry describes the physical memory layout the allocators operate
// on: the page frame size, the end of the kernel image (everything below
// it is reserved at boot), and the end of physical memory.
//
// The zero value is not usable; call Validate before handing a custom
// geometry to a component, or use DefaultGeometry.
type Geometry struct {
	// PageSize is the frame size in bytes. Must be a power of two.
	PageSize uint32

	// KernelEnd is the first address past the kernel image. Frames
	// below it are reserved at boot and never handed out.
	KernelEnd Addr

	// PhysEnd is the first address past physical memory.
	PhysEnd Addr
}

// DefaultGeometry matches the reference machine: 4 KiB pages, a 1 MiB
// kernel image, 16 MiB of physical memory.
var DefaultGeometry = Geometry{
	PageSize:  4096,
	KernelEnd: 0x100000,
	PhysEnd:   0x1000000,
}

var (
	errPageSize  = errors.New("types: page size must be a non-zero power of two")
	errKernelEnd = errors.New("types: kernel end must be page-aligned and below physical end")
	errPhysEnd   = errors.New("types: physical end must be a non-zero multiple of the page size")
)

// Validate checks the geometry for internal consistency.
func (g Geometry) Validate() error {
	if g.PageSize == 0 || g.PageSize&(g.PageSize-1) != 0 {
		return errPageSize
	}
	if g.PhysEnd == 0 || uint32(g.PhysEnd)%g.PageSize != 0 {
		return errPhysEnd
	}
	if g.KernelEnd == 0 || g.KernelEnd >= g.PhysEnd || !g.Aligned(g.KernelEnd) {
		return errKernelEnd
	}
	return nil
}

// TotalFrames is the number of page frames covered by the bitmap.
func (g Geometry) TotalFrames() uint32 {
	return uint32(g.PhysEnd) / g.PageSize
}

// KernelFrames is the number of frames covering the kernel image,
// rounded up to a whole frame.
func (g Geometry) KernelFrames() uint32 {
	return (uint32(g.KernelEnd) + g.PageSize - 1) / g.PageSize
}

// BitmapBytes is the size of the frame bitmap: one bit per frame.
func (g Geometry) BitmapBytes() uint32 {
	return (g.TotalFrames() + 7) / 8
}

// Aligned reports whether a falls on a page boundary.
func (g Geometry) Aligned(a Addr) bool {
	return uint32(a)%g.PageSize == 0
}

// FrameOf returns the frame index containing a.
func (g Geometry) FrameOf(a Addr) uint32 {
	return uint32(a) / g.PageSize
}

// AddrOf returns the base address of frame index f.
func (g Geometry) AddrOf(f uint32) Addr {
	return Addr(f * g.PageSize)
}

// Contains reports whether frame index f is within physical memory.
func (g Geometry) Contains(f uint32) bool {
	return f < g.TotalFrames()
}
