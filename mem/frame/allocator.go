package frame

import (
	"github.com/ojas-mohbansi/memkit/internal/spin"
	"github.com/ojas-mohbansi/memkit/pkg/types"
)

// Allocator hands out whole page frames by physical address. One
// instance owns one bitmap; tests build as many independent instances
// as they need instead of sharing a global.
type Allocator struct {
	lock spin.Lock
	geo  types.Geometry
	scan ScanStrategy

	bits bitmap
	hint uint32 // next frame index to try

	reserved uint32 // frames reserved at init, never handed out
}

// New creates an allocator with an all-free bitmap. A nil strategy
// selects ByteScan.
func New(geo types.Geometry, scan ScanStrategy) (*Allocator, error) {
	if err := geo.Validate(); err != nil {
		return nil, err
	}
	if scan == nil {
		scan = ByteScan{}
	}
	return &Allocator{
		geo:  geo,
		scan: scan,
		bits: newBitmap(geo.TotalFrames()),
	}, nil
}

// Init zeroes the bitmap, reserves every frame from address zero
// through kernelEnd (rounded up to a page boundary) in one bulk
// operation, and points the search hint at the first frame past the
// kernel image.
func (a *Allocator) Init(kernelEnd types.Addr) error {
	if kernelEnd > a.geo.PhysEnd {
		return ErrRange
	}
	kernelFrames := (uint32(kernelEnd) + a.geo.PageSize - 1) / a.geo.PageSize

	a.lock.Acquire()
	defer a.lock.Release()

	for i := range a.bits {
		a.bits[i] = 0
	}
	a.bits.setRange(0, kernelFrames)
	a.hint = kernelFrames
	a.reserved = kernelFrames
	return nil
}

// AllocatePage finds the lowest free frame at or after the search hint
// (wrapping around), marks it used, advances the hint, and returns its
// base address. A failed call leaves the bitmap unchanged.
func (a *Allocator) AllocatePage() (types.Addr, error) {
	a.lock.Acquire()
	defer a.lock.Release()

	idx, ok := a.scan.FindFree(a.bits, a.geo.TotalFrames(), a.hint)
	if !ok {
		return 0, ErrOutOfMemory
	}
	a.bits.set(idx)
	a.hint = idx + 1
	return a.geo.AddrOf(idx), nil
}

// FreePage clears the frame at addr. The address must be page-aligned,
// within physical memory, and currently allocated. Freeing a frame
// below the current hint rewinds the hint to it, biasing the next scan
// toward first-fit reuse.
func (a *Allocator) FreePage(addr types.Addr) error {
	if !a.geo.Aligned(addr) || addr >= a.geo.PhysEnd {
		return ErrInvalidFrame
	}
	idx := a.geo.FrameOf(addr)

	a.lock.Acquire()
	defer a.lock.Release()

	if !a.bits.test(idx) {
		return ErrInvalidFrame
	}
	a.bits.clear(idx)
	if idx < a.hint {
		a.hint = idx
	}
	return nil
}

// Reserve marks a contiguous run of frames used in one bulk bitmap
// operation, handling the partial bytes at both ends of the run. Used
// at boot to claim ranges (e.g. memory-mapped device windows) without
// going through the scan.
func (a *Allocator) Reserve(addr types.Addr, frames uint32) error {
	if !a.geo.Aligned(addr) {
		return ErrInvalidFrame
	}
	start := a.geo.FrameOf(addr)
	if start+frames < start || start+frames > a.geo.TotalFrames() {
		return ErrRange
	}

	a.lock.Acquire()
	defer a.lock.Release()

	a.bits.setRange(start, frames)
	return nil
}

// Release clears a contiguous run of frames in one bulk operation, the
// inverse of Reserve. The hint rewinds to the start of the run when the
// run begins below it.
func (a *Allocator) Release(addr types.Addr, frames uint32) error {
	if !a.geo.Aligned(addr) {
		return ErrInvalidFrame
	}
	start := a.geo.FrameOf(addr)
	if start+frames < start || start+frames > a.geo.TotalFrames() {
		return ErrRange
	}

	a.lock.Acquire()
	defer a.lock.Release()

	a.bits.clearRange(start, frames)
	if start < a.hint {
		a.hint = start
	}
	return nil
}

// UsedFrames returns the number of set bits, reserved frames included.
func (a *Allocator) UsedFrames() uint32 {
	a.lock.Acquire()
	defer a.lock.Release()
	return a.bits.countSet()
}

// FreeFrames returns the number of frames available for allocation.
func (a *Allocator) FreeFrames() uint32 {
	a.lock.Acquire()
	defer a.lock.Release()
	return a.geo.TotalFrames() - a.bits.countSet()
}

// TotalFrames returns the number of frames covered by the bitmap.
func (a *Allocator) TotalFrames() uint32 {
	return a.geo.TotalFrames()
}

// ReservedFrames returns the frame count claimed by Init for the kernel
// image.
func (a *Allocator) ReservedFrames() uint32 {
	a.lock.Acquire()
	defer a.lock.Release()
	return a.reserved
}

// Strategy returns the scan strategy in use.
func (a *Allocator) Strategy() ScanStrategy {
	return a.scan
}
