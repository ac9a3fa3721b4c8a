package small

import (
	"github.com/ojas-mohbansi/memkit/internal/format"
	"github.com/ojas-mohbansi/memkit/internal/spin"
	"github.com/ojas-mohbansi/memkit/pkg/types"
)

// FreeOutcome reports what Free did with an address. Free never fails:
// addresses the pool does not recognize are ignored, because callers
// may not know which allocator produced a given pointer.
type FreeOutcome uint8

const (
	// Freed means the block was returned to the pool (and possibly
	// merged with its successor).
	Freed FreeOutcome = iota

	// OutsidePool means the address does not fall inside the pool's
	// extent; the call was a no-op.
	OutsidePool

	// DoubleFree means the address is inside the pool but its block was
	// not marked used. The call was a no-op; the caller may want to log
	// it. The reference system wrote through the header unconditionally
	// here and corrupted its free chain; the used-flag check is a
	// deliberate hardening.
	DoubleFree
)

// Pool is the small-object allocator: one fixed buffer carved into a
// singly linked chain of blocks, each led by an embedded header.
type Pool struct {
	lock spin.Lock

	base types.Addr // address of the first pool byte
	buf  []byte

	threshold uint32 // largest request served here
	formatted bool
}

// New wraps buf as a pool based at base. The buffer must hold at least
// one header plus one aligned allocation. threshold <= 0 selects the
// reference default of 256 bytes.
func New(base types.Addr, buf []byte, threshold uint32) (*Pool, error) {
	if len(buf) < format.BlockHeaderSize+types.SmallAlign {
		return nil, ErrPoolTooSmall
	}
	if threshold == 0 {
		threshold = types.SmallAllocMax
	}
	return &Pool{base: base, buf: buf, threshold: threshold}, nil
}

// Threshold returns the largest request the pool serves.
func (p *Pool) Threshold() uint32 {
	return p.threshold
}

// Contains reports whether addr points into a payload inside the pool
// extent.
func (p *Pool) Contains(addr types.Addr) bool {
	return addr >= p.base+format.BlockHeaderSize &&
		addr < p.base+types.Addr(len(p.buf))
}

// Alloc returns the address of a block payload of at least size bytes,
// rounded up to the pool alignment. Requests above the threshold return
// ErrTooLarge so the caller can fall back to a page frame.
func (p *Pool) Alloc(size uint32) (types.Addr, error) {
	if size == 0 {
		return 0, ErrZeroSize
	}
	if size > p.threshold {
		return 0, ErrTooLarge
	}
	size = format.Align8(size)

	p.lock.Acquire()
	defer p.lock.Release()

	p.ensureFormatted()

	off := uint32(0)
	for off != format.NilOffset {
		bsize := format.BlockSize(p.buf, off)
		if !format.BlockInUse(p.buf, off) && bsize >= size {
			// Split when the remainder can hold a header plus a
			// worthwhile free block; otherwise hand out the whole
			// block and absorb the slack.
			if bsize > size+format.BlockHeaderSize+types.SmallSplitSlack {
				tail := off + format.BlockHeaderSize + size
				format.SetBlockSize(p.buf, tail, bsize-size-format.BlockHeaderSize)
				format.SetBlockInUse(p.buf, tail, false)
				format.SetBlockNext(p.buf, tail, format.BlockNext(p.buf, off))

				format.SetBlockSize(p.buf, off, size)
				format.SetBlockNext(p.buf, off, tail)
			}
			format.SetBlockInUse(p.buf, off, true)
			return p.base + types.Addr(off+format.BlockHeaderSize), nil
		}
		off = p.next(off)
	}
	return 0, ErrOutOfMemory
}

// Free returns the block whose payload starts at addr to the pool and
// merges it with the immediately following block when that one is also
// free, reclaiming the freed header's overhead. See FreeOutcome for the
// no-op cases.
func (p *Pool) Free(addr types.Addr) FreeOutcome {
	p.lock.Acquire()
	defer p.lock.Release()

	if !p.formatted || !p.Contains(addr) {
		return OutsidePool
	}
	off := uint32(addr-p.base) - format.BlockHeaderSize

	if !format.BlockInUse(p.buf, off) {
		return DoubleFree
	}
	format.SetBlockInUse(p.buf, off, false)

	next := format.BlockNext(p.buf, off)
	if next != format.NilOffset && !format.BlockInUse(p.buf, next) {
		merged := format.BlockSize(p.buf, off) + format.BlockHeaderSize + format.BlockSize(p.buf, next)
		format.SetBlockSize(p.buf, off, merged)
		format.SetBlockNext(p.buf, off, format.BlockNext(p.buf, next))
	}
	return Freed
}

// Block is a snapshot of one chain entry, used by invariant tests and
// the stats report.
type Block struct {
	Offset uint32 // header offset within the pool
	Size   uint32 // usable bytes after the header
	Used   bool
}

// Blocks walks the chain and returns it in address order. An empty
// slice means the pool has not been formatted yet.
func (p *Pool) Blocks() []Block {
	p.lock.Acquire()
	defer p.lock.Release()

	if !p.formatted {
		return nil
	}

	var out []Block
	off := uint32(0)
	for off != format.NilOffset {
		out = append(out, Block{
			Offset: off,
			Size:   format.BlockSize(p.buf, off),
			Used:   format.BlockInUse(p.buf, off),
		})
		off = p.next(off)
	}
	return out
}

// FreeBytes sums the usable bytes of all free blocks.
func (p *Pool) FreeBytes() uint32 {
	p.lock.Acquire()
	defer p.lock.Release()

	if !p.formatted {
		// The whole buffer minus the initial header is free.
		return uint32(len(p.buf)) - format.BlockHeaderSize
	}

	var n uint32
	off := uint32(0)
	for off != format.NilOffset {
		if !format.BlockInUse(p.buf, off) {
			n += format.BlockSize(p.buf, off)
		}
		off = p.next(off)
	}
	return n
}

// ensureFormatted lazily formats the pool as one free block spanning
// the whole buffer. Must be called with the lock held.
func (p *Pool) ensureFormatted() {
	if p.formatted {
		return
	}
	format.SetBlockSize(p.buf, 0, uint32(len(p.buf))-format.BlockHeaderSize)
	format.SetBlockInUse(p.buf, 0, false)
	format.SetBlockNext(p.buf, 0, format.NilOffset)
	p.formatted = true
}

// next follows the chain link at off, refusing to walk backwards or
// past the buffer so a corrupted header cannot loop the walk forever.
func (p *Pool) next(off uint32) uint32 {
	n := format.BlockNext(p.buf, off)
	if n != format.NilOffset {
		if n <= off || n > uint32(len(p.buf))-format.BlockHeaderSize {
			return format.NilOffset
		}
	}
	return n
}
