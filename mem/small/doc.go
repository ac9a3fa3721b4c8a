// Package small serves allocations at or below a small-size threshold
// from one fixed pool, avoiding the waste of rounding tiny requests up
// to a full page frame.
//
// The pool is formatted lazily, on first use, as a single free block
// spanning the whole buffer. Allocation is first-fit with splitting:
// a sufficiently large free block is carved in two when the remainder
// would be worth keeping. Freeing merges the block with its immediate
// successor when that block is also free.
//
// Known limitation: only forward coalescing is performed. A block is
// never merged with its predecessor, so alternating free patterns can
// leave adjacent free blocks unmerged until the earlier one is freed
// last. There is no buddy system and no cross-frame coalescing; the
// pool behavior is exactly first-fit/split/forward-coalesce.
package small
