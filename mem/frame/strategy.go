package frame

import "math/bits"

// ScanStrategy locates the lowest free frame at or after a search hint,
// wrapping around to frame zero when the hint reaches the end of the
// bitmap. Implementations must return identical results for identical
// inputs: strategies differ in cost, never in outcome.
type ScanStrategy interface {
	// Name identifies the strategy in benchmarks and reports.
	Name() string

	// FindFree returns the index of the chosen frame. ok is false when
	// no free frame exists anywhere in the bitmap.
	FindFree(bits []byte, total, hint uint32) (idx uint32, ok bool)
}

// LinearScan is the baseline strategy: it tests one bit at a time.
type LinearScan struct{}

// Name implements ScanStrategy.
func (LinearScan) Name() string { return "linear" }

// FindFree implements ScanStrategy.
func (LinearScan) FindFree(bm []byte, total, hint uint32) (uint32, bool) {
	if total == 0 {
		return 0, false
	}
	if hint >= total {
		hint = 0
	}
	for i := hint; i < total; i++ {
		if bm[i>>3]&(1<<(i&7)) == 0 {
			return i, true
		}
	}
	for i := uint32(0); i < hint; i++ {
		if bm[i>>3]&(1<<(i&7)) == 0 {
			return i, true
		}
	}
	return 0, false
}

// ByteScan inspects eight frames at a time, skipping fully used bytes
// and extracting the first zero bit of a candidate byte with
// bits.TrailingZeros8 on its complement. This is the cache-friendly
// variant of the scan; explicit prefetch of upcoming bitmap bytes has no
// Go-level equivalent, the sequential byte walk serves the same purpose.
//
// The sub-byte hint position is masked out of the first byte of each
// pass so the result always matches LinearScan.
type ByteScan struct{}

// Name implements ScanStrategy.
func (ByteScan) Name() string { return "bytescan" }

// FindFree implements ScanStrategy.
func (ByteScan) FindFree(bm []byte, total, hint uint32) (uint32, bool) {
	if total == 0 {
		return 0, false
	}
	if hint >= total {
		hint = 0
	}

	hintByte := hint >> 3
	hintBit := hint & 7

	// Forward pass: [hint, total).
	for bi := hintByte; bi < uint32(len(bm)); bi++ {
		b := bm[bi]
		if bi == hintByte {
			// Bits below the hint belong to the wrap-around pass.
			b |= byte(1<<hintBit) - 1
		}
		if b != 0xFF {
			idx := bi<<3 + uint32(bits.TrailingZeros8(^b))
			if idx < total {
				return idx, true
			}
		}
	}

	// Wrap-around pass: [0, hint).
	for bi := uint32(0); bi <= hintByte && bi < uint32(len(bm)); bi++ {
		b := bm[bi]
		if bi == hintByte {
			// Bits at or above the hint were covered by the forward pass.
			b |= byte(0xFF) << hintBit
		}
		if b != 0xFF {
			idx := bi<<3 + uint32(bits.TrailingZeros8(^b))
			if idx < total {
				return idx, true
			}
		}
	}

	return 0, false
}
