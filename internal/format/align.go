package format

// Alignment utilities for the allocator data structures.
// Small-object blocks are 8-byte aligned; page math aligns to the
// configured frame size.

// Align8 returns n aligned up to the next 8-byte boundary.
// Used for small-object allocation sizes.
//
// Example:
//
//	Align8(1)  = 8
//	Align8(8)  = 8
//	Align8(9)  = 16
//	Align8(16) = 16
func Align8(n uint32) uint32 {
	return (n + 7) &^ 7
}

// AlignUp returns n aligned up to the next multiple of align.
// align must be a power of two.
//
// Example:
//
//	AlignUp(1, 4096)    = 4096
//	AlignUp(4096, 4096) = 4096
//	AlignUp(4097, 4096) = 8192
func AlignUp(n, align uint32) uint32 {
	return (n + align - 1) &^ (align - 1)
}
