package frame

import "errors"

var (
	// ErrOutOfMemory indicates that no free frame exists in either scan
	// direction. The bitmap is left untouched by the failed call.
	ErrOutOfMemory = errors.New("frame: no free pages available")

	// ErrInvalidFrame indicates a free of an address that is misaligned,
	// out of range, or not currently allocated.
	ErrInvalidFrame = errors.New("frame: invalid page frame")

	// ErrRange indicates a bulk reserve/release outside physical memory.
	ErrRange = errors.New("frame: range outside physical memory")
)
