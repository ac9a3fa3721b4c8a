package region

import "errors"

var (
	// ErrNullArgument rejects a nil address or zero size.
	ErrNullArgument = errors.New("region: null address or zero size")

	// ErrAddressOverflow rejects accesses whose end address wraps the
	// 32-bit address space.
	ErrAddressOverflow = errors.New("region: address calculation overflow")

	// ErrOutOfBounds rejects accesses below the kernel boundary or past
	// the end of physical memory.
	ErrOutOfBounds = errors.New("region: memory access out of bounds")

	// ErrMisaligned rejects page-oriented accesses that do not start on
	// a page boundary.
	ErrMisaligned = errors.New("region: misaligned memory access")

	// ErrPermissionDenied rejects accesses the covering region's
	// protection flags do not allow.
	ErrPermissionDenied = errors.New("region: insufficient permissions")

	// ErrWrongOwner rejects accesses to a region owned by a different
	// principal, or on behalf of no principal at all.
	ErrWrongOwner = errors.New("region: access by wrong owner")

	// ErrUnregistered rejects accesses not covered by any live region.
	ErrUnregistered = errors.New("region: unregistered memory region")

	// ErrRegistryFull indicates the fixed-capacity table is exhausted.
	ErrRegistryFull = errors.New("region: registry full")

	// ErrNotFound indicates an unregister for a base address with no
	// matching live region.
	ErrNotFound = errors.New("region: no region with that base address")
)
