package small

import "errors"

var (
	// ErrOutOfMemory indicates no free block in the pool can satisfy
	// the request.
	ErrOutOfMemory = errors.New("small: no suitable block in pool")

	// ErrTooLarge indicates the request exceeds the small-allocation
	// threshold. This is a policy signal, not a failure: the caller is
	// expected to redirect the request to the page frame allocator.
	ErrTooLarge = errors.New("small: request above small-allocation threshold")

	// ErrZeroSize rejects zero-byte requests.
	ErrZeroSize = errors.New("small: zero-size request")

	// ErrPoolTooSmall rejects a pool buffer that cannot hold even one
	// block header plus the minimum allocation.
	ErrPoolTooSmall = errors.New("small: pool buffer too small")
)
