package types

// ============================================================================
// Reference system limits
// ============================================================================
// These constants mirror the fixed capacities of the reference kernel.
// They are defaults, not hard requirements: every component accepts its
// capacity through its config so tests can build smaller instances.

const (
	// MaxRegions is the default capacity of the region registry.
	MaxRegions = 1024

	// SmallPoolSize is the default size of the small-object pool.
	SmallPoolSize = 16384 // 16 KiB

	// SmallAllocMax is the largest request served from the small-object
	// pool. Anything larger falls back to a full page frame.
	SmallAllocMax = 256

	// SmallAlign is the alignment every small allocation is rounded
	// up to.
	SmallAlign = 8

	// SmallSplitSlack is the minimum usable remainder (beyond a block
	// header) that justifies splitting a free block in two.
	SmallSplitSlack = 16

	// MaxUsers is the capacity of the security user table.
	MaxUsers = 16

	// SecurityLogSize is the number of entries kept in the circular
	// security event log.
	SecurityLogSize = 64
)
