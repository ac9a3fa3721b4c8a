package format

// Small-object block header layout.
//
// Every chunk in the small-object pool starts with a 12-byte header
// embedded in the pool buffer:
//
//	offset 0: size  u32  usable bytes after the header
//	offset 4: flags u32  bit 0 set while the block is handed out
//	offset 8: next  u32  pool offset of the next block, NilOffset at end
//
// Blocks form a singly linked, strictly increasing-address chain
// covering the whole pool with no gaps and no overlaps.

const (
	// BlockHeaderSize is the byte size of an embedded block header.
	BlockHeaderSize = 12

	// Field offsets within a block header.
	BlockSizeOffset  = 0
	BlockFlagsOffset = 4
	BlockNextOffset  = 8

	// BlockUsed is the flags bit marking a block as handed out.
	BlockUsed uint32 = 1

	// NilOffset terminates the block chain. Offset 0 is a valid block,
	// so the all-ones value stands in for "no next block".
	NilOffset uint32 = 0xFFFFFFFF
)

// BlockSize reads the usable size of the block at off.
func BlockSize(pool []byte, off uint32) uint32 {
	return ReadU32(pool, off+BlockSizeOffset)
}

// SetBlockSize writes the usable size of the block at off.
func SetBlockSize(pool []byte, off, size uint32) {
	PutU32(pool, off+BlockSizeOffset, size)
}

// BlockInUse reports whether the block at off is handed out.
func BlockInUse(pool []byte, off uint32) bool {
	return ReadU32(pool, off+BlockFlagsOffset)&BlockUsed != 0
}

// SetBlockInUse sets or clears the used bit of the block at off.
func SetBlockInUse(pool []byte, off uint32, used bool) {
	if used {
		PutU32(pool, off+BlockFlagsOffset, BlockUsed)
	} else {
		PutU32(pool, off+BlockFlagsOffset, 0)
	}
}

// BlockNext reads the chain successor of the block at off.
func BlockNext(pool []byte, off uint32) uint32 {
	return ReadU32(pool, off+BlockNextOffset)
}

// SetBlockNext writes the chain successor of the block at off.
func SetBlockNext(pool []byte, off, next uint32) {
	PutU32(pool, off+BlockNextOffset, next)
}
