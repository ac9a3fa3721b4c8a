package small

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ojas-mohbansi/memkit/internal/format"
	"github.com/ojas-mohbansi/memkit/pkg/types"
)

const testPoolBase = types.Addr(0xF8000)

func newTestPool(t *testing.T, size int) *Pool {
	t.Helper()
	p, err := New(testPoolBase, make([]byte, size), 0)
	require.NoError(t, err)
	return p
}

func Test_Pool_LazyFormat(t *testing.T) {
	p := newTestPool(t, 1024)

	// Untouched pool: no chain yet, full capacity reported free.
	require.Nil(t, p.Blocks())
	require.Equal(t, uint32(1024-format.BlockHeaderSize), p.FreeBytes())

	_, err := p.Alloc(16)
	require.NoError(t, err)
	require.NotNil(t, p.Blocks())
}

func Test_Pool_AllocAlignsAndSplits(t *testing.T) {
	p := newTestPool(t, 1024)

	addr, err := p.Alloc(5)
	require.NoError(t, err)
	require.Equal(t, testPoolBase+format.BlockHeaderSize, addr)

	blocks := p.Blocks()
	require.Len(t, blocks, 2)

	// The request was rounded to the 8-byte alignment and the
	// remainder split off as a new free block.
	require.Equal(t, uint32(8), blocks[0].Size)
	require.True(t, blocks[0].Used)
	require.False(t, blocks[1].Used)
	require.Equal(t,
		uint32(1024-2*format.BlockHeaderSize-8), blocks[1].Size)
}

func Test_Pool_NoSplitWhenRemainderTooSmall(t *testing.T) {
	// Pool sized so that after one 64-byte allocation the remainder is
	// exactly the split threshold: header + slack. The strict ">"
	// comparison must hand out the whole block instead of splitting.
	size := format.BlockHeaderSize + 64 + format.BlockHeaderSize + types.SmallSplitSlack
	p := newTestPool(t, size)

	_, err := p.Alloc(64)
	require.NoError(t, err)

	blocks := p.Blocks()
	require.Len(t, blocks, 1)
	require.True(t, blocks[0].Used)
	require.Equal(t, uint32(64+format.BlockHeaderSize+types.SmallSplitSlack), blocks[0].Size)
}

func Test_Pool_ThresholdRedirect(t *testing.T) {
	p := newTestPool(t, 1024)

	_, err := p.Alloc(types.SmallAllocMax + 1)
	require.ErrorIs(t, err, ErrTooLarge)

	// At the threshold the pool still serves the request.
	_, err = p.Alloc(types.SmallAllocMax)
	require.NoError(t, err)
}

func Test_Pool_ZeroSize(t *testing.T) {
	p := newTestPool(t, 1024)
	_, err := p.Alloc(0)
	require.ErrorIs(t, err, ErrZeroSize)
}

func Test_Pool_Exhaustion(t *testing.T) {
	p := newTestPool(t, 256)

	// Carve the pool down until nothing fits.
	var got []types.Addr
	for {
		addr, err := p.Alloc(64)
		if err != nil {
			require.ErrorIs(t, err, ErrOutOfMemory)
			break
		}
		got = append(got, addr)
	}
	require.NotEmpty(t, got)

	// Freeing everything restores one spanning free block.
	for _, a := range got {
		require.Equal(t, Freed, p.Free(a))
	}
}

// Test_Pool_FreeNoErroneousMerge is the reference scenario: allocate
// 16, allocate 16, free the first. The freed block must NOT merge with
// its used neighbor; freeing the second afterwards coalesces the chain
// back into a single free block spanning the original pool region.
func Test_Pool_FreeNoErroneousMerge(t *testing.T) {
	p := newTestPool(t, 1024)

	a1, err := p.Alloc(16)
	require.NoError(t, err)
	a2, err := p.Alloc(16)
	require.NoError(t, err)

	require.Equal(t, Freed, p.Free(a1))

	blocks := p.Blocks()
	require.Len(t, blocks, 3)
	require.False(t, blocks[0].Used, "freed block")
	require.True(t, blocks[1].Used, "live neighbor must survive")
	require.False(t, blocks[2].Used, "tail")
	require.Equal(t, uint32(16), blocks[0].Size, "no merge across a used block")

	// Free the second: it merges forward with the tail, and the chain
	// collapses back to the freed head plus one spanning block... the
	// head keeps its own entry because only forward merging happens.
	require.Equal(t, Freed, p.Free(a2))
	blocks = p.Blocks()
	require.Len(t, blocks, 2)
	require.False(t, blocks[0].Used)
	require.False(t, blocks[1].Used)

	// Freeing head's successor chain leaves total capacity intact.
	total := uint32(0)
	for _, b := range blocks {
		total += b.Size + format.BlockHeaderSize
	}
	require.Equal(t, uint32(1024), total)
}

// Test_Pool_ForwardCoalesceReclaimsHeader verifies that merging returns
// the absorbed block's header bytes to the free space.
func Test_Pool_ForwardCoalesceReclaimsHeader(t *testing.T) {
	p := newTestPool(t, 1024)

	a, err := p.Alloc(32)
	require.NoError(t, err)

	freeBefore := p.FreeBytes()
	require.Equal(t, Freed, p.Free(a))

	// All capacity is back in one block.
	blocks := p.Blocks()
	require.Len(t, blocks, 1)
	require.False(t, blocks[0].Used)
	require.Equal(t, uint32(1024-format.BlockHeaderSize), blocks[0].Size)
	require.Greater(t, p.FreeBytes(), freeBefore)
}

// Test_Pool_NoBackwardCoalesce documents the known limitation: freeing
// in allocation order leaves the earlier block unmerged because only
// the successor is examined.
func Test_Pool_NoBackwardCoalesce(t *testing.T) {
	p := newTestPool(t, 1024)

	a1, err := p.Alloc(16)
	require.NoError(t, err)
	a2, err := p.Alloc(16)
	require.NoError(t, err)
	a3, err := p.Alloc(16)
	require.NoError(t, err)
	_ = a3

	require.Equal(t, Freed, p.Free(a1))
	require.Equal(t, Freed, p.Free(a2))

	// a2's block merged nothing forward (a3 is used), and nothing
	// merged a2 into a1: two separate free blocks remain.
	blocks := p.Blocks()
	require.False(t, blocks[0].Used)
	require.False(t, blocks[1].Used)
	require.Equal(t, uint32(16), blocks[0].Size)
	require.Equal(t, uint32(16), blocks[1].Size)
}

func Test_Pool_FreeOutsidePoolIsIgnored(t *testing.T) {
	p := newTestPool(t, 1024)
	_, err := p.Alloc(16)
	require.NoError(t, err)

	require.Equal(t, OutsidePool, p.Free(0x4000))
	require.Equal(t, OutsidePool, p.Free(testPoolBase)) // first header, not a payload
	require.Equal(t, OutsidePool, p.Free(testPoolBase+1024))
	require.Equal(t, OutsidePool, p.Free(0))
}

func Test_Pool_FreeBeforeFirstAllocIsIgnored(t *testing.T) {
	p := newTestPool(t, 1024)
	require.Equal(t, OutsidePool, p.Free(testPoolBase+format.BlockHeaderSize))
}

func Test_Pool_DoubleFreeDetected(t *testing.T) {
	p := newTestPool(t, 1024)

	a, err := p.Alloc(16)
	require.NoError(t, err)

	require.Equal(t, Freed, p.Free(a))
	require.Equal(t, DoubleFree, p.Free(a))

	// The chain survives the double free intact.
	blocks := p.Blocks()
	require.Len(t, blocks, 1)
	require.Equal(t, uint32(1024-format.BlockHeaderSize), blocks[0].Size)
}

// Test_Pool_ChainInvariants performs random alloc/free traffic and
// validates after every step that the chain covers the pool with no
// gaps and no overlaps.
func Test_Pool_ChainInvariants(t *testing.T) {
	const poolSize = 4096
	p := newTestPool(t, poolSize)
	rng := rand.New(rand.NewSource(42))

	var live []types.Addr
	checkChain := func() {
		blocks := p.Blocks()
		if blocks == nil {
			return
		}
		expect := uint32(0)
		for _, b := range blocks {
			require.Equal(t, expect, b.Offset, "gap or overlap in chain")
			expect = b.Offset + format.BlockHeaderSize + b.Size
		}
		require.Equal(t, uint32(poolSize), expect, "chain must span the pool")
	}

	for iter := 0; iter < 500; iter++ {
		if rng.Intn(2) == 0 || len(live) == 0 {
			size := uint32(1 + rng.Intn(128))
			addr, err := p.Alloc(size)
			if err == nil {
				live = append(live, addr)
			} else {
				require.ErrorIs(t, err, ErrOutOfMemory)
			}
		} else {
			i := rng.Intn(len(live))
			require.Equal(t, Freed, p.Free(live[i]))
			live = append(live[:i], live[i+1:]...)
		}
		checkChain()
	}
}

func Test_Pool_NewRejectsTinyBuffer(t *testing.T) {
	_, err := New(0x1000, make([]byte, 8), 0)
	require.ErrorIs(t, err, ErrPoolTooSmall)
}
